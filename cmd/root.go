/*
Copyright © 2025 Mathias Djärv <mathias.djarv@allbinary.se>
*/
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/allbin/ttynamed"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// settings holds the global flags, overridable through TTYNAMED_* variables
var settings = viper.New()

// newDeviceLister creates the device source; tests replace it with fixtures
var newDeviceLister = func(logger zerolog.Logger) (ttynamed.DeviceLister, error) {
	enumerator, err := ttynamed.NewEnumerator(
		ttynamed.WithQueryTimeout(settings.GetDuration("query-timeout")),
		ttynamed.WithLogger(logger),
	)
	if err != nil {
		return nil, err
	}
	return enumerator, nil
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "ttynamed [name]",
	Short: "Find TTY devices by friendly name",
	Long: `ttynamed finds USB serial devices by friendly name.

Aliases are bound to a device's manufacturer, model and serial number, so
they keep working when the device moves from /dev/ttyUSB0 to /dev/ttyUSB3.

Examples:
  ttynamed add /dev/ttyUSB0 arduino   # name the device currently at ttyUSB0
  ttynamed arduino                    # print its current /dev path
  screen $(ttynamed arduino) 115200
  ttynamed list`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return cmd.Help()
		}
		return runResolve(cmd, args[0])
	},
}

// Execute runs the root command and returns the process exit code
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		if !errors.Is(err, ttynamed.ErrSilent) {
			fmt.Fprintln(rootCmd.ErrOrStderr(), err)
		}
		return 1
	}
	return 0
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringP("config", "c", "", "Alias file to use (default "+ttynamed.DefaultStorePath()+")")
	flags.Bool("strict", false, "Fail when any device cannot be queried")
	flags.Duration("query-timeout", ttynamed.DefaultQueryTimeout, "Timeout for each udevadm query")
	flags.BoolP("verbose", "v", false, "Log device discovery details to stderr")

	for _, name := range []string{"config", "strict", "query-timeout", "verbose"} {
		if err := settings.BindPFlag(name, flags.Lookup(name)); err != nil {
			panic(err)
		}
	}

	settings.SetEnvPrefix("TTYNAMED")
	settings.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	settings.AutomaticEnv()
}

func storePath() string {
	if path := settings.GetString("config"); path != "" {
		return path
	}
	return ttynamed.DefaultStorePath()
}

func newSession(cmd *cobra.Command) (*ttynamed.Session, error) {
	logger := ttynamed.NewLogger(cmd.ErrOrStderr(), settings.GetBool("verbose"))

	lister, err := newDeviceLister(logger)
	if err != nil {
		return nil, err
	}

	return &ttynamed.Session{
		StorePath: storePath(),
		Devices:   lister,
		Strict:    settings.GetBool("strict"),
		Logger:    logger,
	}, nil
}
