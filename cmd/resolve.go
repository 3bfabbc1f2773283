/*
Copyright © 2025 Mathias Djärv <mathias.djarv@allbinary.se>
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// resolveCmd represents the resolve command
var resolveCmd = &cobra.Command{
	Use:   "resolve <name>",
	Short: "Print the current device path of an alias",
	Long: `Print the /dev path of the connected device an alias refers to.

This is also what "ttynamed <name>" does. It fails if the device is not
connected, or if more than one connected device matches the alias.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runResolve(cmd, args[0])
	},
}

func init() {
	rootCmd.AddCommand(resolveCmd)
}

func runResolve(cmd *cobra.Command, name string) error {
	session, err := newSession(cmd)
	if err != nil {
		return err
	}

	path, err := session.Resolve(cmd.Context(), name)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), path)
	return nil
}
