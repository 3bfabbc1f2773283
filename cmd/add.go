/*
Copyright © 2025 Mathias Djärv <mathias.djarv@allbinary.se>
*/
package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/allbin/ttynamed"
	"github.com/allbin/ttynamed/internal/tui/models"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

// addCmd represents the add command
var addCmd = &cobra.Command{
	Use:   "add <device> <name>",
	Short: "Add or modify a tty device alias",
	Long: `Bind a friendly name to the USB TTY currently at <device>.

Any other alias already bound to the same physical device is removed, so a
device never has two names. Using an existing name rebinds it.

Names may contain letters, digits, '_' and '-' and cannot be a command name.

Examples:
  ttynamed add /dev/ttyUSB0 arduino
  ttynamed add --interactive`,
	Args: func(cmd *cobra.Command, args []string) error {
		interactive, _ := cmd.Flags().GetBool("interactive")
		if interactive && len(args) > 0 {
			return errors.New("cannot combine --interactive with arguments")
		}
		if !interactive && len(args) != 2 {
			return errors.New("requires <device> and <name> arguments, or --interactive")
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		session, err := newSession(cmd)
		if err != nil {
			return err
		}

		var device, name string
		if interactive, _ := cmd.Flags().GetBool("interactive"); interactive {
			var ok bool
			device, name, ok, err = pickDevice(cmd, session)
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(cmd.ErrOrStderr(), "Nothing added")
				return nil
			}
		} else {
			device, name = args[0], args[1]
		}

		result, err := session.Add(cmd.Context(), device, name)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		switch {
		case result.Created:
			fmt.Fprintf(out, "Added %s for %s (%s)\n", name, device, result.Device.Fingerprint)
		case result.Previous != nil && !result.Previous.Equal(result.Device.Fingerprint):
			fmt.Fprintf(out, "Modified %s to point at %s (%s)\n", name, device, result.Device.Fingerprint)
		default:
			fmt.Fprintf(out, "%s already points at %s\n", name, device)
		}
		if len(result.Replaced) > 0 {
			fmt.Fprintf(out, "Replaced previous alias(es) for this device: %s\n", strings.Join(result.Replaced, ", "))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(addCmd)

	addCmd.Flags().BoolP("interactive", "i", false, "Pick the device and type the name interactively")
}

// pickDevice runs the interactive picker over the current listing
func pickDevice(cmd *cobra.Command, session *ttynamed.Session) (string, string, bool, error) {
	listing, err := session.List(cmd.Context())
	if err != nil {
		return "", "", false, err
	}
	if len(listing.KnownPresent)+len(listing.UnknownPresent) == 0 {
		return "", "", false, fmt.Errorf("no USB TTYs connected: %w", ttynamed.ErrDeviceNotPresent)
	}

	// The picker draws on stderr so stdout stays free for command output
	out := cmd.ErrOrStderr()
	model := models.NewPickerModel(listing, lipgloss.NewRenderer(out))
	p := tea.NewProgram(model,
		tea.WithContext(cmd.Context()),
		tea.WithInput(cmd.InOrStdin()),
		tea.WithOutput(out),
	)
	if _, err := p.Run(); err != nil {
		return "", "", false, fmt.Errorf("interactive picker: %w", err)
	}

	dev, name, ok := model.Result()
	return dev.Path, name, ok, nil
}
