/*
Copyright © 2025 Mathias Djärv <mathias.djarv@allbinary.se>
*/
package cmd

import (
	"errors"
	"fmt"

	"github.com/allbin/ttynamed"
	"github.com/spf13/cobra"
)

// resetCmd represents the reset command
var resetCmd = &cobra.Command{
	Use:   "reset <name>",
	Short: "Reset the USB device behind an alias",
	Long: `Perform a USB-level reset on the device an alias refers to. This can
recover devices that are hung or unresponsive without physically unplugging
them.

The device will re-enumerate after reset and may come back on another
/dev path; the alias keeps resolving to it.

Requirements:
- usbreset utility must be installed (from usbutils package)
- Root/sudo permissions required for USB operations

Examples:
  sudo ttynamed reset arduino`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]

		if !ttynamed.IsUSBResetAvailable() {
			fmt.Fprintln(cmd.ErrOrStderr(), "Install with: sudo apt-get install usbutils")
			return ttynamed.ErrUSBResetNotAvailable
		}

		session, err := newSession(cmd)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Resetting USB device: %s\n", name)
		dev, err := session.Reset(cmd.Context(), name)
		if err != nil {
			if errors.Is(err, ttynamed.ErrUSBInfoNotAvailable) {
				fmt.Fprintln(cmd.ErrOrStderr(), "The USB bus and device number of this device are unknown")
			}
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "USB device at %s reset successfully\n", dev.Path)
		fmt.Fprintln(cmd.OutOrStdout(), "\nUse 'ttynamed "+name+"' to find its new path")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(resetCmd)
}
