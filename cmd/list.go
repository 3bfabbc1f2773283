/*
Copyright © 2025 Mathias Djärv <mathias.djarv@allbinary.se>
*/
package cmd

import (
	"errors"
	"fmt"

	"github.com/allbin/ttynamed"
	"github.com/allbin/ttynamed/internal/tui/components"
	"github.com/spf13/cobra"
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Show available TTYs and aliases",
	Long: `Show connected USB TTYs and known aliases.

Rows are colored by state:
- green:  alias whose device is connected
- orange: alias matching more than one connected device
- plain:  connected device without an alias
- yellow: connected device without an alias that reports an incomplete identity
- red:    alias whose device is not connected

Columns are alias, device, manufacturer, model and serial.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		tableFormat, _ := cmd.Flags().GetBool("table")

		session, err := newSession(cmd)
		if err != nil {
			return err
		}

		renderer := components.NewListingRenderer(cmd.OutOrStdout())

		listing, err := session.List(cmd.Context())
		var loadErr *ttynamed.LoadError
		if errors.As(err, &loadErr) {
			// Still show what is connected, then fail without repeating the error
			fmt.Fprintln(cmd.ErrOrStderr(), loadErr)
			fmt.Fprintln(cmd.OutOrStdout())
			if err := renderer.RenderDevices(listing.UnknownPresent); err != nil {
				return err
			}
			return ttynamed.ErrSilent
		}
		if err != nil {
			return err
		}

		if tableFormat {
			return renderer.RenderTable(listing)
		}
		return renderer.RenderPlain(listing)
	},
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().BoolP("table", "t", false, "Display output in a styled table format")
}
