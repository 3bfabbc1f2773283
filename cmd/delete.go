/*
Copyright © 2025 Mathias Djärv <mathias.djarv@allbinary.se>
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// deleteCmd represents the delete command
var deleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a tty device alias",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]

		session, err := newSession(cmd)
		if err != nil {
			return err
		}

		if _, err := session.Delete(cmd.Context(), name); err != nil {
			return fmt.Errorf("%w, so was not deleted", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%s was removed successfully!\n", name)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}
