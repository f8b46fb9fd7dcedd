package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newLogoutCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Load(); err != nil {
				return err
			}
			ctx, log := app.CommandContext(cmd, "command.logout")

			if !app.Auth.IsAuthenticated() {
				fmt.Fprintln(cmd.OutOrStdout(), "Not logged in.")
				return nil
			}
			if err := app.Auth.Logout(ctx); err != nil {
				log.Error(ctx, "logout command failed", "error", err)
				return newCommandError("logout", "clearing the session token", err, "Check that "+app.Store.Path()+" is writable.")
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out.")
			return nil
		},
	}

	return cmd
}
