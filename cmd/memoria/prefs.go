package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/alexisbeaulieu97/memoria/internal/logger"
	"github.com/alexisbeaulieu97/memoria/internal/preferences"
)

var errNotLoggedIn = errors.New("not logged in")

func newPrefsCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prefs",
		Short: "Show or change your theme and card colors",
	}

	cmd.AddCommand(newPrefsGetCmd(app))
	cmd.AddCommand(newPrefsSetCmd(app))

	return cmd
}

func newPrefsGetCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get",
		Short: "Print the current preferences as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Load(); err != nil {
				return err
			}
			ctx, _ := app.CommandContext(cmd, "command.prefs.get")

			prefs := app.Prefs.Get(ctx)
			out, err := yaml.Marshal(prefs)
			if err != nil {
				return newCommandError("show preferences", "encoding preferences", err, "Report this as a bug.")
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}

	return cmd
}

type prefsSetOptions struct {
	theme       string
	colorFound  string
	colorClosed string
	email       string
}

func newPrefsSetCmd(app *AppContext) *cobra.Command {
	opts := &prefsSetOptions{}

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Change preferences on the server",
		Long:  `Change one or more preferences. Unset flags keep their current value. Requires a login.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Load(); err != nil {
				return err
			}
			ctx, log := app.CommandContext(cmd, "command.prefs.set")
			err := runPrefsSet(ctx, log, cmd, app, opts)
			if err != nil {
				log.Error(ctx, "prefs set command failed", "error", err)
			}
			return err
		},
	}

	cmd.Flags().StringVar(&opts.theme, "theme", "", "Image theme: "+strings.Join(preferences.Themes, ", "))
	cmd.Flags().StringVar(&opts.colorFound, "color-found", "", "Hex color of matched cards, e.g. #00d4ff")
	cmd.Flags().StringVar(&opts.colorClosed, "color-closed", "", "Hex color of hidden cards, e.g. #2a2d47")
	cmd.Flags().StringVar(&opts.email, "email", "", "Account email")

	return cmd
}

func runPrefsSet(ctx context.Context, log *logger.Logger, cmd *cobra.Command, app *AppContext, opts *prefsSetOptions) error {
	if !app.Auth.IsAuthenticated() {
		return newCommandError("save preferences", "checking the session", errNotLoggedIn, "Run 'memoria login' first.")
	}
	if opts.theme == "" && opts.colorFound == "" && opts.colorClosed == "" && opts.email == "" {
		return newCommandError("save preferences", "reading flags", errors.New("nothing to change"), "Pass at least one of --theme, --color-found, --color-closed or --email.")
	}

	prefs := app.Prefs.Get(ctx)
	if opts.theme != "" {
		prefs.API = opts.theme
	}
	if opts.colorFound != "" {
		prefs.ColorFound = opts.colorFound
	}
	if opts.colorClosed != "" {
		prefs.ColorClosed = opts.colorClosed
	}
	if err := prefs.Validate(); err != nil {
		return newCommandError("save preferences", "validating preferences", err, "Use one of the listed themes and #rgb or #rrggbb colors.")
	}

	if opts.email != "" {
		if err := app.Prefs.UpdateEmail(ctx, opts.email); err != nil {
			return newCommandError("save preferences", "updating the email", err, "Check the address and try again.")
		}
	}

	saved, err := app.Prefs.Save(ctx, prefs)
	if err != nil {
		return newCommandError("save preferences", "sending preferences", err, "Check that the game API is reachable at "+app.Config.API.BaseURL+".")
	}
	if !saved {
		return newCommandError("save preferences", "sending preferences", errors.New("the server did not accept the preferences"), "Try again, or log in again with 'memoria login'.")
	}

	log.Info(ctx, "preferences saved", "theme", prefs.API)
	fmt.Fprintln(cmd.OutOrStdout(), "Preferences saved successfully!")
	return nil
}
