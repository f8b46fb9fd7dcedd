package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/memoria/internal/auth"
	"github.com/alexisbeaulieu97/memoria/internal/logger"
)

type loginOptions struct {
	username string
	password string
}

func newLoginCmd(app *AppContext) *cobra.Command {
	opts := &loginOptions{}

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and store a session token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Load(); err != nil {
				return err
			}
			ctx, log := app.CommandContext(cmd, "command.login")
			err := runLogin(ctx, log, cmd, app, opts)
			if err != nil {
				log.Error(ctx, "login command failed", "error", err)
			}
			return err
		},
	}

	cmd.Flags().StringVarP(&opts.username, "username", "u", "", "Account username (prompted if omitted)")
	cmd.Flags().StringVarP(&opts.password, "password", "p", "", "Account password (prompted if omitted)")

	return cmd
}

func runLogin(ctx context.Context, log *logger.Logger, cmd *cobra.Command, app *AppContext, opts *loginOptions) error {
	prompt := newPrompter(cmd)
	username, err := prompt.value("Username", opts.username)
	if err != nil {
		return newCommandError("login", "reading credentials", err, "Pass --username and --password.")
	}
	password, err := prompt.secret("Password", opts.password)
	if err != nil {
		return newCommandError("login", "reading credentials", err, "Pass --username and --password.")
	}
	if err := requireValues(map[string]string{"username": username, "password": password}); err != nil {
		return newCommandError("login", "reading credentials", err, "Username and password are both required.")
	}

	log.Info(ctx, "logging in", "username", username)
	result, err := app.Auth.Login(ctx, auth.Credentials{Username: username, Password: password})
	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		return newCommandError("login", fmt.Sprintf("authenticating %q", username), err, "Check your username and password, or run 'memoria register'.")
	case err != nil:
		return newCommandError("login", fmt.Sprintf("authenticating %q", username), err, "Check that the game API is reachable at "+app.Config.API.BaseURL+".")
	case result.Token == "":
		return newCommandError("login", "reading the session token", errors.New("the server accepted the login but sent no token"), "Try again later or contact the server operator.")
	}

	// Refresh the cached preferences for the new session.
	prefs := app.Prefs.Get(ctx)
	fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s (theme: %s)\n", username, prefs.API)
	return nil
}
