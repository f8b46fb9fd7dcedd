package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/memoria/internal/auth"
	"github.com/alexisbeaulieu97/memoria/internal/logger"
)

type registerOptions struct {
	username string
	email    string
	password string
}

func newRegisterCmd(app *AppContext) *cobra.Command {
	opts := &registerOptions{}

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a player account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Load(); err != nil {
				return err
			}
			ctx, log := app.CommandContext(cmd, "command.register")
			err := runRegister(ctx, log, cmd, app, opts)
			if err != nil {
				log.Error(ctx, "register command failed", "error", err)
			}
			return err
		},
	}

	cmd.Flags().StringVarP(&opts.username, "username", "u", "", "Account username (prompted if omitted)")
	cmd.Flags().StringVarP(&opts.email, "email", "e", "", "Account email (prompted if omitted)")
	cmd.Flags().StringVarP(&opts.password, "password", "p", "", "Account password (prompted if omitted)")

	return cmd
}

func runRegister(ctx context.Context, log *logger.Logger, cmd *cobra.Command, app *AppContext, opts *registerOptions) error {
	prompt := newPrompter(cmd)
	reg := auth.Registration{}
	var err error
	if reg.Username, err = prompt.value("Username", opts.username); err != nil {
		return newCommandError("register", "reading account details", err, "Pass --username, --email and --password.")
	}
	if reg.Email, err = prompt.value("Email", opts.email); err != nil {
		return newCommandError("register", "reading account details", err, "Pass --username, --email and --password.")
	}
	if reg.Password, err = prompt.secret("Password", opts.password); err != nil {
		return newCommandError("register", "reading account details", err, "Pass --username, --email and --password.")
	}
	if err := requireValues(map[string]string{"username": reg.Username, "email": reg.Email, "password": reg.Password}); err != nil {
		return newCommandError("register", "reading account details", err, "Username, email and password are all required.")
	}

	log.Info(ctx, "registering", "username", reg.Username)
	err = app.Auth.Register(ctx, reg)
	switch {
	case errors.Is(err, auth.ErrInvalidRegistration):
		return newCommandError("register", fmt.Sprintf("creating account %q", reg.Username), err, "The server rejected the details. Try another username or email.")
	case err != nil:
		return newCommandError("register", fmt.Sprintf("creating account %q", reg.Username), err, "Check that the game API is reachable at "+app.Config.API.BaseURL+".")
	}

	fmt.Fprintln(cmd.OutOrStdout(), "Registration successful. Please login.")
	return nil
}
