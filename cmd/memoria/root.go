package main

import (
	"github.com/spf13/cobra"
)

type rootFlags struct {
	verbose    bool
	configPath string
	home       string
}

func newRootCmd(app *AppContext) *cobra.Command {
	flags := &rootFlags{}
	app.flags = flags
	playOpts := &playOptions{}

	cmd := &cobra.Command{
		Use:           "memoria",
		Short:         "Memoria is a memory-matching card game for the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Without a subcommand, start a game
			return runPlayCommand(cmd, app, playOpts)
		},
	}

	cmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Enable debug logging")
	cmd.PersistentFlags().StringVarP(&flags.configPath, "config", "c", "", "Path to the config file (default ~/.memoria/config.yaml)")
	cmd.PersistentFlags().StringVar(&flags.home, "home", "", "Directory for local state (default ~/.memoria)")
	bindPlayFlags(cmd, playOpts)

	cmd.AddCommand(newPlayCmd(app))
	cmd.AddCommand(newLoginCmd(app))
	cmd.AddCommand(newRegisterCmd(app))
	cmd.AddCommand(newLogoutCmd(app))
	cmd.AddCommand(newLeaderboardCmd(app))
	cmd.AddCommand(newPrefsCmd(app))
	cmd.AddCommand(newVersionCmd())

	return cmd
}
