package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/alexisbeaulieu97/memoria/internal/game"
	"github.com/alexisbeaulieu97/memoria/internal/logger"
	"github.com/alexisbeaulieu97/memoria/internal/tui/play"
)

var errNotATerminal = errors.New("stdin and stdout must be a terminal")

type playOptions struct {
	grid      string
	timeLimit int
}

func bindPlayFlags(cmd *cobra.Command, opts *playOptions) {
	cmd.Flags().StringVarP(&opts.grid, "grid", "g", "", "Board size as ROWSxCOLS (default from config, 4x4)")
	cmd.Flags().IntVarP(&opts.timeLimit, "time-limit", "t", 0, "Seconds allowed per round (default from config, 120)")
}

func newPlayCmd(app *AppContext) *cobra.Command {
	opts := &playOptions{}

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Start an interactive game",
		Long:  `Start the interactive memory game. Login, registration and preferences are reachable from inside the game.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlayCommand(cmd, app, opts)
		},
	}
	bindPlayFlags(cmd, opts)

	return cmd
}

func runPlayCommand(cmd *cobra.Command, app *AppContext, opts *playOptions) error {
	if !isTerminal(cmd.InOrStdin()) || !isTerminal(cmd.OutOrStdout()) {
		return newCommandError("play", "starting the game", errNotATerminal, "Run memoria from an interactive terminal. Use 'memoria leaderboard' for scripted output.")
	}
	if err := app.Load(); err != nil {
		return err
	}

	ctx, log := app.CommandContext(cmd, "command.play")
	log.Info(ctx, "launching game")
	err := runPlay(ctx, log, cmd, app, opts)
	if err != nil {
		log.Error(ctx, "play command failed", "error", err)
	}
	return err
}

func runPlay(ctx context.Context, log *logger.Logger, cmd *cobra.Command, app *AppContext, opts *playOptions) error {
	gridValue := app.Config.Game.Grid
	if opts.grid != "" {
		gridValue = opts.grid
	}
	grid, err := game.ParseGridSize(gridValue)
	if err != nil {
		return newCommandError("play", fmt.Sprintf("parsing grid %q", gridValue), err, "Use ROWSxCOLS with an even number of cells, for example 4x4 or 4x6.")
	}

	timeLimit := app.Config.Game.TimeLimit
	if opts.timeLimit != 0 {
		timeLimit = opts.timeLimit
	}
	if timeLimit < 1 {
		return newCommandError("play", "reading the time limit", fmt.Errorf("time limit must be positive, got %d", timeLimit), "Pass a positive number of seconds to --time-limit.")
	}

	model := play.NewModel(play.Services{
		Images: app.Images,
		Scores: app.Scores,
		Prefs:  app.Prefs,
		Auth:   app.Auth,
	}, play.Options{
		Grid:        grid,
		TimeLimit:   timeLimit,
		RevealDelay: app.Config.Game.RevealDelay,
		Logger:      log.With("component", "tui"),
		UseUnicode:  supportsUnicode(cmd.OutOrStdout()),
		Context:     ctx,
	})

	program := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithContext(ctx),
		tea.WithInput(cmd.InOrStdin()),
		tea.WithOutput(cmd.OutOrStdout()),
	)

	// A 401 from any request drops the player back to the login form.
	app.Client.SetUnauthorizedHandler(func() {
		program.Send(play.SessionExpiredMsg{})
	})

	if _, err := program.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			log.Info(ctx, "game interrupted")
			return nil
		}
		return fmt.Errorf("failed to run game: %w", err)
	}

	log.Info(ctx, "game closed")
	return nil
}

func isTerminal(stream any) bool {
	file, ok := stream.(*os.File)
	return ok && term.IsTerminal(int(file.Fd()))
}

func supportsUnicode(writer io.Writer) bool {
	return isTerminal(writer)
}
