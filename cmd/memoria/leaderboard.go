package main

import (
	"context"
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/memoria/internal/leaderboard"
	"github.com/alexisbeaulieu97/memoria/internal/logger"
)

type leaderboardOptions struct {
	jsonOutput bool
	limit      int
}

var leaderboardTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7D56F4"))

func newLeaderboardCmd(app *AppContext) *cobra.Command {
	opts := &leaderboardOptions{}

	cmd := &cobra.Command{
		Use:     "leaderboard",
		Aliases: []string{"scores"},
		Short:   "Show the top scores",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Load(); err != nil {
				return err
			}
			ctx, log := app.CommandContext(cmd, "command.leaderboard")
			err := runLeaderboard(ctx, log, cmd, app, opts)
			if err != nil {
				log.Error(ctx, "leaderboard command failed", "error", err)
			}
			return err
		},
	}

	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "Output in JSON format")
	cmd.Flags().IntVarP(&opts.limit, "limit", "n", 0, "Show at most this many rows (0 shows all)")

	return cmd
}

func runLeaderboard(ctx context.Context, log *logger.Logger, cmd *cobra.Command, app *AppContext, opts *leaderboardOptions) error {
	board := leaderboard.NewBoard()
	if err := app.Scores.Refresh(ctx, board); err != nil {
		return newCommandError("show the leaderboard", "fetching top scores", err, "Check that the game API is reachable at "+app.Config.API.BaseURL+".")
	}

	entries := board.Entries()
	if opts.limit > 0 && len(entries) > opts.limit {
		entries = entries[:opts.limit]
	}
	log.Debug(ctx, "leaderboard fetched", "rows", len(entries))

	if opts.jsonOutput {
		return renderLeaderboardJSON(cmd, entries)
	}
	if len(entries) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No scores yet.")
		return nil
	}
	return renderLeaderboardTable(cmd, entries)
}

type leaderboardJSONRow struct {
	Rank     int    `json:"rank"`
	Username string `json:"username"`
	Score    int    `json:"score"`
}

type leaderboardJSONPayload struct {
	Version string               `json:"version"`
	Count   int                  `json:"count"`
	Scores  []leaderboardJSONRow `json:"scores"`
}

func renderLeaderboardJSON(cmd *cobra.Command, entries []leaderboard.Entry) error {
	payload := leaderboardJSONPayload{
		Version: "1.0",
		Count:   len(entries),
		Scores:  make([]leaderboardJSONRow, len(entries)),
	}
	for i, e := range entries {
		payload.Scores[i] = leaderboardJSONRow{Rank: i + 1, Username: e.Username, Score: e.Score}
	}

	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(payload)
}

func renderLeaderboardTable(cmd *cobra.Command, entries []leaderboard.Entry) error {
	useUnicode := supportsUnicode(cmd.OutOrStdout())
	if useUnicode {
		fmt.Fprintln(cmd.OutOrStdout(), leaderboardTitleStyle.Render("Top Scores"))
	}

	writer := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(writer, "RANK\tPLAYER\tSCORE")
	for i, e := range entries {
		fmt.Fprintf(writer, "%s\t%s\t%d pts\n", formatRank(i+1, useUnicode), e.Username, e.Score)
	}
	return writer.Flush()
}

func formatRank(rank int, useUnicode bool) string {
	if rank == 1 {
		if useUnicode {
			return "🏆 1"
		}
		return "* 1"
	}
	return fmt.Sprintf("  %d", rank)
}
