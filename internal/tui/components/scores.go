package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/alexisbeaulieu97/memoria/internal/leaderboard"
)

var (
	scoresTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	scoresEmptyStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Italic(true)
	scoresRankStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

// ScoreList renders the top scores panel.
type ScoreList struct {
	entries []leaderboard.Entry
	limit   int
}

// NewScoreList constructs a score list showing at most limit rows; zero shows all.
func NewScoreList(entries []leaderboard.Entry, limit int) ScoreList {
	clone := make([]leaderboard.Entry, len(entries))
	copy(clone, entries)
	return ScoreList{entries: clone, limit: limit}
}

// Entries returns the rows that will be rendered.
func (s ScoreList) Entries() []leaderboard.Entry {
	if s.limit > 0 && len(s.entries) > s.limit {
		return s.entries[:s.limit]
	}
	return s.entries
}

// View renders the panel.
func (s ScoreList) View() string {
	lines := []string{scoresTitleStyle.Render("Top Scores")}
	entries := s.Entries()
	if len(entries) == 0 {
		lines = append(lines, scoresEmptyStyle.Render("No scores yet"))
		return strings.Join(lines, "\n")
	}
	for i, e := range entries {
		lines = append(lines, fmt.Sprintf("%s %s", scoresRankStyle.Render(fmt.Sprintf("%d.", i+1)), e.String()))
	}
	return strings.Join(lines, "\n")
}
