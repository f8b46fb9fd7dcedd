package components

import (
	"fmt"
	"strings"

	"github.com/alexisbeaulieu97/memoria/internal/game"
)

// SummaryData aggregates the round state shown under the board.
type SummaryData struct {
	Outcome      game.Outcome
	Elapsed      int
	MatchedPairs int
	TotalPairs   int
}

// Summary renders the pairs counter and, once the round is over, its result.
type Summary struct {
	data SummaryData
}

// NewSummary creates a new Summary component.
func NewSummary(data SummaryData) Summary {
	return Summary{data: data}
}

// Headline is the end-of-round message, empty while the round is running.
func (s Summary) Headline() string {
	switch s.data.Outcome {
	case game.OutcomeWon:
		return WinMessage(s.data.Elapsed)
	case game.OutcomeLost:
		return LossMessage
	default:
		return ""
	}
}

// View renders the summary.
func (s Summary) View() string {
	var lines []string
	if s.data.TotalPairs > 0 {
		lines = append(lines, fmt.Sprintf("Pairs: %d/%d", s.data.MatchedPairs, s.data.TotalPairs))
	}
	if headline := s.Headline(); headline != "" {
		lines = append(lines, headline)
	}
	return strings.Join(lines, "\n")
}

// LossMessage is shown when the countdown expires.
const LossMessage = "Time is up! Try again."

// WinMessage is shown when every pair was matched.
func WinMessage(elapsed int) string {
	return fmt.Sprintf("Congratulations! You won in %d seconds!", elapsed)
}
