package components

import (
	"fmt"
	"math"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
)

// TimerBar renders the countdown as elapsed and remaining seconds next to a
// bar filled in proportion to elapsed/limit.
type TimerBar struct {
	bar   progress.Model
	limit int
}

// NewTimerBar creates a timer bar for a countdown of limit seconds.
func NewTimerBar(limit int) TimerBar {
	bar := progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage())
	bar.Width = 30
	return TimerBar{bar: bar, limit: limit}
}

// WithWidth returns a copy drawing the bar width cells wide.
func (t TimerBar) WithWidth(width int) TimerBar {
	if width > 0 {
		t.bar.Width = width
	}
	return t
}

// Ratio is the filled share of the bar, capped at 1.
func (t TimerBar) Ratio(elapsed int) float64 {
	if t.limit <= 0 {
		return 0
	}
	return math.Max(0, math.Min(1.0, float64(elapsed)/float64(t.limit)))
}

// View renders the bar for the given elapsed seconds.
func (t TimerBar) View(elapsed int) string {
	remaining := t.limit - elapsed
	if remaining < 0 {
		remaining = 0
	}
	label := lipgloss.NewStyle().Bold(true).Render(fmt.Sprintf("Elapsed: %ds  Remaining: %ds", elapsed, remaining))
	return lipgloss.JoinHorizontal(lipgloss.Left, label, "  ", t.bar.ViewAs(t.Ratio(elapsed)))
}
