package components

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/memoria/internal/leaderboard"
)

func TestScoreList(t *testing.T) {
	t.Parallel()

	entries := []leaderboard.Entry{
		{Username: "ada", Score: 80},
		{Username: "bob", Score: 60},
		{Username: "cy", Score: 40},
	}

	t.Run("renders ranked rows", func(t *testing.T) {
		t.Parallel()
		view := NewScoreList(entries, 0).View()
		require.Contains(t, view, "Top Scores")
		require.Contains(t, view, "ada - 80 pts")
		require.Contains(t, view, "cy - 40 pts")
	})

	t.Run("limits rows", func(t *testing.T) {
		t.Parallel()
		list := NewScoreList(entries, 2)
		require.Len(t, list.Entries(), 2)
		require.NotContains(t, list.View(), "cy - 40 pts")
	})

	t.Run("empty", func(t *testing.T) {
		t.Parallel()
		require.Contains(t, NewScoreList(nil, 5).View(), "No scores yet")
	})

	t.Run("copies input", func(t *testing.T) {
		t.Parallel()
		src := []leaderboard.Entry{{Username: "ada", Score: 1}}
		list := NewScoreList(src, 0)
		src[0].Username = "changed"
		require.Equal(t, "ada", list.Entries()[0].Username)
	})
}
