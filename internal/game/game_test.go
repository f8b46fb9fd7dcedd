package game

import (
	"math/rand/v2"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func descriptors(n int) []CardDescriptor {
	out := make([]CardDescriptor, n)
	for i := range out {
		out[i] = CardDescriptor{ID: i + 1, Name: "card", Image: "https://example.test/img"}
	}
	return out
}

func ids(cards []CardDescriptor) []int {
	out := make([]int, len(cards))
	for i, c := range cards {
		out[i] = c.ID
	}
	sort.Ints(out)
	return out
}

func TestParseGridSize(t *testing.T) {
	t.Parallel()

	cases := []struct {
		raw     string
		want    GridSize
		wantErr bool
	}{
		{raw: "4x4", want: GridSize{Rows: 4, Cols: 4}},
		{raw: " 2X6 ", want: GridSize{Rows: 2, Cols: 6}},
		{raw: "3x3", wantErr: true},
		{raw: "0x4", wantErr: true},
		{raw: "-2x4", wantErr: true},
		{raw: "4", wantErr: true},
		{raw: "axb", wantErr: true},
		{raw: "2x2x2", wantErr: true},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.raw, func(t *testing.T) {
			t.Parallel()
			got, err := ParseGridSize(tc.raw)
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}
}

func TestShuffleIsPermutation(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewPCG(1, 2))
	input := BuildBoard(nil, descriptors(10))
	before := append([]CardDescriptor(nil), input...)

	out := Shuffle(rng, input)
	require.Equal(t, ids(input), ids(out))
	require.Equal(t, before, input, "input must not be modified")
}

func TestBuildBoardForEveryPreset(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewPCG(7, 7))
	for _, grid := range Presets {
		board := BuildBoard(rng, descriptors(grid.Pairs()))
		require.Len(t, board, grid.Cells(), grid.String())
		require.NoError(t, ValidateBoard(board))
	}
}

func TestBuildBoardFourByFour(t *testing.T) {
	t.Parallel()

	grid, err := ParseGridSize("4x4")
	require.NoError(t, err)

	board := BuildBoard(nil, descriptors(grid.Pairs()))
	require.Len(t, board, 16)

	counts := map[int]int{}
	for _, c := range board {
		counts[c.ID]++
	}
	require.Len(t, counts, 8)
	for id, n := range counts {
		assert.Equal(t, 2, n, "id %d", id)
	}
}

func TestValidateBoardRejectsBrokenPairs(t *testing.T) {
	t.Parallel()

	board := []CardDescriptor{{ID: 1}, {ID: 1}, {ID: 1}, {ID: 2}}
	require.Error(t, ValidateBoard(board))
}

// pairSession builds a 2x2 session with a known layout: ids 1,2,1,2.
func pairSession(t *testing.T, limit int) *Session {
	t.Helper()
	board := []CardDescriptor{{ID: 1}, {ID: 2}, {ID: 1}, {ID: 2}}
	s, err := NewSession(GridSize{Rows: 2, Cols: 2}, board, limit)
	require.NoError(t, err)
	return s
}

func TestNewSessionRejectsMismatchedBoard(t *testing.T) {
	t.Parallel()

	_, err := NewSession(GridSize{Rows: 2, Cols: 2}, descriptors(2), 120)
	require.Error(t, err)
}

func TestFlipRules(t *testing.T) {
	t.Parallel()

	s := pairSession(t, 120)

	require.Equal(t, FlipRevealed, s.Flip(0))
	require.Equal(t, FlipIgnored, s.Flip(0), "flipping a face-up card is a no-op")
	require.Equal(t, FlipNeedsCheck, s.Flip(1))
	require.Equal(t, FlipIgnored, s.Flip(2), "third card while two are face-up is a no-op")
	require.Equal(t, 2, s.FaceUp())
	_, state := s.Card(2)
	require.Equal(t, Hidden, state)

	require.Equal(t, FlipIgnored, s.Flip(-1))
	require.Equal(t, FlipIgnored, s.Flip(4))
}

func TestCheckMatchMismatchFlipsBack(t *testing.T) {
	t.Parallel()

	s := pairSession(t, 120)
	s.Flip(0)
	s.Flip(1)

	res, ok := s.CheckMatch()
	require.True(t, ok)
	require.False(t, res.Matched)
	require.Zero(t, s.FaceUp())

	for i := 0; i < 2; i++ {
		_, state := s.Card(i)
		require.Equal(t, Hidden, state)
	}

	_, ok = s.CheckMatch()
	require.False(t, ok, "no pending pair")
}

func TestMatchedPairIsTerminal(t *testing.T) {
	t.Parallel()

	s := pairSession(t, 120)
	s.Flip(0)
	s.Flip(2)
	res, ok := s.CheckMatch()
	require.True(t, ok)
	require.True(t, res.Matched)
	require.False(t, res.Won)
	require.Equal(t, 1, s.MatchedPairs())

	require.Equal(t, FlipIgnored, s.Flip(0))
	require.Equal(t, FlipIgnored, s.Flip(2))
	_, state := s.Card(0)
	require.Equal(t, Matched, state)

	s.Flip(1)
	s.Flip(3)
	s.CheckMatch()
	_, state = s.Card(0)
	require.Equal(t, Matched, state)
}

func TestWinFiresOnceAndStopsTimer(t *testing.T) {
	t.Parallel()

	s := pairSession(t, 3)
	s.Tick()

	s.Flip(0)
	s.Flip(2)
	s.CheckMatch()
	s.Flip(1)
	s.Flip(3)
	res, _ := s.CheckMatch()
	require.True(t, res.Won)
	require.Equal(t, OutcomeWon, s.Outcome())
	require.Equal(t, 1, s.Elapsed())

	for i := 0; i < 5; i++ {
		tick := s.Tick()
		require.False(t, tick.Expired)
	}
	require.Equal(t, OutcomeWon, s.Outcome(), "win and loss are exclusive")
	require.Equal(t, 1, s.Elapsed())
	require.Equal(t, FlipIgnored, s.Flip(0))
}

func TestExpiryLosesExactlyOnce(t *testing.T) {
	t.Parallel()

	s := pairSession(t, 3)
	expiries := 0
	for i := 0; i < 10; i++ {
		if s.Tick().Expired {
			expiries++
		}
	}
	require.Equal(t, 1, expiries)
	require.Equal(t, OutcomeLost, s.Outcome())
	require.Equal(t, 0, s.Remaining())
	require.Equal(t, FlipIgnored, s.Flip(0), "no flips after the round ends")
}

func TestLossPreventsLaterWin(t *testing.T) {
	t.Parallel()

	s := pairSession(t, 1)
	s.Flip(0)
	s.Flip(2)
	require.True(t, s.Tick().Expired)

	res, ok := s.CheckMatch()
	require.True(t, ok)
	require.False(t, res.Won)
	require.Equal(t, OutcomeLost, s.Outcome())
}

func TestCountdownProgress(t *testing.T) {
	t.Parallel()

	c := NewCountdown(120)
	require.Equal(t, 120, c.Remaining())

	var last TickResult
	for i := 0; i < 30; i++ {
		last = c.Tick()
	}
	require.Equal(t, 30, last.Elapsed)
	require.Equal(t, 90, last.Remaining)
	require.InDelta(t, 0.25, last.Progress, 1e-9)

	for i := 0; i < 200; i++ {
		last = c.Tick()
	}
	require.Equal(t, 120, c.Elapsed())
	require.Equal(t, 1.0, c.Progress())
	require.True(t, c.Stopped())
}
