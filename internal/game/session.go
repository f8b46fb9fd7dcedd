package game

import "fmt"

// FlipResult tells the caller what a flip request did.
type FlipResult int

const (
	// FlipIgnored means the request was a no-op.
	FlipIgnored FlipResult = iota
	// FlipRevealed means the card is now face-up and waits for a partner.
	FlipRevealed
	// FlipNeedsCheck means two cards are face-up; schedule CheckMatch after
	// the reveal delay.
	FlipNeedsCheck
)

// MatchResult reports the outcome of comparing the two face-up cards.
type MatchResult struct {
	First   int
	Second  int
	Matched bool
	// Won is true when this match completed the board.
	Won bool
}

// Session is one round of the game. It is not safe for concurrent use; the
// UI event loop owns it.
type Session struct {
	grid         GridSize
	board        []CardDescriptor
	states       []CardState
	flipped      []FlippedCard
	matchedPairs int
	outcome      Outcome
	countdown    *Countdown
}

// NewSession validates board against grid and starts a round with a countdown
// of timeLimit seconds.
func NewSession(grid GridSize, board []CardDescriptor, timeLimit int) (*Session, error) {
	if err := grid.Validate(); err != nil {
		return nil, err
	}
	if len(board) != grid.Cells() {
		return nil, fmt.Errorf("board has %d cards, grid %s needs %d", len(board), grid, grid.Cells())
	}
	if err := ValidateBoard(board); err != nil {
		return nil, err
	}

	cards := make([]CardDescriptor, len(board))
	copy(cards, board)

	return &Session{
		grid:      grid,
		board:     cards,
		states:    make([]CardState, len(cards)),
		flipped:   make([]FlippedCard, 0, 2),
		countdown: NewCountdown(timeLimit),
	}, nil
}

// Flip turns card i face-up when the rules allow it.
func (s *Session) Flip(i int) FlipResult {
	if s.Over() || i < 0 || i >= len(s.board) {
		return FlipIgnored
	}
	if s.states[i] != Hidden || len(s.flipped) >= 2 {
		return FlipIgnored
	}

	s.states[i] = Flipped
	s.flipped = append(s.flipped, FlippedCard{Index: i, Descriptor: s.board[i]})

	if len(s.flipped) == 2 {
		return FlipNeedsCheck
	}
	return FlipRevealed
}

// CheckMatch compares the two face-up cards and clears the working set. It
// returns false when fewer than two cards are face-up.
func (s *Session) CheckMatch() (MatchResult, bool) {
	if len(s.flipped) != 2 {
		return MatchResult{}, false
	}

	first, second := s.flipped[0], s.flipped[1]
	s.flipped = s.flipped[:0]

	result := MatchResult{First: first.Index, Second: second.Index}

	if first.Descriptor.ID != second.Descriptor.ID {
		s.states[first.Index] = Hidden
		s.states[second.Index] = Hidden
		return result, true
	}

	s.states[first.Index] = Matched
	s.states[second.Index] = Matched
	s.matchedPairs++
	result.Matched = true

	if s.matchedPairs == s.TotalPairs() && s.outcome == OutcomeNone {
		s.outcome = OutcomeWon
		s.countdown.Stop()
		result.Won = true
	}
	return result, true
}

// Tick advances the countdown. The tick that expires it ends the round as a
// loss unless the round is already over.
func (s *Session) Tick() TickResult {
	res := s.countdown.Tick()
	if res.Expired {
		if s.outcome != OutcomeNone {
			res.Expired = false
			return res
		}
		s.outcome = OutcomeLost
	}
	return res
}

// Grid is the board layout.
func (s *Session) Grid() GridSize {
	return s.grid
}

// Board returns a copy of the shuffled deck.
func (s *Session) Board() []CardDescriptor {
	out := make([]CardDescriptor, len(s.board))
	copy(out, s.board)
	return out
}

// Card returns descriptor and state of card i.
func (s *Session) Card(i int) (CardDescriptor, CardState) {
	return s.board[i], s.states[i]
}

// Len is the number of cards on the board.
func (s *Session) Len() int {
	return len(s.board)
}

// FaceUp is the number of flipped, unmatched cards.
func (s *Session) FaceUp() int {
	return len(s.flipped)
}

// MatchedPairs is the number of pairs found so far.
func (s *Session) MatchedPairs() int {
	return s.matchedPairs
}

// TotalPairs is the number of pairs on the board.
func (s *Session) TotalPairs() int {
	return len(s.board) / 2
}

// Outcome is the result of the round so far.
func (s *Session) Outcome() Outcome {
	return s.outcome
}

// Over reports whether the round has been won or lost.
func (s *Session) Over() bool {
	return s.outcome != OutcomeNone
}

// Elapsed is the number of seconds played.
func (s *Session) Elapsed() int {
	return s.countdown.Elapsed()
}

// Remaining is the number of seconds left.
func (s *Session) Remaining() int {
	return s.countdown.Remaining()
}

// Progress is the fraction of the time limit used, capped at 1.
func (s *Session) Progress() float64 {
	return s.countdown.Progress()
}

// TimeLimit is the round length in seconds.
func (s *Session) TimeLimit() int {
	return s.countdown.Limit()
}
