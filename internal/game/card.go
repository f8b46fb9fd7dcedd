// Package game holds the rules of a memory-matching round: building a
// shuffled board of card pairs, the flip/match state machine, and the
// countdown that ends the round.
package game

// CardDescriptor is one card face. Two descriptors sharing an ID form a pair.
type CardDescriptor struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Image string `json:"image"`
}

// CardState is the visibility of a single board cell.
type CardState int

const (
	Hidden CardState = iota
	Flipped
	Matched
)

func (s CardState) String() string {
	switch s {
	case Flipped:
		return "flipped"
	case Matched:
		return "matched"
	default:
		return "hidden"
	}
}

// FlippedCard is a face-up, not yet matched card.
type FlippedCard struct {
	Index      int
	Descriptor CardDescriptor
}

// Outcome is how a round ended.
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeWon
	OutcomeLost
)

func (o Outcome) String() string {
	switch o {
	case OutcomeWon:
		return "won"
	case OutcomeLost:
		return "lost"
	default:
		return "playing"
	}
}
