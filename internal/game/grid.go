package game

import (
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"
)

// GridSize is the board layout in rows and columns.
type GridSize struct {
	Rows int
	Cols int
}

// Presets lists the grid sizes offered in the game menu.
var Presets = []GridSize{
	{Rows: 2, Cols: 2},
	{Rows: 2, Cols: 4},
	{Rows: 4, Cols: 4},
	{Rows: 4, Cols: 6},
	{Rows: 6, Cols: 6},
}

// ParseGridSize parses an "RxC" string such as "4x4".
func ParseGridSize(raw string) (GridSize, error) {
	parts := strings.Split(strings.ToLower(strings.TrimSpace(raw)), "x")
	if len(parts) != 2 {
		return GridSize{}, fmt.Errorf("grid size %q must look like RxC", raw)
	}

	rows, err := strconv.Atoi(parts[0])
	if err != nil {
		return GridSize{}, fmt.Errorf("grid rows %q: %w", parts[0], err)
	}
	cols, err := strconv.Atoi(parts[1])
	if err != nil {
		return GridSize{}, fmt.Errorf("grid cols %q: %w", parts[1], err)
	}

	size := GridSize{Rows: rows, Cols: cols}
	if err := size.Validate(); err != nil {
		return GridSize{}, err
	}
	return size, nil
}

// Validate checks that the grid holds a positive, even number of cells.
func (g GridSize) Validate() error {
	if g.Rows <= 0 || g.Cols <= 0 {
		return fmt.Errorf("grid %s must have positive dimensions", g)
	}
	if g.Cells()%2 != 0 {
		return fmt.Errorf("grid %s has an odd number of cells", g)
	}
	return nil
}

// Cells is the number of cards on the board.
func (g GridSize) Cells() int {
	return g.Rows * g.Cols
}

// Pairs is the number of unique card faces the board needs.
func (g GridSize) Pairs() int {
	return g.Cells() / 2
}

func (g GridSize) String() string {
	return fmt.Sprintf("%dx%d", g.Rows, g.Cols)
}

// BuildBoard doubles the unique descriptors and shuffles the result.
func BuildBoard(rng *rand.Rand, unique []CardDescriptor) []CardDescriptor {
	doubled := make([]CardDescriptor, 0, len(unique)*2)
	doubled = append(doubled, unique...)
	doubled = append(doubled, unique...)
	return Shuffle(rng, doubled)
}

// ValidateBoard checks that every card ID appears exactly twice.
func ValidateBoard(board []CardDescriptor) error {
	counts := make(map[int]int, len(board)/2)
	for _, card := range board {
		counts[card.ID]++
	}
	for id, n := range counts {
		if n != 2 {
			return fmt.Errorf("card id %d appears %d times, want 2", id, n)
		}
	}
	return nil
}
