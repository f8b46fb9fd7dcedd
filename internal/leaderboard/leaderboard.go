// Package leaderboard fetches top scores and keeps a ranked, displayable list.
package leaderboard

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"sync"

	"github.com/alexisbeaulieu97/memoria/internal/api"
	"github.com/alexisbeaulieu97/memoria/internal/logger"
	memerrors "github.com/alexisbeaulieu97/memoria/pkg/errors"
)

// PlayerID is sent with every score submission.
// TODO: derive it from the authenticated player once the login response carries an id.
const PlayerID = "1"

// Entry is one leaderboard row.
type Entry struct {
	Username string `json:"username"`
	Score    int    `json:"score"`
}

// String renders the row the way the leaderboard panel shows it.
func (e Entry) String() string {
	return fmt.Sprintf("%s - %d pts", e.Username, e.Score)
}

// Board is the ranked list shown next to the game.
type Board struct {
	mu      sync.RWMutex
	entries []Entry
}

// NewBoard returns an empty Board.
func NewBoard() *Board {
	return &Board{}
}

// Replace swaps the whole list for entries, sorted by score, highest first.
// Ties keep the server's order.
func (b *Board) Replace(entries []Entry) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.entries = append([]Entry(nil), entries...)
	b.sortLocked()
}

// Update sets the score of an existing username and re-sorts the list by
// score, highest first. Unknown usernames leave the rows unchanged but the
// list is still re-sorted. It reports whether a row was found.
func (b *Board) Update(username string, score int) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	found := false
	for i := range b.entries {
		if b.entries[i].Username == username {
			b.entries[i].Score = score
			found = true
			break
		}
	}
	b.sortLocked()
	return found
}

func (b *Board) sortLocked() {
	sort.SliceStable(b.entries, func(i, j int) bool {
		return b.entries[i].Score > b.entries[j].Score
	})
}

// Entries returns a copy of the rows in display order.
func (b *Board) Entries() []Entry {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return append([]Entry(nil), b.entries...)
}

// Lines renders every row.
func (b *Board) Lines() []string {
	entries := b.Entries()
	lines := make([]string, len(entries))
	for i, e := range entries {
		lines[i] = e.String()
	}
	return lines
}

// Len reports the number of rows.
func (b *Board) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.entries)
}

// Service talks to the score endpoints.
type Service struct {
	client *api.Client
	log    *logger.Logger
}

// NewService creates a leaderboard Service.
func NewService(client *api.Client, log *logger.Logger) *Service {
	return &Service{client: client, log: log}
}

// Fetch loads the top scores.
func (s *Service) Fetch(ctx context.Context) ([]Entry, error) {
	resp, err := s.client.Do(ctx, api.Request{Path: api.PathTopScores})
	if err != nil {
		s.log.Error(ctx, "error fetching leaderboard", "error", err)
		return nil, err
	}

	switch resp.StatusCode {
	case http.StatusOK:
		var entries []Entry
		if err := api.DecodeJSON(resp, &entries); err != nil {
			s.log.Error(ctx, "error decoding leaderboard", "error", err)
			return nil, fmt.Errorf("decode leaderboard: %w", err)
		}
		s.log.Debug(ctx, "leaderboard loaded", "entries", len(entries))
		return entries, nil
	default:
		api.Close(resp)
		err := memerrors.NewAPIError("fetch leaderboard", resp.StatusCode, "Server error fetching leaderboard")
		s.log.Error(ctx, "error fetching leaderboard", "status", resp.StatusCode)
		return nil, err
	}
}

// Refresh fetches the top scores into board.
func (s *Service) Refresh(ctx context.Context, board *Board) error {
	entries, err := s.Fetch(ctx)
	if err != nil {
		return err
	}
	board.Replace(entries)
	return nil
}

type scoreRequest struct {
	ID    string `json:"id"`
	Score int    `json:"score"`
}

// SaveScore submits a won game's elapsed seconds. Only a 200 counts as saved.
func (s *Service) SaveScore(ctx context.Context, elapsed int) error {
	resp, err := s.client.Do(ctx, api.Request{
		Method: http.MethodPost,
		Path:   api.PathSaveScore,
		Body:   scoreRequest{ID: PlayerID, Score: elapsed},
	})
	if err != nil {
		s.log.Error(ctx, "error submitting score", "error", err)
		return err
	}
	defer api.Close(resp)

	if resp.StatusCode != http.StatusOK {
		s.log.Error(ctx, "error submitting score", "status", resp.StatusCode)
		return memerrors.NewAPIError("save score", resp.StatusCode, "Server error saving score")
	}
	s.log.Info(ctx, "score saved", "score", elapsed)
	return nil
}
