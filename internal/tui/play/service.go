package play

import (
	"context"

	"github.com/alexisbeaulieu97/memoria/internal/auth"
	"github.com/alexisbeaulieu97/memoria/internal/game"
	"github.com/alexisbeaulieu97/memoria/internal/leaderboard"
	"github.com/alexisbeaulieu97/memoria/internal/preferences"
)

// ImageSource supplies the unique card faces for a round.
type ImageSource interface {
	Images(ctx context.Context, theme string, count int) ([]game.CardDescriptor, error)
}

// Scoreboard reads and writes scores.
type Scoreboard interface {
	Fetch(ctx context.Context) ([]leaderboard.Entry, error)
	SaveScore(ctx context.Context, elapsed int) error
}

// PreferenceStore loads and saves the player's preferences and email.
type PreferenceStore interface {
	Get(ctx context.Context) preferences.Preferences
	Save(ctx context.Context, prefs preferences.Preferences) (bool, error)
	Current() preferences.Preferences
	Remember(prefs preferences.Preferences) error
	Email(ctx context.Context) (string, error)
	UpdateEmail(ctx context.Context, email string) error
}

// Authenticator manages the player session.
type Authenticator interface {
	Register(ctx context.Context, reg auth.Registration) error
	Login(ctx context.Context, creds auth.Credentials) (auth.LoginResult, error)
	Logout(ctx context.Context) error
	IsAuthenticated() bool
}

// Services bundles everything the game screen talks to.
type Services struct {
	Images ImageSource
	Scores Scoreboard
	Prefs  PreferenceStore
	Auth   Authenticator
}
