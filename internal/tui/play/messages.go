package play

import (
	"github.com/alexisbeaulieu97/memoria/internal/auth"
	"github.com/alexisbeaulieu97/memoria/internal/game"
	"github.com/alexisbeaulieu97/memoria/internal/leaderboard"
	"github.com/alexisbeaulieu97/memoria/internal/preferences"
)

// ViewMode determines which screen to render
type ViewMode int

const (
	ViewBoard ViewMode = iota
	ViewLogin
	ViewRegister
	ViewPreferences
	ViewHelp
)

func (v ViewMode) String() string {
	switch v {
	case ViewBoard:
		return "board"
	case ViewLogin:
		return "login"
	case ViewRegister:
		return "register"
	case ViewPreferences:
		return "preferences"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// Round messages. Every one carries the generation of the round that
// scheduled it; messages from an earlier round are dropped.

// ImagesLoadedMsg carries the unique faces for a new board.
type ImagesLoadedMsg struct {
	Gen   int
	Cards []game.CardDescriptor
}

// ImagesErrorMsg reports that no faces could be produced.
type ImagesErrorMsg struct {
	Gen int
	Err error
}

// CheckMatchMsg fires after the reveal delay following a second flip.
type CheckMatchMsg struct {
	Gen int
}

// TickMsg advances the countdown by one second.
type TickMsg struct {
	Gen int
}

// Leaderboard messages

// LeaderboardLoadedMsg replaces the top scores panel.
type LeaderboardLoadedMsg struct {
	Entries []leaderboard.Entry
}

// LeaderboardErrorMsg reports a failed fetch; the panel keeps its rows.
type LeaderboardErrorMsg struct {
	Err error
}

// ScoreSavedMsg reports a stored score.
type ScoreSavedMsg struct {
	Score int
}

// ScoreErrorMsg reports a failed score submission.
type ScoreErrorMsg struct {
	Err error
}

// Preferences messages

// PreferencesLoadedMsg carries the preferences fetched at startup or after login.
type PreferencesLoadedMsg struct {
	Prefs preferences.Preferences
}

// PreferencesFormLoadedMsg fills the preferences form.
type PreferencesFormLoadedMsg struct {
	Prefs preferences.Preferences
	Email string
	Err   error
}

// PreferencesSavedMsg reports the outcome of the preferences form.
type PreferencesSavedMsg struct {
	Prefs preferences.Preferences
	Err   error
}

// PreferencesUpdatedMsg tells the board to adopt new preferences without a restart.
type PreferencesUpdatedMsg struct {
	Prefs preferences.Preferences
}

// Session messages

// SessionExpiredMsg is sent when any API call answered 401.
type SessionExpiredMsg struct{}

// LoginResultMsg reports a login attempt.
type LoginResultMsg struct {
	Username string
	Result   auth.LoginResult
	Err      error
}

// RegisterResultMsg reports a registration attempt.
type RegisterResultMsg struct {
	Username string
	Err      error
}

// LoggedOutMsg reports that the token was cleared.
type LoggedOutMsg struct {
	Err error
}

// Banner messages

// ErrorMsg shows the error banner.
type ErrorMsg struct {
	Message string
}

// InfoMsg shows the info banner.
type InfoMsg struct {
	Message string
}

// ClearBannerMsg dismisses both banners.
type ClearBannerMsg struct{}
