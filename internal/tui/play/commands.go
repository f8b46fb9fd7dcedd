package play

import (
	"context"
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sync/errgroup"

	"github.com/alexisbeaulieu97/memoria/internal/api"
	"github.com/alexisbeaulieu97/memoria/internal/auth"
	"github.com/alexisbeaulieu97/memoria/internal/preferences"
)

// errPreferencesNotSaved is reported when the server did not confirm a save.
var errPreferencesNotSaved = errors.New("preferences were not saved")

// loadImagesCmd fetches the unique faces for round gen
func loadImagesCmd(ctx context.Context, src ImageSource, gen int, theme string, count int) tea.Cmd {
	return func() tea.Msg {
		if src == nil {
			return ImagesErrorMsg{Gen: gen, Err: fmt.Errorf("no image source configured")}
		}
		cards, err := src.Images(ctx, theme, count)
		if err != nil {
			return ImagesErrorMsg{Gen: gen, Err: err}
		}
		if len(cards) != count {
			return ImagesErrorMsg{Gen: gen, Err: fmt.Errorf("got %d images, want %d", len(cards), count)}
		}
		return ImagesLoadedMsg{Gen: gen, Cards: cards}
	}
}

// checkMatchCmd schedules the match check after the reveal delay
func checkMatchCmd(gen int, delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return CheckMatchMsg{Gen: gen}
	})
}

// tickCmd schedules the next countdown second
func tickCmd(gen int) tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return TickMsg{Gen: gen}
	})
}

// fetchLeaderboardCmd loads the top scores
func fetchLeaderboardCmd(ctx context.Context, scores Scoreboard) tea.Cmd {
	return func() tea.Msg {
		if scores == nil {
			return nil
		}
		entries, err := scores.Fetch(ctx)
		if err != nil {
			if api.IsUnauthorized(err) {
				return SessionExpiredMsg{}
			}
			return LeaderboardErrorMsg{Err: err}
		}
		return LeaderboardLoadedMsg{Entries: entries}
	}
}

// saveScoreCmd submits a won round
func saveScoreCmd(ctx context.Context, scores Scoreboard, elapsed int) tea.Cmd {
	return func() tea.Msg {
		if err := scores.SaveScore(ctx, elapsed); err != nil {
			if api.IsUnauthorized(err) {
				return SessionExpiredMsg{}
			}
			return ScoreErrorMsg{Err: err}
		}
		return ScoreSavedMsg{Score: elapsed}
	}
}

// loadPreferencesCmd fetches the player's preferences; it never fails
func loadPreferencesCmd(ctx context.Context, store PreferenceStore) tea.Cmd {
	return func() tea.Msg {
		if store == nil {
			return PreferencesLoadedMsg{Prefs: preferences.Defaults()}
		}
		return PreferencesLoadedMsg{Prefs: store.Get(ctx)}
	}
}

// loadPreferencesFormCmd fetches preferences and email together
func loadPreferencesFormCmd(ctx context.Context, store PreferenceStore) tea.Cmd {
	return func() tea.Msg {
		var (
			prefs preferences.Preferences
			email string
		)
		// The loads are independent: a failed email must not cancel Get.
		var g errgroup.Group
		g.Go(func() error {
			prefs = store.Get(ctx)
			return nil
		})
		g.Go(func() error {
			var err error
			email, err = store.Email(ctx)
			return err
		})
		if err := g.Wait(); err != nil {
			if api.IsUnauthorized(err) {
				return SessionExpiredMsg{}
			}
			return PreferencesFormLoadedMsg{Prefs: prefs, Err: err}
		}
		return PreferencesFormLoadedMsg{Prefs: prefs, Email: email}
	}
}

// savePreferencesCmd updates the email, then the preferences
func savePreferencesCmd(ctx context.Context, store PreferenceStore, prefs preferences.Preferences, email string) tea.Cmd {
	return func() tea.Msg {
		if err := store.UpdateEmail(ctx, email); err != nil {
			if api.IsUnauthorized(err) {
				return SessionExpiredMsg{}
			}
			return PreferencesSavedMsg{Prefs: prefs, Err: err}
		}
		ok, err := store.Save(ctx, prefs)
		if err != nil {
			if api.IsUnauthorized(err) {
				return SessionExpiredMsg{}
			}
			return PreferencesSavedMsg{Prefs: prefs, Err: err}
		}
		if !ok {
			return PreferencesSavedMsg{Prefs: prefs, Err: errPreferencesNotSaved}
		}
		return PreferencesSavedMsg{Prefs: prefs}
	}
}

// preferencesUpdatedCmd announces new preferences to the board
func preferencesUpdatedCmd(prefs preferences.Preferences) tea.Cmd {
	return func() tea.Msg {
		return PreferencesUpdatedMsg{Prefs: prefs}
	}
}

// loginCmd exchanges credentials for a session
func loginCmd(ctx context.Context, a Authenticator, creds auth.Credentials) tea.Cmd {
	return func() tea.Msg {
		res, err := a.Login(ctx, creds)
		return LoginResultMsg{Username: creds.Username, Result: res, Err: err}
	}
}

// registerCmd creates an account
func registerCmd(ctx context.Context, a Authenticator, reg auth.Registration) tea.Cmd {
	return func() tea.Msg {
		return RegisterResultMsg{Username: reg.Username, Err: a.Register(ctx, reg)}
	}
}

// logoutCmd ends the session
func logoutCmd(ctx context.Context, a Authenticator) tea.Cmd {
	return func() tea.Msg {
		return LoggedOutMsg{Err: a.Logout(ctx)}
	}
}
