package play

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexisbeaulieu97/memoria/internal/api"
	"github.com/alexisbeaulieu97/memoria/internal/auth"
	"github.com/alexisbeaulieu97/memoria/internal/game"
	"github.com/alexisbeaulieu97/memoria/internal/preferences"
	"github.com/alexisbeaulieu97/memoria/internal/tui/components"
	memerrors "github.com/alexisbeaulieu97/memoria/pkg/errors"
)

// Banner texts.
const (
	loadPrefsFailedMessage = "Failed to load preferences. Please try again."
	savePrefsFailedMessage = "Failed to save preferences. Please try again."
	prefsSavedMessage      = "Preferences saved successfully!"
	registeredMessage      = "Registration successful. Please login."
	loginRequiredMessage   = "Please login to edit your preferences."
)

// Update handles incoming messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	// System messages
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.timer = m.timer.WithWidth(min(40, msg.Width/3))
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		return m.handleKeyPress(msg)

	case spinner.TickMsg:
		if !m.loading && !m.submitting && !m.prefsLoading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	// Round messages
	case ImagesLoadedMsg:
		if msg.Gen != m.gen {
			return m, nil
		}
		m.loading = false
		board := game.BuildBoard(m.rng, msg.Cards)
		session, err := game.NewSession(m.grid, board, m.timeLimit)
		if err != nil {
			m.loadFailed = true
			m.log.Error(m.ctx, "error building board", "error", err, "generation", msg.Gen)
			return m, nil
		}
		m.session = session
		m.cursor = 0
		return m, tickCmd(m.gen)

	case ImagesErrorMsg:
		if msg.Gen != m.gen {
			return m, nil
		}
		m.loading = false
		m.loadFailed = true
		m.log.Error(m.ctx, "error loading images", "error", msg.Err, "theme", m.theme)
		return m, nil

	case TickMsg:
		if msg.Gen != m.gen || m.session == nil || m.session.Over() {
			return m, nil
		}
		res := m.session.Tick()
		if res.Expired {
			m.infoMsg = components.LossMessage
			m.log.Info(m.ctx, "round lost", "elapsed", res.Elapsed, "matched", m.session.MatchedPairs())
			return m, nil
		}
		return m, tickCmd(m.gen)

	case CheckMatchMsg:
		if msg.Gen != m.gen || m.session == nil {
			return m, nil
		}
		result, ok := m.session.CheckMatch()
		if !ok || !result.Won {
			return m, nil
		}
		elapsed := m.session.Elapsed()
		m.infoMsg = components.WinMessage(elapsed)
		m.log.Info(m.ctx, "round won", "elapsed", elapsed, "grid", m.grid.String())
		if m.svc.Scores == nil || m.svc.Auth == nil || !m.svc.Auth.IsAuthenticated() {
			m.log.Debug(m.ctx, "score not submitted without a session")
			return m, nil
		}
		return m, saveScoreCmd(m.ctx, m.svc.Scores, elapsed)

	// Leaderboard messages
	case LeaderboardLoadedMsg:
		m.scores.Replace(msg.Entries)
		return m, nil

	case LeaderboardErrorMsg:
		m.log.Error(m.ctx, "error fetching leaderboard", "error", msg.Err)
		return m, nil

	case ScoreSavedMsg:
		return m, fetchLeaderboardCmd(m.ctx, m.svc.Scores)

	case ScoreErrorMsg:
		m.log.Error(m.ctx, "error submitting score", "error", msg.Err)
		m.setError(fmt.Sprintf("Failed to save score: %s", userMessage(msg.Err)))
		return m, nil

	// Preferences messages
	case PreferencesLoadedMsg:
		m.prefs = msg.Prefs
		m.theme = msg.Prefs.API
		if m.gen == 0 {
			return m, m.newRound()
		}
		return m, nil

	case PreferencesUpdatedMsg:
		m.prefs = msg.Prefs
		m.theme = msg.Prefs.API
		if m.svc.Prefs != nil {
			if err := m.svc.Prefs.Remember(msg.Prefs); err != nil {
				m.log.Error(m.ctx, "error storing preferences locally", "error", err)
			}
		}
		m.log.Debug(m.ctx, "preferences updated", "api", msg.Prefs.API)
		return m, nil

	case PreferencesFormLoadedMsg:
		m.prefsLoading = false
		m.fillPreferencesForm(msg.Prefs, msg.Email)
		if msg.Err != nil {
			m.log.Error(m.ctx, "error loading preferences", "error", msg.Err)
			m.setError(loadPrefsFailedMessage)
		}
		return m, nil

	case PreferencesSavedMsg:
		m.submitting = false
		if msg.Err != nil {
			m.log.Error(m.ctx, "error saving preferences", "error", msg.Err)
			var validationErr *memerrors.ValidationError
			if errors.As(msg.Err, &validationErr) {
				m.setError(validationErr.Error())
			} else {
				m.setError(savePrefsFailedMessage)
			}
			return m, nil
		}
		m.clearBanners()
		m.infoMsg = prefsSavedMessage
		m.viewMode = ViewBoard
		return m, preferencesUpdatedCmd(msg.Prefs)

	// Session messages
	case SessionExpiredMsg:
		m.submitting = false
		m.prefsLoading = false
		m.loginForm.reset()
		m.viewMode = ViewLogin
		m.setError(api.SessionExpiredMessage)
		return m, nil

	case LoginResultMsg:
		m.submitting = false
		if msg.Err != nil {
			if errors.Is(msg.Err, auth.ErrInvalidCredentials) {
				m.setError("Invalid username or password")
			} else {
				m.setError(userMessage(msg.Err))
			}
			return m, nil
		}
		m.clearBanners()
		m.loginForm.reset()
		m.infoMsg = fmt.Sprintf("Welcome, %s!", msg.Username)
		m.viewMode = ViewBoard
		return m, tea.Batch(
			loadPreferencesCmd(m.ctx, m.svc.Prefs),
			fetchLeaderboardCmd(m.ctx, m.svc.Scores),
		)

	case RegisterResultMsg:
		m.submitting = false
		if msg.Err != nil {
			if errors.Is(msg.Err, auth.ErrInvalidRegistration) {
				m.setError("Invalid registration data")
			} else {
				m.setError(userMessage(msg.Err))
			}
			return m, nil
		}
		m.clearBanners()
		m.registerForm.reset()
		m.loginForm.reset()
		m.loginForm.set(0, msg.Username)
		m.loginForm.setFocus(1)
		m.infoMsg = registeredMessage
		m.viewMode = ViewLogin
		return m, nil

	case LoggedOutMsg:
		if msg.Err != nil {
			m.setError(fmt.Sprintf("Logout failed: %s", msg.Err))
			return m, nil
		}
		m.clearBanners()
		m.prefs = preferences.Defaults()
		m.theme = m.prefs.API
		m.loginForm.reset()
		m.infoMsg = "Logged out."
		m.viewMode = ViewLogin
		return m, nil

	// Banner messages
	case ErrorMsg:
		m.setError(msg.Message)
		return m, nil

	case InfoMsg:
		m.infoMsg = msg.Message
		return m, nil

	case ClearBannerMsg:
		m.clearBanners()
		return m, nil
	}

	return m, nil
}

// userMessage prefers the API's human message over the wrapped error text.
func userMessage(err error) string {
	var apiErr *memerrors.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return err.Error()
}

// handleKeyPress handles keyboard input based on current view mode
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.viewMode {
	case ViewBoard:
		return m.handleBoardKeys(msg)
	case ViewLogin:
		return m.handleLoginKeys(msg)
	case ViewRegister:
		return m.handleRegisterKeys(msg)
	case ViewPreferences:
		return m.handlePreferencesKeys(msg)
	case ViewHelp:
		return m.handleHelpKeys(msg)
	default:
		return m, nil
	}
}

// handleBoardKeys handles keys on the board
func (m Model) handleBoardKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit

	case "x", "esc":
		m.clearBanners()
		return m, nil

	// Navigation
	case "up", "k":
		m.MoveCursor(-1, 0)
		return m, nil
	case "down", "j":
		m.MoveCursor(1, 0)
		return m, nil
	case "left", "h":
		m.MoveCursor(0, -1)
		return m, nil
	case "right", "l":
		m.MoveCursor(0, 1)
		return m, nil

	// Flip the highlighted card
	case "enter", " ":
		if m.session == nil {
			return m, nil
		}
		if m.session.Flip(m.cursor) == game.FlipNeedsCheck {
			return m, checkMatchCmd(m.gen, m.revealDelay)
		}
		return m, nil

	// Round setup
	case "n":
		return m, m.newRound()
	case "g":
		m.nextGrid()
		return m, m.newRound()
	case "t":
		m.nextTheme()
		return m, m.newRound()

	// Account
	case "a":
		m.clearBanners()
		m.loginForm.reset()
		m.viewMode = ViewLogin
		return m, nil
	case "u":
		m.clearBanners()
		m.registerForm.reset()
		m.viewMode = ViewRegister
		return m, nil
	case "o":
		if m.svc.Auth == nil {
			return m, nil
		}
		return m, logoutCmd(m.ctx, m.svc.Auth)
	case "p":
		m.clearBanners()
		if m.svc.Auth == nil || !m.svc.Auth.IsAuthenticated() {
			m.loginForm.reset()
			m.viewMode = ViewLogin
			m.setError(loginRequiredMessage)
			return m, nil
		}
		m.viewMode = ViewPreferences
		m.prefsLoading = true
		m.fillPreferencesForm(m.prefs, "")
		return m, tea.Batch(m.spinner.Tick, loadPreferencesFormCmd(m.ctx, m.svc.Prefs))

	case "?":
		m.prevMode = m.viewMode
		m.viewMode = ViewHelp
		return m, nil
	}
	return m, nil
}

// handleLoginKeys handles keys in the login form
func (m Model) handleLoginKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.clearBanners()
		m.viewMode = ViewBoard
		return m, nil
	case "ctrl+r":
		m.clearBanners()
		m.registerForm.reset()
		m.viewMode = ViewRegister
		return m, nil
	case "tab", "down":
		m.loginForm.next()
		return m, nil
	case "shift+tab", "up":
		m.loginForm.prev()
		return m, nil
	case "enter":
		if !m.loginForm.onLast() {
			m.loginForm.next()
			return m, nil
		}
		if m.submitting {
			return m, nil
		}
		if label, missing := m.loginForm.missing(); missing {
			m.setError(fmt.Sprintf("%s is required", label))
			return m, nil
		}
		m.submitting = true
		creds := auth.Credentials{Username: m.loginForm.value(0), Password: m.loginForm.value(1)}
		return m, tea.Batch(m.spinner.Tick, loginCmd(m.ctx, m.svc.Auth, creds))
	}
	return m, m.loginForm.update(msg)
}

// handleRegisterKeys handles keys in the registration form
func (m Model) handleRegisterKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.clearBanners()
		m.viewMode = ViewBoard
		return m, nil
	case "ctrl+l":
		m.clearBanners()
		m.loginForm.reset()
		m.viewMode = ViewLogin
		return m, nil
	case "tab", "down":
		m.registerForm.next()
		return m, nil
	case "shift+tab", "up":
		m.registerForm.prev()
		return m, nil
	case "enter":
		if !m.registerForm.onLast() {
			m.registerForm.next()
			return m, nil
		}
		if m.submitting {
			return m, nil
		}
		if label, missing := m.registerForm.missing(); missing {
			m.setError(fmt.Sprintf("%s is required", label))
			return m, nil
		}
		m.submitting = true
		reg := auth.Registration{
			Username: m.registerForm.value(0),
			Email:    m.registerForm.value(1),
			Password: m.registerForm.value(2),
		}
		return m, tea.Batch(m.spinner.Tick, registerCmd(m.ctx, m.svc.Auth, reg))
	}
	return m, m.registerForm.update(msg)
}

// handlePreferencesKeys handles keys in the preferences form. The theme
// selector sits above the text inputs at focus -1.
func (m Model) handlePreferencesKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	themeRow := m.prefsForm.focus < 0

	switch msg.String() {
	case "esc":
		m.clearBanners()
		m.viewMode = ViewBoard
		return m, nil
	case "tab", "down":
		if m.prefsForm.onLast() {
			m.prefsForm.setFocus(-1)
		} else {
			m.prefsForm.setFocus(m.prefsForm.focus + 1)
		}
		return m, nil
	case "shift+tab", "up":
		if themeRow {
			m.prefsForm.setFocus(len(m.prefsForm.inputs) - 1)
		} else {
			m.prefsForm.setFocus(m.prefsForm.focus - 1)
		}
		return m, nil
	case "left", "right":
		if themeRow {
			step := 1
			if msg.String() == "left" {
				step = -1
			}
			n := len(preferences.Themes)
			m.prefsTheme = (m.prefsTheme + step + n) % n
			return m, nil
		}
	case "enter":
		if m.submitting || m.prefsLoading {
			return m, nil
		}
		prefs := m.formPreferences()
		if err := prefs.Validate(); err != nil {
			m.setError(err.Error())
			return m, nil
		}
		m.submitting = true
		return m, tea.Batch(m.spinner.Tick, savePreferencesCmd(m.ctx, m.svc.Prefs, prefs, m.prefsForm.value(prefsEmail)))
	}
	if themeRow {
		return m, nil
	}
	return m, m.prefsForm.update(msg)
}

// handleHelpKeys handles keys in help view
func (m Model) handleHelpKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "?", "esc", "q":
		m.viewMode = m.prevMode
		return m, nil
	}
	return m, nil
}

func (m *Model) fillPreferencesForm(prefs preferences.Preferences, email string) {
	m.prefsTheme = 0
	for i, t := range preferences.Themes {
		if t == prefs.API {
			m.prefsTheme = i
			break
		}
	}
	m.prefsForm.set(prefsColorFound, prefs.ColorFound)
	m.prefsForm.set(prefsColorClosed, prefs.ColorClosed)
	if email != "" || m.prefsForm.value(prefsEmail) == "" {
		m.prefsForm.set(prefsEmail, email)
	}
	m.prefsForm.setFocus(-1)
}

func (m Model) formPreferences() preferences.Preferences {
	return preferences.Preferences{
		API:         preferences.Themes[m.prefsTheme],
		ColorFound:  m.prefsForm.value(prefsColorFound),
		ColorClosed: m.prefsForm.value(prefsColorClosed),
	}
}
