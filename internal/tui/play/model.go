// Package play is the interactive game screen: the board, the countdown, the
// top scores panel, and the login, registration and preferences forms.
package play

import (
	"context"
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexisbeaulieu97/memoria/internal/game"
	"github.com/alexisbeaulieu97/memoria/internal/leaderboard"
	"github.com/alexisbeaulieu97/memoria/internal/logger"
	"github.com/alexisbeaulieu97/memoria/internal/preferences"
	"github.com/alexisbeaulieu97/memoria/internal/tui/components"
)

// Defaults used when Options leaves a field unset.
const (
	DefaultTimeLimit   = 120
	DefaultRevealDelay = time.Second
	scoresShown        = 5
)

// Options configures a Model.
type Options struct {
	Grid        game.GridSize
	TimeLimit   int
	RevealDelay time.Duration
	Rand        *rand.Rand
	Logger      *logger.Logger
	UseUnicode  bool
	// Context is the parent of every request the screen issues.
	Context context.Context
}

// Model is the game screen model
type Model struct {
	// Core data
	svc    Services
	log    *logger.Logger
	ctx    context.Context
	rng    *rand.Rand
	prefs  preferences.Preferences
	scores *leaderboard.Board

	// UI state
	viewMode ViewMode
	prevMode ViewMode
	cursor   int

	// Round state
	grid        game.GridSize
	theme       string
	session     *game.Session
	gen         int
	loading     bool
	loadFailed  bool
	timeLimit   int
	revealDelay time.Duration

	// Forms
	loginForm    form
	registerForm form
	prefsForm    form
	prefsTheme   int
	prefsLoading bool
	submitting   bool

	// Component state
	spinner spinner.Model
	timer   components.TimerBar

	// Banners
	showError bool
	errorMsg  string
	infoMsg   string

	// Dimensions
	width  int
	height int

	useUnicode bool
}

// NewModel creates the game screen. The first round starts once the
// player's preferences are known.
func NewModel(svc Services, opts Options) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = spinnerStyle

	grid := opts.Grid
	if grid.Validate() != nil {
		grid = game.GridSize{Rows: 4, Cols: 4}
	}
	limit := opts.TimeLimit
	if limit <= 0 {
		limit = DefaultTimeLimit
	}
	delay := opts.RevealDelay
	if delay <= 0 {
		delay = DefaultRevealDelay
	}
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	prefs := preferences.Defaults()
	if svc.Prefs != nil {
		prefs = svc.Prefs.Current()
	}

	return Model{
		svc:          svc,
		log:          opts.Logger,
		ctx:          ctx,
		rng:          opts.Rand,
		prefs:        prefs,
		scores:       leaderboard.NewBoard(),
		viewMode:     ViewBoard,
		grid:         grid,
		theme:        prefs.API,
		timeLimit:    limit,
		revealDelay:  delay,
		loginForm:    newLoginForm(),
		registerForm: newRegisterForm(),
		prefsForm:    newPreferencesForm(),
		spinner:      s,
		timer:        components.NewTimerBar(limit),
		width:        80,
		height:       24,
		useUnicode:   opts.UseUnicode,
	}
}

// Init loads preferences and the leaderboard.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		loadPreferencesCmd(m.ctx, m.svc.Prefs),
		fetchLeaderboardCmd(m.ctx, m.svc.Scores),
	)
}

// newRound discards the current board and requests faces for a fresh one.
// Bumping the generation drops every tick and match check still in flight.
func (m *Model) newRound() tea.Cmd {
	m.gen++
	m.session = nil
	m.loading = true
	m.loadFailed = false
	m.cursor = 0
	m.infoMsg = ""
	m.log.Info(m.ctx, "starting round", "grid", m.grid.String(), "theme", m.theme, "generation", m.gen)
	return tea.Batch(
		m.spinner.Tick,
		loadImagesCmd(m.ctx, m.svc.Images, m.gen, m.theme, m.grid.Pairs()),
	)
}

// MoveCursor moves the board cursor, wrapping at the edges.
func (m *Model) MoveCursor(dRow, dCol int) {
	rows, cols := m.grid.Rows, m.grid.Cols
	if m.session == nil || rows == 0 || cols == 0 {
		return
	}
	row := (m.cursor/cols + dRow + rows) % rows
	col := (m.cursor%cols + dCol + cols) % cols
	m.cursor = row*cols + col
}

// nextGrid selects the preset after the current grid.
func (m *Model) nextGrid() {
	for i, p := range game.Presets {
		if p == m.grid {
			m.grid = game.Presets[(i+1)%len(game.Presets)]
			return
		}
	}
	m.grid = game.Presets[0]
}

// nextTheme cycles the theme used by the next round.
func (m *Model) nextTheme() {
	for i, t := range preferences.Themes {
		if t == m.theme {
			m.theme = preferences.Themes[(i+1)%len(preferences.Themes)]
			return
		}
	}
	m.theme = preferences.Themes[0]
}

func (m *Model) setError(msg string) {
	m.showError = true
	m.errorMsg = msg
}

func (m *Model) clearBanners() {
	m.showError = false
	m.errorMsg = ""
	m.infoMsg = ""
}

// GetViewMode returns the current view mode
func (m Model) GetViewMode() ViewMode {
	return m.viewMode
}

// Session returns the running round, nil while images load.
func (m Model) Session() *game.Session {
	return m.session
}

// Generation identifies the current round.
func (m Model) Generation() int {
	return m.gen
}

// Grid returns the selected grid size.
func (m Model) Grid() game.GridSize {
	return m.grid
}

// Theme returns the theme used for the next round.
func (m Model) Theme() string {
	return m.theme
}

// Cursor returns the index of the highlighted card.
func (m Model) Cursor() int {
	return m.cursor
}

// Preferences returns the preferences the board is drawn with.
func (m Model) Preferences() preferences.Preferences {
	return m.prefs
}

// Scores returns the top scores in display order.
func (m Model) Scores() []leaderboard.Entry {
	return m.scores.Entries()
}

// IsLoading reports whether images for a new round are being fetched.
func (m Model) IsLoading() bool {
	return m.loading
}

// LoadFailed reports whether the last round could not be built.
func (m Model) LoadFailed() bool {
	return m.loadFailed
}

// ErrorMessage returns the error banner text, empty when hidden.
func (m Model) ErrorMessage() string {
	if !m.showError {
		return ""
	}
	return m.errorMsg
}

// InfoMessage returns the info banner text.
func (m Model) InfoMessage() string {
	return m.infoMsg
}
