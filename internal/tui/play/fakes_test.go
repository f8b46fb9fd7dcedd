package play

import (
	"context"
	"fmt"
	"math/rand/v2"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/memoria/internal/auth"
	"github.com/alexisbeaulieu97/memoria/internal/game"
	"github.com/alexisbeaulieu97/memoria/internal/leaderboard"
	"github.com/alexisbeaulieu97/memoria/internal/preferences"
)

type fakeImages struct {
	err    error
	themes []string
}

func (f *fakeImages) Images(_ context.Context, theme string, count int) ([]game.CardDescriptor, error) {
	f.themes = append(f.themes, theme)
	if f.err != nil {
		return nil, f.err
	}
	cards := make([]game.CardDescriptor, count)
	for i := range cards {
		cards[i] = game.CardDescriptor{ID: i + 1, Name: fmt.Sprintf("Card %d", i+1), Image: fmt.Sprintf("https://img.test/%d.png", i+1)}
	}
	return cards, nil
}

type fakeScores struct {
	entries  []leaderboard.Entry
	fetchErr error
	saveErr  error
	saved    []int
}

func (f *fakeScores) Fetch(context.Context) ([]leaderboard.Entry, error) {
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	return f.entries, nil
}

func (f *fakeScores) SaveScore(_ context.Context, elapsed int) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saved = append(f.saved, elapsed)
	return nil
}

type fakePrefs struct {
	prefs      preferences.Preferences
	email      string
	emailErr   error
	saveOK     bool
	saveErr    error
	saved      []preferences.Preferences
	emails     []string
	remembered []preferences.Preferences
}

func (f *fakePrefs) Get(context.Context) preferences.Preferences { return f.prefs }

func (f *fakePrefs) Current() preferences.Preferences { return f.prefs }

func (f *fakePrefs) Save(_ context.Context, p preferences.Preferences) (bool, error) {
	if f.saveErr != nil {
		return false, f.saveErr
	}
	f.saved = append(f.saved, p)
	return f.saveOK, nil
}

func (f *fakePrefs) Remember(p preferences.Preferences) error {
	f.remembered = append(f.remembered, p)
	return nil
}

func (f *fakePrefs) Email(context.Context) (string, error) { return f.email, f.emailErr }

func (f *fakePrefs) UpdateEmail(_ context.Context, email string) error {
	f.emails = append(f.emails, email)
	return nil
}

type fakeAuth struct {
	authed      bool
	loginErr    error
	registerErr error
	registered  []auth.Registration
}

func (f *fakeAuth) Register(_ context.Context, reg auth.Registration) error {
	f.registered = append(f.registered, reg)
	return f.registerErr
}

func (f *fakeAuth) Login(_ context.Context, creds auth.Credentials) (auth.LoginResult, error) {
	if f.loginErr != nil {
		return auth.LoginResult{}, f.loginErr
	}
	f.authed = true
	return auth.LoginResult{Status: 200, Token: "tok-" + creds.Username}, nil
}

func (f *fakeAuth) Logout(context.Context) error {
	f.authed = false
	return nil
}

func (f *fakeAuth) IsAuthenticated() bool { return f.authed }

type fixture struct {
	images *fakeImages
	scores *fakeScores
	prefs  *fakePrefs
	auth   *fakeAuth
}

func newFixture() *fixture {
	return &fixture{
		images: &fakeImages{},
		scores: &fakeScores{},
		prefs:  &fakePrefs{prefs: preferences.Defaults(), saveOK: true},
		auth:   &fakeAuth{},
	}
}

func (f *fixture) model(grid game.GridSize, limit int) Model {
	return NewModel(
		Services{Images: f.images, Scores: f.scores, Prefs: f.prefs, Auth: f.auth},
		Options{Grid: grid, TimeLimit: limit, Rand: rand.New(rand.NewPCG(7, 11))},
	)
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	require.True(t, ok)
	return model, cmd
}

// collect runs cmd and every command batched inside it. It must not be used
// on commands that wrap tea.Tick.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collect(c)...)
		}
		return out
	}
	if msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}

func find[T tea.Msg](t *testing.T, msgs []tea.Msg) T {
	t.Helper()
	for _, msg := range msgs {
		if typed, ok := msg.(T); ok {
			return typed
		}
	}
	var zero T
	require.Failf(t, "message not found", "%T not in %v", zero, msgs)
	return zero
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "ctrl+r":
		return tea.KeyMsg{Type: tea.KeyCtrlR}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func typeText(t *testing.T, m Model, text string) Model {
	t.Helper()
	for _, r := range text {
		m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

// started returns a model with a loaded board.
func started(t *testing.T, f *fixture, grid game.GridSize, limit int) Model {
	t.Helper()
	m := f.model(grid, limit)
	m, cmd := update(t, m, PreferencesLoadedMsg{Prefs: f.prefs.prefs})
	require.NotNil(t, cmd)
	require.True(t, m.IsLoading())

	cards, err := f.images.Images(context.Background(), m.Theme(), grid.Pairs())
	require.NoError(t, err)
	m, cmd = update(t, m, ImagesLoadedMsg{Gen: m.Generation(), Cards: cards})
	require.NotNil(t, cmd, "countdown should start")
	require.NotNil(t, m.Session())
	return m
}

// positions returns the board indices of every card with id.
func positions(m Model, id int) []int {
	var out []int
	for i, c := range m.Session().Board() {
		if c.ID == id {
			out = append(out, i)
		}
	}
	return out
}

func flipAt(t *testing.T, m Model, i int) (Model, tea.Cmd) {
	t.Helper()
	m.cursor = i
	return update(t, m, key("enter"))
}
