package play

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/alexisbeaulieu97/memoria/internal/game"
	"github.com/alexisbeaulieu97/memoria/internal/preferences"
	"github.com/alexisbeaulieu97/memoria/internal/tui/components"
)

// Board area texts.
const (
	LoadingMessage   = "Loading images..."
	LoadErrorMessage = "Error loading images. Please try again."
)

// View renders the current model state
func (m Model) View() string {
	switch m.viewMode {
	case ViewBoard:
		return m.renderBoardView()
	case ViewLogin:
		return m.renderFormView("Login", m.loginForm.view(), "enter: submit  •  tab: next field  •  ctrl+r: register  •  esc: back")
	case ViewRegister:
		return m.renderFormView("Register", m.registerForm.view(), "enter: submit  •  tab: next field  •  ctrl+l: login  •  esc: back")
	case ViewPreferences:
		return m.renderFormView("Preferences", m.renderPreferencesForm(), "enter: save  •  tab: next field  •  ←/→: theme  •  esc: back")
	case ViewHelp:
		return m.renderHelpView()
	default:
		return m.renderBoardView()
	}
}

func (m Model) renderBoardView() string {
	var content strings.Builder

	content.WriteString(m.renderHeader())
	content.WriteString("\n")
	content.WriteString(m.renderBanners())

	main := lipgloss.JoinVertical(lipgloss.Left, m.renderBoard(), m.renderStatus())
	scores := sidePanelStyle.Render(components.NewScoreList(m.scores.Entries(), scoresShown).View())
	content.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, main, scores))
	content.WriteString("\n")

	content.WriteString(m.renderFooter())
	return content.String()
}

func (m Model) renderHeader() string {
	title := titleStyle.Render("Memoria")
	account := "guest"
	if m.svc.Auth != nil && m.svc.Auth.IsAuthenticated() {
		account = "logged in"
	}
	info := detailStyle.Render(fmt.Sprintf("grid %s  •  theme %s  •  %s", m.grid, m.theme, account))
	return headerStyle.Render(lipgloss.JoinHorizontal(lipgloss.Left, title, info))
}

func (m Model) renderBanners() string {
	var b strings.Builder
	if m.showError && m.errorMsg != "" {
		b.WriteString(components.ErrorBanner(m.errorMsg).View())
		b.WriteString("\n")
	}
	if m.infoMsg != "" {
		b.WriteString(components.SuccessBanner(m.infoMsg).View())
		b.WriteString("\n")
	}
	return b.String()
}

// renderBoard draws the cards row by row, or the loading and error texts.
func (m Model) renderBoard() string {
	if m.loadFailed {
		return placeholderStyle.Render(LoadErrorMessage)
	}
	// No round yet means the first fetch has not finished or not started.
	if m.loading || m.session == nil {
		return placeholderStyle.Render(m.spinner.View() + " " + LoadingMessage)
	}

	grid := m.session.Grid()
	rows := make([]string, 0, grid.Rows)
	for r := 0; r < grid.Rows; r++ {
		cells := make([]string, 0, grid.Cols)
		for c := 0; c < grid.Cols; c++ {
			cells = append(cells, m.renderCard(r*grid.Cols+c))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m Model) renderCard(i int) string {
	card, state := m.session.Card(i)

	var style lipgloss.Style
	var face string
	switch state {
	case game.Matched:
		style = matchedCardStyle(m.prefs.ColorFound)
		face = truncate(card.Name, cardWidth-2)
	case game.Flipped:
		style = cardFlippedStyle
		face = truncate(card.Name, cardWidth-2)
	default:
		style = hiddenCardStyle(m.prefs.ColorClosed)
		face = "?"
		if m.useUnicode {
			face = "◆"
		}
	}
	if i == m.cursor {
		style = style.BorderForeground(cursorBorderColor)
	}
	return style.Render(face)
}

// renderStatus shows the timer, the pairs counter and the face under the cursor.
func (m Model) renderStatus() string {
	if m.session == nil {
		return ""
	}
	lines := []string{
		m.timer.View(m.session.Elapsed()),
		components.NewSummary(components.SummaryData{
			Outcome:      m.session.Outcome(),
			Elapsed:      m.session.Elapsed(),
			MatchedPairs: m.session.MatchedPairs(),
			TotalPairs:   m.session.TotalPairs(),
		}).View(),
	}
	if card, state := m.session.Card(m.cursor); state != game.Hidden {
		lines = append(lines, detailStyle.Render(fmt.Sprintf("%s  %s", card.Name, card.Image)))
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderFooter() string {
	hints := []string{
		"arrows: move",
		"enter: flip",
		"n: new game",
		"g: grid",
		"t: theme",
		"p: preferences",
		"?: help",
	}
	if m.showError || m.infoMsg != "" {
		hints = append(hints, "x: dismiss")
	}
	hints = append(hints, "q: quit")
	return footerStyle.Render(strings.Join(hints, "  •  "))
}

func (m Model) renderFormView(title, body, hints string) string {
	var content strings.Builder
	content.WriteString(m.renderBanners())

	inner := lipgloss.JoinVertical(lipgloss.Left, formTitleStyle.Render(title), body)
	if m.submitting || m.prefsLoading {
		inner = lipgloss.JoinVertical(lipgloss.Left, inner, "", m.spinner.View()+" Please wait...")
	}
	content.WriteString(formBoxStyle.Render(inner))
	content.WriteString("\n")
	content.WriteString(footerStyle.Render(hints))
	return content.String()
}

func (m Model) renderPreferencesForm() string {
	label := formLabelStyle.Render("Theme")
	if m.prefsForm.focus < 0 {
		label = formLabelFocusedStyle.Render("Theme")
	}
	theme := lipgloss.JoinHorizontal(lipgloss.Left, label, fmt.Sprintf("< %s >", preferences.Themes[m.prefsTheme]))

	found := m.prefsForm.value(prefsColorFound)
	closed := m.prefsForm.value(prefsColorClosed)
	swatches := lipgloss.JoinHorizontal(lipgloss.Left,
		formLabelStyle.Render("Preview"),
		swatchStyle.Background(lipgloss.Color(found)).Render(" "),
		swatchStyle.Background(lipgloss.Color(closed)).Render(" "),
	)
	return lipgloss.JoinVertical(lipgloss.Left, theme, m.prefsForm.view(), swatches)
}

func (m Model) renderHelpView() string {
	bindings := [][2]string{
		{"arrows/hjkl", "Move between cards"},
		{"enter/space", "Flip the highlighted card"},
		{"n", "Start a new game"},
		{"g", "Next grid size and new game"},
		{"t", "Next theme and new game"},
		{"a", "Login"},
		{"u", "Register"},
		{"o", "Logout"},
		{"p", "Edit preferences"},
		{"x/esc", "Dismiss messages"},
		{"?", "Toggle help"},
		{"q/ctrl+c", "Quit"},
	}
	lines := []string{helpTitleStyle.Render("Keyboard shortcuts")}
	for _, b := range bindings {
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Left, helpKeyStyle.Render(b[0]), helpDescStyle.Render(b[1])))
	}
	return helpBoxStyle.Render(strings.Join(lines, "\n"))
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "…"
}
