package play

import (
	"github.com/charmbracelet/lipgloss"
)

const (
	cardWidth  = 12
	cardHeight = 3
)

var (
	// Colors
	primaryColor    = lipgloss.Color("99")  // Purple
	mutedColor      = lipgloss.Color("245") // Gray
	accentColor     = lipgloss.Color("212") // Pink
	backgroundColor = lipgloss.Color("235") // Dark gray
	flippedColor    = lipgloss.Color("252")

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor).
			PaddingRight(2)

	headerStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(mutedColor).
			MarginBottom(1)

	footerStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			BorderStyle(lipgloss.NormalBorder()).
			BorderTop(true).
			BorderForeground(mutedColor).
			MarginTop(1)

	// Card faces. Hidden and matched backgrounds come from the player's preferences.
	cardStyle = lipgloss.NewStyle().
			Width(cardWidth).
			Height(cardHeight).
			Align(lipgloss.Center, lipgloss.Center).
			BorderStyle(lipgloss.RoundedBorder())

	cursorBorderColor = accentColor

	cardFlippedStyle = cardStyle.
				Foreground(lipgloss.Color("0")).
				Background(flippedColor).
				Bold(true)

	placeholderStyle = lipgloss.NewStyle().
				Foreground(mutedColor).
				Italic(true).
				Padding(2, 4)

	sidePanelStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(mutedColor).
			Padding(0, 1).
			MarginLeft(2)

	detailStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	// Forms
	formBoxStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(primaryColor).
			Padding(1, 3)

	formTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor).
			MarginBottom(1)

	formLabelStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			Width(16)

	formLabelFocusedStyle = formLabelStyle.
				Foreground(accentColor).
				Bold(true)

	swatchStyle = lipgloss.NewStyle().
			Width(4).
			MarginLeft(1)

	// Help overlay styles
	helpTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor).
			MarginBottom(1)

	helpKeyStyle = lipgloss.NewStyle().
			Foreground(accentColor).
			Bold(true).
			Width(14)

	helpDescStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	helpBoxStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(primaryColor).
			Padding(1, 3).
			Background(backgroundColor)

	spinnerStyle = lipgloss.NewStyle().
			Foreground(primaryColor)
)

// hiddenCardStyle draws a face-down card in the player's closed color.
func hiddenCardStyle(color string) lipgloss.Style {
	c := lipgloss.Color(color)
	return cardStyle.Background(c).BorderForeground(c).Foreground(mutedColor)
}

// matchedCardStyle draws a matched card in the player's found color.
func matchedCardStyle(color string) lipgloss.Style {
	c := lipgloss.Color(color)
	return cardStyle.Background(c).BorderForeground(c).Foreground(lipgloss.Color("0")).Bold(true)
}
