package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// BannerVariant selects the banner colors.
type BannerVariant int

const (
	BannerInfo BannerVariant = iota
	BannerSuccess
	BannerError
)

// DismissHint is appended to dismissible banners.
const DismissHint = "(x to dismiss)"

var (
	bannerBase = lipgloss.NewStyle().
			Padding(0, 2).
			MarginBottom(1)

	bannerErrorStyle = bannerBase.
				Foreground(lipgloss.Color("#FF6B6B")).
				Background(lipgloss.Color("52")).
				Bold(true).
				BorderStyle(lipgloss.ThickBorder()).
				BorderForeground(lipgloss.Color("#FF6B6B"))

	bannerSuccessStyle = bannerBase.
				Foreground(lipgloss.Color("#04B575")).
				Background(lipgloss.Color("237")).
				BorderStyle(lipgloss.NormalBorder()).
				BorderForeground(lipgloss.Color("#04B575"))

	bannerInfoStyle = bannerBase.
			Foreground(lipgloss.Color("#7D56F4")).
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("#7D56F4"))

	bannerHintStyle = lipgloss.NewStyle().Faint(true)
)

// Banner is a one-line message above the board, the terminal stand-in for
// a browser alert.
type Banner struct {
	message     string
	variant     BannerVariant
	dismissible bool
}

// NewBanner creates a banner. An empty message renders nothing.
func NewBanner(message string, variant BannerVariant) Banner {
	return Banner{message: message, variant: variant}
}

// ErrorBanner is a dismissible error banner.
func ErrorBanner(message string) Banner {
	return NewBanner(message, BannerError).Dismissible(true)
}

// SuccessBanner reports a completed action.
func SuccessBanner(message string) Banner {
	return NewBanner(message, BannerSuccess)
}

// Dismissible toggles the dismiss hint.
func (b Banner) Dismissible(on bool) Banner {
	b.dismissible = on
	return b
}

// View renders the banner.
func (b Banner) View() string {
	if strings.TrimSpace(b.message) == "" {
		return ""
	}

	content := b.message
	if b.dismissible {
		content += "  " + bannerHintStyle.Render(DismissHint)
	}
	return b.style().Render(content)
}

func (b Banner) style() lipgloss.Style {
	switch b.variant {
	case BannerError:
		return bannerErrorStyle
	case BannerSuccess:
		return bannerSuccessStyle
	default:
		return bannerInfoStyle
	}
}
