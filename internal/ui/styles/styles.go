package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Colors of the active theme; set by ApplyTheme
var (
	Primary    lipgloss.Color
	Secondary  lipgloss.Color
	Accent     lipgloss.Color
	Error      lipgloss.Color
	Muted      lipgloss.Color
	Background lipgloss.Color
	Foreground lipgloss.Color
	Border     lipgloss.Color
)

// Styles of the active theme; set by ApplyTheme
var (
	StatusBar lipgloss.Style
	FooterBar lipgloss.Style

	Help    lipgloss.Style
	HelpKey lipgloss.Style

	MutedText     lipgloss.Style
	SecondaryText lipgloss.Style
	ErrorStyle    lipgloss.Style

	ListItem         lipgloss.Style
	ListItemSelected lipgloss.Style
	ListItemCurrent  lipgloss.Style

	// Reader
	ReaderHeader    lipgloss.Style
	ReaderProgress  lipgloss.Style
	Card            lipgloss.Style
	SectionTitle    lipgloss.Style
	VerseText       lipgloss.Style
	Transliteration lipgloss.Style
	Translation     lipgloss.Style
	Author          lipgloss.Style

	// Prev/next controls
	Button         lipgloss.Style
	ButtonDisabled lipgloss.Style

	// Hero
	HeroTitle    lipgloss.Style
	HeroSubtitle lipgloss.Style
	HeroPanel    lipgloss.Style

	// Drawer and dialogs
	Drawer      lipgloss.Style
	Dialog      lipgloss.Style
	DialogTitle lipgloss.Style
)

// TruncateText shortens s to at most width cells, adding an ellipsis
func TruncateText(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return ansi.Truncate(s, width, "…")
}
