package styles

import "github.com/charmbracelet/lipgloss"

// Theme represents a color scheme for the application
type Theme struct {
	Name        string
	Description string

	// Core colors
	Primary    lipgloss.Color
	Secondary  lipgloss.Color
	Accent     lipgloss.Color
	Background lipgloss.Color
	Foreground lipgloss.Color

	// Semantic colors
	Error lipgloss.Color
	Muted lipgloss.Color

	// UI element colors
	Border        lipgloss.Color
	Selection     lipgloss.Color
	SelectionText lipgloss.Color
	CardText      lipgloss.Color
	CardBorder    lipgloss.Color
}

// Built-in themes
var (
	// SaffronTheme is the default amber palette
	SaffronTheme = Theme{
		Name:          "saffron",
		Description:   "Saffron and amber (default)",
		Primary:       lipgloss.Color("#78350F"), // amber-900
		Secondary:     lipgloss.Color("#FCD34D"), // amber-300
		Accent:        lipgloss.Color("#FDE68A"), // amber-200
		Background:    lipgloss.Color("#451A03"), // amber-950
		Foreground:    lipgloss.Color("#FEF3C7"), // amber-100
		Error:         lipgloss.Color("#DC2626"),
		Muted:         lipgloss.Color("#B45309"), // amber-700
		Border:        lipgloss.Color("#92400E"), // amber-800
		Selection:     lipgloss.Color("#FEF3C7"),
		SelectionText: lipgloss.Color("#78350F"),
		CardText:      lipgloss.Color("#FFFBEB"),
		CardBorder:    lipgloss.Color("#FCD34D"),
	}

	// DarkTheme is a neutral dark theme
	DarkTheme = Theme{
		Name:          "dark",
		Description:   "Dark theme",
		Primary:       lipgloss.Color("#7C3AED"),
		Secondary:     lipgloss.Color("#06B6D4"),
		Accent:        lipgloss.Color("#F59E0B"),
		Background:    lipgloss.Color("#1F2937"),
		Foreground:    lipgloss.Color("#F9FAFB"),
		Error:         lipgloss.Color("#EF4444"),
		Muted:         lipgloss.Color("#6B7280"),
		Border:        lipgloss.Color("#374151"),
		Selection:     lipgloss.Color("#7C3AED"),
		SelectionText: lipgloss.Color("#F9FAFB"),
		CardText:      lipgloss.Color("#F9FAFB"),
		CardBorder:    lipgloss.Color("#7C3AED"),
	}

	// LightTheme is a light color scheme
	LightTheme = Theme{
		Name:          "light",
		Description:   "Light theme",
		Primary:       lipgloss.Color("#B45309"),
		Secondary:     lipgloss.Color("#0891B2"),
		Accent:        lipgloss.Color("#92400E"),
		Background:    lipgloss.Color("#FFFFFF"),
		Foreground:    lipgloss.Color("#1F2937"),
		Error:         lipgloss.Color("#DC2626"),
		Muted:         lipgloss.Color("#9CA3AF"),
		Border:        lipgloss.Color("#E5E7EB"),
		Selection:     lipgloss.Color("#B45309"),
		SelectionText: lipgloss.Color("#FFFFFF"),
		CardText:      lipgloss.Color("#451A03"),
		CardBorder:    lipgloss.Color("#FCD34D"),
	}

	// BuiltinThemes is a list of all available built-in themes
	BuiltinThemes = []Theme{
		SaffronTheme,
		DarkTheme,
		LightTheme,
	}

	currentTheme = SaffronTheme
)

// GetTheme returns a theme by name, or the default theme if not found
func GetTheme(name string) Theme {
	for _, t := range BuiltinThemes {
		if t.Name == name {
			return t
		}
	}
	return SaffronTheme
}

// GetThemeNames returns a list of all available theme names
func GetThemeNames() []string {
	names := make([]string, len(BuiltinThemes))
	for i, t := range BuiltinThemes {
		names[i] = t.Name
	}
	return names
}

// CurrentTheme returns the currently active theme
func CurrentTheme() Theme {
	return currentTheme
}

// SetCurrentTheme sets the active theme by name
func SetCurrentTheme(name string) {
	currentTheme = GetTheme(name)
	ApplyTheme(currentTheme)
}

// NextTheme cycles to the next theme and returns its name
func NextTheme() string {
	for i, t := range BuiltinThemes {
		if t.Name == currentTheme.Name {
			next := BuiltinThemes[(i+1)%len(BuiltinThemes)]
			SetCurrentTheme(next.Name)
			return next.Name
		}
	}
	return currentTheme.Name
}

// ApplyTheme updates all global styles to use the given theme's colors
func ApplyTheme(theme Theme) {
	Primary = theme.Primary
	Secondary = theme.Secondary
	Accent = theme.Accent
	Error = theme.Error
	Muted = theme.Muted
	Background = theme.Background
	Foreground = theme.Foreground
	Border = theme.Border

	StatusBar = lipgloss.NewStyle().
		Foreground(theme.Muted).
		Padding(0, 1)

	FooterBar = lipgloss.NewStyle().
		Foreground(theme.Muted).
		BorderStyle(lipgloss.NormalBorder()).
		BorderTop(true).
		BorderForeground(theme.Border).
		Padding(0, 1)

	Help = lipgloss.NewStyle().
		Foreground(theme.Muted)

	HelpKey = lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true)

	MutedText = lipgloss.NewStyle().
		Foreground(theme.Muted)

	SecondaryText = lipgloss.NewStyle().
		Foreground(theme.Secondary)

	ErrorStyle = lipgloss.NewStyle().
		Foreground(theme.Error).
		Bold(true).
		Padding(0, 1)

	ListItem = lipgloss.NewStyle().
		Foreground(theme.Foreground).
		Padding(0, 2)

	ListItemSelected = lipgloss.NewStyle().
		Foreground(theme.SelectionText).
		Background(theme.Selection).
		Padding(0, 2).
		Bold(true)

	ListItemCurrent = lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Padding(0, 2).
		Bold(true)

	ReaderHeader = lipgloss.NewStyle().
		Foreground(theme.Foreground).
		Background(theme.Primary).
		Padding(0, 1).
		Bold(true)

	ReaderProgress = lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true)

	Card = lipgloss.NewStyle().
		Foreground(theme.CardText).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.CardBorder).
		Padding(1, 2)

	SectionTitle = lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		MarginBottom(1)

	VerseText = lipgloss.NewStyle().
		Foreground(theme.Accent).
		Bold(true).
		Align(lipgloss.Center)

	Transliteration = lipgloss.NewStyle().
		Foreground(theme.CardText).
		Italic(true).
		Align(lipgloss.Center)

	Translation = lipgloss.NewStyle().
		Foreground(theme.CardText)

	Author = lipgloss.NewStyle().
		Foreground(theme.Muted).
		Italic(true)

	Button = lipgloss.NewStyle().
		Foreground(theme.Foreground).
		Background(theme.Primary).
		Padding(0, 2).
		Bold(true)

	ButtonDisabled = lipgloss.NewStyle().
		Foreground(theme.Muted).
		Padding(0, 2).
		Faint(true)

	HeroTitle = lipgloss.NewStyle().
		Foreground(theme.Foreground).
		Bold(true).
		Align(lipgloss.Center)

	HeroSubtitle = lipgloss.NewStyle().
		Foreground(theme.Accent).
		Align(lipgloss.Center)

	HeroPanel = lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Secondary).
		Padding(1, 4)

	Drawer = lipgloss.NewStyle().
		Foreground(theme.Foreground).
		Border(lipgloss.NormalBorder(), false, false, false, true).
		BorderForeground(theme.Secondary).
		Padding(1, 2)

	Dialog = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Primary).
		Padding(1, 2)

	DialogTitle = lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true).
		MarginBottom(1)
}

func init() {
	ApplyTheme(SaffronTheme)
}
