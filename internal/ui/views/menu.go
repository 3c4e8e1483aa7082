package views

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/justyntemme/gita-t/internal/ui/styles"
	"github.com/justyntemme/gita-t/internal/ui/transition"
)

// Icon identifies the glyph drawn next to a menu entry
type Icon int

const (
	IconHome Icon = iota
	IconBook
	IconUsers
	IconScroll
)

// Glyph returns the terminal rendering of the icon
func (i Icon) Glyph() string {
	switch i {
	case IconHome:
		return "⌂"
	case IconBook:
		return "❦"
	case IconUsers:
		return "☺"
	case IconScroll:
		return "☰"
	default:
		return "•"
	}
}

// Target is where a menu entry leads
type Target int

const (
	TargetNone Target = iota
	TargetHero
	TargetReader
	TargetChapters
)

// MenuItem is one entry of the navigation drawer
type MenuItem struct {
	Label  string
	Target Target
	Icon   Icon
}

// MenuItems is the fixed navigation menu. Characters has no screen of its
// own; choosing it only closes the drawer.
var MenuItems = []MenuItem{
	{Label: "Home", Target: TargetHero, Icon: IconHome},
	{Label: "Bhagavad Gita", Target: TargetReader, Icon: IconBook},
	{Label: "Characters", Target: TargetNone, Icon: IconUsers},
	{Label: "Chapters", Target: TargetChapters, Icon: IconScroll},
}

// MenuSelectedMsg is sent when a drawer entry is chosen
type MenuSelectedMsg struct {
	Item MenuItem
}

const drawerWidth = 30

// Drawer is the slide-out navigation menu
type Drawer struct {
	items  []MenuItem
	cursor int
	slide  transition.Transition
}

// NewDrawer creates a closed drawer over items
func NewDrawer(items []MenuItem) *Drawer {
	return &Drawer{
		items: items,
		slide: transition.New("drawer"),
	}
}

// Open reports whether the drawer is open or opening
func (d *Drawer) Open() bool {
	return d.slide.Open()
}

// Rendered reports whether any part of the drawer is on screen
func (d *Drawer) Rendered() bool {
	return d.slide.Rendered()
}

// Phase returns the slide phase
func (d *Drawer) Phase() transition.Phase {
	return d.slide.Phase()
}

// Show opens the drawer
func (d *Drawer) Show() tea.Cmd {
	var cmd tea.Cmd
	d.slide, cmd = d.slide.Show()
	return cmd
}

// Hide closes the drawer
func (d *Drawer) Hide() tea.Cmd {
	var cmd tea.Cmd
	d.slide, cmd = d.slide.Hide()
	return cmd
}

// Update handles slide ticks and, while open, menu keys
func (d *Drawer) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case transition.TickMsg:
		var cmd tea.Cmd
		d.slide, cmd = d.slide.Update(msg)
		return cmd

	case tea.KeyMsg:
		if !d.Open() {
			return nil
		}
		switch msg.String() {
		case "j", "down":
			if d.cursor < len(d.items)-1 {
				d.cursor++
			}
		case "k", "up":
			if d.cursor > 0 {
				d.cursor--
			}
		case "enter":
			item := d.items[d.cursor]
			return tea.Batch(d.Hide(), func() tea.Msg {
				return MenuSelectedMsg{Item: item}
			})
		case "esc", "m":
			return d.Hide()
		}
	}
	return nil
}

// Width returns the number of columns the drawer currently occupies
func (d *Drawer) Width(maxWidth int) int {
	w := min(drawerWidth, maxWidth)
	return int(float64(w) * d.slide.Progress())
}

// View renders the drawer panel at its current slide width
func (d *Drawer) View(height int) string {
	width := d.Width(drawerWidth)
	if width <= 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(styles.DialogTitle.Render("Menu") + "\n")
	for i, item := range d.items {
		line := item.Icon.Glyph() + "  " + item.Label
		if i == d.cursor {
			b.WriteString(styles.ListItemSelected.Render(line) + "\n")
		} else {
			b.WriteString(styles.ListItem.Render(line) + "\n")
		}
	}
	b.WriteString("\n" + styles.Help.Render("enter open · esc close"))

	panel := styles.Drawer.
		Width(drawerWidth).
		Height(max(0, height-2)).
		Render(b.String())

	// Slide in from the right by showing the panel's leftmost columns.
	lines := strings.Split(panel, "\n")
	for i, line := range lines {
		lines[i] = ansi.Truncate(line, width, "")
	}
	return lipgloss.NewStyle().Width(width).Render(strings.Join(lines, "\n"))
}
