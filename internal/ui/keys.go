package ui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the global key bindings. View-local keys (scrolling,
// prev/next, grid movement) are handled by the views themselves.
type KeyMap struct {
	Quit      key.Binding
	ForceQuit key.Binding
	Escape    key.Binding
	Help      key.Binding
	Menu      key.Binding
	Music     key.Binding
	Theme     key.Binding

	// Shown in help only
	PrevVerse key.Binding
	NextVerse key.Binding
	Chapters  key.Binding
	Scroll    key.Binding
}

// DefaultKeyMap returns the default vim-like key bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "back/quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("^c", "quit"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("Esc", "close"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Menu: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "menu"),
		),
		Music: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "music on/off"),
		),
		Theme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "cycle theme"),
		),
		PrevVerse: key.NewBinding(
			key.WithKeys("h", "left", "p"),
			key.WithHelp("h/←/p", "previous verse"),
		),
		NextVerse: key.NewBinding(
			key.WithKeys("l", "right", "n"),
			key.WithHelp("l/→/n", "next verse"),
		),
		Chapters: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "chapter grid"),
		),
		Scroll: key.NewBinding(
			key.WithKeys("j", "k", "down", "up"),
			key.WithHelp("j/k", "scroll"),
		),
	}
}

// helpGroups returns the bindings shown in the help dialog, by section
func (k KeyMap) helpGroups() [][]key.Binding {
	return [][]key.Binding{
		{k.Scroll, k.PrevVerse, k.NextVerse, k.Chapters},
		{k.Menu, k.Music, k.Theme},
		{k.Help, k.Escape, k.Quit, k.ForceQuit},
	}
}
