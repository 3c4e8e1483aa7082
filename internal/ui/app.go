package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/justyntemme/gita-t/internal/api"
	"github.com/justyntemme/gita-t/internal/config"
	"github.com/justyntemme/gita-t/internal/logging"
	"github.com/justyntemme/gita-t/internal/ui/audio"
	"github.com/justyntemme/gita-t/internal/ui/styles"
	"github.com/justyntemme/gita-t/internal/ui/terminal"
	"github.com/justyntemme/gita-t/internal/ui/views"
)

// App is the main application model
type App struct {
	config *config.Config
	keys   KeyMap

	// Current view state
	currentView views.ViewType

	// Window dimensions
	width  int
	height int

	// View models
	heroView   *views.HeroView
	readerView *views.ReaderView
	drawer     *views.Drawer
	player     *audio.Player

	// Error/status message
	err      error
	showHelp bool
}

// NewApp creates a new application instance
func NewApp(cfg *config.Config, client *api.Client, termMode terminal.TermImageMode) *App {
	return newApp(cfg, client, client, termMode,
		audio.NewPlayer(cfg.MusicPlayer, cfg.MusicURL))
}

func newApp(cfg *config.Config, scripture views.ScriptureClient, images views.ImageFetcher,
	termMode terminal.TermImageMode, player *audio.Player) *App {
	styles.SetCurrentTheme(cfg.Theme)

	return &App{
		config:      cfg,
		keys:        DefaultKeyMap(),
		currentView: views.ViewHero,
		width:       80,
		height:      24,
		heroView:    views.NewHeroView(images, cfg.HeroImageURL, termMode),
		readerView:  views.NewReaderView(scripture, cfg.TranslationLanguage),
		drawer:      views.NewDrawer(views.MenuItems),
		player:      player,
	}
}

// Init implements tea.Model
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		a.getCurrentView().Init(),
		tea.SetWindowTitle("gita-t"),
	)
}

// Update implements tea.Model
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		// Propagate to all views; the status bar takes one row
		a.heroView.SetSize(msg.Width, max(1, msg.Height-1))
		a.readerView.SetSize(msg.Width, max(1, msg.Height-1))
		return a, nil

	case tea.KeyMsg:
		return a.handleKeyMsg(msg)

	case views.MenuSelectedMsg:
		return a.handleMenuSelected(msg)

	case views.ErrorMsg:
		a.err = msg.Err
		return a, nil

	case views.ClearErrorMsg:
		a.err = nil
		return a, nil

	case views.SwitchViewMsg:
		return a.switchView(msg.View)
	}

	// Drawer slide ticks share the transition tick type with the reader.
	drawerCmd := a.drawer.Update(msg)
	_, viewCmd := a.getCurrentView().Update(msg)
	return a, tea.Batch(drawerCmd, viewCmd)
}

// handleKeyMsg applies global keys, then routes to the focused component
func (a *App) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, a.keys.ForceQuit) {
		return a, a.quit()
	}

	if a.showHelp {
		if key.Matches(msg, a.keys.Help, a.keys.Escape, a.keys.Quit) {
			a.showHelp = false
		}
		return a, nil
	}

	// The drawer has focus while open.
	if a.drawer.Open() {
		return a, a.drawer.Update(msg)
	}

	// The chapter grid keeps its own keys, including q and esc.
	if a.currentView == views.ViewReader && a.readerView.GridOpen() {
		_, cmd := a.readerView.Update(msg)
		return a, cmd
	}

	switch {
	case key.Matches(msg, a.keys.Quit):
		// In the reader, go back home instead of quitting
		if a.currentView == views.ViewReader {
			return a.switchView(views.ViewHero)
		}
		return a, a.quit()

	case key.Matches(msg, a.keys.Escape):
		if a.currentView == views.ViewReader {
			return a.switchView(views.ViewHero)
		}
		return a, nil

	case key.Matches(msg, a.keys.Help):
		a.showHelp = true
		return a, nil

	case key.Matches(msg, a.keys.Menu):
		return a, a.drawer.Show()

	case key.Matches(msg, a.keys.Music):
		if err := a.player.Toggle(); err != nil {
			logging.Warn("music player failed", "error", err)
			return a, views.SendError(err)
		}
		// A working toggle supersedes an earlier player error.
		if a.err != nil {
			return a, views.ClearError()
		}
		return a, nil

	case key.Matches(msg, a.keys.Theme):
		a.cycleTheme()
		return a, nil
	}

	_, cmd := a.getCurrentView().Update(msg)
	return a, cmd
}

// handleMenuSelected navigates to the chosen drawer entry
func (a *App) handleMenuSelected(msg views.MenuSelectedMsg) (tea.Model, tea.Cmd) {
	switch msg.Item.Target {
	case views.TargetHero:
		if a.currentView != views.ViewHero {
			return a.switchView(views.ViewHero)
		}
	case views.TargetReader:
		if a.currentView != views.ViewReader {
			return a.switchView(views.ViewReader)
		}
	case views.TargetChapters:
		if a.currentView != views.ViewReader {
			_, cmd := a.switchView(views.ViewReader)
			return a, tea.Batch(cmd, a.readerView.OpenChapters())
		}
		return a, a.readerView.OpenChapters()
	}
	return a, nil
}

// cycleTheme switches to the next theme for this session
func (a *App) cycleTheme() {
	a.config.Theme = styles.NextTheme()
	a.readerView.SetSize(a.width, max(1, a.height-1))
	logging.Debug("theme changed", "theme", a.config.Theme)
}

// quit stops the music and exits
func (a *App) quit() tea.Cmd {
	a.readerView.Unmount()
	a.heroView.Unmount()
	if err := a.player.Stop(); err != nil {
		logging.Warn("stopping music player", "error", err)
	}
	return tea.Quit
}

// View implements tea.Model
func (a *App) View() string {
	if a.showHelp {
		return a.renderHelp()
	}

	content := a.getCurrentView().View()

	// The drawer covers the right edge of the content.
	if a.drawer.Rendered() {
		dw := a.drawer.Width(a.width)
		avail := max(0, a.width-dw)
		lines := strings.Split(content, "\n")
		for i, line := range lines {
			lines[i] = ansi.Truncate(line, avail, "")
		}
		content = lipgloss.JoinHorizontal(lipgloss.Top,
			lipgloss.NewStyle().Width(avail).Render(strings.Join(lines, "\n")),
			a.drawer.View(a.height-1),
		)
	}

	return lipgloss.JoinVertical(lipgloss.Left, content, a.renderStatusBar())
}

// renderStatusBar shows the current screen, music state and any error
func (a *App) renderStatusBar() string {
	music := "♪ off"
	if a.player.Playing() {
		music = "♪ on"
	}
	left := a.currentView.String() + " · " + music + " · " + styles.CurrentTheme().Name
	if a.err != nil {
		left += "  " + styles.ErrorStyle.Render("Error: "+a.err.Error())
	}
	right := styles.HelpKey.Render("?") + styles.Help.Render(" help")

	gap := max(1, a.width-lipgloss.Width(left)-lipgloss.Width(right)-2)
	return styles.StatusBar.Width(a.width).Render(left + strings.Repeat(" ", gap) + right)
}

// switchView changes the current view and initializes it
func (a *App) switchView(view views.ViewType) (*App, tea.Cmd) {
	if view != a.currentView {
		switch a.currentView {
		case views.ViewReader:
			a.readerView.Unmount()
		case views.ViewHero:
			a.heroView.Unmount()
		}
	}

	a.currentView = view
	a.err = nil

	return a, a.getCurrentView().Init()
}

// getCurrentView returns the current view model
func (a *App) getCurrentView() views.View {
	switch a.currentView {
	case views.ViewReader:
		return a.readerView
	default:
		return a.heroView
	}
}

// renderHelp renders the help overlay
func (a *App) renderHelp() string {
	titles := []string{"Reader", "General", "Application"}

	var b strings.Builder
	b.WriteString(styles.DialogTitle.Render("Keyboard Shortcuts") + "\n")
	for i, group := range a.keys.helpGroups() {
		b.WriteString("\n" + styles.HelpKey.Render(titles[i]) + "\n")
		for _, binding := range group {
			h := binding.Help()
			b.WriteString("  " + lipgloss.NewStyle().Width(8).Render(h.Key) + h.Desc + "\n")
		}
	}

	b.WriteString("\n" + styles.MutedText.Render("Themes: "+strings.Join(styles.GetThemeNames(), ", ")))

	help := styles.Dialog.Width(min(60, max(30, a.width-4))).Render(strings.TrimRight(b.String(), "\n"))

	// Center the help dialog
	return lipgloss.Place(
		a.width,
		a.height,
		lipgloss.Center,
		lipgloss.Center,
		help,
	)
}
