package ui

import (
	"context"
	"errors"
	"image"
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/justyntemme/gita-t/internal/config"
	"github.com/justyntemme/gita-t/internal/ui/audio"
	"github.com/justyntemme/gita-t/internal/ui/styles"
	"github.com/justyntemme/gita-t/internal/ui/terminal"
	"github.com/justyntemme/gita-t/internal/ui/transition"
	"github.com/justyntemme/gita-t/internal/ui/views"
	"github.com/justyntemme/gita-t/pkg/models"
)

type stubClient struct{}

func (stubClient) ListChapters(ctx context.Context) ([]models.Chapter, error) {
	return []models.Chapter{{ID: 1, ChapterNumber: 1, NameTranslated: "Arjuna", VersesCount: 2}}, nil
}

func (stubClient) GetVerse(ctx context.Context, c, v int) (*models.Verse, error) {
	return &models.Verse{ID: v, VerseNumber: v, ChapterNumber: c, Text: "verse text"}, nil
}

func (stubClient) FetchImage(ctx context.Context, url string) (image.Image, error) {
	return nil, errors.New("no images in tests")
}

type stubProcess struct{ stopped *int }

func (p stubProcess) Stop() error {
	*p.stopped++
	return nil
}

func newTestApp(t *testing.T) (*App, *int) {
	t.Helper()
	stopped := new(int)
	player := audio.NewPlayer([]string{"player"}, "http://example.com/music.mp3").
		WithLauncher(func(command []string, url string) (audio.Process, error) {
			return stubProcess{stopped: stopped}, nil
		})
	a := newApp(config.DefaultConfig(), stubClient{}, stubClient{}, terminal.TermModeNone, player)
	a.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return a, stopped
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// run executes cmd and feeds every resulting message back into the app,
// skipping animation ticks so tests stay fast
func run(a *App, cmd tea.Cmd) {
	queue := []tea.Cmd{cmd}
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}
		msg := c()
		switch msg := msg.(type) {
		case tea.BatchMsg:
			queue = append(queue, msg...)
		case tea.QuitMsg, spinner.TickMsg, transition.TickMsg:
		default:
			_, next := a.Update(msg)
			queue = append(queue, next)
		}
	}
}

func TestAppStartsOnHero(t *testing.T) {
	a, _ := newTestApp(t)
	if a.currentView != views.ViewHero {
		t.Fatalf("start view = %v", a.currentView)
	}
	if !strings.Contains(a.View(), views.HeroTitle) {
		t.Error("hero title not shown")
	}
}

func TestAppEnterOpensReaderAndQReturns(t *testing.T) {
	a, _ := newTestApp(t)

	_, cmd := a.Update(tea.KeyMsg{Type: tea.KeyEnter})
	run(a, cmd)
	if a.currentView != views.ViewReader {
		t.Fatalf("view = %v", a.currentView)
	}
	if !strings.Contains(a.View(), "Chapter 1, Verse 1") {
		t.Error("reader did not load the first verse")
	}

	_, cmd = a.Update(runes("q"))
	run(a, cmd)
	if a.currentView != views.ViewHero {
		t.Errorf("q from reader went to %v", a.currentView)
	}
}

func TestAppMenuChaptersOpensGrid(t *testing.T) {
	a, _ := newTestApp(t)

	run(a, func() tea.Msg {
		return views.MenuSelectedMsg{Item: views.MenuItems[3]}
	})
	if a.currentView != views.ViewReader {
		t.Fatalf("view = %v", a.currentView)
	}
	if !a.readerView.GridOpen() {
		t.Error("chapter grid not open")
	}
}

func TestAppMenuCharactersOnlyCloses(t *testing.T) {
	a, _ := newTestApp(t)
	_, cmd := a.Update(views.MenuSelectedMsg{Item: views.MenuItems[2]})
	if cmd != nil || a.currentView != views.ViewHero {
		t.Errorf("characters entry navigated to %v", a.currentView)
	}
}

func TestAppDrawerTakesFocus(t *testing.T) {
	a, _ := newTestApp(t)
	a.Update(runes("m"))
	if !a.drawer.Open() {
		t.Fatal("m did not open the drawer")
	}
	// q belongs to the drawer while it is open and must not quit.
	_, cmd := a.Update(runes("q"))
	for _, msg := range collectAll(cmd) {
		if _, ok := msg.(tea.QuitMsg); ok {
			t.Fatal("q quit with the drawer open")
		}
	}
}

func TestAppMusicToggleAndQuit(t *testing.T) {
	a, stopped := newTestApp(t)

	a.Update(runes("s"))
	if !a.player.Playing() {
		t.Fatal("music not playing")
	}
	if !strings.Contains(a.View(), "♪ on") {
		t.Error("status bar does not show music on")
	}

	_, cmd := a.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if *stopped != 1 {
		t.Errorf("player stopped %d times", *stopped)
	}
	found := false
	for _, msg := range collectAll(cmd) {
		if _, ok := msg.(tea.QuitMsg); ok {
			found = true
		}
	}
	if !found {
		t.Error("ctrl+c did not quit")
	}
}

func TestAppThemeCycle(t *testing.T) {
	a, _ := newTestApp(t)
	t.Cleanup(func() { styles.SetCurrentTheme(config.DefaultTheme) })

	before := a.config.Theme
	a.Update(runes("T"))
	if a.config.Theme == before || styles.CurrentTheme().Name != a.config.Theme {
		t.Errorf("theme %q -> %q (current %q)", before, a.config.Theme, styles.CurrentTheme().Name)
	}
}

func TestAppHelpOverlay(t *testing.T) {
	a, _ := newTestApp(t)
	a.Update(runes("?"))
	if !strings.Contains(a.View(), "Keyboard Shortcuts") {
		t.Fatal("help not shown")
	}
	a.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if a.showHelp {
		t.Error("esc did not close help")
	}
}

func TestAppMusicErrorClearedByNextToggle(t *testing.T) {
	player := audio.NewPlayer([]string{"player"}, "http://example.com/music.mp3").
		WithLauncher(func(command []string, url string) (audio.Process, error) {
			return nil, errors.New("no such player")
		})
	a := newApp(config.DefaultConfig(), stubClient{}, stubClient{}, terminal.TermModeNone, player)

	_, cmd := a.Update(runes("s"))
	run(a, cmd)
	if a.err == nil {
		t.Fatal("launch failure not shown")
	}

	_, cmd = a.Update(runes("s"))
	run(a, cmd)
	if a.err != nil {
		t.Errorf("error kept after music was switched off: %v", a.err)
	}
}

type recordingImages struct{ ctx context.Context }

func (r *recordingImages) FetchImage(ctx context.Context, url string) (image.Image, error) {
	r.ctx = ctx
	return nil, errors.New("offline")
}

func TestAppLeavingHeroCancelsBackdrop(t *testing.T) {
	images := &recordingImages{}
	a := newApp(config.DefaultConfig(), stubClient{}, images, terminal.TermModeKitty,
		audio.NewPlayer(nil, ""))

	// Start the download without delivering its result.
	collectAll(a.Init())
	if images.ctx == nil || images.ctx.Err() != nil {
		t.Fatal("backdrop download not running")
	}

	a.switchView(views.ViewReader)
	if images.ctx.Err() == nil {
		t.Error("switching to the reader left the download running")
	}
}

func collectAll(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collectAll(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}
