package views

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/justyntemme/gita-t/internal/logging"
	"github.com/justyntemme/gita-t/internal/reader"
	"github.com/justyntemme/gita-t/internal/ui/styles"
	"github.com/justyntemme/gita-t/internal/ui/transition"
	"github.com/justyntemme/gita-t/pkg/models"
)

// ReaderView displays one verse at a time with prev/next navigation and a
// chapter grid
type ReaderView struct {
	client   ScriptureClient
	language string

	// Navigation state; replaced on every mount
	ctrl *reader.Controller

	// cancel aborts the outstanding fetch
	cancel context.CancelFunc

	// Chapter grid
	grid         transition.Transition
	gridCursor   int
	openGridNext bool // open the grid once chapters arrive

	// Verse card
	card     transition.Transition
	spinner  spinner.Model
	viewport viewport.Model

	// Dimensions
	width  int
	height int
}

// NewReaderView creates a new reader view. language filters translations;
// empty shows all of them.
func NewReaderView(client ScriptureClient, language string) *ReaderView {
	sp := spinner.New(spinner.WithSpinner(spinner.Dot))
	sp.Style = styles.SecondaryText

	return &ReaderView{
		client:   client,
		language: language,
		ctrl:     reader.New(),
		grid:     transition.New("chapter-grid"),
		card:     transition.New("verse-card"),
		spinner:  sp,
		viewport: viewport.New(76, 16),
		width:    80,
		height:   24,
	}
}

// Message types
type chaptersLoadedMsg struct {
	req      reader.Request
	chapters []models.Chapter
	err      error
}

type verseLoadedMsg struct {
	req   reader.Request
	verse *models.Verse
	err   error
}

// Init implements View. Each call mounts fresh navigation state.
func (v *ReaderView) Init() tea.Cmd {
	v.Unmount()
	v.ctrl = reader.New()
	v.grid = transition.New("chapter-grid")
	v.card = transition.New("verse-card")
	v.gridCursor = 0
	v.openGridNext = false
	v.viewport.SetContent("")

	return tea.Batch(v.fetch(v.ctrl.Mount()), v.spinner.Tick)
}

// Unmount cancels any outstanding fetch
func (v *ReaderView) Unmount() {
	if v.cancel != nil {
		v.cancel()
		v.cancel = nil
	}
}

// OpenChapters shows the chapter grid, now if chapters are loaded or as
// soon as they arrive
func (v *ReaderView) OpenChapters() tea.Cmd {
	if len(v.ctrl.State().Chapters) == 0 {
		v.openGridNext = true
		return nil
	}
	return v.showGrid()
}

// GridOpen reports whether the chapter grid has focus
func (v *ReaderView) GridOpen() bool {
	return v.grid.Open()
}

// State exposes the navigation state for the app chrome and tests
func (v *ReaderView) State() reader.State {
	return v.ctrl.State()
}

// Update implements View - dispatches messages to specialized handlers
func (v *ReaderView) Update(msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return v.handleKeyMsg(msg)
	case tea.MouseMsg:
		var cmd tea.Cmd
		v.viewport, cmd = v.viewport.Update(msg)
		return v, cmd
	case chaptersLoadedMsg:
		return v.handleChaptersLoaded(msg)
	case verseLoadedMsg:
		return v.handleVerseLoaded(msg)
	case spinner.TickMsg:
		if v.ctrl.State().Status != reader.StatusLoading {
			return v, nil
		}
		var cmd tea.Cmd
		v.spinner, cmd = v.spinner.Update(msg)
		return v, cmd
	case transition.TickMsg:
		var gridCmd, cardCmd tea.Cmd
		v.grid, gridCmd = v.grid.Update(msg)
		v.card, cardCmd = v.card.Update(msg)
		return v, tea.Batch(gridCmd, cardCmd)
	}
	return v, nil
}

// handleKeyMsg dispatches key messages to mode-specific handlers
func (v *ReaderView) handleKeyMsg(msg tea.KeyMsg) (View, tea.Cmd) {
	if v.grid.Open() {
		return v.updateGrid(msg)
	}
	return v.handleReaderKeyMsg(msg)
}

// handleReaderKeyMsg handles key presses on the verse card
func (v *ReaderView) handleReaderKeyMsg(msg tea.KeyMsg) (View, tea.Cmd) {
	switch msg.String() {
	case "h", "left", "p":
		return v, v.navigate(reader.Prev)
	case "l", "right", "n":
		return v, v.navigate(reader.Next)
	case "c":
		return v, v.OpenChapters()
	case "g", "home":
		v.viewport.GotoTop()
	case "G", "end":
		v.viewport.GotoBottom()
	default:
		var cmd tea.Cmd
		v.viewport, cmd = v.viewport.Update(msg)
		return v, cmd
	}
	return v, nil
}

// updateGrid handles chapter grid navigation
func (v *ReaderView) updateGrid(msg tea.KeyMsg) (View, tea.Cmd) {
	chapters := v.ctrl.State().Chapters
	cols := v.gridColumns()

	switch msg.String() {
	case "esc", "c", "q":
		return v, v.hideGrid()
	case "j", "down":
		if v.gridCursor+cols < len(chapters) {
			v.gridCursor += cols
		}
	case "k", "up":
		if v.gridCursor-cols >= 0 {
			v.gridCursor -= cols
		}
	case "l", "right", "tab":
		if v.gridCursor < len(chapters)-1 {
			v.gridCursor++
		}
	case "h", "left", "shift+tab":
		if v.gridCursor > 0 {
			v.gridCursor--
		}
	case "g", "home":
		v.gridCursor = 0
	case "G", "end":
		v.gridCursor = max(0, len(chapters)-1)
	case "enter":
		if v.gridCursor < len(chapters) {
			return v, tea.Batch(v.hideGrid(), v.selectChapter(chapters[v.gridCursor].ID))
		}
	}
	return v, nil
}

// navigate issues prev/next; at a boundary the key is inert
func (v *ReaderView) navigate(dir reader.Direction) tea.Cmd {
	req, ok := v.ctrl.Navigate(dir)
	if !ok {
		return nil
	}
	return v.startVerse(req)
}

func (v *ReaderView) selectChapter(id int) tea.Cmd {
	req, ok := v.ctrl.SelectChapter(id)
	if !ok {
		return nil
	}
	return v.startVerse(req)
}

// startVerse fetches a verse request and restarts the spinner
func (v *ReaderView) startVerse(req reader.Request) tea.Cmd {
	var cardCmd tea.Cmd
	v.card, cardCmd = v.card.Hide()
	return tea.Batch(v.fetch(req), v.spinner.Tick, cardCmd)
}

// fetch performs req, superseding the previous outstanding fetch
func (v *ReaderView) fetch(req reader.Request) tea.Cmd {
	v.Unmount()
	ctx, cancel := context.WithCancel(context.Background())
	v.cancel = cancel
	client := v.client

	switch req.Kind {
	case reader.RequestChapters:
		return func() tea.Msg {
			chapters, err := client.ListChapters(ctx)
			return chaptersLoadedMsg{req: req, chapters: chapters, err: err}
		}
	default:
		return func() tea.Msg {
			verse, err := client.GetVerse(ctx, req.Chapter, req.Verse)
			return verseLoadedMsg{req: req, verse: verse, err: err}
		}
	}
}

// handleChaptersLoaded processes the chapter list response
func (v *ReaderView) handleChaptersLoaded(msg chaptersLoadedMsg) (View, tea.Cmd) {
	next, ok := v.ctrl.ChaptersLoaded(msg.req, msg.chapters, msg.err)
	if msg.err != nil {
		logging.Warn("chapter list fetch failed", "error", msg.err)
	}
	if !ok {
		return v, nil
	}

	cmds := []tea.Cmd{v.fetch(next), v.spinner.Tick}
	if v.openGridNext {
		v.openGridNext = false
		cmds = append(cmds, v.showGrid())
	}
	return v, tea.Batch(cmds...)
}

// handleVerseLoaded processes a verse response
func (v *ReaderView) handleVerseLoaded(msg verseLoadedMsg) (View, tea.Cmd) {
	if !v.ctrl.VerseLoaded(msg.req, msg.verse, msg.err) {
		logging.Debug("discarded stale verse response",
			"chapter", msg.req.Chapter, "verse", msg.req.Verse)
		return v, nil
	}
	v.Unmount()
	if msg.err != nil {
		logging.Warn("verse fetch failed", "chapter", msg.req.Chapter,
			"verse", msg.req.Verse, "error", msg.err)
		return v, nil
	}

	v.viewport.SetContent(v.renderVerse())
	v.viewport.GotoTop()
	var cmd tea.Cmd
	v.card, cmd = v.card.Restart()
	return v, cmd
}

func (v *ReaderView) showGrid() tea.Cmd {
	if ch := v.ctrl.State().Chapter; ch != nil {
		for i, c := range v.ctrl.State().Chapters {
			if c.ID == ch.ID {
				v.gridCursor = i
			}
		}
	}
	var cmd tea.Cmd
	v.grid, cmd = v.grid.Show()
	return cmd
}

func (v *ReaderView) hideGrid() tea.Cmd {
	var cmd tea.Cmd
	v.grid, cmd = v.grid.Hide()
	return cmd
}

// View implements View
func (v *ReaderView) View() string {
	var b strings.Builder

	b.WriteString(v.renderHeader() + "\n")

	used := 1
	if v.grid.Rendered() {
		grid := v.renderGrid()
		b.WriteString(grid + "\n")
		used += lipgloss.Height(grid)
	}

	bodyHeight := max(3, v.height-used-3)
	state := v.ctrl.State()

	switch state.Status {
	case reader.StatusLoading:
		b.WriteString(lipgloss.Place(v.width, bodyHeight, lipgloss.Center, lipgloss.Center,
			v.spinner.View()+styles.MutedText.Render(" Loading...")))
	case reader.StatusFailed:
		b.WriteString(lipgloss.Place(v.width, bodyHeight, lipgloss.Center, lipgloss.Center,
			styles.ErrorStyle.Render(state.Message)))
	case reader.StatusReady:
		vp := v.viewport
		vp.Height = bodyHeight
		body := vp.View()
		if v.card.Phase() == transition.Entering {
			body = lipgloss.NewStyle().Faint(true).Render(body)
		}
		b.WriteString(body)
	}

	b.WriteString("\n" + v.renderControls())
	b.WriteString("\n" + v.renderFooter())
	return b.String()
}

// renderHeader renders the title bar
func (v *ReaderView) renderHeader() string {
	left := styles.ReaderHeader.Render(HeroTitle)
	right := styles.HelpKey.Render("c") + styles.Help.Render(" chapters")
	if ch := v.ctrl.State().Chapter; ch != nil {
		title := styles.TruncateText(ch.Name+" · "+ch.NameMeaning, max(10, v.width/2))
		right = styles.MutedText.Render(title) + "  " + right
	}
	gap := max(1, v.width-lipgloss.Width(left)-lipgloss.Width(right))
	return left + strings.Repeat(" ", gap) + right
}

// renderControls renders prev, position, next. Boundary buttons are dimmed
// and do nothing.
func (v *ReaderView) renderControls() string {
	state := v.ctrl.State()
	if state.Chapter == nil {
		return ""
	}

	prev := styles.ButtonDisabled.Render("◀")
	if v.ctrl.CanPrev() {
		prev = styles.Button.Render("◀")
	}
	next := styles.ButtonDisabled.Render("▶")
	if v.ctrl.CanNext() {
		next = styles.Button.Render("▶")
	}
	pos := styles.ReaderProgress.Render(
		fmt.Sprintf("Chapter %d, Verse %d", state.Chapter.ChapterNumber, state.VerseNumber))

	gap := max(1, (v.width-lipgloss.Width(prev)-lipgloss.Width(next)-lipgloss.Width(pos))/2)
	return prev + strings.Repeat(" ", gap) + pos + strings.Repeat(" ", gap) + next
}

func (v *ReaderView) renderFooter() string {
	help := []string{
		styles.HelpKey.Render("h/l") + styles.Help.Render(" prev/next"),
		styles.HelpKey.Render("j/k") + styles.Help.Render(" scroll"),
		styles.HelpKey.Render("c") + styles.Help.Render(" chapters"),
		styles.HelpKey.Render("m") + styles.Help.Render(" menu"),
		styles.HelpKey.Render("q") + styles.Help.Render(" back"),
	}
	if v.grid.Open() {
		help = []string{
			styles.HelpKey.Render("hjkl") + styles.Help.Render(" move"),
			styles.HelpKey.Render("enter") + styles.Help.Render(" read"),
			styles.HelpKey.Render("esc") + styles.Help.Render(" close"),
		}
	}
	return styles.FooterBar.Width(v.width).Render(strings.Join(help, "  "))
}

// renderVerse renders the verse card body for the viewport
func (v *ReaderView) renderVerse() string {
	state := v.ctrl.State()
	verse, chapter := state.Verse, state.Chapter
	if verse == nil || chapter == nil {
		return ""
	}
	width := max(20, v.viewport.Width-6)

	original := styles.Card.Width(width).Render(lipgloss.JoinVertical(lipgloss.Left,
		styles.SectionTitle.Render(chapter.NameTranslated),
		styles.VerseText.Width(width-4).Render(verse.Text),
		"",
		styles.Transliteration.Width(width-4).Render(verse.Transliteration),
	))

	var tr strings.Builder
	tr.WriteString(styles.SectionTitle.Render("Translation & Meaning") + "\n")
	translations := verse.TranslationsIn(v.language)
	for i, t := range translations {
		if i > 0 {
			tr.WriteString("\n")
		}
		tr.WriteString(styles.Translation.Width(width-4).Render(t.Description) + "\n")
		tr.WriteString(styles.Author.Render("- "+t.AuthorName) + "\n")
	}
	if len(translations) == 0 {
		tr.WriteString(styles.MutedText.Render("No translations available"))
	}
	meaning := styles.Card.Width(width).Render(strings.TrimRight(tr.String(), "\n"))

	words := styles.Card.Width(width).Render(lipgloss.JoinVertical(lipgloss.Left,
		styles.SectionTitle.Render("Word Meanings"),
		styles.Translation.Width(width-4).Render(verse.WordMeanings),
	))

	return lipgloss.JoinVertical(lipgloss.Left, original, meaning, words)
}

// gridColumns mirrors a responsive grid: 1, 2 or 3 columns by width
func (v *ReaderView) gridColumns() int {
	switch {
	case v.width >= 120:
		return 3
	case v.width >= 80:
		return 2
	default:
		return 1
	}
}

// renderGrid renders the chapter grid; while animating only the top rows
// are drawn so the grid slides down into place
func (v *ReaderView) renderGrid() string {
	state := v.ctrl.State()
	cols := v.gridColumns()
	cellWidth := max(16, v.width/cols-2)

	var rows []string
	for start := 0; start < len(state.Chapters); start += cols {
		var cells []string
		for i := start; i < min(start+cols, len(state.Chapters)); i++ {
			c := state.Chapters[i]
			body := styles.TruncateText(c.Title(), cellWidth-4) + "\n" +
				fmt.Sprintf("%d verses", c.VersesCount)

			style := styles.ListItem
			switch {
			case i == v.gridCursor && v.grid.Open():
				style = styles.ListItemSelected
			case state.Chapter != nil && c.ID == state.Chapter.ID:
				style = styles.ListItemCurrent
			}
			cells = append(cells, style.Width(cellWidth).Render(body))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}

	grid := lipgloss.JoinVertical(lipgloss.Left, rows...)
	lines := strings.Split(grid, "\n")
	shown := int(float64(len(lines))*v.grid.Progress() + 0.5)
	// Leave room for the verse card below.
	shown = min(shown, max(0, v.height-8))
	return strings.Join(lines[:shown], "\n")
}

// SetSize implements View
func (v *ReaderView) SetSize(width, height int) {
	v.width = width
	v.height = height
	v.viewport.Width = max(20, width-2)
	v.viewport.Height = max(3, height-4)
	if v.ctrl.State().Status == reader.StatusReady {
		v.viewport.SetContent(v.renderVerse())
	}
}
