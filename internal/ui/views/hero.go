package views

import (
	"context"
	"image"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/justyntemme/gita-t/internal/logging"
	"github.com/justyntemme/gita-t/internal/ui/styles"
	"github.com/justyntemme/gita-t/internal/ui/terminal"
)

const (
	HeroTitle    = "श्रीमद्भगवद्गीता"
	HeroSubtitle = "The divine song of eternal wisdom and spiritual enlightenment"
)

// HeroView is the landing screen. Scrolling moves the title block at full
// speed and the backdrop at half speed; scrolling past the end opens the
// reader.
type HeroView struct {
	fetcher  ImageFetcher
	imageURL string
	termMode terminal.TermImageMode

	// cancel aborts the backdrop download numbered fetchID
	cancel  context.CancelFunc
	fetchID int

	backdrop image.Image // fitted to the current size
	source   image.Image

	// scroll is measured in rows, 0 to height
	scroll int

	// cached escape sequence for the drawn backdrop
	rendered    string
	renderedKey [3]int

	width  int
	height int
}

// NewHeroView creates the landing view. termMode decides whether the
// backdrop image is fetched at all.
func NewHeroView(fetcher ImageFetcher, imageURL string, termMode terminal.TermImageMode) *HeroView {
	return &HeroView{
		fetcher:  fetcher,
		imageURL: imageURL,
		termMode: termMode,
		width:    80,
		height:   24,
	}
}

type heroImageMsg struct {
	id  int
	img image.Image
	err error
}

// Init implements View
func (v *HeroView) Init() tea.Cmd {
	v.scroll = 0
	if v.source != nil || v.termMode == terminal.TermModeNone || v.imageURL == "" || v.fetcher == nil {
		return nil
	}
	v.Unmount()
	ctx, cancel := context.WithCancel(context.Background())
	v.cancel = cancel
	v.fetchID++
	fetcher, url, id := v.fetcher, v.imageURL, v.fetchID
	return func() tea.Msg {
		img, err := fetcher.FetchImage(ctx, url)
		return heroImageMsg{id: id, img: img, err: err}
	}
}

// Unmount cancels a backdrop download still in flight
func (v *HeroView) Unmount() {
	if v.cancel != nil {
		v.cancel()
		v.cancel = nil
	}
}

// Update implements View
func (v *HeroView) Update(msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case heroImageMsg:
		if msg.id != v.fetchID {
			return v, nil
		}
		v.Unmount()
		if msg.err != nil {
			// The backdrop is decoration; fall back to text only.
			logging.Warn("hero image unavailable", "error", msg.err)
			return v, nil
		}
		v.source = msg.img
		v.fitBackdrop()
		return v, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "j", "down":
			return v, v.scrollBy(1)
		case "k", "up":
			return v, v.scrollBy(-1)
		case "ctrl+d", "pgdown", " ":
			return v, v.scrollBy(v.height / 2)
		case "ctrl+u", "pgup":
			return v, v.scrollBy(-v.height / 2)
		case "enter":
			return v, v.leave()
		}

	case tea.MouseMsg:
		switch msg.Button {
		case tea.MouseButtonWheelDown:
			return v, v.scrollBy(1)
		case tea.MouseButtonWheelUp:
			return v, v.scrollBy(-1)
		}
	}
	return v, nil
}

// scrollBy moves the hero; scrolling past the bottom opens the reader
func (v *HeroView) scrollBy(rows int) tea.Cmd {
	v.scroll = max(0, v.scroll+rows)
	if v.scroll >= v.height {
		return v.leave()
	}
	return nil
}

func (v *HeroView) leave() tea.Cmd {
	seq := terminal.ClearImages(v.termMode)
	if seq == "" || v.backdrop == nil {
		return SwitchTo(ViewReader)
	}
	return func() tea.Msg {
		os.Stdout.WriteString(seq)
		return SwitchViewMsg{View: ViewReader}
	}
}

// TextOffset is how many rows the title block has moved up
func (v *HeroView) TextOffset() int {
	return v.scroll
}

// BackdropOffset is how far (0 to 1) the backdrop crop has moved; it
// travels at half the rate of the text
func (v *HeroView) BackdropOffset() float64 {
	if v.height == 0 {
		return 0
	}
	return min(1, float64(v.scroll)/float64(2*v.height))
}

// View implements View
func (v *HeroView) View() string {
	panel := styles.HeroPanel.Render(lipgloss.JoinVertical(lipgloss.Center,
		styles.HeroTitle.Render(HeroTitle),
		"",
		styles.HeroSubtitle.Width(min(60, max(20, v.width-12))).Render(HeroSubtitle),
	))
	hint := styles.MutedText.Render("scroll ↓ or press enter to begin reading")

	backdropRows := 0
	var b strings.Builder
	if img := v.backdropString(); img != "" {
		backdropRows = v.height / 2
		b.WriteString(img)
		b.WriteString("\n")
	}

	textHeight := max(1, v.height-backdropRows-1)
	block := lipgloss.JoinVertical(lipgloss.Center, panel, "", hint)
	body := lipgloss.Place(v.width, textHeight, lipgloss.Center, lipgloss.Center, block)

	// The text block moves up by the scroll offset.
	lines := strings.Split(body, "\n")
	if off := min(v.TextOffset(), len(lines)); off > 0 {
		lines = append(lines[off:], make([]string, off)...)
	}
	b.WriteString(strings.Join(lines, "\n"))
	return b.String()
}

// backdropString returns the encoded backdrop for the current scroll
func (v *HeroView) backdropString() string {
	if v.backdrop == nil || v.termMode == terminal.TermModeNone {
		return ""
	}
	rows := v.height / 2
	key := [3]int{v.width, rows, int(v.BackdropOffset() * 100)}
	if v.rendered != "" && key == v.renderedKey {
		return v.rendered
	}

	crop := terminal.Crop(v.backdrop, v.width, rows, v.BackdropOffset())
	out, err := terminal.RenderImageToString(crop, v.termMode)
	if err != nil {
		logging.Warn("hero image render failed", "error", err)
		return ""
	}
	v.rendered, v.renderedKey = out, key
	return out
}

func (v *HeroView) fitBackdrop() {
	if v.source == nil {
		return
	}
	v.backdrop = terminal.FitImage(v.source, v.width, v.height/2)
	v.rendered = ""
}

// SetSize implements View
func (v *HeroView) SetSize(width, height int) {
	v.width = width
	v.height = height
	v.fitBackdrop()
}
