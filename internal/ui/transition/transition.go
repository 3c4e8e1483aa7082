// Package transition drives enter/exit animations as explicit phases.
//
// A Transition moves Hidden -> Entering -> Visible on Show and
// Visible -> Exiting -> Hidden on Hide, one frame per TickMsg. Each
// transition has an ID so several can run at once without stealing each
// other's ticks.
package transition

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Phase is the visibility phase of an animated element
type Phase int

const (
	Hidden Phase = iota
	Entering
	Visible
	Exiting
)

func (p Phase) String() string {
	switch p {
	case Hidden:
		return "hidden"
	case Entering:
		return "entering"
	case Visible:
		return "visible"
	case Exiting:
		return "exiting"
	default:
		return "unknown"
	}
}

// DefaultFrames and DefaultFrameTime give a ~200ms animation
const (
	DefaultFrames    = 5
	DefaultFrameTime = 40 * time.Millisecond
)

// TickMsg advances the transition with the matching ID
type TickMsg struct {
	ID  string
	gen int
}

// Transition is a small phase machine. The zero value is unusable; use New.
type Transition struct {
	id        string
	phase     Phase
	frame     int
	frames    int
	frameTime time.Duration
	gen       int // invalidates ticks scheduled before the last Show/Hide
}

// New creates a hidden transition
func New(id string) Transition {
	return Transition{
		id:        id,
		frames:    DefaultFrames,
		frameTime: DefaultFrameTime,
	}
}

// WithFrames overrides frame count and duration
func (t Transition) WithFrames(frames int, frameTime time.Duration) Transition {
	if frames < 1 {
		frames = 1
	}
	t.frames = frames
	t.frameTime = frameTime
	return t
}

// Show starts entering. Showing a visible element is a no-op.
func (t Transition) Show() (Transition, tea.Cmd) {
	switch t.phase {
	case Visible, Entering:
		return t, nil
	case Exiting:
		// reverse from the current position
		t.frame = t.frames - t.frame
	default:
		t.frame = 0
	}
	t.phase = Entering
	t.gen++
	return t, t.tick()
}

// Hide starts exiting. Hiding a hidden element is a no-op.
func (t Transition) Hide() (Transition, tea.Cmd) {
	switch t.phase {
	case Hidden, Exiting:
		return t, nil
	case Entering:
		t.frame = t.frames - t.frame
	default:
		t.frame = 0
	}
	t.phase = Exiting
	t.gen++
	return t, t.tick()
}

// Toggle shows a hidden/exiting element and hides a visible/entering one
func (t Transition) Toggle() (Transition, tea.Cmd) {
	if t.Open() {
		return t.Hide()
	}
	return t.Show()
}

// Restart replays the enter animation from the beginning
func (t Transition) Restart() (Transition, tea.Cmd) {
	t.phase = Hidden
	t.frame = 0
	return t.Show()
}

// Finish jumps to the end of a running animation
func (t Transition) Finish() Transition {
	switch t.phase {
	case Entering:
		t.phase = Visible
	case Exiting:
		t.phase = Hidden
	}
	t.frame = 0
	t.gen++
	return t
}

// Update consumes ticks addressed to this transition
func (t Transition) Update(msg tea.Msg) (Transition, tea.Cmd) {
	tick, ok := msg.(TickMsg)
	if !ok || tick.ID != t.id || tick.gen != t.gen {
		return t, nil
	}
	if t.phase != Entering && t.phase != Exiting {
		return t, nil
	}

	t.frame++
	if t.frame < t.frames {
		return t, t.tick()
	}

	t.frame = 0
	if t.phase == Entering {
		t.phase = Visible
	} else {
		t.phase = Hidden
	}
	return t, nil
}

// Phase returns the current phase
func (t Transition) Phase() Phase {
	return t.phase
}

// Open reports whether the element is visible or on its way in
func (t Transition) Open() bool {
	return t.phase == Entering || t.phase == Visible
}

// Rendered reports whether anything should be drawn
func (t Transition) Rendered() bool {
	return t.phase != Hidden
}

// Progress returns how much of the element is shown, from 0 to 1
func (t Transition) Progress() float64 {
	switch t.phase {
	case Visible:
		return 1
	case Entering:
		return float64(t.frame) / float64(t.frames)
	case Exiting:
		return 1 - float64(t.frame)/float64(t.frames)
	default:
		return 0
	}
}

func (t Transition) tick() tea.Cmd {
	id, gen := t.id, t.gen
	return tea.Tick(t.frameTime, func(time.Time) tea.Msg {
		return TickMsg{ID: id, gen: gen}
	})
}
