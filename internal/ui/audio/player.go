// Package audio implements the background-music toggle.
package audio

import (
	"fmt"
	"os/exec"
	"sync"

	"github.com/justyntemme/gita-t/internal/logging"
)

// Process is a running player
type Process interface {
	Stop() error
}

// Launcher starts a player for url
type Launcher func(command []string, url string) (Process, error)

// Player tracks whether music is on. Without a command it is a plain
// boolean that only drives the on-screen indicator.
type Player struct {
	mu      sync.Mutex
	command []string
	url     string
	launch  Launcher
	proc    Process
	playing bool
}

// NewPlayer creates a stopped player. command may be empty.
func NewPlayer(command []string, url string) *Player {
	return &Player{
		command: command,
		url:     url,
		launch:  execLauncher,
	}
}

// WithLauncher replaces how the player process is started
func (p *Player) WithLauncher(l Launcher) *Player {
	p.launch = l
	return p
}

// Playing reports whether music is on
func (p *Player) Playing() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.playing
}

// Enabled reports whether a player command is configured
func (p *Player) Enabled() bool {
	return len(p.command) > 0 && p.url != ""
}

// Toggle flips playback. The flag flips even if the player fails to start,
// so the indicator always follows the user's last choice; the error is
// returned for display.
func (p *Player) Toggle() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.playing = !p.playing
	if !p.Enabled() {
		return nil
	}
	if p.playing {
		proc, err := p.launch(p.command, p.url)
		if err != nil {
			logging.Warn("music player failed to start", "command", p.command[0], "error", err)
			return fmt.Errorf("starting music player: %w", err)
		}
		p.proc = proc
		return nil
	}
	return p.stopLocked()
}

// Stop silences the player, e.g. on exit
func (p *Player) Stop() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.playing = false
	return p.stopLocked()
}

func (p *Player) stopLocked() error {
	if p.proc == nil {
		return nil
	}
	err := p.proc.Stop()
	p.proc = nil
	if err != nil {
		return fmt.Errorf("stopping music player: %w", err)
	}
	return nil
}

type execProcess struct {
	cmd *exec.Cmd
}

func (e *execProcess) Stop() error {
	if e.cmd.Process == nil {
		return nil
	}
	if err := e.cmd.Process.Kill(); err != nil {
		return err
	}
	// Reap; the exit status of a killed player is not interesting.
	_ = e.cmd.Wait()
	return nil
}

func execLauncher(command []string, url string) (Process, error) {
	args := append(append([]string{}, command[1:]...), url)
	cmd := exec.Command(command[0], args...)
	if err := cmd.Start(); err != nil {
		return nil, err
	}
	logging.Debug("music player started", "pid", cmd.Process.Pid)
	return &execProcess{cmd: cmd}, nil
}
