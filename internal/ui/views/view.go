package views

import (
	"context"
	"image"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/justyntemme/gita-t/pkg/models"
)

// ViewType represents different screens in the application
type ViewType int

const (
	ViewHero ViewType = iota
	ViewReader
)

// String returns the name of the view
func (v ViewType) String() string {
	switch v {
	case ViewHero:
		return "Home"
	case ViewReader:
		return "Bhagavad Gita"
	default:
		return "Unknown"
	}
}

// View is the interface that all views must implement
type View interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (View, tea.Cmd)
	View() string
	SetSize(width, height int)
}

// ScriptureClient is the part of the API client the reader needs
type ScriptureClient interface {
	ListChapters(ctx context.Context) ([]models.Chapter, error)
	GetVerse(ctx context.Context, chapterNumber, verseNumber int) (*models.Verse, error)
}

// ImageFetcher downloads the hero backdrop
type ImageFetcher interface {
	FetchImage(ctx context.Context, url string) (image.Image, error)
}

// Message types for inter-view communication

// ErrorMsg is sent when an error occurs outside the reader core
type ErrorMsg struct {
	Err error
}

// ClearErrorMsg clears the current error
type ClearErrorMsg struct{}

// SwitchViewMsg requests a view switch
type SwitchViewMsg struct {
	View ViewType
}

// SendError creates an error message command
func SendError(err error) tea.Cmd {
	return func() tea.Msg {
		return ErrorMsg{Err: err}
	}
}

// ClearError creates a command to clear errors
func ClearError() tea.Cmd {
	return func() tea.Msg {
		return ClearErrorMsg{}
	}
}

// SwitchTo creates a command to switch views
func SwitchTo(view ViewType) tea.Cmd {
	return func() tea.Msg {
		return SwitchViewMsg{View: view}
	}
}
