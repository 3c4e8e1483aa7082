// Package reader holds the navigation state of the verse reader and the
// rules for moving between chapters and verses.
//
// The Controller performs no I/O. Each transition that needs data returns a
// Request; the caller fetches it and reports the outcome back with the same
// Request. Only the most recently issued Request is ever applied, so a slow
// response for an old target can never overwrite a newer one.
package reader

import (
	"errors"
	"sync/atomic"

	"github.com/justyntemme/gita-t/pkg/models"
)

var errNoChapters = errors.New("empty chapter list")

// tokens are unique across controllers so a response addressed to an
// unmounted reader never matches a request of its replacement
var lastToken atomic.Uint64

// User-facing failure messages
const (
	MsgChaptersFailed = "Failed to fetch chapters. Please try again."
	MsgVerseFailed    = "Failed to fetch verse. Please try again."
)

// Status is the fetch status of the navigation state
type Status int

const (
	StatusLoading Status = iota
	StatusReady
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusReady:
		return "ready"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Direction is a verse navigation intent
type Direction int

const (
	Prev Direction = iota
	Next
)

// RequestKind identifies what a Request asks for
type RequestKind int

const (
	RequestChapters RequestKind = iota
	RequestVerse
)

// Request is a fetch the caller must perform. Token identifies it; Chapter
// and Verse are only set for verse requests.
type Request struct {
	Kind    RequestKind
	Token   uint64
	Chapter int
	Verse   int
}

// State is a read-only snapshot for rendering
type State struct {
	Chapters    []models.Chapter
	Chapter     *models.Chapter
	VerseNumber int
	Verse       *models.Verse
	Status      Status
	Message     string
}

// Controller owns the navigation state
type Controller struct {
	chapters    []models.Chapter
	chapter     *models.Chapter
	verseNumber int
	verse       *models.Verse
	status      Status
	message     string

	pending uint64 // token of the outstanding request, 0 when none
}

// New returns the state a freshly mounted reader starts in
func New() *Controller {
	return &Controller{
		verseNumber: 1,
		status:      StatusLoading,
	}
}

// Mount issues the chapter-list request
func (c *Controller) Mount() Request {
	c.status = StatusLoading
	c.message = ""
	return c.issue(Request{Kind: RequestChapters})
}

// ChaptersLoaded applies the chapter-list result. On success the first
// chapter is selected and its first verse is requested.
func (c *Controller) ChaptersLoaded(req Request, chapters []models.Chapter, err error) (Request, bool) {
	if req.Kind != RequestChapters || !c.current(req) {
		return Request{}, false
	}
	c.pending = 0

	if err == nil && len(chapters) == 0 {
		err = errNoChapters
	}
	if err == nil {
		err = models.ValidateChapters(chapters)
	}
	if err != nil {
		c.chapters = nil
		c.chapter = nil
		c.fail(MsgChaptersFailed)
		return Request{}, false
	}

	c.chapters = chapters
	return c.selectChapter(&c.chapters[0]), true
}

// SelectChapter selects the chapter with the given id and resets to its
// first verse. An unknown id is ignored.
func (c *Controller) SelectChapter(id int) (Request, bool) {
	for i := range c.chapters {
		if c.chapters[i].ID == id {
			return c.selectChapter(&c.chapters[i]), true
		}
	}
	return Request{}, false
}

// Navigate moves one verse in dir. At either boundary it does nothing.
func (c *Controller) Navigate(dir Direction) (Request, bool) {
	switch {
	case dir == Prev && c.CanPrev():
		c.verseNumber--
	case dir == Next && c.CanNext():
		c.verseNumber++
	default:
		return Request{}, false
	}
	return c.requestVerse(), true
}

// CanPrev reports whether a previous verse exists
func (c *Controller) CanPrev() bool {
	return c.chapter != nil && c.chapter.HasVerse(c.verseNumber-1)
}

// CanNext reports whether a next verse exists
func (c *Controller) CanNext() bool {
	return c.chapter != nil && c.chapter.HasVerse(c.verseNumber+1)
}

// VerseLoaded applies a verse result if req is still the outstanding
// request. It reports whether the result was applied.
func (c *Controller) VerseLoaded(req Request, verse *models.Verse, err error) bool {
	if req.Kind != RequestVerse || !c.current(req) {
		return false
	}
	c.pending = 0

	if err != nil || verse == nil {
		c.fail(MsgVerseFailed)
		return true
	}
	c.verse = verse
	c.status = StatusReady
	c.message = ""
	return true
}

// Pending reports whether a request is outstanding
func (c *Controller) Pending() bool {
	return c.pending != 0
}

// State returns a snapshot of the navigation state
func (c *Controller) State() State {
	return State{
		Chapters:    c.chapters,
		Chapter:     c.chapter,
		VerseNumber: c.verseNumber,
		Verse:       c.verse,
		Status:      c.status,
		Message:     c.message,
	}
}

// Target returns the (chapter number, verse number) the state points at.
// The chapter number is 0 before chapters load.
func (c *Controller) Target() (int, int) {
	if c.chapter == nil {
		return 0, c.verseNumber
	}
	return c.chapter.ChapterNumber, c.verseNumber
}

func (c *Controller) selectChapter(ch *models.Chapter) Request {
	c.chapter = ch
	c.verseNumber = 1
	return c.requestVerse()
}

func (c *Controller) requestVerse() Request {
	c.verse = nil
	c.status = StatusLoading
	c.message = ""
	return c.issue(Request{
		Kind:    RequestVerse,
		Chapter: c.chapter.ChapterNumber,
		Verse:   c.verseNumber,
	})
}

func (c *Controller) issue(req Request) Request {
	req.Token = lastToken.Add(1)
	c.pending = req.Token
	return req
}

func (c *Controller) current(req Request) bool {
	return req.Token != 0 && req.Token == c.pending
}

func (c *Controller) fail(msg string) {
	c.verse = nil
	c.status = StatusFailed
	c.message = msg
}
