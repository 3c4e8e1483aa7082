package views

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/justyntemme/gita-t/internal/reader"
	"github.com/justyntemme/gita-t/pkg/models"
)

type fakeScripture struct {
	mu          sync.Mutex
	chapters    []models.Chapter
	chaptersErr error
	verseErr    error
	verseCalls  []string
	verseCtx    context.Context
}

func (f *fakeScripture) ListChapters(ctx context.Context) ([]models.Chapter, error) {
	if f.chaptersErr != nil {
		return nil, f.chaptersErr
	}
	return f.chapters, nil
}

func (f *fakeScripture) GetVerse(ctx context.Context, chapter, verse int) (*models.Verse, error) {
	f.mu.Lock()
	f.verseCalls = append(f.verseCalls, fmt.Sprintf("%d.%d", chapter, verse))
	f.verseCtx = ctx
	f.mu.Unlock()
	if f.verseErr != nil {
		return nil, f.verseErr
	}
	return &models.Verse{
		ID:              chapter*1000 + verse,
		VerseNumber:     verse,
		ChapterNumber:   chapter,
		Text:            fmt.Sprintf("text %d.%d", chapter, verse),
		Transliteration: "translit",
		WordMeanings:    "words",
		Translations: []models.Translation{
			{ID: 1, Description: "english meaning", AuthorName: "Swami", Language: "english"},
			{ID: 2, Description: "hindi meaning", AuthorName: "Tejomayananda", Language: "hindi"},
		},
	}, nil
}

func testChapters() []models.Chapter {
	return []models.Chapter{
		{ID: 1, ChapterNumber: 1, Name: "Arjuna", NameTranslated: "Arjuna Visada Yoga", VersesCount: 3},
		{ID: 2, ChapterNumber: 2, Name: "Sankhya", NameTranslated: "Sankhya Yoga", VersesCount: 2},
	}
}

// collect runs cmd and any batched commands, returning their messages
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collect(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

// responses keeps only fetch results
func responses(msgs []tea.Msg) []tea.Msg {
	var out []tea.Msg
	for _, m := range msgs {
		switch m.(type) {
		case chaptersLoadedMsg, verseLoadedMsg:
			out = append(out, m)
		}
	}
	return out
}

// settle delivers fetch results until no more fetches are issued
func settle(v *ReaderView, cmd tea.Cmd) {
	pending := responses(collect(cmd))
	for len(pending) > 0 {
		msg := pending[0]
		pending = pending[1:]
		_, next := v.Update(msg)
		pending = append(pending, responses(collect(next))...)
	}
}

func press(v *ReaderView, keys string) tea.Cmd {
	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(keys)})
	return cmd
}

func mountedReader(t *testing.T, client *fakeScripture, lang string) *ReaderView {
	t.Helper()
	v := NewReaderView(client, lang)
	v.SetSize(100, 60)
	settle(v, v.Init())
	return v
}

func assertAt(t *testing.T, v *ReaderView, chapter, verse int) {
	t.Helper()
	s := v.State()
	if s.Status != reader.StatusReady {
		t.Fatalf("status = %v (%s)", s.Status, s.Message)
	}
	if s.Chapter == nil || s.Chapter.ChapterNumber != chapter || s.VerseNumber != verse {
		t.Fatalf("at %+v verse %d, want %d.%d", s.Chapter, s.VerseNumber, chapter, verse)
	}
	if s.Verse == nil || s.Verse.VerseNumber != verse {
		t.Fatalf("loaded verse %+v does not match %d", s.Verse, verse)
	}
}

func TestReaderMountShowsFirstVerse(t *testing.T) {
	client := &fakeScripture{chapters: testChapters()}
	v := mountedReader(t, client, "")

	assertAt(t, v, 1, 1)
	out := v.View()
	for _, want := range []string{"Chapter 1, Verse 1", "text 1.1", "- Swami", "Word Meanings"} {
		if !strings.Contains(out, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestReaderPrevNext(t *testing.T) {
	client := &fakeScripture{chapters: testChapters()}
	v := mountedReader(t, client, "")

	settle(v, press(v, "l"))
	assertAt(t, v, 1, 2)
	settle(v, press(v, "n"))
	assertAt(t, v, 1, 3)

	if cmd := press(v, "n"); cmd != nil {
		t.Error("next at the last verse should be inert")
	}
	assertAt(t, v, 1, 3)

	settle(v, press(v, "p"))
	settle(v, press(v, "h"))
	assertAt(t, v, 1, 1)
	if cmd := press(v, "h"); cmd != nil {
		t.Error("prev at verse 1 should be inert")
	}
}

func TestReaderDiscardsStaleVerse(t *testing.T) {
	client := &fakeScripture{chapters: testChapters()}
	v := mountedReader(t, client, "")

	first := responses(collect(press(v, "l")))
	second := responses(collect(press(v, "l")))
	if len(first) != 1 || len(second) != 1 {
		t.Fatalf("expected one fetch per key, got %d and %d", len(first), len(second))
	}

	// The newer response lands first; the older one must not replace it.
	v.Update(second[0])
	v.Update(first[0])
	assertAt(t, v, 1, 3)
	if !strings.Contains(v.View(), "text 1.3") {
		t.Error("stale verse rendered")
	}
}

func TestReaderChaptersFailure(t *testing.T) {
	client := &fakeScripture{chaptersErr: errors.New("boom")}
	v := mountedReader(t, client, "")

	s := v.State()
	if s.Status != reader.StatusFailed || s.Message != reader.MsgChaptersFailed {
		t.Fatalf("state = %v %q", s.Status, s.Message)
	}
	if !strings.Contains(v.View(), reader.MsgChaptersFailed) {
		t.Error("failure message not shown")
	}
	if len(client.verseCalls) != 0 {
		t.Errorf("verse fetched without chapters: %v", client.verseCalls)
	}
}

func TestReaderVerseFailureRecovers(t *testing.T) {
	client := &fakeScripture{chapters: testChapters(), verseErr: errors.New("boom")}
	v := mountedReader(t, client, "")

	if s := v.State(); s.Status != reader.StatusFailed || s.Message != reader.MsgVerseFailed {
		t.Fatalf("state = %v %q", s.Status, s.Message)
	}

	client.verseErr = nil
	settle(v, press(v, "l"))
	assertAt(t, v, 1, 2)
}

func TestReaderChapterGridSelect(t *testing.T) {
	client := &fakeScripture{chapters: testChapters()}
	v := mountedReader(t, client, "")
	settle(v, press(v, "l"))

	press(v, "c")
	if !v.GridOpen() {
		t.Fatal("grid did not open")
	}
	v.grid = v.grid.Finish()
	if !strings.Contains(v.View(), "Chapter 2: Sankhya") {
		t.Error("grid does not list chapter 2")
	}

	press(v, "l")
	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	settle(v, cmd)

	if v.GridOpen() {
		t.Error("grid should close after selecting")
	}
	assertAt(t, v, 2, 1)
}

func TestReaderGridKeysDoNotNavigate(t *testing.T) {
	client := &fakeScripture{chapters: testChapters()}
	v := mountedReader(t, client, "")

	press(v, "c")
	if cmd := press(v, "n"); cmd != nil {
		t.Error("n should not fetch while the grid is open")
	}
	press(v, "c")
	if v.GridOpen() {
		t.Error("c should close the grid")
	}
	assertAt(t, v, 1, 1)
}

func TestReaderOpenChaptersBeforeLoad(t *testing.T) {
	client := &fakeScripture{chapters: testChapters()}
	v := NewReaderView(client, "")
	mount := v.Init()

	if cmd := v.OpenChapters(); cmd != nil {
		t.Error("grid opened before chapters loaded")
	}
	settle(v, mount)
	if !v.GridOpen() {
		t.Error("grid should open once chapters arrive")
	}
}

func TestReaderRemountIgnoresOldResponses(t *testing.T) {
	client := &fakeScripture{chapters: testChapters()}
	v := NewReaderView(client, "")

	old := responses(collect(v.Init()))
	fresh := v.Init()
	for _, msg := range old {
		v.Update(msg)
	}
	if s := v.State(); s.Status != reader.StatusLoading || s.Chapter != nil {
		t.Fatalf("old mount response applied: %+v", s)
	}

	settle(v, fresh)
	assertAt(t, v, 1, 1)
}

func TestReaderFiltersTranslationsByLanguage(t *testing.T) {
	client := &fakeScripture{chapters: testChapters()}
	v := mountedReader(t, client, "hindi")

	out := v.View()
	if !strings.Contains(out, "hindi meaning") {
		t.Error("hindi translation missing")
	}
	if strings.Contains(out, "english meaning") {
		t.Error("english translation should be filtered out")
	}
}

func TestReaderReleasesFinishedFetch(t *testing.T) {
	client := &fakeScripture{chapters: testChapters()}
	v := mountedReader(t, client, "")

	if v.cancel != nil {
		t.Error("cancel kept after the verse arrived")
	}
	if client.verseCtx == nil || client.verseCtx.Err() == nil {
		t.Error("context of the finished fetch was not released")
	}
}
