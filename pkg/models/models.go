package models

import "fmt"

// Chapter represents one of the eighteen top-level divisions of the Gita
type Chapter struct {
	ID             int    `json:"id"`
	ChapterNumber  int    `json:"chapter_number"`
	Name           string `json:"name"`
	NameTranslated string `json:"name_translated"`
	NameMeaning    string `json:"name_meaning"`
	VersesCount    int    `json:"verses_count"`
	ChapterSummary string `json:"chapter_summary"`
}

// Title returns the display title used in chapter lists
func (c *Chapter) Title() string {
	return fmt.Sprintf("Chapter %d: %s", c.ChapterNumber, c.NameTranslated)
}

// HasVerse reports whether n is a valid verse number for this chapter
func (c *Chapter) HasVerse(n int) bool {
	return n >= 1 && n <= c.VersesCount
}

// Translation is one author's rendering of a verse
type Translation struct {
	ID          int    `json:"id"`
	Description string `json:"description"`
	AuthorName  string `json:"author_name"`
	Language    string `json:"language"`
}

// Verse represents a single numbered verse within a chapter
type Verse struct {
	ID              int           `json:"id"`
	VerseNumber     int           `json:"verse_number"`
	ChapterNumber   int           `json:"chapter_number,omitempty"`
	Text            string        `json:"text"`
	Transliteration string        `json:"transliteration"`
	WordMeanings    string        `json:"word_meanings"`
	Translations    []Translation `json:"translations"`
}

// TranslationsIn returns the translations whose language matches lang.
// An empty lang returns every translation.
func (v *Verse) TranslationsIn(lang string) []Translation {
	if lang == "" {
		return v.Translations
	}
	var out []Translation
	for _, t := range v.Translations {
		if t.Language == lang {
			out = append(out, t)
		}
	}
	return out
}

// ValidateChapters checks that a fetched chapter list is numbered
// contiguously from 1 and that every chapter has at least one verse
func ValidateChapters(chapters []Chapter) error {
	for i, c := range chapters {
		if c.ChapterNumber != i+1 {
			return fmt.Errorf("chapter at position %d has number %d", i+1, c.ChapterNumber)
		}
		if c.VersesCount < 1 {
			return fmt.Errorf("chapter %d has no verses", c.ChapterNumber)
		}
	}
	return nil
}

// ErrorResponse represents an error body returned by the scripture API
type ErrorResponse struct {
	Message string `json:"message"`
}
