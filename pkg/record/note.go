// Package record defines the notes and todos memo persists.
package record

import (
	"strings"
	"time"
	"unicode/utf8"
)

// UntitledNote is the title given to a note saved without one.
const UntitledNote = "Untitled Note"

const previewLength = 100

// Note is a free-form note.
type Note struct {
	ID      string    `json:"id,omitempty"`
	Title   string    `json:"title"`
	Content string    `json:"content"`
	Created Timestamp `json:"timestamp"`
}

// NewNote builds a note from user input. It reports false when both title and
// content are blank, in which case nothing should be saved.
func NewNote(title, content string, now time.Time) (Note, bool) {
	title = strings.TrimSpace(title)
	content = strings.TrimSpace(content)
	if title == "" && content == "" {
		return Note{}, false
	}
	if title == "" {
		title = UntitledNote
	}
	return Note{
		Title:   title,
		Content: content,
		Created: Stamp(now),
	}, true
}

func (n Note) RecordID() string { return n.ID }

func (n Note) WithID(id string) Note {
	n.ID = id
	return n
}

// Matches reports whether term is a case-insensitive substring of the title
// or the content. An empty term matches every note.
func (n Note) Matches(term string) bool {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return true
	}
	return strings.Contains(strings.ToLower(n.Title), term) ||
		strings.Contains(strings.ToLower(n.Content), term)
}

// Preview returns the first 100 characters of the content, with an ellipsis
// when the content is longer.
func (n Note) Preview() string {
	if utf8.RuneCountInString(n.Content) <= previewLength {
		return n.Content
	}
	return string([]rune(n.Content)[:previewLength]) + "..."
}
