// Package glyph holds the symbols memo prints in front of notes and todos.
package glyph

import (
	"tableflip.dev/memo/pkg/record"
)

type Glyph struct {
	Key     string
	Symbol  string
	Meaning string
	// Priority marks glyphs that decorate a todo's priority rather than its state.
	Priority bool
}

type Marker int

const (
	Open Marker = iota
	Done
	Overdue
	Note
	High
	Medium
	Low
)

func DefaultGlyphs() []Glyph {
	g := make([]Glyph, 0, 7)

	g = append(g, Glyph{
		Key:     "+",
		Symbol:  "●",
		Meaning: "task",
	}, Glyph{
		Key:     "x",
		Symbol:  "✘",
		Meaning: "task completed",
	}, Glyph{
		Key:     "!",
		Symbol:  "◆",
		Meaning: "task overdue",
	}, Glyph{
		Key:     "-",
		Symbol:  "⁃",
		Meaning: "note",
	}, Glyph{
		Key:      "3",
		Symbol:   "✷",
		Meaning:  "high priority",
		Priority: true,
	}, Glyph{
		Key:      "2",
		Symbol:   "·",
		Meaning:  "medium priority",
		Priority: true,
	}, Glyph{
		Key:      "1",
		Symbol:   " ",
		Meaning:  "low priority",
		Priority: true,
	})

	return g
}

func (g Glyph) String() string {
	return g.Symbol
}

func (m Marker) Glyph() Glyph {
	all := DefaultGlyphs()
	if m < 0 || int(m) >= len(all) {
		return Glyph{}
	}
	return all[m]
}

func (m Marker) String() string {
	return m.Glyph().Symbol
}

// ForTodo picks the state marker for t as seen on day today.
func ForTodo(t record.Todo, today record.Date) Marker {
	switch {
	case t.Completed:
		return Done
	case t.Overdue(today):
		return Overdue
	}
	return Open
}

// ForPriority picks the priority marker for p.
func ForPriority(p record.Priority) Marker {
	switch p {
	case record.PriorityHigh:
		return High
	case record.PriorityLow:
		return Low
	}
	return Medium
}

// ByOrder sorts glyphs with state markers before priority markers.
type ByOrder []Glyph

func (a ByOrder) Len() int      { return len(a) }
func (a ByOrder) Swap(i, j int) { a[i], a[j] = a[j], a[i] }
func (a ByOrder) Less(i, j int) bool {
	return !a[i].Priority && a[j].Priority
}
