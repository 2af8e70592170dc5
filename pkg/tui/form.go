package tui

import (
	"tableflip.dev/memo/pkg/record"
)

type formKind int

const (
	formTodo formKind = iota
	formNote
)

const categoryField = 3

type field struct {
	label string
	value string
}

// form edits one record a field at a time. id is empty for a new record.
type form struct {
	kind   formKind
	id     string
	fields []field
	index  int
	// shown is what the single-line input displayed when the current field
	// was focused. The input drops newlines, so an untouched field keeps its
	// stored value.
	shown string
}

func newTodoForm(id string, d record.TodoDraft) *form {
	if d.Priority == "" {
		d.Priority = string(record.PriorityMedium)
	}
	return &form{
		kind: formTodo,
		id:   id,
		fields: []field{
			{label: "title", value: d.Title},
			{label: "due date (YYYY-MM-DD)", value: d.Due},
			{label: "priority (low/medium/high)", value: d.Priority},
			{label: "category", value: d.Category},
			{label: "notes", value: d.Notes},
		},
	}
}

func newNoteForm(id string, n record.Note) *form {
	return &form{
		kind: formNote,
		id:   id,
		fields: []field{
			{label: "title", value: n.Title},
			{label: "content", value: n.Content},
		},
	}
}

func (f *form) current() field {
	return f.fields[f.index]
}

func (f *form) set(v string) {
	if v == f.shown {
		return
	}
	f.fields[f.index].value = v
}

func (f *form) onCategory() bool {
	return f.kind == formTodo && f.index == categoryField
}

func (f *form) move(delta int) {
	f.index = wrapIndex(f.index+delta, len(f.fields))
}

func (f *form) last() bool {
	return f.index >= len(f.fields)-1
}

func (f *form) todoDraft() record.TodoDraft {
	return record.TodoDraft{
		Title:    f.fields[0].value,
		Due:      f.fields[1].value,
		Priority: f.fields[2].value,
		Category: f.fields[categoryField].value,
		Notes:    f.fields[4].value,
	}
}

func (f *form) note() (title, content string) {
	return f.fields[0].value, f.fields[1].value
}

func wrapIndex(idx, n int) int {
	if n == 0 {
		return 0
	}
	idx %= n
	if idx < 0 {
		idx += n
	}
	return idx
}

func clampCursor(cur, n int) int {
	if n == 0 || cur < 0 {
		return 0
	}
	if cur >= n {
		return n - 1
	}
	return cur
}
