package record

import (
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// DefaultCategory is assigned to todos saved without a category.
const DefaultCategory = "Other"

// Todo is a prioritised task.
type Todo struct {
	ID        string    `json:"id,omitempty"`
	Title     string    `json:"title"`
	DueDate   Date      `json:"dueDate"`
	Priority  Priority  `json:"priority"`
	Category  string    `json:"category"`
	Completed bool      `json:"completed"`
	Notes     string    `json:"notes,omitempty"`
	Created   Timestamp `json:"timestamp"`
}

// TodoDraft is unvalidated todo input as typed by the user.
type TodoDraft struct {
	Title    string
	Due      string
	Priority string
	Category string
	Notes    string
}

// NormalizeCategory trims a category label, defaulting blank labels to
// DefaultCategory. Case is preserved.
func NormalizeCategory(raw string) string {
	c := strings.TrimSpace(raw)
	if c == "" {
		return DefaultCategory
	}
	return c
}

// NewTodo builds a todo from a draft. It reports false with a nil error when
// the title is blank, in which case nothing should be saved. Malformed dates
// or priorities are returned as errors.
func NewTodo(d TodoDraft, now time.Time) (Todo, bool, error) {
	title := strings.TrimSpace(d.Title)
	if title == "" {
		return Todo{}, false, nil
	}
	due, err := ParseDate(strings.TrimSpace(d.Due))
	if err != nil {
		return Todo{}, false, err
	}
	priority, err := ParsePriority(d.Priority)
	if err != nil {
		return Todo{}, false, err
	}
	t := Todo{
		Title:    title,
		DueDate:  due,
		Priority: priority,
		Category: NormalizeCategory(d.Category),
		Notes:    strings.TrimSpace(d.Notes),
		Created:  Stamp(now),
	}
	if err := t.Validate(); err != nil {
		return Todo{}, false, err
	}
	return t, true, nil
}

// Validate checks the invariants every stored todo satisfies.
func (t Todo) Validate() error {
	return validation.ValidateStruct(&t,
		validation.Field(&t.Title, validation.Required),
		validation.Field(&t.Priority, validation.Required, validation.In(PriorityLow, PriorityMedium, PriorityHigh)),
		validation.Field(&t.Category, validation.Required),
	)
}

func (t Todo) RecordID() string { return t.ID }

func (t Todo) WithID(id string) Todo {
	t.ID = id
	return t
}

// HasDueDate reports whether a due date is set.
func (t Todo) HasDueDate() bool {
	return !t.DueDate.IsZero()
}

// DueOn reports whether the todo is due on day.
func (t Todo) DueOn(day Date) bool {
	return t.HasDueDate() && t.DueDate == day
}

// Overdue reports whether the todo is incomplete and was due before today.
func (t Todo) Overdue(today Date) bool {
	return !t.Completed && t.HasDueDate() && t.DueDate.Before(today)
}

// CarryState copies the state an edit must not reset from prev onto t.
func (t Todo) CarryState(prev Todo) Todo {
	t.Completed = prev.Completed
	return t
}

// Draft returns t as editable input, the starting point of an edit.
func (t Todo) Draft() TodoDraft {
	return TodoDraft{
		Title:    t.Title,
		Due:      t.DueDate.String(),
		Priority: string(t.Priority),
		Category: t.Category,
		Notes:    t.Notes,
	}
}
