package todo

import (
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"tableflip.dev/memo/pkg/record"
)

// SortKey orders a todo listing.
type SortKey string

const (
	SortDateAsc      SortKey = "date-asc"
	SortDateDesc     SortKey = "date-desc"
	SortPriorityDesc SortKey = "priority-desc"
	SortPriorityAsc  SortKey = "priority-asc"
	SortAlpha        SortKey = "alpha"
)

// AllSortKeys returns the keys in the order they are offered to users.
func AllSortKeys() []SortKey {
	return []SortKey{SortDateAsc, SortDateDesc, SortPriorityDesc, SortPriorityAsc, SortAlpha}
}

// ParseSortKey converts a flag value to a SortKey. Blank means date-asc.
func ParseSortKey(raw string) (SortKey, error) {
	k := SortKey(strings.ToLower(strings.TrimSpace(raw)))
	if k == "" {
		return SortDateAsc, nil
	}
	for _, candidate := range AllSortKeys() {
		if candidate == k {
			return candidate, nil
		}
	}
	return SortDateAsc, fmt.Errorf("todo: unknown sort key %q", raw)
}

// Label is the human readable name of the key.
func (k SortKey) Label() string {
	switch k {
	case SortDateAsc:
		return "Due Date (Earliest First)"
	case SortDateDesc:
		return "Due Date (Latest First)"
	case SortPriorityDesc:
		return "Priority (High to Low)"
	case SortPriorityAsc:
		return "Priority (Low to High)"
	case SortAlpha:
		return "Alphabetically"
	}
	return string(k)
}

// Sort returns a stably sorted copy of todos. Todos without a due date sort
// after dated ones for both date keys. Unknown keys keep the input order.
func Sort(todos []record.Todo, key SortKey) []record.Todo {
	out := slices.Clone(todos)
	cmp := comparator(key)
	if cmp == nil {
		return out
	}
	slices.SortStableFunc(out, cmp)
	return out
}

func comparator(key SortKey) func(a, b record.Todo) int {
	switch key {
	case SortDateAsc:
		return func(a, b record.Todo) int { return compareDue(a, b, false) }
	case SortDateDesc:
		return func(a, b record.Todo) int { return compareDue(a, b, true) }
	case SortPriorityDesc:
		return func(a, b record.Todo) int { return b.Priority.Weight() - a.Priority.Weight() }
	case SortPriorityAsc:
		return func(a, b record.Todo) int { return a.Priority.Weight() - b.Priority.Weight() }
	case SortAlpha:
		// Collators keep internal buffers and are not safe to share.
		c := collate.New(language.Und)
		return func(a, b record.Todo) int { return c.CompareString(a.Title, b.Title) }
	}
	return nil
}

func compareDue(a, b record.Todo, desc bool) int {
	switch {
	case !a.HasDueDate() && !b.HasDueDate():
		return 0
	case !a.HasDueDate():
		return 1
	case !b.HasDueDate():
		return -1
	}
	if desc {
		return b.DueDate.Compare(a.DueDate)
	}
	return a.DueDate.Compare(b.DueDate)
}
