package todo

import (
	"strings"
	"time"

	"tableflip.dev/memo/pkg/record"
)

// Filter returns, in their original order, the todos that match the search
// term, the status and the category of q. now supplies the local calendar
// date used by the date-based statuses.
func Filter(todos []record.Todo, q Query, now time.Time) []record.Todo {
	today := record.DateOf(now)
	term := strings.ToLower(strings.TrimSpace(q.Search))

	out := make([]record.Todo, 0, len(todos))
	for _, t := range todos {
		if matchesSearch(t, term) && matchesStatus(t, q.Status, today) && matchesCategory(t, q.Category) {
			out = append(out, t)
		}
	}
	return out
}

func matchesSearch(t record.Todo, term string) bool {
	if term == "" {
		return true
	}
	return strings.Contains(strings.ToLower(t.Title), term) ||
		strings.Contains(strings.ToLower(t.Category), term)
}

func matchesStatus(t record.Todo, s Status, today record.Date) bool {
	switch s {
	case StatusActive:
		return !t.Completed
	case StatusCompleted:
		return t.Completed
	case StatusToday:
		return t.DueOn(today)
	case StatusUpcoming:
		if !t.HasDueDate() {
			return false
		}
		return !t.DueDate.Before(today) && !t.DueDate.After(today.AddDays(upcomingWindow))
	case StatusOverdue:
		return t.Overdue(today)
	}
	return true
}

func matchesCategory(t record.Todo, category string) bool {
	if category == "" || category == AllCategories {
		return true
	}
	return t.Category == category
}
