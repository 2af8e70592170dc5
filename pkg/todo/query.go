// Package todo implements the filter, sort and statistics pipeline over a
// todo collection. Every function here is pure: "today" is always passed in.
package todo

import (
	"fmt"
	"strings"
	"time"

	"tableflip.dev/memo/pkg/record"
)

// Status selects todos by completion or due date.
type Status string

const (
	StatusAll       Status = "all"
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
	StatusToday     Status = "today"
	StatusUpcoming  Status = "upcoming"
	StatusOverdue   Status = "overdue"
)

// AllCategories is the category filter value that matches every todo.
const AllCategories = "all"

// upcomingWindow is the number of days after today an upcoming todo may be due.
const upcomingWindow = 7

// AllStatuses returns the statuses in the order they are offered to users.
func AllStatuses() []Status {
	return []Status{StatusAll, StatusActive, StatusCompleted, StatusToday, StatusUpcoming, StatusOverdue}
}

// ParseStatus converts a flag value to a Status. Blank means all.
func ParseStatus(raw string) (Status, error) {
	s := Status(strings.ToLower(strings.TrimSpace(raw)))
	if s == "" {
		return StatusAll, nil
	}
	for _, candidate := range AllStatuses() {
		if candidate == s {
			return candidate, nil
		}
	}
	return StatusAll, fmt.Errorf("todo: unknown status %q", raw)
}

// Label is the human readable name of the status.
func (s Status) Label() string {
	switch s {
	case StatusActive:
		return "Active Tasks"
	case StatusCompleted:
		return "Completed Tasks"
	case StatusToday:
		return "Due Today"
	case StatusUpcoming:
		return "Upcoming (7 Days)"
	case StatusOverdue:
		return "Overdue"
	}
	return "All Tasks"
}

// Query is the full set of inputs to a filtered, sorted listing.
type Query struct {
	Search   string
	Status   Status
	Category string
	Sort     SortKey
}

// IsZero reports whether the query filters nothing.
func (q Query) IsZero() bool {
	return strings.TrimSpace(q.Search) == "" &&
		(q.Status == "" || q.Status == StatusAll) &&
		(q.Category == "" || q.Category == AllCategories)
}

// Run filters todos with q and sorts the result by q.Sort.
func Run(todos []record.Todo, q Query, now time.Time) []record.Todo {
	return Sort(Filter(todos, q, now), q.Sort)
}
