package todo

import (
	"math"
	"time"

	"tableflip.dev/memo/pkg/record"
)

// Stats summarises the whole todo collection, independent of any filter.
type Stats struct {
	Total          int `json:"total"`
	Completed      int `json:"completed"`
	Active         int `json:"active"`
	Overdue        int `json:"overdue"`
	DueToday       int `json:"dueToday"`
	CompletionRate int `json:"completionRate"`
}

// Summarize computes Stats over todos. CompletionRate is a rounded integer
// percentage and is 0 for an empty collection.
func Summarize(todos []record.Todo, now time.Time) Stats {
	today := record.DateOf(now)
	var s Stats
	for _, t := range todos {
		s.Total++
		if t.Completed {
			s.Completed++
			continue
		}
		if t.Overdue(today) {
			s.Overdue++
		}
		if t.DueOn(today) {
			s.DueToday++
		}
	}
	s.Active = s.Total - s.Completed
	if s.Total > 0 {
		s.CompletionRate = int(math.Floor(float64(s.Completed)*100/float64(s.Total) + 0.5))
	}
	return s
}
