package printers

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/memo/pkg/glyph"
	"tableflip.dev/memo/pkg/record"
)

const width = len("11 12 13 14 15 16 17") // an example week

// DueCounts counts, per day of the month holding then, the incomplete todos
// due that day. Index 0 is the 1st.
func DueCounts(then time.Time, todos ...record.Todo) []int {
	count := make([]int, DaysIn(then))
	for _, t := range todos {
		if t.Completed || !t.HasDueDate() {
			continue
		}
		if t.DueDate.Year == then.Year() && t.DueDate.Month == then.Month() {
			count[t.DueDate.Day-1]++
		}
	}
	return count
}

// PrintMonth prints a compact month grid with busy days highlighted.
func (pp *PrettyPrint) PrintMonth(then time.Time, todos ...record.Todo) {
	pp.PrintMonthCount(then, DueCounts(then, todos...))
}

func (pp *PrettyPrint) PrintMonthCount(then time.Time, count []int) {
	d := StartDay(then)

	tf := color.New(color.Italic)

	m := fmt.Sprintf("%s %d", then.Month(), then.Year())
	mid := (width - len(m)) / 2
	_, _ = tf.Fprintf(pp.out(), "%s%s%s\n", strings.Repeat(" ", max(mid, 0)), m, strings.Repeat(" ", max(width-mid-len(m), 0)))

	// Pad out the start of the month.
	for i := time.Sunday; i < d; i++ {
		_, _ = fmt.Fprint(pp.out(), "   ")
	}

	l1 := color.New(color.Faint)
	l2 := color.New(color.Bold)

	days := DaysIn(then)
	for i := 0; i < days; i++ {
		if i < len(count) && count[i] > 0 {
			_, _ = l2.Fprintf(pp.out(), "%2d ", i+1)
		} else {
			_, _ = l1.Fprintf(pp.out(), "%2d ", i+1)
		}

		d++
		if d > time.Saturday {
			d = time.Sunday
			_, _ = fmt.Fprint(pp.out(), "\n")
		}
	}
	_, _ = fmt.Fprint(pp.out(), "\n\n")
}

// PrintMonthLong prints one line per day of the month with the todos due
// that day, followed by the todos that have no due date.
func (pp *PrettyPrint) PrintMonthLong(then time.Time, todos ...record.Todo) {
	p := color.New()
	b := color.New(color.Bold)
	i := color.New(color.Italic)
	s := color.New(color.Underline)
	bs := color.New(color.Underline, color.Bold)

	d := StartDay(then)
	for day := 1; day <= DaysIn(then); day++ {
		on := record.Date{Year: then.Year(), Month: then.Month(), Day: day}
		printer := p
		isToday := on == pp.Today
		switch {
		case d == time.Sunday && isToday:
			printer = bs
		case d == time.Sunday:
			printer = s
		case isToday:
			printer = b
		}
		_, _ = printer.Fprintf(pp.out(), "%2d %s", day, d.String()[0:1])

		found := false
		for _, t := range todos {
			if !t.DueOn(on) {
				continue
			}
			if found {
				_, _ = p.Fprint(pp.out(), "    ")
			}
			_, _ = p.Fprintf(pp.out(), "  %s %s\n", glyph.ForTodo(t, pp.Today), t.Title)
			found = true
		}
		if !found {
			_, _ = p.Fprint(pp.out(), "\n")
		}
		d++
		if d > time.Saturday {
			d = time.Sunday
		}
	}

	open := make([]record.Todo, 0)
	for _, t := range todos {
		if !t.HasDueDate() {
			open = append(open, t)
		}
	}
	if len(open) > 0 {
		_, _ = i.Fprintf(pp.out(), "\nNo due date\n")
		for _, t := range open {
			_, _ = p.Fprintf(pp.out(), "%s %s\n", glyph.ForTodo(t, pp.Today), t.Title)
		}
	}
	pp.NewLine()
}

// MonthOf returns the first day of the month holding then.
func MonthOf(then time.Time) time.Time {
	return time.Date(then.Year(), then.Month(), 1, 1, 0, 0, 0, time.Local)
}

func NextMonth(then time.Time) time.Time {
	return time.Date(then.Year(), then.Month()+1, 1, 1, 0, 0, 0, then.Location())
}

func DaysIn(then time.Time) int {
	return time.Date(then.Year(), then.Month()+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func StartDay(then time.Time) time.Weekday {
	return time.Date(then.Year(), then.Month(), 1, 1, 0, 0, 0, time.UTC).Weekday()
}
