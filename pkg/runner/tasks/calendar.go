package tasks

import (
	"context"
	"io"
	"time"

	"tableflip.dev/memo/pkg/app"
	"tableflip.dev/memo/pkg/printers"
)

// Calendar prints the todos due in one or more months.
type Calendar struct {
	Service *app.Service
	// Month is any day in the first month to show. Zero means this month.
	Month time.Time
	// Months is how many compact months to print. Values below 1 mean 1.
	Months int
	// Long prints one line per day of the first month instead of the grid.
	Long bool
	Out  io.Writer
}

func (n *Calendar) Do(ctx context.Context) error {
	if n.Service == nil {
		return errNoService
	}
	all, err := n.Service.Todos(ctx)
	if err != nil {
		return err
	}
	today := n.Service.Today()
	month := n.Month
	if month.IsZero() {
		month = today.In(time.Local)
	}
	month = printers.MonthOf(month)

	pp := printers.PrettyPrint{Out: n.Out, Today: today}
	pp.NewLine()
	if n.Long {
		pp.PrintMonthLong(month, all...)
		return nil
	}
	for i := 0; i < max(n.Months, 1); i++ {
		pp.PrintMonth(month, all...)
		month = printers.NextMonth(month)
	}
	return nil
}
