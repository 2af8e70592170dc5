// Package stats prints the todo statistics.
package stats

import (
	"context"
	"errors"
	"io"

	"tableflip.dev/memo/pkg/app"
	"tableflip.dev/memo/pkg/printers"
)

type Stats struct {
	Service *app.Service
	JSON    bool
	Out     io.Writer
}

func (n *Stats) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("stats: no service")
	}
	st, err := n.Service.Stats(ctx)
	if err != nil {
		return err
	}
	if n.JSON {
		return printers.JSON(n.Out, st)
	}
	pp := printers.PrettyPrint{Out: n.Out}
	pp.NewLine()
	pp.Title("Task Statistics")
	pp.Stats(st)
	return nil
}
