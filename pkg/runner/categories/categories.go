// Package categories lists the registered todo categories.
package categories

import (
	"context"
	"errors"
	"io"

	"tableflip.dev/memo/pkg/app"
	"tableflip.dev/memo/pkg/printers"
)

type Categories struct {
	Service *app.Service
	JSON    bool
	Out     io.Writer
}

func (n *Categories) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("categories: no service")
	}
	names, err := n.Service.Categories(ctx)
	if err != nil {
		return err
	}
	if n.JSON {
		return printers.JSON(n.Out, names)
	}
	pp := printers.PrettyPrint{Out: n.Out}
	pp.NewLine()
	pp.TitleWithCount("Categories", len(names), "category")
	pp.Categories(names)
	return nil
}
