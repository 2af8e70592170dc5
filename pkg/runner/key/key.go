// Package key provides CLI helpers to display the list marker legend.
package key

import (
	"context"
	"fmt"
	"io"
	"sort"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/memo/pkg/glyph"
)

// Key prints a glyph legend describing task state and priority markers.
type Key struct {
	Out io.Writer
}

// Do renders the marker and priority keys.
func (k *Key) Do(ctx context.Context) error {
	w := k.Out
	if w == nil {
		w = color.Output
	}
	_, _ = fmt.Fprintln(w, "")

	g := glyph.DefaultGlyphs()
	sort.Stable(glyph.ByOrder(g))

	k.Key(ctx, w, g, false)
	_, _ = fmt.Fprintln(w, "")
	k.Key(ctx, w, g, true)
	_, _ = fmt.Fprintln(w, "")
	return nil
}

// Key renders a glyph table; when priority is true, priority markers are shown.
func (k *Key) Key(_ context.Context, w io.Writer, glyfs []glyph.Glyph, priority bool) {
	bold := color.New(color.Bold)

	tbl := uitable.New()
	tbl.Separator = "  "
	if priority {
		tbl.AddRow(bold.Sprint("Priority"), bold.Sprint("Meaning"))
	} else {
		tbl.AddRow(bold.Sprint("  Marker"), bold.Sprint("Meaning"))
	}
	for _, v := range glyfs {
		if priority == v.Priority {
			tbl.AddRow(v.Symbol, v.Meaning)
		}
	}
	tbl.RightAlign(0)

	_, _ = fmt.Fprintln(w, tbl)
}
