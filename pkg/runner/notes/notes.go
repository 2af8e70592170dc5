// Package notes runs the note commands.
package notes

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"

	"tableflip.dev/memo/pkg/app"
	"tableflip.dev/memo/pkg/confirm"
	"tableflip.dev/memo/pkg/printers"
)

var errNoService = errors.New("notes: no service")

func out(w io.Writer) io.Writer {
	if w == nil {
		return color.Output
	}
	return w
}

type Add struct {
	Service *app.Service
	Title   string
	Content string
	JSON    bool
	Out     io.Writer
}

func (n *Add) Do(ctx context.Context) error {
	if n.Service == nil {
		return errNoService
	}
	saved, err := n.Service.SaveNote(ctx, "", n.Title, n.Content)
	if err != nil {
		return err
	}
	if saved == nil {
		_, _ = fmt.Fprintln(out(n.Out), "nothing saved: a note needs a title or content")
		return nil
	}
	if n.JSON {
		return printers.JSON(n.Out, saved)
	}
	_, _ = fmt.Fprintf(out(n.Out), "saved note %s %q\n", printers.ShortID(saved.ID), saved.Title)
	return nil
}

// Edit replaces a note. Nil fields keep their current value.
type Edit struct {
	Service *app.Service
	ID      string
	Title   *string
	Content *string
	JSON    bool
	Out     io.Writer
}

func (n *Edit) Do(ctx context.Context) error {
	if n.Service == nil {
		return errNoService
	}
	cur, err := n.Service.ResolveNote(ctx, n.ID)
	if err != nil {
		return err
	}
	title, content := cur.Title, cur.Content
	if n.Title != nil {
		title = *n.Title
	}
	if n.Content != nil {
		content = *n.Content
	}
	saved, err := n.Service.SaveNote(ctx, cur.ID, title, content)
	if err != nil {
		return err
	}
	if saved == nil {
		_, _ = fmt.Fprintln(out(n.Out), "nothing saved: a note needs a title or content")
		return nil
	}
	if n.JSON {
		return printers.JSON(n.Out, saved)
	}
	_, _ = fmt.Fprintf(out(n.Out), "updated note %s %q\n", printers.ShortID(saved.ID), saved.Title)
	return nil
}

type List struct {
	Service *app.Service
	Search  string
	ShowID  bool
	JSON    bool
	Out     io.Writer
}

func (n *List) Do(ctx context.Context) error {
	if n.Service == nil {
		return errNoService
	}
	all, err := n.Service.SearchNotes(ctx, n.Search)
	if err != nil {
		return err
	}
	if n.JSON {
		return printers.JSON(n.Out, all)
	}
	pp := printers.PrettyPrint{Out: n.Out, ShowID: n.ShowID}
	pp.NewLine()
	pp.TitleWithCount("Notes", len(all), "note")
	if len(all) == 0 {
		pp.Empty("note", n.Search != "")
		return nil
	}
	pp.Notes(all...)
	return nil
}

type Remove struct {
	Service *app.Service
	ID      string
	Confirm confirm.Prompter
	Out     io.Writer
}

func (n *Remove) Do(ctx context.Context) error {
	if n.Service == nil {
		return errNoService
	}
	cur, err := n.Service.ResolveNote(ctx, n.ID)
	if err != nil {
		return err
	}
	if ok, err := ask(n.Confirm, fmt.Sprintf("Delete note %q", cur.Title)); err != nil || !ok {
		return err
	}
	if _, err := n.Service.DeleteNote(ctx, cur.ID); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(out(n.Out), "deleted note %s\n", printers.ShortID(cur.ID))
	return nil
}

type Clear struct {
	Service *app.Service
	Confirm confirm.Prompter
	Out     io.Writer
}

func (n *Clear) Do(ctx context.Context) error {
	if n.Service == nil {
		return errNoService
	}
	if ok, err := ask(n.Confirm, "Delete all notes"); err != nil || !ok {
		return err
	}
	if err := n.Service.DeleteAllNotes(ctx); err != nil {
		return err
	}
	_, _ = fmt.Fprintln(out(n.Out), "deleted all notes")
	return nil
}

func ask(p confirm.Prompter, label string) (bool, error) {
	if p == nil {
		p = confirm.Prompt{}
	}
	return p.Confirm(label)
}
