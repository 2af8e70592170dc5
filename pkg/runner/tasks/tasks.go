// Package tasks runs the todo commands.
package tasks

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"

	"tableflip.dev/memo/pkg/app"
	"tableflip.dev/memo/pkg/confirm"
	"tableflip.dev/memo/pkg/printers"
	"tableflip.dev/memo/pkg/record"
	"tableflip.dev/memo/pkg/todo"
)

var errNoService = errors.New("tasks: no service")

func out(w io.Writer) io.Writer {
	if w == nil {
		return color.Output
	}
	return w
}

type Add struct {
	Service *app.Service
	Draft   record.TodoDraft
	JSON    bool
	Out     io.Writer
}

func (n *Add) Do(ctx context.Context) error {
	if n.Service == nil {
		return errNoService
	}
	saved, err := n.Service.SaveTodo(ctx, "", n.Draft)
	if err != nil {
		return err
	}
	return report(n.Out, n.JSON, "saved", saved)
}

// Changes holds the fields an edit sets. Nil fields keep their value.
type Changes struct {
	Title    *string
	Due      *string
	Priority *string
	Category *string
	Notes    *string
}

// Apply overlays c on d.
func (c Changes) Apply(d record.TodoDraft) record.TodoDraft {
	set := func(dst *string, v *string) {
		if v != nil {
			*dst = *v
		}
	}
	set(&d.Title, c.Title)
	set(&d.Due, c.Due)
	set(&d.Priority, c.Priority)
	set(&d.Category, c.Category)
	set(&d.Notes, c.Notes)
	return d
}

type Edit struct {
	Service *app.Service
	ID      string
	Changes Changes
	JSON    bool
	Out     io.Writer
}

func (n *Edit) Do(ctx context.Context) error {
	if n.Service == nil {
		return errNoService
	}
	cur, err := n.Service.ResolveTodo(ctx, n.ID)
	if err != nil {
		return err
	}
	saved, err := n.Service.SaveTodo(ctx, cur.ID, n.Changes.Apply(cur.Draft()))
	if err != nil {
		return err
	}
	return report(n.Out, n.JSON, "updated", saved)
}

func report(w io.Writer, asJSON bool, verb string, saved *record.Todo) error {
	if saved == nil {
		_, _ = fmt.Fprintln(out(w), "nothing saved: a task needs a title")
		return nil
	}
	if asJSON {
		return printers.JSON(w, saved)
	}
	_, _ = fmt.Fprintf(out(w), "%s task %s %q\n", verb, printers.ShortID(saved.ID), saved.Title)
	return nil
}

type List struct {
	Service *app.Service
	Query   todo.Query
	ShowID  bool
	JSON    bool
	Out     io.Writer
}

func (n *List) Do(ctx context.Context) error {
	if n.Service == nil {
		return errNoService
	}
	all, err := n.Service.QueryTodos(ctx, n.Query)
	if err != nil {
		return err
	}
	if n.JSON {
		return printers.JSON(n.Out, all)
	}
	pp := printers.PrettyPrint{Out: n.Out, ShowID: n.ShowID, Today: n.Service.Today()}
	pp.NewLine()
	status := n.Query.Status
	if status == "" {
		status = todo.StatusAll
	}
	pp.TitleWithCount(status.Label(), len(all), "task")
	if len(all) == 0 {
		pp.Empty("task", !n.Query.IsZero())
		return nil
	}
	pp.Todos(all...)
	return nil
}

type Show struct {
	Service *app.Service
	ID      string
	JSON    bool
	Out     io.Writer
}

func (n *Show) Do(ctx context.Context) error {
	if n.Service == nil {
		return errNoService
	}
	t, err := n.Service.ResolveTodo(ctx, n.ID)
	if err != nil {
		return err
	}
	if n.JSON {
		return printers.JSON(n.Out, t)
	}
	pp := printers.PrettyPrint{Out: n.Out, Today: n.Service.Today()}
	pp.NewLine()
	pp.TodoDetails(t)
	return nil
}

// Toggle flips a todo between active and completed.
type Toggle struct {
	Service *app.Service
	ID      string
	JSON    bool
	Out     io.Writer
}

func (n *Toggle) Do(ctx context.Context) error {
	if n.Service == nil {
		return errNoService
	}
	cur, err := n.Service.ResolveTodo(ctx, n.ID)
	if err != nil {
		return err
	}
	t, err := n.Service.ToggleTodo(ctx, cur.ID)
	if err != nil {
		return err
	}
	if n.JSON {
		return printers.JSON(n.Out, t)
	}
	state := "active"
	if t.Completed {
		state = "completed"
	}
	_, _ = fmt.Fprintf(out(n.Out), "marked %s %q %s\n", printers.ShortID(t.ID), t.Title, state)
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
	cur, err := n.Service.ResolveTodo(ctx, n.ID)
	if err != nil {
		return err
	}
	if ok, err := ask(n.Confirm, fmt.Sprintf("Delete task %q", cur.Title)); err != nil || !ok {
		return err
	}
	if _, err := n.Service.DeleteTodo(ctx, cur.ID); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(out(n.Out), "deleted task %s\n", printers.ShortID(cur.ID))
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
	if ok, err := ask(n.Confirm, "Delete all tasks"); err != nil || !ok {
		return err
	}
	if err := n.Service.DeleteAllTodos(ctx); err != nil {
		return err
	}
	_, _ = fmt.Fprintln(out(n.Out), "deleted all tasks")
	return nil
}

func ask(p confirm.Prompter, label string) (bool, error) {
	if p == nil {
		p = confirm.Prompt{}
	}
	return p.Confirm(label)
}
