package options

import (
	"bytes"
	"errors"
	"testing"

	"github.com/spf13/cobra"

	"tableflip.dev/memo/pkg/confirm"
	"tableflip.dev/memo/pkg/todo"
)

func TestHandleErrorJSON(t *testing.T) {
	var buf bytes.Buffer
	o := &OutputOptions{JSON: true, Out: &buf}
	err := o.HandleError(errors.New("boom"))
	if !errors.Is(err, ErrReported) {
		t.Fatalf("expected ErrReported, got %v", err)
	}
	if got := buf.String(); got != "{\"error\":\"boom\"}\n" {
		t.Fatalf("unexpected output %q", got)
	}
	if err := o.HandleError(nil); err != nil {
		t.Fatalf("nil should pass through, got %v", err)
	}
}

func TestHandleErrorPlain(t *testing.T) {
	o := &OutputOptions{}
	want := errors.New("boom")
	if err := o.HandleError(want); err != want {
		t.Fatalf("expected error to pass through, got %v", err)
	}
}

func TestQueryDefaults(t *testing.T) {
	cmd := &cobra.Command{Use: "list"}
	o := &QueryOptions{}
	AddQueryArgs(cmd, o)
	if err := cmd.ParseFlags([]string{"--status", "Overdue", "--sort", "alpha"}); err != nil {
		t.Fatalf("parse: %v", err)
	}
	q, err := o.Query()
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	want := todo.Query{Status: todo.StatusOverdue, Category: todo.AllCategories, Sort: todo.SortAlpha}
	if q != want {
		t.Fatalf("expected %+v, got %+v", want, q)
	}

	o.Sort = "random"
	if _, err := o.Query(); err == nil {
		t.Fatalf("expected error for unknown sort")
	}
}

func TestTodoChangesOnlySetFlags(t *testing.T) {
	cmd := &cobra.Command{Use: "edit"}
	o := &TodoOptions{}
	AddTodoArgs(cmd, o, true)
	if err := cmd.ParseFlags([]string{"--due", "", "--category", "Work"}); err != nil {
		t.Fatalf("parse: %v", err)
	}
	c := o.Changes(cmd)
	if c.Title != nil || c.Priority != nil || c.Notes != nil {
		t.Fatalf("unset flags should stay nil: %+v", c)
	}
	if c.Due == nil || *c.Due != "" || c.Category == nil || *c.Category != "Work" {
		t.Fatalf("set flags missing: %+v", c)
	}
}

func TestConfirmPrompter(t *testing.T) {
	cmd := &cobra.Command{Use: "rm"}
	if _, ok := (&ConfirmOptions{Yes: true}).Prompter(cmd).(confirm.Always); !ok {
		t.Fatalf("--yes should skip the prompt")
	}
	if _, ok := (&ConfirmOptions{}).Prompter(cmd).(confirm.Prompt); !ok {
		t.Fatalf("expected an interactive prompt")
	}
}

func TestShowIDFlag(t *testing.T) {
	cmd := &cobra.Command{Use: "list"}
	o := &IDOptions{}
	AddShowIDArgs(cmd, o)
	if err := cmd.ParseFlags([]string{"-k"}); err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !o.ShowID {
		t.Fatalf("-k should set ShowID")
	}
}
