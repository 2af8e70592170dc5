package tasks

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/memo/pkg/app"
	"tableflip.dev/memo/pkg/record"
	"tableflip.dev/memo/pkg/store"
	"tableflip.dev/memo/pkg/todo"
)

func init() {
	color.NoColor = true
}

type testConfig struct {
	path string
}

func (c testConfig) BasePath() string {
	return c.path
}

type answer bool

func (a answer) Confirm(string) (bool, error) { return bool(a), nil }

func newService(t *testing.T) *app.Service {
	t.Helper()
	p, err := store.Load(testConfig{path: t.TempDir()})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	svc := app.New(p)
	svc.Now = func() time.Time { return time.Date(2024, time.March, 10, 12, 0, 0, 0, time.Local) }
	return svc
}

func strp(s string) *string { return &s }

func TestAddBlankTitleSavesNothing(t *testing.T) {
	svc := newService(t)
	var buf bytes.Buffer
	a := Add{Service: svc, Draft: record.TodoDraft{Title: "  "}, Out: &buf}
	if err := a.Do(context.Background()); err != nil {
		t.Fatalf("add: %v", err)
	}
	if !strings.Contains(buf.String(), "nothing saved") {
		t.Fatalf("expected nothing saved message, got %q", buf.String())
	}
}

func TestEditAppliesOnlyChangedFields(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	saved, err := svc.SaveTodo(ctx, "", record.TodoDraft{Title: "Report", Due: "2024-03-12", Priority: "high", Category: "Work", Notes: "q1"})
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	var buf bytes.Buffer
	e := Edit{Service: svc, ID: saved.ID[:6], Changes: Changes{Category: strp("Freelance"), Due: strp("")}, Out: &buf}
	if err := e.Do(ctx); err != nil {
		t.Fatalf("edit: %v", err)
	}
	got, err := svc.ResolveTodo(ctx, saved.ID)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if got.Title != "Report" || got.Priority != record.PriorityHigh || got.Notes != "q1" {
		t.Fatalf("unchanged fields lost: %+v", got)
	}
	if got.Category != "Freelance" || got.HasDueDate() {
		t.Fatalf("changes not applied: %+v", got)
	}
}

func TestListJSONAndEmptyMessages(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	var buf bytes.Buffer
	l := List{Service: svc, Out: &buf}
	if err := l.Do(ctx); err != nil {
		t.Fatalf("list: %v", err)
	}
	if !strings.Contains(buf.String(), "No tasks yet. Add your first task!") {
		t.Fatalf("expected empty collection message, got %q", buf.String())
	}

	if _, err := svc.SaveTodo(ctx, "", record.TodoDraft{Title: "Milk", Category: "Shopping"}); err != nil {
		t.Fatalf("save: %v", err)
	}
	buf.Reset()
	l = List{Service: svc, Query: todo.Query{Status: todo.StatusCompleted}, Out: &buf}
	if err := l.Do(ctx); err != nil {
		t.Fatalf("list: %v", err)
	}
	if !strings.Contains(buf.String(), "No matching tasks found") {
		t.Fatalf("expected no matches message, got %q", buf.String())
	}

	buf.Reset()
	l = List{Service: svc, JSON: true, Out: &buf}
	if err := l.Do(ctx); err != nil {
		t.Fatalf("list: %v", err)
	}
	var decoded []map[string]any
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("decode %q: %v", buf.String(), err)
	}
	if len(decoded) != 1 || decoded[0]["title"] != "Milk" || decoded[0]["dueDate"] != "" {
		t.Fatalf("unexpected json %v", decoded)
	}
}

func TestToggleAndShow(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	saved, err := svc.SaveTodo(ctx, "", record.TodoDraft{Title: "Call mom", Notes: "Sunday"})
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	var buf bytes.Buffer
	if err := (&Toggle{Service: svc, ID: saved.ID, Out: &buf}).Do(ctx); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if !strings.Contains(buf.String(), "completed") {
		t.Fatalf("unexpected toggle output %q", buf.String())
	}

	buf.Reset()
	if err := (&Show{Service: svc, ID: saved.ID, Out: &buf}).Do(ctx); err != nil {
		t.Fatalf("show: %v", err)
	}
	for _, want := range []string{"Call mom", "Completed", "Sunday"} {
		if !strings.Contains(buf.String(), want) {
			t.Fatalf("show output missing %q:\n%s", want, buf.String())
		}
	}
}

func TestRemoveRespectsConfirmation(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	saved, err := svc.SaveTodo(ctx, "", record.TodoDraft{Title: "Keep me"})
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	var buf bytes.Buffer
	if err := (&Remove{Service: svc, ID: saved.ID, Confirm: answer(false), Out: &buf}).Do(ctx); err != nil {
		t.Fatalf("declined remove should not error: %v", err)
	}
	if all, _ := svc.Todos(ctx); len(all) != 1 {
		t.Fatalf("declined remove deleted the task")
	}

	if err := (&Remove{Service: svc, ID: saved.ID, Confirm: answer(true), Out: &buf}).Do(ctx); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if all, _ := svc.Todos(ctx); len(all) != 0 {
		t.Fatalf("remove did not delete the task")
	}
}

func TestClear(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	for _, title := range []string{"a", "b"} {
		if _, err := svc.SaveTodo(ctx, "", record.TodoDraft{Title: title}); err != nil {
			t.Fatalf("save: %v", err)
		}
	}
	var buf bytes.Buffer
	if err := (&Clear{Service: svc, Confirm: answer(true), Out: &buf}).Do(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if all, _ := svc.Todos(ctx); len(all) != 0 {
		t.Fatalf("expected no tasks after clear, got %d", len(all))
	}
}

func TestCalendar(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	if _, err := svc.SaveTodo(ctx, "", record.TodoDraft{Title: "Dentist", Due: "2024-03-12"}); err != nil {
		t.Fatalf("save: %v", err)
	}
	var buf bytes.Buffer
	if err := (&Calendar{Service: svc, Months: 2, Out: &buf}).Do(ctx); err != nil {
		t.Fatalf("calendar: %v", err)
	}
	if !strings.Contains(buf.String(), "March 2024") || !strings.Contains(buf.String(), "April 2024") {
		t.Fatalf("expected two months:\n%s", buf.String())
	}

	buf.Reset()
	if err := (&Calendar{Service: svc, Long: true, Out: &buf}).Do(ctx); err != nil {
		t.Fatalf("calendar: %v", err)
	}
	if !strings.Contains(buf.String(), "Dentist") {
		t.Fatalf("long calendar missing task:\n%s", buf.String())
	}
}
