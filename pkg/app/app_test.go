package app

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"tableflip.dev/memo/pkg/record"
	"tableflip.dev/memo/pkg/store"
	"tableflip.dev/memo/pkg/todo"
)

type testConfig struct {
	path string
}

func (c testConfig) BasePath() string {
	return c.path
}

var testNow = time.Date(2024, time.March, 10, 9, 30, 0, 0, time.Local)

func newTestService(t *testing.T) *Service {
	t.Helper()
	p, err := store.Load(testConfig{path: t.TempDir()})
	if err != nil {
		t.Fatalf("load store: %v", err)
	}
	svc := New(p)
	svc.Now = func() time.Time { return testNow }
	return svc
}

func TestSaveNoteDefaultsAndSkipsBlank(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	n, err := svc.SaveNote(ctx, "", "  ", "\t")
	if err != nil {
		t.Fatalf("save blank: %v", err)
	}
	if n != nil {
		t.Fatalf("blank note should not be saved, got %+v", n)
	}

	n, err = svc.SaveNote(ctx, "", "", "just content")
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if n == nil || n.Title != record.UntitledNote || n.ID == "" {
		t.Fatalf("unexpected note %+v", n)
	}
	all, err := svc.Notes(ctx)
	if err != nil {
		t.Fatalf("notes: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("expected 1 note, got %d", len(all))
	}
}

func TestSaveNoteEditReplacesInPlace(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	first, err := svc.SaveNote(ctx, "", "first", "a")
	if err != nil {
		t.Fatalf("save first: %v", err)
	}
	if _, err := svc.SaveNote(ctx, "", "second", "b"); err != nil {
		t.Fatalf("save second: %v", err)
	}

	later := testNow.Add(time.Hour)
	svc.Now = func() time.Time { return later }
	edited, err := svc.SaveNote(ctx, first.ID, "first edited", "a2")
	if err != nil {
		t.Fatalf("edit: %v", err)
	}
	if edited.ID != first.ID {
		t.Fatalf("edit changed id %q -> %q", first.ID, edited.ID)
	}
	if !edited.Created.Equal(later) {
		t.Fatalf("edit should refresh the timestamp, got %v", edited.Created)
	}

	all, err := svc.Notes(ctx)
	if err != nil {
		t.Fatalf("notes: %v", err)
	}
	if len(all) != 2 || all[0].Title != "first edited" || all[1].Title != "second" {
		t.Fatalf("unexpected notes %+v", all)
	}
}

func TestSearchNotes(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	for _, n := range [][2]string{{"Groceries", "milk"}, {"Ideas", "Build a MILK bar"}, {"Plans", "travel"}} {
		if _, err := svc.SaveNote(ctx, "", n[0], n[1]); err != nil {
			t.Fatalf("save: %v", err)
		}
	}
	got, err := svc.SearchNotes(ctx, "milk")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(got) != 2 || got[0].Title != "Groceries" || got[1].Title != "Ideas" {
		t.Fatalf("unexpected matches %+v", got)
	}
}

func TestDeleteNote(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	n, err := svc.SaveNote(ctx, "", "x", "")
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, err := svc.DeleteNote(ctx, n.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := svc.DeleteNote(ctx, n.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSaveTodoRegistersCategory(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	td, err := svc.SaveTodo(ctx, "", record.TodoDraft{Title: "Invoice", Category: " Freelance "})
	if err != nil {
		t.Fatalf("save todo: %v", err)
	}
	if td.Category != "Freelance" || td.Priority != record.PriorityMedium {
		t.Fatalf("unexpected todo %+v", td)
	}
	cats, err := svc.Categories(ctx)
	if err != nil {
		t.Fatalf("categories: %v", err)
	}
	want := []string{"Personal", "Work", "Shopping", "Health", "Other", "Freelance"}
	if !reflect.DeepEqual(cats, want) {
		t.Fatalf("expected %v, got %v", want, cats)
	}
}

func TestSaveTodoSurvivesCategoryWriteFailure(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	// A directory where the registry slot belongs makes its write fail.
	blocked := filepath.Join(svc.Persistence.BasePath(), string(store.SlotCategories))
	if err := os.MkdirAll(filepath.Join(blocked, "keep"), 0o755); err != nil {
		t.Fatal(err)
	}

	td, err := svc.SaveTodo(ctx, "", record.TodoDraft{Title: "Invoice", Category: "Freelance"})
	if err != nil {
		t.Fatalf("save todo: %v", err)
	}
	if td == nil || td.ID == "" {
		t.Fatalf("expected the saved todo, got %+v", td)
	}
	all, err := svc.Todos(ctx)
	if err != nil {
		t.Fatalf("todos: %v", err)
	}
	if len(all) != 1 || all[0].ID != td.ID {
		t.Fatalf("todo not persisted: %+v", all)
	}
}

func TestChangesReportsWrites(t *testing.T) {
	svc := newTestService(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := svc.Changes(ctx)
	if err != nil {
		t.Fatalf("changes: %v", err)
	}
	if _, err := svc.SaveNote(context.Background(), "", "Groceries", "milk"); err != nil {
		t.Fatalf("save note: %v", err)
	}
	select {
	case ev := <-ch:
		if ev.Slot != store.SlotNotes {
			t.Fatalf("unexpected event %+v", ev)
		}
	default:
		t.Fatalf("expected a change event for the notes slot")
	}
}

func TestSaveTodoBlankAndInvalid(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	td, err := svc.SaveTodo(ctx, "", record.TodoDraft{Title: "   "})
	if err != nil || td != nil {
		t.Fatalf("blank title should be a no-op, got %+v, %v", td, err)
	}
	if _, err := svc.SaveTodo(ctx, "", record.TodoDraft{Title: "x", Priority: "urgent"}); err == nil {
		t.Fatalf("expected invalid priority error")
	}
	all, err := svc.Todos(ctx)
	if err != nil {
		t.Fatalf("todos: %v", err)
	}
	if len(all) != 0 {
		t.Fatalf("nothing should be saved, got %d", len(all))
	}
}

func TestEditTodoKeepsCompletion(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	td, err := svc.SaveTodo(ctx, "", record.TodoDraft{Title: "Pay rent", Priority: "high"})
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	toggled, err := svc.ToggleTodo(ctx, td.ID)
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if !toggled.Completed {
		t.Fatalf("expected completed after toggle")
	}

	edited, err := svc.SaveTodo(ctx, td.ID, record.TodoDraft{Title: "Pay rent today", Priority: "low"})
	if err != nil {
		t.Fatalf("edit: %v", err)
	}
	if !edited.Completed || edited.Priority != record.PriorityLow || edited.ID != td.ID {
		t.Fatalf("edit lost state: %+v", edited)
	}

	if _, err := svc.SaveTodo(ctx, "missing", record.TodoDraft{Title: "x"}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown id, got %v", err)
	}
}

func TestQueryTodosAndStats(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	drafts := []record.TodoDraft{
		{Title: "Late", Due: "2024-03-01", Priority: "low"},
		{Title: "Now", Due: "2024-03-10", Priority: "high"},
		{Title: "Soon", Due: "2024-03-15"},
		{Title: "Someday"},
	}
	for _, d := range drafts {
		if _, err := svc.SaveTodo(ctx, "", d); err != nil {
			t.Fatalf("save %s: %v", d.Title, err)
		}
	}

	got, err := svc.QueryTodos(ctx, todo.Query{Status: todo.StatusUpcoming, Sort: todo.SortDateDesc})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(got) != 2 || got[0].Title != "Soon" || got[1].Title != "Now" {
		t.Fatalf("unexpected upcoming %+v", got)
	}

	st, err := svc.Stats(ctx)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	want := todo.Stats{Total: 4, Active: 4, Overdue: 1, DueToday: 1}
	if st != want {
		t.Fatalf("expected %+v, got %+v", want, st)
	}
}

func TestDeleteAllTodosKeepsCategories(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	if _, err := svc.SaveTodo(ctx, "", record.TodoDraft{Title: "a", Category: "Garden"}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := svc.DeleteAllTodos(ctx); err != nil {
		t.Fatalf("delete all: %v", err)
	}
	all, err := svc.Todos(ctx)
	if err != nil || len(all) != 0 {
		t.Fatalf("expected no todos, got %v %v", all, err)
	}
	cats, err := svc.Categories(ctx)
	if err != nil {
		t.Fatalf("categories: %v", err)
	}
	if cats[len(cats)-1] != "Garden" {
		t.Fatalf("registry should never shrink, got %v", cats)
	}
}

func TestResolvePrefix(t *testing.T) {
	notes := []record.Note{{ID: "abc123"}, {ID: "abd456"}, {ID: "ab"}}
	if n, err := resolve(notes, "abc"); err != nil || n.ID != "abc123" {
		t.Fatalf("expected abc123, got %+v %v", n, err)
	}
	if n, err := resolve(notes, "AB"); err != nil || n.ID != "ab" {
		t.Fatalf("exact match should win, got %+v %v", n, err)
	}
	if _, err := resolve(notes, "abd4"); err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if _, err := resolve([]record.Note{{ID: "abc1"}, {ID: "abc2"}}, "abc"); !errors.Is(err, ErrAmbiguous) {
		t.Fatalf("expected ErrAmbiguous, got %v", err)
	}
	if _, err := resolve(notes, "zzz"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := resolve(notes, " "); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for empty prefix, got %v", err)
	}
}

func TestResolveTodoByShortID(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	td, err := svc.SaveTodo(ctx, "", record.TodoDraft{Title: "short"})
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := svc.ResolveTodo(ctx, td.ID[:8])
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if got.ID != td.ID {
		t.Fatalf("resolved %q, want %q", got.ID, td.ID)
	}
}

func TestTheme(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	th, err := svc.Theme(ctx)
	if err != nil || th != ThemeLight {
		t.Fatalf("expected default light, got %q %v", th, err)
	}
	th, err = svc.ToggleTheme(ctx)
	if err != nil || th != ThemeDark {
		t.Fatalf("expected dark after toggle, got %q %v", th, err)
	}
	data, ok, err := svc.Persistence.Read(store.SlotTheme)
	if err != nil || !ok || string(data) != "dark" {
		t.Fatalf("theme slot holds %q (ok=%v err=%v)", data, ok, err)
	}

	if err := svc.Persistence.Write(store.SlotTheme, []byte("neon")); err != nil {
		t.Fatalf("write: %v", err)
	}
	svc.DefaultTheme = ThemeDark
	if th, err := svc.Theme(ctx); err != nil || th != ThemeDark {
		t.Fatalf("corrupt theme should fall back to default, got %q %v", th, err)
	}
	if err := svc.SetTheme(ctx, Theme("neon")); err == nil {
		t.Fatalf("expected error for unknown theme")
	}
}

func TestServiceWithoutPersistence(t *testing.T) {
	svc := &Service{}
	if _, err := svc.Notes(context.Background()); err == nil {
		t.Fatalf("expected error without persistence")
	}
	if _, err := svc.Changes(context.Background()); err == nil {
		t.Fatalf("expected error subscribing without persistence")
	}
}
