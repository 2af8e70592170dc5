package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"tableflip.dev/memo/pkg/category"
	"tableflip.dev/memo/pkg/logging"
	"tableflip.dev/memo/pkg/record"
	"tableflip.dev/memo/pkg/store"
	"tableflip.dev/memo/pkg/todo"
)

var (
	// ErrNotFound is returned when no note or todo matches an id.
	ErrNotFound = errors.New("app: record not found")
	// ErrAmbiguous is returned when an id prefix matches more than one record.
	ErrAmbiguous = errors.New("app: id prefix is ambiguous")
)

var errNoPersistence = errors.New("app: no persistence configured")

// Service provides high-level operations for notes, todos, categories and
// the theme. It wraps persistence so the CLI and the TUI share logic.
type Service struct {
	Persistence *store.Persistence
	// Now is the clock used for timestamps and for "today".
	Now func() time.Time
	// DefaultTheme is reported while the theme slot is empty.
	DefaultTheme Theme

	notes      *store.Collection[record.Note]
	todos      *store.Collection[record.Todo]
	categories *category.Registry
	log        *log.Logger
}

// New builds a Service over p.
func New(p *store.Persistence) *Service {
	s := &Service{
		Persistence:  p,
		Now:          time.Now,
		DefaultTheme: ThemeLight,
	}
	if p != nil {
		s.log = p.Logger()
		if s.log == nil {
			s.log = logging.Discard()
		}
		s.notes = store.NewCollection[record.Note](p, store.SlotNotes, nil)
		s.todos = store.NewCollection(p, store.SlotTodos, func(prev, next record.Todo) record.Todo {
			return next.CarryState(prev)
		})
		s.categories = category.New(p, s.log)
	}
	return s
}

func (s *Service) ready() error {
	if s == nil || s.Persistence == nil || s.notes == nil {
		return errNoPersistence
	}
	return nil
}

func (s *Service) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}

// Today is the calendar day todos are judged against.
func (s *Service) Today() record.Date {
	return record.DateOf(s.now())
}

// Changes reports slot writes made through this process until ctx is done.
func (s *Service) Changes(ctx context.Context) (<-chan store.Event, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	return s.Persistence.Changes(ctx), nil
}

// Watch reports slot changes made by this or any other process.
func (s *Service) Watch(ctx context.Context) (<-chan store.Event, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	return s.Persistence.Watch(ctx)
}

// Notes lists every note in stored order.
func (s *Service) Notes(ctx context.Context) ([]record.Note, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	return s.notes.LoadAll(ctx)
}

// SearchNotes lists notes whose title or content contains term.
func (s *Service) SearchNotes(ctx context.Context, term string) ([]record.Note, error) {
	all, err := s.Notes(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]record.Note, 0, len(all))
	for _, n := range all {
		if n.Matches(term) {
			out = append(out, n)
		}
	}
	return out, nil
}

// SaveNote appends a new note, or replaces the note with id when id is set.
// A note with neither title nor content is not saved and nil is returned.
func (s *Service) SaveNote(ctx context.Context, id, title, content string) (*record.Note, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	n, ok := record.NewNote(title, content, s.now())
	if !ok {
		return nil, nil
	}
	saved, err := s.notes.Save(ctx, n, id)
	if err != nil {
		return nil, translate(err)
	}
	return &saved, nil
}

// DeleteNote removes the note with id.
func (s *Service) DeleteNote(ctx context.Context, id string) (record.Note, error) {
	if err := s.ready(); err != nil {
		return record.Note{}, err
	}
	n, err := s.notes.Delete(ctx, id)
	return n, translate(err)
}

// DeleteAllNotes removes every note.
func (s *Service) DeleteAllNotes(ctx context.Context) error {
	if err := s.ready(); err != nil {
		return err
	}
	return s.notes.DeleteAll(ctx)
}

// Todos lists every todo in stored order.
func (s *Service) Todos(ctx context.Context) ([]record.Todo, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	return s.todos.LoadAll(ctx)
}

// QueryTodos filters and sorts the todo collection.
func (s *Service) QueryTodos(ctx context.Context, q todo.Query) ([]record.Todo, error) {
	all, err := s.Todos(ctx)
	if err != nil {
		return nil, err
	}
	return todo.Run(all, q, s.now()), nil
}

// SaveTodo appends a new todo, or replaces the todo with id when id is set,
// keeping its completion state. The todo's category is registered; a
// registry failure is logged and does not fail the save. A draft with a
// blank title is not saved and nil is returned.
func (s *Service) SaveTodo(ctx context.Context, id string, d record.TodoDraft) (*record.Todo, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	t, ok, err := record.NewTodo(d, s.now())
	if err != nil {
		return nil, fmt.Errorf("app: invalid todo: %w", err)
	}
	if !ok {
		return nil, nil
	}
	saved, err := s.todos.Save(ctx, t, id)
	if err != nil {
		return nil, translate(err)
	}
	if _, err := s.categories.Ensure(ctx, saved.Category); err != nil {
		s.log.Warn("todo saved but category not registered", "category", saved.Category, "err", err)
	}
	return &saved, nil
}

// ToggleTodo flips the completion state of the todo with id.
func (s *Service) ToggleTodo(ctx context.Context, id string) (record.Todo, error) {
	if err := s.ready(); err != nil {
		return record.Todo{}, err
	}
	t, err := s.todos.Update(ctx, id, func(t record.Todo) record.Todo {
		t.Completed = !t.Completed
		return t
	})
	return t, translate(err)
}

// DeleteTodo removes the todo with id.
func (s *Service) DeleteTodo(ctx context.Context, id string) (record.Todo, error) {
	if err := s.ready(); err != nil {
		return record.Todo{}, err
	}
	t, err := s.todos.Delete(ctx, id)
	return t, translate(err)
}

// DeleteAllTodos removes every todo. The category registry is kept.
func (s *Service) DeleteAllTodos(ctx context.Context) error {
	if err := s.ready(); err != nil {
		return err
	}
	return s.todos.DeleteAll(ctx)
}

// Stats summarises the whole todo collection.
func (s *Service) Stats(ctx context.Context) (todo.Stats, error) {
	all, err := s.Todos(ctx)
	if err != nil {
		return todo.Stats{}, err
	}
	return todo.Summarize(all, s.now()), nil
}

// Categories lists the registered categories in insertion order.
func (s *Service) Categories(ctx context.Context) ([]string, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	return s.categories.List(ctx)
}

// ResolveNote finds the note whose id is, or starts with, prefix.
func (s *Service) ResolveNote(ctx context.Context, prefix string) (record.Note, error) {
	all, err := s.Notes(ctx)
	if err != nil {
		return record.Note{}, err
	}
	return resolve(all, prefix)
}

// ResolveTodo finds the todo whose id is, or starts with, prefix.
func (s *Service) ResolveTodo(ctx context.Context, prefix string) (record.Todo, error) {
	all, err := s.Todos(ctx)
	if err != nil {
		return record.Todo{}, err
	}
	return resolve(all, prefix)
}

func resolve[T store.Record[T]](all []T, prefix string) (T, error) {
	var zero T
	prefix = strings.ToLower(strings.TrimSpace(prefix))
	if prefix == "" {
		return zero, fmt.Errorf("%w: empty id", ErrNotFound)
	}
	var (
		match T
		count int
	)
	for _, rec := range all {
		id := strings.ToLower(rec.RecordID())
		if id == prefix {
			return rec, nil
		}
		if strings.HasPrefix(id, prefix) {
			match = rec
			count++
		}
	}
	switch count {
	case 0:
		return zero, fmt.Errorf("%w: %s", ErrNotFound, prefix)
	case 1:
		return match, nil
	default:
		return zero, fmt.Errorf("%w: %s matches %d records", ErrAmbiguous, prefix, count)
	}
}

func translate(err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("%w: %v", ErrNotFound, err)
	}
	return err
}
