// Package tui is memo's interactive terminal UI.
package tui

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"tableflip.dev/memo/pkg/app"
	"tableflip.dev/memo/pkg/record"
	"tableflip.dev/memo/pkg/store"
	"tableflip.dev/memo/pkg/todo"
)

type tab int

const (
	tabTodos tab = iota
	tabNotes
)

type mode int

const (
	modeList mode = iota
	modeForm
	modeSearch
	modeConfirm
	modeDetail
	modeHelp
)

// Model is the Bubble Tea model for memo.
type Model struct {
	svc    *app.Service
	ctx    context.Context
	cancel context.CancelFunc

	tab    tab
	mode   mode
	cursor int

	notes      []record.Note
	todos      []record.Todo
	stats      todo.Stats
	categories []string
	noteSearch string
	query      todo.Query

	input  textinput.Model
	form   *form
	status string

	pendingDelete string
	deleteAll     bool

	theme  app.Theme
	styles Styles
	width  int
	height int

	watchCh     <-chan store.Event
	watchCancel context.CancelFunc
	changes     <-chan store.Event
}

// New creates a UI model backed by svc.
func New(svc *app.Service) *Model {
	ti := textinput.New()
	ti.Width = 60

	ctx, cancel := context.WithCancel(context.Background())
	m := &Model{
		svc:    svc,
		ctx:    ctx,
		cancel: cancel,
		mode:   modeList,
		input:  ti,
		query: todo.Query{
			Status:   todo.StatusAll,
			Category: todo.AllCategories,
			Sort:     todo.SortDateAsc,
		},
		theme:  app.ThemeLight,
		status: "Press ? for help.",
	}
	m.styles = StylesFor(m.theme)
	if svc != nil {
		if ch, err := svc.Changes(ctx); err == nil {
			m.changes = ch
		}
	}
	return m
}

// Run starts the UI and blocks until the user quits.
func Run(svc *app.Service) error {
	m := New(svc)
	defer m.cancel()
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

type reloadMsg struct{}

type watchStartedMsg struct {
	ch     <-chan store.Event
	cancel context.CancelFunc
	err    error
}

type watchEventMsg struct {
	event store.Event
}

type watchStoppedMsg struct{}

type changeMsg struct {
	event store.Event
}

type changesClosedMsg struct{}

// Init loads initial data and starts watching the store.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(func() tea.Msg { return reloadMsg{} }, startWatchCmd(m.ctx, m.svc), m.waitForChange())
}

// waitForChange delivers the next in-process write to the store.
func (m *Model) waitForChange() tea.Cmd {
	if m.changes == nil {
		return nil
	}
	ch := m.changes
	return func() tea.Msg {
		if ev, ok := <-ch; ok {
			return changeMsg{event: ev}
		}
		return changesClosedMsg{}
	}
}

func startWatchCmd(parent context.Context, svc *app.Service) tea.Cmd {
	if svc == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithCancel(parent)
		ch, err := svc.Watch(ctx)
		if err != nil {
			cancel()
			return watchStartedMsg{err: err}
		}
		return watchStartedMsg{ch: ch, cancel: cancel}
	}
}

func (m *Model) waitForWatch() tea.Cmd {
	if m.watchCh == nil {
		return nil
	}
	ch := m.watchCh
	return func() tea.Msg {
		if ev, ok := <-ch; ok {
			return watchEventMsg{event: ev}
		}
		return watchStoppedMsg{}
	}
}

func (m *Model) stopWatch() {
	if m.watchCancel != nil {
		m.watchCancel()
		m.watchCancel = nil
	}
	m.watchCh = nil
}

// reload reads everything the views show from the service.
func (m *Model) reload() {
	if m.svc == nil {
		return
	}
	var err error
	if m.notes, err = m.svc.SearchNotes(m.ctx, m.noteSearch); err != nil {
		m.status = fmt.Sprintf("load notes failed: %v", err)
		return
	}
	if m.todos, err = m.svc.QueryTodos(m.ctx, m.query); err != nil {
		m.status = fmt.Sprintf("load tasks failed: %v", err)
		return
	}
	if m.stats, err = m.svc.Stats(m.ctx); err != nil {
		m.status = fmt.Sprintf("load stats failed: %v", err)
		return
	}
	if m.categories, err = m.svc.Categories(m.ctx); err != nil {
		m.status = fmt.Sprintf("load categories failed: %v", err)
		return
	}
	th, err := m.svc.Theme(m.ctx)
	if err != nil {
		m.status = fmt.Sprintf("load theme failed: %v", err)
		return
	}
	m.setTheme(th)
	m.cursor = clampCursor(m.cursor, m.rows())
}

func (m *Model) setTheme(t app.Theme) {
	if t == m.theme {
		return
	}
	m.theme = t
	m.styles = StylesFor(t)
}

func (m *Model) rows() int {
	if m.tab == tabNotes {
		return len(m.notes)
	}
	return len(m.todos)
}

func (m *Model) selectedTodo() (record.Todo, bool) {
	if m.tab != tabTodos || m.cursor >= len(m.todos) {
		return record.Todo{}, false
	}
	return m.todos[m.cursor], true
}

func (m *Model) selectedNote() (record.Note, bool) {
	if m.tab != tabNotes || m.cursor >= len(m.notes) {
		return record.Note{}, false
	}
	return m.notes[m.cursor], true
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case reloadMsg:
		m.reload()
		return m, nil
	case watchStartedMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("live reload unavailable: %v", msg.err)
			return m, nil
		}
		m.watchCh = msg.ch
		m.watchCancel = msg.cancel
		return m, m.waitForWatch()
	case watchEventMsg:
		m.reload()
		return m, m.waitForWatch()
	case watchStoppedMsg:
		m.watchCh = nil
		return m, nil
	case changeMsg:
		m.reload()
		return m, m.waitForChange()
	case changesClosedMsg:
		m.changes = nil
		return m, nil
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = max(msg.Width-10, 10)
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key == "ctrl+c" {
		return m.quit()
	}
	switch m.mode {
	case modeForm:
		return m.updateForm(key, msg)
	case modeSearch:
		return m.updateSearch(key, msg)
	case modeConfirm:
		return m.updateConfirm(key)
	case modeDetail, modeHelp:
		switch key {
		case "esc", "enter", "q", "?":
			m.mode = modeList
		}
		return m, nil
	}
	return m.updateList(key)
}

func (m *Model) quit() (tea.Model, tea.Cmd) {
	m.stopWatch()
	m.cancel()
	return m, tea.Quit
}

func (m *Model) updateList(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "q":
		return m.quit()
	case "?":
		m.mode = modeHelp
	case "tab":
		if m.tab == tabTodos {
			m.tab = tabNotes
		} else {
			m.tab = tabTodos
		}
		m.cursor = 0
	case "j", "down":
		m.cursor = clampCursor(m.cursor+1, m.rows())
	case "k", "up":
		m.cursor = clampCursor(m.cursor-1, m.rows())
	case "g", "home":
		m.cursor = 0
	case "G", "end":
		m.cursor = clampCursor(m.rows()-1, m.rows())
	case "a":
		if m.tab == tabNotes {
			m.startForm(newNoteForm("", record.Note{}))
		} else {
			m.startForm(newTodoForm("", record.TodoDraft{}))
		}
	case "e":
		if n, ok := m.selectedNote(); ok {
			m.startForm(newNoteForm(n.ID, n))
		} else if t, ok := m.selectedTodo(); ok {
			m.startForm(newTodoForm(t.ID, t.Draft()))
		}
	case " ", "x":
		if t, ok := m.selectedTodo(); ok {
			updated, err := m.svc.ToggleTodo(m.ctx, t.ID)
			if err != nil {
				m.status = fmt.Sprintf("toggle failed: %v", err)
				break
			}
			m.status = fmt.Sprintf("%q marked %s", updated.Title, completion(updated))
			m.reload()
		}
	case "enter":
		if m.rows() > 0 {
			m.mode = modeDetail
		}
	case "d":
		if n, ok := m.selectedNote(); ok {
			m.askDelete(n.ID, false, fmt.Sprintf("Delete note %q? (y/n)", n.Title))
		} else if t, ok := m.selectedTodo(); ok {
			m.askDelete(t.ID, false, fmt.Sprintf("Delete task %q? (y/n)", t.Title))
		}
	case "D":
		if m.tab == tabNotes {
			m.askDelete("", true, "Delete ALL notes? (y/n)")
		} else {
			m.askDelete("", true, "Delete ALL tasks? (y/n)")
		}
	case "/":
		m.mode = modeSearch
		m.clearSuggestions()
		m.input.Placeholder = "search"
		if m.tab == tabNotes {
			m.input.SetValue(m.noteSearch)
		} else {
			m.input.SetValue(m.query.Search)
		}
		m.input.Focus()
	case "f":
		if m.tab == tabTodos {
			m.query.Status = next(todo.AllStatuses(), m.query.Status)
			m.cursor = 0
			m.reload()
		}
	case "c":
		if m.tab == tabTodos {
			options := append([]string{todo.AllCategories}, m.categories...)
			m.query.Category = next(options, m.query.Category)
			m.cursor = 0
			m.reload()
		}
	case "s":
		if m.tab == tabTodos {
			m.query.Sort = next(todo.AllSortKeys(), m.query.Sort)
			m.reload()
		}
	case "t":
		th, err := m.svc.ToggleTheme(m.ctx)
		if err != nil {
			m.status = fmt.Sprintf("theme failed: %v", err)
			break
		}
		m.setTheme(th)
		m.status = fmt.Sprintf("%s theme", th)
	}
	return m, nil
}

func next[T comparable](options []T, cur T) T {
	i := slices.Index(options, cur)
	return options[wrapIndex(i+1, len(options))]
}

func completion(t record.Todo) string {
	if t.Completed {
		return "completed"
	}
	return "active"
}

func (m *Model) startForm(f *form) {
	m.form = f
	m.mode = modeForm
	m.loadField()
	m.input.Focus()
	m.status = "enter: next/save · tab: move or complete category · esc: cancel"
}

func (m *Model) updateForm(key string, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key {
	case "esc":
		m.form = nil
		m.mode = modeList
		m.input.Blur()
		m.status = "Cancelled"
		return m, nil
	case "tab", "down":
		if key == "tab" && m.acceptSuggestion() {
			return m, nil
		}
		m.form.set(m.input.Value())
		m.form.move(1)
	case "shift+tab", "up":
		m.form.set(m.input.Value())
		m.form.move(-1)
	case "enter":
		m.form.set(m.input.Value())
		if m.form.last() {
			m.saveForm()
			return m, nil
		}
		m.form.move(1)
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	m.loadField()
	return m, nil
}

// loadField shows the focused form field in the input. The category field
// completes from the registered categories.
func (m *Model) loadField() {
	f := m.form
	m.input.SetValue(f.current().value)
	m.input.CursorEnd()
	m.input.Placeholder = f.current().label
	f.shown = m.input.Value()
	if f.onCategory() {
		m.input.ShowSuggestions = true
		m.input.SetSuggestions(m.categories)
		return
	}
	m.clearSuggestions()
}

// clearSuggestions drops matches left from the category field. Matches only
// refresh while suggestions are shown.
func (m *Model) clearSuggestions() {
	m.input.ShowSuggestions = true
	m.input.SetSuggestions(nil)
	m.input.ShowSuggestions = false
}

// acceptSuggestion completes the category input with the highlighted
// registered category. It reports false when there is nothing to complete.
func (m *Model) acceptSuggestion() bool {
	if !m.form.onCategory() {
		return false
	}
	s := m.input.CurrentSuggestion()
	if s == "" || s == m.input.Value() {
		return false
	}
	m.input.SetValue(s)
	m.input.CursorEnd()
	return true
}

func (m *Model) saveForm() {
	f := m.form
	var (
		title string
		err   error
	)
	switch f.kind {
	case formNote:
		var n *record.Note
		t, c := f.note()
		n, err = m.svc.SaveNote(m.ctx, f.id, t, c)
		if err == nil && n == nil {
			m.status = "Nothing saved: a note needs a title or content"
		} else if n != nil {
			title = n.Title
		}
	default:
		var t *record.Todo
		t, err = m.svc.SaveTodo(m.ctx, f.id, f.todoDraft())
		if err == nil && t == nil {
			m.status = "Nothing saved: a task needs a title"
		} else if t != nil {
			title = t.Title
		}
	}
	if err != nil {
		// Keep the form open so the input can be fixed.
		m.status = fmt.Sprintf("save failed: %v", err)
		return
	}
	if title != "" {
		m.status = fmt.Sprintf("Saved %q", title)
	}
	m.form = nil
	m.mode = modeList
	m.input.Blur()
	m.reload()
}

func (m *Model) updateSearch(key string, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key {
	case "esc", "enter":
		m.mode = modeList
		m.input.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.tab == tabNotes {
		m.noteSearch = m.input.Value()
	} else {
		m.query.Search = m.input.Value()
	}
	m.cursor = 0
	m.reload()
	return m, cmd
}

func (m *Model) askDelete(id string, all bool, prompt string) {
	m.pendingDelete = id
	m.deleteAll = all
	m.mode = modeConfirm
	m.status = prompt
}

func (m *Model) updateConfirm(key string) (tea.Model, tea.Cmd) {
	switch strings.ToLower(key) {
	case "y":
		var err error
		switch {
		case m.deleteAll && m.tab == tabNotes:
			err = m.svc.DeleteAllNotes(m.ctx)
		case m.deleteAll:
			err = m.svc.DeleteAllTodos(m.ctx)
		case m.tab == tabNotes:
			_, err = m.svc.DeleteNote(m.ctx, m.pendingDelete)
		default:
			_, err = m.svc.DeleteTodo(m.ctx, m.pendingDelete)
		}
		if err != nil {
			m.status = fmt.Sprintf("delete failed: %v", err)
		} else {
			m.status = "Deleted"
		}
		m.reload()
	case "n", "esc", "q":
		m.status = "Kept"
	default:
		return m, nil
	}
	m.pendingDelete = ""
	m.deleteAll = false
	m.mode = modeList
	return m, nil
}
