package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"tableflip.dev/memo/pkg/glyph"
	"tableflip.dev/memo/pkg/printers"
	"tableflip.dev/memo/pkg/record"
)

const dateLayout = "Jan 2, 2006"

var helpLines = []string{
	"tab      switch between tasks and notes",
	"j/k      move",
	"a        add",
	"e        edit",
	"x/space  toggle task",
	"enter    details",
	"d / D    delete / delete all",
	"/        search",
	"f c s    cycle status, category, sort",
	"t        toggle theme",
	"q        quit",
}

func (m *Model) View() string {
	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")

	switch m.mode {
	case modeHelp:
		b.WriteString(m.styles.Frame.Render(strings.Join(helpLines, "\n")))
	case modeDetail:
		b.WriteString(m.renderDetail())
	case modeForm:
		b.WriteString(m.renderForm())
	default:
		if m.tab == tabNotes {
			b.WriteString(m.renderNotes())
		} else {
			b.WriteString(m.renderTodos())
		}
		if m.mode == modeSearch {
			b.WriteString("\n/ ")
			b.WriteString(m.input.View())
		}
	}

	b.WriteString("\n\n")
	b.WriteString(m.styles.Status.Render(m.status))
	return b.String()
}

func (m *Model) renderHeader() string {
	tasks, notes := m.styles.Tab, m.styles.Tab
	if m.tab == tabNotes {
		notes = m.styles.ActiveTab
	} else {
		tasks = m.styles.ActiveTab
	}
	tabs := lipgloss.JoinHorizontal(lipgloss.Top,
		m.styles.Header.Render("memo"),
		" ",
		tasks.Render("Tasks"),
		notes.Render("Notes"),
	)
	return tabs + m.styles.Faint.Render(fmt.Sprintf("  %s theme", m.theme))
}

func (m *Model) renderTodos() string {
	var b strings.Builder
	st := m.stats
	b.WriteString(m.styles.Faint.Render(fmt.Sprintf(
		"%d total · %d active · %d done · %d overdue · %d due today · %d%% complete",
		st.Total, st.Active, st.Completed, st.Overdue, st.DueToday, st.CompletionRate)))
	b.WriteString("\n")
	b.WriteString(m.styles.Faint.Render(fmt.Sprintf(
		"status: %s · category: %s · sort: %s · search: %q",
		m.query.Status.Label(), m.query.Category, m.query.Sort.Label(), m.query.Search)))
	b.WriteString("\n\n")

	if len(m.todos) == 0 {
		b.WriteString(m.styles.Faint.Render(printers.EmptyMessage("task", !m.query.IsZero())))
		return b.String()
	}
	today := m.today()
	for i, t := range m.todos {
		marker := glyph.ForTodo(t, today)
		title := t.Title
		switch marker {
		case glyph.Done:
			title = m.styles.Done.Render(title)
		case glyph.Overdue:
			title = title + " " + m.styles.Overdue.Render("OVERDUE")
		}
		due := "No due date"
		if t.HasDueDate() {
			due = "Due: " + t.DueDate.String()
		}
		line := fmt.Sprintf("%s %s %s  %s", glyph.ForPriority(t.Priority), marker, title,
			m.styles.Faint.Render(fmt.Sprintf("%s · %s", due, t.Category)))
		b.WriteString(m.row(i, line))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m *Model) renderNotes() string {
	var b strings.Builder
	if m.noteSearch != "" {
		b.WriteString(m.styles.Faint.Render(fmt.Sprintf("search: %q", m.noteSearch)))
		b.WriteString("\n\n")
	}
	if len(m.notes) == 0 {
		b.WriteString(m.styles.Faint.Render(printers.EmptyMessage("note", m.noteSearch != "")))
		return b.String()
	}
	for i, n := range m.notes {
		line := fmt.Sprintf("%s %s  %s", glyph.Note, n.Title,
			m.styles.Faint.Render(n.Created.Local().Format(dateLayout)))
		b.WriteString(m.row(i, line))
		b.WriteString("\n")
		if p := n.Preview(); p != "" {
			b.WriteString("    ")
			b.WriteString(m.styles.Faint.Render(strings.ReplaceAll(p, "\n", " ")))
			b.WriteString("\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m *Model) row(i int, line string) string {
	if i == m.cursor {
		return m.styles.Selected.Render("> " + line)
	}
	return m.styles.Item.Render("  " + line)
}

func (m *Model) renderDetail() string {
	label := m.styles.Label.Render
	var lines []string
	if n, ok := m.selectedNote(); ok {
		lines = []string{
			m.styles.Header.Render(n.Title),
			label("Created: ") + n.Created.Local().Format(dateLayout),
			"",
			n.Content,
		}
	} else if t, ok := m.selectedTodo(); ok {
		status := "Active"
		if t.Completed {
			status = "Completed"
		} else if t.Overdue(m.today()) {
			status = m.styles.Overdue.Render("Overdue")
		}
		due := "No due date"
		if t.HasDueDate() {
			due = t.DueDate.String()
		}
		lines = []string{
			m.styles.Header.Render(t.Title),
			label("Status: ") + status,
			label("Priority: ") + t.Priority.Title(),
			label("Category: ") + t.Category,
			label("Due Date: ") + due,
			label("Created: ") + t.Created.Local().Format(dateLayout),
		}
		if t.Notes != "" {
			lines = append(lines, "", label("Notes:"), t.Notes)
		}
	}
	return m.styles.Frame.Render(strings.Join(lines, "\n"))
}

func (m *Model) renderForm() string {
	if m.form == nil {
		return ""
	}
	heading := "New task"
	if m.form.kind == formNote {
		heading = "New note"
	}
	if m.form.id != "" {
		heading = strings.Replace(heading, "New", "Edit", 1)
	}
	lines := []string{m.styles.Header.Render(heading)}
	for i, f := range m.form.fields {
		if i == m.form.index {
			lines = append(lines, m.styles.Label.Render(f.label+": ")+m.input.View())
			continue
		}
		lines = append(lines, m.styles.Faint.Render(f.label+": ")+f.value)
	}
	return m.styles.Frame.Render(strings.Join(lines, "\n"))
}

func (m *Model) today() record.Date {
	if m.svc == nil {
		return record.Date{}
	}
	return m.svc.Today()
}
