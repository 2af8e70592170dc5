package printers

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/memo/pkg/glyph"
	"tableflip.dev/memo/pkg/record"
	"tableflip.dev/memo/pkg/todo"
)

// ShortIDLength is how much of an id is shown in listings.
const ShortIDLength = 8

const dateLayout = "Jan 2, 2006"

type PrettyPrint struct {
	Out    io.Writer
	ShowID bool
	// Today decides which todos are marked overdue.
	Today record.Date
}

var (
	spacing = strings.Repeat(" ", ShortIDLength+2)
)

func (pp *PrettyPrint) out() io.Writer {
	if pp.Out == nil {
		return color.Output
	}
	return pp.Out
}

func ShortID(id string) string {
	if len(id) > ShortIDLength {
		return id[:ShortIDLength]
	}
	return id
}

func (pp *PrettyPrint) NewLine() {
	_, _ = fmt.Fprintln(pp.out(), "")
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)

	if pp.ShowID {
		_, _ = t.Fprint(pp.out(), spacing)
	}
	_, _ = t.Fprintln(pp.out(), title)
}

func (pp *PrettyPrint) TitleWithCount(title string, count int, noun string) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	if pp.ShowID {
		_, _ = t.Fprint(pp.out(), spacing)
	}
	_, _ = t.Fprint(pp.out(), title)
	_, _ = c.Fprintf(pp.out(), " - %d", count)

	switch count {
	case 1:
		_, _ = c.Fprintf(pp.out(), " %s\n", noun)
	default:
		_, _ = c.Fprintf(pp.out(), " %ss\n", noun)
	}
}

// Empty prints the message shown for an empty listing. filtered tells
// "nothing matched" apart from "nothing stored".
func (pp *PrettyPrint) Empty(noun string, filtered bool) {
	f := color.New(color.Faint, color.Italic)
	if pp.ShowID {
		_, _ = f.Fprint(pp.out(), spacing)
	}
	_, _ = f.Fprintln(pp.out(), EmptyMessage(noun, filtered))
	pp.NewLine()
}

// EmptyMessage is the text for an empty listing of notes or tasks.
func EmptyMessage(noun string, filtered bool) string {
	if filtered {
		return fmt.Sprintf("No matching %ss found", noun)
	}
	switch noun {
	case "note":
		return "No notes yet. Create your first note!"
	case "task":
		return "No tasks yet. Add your first task!"
	}
	return fmt.Sprintf("No %ss yet.", noun)
}

func (pp *PrettyPrint) id(id string) {
	if !pp.ShowID {
		return
	}
	y := color.New(color.FgHiYellow, color.Italic, color.Faint)
	short := ShortID(id)
	_, _ = y.Fprint(pp.out(), short)
	_, _ = y.Fprint(pp.out(), strings.Repeat(" ", len(spacing)-len(short)))
}

func (pp *PrettyPrint) Notes(notes ...record.Note) {
	t := color.New()
	b := color.New(color.Bold)
	f := color.New(color.Faint)

	for _, n := range notes {
		pp.id(n.ID)
		_, _ = t.Fprintf(pp.out(), "%s ", glyph.Note)
		_, _ = b.Fprint(pp.out(), n.Title)
		_, _ = f.Fprintf(pp.out(), "  %s\n", n.Created.Local().Format(dateLayout))
		if preview := n.Preview(); preview != "" {
			if pp.ShowID {
				_, _ = t.Fprint(pp.out(), spacing)
			}
			_, _ = t.Fprintf(pp.out(), "  %s\n", strings.ReplaceAll(preview, "\n", " "))
		}
	}
	pp.NewLine()
}

func (pp *PrettyPrint) Todos(todos ...record.Todo) {
	t := color.New()
	done := color.New(color.Faint, color.CrossedOut)
	late := color.New(color.FgRed, color.Bold)
	f := color.New(color.Faint)

	for _, td := range todos {
		pp.id(td.ID)
		marker := glyph.ForTodo(td, pp.Today)
		_, _ = t.Fprintf(pp.out(), "%s %s ", glyph.ForPriority(td.Priority), marker)
		switch marker {
		case glyph.Done:
			_, _ = done.Fprint(pp.out(), td.Title)
		default:
			_, _ = t.Fprint(pp.out(), td.Title)
		}
		if marker == glyph.Overdue {
			_, _ = late.Fprint(pp.out(), " OVERDUE")
		}
		_, _ = f.Fprintf(pp.out(), "  %s · %s\n", dueLabel(td), td.Category)
	}
	pp.NewLine()
}

// TodoDetails prints everything known about one todo.
func (pp *PrettyPrint) TodoDetails(td record.Todo) {
	bold := color.New(color.Bold)
	status := color.New(color.FgGreen).Sprint("Active")
	if td.Completed {
		status = color.New(color.Faint).Sprint("Completed")
	} else if td.Overdue(pp.Today) {
		status = color.New(color.FgRed, color.Bold).Sprint("Active (overdue)")
	}

	_, _ = bold.Fprintln(pp.out(), td.Title)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("ID:"), td.ID)
	tbl.AddRow(bold.Sprint("Status:"), status)
	tbl.AddRow(bold.Sprint("Priority:"), td.Priority.Title())
	tbl.AddRow(bold.Sprint("Category:"), td.Category)
	tbl.AddRow(bold.Sprint("Due Date:"), dueLabel(td))
	tbl.AddRow(bold.Sprint("Created:"), td.Created.Local().Format(dateLayout))
	tbl.RightAlign(0)
	_, _ = fmt.Fprintln(pp.out(), tbl)

	if td.Notes != "" {
		_, _ = bold.Fprintln(pp.out(), "Notes:")
		_, _ = fmt.Fprintln(pp.out(), td.Notes)
	}
	pp.NewLine()
}

func (pp *PrettyPrint) Stats(st todo.Stats) {
	bold := color.New(color.Bold)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("Total"), st.Total)
	tbl.AddRow(bold.Sprint("Completed"), st.Completed)
	tbl.AddRow(bold.Sprint("Active"), st.Active)
	tbl.AddRow(bold.Sprint("Overdue"), st.Overdue)
	tbl.AddRow(bold.Sprint("Due Today"), st.DueToday)
	tbl.AddRow(bold.Sprint("Completion"), fmt.Sprintf("%d%%", st.CompletionRate))
	tbl.RightAlign(0)

	_, _ = fmt.Fprintln(pp.out(), tbl)
	pp.NewLine()
}

func (pp *PrettyPrint) Categories(names []string) {
	t := color.New()
	for _, n := range names {
		_, _ = t.Fprintf(pp.out(), "  %s\n", n)
	}
	pp.NewLine()
}

func dueLabel(td record.Todo) string {
	if !td.HasDueDate() {
		return "No due date"
	}
	return "Due: " + td.DueDate.In(time.UTC).Format(dateLayout)
}
