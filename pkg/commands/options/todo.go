package options

import (
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/memo/pkg/record"
	"tableflip.dev/memo/pkg/runner/tasks"
)

// TodoOptions
type TodoOptions struct {
	Title    string
	Due      string
	Priority string
	Category string
	Notes    string
}

func AddTodoArgs(cmd *cobra.Command, o *TodoOptions, withTitle bool) {
	if withTitle {
		cmd.Flags().StringVarP(&o.Title, "title", "t", "",
			"Title of the task.")
	}
	cmd.Flags().StringVar(&o.Due, "due", "",
		`Due date of the task, example: --due="2020-02-28". Empty clears it.`)
	cmd.Flags().StringVarP(&o.Priority, "priority", "p", "",
		"Priority of the task, one of "+priorities()+". Defaults to medium.")
	cmd.Flags().StringVar(&o.Category, "category", "",
		`Category of the task. Defaults to "Other".`)
	cmd.Flags().StringVarP(&o.Notes, "notes", "n", "",
		"Free text notes for the task.")
	_ = cmd.RegisterFlagCompletionFunc("priority", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return strings.Split(priorities(), "|"), cobra.ShellCompDirectiveNoFileComp
	})
}

func (o *TodoOptions) Draft() record.TodoDraft {
	return record.TodoDraft{
		Title:    o.Title,
		Due:      o.Due,
		Priority: o.Priority,
		Category: o.Category,
		Notes:    o.Notes,
	}
}

// Changes returns the fields set on the command line.
func (o *TodoOptions) Changes(cmd *cobra.Command) tasks.Changes {
	var c tasks.Changes
	changed := func(name string, v *string) *string {
		if cmd.Flags().Changed(name) {
			return v
		}
		return nil
	}
	c.Title = changed("title", &o.Title)
	c.Due = changed("due", &o.Due)
	c.Priority = changed("priority", &o.Priority)
	c.Category = changed("category", &o.Category)
	c.Notes = changed("notes", &o.Notes)
	return c
}

func priorities() string {
	names := make([]string, 0, 3)
	for _, p := range record.AllPriorities() {
		names = append(names, string(p))
	}
	return strings.Join(names, "|")
}
