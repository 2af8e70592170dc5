package commands

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/memo/pkg/commands/options"
	"tableflip.dev/memo/pkg/runner/tasks"
)

const layoutMonth = "2006-01"

func addTodo(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "todo",
		Aliases: []string{"task", "tasks", "todos"},
		Short:   "Manage todo tasks",
		Example: `
memo todo add pay rent --due 2024-03-01 --priority high --category Personal
memo todo list --status overdue --sort priority-desc
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	addTodoAdd(cmd)
	addTodoEdit(cmd)
	addTodoList(cmd)
	addTodoShow(cmd)
	addTodoDone(cmd)
	addTodoRemove(cmd)
	addTodoClear(cmd)
	addTodoCalendar(cmd)

	topLevel.AddCommand(cmd)
}

func requireID(_ *cobra.Command, args []string) error {
	if len(args) != 1 {
		return errors.New("requires a task id")
	}
	return nil
}

func addTodoAdd(parent *cobra.Command) {
	to := &options.TodoOptions{}

	cmd := &cobra.Command{
		Use:   "add <title...>",
		Short: "Add a task",
		Example: `
memo todo add call the bank
memo todo add renew passport --due 2024-06-30 --priority high --category Personal
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 1 {
				return errors.New("requires a title")
			}
			to.Title = strings.Join(args, " ")
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			svc, _, err := loadService()
			if err != nil {
				return output.HandleError(err)
			}
			s := tasks.Add{
				Service: svc,
				Draft:   to.Draft(),
				JSON:    output.JSON,
				Out:     cmd.OutOrStdout(),
			}
			return output.HandleError(s.Do(cmd.Context()))
		},
	}

	options.AddTodoArgs(cmd, to, false)
	options.AddOutputArg(cmd, output)
	registerCategoryCompletion(cmd, "category")
	parent.AddCommand(cmd)
}

func addTodoEdit(parent *cobra.Command) {
	to := &options.TodoOptions{}

	cmd := &cobra.Command{
		Use:   "edit <task id>",
		Short: "Change the fields of a task, keeping its completion state",
		Example: `
memo todo edit 3f2a --priority low --due ""
`,
		Args: requireID,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			svc, _, err := loadService()
			if err != nil {
				return output.HandleError(err)
			}
			s := tasks.Edit{
				Service: svc,
				ID:      args[0],
				Changes: to.Changes(cmd),
				JSON:    output.JSON,
				Out:     cmd.OutOrStdout(),
			}
			return output.HandleError(s.Do(cmd.Context()))
		},
	}

	options.AddTodoArgs(cmd, to, true)
	options.AddOutputArg(cmd, output)
	registerCategoryCompletion(cmd, "category")
	parent.AddCommand(cmd)
}

func addTodoList(parent *cobra.Command) {
	qo := &options.QueryOptions{}
	ido := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls", "get"},
		Short:   "List tasks, filtered and sorted",
		Example: `
memo todo list
memo todo list --status upcoming --category Work --sort priority-desc
memo todo list --search bank --json
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			q, err := qo.Query()
			if err != nil {
				return output.HandleError(err)
			}
			svc, _, err := loadService()
			if err != nil {
				return output.HandleError(err)
			}
			s := tasks.List{
				Service: svc,
				Query:   q,
				ShowID:  ido.ShowID,
				JSON:    output.JSON,
				Out:     cmd.OutOrStdout(),
			}
			return output.HandleError(s.Do(cmd.Context()))
		},
	}

	options.AddQueryArgs(cmd, qo)
	options.AddShowIDArgs(cmd, ido)
	options.AddOutputArg(cmd, output)
	registerCategoryCompletion(cmd, "category")
	parent.AddCommand(cmd)
}

func addTodoShow(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "show <task id>",
		Aliases: []string{"view"},
		Short:   "Show every detail of a task",
		Args:    requireID,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			svc, _, err := loadService()
			if err != nil {
				return output.HandleError(err)
			}
			s := tasks.Show{
				Service: svc,
				ID:      args[0],
				JSON:    output.JSON,
				Out:     cmd.OutOrStdout(),
			}
			return output.HandleError(s.Do(cmd.Context()))
		},
	}

	options.AddOutputArg(cmd, output)
	parent.AddCommand(cmd)
}

func addTodoDone(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "done <task id>",
		Aliases: []string{"toggle", "complete"},
		Short:   "Toggle a task between active and completed",
		Example: `
memo todo done 3f2a
`,
		Args: requireID,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			svc, _, err := loadService()
			if err != nil {
				return output.HandleError(err)
			}
			s := tasks.Toggle{
				Service: svc,
				ID:      args[0],
				JSON:    output.JSON,
				Out:     cmd.OutOrStdout(),
			}
			return output.HandleError(s.Do(cmd.Context()))
		},
	}

	options.AddOutputArg(cmd, output)
	parent.AddCommand(cmd)
}

func addTodoRemove(parent *cobra.Command) {
	co := &options.ConfirmOptions{}

	cmd := &cobra.Command{
		Use:     "rm <task id>",
		Aliases: []string{"delete"},
		Short:   "Delete a task",
		Args:    requireID,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			svc, _, err := loadService()
			if err != nil {
				return err
			}
			s := tasks.Remove{
				Service: svc,
				ID:      args[0],
				Confirm: co.Prompter(cmd),
				Out:     cmd.OutOrStdout(),
			}
			return s.Do(cmd.Context())
		},
	}

	options.AddConfirmArgs(cmd, co)
	parent.AddCommand(cmd)
}

func addTodoClear(parent *cobra.Command) {
	co := &options.ConfirmOptions{}

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every task",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			svc, _, err := loadService()
			if err != nil {
				return err
			}
			s := tasks.Clear{
				Service: svc,
				Confirm: co.Prompter(cmd),
				Out:     cmd.OutOrStdout(),
			}
			return s.Do(cmd.Context())
		},
	}

	options.AddConfirmArgs(cmd, co)
	parent.AddCommand(cmd)
}

func addTodoCalendar(parent *cobra.Command) {
	var (
		month  string
		months int
		long   bool
	)

	cmd := &cobra.Command{
		Use:     "cal",
		Aliases: []string{"calendar"},
		Short:   "Show the days tasks are due on a calendar",
		Example: `
memo todo cal
memo todo cal --month 2024-03 --long
memo todo cal --months 3
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			var on time.Time
			if month != "" {
				var err error
				on, err = time.ParseInLocation(layoutMonth, month, time.Local)
				if err != nil {
					return err
				}
			}
			svc, _, err := loadService()
			if err != nil {
				return err
			}
			s := tasks.Calendar{
				Service: svc,
				Month:   on,
				Months:  months,
				Long:    long,
				Out:     cmd.OutOrStdout(),
			}
			return s.Do(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&month, "month", "",
		`Month to show, example: --month="2020-02". Defaults to this month.`)
	cmd.Flags().IntVar(&months, "months", 1,
		"Number of months to show.")
	cmd.Flags().BoolVarP(&long, "long", "l", false,
		"List the tasks due on each day of the month.")
	parent.AddCommand(cmd)
}
