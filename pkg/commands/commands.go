package commands

import (
	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/memo/pkg/commands/options"
)

var (
	output = &options.OutputOptions{}
)

func New() *cobra.Command {

	cmd := &cobra.Command{
		Use:   "memo",
		Short: base.Wrap80("Notes and prioritised todos on the command line."),
		Long: base.Wrap80("memo keeps free-form notes and todo tasks in a local store. " +
			"Tasks can be filtered by status and category, sorted, and summarised; " +
			"run `memo ui` for the interactive view."),
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addNote(topLevel)
	addTodo(topLevel)
	addStats(topLevel)
	addCategories(topLevel)
	addTheme(topLevel)
	addUI(topLevel)
	addKey(topLevel)
	addInfo(topLevel)
	addVersion(topLevel)
	addCompletions(topLevel)
}
