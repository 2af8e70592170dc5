package commands

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/memo/pkg/commands/options"
	"tableflip.dev/memo/pkg/runner/notes"
)

func addNote(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "note",
		Aliases: []string{"notes"},
		Short:   "Manage notes",
		Example: `
memo note add --title "Groceries" milk, eggs, bread
memo note list --search milk
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	addNoteAdd(cmd)
	addNoteEdit(cmd)
	addNoteList(cmd)
	addNoteRemove(cmd)
	addNoteClear(cmd)

	topLevel.AddCommand(cmd)
}

func addNoteAdd(parent *cobra.Command) {
	no := &options.NoteOptions{}

	cmd := &cobra.Command{
		Use:   "add [content...]",
		Short: "Add a note",
		Example: `
memo note add this is a note
memo note add --title Ideas
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			svc, _, err := loadService()
			if err != nil {
				return output.HandleError(err)
			}
			s := notes.Add{
				Service: svc,
				Title:   no.Title,
				Content: strings.Join(args, " "),
				JSON:    output.JSON,
				Out:     cmd.OutOrStdout(),
			}
			return output.HandleError(s.Do(cmd.Context()))
		},
	}

	options.AddNoteArgs(cmd, no, false)
	options.AddOutputArg(cmd, output)
	parent.AddCommand(cmd)
}

func addNoteEdit(parent *cobra.Command) {
	no := &options.NoteOptions{}

	cmd := &cobra.Command{
		Use:   "edit <note id>",
		Short: "Replace the title or content of a note",
		Example: `
memo note edit 3f2a --content "new text"
`,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("requires a note id")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			svc, _, err := loadService()
			if err != nil {
				return output.HandleError(err)
			}
			title, content := no.Changed(cmd)
			s := notes.Edit{
				Service: svc,
				ID:      args[0],
				Title:   title,
				Content: content,
				JSON:    output.JSON,
				Out:     cmd.OutOrStdout(),
			}
			return output.HandleError(s.Do(cmd.Context()))
		},
	}

	options.AddNoteArgs(cmd, no, true)
	options.AddOutputArg(cmd, output)
	_ = cmd.RegisterFlagCompletionFunc("title", noFileCompletions)
	parent.AddCommand(cmd)
}

func addNoteList(parent *cobra.Command) {
	qo := &options.QueryOptions{}
	ido := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls", "get"},
		Short:   "List notes",
		Example: `
memo note list
memo note list --search milk
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			svc, _, err := loadService()
			if err != nil {
				return output.HandleError(err)
			}
			s := notes.List{
				Service: svc,
				Search:  qo.Search,
				ShowID:  ido.ShowID,
				JSON:    output.JSON,
				Out:     cmd.OutOrStdout(),
			}
			return output.HandleError(s.Do(cmd.Context()))
		},
	}

	options.AddSearchArg(cmd, qo)
	options.AddShowIDArgs(cmd, ido)
	options.AddOutputArg(cmd, output)
	parent.AddCommand(cmd)
}

func addNoteRemove(parent *cobra.Command) {
	co := &options.ConfirmOptions{}

	cmd := &cobra.Command{
		Use:     "rm <note id>",
		Aliases: []string{"delete"},
		Short:   "Delete a note",
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("requires a note id")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			svc, _, err := loadService()
			if err != nil {
				return err
			}
			s := notes.Remove{
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

func addNoteClear(parent *cobra.Command) {
	co := &options.ConfirmOptions{}

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every note",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			svc, _, err := loadService()
			if err != nil {
				return err
			}
			s := notes.Clear{
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
