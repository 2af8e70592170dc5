package options

import (
	"github.com/spf13/cobra"
)

// NoteOptions
type NoteOptions struct {
	Title   string
	Content string
}

func AddNoteArgs(cmd *cobra.Command, o *NoteOptions, withContent bool) {
	cmd.Flags().StringVarP(&o.Title, "title", "t", "",
		`Title of the note, defaults to "Untitled Note".`)
	if withContent {
		cmd.Flags().StringVarP(&o.Content, "content", "c", "",
			"Content of the note.")
	}
}

// Changed returns the fields set on the command line, nil for the rest.
func (o *NoteOptions) Changed(cmd *cobra.Command) (title, content *string) {
	if cmd.Flags().Changed("title") {
		title = &o.Title
	}
	if cmd.Flags().Changed("content") {
		content = &o.Content
	}
	return title, content
}
