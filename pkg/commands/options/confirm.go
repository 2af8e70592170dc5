package options

import (
	"io"

	"github.com/spf13/cobra"

	"tableflip.dev/memo/pkg/confirm"
)

// ConfirmOptions
type ConfirmOptions struct {
	Yes bool
}

func AddConfirmArgs(cmd *cobra.Command, o *ConfirmOptions) {
	cmd.Flags().BoolVarP(&o.Yes, "yes", "y", false,
		"Do not ask for confirmation.")
}

// Prompter returns the confirmation to use for a destructive command,
// prompting on cmd's streams unless --yes was given.
func (o *ConfirmOptions) Prompter(cmd *cobra.Command) confirm.Prompter {
	if o.Yes {
		return confirm.Always{}
	}
	return confirm.Prompt{
		In:  io.NopCloser(cmd.InOrStdin()),
		Out: confirm.NopCloser(cmd.OutOrStdout()),
	}
}
