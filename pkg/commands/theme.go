package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/memo/pkg/runner/theme"
)

func addTheme(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:       "theme [light|dark|toggle]",
		Short:     "Show or change the theme of the interactive UI.",
		ValidArgs: []string{"light", "dark", theme.Toggle},
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		Example: `
memo theme
memo theme toggle
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			svc, _, err := loadService()
			if err != nil {
				return err
			}
			s := theme.Theme{
				Service: svc,
				Out:     cmd.OutOrStdout(),
			}
			if len(args) == 1 {
				s.Set = args[0]
			}
			return s.Do(cmd.Context())
		},
	}

	topLevel.AddCommand(cmd)
}
