package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/macromate/macromate/internal/app"
)

// Options holds CLI-level configuration.
type Options struct {
	Verbose bool
}

// NewRootCmd wires the cobra root command.
func NewRootCmd(ctx context.Context, opts Options) (*cobra.Command, error) {
	container, err := app.BuildContainer(ctx, opts.Verbose)
	if err != nil {
		return nil, err
	}

	chatCmd := newChatCommand(container)

	root := &cobra.Command{
		Use:   "macromate [message]",
		Short: "MacroMate - AI calorie and macro tracker",
		Long:  "MacroMate tracks calories and macros from free-text food descriptions via an AI agent.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			chatCmd.SetArgs(args)
			return chatCmd.ExecuteContext(cmd.Context())
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(chatCmd)
	root.AddCommand(newLogCommand(container))
	root.AddCommand(newProfileCommand(container))
	root.AddCommand(newStatsCommand(container))
	root.AddCommand(newHistoryCommand(container))
	root.AddCommand(newDoctorCommand(container))
	root.AddCommand(newConfigCommand(container))
	return root, nil
}
