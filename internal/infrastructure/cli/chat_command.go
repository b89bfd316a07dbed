package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/macromate/macromate/internal/app"
)

func newChatCommand(container *app.Container) *cobra.Command {
	var preview bool

	cmd := &cobra.Command{
		Use:   "chat [message]",
		Short: "Send a message to the agent",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			message := strings.Join(args, " ")

			if preview {
				raw, err := container.Orchestrator.SendMessageOnly(cmd.Context(), message)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), raw)
				return nil
			}

			result, err := container.Orchestrator.ProcessMessage(cmd.Context(), message)
			if err != nil {
				return err
			}
			renderTurn(cmd.OutOrStdout(), result)
			return nil
		},
	}

	cmd.Flags().BoolVar(&preview, "preview", false, "print the raw model response without applying it")
	return cmd
}
