package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/macromate/macromate/internal/app"
)

func newHistoryCommand(container *app.Container) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent chat history",
		RunE: func(cmd *cobra.Command, args []string) error {
			turns, err := container.History.LastTurns(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if len(turns) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No chat history.")
				return nil
			}
			for _, turn := range turns {
				fmt.Fprintf(cmd.OutOrStdout(), "[%s] %s: %s\n",
					turn.CreatedAt.Format("2006-01-02 15:04"), turn.Role, turn.Content)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "number of turns to show")

	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Delete the chat history and reset session counters",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := container.Orchestrator.ClearChatHistory(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Chat history cleared.")
			return nil
		},
	})
	return cmd
}
