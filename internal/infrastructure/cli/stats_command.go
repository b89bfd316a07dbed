package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/macromate/macromate/internal/app"
	"github.com/macromate/macromate/internal/domain"
)

func newStatsCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show usage statistics and today's totals",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			stats, err := container.Orchestrator.GetStats(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Stored chat messages: %d\n", stats.StoredMessages)
			fmt.Fprintf(out, "Session: %d message(s) processed, %d command(s) executed, %d food item(s) added\n",
				stats.MessagesProcessed, stats.CommandsExecuted, stats.EntriesAdded)

			entries, err := container.FoodLog.EntriesForDate(cmd.Context(), container.Clock.Today())
			if err != nil {
				return err
			}
			renderTotals(out, "Today", domain.Totals(entries))
			return nil
		},
	}
}
