package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/macromate/macromate/internal/app"
	"github.com/macromate/macromate/internal/domain"
)

func newLogCommand(container *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "log",
		Short: "Inspect and edit today's food log",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showDay(cmd, container)
		},
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "clear",
			Short: "Delete all of today's entries",
			RunE: func(cmd *cobra.Command, args []string) error {
				result := container.Orchestrator.ExecuteDirectCommand(cmd.Context(), domain.ClearDay{})
				renderCommandResult(cmd.OutOrStdout(), result)
				return nil
			},
		},
		&cobra.Command{
			Use:   "delete <id>",
			Short: "Delete one entry by id",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				id, err := strconv.ParseInt(args[0], 10, 64)
				if err != nil {
					return fmt.Errorf("invalid id %q", args[0])
				}
				result := container.Orchestrator.ExecuteDirectCommand(cmd.Context(), domain.DeleteFoodByID{ID: id})
				renderCommandResult(cmd.OutOrStdout(), result)
				return nil
			},
		},
		&cobra.Command{
			Use:   "remove <name>",
			Short: "Delete today's entries with this name",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				result := container.Orchestrator.ExecuteDirectCommand(cmd.Context(), domain.DeleteFood{Name: args[0]})
				renderCommandResult(cmd.OutOrStdout(), result)
				return nil
			},
		},
		&cobra.Command{
			Use:   "meal <session-id>",
			Short: "Delete one meal session",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				id, err := strconv.ParseInt(args[0], 10, 64)
				if err != nil {
					return fmt.Errorf("invalid session id %q", args[0])
				}
				result := container.Orchestrator.ExecuteDirectCommand(cmd.Context(), domain.DeleteMeal{SessionID: id})
				renderCommandResult(cmd.OutOrStdout(), result)
				return nil
			},
		},
		&cobra.Command{
			Use:   "repeat <id>",
			Short: "Log the same food again",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				id, err := strconv.ParseInt(args[0], 10, 64)
				if err != nil {
					return fmt.Errorf("invalid id %q", args[0])
				}
				result := container.Orchestrator.ExecuteDirectCommand(cmd.Context(), domain.RepeatFood{ID: id})
				renderCommandResult(cmd.OutOrStdout(), result)
				return nil
			},
		},
		&cobra.Command{
			Use:   "weight <id> <grams>",
			Short: "Change an entry's weight; macros rescale proportionally",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				id, err := strconv.ParseInt(args[0], 10, 64)
				if err != nil {
					return fmt.Errorf("invalid id %q", args[0])
				}
				grams, err := strconv.Atoi(args[1])
				if err != nil {
					return fmt.Errorf("invalid weight %q", args[1])
				}
				result := container.Orchestrator.ExecuteDirectCommand(cmd.Context(),
					domain.UpdateFoodWeight{ID: id, Grams: grams})
				renderCommandResult(cmd.OutOrStdout(), result)
				return nil
			},
		},
	)
	return cmd
}

// showDay prints today's entries grouped by meal session with totals.
func showDay(cmd *cobra.Command, container *app.Container) error {
	out := cmd.OutOrStdout()
	date := container.Clock.Today()
	entries, err := container.FoodLog.EntriesForDate(cmd.Context(), date)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Fprintf(out, "No entries for %s.\n", date)
		return nil
	}

	fmt.Fprintf(out, "Food log for %s\n", date)
	var session int64 = -1
	var meal []domain.FoodEntry
	flush := func() {
		if len(meal) == 0 {
			return
		}
		renderTotals(out, "  meal total", domain.Totals(meal))
		meal = meal[:0]
	}
	for _, e := range entries {
		if e.MealSessionID != session {
			flush()
			session = e.MealSessionID
			fmt.Fprintf(out, "Meal %d (%s):\n", session, e.CreatedAt.Format("15:04"))
		}
		fmt.Fprintf(out, "  [%d] %s\n", e.ID, e.Describe())
		meal = append(meal, e)
	}
	flush()
	renderTotals(out, "Day total", domain.Totals(entries))
	return nil
}
