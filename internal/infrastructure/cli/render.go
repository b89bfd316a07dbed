package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/macromate/macromate/internal/domain"
)

// renderTurn prints the assistant reply: the model's text, a summary of the
// food that was logged and any command errors.
func renderTurn(w io.Writer, result domain.TurnResult) {
	fmt.Fprintln(w, result.Response.ResponseText)

	switch result.FoodStatus.Kind {
	case domain.FoodAdded:
		fmt.Fprintf(w, "\nLogged %d item(s), %d kcal:\n",
			result.FoodStatus.AddedCount, result.FoodStatus.TotalKcal)
		for _, e := range result.FoodStatus.Entries {
			fmt.Fprintf(w, "  %s\n", e.Describe())
		}
		if result.FoodStatus.InvalidCount > 0 {
			fmt.Fprintf(w, "  (%d item(s) skipped as invalid)\n", result.FoodStatus.InvalidCount)
		}
	case domain.FoodAllInvalid:
		fmt.Fprintf(w, "\nNo items logged: %s\n", result.FoodStatus.Message)
	case domain.FoodFailed:
		fmt.Fprintf(w, "\nCould not log food: %s\n", result.FoodStatus.Message)
	}

	var failures []string
	for _, r := range result.CommandResults {
		if r.Status == domain.CommandFailed {
			failures = append(failures, fmt.Sprintf("%s: %s", domain.WireName(r.Command), r.Message))
		}
	}
	if len(failures) > 0 {
		fmt.Fprintf(w, "\nSome actions failed:\n  %s\n", strings.Join(failures, "\n  "))
	}
}

// renderCommandResult prints one direct command's outcome.
func renderCommandResult(w io.Writer, result domain.CommandResult) {
	switch result.Status {
	case domain.CommandOK:
		fmt.Fprintln(w, result.Message)
	case domain.CommandSkipped:
		fmt.Fprintf(w, "skipped: %s\n", result.Message)
	case domain.CommandFailed:
		fmt.Fprintf(w, "error: %s\n", result.Message)
	}
}

func renderTotals(w io.Writer, label string, t domain.MacroTotals) {
	fmt.Fprintf(w, "%s: %d kcal, %.1f g protein, %.1f g fat, %.1f g carbs\n",
		label, t.Kcal, t.Protein, t.Fat, t.Carbs)
}
