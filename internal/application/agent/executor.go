package agent

import (
	"context"
	"fmt"

	"github.com/macromate/macromate/internal/domain"
	"github.com/macromate/macromate/internal/ports"
)

// Executor applies one command against the profile and food-log stores.
// Execution is total: every command yields exactly one CommandResult and a
// failure in one command never aborts the rest of a batch.
type Executor struct {
	profiles ports.ProfileRepository
	foodLog  ports.FoodLogRepository
	clock    ports.Clock
	log      ports.Logger
}

// NewExecutor builds an Executor.
func NewExecutor(profiles ports.ProfileRepository, foodLog ports.FoodLogRepository, clk ports.Clock, log ports.Logger) *Executor {
	return &Executor{profiles: profiles, foodLog: foodLog, clock: clk, log: log}
}

// Execute runs one command. entries accompanies AddFood; other variants
// ignore it.
func (x *Executor) Execute(ctx context.Context, cmd domain.Command, entries []domain.FoodEntry) (result domain.CommandResult) {
	defer func() {
		if r := recover(); r != nil {
			x.log.Error("command execution panicked", fmt.Errorf("%v", r), map[string]interface{}{
				"command": domain.WireName(cmd),
			})
			result = failed(cmd, fmt.Sprintf("internal error: %v", r))
		}
	}()

	switch c := cmd.(type) {
	case domain.SetWeight:
		return x.profileResult(cmd, x.profiles.SetWeight(ctx, c.Kg),
			fmt.Sprintf("weight set to %.1f kg", c.Kg))
	case domain.SetHeight:
		return x.profileResult(cmd, x.profiles.SetHeight(ctx, c.Cm),
			fmt.Sprintf("height set to %d cm", c.Cm))
	case domain.SetAge:
		return x.profileResult(cmd, x.profiles.SetAge(ctx, c.Years),
			fmt.Sprintf("age set to %d", c.Years))
	case domain.SetGender:
		return x.profileResult(cmd, x.profiles.SetGender(ctx, c.Value),
			fmt.Sprintf("gender set to %s", c.Value))
	case domain.SetActivity:
		return x.profileResult(cmd, x.profiles.SetActivity(ctx, c.Value),
			fmt.Sprintf("activity level set to %s", c.Value))
	case domain.SetGoal:
		return x.profileResult(cmd, x.profiles.SetGoal(ctx, c.Value),
			fmt.Sprintf("goal set to %s", c.Value))
	case domain.SetTargetWeight:
		return x.profileResult(cmd, x.profiles.SetTargetWeight(ctx, c.Kg),
			fmt.Sprintf("target weight set to %.1f kg", c.Kg))
	case domain.SetTempo:
		return x.profileResult(cmd, x.profiles.SetTempo(ctx, c.KgPerWeek),
			fmt.Sprintf("tempo set to %.2f kg/week", c.KgPerWeek))
	case domain.AddFood:
		return x.addFood(ctx, cmd, entries)
	case domain.DeleteFood:
		return x.deleteFood(ctx, c)
	case domain.DeleteMeal:
		return x.deleteMeal(ctx, c)
	case domain.ClearDay:
		return x.clearDay(ctx, cmd)
	case domain.DeleteFoodByID:
		return x.deleteByID(ctx, c)
	case domain.RepeatFood:
		return x.repeatFood(ctx, c)
	case domain.UpdateFoodWeight:
		return x.updateWeight(ctx, c)
	}
	return failed(cmd, "unknown command")
}

func (x *Executor) profileResult(cmd domain.Command, err error, message string) domain.CommandResult {
	if err != nil {
		return failed(cmd, err.Error())
	}
	return ok(cmd, message)
}

func (x *Executor) addFood(ctx context.Context, cmd domain.Command, entries []domain.FoodEntry) domain.CommandResult {
	if len(entries) == 0 {
		return skipped(cmd, "no entries to add")
	}
	stamped, err := stampEntries(ctx, x.foodLog, x.clock, entries)
	if err != nil {
		return failed(cmd, err.Error())
	}
	inserted, err := x.foodLog.InsertAll(ctx, x.clock.Today(), stamped)
	if err != nil {
		return failed(cmd, err.Error())
	}
	totals := domain.Totals(inserted)
	return ok(cmd, fmt.Sprintf("added %d items, %d kcal", len(inserted), totals.Kcal))
}

func (x *Executor) deleteFood(ctx context.Context, c domain.DeleteFood) domain.CommandResult {
	// Deleted-row count is not surfaced; a zero-row match still succeeds.
	if _, err := x.foodLog.DeleteByName(ctx, x.clock.Today(), c.Name); err != nil {
		return failed(c, err.Error())
	}
	return ok(c, fmt.Sprintf("deleted %q from today's log", c.Name))
}

func (x *Executor) deleteMeal(ctx context.Context, c domain.DeleteMeal) domain.CommandResult {
	if _, err := x.foodLog.DeleteBySession(ctx, x.clock.Today(), c.SessionID); err != nil {
		return failed(c, err.Error())
	}
	return ok(c, "meal deleted")
}

func (x *Executor) clearDay(ctx context.Context, cmd domain.Command) domain.CommandResult {
	if _, err := x.foodLog.ClearDate(ctx, x.clock.Today()); err != nil {
		return failed(cmd, err.Error())
	}
	return ok(cmd, "today's log cleared")
}

func (x *Executor) deleteByID(ctx context.Context, c domain.DeleteFoodByID) domain.CommandResult {
	entry, err := x.foodLog.EntryByID(ctx, c.ID)
	if err != nil {
		return failed(c, err.Error())
	}
	if entry == nil {
		return failed(c, "entry not found")
	}
	if err := x.foodLog.DeleteByID(ctx, c.ID); err != nil {
		return failed(c, err.Error())
	}
	return ok(c, fmt.Sprintf("deleted %s", entry.Describe()))
}

func (x *Executor) repeatFood(ctx context.Context, c domain.RepeatFood) domain.CommandResult {
	entry, err := x.foodLog.EntryByID(ctx, c.ID)
	if err != nil {
		return failed(c, err.Error())
	}
	if entry == nil {
		return failed(c, "entry not found")
	}

	copies, err := stampEntries(ctx, x.foodLog, x.clock, []domain.FoodEntry{{
		Name:        entry.Name,
		WeightGrams: entry.WeightGrams,
		Kcal:        entry.Kcal,
		Protein:     entry.Protein,
		Fat:         entry.Fat,
		Carbs:       entry.Carbs,
		Emoji:       entry.Emoji,
	}})
	if err != nil {
		return failed(c, err.Error())
	}
	inserted, err := x.foodLog.Insert(ctx, x.clock.Today(), copies[0])
	if err != nil {
		return failed(c, err.Error())
	}
	return ok(c, fmt.Sprintf("repeated %s", inserted.Describe()))
}

func (x *Executor) updateWeight(ctx context.Context, c domain.UpdateFoodWeight) domain.CommandResult {
	entry, err := x.foodLog.EntryByID(ctx, c.ID)
	if err != nil {
		return failed(c, err.Error())
	}
	if entry == nil {
		return failed(c, "entry not found")
	}
	if entry.WeightGrams <= 0 {
		return failed(c, "entry has no weight to rescale from")
	}
	if c.Grams <= 0 {
		return failed(c, "new weight must be positive")
	}

	rescaled := entry.Rescaled(c.Grams)
	if err := x.foodLog.Update(ctx, rescaled); err != nil {
		return failed(c, err.Error())
	}
	return ok(c, fmt.Sprintf("%s: %d g / %d kcal → %d g / %d kcal",
		entry.Name, entry.WeightGrams, entry.Kcal, rescaled.WeightGrams, rescaled.Kcal))
}

// CountByType tallies commands by wire name.
func CountByType(cmds []domain.Command) map[string]int {
	counts := make(map[string]int, len(cmds))
	for _, c := range cmds {
		counts[domain.WireName(c)]++
	}
	return counts
}

// CategorizedCommands partitions a batch into the three command families.
type CategorizedCommands struct {
	Profile []domain.Command
	Goal    []domain.Command
	Food    []domain.Command
}

// Categorize splits a batch; every command lands in exactly one bucket.
func Categorize(cmds []domain.Command) CategorizedCommands {
	var out CategorizedCommands
	for _, c := range cmds {
		switch domain.Categorize(c) {
		case domain.CategoryProfile:
			out.Profile = append(out.Profile, c)
		case domain.CategoryGoal:
			out.Goal = append(out.Goal, c)
		case domain.CategoryFood:
			out.Food = append(out.Food, c)
		}
	}
	return out
}

// stampEntries assigns insertion timestamps and a meal session to a batch.
// The whole batch joins one session, chosen by the 30-minute rule against
// today's existing entries.
func stampEntries(ctx context.Context, foodLog ports.FoodLogRepository, clk ports.Clock, entries []domain.FoodEntry) ([]domain.FoodEntry, error) {
	existing, err := foodLog.EntriesForDate(ctx, clk.Today())
	if err != nil {
		return nil, err
	}
	now := clk.Now()
	session := domain.AssignMealSession(now, existing)

	out := make([]domain.FoodEntry, len(entries))
	for i, e := range entries {
		e.CreatedAt = now
		e.MealSessionID = session
		out[i] = e
	}
	return out, nil
}

func ok(cmd domain.Command, message string) domain.CommandResult {
	return domain.CommandResult{Command: cmd, Status: domain.CommandOK, Message: message}
}

func skipped(cmd domain.Command, reason string) domain.CommandResult {
	return domain.CommandResult{Command: cmd, Status: domain.CommandSkipped, Message: reason}
}

func failed(cmd domain.Command, message string) domain.CommandResult {
	return domain.CommandResult{Command: cmd, Status: domain.CommandFailed, Message: message}
}
