package agent

import (
	"context"

	"github.com/macromate/macromate/internal/domain"
	"github.com/macromate/macromate/internal/ports"
)

// FoodProcessor validates and commits food-entry batches independent of the
// command layer.
type FoodProcessor struct {
	foodLog ports.FoodLogRepository
	clock   ports.Clock
	log     ports.Logger
}

// NewFoodProcessor builds a FoodProcessor.
func NewFoodProcessor(foodLog ports.FoodLogRepository, clk ports.Clock, log ports.Logger) *FoodProcessor {
	return &FoodProcessor{foodLog: foodLog, clock: clk, log: log}
}

// Process partitions the batch into valid and invalid entries, bulk-inserts
// the valid subset and reports what happened. Persistence failures surface
// as a FoodFailed status, never as an error.
func (p *FoodProcessor) Process(ctx context.Context, entries []domain.FoodEntry) domain.FoodProcessingStatus {
	if len(entries) == 0 {
		return domain.FoodProcessingStatus{Kind: domain.FoodNone}
	}

	valid := make([]domain.FoodEntry, 0, len(entries))
	invalid := 0
	for _, e := range entries {
		if e.Valid() {
			valid = append(valid, e)
		} else {
			invalid++
		}
	}
	if len(valid) == 0 {
		return domain.FoodProcessingStatus{
			Kind:         domain.FoodAllInvalid,
			InvalidCount: invalid,
			Message:      "all recognized entries were invalid",
		}
	}

	stamped, err := stampEntries(ctx, p.foodLog, p.clock, valid)
	if err != nil {
		return domain.FoodProcessingStatus{Kind: domain.FoodFailed, Message: err.Error()}
	}
	inserted, err := p.foodLog.InsertAll(ctx, p.clock.Today(), stamped)
	if err != nil {
		p.log.Error("food batch insert failed", err, map[string]interface{}{
			"count": len(stamped),
		})
		return domain.FoodProcessingStatus{Kind: domain.FoodFailed, Message: err.Error()}
	}

	totals := domain.Totals(inserted)
	return domain.FoodProcessingStatus{
		Kind:         domain.FoodAdded,
		AddedCount:   len(inserted),
		InvalidCount: invalid,
		TotalKcal:    totals.Kcal,
		Entries:      inserted,
	}
}
