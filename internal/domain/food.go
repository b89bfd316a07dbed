package domain

import (
	"fmt"
	"math"
	"time"
)

// DefaultEmoji is used when the model omits an emoji for an entry.
const DefaultEmoji = "🍽️"

// FoodEntry is one recognized food item in the day log.
type FoodEntry struct {
	ID            int64
	Name          string
	WeightGrams   int
	Kcal          int
	Protein       float64
	Fat           float64
	Carbs         float64
	Emoji         string
	CreatedAt     time.Time
	MealSessionID int64
}

// Valid reports whether an entry may enter the log.
func (e FoodEntry) Valid() bool {
	return e.Name != "" &&
		e.WeightGrams > 0 &&
		e.Kcal >= 0 &&
		e.Protein >= 0 &&
		e.Fat >= 0 &&
		e.Carbs >= 0
}

// Rescaled returns a copy adjusted to a new weight, with kcal and macros
// scaled by the weight ratio. Kcal is rounded to the nearest integer so that
// rescaling back to the original weight reproduces the original kcal.
func (e FoodEntry) Rescaled(grams int) FoodEntry {
	ratio := float64(grams) / float64(e.WeightGrams)
	out := e
	out.WeightGrams = grams
	out.Kcal = int(math.Round(float64(e.Kcal) * ratio))
	out.Protein = e.Protein * ratio
	out.Fat = e.Fat * ratio
	out.Carbs = e.Carbs * ratio
	return out
}

// Describe renders a short human-readable summary of an entry.
func (e FoodEntry) Describe() string {
	emoji := e.Emoji
	if emoji == "" {
		emoji = DefaultEmoji
	}
	return fmt.Sprintf("%s %s (%d g, %d kcal)", emoji, e.Name, e.WeightGrams, e.Kcal)
}

// MacroTotals aggregates KBJU over a set of entries.
type MacroTotals struct {
	Kcal    int
	Protein float64
	Fat     float64
	Carbs   float64
}

// Totals sums kcal and macros across entries.
func Totals(entries []FoodEntry) MacroTotals {
	var t MacroTotals
	for _, e := range entries {
		t.Kcal += e.Kcal
		t.Protein += e.Protein
		t.Fat += e.Fat
		t.Carbs += e.Carbs
	}
	return t
}
