package domain

import "math"

// kcalPerKg is the energy equivalent of one kilogram of body mass.
const kcalPerKg = 7700

// DailyTargets is the computed daily KBJU allowance.
type DailyTargets struct {
	Kcal    int
	Protein float64
	Fat     float64
	Carbs   float64
}

// BMR computes basal metabolic rate via the Mifflin-St Jeor equation.
func BMR(p Profile) float64 {
	base := 10*p.WeightKg + 6.25*float64(p.HeightCm) - 5*float64(p.Age)
	if p.Gender == GenderFemale {
		return base - 161
	}
	return base + 5
}

// TDEE scales BMR by the activity multiplier.
func TDEE(p Profile) float64 {
	return BMR(p) * activityMultiplier(p.Activity)
}

func activityMultiplier(a Activity) float64 {
	switch a {
	case ActivitySedentary:
		return 1.2
	case ActivityLight:
		return 1.375
	case ActivityModerate:
		return 1.55
	case ActivityActive:
		return 1.725
	case ActivityVeryActive:
		return 1.9
	}
	return 1.2
}

// Targets derives the daily allowance from TDEE, adjusted by the goal tempo
// (kcalPerKg per kg of weekly change) and split 30/30/40 across
// protein/fat/carbs by energy.
func Targets(p Profile) DailyTargets {
	kcal := TDEE(p)
	daily := p.TempoKgPerWeek * kcalPerKg / 7
	switch p.Goal {
	case GoalLose:
		kcal -= daily
	case GoalGain:
		kcal += daily
	}
	if kcal < 0 {
		kcal = 0
	}
	return DailyTargets{
		Kcal:    int(math.Round(kcal)),
		Protein: kcal * 0.30 / 4,
		Fat:     kcal * 0.30 / 9,
		Carbs:   kcal * 0.40 / 4,
	}
}
