package domain

import (
	"fmt"
	"strings"
)

// Gender values accepted on the wire.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// Activity level values accepted on the wire.
type Activity string

const (
	ActivitySedentary  Activity = "sedentary"
	ActivityLight      Activity = "light"
	ActivityModerate   Activity = "moderate"
	ActivityActive     Activity = "active"
	ActivityVeryActive Activity = "very_active"
)

// Goal values accepted on the wire.
type Goal string

const (
	GoalLose     Goal = "lose"
	GoalGain     Goal = "gain"
	GoalMaintain Goal = "maintain"
)

// ParseGender normalizes a wire string into a Gender.
func ParseGender(s string) (Gender, error) {
	switch Gender(strings.ToLower(strings.TrimSpace(s))) {
	case GenderMale:
		return GenderMale, nil
	case GenderFemale:
		return GenderFemale, nil
	}
	return "", fmt.Errorf("unknown gender %q", s)
}

// ParseActivity normalizes a wire string into an Activity.
func ParseActivity(s string) (Activity, error) {
	switch Activity(strings.ToLower(strings.TrimSpace(s))) {
	case ActivitySedentary:
		return ActivitySedentary, nil
	case ActivityLight:
		return ActivityLight, nil
	case ActivityModerate:
		return ActivityModerate, nil
	case ActivityActive:
		return ActivityActive, nil
	case ActivityVeryActive:
		return ActivityVeryActive, nil
	}
	return "", fmt.Errorf("unknown activity level %q", s)
}

// ParseGoal normalizes a wire string into a Goal.
func ParseGoal(s string) (Goal, error) {
	switch Goal(strings.ToLower(strings.TrimSpace(s))) {
	case GoalLose:
		return GoalLose, nil
	case GoalGain:
		return GoalGain, nil
	case GoalMaintain:
		return GoalMaintain, nil
	}
	return "", fmt.Errorf("unknown goal %q", s)
}

// Profile holds the user's body metrics and goals.
type Profile struct {
	WeightKg       float64
	HeightCm       int
	Age            int
	Gender         Gender
	Activity       Activity
	Goal           Goal
	TargetWeightKg float64
	TempoKgPerWeek float64
}

// Summary renders the profile as a compact line for the system prompt.
func (p Profile) Summary() string {
	var parts []string
	if p.WeightKg > 0 {
		parts = append(parts, fmt.Sprintf("weight %.1f kg", p.WeightKg))
	}
	if p.HeightCm > 0 {
		parts = append(parts, fmt.Sprintf("height %d cm", p.HeightCm))
	}
	if p.Age > 0 {
		parts = append(parts, fmt.Sprintf("age %d", p.Age))
	}
	if p.Gender != "" {
		parts = append(parts, string(p.Gender))
	}
	if p.Activity != "" {
		parts = append(parts, fmt.Sprintf("activity %s", p.Activity))
	}
	if p.Goal != "" {
		parts = append(parts, fmt.Sprintf("goal %s", p.Goal))
	}
	if p.TargetWeightKg > 0 {
		parts = append(parts, fmt.Sprintf("target %.1f kg", p.TargetWeightKg))
	}
	if p.TempoKgPerWeek > 0 {
		parts = append(parts, fmt.Sprintf("tempo %.2f kg/week", p.TempoKgPerWeek))
	}
	if len(parts) == 0 {
		return "not filled in yet"
	}
	return strings.Join(parts, ", ")
}
