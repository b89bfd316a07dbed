package domain

import "time"

// MealSessionWindow groups entries inserted close together into one meal.
const MealSessionWindow = 30 * time.Minute

// AssignMealSession returns the meal-session id for an entry inserted at now.
// The entry joins the latest session of the day when the most recent entry is
// within the window; otherwise a new session keyed by the insertion timestamp
// starts.
func AssignMealSession(now time.Time, today []FoodEntry) int64 {
	var latest *FoodEntry
	for i := range today {
		if latest == nil || today[i].CreatedAt.After(latest.CreatedAt) {
			latest = &today[i]
		}
	}
	if latest != nil && now.Sub(latest.CreatedAt) <= MealSessionWindow {
		return latest.MealSessionID
	}
	return now.Unix()
}
