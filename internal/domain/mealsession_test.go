package domain

import (
	"testing"
	"time"
)

func TestAssignMealSessionEmptyDay(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	if got := AssignMealSession(now, nil); got != now.Unix() {
		t.Errorf("session = %d, want %d", got, now.Unix())
	}
}

func TestAssignMealSessionJoinsRecent(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	prev := now.Add(-29 * time.Minute)
	today := []FoodEntry{{CreatedAt: prev, MealSessionID: prev.Unix()}}

	if got := AssignMealSession(now, today); got != prev.Unix() {
		t.Errorf("session = %d, want to join %d", got, prev.Unix())
	}
}

func TestAssignMealSessionWindowBoundary(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	atWindow := now.Add(-MealSessionWindow)
	if got := AssignMealSession(now, []FoodEntry{{CreatedAt: atWindow, MealSessionID: atWindow.Unix()}}); got != atWindow.Unix() {
		t.Errorf("exactly 30 minutes apart should still join, got %d", got)
	}

	past := now.Add(-MealSessionWindow - time.Second)
	if got := AssignMealSession(now, []FoodEntry{{CreatedAt: past, MealSessionID: past.Unix()}}); got != now.Unix() {
		t.Errorf("30m1s apart should start a new session, got %d", got)
	}
}

func TestAssignMealSessionPicksLatestEntry(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	morning := now.Add(-4 * time.Hour)
	recent := now.Add(-5 * time.Minute)
	today := []FoodEntry{
		{CreatedAt: morning, MealSessionID: morning.Unix()},
		{CreatedAt: recent, MealSessionID: recent.Unix()},
		{CreatedAt: morning.Add(time.Minute), MealSessionID: morning.Unix()},
	}

	if got := AssignMealSession(now, today); got != recent.Unix() {
		t.Errorf("session = %d, want the most recent entry's session %d", got, recent.Unix())
	}
}
