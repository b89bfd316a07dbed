package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/macromate/macromate/internal/domain"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "macromate.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func sampleEntry(name string, created time.Time) domain.FoodEntry {
	return domain.FoodEntry{
		Name:          name,
		WeightGrams:   150,
		Kcal:          220,
		Protein:       14,
		Fat:           17,
		Carbs:         1,
		Emoji:         "🍳",
		CreatedAt:     created,
		MealSessionID: created.Unix(),
	}
}

func TestFoodLogInsertAndQuery(t *testing.T) {
	store := openTestStore(t)
	foodLog := store.FoodLog()
	ctx := context.Background()
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	inserted, err := foodLog.Insert(ctx, "2025-06-15", sampleEntry("Яичница", now))
	if err != nil {
		t.Fatalf("Insert() error = %v", err)
	}
	if inserted.ID == 0 {
		t.Fatal("inserted entry has no id")
	}

	entries, err := foodLog.EntriesForDate(ctx, "2025-06-15")
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]domain.FoodEntry{inserted}, entries); diff != "" {
		t.Errorf("entries mismatch (-want +got):\n%s", diff)
	}

	other, err := foodLog.EntriesForDate(ctx, "2025-06-16")
	if err != nil {
		t.Fatal(err)
	}
	if len(other) != 0 {
		t.Errorf("next day should be empty, got %d entries", len(other))
	}
}

func TestFoodLogInsertAllOrdering(t *testing.T) {
	store := openTestStore(t)
	foodLog := store.FoodLog()
	ctx := context.Background()
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	batch := []domain.FoodEntry{
		sampleEntry("Eggs", now),
		sampleEntry("Toast", now),
		sampleEntry("Juice", now),
	}
	inserted, err := foodLog.InsertAll(ctx, "2025-06-15", batch)
	if err != nil {
		t.Fatal(err)
	}
	if len(inserted) != 3 {
		t.Fatalf("inserted = %d", len(inserted))
	}

	entries, err := foodLog.EntriesForDate(ctx, "2025-06-15")
	if err != nil {
		t.Fatal(err)
	}
	var names []string
	for _, e := range entries {
		names = append(names, e.Name)
	}
	if diff := cmp.Diff([]string{"Eggs", "Toast", "Juice"}, names); diff != "" {
		t.Errorf("order mismatch (-want +got):\n%s", diff)
	}
}

func TestFoodLogEntryByID(t *testing.T) {
	store := openTestStore(t)
	foodLog := store.FoodLog()
	ctx := context.Background()

	inserted, err := foodLog.Insert(ctx, "2025-06-15",
		sampleEntry("Eggs", time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)))
	if err != nil {
		t.Fatal(err)
	}

	got, err := foodLog.EntryByID(ctx, inserted.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got == nil || got.Name != "Eggs" {
		t.Errorf("EntryByID = %+v", got)
	}

	missing, err := foodLog.EntryByID(ctx, 9999)
	if err != nil {
		t.Fatal(err)
	}
	if missing != nil {
		t.Errorf("missing id should yield nil, got %+v", missing)
	}
}

func TestFoodLogUpdate(t *testing.T) {
	store := openTestStore(t)
	foodLog := store.FoodLog()
	ctx := context.Background()

	inserted, err := foodLog.Insert(ctx, "2025-06-15",
		sampleEntry("Rice", time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)))
	if err != nil {
		t.Fatal(err)
	}

	changed := inserted.Rescaled(300)
	if err := foodLog.Update(ctx, changed); err != nil {
		t.Fatal(err)
	}

	got, err := foodLog.EntryByID(ctx, inserted.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.WeightGrams != 300 || got.Kcal != changed.Kcal {
		t.Errorf("after update = %+v", got)
	}
}

func TestFoodLogDeleteByNameIsCaseAndSpaceInsensitive(t *testing.T) {
	store := openTestStore(t)
	foodLog := store.FoodLog()
	ctx := context.Background()
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	foodLog.Insert(ctx, "2025-06-15", sampleEntry("Omelette", now))
	foodLog.Insert(ctx, "2025-06-15", sampleEntry("  omelette ", now))
	foodLog.Insert(ctx, "2025-06-15", sampleEntry("Toast", now))
	foodLog.Insert(ctx, "2025-06-16", sampleEntry("Omelette", now))

	deleted, err := foodLog.DeleteByName(ctx, "2025-06-15", "OMELETTE")
	if err != nil {
		t.Fatal(err)
	}
	if deleted != 2 {
		t.Errorf("deleted = %d, want 2", deleted)
	}

	remaining, _ := foodLog.EntriesForDate(ctx, "2025-06-15")
	if len(remaining) != 1 || remaining[0].Name != "Toast" {
		t.Errorf("remaining = %+v", remaining)
	}
	nextDay, _ := foodLog.EntriesForDate(ctx, "2025-06-16")
	if len(nextDay) != 1 {
		t.Error("other dates must be untouched")
	}
}

func TestFoodLogDeleteBySession(t *testing.T) {
	store := openTestStore(t)
	foodLog := store.FoodLog()
	ctx := context.Background()

	lunch := time.Date(2025, 6, 15, 13, 0, 0, 0, time.UTC)
	dinner := time.Date(2025, 6, 15, 19, 0, 0, 0, time.UTC)
	foodLog.Insert(ctx, "2025-06-15", sampleEntry("Soup", lunch))
	foodLog.Insert(ctx, "2025-06-15", sampleEntry("Bread", lunch))
	foodLog.Insert(ctx, "2025-06-15", sampleEntry("Steak", dinner))

	deleted, err := foodLog.DeleteBySession(ctx, "2025-06-15", lunch.Unix())
	if err != nil {
		t.Fatal(err)
	}
	if deleted != 2 {
		t.Errorf("deleted = %d, want 2", deleted)
	}
	remaining, _ := foodLog.EntriesForDate(ctx, "2025-06-15")
	if len(remaining) != 1 || remaining[0].Name != "Steak" {
		t.Errorf("remaining = %+v", remaining)
	}
}

func TestFoodLogClearDateIdempotent(t *testing.T) {
	store := openTestStore(t)
	foodLog := store.FoodLog()
	ctx := context.Background()
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	foodLog.Insert(ctx, "2025-06-15", sampleEntry("Eggs", now))

	first, err := foodLog.ClearDate(ctx, "2025-06-15")
	if err != nil || first != 1 {
		t.Fatalf("first clear = %d, %v", first, err)
	}
	second, err := foodLog.ClearDate(ctx, "2025-06-15")
	if err != nil || second != 0 {
		t.Fatalf("second clear = %d, %v", second, err)
	}
}

func TestProfileUpserts(t *testing.T) {
	store := openTestStore(t)
	profiles := store.Profiles()
	ctx := context.Background()

	got, err := profiles.Profile(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if got != nil {
		t.Fatalf("fresh database should have no profile, got %+v", got)
	}

	if err := profiles.SetWeight(ctx, 81.5); err != nil {
		t.Fatal(err)
	}
	if err := profiles.SetHeight(ctx, 180); err != nil {
		t.Fatal(err)
	}
	if err := profiles.SetGender(ctx, domain.GenderMale); err != nil {
		t.Fatal(err)
	}
	if err := profiles.SetActivity(ctx, domain.ActivityModerate); err != nil {
		t.Fatal(err)
	}
	if err := profiles.SetGoal(ctx, domain.GoalLose); err != nil {
		t.Fatal(err)
	}
	if err := profiles.SetTargetWeight(ctx, 75); err != nil {
		t.Fatal(err)
	}
	if err := profiles.SetTempo(ctx, 0.5); err != nil {
		t.Fatal(err)
	}
	if err := profiles.SetAge(ctx, 30); err != nil {
		t.Fatal(err)
	}

	got, err = profiles.Profile(ctx)
	if err != nil {
		t.Fatal(err)
	}
	want := &domain.Profile{
		WeightKg:       81.5,
		HeightCm:       180,
		Age:            30,
		Gender:         domain.GenderMale,
		Activity:       domain.ActivityModerate,
		Goal:           domain.GoalLose,
		TargetWeightKg: 75,
		TempoKgPerWeek: 0.5,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("profile mismatch (-want +got):\n%s", diff)
	}

	// a later write must not reset earlier fields
	if err := profiles.SetWeight(ctx, 80.0); err != nil {
		t.Fatal(err)
	}
	got, _ = profiles.Profile(ctx)
	if got.WeightKg != 80.0 || got.HeightCm != 180 {
		t.Errorf("after second write = %+v", got)
	}
}

func TestHistoryAppendAndLastTurns(t *testing.T) {
	store := openTestStore(t)
	history := store.History()
	ctx := context.Background()
	base := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 5; i++ {
		role := domain.RoleUser
		if i%2 == 1 {
			role = domain.RoleAssistant
		}
		err := history.Append(ctx, domain.ChatTurn{
			Role:      role,
			Content:   string(rune('a' + i)),
			CreatedAt: base.Add(time.Duration(i) * time.Second),
		})
		if err != nil {
			t.Fatal(err)
		}
	}

	turns, err := history.LastTurns(ctx, 3)
	if err != nil {
		t.Fatal(err)
	}
	if len(turns) != 3 {
		t.Fatalf("turns = %d", len(turns))
	}
	// the three most recent, oldest first
	if turns[0].Content != "c" || turns[1].Content != "d" || turns[2].Content != "e" {
		t.Errorf("turns = %q %q %q", turns[0].Content, turns[1].Content, turns[2].Content)
	}
	for _, turn := range turns {
		if turn.ID == "" {
			t.Error("append should assign ids")
		}
	}

	count, err := history.Count(ctx)
	if err != nil || count != 5 {
		t.Errorf("Count = %d, %v", count, err)
	}

	if err := history.Clear(ctx); err != nil {
		t.Fatal(err)
	}
	count, _ = history.Count(ctx)
	if count != 0 {
		t.Errorf("count after clear = %d", count)
	}
}

func TestHistoryOrderWithEqualTimestamps(t *testing.T) {
	store := openTestStore(t)
	history := store.History()
	ctx := context.Background()
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	// a user/assistant pair appended with one timestamp must come back in
	// insertion order
	history.Append(ctx, domain.ChatTurn{Role: domain.RoleUser, Content: "question", CreatedAt: now})
	history.Append(ctx, domain.ChatTurn{Role: domain.RoleAssistant, Content: "answer", CreatedAt: now})

	turns, err := history.LastTurns(ctx, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(turns) != 2 || turns[0].Content != "question" || turns[1].Content != "answer" {
		t.Errorf("turns = %+v", turns)
	}
}

func TestStorePing(t *testing.T) {
	store := openTestStore(t)
	if err := store.Ping(context.Background()); err != nil {
		t.Errorf("Ping() error = %v", err)
	}
}
