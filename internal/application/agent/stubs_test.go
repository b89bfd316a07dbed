package agent

import (
	"context"
	"strings"
	"time"

	"github.com/macromate/macromate/internal/domain"
	"github.com/macromate/macromate/internal/ports"
)

type stubClock struct {
	now time.Time
}

func (s stubClock) Now() time.Time { return s.now }
func (s stubClock) Today() string  { return s.now.Format("2006-01-02") }

type nopLogger struct{}

func (nopLogger) Debug(string, map[string]interface{})        {}
func (nopLogger) Info(string, map[string]interface{})         {}
func (nopLogger) Warn(string, map[string]interface{})         {}
func (nopLogger) Error(string, error, map[string]interface{}) {}

type foodRow struct {
	date  string
	entry domain.FoodEntry
}

type memFoodLog struct {
	nextID    int64
	rows      []foodRow
	insertErr error
	queryErr  error
}

func (m *memFoodLog) Insert(_ context.Context, date string, e domain.FoodEntry) (domain.FoodEntry, error) {
	if m.insertErr != nil {
		return domain.FoodEntry{}, m.insertErr
	}
	m.nextID++
	e.ID = m.nextID
	m.rows = append(m.rows, foodRow{date: date, entry: e})
	return e, nil
}

func (m *memFoodLog) InsertAll(ctx context.Context, date string, entries []domain.FoodEntry) ([]domain.FoodEntry, error) {
	if m.insertErr != nil {
		return nil, m.insertErr
	}
	out := make([]domain.FoodEntry, 0, len(entries))
	for _, e := range entries {
		inserted, err := m.Insert(ctx, date, e)
		if err != nil {
			return nil, err
		}
		out = append(out, inserted)
	}
	return out, nil
}

func (m *memFoodLog) EntriesForDate(_ context.Context, date string) ([]domain.FoodEntry, error) {
	if m.queryErr != nil {
		return nil, m.queryErr
	}
	var entries []domain.FoodEntry
	for _, row := range m.rows {
		if row.date == date {
			entries = append(entries, row.entry)
		}
	}
	return entries, nil
}

func (m *memFoodLog) EntryByID(_ context.Context, id int64) (*domain.FoodEntry, error) {
	for _, row := range m.rows {
		if row.entry.ID == id {
			e := row.entry
			return &e, nil
		}
	}
	return nil, nil
}

func (m *memFoodLog) Update(_ context.Context, e domain.FoodEntry) error {
	for i, row := range m.rows {
		if row.entry.ID == e.ID {
			e.CreatedAt = row.entry.CreatedAt
			e.MealSessionID = row.entry.MealSessionID
			m.rows[i].entry = e
			return nil
		}
	}
	return nil
}

func (m *memFoodLog) DeleteByID(_ context.Context, id int64) error {
	for i, row := range m.rows {
		if row.entry.ID == id {
			m.rows = append(m.rows[:i], m.rows[i+1:]...)
			return nil
		}
	}
	return nil
}

func (m *memFoodLog) DeleteByName(_ context.Context, date, name string) (int64, error) {
	want := strings.ToLower(strings.TrimSpace(name))
	var kept []foodRow
	var deleted int64
	for _, row := range m.rows {
		if row.date == date && strings.ToLower(strings.TrimSpace(row.entry.Name)) == want {
			deleted++
			continue
		}
		kept = append(kept, row)
	}
	m.rows = kept
	return deleted, nil
}

func (m *memFoodLog) DeleteBySession(_ context.Context, date string, sessionID int64) (int64, error) {
	var kept []foodRow
	var deleted int64
	for _, row := range m.rows {
		if row.date == date && row.entry.MealSessionID == sessionID {
			deleted++
			continue
		}
		kept = append(kept, row)
	}
	m.rows = kept
	return deleted, nil
}

func (m *memFoodLog) ClearDate(_ context.Context, date string) (int64, error) {
	var kept []foodRow
	var deleted int64
	for _, row := range m.rows {
		if row.date == date {
			deleted++
			continue
		}
		kept = append(kept, row)
	}
	m.rows = kept
	return deleted, nil
}

type memProfiles struct {
	profile domain.Profile
	saved   bool
	err     error
	panics  bool
}

func (m *memProfiles) Profile(context.Context) (*domain.Profile, error) {
	if m.err != nil {
		return nil, m.err
	}
	if !m.saved {
		return nil, nil
	}
	p := m.profile
	return &p, nil
}

func (m *memProfiles) set(apply func(*domain.Profile)) error {
	if m.panics {
		panic("profile store exploded")
	}
	if m.err != nil {
		return m.err
	}
	apply(&m.profile)
	m.saved = true
	return nil
}

func (m *memProfiles) SetWeight(_ context.Context, kg float64) error {
	return m.set(func(p *domain.Profile) { p.WeightKg = kg })
}

func (m *memProfiles) SetHeight(_ context.Context, cm int) error {
	return m.set(func(p *domain.Profile) { p.HeightCm = cm })
}

func (m *memProfiles) SetAge(_ context.Context, years int) error {
	return m.set(func(p *domain.Profile) { p.Age = years })
}

func (m *memProfiles) SetGender(_ context.Context, g domain.Gender) error {
	return m.set(func(p *domain.Profile) { p.Gender = g })
}

func (m *memProfiles) SetActivity(_ context.Context, a domain.Activity) error {
	return m.set(func(p *domain.Profile) { p.Activity = a })
}

func (m *memProfiles) SetGoal(_ context.Context, g domain.Goal) error {
	return m.set(func(p *domain.Profile) { p.Goal = g })
}

func (m *memProfiles) SetTargetWeight(_ context.Context, kg float64) error {
	return m.set(func(p *domain.Profile) { p.TargetWeightKg = kg })
}

func (m *memProfiles) SetTempo(_ context.Context, kgPerWeek float64) error {
	return m.set(func(p *domain.Profile) { p.TempoKgPerWeek = kgPerWeek })
}

type memHistory struct {
	turns []domain.ChatTurn
	err   error
}

func (m *memHistory) Append(_ context.Context, turn domain.ChatTurn) error {
	if m.err != nil {
		return m.err
	}
	m.turns = append(m.turns, turn)
	return nil
}

func (m *memHistory) LastTurns(_ context.Context, n int) ([]domain.ChatTurn, error) {
	if m.err != nil {
		return nil, m.err
	}
	if len(m.turns) <= n {
		return m.turns, nil
	}
	return m.turns[len(m.turns)-n:], nil
}

func (m *memHistory) Clear(context.Context) error {
	if m.err != nil {
		return m.err
	}
	m.turns = nil
	return nil
}

func (m *memHistory) Count(context.Context) (int, error) {
	return len(m.turns), m.err
}

type stubCompletion struct {
	response string
	err      error
	calls    int
}

func (s *stubCompletion) Complete(_ context.Context, _ string, _ ports.CompletionOptions) (string, error) {
	s.calls++
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

func testClock() stubClock {
	return stubClock{now: time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)}
}

func newTestExecutor(foodLog *memFoodLog, profiles *memProfiles) *Executor {
	return NewExecutor(profiles, foodLog, testClock(), nopLogger{})
}
