package storage

import (
	"context"
	"database/sql"
	"errors"

	"github.com/macromate/macromate/internal/domain"
)

// ProfileStore implements ports.ProfileRepository. The profile is a single
// row upserted field by field.
type ProfileStore struct {
	db *sql.DB
}

// Profile returns the stored profile, or nil when none was saved yet.
func (s *ProfileStore) Profile(ctx context.Context) (*domain.Profile, error) {
	row := s.db.QueryRowContext(ctx, `SELECT weight_kg, height_cm, age, gender,
		activity, goal, target_weight_kg, tempo_kg_week FROM profile WHERE id = 1`)

	var p domain.Profile
	var gender, activity, goal string
	err := row.Scan(&p.WeightKg, &p.HeightCm, &p.Age, &gender,
		&activity, &goal, &p.TargetWeightKg, &p.TempoKgPerWeek)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	p.Gender = domain.Gender(gender)
	p.Activity = domain.Activity(activity)
	p.Goal = domain.Goal(goal)
	return &p, nil
}

func (s *ProfileStore) SetWeight(ctx context.Context, kg float64) error {
	return s.setField(ctx, "weight_kg", kg)
}

func (s *ProfileStore) SetHeight(ctx context.Context, cm int) error {
	return s.setField(ctx, "height_cm", cm)
}

func (s *ProfileStore) SetAge(ctx context.Context, years int) error {
	return s.setField(ctx, "age", years)
}

func (s *ProfileStore) SetGender(ctx context.Context, g domain.Gender) error {
	return s.setField(ctx, "gender", string(g))
}

func (s *ProfileStore) SetActivity(ctx context.Context, a domain.Activity) error {
	return s.setField(ctx, "activity", string(a))
}

func (s *ProfileStore) SetGoal(ctx context.Context, g domain.Goal) error {
	return s.setField(ctx, "goal", string(g))
}

func (s *ProfileStore) SetTargetWeight(ctx context.Context, kg float64) error {
	return s.setField(ctx, "target_weight_kg", kg)
}

func (s *ProfileStore) SetTempo(ctx context.Context, kgPerWeek float64) error {
	return s.setField(ctx, "tempo_kg_week", kgPerWeek)
}

// setField upserts the singleton row. Column names come from the fixed set
// above, never from input.
func (s *ProfileStore) setField(ctx context.Context, column string, value any) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO profile (id, `+column+`) VALUES (1, ?)
		ON CONFLICT(id) DO UPDATE SET `+column+` = excluded.`+column,
		value)
	return err
}
