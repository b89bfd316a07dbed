package storage

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/macromate/macromate/internal/domain"
)

// FoodLogStore implements ports.FoodLogRepository over the shared database.
type FoodLogStore struct {
	db *sql.DB
}

const foodColumns = "id, name, weight_g, kcal, protein, fat, carbs, emoji, created_at, meal_session_id"

// Insert stores one entry under the given date and returns it with its id.
func (s *FoodLogStore) Insert(ctx context.Context, date string, e domain.FoodEntry) (domain.FoodEntry, error) {
	res, err := s.db.ExecContext(ctx, `INSERT INTO food_entries
		(date, name, weight_g, kcal, protein, fat, carbs, emoji, created_at, meal_session_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		date, e.Name, e.WeightGrams, e.Kcal, e.Protein, e.Fat, e.Carbs,
		e.Emoji, e.CreatedAt.Format(time.RFC3339), e.MealSessionID)
	if err != nil {
		return domain.FoodEntry{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return domain.FoodEntry{}, err
	}
	e.ID = id
	return e, nil
}

// InsertAll stores a batch in one transaction.
func (s *FoodLogStore) InsertAll(ctx context.Context, date string, entries []domain.FoodEntry) ([]domain.FoodEntry, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	out := make([]domain.FoodEntry, 0, len(entries))
	for _, e := range entries {
		res, err := tx.ExecContext(ctx, `INSERT INTO food_entries
			(date, name, weight_g, kcal, protein, fat, carbs, emoji, created_at, meal_session_id)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			date, e.Name, e.WeightGrams, e.Kcal, e.Protein, e.Fat, e.Carbs,
			e.Emoji, e.CreatedAt.Format(time.RFC3339), e.MealSessionID)
		if err != nil {
			return nil, err
		}
		id, err := res.LastInsertId()
		if err != nil {
			return nil, err
		}
		e.ID = id
		out = append(out, e)
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return out, nil
}

// EntriesForDate returns the day's entries, oldest first.
func (s *FoodLogStore) EntriesForDate(ctx context.Context, date string) ([]domain.FoodEntry, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+foodColumns+" FROM food_entries WHERE date = ? ORDER BY created_at, id", date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.FoodEntry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// EntryByID returns one entry, or nil when absent.
func (s *FoodLogStore) EntryByID(ctx context.Context, id int64) (*domain.FoodEntry, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+foodColumns+" FROM food_entries WHERE id = ?", id)
	e, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// Update rewrites an entry's weight and macro fields.
func (s *FoodLogStore) Update(ctx context.Context, e domain.FoodEntry) error {
	_, err := s.db.ExecContext(ctx, `UPDATE food_entries
		SET weight_g = ?, kcal = ?, protein = ?, fat = ?, carbs = ?
		WHERE id = ?`,
		e.WeightGrams, e.Kcal, e.Protein, e.Fat, e.Carbs, e.ID)
	return err
}

// DeleteByID removes one entry.
func (s *FoodLogStore) DeleteByID(ctx context.Context, id int64) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM food_entries WHERE id = ?", id)
	return err
}

// DeleteByName removes the day's entries whose name matches after trimming,
// case-insensitively, and returns the deleted-row count.
func (s *FoodLogStore) DeleteByName(ctx context.Context, date, name string) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM food_entries WHERE date = ? AND lower(trim(name)) = lower(trim(?))", date, name)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// DeleteBySession removes one meal session from the day.
func (s *FoodLogStore) DeleteBySession(ctx context.Context, date string, sessionID int64) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM food_entries WHERE date = ? AND meal_session_id = ?", date, sessionID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// ClearDate removes all of the day's entries.
func (s *FoodLogStore) ClearDate(ctx context.Context, date string) (int64, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM food_entries WHERE date = ?", date)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (domain.FoodEntry, error) {
	var e domain.FoodEntry
	var createdAt string
	err := row.Scan(&e.ID, &e.Name, &e.WeightGrams, &e.Kcal,
		&e.Protein, &e.Fat, &e.Carbs, &e.Emoji, &createdAt, &e.MealSessionID)
	if err != nil {
		return domain.FoodEntry{}, err
	}
	if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
		e.CreatedAt = t
	}
	return e, nil
}
