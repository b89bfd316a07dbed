// Package storage persists the food log, the user profile and the chat
// history in one sqlite database.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// Store owns the database handle; the per-concern stores share it.
type Store struct {
	db *sql.DB
}

// Open creates (or opens) the database at path and ensures the schema.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	store := &Store{db: db}
	if err := store.init(); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}
	return store, nil
}

func (s *Store) init() error {
	schema := `
	CREATE TABLE IF NOT EXISTS food_entries (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		date TEXT NOT NULL,
		name TEXT NOT NULL,
		weight_g INTEGER NOT NULL,
		kcal INTEGER NOT NULL,
		protein REAL NOT NULL,
		fat REAL NOT NULL,
		carbs REAL NOT NULL,
		emoji TEXT NOT NULL,
		created_at TEXT NOT NULL,
		meal_session_id INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_food_entries_date ON food_entries(date);

	CREATE TABLE IF NOT EXISTS profile (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		weight_kg REAL NOT NULL DEFAULT 0,
		height_cm INTEGER NOT NULL DEFAULT 0,
		age INTEGER NOT NULL DEFAULT 0,
		gender TEXT NOT NULL DEFAULT '',
		activity TEXT NOT NULL DEFAULT '',
		goal TEXT NOT NULL DEFAULT '',
		target_weight_kg REAL NOT NULL DEFAULT 0,
		tempo_kg_week REAL NOT NULL DEFAULT 0
	);

	CREATE TABLE IF NOT EXISTS chat_messages (
		id TEXT PRIMARY KEY,
		role TEXT NOT NULL,
		content TEXT NOT NULL,
		created_at TEXT NOT NULL
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Ping verifies the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// FoodLog returns the food-log store view.
func (s *Store) FoodLog() *FoodLogStore {
	return &FoodLogStore{db: s.db}
}

// Profiles returns the profile store view.
func (s *Store) Profiles() *ProfileStore {
	return &ProfileStore{db: s.db}
}

// History returns the chat-history store view.
func (s *Store) History() *HistoryStore {
	return &HistoryStore{db: s.db}
}
