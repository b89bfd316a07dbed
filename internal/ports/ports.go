// Package ports defines the interfaces between the application core and the
// infrastructure adapters (storage, AI endpoint, clock, logging). The core
// depends only on these abstractions.
package ports

import (
	"context"
	"time"

	"github.com/macromate/macromate/internal/domain"
)

// ConfigProvider loads the latest configuration from persistent storage.
type ConfigProvider interface {
	Load(context.Context) (domain.Config, error)
}

// ProfileRepository persists the single user profile, one setter per field.
type ProfileRepository interface {
	Profile(ctx context.Context) (*domain.Profile, error)
	SetWeight(ctx context.Context, kg float64) error
	SetHeight(ctx context.Context, cm int) error
	SetAge(ctx context.Context, years int) error
	SetGender(ctx context.Context, g domain.Gender) error
	SetActivity(ctx context.Context, a domain.Activity) error
	SetGoal(ctx context.Context, g domain.Goal) error
	SetTargetWeight(ctx context.Context, kg float64) error
	SetTempo(ctx context.Context, kgPerWeek float64) error
}

// FoodLogRepository persists day-log rows. Date keys are ISO dates
// (2006-01-02) supplied by the caller; the store never consults the clock.
type FoodLogRepository interface {
	Insert(ctx context.Context, date string, e domain.FoodEntry) (domain.FoodEntry, error)
	InsertAll(ctx context.Context, date string, entries []domain.FoodEntry) ([]domain.FoodEntry, error)
	EntriesForDate(ctx context.Context, date string) ([]domain.FoodEntry, error)
	EntryByID(ctx context.Context, id int64) (*domain.FoodEntry, error)
	Update(ctx context.Context, e domain.FoodEntry) error
	DeleteByID(ctx context.Context, id int64) error
	DeleteByName(ctx context.Context, date, name string) (int64, error)
	DeleteBySession(ctx context.Context, date string, sessionID int64) (int64, error)
	ClearDate(ctx context.Context, date string) (int64, error)
}

// ChatHistoryRepository persists conversation turns.
type ChatHistoryRepository interface {
	Append(ctx context.Context, turn domain.ChatTurn) error
	LastTurns(ctx context.Context, n int) ([]domain.ChatTurn, error)
	Clear(ctx context.Context) error
	Count(ctx context.Context) (int, error)
}

// CompletionOptions tweaks one completion call.
type CompletionOptions struct {
	// SkipHistory suppresses appending the exchanged turns to the
	// chat-history store (preview/debug calls).
	SkipHistory bool
}

// CompletionClient turns one user message into the model's raw JSON payload.
type CompletionClient interface {
	Complete(ctx context.Context, userMessage string, opts CompletionOptions) (string, error)
}

// Clock abstracts wall-clock access so the core stays testable.
type Clock interface {
	Now() time.Time
	Today() string
}

// Logger provides leveled logging for the application layer.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, err error, fields map[string]interface{})
}
