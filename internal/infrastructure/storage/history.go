package storage

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/macromate/macromate/internal/domain"
)

// HistoryStore implements ports.ChatHistoryRepository.
type HistoryStore struct {
	db *sql.DB
}

// Append stores one turn, assigning an id when the caller left it empty.
func (s *HistoryStore) Append(ctx context.Context, turn domain.ChatTurn) error {
	if turn.ID == "" {
		turn.ID = uuid.NewString()
	}
	if turn.CreatedAt.IsZero() {
		turn.CreatedAt = time.Now()
	}
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO chat_messages (id, role, content, created_at) VALUES (?, ?, ?, ?)",
		turn.ID, turn.Role, turn.Content, turn.CreatedAt.Format(time.RFC3339Nano))
	return err
}

// LastTurns returns the n most recent turns, oldest first.
func (s *HistoryStore) LastTurns(ctx context.Context, n int) ([]domain.ChatTurn, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, role, content, created_at FROM chat_messages
		ORDER BY created_at DESC, rowid DESC LIMIT ?`, n)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var turns []domain.ChatTurn
	for rows.Next() {
		var turn domain.ChatTurn
		var createdAt string
		if err := rows.Scan(&turn.ID, &turn.Role, &turn.Content, &createdAt); err != nil {
			return nil, err
		}
		if t, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
			turn.CreatedAt = t
		}
		turns = append(turns, turn)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	// reverse into chronological order
	for i, j := 0, len(turns)-1; i < j; i, j = i+1, j-1 {
		turns[i], turns[j] = turns[j], turns[i]
	}
	return turns, nil
}

// Clear deletes the whole conversation.
func (s *HistoryStore) Clear(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM chat_messages")
	return err
}

// Count returns the number of stored turns.
func (s *HistoryStore) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM chat_messages").Scan(&n)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	return n, err
}
