package domain

import "time"

// Chat roles as sent on the wire.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatTurn is one persisted message of the conversation.
type ChatTurn struct {
	ID        string
	Role      string
	Content   string
	CreatedAt time.Time
}
