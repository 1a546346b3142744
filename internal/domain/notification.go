package domain

import (
	"time"

	"github.com/google/uuid"
)

const NotificationTypeFollow = "follow"

// Notification is an append-only event directed at a user. Currently the only
// producer is a new follow edge.
type Notification struct {
	ID        uuid.UUID `json:"id"`
	From      uuid.UUID `json:"from"`
	To        uuid.UUID `json:"to"`
	Type      string    `json:"type"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}
