package domain

import (
	"time"

	"github.com/google/uuid"
)

type Post struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Text      string    `json:"text,omitempty"`
	Img       *string   `json:"img,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
