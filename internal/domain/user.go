package domain

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID   `json:"id"`
	Username     string      `json:"username"`
	Email        string      `json:"email"`
	FullName     string      `json:"full_name"`
	PasswordHash string      `json:"-"`
	Bio          string      `json:"bio"`
	Link         string      `json:"link"`
	ProfileImg   *string     `json:"profile_img,omitempty"`
	CoverImg     *string     `json:"cover_img,omitempty"`
	Followers    []uuid.UUID `json:"followers"`
	Following    []uuid.UUID `json:"following"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

// IsFollowing reports whether id is in the user's following list.
func (u *User) IsFollowing(id uuid.UUID) bool {
	for _, f := range u.Following {
		if f == id {
			return true
		}
	}
	return false
}
