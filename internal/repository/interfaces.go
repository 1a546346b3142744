package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/dmarkovic/chirp/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	// SuggestRandom returns up to n users sampled uniformly at random,
	// excluding the given id.
	SuggestRandom(ctx context.Context, excludeID uuid.UUID, n int) ([]domain.User, error)
	IsFollowing(ctx context.Context, followerID, followedID uuid.UUID) (bool, error)
	// CreateFollowEdge adds followerID to the followed user's followers,
	// followedID to the follower's following, and persists the follow
	// notification. All three writes commit or roll back together.
	CreateFollowEdge(ctx context.Context, followerID, followedID uuid.UUID, n *domain.Notification) error
	// RemoveFollowEdge removes both sides of the edge. No notification is
	// written or retracted.
	RemoveFollowEdge(ctx context.Context, followerID, followedID uuid.UUID) error
}

type NotificationRepository interface {
	ListByRecipient(ctx context.Context, userID uuid.UUID) ([]domain.Notification, error)
}

type PostRepository interface {
	Create(ctx context.Context, post *domain.Post) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Post, error)
}
