package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dmarkovic/chirp/internal/domain"
	"github.com/dmarkovic/chirp/internal/media"
	"github.com/dmarkovic/chirp/internal/repository"
)

var (
	ErrSelfFollow    = errors.New("cannot follow or unfollow yourself")
	ErrUserNotFound  = errors.New("user not found")
	ErrPasswordPair  = errors.New("both current and new password are required")
	ErrWrongPassword = errors.New("current password is incorrect")
	ErrPasswordShort = errors.New("new password must be at least 6 characters")
)

const suggestedSampleSize = 10
const suggestedLimit = 4

// Notifier delivers a notification to a connected user, best effort.
type Notifier interface {
	NotifyFollow(n *domain.Notification)
}

type UserService struct {
	userRepo repository.UserRepository
	uploader media.Uploader
	notifier Notifier
}

// NewUserService builds the user service. notifier may be nil when realtime
// delivery is not wired.
func NewUserService(userRepo repository.UserRepository, uploader media.Uploader, notifier Notifier) *UserService {
	return &UserService{
		userRepo: userRepo,
		uploader: uploader,
		notifier: notifier,
	}
}

func (s *UserService) GetProfile(ctx context.Context, username string) (*domain.User, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("looking up user: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	user.PasswordHash = ""
	return user, nil
}

// ToggleFollow flips the directed follow edge from actor to target. A new
// edge also persists a follow notification; removing an edge never retracts
// one. Returns true when the call resulted in a follow.
func (s *UserService) ToggleFollow(ctx context.Context, actorID, targetID uuid.UUID) (bool, error) {
	if actorID == targetID {
		return false, ErrSelfFollow
	}

	target, err := s.userRepo.GetByID(ctx, targetID)
	if err != nil {
		return false, fmt.Errorf("looking up target: %w", err)
	}
	actor, err := s.userRepo.GetByID(ctx, actorID)
	if err != nil {
		return false, fmt.Errorf("looking up actor: %w", err)
	}
	if target == nil || actor == nil {
		return false, ErrUserNotFound
	}

	following, err := s.userRepo.IsFollowing(ctx, actorID, targetID)
	if err != nil {
		return false, err
	}

	if following {
		if err := s.userRepo.RemoveFollowEdge(ctx, actorID, targetID); err != nil {
			return false, fmt.Errorf("removing follow edge: %w", err)
		}
		return false, nil
	}

	n := &domain.Notification{
		ID:        uuid.New(),
		From:      actorID,
		To:        targetID,
		Type:      domain.NotificationTypeFollow,
		CreatedAt: time.Now(),
	}
	if err := s.userRepo.CreateFollowEdge(ctx, actorID, targetID, n); err != nil {
		return false, fmt.Errorf("creating follow edge: %w", err)
	}

	if s.notifier != nil {
		s.notifier.NotifyFollow(n)
	}

	return true, nil
}

// SuggestUsers samples random users and filters out the actor's existing
// follows afterwards, so an unlucky sample can return fewer than the limit.
func (s *UserService) SuggestUsers(ctx context.Context, userID uuid.UUID) ([]domain.User, error) {
	actor, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if actor == nil {
		return nil, ErrUserNotFound
	}

	sample, err := s.userRepo.SuggestRandom(ctx, userID, suggestedSampleSize)
	if err != nil {
		return nil, fmt.Errorf("sampling users: %w", err)
	}

	suggested := []domain.User{}
	for _, u := range sample {
		if actor.IsFollowing(u.ID) {
			continue
		}
		u.PasswordHash = ""
		suggested = append(suggested, u)
		if len(suggested) == suggestedLimit {
			break
		}
	}
	return suggested, nil
}

type UpdateProfileInput struct {
	FullName        string `json:"fullName"`
	Email           string `json:"email"`
	Username        string `json:"username"`
	Bio             string `json:"bio"`
	Link            string `json:"link"`
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
	ProfileImg      string `json:"profileImg"`
	CoverImg        string `json:"coverImg"`
}

func (s *UserService) UpdateProfile(ctx context.Context, userID uuid.UUID, input UpdateProfileInput) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	if (input.CurrentPassword == "") != (input.NewPassword == "") {
		return nil, ErrPasswordPair
	}
	if input.NewPassword != "" {
		if !verifyPassword(input.CurrentPassword, user.PasswordHash) {
			return nil, ErrWrongPassword
		}
		if len(input.NewPassword) < 6 {
			return nil, ErrPasswordShort
		}
		hash, err := hashPassword(input.NewPassword)
		if err != nil {
			return nil, fmt.Errorf("hashing password: %w", err)
		}
		user.PasswordHash = hash
	}

	if input.Username != "" && input.Username != user.Username {
		taken, err := s.userRepo.GetByUsername(ctx, input.Username)
		if err != nil {
			return nil, err
		}
		if taken != nil {
			return nil, ErrUsernameTaken
		}
		user.Username = input.Username
	}
	if input.Email != "" && input.Email != user.Email {
		taken, err := s.userRepo.GetByEmail(ctx, input.Email)
		if err != nil {
			return nil, err
		}
		if taken != nil {
			return nil, ErrEmailTaken
		}
		user.Email = input.Email
	}

	if input.FullName != "" {
		user.FullName = input.FullName
	}
	if input.Bio != "" {
		user.Bio = input.Bio
	}
	if input.Link != "" {
		user.Link = input.Link
	}

	if input.ProfileImg != "" {
		url, err := s.replaceImage(ctx, user.ProfileImg, input.ProfileImg)
		if err != nil {
			return nil, err
		}
		user.ProfileImg = &url
	}
	if input.CoverImg != "" {
		url, err := s.replaceImage(ctx, user.CoverImg, input.CoverImg)
		if err != nil {
			return nil, err
		}
		user.CoverImg = &url
	}

	user.UpdatedAt = time.Now()
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("updating user: %w", err)
	}

	user.PasswordHash = ""
	return user, nil
}

func (s *UserService) replaceImage(ctx context.Context, old *string, image string) (string, error) {
	if old != nil && *old != "" {
		if err := s.uploader.Destroy(ctx, *old); err != nil {
			return "", err
		}
	}
	return s.uploader.Upload(ctx, image)
}
