package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/dmarkovic/chirp/internal/domain"
)

// memUserRepo is an in-memory UserRepository for service tests.
type memUserRepo struct {
	users         map[uuid.UUID]*domain.User
	notifications []domain.Notification
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[uuid.UUID]*domain.User)}
}

func (r *memUserRepo) add(u *domain.User) {
	r.users[u.ID] = u
}

func (r *memUserRepo) Create(ctx context.Context, user *domain.User) error {
	r.users[user.ID] = cloneUser(user)
	return nil
}

func (r *memUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	return cloneUser(u), nil
}

func (r *memUserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			return cloneUser(u), nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) Update(ctx context.Context, user *domain.User) error {
	r.users[user.ID] = cloneUser(user)
	return nil
}

func (r *memUserRepo) SuggestRandom(ctx context.Context, excludeID uuid.UUID, n int) ([]domain.User, error) {
	var sample []domain.User
	for _, u := range r.users {
		if u.ID == excludeID {
			continue
		}
		sample = append(sample, *cloneUser(u))
		if len(sample) == n {
			break
		}
	}
	return sample, nil
}

func (r *memUserRepo) IsFollowing(ctx context.Context, followerID, followedID uuid.UUID) (bool, error) {
	u, ok := r.users[followerID]
	if !ok {
		return false, nil
	}
	return u.IsFollowing(followedID), nil
}

func (r *memUserRepo) CreateFollowEdge(ctx context.Context, followerID, followedID uuid.UUID, n *domain.Notification) error {
	follower := r.users[followerID]
	followed := r.users[followedID]
	if !contains(followed.Followers, followerID) {
		followed.Followers = append(followed.Followers, followerID)
	}
	if !contains(follower.Following, followedID) {
		follower.Following = append(follower.Following, followedID)
	}
	r.notifications = append(r.notifications, *n)
	return nil
}

func (r *memUserRepo) RemoveFollowEdge(ctx context.Context, followerID, followedID uuid.UUID) error {
	followed := r.users[followedID]
	followed.Followers = remove(followed.Followers, followerID)
	follower := r.users[followerID]
	follower.Following = remove(follower.Following, followedID)
	return nil
}

func cloneUser(u *domain.User) *domain.User {
	c := *u
	c.Followers = append([]uuid.UUID{}, u.Followers...)
	c.Following = append([]uuid.UUID{}, u.Following...)
	return &c
}

func contains(ids []uuid.UUID, id uuid.UUID) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func remove(ids []uuid.UUID, id uuid.UUID) []uuid.UUID {
	out := ids[:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

type fakeUploader struct {
	uploads   int
	destroyed []string
}

func (f *fakeUploader) Upload(ctx context.Context, image string) (string, error) {
	f.uploads++
	return fmt.Sprintf("https://img.test/%d.png", f.uploads), nil
}

func (f *fakeUploader) Destroy(ctx context.Context, imageURL string) error {
	f.destroyed = append(f.destroyed, imageURL)
	return nil
}

type fakeNotifier struct {
	delivered []*domain.Notification
}

func (f *fakeNotifier) NotifyFollow(n *domain.Notification) {
	f.delivered = append(f.delivered, n)
}

func newTestUser(t *testing.T, username string) *domain.User {
	t.Helper()
	hash, err := hashPassword("password123")
	if err != nil {
		t.Fatalf("hashPassword: %v", err)
	}
	now := time.Now()
	return &domain.User{
		ID:           uuid.New(),
		Username:     username,
		Email:        username + "@example.com",
		FullName:     "Test " + username,
		PasswordHash: hash,
		Followers:    []uuid.UUID{},
		Following:    []uuid.UUID{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func TestToggleFollowCreatesEdgeAndNotification(t *testing.T) {
	repo := newMemUserRepo()
	notifier := &fakeNotifier{}
	svc := NewUserService(repo, &fakeUploader{}, notifier)

	a := newTestUser(t, "alice")
	b := newTestUser(t, "bob")
	repo.add(a)
	repo.add(b)

	followed, err := svc.ToggleFollow(context.Background(), a.ID, b.ID)
	if err != nil {
		t.Fatalf("ToggleFollow: %v", err)
	}
	if !followed {
		t.Fatal("expected followed=true")
	}

	if !contains(repo.users[a.ID].Following, b.ID) {
		t.Error("target missing from actor's following")
	}
	if !contains(repo.users[b.ID].Followers, a.ID) {
		t.Error("actor missing from target's followers")
	}

	if len(repo.notifications) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(repo.notifications))
	}
	n := repo.notifications[0]
	if n.From != a.ID || n.To != b.ID || n.Type != domain.NotificationTypeFollow {
		t.Errorf("unexpected notification %+v", n)
	}
	if n.Read {
		t.Error("new notification should be unread")
	}

	if len(notifier.delivered) != 1 {
		t.Errorf("expected 1 realtime delivery, got %d", len(notifier.delivered))
	}
}

func TestToggleFollowTwiceRestoresEdge(t *testing.T) {
	repo := newMemUserRepo()
	svc := NewUserService(repo, &fakeUploader{}, nil)

	a := newTestUser(t, "alice")
	b := newTestUser(t, "bob")
	repo.add(a)
	repo.add(b)

	if _, err := svc.ToggleFollow(context.Background(), a.ID, b.ID); err != nil {
		t.Fatalf("first toggle: %v", err)
	}
	followed, err := svc.ToggleFollow(context.Background(), a.ID, b.ID)
	if err != nil {
		t.Fatalf("second toggle: %v", err)
	}
	if followed {
		t.Fatal("expected followed=false on second toggle")
	}

	if len(repo.users[a.ID].Following) != 0 {
		t.Error("actor's following should be empty again")
	}
	if len(repo.users[b.ID].Followers) != 0 {
		t.Error("target's followers should be empty again")
	}

	// The follow notification is not retracted on unfollow.
	if len(repo.notifications) != 1 {
		t.Errorf("expected the follow notification to remain, got %d", len(repo.notifications))
	}
}

func TestToggleFollowSelf(t *testing.T) {
	repo := newMemUserRepo()
	svc := NewUserService(repo, &fakeUploader{}, nil)

	a := newTestUser(t, "alice")
	repo.add(a)

	if _, err := svc.ToggleFollow(context.Background(), a.ID, a.ID); err != ErrSelfFollow {
		t.Fatalf("expected ErrSelfFollow, got %v", err)
	}
}

func TestToggleFollowMissingTarget(t *testing.T) {
	repo := newMemUserRepo()
	svc := NewUserService(repo, &fakeUploader{}, nil)

	a := newTestUser(t, "alice")
	repo.add(a)

	_, err := svc.ToggleFollow(context.Background(), a.ID, uuid.New())
	if err != ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}

	if len(repo.users[a.ID].Following) != 0 {
		t.Error("actor state changed on failed toggle")
	}
	if len(repo.notifications) != 0 {
		t.Error("notification written on failed toggle")
	}
}

func TestSuggestUsersFiltersFollowedAndCaps(t *testing.T) {
	repo := newMemUserRepo()
	svc := NewUserService(repo, &fakeUploader{}, nil)

	a := newTestUser(t, "alice")
	repo.add(a)

	var others []*domain.User
	for i := 0; i < 7; i++ {
		u := newTestUser(t, fmt.Sprintf("user%d", i))
		repo.add(u)
		others = append(others, u)
	}
	for _, u := range others[:3] {
		if _, err := svc.ToggleFollow(context.Background(), a.ID, u.ID); err != nil {
			t.Fatalf("ToggleFollow: %v", err)
		}
	}

	suggested, err := svc.SuggestUsers(context.Background(), a.ID)
	if err != nil {
		t.Fatalf("SuggestUsers: %v", err)
	}
	if len(suggested) > 4 {
		t.Errorf("expected at most 4 suggestions, got %d", len(suggested))
	}
	actor := repo.users[a.ID]
	for _, u := range suggested {
		if u.ID == a.ID {
			t.Error("suggested list contains the actor")
		}
		if contains(actor.Following, u.ID) {
			t.Errorf("suggested list contains followed user %s", u.Username)
		}
		if u.PasswordHash != "" {
			t.Error("suggested user has password hash set")
		}
	}
}

func TestUpdateProfilePasswordRules(t *testing.T) {
	repo := newMemUserRepo()
	svc := NewUserService(repo, &fakeUploader{}, nil)

	a := newTestUser(t, "alice")
	repo.add(a)
	ctx := context.Background()

	if _, err := svc.UpdateProfile(ctx, a.ID, UpdateProfileInput{CurrentPassword: "password123"}); err != ErrPasswordPair {
		t.Errorf("partial pair: expected ErrPasswordPair, got %v", err)
	}
	if _, err := svc.UpdateProfile(ctx, a.ID, UpdateProfileInput{CurrentPassword: "wrong", NewPassword: "newpassword"}); err != ErrWrongPassword {
		t.Errorf("wrong current: expected ErrWrongPassword, got %v", err)
	}
	if _, err := svc.UpdateProfile(ctx, a.ID, UpdateProfileInput{CurrentPassword: "password123", NewPassword: "short"}); err != ErrPasswordShort {
		t.Errorf("short new: expected ErrPasswordShort, got %v", err)
	}

	if _, err := svc.UpdateProfile(ctx, a.ID, UpdateProfileInput{CurrentPassword: "password123", NewPassword: "newpassword"}); err != nil {
		t.Fatalf("valid change: %v", err)
	}
	if !verifyPassword("newpassword", repo.users[a.ID].PasswordHash) {
		t.Error("stored hash does not match the new password")
	}
}

func TestUpdateProfileReplacesImage(t *testing.T) {
	repo := newMemUserRepo()
	up := &fakeUploader{}
	svc := NewUserService(repo, up, nil)

	a := newTestUser(t, "alice")
	old := "https://img.test/old.png"
	a.ProfileImg = &old
	repo.add(a)

	updated, err := svc.UpdateProfile(context.Background(), a.ID, UpdateProfileInput{ProfileImg: "data:image/png;base64,xxxx"})
	if err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}

	if len(up.destroyed) != 1 || up.destroyed[0] != old {
		t.Errorf("expected old image destroyed, got %v", up.destroyed)
	}
	if updated.ProfileImg == nil || *updated.ProfileImg == old {
		t.Error("profile image not replaced")
	}
}

func TestGetProfileStripsPassword(t *testing.T) {
	repo := newMemUserRepo()
	svc := NewUserService(repo, &fakeUploader{}, nil)

	a := newTestUser(t, "alice")
	repo.add(a)

	user, err := svc.GetProfile(context.Background(), "alice")
	if err != nil {
		t.Fatalf("GetProfile: %v", err)
	}
	if user.PasswordHash != "" {
		t.Error("password hash leaked from GetProfile")
	}

	if _, err := svc.GetProfile(context.Background(), "nobody"); err != ErrUserNotFound {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}
