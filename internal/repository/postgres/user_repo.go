package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dmarkovic/chirp/internal/domain"
)

const userColumns = "id, username, email, full_name, password_hash, bio, link, profile_img, cover_img, followers, following, created_at, updated_at"

type UserRepo struct {
	pool *pgxpool.Pool
}

func NewUserRepo(pool *pgxpool.Pool) *UserRepo {
	return &UserRepo{pool: pool}
}

func (r *UserRepo) Create(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (id, username, email, full_name, password_hash, bio, link, profile_img, cover_img, followers, following, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

	_, err := r.pool.Exec(ctx, query,
		user.ID, user.Username, user.Email, user.FullName, user.PasswordHash,
		user.Bio, user.Link, user.ProfileImg, user.CoverImg,
		user.Followers, user.Following, user.CreatedAt, user.UpdatedAt,
	)
	return err
}

func (r *UserRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return r.scanUser(ctx, "SELECT "+userColumns+" FROM users WHERE id = $1", id)
}

func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.scanUser(ctx, "SELECT "+userColumns+" FROM users WHERE username = $1", username)
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.scanUser(ctx, "SELECT "+userColumns+" FROM users WHERE email = $1", email)
}

func (r *UserRepo) Update(ctx context.Context, user *domain.User) error {
	query := `
		UPDATE users
		SET username = $2, email = $3, full_name = $4, password_hash = $5,
			bio = $6, link = $7, profile_img = $8, cover_img = $9, updated_at = $10
		WHERE id = $1`

	_, err := r.pool.Exec(ctx, query,
		user.ID, user.Username, user.Email, user.FullName, user.PasswordHash,
		user.Bio, user.Link, user.ProfileImg, user.CoverImg, user.UpdatedAt,
	)
	return err
}

func (r *UserRepo) SuggestRandom(ctx context.Context, excludeID uuid.UUID, n int) ([]domain.User, error) {
	query := "SELECT " + userColumns + " FROM users WHERE id <> $1 ORDER BY random() LIMIT $2"

	rows, err := r.pool.Query(ctx, query, excludeID, n)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		var u domain.User
		if err := scanUserRow(rows, &u); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *UserRepo) IsFollowing(ctx context.Context, followerID, followedID uuid.UUID) (bool, error) {
	var following bool
	err := r.pool.QueryRow(ctx,
		`SELECT $2 = ANY(following) FROM users WHERE id = $1`,
		followerID, followedID,
	).Scan(&following)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	return following, err
}

// CreateFollowEdge performs the two add-to-set updates plus the notification
// insert in a single transaction, so a follow either fully happens or not at
// all. The ANY guards keep the arrays set-valued under concurrent toggles.
func (r *UserRepo) CreateFollowEdge(ctx context.Context, followerID, followedID uuid.UUID, n *domain.Notification) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	// Followed side first, then follower side.
	if _, err := tx.Exec(ctx,
		`UPDATE users SET followers = array_append(followers, $2) WHERE id = $1 AND NOT ($2 = ANY(followers))`,
		followedID, followerID,
	); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx,
		`UPDATE users SET following = array_append(following, $2) WHERE id = $1 AND NOT ($2 = ANY(following))`,
		followerID, followedID,
	); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx,
		`INSERT INTO notifications (id, from_id, to_id, type, is_read, created_at) VALUES ($1, $2, $3, $4, $5, $6)`,
		n.ID, n.From, n.To, n.Type, n.Read, n.CreatedAt,
	); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *UserRepo) RemoveFollowEdge(ctx context.Context, followerID, followedID uuid.UUID) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		`UPDATE users SET followers = array_remove(followers, $2) WHERE id = $1`,
		followedID, followerID,
	); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx,
		`UPDATE users SET following = array_remove(following, $2) WHERE id = $1`,
		followerID, followedID,
	); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *UserRepo) scanUser(ctx context.Context, query string, arg any) (*domain.User, error) {
	var u domain.User
	err := scanUserRow(r.pool.QueryRow(ctx, query, arg), &u)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func scanUserRow(row pgx.Row, u *domain.User) error {
	return row.Scan(
		&u.ID, &u.Username, &u.Email, &u.FullName, &u.PasswordHash,
		&u.Bio, &u.Link, &u.ProfileImg, &u.CoverImg,
		&u.Followers, &u.Following, &u.CreatedAt, &u.UpdatedAt,
	)
}
