package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"violation-tracker/internal/model"
)

const userColumns = `id, uuid, username, email, password_hash, role, is_active, metadata, created_by,
		last_login_at, last_login_ip, refresh_token_hash, refresh_token_expires_at,
		refresh_token_issued_at, created_at, updated_at`

type UserRepository struct {
	db DBTX
}

func NewUserRepository(db DBTX) *UserRepository {
	return &UserRepository{db: db}
}

func scanUser(row pgx.Row) (model.User, error) {
	var u model.User
	err := row.Scan(&u.ID, &u.UUID, &u.Username, &u.Email, &u.PasswordHash, &u.Role, &u.IsActive,
		&u.Metadata, &u.CreatedBy, &u.LastLoginAt, &u.LastLoginIP, &u.RefreshTokenHash,
		&u.RefreshTokenExpiresAt, &u.RefreshTokenIssuedAt, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

func (r *UserRepository) findOne(ctx context.Context, op string, where string, arg any) (model.User, error) {
	u, err := scanUser(r.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE `+where+` AND deleted_at IS NULL ORDER BY id LIMIT 1`, arg))
	if errors.Is(err, pgx.ErrNoRows) {
		return model.User{}, model.ErrUserNotFound
	}
	if err != nil {
		return model.User{}, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id int64) (model.User, error) {
	return r.findOne(ctx, "find user by id", "id = $1", id)
}

// FindByUsernameOrEmail matches identity against both columns; the lowest id
// wins when a username collides with another user's email.
func (r *UserRepository) FindByUsernameOrEmail(ctx context.Context, identity string) (model.User, error) {
	return r.findOne(ctx, "find user by identity",
		"(lower(username) = lower($1) OR lower(email) = lower($1))", strings.TrimSpace(identity))
}

func (r *UserRepository) FindByRefreshHash(ctx context.Context, hash string) (model.User, error) {
	return r.findOne(ctx, "find user by refresh hash", "refresh_token_hash = $1", hash)
}

// UpdateRefreshToken writes the three refresh columns in one statement.
func (r *UserRepository) UpdateRefreshToken(ctx context.Context, userID int64, state model.RefreshTokenState) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE users
		 SET refresh_token_hash = $2, refresh_token_expires_at = $3, refresh_token_issued_at = $4
		 WHERE id = $1`,
		userID, state.Hash, state.ExpiresAt, state.IssuedAt)
	if err != nil {
		return fmt.Errorf("update refresh token: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) List(ctx context.Context, page int, perPage int) ([]model.User, int, error) {
	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM users WHERE deleted_at IS NULL`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count users: %w", err)
	}

	limit, offset := limitOffset(page, perPage)
	rows, err := r.db.Query(ctx,
		`SELECT `+userColumns+` FROM users WHERE deleted_at IS NULL
		 ORDER BY username LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	users := make([]model.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, u)
	}
	return users, total, rows.Err()
}

func (r *UserRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM users WHERE deleted_at IS NULL`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return count, nil
}

// Create inserts u and fills in its generated id and timestamps.
func (r *UserRepository) Create(ctx context.Context, u *model.User) error {
	err := r.db.QueryRow(ctx,
		`INSERT INTO users (uuid, username, email, password_hash, role, is_active, metadata, created_by)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id, created_at, updated_at`,
		u.UUID, u.Username, u.Email, u.PasswordHash, u.Role, u.IsActive, u.Metadata, u.CreatedBy).
		Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)
	if isUniqueViolation(err) {
		return model.ErrUserAlreadyExists
	}
	if err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (r *UserRepository) Update(ctx context.Context, u model.User) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE users SET email = $2, password_hash = $3, role = $4, is_active = $5, updated_at = $6
		 WHERE id = $1 AND deleted_at IS NULL`,
		u.ID, u.Email, u.PasswordHash, u.Role, u.IsActive, u.UpdatedAt)
	if isUniqueViolation(err) {
		return model.ErrUserAlreadyExists
	}
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrUserNotFound
	}
	return nil
}

// SoftDelete stamps deleted_at and drops any live refresh token.
func (r *UserRepository) SoftDelete(ctx context.Context, id int64, at time.Time) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE users
		 SET deleted_at = $2, refresh_token_hash = NULL, refresh_token_expires_at = NULL,
		     refresh_token_issued_at = NULL
		 WHERE id = $1 AND deleted_at IS NULL`, id, at)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrUserNotFound
	}
	return nil
}
