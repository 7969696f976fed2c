// Package auth_repo provides PostgreSQL implementations for the auth,
// settings and presence repositories.
package auth_repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"agrostock/internal/core/apperror"
	"agrostock/internal/domain/auth"
	"agrostock/internal/infrastructure/storage/postgres"
)

// UserRepo implements auth.Repository.
type UserRepo struct {
	txm *postgres.TxManager
}

// NewUserRepo creates a new user repository.
func NewUserRepo(txm *postgres.TxManager) *UserRepo {
	return &UserRepo{txm: txm}
}

var _ auth.Repository = (*UserRepo)(nil)

// Create creates a new user and returns the generated ID.
func (r *UserRepo) Create(ctx context.Context, user *auth.User) (int64, error) {
	q := r.txm.GetQuerier(ctx)

	query := `
		INSERT INTO users (username, password_hash, created_at)
		VALUES ($1, $2, now())
		RETURNING id
	`

	var userID int64
	err := q.QueryRow(ctx, query, user.Username, user.PasswordHash).Scan(&userID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return 0, apperror.NewDuplicate("user", "username", user.Username).WithCause(err)
		}
		return 0, fmt.Errorf("insert user: %w", err)
	}

	return userID, nil
}

// GetByID retrieves user by ID.
func (r *UserRepo) GetByID(ctx context.Context, userID int64) (*auth.User, error) {
	q := r.txm.GetQuerier(ctx)

	query := `
		SELECT id, username, password_hash, created_at
		FROM users WHERE id = $1
	`

	var user auth.User
	err := q.QueryRow(ctx, query, userID).Scan(
		&user.ID, &user.Username, &user.PasswordHash, &user.CreatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, apperror.NewNotFound("user", userID)
	}
	if err != nil {
		return nil, fmt.Errorf("query user: %w", err)
	}

	return &user, nil
}

// GetByUsername retrieves user by username.
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*auth.User, error) {
	q := r.txm.GetQuerier(ctx)

	query := `
		SELECT id, username, password_hash, created_at
		FROM users WHERE username = $1
	`

	var user auth.User
	err := q.QueryRow(ctx, query, username).Scan(
		&user.ID, &user.Username, &user.PasswordHash, &user.CreatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, apperror.NewNotFound("user", username)
	}
	if err != nil {
		return nil, fmt.Errorf("query user: %w", err)
	}

	return &user, nil
}

// UpdatePassword replaces the stored password hash.
func (r *UserRepo) UpdatePassword(ctx context.Context, userID int64, passwordHash string) error {
	q := r.txm.GetQuerier(ctx)

	query := `UPDATE users SET password_hash = $2 WHERE id = $1`

	result, err := q.Exec(ctx, query, userID, passwordHash)
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("user", userID)
	}

	return nil
}

// ExistsByUsername reports whether the username is already taken.
func (r *UserRepo) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	q := r.txm.GetQuerier(ctx)

	var exists int
	err := q.QueryRow(ctx, `SELECT 1 FROM users WHERE username = $1`, username).Scan(&exists)
	if err == pgx.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check username: %w", err)
	}

	return true, nil
}
