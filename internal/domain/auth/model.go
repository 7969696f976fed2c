package auth

import (
	"context"
	"strings"
	"time"

	"agrostock/internal/core/apperror"
)

// User represents an account. Each account owns its own products,
// parties, and ledger records.
type User struct {
	ID       int64  `db:"id" json:"id"`
	Username string `db:"username" json:"username"`

	// PasswordHash is a bcrypt hash, never serialized
	PasswordHash string `db:"password_hash" json:"-"`

	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// Validate checks registration invariants.
func (u *User) Validate(ctx context.Context) error {
	name := strings.TrimSpace(u.Username)
	if len(name) < 3 {
		return apperror.NewValidation("username must be at least 3 characters").
			WithDetail("field", "username")
	}
	if len(name) > 50 {
		return apperror.NewValidation("username too long (max 50)").
			WithDetail("field", "username")
	}
	return nil
}

// TokenPair is returned on login, registration, and refresh.
type TokenPair struct {
	Token     string `json:"token"`
	ExpiresIn int    `json:"expiresIn"`
}
