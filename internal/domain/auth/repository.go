package auth

import "context"

// Repository defines persistence for user accounts.
type Repository interface {
	// Create inserts a new user and returns its generated ID
	Create(ctx context.Context, user *User) (int64, error)

	// GetByID retrieves a user by primary key
	GetByID(ctx context.Context, id int64) (*User, error)

	// GetByUsername retrieves a user by username
	GetByUsername(ctx context.Context, username string) (*User, error)

	// UpdatePassword replaces the stored password hash
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error

	// ExistsByUsername reports whether the username is taken
	ExistsByUsername(ctx context.Context, username string) (bool, error)
}
