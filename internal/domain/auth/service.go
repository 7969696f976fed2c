package auth

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"agrostock/internal/core/apperror"
	"agrostock/internal/core/tx"
	"agrostock/pkg/logger"
)

// SettingsInitializer creates the default settings row for a new
// account. Implemented by the settings service.
type SettingsInitializer interface {
	EnsureDefaults(ctx context.Context, ownerID int64) error
}

// Service provides registration, login, and password management.
type Service struct {
	repo      Repository
	jwt       *JWTService
	txManager tx.Manager
	settings  SettingsInitializer
}

// NewService creates an auth service.
func NewService(repo Repository, jwt *JWTService, txManager tx.Manager, settings SettingsInitializer) *Service {
	return &Service{
		repo:      repo,
		jwt:       jwt,
		txManager: txManager,
		settings:  settings,
	}
}

// Register creates a new account with its default settings and
// returns an access token.
func (s *Service) Register(ctx context.Context, username, password string) (*User, *TokenPair, error) {
	user := &User{Username: username}
	if err := user.Validate(ctx); err != nil {
		return nil, nil, err
	}

	if len(password) < 6 {
		return nil, nil, apperror.NewValidation("password must be at least 6 characters").
			WithDetail("field", "password")
	}

	taken, err := s.repo.ExistsByUsername(ctx, username)
	if err != nil {
		return nil, nil, err
	}
	if taken {
		return nil, nil, apperror.NewDuplicate("user", "username", username)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, fmt.Errorf("hash password: %w", err)
	}
	user.PasswordHash = string(hash)

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		id, err := s.repo.Create(ctx, user)
		if err != nil {
			return fmt.Errorf("create user: %w", err)
		}
		user.ID = id

		if err := s.settings.EnsureDefaults(ctx, id); err != nil {
			return fmt.Errorf("init settings: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	pair, err := s.issueToken(user)
	if err != nil {
		return nil, nil, err
	}

	logger.Info(ctx, "registered account", "username", username, "user_id", user.ID)
	return user, pair, nil
}

// Login verifies credentials and returns an access token.
func (s *Service) Login(ctx context.Context, username, password string) (*User, *TokenPair, error) {
	user, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		// do not reveal whether the account exists
		if apperror.IsNotFound(err) {
			return nil, nil, apperror.NewUnauthorized("invalid username or password")
		}
		return nil, nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, nil, apperror.NewUnauthorized("invalid username or password")
	}

	pair, err := s.issueToken(user)
	if err != nil {
		return nil, nil, err
	}

	logger.Info(ctx, "login", "username", username, "user_id", user.ID)
	return user, pair, nil
}

// Refresh issues a fresh token for an authenticated user.
func (s *Service) Refresh(ctx context.Context, userID int64) (*TokenPair, error) {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewUnauthorized("account no longer exists")
		}
		return nil, err
	}
	return s.issueToken(user)
}

// Me returns the account for an authenticated user.
func (s *Service) Me(ctx context.Context, userID int64) (*User, error) {
	return s.repo.GetByID(ctx, userID)
}

// ChangePassword verifies the old password and stores a new hash.
func (s *Service) ChangePassword(ctx context.Context, userID int64, oldPassword, newPassword string) error {
	if len(newPassword) < 6 {
		return apperror.NewValidation("password must be at least 6 characters").
			WithDetail("field", "newPassword")
	}

	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(oldPassword)); err != nil {
		return apperror.NewUnauthorized("current password is incorrect")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.repo.UpdatePassword(ctx, userID, string(hash))
	})
}

func (s *Service) issueToken(user *User) (*TokenPair, error) {
	token, _, err := s.jwt.GenerateAccessToken(user.ID, user.Username)
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}
	return &TokenPair{Token: token, ExpiresIn: s.jwt.TTLSeconds()}, nil
}
