package settings

import (
	"context"

	"agrostock/internal/core/apperror"
	"agrostock/internal/core/tx"
)

// Repository defines persistence for account settings.
type Repository interface {
	// GetByOwner retrieves the settings row for the account
	GetByOwner(ctx context.Context, ownerID int64) (*Settings, error)

	// Create inserts a settings row
	Create(ctx context.Context, s *Settings) error

	// Update overwrites the mutable fields
	Update(ctx context.Context, s *Settings) error
}

// Service provides settings access with lazy default creation.
type Service struct {
	repo      Repository
	txManager tx.Manager
}

// NewService creates a settings service.
func NewService(repo Repository, txManager tx.Manager) *Service {
	return &Service{repo: repo, txManager: txManager}
}

// Get returns the account's settings, creating the default row on
// first access.
func (s *Service) Get(ctx context.Context, ownerID int64) (*Settings, error) {
	existing, err := s.repo.GetByOwner(ctx, ownerID)
	if err == nil {
		return existing, nil
	}
	if !apperror.IsNotFound(err) {
		return nil, err
	}

	defaults := Defaults(ownerID)
	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.repo.Create(ctx, defaults)
	})
	if err != nil {
		return nil, err
	}

	return s.repo.GetByOwner(ctx, ownerID)
}

// Update applies a partial update on top of the stored settings,
// creating the default row first if needed.
func (s *Service) Update(ctx context.Context, ownerID int64, patch Patch) (*Settings, error) {
	current, err := s.Get(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	patch.Apply(current)
	if err := current.Validate(ctx); err != nil {
		return nil, err
	}

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.repo.Update(ctx, current)
	})
	if err != nil {
		return nil, err
	}

	return current, nil
}

// EnsureDefaults creates the default settings row if none exists.
// Called during account registration; implements auth.SettingsInitializer.
func (s *Service) EnsureDefaults(ctx context.Context, ownerID int64) error {
	_, err := s.repo.GetByOwner(ctx, ownerID)
	if err == nil {
		return nil
	}
	if !apperror.IsNotFound(err) {
		return err
	}
	return s.repo.Create(ctx, Defaults(ownerID))
}
