package domain

import (
	"context"
	"fmt"

	"agrostock/internal/core/apperror"
	"agrostock/internal/core/tx"
)

// Validatable is implemented by entities that can validate their invariants.
type Validatable interface {
	Validate(ctx context.Context) error
}

// CatalogRepository defines CRUD operations for catalog entities.
// All reads and writes are scoped to one owner account.
type CatalogRepository[T Validatable] interface {
	// Create inserts a new entity and returns its generated ID
	Create(ctx context.Context, entity T) (int64, error)

	// GetByID retrieves entity by ID within the owner scope
	GetByID(ctx context.Context, ownerID, entityID int64) (T, error)

	// GetByName retrieves entity by name (unique within owner scope)
	GetByName(ctx context.Context, ownerID int64, name string) (T, error)

	// Update modifies existing entity with optimistic locking
	Update(ctx context.Context, entity T) error

	// Delete removes the entity; dependent references are cleared
	// by set-null foreign keys
	Delete(ctx context.Context, ownerID, entityID int64) error

	// List retrieves entities with filtering and pagination
	List(ctx context.Context, ownerID int64, filter ListFilter) (ListResult[T], error)

	// ExistsByName reports whether another entity already uses the name
	ExistsByName(ctx context.Context, ownerID int64, name string, excludeID int64) (bool, error)
}

// CatalogService provides business logic for catalog entities.
// Uses composition: entity services embed it and register hooks.
type CatalogService[T Validatable] struct {
	repo      CatalogRepository[T]
	txManager tx.Manager
	hooks     *HookRegistry[T]

	// entityName for error messages
	entityName string
}

// NewCatalogService creates a new catalog service.
func NewCatalogService[T Validatable](repo CatalogRepository[T], txManager tx.Manager, entityName string) *CatalogService[T] {
	return &CatalogService[T]{
		repo:       repo,
		txManager:  txManager,
		hooks:      NewHookRegistry[T](),
		entityName: entityName,
	}
}

// Hooks returns the hook registry for external registration.
func (s *CatalogService[T]) Hooks() *HookRegistry[T] {
	return s.hooks
}

func (s *CatalogService[T]) normalizeValidationErr(err error) error {
	if err == nil {
		return nil
	}
	if apperror.IsAppError(err) {
		return err
	}
	return apperror.NewValidation(err.Error())
}

func (s *CatalogService[T]) normalizeGetErr(err error, idOrName any) error {
	if err == nil {
		return nil
	}
	if apperror.IsNotFound(err) {
		return apperror.NewNotFound(s.entityName, idOrName)
	}
	if apperror.IsAppError(err) {
		return err
	}
	return apperror.NewInternal(err).WithDetail("entity", s.entityName).WithDetail("id", idOrName)
}

// Create creates a new catalog entity and returns its ID.
func (s *CatalogService[T]) Create(ctx context.Context, entity T) (int64, error) {
	if err := entity.Validate(ctx); err != nil {
		return 0, s.normalizeValidationErr(err)
	}

	if err := s.hooks.Run(ctx, BeforeCreate, entity); err != nil {
		return 0, err
	}

	var newID int64
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		id, err := s.repo.Create(ctx, entity)
		if err != nil {
			return fmt.Errorf("create %s: %w", s.entityName, err)
		}
		newID = id
		return nil
	})
	if err != nil {
		return 0, err
	}

	// After-create hooks run outside the transaction; the entity is
	// already committed, so failures are not propagated
	_ = s.hooks.Run(ctx, AfterCreate, entity)

	return newID, nil
}

// GetByID retrieves entity by ID.
func (s *CatalogService[T]) GetByID(ctx context.Context, ownerID, entityID int64) (T, error) {
	entity, err := s.repo.GetByID(ctx, ownerID, entityID)
	if err != nil {
		return entity, s.normalizeGetErr(err, entityID)
	}
	return entity, nil
}

// GetByName retrieves entity by name.
func (s *CatalogService[T]) GetByName(ctx context.Context, ownerID int64, name string) (T, error) {
	entity, err := s.repo.GetByName(ctx, ownerID, name)
	if err != nil {
		return entity, s.normalizeGetErr(err, name)
	}
	return entity, nil
}

// Update updates an existing entity.
func (s *CatalogService[T]) Update(ctx context.Context, entity T) error {
	if err := entity.Validate(ctx); err != nil {
		return s.normalizeValidationErr(err)
	}

	if err := s.hooks.Run(ctx, BeforeUpdate, entity); err != nil {
		return err
	}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Update(ctx, entity); err != nil {
			return fmt.Errorf("update %s: %w", s.entityName, err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	_ = s.hooks.Run(ctx, AfterUpdate, entity)

	return nil
}

// Delete removes an entity.
func (s *CatalogService[T]) Delete(ctx context.Context, ownerID, entityID int64) error {
	entity, err := s.repo.GetByID(ctx, ownerID, entityID)
	if err != nil {
		return s.normalizeGetErr(err, entityID)
	}

	if err := s.hooks.Run(ctx, BeforeDelete, entity); err != nil {
		return err
	}

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Delete(ctx, ownerID, entityID); err != nil {
			return fmt.Errorf("delete %s: %w", s.entityName, err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	_ = s.hooks.Run(ctx, AfterDelete, entity)

	return nil
}

// List retrieves entities with filtering.
func (s *CatalogService[T]) List(ctx context.Context, ownerID int64, filter ListFilter) (ListResult[T], error) {
	filter.Normalize()
	return s.repo.List(ctx, ownerID, filter)
}
