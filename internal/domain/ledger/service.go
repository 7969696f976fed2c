package ledger

import (
	"context"
	"fmt"

	"agrostock/internal/core/apperror"
	"agrostock/internal/core/tx"
	"agrostock/internal/domain"
	"agrostock/internal/domain/stock"
	"agrostock/pkg/logger"
)

// Auditor records entity change history. Satisfied by the postgres
// audit service.
type Auditor interface {
	LogChange(ctx context.Context, entityType string, entityID int64, action string, changes map[string]any) error
}

// Service provides CRUD for one ledger record type, pairing every
// stock-affecting mutation with a compensating delta through the
// stock engine inside a single transaction.
type Service[T Record] struct {
	repo      Repository[T]
	engine    *stock.Engine
	txManager tx.Manager
	hooks     *domain.HookRegistry[T]
	auditor   Auditor

	// entityName for error messages and audit entries
	entityName string
}

// NewService creates a ledger service.
func NewService[T Record](repo Repository[T], engine *stock.Engine, txManager tx.Manager, entityName string) *Service[T] {
	return &Service[T]{
		repo:       repo,
		engine:     engine,
		txManager:  txManager,
		hooks:      domain.NewHookRegistry[T](),
		entityName: entityName,
	}
}

// WithAuditor enables change auditing for this record type.
func (s *Service[T]) WithAuditor(a Auditor) *Service[T] {
	s.auditor = a
	return s
}

// audit records the change outside the mutation transaction; a failed
// audit write never rolls back the committed mutation.
func (s *Service[T]) audit(ctx context.Context, recordID int64, action string, changes map[string]any) {
	if s.auditor == nil {
		return
	}
	if err := s.auditor.LogChange(ctx, s.entityName, recordID, action, changes); err != nil {
		logger.Warn(ctx, "audit write failed",
			"entity", s.entityName,
			"id", recordID,
			"action", action,
			"error", err,
		)
	}
}

// Hooks returns the hook registry for external registration.
func (s *Service[T]) Hooks() *domain.HookRegistry[T] {
	return s.hooks
}

func (s *Service[T]) normalizeValidationErr(err error) error {
	if err == nil {
		return nil
	}
	if apperror.IsAppError(err) {
		return err
	}
	return apperror.NewValidation(err.Error())
}

// Create inserts the record and applies its stock delta atomically.
// Either both the ledger row and the stock change commit, or neither.
func (s *Service[T]) Create(ctx context.Context, rec T) (T, error) {
	var zero T

	if err := rec.Validate(ctx); err != nil {
		return zero, s.normalizeValidationErr(err)
	}

	if err := s.hooks.Run(ctx, domain.BeforeCreate, rec); err != nil {
		return zero, err
	}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if eff := rec.StockEffect(); eff.Affects {
			if _, err := s.engine.ApplyDeltaByName(ctx, rec.GetOwnerID(), eff.ProductName, eff.Delta); err != nil {
				return err
			}
		}

		id, err := s.repo.Create(ctx, rec)
		if err != nil {
			return fmt.Errorf("create %s: %w", s.entityName, err)
		}
		rec.SetID(id)
		return nil
	})
	if err != nil {
		return zero, err
	}

	_ = s.hooks.Run(ctx, domain.AfterCreate, rec)
	s.audit(ctx, rec.GetID(), "create", map[string]any{"record": rec})

	return rec, nil
}

// GetByID retrieves the record.
func (s *Service[T]) GetByID(ctx context.Context, ownerID, recordID int64) (T, error) {
	rec, err := s.repo.GetByID(ctx, ownerID, recordID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return rec, apperror.NewNotFound(s.entityName, recordID)
		}
		return rec, err
	}
	return rec, nil
}

// Update overwrites the record and applies the effective stock delta.
//
// When the quantity changes from oldQty to newQty on the same
// product, the engine receives one delta equal to the signed
// difference, never two separate deltas, so no intermediate state is
// observable. A zero effective delta still bumps the product version
// once. When the record is repointed to a different product, the old
// product's stock is restored in full and the new product absorbs the
// full delta, both inside the same transaction.
func (s *Service[T]) Update(ctx context.Context, updated T) (T, error) {
	var zero T

	if err := updated.Validate(ctx); err != nil {
		return zero, s.normalizeValidationErr(err)
	}

	if err := s.hooks.Run(ctx, domain.BeforeUpdate, updated); err != nil {
		return zero, err
	}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		old, err := s.repo.GetByID(ctx, updated.GetOwnerID(), updated.GetID())
		if err != nil {
			if apperror.IsNotFound(err) {
				return apperror.NewNotFound(s.entityName, updated.GetID())
			}
			return err
		}

		oldEff := old.StockEffect()
		newEff := updated.StockEffect()

		switch {
		case !newEff.Affects:
			// money-only record, nothing to adjust

		case oldEff.ProductName == newEff.ProductName:
			effectiveDelta := newEff.Delta.Sub(oldEff.Delta)
			if _, err := s.engine.ApplyDeltaByName(ctx, updated.GetOwnerID(), newEff.ProductName, effectiveDelta); err != nil {
				return err
			}

		default:
			// repointed to another product: undo on the old, redo on the new
			if _, err := s.engine.ApplyDeltaByName(ctx, updated.GetOwnerID(), oldEff.ProductName, oldEff.Delta.Neg()); err != nil {
				return err
			}
			if _, err := s.engine.ApplyDeltaByName(ctx, updated.GetOwnerID(), newEff.ProductName, newEff.Delta); err != nil {
				return err
			}
		}

		if err := s.repo.Update(ctx, updated); err != nil {
			return fmt.Errorf("update %s: %w", s.entityName, err)
		}
		return nil
	})
	if err != nil {
		return zero, err
	}

	_ = s.hooks.Run(ctx, domain.AfterUpdate, updated)
	s.audit(ctx, updated.GetID(), "update", map[string]any{"record": updated})

	return updated, nil
}

// Delete removes the record, applying the inverse of its original
// stock delta so stock returns to what it would have been had the
// record never existed.
func (s *Service[T]) Delete(ctx context.Context, ownerID, recordID int64) error {
	rec, err := s.repo.GetByID(ctx, ownerID, recordID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return apperror.NewNotFound(s.entityName, recordID)
		}
		return err
	}

	if err := s.hooks.Run(ctx, domain.BeforeDelete, rec); err != nil {
		return err
	}

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if eff := rec.StockEffect(); eff.Affects {
			_, err := s.engine.ApplyDeltaByName(ctx, ownerID, eff.ProductName, eff.Delta.Neg())
			if err != nil {
				// the referenced product may have been deleted since;
				// the record itself is still removable
				if apperror.IsValidation(err) {
					logger.Warn(ctx, "product missing while deleting record",
						"entity", s.entityName,
						"product", eff.ProductName,
					)
				} else {
					return err
				}
			}
		}

		if err := s.repo.Delete(ctx, ownerID, recordID); err != nil {
			return fmt.Errorf("delete %s: %w", s.entityName, err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	_ = s.hooks.Run(ctx, domain.AfterDelete, rec)
	s.audit(ctx, recordID, "delete", map[string]any{"record": rec})

	return nil
}

// List retrieves records with filtering.
func (s *Service[T]) List(ctx context.Context, ownerID int64, filter domain.ListFilter) (domain.ListResult[T], error) {
	filter.Normalize()
	return s.repo.List(ctx, ownerID, filter)
}
