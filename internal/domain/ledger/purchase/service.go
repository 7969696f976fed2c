package purchase

import (
	"context"

	"agrostock/internal/core/apperror"
	"agrostock/internal/core/tx"
	"agrostock/internal/domain"
	"agrostock/internal/domain/ledger"
	"agrostock/internal/domain/stock"
)

// PartyChecker verifies counterparty existence within the owner scope.
type PartyChecker interface {
	Exists(ctx context.Context, ownerID, partyID int64) (bool, error)
}

// Service provides purchase record operations.
type Service struct {
	*ledger.Service[*Purchase]
	suppliers PartyChecker
}

// NewService creates a purchase service.
func NewService(repo ledger.Repository[*Purchase], engine *stock.Engine, txManager tx.Manager, suppliers PartyChecker) *Service {
	base := ledger.NewService(repo, engine, txManager, "purchase")

	svc := &Service{
		Service:   base,
		suppliers: suppliers,
	}

	base.Hooks().On(domain.BeforeCreate, svc.checkSupplier)
	base.Hooks().On(domain.BeforeUpdate, svc.checkSupplier)

	return svc
}

func (s *Service) checkSupplier(ctx context.Context, p *Purchase) error {
	if p.SupplierID == nil || *p.SupplierID == 0 {
		return nil
	}
	ok, err := s.suppliers.Exists(ctx, p.OwnerID, *p.SupplierID)
	if err != nil {
		return err
	}
	if !ok {
		return apperror.NewValidation("supplier does not exist").
			WithDetail("supplierId", *p.SupplierID)
	}
	return nil
}
