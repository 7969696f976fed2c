package salereturn

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

// Service provides sale-return record operations.
type Service struct {
	*ledger.Service[*SaleReturn]
	customers PartyChecker
}

// NewService creates a sale-return service.
func NewService(repo ledger.Repository[*SaleReturn], engine *stock.Engine, txManager tx.Manager, customers PartyChecker) *Service {
	base := ledger.NewService(repo, engine, txManager, "return")

	svc := &Service{
		Service:   base,
		customers: customers,
	}

	base.Hooks().On(domain.BeforeCreate, svc.checkCustomer)
	base.Hooks().On(domain.BeforeUpdate, svc.checkCustomer)

	return svc
}

func (s *Service) checkCustomer(ctx context.Context, rec *SaleReturn) error {
	if rec.CustomerID == nil || *rec.CustomerID == 0 {
		return nil
	}
	ok, err := s.customers.Exists(ctx, rec.OwnerID, *rec.CustomerID)
	if err != nil {
		return err
	}
	if !ok {
		return apperror.NewValidation("customer does not exist").
			WithDetail("customerId", *rec.CustomerID)
	}
	return nil
}
