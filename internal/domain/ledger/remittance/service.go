package remittance

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

// Service provides remittance record operations.
type Service struct {
	*ledger.Service[*Remittance]
	suppliers PartyChecker
	employees PartyChecker
}

// NewService creates a remittance service.
func NewService(repo ledger.Repository[*Remittance], engine *stock.Engine, txManager tx.Manager, suppliers, employees PartyChecker) *Service {
	base := ledger.NewService(repo, engine, txManager, "remittance")

	svc := &Service{
		Service:   base,
		suppliers: suppliers,
		employees: employees,
	}

	base.Hooks().On(domain.BeforeCreate, svc.checkParties)
	base.Hooks().On(domain.BeforeUpdate, svc.checkParties)

	return svc
}

func (s *Service) checkParties(ctx context.Context, rec *Remittance) error {
	if rec.SupplierID != nil && *rec.SupplierID != 0 {
		ok, err := s.suppliers.Exists(ctx, rec.OwnerID, *rec.SupplierID)
		if err != nil {
			return err
		}
		if !ok {
			return apperror.NewValidation("supplier does not exist").
				WithDetail("supplierId", *rec.SupplierID)
		}
	}

	if rec.EmployeeID != nil && *rec.EmployeeID != 0 {
		ok, err := s.employees.Exists(ctx, rec.OwnerID, *rec.EmployeeID)
		if err != nil {
			return err
		}
		if !ok {
			return apperror.NewValidation("employee does not exist").
				WithDetail("employeeId", *rec.EmployeeID)
		}
	}

	return nil
}
