package income

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

// Service provides income record operations.
type Service struct {
	*ledger.Service[*Income]
	customers PartyChecker
	employees PartyChecker
}

// NewService creates an income service.
func NewService(repo ledger.Repository[*Income], engine *stock.Engine, txManager tx.Manager, customers, employees PartyChecker) *Service {
	base := ledger.NewService(repo, engine, txManager, "income")

	svc := &Service{
		Service:   base,
		customers: customers,
		employees: employees,
	}

	base.Hooks().On(domain.BeforeCreate, svc.checkParties)
	base.Hooks().On(domain.BeforeUpdate, svc.checkParties)

	return svc
}

func (s *Service) checkParties(ctx context.Context, rec *Income) error {
	if rec.CustomerID != nil && *rec.CustomerID != 0 {
		ok, err := s.customers.Exists(ctx, rec.OwnerID, *rec.CustomerID)
		if err != nil {
			return err
		}
		if !ok {
			return apperror.NewValidation("customer does not exist").
				WithDetail("customerId", *rec.CustomerID)
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
