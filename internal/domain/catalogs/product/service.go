package product

import (
	"context"

	"agrostock/internal/core/apperror"
	"agrostock/internal/core/tx"
	"agrostock/internal/domain"
)

// PartyChecker verifies that a referenced counterparty exists within
// the owner scope.
type PartyChecker interface {
	Exists(ctx context.Context, ownerID, partyID int64) (bool, error)
}

// Service provides business logic for the Product catalog.
// Uses composition with domain.CatalogService for common CRUD operations.
type Service struct {
	*domain.CatalogService[*Product]
	repo      Repository
	suppliers PartyChecker
}

// NewService creates a new Product service.
func NewService(repo Repository, txManager tx.Manager, suppliers PartyChecker) *Service {
	base := domain.NewCatalogService[*Product](repo, txManager, "product")

	svc := &Service{
		CatalogService: base,
		repo:           repo,
		suppliers:      suppliers,
	}

	base.Hooks().On(domain.BeforeCreate, svc.prepareForWrite)
	base.Hooks().On(domain.BeforeUpdate, svc.prepareForWrite)

	return svc
}

// prepareForWrite enforces name uniqueness and supplier existence.
func (s *Service) prepareForWrite(ctx context.Context, p *Product) error {
	exists, err := s.repo.ExistsByName(ctx, p.OwnerID, p.Name, p.ID)
	if err != nil {
		return err
	}
	if exists {
		return apperror.NewDuplicate("product", "name", p.Name)
	}

	if p.HasSupplier() {
		ok, err := s.suppliers.Exists(ctx, p.OwnerID, *p.SupplierID)
		if err != nil {
			return err
		}
		if !ok {
			return apperror.NewValidation("supplier does not exist").
				WithDetail("supplierId", *p.SupplierID)
		}
	}

	return nil
}

// ListBySupplier retrieves products with an optional supplier filter.
func (s *Service) ListBySupplier(ctx context.Context, ownerID int64, supplierID *int64, filter domain.ListFilter) (domain.ListResult[*Product], error) {
	filter.Normalize()
	return s.repo.ListBySupplier(ctx, ownerID, supplierID, filter)
}

// ListAll returns a capped list of products for the owner.
func (s *Service) ListAll(ctx context.Context, ownerID int64) ([]*Product, error) {
	return s.repo.ListAll(ctx, ownerID)
}
