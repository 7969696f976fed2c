package party

import (
	"context"

	"agrostock/internal/core/apperror"
	"agrostock/internal/core/tx"
	"agrostock/internal/domain"
)

// Service provides business logic for one party catalog.
type Service struct {
	*domain.CatalogService[*Party]
	repo Repository
	kind Kind
}

// NewService creates a party service bound to one kind.
func NewService(repo Repository, txManager tx.Manager, kind Kind) *Service {
	base := domain.NewCatalogService[*Party](repo, txManager, string(kind))

	svc := &Service{
		CatalogService: base,
		repo:           repo,
		kind:           kind,
	}

	base.Hooks().On(domain.BeforeCreate, svc.prepareForWrite)
	base.Hooks().On(domain.BeforeUpdate, svc.prepareForWrite)

	return svc
}

// Kind returns the party kind this service manages.
func (s *Service) Kind() Kind {
	return s.kind
}

// prepareForWrite stamps the kind and enforces name uniqueness.
func (s *Service) prepareForWrite(ctx context.Context, p *Party) error {
	if p.Kind == "" {
		p.Kind = s.kind
	}

	exists, err := s.repo.ExistsByName(ctx, p.OwnerID, p.Name, p.ID)
	if err != nil {
		return err
	}
	if exists {
		return apperror.NewDuplicate(string(s.kind), "name", p.Name)
	}

	return nil
}

// Exists reports whether the party exists in the owner scope.
func (s *Service) Exists(ctx context.Context, ownerID, partyID int64) (bool, error) {
	return s.repo.Exists(ctx, ownerID, partyID)
}

// ListAll returns a capped list of this kind's parties for the owner.
func (s *Service) ListAll(ctx context.Context, ownerID int64) ([]*Party, error) {
	return s.repo.ListAll(ctx, ownerID)
}
