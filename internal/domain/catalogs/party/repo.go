package party

import (
	"context"

	"agrostock/internal/domain"
)

// Repository defines the interface for Party persistence.
// One repository instance serves a single kind (supplier, customer,
// employee); the kind is fixed at construction.
type Repository interface {
	domain.CatalogRepository[*Party]

	// Exists reports whether a party with the ID exists in the owner scope
	Exists(ctx context.Context, ownerID, partyID int64) (bool, error)

	// ListAll returns a capped list of this kind's parties for the owner
	ListAll(ctx context.Context, ownerID int64) ([]*Party, error)
}
