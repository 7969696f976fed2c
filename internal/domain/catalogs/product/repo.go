package product

import (
	"context"

	"agrostock/internal/core/types"
	"agrostock/internal/domain"
)

// Repository defines the interface for Product persistence.
type Repository interface {
	domain.CatalogRepository[*Product]

	// CompareAndSwapStock sets a new stock value and bumps the version,
	// but only if the stored version still equals expectedVersion.
	// Returns apperror with CodeVersionConflict when the row was
	// modified by a concurrent writer.
	CompareAndSwapStock(ctx context.Context, ownerID, productID int64, newStock types.Quantity, expectedVersion int) error

	// ListBySupplier retrieves products filtered by supplier reference.
	// The sentinel supplierID 0 selects products with no supplier assigned.
	ListBySupplier(ctx context.Context, ownerID int64, supplierID *int64, filter domain.ListFilter) (domain.ListResult[*Product], error)

	// ListAll returns a capped list of products for the owner
	// for client-side pickers
	ListAll(ctx context.Context, ownerID int64) ([]*Product, error)
}
