// Package ledger provides the shared machinery for ledger records:
// purchases, sales, sale returns, income, and remittances. Every
// stock-affecting mutation is paired with exactly one compensating
// stock delta applied in the same transaction.
package ledger

import (
	"context"

	"agrostock/internal/core/types"
	"agrostock/internal/domain"
)

// StockEffect describes the stock delta a record contributes while it
// exists. Records that do not touch stock (income, remittances)
// report Affects=false.
type StockEffect struct {
	Affects bool

	// ProductName references the product by name within the owner scope
	ProductName string

	// Delta is the signed stock change caused by the record's
	// existence: negative for sales, positive for purchases and
	// sale returns (a negative purchase quantity represents a
	// purchase-side return)
	Delta types.Quantity
}

// Record is implemented by all ledger entities.
type Record interface {
	domain.Validatable

	// GetID returns the record's primary key (0 before creation)
	GetID() int64

	// GetOwnerID returns the owning account
	GetOwnerID() int64

	// SetID stamps the generated primary key after insert
	SetID(id int64)

	// StockEffect returns the stock delta the record holds while it
	// exists; deletion applies the inverse
	StockEffect() StockEffect
}

// Repository defines persistence for one ledger record type.
type Repository[T Record] interface {
	// Create inserts the record and returns its generated ID
	Create(ctx context.Context, rec T) (int64, error)

	// GetByID retrieves the record within the owner scope
	GetByID(ctx context.Context, ownerID, recordID int64) (T, error)

	// Update overwrites the record's mutable fields
	Update(ctx context.Context, rec T) error

	// Delete removes the record
	Delete(ctx context.Context, ownerID, recordID int64) error

	// List retrieves records with filtering and pagination
	List(ctx context.Context, ownerID int64, filter domain.ListFilter) (domain.ListResult[T], error)
}
