// Package product provides the Product catalog.
// Products carry the stock balance and the optimistic-lock version
// that guards every stock-affecting mutation.
package product

import (
	"context"
	"strings"
	"time"

	"agrostock/internal/core/apperror"
	"agrostock/internal/core/types"
)

// Product represents a stocked item owned by one account.
type Product struct {
	ID      int64 `db:"id" json:"id"`
	OwnerID int64 `db:"owner_id" json:"ownerId"`

	// Name is unique within the owner's account and is the key
	// ledger records use to reference the product
	Name string `db:"name" json:"name"`

	Description *string `db:"description" json:"description,omitempty"`

	// Stock is the current on-hand quantity, never negative
	Stock types.Quantity `db:"stock" json:"stock"`

	Unit *string `db:"unit" json:"unit,omitempty"`

	// SupplierID is an optional reference, cleared when the supplier
	// is deleted
	SupplierID *int64 `db:"supplier_id" json:"supplierId,omitempty"`

	// Version increments on every stock-affecting mutation.
	// Writers must present the version they read.
	Version int `db:"version" json:"version"`

	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// NewProduct creates a product with required fields and version 1.
func NewProduct(ownerID int64, name string, stock types.Quantity) *Product {
	return &Product{
		OwnerID: ownerID,
		Name:    name,
		Stock:   stock,
		Version: 1,
	}
}

// Validate implements the Validatable interface.
func (p *Product) Validate(ctx context.Context) error {
	if strings.TrimSpace(p.Name) == "" {
		return apperror.NewValidation("product name is required").
			WithDetail("field", "name")
	}

	if len(p.Name) > 200 {
		return apperror.NewValidation("product name too long (max 200)").
			WithDetail("field", "name")
	}

	if p.Stock.IsNegative() {
		return apperror.NewValidation("stock cannot be negative").
			WithDetail("field", "stock").
			WithDetail("value", p.Stock.String())
	}

	if p.OwnerID == 0 {
		return apperror.NewValidation("owner is required").
			WithDetail("field", "ownerId")
	}

	return nil
}

// HasSupplier returns true if a supplier is assigned.
func (p *Product) HasSupplier() bool {
	return p.SupplierID != nil && *p.SupplierID != 0
}
