// Package purchase provides the purchase ledger record.
// A purchase increases the product's stock; a negative quantity
// represents a purchase-side return and decreases it.
package purchase

import (
	"context"
	"strings"
	"time"

	"agrostock/internal/core/apperror"
	"agrostock/internal/core/types"
	"agrostock/internal/domain/ledger"
)

// Purchase represents a single goods-in record.
type Purchase struct {
	ID      int64 `db:"id" json:"id"`
	OwnerID int64 `db:"owner_id" json:"ownerId"`

	ProductName string `db:"product_name" json:"productName"`

	// Quantity is any nonzero amount; negative means return-to-supplier
	Quantity types.Quantity `db:"quantity" json:"quantity"`

	SupplierID *int64 `db:"supplier_id" json:"supplierId,omitempty"`

	PurchaseDate time.Time `db:"purchase_date" json:"purchaseDate"`

	TotalPurchasePrice *types.Money `db:"total_purchase_price" json:"totalPurchasePrice,omitempty"`

	Note *string `db:"note" json:"note,omitempty"`

	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// GetID implements ledger.Record.
func (p *Purchase) GetID() int64 { return p.ID }

// GetOwnerID implements ledger.Record.
func (p *Purchase) GetOwnerID() int64 { return p.OwnerID }

// SetID implements ledger.Record.
func (p *Purchase) SetID(id int64) { p.ID = id }

// StockEffect implements ledger.Record: the existence of a purchase
// adds its quantity to stock.
func (p *Purchase) StockEffect() ledger.StockEffect {
	return ledger.StockEffect{
		Affects:     true,
		ProductName: p.ProductName,
		Delta:       p.Quantity,
	}
}

// Validate implements the Validatable interface.
func (p *Purchase) Validate(ctx context.Context) error {
	if strings.TrimSpace(p.ProductName) == "" {
		return apperror.NewValidation("product name is required").
			WithDetail("field", "productName")
	}

	if p.Quantity.IsZero() {
		return apperror.NewValidation("quantity must be nonzero").
			WithDetail("field", "quantity")
	}

	if p.TotalPurchasePrice != nil && p.TotalPurchasePrice.IsNegative() {
		return apperror.NewValidation("total price cannot be negative").
			WithDetail("field", "totalPurchasePrice")
	}

	if p.OwnerID == 0 {
		return apperror.NewValidation("owner is required").
			WithDetail("field", "ownerId")
	}

	return nil
}
