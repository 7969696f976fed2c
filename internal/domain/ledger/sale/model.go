// Package sale provides the sale ledger record.
// A sale decreases the product's stock.
package sale

import (
	"context"
	"strings"
	"time"

	"agrostock/internal/core/apperror"
	"agrostock/internal/core/types"
	"agrostock/internal/domain/ledger"
)

// Sale represents a single goods-out record.
type Sale struct {
	ID      int64 `db:"id" json:"id"`
	OwnerID int64 `db:"owner_id" json:"ownerId"`

	ProductName string `db:"product_name" json:"productName"`

	// Quantity is strictly positive
	Quantity types.Quantity `db:"quantity" json:"quantity"`

	CustomerID *int64 `db:"customer_id" json:"customerId,omitempty"`

	SaleDate time.Time `db:"sale_date" json:"saleDate"`

	TotalSalePrice *types.Money `db:"total_sale_price" json:"totalSalePrice,omitempty"`

	Note *string `db:"note" json:"note,omitempty"`

	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// GetID implements ledger.Record.
func (s *Sale) GetID() int64 { return s.ID }

// GetOwnerID implements ledger.Record.
func (s *Sale) GetOwnerID() int64 { return s.OwnerID }

// SetID implements ledger.Record.
func (s *Sale) SetID(id int64) { s.ID = id }

// StockEffect implements ledger.Record: the existence of a sale
// removes its quantity from stock.
func (s *Sale) StockEffect() ledger.StockEffect {
	return ledger.StockEffect{
		Affects:     true,
		ProductName: s.ProductName,
		Delta:       s.Quantity.Neg(),
	}
}

// Validate implements the Validatable interface.
func (s *Sale) Validate(ctx context.Context) error {
	if strings.TrimSpace(s.ProductName) == "" {
		return apperror.NewValidation("product name is required").
			WithDetail("field", "productName")
	}

	if !s.Quantity.IsPositive() {
		return apperror.NewValidation("quantity must be positive").
			WithDetail("field", "quantity").
			WithDetail("value", s.Quantity.String())
	}

	if s.TotalSalePrice != nil && s.TotalSalePrice.IsNegative() {
		return apperror.NewValidation("total price cannot be negative").
			WithDetail("field", "totalSalePrice")
	}

	if s.OwnerID == 0 {
		return apperror.NewValidation("owner is required").
			WithDetail("field", "ownerId")
	}

	return nil
}
