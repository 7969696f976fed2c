// Package salereturn provides the customer-return ledger record.
// Creating a return puts the goods back into stock; deleting it
// takes them out again.
package salereturn

import (
	"context"
	"strings"
	"time"

	"agrostock/internal/core/apperror"
	"agrostock/internal/core/types"
	"agrostock/internal/domain/ledger"
)

// SaleReturn represents goods returned by a customer.
type SaleReturn struct {
	ID      int64 `db:"id" json:"id"`
	OwnerID int64 `db:"owner_id" json:"ownerId"`

	ProductName string `db:"product_name" json:"productName"`

	// Quantity is strictly positive
	Quantity types.Quantity `db:"quantity" json:"quantity"`

	CustomerID *int64 `db:"customer_id" json:"customerId,omitempty"`

	ReturnDate time.Time `db:"return_date" json:"returnDate"`

	TotalRefund *types.Money `db:"total_refund" json:"totalRefund,omitempty"`

	Note *string `db:"note" json:"note,omitempty"`

	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// GetID implements ledger.Record.
func (r *SaleReturn) GetID() int64 { return r.ID }

// GetOwnerID implements ledger.Record.
func (r *SaleReturn) GetOwnerID() int64 { return r.OwnerID }

// SetID implements ledger.Record.
func (r *SaleReturn) SetID(id int64) { r.ID = id }

// StockEffect implements ledger.Record: the existence of a return
// adds its quantity back to stock.
func (r *SaleReturn) StockEffect() ledger.StockEffect {
	return ledger.StockEffect{
		Affects:     true,
		ProductName: r.ProductName,
		Delta:       r.Quantity,
	}
}

// Validate implements the Validatable interface.
func (r *SaleReturn) Validate(ctx context.Context) error {
	if strings.TrimSpace(r.ProductName) == "" {
		return apperror.NewValidation("product name is required").
			WithDetail("field", "productName")
	}

	if !r.Quantity.IsPositive() {
		return apperror.NewValidation("quantity must be positive").
			WithDetail("field", "quantity").
			WithDetail("value", r.Quantity.String())
	}

	if r.TotalRefund != nil && r.TotalRefund.IsNegative() {
		return apperror.NewValidation("refund cannot be negative").
			WithDetail("field", "totalRefund")
	}

	if r.OwnerID == 0 {
		return apperror.NewValidation("owner is required").
			WithDetail("field", "ownerId")
	}

	return nil
}
