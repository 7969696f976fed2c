// Package remittance provides the money-out ledger record.
// Remittance records never touch stock.
package remittance

import (
	"context"
	"time"

	"agrostock/internal/core/apperror"
	"agrostock/internal/core/types"
	"agrostock/internal/domain/ledger"
)

// Remittance represents a payment sent to a supplier.
type Remittance struct {
	ID      int64 `db:"id" json:"id"`
	OwnerID int64 `db:"owner_id" json:"ownerId"`

	RemittanceDate time.Time `db:"remittance_date" json:"remittanceDate"`

	SupplierID *int64 `db:"supplier_id" json:"supplierId,omitempty"`

	// Amount is strictly positive
	Amount types.Money `db:"amount" json:"amount"`

	EmployeeID *int64 `db:"employee_id" json:"employeeId,omitempty"`

	PaymentMethod *string `db:"payment_method" json:"paymentMethod,omitempty"`

	Note *string `db:"note" json:"note,omitempty"`

	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// GetID implements ledger.Record.
func (r *Remittance) GetID() int64 { return r.ID }

// GetOwnerID implements ledger.Record.
func (r *Remittance) GetOwnerID() int64 { return r.OwnerID }

// SetID implements ledger.Record.
func (r *Remittance) SetID(id int64) { r.ID = id }

// StockEffect implements ledger.Record: remittance does not affect stock.
func (r *Remittance) StockEffect() ledger.StockEffect {
	return ledger.StockEffect{Affects: false}
}

// Validate implements the Validatable interface.
func (r *Remittance) Validate(ctx context.Context) error {
	if !r.Amount.IsPositive() {
		return apperror.NewValidation("amount must be positive").
			WithDetail("field", "amount").
			WithDetail("value", r.Amount.String())
	}

	if r.OwnerID == 0 {
		return apperror.NewValidation("owner is required").
			WithDetail("field", "ownerId")
	}

	return nil
}
