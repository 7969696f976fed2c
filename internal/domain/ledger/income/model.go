// Package income provides the money-in ledger record.
// Income records never touch stock.
package income

import (
	"context"
	"time"

	"agrostock/internal/core/apperror"
	"agrostock/internal/core/types"
	"agrostock/internal/domain/ledger"
)

// Income represents a payment received from a customer.
type Income struct {
	ID      int64 `db:"id" json:"id"`
	OwnerID int64 `db:"owner_id" json:"ownerId"`

	IncomeDate time.Time `db:"income_date" json:"incomeDate"`

	CustomerID *int64 `db:"customer_id" json:"customerId,omitempty"`

	// Amount is strictly positive
	Amount types.Money `db:"amount" json:"amount"`

	Discount *types.Money `db:"discount" json:"discount,omitempty"`

	EmployeeID *int64 `db:"employee_id" json:"employeeId,omitempty"`

	PaymentMethod *string `db:"payment_method" json:"paymentMethod,omitempty"`

	Note *string `db:"note" json:"note,omitempty"`

	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// GetID implements ledger.Record.
func (i *Income) GetID() int64 { return i.ID }

// GetOwnerID implements ledger.Record.
func (i *Income) GetOwnerID() int64 { return i.OwnerID }

// SetID implements ledger.Record.
func (i *Income) SetID(id int64) { i.ID = id }

// StockEffect implements ledger.Record: income does not affect stock.
func (i *Income) StockEffect() ledger.StockEffect {
	return ledger.StockEffect{Affects: false}
}

// Validate implements the Validatable interface.
func (i *Income) Validate(ctx context.Context) error {
	if !i.Amount.IsPositive() {
		return apperror.NewValidation("amount must be positive").
			WithDetail("field", "amount").
			WithDetail("value", i.Amount.String())
	}

	if i.Discount != nil && i.Discount.IsNegative() {
		return apperror.NewValidation("discount cannot be negative").
			WithDetail("field", "discount")
	}

	if i.OwnerID == 0 {
		return apperror.NewValidation("owner is required").
			WithDetail("field", "ownerId")
	}

	return nil
}
