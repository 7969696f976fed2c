// Package party provides the counterparty catalogs: suppliers,
// customers, and employees share one shape and differ only by kind.
package party

import (
	"context"
	"strings"
	"time"

	"agrostock/internal/core/apperror"
)

// Kind defines the counterparty role.
type Kind string

const (
	KindSupplier Kind = "supplier"
	KindCustomer Kind = "customer"
	KindEmployee Kind = "employee"
)

// Party represents a supplier, customer, or employee.
type Party struct {
	ID      int64 `db:"id" json:"id"`
	OwnerID int64 `db:"owner_id" json:"ownerId"`

	Kind Kind `db:"kind" json:"kind"`

	// Name is unique within the owner scope for each kind
	Name string `db:"name" json:"name"`

	Note *string `db:"note" json:"note,omitempty"`

	// Version increments on update (optimistic locking)
	Version int `db:"version" json:"version"`

	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// NewParty creates a party with required fields and version 1.
func NewParty(ownerID int64, kind Kind, name string) *Party {
	return &Party{
		OwnerID: ownerID,
		Kind:    kind,
		Name:    name,
		Version: 1,
	}
}

// Validate implements the Validatable interface.
func (p *Party) Validate(ctx context.Context) error {
	if strings.TrimSpace(p.Name) == "" {
		return apperror.NewValidation("name is required").
			WithDetail("field", "name")
	}

	if len(p.Name) > 200 {
		return apperror.NewValidation("name too long (max 200)").
			WithDetail("field", "name")
	}

	if !isValidKind(p.Kind) {
		return apperror.NewValidation("invalid party kind").
			WithDetail("field", "kind").
			WithDetail("value", string(p.Kind))
	}

	if p.OwnerID == 0 {
		return apperror.NewValidation("owner is required").
			WithDetail("field", "ownerId")
	}

	return nil
}

func isValidKind(k Kind) bool {
	switch k {
	case KindSupplier, KindCustomer, KindEmployee:
		return true
	}
	return false
}
