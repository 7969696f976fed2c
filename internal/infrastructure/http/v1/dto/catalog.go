package dto

import (
	"github.com/shopspring/decimal"

	"agrostock/internal/domain/catalogs/party"
	"agrostock/internal/domain/catalogs/product"
)

// --- Products ---

// CreateProductRequest creates a product. Stock defaults to zero.
type CreateProductRequest struct {
	Name        string          `json:"name" binding:"required"`
	Description *string         `json:"description"`
	Stock       decimal.Decimal `json:"stock"`
	Unit        *string         `json:"unit"`
	SupplierID  *int64          `json:"supplierId"`
}

// ToModel converts the request to a domain product.
func (r CreateProductRequest) ToModel(ownerID int64) *product.Product {
	p := product.NewProduct(ownerID, r.Name, r.Stock)
	p.Description = r.Description
	p.Unit = r.Unit
	p.SupplierID = r.SupplierID
	return p
}

// UpdateProductRequest rewrites product fields. Version is the one the
// client read; a stale version is rejected.
type UpdateProductRequest struct {
	Name        string          `json:"name" binding:"required"`
	Description *string         `json:"description"`
	Stock       decimal.Decimal `json:"stock"`
	Unit        *string         `json:"unit"`
	SupplierID  *int64          `json:"supplierId"`
	Version     int             `json:"version" binding:"required,min=1"`
}

// ToModel converts the request to a domain product.
func (r UpdateProductRequest) ToModel(ownerID, productID int64) *product.Product {
	return &product.Product{
		ID:          productID,
		OwnerID:     ownerID,
		Name:        r.Name,
		Description: r.Description,
		Stock:       r.Stock,
		Unit:        r.Unit,
		SupplierID:  r.SupplierID,
		Version:     r.Version,
	}
}

// AdjustStockRequest applies a signed stock delta with optimistic
// locking. Quantity may be negative.
type AdjustStockRequest struct {
	Quantity decimal.Decimal `json:"quantity" binding:"required"`
	Version  int             `json:"version" binding:"required,min=1"`
}

// --- Parties (suppliers, customers, employees) ---

// CreatePartyRequest creates a supplier, customer or employee.
type CreatePartyRequest struct {
	Name string  `json:"name" binding:"required"`
	Note *string `json:"note"`
}

// ToModel converts the request to a domain party.
func (r CreatePartyRequest) ToModel(ownerID int64, kind party.Kind) *party.Party {
	p := party.NewParty(ownerID, kind, r.Name)
	p.Note = r.Note
	return p
}

// UpdatePartyRequest rewrites party fields.
type UpdatePartyRequest struct {
	Name    string  `json:"name" binding:"required"`
	Note    *string `json:"note"`
	Version int     `json:"version" binding:"required,min=1"`
}

// ToModel converts the request to a domain party.
func (r UpdatePartyRequest) ToModel(ownerID, partyID int64, kind party.Kind) *party.Party {
	return &party.Party{
		ID:      partyID,
		OwnerID: ownerID,
		Kind:    kind,
		Name:    r.Name,
		Note:    r.Note,
		Version: r.Version,
	}
}
