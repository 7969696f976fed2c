package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"agrostock/internal/domain/ledger/income"
	"agrostock/internal/domain/ledger/purchase"
	"agrostock/internal/domain/ledger/remittance"
	"agrostock/internal/domain/ledger/sale"
	"agrostock/internal/domain/ledger/salereturn"
)

// --- Purchases ---

// PurchaseRequest creates or updates a purchase record. Negative
// quantity records a return to the supplier.
type PurchaseRequest struct {
	ProductName        string           `json:"productName" binding:"required"`
	Quantity           decimal.Decimal  `json:"quantity" binding:"required"`
	SupplierID         *int64           `json:"supplierId"`
	PurchaseDate       time.Time        `json:"purchaseDate" binding:"required"`
	TotalPurchasePrice *decimal.Decimal `json:"totalPurchasePrice"`
	Note               *string          `json:"note"`
}

// ToModel converts the request to a domain purchase.
func (r PurchaseRequest) ToModel(ownerID, recordID int64) *purchase.Purchase {
	return &purchase.Purchase{
		ID:                 recordID,
		OwnerID:            ownerID,
		ProductName:        r.ProductName,
		Quantity:           r.Quantity,
		SupplierID:         r.SupplierID,
		PurchaseDate:       r.PurchaseDate,
		TotalPurchasePrice: r.TotalPurchasePrice,
		Note:               r.Note,
	}
}

// --- Sales ---

// SaleRequest creates or updates a sale record.
type SaleRequest struct {
	ProductName    string           `json:"productName" binding:"required"`
	Quantity       decimal.Decimal  `json:"quantity" binding:"required"`
	CustomerID     *int64           `json:"customerId"`
	SaleDate       time.Time        `json:"saleDate" binding:"required"`
	TotalSalePrice *decimal.Decimal `json:"totalSalePrice"`
	Note           *string          `json:"note"`
}

// ToModel converts the request to a domain sale.
func (r SaleRequest) ToModel(ownerID, recordID int64) *sale.Sale {
	return &sale.Sale{
		ID:             recordID,
		OwnerID:        ownerID,
		ProductName:    r.ProductName,
		Quantity:       r.Quantity,
		CustomerID:     r.CustomerID,
		SaleDate:       r.SaleDate,
		TotalSalePrice: r.TotalSalePrice,
		Note:           r.Note,
	}
}

// --- Sale returns ---

// SaleReturnRequest creates or updates a sale return record.
type SaleReturnRequest struct {
	ProductName string           `json:"productName" binding:"required"`
	Quantity    decimal.Decimal  `json:"quantity" binding:"required"`
	CustomerID  *int64           `json:"customerId"`
	ReturnDate  time.Time        `json:"returnDate" binding:"required"`
	TotalRefund *decimal.Decimal `json:"totalRefund"`
	Note        *string          `json:"note"`
}

// ToModel converts the request to a domain sale return.
func (r SaleReturnRequest) ToModel(ownerID, recordID int64) *salereturn.SaleReturn {
	return &salereturn.SaleReturn{
		ID:          recordID,
		OwnerID:     ownerID,
		ProductName: r.ProductName,
		Quantity:    r.Quantity,
		CustomerID:  r.CustomerID,
		ReturnDate:  r.ReturnDate,
		TotalRefund: r.TotalRefund,
		Note:        r.Note,
	}
}

// --- Income ---

// IncomeRequest creates or updates an income record.
type IncomeRequest struct {
	IncomeDate    time.Time        `json:"incomeDate" binding:"required"`
	CustomerID    *int64           `json:"customerId"`
	Amount        decimal.Decimal  `json:"amount" binding:"required"`
	Discount      *decimal.Decimal `json:"discount"`
	EmployeeID    *int64           `json:"employeeId"`
	PaymentMethod *string          `json:"paymentMethod"`
	Note          *string          `json:"note"`
}

// ToModel converts the request to a domain income record.
func (r IncomeRequest) ToModel(ownerID, recordID int64) *income.Income {
	return &income.Income{
		ID:            recordID,
		OwnerID:       ownerID,
		IncomeDate:    r.IncomeDate,
		CustomerID:    r.CustomerID,
		Amount:        r.Amount,
		Discount:      r.Discount,
		EmployeeID:    r.EmployeeID,
		PaymentMethod: r.PaymentMethod,
		Note:          r.Note,
	}
}

// --- Remittances ---

// RemittanceRequest creates or updates a remittance record.
type RemittanceRequest struct {
	RemittanceDate time.Time       `json:"remittanceDate" binding:"required"`
	SupplierID     *int64          `json:"supplierId"`
	Amount         decimal.Decimal `json:"amount" binding:"required"`
	EmployeeID     *int64          `json:"employeeId"`
	PaymentMethod  *string         `json:"paymentMethod"`
	Note           *string         `json:"note"`
}

// ToModel converts the request to a domain remittance record.
func (r RemittanceRequest) ToModel(ownerID, recordID int64) *remittance.Remittance {
	return &remittance.Remittance{
		ID:             recordID,
		OwnerID:        ownerID,
		RemittanceDate: r.RemittanceDate,
		SupplierID:     r.SupplierID,
		Amount:         r.Amount,
		EmployeeID:     r.EmployeeID,
		PaymentMethod:  r.PaymentMethod,
		Note:           r.Note,
	}
}

// --- Presence ---

// HeartbeatRequest refreshes the caller's online status with an
// optional activity label.
type HeartbeatRequest struct {
	Action *string `json:"action"`
}

// ActionRequest sets the caller's activity label.
type ActionRequest struct {
	Action string `json:"action" binding:"required"`
}
