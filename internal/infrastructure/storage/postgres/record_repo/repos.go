package record_repo

import (
	"agrostock/internal/domain/ledger/income"
	"agrostock/internal/domain/ledger/purchase"
	"agrostock/internal/domain/ledger/remittance"
	"agrostock/internal/domain/ledger/sale"
	"agrostock/internal/domain/ledger/salereturn"
	"agrostock/internal/infrastructure/storage/postgres"
)

// NewPurchaseRepo creates the purchases repository.
func NewPurchaseRepo(txm *postgres.TxManager) *BaseRecordRepo[*purchase.Purchase] {
	return NewBaseRecordRepo(
		txm,
		"purchases",
		postgres.ExtractDBColumns[purchase.Purchase](),
		"purchase_date",
		"supplier_id",
		[]string{"product_name", "note"},
		func() *purchase.Purchase { return &purchase.Purchase{} },
	)
}

// NewSaleRepo creates the sales repository.
func NewSaleRepo(txm *postgres.TxManager) *BaseRecordRepo[*sale.Sale] {
	return NewBaseRecordRepo(
		txm,
		"sales",
		postgres.ExtractDBColumns[sale.Sale](),
		"sale_date",
		"customer_id",
		[]string{"product_name", "note"},
		func() *sale.Sale { return &sale.Sale{} },
	)
}

// NewSaleReturnRepo creates the sale returns repository.
func NewSaleReturnRepo(txm *postgres.TxManager) *BaseRecordRepo[*salereturn.SaleReturn] {
	return NewBaseRecordRepo(
		txm,
		"sale_returns",
		postgres.ExtractDBColumns[salereturn.SaleReturn](),
		"return_date",
		"customer_id",
		[]string{"product_name", "note"},
		func() *salereturn.SaleReturn { return &salereturn.SaleReturn{} },
	)
}

// NewIncomeRepo creates the income repository.
func NewIncomeRepo(txm *postgres.TxManager) *BaseRecordRepo[*income.Income] {
	r := NewBaseRecordRepo(
		txm,
		"income",
		postgres.ExtractDBColumns[income.Income](),
		"income_date",
		"customer_id",
		[]string{"note", "payment_method"},
		func() *income.Income { return &income.Income{} },
	)
	r.employeeColumn = "employee_id"
	return r
}

// NewRemittanceRepo creates the remittances repository.
func NewRemittanceRepo(txm *postgres.TxManager) *BaseRecordRepo[*remittance.Remittance] {
	r := NewBaseRecordRepo(
		txm,
		"remittance",
		postgres.ExtractDBColumns[remittance.Remittance](),
		"remittance_date",
		"supplier_id",
		[]string{"note", "payment_method"},
		func() *remittance.Remittance { return &remittance.Remittance{} },
	)
	r.employeeColumn = "employee_id"
	return r
}
