package ledger_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agrostock/internal/core/apperror"
	"agrostock/internal/core/types"
	"agrostock/internal/domain"
	"agrostock/internal/domain/catalogs/product"
	"agrostock/internal/domain/ledger"
	"agrostock/internal/domain/ledger/income"
	"agrostock/internal/domain/ledger/sale"
	"agrostock/internal/domain/stock"
)

// passthroughTx satisfies tx.Manager for in-memory tests. Rollback
// semantics are exercised against a real database; here the engine's
// error propagation is what is under test.
type passthroughTx struct{}

func (passthroughTx) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (passthroughTx) ReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type allowAllParties struct{}

func (allowAllParties) Exists(ctx context.Context, ownerID, partyID int64) (bool, error) {
	return true, nil
}

// memProducts is a minimal product.Repository with CAS stock updates.
type memProducts struct {
	mu       sync.Mutex
	nextID   int64
	products map[int64]*product.Product
}

func newMemProducts() *memProducts {
	return &memProducts{nextID: 1, products: make(map[int64]*product.Product)}
}

func (r *memProducts) add(p *product.Product) *product.Product {
	r.mu.Lock()
	defer r.mu.Unlock()
	p.ID = r.nextID
	r.nextID++
	cp := *p
	r.products[p.ID] = &cp
	return p
}

func (r *memProducts) get(id int64) *product.Product {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *r.products[id]
	return &cp
}

func (r *memProducts) Create(ctx context.Context, p *product.Product) (int64, error) {
	return r.add(p).ID, nil
}

func (r *memProducts) GetByID(ctx context.Context, ownerID, id int64) (*product.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok || p.OwnerID != ownerID {
		return nil, apperror.NewNotFound("product", id)
	}
	cp := *p
	return &cp, nil
}

func (r *memProducts) GetByName(ctx context.Context, ownerID int64, name string) (*product.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.products {
		if p.OwnerID == ownerID && p.Name == name {
			cp := *p
			return &cp, nil
		}
	}
	return nil, apperror.NewNotFound("product", name)
}

func (r *memProducts) Update(ctx context.Context, p *product.Product) error { return nil }

func (r *memProducts) Delete(ctx context.Context, ownerID, id int64) error { return nil }

func (r *memProducts) List(ctx context.Context, ownerID int64, f domain.ListFilter) (domain.ListResult[*product.Product], error) {
	return domain.ListResult[*product.Product]{}, nil
}

func (r *memProducts) ExistsByName(ctx context.Context, ownerID int64, name string, excludeID int64) (bool, error) {
	return false, nil
}

func (r *memProducts) ListBySupplier(ctx context.Context, ownerID int64, supplierID *int64, f domain.ListFilter) (domain.ListResult[*product.Product], error) {
	return domain.ListResult[*product.Product]{}, nil
}

func (r *memProducts) ListAll(ctx context.Context, ownerID int64) ([]*product.Product, error) {
	return nil, nil
}

func (r *memProducts) CompareAndSwapStock(ctx context.Context, ownerID, id int64, newStock types.Quantity, expectedVersion int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok || p.OwnerID != ownerID {
		return apperror.NewNotFound("product", id)
	}
	if p.Version != expectedVersion {
		return apperror.NewVersionConflict("product", id)
	}
	p.Stock = newStock
	p.Version++
	return nil
}

// memRecords is an in-memory ledger.Repository.
type memRecords[T ledger.Record] struct {
	mu      sync.Mutex
	nextID  int64
	records map[int64]T
}

func newMemRecords[T ledger.Record]() *memRecords[T] {
	return &memRecords[T]{nextID: 1, records: make(map[int64]T)}
}

func (r *memRecords[T]) Create(ctx context.Context, rec T) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := r.nextID
	r.nextID++
	rec.SetID(id)
	r.records[id] = rec
	return id, nil
}

func (r *memRecords[T]) GetByID(ctx context.Context, ownerID, id int64) (T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.records[id]
	if !ok || rec.GetOwnerID() != ownerID {
		var zero T
		return zero, apperror.NewNotFound("record", id)
	}
	return rec, nil
}

func (r *memRecords[T]) Update(ctx context.Context, rec T) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records[rec.GetID()] = rec
	return nil
}

func (r *memRecords[T]) Delete(ctx context.Context, ownerID, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.records, id)
	return nil
}

func (r *memRecords[T]) List(ctx context.Context, ownerID int64, f domain.ListFilter) (domain.ListResult[T], error) {
	return domain.ListResult[T]{}, nil
}

func (r *memRecords[T]) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.records)
}

func qty(s string) types.Quantity {
	return decimal.RequireFromString(s)
}

func newSaleService(products *memProducts) (*sale.Service, *memRecords[*sale.Sale]) {
	records := newMemRecords[*sale.Sale]()
	engine := stock.NewEngine(products)
	svc := sale.NewService(records, engine, passthroughTx{}, allowAllParties{})
	return svc, records
}

func newSale(owner int64, name, quantity string) *sale.Sale {
	return &sale.Sale{
		OwnerID:     owner,
		ProductName: name,
		Quantity:    qty(quantity),
		SaleDate:    time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
	}
}

func TestCreateSale_AppliesStockDelta(t *testing.T) {
	products := newMemProducts()
	p := products.add(product.NewProduct(1, "seed corn", qty("50")))
	svc, records := newSaleService(products)

	created, err := svc.Create(context.Background(), newSale(1, "seed corn", "20"))
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Equal(t, 1, records.count())

	cur := products.get(p.ID)
	assert.True(t, cur.Stock.Equal(qty("30")))
	assert.Equal(t, 2, cur.Version)
}

func TestCreateSale_InsufficientStockPersistsNothing(t *testing.T) {
	products := newMemProducts()
	p := products.add(product.NewProduct(1, "fertilizer", qty("5")))
	svc, records := newSaleService(products)

	_, err := svc.Create(context.Background(), newSale(1, "fertilizer", "10"))
	require.Error(t, err)
	assert.True(t, apperror.IsInsufficientStock(err))
	assert.Equal(t, 0, records.count())

	cur := products.get(p.ID)
	assert.True(t, cur.Stock.Equal(qty("5")))
	assert.Equal(t, 1, cur.Version)
}

func TestCreateSale_UnknownProduct(t *testing.T) {
	products := newMemProducts()
	svc, records := newSaleService(products)

	_, err := svc.Create(context.Background(), newSale(1, "no such product", "1"))
	require.Error(t, err)
	assert.True(t, apperror.IsValidation(err))
	assert.Equal(t, 0, records.count())
}

func TestCreateSale_RejectsNonPositiveQuantity(t *testing.T) {
	products := newMemProducts()
	products.add(product.NewProduct(1, "seed corn", qty("50")))
	svc, _ := newSaleService(products)

	_, err := svc.Create(context.Background(), newSale(1, "seed corn", "0"))
	require.Error(t, err)
	assert.True(t, apperror.IsValidation(err))

	_, err = svc.Create(context.Background(), newSale(1, "seed corn", "-2"))
	require.Error(t, err)
	assert.True(t, apperror.IsValidation(err))
}

func TestDeleteSale_RestoresStock(t *testing.T) {
	products := newMemProducts()
	p := products.add(product.NewProduct(1, "seed corn", qty("50")))
	svc, records := newSaleService(products)
	ctx := context.Background()

	created, err := svc.Create(ctx, newSale(1, "seed corn", "20"))
	require.NoError(t, err)

	// delete after create leaves stock exactly where it started
	require.NoError(t, svc.Delete(ctx, 1, created.ID))
	assert.Equal(t, 0, records.count())

	cur := products.get(p.ID)
	assert.True(t, cur.Stock.Equal(qty("50")))
	assert.Equal(t, 3, cur.Version)
}

func TestUpdateSale_SameQuantityBumpsVersionOnce(t *testing.T) {
	products := newMemProducts()
	p := products.add(product.NewProduct(1, "seed corn", qty("50")))
	svc, _ := newSaleService(products)
	ctx := context.Background()

	created, err := svc.Create(ctx, newSale(1, "seed corn", "10"))
	require.NoError(t, err)
	require.Equal(t, 2, products.get(p.ID).Version)

	upd := newSale(1, "seed corn", "10")
	upd.ID = created.ID
	_, err = svc.Update(ctx, upd)
	require.NoError(t, err)

	cur := products.get(p.ID)
	assert.True(t, cur.Stock.Equal(qty("40")), "zero effective delta leaves stock unchanged")
	assert.Equal(t, 3, cur.Version, "the mutation still increments the version once")
}

func TestUpdateSale_QuantityChangeAppliesOneDelta(t *testing.T) {
	products := newMemProducts()
	p := products.add(product.NewProduct(1, "seed corn", qty("50")))
	svc, _ := newSaleService(products)
	ctx := context.Background()

	created, err := svc.Create(ctx, newSale(1, "seed corn", "10"))
	require.NoError(t, err)

	// raising the sale from 10 to 15 removes 5 more
	upd := newSale(1, "seed corn", "15")
	upd.ID = created.ID
	_, err = svc.Update(ctx, upd)
	require.NoError(t, err)
	assert.True(t, products.get(p.ID).Stock.Equal(qty("35")))

	// lowering it from 15 to 5 puts 10 back
	upd2 := newSale(1, "seed corn", "5")
	upd2.ID = created.ID
	_, err = svc.Update(ctx, upd2)
	require.NoError(t, err)
	assert.True(t, products.get(p.ID).Stock.Equal(qty("45")))
}

func TestUpdateSale_InsufficientStockOnIncrease(t *testing.T) {
	products := newMemProducts()
	p := products.add(product.NewProduct(1, "fertilizer", qty("12")))
	svc, _ := newSaleService(products)
	ctx := context.Background()

	created, err := svc.Create(ctx, newSale(1, "fertilizer", "10"))
	require.NoError(t, err)
	require.True(t, products.get(p.ID).Stock.Equal(qty("2")))

	upd := newSale(1, "fertilizer", "20")
	upd.ID = created.ID
	_, err = svc.Update(ctx, upd)
	require.Error(t, err)
	assert.True(t, apperror.IsInsufficientStock(err))
}

func TestUpdateSale_RepointToAnotherProduct(t *testing.T) {
	products := newMemProducts()
	a := products.add(product.NewProduct(1, "seed corn", qty("50")))
	b := products.add(product.NewProduct(1, "fertilizer", qty("30")))
	svc, _ := newSaleService(products)
	ctx := context.Background()

	created, err := svc.Create(ctx, newSale(1, "seed corn", "10"))
	require.NoError(t, err)
	require.True(t, products.get(a.ID).Stock.Equal(qty("40")))

	upd := newSale(1, "fertilizer", "10")
	upd.ID = created.ID
	_, err = svc.Update(ctx, upd)
	require.NoError(t, err)

	assert.True(t, products.get(a.ID).Stock.Equal(qty("50")), "old product restored in full")
	assert.True(t, products.get(b.ID).Stock.Equal(qty("20")), "new product absorbs the full delta")
}

func TestIncome_DoesNotTouchStock(t *testing.T) {
	products := newMemProducts()
	p := products.add(product.NewProduct(1, "seed corn", qty("50")))

	records := newMemRecords[*income.Income]()
	engine := stock.NewEngine(products)
	svc := income.NewService(records, engine, passthroughTx{}, allowAllParties{}, allowAllParties{})

	rec := &income.Income{
		OwnerID:    1,
		IncomeDate: time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		Amount:     qty("199.50"),
	}
	created, err := svc.Create(context.Background(), rec)
	require.NoError(t, err)
	assert.NotZero(t, created.ID)

	cur := products.get(p.ID)
	assert.True(t, cur.Stock.Equal(qty("50")))
	assert.Equal(t, 1, cur.Version)
}

func TestIncome_RejectsNonPositiveAmount(t *testing.T) {
	records := newMemRecords[*income.Income]()
	engine := stock.NewEngine(newMemProducts())
	svc := income.NewService(records, engine, passthroughTx{}, allowAllParties{}, allowAllParties{})

	rec := &income.Income{OwnerID: 1, Amount: decimal.Zero}
	_, err := svc.Create(context.Background(), rec)
	require.Error(t, err)
	assert.True(t, apperror.IsValidation(err))
}
