package stock

import (
	"context"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agrostock/internal/core/apperror"
	"agrostock/internal/core/types"
	"agrostock/internal/domain"
	"agrostock/internal/domain/catalogs/product"
)

// memProductRepo implements product.Repository with CAS semantics
// equivalent to the SQL "UPDATE ... WHERE version = $n" path.
type memProductRepo struct {
	mu       sync.Mutex
	nextID   int64
	products map[int64]*product.Product
}

func newMemProductRepo() *memProductRepo {
	return &memProductRepo{nextID: 1, products: make(map[int64]*product.Product)}
}

func (r *memProductRepo) add(p *product.Product) *product.Product {
	r.mu.Lock()
	defer r.mu.Unlock()
	p.ID = r.nextID
	r.nextID++
	cp := *p
	r.products[p.ID] = &cp
	return p
}

func (r *memProductRepo) Create(ctx context.Context, p *product.Product) (int64, error) {
	return r.add(p).ID, nil
}

func (r *memProductRepo) GetByID(ctx context.Context, ownerID, id int64) (*product.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok || p.OwnerID != ownerID {
		return nil, apperror.NewNotFound("product", id)
	}
	cp := *p
	return &cp, nil
}

func (r *memProductRepo) GetByName(ctx context.Context, ownerID int64, name string) (*product.Product, error) {
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

func (r *memProductRepo) Update(ctx context.Context, p *product.Product) error { return nil }

func (r *memProductRepo) Delete(ctx context.Context, ownerID, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.products, id)
	return nil
}

func (r *memProductRepo) List(ctx context.Context, ownerID int64, f domain.ListFilter) (domain.ListResult[*product.Product], error) {
	return domain.ListResult[*product.Product]{}, nil
}

func (r *memProductRepo) ExistsByName(ctx context.Context, ownerID int64, name string, excludeID int64) (bool, error) {
	return false, nil
}

func (r *memProductRepo) ListBySupplier(ctx context.Context, ownerID int64, supplierID *int64, f domain.ListFilter) (domain.ListResult[*product.Product], error) {
	return domain.ListResult[*product.Product]{}, nil
}

func (r *memProductRepo) ListAll(ctx context.Context, ownerID int64) ([]*product.Product, error) {
	return nil, nil
}

// CompareAndSwapStock mirrors the atomic version-guarded UPDATE.
func (r *memProductRepo) CompareAndSwapStock(ctx context.Context, ownerID, id int64, newStock types.Quantity, expectedVersion int) error {
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

func qty(s string) types.Quantity {
	return decimal.RequireFromString(s)
}

func TestApplyDelta_SaleReducesStock(t *testing.T) {
	repo := newMemProductRepo()
	engine := NewEngine(repo)
	ctx := context.Background()

	p := repo.add(product.NewProduct(1, "seed corn", qty("50")))

	got, err := engine.ApplyDelta(ctx, 1, p.ID, qty("-20"), 1)
	require.NoError(t, err)
	assert.True(t, got.Stock.Equal(qty("30")))
	assert.Equal(t, 2, got.Version)
}

func TestApplyDelta_StaleVersionConflicts(t *testing.T) {
	repo := newMemProductRepo()
	engine := NewEngine(repo)
	ctx := context.Background()

	p := repo.add(product.NewProduct(1, "seed corn", qty("50")))

	// first sale commits, version moves to 2
	_, err := engine.ApplyDelta(ctx, 1, p.ID, qty("-20"), 1)
	require.NoError(t, err)

	// concurrent sale still holding version 1 must fail
	_, err = engine.ApplyDelta(ctx, 1, p.ID, qty("-20"), 1)
	require.Error(t, err)
	assert.True(t, apperror.IsVersionConflict(err))

	// stock unchanged by the failed attempt
	cur, err := repo.GetByID(ctx, 1, p.ID)
	require.NoError(t, err)
	assert.True(t, cur.Stock.Equal(qty("30")))
}

func TestApplyDelta_InsufficientStock(t *testing.T) {
	repo := newMemProductRepo()
	engine := NewEngine(repo)
	ctx := context.Background()

	p := repo.add(product.NewProduct(1, "fertilizer", qty("5")))

	_, err := engine.ApplyDelta(ctx, 1, p.ID, qty("-10"), 1)
	require.Error(t, err)
	assert.True(t, apperror.IsInsufficientStock(err))

	cur, err := repo.GetByID(ctx, 1, p.ID)
	require.NoError(t, err)
	assert.True(t, cur.Stock.Equal(qty("5")))
	assert.Equal(t, 1, cur.Version)
}

func TestApplyDelta_NegativePurchaseQuantity(t *testing.T) {
	repo := newMemProductRepo()
	engine := NewEngine(repo)
	ctx := context.Background()

	// purchase-side return of 3 units against stock of 10
	p := repo.add(product.NewProduct(1, "pesticide", qty("10")))

	got, err := engine.ApplyDelta(ctx, 1, p.ID, qty("-3"), 1)
	require.NoError(t, err)
	assert.True(t, got.Stock.Equal(qty("7")))
	assert.Equal(t, 2, got.Version)
}

func TestApplyDelta_ZeroDeltaStillBumpsVersion(t *testing.T) {
	repo := newMemProductRepo()
	engine := NewEngine(repo)
	ctx := context.Background()

	p := repo.add(product.NewProduct(1, "seed corn", qty("50")))

	got, err := engine.ApplyDelta(ctx, 1, p.ID, decimal.Zero, 1)
	require.NoError(t, err)
	assert.True(t, got.Stock.Equal(qty("50")))
	assert.Equal(t, 2, got.Version)
}

func TestApplyDelta_NotFound(t *testing.T) {
	repo := newMemProductRepo()
	engine := NewEngine(repo)

	_, err := engine.ApplyDelta(context.Background(), 1, 999, qty("1"), 1)
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
}

func TestApplyDelta_OwnerScope(t *testing.T) {
	repo := newMemProductRepo()
	engine := NewEngine(repo)
	ctx := context.Background()

	p := repo.add(product.NewProduct(1, "seed corn", qty("50")))

	// another owner cannot touch the row
	_, err := engine.ApplyDelta(ctx, 2, p.ID, qty("-1"), 1)
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
}

func TestApplyDeltaByName_RefetchesVersion(t *testing.T) {
	repo := newMemProductRepo()
	engine := NewEngine(repo)
	ctx := context.Background()

	repo.add(product.NewProduct(1, "seed corn", qty("50")))

	got, err := engine.ApplyDeltaByName(ctx, 1, "seed corn", qty("-20"))
	require.NoError(t, err)
	assert.True(t, got.Stock.Equal(qty("30")))

	// second call picks up the new version without caller involvement
	got, err = engine.ApplyDeltaByName(ctx, 1, "seed corn", qty("-10"))
	require.NoError(t, err)
	assert.True(t, got.Stock.Equal(qty("20")))
	assert.Equal(t, 3, got.Version)
}

func TestApplyDeltaByName_MissingProduct(t *testing.T) {
	repo := newMemProductRepo()
	engine := NewEngine(repo)

	_, err := engine.ApplyDeltaByName(context.Background(), 1, "no such product", qty("1"))
	require.Error(t, err)
	assert.True(t, apperror.IsValidation(err))
}

// TestApplyDelta_NoLostUpdates drives many concurrent writers against
// one product. Every committed delta must be reflected in the final
// stock, and stock must never go negative at any committed state.
func TestApplyDelta_NoLostUpdates(t *testing.T) {
	repo := newMemProductRepo()
	engine := NewEngine(repo)
	ctx := context.Background()

	const writers = 32
	initial := qty("1000")
	delta := qty("-5")

	p := repo.add(product.NewProduct(1, "seed corn", initial))

	var committed int64
	var mu sync.Mutex
	var wg sync.WaitGroup

	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			// refetch-and-retry loop, as a client would on conflict
			for {
				cur, err := repo.GetByID(ctx, 1, p.ID)
				if err != nil {
					t.Error(err)
					return
				}
				_, err = engine.ApplyDelta(ctx, 1, p.ID, delta, cur.Version)
				if err == nil {
					mu.Lock()
					committed++
					mu.Unlock()
					return
				}
				if !apperror.IsVersionConflict(err) {
					t.Errorf("unexpected error: %v", err)
					return
				}
			}
		}()
	}

	wg.Wait()

	final, err := repo.GetByID(ctx, 1, p.ID)
	require.NoError(t, err)

	want := initial.Add(delta.Mul(decimal.NewFromInt(committed)))
	assert.True(t, final.Stock.Equal(want),
		"final stock %s, want %s after %d committed deltas", final.Stock, want, committed)
	assert.False(t, final.Stock.IsNegative())
	assert.Equal(t, 1+int(committed), final.Version)
}
