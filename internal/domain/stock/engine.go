// Package stock provides the stock ledger engine: optimistic-locked
// quantity deltas against a product's stock balance.
package stock

import (
	"context"

	"agrostock/internal/core/apperror"
	"agrostock/internal/core/types"
	"agrostock/internal/domain/catalogs/product"
	"agrostock/pkg/logger"
)

// Engine applies signed quantity deltas to product stock under an
// optimistic version counter. No in-process locks are held: safety
// comes from the version check being part of the same atomic
// read-modify-write as the stock column update.
//
// Callers that pair a delta with a ledger-row write must run both
// inside one transaction so either both commit or neither does.
type Engine struct {
	products product.Repository
}

// NewEngine creates a stock engine over the product repository.
func NewEngine(products product.Repository) *Engine {
	return &Engine{products: products}
}

// ApplyDelta applies a signed quantity delta to the product's stock.
//
// Fails with CodeVersionConflict if the stored version no longer
// equals expectedVersion, and with CodeInsufficientStock if the delta
// would drive stock negative. A zero delta still bumps the version:
// every mutation increments it exactly once.
//
// Returns the product with the new stock and version.
func (e *Engine) ApplyDelta(ctx context.Context, ownerID, productID int64, delta types.Quantity, expectedVersion int) (*product.Product, error) {
	p, err := e.products.GetByID(ctx, ownerID, productID)
	if err != nil {
		return nil, err
	}

	if p.Version != expectedVersion {
		return nil, apperror.NewVersionConflict("product", productID).
			WithDetail("currentVersion", p.Version).
			WithDetail("expectedVersion", expectedVersion)
	}

	newStock := p.Stock.Add(delta)
	if newStock.IsNegative() {
		return nil, apperror.NewInsufficientStock(p.Name, delta.Neg(), p.Stock)
	}

	if err := e.products.CompareAndSwapStock(ctx, ownerID, productID, newStock, expectedVersion); err != nil {
		return nil, err
	}

	logger.Debug(ctx, "applied stock delta",
		"product", p.Name,
		"delta", delta.String(),
		"stock", newStock.String(),
		"version", expectedVersion+1,
	)

	p.Stock = newStock
	p.Version = expectedVersion + 1
	return p, nil
}

// ApplyDeltaByName resolves the product by name within the owner
// scope, refetches its current version server-side, and applies the
// delta through ApplyDelta. Ledger mutations use this path: the
// version window is the enclosing transaction.
func (e *Engine) ApplyDeltaByName(ctx context.Context, ownerID int64, name string, delta types.Quantity) (*product.Product, error) {
	p, err := e.products.GetByName(ctx, ownerID, name)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewValidation("product does not exist").
				WithDetail("product", name)
		}
		return nil, err
	}

	return e.ApplyDelta(ctx, ownerID, p.ID, delta, p.Version)
}
