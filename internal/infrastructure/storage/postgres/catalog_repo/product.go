package catalog_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"agrostock/internal/core/apperror"
	"agrostock/internal/core/types"
	"agrostock/internal/domain"
	"agrostock/internal/domain/catalogs/product"
	"agrostock/internal/infrastructure/storage/postgres"
)

var productColumns = postgres.ExtractDBColumns[product.Product]()

// ProductRepo is the PostgreSQL product repository.
type ProductRepo struct {
	*BaseCatalogRepo[*product.Product]
}

var _ product.Repository = (*ProductRepo)(nil)

// NewProductRepo creates a product repository.
func NewProductRepo(txm *postgres.TxManager) *ProductRepo {
	return &ProductRepo{
		BaseCatalogRepo: NewBaseCatalogRepo(
			txm,
			"products",
			productColumns,
			[]string{"name", "description"},
			func() *product.Product { return &product.Product{} },
		),
	}
}

// CompareAndSwapStock sets the stock level if the stored version still
// matches the expected one. The version check and the write are a
// single UPDATE, so concurrent writers cannot interleave between them.
func (r *ProductRepo) CompareAndSwapStock(ctx context.Context, ownerID, productID int64, newStock types.Quantity, expectedVersion int) error {
	q := r.Builder().
		Update("products").
		Set("stock", newStock).
		Set("version", squirrel.Expr("version + 1")).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": productID}).
		Where(squirrel.Eq{"owner_id": ownerID}).
		Where(squirrel.Eq{"version": expectedVersion})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build stock update: %w", err)
	}

	result, err := r.Querier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("update stock: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperror.NewVersionConflict("product", productID)
	}

	return nil
}

// ListBySupplier lists products filtered by supplier. supplierID 0
// matches products with no supplier assigned.
func (r *ProductRepo) ListBySupplier(ctx context.Context, ownerID int64, supplierID *int64, filter domain.ListFilter) (domain.ListResult[*product.Product], error) {
	q := r.applyFilter(r.baseSelect(ownerID), filter)

	if supplierID != nil {
		if *supplierID == 0 {
			q = q.Where("supplier_id IS NULL")
		} else {
			q = q.Where(squirrel.Eq{"supplier_id": *supplierID})
		}
	}

	countQ := r.Builder().Select("COUNT(*)").FromSelect(q, "sub")
	countSQL, countArgs, err := countQ.ToSql()
	if err != nil {
		return domain.ListResult[*product.Product]{}, fmt.Errorf("build count query: %w", err)
	}

	var total int64
	querier := r.Querier(ctx)
	if err := querier.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return domain.ListResult[*product.Product]{}, fmt.Errorf("count: %w", err)
	}

	orderBy, err := r.parseOrderBy(filter.OrderBy)
	if err != nil {
		return domain.ListResult[*product.Product]{}, err
	}

	q = q.OrderBy(orderBy).
		Limit(uint64(filter.PageSize)).
		Offset(uint64(filter.Offset()))

	sql, args, err := q.ToSql()
	if err != nil {
		return domain.ListResult[*product.Product]{}, fmt.Errorf("build query: %w", err)
	}

	var items []*product.Product
	if err := pgxscan.Select(ctx, querier, &items, sql, args...); err != nil {
		return domain.ListResult[*product.Product]{}, fmt.Errorf("list by supplier: %w", err)
	}

	return domain.NewListResult(items, total, filter.Page, filter.PageSize), nil
}
