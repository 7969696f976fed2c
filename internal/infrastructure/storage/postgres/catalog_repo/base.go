// Package catalog_repo provides PostgreSQL implementations for
// catalog repositories. Every query is scoped to one owner account.
package catalog_repo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"agrostock/internal/core/apperror"
	"agrostock/internal/domain"
	"agrostock/internal/infrastructure/storage/postgres"
)

// BaseCatalogRepo provides common CRUD operations for catalog
// entities. Embed this in specific catalog repositories.
type BaseCatalogRepo[T any] struct {
	txm        *postgres.TxManager
	tableName  string
	selectCols []string
	searchCols []string
	newFn      func() T

	// scope holds extra equality conditions applied to every query,
	// e.g. {"kind": "supplier"} for repositories sharing a table.
	scope map[string]any
}

// NewBaseCatalogRepo creates a new base catalog repository.
func NewBaseCatalogRepo[T any](
	txm *postgres.TxManager,
	tableName string,
	selectCols []string,
	searchCols []string,
	newFn func() T,
) *BaseCatalogRepo[T] {
	return &BaseCatalogRepo[T]{
		txm:        txm,
		tableName:  tableName,
		selectCols: selectCols,
		searchCols: searchCols,
		newFn:      newFn,
	}
}

// Builder returns a new squirrel builder with PostgreSQL placeholder format.
func (r *BaseCatalogRepo[T]) Builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// Querier returns the active transaction or the pool.
func (r *BaseCatalogRepo[T]) Querier(ctx context.Context) postgres.Querier {
	return r.txm.GetQuerier(ctx)
}

// Create inserts a new entity using its "db" tags and returns the
// generated ID.
func (r *BaseCatalogRepo[T]) Create(ctx context.Context, entity T) (int64, error) {
	data := postgres.StructToMap(entity)
	if len(data) == 0 {
		return 0, fmt.Errorf("no db tags found in entity")
	}

	now := time.Now().UTC()
	data["created_at"] = now
	data["updated_at"] = now

	// id is generated by the database
	filteredData := make(map[string]any, len(r.selectCols))
	for _, col := range r.selectCols {
		if col == "id" {
			continue
		}
		if val, ok := data[col]; ok {
			filteredData[col] = val
		}
	}

	q := r.Builder().
		Insert(r.tableName).
		SetMap(filteredData).
		Suffix("RETURNING id")

	sql, args, err := q.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build insert: %w", err)
	}

	var newID int64
	if err := r.Querier(ctx).QueryRow(ctx, sql, args...).Scan(&newID); err != nil {
		return 0, fmt.Errorf("insert %s: %w", r.tableName, err)
	}

	return newID, nil
}

// Update modifies an existing entity with optimistic locking.
func (r *BaseCatalogRepo[T]) Update(ctx context.Context, entity T) error {
	data := postgres.StructToMap(entity)
	if len(data) == 0 {
		return fmt.Errorf("no db tags found in entity")
	}

	entityID, ok := data["id"]
	if !ok {
		return fmt.Errorf("entity has no 'id' field with db tag")
	}

	ownerID, ok := data["owner_id"]
	if !ok {
		return fmt.Errorf("entity has no 'owner_id' field with db tag")
	}

	version, ok := data["version"].(int)
	if !ok {
		return fmt.Errorf("entity has no 'version' field or it is not an int")
	}

	// Exclude immutable fields from SET
	filteredData := make(map[string]any, len(r.selectCols))
	for _, col := range r.selectCols {
		switch col {
		case "id", "owner_id", "created_at":
			continue
		case "version":
			continue // version is managed here (optimistic locking)
		}
		if val, ok := data[col]; ok {
			filteredData[col] = val
		}
	}
	filteredData["updated_at"] = time.Now().UTC()

	q := r.Builder().
		Update(r.tableName).
		SetMap(filteredData).
		Set("version", squirrel.Expr("version + 1")).
		Where(squirrel.Eq{"id": entityID}).
		Where(squirrel.Eq{"owner_id": ownerID}).
		Where(squirrel.Eq{"version": version}) // optimistic lock: expect current version

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	result, err := r.Querier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("update %s: %w", r.tableName, err)
	}

	if result.RowsAffected() == 0 {
		return apperror.NewVersionConflict(r.tableName, entityID)
	}

	return nil
}

func (r *BaseCatalogRepo[T]) baseSelect(ownerID int64) squirrel.SelectBuilder {
	q := r.Builder().
		Select(r.selectCols...).
		From(r.tableName).
		Where(squirrel.Eq{"owner_id": ownerID})
	if len(r.scope) > 0 {
		q = q.Where(squirrel.Eq(r.scope))
	}
	return q
}

// GetByID retrieves entity by ID within the owner scope.
func (r *BaseCatalogRepo[T]) GetByID(ctx context.Context, ownerID, entityID int64) (T, error) {
	entity := r.newFn()

	q := r.baseSelect(ownerID).
		Where(squirrel.Eq{"id": entityID}).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return entity, fmt.Errorf("build query: %w", err)
	}

	if err := pgxscan.Get(ctx, r.Querier(ctx), entity, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return entity, apperror.NewNotFound(r.tableName, entityID)
		}
		return entity, fmt.Errorf("get by id: %w", err)
	}

	return entity, nil
}

// GetByName retrieves entity by name (unique within owner scope).
func (r *BaseCatalogRepo[T]) GetByName(ctx context.Context, ownerID int64, name string) (T, error) {
	entity := r.newFn()

	q := r.baseSelect(ownerID).
		Where(squirrel.Eq{"name": name}).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return entity, fmt.Errorf("build query: %w", err)
	}

	if err := pgxscan.Get(ctx, r.Querier(ctx), entity, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return entity, apperror.NewNotFound(r.tableName, name)
		}
		return entity, fmt.Errorf("get by name: %w", err)
	}

	return entity, nil
}

// List retrieves entities with filtering and pagination.
func (r *BaseCatalogRepo[T]) List(ctx context.Context, ownerID int64, filter domain.ListFilter) (domain.ListResult[T], error) {
	q := r.applyFilter(r.baseSelect(ownerID), filter)

	// Count total before pagination
	countQ := r.Builder().
		Select("COUNT(*)").
		FromSelect(q, "sub")

	countSQL, countArgs, err := countQ.ToSql()
	if err != nil {
		return domain.ListResult[T]{}, fmt.Errorf("build count query: %w", err)
	}

	var total int64
	querier := r.Querier(ctx)
	if err := querier.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return domain.ListResult[T]{}, fmt.Errorf("count: %w", err)
	}

	orderBy, err := r.parseOrderBy(filter.OrderBy)
	if err != nil {
		return domain.ListResult[T]{}, err
	}

	q = q.OrderBy(orderBy).
		Limit(uint64(filter.PageSize)).
		Offset(uint64(filter.Offset()))

	sql, args, err := q.ToSql()
	if err != nil {
		return domain.ListResult[T]{}, fmt.Errorf("build query: %w", err)
	}

	var items []T
	if err := pgxscan.Select(ctx, querier, &items, sql, args...); err != nil {
		return domain.ListResult[T]{}, fmt.Errorf("list: %w", err)
	}

	return domain.NewListResult(items, total, filter.Page, filter.PageSize), nil
}

// applyFilter adds the search condition shared by catalog lists.
func (r *BaseCatalogRepo[T]) applyFilter(q squirrel.SelectBuilder, filter domain.ListFilter) squirrel.SelectBuilder {
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		or := make(squirrel.Or, 0, len(r.searchCols))
		for _, col := range r.searchCols {
			or = append(or, squirrel.ILike{col: pattern})
		}
		q = q.Where(or)
	}
	return q
}

// ExistsByName reports whether another row already uses the name.
func (r *BaseCatalogRepo[T]) ExistsByName(ctx context.Context, ownerID int64, name string, excludeID int64) (bool, error) {
	q := r.Builder().
		Select("1").
		From(r.tableName).
		Where(squirrel.Eq{"owner_id": ownerID}).
		Where(squirrel.Eq{"name": name}).
		Limit(1)
	if len(r.scope) > 0 {
		q = q.Where(squirrel.Eq(r.scope))
	}

	if excludeID != 0 {
		q = q.Where(squirrel.NotEq{"id": excludeID})
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return false, fmt.Errorf("build query: %w", err)
	}

	var exists int
	err = r.Querier(ctx).QueryRow(ctx, sql, args...).Scan(&exists)
	if err == pgx.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("exists by name: %w", err)
	}

	return true, nil
}

// Exists reports whether the row exists in the owner scope.
func (r *BaseCatalogRepo[T]) Exists(ctx context.Context, ownerID, entityID int64) (bool, error) {
	q := r.Builder().
		Select("1").
		From(r.tableName).
		Where(squirrel.Eq{"owner_id": ownerID}).
		Where(squirrel.Eq{"id": entityID}).
		Limit(1)
	if len(r.scope) > 0 {
		q = q.Where(squirrel.Eq(r.scope))
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return false, fmt.Errorf("build query: %w", err)
	}

	var exists int
	err = r.Querier(ctx).QueryRow(ctx, sql, args...).Scan(&exists)
	if err == pgx.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("exists: %w", err)
	}

	return true, nil
}

// Delete performs physical removal from the database. Dependent
// references are cleared by ON DELETE SET NULL foreign keys.
func (r *BaseCatalogRepo[T]) Delete(ctx context.Context, ownerID, entityID int64) error {
	q := r.Builder().
		Delete(r.tableName).
		Where(squirrel.Eq{"owner_id": ownerID}).
		Where(squirrel.Eq{"id": entityID})
	if len(r.scope) > 0 {
		q = q.Where(squirrel.Eq(r.scope))
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	result, err := r.Querier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		// Foreign key violation (23503): restrict-style references
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return apperror.NewConflict("cannot delete: the record is referenced elsewhere").
				WithDetail("entity", r.tableName).
				WithDetail("id", entityID).
				WithCause(err)
		}
		return fmt.Errorf("execute delete %s: %w", r.tableName, err)
	}

	if result.RowsAffected() == 0 {
		return apperror.NewNotFound(r.tableName, entityID)
	}

	return nil
}

// listAllLimit caps picker queries that skip pagination.
const listAllLimit = 50

// ListAll returns rows for the owner in name order, capped for
// picker UIs.
func (r *BaseCatalogRepo[T]) ListAll(ctx context.Context, ownerID int64) ([]T, error) {
	q := r.baseSelect(ownerID).OrderBy("name ASC").Limit(listAllLimit)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var items []T
	if err := pgxscan.Select(ctx, r.Querier(ctx), &items, sql, args...); err != nil {
		return nil, fmt.Errorf("list all: %w", err)
	}

	return items, nil
}

func (r *BaseCatalogRepo[T]) parseOrderBy(orderBy string) (string, error) {
	allowed := make(map[string]struct{}, len(r.selectCols))
	for _, col := range r.selectCols {
		allowed[col] = struct{}{}
	}

	if orderBy == "" {
		return "updated_at DESC, id DESC", nil
	}

	// Support "-field" for DESC.
	direction := "ASC"
	field := orderBy
	if strings.HasPrefix(orderBy, "-") {
		direction = "DESC"
		field = strings.TrimPrefix(orderBy, "-")
	} else if strings.HasPrefix(orderBy, "+") {
		field = strings.TrimPrefix(orderBy, "+")
	}

	field = strings.TrimSpace(field)
	if field == "" {
		return "", apperror.NewValidation("invalid orderBy").WithDetail("orderBy", orderBy)
	}

	if _, ok := allowed[field]; !ok {
		return "", apperror.NewValidation("invalid orderBy").WithDetail("orderBy", orderBy).WithDetail("field", field)
	}

	return field + " " + direction, nil
}
