// Package record_repo provides PostgreSQL implementations for ledger
// record repositories (purchases, sales, returns, income, remittances).
package record_repo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgconn"

	"agrostock/internal/core/apperror"
	"agrostock/internal/domain"
	"agrostock/internal/domain/ledger"
	"agrostock/internal/infrastructure/storage/postgres"
)

// BaseRecordRepo provides CRUD and filtered listing for one ledger
// record table. All queries are scoped to the owner account.
type BaseRecordRepo[T ledger.Record] struct {
	txm        *postgres.TxManager
	tableName  string
	selectCols []string
	// dateColumn is the business date used for range filtering and
	// default ordering (purchase_date, sale_date, ...).
	dateColumn string
	// counterpartyColumn is the nullable party reference used by the
	// counterparty filter (supplier_id or customer_id).
	counterpartyColumn string
	// employeeColumn is set on tables with an employee link; empty
	// disables the employee filter.
	employeeColumn string
	searchCols     []string
	newFn          func() T
}

// NewBaseRecordRepo creates a record repository for one table.
func NewBaseRecordRepo[T ledger.Record](
	txm *postgres.TxManager,
	tableName string,
	selectCols []string,
	dateColumn string,
	counterpartyColumn string,
	searchCols []string,
	newFn func() T,
) *BaseRecordRepo[T] {
	return &BaseRecordRepo[T]{
		txm:                txm,
		tableName:          tableName,
		selectCols:         selectCols,
		dateColumn:         dateColumn,
		counterpartyColumn: counterpartyColumn,
		searchCols:         searchCols,
		newFn:              newFn,
	}
}

var _ ledger.Repository[ledger.Record] = (*BaseRecordRepo[ledger.Record])(nil)

func (r *BaseRecordRepo[T]) builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

func (r *BaseRecordRepo[T]) querier(ctx context.Context) postgres.Querier {
	return r.txm.GetQuerier(ctx)
}

// Create inserts the record and returns the generated ID.
func (r *BaseRecordRepo[T]) Create(ctx context.Context, record T) (int64, error) {
	data := postgres.StructToMap(record)
	if len(data) == 0 {
		return 0, fmt.Errorf("no db tags found in record")
	}

	data["created_at"] = time.Now().UTC()

	filteredData := make(map[string]any, len(r.selectCols))
	for _, col := range r.selectCols {
		if col == "id" {
			continue
		}
		if val, ok := data[col]; ok {
			filteredData[col] = val
		}
	}

	q := r.builder().
		Insert(r.tableName).
		SetMap(filteredData).
		Suffix("RETURNING id")

	sql, args, err := q.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build insert: %w", err)
	}

	var newID int64
	if err := r.querier(ctx).QueryRow(ctx, sql, args...).Scan(&newID); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return 0, apperror.NewValidation("referenced party does not exist").
				WithDetail("entity", r.tableName).
				WithCause(err)
		}
		return 0, fmt.Errorf("insert %s: %w", r.tableName, err)
	}

	return newID, nil
}

// GetByID retrieves a record by ID within the owner scope.
func (r *BaseRecordRepo[T]) GetByID(ctx context.Context, ownerID, recordID int64) (T, error) {
	record := r.newFn()

	q := r.builder().
		Select(r.selectCols...).
		From(r.tableName).
		Where(squirrel.Eq{"owner_id": ownerID}).
		Where(squirrel.Eq{"id": recordID}).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return record, fmt.Errorf("build query: %w", err)
	}

	if err := pgxscan.Get(ctx, r.querier(ctx), record, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return record, apperror.NewNotFound(r.tableName, recordID)
		}
		return record, fmt.Errorf("get by id: %w", err)
	}

	return record, nil
}

// Update rewrites all mutable columns of the record.
func (r *BaseRecordRepo[T]) Update(ctx context.Context, record T) error {
	data := postgres.StructToMap(record)
	if len(data) == 0 {
		return fmt.Errorf("no db tags found in record")
	}

	filteredData := make(map[string]any, len(r.selectCols))
	for _, col := range r.selectCols {
		switch col {
		case "id", "owner_id", "created_at":
			continue
		}
		if val, ok := data[col]; ok {
			filteredData[col] = val
		}
	}

	q := r.builder().
		Update(r.tableName).
		SetMap(filteredData).
		Where(squirrel.Eq{"id": record.GetID()}).
		Where(squirrel.Eq{"owner_id": record.GetOwnerID()})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	result, err := r.querier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("update %s: %w", r.tableName, err)
	}

	if result.RowsAffected() == 0 {
		return apperror.NewNotFound(r.tableName, record.GetID())
	}

	return nil
}

// Delete removes a record.
func (r *BaseRecordRepo[T]) Delete(ctx context.Context, ownerID, recordID int64) error {
	q := r.builder().
		Delete(r.tableName).
		Where(squirrel.Eq{"owner_id": ownerID}).
		Where(squirrel.Eq{"id": recordID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	result, err := r.querier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("execute delete %s: %w", r.tableName, err)
	}

	if result.RowsAffected() == 0 {
		return apperror.NewNotFound(r.tableName, recordID)
	}

	return nil
}

// List retrieves records with search, date range and counterparty
// filtering. Date bounds are inclusive. A counterparty filter of 0
// matches records with no counterparty assigned.
func (r *BaseRecordRepo[T]) List(ctx context.Context, ownerID int64, filter domain.ListFilter) (domain.ListResult[T], error) {
	q := r.listQuery(ownerID, filter)

	countQ := r.builder().Select("COUNT(*)").FromSelect(q, "sub")
	countSQL, countArgs, err := countQ.ToSql()
	if err != nil {
		return domain.ListResult[T]{}, fmt.Errorf("build count query: %w", err)
	}

	var total int64
	querier := r.querier(ctx)
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
		return domain.ListResult[T]{}, fmt.Errorf("list %s: %w", r.tableName, err)
	}

	return domain.NewListResult(items, total, filter.Page, filter.PageSize), nil
}

// listQuery builds the filtered SELECT shared by List and its count.
func (r *BaseRecordRepo[T]) listQuery(ownerID int64, filter domain.ListFilter) squirrel.SelectBuilder {
	q := r.builder().
		Select(r.selectCols...).
		From(r.tableName).
		Where(squirrel.Eq{"owner_id": ownerID})

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		or := make(squirrel.Or, 0, len(r.searchCols))
		for _, col := range r.searchCols {
			or = append(or, squirrel.ILike{col: pattern})
		}
		q = q.Where(or)
	}

	if filter.StartDate != nil {
		q = q.Where(squirrel.GtOrEq{r.dateColumn: *filter.StartDate})
	}
	if filter.EndDate != nil {
		q = q.Where(squirrel.LtOrEq{r.dateColumn: *filter.EndDate})
	}

	if filter.CounterpartyID != nil && r.counterpartyColumn != "" {
		if *filter.CounterpartyID == 0 {
			q = q.Where(fmt.Sprintf("%s IS NULL", r.counterpartyColumn))
		} else {
			q = q.Where(squirrel.Eq{r.counterpartyColumn: *filter.CounterpartyID})
		}
	}

	if filter.EmployeeID != nil && r.employeeColumn != "" {
		if *filter.EmployeeID == 0 {
			q = q.Where(fmt.Sprintf("%s IS NULL", r.employeeColumn))
		} else {
			q = q.Where(squirrel.Eq{r.employeeColumn: *filter.EmployeeID})
		}
	}

	return q
}

func (r *BaseRecordRepo[T]) parseOrderBy(orderBy string) (string, error) {
	allowed := make(map[string]struct{}, len(r.selectCols))
	for _, col := range r.selectCols {
		allowed[col] = struct{}{}
	}

	if orderBy == "" {
		return fmt.Sprintf("%s DESC, id DESC", r.dateColumn), nil
	}

	direction := "ASC"
	field := orderBy
	if strings.HasPrefix(orderBy, "-") {
		direction = "DESC"
		field = strings.TrimPrefix(orderBy, "-")
	} else if strings.HasPrefix(orderBy, "+") {
		field = strings.TrimPrefix(orderBy, "+")
	}

	field = strings.TrimSpace(field)
	if _, ok := allowed[field]; !ok {
		return "", apperror.NewValidation("invalid orderBy").WithDetail("orderBy", orderBy)
	}

	return field + " " + direction, nil
}
