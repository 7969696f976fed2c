package record_repo

import (
	"testing"
	"time"

	"agrostock/internal/domain"
	"agrostock/internal/domain/ledger/sale"
)

func newTestRepo() *BaseRecordRepo[*sale.Sale] {
	return NewBaseRecordRepo(
		nil,
		"sales",
		[]string{"id", "product_name", "quantity", "customer_id", "sale_date", "note"},
		"sale_date",
		"customer_id",
		[]string{"product_name", "note"},
		func() *sale.Sale { return &sale.Sale{} },
	)
}

func TestListQuery_OwnerScopeOnly(t *testing.T) {
	repo := newTestRepo()

	sql, args, err := repo.listQuery(3, domain.ListFilter{}).ToSql()
	if err != nil {
		t.Fatalf("ToSql failed: %v", err)
	}

	wantSQL := "SELECT id, product_name, quantity, customer_id, sale_date, note FROM sales WHERE owner_id = $1"
	if sql != wantSQL {
		t.Errorf("SQL mismatch\nwant: %s\ngot:  %s", wantSQL, sql)
	}
	if len(args) != 1 || args[0] != int64(3) {
		t.Errorf("Args mismatch\nwant: [3]\ngot:  %v", args)
	}
}

func TestListQuery_DateRangeInclusive(t *testing.T) {
	repo := newTestRepo()

	start := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)

	sql, args, err := repo.listQuery(3, domain.ListFilter{StartDate: &start, EndDate: &end}).ToSql()
	if err != nil {
		t.Fatalf("ToSql failed: %v", err)
	}

	wantSQL := "SELECT id, product_name, quantity, customer_id, sale_date, note FROM sales WHERE owner_id = $1 AND sale_date >= $2 AND sale_date <= $3"
	if sql != wantSQL {
		t.Errorf("SQL mismatch\nwant: %s\ngot:  %s", wantSQL, sql)
	}
	if len(args) != 3 {
		t.Fatalf("Args count mismatch\nwant: 3\ngot:  %d", len(args))
	}
	if args[1] != start || args[2] != end {
		t.Errorf("Args mismatch\nwant: [%v %v]\ngot:  %v", start, end, args[1:])
	}
}

func TestListQuery_CounterpartyFilter(t *testing.T) {
	repo := newTestRepo()

	customerID := int64(42)
	sql, args, err := repo.listQuery(3, domain.ListFilter{CounterpartyID: &customerID}).ToSql()
	if err != nil {
		t.Fatalf("ToSql failed: %v", err)
	}

	wantSQL := "SELECT id, product_name, quantity, customer_id, sale_date, note FROM sales WHERE owner_id = $1 AND customer_id = $2"
	if sql != wantSQL {
		t.Errorf("SQL mismatch\nwant: %s\ngot:  %s", wantSQL, sql)
	}
	if args[1] != int64(42) {
		t.Errorf("Args mismatch\nwant: 42\ngot:  %v", args[1])
	}
}

func TestListQuery_CounterpartyZeroMatchesUnassigned(t *testing.T) {
	repo := newTestRepo()

	unassigned := int64(0)
	sql, _, err := repo.listQuery(3, domain.ListFilter{CounterpartyID: &unassigned}).ToSql()
	if err != nil {
		t.Fatalf("ToSql failed: %v", err)
	}

	wantSQL := "SELECT id, product_name, quantity, customer_id, sale_date, note FROM sales WHERE owner_id = $1 AND customer_id IS NULL"
	if sql != wantSQL {
		t.Errorf("SQL mismatch\nwant: %s\ngot:  %s", wantSQL, sql)
	}
}

func TestListQuery_SearchAndDates(t *testing.T) {
	repo := newTestRepo()

	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	sql, args, err := repo.listQuery(3, domain.ListFilter{Search: "wheat", StartDate: &start}).ToSql()
	if err != nil {
		t.Fatalf("ToSql failed: %v", err)
	}

	wantSQL := "SELECT id, product_name, quantity, customer_id, sale_date, note FROM sales WHERE owner_id = $1 AND (product_name ILIKE $2 OR note ILIKE $3) AND sale_date >= $4"
	if sql != wantSQL {
		t.Errorf("SQL mismatch\nwant: %s\ngot:  %s", wantSQL, sql)
	}
	if args[1] != "%wheat%" {
		t.Errorf("Args mismatch\nwant: %%wheat%%\ngot:  %v", args[1])
	}
}

func TestListQuery_EmployeeFilter(t *testing.T) {
	repo := newTestRepo()
	repo.employeeColumn = "employee_id"

	employeeID := int64(7)
	sql, args, err := repo.listQuery(3, domain.ListFilter{EmployeeID: &employeeID}).ToSql()
	if err != nil {
		t.Fatalf("ToSql failed: %v", err)
	}

	wantSQL := "SELECT id, product_name, quantity, customer_id, sale_date, note FROM sales WHERE owner_id = $1 AND employee_id = $2"
	if sql != wantSQL {
		t.Errorf("SQL mismatch\nwant: %s\ngot:  %s", wantSQL, sql)
	}
	if args[1] != int64(7) {
		t.Errorf("Args mismatch\nwant: 7\ngot:  %v", args[1])
	}
}

func TestListQuery_EmployeeFilterIgnoredWithoutColumn(t *testing.T) {
	repo := newTestRepo()

	employeeID := int64(7)
	sql, _, err := repo.listQuery(3, domain.ListFilter{EmployeeID: &employeeID}).ToSql()
	if err != nil {
		t.Fatalf("ToSql failed: %v", err)
	}

	wantSQL := "SELECT id, product_name, quantity, customer_id, sale_date, note FROM sales WHERE owner_id = $1"
	if sql != wantSQL {
		t.Errorf("SQL mismatch\nwant: %s\ngot:  %s", wantSQL, sql)
	}
}

func TestRecordParseOrderBy_DefaultUsesDateColumn(t *testing.T) {
	repo := newTestRepo()

	got, err := repo.parseOrderBy("")
	if err != nil {
		t.Fatalf("parseOrderBy failed: %v", err)
	}
	if got != "sale_date DESC, id DESC" {
		t.Errorf("order mismatch\nwant: sale_date DESC, id DESC\ngot:  %s", got)
	}

	if _, err := repo.parseOrderBy("total_sale_price; --"); err == nil {
		t.Error("expected error for unknown field")
	}
}
