package catalog_repo

import (
	"testing"

	"agrostock/internal/domain"
)

func newTestRepo() *BaseCatalogRepo[any] {
	return NewBaseCatalogRepo[any](
		nil,
		"test_table",
		[]string{"id", "name", "note", "updated_at"},
		[]string{"name", "note"},
		func() any { return nil },
	)
}

func TestApplyFilter_Search(t *testing.T) {
	repo := newTestRepo()

	q := repo.applyFilter(repo.baseSelect(7), domain.ListFilter{Search: "urea"})

	sql, args, err := q.ToSql()
	if err != nil {
		t.Fatalf("ToSql failed: %v", err)
	}

	wantSQL := "SELECT id, name, note, updated_at FROM test_table WHERE owner_id = $1 AND (name ILIKE $2 OR note ILIKE $3)"
	if sql != wantSQL {
		t.Errorf("SQL mismatch\nwant: %s\ngot:  %s", wantSQL, sql)
	}
	if len(args) != 3 {
		t.Fatalf("Args count mismatch\nwant: 3\ngot:  %d", len(args))
	}
	if args[1] != "%urea%" {
		t.Errorf("Args mismatch\nwant: %%urea%%\ngot:  %v", args[1])
	}
}

func TestApplyFilter_NoSearchKeepsOwnerScope(t *testing.T) {
	repo := newTestRepo()

	q := repo.applyFilter(repo.baseSelect(7), domain.ListFilter{})

	sql, args, err := q.ToSql()
	if err != nil {
		t.Fatalf("ToSql failed: %v", err)
	}

	wantSQL := "SELECT id, name, note, updated_at FROM test_table WHERE owner_id = $1"
	if sql != wantSQL {
		t.Errorf("SQL mismatch\nwant: %s\ngot:  %s", wantSQL, sql)
	}
	if len(args) != 1 || args[0] != int64(7) {
		t.Errorf("Args mismatch\nwant: [7]\ngot:  %v", args)
	}
}

func TestBaseSelect_Scope(t *testing.T) {
	repo := newTestRepo()
	repo.scope = map[string]any{"kind": "supplier"}

	sql, args, err := repo.baseSelect(7).ToSql()
	if err != nil {
		t.Fatalf("ToSql failed: %v", err)
	}

	wantSQL := "SELECT id, name, note, updated_at FROM test_table WHERE owner_id = $1 AND kind = $2"
	if sql != wantSQL {
		t.Errorf("SQL mismatch\nwant: %s\ngot:  %s", wantSQL, sql)
	}
	if len(args) != 2 || args[1] != "supplier" {
		t.Errorf("Args mismatch\nwant kind=supplier\ngot:  %v", args)
	}
}

func TestParseOrderBy(t *testing.T) {
	repo := newTestRepo()

	tests := []struct {
		name    string
		orderBy string
		want    string
		wantErr bool
	}{
		{name: "Default", orderBy: "", want: "updated_at DESC, id DESC"},
		{name: "Ascending", orderBy: "name", want: "name ASC"},
		{name: "Descending", orderBy: "-name", want: "name DESC"},
		{name: "ExplicitPlus", orderBy: "+note", want: "note ASC"},
		{name: "UnknownField", orderBy: "password", wantErr: true},
		{name: "Injection", orderBy: "name; DROP TABLE test_table", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.parseOrderBy(tt.orderBy)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %q", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseOrderBy failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("order mismatch\nwant: %s\ngot:  %s", tt.want, got)
			}
		})
	}
}
