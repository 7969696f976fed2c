package postgres

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type mockBase struct {
	ID      int64 `db:"id" json:"id"`
	OwnerID int64 `db:"owner_id" json:"-"`
	Version int   `db:"version" json:"version"`
}

type mockCatalog struct {
	mockBase
	Name      string     `db:"name" json:"name"`
	Note      *string    `db:"note" json:"note,omitempty"`
	UpdatedAt time.Time  `db:"updated_at" json:"updatedAt"`
	Ignored   string     `db:"-" json:"-"`
	NoTag     string     `json:"noTag"`
	DeletedAt *time.Time `db:"deleted_at" json:"-"`
}

func TestExtractDBColumns(t *testing.T) {
	cols := ExtractDBColumns[mockCatalog]()

	expectedCols := []string{
		"id", "owner_id", "version", "name", "note", "updated_at", "deleted_at",
	}

	for _, expected := range expectedCols {
		assert.Contains(t, cols, expected)
	}

	assert.NotContains(t, cols, "-")
	assert.Len(t, cols, len(expectedCols))
}

func TestStructToMap(t *testing.T) {
	now := time.Now().UTC()
	note := "bulk order"
	cat := mockCatalog{
		mockBase: mockBase{
			ID:      42,
			OwnerID: 7,
			Version: 5,
		},
		Name:      "Urea 46%",
		Note:      &note,
		UpdatedAt: now,
		Ignored:   "skip me",
		NoTag:     "skip me too",
	}

	m := StructToMap(cat)

	assert.Equal(t, int64(42), m["id"])
	assert.Equal(t, int64(7), m["owner_id"])
	assert.Equal(t, 5, m["version"])
	assert.Equal(t, "Urea 46%", m["name"])
	assert.Equal(t, &note, m["note"])
	assert.Equal(t, now, m["updated_at"])

	_, hasIgnored := m["-"]
	assert.False(t, hasIgnored)
	assert.NotContains(t, m, "NoTag")
}

func TestStructToMap_PointerInput(t *testing.T) {
	cat := &mockCatalog{mockBase: mockBase{ID: 1, OwnerID: 2, Version: 1}, Name: "Seed"}

	m := StructToMap(cat)

	assert.Equal(t, int64(1), m["id"])
	assert.Equal(t, "Seed", m["name"])
	assert.Nil(t, m["note"])
}

func TestStructToMap_NonStruct(t *testing.T) {
	assert.Nil(t, StructToMap(123))
	assert.Nil(t, StructToMap("nope"))
}

// Embedding an unexported struct type makes the embedded field itself
// unexported; the walk must still surface its tagged fields instead of
// tripping reflect's unexported-field guard.
func TestStructToMap_UnexportedEmbedded(t *testing.T) {
	m := StructToMap(mockCatalog{
		mockBase: mockBase{ID: 9, OwnerID: 4, Version: 2},
		Name:     "Compost",
	})

	assert.Equal(t, int64(9), m["id"])
	assert.Equal(t, int64(4), m["owner_id"])
	assert.Equal(t, 2, m["version"])
	assert.Equal(t, "Compost", m["name"])
}

type mockWithPtrEmbed struct {
	*mockBase
	Name string `db:"name"`
}

func TestStructToMap_NilPointerEmbedded(t *testing.T) {
	m := StructToMap(mockWithPtrEmbed{Name: "Lime"})

	assert.Equal(t, "Lime", m["name"])
	assert.NotContains(t, m, "id")
}
