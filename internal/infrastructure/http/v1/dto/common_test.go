package dto

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToFilter_EndDateCoversWholeDay(t *testing.T) {
	end := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	q := ListQuery{EndDate: &end}

	f := q.ToFilter()

	require.NotNil(t, f.EndDate)
	// a record stamped late on the end day still falls inside the range
	lastSale := time.Date(2026, 3, 10, 23, 59, 59, 0, time.UTC)
	assert.False(t, f.EndDate.Before(lastSale))
	// but nothing from the next day does
	assert.True(t, f.EndDate.Before(end.AddDate(0, 0, 1)))
}

func TestToFilter_NormalizesPagination(t *testing.T) {
	q := ListQuery{Page: 0, PageSize: 0, Search: "corn"}

	f := q.ToFilter()

	assert.Equal(t, 1, f.Page)
	assert.Equal(t, 20, f.PageSize)
	assert.Equal(t, "corn", f.Search)
	assert.Nil(t, f.StartDate)
	assert.Nil(t, f.EndDate)
	assert.Nil(t, f.CounterpartyID)
}

func TestToFilter_StartDatePassedThrough(t *testing.T) {
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	q := ListQuery{StartDate: &start}

	f := q.ToFilter()

	require.NotNil(t, f.StartDate)
	assert.True(t, f.StartDate.Equal(start))
}
