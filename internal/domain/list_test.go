package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize_ClampsPagination(t *testing.T) {
	tests := []struct {
		name         string
		page         int
		pageSize     int
		wantPage     int
		wantPageSize int
	}{
		{"defaults on zero values", 0, 0, 1, DefaultPageSize},
		{"negative page becomes first", -3, 10, 1, 10},
		{"negative size becomes default", 2, -1, 2, DefaultPageSize},
		{"oversized page size capped", 1, 50000, 1, MaxPageSize},
		{"valid values untouched", 4, 25, 4, 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := ListFilter{Page: tt.page, PageSize: tt.pageSize}
			f.Normalize()
			assert.Equal(t, tt.wantPage, f.Page)
			assert.Equal(t, tt.wantPageSize, f.PageSize)
		})
	}
}

func TestOffset(t *testing.T) {
	f := ListFilter{Page: 3, PageSize: 20}
	assert.Equal(t, 40, f.Offset())

	f = ListFilter{Page: 1, PageSize: 20}
	assert.Equal(t, 0, f.Offset())
}

func TestNewListResult_TotalPages(t *testing.T) {
	tests := []struct {
		total    int64
		pageSize int
		want     int
	}{
		{0, 20, 0},
		{1, 20, 1},
		{20, 20, 1},
		{21, 20, 2},
		{100, 7, 15},
	}

	for _, tt := range tests {
		r := NewListResult([]int{}, tt.total, 1, tt.pageSize)
		assert.Equal(t, tt.want, r.TotalPages, "total=%d pageSize=%d", tt.total, tt.pageSize)
	}
}
