// Package domain provides core business logic interfaces and types.
package domain

import (
	"context"
	"time"
)

const (
	// DefaultPageSize is used when the client does not specify one.
	DefaultPageSize = 20

	// MaxPageSize caps page_size to keep result sets bounded.
	MaxPageSize = 10000
)

// ListFilter contains common filtering options for list operations.
type ListFilter struct {
	// Search performs case-insensitive substring match on searchable fields
	Search string

	// StartDate / EndDate bound the record date, inclusive on both ends
	StartDate *time.Time
	EndDate   *time.Time

	// CounterpartyID filters by linked counterparty.
	// Nil means no filter; the sentinel value 0 selects records with
	// no counterparty assigned (NULL reference).
	CounterpartyID *int64

	// EmployeeID filters by linked employee, same sentinel rules as
	// CounterpartyID. Ignored by record kinds without an employee link.
	EmployeeID *int64

	// OrderBy specifies sorting (e.g., "name", "-created_at")
	OrderBy string

	// Pagination (1-based page)
	Page     int
	PageSize int
}

// DefaultListFilter returns sensible defaults.
func DefaultListFilter() ListFilter {
	return ListFilter{
		Page:     1,
		PageSize: DefaultPageSize,
	}
}

// Normalize clamps pagination parameters into the supported range.
func (f *ListFilter) Normalize() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.PageSize <= 0 {
		f.PageSize = DefaultPageSize
	}
	if f.PageSize > MaxPageSize {
		f.PageSize = MaxPageSize
	}
}

// Offset returns the SQL offset for the current page.
func (f ListFilter) Offset() int {
	return (f.Page - 1) * f.PageSize
}

// ListResult contains paginated results.
type ListResult[T any] struct {
	Items      []T   `json:"items"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	PageSize   int   `json:"pageSize"`
	TotalPages int   `json:"totalPages"`
}

// NewListResult assembles a page of items with computed total pages.
func NewListResult[T any](items []T, total int64, page, pageSize int) ListResult[T] {
	totalPages := 0
	if pageSize > 0 {
		totalPages = int((total + int64(pageSize) - 1) / int64(pageSize))
	}
	return ListResult[T]{
		Items:      items,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}
}

// --- Hooks ---

// HookEvent represents lifecycle event type.
type HookEvent string

const (
	BeforeCreate HookEvent = "before_create"
	AfterCreate  HookEvent = "after_create"
	BeforeUpdate HookEvent = "before_update"
	AfterUpdate  HookEvent = "after_update"
	BeforeDelete HookEvent = "before_delete"
	AfterDelete  HookEvent = "after_delete"
)

// Hook is a function that runs at specific lifecycle points.
type Hook[T any] func(ctx context.Context, entity T) error

// HookRegistry stores lifecycle hooks for an entity type.
type HookRegistry[T any] struct {
	hooks map[HookEvent][]Hook[T]
}

// NewHookRegistry creates an empty hook registry.
func NewHookRegistry[T any]() *HookRegistry[T] {
	return &HookRegistry[T]{
		hooks: make(map[HookEvent][]Hook[T]),
	}
}

// On registers a hook for the specified event.
func (r *HookRegistry[T]) On(event HookEvent, hook Hook[T]) {
	r.hooks[event] = append(r.hooks[event], hook)
}

// Run executes all hooks for the specified event.
func (r *HookRegistry[T]) Run(ctx context.Context, event HookEvent, entity T) error {
	for _, hook := range r.hooks[event] {
		if err := hook(ctx, entity); err != nil {
			return err
		}
	}
	return nil
}
