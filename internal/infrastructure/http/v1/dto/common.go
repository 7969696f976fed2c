// Package dto provides Data Transfer Objects for API requests and
// responses.
package dto

import (
	"time"

	"agrostock/internal/domain"
)

// Envelope is the uniform response wrapper. Every endpoint returns it,
// success and failure alike, so clients can branch on isSuccess.
type Envelope struct {
	IsSuccess bool           `json:"isSuccess"`
	Data      any            `json:"data,omitempty"`
	Message   string         `json:"message,omitempty"`
	ErrorCode string         `json:"errorCode,omitempty"`
	Details   map[string]any `json:"details,omitempty"`
}

// OK wraps data in a success envelope.
func OK(data any) Envelope {
	return Envelope{IsSuccess: true, Data: data}
}

// OKMessage wraps a confirmation message in a success envelope.
func OKMessage(message string) Envelope {
	return Envelope{IsSuccess: true, Message: message}
}

// ListQuery contains the common list parameters bound from the query
// string. Dates are calendar days, inclusive on both ends. The
// counterparty filter is parsed separately because its parameter name
// differs per entity (supplier_id, customer_id).
type ListQuery struct {
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
	Search   string `form:"search"`
	OrderBy  string `form:"order_by"`

	StartDate *time.Time `form:"start_date" time_format:"2006-01-02"`
	EndDate   *time.Time `form:"end_date" time_format:"2006-01-02"`
}

// ToFilter converts query parameters to a normalized domain filter.
func (q ListQuery) ToFilter() domain.ListFilter {
	f := domain.ListFilter{
		Search:    q.Search,
		OrderBy:   q.OrderBy,
		StartDate: q.StartDate,
		EndDate:   q.EndDate,
		Page:      q.Page,
		PageSize:  q.PageSize,
	}
	if f.EndDate != nil {
		// Push the end bound to the last instant of the day so the
		// whole calendar day is included.
		end := f.EndDate.Add(24*time.Hour - time.Nanosecond)
		f.EndDate = &end
	}
	f.Normalize()
	return f
}

// IDResponse carries the ID of a newly created row.
type IDResponse struct {
	ID int64 `json:"id"`
}
