// Package types provides common type aliases and utilities.
package types

import (
	"github.com/shopspring/decimal"
)

// Quantity represents a stock quantity or quantity delta with full precision.
// Uses decimal.Decimal to avoid floating-point drift on repeated adjustments;
// maps to Postgres NUMERIC(15,4).
type Quantity = decimal.Decimal

// Money represents a monetary value with full precision.
type Money = decimal.Decimal
