// Package tx defines the transaction boundary contract used by domain services.
// The PostgreSQL implementation lives in internal/infrastructure/storage/postgres.
package tx

import "context"

// Manager runs functions within a database transaction.
// The transaction travels in the context; repositories pick it up from there,
// so a service can compose several repository calls into one atomic unit.
type Manager interface {
	// RunInTransaction executes fn within a transaction.
	// If a transaction already exists in ctx it is reused.
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error

	// ReadOnly executes fn in a read-only transaction.
	ReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}
