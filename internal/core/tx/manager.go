// Package tx provides transaction management abstractions.
// Domain services depend on these interfaces, never on a concrete database;
// the pgx implementation lives in infrastructure/storage/postgres.
package tx

import (
	"context"
)

// Manager defines the contract for transaction management.
type Manager interface {
	// RunInTransaction executes fn within a database transaction.
	// If fn returns an error, the transaction is rolled back; otherwise it
	// is committed. Nested calls reuse the transaction already in context,
	// so a status transition and all of its side effects commit or abort
	// as one unit.
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// ReadOnlyManager extends Manager with read-only transaction support.
// Use for report queries that must see a consistent snapshot.
type ReadOnlyManager interface {
	Manager

	// ReadOnly executes fn in a read-only transaction.
	ReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}
