package stock

import (
	"context"

	"merx/internal/core/id"
)

// Repository defines operations on the stock balance register.
// Mutating operations are expected to run inside a transaction opened by
// the caller.
type Repository interface {
	// GetBalance returns the balance row, or NotFound if none exists.
	GetBalance(ctx context.Context, warehouseID, productID id.ID) (Balance, error)

	// GetBalanceForUpdate locks the balance row for the transaction.
	// Returns NotFound if no row exists.
	GetBalanceForUpdate(ctx context.Context, warehouseID, productID id.ID) (Balance, error)

	// Decrement subtracts quantity from an existing balance row.
	Decrement(ctx context.Context, warehouseID, productID id.ID, quantity int64) error

	// UpsertIncrement adds quantity to the balance row, creating it when absent.
	UpsertIncrement(ctx context.Context, warehouseID, productID id.ID, quantity int64) error

	// SetQuantity overwrites the balance row, creating it when absent.
	SetQuantity(ctx context.Context, warehouseID, productID id.ID, quantity int64) error

	// List returns balances with product and warehouse names resolved.
	List(ctx context.Context, filter BalanceFilter) ([]Balance, error)
}

// BalanceFilter narrows List results.
type BalanceFilter struct {
	WarehouseID *id.ID
	ProductID   *id.ID
	Search      string
	ExcludeZero bool
	Limit       int
	Offset      int
}
