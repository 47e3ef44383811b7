package warehouse

import (
	"context"

	"merx/internal/domain"
)

// Repository defines persistence for the Warehouse catalog.
type Repository interface {
	domain.CatalogRepository[*Warehouse]

	// GetDefault retrieves the default warehouse, if one is marked.
	GetDefault(ctx context.Context) (*Warehouse, error)

	// ClearDefault clears the default flag on all warehouses (before setting a new default).
	ClearDefault(ctx context.Context) error
}
