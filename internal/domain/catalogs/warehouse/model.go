// Package warehouse provides the Warehouse catalog.
// Warehouses are the physical locations stock balances are kept against.
package warehouse

import (
	"context"

	"merx/internal/core/entity"
)

// Warehouse represents a storage location for goods.
type Warehouse struct {
	entity.Catalog

	// Location is the physical address or site name
	Location string `db:"location" json:"location,omitempty"`

	// IsActive indicates if warehouse is operational
	IsActive bool `db:"is_active" json:"isActive"`

	// IsDefault indicates if this is the default warehouse for new orders
	IsDefault bool `db:"is_default" json:"isDefault"`
}

// NewWarehouse creates a new Warehouse with required fields.
func NewWarehouse(code, name string) *Warehouse {
	return &Warehouse{
		Catalog:  entity.NewCatalog(code, name),
		IsActive: true,
	}
}

// Validate implements entity.Validatable.
func (w *Warehouse) Validate(ctx context.Context) error {
	return w.Catalog.Validate(ctx)
}

// CanHoldStock returns true if the warehouse can take part in stock movements.
func (w *Warehouse) CanHoldStock() bool {
	return w.IsActive && !w.DeletionMark
}
