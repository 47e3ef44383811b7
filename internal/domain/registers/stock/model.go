// Package stock provides the stock balance register.
// Balances are kept per (warehouse, product) pair and are mutated only by
// the fulfillment engine and by explicit inventory adjustments.
package stock

import (
	"time"

	"merx/internal/core/id"
)

// Balance is the on-hand quantity of one product in one warehouse.
// Quantity never goes negative.
type Balance struct {
	WarehouseID id.ID `db:"warehouse_id" json:"warehouseId"`
	ProductID   id.ID `db:"product_id" json:"productId"`

	Quantity int64 `db:"quantity" json:"quantity"`

	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`

	// Resolved on read for display
	WarehouseName string `db:"warehouse_name" json:"warehouseName,omitempty"`
	ProductName   string `db:"product_name" json:"productName,omitempty"`
	ProductCode   string `db:"product_code" json:"productCode,omitempty"`
	ProductUnit   string `db:"product_unit" json:"productUnit,omitempty"`
}
