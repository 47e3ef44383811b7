// Package purchase provides the PurchaseOrder document.
package purchase

import (
	"context"

	"merx/internal/core/apperror"
	"merx/internal/core/entity"
	"merx/internal/core/id"
	"merx/internal/core/types"
	"merx/internal/domain/orders"
)

// PurchaseOrder represents goods ordered from a supplier. Delivering it
// receives the ordered quantities into the target warehouse.
type PurchaseOrder struct {
	entity.Document

	SupplierID id.ID `db:"supplier_id" json:"supplierId"`

	// Warehouse goods are received into
	WarehouseID id.ID `db:"warehouse_id" json:"warehouseId"`

	Status orders.Status `db:"status" json:"status"`

	// TotalAmount is fixed at creation from the lines and never recomputed.
	TotalAmount types.Money `db:"total_amount" json:"totalAmount"`

	Lines []orders.Line `db:"-" json:"lines"`
}

// NewPurchaseOrder creates a new purchase order in PENDING status.
func NewPurchaseOrder(supplierID, warehouseID id.ID) *PurchaseOrder {
	return &PurchaseOrder{
		Document:    entity.NewDocument(),
		SupplierID:  supplierID,
		WarehouseID: warehouseID,
		Status:      orders.StatusPending,
		TotalAmount: types.ZeroMoney(),
		Lines:       make([]orders.Line, 0),
	}
}

// AddLine appends a line and recalculates the stored total.
func (o *PurchaseOrder) AddLine(productID id.ID, quantity int64, unitPrice types.Money) {
	o.Lines = append(o.Lines, orders.NewLine(len(o.Lines)+1, productID, quantity, unitPrice))

	total := types.ZeroMoney()
	for _, line := range o.Lines {
		total = total.Add(line.Amount)
	}
	o.TotalAmount = total
}

// Validate implements entity.Validatable.
func (o *PurchaseOrder) Validate(ctx context.Context) error {
	if err := o.Document.Validate(ctx); err != nil {
		return err
	}

	if id.IsNil(o.SupplierID) {
		return apperror.NewValidation("supplier is required").
			WithDetail("field", "supplierId")
	}

	if id.IsNil(o.WarehouseID) {
		return apperror.NewValidation("warehouse is required").
			WithDetail("field", "warehouseId")
	}

	if !o.Status.Valid() {
		return apperror.NewValidation("unknown order status").
			WithDetail("field", "status").
			WithDetail("value", string(o.Status))
	}

	return orders.ValidateLines(ctx, o.Lines)
}
