// Package sales provides the SalesOrder document.
// A sales order records goods promised to a customer; its status drives
// stock issue and receipt-voucher creation through the fulfillment engine.
package sales

import (
	"context"

	"merx/internal/core/apperror"
	"merx/internal/core/entity"
	"merx/internal/core/id"
	"merx/internal/core/types"
	"merx/internal/domain/orders"
)

// SalesOrder represents a customer order.
type SalesOrder struct {
	entity.Document

	// Customer reference
	CustomerID id.ID `db:"customer_id" json:"customerId"`

	// Warehouse goods are issued from
	WarehouseID id.ID `db:"warehouse_id" json:"warehouseId"`

	Status orders.Status `db:"status" json:"status"`

	// TotalAmount is fixed at creation from the lines and never recomputed.
	TotalAmount types.Money `db:"total_amount" json:"totalAmount"`

	// Table part: ordered goods
	Lines []orders.Line `db:"-" json:"lines"`
}

// NewSalesOrder creates a new sales order in PENDING status.
func NewSalesOrder(customerID, warehouseID id.ID) *SalesOrder {
	return &SalesOrder{
		Document:    entity.NewDocument(),
		CustomerID:  customerID,
		WarehouseID: warehouseID,
		Status:      orders.StatusPending,
		TotalAmount: types.ZeroMoney(),
		Lines:       make([]orders.Line, 0),
	}
}

// AddLine appends a line and recalculates the stored total.
func (o *SalesOrder) AddLine(productID id.ID, quantity int64, unitPrice types.Money) {
	o.Lines = append(o.Lines, orders.NewLine(len(o.Lines)+1, productID, quantity, unitPrice))
	o.recalculateTotal()
}

func (o *SalesOrder) recalculateTotal() {
	total := types.ZeroMoney()
	for _, line := range o.Lines {
		total = total.Add(line.Amount)
	}
	o.TotalAmount = total
}

// Validate implements entity.Validatable.
func (o *SalesOrder) Validate(ctx context.Context) error {
	if err := o.Document.Validate(ctx); err != nil {
		return err
	}

	if id.IsNil(o.CustomerID) {
		return apperror.NewValidation("customer is required").
			WithDetail("field", "customerId")
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
