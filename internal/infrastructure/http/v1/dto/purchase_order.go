package dto

import (
	"time"

	"merx/internal/core/id"
	"merx/internal/core/types"
	"merx/internal/domain/orders/purchase"
)

// --- Request DTOs ---

type CreatePurchaseOrderRequest struct {
	Number      string             `json:"number,omitempty"`
	Date        *time.Time         `json:"date,omitempty"`
	SupplierID  string             `json:"supplierId" binding:"required"`
	WarehouseID string             `json:"warehouseId" binding:"required"`
	Comment     string             `json:"comment,omitempty"`
	Lines       []OrderLineRequest `json:"lines" binding:"required,min=1,dive"`
}

func (r *CreatePurchaseOrderRequest) ToEntity() (*purchase.PurchaseOrder, error) {
	supplierID, err := id.Parse(r.SupplierID)
	if err != nil {
		return nil, err
	}
	warehouseID, err := id.Parse(r.WarehouseID)
	if err != nil {
		return nil, err
	}

	order := purchase.NewPurchaseOrder(supplierID, warehouseID)
	order.Number = r.Number
	order.Comment = r.Comment
	if r.Date != nil {
		order.Date = *r.Date
	}

	for _, line := range r.Lines {
		productID, err := id.Parse(line.ProductID)
		if err != nil {
			return nil, err
		}
		order.AddLine(productID, line.Quantity, line.UnitPrice)
	}

	return order, nil
}

type UpdatePurchaseOrderRequest struct {
	Date        *time.Time         `json:"date,omitempty"`
	SupplierID  *string            `json:"supplierId,omitempty"`
	WarehouseID *string            `json:"warehouseId,omitempty"`
	Comment     *string            `json:"comment,omitempty"`
	Lines       []OrderLineRequest `json:"lines,omitempty"`
}

func (r *UpdatePurchaseOrderRequest) ApplyTo(order *purchase.PurchaseOrder) error {
	if r.Date != nil {
		order.Date = *r.Date
	}
	if r.SupplierID != nil {
		supplierID, err := id.Parse(*r.SupplierID)
		if err != nil {
			return err
		}
		order.SupplierID = supplierID
	}
	if r.WarehouseID != nil {
		warehouseID, err := id.Parse(*r.WarehouseID)
		if err != nil {
			return err
		}
		order.WarehouseID = warehouseID
	}
	if r.Comment != nil {
		order.Comment = *r.Comment
	}

	if r.Lines != nil {
		order.Lines = order.Lines[:0]
		for _, line := range r.Lines {
			productID, err := id.Parse(line.ProductID)
			if err != nil {
				return err
			}
			order.AddLine(productID, line.Quantity, line.UnitPrice)
		}
	}

	return nil
}

// --- Response DTOs ---

type PurchaseOrderResponse struct {
	ID           string              `json:"id"`
	Number       string              `json:"number"`
	Date         time.Time           `json:"date"`
	SupplierID   string              `json:"supplierId"`
	WarehouseID  string              `json:"warehouseId"`
	Status       string              `json:"status"`
	TotalAmount  types.Money         `json:"totalAmount"`
	Comment      string              `json:"comment,omitempty"`
	Lines        []OrderLineResponse `json:"lines,omitempty"`
	DeletionMark bool                `json:"deletionMark,omitempty"`
	Version      int                 `json:"version"`
	CreatedAt    time.Time           `json:"createdAt"`
	UpdatedAt    time.Time           `json:"updatedAt"`
}

func FromPurchaseOrder(order *purchase.PurchaseOrder) *PurchaseOrderResponse {
	return &PurchaseOrderResponse{
		ID:           order.ID.String(),
		Number:       order.Number,
		Date:         order.Date,
		SupplierID:   order.SupplierID.String(),
		WarehouseID:  order.WarehouseID.String(),
		Status:       string(order.Status),
		TotalAmount:  order.TotalAmount,
		Comment:      order.Comment,
		Lines:        fromLines(order.Lines),
		DeletionMark: order.DeletionMark,
		Version:      order.Version,
		CreatedAt:    order.CreatedAt,
		UpdatedAt:    order.UpdatedAt,
	}
}
