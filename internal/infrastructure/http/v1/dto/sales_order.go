package dto

import (
	"time"

	"merx/internal/core/id"
	"merx/internal/core/types"
	"merx/internal/domain/orders/sales"
)

// --- Request DTOs ---

type CreateSalesOrderRequest struct {
	Number      string             `json:"number,omitempty"`
	Date        *time.Time         `json:"date,omitempty"`
	CustomerID  string             `json:"customerId" binding:"required"`
	WarehouseID string             `json:"warehouseId" binding:"required"`
	Comment     string             `json:"comment,omitempty"`
	Lines       []OrderLineRequest `json:"lines" binding:"required,min=1,dive"`
}

func (r *CreateSalesOrderRequest) ToEntity() (*sales.SalesOrder, error) {
	customerID, err := id.Parse(r.CustomerID)
	if err != nil {
		return nil, err
	}
	warehouseID, err := id.Parse(r.WarehouseID)
	if err != nil {
		return nil, err
	}

	order := sales.NewSalesOrder(customerID, warehouseID)
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

type UpdateSalesOrderRequest struct {
	Date        *time.Time         `json:"date,omitempty"`
	CustomerID  *string            `json:"customerId,omitempty"`
	WarehouseID *string            `json:"warehouseId,omitempty"`
	Comment     *string            `json:"comment,omitempty"`
	Lines       []OrderLineRequest `json:"lines,omitempty"`
}

func (r *UpdateSalesOrderRequest) ApplyTo(order *sales.SalesOrder) error {
	if r.Date != nil {
		order.Date = *r.Date
	}
	if r.CustomerID != nil {
		customerID, err := id.Parse(*r.CustomerID)
		if err != nil {
			return err
		}
		order.CustomerID = customerID
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

type SalesOrderResponse struct {
	ID           string              `json:"id"`
	Number       string              `json:"number"`
	Date         time.Time           `json:"date"`
	CustomerID   string              `json:"customerId"`
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

func FromSalesOrder(order *sales.SalesOrder) *SalesOrderResponse {
	return &SalesOrderResponse{
		ID:           order.ID.String(),
		Number:       order.Number,
		Date:         order.Date,
		CustomerID:   order.CustomerID.String(),
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
