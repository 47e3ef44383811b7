package dto

import (
	"time"

	"merx/internal/core/types"
	"merx/internal/domain/fulfillment"
	"merx/internal/domain/orders"
)

// OrderLineRequest is one line of a sales or purchase order.
type OrderLineRequest struct {
	ProductID string      `json:"productId" binding:"required"`
	Quantity  int64       `json:"quantity" binding:"required,gt=0"`
	UnitPrice types.Money `json:"unitPrice"`
}

// OrderLineResponse is one line with the product name resolved.
type OrderLineResponse struct {
	LineID      string      `json:"lineId"`
	LineNo      int         `json:"lineNo"`
	ProductID   string      `json:"productId"`
	ProductName string      `json:"productName,omitempty"`
	Quantity    int64       `json:"quantity"`
	UnitPrice   types.Money `json:"unitPrice"`
	Amount      types.Money `json:"amount"`
}

func fromLines(lines []orders.Line) []OrderLineResponse {
	out := make([]OrderLineResponse, len(lines))
	for i, line := range lines {
		out[i] = OrderLineResponse{
			LineID:      line.LineID.String(),
			LineNo:      line.LineNo,
			ProductID:   line.ProductID.String(),
			ProductName: line.ProductName,
			Quantity:    line.Quantity,
			UnitPrice:   line.UnitPrice,
			Amount:      line.Amount,
		}
	}
	return out
}

// UpdateOrderStatusRequest moves an order to a new status through the
// fulfillment engine.
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// TransitionResponse is one entry of an order's status history.
type TransitionResponse struct {
	OrderNumber string    `json:"orderNumber"`
	FromStatus  string    `json:"fromStatus"`
	ToStatus    string    `json:"toStatus"`
	UserID      string    `json:"userId,omitempty"`
	At          time.Time `json:"at"`
}

// FromTransitions converts audit records to the API shape.
func FromTransitions(recs []fulfillment.TransitionRecord) []TransitionResponse {
	out := make([]TransitionResponse, len(recs))
	for i, rec := range recs {
		out[i] = TransitionResponse{
			OrderNumber: rec.OrderNumber,
			FromStatus:  string(rec.FromStatus),
			ToStatus:    string(rec.ToStatus),
			UserID:      rec.UserID,
			At:          rec.At,
		}
	}
	return out
}
