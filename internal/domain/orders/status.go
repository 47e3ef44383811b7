// Package orders holds the status machine shared by sales and purchase orders.
package orders

import (
	"merx/internal/core/apperror"
)

// Status is the lifecycle state of an order.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusShipped   Status = "SHIPPED"
	StatusDelivered Status = "DELIVERED"
	StatusCancelled Status = "CANCELLED"
)

// Valid reports whether s is a known status value.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// IsTerminal reports whether s admits no further transitions.
func (s Status) IsTerminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// transitions maps each non-terminal status to the statuses reachable from it.
// Orders may be delivered directly from PENDING: shipment tracking is optional
// for purchases and short-cycle sales.
var transitions = map[Status][]Status{
	StatusPending: {StatusShipped, StatusDelivered, StatusCancelled},
	StatusShipped: {StatusDelivered, StatusCancelled},
}

// CanTransition reports whether moving from one status to another is legal.
func CanTransition(from, to Status) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// ValidateTransition returns a typed error when the move from one status
// to another is not allowed.
func ValidateTransition(from, to Status) error {
	if !to.Valid() {
		return apperror.NewValidation("unknown order status").
			WithDetail("status", string(to))
	}
	if !CanTransition(from, to) {
		return apperror.NewInvalidTransition(string(from), string(to))
	}
	return nil
}
