package sales

import (
	"context"
	"time"

	"merx/internal/core/id"
	"merx/internal/domain"
	"merx/internal/domain/orders"
)

// Repository defines operations for sales order documents.
type Repository interface {
	Create(ctx context.Context, order *SalesOrder) error
	GetByID(ctx context.Context, orderID id.ID) (*SalesOrder, error)
	GetByNumber(ctx context.Context, number string) (*SalesOrder, error)
	Update(ctx context.Context, order *SalesOrder) error
	SetDeletionMark(ctx context.Context, orderID id.ID, mark bool) error

	// GetForUpdate locks the order row for the duration of the transaction.
	GetForUpdate(ctx context.Context, orderID id.ID) (*SalesOrder, error)

	// UpdateStatus persists only the status column.
	UpdateStatus(ctx context.Context, orderID id.ID, status orders.Status) error

	// GetLines returns the table part with product names resolved.
	GetLines(ctx context.Context, orderID id.ID) ([]orders.Line, error)
	SaveLines(ctx context.Context, orderID id.ID, lines []orders.Line) error

	List(ctx context.Context, filter ListFilter) (domain.ListResult[*SalesOrder], error)
}

// ListFilter for filtering sales orders.
type ListFilter struct {
	domain.ListFilter

	CustomerID  *id.ID
	WarehouseID *id.ID
	Status      *orders.Status
	DateFrom    *time.Time
	DateTo      *time.Time
}
