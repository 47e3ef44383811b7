package purchase

import (
	"context"
	"time"

	"merx/internal/core/id"
	"merx/internal/domain"
	"merx/internal/domain/orders"
)

// Repository defines operations for purchase order documents.
type Repository interface {
	Create(ctx context.Context, order *PurchaseOrder) error
	GetByID(ctx context.Context, orderID id.ID) (*PurchaseOrder, error)
	GetByNumber(ctx context.Context, number string) (*PurchaseOrder, error)
	Update(ctx context.Context, order *PurchaseOrder) error
	SetDeletionMark(ctx context.Context, orderID id.ID, mark bool) error

	GetForUpdate(ctx context.Context, orderID id.ID) (*PurchaseOrder, error)
	UpdateStatus(ctx context.Context, orderID id.ID, status orders.Status) error

	GetLines(ctx context.Context, orderID id.ID) ([]orders.Line, error)
	SaveLines(ctx context.Context, orderID id.ID, lines []orders.Line) error

	List(ctx context.Context, filter ListFilter) (domain.ListResult[*PurchaseOrder], error)
}

// ListFilter for filtering purchase orders.
type ListFilter struct {
	domain.ListFilter

	SupplierID  *id.ID
	WarehouseID *id.ID
	Status      *orders.Status
	DateFrom    *time.Time
	DateTo      *time.Time
}
