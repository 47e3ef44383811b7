package voucher

import (
	"context"
	"time"

	"merx/internal/core/id"
	"merx/internal/domain"
)

// Repository defines the append-only voucher store.
type Repository interface {
	Create(ctx context.Context, v *Voucher) error
	GetByID(ctx context.Context, voucherID id.ID) (*Voucher, error)
	List(ctx context.Context, filter ListFilter) (domain.ListResult[*Voucher], error)
}

// ListFilter for filtering vouchers.
type ListFilter struct {
	domain.ListFilter

	Type     *Type
	OrderID  *id.ID
	DateFrom *time.Time
	DateTo   *time.Time
}
