// Package voucher provides the financial voucher ledger.
// Vouchers are append-only: once written they are never updated or deleted.
package voucher

import (
	"context"
	"time"

	"merx/internal/core/apperror"
	"merx/internal/core/id"
	"merx/internal/core/types"
)

// Type distinguishes money coming in from money going out.
type Type string

const (
	TypeReceipt Type = "RECEIPT"
	TypePayment Type = "PAYMENT"
)

// Voucher is one ledger entry.
type Voucher struct {
	ID     id.ID  `db:"id" json:"id"`
	Number string `db:"number" json:"number"`

	Type   Type        `db:"type" json:"type"`
	Amount types.Money `db:"amount" json:"amount"`

	Description string `db:"description" json:"description,omitempty"`

	// OrderID links back to the originating order, when there is one.
	OrderID *id.ID `db:"order_id" json:"orderId,omitempty"`

	Date      time.Time `db:"date" json:"date"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// NewVoucher creates a ledger entry dated now.
func NewVoucher(vType Type, amount types.Money, description string) *Voucher {
	now := time.Now().UTC()
	return &Voucher{
		ID:          id.New(),
		Type:        vType,
		Amount:      amount,
		Description: description,
		Date:        now,
		CreatedAt:   now,
	}
}

// Validate checks the entry before it is written.
func (v *Voucher) Validate(ctx context.Context) error {
	if v.Type != TypeReceipt && v.Type != TypePayment {
		return apperror.NewValidation("unknown voucher type").
			WithDetail("field", "type").
			WithDetail("value", string(v.Type))
	}

	if v.Amount.IsNegative() {
		return apperror.NewValidation("amount must not be negative").
			WithDetail("field", "amount")
	}

	if v.Date.IsZero() {
		return apperror.NewValidation("date is required").
			WithDetail("field", "date")
	}

	return nil
}
