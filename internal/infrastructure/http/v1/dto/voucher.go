package dto

import (
	"time"

	"merx/internal/core/types"
	"merx/internal/domain/finance/voucher"
)

// VoucherResponse is one ledger entry.
type VoucherResponse struct {
	ID          string      `json:"id"`
	Number      string      `json:"number"`
	Type        string      `json:"type"`
	Amount      types.Money `json:"amount"`
	Description string      `json:"description,omitempty"`
	OrderID     string      `json:"orderId,omitempty"`
	Date        time.Time   `json:"date"`
	CreatedAt   time.Time   `json:"createdAt"`
}

func FromVoucher(v *voucher.Voucher) *VoucherResponse {
	resp := &VoucherResponse{
		ID:          v.ID.String(),
		Number:      v.Number,
		Type:        string(v.Type),
		Amount:      v.Amount,
		Description: v.Description,
		Date:        v.Date,
		CreatedAt:   v.CreatedAt,
	}
	if v.OrderID != nil {
		resp.OrderID = v.OrderID.String()
	}
	return resp
}
