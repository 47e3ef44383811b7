package voucher

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"merx/internal/core/apperror"
	"merx/internal/core/id"
	"merx/internal/core/types"
)

func TestNewVoucher(t *testing.T) {
	v := NewVoucher(TypeReceipt, types.MustMoney("150.50"), "Sales Payment for Order SO-2026-00001")

	assert.False(t, id.IsNil(v.ID))
	assert.Equal(t, TypeReceipt, v.Type)
	assert.True(t, v.Amount.Equal(types.MustMoney("150.50")))
	assert.False(t, v.Date.IsZero())
	assert.Nil(t, v.OrderID)
	assert.Empty(t, v.Number, "number is assigned on save")
}

func TestVoucherValidate(t *testing.T) {
	ctx := context.Background()

	t.Run("valid receipt passes", func(t *testing.T) {
		v := NewVoucher(TypeReceipt, types.MustMoney("99.99"), "")
		assert.NoError(t, v.Validate(ctx))
	})

	t.Run("zero amount is allowed", func(t *testing.T) {
		v := NewVoucher(TypePayment, types.ZeroMoney(), "")
		assert.NoError(t, v.Validate(ctx))
	})

	t.Run("unknown type", func(t *testing.T) {
		v := NewVoucher(Type("TRANSFER"), types.MustMoney("1.00"), "")

		err := v.Validate(ctx)

		require.Error(t, err)
		appErr, ok := apperror.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, apperror.CodeValidation, appErr.Code)
		assert.Equal(t, "type", appErr.Details["field"])
	})

	t.Run("negative amount", func(t *testing.T) {
		v := NewVoucher(TypeReceipt, types.MustMoney("-0.01"), "")

		err := v.Validate(ctx)

		require.Error(t, err)
		appErr, ok := apperror.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, "amount", appErr.Details["field"])
	})

	t.Run("zero date", func(t *testing.T) {
		v := NewVoucher(TypeReceipt, types.MustMoney("1.00"), "")
		v.Date = time.Time{}

		err := v.Validate(ctx)

		require.Error(t, err)
		appErr, ok := apperror.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, "date", appErr.Details["field"])
	})
}
