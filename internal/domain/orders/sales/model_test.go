package sales

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"merx/internal/core/apperror"
	"merx/internal/core/id"
	"merx/internal/core/types"
	"merx/internal/domain/orders"
)

func TestNewSalesOrder(t *testing.T) {
	customerID := id.New()
	warehouseID := id.New()

	order := NewSalesOrder(customerID, warehouseID)

	assert.False(t, id.IsNil(order.ID))
	assert.Equal(t, customerID, order.CustomerID)
	assert.Equal(t, warehouseID, order.WarehouseID)
	assert.Equal(t, orders.StatusPending, order.Status)
	assert.True(t, order.TotalAmount.IsZero())
	assert.Empty(t, order.Lines)
}

func TestAddLine(t *testing.T) {
	order := NewSalesOrder(id.New(), id.New())

	order.AddLine(id.New(), 2, types.MustMoney("8999.00"))
	order.AddLine(id.New(), 1, types.MustMoney("9999.00"))

	require.Len(t, order.Lines, 2)
	assert.Equal(t, 1, order.Lines[0].LineNo)
	assert.Equal(t, 2, order.Lines[1].LineNo)
	assert.True(t, order.Lines[0].Amount.Equal(types.MustMoney("17998.00")))
	assert.True(t, order.TotalAmount.Equal(types.MustMoney("27997.00")))
}

func TestSalesOrderValidate(t *testing.T) {
	ctx := context.Background()

	valid := func() *SalesOrder {
		order := NewSalesOrder(id.New(), id.New())
		order.AddLine(id.New(), 1, types.MustMoney("10.00"))
		return order
	}

	t.Run("valid order passes", func(t *testing.T) {
		assert.NoError(t, valid().Validate(ctx))
	})

	t.Run("missing customer", func(t *testing.T) {
		order := valid()
		order.CustomerID = id.ID{}

		err := order.Validate(ctx)

		require.Error(t, err)
		appErr, ok := apperror.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, apperror.CodeValidation, appErr.Code)
		assert.Equal(t, "customerId", appErr.Details["field"])
	})

	t.Run("missing warehouse", func(t *testing.T) {
		order := valid()
		order.WarehouseID = id.ID{}

		err := order.Validate(ctx)

		require.Error(t, err)
		appErr, ok := apperror.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, "warehouseId", appErr.Details["field"])
	})

	t.Run("no lines", func(t *testing.T) {
		order := NewSalesOrder(id.New(), id.New())

		err := order.Validate(ctx)

		require.Error(t, err)
		appErr, ok := apperror.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, "lines", appErr.Details["field"])
	})

	t.Run("unknown status", func(t *testing.T) {
		order := valid()
		order.Status = orders.Status("ARCHIVED")

		err := order.Validate(ctx)

		require.Error(t, err)
		appErr, ok := apperror.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, "status", appErr.Details["field"])
	})

	t.Run("zero quantity line", func(t *testing.T) {
		order := valid()
		order.Lines[0].Quantity = 0

		err := order.Validate(ctx)

		require.Error(t, err)
		appErr, ok := apperror.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, 1, appErr.Details["lineNo"])
	})
}
