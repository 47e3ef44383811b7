package orders

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"merx/internal/core/apperror"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name string
		from Status
		to   Status
		want bool
	}{
		{"pending to shipped", StatusPending, StatusShipped, true},
		{"pending to delivered", StatusPending, StatusDelivered, true},
		{"pending to cancelled", StatusPending, StatusCancelled, true},
		{"shipped to delivered", StatusShipped, StatusDelivered, true},
		{"shipped to cancelled", StatusShipped, StatusCancelled, true},
		{"shipped back to pending", StatusShipped, StatusPending, false},
		{"delivered is terminal", StatusDelivered, StatusShipped, false},
		{"delivered to cancelled", StatusDelivered, StatusCancelled, false},
		{"cancelled is terminal", StatusCancelled, StatusPending, false},
		{"no self transition", StatusPending, StatusPending, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanTransition(tt.from, tt.to))
		})
	}
}

func TestValidateTransition_InvalidStatus(t *testing.T) {
	err := ValidateTransition(StatusPending, Status("REFUNDED"))
	require.Error(t, err)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeValidation, appErr.Code)
}

func TestValidateTransition_Terminal(t *testing.T) {
	err := ValidateTransition(StatusDelivered, StatusShipped)
	require.Error(t, err)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeInvalidTransition, appErr.Code)
	assert.Equal(t, "DELIVERED", appErr.Details["from"])
	assert.Equal(t, "SHIPPED", appErr.Details["to"])
}

func TestIsTerminal(t *testing.T) {
	assert.False(t, StatusPending.IsTerminal())
	assert.False(t, StatusShipped.IsTerminal())
	assert.True(t, StatusDelivered.IsTerminal())
	assert.True(t, StatusCancelled.IsTerminal())
}
