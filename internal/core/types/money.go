// Package types provides common value types shared by the domain layer.
package types

import (
	"github.com/shopspring/decimal"
)

// Money represents a monetary value with full decimal precision.
// Order totals, line prices and voucher amounts all use Money to avoid
// floating-point drift in the ledger.
type Money = decimal.Decimal

// NewMoneyFromString creates a Money value from its decimal string form.
// This is the preferred constructor for monetary values.
func NewMoneyFromString(s string) (Money, error) {
	return decimal.NewFromString(s)
}

// MustMoney creates a Money value from a string, panics on error.
// Use only for constants and tests.
func MustMoney(s string) Money {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// NewMoneyFromFloat creates a Money value from a float.
// Prefer NewMoneyFromString where the exact value matters.
func NewMoneyFromFloat(f float64) Money {
	return decimal.NewFromFloat(f)
}

// ZeroMoney returns the zero Money value.
func ZeroMoney() Money {
	return decimal.Zero
}

// MulQty multiplies a unit price by an integer quantity.
// Line amounts are always price times quantity in whole units.
func MulQty(price Money, qty int64) Money {
	return price.Mul(decimal.NewFromInt(qty))
}
