package orders

import (
	"context"

	"merx/internal/core/apperror"
	"merx/internal/core/id"
	"merx/internal/core/types"
)

// Line is one ordered item. The unit price is captured at order time and
// stays decoupled from the product's current price.
type Line struct {
	LineID id.ID `db:"line_id" json:"lineId"`
	LineNo int   `db:"line_no" json:"lineNo"`

	ProductID id.ID `db:"product_id" json:"productId"`

	// ProductName is resolved on read for display and error messages,
	// never persisted on the line.
	ProductName string `db:"product_name" json:"productName,omitempty"`

	Quantity  int64       `db:"quantity" json:"quantity"`
	UnitPrice types.Money `db:"unit_price" json:"unitPrice"`
	Amount    types.Money `db:"amount" json:"amount"`
}

// NewLine builds a line with its amount computed as quantity times price.
func NewLine(lineNo int, productID id.ID, quantity int64, unitPrice types.Money) Line {
	return Line{
		LineID:    id.New(),
		LineNo:    lineNo,
		ProductID: productID,
		Quantity:  quantity,
		UnitPrice: unitPrice,
		Amount:    types.MulQty(unitPrice, quantity),
	}
}

// ValidateLines checks the table part shared by both order kinds.
func ValidateLines(ctx context.Context, lines []Line) error {
	if len(lines) == 0 {
		return apperror.NewValidation("at least one line is required").
			WithDetail("field", "lines")
	}

	for i, line := range lines {
		if id.IsNil(line.ProductID) {
			return apperror.NewValidation("product is required").
				WithDetail("field", "lines").
				WithDetail("lineNo", i+1)
		}
		if line.Quantity <= 0 {
			return apperror.NewValidation("quantity must be positive").
				WithDetail("field", "lines").
				WithDetail("lineNo", i+1)
		}
		if line.UnitPrice.IsNegative() {
			return apperror.NewValidation("unit price must not be negative").
				WithDetail("field", "lines").
				WithDetail("lineNo", i+1)
		}
	}

	return nil
}
