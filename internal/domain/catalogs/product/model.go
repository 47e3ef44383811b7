// Package product provides the Product catalog.
// A product's code doubles as its SKU; the catalog price is the current list
// price and is decoupled from prices captured on order lines.
package product

import (
	"context"

	"merx/internal/core/apperror"
	"merx/internal/core/entity"
	"merx/internal/core/id"
	"merx/internal/core/types"
)

// Product represents a sellable or purchasable item.
type Product struct {
	entity.Catalog

	// Unit is the unit of measure (pcs, kg, box)
	Unit string `db:"unit" json:"unit"`

	// Price is the current list price
	Price types.Money `db:"price" json:"price"`

	// CategoryID references the owning category
	CategoryID id.ID `db:"category_id" json:"categoryId"`
}

// NewProduct creates a new Product.
func NewProduct(sku, name, unit string, price types.Money, categoryID id.ID) *Product {
	return &Product{
		Catalog:    entity.NewCatalog(sku, name),
		Unit:       unit,
		Price:      price,
		CategoryID: categoryID,
	}
}

// Validate implements entity.Validatable.
func (p *Product) Validate(ctx context.Context) error {
	if err := p.Catalog.Validate(ctx); err != nil {
		return err
	}

	if p.Unit == "" {
		return apperror.NewValidation("unit is required").
			WithDetail("field", "unit")
	}

	if p.Price.IsNegative() {
		return apperror.NewValidation("price must not be negative").
			WithDetail("field", "price")
	}

	if id.IsNil(p.CategoryID) {
		return apperror.NewValidation("category is required").
			WithDetail("field", "categoryId")
	}

	return nil
}
