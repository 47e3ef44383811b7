// Package category provides the product category catalog.
package category

import (
	"merx/internal/core/entity"
)

// Category groups products for navigation and reporting.
type Category struct {
	entity.Catalog
}

// NewCategory creates a new Category.
func NewCategory(code, name string) *Category {
	return &Category{
		Catalog: entity.NewCatalog(code, name),
	}
}
