package product

import (
	"context"

	"merx/internal/core/id"
	"merx/internal/domain"
)

// Repository defines persistence for the Product catalog.
type Repository interface {
	domain.CatalogRepository[*Product]

	// ListByCategory retrieves products in a category.
	ListByCategory(ctx context.Context, categoryID id.ID, filter domain.ListFilter) (domain.ListResult[*Product], error)
}
