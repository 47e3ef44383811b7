package category

import (
	"merx/internal/domain"
)

// Repository defines persistence for the Category catalog.
type Repository interface {
	domain.CatalogRepository[*Category]
}
