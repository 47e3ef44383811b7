package customer

import (
	"merx/internal/domain"
)

// Repository defines persistence for the Customer catalog.
type Repository interface {
	domain.CatalogRepository[*Customer]
}
