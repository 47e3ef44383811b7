package supplier

import (
	"merx/internal/domain"
)

// Repository defines persistence for the Supplier catalog.
type Repository interface {
	domain.CatalogRepository[*Supplier]
}
