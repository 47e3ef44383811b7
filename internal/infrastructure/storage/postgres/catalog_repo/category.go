package catalog_repo

import (
	"merx/internal/domain/catalogs/category"
	"merx/internal/infrastructure/storage/postgres"
)

const categoryTable = "cat_categories"

// CategoryRepo implements category.Repository.
type CategoryRepo struct {
	*BaseCatalogRepo[*category.Category]
}

// NewCategoryRepo creates a new category repository.
func NewCategoryRepo(txm *postgres.TxManager) *CategoryRepo {
	return &CategoryRepo{
		BaseCatalogRepo: NewBaseCatalogRepo(
			txm,
			categoryTable,
			postgres.ExtractDBColumns[category.Category](),
			func() *category.Category { return &category.Category{} },
		),
	}
}
