package dto

import (
	"merx/internal/domain/catalogs/category"
)

type CreateCategoryRequest struct {
	Code string `json:"code,omitempty"`
	Name string `json:"name" binding:"required"`
}

func (r *CreateCategoryRequest) ToEntity() *category.Category {
	return category.NewCategory(r.Code, r.Name)
}

type UpdateCategoryRequest struct {
	Code *string `json:"code,omitempty"`
	Name *string `json:"name,omitempty"`
}

func (r *UpdateCategoryRequest) ApplyTo(c *category.Category) {
	if r.Code != nil {
		c.Code = *r.Code
	}
	if r.Name != nil {
		c.Name = *r.Name
	}
}

type CategoryResponse struct {
	CatalogResponse
}

func FromCategory(c *category.Category) *CategoryResponse {
	return &CategoryResponse{CatalogResponse: FromCatalog(c.Catalog)}
}
