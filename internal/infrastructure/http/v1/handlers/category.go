package handlers

import (
	"merx/internal/domain/catalogs/category"
	"merx/internal/infrastructure/http/v1/dto"
)

// CategoryHandler handles HTTP requests for the Category catalog.
type CategoryHandler struct {
	*CatalogHandler[*category.Category, dto.CreateCategoryRequest, dto.UpdateCategoryRequest]
}

// NewCategoryHandler creates a new category handler.
func NewCategoryHandler(base *BaseHandler, service *category.Service) *CategoryHandler {
	cfg := CatalogHandlerConfig[*category.Category, dto.CreateCategoryRequest, dto.UpdateCategoryRequest]{
		Service: service,
		MapCreateDTO: func(req dto.CreateCategoryRequest) (*category.Category, error) {
			return req.ToEntity(), nil
		},
		MapUpdateDTO: func(req dto.UpdateCategoryRequest, existing *category.Category) (*category.Category, error) {
			req.ApplyTo(existing)
			return existing, nil
		},
		MapToDTO: func(c *category.Category) any {
			return dto.FromCategory(c)
		},
	}

	return &CategoryHandler{
		CatalogHandler: NewCatalogHandler(base, cfg),
	}
}
