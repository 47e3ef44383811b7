package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"merx/internal/core/apperror"
	"merx/internal/core/id"
	"merx/internal/domain"
	"merx/internal/domain/catalogs/product"
	"merx/internal/infrastructure/http/v1/dto"
)

// ProductHandler handles HTTP requests for the Product catalog.
type ProductHandler struct {
	*CatalogHandler[*product.Product, dto.CreateProductRequest, dto.UpdateProductRequest]
	service *product.Service
}

// NewProductHandler creates a new product handler.
func NewProductHandler(base *BaseHandler, service *product.Service) *ProductHandler {
	cfg := CatalogHandlerConfig[*product.Product, dto.CreateProductRequest, dto.UpdateProductRequest]{
		Service: service,
		MapCreateDTO: func(req dto.CreateProductRequest) (*product.Product, error) {
			return req.ToEntity()
		},
		MapUpdateDTO: func(req dto.UpdateProductRequest, existing *product.Product) (*product.Product, error) {
			if err := req.ApplyTo(existing); err != nil {
				return nil, err
			}
			return existing, nil
		},
		MapToDTO: func(p *product.Product) any {
			return dto.FromProduct(p)
		},
	}

	return &ProductHandler{
		CatalogHandler: NewCatalogHandler(base, cfg),
		service:        service,
	}
}

// ListByCategory handles GET /products/by-category/:categoryId.
func (h *ProductHandler) ListByCategory(c *gin.Context) {
	ctx := c.Request.Context()

	categoryID, err := id.Parse(c.Param("categoryId"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid categoryId format"))
		return
	}

	filter := domain.DefaultListFilter()
	filter.Search = c.Query("search")
	filter.Limit = h.ParseIntQuery(c, "limit", 50)
	filter.Offset = h.ParseIntQuery(c, "offset", 0)

	result, err := h.service.ListByCategory(ctx, categoryID, filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	items := make([]*dto.ProductResponse, len(result.Items))
	for i, p := range result.Items {
		items[i] = dto.FromProduct(p)
	}

	c.JSON(http.StatusOK, dto.ListResponse[*dto.ProductResponse]{
		Items:      items,
		TotalCount: result.TotalCount,
		Limit:      result.Limit,
		Offset:     result.Offset,
	})
}

// RegisterRoutes registers product routes.
func (h *ProductHandler) RegisterRoutes(rg *gin.RouterGroup) {
	h.CatalogHandler.RegisterRoutes(rg)
	rg.GET("/by-category/:categoryId", h.ListByCategory)
}
