package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"merx/internal/domain/catalogs/warehouse"
	"merx/internal/infrastructure/http/v1/dto"
)

// WarehouseHandler handles HTTP requests for the Warehouse catalog.
type WarehouseHandler struct {
	*CatalogHandler[*warehouse.Warehouse, dto.CreateWarehouseRequest, dto.UpdateWarehouseRequest]
	service *warehouse.Service
}

// NewWarehouseHandler creates a new warehouse handler.
func NewWarehouseHandler(base *BaseHandler, service *warehouse.Service) *WarehouseHandler {
	cfg := CatalogHandlerConfig[*warehouse.Warehouse, dto.CreateWarehouseRequest, dto.UpdateWarehouseRequest]{
		Service: service,
		MapCreateDTO: func(req dto.CreateWarehouseRequest) (*warehouse.Warehouse, error) {
			return req.ToEntity(), nil
		},
		MapUpdateDTO: func(req dto.UpdateWarehouseRequest, existing *warehouse.Warehouse) (*warehouse.Warehouse, error) {
			req.ApplyTo(existing)
			return existing, nil
		},
		MapToDTO: func(w *warehouse.Warehouse) any {
			return dto.FromWarehouse(w)
		},
	}

	return &WarehouseHandler{
		CatalogHandler: NewCatalogHandler(base, cfg),
		service:        service,
	}
}

// GetDefault handles GET /warehouses/default.
func (h *WarehouseHandler) GetDefault(c *gin.Context) {
	ctx := c.Request.Context()

	wh, err := h.service.GetDefault(ctx)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromWarehouse(wh))
}

// RegisterRoutes registers warehouse routes.
func (h *WarehouseHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/default", h.GetDefault)
	h.CatalogHandler.RegisterRoutes(rg)
}
