package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"merx/internal/core/apperror"
	"merx/internal/domain"
	"merx/internal/domain/fulfillment"
	"merx/internal/domain/orders"
	"merx/internal/domain/orders/purchase"
	"merx/internal/infrastructure/http/v1/dto"
)

// PurchaseOrderHandler handles HTTP requests for purchase orders.
type PurchaseOrderHandler struct {
	*BaseHandler
	service *purchase.Service
	engine  *fulfillment.Engine
	history TransitionHistory
}

// NewPurchaseOrderHandler creates a new purchase order handler.
func NewPurchaseOrderHandler(base *BaseHandler, service *purchase.Service, engine *fulfillment.Engine, history TransitionHistory) *PurchaseOrderHandler {
	return &PurchaseOrderHandler{
		BaseHandler: base,
		service:     service,
		engine:      engine,
		history:     history,
	}
}

// Create handles POST /purchase-orders.
func (h *PurchaseOrderHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.CreatePurchaseOrderRequest
	if !h.BindJSON(c, &req) {
		return
	}

	order, err := req.ToEntity()
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid reference").WithDetail("error", err.Error()))
		return
	}

	if err := h.service.Create(ctx, order); err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.FromPurchaseOrder(order))
}

// Get handles GET /purchase-orders/:id.
func (h *PurchaseOrderHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()

	orderID, ok := h.ParseID(c)
	if !ok {
		return
	}

	order, err := h.service.GetByID(ctx, orderID)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromPurchaseOrder(order))
}

// Update handles PUT /purchase-orders/:id. Only pending orders can be edited.
func (h *PurchaseOrderHandler) Update(c *gin.Context) {
	ctx := c.Request.Context()

	orderID, ok := h.ParseID(c)
	if !ok {
		return
	}

	var req dto.UpdatePurchaseOrderRequest
	if !h.BindJSON(c, &req) {
		return
	}

	order, err := h.service.GetByID(ctx, orderID)
	if err != nil {
		h.Error(c, err)
		return
	}

	if err := req.ApplyTo(order); err != nil {
		h.Error(c, apperror.NewValidation("invalid reference").WithDetail("error", err.Error()))
		return
	}

	if err := h.service.Update(ctx, order); err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromPurchaseOrder(order))
}

// Delete handles DELETE /purchase-orders/:id (soft delete).
func (h *PurchaseOrderHandler) Delete(c *gin.Context) {
	ctx := c.Request.Context()

	orderID, ok := h.ParseID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(ctx, orderID); err != nil {
		h.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// UpdateStatus handles PATCH /purchase-orders/:id/status. Delivering receives
// the ordered quantities into the order's warehouse atomically with the
// status change.
func (h *PurchaseOrderHandler) UpdateStatus(c *gin.Context) {
	ctx := c.Request.Context()

	orderID, ok := h.ParseID(c)
	if !ok {
		return
	}

	var req dto.UpdateOrderStatusRequest
	if !h.BindJSON(c, &req) {
		return
	}

	target := orders.Status(strings.ToUpper(req.Status))

	order, err := h.engine.UpdatePurchaseStatus(ctx, orderID, target)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromPurchaseOrder(order))
}

// History handles GET /purchase-orders/:id/history.
func (h *PurchaseOrderHandler) History(c *gin.Context) {
	ctx := c.Request.Context()

	orderID, ok := h.ParseID(c)
	if !ok {
		return
	}

	recs, err := h.history.History(ctx, orderID)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": dto.FromTransitions(recs)})
}

// List handles GET /purchase-orders.
func (h *PurchaseOrderHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	filter := purchase.ListFilter{
		ListFilter: domain.DefaultListFilter(),
	}
	filter.Search = c.Query("search")
	filter.Limit = h.ParseIntQuery(c, "limit", 50)
	filter.Offset = h.ParseIntQuery(c, "offset", 0)
	filter.OrderBy = c.DefaultQuery("orderBy", "date DESC")
	filter.IncludeDeleted = c.Query("includeDeleted") == "true"

	filter.SupplierID = h.ParseIDQuery(c, "supplierId")
	filter.WarehouseID = h.ParseIDQuery(c, "warehouseId")
	filter.DateFrom = h.ParseTimeQuery(c, "dateFrom")
	filter.DateTo = h.ParseTimeQuery(c, "dateTo")

	if status := c.Query("status"); status != "" {
		parsed := orders.Status(strings.ToUpper(status))
		if !parsed.Valid() {
			h.Error(c, apperror.NewValidation("unknown status").WithDetail("value", status))
			return
		}
		filter.Status = &parsed
	}

	result, err := h.service.List(ctx, filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	items := make([]*dto.PurchaseOrderResponse, len(result.Items))
	for i, order := range result.Items {
		items[i] = dto.FromPurchaseOrder(order)
	}

	c.JSON(http.StatusOK, dto.ListResponse[*dto.PurchaseOrderResponse]{
		Items:      items,
		TotalCount: result.TotalCount,
		Limit:      result.Limit,
		Offset:     result.Offset,
	})
}

// RegisterRoutes registers purchase order routes.
func (h *PurchaseOrderHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.POST("", h.Create)
	rg.GET("/:id", h.Get)
	rg.PUT("/:id", h.Update)
	rg.DELETE("/:id", h.Delete)
	rg.PATCH("/:id/status", h.UpdateStatus)
	rg.GET("/:id/history", h.History)
}
