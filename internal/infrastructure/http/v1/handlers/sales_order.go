package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"merx/internal/core/apperror"
	"merx/internal/core/id"
	"merx/internal/domain"
	"merx/internal/domain/fulfillment"
	"merx/internal/domain/orders"
	"merx/internal/domain/orders/sales"
	"merx/internal/infrastructure/http/v1/dto"
)

// TransitionHistory reads the audit trail of committed transitions.
type TransitionHistory interface {
	History(ctx context.Context, orderID id.ID) ([]fulfillment.TransitionRecord, error)
}

// SalesOrderHandler handles HTTP requests for sales orders. CRUD goes to the
// order service; status transitions go to the fulfillment engine.
type SalesOrderHandler struct {
	*BaseHandler
	service *sales.Service
	engine  *fulfillment.Engine
	history TransitionHistory
}

// NewSalesOrderHandler creates a new sales order handler.
func NewSalesOrderHandler(base *BaseHandler, service *sales.Service, engine *fulfillment.Engine, history TransitionHistory) *SalesOrderHandler {
	return &SalesOrderHandler{
		BaseHandler: base,
		service:     service,
		engine:      engine,
		history:     history,
	}
}

// Create handles POST /sales-orders.
func (h *SalesOrderHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.CreateSalesOrderRequest
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

	c.JSON(http.StatusCreated, dto.FromSalesOrder(order))
}

// Get handles GET /sales-orders/:id.
func (h *SalesOrderHandler) Get(c *gin.Context) {
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

	c.JSON(http.StatusOK, dto.FromSalesOrder(order))
}

// Update handles PUT /sales-orders/:id. Only pending orders can be edited.
func (h *SalesOrderHandler) Update(c *gin.Context) {
	ctx := c.Request.Context()

	orderID, ok := h.ParseID(c)
	if !ok {
		return
	}

	var req dto.UpdateSalesOrderRequest
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

	c.JSON(http.StatusOK, dto.FromSalesOrder(order))
}

// Delete handles DELETE /sales-orders/:id (soft delete).
func (h *SalesOrderHandler) Delete(c *gin.Context) {
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

// UpdateStatus handles PATCH /sales-orders/:id/status. The transition runs
// through the fulfillment engine: stock and voucher side effects commit with
// the status change or not at all.
func (h *SalesOrderHandler) UpdateStatus(c *gin.Context) {
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

	order, err := h.engine.UpdateSalesStatus(ctx, orderID, target)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromSalesOrder(order))
}

// History handles GET /sales-orders/:id/history - the committed transitions
// of one order, newest first.
func (h *SalesOrderHandler) History(c *gin.Context) {
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

// List handles GET /sales-orders.
func (h *SalesOrderHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	filter := sales.ListFilter{
		ListFilter: domain.DefaultListFilter(),
	}
	filter.Search = c.Query("search")
	filter.Limit = h.ParseIntQuery(c, "limit", 50)
	filter.Offset = h.ParseIntQuery(c, "offset", 0)
	filter.OrderBy = c.DefaultQuery("orderBy", "date DESC")
	filter.IncludeDeleted = c.Query("includeDeleted") == "true"

	filter.CustomerID = h.ParseIDQuery(c, "customerId")
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

	items := make([]*dto.SalesOrderResponse, len(result.Items))
	for i, order := range result.Items {
		items[i] = dto.FromSalesOrder(order)
	}

	c.JSON(http.StatusOK, dto.ListResponse[*dto.SalesOrderResponse]{
		Items:      items,
		TotalCount: result.TotalCount,
		Limit:      result.Limit,
		Offset:     result.Offset,
	})
}

// RegisterRoutes registers sales order routes.
func (h *SalesOrderHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.POST("", h.Create)
	rg.GET("/:id", h.Get)
	rg.PUT("/:id", h.Update)
	rg.DELETE("/:id", h.Delete)
	rg.PATCH("/:id/status", h.UpdateStatus)
	rg.GET("/:id/history", h.History)
}
