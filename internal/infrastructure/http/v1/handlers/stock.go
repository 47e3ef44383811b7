package handlers

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"merx/internal/core/apperror"
	"merx/internal/core/id"
	"merx/internal/domain/registers/stock"
	"merx/internal/infrastructure/http/v1/dto"
)

// StockHandler handles HTTP requests for the stock balance register.
type StockHandler struct {
	*BaseHandler
	service *stock.Service
}

// NewStockHandler creates a new stock handler.
func NewStockHandler(base *BaseHandler, service *stock.Service) *StockHandler {
	return &StockHandler{
		BaseHandler: base,
		service:     service,
	}
}

func (h *StockHandler) parseFilter(c *gin.Context) stock.BalanceFilter {
	filter := stock.BalanceFilter{
		Search:      c.Query("search"),
		ExcludeZero: c.Query("excludeZero") == "true",
		Limit:       h.ParseIntQuery(c, "limit", 100),
		Offset:      h.ParseIntQuery(c, "offset", 0),
	}
	filter.WarehouseID = h.ParseIDQuery(c, "warehouseId")
	filter.ProductID = h.ParseIDQuery(c, "productId")
	return filter
}

// GetBalances handles GET /stock/balances.
func (h *StockHandler) GetBalances(c *gin.Context) {
	ctx := c.Request.Context()

	balances, err := h.service.List(ctx, h.parseFilter(c))
	if err != nil {
		h.Error(c, err)
		return
	}

	items := make([]dto.StockBalanceResponse, len(balances))
	for i, b := range balances {
		items[i] = dto.FromStockBalance(b)
	}

	c.JSON(http.StatusOK, gin.H{"items": items})
}

// Adjust handles POST /stock/adjust. Sets an absolute balance from a manual
// inventory count.
func (h *StockHandler) Adjust(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.AdjustStockRequest
	if !h.BindJSON(c, &req) {
		return
	}

	warehouseID, err := id.Parse(req.WarehouseID)
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid warehouseId format"))
		return
	}
	productID, err := id.Parse(req.ProductID)
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid productId format"))
		return
	}

	if err := h.service.Adjust(ctx, warehouseID, productID, req.Quantity); err != nil {
		h.Error(c, err)
		return
	}

	h.Success(c, "stock adjusted")
}

// ExportCSV handles GET /stock/export. Streams the current balances as a CSV
// file for spreadsheet use.
func (h *StockHandler) ExportCSV(c *gin.Context) {
	ctx := c.Request.Context()

	filter := h.parseFilter(c)
	filter.Limit = 0 // export everything matching the filter
	filter.Offset = 0

	balances, err := h.service.List(ctx, filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	filename := fmt.Sprintf("stock-%s.csv", time.Now().UTC().Format("2006-01-02"))
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)

	w := csv.NewWriter(c.Writer)
	_ = w.Write([]string{"warehouse", "sku", "product", "unit", "quantity", "updated_at"})
	for _, b := range balances {
		_ = w.Write([]string{
			b.WarehouseName,
			b.ProductCode,
			b.ProductName,
			b.ProductUnit,
			strconv.FormatInt(b.Quantity, 10),
			b.UpdatedAt.UTC().Format(time.RFC3339),
		})
	}
	w.Flush()
}

// RegisterRoutes registers stock routes.
func (h *StockHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/balances", h.GetBalances)
	rg.POST("/adjust", h.Adjust)
	rg.GET("/export", h.ExportCSV)
}
