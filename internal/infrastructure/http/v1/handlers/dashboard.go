package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"merx/internal/domain/reports"
)

// DashboardHandler handles HTTP requests for the business dashboard.
type DashboardHandler struct {
	*BaseHandler
	service *reports.Service
}

// NewDashboardHandler creates a new dashboard handler.
func NewDashboardHandler(base *BaseHandler, service *reports.Service) *DashboardHandler {
	return &DashboardHandler{
		BaseHandler: base,
		service:     service,
	}
}

// Get handles GET /reports/dashboard.
func (h *DashboardHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()

	filter := reports.DashboardFilter{
		FromDate:          h.ParseTimeQuery(c, "fromDate"),
		ToDate:            h.ParseTimeQuery(c, "toDate"),
		LowStockThreshold: int64(h.ParseIntQuery(c, "lowStockThreshold", 0)),
		RecentOrdersLimit: h.ParseIntQuery(c, "recentOrdersLimit", 0),
	}

	dashboard, err := h.service.GetDashboard(ctx, filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dashboard)
}

// RegisterRoutes registers report routes.
func (h *DashboardHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/dashboard", h.Get)
}
