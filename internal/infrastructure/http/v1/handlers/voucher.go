package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"merx/internal/core/apperror"
	"merx/internal/domain"
	"merx/internal/domain/finance/voucher"
	"merx/internal/infrastructure/http/v1/dto"
)

// VoucherHandler handles HTTP requests for the voucher ledger. The ledger is
// append-only and entries are created by the fulfillment engine, so the API
// surface is read-only.
type VoucherHandler struct {
	*BaseHandler
	service *voucher.Service
}

// NewVoucherHandler creates a new voucher handler.
func NewVoucherHandler(base *BaseHandler, service *voucher.Service) *VoucherHandler {
	return &VoucherHandler{
		BaseHandler: base,
		service:     service,
	}
}

// Get handles GET /vouchers/:id.
func (h *VoucherHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()

	voucherID, ok := h.ParseID(c)
	if !ok {
		return
	}

	v, err := h.service.GetByID(ctx, voucherID)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromVoucher(v))
}

// List handles GET /vouchers.
func (h *VoucherHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	filter := voucher.ListFilter{
		ListFilter: domain.DefaultListFilter(),
	}
	filter.Limit = h.ParseIntQuery(c, "limit", 50)
	filter.Offset = h.ParseIntQuery(c, "offset", 0)
	filter.OrderBy = c.DefaultQuery("orderBy", "date DESC")

	filter.OrderID = h.ParseIDQuery(c, "orderId")
	filter.DateFrom = h.ParseTimeQuery(c, "dateFrom")
	filter.DateTo = h.ParseTimeQuery(c, "dateTo")

	if vType := c.Query("type"); vType != "" {
		parsed := voucher.Type(strings.ToUpper(vType))
		if parsed != voucher.TypeReceipt && parsed != voucher.TypePayment {
			h.Error(c, apperror.NewValidation("unknown voucher type").WithDetail("value", vType))
			return
		}
		filter.Type = &parsed
	}

	result, err := h.service.List(ctx, filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	items := make([]*dto.VoucherResponse, len(result.Items))
	for i, v := range result.Items {
		items[i] = dto.FromVoucher(v)
	}

	c.JSON(http.StatusOK, dto.ListResponse[*dto.VoucherResponse]{
		Items:      items,
		TotalCount: result.TotalCount,
		Limit:      result.Limit,
		Offset:     result.Offset,
	})
}

// RegisterRoutes registers voucher routes.
func (h *VoucherHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.GET("/:id", h.Get)
}
