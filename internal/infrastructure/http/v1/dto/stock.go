package dto

import (
	"time"

	"merx/internal/domain/registers/stock"
)

// AdjustStockRequest sets an absolute balance from an inventory count.
type AdjustStockRequest struct {
	WarehouseID string `json:"warehouseId" binding:"required"`
	ProductID   string `json:"productId" binding:"required"`
	Quantity    int64  `json:"quantity" binding:"min=0"`
}

// StockBalanceResponse is one balance row with names resolved.
type StockBalanceResponse struct {
	WarehouseID   string    `json:"warehouseId"`
	WarehouseName string    `json:"warehouseName,omitempty"`
	ProductID     string    `json:"productId"`
	ProductName   string    `json:"productName,omitempty"`
	ProductCode   string    `json:"productCode,omitempty"`
	ProductUnit   string    `json:"productUnit,omitempty"`
	Quantity      int64     `json:"quantity"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func FromStockBalance(b stock.Balance) StockBalanceResponse {
	return StockBalanceResponse{
		WarehouseID:   b.WarehouseID.String(),
		WarehouseName: b.WarehouseName,
		ProductID:     b.ProductID.String(),
		ProductName:   b.ProductName,
		ProductCode:   b.ProductCode,
		ProductUnit:   b.ProductUnit,
		Quantity:      b.Quantity,
		UpdatedAt:     b.UpdatedAt,
	}
}
