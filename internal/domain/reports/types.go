// Package reports provides dashboard and summary report generation.
package reports

import (
	"time"

	"merx/internal/core/id"
	"merx/internal/core/types"
	"merx/internal/domain/orders"
)

// DashboardFilter scopes the dashboard to a period.
type DashboardFilter struct {
	// FromDate defaults to 30 days ago
	FromDate *time.Time

	// ToDate defaults to now
	ToDate *time.Time

	// LowStockThreshold defaults to 10
	LowStockThreshold int64

	// RecentOrdersLimit defaults to 5
	RecentOrdersLimit int
}

// Dashboard is the business overview shown on the landing page.
type Dashboard struct {
	FromDate time.Time `json:"fromDate"`
	ToDate   time.Time `json:"toDate"`

	Counts Counts `json:"counts"`

	SalesTotal    types.Money `json:"salesTotal"`
	PurchaseTotal types.Money `json:"purchaseTotal"`

	Finance FinanceSummary `json:"finance"`

	SalesByMonth []MonthlyTotal `json:"salesByMonth"`
	RecentOrders []RecentOrder  `json:"recentOrders"`
	LowStock     []LowStockItem `json:"lowStock"`
}

// Counts holds entity totals across the whole database.
type Counts struct {
	Products  int64 `json:"products"`
	Customers int64 `json:"customers"`
	Suppliers int64 `json:"suppliers"`

	PendingSalesOrders    int64 `json:"pendingSalesOrders"`
	PendingPurchaseOrders int64 `json:"pendingPurchaseOrders"`
}

// FinanceSummary aggregates the voucher ledger for the period.
type FinanceSummary struct {
	Receipts types.Money `json:"receipts"`
	Payments types.Money `json:"payments"`
	Net      types.Money `json:"net"`
}

// MonthlyTotal is one point of the sales chart.
type MonthlyTotal struct {
	// Month in YYYY-MM form
	Month string      `json:"month"`
	Total types.Money `json:"total"`
	Count int64       `json:"count"`
}

// RecentOrder is a compact order row for the dashboard list.
type RecentOrder struct {
	ID               id.ID         `json:"id"`
	Kind             string        `json:"kind"`
	Number           string        `json:"number"`
	CounterpartyName string        `json:"counterpartyName"`
	Status           orders.Status `json:"status"`
	TotalAmount      types.Money   `json:"totalAmount"`
	Date             time.Time     `json:"date"`
}

// LowStockItem flags balances at or under the threshold.
type LowStockItem struct {
	WarehouseID   id.ID  `json:"warehouseId"`
	WarehouseName string `json:"warehouseName"`
	ProductID     id.ID  `json:"productId"`
	ProductName   string `json:"productName"`
	Quantity      int64  `json:"quantity"`
}
