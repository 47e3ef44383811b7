package reports

import (
	"context"
	"time"

	"merx/internal/core/types"
)

// Repository defines report data access.
type Repository interface {
	GetCounts(ctx context.Context) (Counts, error)
	GetFinanceSummary(ctx context.Context, from, to time.Time) (FinanceSummary, error)
	GetOrderTotals(ctx context.Context, from, to time.Time) (salesTotal, purchaseTotal types.Money, err error)
	GetSalesByMonth(ctx context.Context, from, to time.Time) ([]MonthlyTotal, error)
	GetRecentOrders(ctx context.Context, limit int) ([]RecentOrder, error)
	GetLowStock(ctx context.Context, threshold int64) ([]LowStockItem, error)
}
