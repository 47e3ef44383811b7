package reports

import (
	"context"
	"fmt"
	"time"
)

// Service generates dashboard reports. All reads go through a single
// repository so the queries can be tuned without touching callers.
type Service struct {
	repo Repository
}

// NewService creates a new reports service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// GetDashboard assembles the business overview for the period.
func (s *Service) GetDashboard(ctx context.Context, filter DashboardFilter) (*Dashboard, error) {
	now := time.Now().UTC()
	to := now
	if filter.ToDate != nil {
		to = *filter.ToDate
	}
	from := to.AddDate(0, 0, -30)
	if filter.FromDate != nil {
		from = *filter.FromDate
	}
	if from.After(to) {
		return nil, fmt.Errorf("fromDate must be before toDate")
	}

	threshold := filter.LowStockThreshold
	if threshold <= 0 {
		threshold = 10
	}
	recentLimit := filter.RecentOrdersLimit
	if recentLimit <= 0 {
		recentLimit = 5
	}

	counts, err := s.repo.GetCounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("get counts: %w", err)
	}

	salesTotal, purchaseTotal, err := s.repo.GetOrderTotals(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("get order totals: %w", err)
	}

	finance, err := s.repo.GetFinanceSummary(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("get finance summary: %w", err)
	}

	byMonth, err := s.repo.GetSalesByMonth(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("get sales by month: %w", err)
	}

	recent, err := s.repo.GetRecentOrders(ctx, recentLimit)
	if err != nil {
		return nil, fmt.Errorf("get recent orders: %w", err)
	}

	lowStock, err := s.repo.GetLowStock(ctx, threshold)
	if err != nil {
		return nil, fmt.Errorf("get low stock: %w", err)
	}

	return &Dashboard{
		FromDate:      from,
		ToDate:        to,
		Counts:        counts,
		SalesTotal:    salesTotal,
		PurchaseTotal: purchaseTotal,
		Finance:       finance,
		SalesByMonth:  byMonth,
		RecentOrders:  recent,
		LowStock:      lowStock,
	}, nil
}
