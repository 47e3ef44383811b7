// Package report_repo provides the PostgreSQL dashboard queries.
package report_repo

import (
	"context"
	"fmt"
	"time"

	"github.com/georgysavva/scany/v2/pgxscan"

	"merx/internal/core/types"
	"merx/internal/domain/reports"
	"merx/internal/infrastructure/storage/postgres"
)

// DashboardRepo implements reports.Repository.
type DashboardRepo struct {
	txm *postgres.TxManager
}

// NewDashboardRepo creates a new dashboard repository.
func NewDashboardRepo(txm *postgres.TxManager) *DashboardRepo {
	return &DashboardRepo{txm: txm}
}

func (r *DashboardRepo) querier(ctx context.Context) postgres.Querier {
	return r.txm.GetQuerier(ctx)
}

// GetCounts returns entity totals.
func (r *DashboardRepo) GetCounts(ctx context.Context) (reports.Counts, error) {
	var counts reports.Counts

	sql := `
		SELECT
			(SELECT COUNT(*) FROM cat_products WHERE NOT deletion_mark)       AS products,
			(SELECT COUNT(*) FROM cat_customers WHERE NOT deletion_mark)      AS customers,
			(SELECT COUNT(*) FROM cat_suppliers WHERE NOT deletion_mark)      AS suppliers,
			(SELECT COUNT(*) FROM doc_sales_orders
				WHERE status = 'PENDING' AND NOT deletion_mark)           AS pending_sales_orders,
			(SELECT COUNT(*) FROM doc_purchase_orders
				WHERE status = 'PENDING' AND NOT deletion_mark)           AS pending_purchase_orders
	`

	err := r.querier(ctx).QueryRow(ctx, sql).Scan(
		&counts.Products, &counts.Customers, &counts.Suppliers,
		&counts.PendingSalesOrders, &counts.PendingPurchaseOrders,
	)
	if err != nil {
		return counts, fmt.Errorf("get counts: %w", err)
	}

	return counts, nil
}

// GetFinanceSummary aggregates the voucher ledger for the period.
func (r *DashboardRepo) GetFinanceSummary(ctx context.Context, from, to time.Time) (reports.FinanceSummary, error) {
	var summary reports.FinanceSummary

	sql := `
		SELECT
			COALESCE(SUM(amount) FILTER (WHERE type = 'RECEIPT'), 0) AS receipts,
			COALESCE(SUM(amount) FILTER (WHERE type = 'PAYMENT'), 0) AS payments
		FROM fin_vouchers
		WHERE date >= $1 AND date <= $2
	`

	err := r.querier(ctx).QueryRow(ctx, sql, from, to).Scan(&summary.Receipts, &summary.Payments)
	if err != nil {
		return summary, fmt.Errorf("get finance summary: %w", err)
	}
	summary.Net = summary.Receipts.Sub(summary.Payments)

	return summary, nil
}

// GetOrderTotals sums live order amounts for the period.
func (r *DashboardRepo) GetOrderTotals(ctx context.Context, from, to time.Time) (types.Money, types.Money, error) {
	var salesTotal, purchaseTotal types.Money

	sql := `
		SELECT
			(SELECT COALESCE(SUM(total_amount), 0) FROM doc_sales_orders
				WHERE date >= $1 AND date <= $2
				  AND status <> 'CANCELLED' AND NOT deletion_mark),
			(SELECT COALESCE(SUM(total_amount), 0) FROM doc_purchase_orders
				WHERE date >= $1 AND date <= $2
				  AND status <> 'CANCELLED' AND NOT deletion_mark)
	`

	err := r.querier(ctx).QueryRow(ctx, sql, from, to).Scan(&salesTotal, &purchaseTotal)
	if err != nil {
		return salesTotal, purchaseTotal, fmt.Errorf("get order totals: %w", err)
	}

	return salesTotal, purchaseTotal, nil
}

// GetSalesByMonth buckets sales order totals by month.
func (r *DashboardRepo) GetSalesByMonth(ctx context.Context, from, to time.Time) ([]reports.MonthlyTotal, error) {
	sql := `
		SELECT
			to_char(date_trunc('month', date), 'YYYY-MM') AS month,
			COALESCE(SUM(total_amount), 0)                AS total,
			COUNT(*)                                      AS count
		FROM doc_sales_orders
		WHERE date >= $1 AND date <= $2
		  AND status <> 'CANCELLED' AND NOT deletion_mark
		GROUP BY date_trunc('month', date)
		ORDER BY date_trunc('month', date)
	`

	var totals []reports.MonthlyTotal
	if err := pgxscan.Select(ctx, r.querier(ctx), &totals, sql, from, to); err != nil {
		return nil, fmt.Errorf("get sales by month: %w", err)
	}

	return totals, nil
}

// GetRecentOrders returns the newest orders of both kinds merged.
func (r *DashboardRepo) GetRecentOrders(ctx context.Context, limit int) ([]reports.RecentOrder, error) {
	sql := `
		SELECT * FROM (
			SELECT o.id, 'SALES' AS kind, o.number, c.name AS counterparty_name,
			       o.status, o.total_amount, o.date
			FROM doc_sales_orders o
			JOIN cat_customers c ON c.id = o.customer_id
			WHERE NOT o.deletion_mark
			UNION ALL
			SELECT o.id, 'PURCHASE' AS kind, o.number, s.name AS counterparty_name,
			       o.status, o.total_amount, o.date
			FROM doc_purchase_orders o
			JOIN cat_suppliers s ON s.id = o.supplier_id
			WHERE NOT o.deletion_mark
		) merged
		ORDER BY date DESC, number DESC
		LIMIT $1
	`

	var orders []reports.RecentOrder
	if err := pgxscan.Select(ctx, r.querier(ctx), &orders, sql, limit); err != nil {
		return nil, fmt.Errorf("get recent orders: %w", err)
	}

	return orders, nil
}

// GetLowStock returns balances at or under the threshold.
func (r *DashboardRepo) GetLowStock(ctx context.Context, threshold int64) ([]reports.LowStockItem, error) {
	sql := `
		SELECT s.warehouse_id, w.name AS warehouse_name,
		       s.product_id, p.name AS product_name, s.quantity
		FROM reg_stock s
		JOIN cat_warehouses w ON w.id = s.warehouse_id
		JOIN cat_products p ON p.id = s.product_id
		WHERE s.quantity <= $1 AND NOT p.deletion_mark
		ORDER BY s.quantity ASC, p.name
	`

	var items []reports.LowStockItem
	if err := pgxscan.Select(ctx, r.querier(ctx), &items, sql, threshold); err != nil {
		return nil, fmt.Errorf("get low stock: %w", err)
	}

	return items, nil
}
