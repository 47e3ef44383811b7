package order_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"merx/internal/domain"
	"merx/internal/domain/orders/sales"
	"merx/internal/infrastructure/storage/postgres"
)

const (
	salesOrdersTable     = "doc_sales_orders"
	salesOrderLinesTable = "doc_sales_order_lines"
)

// SalesOrderRepo implements sales.Repository.
type SalesOrderRepo struct {
	*baseOrderRepo[*sales.SalesOrder]
}

// NewSalesOrderRepo creates a new sales order repository.
func NewSalesOrderRepo(txm *postgres.TxManager) *SalesOrderRepo {
	return &SalesOrderRepo{
		baseOrderRepo: newBaseOrderRepo(
			txm,
			salesOrdersTable,
			salesOrderLinesTable,
			postgres.ExtractDBColumns[sales.SalesOrder](),
			func() *sales.SalesOrder { return &sales.SalesOrder{} },
		),
	}
}

// List retrieves sales orders with filtering.
func (r *SalesOrderRepo) List(ctx context.Context, filter sales.ListFilter) (domain.ListResult[*sales.SalesOrder], error) {
	result := domain.ListResult[*sales.SalesOrder]{
		Limit:  filter.Limit,
		Offset: filter.Offset,
	}

	q := r.Builder().
		Select(postgres.ExtractDBColumns[sales.SalesOrder]()...).
		From(salesOrdersTable)

	if !filter.IncludeDeleted {
		q = q.Where(squirrel.Eq{"deletion_mark": false})
	}
	if filter.CustomerID != nil {
		q = q.Where(squirrel.Eq{"customer_id": *filter.CustomerID})
	}
	if filter.WarehouseID != nil {
		q = q.Where(squirrel.Eq{"warehouse_id": *filter.WarehouseID})
	}
	if filter.Status != nil {
		q = q.Where(squirrel.Eq{"status": string(*filter.Status)})
	}
	if filter.DateFrom != nil {
		q = q.Where(squirrel.GtOrEq{"date": *filter.DateFrom})
	}
	if filter.DateTo != nil {
		q = q.Where(squirrel.LtOrEq{"date": *filter.DateTo})
	}
	if filter.Search != "" {
		q = q.Where(squirrel.ILike{"number": "%" + filter.Search + "%"})
	}

	countSQL, countArgs, err := r.Builder().
		Select("COUNT(*)").
		FromSelect(q, "sub").
		ToSql()
	if err != nil {
		return result, fmt.Errorf("build count: %w", err)
	}
	if err := r.querier(ctx).QueryRow(ctx, countSQL, countArgs...).Scan(&result.TotalCount); err != nil {
		return result, fmt.Errorf("count: %w", err)
	}

	q = q.OrderBy("date DESC", "number DESC")
	if filter.Limit > 0 {
		q = q.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		q = q.Offset(uint64(filter.Offset))
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return result, fmt.Errorf("build query: %w", err)
	}

	if err := pgxscan.Select(ctx, r.querier(ctx), &result.Items, sql, args...); err != nil {
		return result, fmt.Errorf("list: %w", err)
	}

	return result, nil
}
