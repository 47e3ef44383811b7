package order_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"merx/internal/domain"
	"merx/internal/domain/orders/purchase"
	"merx/internal/infrastructure/storage/postgres"
)

const (
	purchaseOrdersTable     = "doc_purchase_orders"
	purchaseOrderLinesTable = "doc_purchase_order_lines"
)

// PurchaseOrderRepo implements purchase.Repository.
type PurchaseOrderRepo struct {
	*baseOrderRepo[*purchase.PurchaseOrder]
}

// NewPurchaseOrderRepo creates a new purchase order repository.
func NewPurchaseOrderRepo(txm *postgres.TxManager) *PurchaseOrderRepo {
	return &PurchaseOrderRepo{
		baseOrderRepo: newBaseOrderRepo(
			txm,
			purchaseOrdersTable,
			purchaseOrderLinesTable,
			postgres.ExtractDBColumns[purchase.PurchaseOrder](),
			func() *purchase.PurchaseOrder { return &purchase.PurchaseOrder{} },
		),
	}
}

// List retrieves purchase orders with filtering.
func (r *PurchaseOrderRepo) List(ctx context.Context, filter purchase.ListFilter) (domain.ListResult[*purchase.PurchaseOrder], error) {
	result := domain.ListResult[*purchase.PurchaseOrder]{
		Limit:  filter.Limit,
		Offset: filter.Offset,
	}

	q := r.Builder().
		Select(postgres.ExtractDBColumns[purchase.PurchaseOrder]()...).
		From(purchaseOrdersTable)

	if !filter.IncludeDeleted {
		q = q.Where(squirrel.Eq{"deletion_mark": false})
	}
	if filter.SupplierID != nil {
		q = q.Where(squirrel.Eq{"supplier_id": *filter.SupplierID})
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
