// Package register_repo provides PostgreSQL implementations of the register
// repositories.
package register_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"merx/internal/core/apperror"
	"merx/internal/core/id"
	"merx/internal/domain/registers/stock"
	"merx/internal/infrastructure/storage/postgres"
)

const stockTable = "reg_stock"

// StockRepo implements stock.Repository. The table has a CHECK (quantity >= 0)
// constraint as a second line of defense behind the locked availability check.
type StockRepo struct {
	txm *postgres.TxManager
}

// NewStockRepo creates a new stock repository.
func NewStockRepo(txm *postgres.TxManager) *StockRepo {
	return &StockRepo{txm: txm}
}

func (r *StockRepo) builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

func (r *StockRepo) querier(ctx context.Context) postgres.Querier {
	return r.txm.GetQuerier(ctx)
}

func (r *StockRepo) getBalance(ctx context.Context, warehouseID, productID id.ID, forUpdate bool) (stock.Balance, error) {
	var balance stock.Balance

	q := r.builder().
		Select("warehouse_id", "product_id", "quantity", "updated_at").
		From(stockTable).
		Where(squirrel.Eq{"warehouse_id": warehouseID, "product_id": productID})
	if forUpdate {
		q = q.Suffix("FOR UPDATE")
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return balance, fmt.Errorf("build query: %w", err)
	}

	if err := pgxscan.Get(ctx, r.querier(ctx), &balance, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return balance, apperror.NewNotFound(stockTable, fmt.Sprintf("%s/%s", warehouseID, productID))
		}
		return balance, fmt.Errorf("get balance: %w", err)
	}

	return balance, nil
}

// GetBalance returns the balance row without locking.
func (r *StockRepo) GetBalance(ctx context.Context, warehouseID, productID id.ID) (stock.Balance, error) {
	return r.getBalance(ctx, warehouseID, productID, false)
}

// GetBalanceForUpdate locks the balance row for the transaction.
func (r *StockRepo) GetBalanceForUpdate(ctx context.Context, warehouseID, productID id.ID) (stock.Balance, error) {
	return r.getBalance(ctx, warehouseID, productID, true)
}

// Decrement subtracts quantity from an existing balance row.
func (r *StockRepo) Decrement(ctx context.Context, warehouseID, productID id.ID, quantity int64) error {
	sql, args, err := r.builder().
		Update(stockTable).
		Set("quantity", squirrel.Expr("quantity - ?", quantity)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"warehouse_id": warehouseID, "product_id": productID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	result, err := r.querier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		if postgres.IsCheckViolation(err) {
			return apperror.NewBusinessRule(apperror.CodeInsufficientStock,
				"stock balance would go negative").WithCause(err)
		}
		return fmt.Errorf("decrement: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound(stockTable, fmt.Sprintf("%s/%s", warehouseID, productID))
	}

	return nil
}

// UpsertIncrement adds quantity to the balance row, creating it when absent.
func (r *StockRepo) UpsertIncrement(ctx context.Context, warehouseID, productID id.ID, quantity int64) error {
	sql, args, err := r.builder().
		Insert(stockTable).
		Columns("warehouse_id", "product_id", "quantity", "updated_at").
		Values(warehouseID, productID, quantity, squirrel.Expr("NOW()")).
		Suffix("ON CONFLICT (warehouse_id, product_id) DO UPDATE SET quantity = " + stockTable + ".quantity + EXCLUDED.quantity, updated_at = NOW()").
		ToSql()
	if err != nil {
		return fmt.Errorf("build upsert: %w", err)
	}

	if _, err := r.querier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("upsert increment: %w", err)
	}

	return nil
}

// SetQuantity overwrites the balance row, creating it when absent.
func (r *StockRepo) SetQuantity(ctx context.Context, warehouseID, productID id.ID, quantity int64) error {
	sql, args, err := r.builder().
		Insert(stockTable).
		Columns("warehouse_id", "product_id", "quantity", "updated_at").
		Values(warehouseID, productID, quantity, squirrel.Expr("NOW()")).
		Suffix("ON CONFLICT (warehouse_id, product_id) DO UPDATE SET quantity = EXCLUDED.quantity, updated_at = NOW()").
		ToSql()
	if err != nil {
		return fmt.Errorf("build upsert: %w", err)
	}

	if _, err := r.querier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("set quantity: %w", err)
	}

	return nil
}

// List returns balances with product and warehouse names resolved.
func (r *StockRepo) List(ctx context.Context, filter stock.BalanceFilter) ([]stock.Balance, error) {
	q := r.builder().
		Select(
			"s.warehouse_id", "s.product_id", "s.quantity", "s.updated_at",
			"w.name AS warehouse_name",
			"p.name AS product_name",
			"p.code AS product_code",
			"p.unit AS product_unit",
		).
		From(stockTable + " s").
		Join("cat_warehouses w ON w.id = s.warehouse_id").
		Join("cat_products p ON p.id = s.product_id")

	if filter.WarehouseID != nil {
		q = q.Where(squirrel.Eq{"s.warehouse_id": *filter.WarehouseID})
	}
	if filter.ProductID != nil {
		q = q.Where(squirrel.Eq{"s.product_id": *filter.ProductID})
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		q = q.Where(squirrel.Or{
			squirrel.ILike{"p.name": pattern},
			squirrel.ILike{"p.code": pattern},
		})
	}
	if filter.ExcludeZero {
		q = q.Where(squirrel.Gt{"s.quantity": 0})
	}

	q = q.OrderBy("w.name", "p.name")
	if filter.Limit > 0 {
		q = q.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		q = q.Offset(uint64(filter.Offset))
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var balances []stock.Balance
	if err := pgxscan.Select(ctx, r.querier(ctx), &balances, sql, args...); err != nil {
		return nil, fmt.Errorf("list balances: %w", err)
	}

	return balances, nil
}
