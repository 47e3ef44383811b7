// Package order_repo provides PostgreSQL implementations of the order
// repositories.
package order_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"merx/internal/core/apperror"
	"merx/internal/core/id"
	"merx/internal/domain/orders"
	"merx/internal/infrastructure/storage/postgres"
)

// baseOrderRepo provides common operations for order documents. The lines
// table layout is identical for both order kinds.
type baseOrderRepo[T any] struct {
	txm        *postgres.TxManager
	tableName  string
	linesTable string
	selectCols []string
	newFn      func() T
}

func newBaseOrderRepo[T any](
	txm *postgres.TxManager,
	tableName, linesTable string,
	selectCols []string,
	newFn func() T,
) *baseOrderRepo[T] {
	return &baseOrderRepo[T]{
		txm:        txm,
		tableName:  tableName,
		linesTable: linesTable,
		selectCols: selectCols,
		newFn:      newFn,
	}
}

func (r *baseOrderRepo[T]) Builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

func (r *baseOrderRepo[T]) querier(ctx context.Context) postgres.Querier {
	return r.txm.GetQuerier(ctx)
}

// Create inserts a new order head.
func (r *baseOrderRepo[T]) Create(ctx context.Context, entity T) error {
	data := postgres.StructToMap(entity)
	if len(data) == 0 {
		return fmt.Errorf("no db tags found in entity")
	}

	filtered := make(map[string]any, len(r.selectCols))
	for _, col := range r.selectCols {
		if val, ok := data[col]; ok {
			filtered[col] = val
		}
	}

	sql, args, err := r.Builder().
		Insert(r.tableName).
		SetMap(filtered).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.querier(ctx).Exec(ctx, sql, args...); err != nil {
		if postgres.IsUniqueViolation(err) {
			return apperror.NewConflict(fmt.Sprintf("%s already exists", r.tableName)).WithCause(err)
		}
		return fmt.Errorf("insert %s: %w", r.tableName, err)
	}

	return nil
}

// Update updates the order head with optimistic locking.
func (r *baseOrderRepo[T]) Update(ctx context.Context, entity T) error {
	data := postgres.StructToMap(entity)
	if len(data) == 0 {
		return fmt.Errorf("no db tags found in entity")
	}

	entityID, ok := data["id"]
	if !ok {
		return fmt.Errorf("entity has no 'id' field")
	}
	version, ok := data["version"].(int)
	if !ok {
		return fmt.Errorf("entity has no 'version' field or it is not an int")
	}

	filtered := make(map[string]any, len(r.selectCols))
	for _, col := range r.selectCols {
		if col == "id" || col == "created_at" || col == "version" || col == "updated_at" {
			continue
		}
		if val, ok := data[col]; ok {
			filtered[col] = val
		}
	}

	sql, args, err := r.Builder().
		Update(r.tableName).
		SetMap(filtered).
		Set("version", squirrel.Expr("version + 1")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": entityID}).
		Where(squirrel.Eq{"version": version}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	result, err := r.querier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("update %s: %w", r.tableName, err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewConcurrentModification(r.tableName, entityID)
	}

	return nil
}

func (r *baseOrderRepo[T]) getWhere(ctx context.Context, where squirrel.Sqlizer, ident string, forUpdate bool) (T, error) {
	entity := r.newFn()

	q := r.Builder().
		Select(r.selectCols...).
		From(r.tableName).
		Where(where).
		Limit(1)
	if forUpdate {
		q = q.Suffix("FOR UPDATE")
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return entity, fmt.Errorf("build query: %w", err)
	}

	if err := pgxscan.Get(ctx, r.querier(ctx), entity, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return entity, apperror.NewNotFound(r.tableName, ident)
		}
		return entity, fmt.Errorf("get %s: %w", r.tableName, err)
	}

	return entity, nil
}

// GetByID retrieves an order head by ID.
func (r *baseOrderRepo[T]) GetByID(ctx context.Context, orderID id.ID) (T, error) {
	return r.getWhere(ctx, squirrel.Eq{"id": orderID}, orderID.String(), false)
}

// GetByNumber retrieves an order head by document number.
func (r *baseOrderRepo[T]) GetByNumber(ctx context.Context, number string) (T, error) {
	return r.getWhere(ctx, squirrel.Eq{"number": number}, number, false)
}

// GetForUpdate locks the order row for the transaction.
func (r *baseOrderRepo[T]) GetForUpdate(ctx context.Context, orderID id.ID) (T, error) {
	return r.getWhere(ctx, squirrel.Eq{"id": orderID}, orderID.String(), true)
}

// UpdateStatus persists only the status column.
func (r *baseOrderRepo[T]) UpdateStatus(ctx context.Context, orderID id.ID, status orders.Status) error {
	sql, args, err := r.Builder().
		Update(r.tableName).
		Set("status", string(status)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": orderID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	result, err := r.querier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("update status: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound(r.tableName, orderID.String())
	}

	return nil
}

// SetDeletionMark sets or clears the soft-delete mark.
func (r *baseOrderRepo[T]) SetDeletionMark(ctx context.Context, orderID id.ID, mark bool) error {
	sql, args, err := r.Builder().
		Update(r.tableName).
		Set("deletion_mark", mark).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": orderID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	result, err := r.querier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("set deletion mark: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound(r.tableName, orderID.String())
	}

	return nil
}

// GetLines returns the table part with product names joined in.
func (r *baseOrderRepo[T]) GetLines(ctx context.Context, orderID id.ID) ([]orders.Line, error) {
	sql, args, err := r.Builder().
		Select(
			"l.line_id", "l.line_no", "l.product_id",
			"p.name AS product_name",
			"l.quantity", "l.unit_price", "l.amount",
		).
		From(r.linesTable+" l").
		Join("cat_products p ON p.id = l.product_id").
		Where(squirrel.Eq{"l.order_id": orderID}).
		OrderBy("l.line_no").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var lines []orders.Line
	if err := pgxscan.Select(ctx, r.querier(ctx), &lines, sql, args...); err != nil {
		return nil, fmt.Errorf("get lines: %w", err)
	}

	return lines, nil
}

// SaveLines replaces the table part.
func (r *baseOrderRepo[T]) SaveLines(ctx context.Context, orderID id.ID, lines []orders.Line) error {
	querier := r.querier(ctx)

	deleteSQL := "DELETE FROM " + r.linesTable + " WHERE order_id = $1"
	if _, err := querier.Exec(ctx, deleteSQL, orderID); err != nil {
		return fmt.Errorf("delete existing lines: %w", err)
	}

	if len(lines) == 0 {
		return nil
	}

	q := r.Builder().
		Insert(r.linesTable).
		Columns("line_id", "order_id", "line_no", "product_id", "quantity", "unit_price", "amount")

	for _, line := range lines {
		q = q.Values(
			line.LineID, orderID, line.LineNo, line.ProductID,
			line.Quantity, line.UnitPrice, line.Amount,
		)
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert lines: %w", err)
	}

	if _, err := querier.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert lines: %w", err)
	}

	return nil
}
