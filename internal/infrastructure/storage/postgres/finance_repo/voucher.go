// Package finance_repo provides the PostgreSQL voucher store.
package finance_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"merx/internal/core/apperror"
	"merx/internal/core/id"
	"merx/internal/domain"
	"merx/internal/domain/finance/voucher"
	"merx/internal/infrastructure/storage/postgres"
)

const voucherTable = "fin_vouchers"

var voucherCols = postgres.ExtractDBColumns[voucher.Voucher]()

// VoucherRepo implements voucher.Repository. There are no update or delete
// operations: the ledger is append-only.
type VoucherRepo struct {
	txm *postgres.TxManager
}

// NewVoucherRepo creates a new voucher repository.
func NewVoucherRepo(txm *postgres.TxManager) *VoucherRepo {
	return &VoucherRepo{txm: txm}
}

func (r *VoucherRepo) builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

func (r *VoucherRepo) querier(ctx context.Context) postgres.Querier {
	return r.txm.GetQuerier(ctx)
}

// Create appends a voucher.
func (r *VoucherRepo) Create(ctx context.Context, v *voucher.Voucher) error {
	data := postgres.StructToMap(v)

	filtered := make(map[string]any, len(voucherCols))
	for _, col := range voucherCols {
		if val, ok := data[col]; ok {
			filtered[col] = val
		}
	}

	sql, args, err := r.builder().
		Insert(voucherTable).
		SetMap(filtered).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.querier(ctx).Exec(ctx, sql, args...); err != nil {
		if postgres.IsUniqueViolation(err) {
			return apperror.NewConflict("voucher number already used").WithCause(err)
		}
		return fmt.Errorf("insert voucher: %w", err)
	}

	return nil
}

// GetByID retrieves a voucher.
func (r *VoucherRepo) GetByID(ctx context.Context, voucherID id.ID) (*voucher.Voucher, error) {
	v := &voucher.Voucher{}

	sql, args, err := r.builder().
		Select(voucherCols...).
		From(voucherTable).
		Where(squirrel.Eq{"id": voucherID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	if err := pgxscan.Get(ctx, r.querier(ctx), v, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound(voucherTable, voucherID.String())
		}
		return nil, fmt.Errorf("get voucher: %w", err)
	}

	return v, nil
}

// List retrieves vouchers with filtering.
func (r *VoucherRepo) List(ctx context.Context, filter voucher.ListFilter) (domain.ListResult[*voucher.Voucher], error) {
	result := domain.ListResult[*voucher.Voucher]{
		Limit:  filter.Limit,
		Offset: filter.Offset,
	}

	q := r.builder().
		Select(voucherCols...).
		From(voucherTable)

	if filter.Type != nil {
		q = q.Where(squirrel.Eq{"type": string(*filter.Type)})
	}
	if filter.OrderID != nil {
		q = q.Where(squirrel.Eq{"order_id": *filter.OrderID})
	}
	if filter.DateFrom != nil {
		q = q.Where(squirrel.GtOrEq{"date": *filter.DateFrom})
	}
	if filter.DateTo != nil {
		q = q.Where(squirrel.LtOrEq{"date": *filter.DateTo})
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		q = q.Where(squirrel.Or{
			squirrel.ILike{"number": pattern},
			squirrel.ILike{"description": pattern},
		})
	}

	countSQL, countArgs, err := r.builder().
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
		return result, fmt.Errorf("list vouchers: %w", err)
	}

	return result, nil
}
