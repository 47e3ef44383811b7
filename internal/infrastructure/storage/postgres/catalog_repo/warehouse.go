package catalog_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"merx/internal/core/apperror"
	"merx/internal/domain/catalogs/warehouse"
	"merx/internal/infrastructure/storage/postgres"
)

const warehouseTable = "cat_warehouses"

// WarehouseRepo implements warehouse.Repository.
type WarehouseRepo struct {
	*BaseCatalogRepo[*warehouse.Warehouse]
}

// NewWarehouseRepo creates a new warehouse repository.
func NewWarehouseRepo(txm *postgres.TxManager) *WarehouseRepo {
	return &WarehouseRepo{
		BaseCatalogRepo: NewBaseCatalogRepo(
			txm,
			warehouseTable,
			postgres.ExtractDBColumns[warehouse.Warehouse](),
			func() *warehouse.Warehouse { return &warehouse.Warehouse{} },
		),
	}
}

// GetDefault returns the warehouse marked as default.
func (r *WarehouseRepo) GetDefault(ctx context.Context) (*warehouse.Warehouse, error) {
	wh := &warehouse.Warehouse{}

	sql, args, err := r.Builder().
		Select(postgres.ExtractDBColumns[warehouse.Warehouse]()...).
		From(warehouseTable).
		Where(squirrel.Eq{"is_default": true, "deletion_mark": false}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	if err := pgxscan.Get(ctx, r.querier(ctx), wh, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound(warehouseTable, "default")
		}
		return nil, fmt.Errorf("get default warehouse: %w", err)
	}

	return wh, nil
}

// ClearDefault clears the default flag on all warehouses.
func (r *WarehouseRepo) ClearDefault(ctx context.Context) error {
	sql, args, err := r.Builder().
		Update(warehouseTable).
		Set("is_default", false).
		Where(squirrel.Eq{"is_default": true}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	if _, err := r.querier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("clear default: %w", err)
	}

	return nil
}
