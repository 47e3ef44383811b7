package stock

import (
	"context"
	"fmt"

	"merx/internal/core/apperror"
	"merx/internal/core/id"
	"merx/internal/core/tx"
	"merx/pkg/logger"
)

// Service provides business operations on stock balances.
// Issue and Receive assume the caller already opened a transaction; Adjust
// opens its own.
type Service struct {
	repo      Repository
	txManager tx.Manager
}

// NewService creates a new stock service.
func NewService(repo Repository, txManager tx.Manager) *Service {
	return &Service{repo: repo, txManager: txManager}
}

// Requirement is one product demand against a warehouse.
type Requirement struct {
	WarehouseID id.ID
	ProductID   id.ID

	// ProductName feeds the shortage error message
	ProductName string

	Quantity int64
}

// CheckAvailability locks each balance row and verifies it covers the
// requirement. Returns INSUFFICIENT_STOCK on the first shortage; a missing
// row counts as zero available.
func (s *Service) CheckAvailability(ctx context.Context, reqs []Requirement) error {
	for _, req := range reqs {
		balance, err := s.repo.GetBalanceForUpdate(ctx, req.WarehouseID, req.ProductID)
		if err != nil {
			if apperror.IsNotFound(err) {
				return apperror.NewInsufficientStock(req.ProductName, req.Quantity, 0)
			}
			return fmt.Errorf("get balance for %s: %w", req.ProductID, err)
		}

		if balance.Quantity < req.Quantity {
			return apperror.NewInsufficientStock(req.ProductName, req.Quantity, balance.Quantity)
		}
	}

	return nil
}

// Issue validates all requirements, then decrements each balance. Rows were
// locked by CheckAvailability, so the decrements cannot race a concurrent
// issue of the same rows.
func (s *Service) Issue(ctx context.Context, reqs []Requirement) error {
	if err := s.CheckAvailability(ctx, reqs); err != nil {
		return err
	}

	for _, req := range reqs {
		if err := s.repo.Decrement(ctx, req.WarehouseID, req.ProductID, req.Quantity); err != nil {
			return fmt.Errorf("decrement stock for %s: %w", req.ProductID, err)
		}
	}

	return nil
}

// Receive increments each balance, creating rows for products the warehouse
// has not held before.
func (s *Service) Receive(ctx context.Context, reqs []Requirement) error {
	for _, req := range reqs {
		if err := s.repo.UpsertIncrement(ctx, req.WarehouseID, req.ProductID, req.Quantity); err != nil {
			return fmt.Errorf("increment stock for %s: %w", req.ProductID, err)
		}
	}

	return nil
}

// Adjust sets an absolute balance from a manual inventory count.
func (s *Service) Adjust(ctx context.Context, warehouseID, productID id.ID, quantity int64) error {
	if quantity < 0 {
		return apperror.NewValidation("quantity must not be negative").
			WithDetail("field", "quantity").
			WithDetail("value", quantity)
	}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.repo.SetQuantity(ctx, warehouseID, productID, quantity)
	})
	if err != nil {
		return err
	}

	logger.Info(ctx, "stock adjusted",
		"warehouse_id", warehouseID,
		"product_id", productID,
		"quantity", quantity,
	)
	return nil
}

// List returns balances with names resolved.
func (s *Service) List(ctx context.Context, filter BalanceFilter) ([]Balance, error) {
	return s.repo.List(ctx, filter)
}
