package purchase

import (
	"context"
	"fmt"
	"time"

	"merx/internal/core/apperror"
	"merx/internal/core/id"
	"merx/internal/core/tx"
	"merx/internal/domain"
	"merx/internal/domain/orders"
	"merx/pkg/logger"
	"merx/pkg/numerator"
)

// Service provides CRUD operations for purchase orders.
type Service struct {
	repo      Repository
	numerator *numerator.Service
	txManager tx.Manager
}

// NewService creates a new purchase order service.
func NewService(repo Repository, num *numerator.Service, txManager tx.Manager) *Service {
	return &Service{
		repo:      repo,
		numerator: num,
		txManager: txManager,
	}
}

// Create creates a new purchase order with its lines.
func (s *Service) Create(ctx context.Context, order *PurchaseOrder) error {
	if err := order.Validate(ctx); err != nil {
		return err
	}

	if order.Number == "" {
		number, err := s.numerator.GetNextNumber(ctx, numerator.DefaultConfig("PO"), nil, time.Now())
		if err != nil {
			return fmt.Errorf("generate number: %w", err)
		}
		order.Number = number
	}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Create(ctx, order); err != nil {
			return fmt.Errorf("create order: %w", err)
		}
		if err := s.repo.SaveLines(ctx, order.ID, order.Lines); err != nil {
			return fmt.Errorf("save lines: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	logger.Info(ctx, "purchase order created", "id", order.ID, "number", order.Number)
	return nil
}

// GetByID retrieves a purchase order with lines.
func (s *Service) GetByID(ctx context.Context, orderID id.ID) (*PurchaseOrder, error) {
	order, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	lines, err := s.repo.GetLines(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("get lines: %w", err)
	}
	order.Lines = lines

	return order, nil
}

// Update replaces an order's head and lines while it is still PENDING.
func (s *Service) Update(ctx context.Context, order *PurchaseOrder) error {
	if err := order.Validate(ctx); err != nil {
		return err
	}

	current, err := s.repo.GetByID(ctx, order.ID)
	if err != nil {
		return err
	}
	if current.Status != order.Status {
		return apperror.NewBusinessRule(apperror.CodeBusinessRule,
			"status cannot be changed through update, use the status endpoint")
	}
	if current.Status != orders.StatusPending {
		return apperror.NewBusinessRule(apperror.CodeBusinessRule,
			"only pending orders can be edited").
			WithDetail("status", string(current.Status))
	}

	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Update(ctx, order); err != nil {
			return fmt.Errorf("update order: %w", err)
		}
		if err := s.repo.SaveLines(ctx, order.ID, order.Lines); err != nil {
			return fmt.Errorf("save lines: %w", err)
		}
		return nil
	})
}

// Delete soft-deletes a purchase order that has not been received.
func (s *Service) Delete(ctx context.Context, orderID id.ID) error {
	order, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return err
	}

	if order.Status == orders.StatusShipped || order.Status == orders.StatusDelivered {
		return apperror.NewBusinessRule(apperror.CodeBusinessRule,
			"shipped or delivered orders cannot be deleted").
			WithDetail("status", string(order.Status))
	}

	return s.repo.SetDeletionMark(ctx, orderID, true)
}

// List retrieves purchase orders with filtering.
func (s *Service) List(ctx context.Context, filter ListFilter) (domain.ListResult[*PurchaseOrder], error) {
	return s.repo.List(ctx, filter)
}
