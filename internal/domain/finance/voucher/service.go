package voucher

import (
	"context"
	"fmt"
	"time"

	"merx/internal/core/id"
	"merx/internal/core/tx"
	"merx/internal/domain"
	"merx/pkg/logger"
	"merx/pkg/numerator"
)

// Service provides business operations on the voucher ledger.
type Service struct {
	repo      Repository
	numerator *numerator.Service
	txManager tx.Manager
}

// NewService creates a new voucher service.
func NewService(repo Repository, num *numerator.Service, txManager tx.Manager) *Service {
	return &Service{
		repo:      repo,
		numerator: num,
		txManager: txManager,
	}
}

// Append numbers and writes a ledger entry inside the caller's transaction,
// or its own if none is open. Voucher numbers use the strict strategy so the
// ledger has no gaps.
func (s *Service) Append(ctx context.Context, v *Voucher) error {
	if err := v.Validate(ctx); err != nil {
		return err
	}

	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if v.Number == "" {
			number, err := s.numerator.GetNextNumber(ctx, numerator.DefaultConfig("V"),
				&numerator.Options{Strategy: numerator.StrategyStrict}, time.Now())
			if err != nil {
				return fmt.Errorf("generate number: %w", err)
			}
			v.Number = number
		}

		if err := s.repo.Create(ctx, v); err != nil {
			return fmt.Errorf("create voucher: %w", err)
		}

		logger.Info(ctx, "voucher appended",
			"id", v.ID,
			"number", v.Number,
			"type", string(v.Type),
			"amount", v.Amount.String(),
		)
		return nil
	})
}

// GetByID retrieves a single voucher.
func (s *Service) GetByID(ctx context.Context, voucherID id.ID) (*Voucher, error) {
	return s.repo.GetByID(ctx, voucherID)
}

// List retrieves vouchers with filtering.
func (s *Service) List(ctx context.Context, filter ListFilter) (domain.ListResult[*Voucher], error) {
	return s.repo.List(ctx, filter)
}
