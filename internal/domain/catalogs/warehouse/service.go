package warehouse

import (
	"context"
	"fmt"
	"time"

	"merx/internal/core/apperror"
	"merx/internal/core/tx"
	"merx/internal/domain"
	"merx/pkg/numerator"
)

// Service provides business logic for the Warehouse catalog.
type Service struct {
	*domain.CatalogService[*Warehouse]
	repo      Repository
	numerator *numerator.Service
}

// NewService creates a new Warehouse service.
func NewService(repo Repository, txManager tx.Manager, num *numerator.Service) *Service {
	base := domain.NewCatalogService(domain.CatalogServiceConfig[*Warehouse]{
		Repo:       repo,
		TxManager:  txManager,
		EntityName: "warehouse",
	})

	svc := &Service{
		CatalogService: base,
		repo:           repo,
		numerator:      num,
	}

	base.Hooks().On(domain.BeforeCreate, svc.prepareForCreate)
	base.Hooks().On(domain.BeforeUpdate, svc.prepareForUpdate)

	return svc
}

// prepareForCreate handles code generation and the default flag.
func (s *Service) prepareForCreate(ctx context.Context, wh *Warehouse) error {
	if wh.Code == "" {
		code, err := s.numerator.GetNextNumber(ctx, numerator.DefaultConfig("WH"), nil, time.Now())
		if err != nil {
			return fmt.Errorf("generate code: %w", err)
		}
		wh.Code = code
	}

	if wh.IsDefault {
		if err := s.repo.ClearDefault(ctx); err != nil {
			return err
		}
	}

	return nil
}

func (s *Service) prepareForUpdate(ctx context.Context, wh *Warehouse) error {
	if wh.IsDefault {
		if err := s.repo.ClearDefault(ctx); err != nil {
			return err
		}
	}

	return nil
}

// GetDefault returns the default warehouse.
// Returns NO_WAREHOUSE when none has been configured.
func (s *Service) GetDefault(ctx context.Context) (*Warehouse, error) {
	wh, err := s.repo.GetDefault(ctx)
	if err != nil {
		if appErr, ok := apperror.AsAppError(err); ok && appErr.Code == apperror.CodeNotFound {
			return nil, apperror.NewNoWarehouse()
		}
		return nil, err
	}
	return wh, nil
}
