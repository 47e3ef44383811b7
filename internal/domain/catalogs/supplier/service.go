package supplier

import (
	"context"
	"fmt"
	"time"

	"merx/internal/core/tx"
	"merx/internal/domain"
	"merx/pkg/numerator"
)

// Service provides business logic for the Supplier catalog.
type Service struct {
	*domain.CatalogService[*Supplier]
	repo      Repository
	numerator *numerator.Service
}

// NewService creates a new Supplier service.
func NewService(repo Repository, txManager tx.Manager, num *numerator.Service) *Service {
	base := domain.NewCatalogService(domain.CatalogServiceConfig[*Supplier]{
		Repo:       repo,
		TxManager:  txManager,
		EntityName: "supplier",
	})

	svc := &Service{
		CatalogService: base,
		repo:           repo,
		numerator:      num,
	}

	base.Hooks().On(domain.BeforeCreate, svc.generateCode)

	return svc
}

func (s *Service) generateCode(ctx context.Context, sup *Supplier) error {
	if sup.Code != "" {
		return nil
	}
	code, err := s.numerator.GetNextNumber(ctx, numerator.DefaultConfig("SUP"), nil, time.Now())
	if err != nil {
		return fmt.Errorf("generate code: %w", err)
	}
	sup.Code = code
	return nil
}
