package category

import (
	"context"
	"fmt"
	"time"

	"merx/internal/core/tx"
	"merx/internal/domain"
	"merx/pkg/numerator"
)

// Service provides business logic for the Category catalog.
type Service struct {
	*domain.CatalogService[*Category]
	repo      Repository
	numerator *numerator.Service
}

// NewService creates a new Category service.
func NewService(repo Repository, txManager tx.Manager, num *numerator.Service) *Service {
	base := domain.NewCatalogService(domain.CatalogServiceConfig[*Category]{
		Repo:       repo,
		TxManager:  txManager,
		EntityName: "category",
	})

	svc := &Service{
		CatalogService: base,
		repo:           repo,
		numerator:      num,
	}

	base.Hooks().On(domain.BeforeCreate, svc.generateCode)

	return svc
}

func (s *Service) generateCode(ctx context.Context, c *Category) error {
	if c.Code != "" {
		return nil
	}
	code, err := s.numerator.GetNextNumber(ctx, numerator.DefaultConfig("CAT"), nil, time.Now())
	if err != nil {
		return fmt.Errorf("generate code: %w", err)
	}
	c.Code = code
	return nil
}
