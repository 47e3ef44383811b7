package customer

import (
	"context"
	"fmt"
	"time"

	"merx/internal/core/tx"
	"merx/internal/domain"
	"merx/pkg/numerator"
)

// Service provides business logic for the Customer catalog.
type Service struct {
	*domain.CatalogService[*Customer]
	repo      Repository
	numerator *numerator.Service
}

// NewService creates a new Customer service.
func NewService(repo Repository, txManager tx.Manager, num *numerator.Service) *Service {
	base := domain.NewCatalogService(domain.CatalogServiceConfig[*Customer]{
		Repo:       repo,
		TxManager:  txManager,
		EntityName: "customer",
	})

	svc := &Service{
		CatalogService: base,
		repo:           repo,
		numerator:      num,
	}

	base.Hooks().On(domain.BeforeCreate, svc.generateCode)

	return svc
}

func (s *Service) generateCode(ctx context.Context, c *Customer) error {
	if c.Code != "" {
		return nil
	}
	code, err := s.numerator.GetNextNumber(ctx, numerator.DefaultConfig("CUS"), nil, time.Now())
	if err != nil {
		return fmt.Errorf("generate code: %w", err)
	}
	c.Code = code
	return nil
}
