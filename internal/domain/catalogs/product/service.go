package product

import (
	"context"
	"fmt"
	"time"

	"merx/internal/core/apperror"
	"merx/internal/core/id"
	"merx/internal/core/tx"
	"merx/internal/domain"
	"merx/pkg/numerator"
)

// Service provides business logic for the Product catalog.
type Service struct {
	*domain.CatalogService[*Product]
	repo      Repository
	numerator *numerator.Service
}

// NewService creates a new Product service.
func NewService(repo Repository, txManager tx.Manager, num *numerator.Service) *Service {
	base := domain.NewCatalogService(domain.CatalogServiceConfig[*Product]{
		Repo:       repo,
		TxManager:  txManager,
		EntityName: "product",
	})

	svc := &Service{
		CatalogService: base,
		repo:           repo,
		numerator:      num,
	}

	base.Hooks().On(domain.BeforeCreate, svc.prepareForCreate)

	return svc
}

// prepareForCreate generates a SKU if missing and rejects duplicates.
func (s *Service) prepareForCreate(ctx context.Context, p *Product) error {
	if p.Code == "" {
		code, err := s.numerator.GetNextNumber(ctx, numerator.DefaultConfig("PRD"), nil, time.Now())
		if err != nil {
			return fmt.Errorf("generate sku: %w", err)
		}
		p.Code = code
		return nil
	}

	exists, err := s.repo.ExistsByCode(ctx, p.Code)
	if err != nil {
		return fmt.Errorf("check sku: %w", err)
	}
	if exists {
		return apperror.NewDuplicate("product", "sku", p.Code)
	}
	return nil
}

// ListByCategory retrieves products in a category.
func (s *Service) ListByCategory(ctx context.Context, categoryID id.ID, filter domain.ListFilter) (domain.ListResult[*Product], error) {
	return s.repo.ListByCategory(ctx, categoryID, filter)
}
