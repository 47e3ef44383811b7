// Package supplier provides the Supplier catalog.
package supplier

import (
	"context"
	"regexp"

	"merx/internal/core/apperror"
	"merx/internal/core/entity"
)

// Supplier represents a selling counterparty on purchase orders.
type Supplier struct {
	entity.Catalog

	Contact string `db:"contact" json:"contact,omitempty"`
	Phone   string `db:"phone" json:"phone,omitempty"`
	Email   string `db:"email" json:"email,omitempty"`
}

// NewSupplier creates a new Supplier.
func NewSupplier(code, name string) *Supplier {
	return &Supplier{
		Catalog: entity.NewCatalog(code, name),
	}
}

// Validate implements entity.Validatable.
func (s *Supplier) Validate(ctx context.Context) error {
	if err := s.Catalog.Validate(ctx); err != nil {
		return err
	}

	if s.Email != "" && !emailRe.MatchString(s.Email) {
		return apperror.NewValidation("invalid email").
			WithDetail("field", "email").
			WithDetail("value", s.Email)
	}

	return nil
}

var emailRe = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
