// Package customer provides the Customer catalog.
package customer

import (
	"context"
	"regexp"

	"merx/internal/core/apperror"
	"merx/internal/core/entity"
)

// Customer represents a buying counterparty on sales orders.
type Customer struct {
	entity.Catalog

	// Contact is the contact person name
	Contact string `db:"contact" json:"contact,omitempty"`

	Phone string `db:"phone" json:"phone,omitempty"`
	Email string `db:"email" json:"email,omitempty"`
}

// NewCustomer creates a new Customer.
func NewCustomer(code, name string) *Customer {
	return &Customer{
		Catalog: entity.NewCatalog(code, name),
	}
}

// Validate implements entity.Validatable.
func (c *Customer) Validate(ctx context.Context) error {
	if err := c.Catalog.Validate(ctx); err != nil {
		return err
	}

	if c.Email != "" && !emailRe.MatchString(c.Email) {
		return apperror.NewValidation("invalid email").
			WithDetail("field", "email").
			WithDetail("value", c.Email)
	}

	return nil
}

var emailRe = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
