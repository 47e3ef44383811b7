package handlers

import (
	"merx/internal/domain/catalogs/customer"
	"merx/internal/infrastructure/http/v1/dto"
)

// CustomerHandler handles HTTP requests for the Customer catalog.
type CustomerHandler struct {
	*CatalogHandler[*customer.Customer, dto.CreateCustomerRequest, dto.UpdateCustomerRequest]
}

// NewCustomerHandler creates a new customer handler.
func NewCustomerHandler(base *BaseHandler, service *customer.Service) *CustomerHandler {
	cfg := CatalogHandlerConfig[*customer.Customer, dto.CreateCustomerRequest, dto.UpdateCustomerRequest]{
		Service: service,
		MapCreateDTO: func(req dto.CreateCustomerRequest) (*customer.Customer, error) {
			return req.ToEntity(), nil
		},
		MapUpdateDTO: func(req dto.UpdateCustomerRequest, existing *customer.Customer) (*customer.Customer, error) {
			req.ApplyTo(existing)
			return existing, nil
		},
		MapToDTO: func(c *customer.Customer) any {
			return dto.FromCustomer(c)
		},
	}

	return &CustomerHandler{
		CatalogHandler: NewCatalogHandler(base, cfg),
	}
}
