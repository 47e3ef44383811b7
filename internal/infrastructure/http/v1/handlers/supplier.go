package handlers

import (
	"merx/internal/domain/catalogs/supplier"
	"merx/internal/infrastructure/http/v1/dto"
)

// SupplierHandler handles HTTP requests for the Supplier catalog.
type SupplierHandler struct {
	*CatalogHandler[*supplier.Supplier, dto.CreateSupplierRequest, dto.UpdateSupplierRequest]
}

// NewSupplierHandler creates a new supplier handler.
func NewSupplierHandler(base *BaseHandler, service *supplier.Service) *SupplierHandler {
	cfg := CatalogHandlerConfig[*supplier.Supplier, dto.CreateSupplierRequest, dto.UpdateSupplierRequest]{
		Service: service,
		MapCreateDTO: func(req dto.CreateSupplierRequest) (*supplier.Supplier, error) {
			return req.ToEntity(), nil
		},
		MapUpdateDTO: func(req dto.UpdateSupplierRequest, existing *supplier.Supplier) (*supplier.Supplier, error) {
			req.ApplyTo(existing)
			return existing, nil
		},
		MapToDTO: func(s *supplier.Supplier) any {
			return dto.FromSupplier(s)
		},
	}

	return &SupplierHandler{
		CatalogHandler: NewCatalogHandler(base, cfg),
	}
}
