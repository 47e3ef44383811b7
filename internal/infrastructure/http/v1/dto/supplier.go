package dto

import (
	"merx/internal/domain/catalogs/supplier"
)

type CreateSupplierRequest struct {
	Code    string `json:"code,omitempty"`
	Name    string `json:"name" binding:"required"`
	Contact string `json:"contact,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Email   string `json:"email,omitempty"`
}

func (r *CreateSupplierRequest) ToEntity() *supplier.Supplier {
	s := supplier.NewSupplier(r.Code, r.Name)
	s.Contact = r.Contact
	s.Phone = r.Phone
	s.Email = r.Email
	return s
}

type UpdateSupplierRequest struct {
	Code    *string `json:"code,omitempty"`
	Name    *string `json:"name,omitempty"`
	Contact *string `json:"contact,omitempty"`
	Phone   *string `json:"phone,omitempty"`
	Email   *string `json:"email,omitempty"`
}

func (r *UpdateSupplierRequest) ApplyTo(s *supplier.Supplier) {
	if r.Code != nil {
		s.Code = *r.Code
	}
	if r.Name != nil {
		s.Name = *r.Name
	}
	if r.Contact != nil {
		s.Contact = *r.Contact
	}
	if r.Phone != nil {
		s.Phone = *r.Phone
	}
	if r.Email != nil {
		s.Email = *r.Email
	}
}

type SupplierResponse struct {
	CatalogResponse
	Contact string `json:"contact,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Email   string `json:"email,omitempty"`
}

func FromSupplier(s *supplier.Supplier) *SupplierResponse {
	return &SupplierResponse{
		CatalogResponse: FromCatalog(s.Catalog),
		Contact:         s.Contact,
		Phone:           s.Phone,
		Email:           s.Email,
	}
}
