package dto

import (
	"merx/internal/domain/catalogs/customer"
)

type CreateCustomerRequest struct {
	Code    string `json:"code,omitempty"`
	Name    string `json:"name" binding:"required"`
	Contact string `json:"contact,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Email   string `json:"email,omitempty"`
}

func (r *CreateCustomerRequest) ToEntity() *customer.Customer {
	c := customer.NewCustomer(r.Code, r.Name)
	c.Contact = r.Contact
	c.Phone = r.Phone
	c.Email = r.Email
	return c
}

type UpdateCustomerRequest struct {
	Code    *string `json:"code,omitempty"`
	Name    *string `json:"name,omitempty"`
	Contact *string `json:"contact,omitempty"`
	Phone   *string `json:"phone,omitempty"`
	Email   *string `json:"email,omitempty"`
}

func (r *UpdateCustomerRequest) ApplyTo(c *customer.Customer) {
	if r.Code != nil {
		c.Code = *r.Code
	}
	if r.Name != nil {
		c.Name = *r.Name
	}
	if r.Contact != nil {
		c.Contact = *r.Contact
	}
	if r.Phone != nil {
		c.Phone = *r.Phone
	}
	if r.Email != nil {
		c.Email = *r.Email
	}
}

type CustomerResponse struct {
	CatalogResponse
	Contact string `json:"contact,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Email   string `json:"email,omitempty"`
}

func FromCustomer(c *customer.Customer) *CustomerResponse {
	return &CustomerResponse{
		CatalogResponse: FromCatalog(c.Catalog),
		Contact:         c.Contact,
		Phone:           c.Phone,
		Email:           c.Email,
	}
}
