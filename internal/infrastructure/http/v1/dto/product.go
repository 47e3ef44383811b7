package dto

import (
	"merx/internal/core/id"
	"merx/internal/core/types"
	"merx/internal/domain/catalogs/product"
)

type CreateProductRequest struct {
	Code       string      `json:"code,omitempty"`
	Name       string      `json:"name" binding:"required"`
	Unit       string      `json:"unit" binding:"required"`
	Price      types.Money `json:"price"`
	CategoryID string      `json:"categoryId" binding:"required"`
}

func (r *CreateProductRequest) ToEntity() (*product.Product, error) {
	categoryID, err := id.Parse(r.CategoryID)
	if err != nil {
		return nil, err
	}
	return product.NewProduct(r.Code, r.Name, r.Unit, r.Price, categoryID), nil
}

type UpdateProductRequest struct {
	Code       *string      `json:"code,omitempty"`
	Name       *string      `json:"name,omitempty"`
	Unit       *string      `json:"unit,omitempty"`
	Price      *types.Money `json:"price,omitempty"`
	CategoryID *string      `json:"categoryId,omitempty"`
}

func (r *UpdateProductRequest) ApplyTo(p *product.Product) error {
	if r.Code != nil {
		p.Code = *r.Code
	}
	if r.Name != nil {
		p.Name = *r.Name
	}
	if r.Unit != nil {
		p.Unit = *r.Unit
	}
	if r.Price != nil {
		p.Price = *r.Price
	}
	if r.CategoryID != nil {
		categoryID, err := id.Parse(*r.CategoryID)
		if err != nil {
			return err
		}
		p.CategoryID = categoryID
	}
	return nil
}

type ProductResponse struct {
	CatalogResponse
	Unit       string      `json:"unit"`
	Price      types.Money `json:"price"`
	CategoryID string      `json:"categoryId"`
}

func FromProduct(p *product.Product) *ProductResponse {
	return &ProductResponse{
		CatalogResponse: FromCatalog(p.Catalog),
		Unit:            p.Unit,
		Price:           p.Price,
		CategoryID:      p.CategoryID.String(),
	}
}
