package dto

import (
	"merx/internal/domain/catalogs/warehouse"
)

type CreateWarehouseRequest struct {
	Code      string `json:"code,omitempty"`
	Name      string `json:"name" binding:"required"`
	Location  string `json:"location,omitempty"`
	IsDefault bool   `json:"isDefault,omitempty"`
}

func (r *CreateWarehouseRequest) ToEntity() *warehouse.Warehouse {
	w := warehouse.NewWarehouse(r.Code, r.Name)
	w.Location = r.Location
	w.IsDefault = r.IsDefault
	return w
}

type UpdateWarehouseRequest struct {
	Code      *string `json:"code,omitempty"`
	Name      *string `json:"name,omitempty"`
	Location  *string `json:"location,omitempty"`
	IsActive  *bool   `json:"isActive,omitempty"`
	IsDefault *bool   `json:"isDefault,omitempty"`
}

func (r *UpdateWarehouseRequest) ApplyTo(w *warehouse.Warehouse) {
	if r.Code != nil {
		w.Code = *r.Code
	}
	if r.Name != nil {
		w.Name = *r.Name
	}
	if r.Location != nil {
		w.Location = *r.Location
	}
	if r.IsActive != nil {
		w.IsActive = *r.IsActive
	}
	if r.IsDefault != nil {
		w.IsDefault = *r.IsDefault
	}
}

type WarehouseResponse struct {
	CatalogResponse
	Location  string `json:"location,omitempty"`
	IsActive  bool   `json:"isActive"`
	IsDefault bool   `json:"isDefault"`
}

func FromWarehouse(w *warehouse.Warehouse) *WarehouseResponse {
	return &WarehouseResponse{
		CatalogResponse: FromCatalog(w.Catalog),
		Location:        w.Location,
		IsActive:        w.IsActive,
		IsDefault:       w.IsDefault,
	}
}
