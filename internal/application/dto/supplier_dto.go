package dto

import (
	"time"

	"github.com/jhoicas/Clinivet-api/internal/domain/entity"
)

// CreateSupplierRequest entrada para crear un proveedor.
type CreateSupplierRequest struct {
	Name  string `json:"name" validate:"required,min=1,max=200"`
	CNPJ  string `json:"cnpj" validate:"omitempty,max=20"`
	Email string `json:"email" validate:"omitempty,email"`
	Phone string `json:"phone" validate:"omitempty,max=30"`
}

// UpdateSupplierRequest entrada para actualizar un proveedor.
type UpdateSupplierRequest struct {
	Name  *string `json:"name" validate:"omitempty,min=1,max=200"`
	CNPJ  *string `json:"cnpj" validate:"omitempty,max=20"`
	Email *string `json:"email" validate:"omitempty,email"`
	Phone *string `json:"phone" validate:"omitempty,max=30"`
}

// SupplierResponse salida de un proveedor.
type SupplierResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CNPJ      string    `json:"cnpj,omitempty"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SupplierListResponse lista paginada de proveedores.
type SupplierListResponse struct {
	Items []SupplierResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// ToSupplierResponse convierte la entidad al DTO de salida.
func ToSupplierResponse(s *entity.Supplier) *SupplierResponse {
	if s == nil {
		return nil
	}
	return &SupplierResponse{
		ID:        s.ID,
		Name:      s.Name,
		CNPJ:      s.CNPJ,
		Email:     s.Email,
		Phone:     s.Phone,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}
