package dto

import (
	"time"

	"github.com/jhoicas/Clinivet-api/internal/domain/entity"
)

// CreateClientRequest entrada para crear un tutor.
type CreateClientRequest struct {
	Name    string `json:"name" validate:"required,min=1,max=200"`
	Email   string `json:"email" validate:"omitempty,email"`
	Phone   string `json:"phone" validate:"omitempty,max=30"`
	CPF     string `json:"cpf" validate:"omitempty,max=20"`
	Address string `json:"address" validate:"omitempty,max=300"`
	City    string `json:"city" validate:"omitempty,max=100"`
	State   string `json:"state" validate:"omitempty,max=50"`
	ZipCode string `json:"zip_code" validate:"omitempty,max=20"`
	Notes   string `json:"notes" validate:"omitempty,max=1000"`
}

// UpdateClientRequest entrada para actualizar un tutor.
type UpdateClientRequest struct {
	Name    *string `json:"name" validate:"omitempty,min=1,max=200"`
	Email   *string `json:"email" validate:"omitempty,email"`
	Phone   *string `json:"phone" validate:"omitempty,max=30"`
	CPF     *string `json:"cpf" validate:"omitempty,max=20"`
	Address *string `json:"address" validate:"omitempty,max=300"`
	City    *string `json:"city" validate:"omitempty,max=100"`
	State   *string `json:"state" validate:"omitempty,max=50"`
	ZipCode *string `json:"zip_code" validate:"omitempty,max=20"`
	Notes   *string `json:"notes" validate:"omitempty,max=1000"`
}

// ClientResponse salida de un tutor.
type ClientResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	CPF       string    `json:"cpf,omitempty"`
	Address   string    `json:"address,omitempty"`
	City      string    `json:"city,omitempty"`
	State     string    `json:"state,omitempty"`
	ZipCode   string    `json:"zip_code,omitempty"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ClientListResponse lista paginada de tutores.
type ClientListResponse struct {
	Items []ClientResponse `json:"items"`
	Page  PageResponse     `json:"page"`
}

// ToClientResponse convierte la entidad al DTO de salida.
func ToClientResponse(c *entity.Client) *ClientResponse {
	if c == nil {
		return nil
	}
	return &ClientResponse{
		ID:        c.ID,
		Name:      c.Name,
		Email:     c.Email,
		Phone:     c.Phone,
		CPF:       c.CPF,
		Address:   c.Address,
		City:      c.City,
		State:     c.State,
		ZipCode:   c.ZipCode,
		Notes:     c.Notes,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
