package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Clinivet-api/internal/domain/entity"
)

// CreatePetRequest entrada para crear una mascota.
type CreatePetRequest struct {
	ClientID  string           `json:"client_id" validate:"required,uuid"`
	Name      string           `json:"name" validate:"required,min=1,max=200"`
	Species   string           `json:"species" validate:"required,oneof=dog cat bird rabbit hamster fish reptile other"`
	Breed     string           `json:"breed" validate:"omitempty,max=100"`
	Color     string           `json:"color" validate:"omitempty,max=50"`
	BirthDate *time.Time       `json:"birth_date"`
	Weight    *decimal.Decimal `json:"weight"`
	Microchip string           `json:"microchip" validate:"omitempty,max=50"`
	Notes     string           `json:"notes" validate:"omitempty,max=1000"`
}

// UpdatePetRequest entrada para actualizar una mascota.
type UpdatePetRequest struct {
	Name      *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Species   *string          `json:"species" validate:"omitempty,oneof=dog cat bird rabbit hamster fish reptile other"`
	Breed     *string          `json:"breed" validate:"omitempty,max=100"`
	Color     *string          `json:"color" validate:"omitempty,max=50"`
	BirthDate *time.Time       `json:"birth_date"`
	Weight    *decimal.Decimal `json:"weight"`
	Microchip *string          `json:"microchip" validate:"omitempty,max=50"`
	Notes     *string          `json:"notes" validate:"omitempty,max=1000"`
}

// PetResponse salida de una mascota.
type PetResponse struct {
	ID        string           `json:"id"`
	ClientID  string           `json:"client_id"`
	Name      string           `json:"name"`
	Species   string           `json:"species"`
	Breed     string           `json:"breed,omitempty"`
	Color     string           `json:"color,omitempty"`
	BirthDate *time.Time       `json:"birth_date,omitempty"`
	Weight    *decimal.Decimal `json:"weight,omitempty"`
	Microchip string           `json:"microchip,omitempty"`
	Notes     string           `json:"notes,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

// PetListResponse lista paginada de mascotas.
type PetListResponse struct {
	Items []PetResponse `json:"items"`
	Page  PageResponse  `json:"page"`
}

// ToPetResponse convierte la entidad al DTO de salida.
func ToPetResponse(p *entity.Pet) *PetResponse {
	if p == nil {
		return nil
	}
	return &PetResponse{
		ID:        p.ID,
		ClientID:  p.ClientID,
		Name:      p.Name,
		Species:   p.Species,
		Breed:     p.Breed,
		Color:     p.Color,
		BirthDate: p.BirthDate,
		Weight:    p.Weight,
		Microchip: p.Microchip,
		Notes:     p.Notes,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}
