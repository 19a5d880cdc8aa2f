package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Especies aceptadas para una mascota.
const (
	SpeciesDog     = "dog"
	SpeciesCat     = "cat"
	SpeciesBird    = "bird"
	SpeciesRabbit  = "rabbit"
	SpeciesHamster = "hamster"
	SpeciesFish    = "fish"
	SpeciesReptile = "reptile"
	SpeciesOther   = "other"
)

// ValidSpecies indica si la especie pertenece al conjunto aceptado.
func ValidSpecies(s string) bool {
	switch s {
	case SpeciesDog, SpeciesCat, SpeciesBird, SpeciesRabbit,
		SpeciesHamster, SpeciesFish, SpeciesReptile, SpeciesOther:
		return true
	}
	return false
}

// Pet representa una mascota atendida por la clínica.
type Pet struct {
	ID        string
	ClientID  string
	Name      string
	Species   string
	Breed     string
	Color     string
	BirthDate *time.Time
	Weight    *decimal.Decimal // kg
	Microchip string
	Notes     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
