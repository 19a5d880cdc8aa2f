package entity

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Clinivet-api/internal/domain"
)

// Tipos de movimiento de stock (tag cerrado).
const (
	MovementTypeEntry       = "entry"        // entrada (recepción de mercancía)
	MovementTypeSale        = "sale"         // venta a cliente
	MovementTypeAdjustment  = "adjustment"   // corrección manual, en cualquier sentido
	MovementTypeInternalUse = "internal_use" // consumo interno de la clínica
)

// Dirección del efecto sobre el stock. Para entry/sale/internal_use se deriva
// del tipo; para adjustment la decide el caller de forma explícita.
const (
	DirectionIn  = "in"
	DirectionOut = "out"
)

// StockMovement es una fila inmutable del ledger de stock. No existe update:
// un movimiento se corrige borrándolo (lo que revierte su efecto) y creándolo
// de nuevo.
type StockMovement struct {
	ID        string
	ProductID string
	Type      string
	Direction string
	Quantity  int // siempre positivo; el signo lo aporta Direction
	UnitCost  *decimal.Decimal
	UnitPrice *decimal.Decimal
	Reason    string
	RelatedTo json.RawMessage // vínculo opaco a un registro externo (venta, procedimiento)
	UserID    string
	CreatedAt time.Time
}

// Delta devuelve el efecto con signo del movimiento sobre el stock.
func (m *StockMovement) Delta() int {
	if m.Direction == DirectionIn {
		return m.Quantity
	}
	return -m.Quantity
}

// StockMovementWithDetails es la fila del ledger con los nombres ya unidos
// desde products y users, para listados.
type StockMovementWithDetails struct {
	StockMovement
	ProductName string
	ProductUnit string
	UserName    string
}

// ValidMovementType indica si el tipo pertenece al tag cerrado.
func ValidMovementType(t string) bool {
	switch t {
	case MovementTypeEntry, MovementTypeSale, MovementTypeAdjustment, MovementTypeInternalUse:
		return true
	}
	return false
}

// DirectionForType resuelve la dirección de un movimiento. Los ajustes no
// tienen dirección implícita: el caller debe pasarla y aquí solo se valida.
func DirectionForType(movementType, direction string) (string, error) {
	switch movementType {
	case MovementTypeEntry:
		return DirectionIn, nil
	case MovementTypeSale, MovementTypeInternalUse:
		return DirectionOut, nil
	case MovementTypeAdjustment:
		if direction != DirectionIn && direction != DirectionOut {
			return "", domain.ErrInvalidInput
		}
		return direction, nil
	}
	return "", domain.ErrInvalidInput
}
