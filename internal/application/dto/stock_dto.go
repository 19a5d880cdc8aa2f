package dto

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Clinivet-api/internal/domain/entity"
)

// CreateMovementRequest body para POST /api/stock-movements.
// direction solo se acepta (y es obligatoria) cuando type es adjustment.
type CreateMovementRequest struct {
	ProductID string           `json:"product_id" validate:"required,uuid"`
	Type      string           `json:"type" validate:"required,oneof=entry sale adjustment internal_use"`
	Direction string           `json:"direction,omitempty" validate:"omitempty,oneof=in out"`
	Quantity  int              `json:"quantity" validate:"required,gt=0"`
	UnitCost  *decimal.Decimal `json:"unit_cost,omitempty"`
	UnitPrice *decimal.Decimal `json:"unit_price,omitempty"`
	Reason    string           `json:"reason,omitempty" validate:"max=500"`
	RelatedTo json.RawMessage  `json:"related_to,omitempty"`
}

// CreateEntryRequest body para POST /api/stock-movements/entry.
type CreateEntryRequest struct {
	ProductID string           `json:"product_id" validate:"required,uuid"`
	Quantity  int              `json:"quantity" validate:"required,gt=0"`
	UnitCost  *decimal.Decimal `json:"unit_cost,omitempty"`
	Reason    string           `json:"reason,omitempty" validate:"max=500"`
	RelatedTo json.RawMessage  `json:"related_to,omitempty"`
}

// CreateSaleRequest body para POST /api/stock-movements/sale.
type CreateSaleRequest struct {
	ProductID string           `json:"product_id" validate:"required,uuid"`
	Quantity  int              `json:"quantity" validate:"required,gt=0"`
	UnitPrice *decimal.Decimal `json:"unit_price" validate:"required"`
	RelatedTo json.RawMessage  `json:"related_to,omitempty"`
}

// CreateInternalUseRequest body para POST /api/stock-movements/internal-use.
type CreateInternalUseRequest struct {
	ProductID string          `json:"product_id" validate:"required,uuid"`
	Quantity  int             `json:"quantity" validate:"required,gt=0"`
	Reason    string          `json:"reason,omitempty" validate:"max=500"`
	RelatedTo json.RawMessage `json:"related_to,omitempty"`
}

// MovementFilterRequest filtros en query string para listado y resumen.
type MovementFilterRequest struct {
	ProductID string `query:"product_id"`
	Type      string `query:"type" validate:"omitempty,oneof=entry sale adjustment internal_use"`
	UserID    string `query:"user_id"`
	DateFrom  string `query:"date_from"` // RFC 3339 o YYYY-MM-DD
	DateTo    string `query:"date_to"`
	Reason    string `query:"reason"`
}

// MovementResponse salida de un movimiento del ledger.
type MovementResponse struct {
	ID          string           `json:"id"`
	ProductID   string           `json:"product_id"`
	Type        string           `json:"type"`
	Direction   string           `json:"direction"`
	Quantity    int              `json:"quantity"`
	UnitCost    *decimal.Decimal `json:"unit_cost,omitempty"`
	UnitPrice   *decimal.Decimal `json:"unit_price,omitempty"`
	Reason      string           `json:"reason,omitempty"`
	RelatedTo   json.RawMessage  `json:"related_to,omitempty"`
	UserID      string           `json:"user_id"`
	CreatedAt   time.Time        `json:"created_at"`
	ProductName string           `json:"product_name,omitempty"`
	ProductUnit string           `json:"product_unit,omitempty"`
	UserName    string           `json:"user_name,omitempty"`
}

// MovementListResponse lista paginada de movimientos.
type MovementListResponse struct {
	Items []MovementResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// SummaryPeriod rango de fechas efectivo del resumen (eco de los filtros).
type SummaryPeriod struct {
	DateFrom string `json:"date_from,omitempty"`
	DateTo   string `json:"date_to,omitempty"`
}

// MovementSummaryResponse agregados del ledger (reconciliación).
type MovementSummaryResponse struct {
	TotalMovements   int             `json:"total_movements"`
	TotalEntries     int             `json:"total_entries"`
	TotalSales       int             `json:"total_sales"`
	TotalAdjustments int             `json:"total_adjustments"`
	TotalInternalUse int             `json:"total_internal_use"`
	ValueEntries     decimal.Decimal `json:"value_entries"`
	ValueSales       decimal.Decimal `json:"value_sales"`
	Period           SummaryPeriod   `json:"period"`
}

// ToMovementResponse convierte la entidad al DTO de salida.
func ToMovementResponse(m *entity.StockMovement) *MovementResponse {
	if m == nil {
		return nil
	}
	return &MovementResponse{
		ID:        m.ID,
		ProductID: m.ProductID,
		Type:      m.Type,
		Direction: m.Direction,
		Quantity:  m.Quantity,
		UnitCost:  m.UnitCost,
		UnitPrice: m.UnitPrice,
		Reason:    m.Reason,
		RelatedTo: m.RelatedTo,
		UserID:    m.UserID,
		CreatedAt: m.CreatedAt,
	}
}

// ToMovementDetailsResponse convierte la fila con nombres unidos al DTO de salida.
func ToMovementDetailsResponse(d *entity.StockMovementWithDetails) MovementResponse {
	out := ToMovementResponse(&d.StockMovement)
	out.ProductName = d.ProductName
	out.ProductUnit = d.ProductUnit
	out.UserName = d.UserName
	return *out
}
