package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto de la clínica (medicamento, insumo, alimento).
// CurrentStock lo muta exclusivamente el ledger de movimientos; MinStock es un
// umbral de reporte (stock bajo), nunca un piso duro.
type Product struct {
	ID           string
	Name         string
	Description  string
	CostPrice    decimal.Decimal // costo de compra, informativo
	SalePrice    decimal.Decimal // precio de venta, informativo
	CurrentStock int             // invariante: >= 0 en todo momento
	MinStock     int
	SupplierID   string
	Category     string
	Unit         string // unidad de presentación: "caja", "ampolla", "kg"...
	Barcode      string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// StockStatus clasifica el nivel de stock para reportes.
func (p *Product) StockStatus() string {
	switch {
	case p.CurrentStock <= 0:
		return "out"
	case p.CurrentStock <= p.MinStock:
		return "low"
	default:
		return "normal"
	}
}

// IsLowStock indica si el producto está en o por debajo de su umbral mínimo.
func (p *Product) IsLowStock() bool {
	return p.CurrentStock <= p.MinStock
}
