package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Clinivet-api/internal/domain/entity"
)

// CreateProductRequest entrada para crear un producto. El stock inicial es
// siempre 0: toda existencia entra por un movimiento de tipo entry.
type CreateProductRequest struct {
	Name        string          `json:"name" validate:"required,min=1,max=200"`
	Description string          `json:"description" validate:"omitempty,max=1000"`
	CostPrice   decimal.Decimal `json:"cost_price"`
	SalePrice   decimal.Decimal `json:"sale_price"`
	MinStock    int             `json:"min_stock" validate:"omitempty,min=0"`
	SupplierID  string          `json:"supplier_id" validate:"omitempty,uuid"`
	Category    string          `json:"category" validate:"omitempty,max=100"`
	Unit        string          `json:"unit" validate:"omitempty,max=50"`
	Barcode     string          `json:"barcode" validate:"omitempty,max=100"`
}

// UpdateProductRequest entrada para actualizar un producto. CurrentStock no es
// editable por esta vía: se mueve con el ledger.
type UpdateProductRequest struct {
	Name        *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Description *string          `json:"description" validate:"omitempty,max=1000"`
	CostPrice   *decimal.Decimal `json:"cost_price"`
	SalePrice   *decimal.Decimal `json:"sale_price"`
	MinStock    *int             `json:"min_stock" validate:"omitempty,min=0"`
	SupplierID  *string          `json:"supplier_id" validate:"omitempty,uuid"`
	Category    *string          `json:"category" validate:"omitempty,max=100"`
	Unit        *string          `json:"unit" validate:"omitempty,max=50"`
	Barcode     *string          `json:"barcode" validate:"omitempty,max=100"`
	IsActive    *bool            `json:"is_active"`
}

// ProductFilterRequest filtros de listado de productos.
type ProductFilterRequest struct {
	Name       string `query:"name"`
	Category   string `query:"category"`
	SupplierID string `query:"supplier_id"`
	IsActive   *bool  `query:"is_active"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Description  string          `json:"description,omitempty"`
	CostPrice    decimal.Decimal `json:"cost_price"`
	SalePrice    decimal.Decimal `json:"sale_price"`
	CurrentStock int             `json:"current_stock"`
	MinStock     int             `json:"min_stock"`
	StockStatus  string          `json:"stock_status"`
	SupplierID   string          `json:"supplier_id,omitempty"`
	Category     string          `json:"category,omitempty"`
	Unit         string          `json:"unit,omitempty"`
	Barcode      string          `json:"barcode,omitempty"`
	IsActive     bool            `json:"is_active"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// ToProductResponse convierte la entidad al DTO de salida.
func ToProductResponse(p *entity.Product) *ProductResponse {
	if p == nil {
		return nil
	}
	return &ProductResponse{
		ID:           p.ID,
		Name:         p.Name,
		Description:  p.Description,
		CostPrice:    p.CostPrice,
		SalePrice:    p.SalePrice,
		CurrentStock: p.CurrentStock,
		MinStock:     p.MinStock,
		StockStatus:  p.StockStatus(),
		SupplierID:   p.SupplierID,
		Category:     p.Category,
		Unit:         p.Unit,
		Barcode:      p.Barcode,
		IsActive:     p.IsActive,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}
