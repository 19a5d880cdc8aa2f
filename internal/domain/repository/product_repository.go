package repository

import (
	"context"

	"github.com/jhoicas/Clinivet-api/internal/domain/entity"
)

// ProductFilter filtros opcionales para el listado de productos.
type ProductFilter struct {
	Name       string // búsqueda parcial, case-insensitive
	Category   string
	SupplierID string
	IsActive   *bool
}

// ProductRepository define el puerto de persistencia para Product (DIP).
// GetForUpdate y UpdateStock son de uso exclusivo del ledger de stock.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	// GetForUpdate obtiene el producto bloqueando su fila (SELECT FOR UPDATE);
	// solo tiene sentido dentro de una transacción.
	GetForUpdate(ctx context.Context, id string) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	// UpdateStock sobreescribe current_stock con un valor absoluto no negativo.
	UpdateStock(ctx context.Context, productID string, newStock int) error
	FindByBarcode(ctx context.Context, barcode string) (*entity.Product, error)
	// FindLowStock devuelve los productos activos con current_stock <= min_stock,
	// orden ascendente por current_stock.
	FindLowStock(ctx context.Context) ([]*entity.Product, error)
	List(ctx context.Context, filter ProductFilter, limit, offset int) ([]*entity.Product, int, error)
	Delete(ctx context.Context, id string) error
}
