package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Clinivet-api/internal/domain/entity"
)

// MovementFilter filtros del listado y del resumen de movimientos.
// Los campos vacíos/nil no filtran.
type MovementFilter struct {
	ProductID string
	Type      string
	UserID    string
	DateFrom  *time.Time
	DateTo    *time.Time
	Reason    string // búsqueda parcial, case-insensitive
}

// StockMovementRepository define el puerto de persistencia del ledger (DIP).
// El ledger es append-and-delete: no existe update de movimientos.
type StockMovementRepository interface {
	Create(ctx context.Context, movement *entity.StockMovement) error
	GetByID(ctx context.Context, id string) (*entity.StockMovement, error)
	Delete(ctx context.Context, id string) error
	// List devuelve una página de movimientos con nombres de producto y usuario
	// unidos, más el total sin paginar. Orden: created_at DESC.
	List(ctx context.Context, filter MovementFilter, limit, offset int) ([]*entity.StockMovementWithDetails, int, error)
	// ListForSummary devuelve todas las filas que cumplen el filtro, sin
	// paginación, para la agregación del resumen.
	ListForSummary(ctx context.Context, filter MovementFilter) ([]*entity.StockMovement, error)
}
