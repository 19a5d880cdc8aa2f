package stock_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Clinivet-api/internal/application/dto"
	"github.com/jhoicas/Clinivet-api/internal/application/stock"
	"github.com/jhoicas/Clinivet-api/internal/domain/entity"
	"github.com/jhoicas/Clinivet-api/internal/domain/repository"
	"github.com/jhoicas/Clinivet-api/pkg/retry"
)

func newTestSummary(store *memStore) *stock.SummaryUseCase {
	cfg := retry.Config{MaxAttempts: 3, InitialDelay: time.Millisecond}
	return stock.NewSummaryUseCase(&memMovementRepo{store: store}, cfg)
}

func seedMovement(store *memStore, productID, movType, direction string, qty int, unitCost, unitPrice *decimal.Decimal, at time.Time) *entity.StockMovement {
	m := &entity.StockMovement{
		ID:        uuid.New().String(),
		ProductID: productID,
		Type:      movType,
		Direction: direction,
		Quantity:  qty,
		UnitCost:  unitCost,
		UnitPrice: unitPrice,
		UserID:    "user-1",
		CreatedAt: at,
	}
	store.movements[m.ID] = m
	return m
}

func TestSummary_AgregaPorTipo(t *testing.T) {
	store := newMemStore()
	now := time.Now()
	seedMovement(store, "prod-1", entity.MovementTypeEntry, entity.DirectionIn, 10, dec(8), nil, now.Add(-4*time.Hour))
	seedMovement(store, "prod-1", entity.MovementTypeEntry, entity.DirectionIn, 5, dec(9), nil, now.Add(-3*time.Hour))
	seedMovement(store, "prod-1", entity.MovementTypeSale, entity.DirectionOut, 3, nil, dec(25), now.Add(-2*time.Hour))
	seedMovement(store, "prod-2", entity.MovementTypeAdjustment, entity.DirectionOut, 2, nil, nil, now.Add(-time.Hour))
	seedMovement(store, "prod-2", entity.MovementTypeInternalUse, entity.DirectionOut, 1, nil, nil, now)
	uc := newTestSummary(store)

	sum, err := uc.Summary(context.Background(), repository.MovementFilter{})

	require.NoError(t, err)
	assert.Equal(t, 5, sum.TotalMovements)
	assert.Equal(t, 2, sum.TotalEntries)
	assert.Equal(t, 1, sum.TotalSales)
	assert.Equal(t, 1, sum.TotalAdjustments)
	assert.Equal(t, 1, sum.TotalInternalUse)
	// value_entries = 10×8 + 5×9 = 125; value_sales = 3×25 = 75
	assert.True(t, sum.ValueEntries.Equal(decimal.NewFromInt(125)), "value_entries = %s", sum.ValueEntries)
	assert.True(t, sum.ValueSales.Equal(decimal.NewFromInt(75)), "value_sales = %s", sum.ValueSales)
}

func TestSummary_IgnoraFilasSinPrecio(t *testing.T) {
	store := newMemStore()
	now := time.Now()
	seedMovement(store, "prod-1", entity.MovementTypeEntry, entity.DirectionIn, 10, dec(8), nil, now)
	// Entrada sin coste y venta sin precio: cuentan en los totales pero no en los valores
	seedMovement(store, "prod-1", entity.MovementTypeEntry, entity.DirectionIn, 7, nil, nil, now)
	seedMovement(store, "prod-1", entity.MovementTypeSale, entity.DirectionOut, 2, nil, nil, now)
	uc := newTestSummary(store)

	sum, err := uc.Summary(context.Background(), repository.MovementFilter{})

	require.NoError(t, err)
	assert.Equal(t, 2, sum.TotalEntries)
	assert.Equal(t, 1, sum.TotalSales)
	assert.True(t, sum.ValueEntries.Equal(decimal.NewFromInt(80)))
	assert.True(t, sum.ValueSales.IsZero())
}

func TestSummary_FiltraPorFechasYProducto(t *testing.T) {
	store := newMemStore()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	seedMovement(store, "prod-1", entity.MovementTypeSale, entity.DirectionOut, 1, nil, dec(10), base)
	seedMovement(store, "prod-1", entity.MovementTypeSale, entity.DirectionOut, 2, nil, dec(10), base.AddDate(0, 0, 5))
	seedMovement(store, "prod-2", entity.MovementTypeSale, entity.DirectionOut, 9, nil, dec(10), base.AddDate(0, 0, 6))
	uc := newTestSummary(store)

	from := base.AddDate(0, 0, 1)
	to := base.AddDate(0, 0, 10)
	sum, err := uc.Summary(context.Background(), repository.MovementFilter{
		ProductID: "prod-1",
		DateFrom:  &from,
		DateTo:    &to,
	})

	require.NoError(t, err)
	assert.Equal(t, 1, sum.TotalMovements)
	assert.True(t, sum.ValueSales.Equal(decimal.NewFromInt(20)))
	assert.Equal(t, "2026-03-02", sum.Period.DateFrom)
	assert.Equal(t, "2026-03-11", sum.Period.DateTo)
}

func TestSummary_VacioEsCero(t *testing.T) {
	uc := newTestSummary(newMemStore())

	sum, err := uc.Summary(context.Background(), repository.MovementFilter{})

	require.NoError(t, err)
	assert.Equal(t, 0, sum.TotalMovements)
	assert.True(t, sum.ValueEntries.IsZero())
	assert.True(t, sum.ValueSales.IsZero())
}

func TestListMovements_PaginaYOrdena(t *testing.T) {
	store := newMemStore()
	seedProduct(store, "prod-1", 10, 5, true)
	now := time.Now()
	for i := 0; i < 5; i++ {
		seedMovement(store, "prod-1", entity.MovementTypeSale, entity.DirectionOut, i+1, nil, dec(10), now.Add(time.Duration(i)*time.Minute))
	}
	uc := newTestSummary(store)

	page := dto.PageRequest{Page: 1, Limit: 2}
	res, err := uc.ListMovements(context.Background(), repository.MovementFilter{}, page)

	require.NoError(t, err)
	require.Len(t, res.Items, 2)
	assert.Equal(t, 5, res.Page.Total)
	assert.Equal(t, 3, res.Page.TotalPages)
	// Más reciente primero, con los datos del producto unidos
	assert.Equal(t, 5, res.Items[0].Quantity)
	assert.Equal(t, 4, res.Items[1].Quantity)
	assert.Equal(t, "Amoxicilina 500mg", res.Items[0].ProductName)
}
