package stock_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Clinivet-api/internal/application/stock"
	"github.com/jhoicas/Clinivet-api/internal/domain"
	"github.com/jhoicas/Clinivet-api/internal/domain/entity"
	"github.com/jhoicas/Clinivet-api/pkg/logger"
	"github.com/jhoicas/Clinivet-api/pkg/retry"
)

func newTestLedger(store *memStore) *stock.LedgerUseCase {
	cfg := retry.Config{MaxAttempts: 3, InitialDelay: time.Millisecond}
	log := logger.New(logger.Config{Env: "production", Level: "error"})
	return stock.NewLedgerUseCase(&memTxRunner{store: store}, cfg, log)
}

func seedProduct(store *memStore, id string, currentStock, minStock int, active bool) *entity.Product {
	cost := decimal.NewFromFloat(10)
	price := decimal.NewFromFloat(25)
	p := &entity.Product{
		ID:           id,
		Name:         "Amoxicilina 500mg",
		CostPrice:    cost,
		SalePrice:    price,
		CurrentStock: currentStock,
		MinStock:     minStock,
		Unit:         "caja",
		IsActive:     active,
	}
	store.products[id] = p
	return p
}

func dec(f float64) *decimal.Decimal {
	d := decimal.NewFromFloat(f)
	return &d
}

// ──────────────────────────────────────────────────────────────────────────────
// Registro de movimientos
// ──────────────────────────────────────────────────────────────────────────────

func TestRegisterEntry_SumaStock(t *testing.T) {
	store := newMemStore()
	seedProduct(store, "prod-1", 10, 5, true)
	uc := newTestLedger(store)

	mov, err := uc.RegisterEntry(context.Background(), "prod-1", 20, dec(8.50), "compra proveedor", nil, "user-1")

	require.NoError(t, err)
	require.NotNil(t, mov)
	assert.Equal(t, entity.MovementTypeEntry, mov.Type)
	assert.Equal(t, entity.DirectionIn, mov.Direction)
	assert.Equal(t, 20, mov.Quantity)
	assert.Equal(t, 30, store.products["prod-1"].CurrentStock)
	assert.Len(t, store.movements, 1)
}

func TestRegisterSale_RestaStock(t *testing.T) {
	store := newMemStore()
	seedProduct(store, "prod-1", 10, 5, true)
	uc := newTestLedger(store)

	mov, err := uc.RegisterSale(context.Background(), "prod-1", 3, dec(25), nil, "user-1")

	require.NoError(t, err)
	assert.Equal(t, entity.DirectionOut, mov.Direction)
	assert.Equal(t, 7, store.products["prod-1"].CurrentStock)
}

func TestRegisterInternalUse_RestaStock(t *testing.T) {
	store := newMemStore()
	seedProduct(store, "prod-1", 5, 2, true)
	uc := newTestLedger(store)

	mov, err := uc.RegisterInternalUse(context.Background(), "prod-1", 2, "curación en consulta", nil, "user-1")

	require.NoError(t, err)
	assert.Equal(t, entity.DirectionOut, mov.Direction)
	assert.Equal(t, 3, store.products["prod-1"].CurrentStock)
}

func TestRegisterSale_StockInsuficiente(t *testing.T) {
	store := newMemStore()
	seedProduct(store, "prod-1", 2, 5, true)
	uc := newTestLedger(store)

	mov, err := uc.RegisterSale(context.Background(), "prod-1", 3, dec(25), nil, "user-1")

	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Nil(t, mov)
	// El rechazo no deja efectos: ni stock ni fila en el ledger
	assert.Equal(t, 2, store.products["prod-1"].CurrentStock)
	assert.Empty(t, store.movements)
}

func TestRegisterSale_AgotaStockExacto(t *testing.T) {
	store := newMemStore()
	seedProduct(store, "prod-1", 3, 5, true)
	uc := newTestLedger(store)

	_, err := uc.RegisterSale(context.Background(), "prod-1", 3, dec(25), nil, "user-1")

	require.NoError(t, err)
	assert.Equal(t, 0, store.products["prod-1"].CurrentStock)
}

func TestRegisterMovement_ProductoInexistente(t *testing.T) {
	store := newMemStore()
	uc := newTestLedger(store)

	_, err := uc.RegisterEntry(context.Background(), "no-existe", 1, nil, "", nil, "user-1")

	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRegisterMovement_ProductoInactivo(t *testing.T) {
	store := newMemStore()
	seedProduct(store, "prod-1", 10, 5, false)
	uc := newTestLedger(store)

	_, err := uc.RegisterSale(context.Background(), "prod-1", 1, dec(25), nil, "user-1")
	require.ErrorIs(t, err, domain.ErrProductInactive)

	// Las entradas sí se permiten sobre producto inactivo (reposición previa a reactivar)
	_, err = uc.RegisterEntry(context.Background(), "prod-1", 5, dec(8), "reposición", nil, "user-1")
	require.NoError(t, err)
	assert.Equal(t, 15, store.products["prod-1"].CurrentStock)
}

func TestRegisterMovement_ValidaEntrada(t *testing.T) {
	store := newMemStore()
	seedProduct(store, "prod-1", 10, 5, true)
	uc := newTestLedger(store)
	ctx := context.Background()

	cases := []struct {
		name  string
		input stock.MovementInput
	}{
		{"sin producto", stock.MovementInput{Type: entity.MovementTypeEntry, Quantity: 1, UserID: "u"}},
		{"sin usuario", stock.MovementInput{ProductID: "prod-1", Type: entity.MovementTypeEntry, Quantity: 1}},
		{"tipo inválido", stock.MovementInput{ProductID: "prod-1", Type: "transfer", Quantity: 1, UserID: "u"}},
		{"cantidad cero", stock.MovementInput{ProductID: "prod-1", Type: entity.MovementTypeEntry, Quantity: 0, UserID: "u"}},
		{"cantidad negativa", stock.MovementInput{ProductID: "prod-1", Type: entity.MovementTypeSale, Quantity: -3, UserID: "u"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.RegisterMovement(ctx, tc.input)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
	assert.Empty(t, store.movements)
	assert.Equal(t, 10, store.products["prod-1"].CurrentStock)
}

// ──────────────────────────────────────────────────────────────────────────────
// Ajustes: dirección explícita
// ──────────────────────────────────────────────────────────────────────────────

func TestRegisterAdjustment_DireccionExplicita(t *testing.T) {
	store := newMemStore()
	seedProduct(store, "prod-1", 10, 5, true)
	uc := newTestLedger(store)
	ctx := context.Background()

	// Ajuste de entrada: se encontró stock de más en el recuento
	_, err := uc.RegisterMovement(ctx, stock.MovementInput{
		ProductID: "prod-1",
		Type:      entity.MovementTypeAdjustment,
		Direction: entity.DirectionIn,
		Quantity:  4,
		Reason:    "recuento físico",
		UserID:    "user-1",
	})
	require.NoError(t, err)
	assert.Equal(t, 14, store.products["prod-1"].CurrentStock)

	// Ajuste de salida: merma por caducidad
	_, err = uc.RegisterMovement(ctx, stock.MovementInput{
		ProductID: "prod-1",
		Type:      entity.MovementTypeAdjustment,
		Direction: entity.DirectionOut,
		Quantity:  6,
		Reason:    "caducado",
		UserID:    "user-1",
	})
	require.NoError(t, err)
	assert.Equal(t, 8, store.products["prod-1"].CurrentStock)
}

func TestRegisterAdjustment_SinDireccionFalla(t *testing.T) {
	store := newMemStore()
	seedProduct(store, "prod-1", 10, 5, true)
	uc := newTestLedger(store)

	_, err := uc.RegisterMovement(context.Background(), stock.MovementInput{
		ProductID: "prod-1",
		Type:      entity.MovementTypeAdjustment,
		Quantity:  4,
		Reason:    "recuento físico",
		UserID:    "user-1",
	})

	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, 10, store.products["prod-1"].CurrentStock)
}

// ──────────────────────────────────────────────────────────────────────────────
// Reversión (borrado de movimientos)
// ──────────────────────────────────────────────────────────────────────────────

func TestDeleteMovement_RevierteEntrada(t *testing.T) {
	store := newMemStore()
	seedProduct(store, "prod-1", 0, 5, true)
	uc := newTestLedger(store)
	ctx := context.Background()

	mov, err := uc.RegisterEntry(ctx, "prod-1", 20, dec(8), "compra", nil, "user-1")
	require.NoError(t, err)
	require.Equal(t, 20, store.products["prod-1"].CurrentStock)

	err = uc.DeleteMovement(ctx, mov.ID)

	require.NoError(t, err)
	assert.Equal(t, 0, store.products["prod-1"].CurrentStock)
	assert.Empty(t, store.movements)
}

func TestDeleteMovement_RevierteSalida(t *testing.T) {
	store := newMemStore()
	seedProduct(store, "prod-1", 10, 5, true)
	uc := newTestLedger(store)
	ctx := context.Background()

	mov, err := uc.RegisterSale(ctx, "prod-1", 4, dec(25), nil, "user-1")
	require.NoError(t, err)
	require.Equal(t, 6, store.products["prod-1"].CurrentStock)

	err = uc.DeleteMovement(ctx, mov.ID)

	require.NoError(t, err)
	assert.Equal(t, 10, store.products["prod-1"].CurrentStock)
}

func TestDeleteMovement_RechazaStockNegativo(t *testing.T) {
	store := newMemStore()
	seedProduct(store, "prod-1", 0, 5, true)
	uc := newTestLedger(store)
	ctx := context.Background()

	// Entrada de 20 y venta posterior de 15: revertir la entrada dejaría -15
	entry, err := uc.RegisterEntry(ctx, "prod-1", 20, dec(8), "compra", nil, "user-1")
	require.NoError(t, err)
	_, err = uc.RegisterSale(ctx, "prod-1", 15, dec(25), nil, "user-1")
	require.NoError(t, err)

	err = uc.DeleteMovement(ctx, entry.ID)

	require.ErrorIs(t, err, domain.ErrNegativeStock)
	// Sin efectos parciales: el movimiento sigue y el stock no cambia
	assert.Equal(t, 5, store.products["prod-1"].CurrentStock)
	assert.Len(t, store.movements, 2)
}

func TestDeleteMovement_NoExiste(t *testing.T) {
	store := newMemStore()
	uc := newTestLedger(store)

	err := uc.DeleteMovement(context.Background(), "no-existe")

	require.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Reintentos ante fallos transitorios
// ──────────────────────────────────────────────────────────────────────────────

func TestRegisterMovement_ReintentaTransitorios(t *testing.T) {
	store := newMemStore()
	seedProduct(store, "prod-1", 10, 5, true)
	store.failNext("create", 2)
	uc := newTestLedger(store)

	_, err := uc.RegisterEntry(context.Background(), "prod-1", 5, dec(8), "compra", nil, "user-1")

	require.NoError(t, err)
	assert.Equal(t, 15, store.products["prod-1"].CurrentStock)
	assert.Len(t, store.movements, 1)
	assert.Equal(t, 3, store.calls["create"])
}

func TestRegisterMovement_AgotaReintentos(t *testing.T) {
	store := newMemStore()
	seedProduct(store, "prod-1", 10, 5, true)
	store.failNext("create", 5)
	uc := newTestLedger(store)

	_, err := uc.RegisterEntry(context.Background(), "prod-1", 5, dec(8), "compra", nil, "user-1")

	// El último error se propaga tal cual, sin envolver
	require.ErrorIs(t, err, errTransient)
	assert.Equal(t, 10, store.products["prod-1"].CurrentStock)
	assert.Empty(t, store.movements)
	assert.Equal(t, 3, store.calls["create"])
}

func TestRegisterMovement_NoReintentaErroresDeNegocio(t *testing.T) {
	store := newMemStore()
	seedProduct(store, "prod-1", 1, 5, true)
	uc := newTestLedger(store)

	_, err := uc.RegisterSale(context.Background(), "prod-1", 10, dec(25), nil, "user-1")

	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	// Una sola pasada sobre el bloqueo de fila: sin reintentos
	assert.Equal(t, 1, store.calls["get_for_update"])
}

// ──────────────────────────────────────────────────────────────────────────────
// Ciclo completo: recepción, venta, consumo, ajuste y reversión
// ──────────────────────────────────────────────────────────────────────────────

func TestLedger_CicloCompleto(t *testing.T) {
	store := newMemStore()
	seedProduct(store, "prod-1", 0, 10, true)
	uc := newTestLedger(store)
	ctx := context.Background()

	// 1. Recepción de 50 unidades
	_, err := uc.RegisterEntry(ctx, "prod-1", 50, dec(8), "pedido inicial", nil, "user-1")
	require.NoError(t, err)
	assert.Equal(t, 50, store.products["prod-1"].CurrentStock)

	// 2. Venta de 30
	_, err = uc.RegisterSale(ctx, "prod-1", 30, dec(25), nil, "user-1")
	require.NoError(t, err)
	assert.Equal(t, 20, store.products["prod-1"].CurrentStock)

	// 3. Consumo interno de 5
	_, err = uc.RegisterInternalUse(ctx, "prod-1", 5, "curaciones", nil, "user-2")
	require.NoError(t, err)
	assert.Equal(t, 15, store.products["prod-1"].CurrentStock)

	// 4. Ajuste de salida de 6 por recuento: 9 quedan por debajo del mínimo
	_, err = uc.RegisterMovement(ctx, stock.MovementInput{
		ProductID: "prod-1",
		Type:      entity.MovementTypeAdjustment,
		Direction: entity.DirectionOut,
		Quantity:  6,
		Reason:    "recuento físico",
		UserID:    "user-1",
	})
	require.NoError(t, err)
	assert.Equal(t, 9, store.products["prod-1"].CurrentStock)

	low, err := (&memProductRepo{store: store}).FindLowStock(ctx)
	require.NoError(t, err)
	require.Len(t, low, 1)
	assert.Equal(t, "prod-1", low[0].ID)
	assert.Equal(t, "low", low[0].StockStatus())

	// 5. La venta resultó errónea: se revierte y el stock vuelve a 39
	var saleID string
	for id, m := range store.movements {
		if m.Type == entity.MovementTypeSale {
			saleID = id
		}
	}
	require.NotEmpty(t, saleID)
	require.NoError(t, uc.DeleteMovement(ctx, saleID))
	assert.Equal(t, 39, store.products["prod-1"].CurrentStock)
	assert.Len(t, store.movements, 3)
}
