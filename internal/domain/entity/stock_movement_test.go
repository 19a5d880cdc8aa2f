package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Clinivet-api/internal/domain"
	"github.com/jhoicas/Clinivet-api/internal/domain/entity"
)

func TestDelta_SignoPorDireccion(t *testing.T) {
	in := &entity.StockMovement{Direction: entity.DirectionIn, Quantity: 7}
	out := &entity.StockMovement{Direction: entity.DirectionOut, Quantity: 7}

	assert.Equal(t, 7, in.Delta())
	assert.Equal(t, -7, out.Delta())
}

func TestDirectionForType(t *testing.T) {
	cases := []struct {
		name      string
		movType   string
		direction string
		want      string
		wantErr   bool
	}{
		{"entry siempre in", entity.MovementTypeEntry, "", entity.DirectionIn, false},
		{"entry ignora direction", entity.MovementTypeEntry, "out", entity.DirectionIn, false},
		{"sale siempre out", entity.MovementTypeSale, "", entity.DirectionOut, false},
		{"internal_use siempre out", entity.MovementTypeInternalUse, "", entity.DirectionOut, false},
		{"adjustment in", entity.MovementTypeAdjustment, "in", entity.DirectionIn, false},
		{"adjustment out", entity.MovementTypeAdjustment, "out", entity.DirectionOut, false},
		{"adjustment sin direction", entity.MovementTypeAdjustment, "", "", true},
		{"adjustment direction inválida", entity.MovementTypeAdjustment, "sideways", "", true},
		{"tipo desconocido", "transfer", "in", "", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := entity.DirectionForType(tc.movType, tc.direction)
			if tc.wantErr {
				require.ErrorIs(t, err, domain.ErrInvalidInput)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestValidMovementType(t *testing.T) {
	for _, ok := range []string{"entry", "sale", "adjustment", "internal_use"} {
		assert.True(t, entity.ValidMovementType(ok), ok)
	}
	for _, bad := range []string{"", "transfer", "ENTRY", "Sale"} {
		assert.False(t, entity.ValidMovementType(bad), bad)
	}
}

func TestStockStatus(t *testing.T) {
	p := &entity.Product{MinStock: 10}

	p.CurrentStock = 0
	assert.Equal(t, "out", p.StockStatus())

	p.CurrentStock = 10
	assert.Equal(t, "low", p.StockStatus())
	assert.True(t, p.IsLowStock())

	p.CurrentStock = 11
	assert.Equal(t, "normal", p.StockStatus())
	assert.False(t, p.IsLowStock())
}
