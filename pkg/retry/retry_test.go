package retry_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Clinivet-api/pkg/retry"
)

var errTransient = errors.New("conexión rechazada")

func fastCfg() retry.Config {
	return retry.Config{MaxAttempts: 3, InitialDelay: time.Millisecond}
}

// Éxito al primer intento: no hay espera ni reintento.
func TestDo_ExitoDirecto(t *testing.T) {
	calls := 0
	got, err := retry.Do(context.Background(), fastCfg(), func(ctx context.Context) (int, error) {
		calls++
		return 42, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 42, got)
	assert.Equal(t, 1, calls)
}

// Fallos transitorios: se reintenta y termina devolviendo el resultado.
func TestDo_ReintentaTransitorios(t *testing.T) {
	calls := 0
	got, err := retry.Do(context.Background(), fastCfg(), func(ctx context.Context) (string, error) {
		calls++
		if calls < 3 {
			return "", errTransient
		}
		return "ok", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "ok", got)
	assert.Equal(t, 3, calls)
}

// Agotados los intentos, se propaga el último error sin envolver.
func TestDo_PropagaUltimoErrorSinEnvolver(t *testing.T) {
	calls := 0
	_, err := retry.Do(context.Background(), fastCfg(), func(ctx context.Context) (int, error) {
		calls++
		return 0, errTransient
	})
	assert.Equal(t, 3, calls)
	assert.Same(t, errTransient, err, "el error debe propagarse tal cual")
}

// Un error marcado Permanent corta el reintento y llega desempaquetado.
func TestDo_PermanentNoReintenta(t *testing.T) {
	errNegocio := errors.New("stock insuficiente")
	calls := 0
	_, err := retry.Do(context.Background(), fastCfg(), func(ctx context.Context) (int, error) {
		calls++
		return 0, retry.Permanent(errNegocio)
	})
	assert.Equal(t, 1, calls)
	assert.Same(t, errNegocio, err)
}

// La cancelación del contexto interrumpe la espera entre intentos.
func TestDo_ContextoCancelado(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	cfg := retry.Config{MaxAttempts: 3, InitialDelay: time.Minute}
	_, err := retry.Do(ctx, cfg, func(ctx context.Context) (int, error) {
		return 0, errTransient
	})
	assert.ErrorIs(t, err, context.Canceled)
}

// DoVoid conserva la misma semántica para operaciones sin resultado.
func TestDoVoid(t *testing.T) {
	calls := 0
	err := retry.DoVoid(context.Background(), fastCfg(), func(ctx context.Context) error {
		calls++
		if calls < 2 {
			return errTransient
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}
