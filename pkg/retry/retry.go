// Package retry envuelve operaciones de persistencia falibles con reintentos
// y backoff exponencial. No conoce semántica de negocio: opera sobre "una
// operación que devuelve un resultado o falla".
package retry

import (
	"context"
	"errors"
	"time"
)

// Config parámetros del reintento.
type Config struct {
	MaxAttempts  int           // intentos totales, incluido el primero
	InitialDelay time.Duration // espera tras el primer fallo; se duplica en cada intento
}

// DefaultConfig reproduce los valores del gateway: 3 intentos, 1s inicial.
func DefaultConfig() Config {
	return Config{MaxAttempts: 3, InitialDelay: time.Second}
}

// permanentError marca un error como terminal: no se reintenta y se propaga
// el error original sin envolver.
type permanentError struct {
	err error
}

func (e *permanentError) Error() string { return e.err.Error() }
func (e *permanentError) Unwrap() error { return e.err }

// Permanent marca err como no reintentable. Do lo devuelve desempaquetado.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return &permanentError{err: err}
}

// Do ejecuta op hasta cfg.MaxAttempts veces. Entre intentos espera
// InitialDelay × 2^(intento-1), respetando la cancelación del contexto.
// Si todos los intentos fallan propaga el último error tal cual, sin envolver.
func Do[T any](ctx context.Context, cfg Config, op func(ctx context.Context) (T, error)) (T, error) {
	var zero T
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 1
	}

	var lastErr error
	delay := cfg.InitialDelay
	for attempt := 1; attempt <= cfg.MaxAttempts; attempt++ {
		result, err := op(ctx)
		if err == nil {
			return result, nil
		}
		var perm *permanentError
		if errors.As(err, &perm) {
			return zero, perm.err
		}
		lastErr = err
		if attempt == cfg.MaxAttempts {
			break
		}
		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		case <-time.After(delay):
		}
		delay *= 2
	}
	return zero, lastErr
}

// DoVoid es Do para operaciones sin resultado.
func DoVoid(ctx context.Context, cfg Config, op func(ctx context.Context) error) error {
	_, err := Do(ctx, cfg, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, op(ctx)
	})
	return err
}
