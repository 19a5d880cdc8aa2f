package repository

import (
	"context"

	"github.com/jhoicas/Clinivet-api/internal/domain/entity"
)

// ClientRepository define el puerto de persistencia para Client (DIP).
type ClientRepository interface {
	Create(ctx context.Context, client *entity.Client) error
	GetByID(ctx context.Context, id string) (*entity.Client, error)
	FindByCPF(ctx context.Context, cpf string) (*entity.Client, error)
	Update(ctx context.Context, client *entity.Client) error
	List(ctx context.Context, name string, limit, offset int) ([]*entity.Client, int, error)
	Delete(ctx context.Context, id string) error
}
