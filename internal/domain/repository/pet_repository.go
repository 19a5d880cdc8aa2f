package repository

import (
	"context"

	"github.com/jhoicas/Clinivet-api/internal/domain/entity"
)

// PetRepository define el puerto de persistencia para Pet (DIP).
type PetRepository interface {
	Create(ctx context.Context, pet *entity.Pet) error
	GetByID(ctx context.Context, id string) (*entity.Pet, error)
	Update(ctx context.Context, pet *entity.Pet) error
	ListByClient(ctx context.Context, clientID string, limit, offset int) ([]*entity.Pet, int, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Pet, int, error)
	Delete(ctx context.Context, id string) error
}
