package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Clinivet-api/internal/application/dto"
	"github.com/jhoicas/Clinivet-api/internal/domain"
	"github.com/jhoicas/Clinivet-api/internal/domain/entity"
	"github.com/jhoicas/Clinivet-api/internal/domain/repository"
	"github.com/jhoicas/Clinivet-api/pkg/retry"
)

// PetUseCase casos de uso CRUD para mascotas.
type PetUseCase struct {
	repo       repository.PetRepository
	clientRepo repository.ClientRepository
	retryCfg   retry.Config
}

// NewPetUseCase construye el caso de uso.
func NewPetUseCase(repo repository.PetRepository, clientRepo repository.ClientRepository, retryCfg retry.Config) *PetUseCase {
	return &PetUseCase{repo: repo, clientRepo: clientRepo, retryCfg: retryCfg}
}

// Create crea una mascota. El tutor referido debe existir.
func (uc *PetUseCase) Create(ctx context.Context, in dto.CreatePetRequest) (*dto.PetResponse, error) {
	if !entity.ValidSpecies(in.Species) {
		return nil, domain.ErrInvalidInput
	}
	client, err := retry.Do(ctx, uc.retryCfg, func(ctx context.Context) (*entity.Client, error) {
		return uc.clientRepo.GetByID(ctx, in.ClientID)
	})
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	pet := &entity.Pet{
		ID:        uuid.New().String(),
		ClientID:  in.ClientID,
		Name:      in.Name,
		Species:   in.Species,
		Breed:     in.Breed,
		Color:     in.Color,
		BirthDate: in.BirthDate,
		Weight:    in.Weight,
		Microchip: in.Microchip,
		Notes:     in.Notes,
		CreatedAt: now,
		UpdatedAt: now,
	}
	err = retry.DoVoid(ctx, uc.retryCfg, func(ctx context.Context) error {
		return uc.repo.Create(ctx, pet)
	})
	if err != nil {
		return nil, err
	}
	return dto.ToPetResponse(pet), nil
}

// GetByID obtiene una mascota por ID. Devuelve (nil, nil) si no existe.
func (uc *PetUseCase) GetByID(ctx context.Context, id string) (*dto.PetResponse, error) {
	pet, err := retry.Do(ctx, uc.retryCfg, func(ctx context.Context) (*entity.Pet, error) {
		return uc.repo.GetByID(ctx, id)
	})
	if err != nil {
		return nil, err
	}
	return dto.ToPetResponse(pet), nil
}

// Update actualiza los campos presentes. La mascota no cambia de tutor.
func (uc *PetUseCase) Update(ctx context.Context, id string, in dto.UpdatePetRequest) (*dto.PetResponse, error) {
	pet, err := retry.Do(ctx, uc.retryCfg, func(ctx context.Context) (*entity.Pet, error) {
		return uc.repo.GetByID(ctx, id)
	})
	if err != nil {
		return nil, err
	}
	if pet == nil {
		return nil, nil
	}
	if in.Name != nil {
		pet.Name = *in.Name
	}
	if in.Species != nil {
		if !entity.ValidSpecies(*in.Species) {
			return nil, domain.ErrInvalidInput
		}
		pet.Species = *in.Species
	}
	if in.Breed != nil {
		pet.Breed = *in.Breed
	}
	if in.Color != nil {
		pet.Color = *in.Color
	}
	if in.BirthDate != nil {
		pet.BirthDate = in.BirthDate
	}
	if in.Weight != nil {
		pet.Weight = in.Weight
	}
	if in.Microchip != nil {
		pet.Microchip = *in.Microchip
	}
	if in.Notes != nil {
		pet.Notes = *in.Notes
	}
	pet.UpdatedAt = time.Now()

	err = retry.DoVoid(ctx, uc.retryCfg, func(ctx context.Context) error {
		return uc.repo.Update(ctx, pet)
	})
	if err != nil {
		return nil, err
	}
	return dto.ToPetResponse(pet), nil
}

// List lista mascotas, opcionalmente filtradas por tutor.
func (uc *PetUseCase) List(ctx context.Context, clientID string, page dto.PageRequest) (*dto.PetListResponse, error) {
	page.DefaultPage()

	type listResult struct {
		items []*entity.Pet
		total int
	}
	res, err := retry.Do(ctx, uc.retryCfg, func(ctx context.Context) (listResult, error) {
		var (
			items []*entity.Pet
			total int
			err   error
		)
		if clientID != "" {
			items, total, err = uc.repo.ListByClient(ctx, clientID, page.Limit, page.Offset())
		} else {
			items, total, err = uc.repo.List(ctx, page.Limit, page.Offset())
		}
		return listResult{items: items, total: total}, err
	})
	if err != nil {
		return nil, err
	}

	items := make([]dto.PetResponse, 0, len(res.items))
	for _, p := range res.items {
		items = append(items, *dto.ToPetResponse(p))
	}
	return &dto.PetListResponse{
		Items: items,
		Page:  dto.NewPageResponse(page.Page, page.Limit, res.total),
	}, nil
}

// Delete elimina una mascota por ID.
func (uc *PetUseCase) Delete(ctx context.Context, id string) error {
	return retry.DoVoid(ctx, uc.retryCfg, func(ctx context.Context) error {
		err := uc.repo.Delete(ctx, id)
		if errors.Is(err, domain.ErrNotFound) {
			return retry.Permanent(err)
		}
		return err
	})
}
