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

// ClientUseCase casos de uso CRUD para tutores de mascotas.
type ClientUseCase struct {
	repo     repository.ClientRepository
	retryCfg retry.Config
}

// NewClientUseCase construye el caso de uso.
func NewClientUseCase(repo repository.ClientRepository, retryCfg retry.Config) *ClientUseCase {
	return &ClientUseCase{repo: repo, retryCfg: retryCfg}
}

// Create crea un tutor. Si llega CPF y ya existe, rechaza con ErrDuplicate.
func (uc *ClientUseCase) Create(ctx context.Context, in dto.CreateClientRequest) (*dto.ClientResponse, error) {
	if in.CPF != "" {
		existing, err := retry.Do(ctx, uc.retryCfg, func(ctx context.Context) (*entity.Client, error) {
			return uc.repo.FindByCPF(ctx, in.CPF)
		})
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, domain.ErrDuplicate
		}
	}
	now := time.Now()
	client := &entity.Client{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Email:     in.Email,
		Phone:     in.Phone,
		CPF:       in.CPF,
		Address:   in.Address,
		City:      in.City,
		State:     in.State,
		ZipCode:   in.ZipCode,
		Notes:     in.Notes,
		CreatedAt: now,
		UpdatedAt: now,
	}
	err := retry.DoVoid(ctx, uc.retryCfg, func(ctx context.Context) error {
		if err := uc.repo.Create(ctx, client); err != nil {
			if errors.Is(err, domain.ErrDuplicate) {
				return retry.Permanent(err)
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto.ToClientResponse(client), nil
}

// GetByID obtiene un tutor por ID. Devuelve (nil, nil) si no existe.
func (uc *ClientUseCase) GetByID(ctx context.Context, id string) (*dto.ClientResponse, error) {
	client, err := retry.Do(ctx, uc.retryCfg, func(ctx context.Context) (*entity.Client, error) {
		return uc.repo.GetByID(ctx, id)
	})
	if err != nil {
		return nil, err
	}
	return dto.ToClientResponse(client), nil
}

// Update actualiza los campos presentes.
func (uc *ClientUseCase) Update(ctx context.Context, id string, in dto.UpdateClientRequest) (*dto.ClientResponse, error) {
	client, err := retry.Do(ctx, uc.retryCfg, func(ctx context.Context) (*entity.Client, error) {
		return uc.repo.GetByID(ctx, id)
	})
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, nil
	}
	if in.Name != nil {
		client.Name = *in.Name
	}
	if in.Email != nil {
		client.Email = *in.Email
	}
	if in.Phone != nil {
		client.Phone = *in.Phone
	}
	if in.CPF != nil {
		client.CPF = *in.CPF
	}
	if in.Address != nil {
		client.Address = *in.Address
	}
	if in.City != nil {
		client.City = *in.City
	}
	if in.State != nil {
		client.State = *in.State
	}
	if in.ZipCode != nil {
		client.ZipCode = *in.ZipCode
	}
	if in.Notes != nil {
		client.Notes = *in.Notes
	}
	client.UpdatedAt = time.Now()

	err = retry.DoVoid(ctx, uc.retryCfg, func(ctx context.Context) error {
		if err := uc.repo.Update(ctx, client); err != nil {
			if errors.Is(err, domain.ErrDuplicate) {
				return retry.Permanent(err)
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto.ToClientResponse(client), nil
}

// List lista tutores con búsqueda por nombre y paginación.
func (uc *ClientUseCase) List(ctx context.Context, name string, page dto.PageRequest) (*dto.ClientListResponse, error) {
	page.DefaultPage()

	type listResult struct {
		items []*entity.Client
		total int
	}
	res, err := retry.Do(ctx, uc.retryCfg, func(ctx context.Context) (listResult, error) {
		items, total, err := uc.repo.List(ctx, name, page.Limit, page.Offset())
		return listResult{items: items, total: total}, err
	})
	if err != nil {
		return nil, err
	}

	items := make([]dto.ClientResponse, 0, len(res.items))
	for _, c := range res.items {
		items = append(items, *dto.ToClientResponse(c))
	}
	return &dto.ClientListResponse{
		Items: items,
		Page:  dto.NewPageResponse(page.Page, page.Limit, res.total),
	}, nil
}

// Delete elimina un tutor por ID.
func (uc *ClientUseCase) Delete(ctx context.Context, id string) error {
	return retry.DoVoid(ctx, uc.retryCfg, func(ctx context.Context) error {
		err := uc.repo.Delete(ctx, id)
		if errors.Is(err, domain.ErrNotFound) {
			return retry.Permanent(err)
		}
		return err
	})
}
