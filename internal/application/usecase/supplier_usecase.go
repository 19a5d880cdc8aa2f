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

// SupplierUseCase casos de uso CRUD para proveedores.
type SupplierUseCase struct {
	repo     repository.SupplierRepository
	retryCfg retry.Config
}

// NewSupplierUseCase construye el caso de uso.
func NewSupplierUseCase(repo repository.SupplierRepository, retryCfg retry.Config) *SupplierUseCase {
	return &SupplierUseCase{repo: repo, retryCfg: retryCfg}
}

// Create crea un proveedor.
func (uc *SupplierUseCase) Create(ctx context.Context, in dto.CreateSupplierRequest) (*dto.SupplierResponse, error) {
	now := time.Now()
	supplier := &entity.Supplier{
		ID:        uuid.New().String(),
		Name:      in.Name,
		CNPJ:      in.CNPJ,
		Email:     in.Email,
		Phone:     in.Phone,
		CreatedAt: now,
		UpdatedAt: now,
	}
	err := retry.DoVoid(ctx, uc.retryCfg, func(ctx context.Context) error {
		return uc.repo.Create(ctx, supplier)
	})
	if err != nil {
		return nil, err
	}
	return dto.ToSupplierResponse(supplier), nil
}

// GetByID obtiene un proveedor por ID. Devuelve (nil, nil) si no existe.
func (uc *SupplierUseCase) GetByID(ctx context.Context, id string) (*dto.SupplierResponse, error) {
	supplier, err := retry.Do(ctx, uc.retryCfg, func(ctx context.Context) (*entity.Supplier, error) {
		return uc.repo.GetByID(ctx, id)
	})
	if err != nil {
		return nil, err
	}
	return dto.ToSupplierResponse(supplier), nil
}

// Update actualiza los campos presentes.
func (uc *SupplierUseCase) Update(ctx context.Context, id string, in dto.UpdateSupplierRequest) (*dto.SupplierResponse, error) {
	supplier, err := retry.Do(ctx, uc.retryCfg, func(ctx context.Context) (*entity.Supplier, error) {
		return uc.repo.GetByID(ctx, id)
	})
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, nil
	}
	if in.Name != nil {
		supplier.Name = *in.Name
	}
	if in.CNPJ != nil {
		supplier.CNPJ = *in.CNPJ
	}
	if in.Email != nil {
		supplier.Email = *in.Email
	}
	if in.Phone != nil {
		supplier.Phone = *in.Phone
	}
	supplier.UpdatedAt = time.Now()

	err = retry.DoVoid(ctx, uc.retryCfg, func(ctx context.Context) error {
		return uc.repo.Update(ctx, supplier)
	})
	if err != nil {
		return nil, err
	}
	return dto.ToSupplierResponse(supplier), nil
}

// List lista proveedores con paginación.
func (uc *SupplierUseCase) List(ctx context.Context, page dto.PageRequest) (*dto.SupplierListResponse, error) {
	page.DefaultPage()

	type listResult struct {
		items []*entity.Supplier
		total int
	}
	res, err := retry.Do(ctx, uc.retryCfg, func(ctx context.Context) (listResult, error) {
		items, total, err := uc.repo.List(ctx, page.Limit, page.Offset())
		return listResult{items: items, total: total}, err
	})
	if err != nil {
		return nil, err
	}

	items := make([]dto.SupplierResponse, 0, len(res.items))
	for _, s := range res.items {
		items = append(items, *dto.ToSupplierResponse(s))
	}
	return &dto.SupplierListResponse{
		Items: items,
		Page:  dto.NewPageResponse(page.Page, page.Limit, res.total),
	}, nil
}

// Delete elimina un proveedor por ID.
func (uc *SupplierUseCase) Delete(ctx context.Context, id string) error {
	return retry.DoVoid(ctx, uc.retryCfg, func(ctx context.Context) error {
		err := uc.repo.Delete(ctx, id)
		if errors.Is(err, domain.ErrNotFound) {
			return retry.Permanent(err)
		}
		return err
	})
}
