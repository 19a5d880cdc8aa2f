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

// ProductUseCase casos de uso CRUD del catálogo. CurrentStock nunca se edita
// por aquí: solo lo muta el ledger de movimientos.
type ProductUseCase struct {
	repo     repository.ProductRepository
	retryCfg retry.Config
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, retryCfg retry.Config) *ProductUseCase {
	return &ProductUseCase{repo: repo, retryCfg: retryCfg}
}

// Create crea un producto. El stock inicial es 0: las existencias entran por
// movimientos de tipo entry.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	now := time.Now()
	product := &entity.Product{
		ID:           uuid.New().String(),
		Name:         in.Name,
		Description:  in.Description,
		CostPrice:    in.CostPrice,
		SalePrice:    in.SalePrice,
		CurrentStock: 0,
		MinStock:     in.MinStock,
		SupplierID:   in.SupplierID,
		Category:     in.Category,
		Unit:         in.Unit,
		Barcode:      in.Barcode,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	err := retry.DoVoid(ctx, uc.retryCfg, func(ctx context.Context) error {
		if err := uc.repo.Create(ctx, product); err != nil {
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
	return dto.ToProductResponse(product), nil
}

// GetByID obtiene un producto por ID. Devuelve (nil, nil) si no existe.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := retry.Do(ctx, uc.retryCfg, func(ctx context.Context) (*entity.Product, error) {
		return uc.repo.GetByID(ctx, id)
	})
	if err != nil {
		return nil, err
	}
	return dto.ToProductResponse(product), nil
}

// GetByBarcode busca un producto activo por código de barras.
func (uc *ProductUseCase) GetByBarcode(ctx context.Context, barcode string) (*dto.ProductResponse, error) {
	if barcode == "" {
		return nil, domain.ErrInvalidInput
	}
	product, err := retry.Do(ctx, uc.retryCfg, func(ctx context.Context) (*entity.Product, error) {
		return uc.repo.FindByBarcode(ctx, barcode)
	})
	if err != nil {
		return nil, err
	}
	return dto.ToProductResponse(product), nil
}

// Update actualiza los campos del catálogo. No toca CurrentStock.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := retry.Do(ctx, uc.retryCfg, func(ctx context.Context) (*entity.Product, error) {
		return uc.repo.GetByID(ctx, id)
	})
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	if in.Name != nil {
		product.Name = *in.Name
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.CostPrice != nil {
		product.CostPrice = *in.CostPrice
	}
	if in.SalePrice != nil {
		product.SalePrice = *in.SalePrice
	}
	if in.MinStock != nil {
		if *in.MinStock < 0 {
			return nil, domain.ErrInvalidInput
		}
		product.MinStock = *in.MinStock
	}
	if in.SupplierID != nil {
		product.SupplierID = *in.SupplierID
	}
	if in.Category != nil {
		product.Category = *in.Category
	}
	if in.Unit != nil {
		product.Unit = *in.Unit
	}
	if in.Barcode != nil {
		product.Barcode = *in.Barcode
	}
	if in.IsActive != nil {
		product.IsActive = *in.IsActive
	}
	product.UpdatedAt = time.Now()

	err = retry.DoVoid(ctx, uc.retryCfg, func(ctx context.Context) error {
		if err := uc.repo.Update(ctx, product); err != nil {
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
	return dto.ToProductResponse(product), nil
}

// List lista productos con filtros y paginación.
func (uc *ProductUseCase) List(ctx context.Context, in dto.ProductFilterRequest, page dto.PageRequest) (*dto.ProductListResponse, error) {
	page.DefaultPage()
	filter := repository.ProductFilter{
		Name:       in.Name,
		Category:   in.Category,
		SupplierID: in.SupplierID,
		IsActive:   in.IsActive,
	}

	type listResult struct {
		items []*entity.Product
		total int
	}
	res, err := retry.Do(ctx, uc.retryCfg, func(ctx context.Context) (listResult, error) {
		items, total, err := uc.repo.List(ctx, filter, page.Limit, page.Offset())
		return listResult{items: items, total: total}, err
	})
	if err != nil {
		return nil, err
	}

	items := make([]dto.ProductResponse, 0, len(res.items))
	for _, p := range res.items {
		items = append(items, *dto.ToProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.NewPageResponse(page.Page, page.Limit, res.total),
	}, nil
}

// LowStock lista productos activos en o por debajo de su umbral mínimo,
// ordenados por stock ascendente (los más críticos primero).
func (uc *ProductUseCase) LowStock(ctx context.Context) ([]dto.ProductResponse, error) {
	list, err := retry.Do(ctx, uc.retryCfg, func(ctx context.Context) ([]*entity.Product, error) {
		return uc.repo.FindLowStock(ctx)
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *dto.ToProductResponse(p))
	}
	return items, nil
}

// Delete elimina un producto. Si tiene movimientos asociados la FK lo impide;
// en ese caso conviene desactivarlo con Update en su lugar.
func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
	return retry.DoVoid(ctx, uc.retryCfg, func(ctx context.Context) error {
		err := uc.repo.Delete(ctx, id)
		if errors.Is(err, domain.ErrNotFound) {
			return retry.Permanent(err)
		}
		return err
	})
}
