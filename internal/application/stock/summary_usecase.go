package stock

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Clinivet-api/internal/application/dto"
	"github.com/jhoicas/Clinivet-api/internal/domain/entity"
	"github.com/jhoicas/Clinivet-api/internal/domain/repository"
	"github.com/jhoicas/Clinivet-api/pkg/retry"
)

// SummaryUseCase camino de solo lectura sobre el ledger: listado paginado con
// nombres unidos y resumen agregado (reconciliación). Nunca muta estado.
type SummaryUseCase struct {
	movRepo  repository.StockMovementRepository
	retryCfg retry.Config
}

// NewSummaryUseCase construye el caso de uso.
func NewSummaryUseCase(movRepo repository.StockMovementRepository, retryCfg retry.Config) *SummaryUseCase {
	return &SummaryUseCase{movRepo: movRepo, retryCfg: retryCfg}
}

// ListMovements devuelve una página de movimientos que cumplen el filtro,
// con product_name, product_unit y user_name, más el total sin paginar.
func (uc *SummaryUseCase) ListMovements(ctx context.Context, filter repository.MovementFilter, page dto.PageRequest) (*dto.MovementListResponse, error) {
	page.DefaultPage()

	type listResult struct {
		items []*entity.StockMovementWithDetails
		total int
	}
	result, err := retry.Do(ctx, uc.retryCfg, func(ctx context.Context) (listResult, error) {
		items, total, err := uc.movRepo.List(ctx, filter, page.Limit, page.Offset())
		return listResult{items: items, total: total}, err
	})
	if err != nil {
		return nil, err
	}

	out := &dto.MovementListResponse{
		Items: make([]dto.MovementResponse, 0, len(result.items)),
		Page:  dto.NewPageResponse(page.Page, page.Limit, result.total),
	}
	for _, d := range result.items {
		out.Items = append(out.Items, dto.ToMovementDetailsResponse(d))
	}
	return out, nil
}

// Summary agrega las filas del filtro: total, conteo por tipo y totales
// monetarios. value_entries suma quantity × unit_cost sobre las entradas que
// traen unit_cost; value_sales suma quantity × unit_price sobre las ventas que
// traen unit_price. Una fila sin el campo simplemente queda fuera de la suma.
func (uc *SummaryUseCase) Summary(ctx context.Context, filter repository.MovementFilter) (*dto.MovementSummaryResponse, error) {
	movements, err := retry.Do(ctx, uc.retryCfg, func(ctx context.Context) ([]*entity.StockMovement, error) {
		return uc.movRepo.ListForSummary(ctx, filter)
	})
	if err != nil {
		return nil, err
	}

	summary := &dto.MovementSummaryResponse{
		TotalMovements: len(movements),
		ValueEntries:   decimal.Zero,
		ValueSales:     decimal.Zero,
	}
	if filter.DateFrom != nil {
		summary.Period.DateFrom = filter.DateFrom.Format("2006-01-02")
	}
	if filter.DateTo != nil {
		summary.Period.DateTo = filter.DateTo.Format("2006-01-02")
	}

	for _, m := range movements {
		qty := decimal.NewFromInt(int64(m.Quantity))
		switch m.Type {
		case entity.MovementTypeEntry:
			summary.TotalEntries++
			if m.UnitCost != nil {
				summary.ValueEntries = summary.ValueEntries.Add(qty.Mul(*m.UnitCost))
			}
		case entity.MovementTypeSale:
			summary.TotalSales++
			if m.UnitPrice != nil {
				summary.ValueSales = summary.ValueSales.Add(qty.Mul(*m.UnitPrice))
			}
		case entity.MovementTypeAdjustment:
			summary.TotalAdjustments++
		case entity.MovementTypeInternalUse:
			summary.TotalInternalUse++
		}
	}
	return summary, nil
}
