package stock

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Clinivet-api/internal/domain"
	"github.com/jhoicas/Clinivet-api/internal/domain/entity"
	"github.com/jhoicas/Clinivet-api/internal/domain/repository"
	"github.com/jhoicas/Clinivet-api/pkg/logger"
	"github.com/jhoicas/Clinivet-api/pkg/retry"
)

// LedgerUseCase registra y revierte movimientos de stock de forma transaccional,
// con bloqueo de fila sobre el producto (SELECT FOR UPDATE) y Commit/Rollback.
// Es el único componente que muta Product.current_stock.
type LedgerUseCase struct {
	txRunner TxRunner
	retryCfg retry.Config
	log      *logger.Logger
}

// NewLedgerUseCase construye el caso de uso.
func NewLedgerUseCase(txRunner TxRunner, retryCfg retry.Config, log *logger.Logger) *LedgerUseCase {
	return &LedgerUseCase{txRunner: txRunner, retryCfg: retryCfg, log: log}
}

// MovementInput entrada para registrar un movimiento de stock.
// Direction solo aplica (y es obligatoria) cuando Type es adjustment; para el
// resto de tipos se deriva del tipo.
type MovementInput struct {
	ProductID string
	Type      string
	Direction string
	Quantity  int
	UnitCost  *decimal.Decimal
	UnitPrice *decimal.Decimal
	Reason    string
	RelatedTo json.RawMessage
	UserID    string
}

// RegisterMovement valida la entrada y, en una transacción, bloquea la fila del
// producto, verifica la no-negatividad del stock resultante, inserta la fila
// del ledger y actualiza el stock. Los fallos de regla de negocio se detectan
// antes de cualquier mutación y no se reintentan; los fallos transitorios de
// persistencia se reintentan con la transacción completa.
func (uc *LedgerUseCase) RegisterMovement(ctx context.Context, input MovementInput) (*entity.StockMovement, error) {
	if input.ProductID == "" || input.UserID == "" {
		return nil, domain.ErrInvalidInput
	}
	if !entity.ValidMovementType(input.Type) {
		return nil, domain.ErrInvalidInput
	}
	if input.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	direction, err := entity.DirectionForType(input.Type, input.Direction)
	if err != nil {
		return nil, err
	}

	mov := &entity.StockMovement{
		ID:        uuid.New().String(),
		ProductID: input.ProductID,
		Type:      input.Type,
		Direction: direction,
		Quantity:  input.Quantity,
		UnitCost:  input.UnitCost,
		UnitPrice: input.UnitPrice,
		Reason:    input.Reason,
		RelatedTo: input.RelatedTo,
		UserID:    input.UserID,
		CreatedAt: time.Now(),
	}

	err = retry.DoVoid(ctx, uc.retryCfg, func(ctx context.Context) error {
		return uc.txRunner.Run(ctx, func(
			movRepo repository.StockMovementRepository,
			productRepo repository.ProductRepository,
		) error {
			product, err := productRepo.GetForUpdate(ctx, input.ProductID)
			if err != nil {
				return err
			}
			if product == nil {
				return retry.Permanent(domain.ErrNotFound)
			}
			if input.Type != entity.MovementTypeEntry && !product.IsActive {
				return retry.Permanent(domain.ErrProductInactive)
			}
			newStock := product.CurrentStock + mov.Delta()
			if newStock < 0 {
				return retry.Permanent(domain.ErrInsufficientStock)
			}
			if err := movRepo.Create(ctx, mov); err != nil {
				return err
			}
			return productRepo.UpdateStock(ctx, input.ProductID, newStock)
		})
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("movement_id", mov.ID).
		Str("product_id", mov.ProductID).
		Str("type", mov.Type).
		Int("delta", mov.Delta()).
		Msg("movimiento de stock registrado")
	return mov, nil
}

// RegisterEntry registra una entrada de mercancía (recepción).
func (uc *LedgerUseCase) RegisterEntry(ctx context.Context, productID string, quantity int, unitCost *decimal.Decimal, reason string, relatedTo json.RawMessage, userID string) (*entity.StockMovement, error) {
	return uc.RegisterMovement(ctx, MovementInput{
		ProductID: productID,
		Type:      entity.MovementTypeEntry,
		Quantity:  quantity,
		UnitCost:  unitCost,
		Reason:    reason,
		RelatedTo: relatedTo,
		UserID:    userID,
	})
}

// RegisterSale registra una venta a cliente.
func (uc *LedgerUseCase) RegisterSale(ctx context.Context, productID string, quantity int, unitPrice *decimal.Decimal, relatedTo json.RawMessage, userID string) (*entity.StockMovement, error) {
	return uc.RegisterMovement(ctx, MovementInput{
		ProductID: productID,
		Type:      entity.MovementTypeSale,
		Quantity:  quantity,
		UnitPrice: unitPrice,
		RelatedTo: relatedTo,
		UserID:    userID,
	})
}

// RegisterInternalUse registra consumo interno de la clínica.
func (uc *LedgerUseCase) RegisterInternalUse(ctx context.Context, productID string, quantity int, reason string, relatedTo json.RawMessage, userID string) (*entity.StockMovement, error) {
	return uc.RegisterMovement(ctx, MovementInput{
		ProductID: productID,
		Type:      entity.MovementTypeInternalUse,
		Quantity:  quantity,
		Reason:    reason,
		RelatedTo: relatedTo,
		UserID:    userID,
	})
}

// DeleteMovement revierte un movimiento eliminando su fila del ledger y
// deshaciendo su efecto sobre el stock, en la misma transacción. Si la
// reversión dejaría stock negativo la operación se rechaza sin efectos.
// La reversión asume que deshacer un movimiento antiguo con movimientos
// intermedios es decisión del operador: solo se valida la no-negatividad.
func (uc *LedgerUseCase) DeleteMovement(ctx context.Context, movementID string) error {
	if movementID == "" {
		return domain.ErrInvalidInput
	}
	err := retry.DoVoid(ctx, uc.retryCfg, func(ctx context.Context) error {
		return uc.txRunner.Run(ctx, func(
			movRepo repository.StockMovementRepository,
			productRepo repository.ProductRepository,
		) error {
			mov, err := movRepo.GetByID(ctx, movementID)
			if err != nil {
				return err
			}
			if mov == nil {
				return retry.Permanent(domain.ErrNotFound)
			}
			product, err := productRepo.GetForUpdate(ctx, mov.ProductID)
			if err != nil {
				return err
			}
			if product == nil {
				return retry.Permanent(domain.ErrNotFound)
			}
			reversed := product.CurrentStock - mov.Delta()
			if reversed < 0 {
				return retry.Permanent(domain.ErrNegativeStock)
			}
			if err := movRepo.Delete(ctx, movementID); err != nil {
				return err
			}
			return productRepo.UpdateStock(ctx, mov.ProductID, reversed)
		})
	})
	if err != nil {
		return err
	}

	uc.log.Info().Str("movement_id", movementID).Msg("movimiento de stock revertido")
	return nil
}
