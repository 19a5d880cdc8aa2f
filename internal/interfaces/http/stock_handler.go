package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Clinivet-api/internal/application/dto"
	"github.com/jhoicas/Clinivet-api/internal/application/stock"
	"github.com/jhoicas/Clinivet-api/internal/domain"
	"github.com/jhoicas/Clinivet-api/internal/domain/repository"
)

// StockHandler maneja las peticiones HTTP del ledger de movimientos (protegido).
type StockHandler struct {
	ledger  *stock.LedgerUseCase
	summary *stock.SummaryUseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(ledger *stock.LedgerUseCase, summary *stock.SummaryUseCase) *StockHandler {
	return &StockHandler{ledger: ledger, summary: summary}
}

// parseDate acepta RFC 3339 o YYYY-MM-DD.
func parseDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return &t, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	return &t, nil
}

func buildMovementFilter(in dto.MovementFilterRequest) (repository.MovementFilter, error) {
	from, err := parseDate(in.DateFrom)
	if err != nil {
		return repository.MovementFilter{}, err
	}
	to, err := parseDate(in.DateTo)
	if err != nil {
		return repository.MovementFilter{}, err
	}
	return repository.MovementFilter{
		ProductID: in.ProductID,
		Type:      in.Type,
		UserID:    in.UserID,
		DateFrom:  from,
		DateTo:    to,
		Reason:    in.Reason,
	}, nil
}

// movementError mapea los errores del ledger a respuestas HTTP.
func movementError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto o movimiento no encontrado"})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
	case errors.Is(err, domain.ErrProductInactive):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "PRODUCT_INACTIVE", Message: "el producto está inactivo"})
	case errors.Is(err, domain.ErrInsufficientStock):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: "stock insuficiente para la operación"})
	case errors.Is(err, domain.ErrNegativeStock):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "NEGATIVE_STOCK", Message: "revertir dejaría el stock en negativo"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}

// Create godoc
// @Summary      Registrar movimiento de stock
// @Description  Registra entry, sale, adjustment o internal_use. Para adjustment
// @Description  la dirección (in/out) es obligatoria; en el resto se deriva del tipo.
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateMovementRequest  true  "Datos del movimiento"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/stock-movements [post]
func (h *StockHandler) Create(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.CreateMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := validate.Struct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: validationMessage(err)})
	}
	mov, err := h.ledger.RegisterMovement(c.Context(), stock.MovementInput{
		ProductID: in.ProductID,
		Type:      in.Type,
		Direction: in.Direction,
		Quantity:  in.Quantity,
		UnitCost:  in.UnitCost,
		UnitPrice: in.UnitPrice,
		Reason:    in.Reason,
		RelatedTo: in.RelatedTo,
		UserID:    userID,
	})
	if err != nil {
		return movementError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToMovementResponse(mov))
}

// CreateEntry godoc
// @Summary      Registrar entrada de mercancía
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateEntryRequest  true  "Datos de la entrada"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/stock-movements/entry [post]
func (h *StockHandler) CreateEntry(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.CreateEntryRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := validate.Struct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: validationMessage(err)})
	}
	mov, err := h.ledger.RegisterEntry(c.Context(), in.ProductID, in.Quantity, in.UnitCost, in.Reason, in.RelatedTo, userID)
	if err != nil {
		return movementError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToMovementResponse(mov))
}

// CreateSale godoc
// @Summary      Registrar venta
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSaleRequest  true  "Datos de la venta"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/stock-movements/sale [post]
func (h *StockHandler) CreateSale(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.CreateSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := validate.Struct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: validationMessage(err)})
	}
	mov, err := h.ledger.RegisterSale(c.Context(), in.ProductID, in.Quantity, in.UnitPrice, in.RelatedTo, userID)
	if err != nil {
		return movementError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToMovementResponse(mov))
}

// CreateInternalUse godoc
// @Summary      Registrar consumo interno
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateInternalUseRequest  true  "Datos del consumo"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/stock-movements/internal-use [post]
func (h *StockHandler) CreateInternalUse(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.CreateInternalUseRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := validate.Struct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: validationMessage(err)})
	}
	mov, err := h.ledger.RegisterInternalUse(c.Context(), in.ProductID, in.Quantity, in.Reason, in.RelatedTo, userID)
	if err != nil {
		return movementError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToMovementResponse(mov))
}

// List godoc
// @Summary      Listar movimientos de stock
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        product_id  query  string  false  "Filtrar por producto"
// @Param        type        query  string  false  "entry | sale | adjustment | internal_use"
// @Param        user_id     query  string  false  "Filtrar por usuario"
// @Param        date_from   query  string  false  "RFC 3339 o YYYY-MM-DD"
// @Param        date_to     query  string  false  "RFC 3339 o YYYY-MM-DD"
// @Param        reason      query  string  false  "Texto contenido en el motivo"
// @Param        page        query  int     false  "Página"  default(1)
// @Param        limit       query  int     false  "Límite"  default(20)
// @Success      200  {object}  dto.MovementListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/stock-movements [get]
func (h *StockHandler) List(c *fiber.Ctx) error {
	var in dto.MovementFilterRequest
	if err := c.QueryParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "parámetros inválidos"})
	}
	if err := validate.Struct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: validationMessage(err)})
	}
	filter, err := buildMovementFilter(in)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "fecha inválida; use RFC 3339 o YYYY-MM-DD"})
	}
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "parámetros inválidos"})
	}
	out, err := h.summary.ListMovements(c.Context(), filter, page)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Summary godoc
// @Summary      Resumen agregado de movimientos
// @Description  Totales por tipo más value_entries (Σ cantidad × unit_cost de las
// @Description  entradas con coste) y value_sales (Σ cantidad × unit_price de las ventas con precio).
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        product_id  query  string  false  "Filtrar por producto"
// @Param        type        query  string  false  "entry | sale | adjustment | internal_use"
// @Param        date_from   query  string  false  "RFC 3339 o YYYY-MM-DD"
// @Param        date_to     query  string  false  "RFC 3339 o YYYY-MM-DD"
// @Success      200  {object}  dto.MovementSummaryResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/stock-movements/summary [get]
func (h *StockHandler) Summary(c *fiber.Ctx) error {
	var in dto.MovementFilterRequest
	if err := c.QueryParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "parámetros inválidos"})
	}
	if err := validate.Struct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: validationMessage(err)})
	}
	filter, err := buildMovementFilter(in)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "fecha inválida; use RFC 3339 o YYYY-MM-DD"})
	}
	out, err := h.summary.Summary(c.Context(), filter)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Revertir un movimiento
// @Description  Elimina la fila del ledger y deshace su efecto sobre el stock en
// @Description  la misma transacción. Rechaza la reversión si dejaría stock negativo.
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del movimiento"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/stock-movements/{id} [delete]
func (h *StockHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	if err := h.ledger.DeleteMovement(c.Context(), id); err != nil {
		return movementError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "movimiento revertido"})
}
