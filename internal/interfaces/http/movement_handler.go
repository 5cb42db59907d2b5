package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/metrologia-api/internal/application/dto"
	"github.com/jhoicas/metrologia-api/internal/application/inventory"
	"github.com/jhoicas/metrologia-api/internal/domain"
)

// MovementHandler maneja las peticiones HTTP del libro de movimientos (protegido).
type MovementHandler struct {
	register *inventory.RegisterMovementUseCase
	list     *inventory.ListMovementsUseCase
}

// NewMovementHandler construye el handler.
func NewMovementHandler(register *inventory.RegisterMovementUseCase, list *inventory.ListMovementsUseCase) *MovementHandler {
	return &MovementHandler{register: register, list: list}
}

// Register godoc
// @Summary      Registrar movimiento de stock
// @Tags         movements
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterMovementRequest  true  "type, category, item_id o code, quantity, note"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /api/movements [post]
func (h *MovementHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}

	// Validación pura antes de tocar almacenamiento.
	input, err := inventory.NormalizeMovementRequest(in, GetUserID(c))
	if err != nil {
		return mapMovementError(c, err)
	}

	result, err := h.register.RegisterMovement(c.Context(), input)
	if err != nil {
		return mapMovementError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.MovementResponse{
		Committed:   true,
		MovementID:  result.Movement.ID,
		ItemID:      result.Movement.ItemID,
		NewQuantity: result.NewQuantity,
		NewStatus:   result.NewStatus,
	})
}

// List godoc
// @Summary      Listar movimientos
// @Description  Más recientes primero; limit se acota a [1,1000] en el servidor.
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        item_id  query  string  false  "Filtrar por ítem (UUID)"
// @Param        code     query  string  false  "Filtrar por código patrimonial"
// @Param        limit    query  int     false  "Máximo de registros (1..1000, default 200)"
// @Param        offset   query  int     false  "Desplazamiento de página"
// @Success      200  {array}   dto.MovementDTO
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/movements [get]
func (h *MovementHandler) List(c *fiber.Ctx) error {
	var in dto.ListMovementsRequest
	if err := c.QueryParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "query inválida"})
	}
	movements, err := h.list.List(in.ItemID, in.Code, in.Limit, in.Offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	out := make([]dto.MovementDTO, 0, len(movements))
	for _, m := range movements {
		out = append(out, dto.MovementDTO{
			ID:           m.ID,
			Type:         m.Type,
			ItemID:       m.ItemID,
			Category:     m.Category,
			InternalCode: m.InternalCode,
			Quantity:     m.Quantity,
			ActorID:      m.ActorID,
			Note:         m.Note,
			OccurredAt:   m.OccurredAt,
		})
	}
	return c.JSON(out)
}

// mapMovementError mapea la taxonomía de errores del motor a HTTP (1:1).
func mapMovementError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "usuario inválido"})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "ITEM_NOT_FOUND", Message: "ítem no encontrado"})
	case errors.Is(err, domain.ErrInsufficientStock):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: "stock insuficiente"})
	case errors.Is(err, domain.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: "conflicto de escritura concurrente, reintente"})
	case errors.Is(err, domain.ErrUnavailable):
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "UNAVAILABLE", Message: "almacenamiento no disponible"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
