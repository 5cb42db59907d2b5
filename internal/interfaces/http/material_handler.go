package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/metrologia-api/internal/application/dto"
	"github.com/jhoicas/metrologia-api/internal/application/usecase"
	"github.com/jhoicas/metrologia-api/internal/domain"
)

// MaterialHandler maneja el catálogo de materiales consumibles (protegido).
type MaterialHandler struct {
	uc *usecase.MaterialUseCase
}

// NewMaterialHandler construye el handler.
func NewMaterialHandler(uc *usecase.MaterialUseCase) *MaterialHandler {
	return &MaterialHandler{uc: uc}
}

// List godoc
// @Summary      Listar materiales
// @Tags         materials
// @Security     Bearer
// @Produce      json
// @Param        tipo  query  string  false  "filtrar por tipo (ej. giro)"
// @Success      200  {array}  dto.MaterialResponse
// @Router       /api/materials [get]
func (h *MaterialHandler) List(c *fiber.Ctx) error {
	materials, err := h.uc.List(c.Query("tipo"))
	if err != nil {
		return mapMaterialError(c, err)
	}
	return c.JSON(materials)
}

// Create godoc
// @Summary      Crear material (solo admin)
// @Tags         materials
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateMaterialRequest  true  "code, name, quantity, location, type, expires_at"
// @Success      201   {object}  dto.MaterialResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/materials [post]
func (h *MaterialHandler) Create(c *fiber.Ctx) error {
	return h.create(c, false)
}

// CreateGiro godoc
// @Summary      Crear material de giro (solo admin; fuerza type=giro)
// @Tags         materials
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateMaterialRequest  true  "code, name, quantity, location, expires_at"
// @Success      201   {object}  dto.MaterialResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/materials/giro [post]
func (h *MaterialHandler) CreateGiro(c *fiber.Ctx) error {
	return h.create(c, true)
}

func (h *MaterialHandler) create(c *fiber.Ctx, forceGiro bool) error {
	var in dto.CreateMaterialRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	material, err := h.uc.Create(in, forceGiro)
	if err != nil {
		return mapMaterialError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(material)
}

// mapMaterialError mapea errores del catálogo de materiales a HTTP.
func mapMaterialError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE_CODE", Message: "el código de material ya existe"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
