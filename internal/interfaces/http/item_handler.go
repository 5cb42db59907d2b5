package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/metrologia-api/internal/application/dto"
	"github.com/jhoicas/metrologia-api/internal/application/report"
	"github.com/jhoicas/metrologia-api/internal/application/usecase"
	"github.com/jhoicas/metrologia-api/internal/domain"
)

// ItemHandler maneja las peticiones HTTP del catálogo de ítems (protegido).
type ItemHandler struct {
	uc     *usecase.ItemUseCase
	report *report.ItemReportUseCase
}

// NewItemHandler construye el handler.
func NewItemHandler(uc *usecase.ItemUseCase, reportUC *report.ItemReportUseCase) *ItemHandler {
	return &ItemHandler{uc: uc, report: reportUC}
}

// Create godoc
// @Summary      Crear ítem (solo admin)
// @Tags         items
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateItemRequest  true  "category, name, internal_code, quantity"
// @Success      201   {object}  dto.ItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/items [post]
func (h *ItemHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	item, err := h.uc.Create(in)
	if err != nil {
		return mapItemError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(item)
}

// Update godoc
// @Summary      Editar metadatos de un ítem (solo admin)
// @Description  Cantidad y estado no son editables; las correcciones de stock van por movimientos.
// @Tags         items
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        category  path  string  true  "instrument | tool"
// @Param        id        path  string  true  "ID del ítem"
// @Param        body      body  dto.UpdateItemRequest  true  "campos a actualizar"
// @Success      200   {object}  dto.ItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/items/{category}/{id} [patch]
func (h *ItemHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	item, err := h.uc.Update(c.Params("category"), c.Params("id"), in)
	if err != nil {
		return mapItemError(c, err)
	}
	return c.JSON(item)
}

// List godoc
// @Summary      Listar ítems
// @Tags         items
// @Security     Bearer
// @Produce      json
// @Param        category  query  string  false  "instrument | tool (vacío = ambas)"
// @Param        status    query  string  false  "available | loaned (solo instrumentos)"
// @Success      200  {array}   dto.ItemResponse
// @Router       /api/items [get]
func (h *ItemHandler) List(c *fiber.Ctx) error {
	items, err := h.uc.List(c.Query("category"), c.Query("status"), 200)
	if err != nil {
		return mapItemError(c, err)
	}
	return c.JSON(items)
}

// GetByCode godoc
// @Summary      Buscar ítem por código patrimonial
// @Tags         items
// @Security     Bearer
// @Produce      json
// @Param        codigo    query  string  true   "código patrimonial"
// @Param        category  query  string  false  "instrument | tool (vacío = ambas)"
// @Success      200  {object}  dto.ItemResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/items/by-code [get]
func (h *ItemHandler) GetByCode(c *fiber.Ctx) error {
	item, err := h.uc.GetByCode(c.Query("codigo"), c.Query("category"))
	if err != nil {
		return mapItemError(c, err)
	}
	return c.JSON(item)
}

// CalibrationAlerts godoc
// @Summary      Alertas de calibración
// @Description  Instrumentos con calibración vencida o por vencer en N días (default 30).
// @Tags         items
// @Security     Bearer
// @Produce      json
// @Param        days  query  int  false  "ventana en días, > 0"
// @Success      200  {object}  dto.CalibrationAlertsResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/items/alerts/calibration [get]
func (h *ItemHandler) CalibrationAlerts(c *fiber.Ctx) error {
	days := c.QueryInt("days", 30)
	alerts, err := h.uc.CalibrationAlerts(days)
	if err != nil {
		return mapItemError(c, err)
	}
	return c.JSON(alerts)
}

// Report godoc
// @Summary      Hoja de vida de un ítem en PDF
// @Tags         items
// @Security     Bearer
// @Produce      application/pdf
// @Param        codigo  query  string  true  "código patrimonial"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/items/report [get]
func (h *ItemHandler) Report(c *fiber.Ctx) error {
	pdfBytes, err := h.report.GenerateByCode(c.Context(), c.Query("codigo"))
	if err != nil {
		return mapItemError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	return c.Send(pdfBytes)
}

// mapItemError mapea errores de catálogo a HTTP.
func mapItemError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "ítem no encontrado"})
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE_CODE", Message: "el código patrimonial ya existe"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
