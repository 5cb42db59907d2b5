package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/metrologia-api/internal/application/auth"
	"github.com/jhoicas/metrologia-api/internal/application/dto"
	"github.com/jhoicas/metrologia-api/internal/domain"
)

// AuthHandler maneja login y alta de usuarios.
type AuthHandler struct {
	uc *auth.AuthUseCase
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc *auth.AuthUseCase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// Login godoc
// @Summary      Iniciar sesión
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "email, password"
// @Success      200   {object}  dto.LoginResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Login(in, c.Get(fiber.HeaderUserAgent, "Desconocido"), c.IP())
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
		}
		if errors.Is(err, domain.ErrUnauthorized) || errors.Is(err, domain.ErrUserNotFound) {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "credenciales inválidas"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// CreateUser godoc
// @Summary      Crear usuario (solo admin)
// @Tags         auth
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  object  true  "name, email, password, role"
// @Success      201   {object}  dto.UserResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/users [post]
func (h *AuthHandler) CreateUser(c *fiber.Ctx) error {
	var in struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
		Role     string `json:"role"`
	}
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	user, err := h.uc.CreateUser(in.Email, in.Password, in.Name, in.Role)
	if err != nil {
		return mapUserError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}

// ListUsers godoc
// @Summary      Listar usuarios (admin y gestor; gestor no ve admins)
// @Tags         users
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.UserResponse
// @Router       /api/users [get]
func (h *AuthHandler) ListUsers(c *fiber.Ctx) error {
	users, err := h.uc.ListUsers(GetRole(c))
	if err != nil {
		return mapUserError(c, err)
	}
	return c.JSON(users)
}

// GetUser godoc
// @Summary      Ver usuario (el propio o admin)
// @Tags         users
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del usuario"
// @Success      200  {object}  dto.UserResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/users/{id} [get]
func (h *AuthHandler) GetUser(c *fiber.Ctx) error {
	user, err := h.uc.GetUser(GetUserID(c), GetRole(c), c.Params("id"))
	if err != nil {
		return mapUserError(c, err)
	}
	return c.JSON(user)
}

// UpdateUser godoc
// @Summary      Editar usuario (admin y gestor; gestor no promueve a admin)
// @Tags         users
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "ID del usuario"
// @Param        body  body  dto.UpdateUserRequest  true  "campos a actualizar"
// @Success      200   {object}  dto.UserResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/users/{id} [patch]
func (h *AuthHandler) UpdateUser(c *fiber.Ctx) error {
	var in dto.UpdateUserRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	user, err := h.uc.UpdateUser(GetUserID(c), GetRole(c), c.Params("id"), in)
	if err != nil {
		return mapUserError(c, err)
	}
	return c.JSON(user)
}

// DeleteUser godoc
// @Summary      Eliminar usuario (solo admin)
// @Tags         users
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del usuario"
// @Success      200  {object}  map[string]bool
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/users/{id} [delete]
func (h *AuthHandler) DeleteUser(c *fiber.Ctx) error {
	if err := h.uc.DeleteUser(c.Params("id")); err != nil {
		return mapUserError(c, err)
	}
	return c.JSON(fiber.Map{"ok": true})
}

// ListSessions godoc
// @Summary      Listar sesiones de login de un usuario (el propio o admin)
// @Tags         users
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del usuario"
// @Success      200  {array}   dto.SessionDTO
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/users/{id}/sessions [get]
func (h *AuthHandler) ListSessions(c *fiber.Ctx) error {
	sessions, err := h.uc.ListSessions(GetUserID(c), GetRole(c), c.Params("id"))
	if err != nil {
		return mapUserError(c, err)
	}
	return c.JSON(sessions)
}

// RevokeSession godoc
// @Summary      Revocar una sesión de login (el propio usuario o admin)
// @Tags         users
// @Security     Bearer
// @Produce      json
// @Param        id         path  string  true  "ID del usuario"
// @Param        sessionId  path  string  true  "ID de la sesión"
// @Success      200  {object}  map[string]bool
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/users/{id}/sessions/{sessionId}/revoke [post]
func (h *AuthHandler) RevokeSession(c *fiber.Ctx) error {
	if err := h.uc.RevokeSession(GetUserID(c), GetRole(c), c.Params("id"), c.Params("sessionId")); err != nil {
		return mapUserError(c, err)
	}
	return c.JSON(fiber.Map{"ok": true})
}

// mapUserError mapea errores de la superficie de usuarios a HTTP.
func mapUserError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "acceso denegado"})
	case errors.Is(err, domain.ErrUserNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "USER_NOT_FOUND", Message: "usuario no encontrado"})
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "EMAIL_EXISTS", Message: "el email ya está registrado"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
