package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/eventos-api/internal/application/auth"
	"github.com/jhoicas/eventos-api/internal/application/dto"
	"github.com/jhoicas/eventos-api/internal/domain"
)

// UserHandler maneja el perfil del usuario autenticado y el cambio de password.
type UserHandler struct {
	uc *auth.UseCase
}

// NewUserHandler construye el handler de usuarios.
func NewUserHandler(uc *auth.UseCase) *UserHandler {
	return &UserHandler{uc: uc}
}

// GetProfile godoc
// @Summary      Perfil del usuario autenticado
// @Tags         users
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.UserResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/users/me [get]
func (h *UserHandler) GetProfile(c *fiber.Ctx) error {
	out, err := h.uc.GetProfile(c.Context(), GetUserID(c))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Code: "NOT_FOUND", Message: "usuario no encontrado"})
		}
		return internal(c, err)
	}
	return c.JSON(out)
}

// UpdateProfile godoc
// @Summary      Editar perfil del usuario autenticado
// @Tags         users
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UpdateProfileRequest  true  "name y/o email"
// @Success      200   {object}  dto.UserResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/users/me [put]
func (h *UserHandler) UpdateProfile(c *fiber.Ctx) error {
	var in dto.UpdateProfileRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.UpdateProfile(c.Context(), GetUserID(c), in)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEmailAlreadyExists):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
				Code: "EMAIL_EXISTS", Message: "el email ya está registrado"})
		case errors.Is(err, domain.ErrUserNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Code: "NOT_FOUND", Message: "usuario no encontrado"})
		}
		return internal(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar usuarios (admin)
// @Tags         users
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"  default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200     {array}  dto.UserResponse
// @Failure      403     {object}  dto.ErrorResponse
// @Router       /api/users [get]
func (h *UserHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return validation(c, "paginación inválida")
	}
	page.DefaultPage()
	out, err := h.uc.ListUsers(c.Context(), page.Limit, page.Offset)
	if err != nil {
		return internal(c, err)
	}
	return c.JSON(out)
}

// ChangePassword godoc
// @Summary      Cambiar password (autenticado)
// @Tags         users
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ChangePasswordRequest  true  "current_password, new_password"
// @Success      200   {object}  dto.MessageResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/users/me/password [post]
func (h *UserHandler) ChangePassword(c *fiber.Ctx) error {
	var in dto.ChangePasswordRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if len(in.NewPassword) < 8 {
		return validation(c, "new_password debe tener al menos 8 caracteres")
	}
	out, err := h.uc.ChangePassword(c.Context(), GetUserID(c), in)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			return validation(c, "current_password y new_password son requeridos")
		case errors.Is(err, domain.ErrInvalidCredentials):
			return unauthorized(c)
		case errors.Is(err, domain.ErrUserNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Code: "NOT_FOUND", Message: "usuario no encontrado"})
		}
		return internal(c, err)
	}
	return c.JSON(out)
}
