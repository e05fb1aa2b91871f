package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/eventos-api/internal/application/auth"
	"github.com/jhoicas/eventos-api/internal/application/dto"
	"github.com/jhoicas/eventos-api/internal/domain"
)

// AuthHandler maneja registro, login, verificación de email, recuperación y refresh.
type AuthHandler struct {
	uc *auth.UseCase
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc *auth.UseCase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// Register godoc
// @Summary      Registrar usuario
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterRequest  true  "name, email, password"
// @Success      201   {object}  dto.UserResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if in.Name == "" || in.Email == "" || in.Password == "" {
		return validation(c, "name, email y password son requeridos")
	}
	if len(in.Password) < 8 {
		return validation(c, "password debe tener al menos 8 caracteres")
	}
	out, err := h.uc.Register(c.Context(), in)
	if err != nil {
		if errors.Is(err, domain.ErrEmailAlreadyExists) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
				Code: "EMAIL_EXISTS", Message: "el email ya está registrado"})
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			return validation(c, "datos de registro inválidos")
		}
		return internal(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Login godoc
// @Summary      Iniciar sesión
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "email, password"
// @Success      200   {object}  dto.LoginResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.UnverifiedResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if in.Email == "" || in.Password == "" {
		return validation(c, "email y password son requeridos")
	}
	out, err := h.uc.Login(c.Context(), in)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEmailNotVerified):
			// No es un 401: el cliente debe dirigir al flujo de reenvío de verificación.
			return c.Status(fiber.StatusForbidden).JSON(dto.UnverifiedResponse{
				EmailVerified: false,
				Email:         in.Email,
				Message:       "verifica tu email antes de iniciar sesión",
			})
		case errors.Is(err, domain.ErrAccountInactive):
			// Mismo genérico que credenciales inválidas, con nota operativa.
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:    "UNAUTHORIZED",
				Message: "credenciales inválidas; si el problema persiste contacta al administrador",
			})
		case errors.Is(err, domain.ErrInvalidCredentials):
			return unauthorized(c)
		case errors.Is(err, domain.ErrInvalidInput):
			return validation(c, "email y password son requeridos")
		}
		return internal(c, err)
	}
	return c.JSON(out)
}

// VerifyEmail godoc
// @Summary      Verificar email
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.VerifyEmailRequest  true  "token de verificación"
// @Success      200   {object}  dto.VerifyEmailResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/auth/verify-email [post]
func (h *AuthHandler) VerifyEmail(c *fiber.Ctx) error {
	var in dto.VerifyEmailRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.VerifyEmail(c.Context(), in.Token)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			return validation(c, "token es requerido")
		case errors.Is(err, domain.ErrVerificationExpired):
			return validation(c, "el token de verificación expiró, solicita un reenvío")
		case errors.Is(err, domain.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Code: "NOT_FOUND", Message: "token inválido o expirado"})
		}
		return internal(c, err)
	}
	return c.JSON(out)
}

// ResendVerification godoc
// @Summary      Reenviar correo de verificación
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ResendVerificationRequest  true  "email"
// @Success      200   {object}  dto.MessageResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/auth/resend-verification [post]
func (h *AuthHandler) ResendVerification(c *fiber.Ctx) error {
	var in dto.ResendVerificationRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.ResendVerification(c.Context(), in.Email)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return validation(c, "email es requerido")
		}
		return internal(c, err)
	}
	return c.JSON(out)
}

// RecoverPassword godoc
// @Summary      Solicitar recuperación de password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RecoveryRequest  true  "email"
// @Success      200   {object}  dto.MessageResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/auth/recover-password [post]
func (h *AuthHandler) RecoverPassword(c *fiber.Ctx) error {
	var in dto.RecoveryRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.RequestPasswordRecovery(c.Context(), in.Email)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return validation(c, "email es requerido")
		}
		return internal(c, err)
	}
	return c.JSON(out)
}

// ResetPassword godoc
// @Summary      Restablecer password con token de recuperación
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ResetPasswordRequest  true  "token, password"
// @Success      200   {object}  dto.MessageResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/auth/reset-password [post]
func (h *AuthHandler) ResetPassword(c *fiber.Ctx) error {
	var in dto.ResetPasswordRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if len(in.Password) < 8 {
		return validation(c, "password debe tener al menos 8 caracteres")
	}
	out, err := h.uc.ResetPassword(c.Context(), in.Token, in.Password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			return validation(c, "token y password son requeridos")
		case errors.Is(err, domain.ErrRecoveryExpired):
			return validation(c, "el token de recuperación expiró, solicita uno nuevo")
		case errors.Is(err, domain.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Code: "NOT_FOUND", Message: "token inválido o expirado"})
		}
		return internal(c, err)
	}
	return c.JSON(out)
}

// Refresh godoc
// @Summary      Renovar token de acceso
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RefreshRequest  true  "refresh_token"
// @Success      200   {object}  dto.RefreshResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/auth/refresh [post]
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	var in dto.RefreshRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.RefreshAccessToken(c.Context(), in.RefreshToken)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidToken) || errors.Is(err, domain.ErrAccountInactive) {
			return unauthorized(c)
		}
		return internal(c, err)
	}
	return c.JSON(out)
}

// Helpers de respuesta compartidos por los handlers.

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
		Code: "INVALID_BODY", Message: "cuerpo inválido"})
}

func validation(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
		Code: "VALIDATION", Message: msg})
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
		Code: "UNAUTHORIZED", Message: "credenciales inválidas"})
}

func internal(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
		Code: "INTERNAL", Message: err.Error()})
}
