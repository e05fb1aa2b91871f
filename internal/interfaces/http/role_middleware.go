package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/eventos-api/internal/application/dto"
	"github.com/jhoicas/eventos-api/internal/domain/entity"
)

var (
	errMissingToken = errors.New("authorization header ausente o sin esquema bearer")
	errUnknownUser  = errors.New("el token referencia un usuario inexistente")
	errInactiveUser = errors.New("cuenta desactivada")
)

// RequireRole exige que la identidad ya resuelta por AuthMiddleware tenga uno de los
// roles permitidos. Sin identidad responde 401; con rol no permitido, 403.
func RequireRole(allowed ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role := GetRole(c)
		if role == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:    "MISSING_ROLE",
				Message: "se requiere una sesión autenticada",
			})
		}
		for _, a := range allowed {
			if role == a {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Code:    "FORBIDDEN",
			Message: "rol sin permiso para esta operación",
		})
	}
}

// RequireAdmin especialización de RequireRole para rutas de administración.
func RequireAdmin() fiber.Handler {
	return RequireRole(entity.RoleAdmin)
}
