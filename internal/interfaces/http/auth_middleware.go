package http

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/eventos-api/internal/application/dto"
	"github.com/jhoicas/eventos-api/internal/domain/entity"
	"github.com/jhoicas/eventos-api/pkg/token"
)

// Locals keys para la identidad resuelta en Fiber.
const (
	LocalUserID = "user_id"
	LocalEmail  = "user_email"
	LocalRole   = "user_role"
	LocalName   = "user_name"
)

// userLoader es el contrato mínimo que necesita el middleware para cargar al usuario.
// Lo implementa repository.UserRepository; la interfaz local evita acoplar el paquete.
type userLoader interface {
	GetByID(ctx context.Context, id int64) (*entity.User, error)
}

// AuthMiddleware valida el Bearer Token de acceso, carga al usuario y exige cuenta activa.
// Cualquier fallo (firma, expiración, clase de token, usuario inexistente o suspendido)
// responde 401; la causa concreta solo se distingue en el log.
func AuthMiddleware(codec *token.Codec, users userLoader) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, code, err := resolveIdentity(c, codec, users)
		if err != nil {
			log.Debug().Err(err).Str("code", code).Msg("request no autenticada")
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:    code,
				Message: "token inválido o expirado",
			})
		}
		attachIdentity(c, user)
		return c.Next()
	}
}

// AuthMiddlewareOptional intenta resolver la identidad pero nunca rechaza: si el token
// falta o no valida, la request sigue como anónima. Para rutas con visibilidad mixta
// (ej. listados donde solo un admin ve borradores).
func AuthMiddlewareOptional(codec *token.Codec, users userLoader) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if user, _, err := resolveIdentity(c, codec, users); err == nil {
			attachIdentity(c, user)
		}
		return c.Next()
	}
}

// resolveIdentity extrae el bearer, verifica claims de ACCESO y carga al usuario activo.
func resolveIdentity(c *fiber.Ctx, codec *token.Codec, users userLoader) (*entity.User, string, error) {
	tokenString := token.ExtractBearer(c.Get(fiber.HeaderAuthorization))
	if tokenString == "" {
		return nil, "MISSING_TOKEN", errMissingToken
	}
	claims, err := codec.VerifyAccess(tokenString)
	if err != nil {
		// Incluye refresh tokens presentados como access (discriminador de clase).
		return nil, "INVALID_TOKEN", err
	}
	user, err := users.GetByID(c.Context(), claims.UserID)
	if err != nil {
		return nil, "INTERNAL", err
	}
	if user == nil {
		return nil, "INVALID_TOKEN", errUnknownUser
	}
	if !user.Active {
		return nil, "ACCOUNT_INACTIVE", errInactiveUser
	}
	return user, "", nil
}

func attachIdentity(c *fiber.Ctx, user *entity.User) {
	c.Locals(LocalUserID, user.ID)
	c.Locals(LocalEmail, user.Email)
	c.Locals(LocalRole, user.Role)
	c.Locals(LocalName, user.Name)
}

// GetUserID devuelve el ID del usuario autenticado, 0 si la request es anónima.
func GetUserID(c *fiber.Ctx) int64 {
	v, _ := c.Locals(LocalUserID).(int64)
	return v
}

// GetEmail devuelve el email del usuario autenticado.
func GetEmail(c *fiber.Ctx) string {
	v, _ := c.Locals(LocalEmail).(string)
	return v
}

// GetRole devuelve el rol del usuario autenticado, "" si la request es anónima.
func GetRole(c *fiber.Ctx) string {
	v, _ := c.Locals(LocalRole).(string)
	return v
}

// GetName devuelve el nombre del usuario autenticado.
func GetName(c *fiber.Ctx) string {
	v, _ := c.Locals(LocalName).(string)
	return v
}
