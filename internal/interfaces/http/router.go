package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/jhoicas/eventos-api/internal/application/auth"
	"github.com/jhoicas/eventos-api/internal/application/usecase"
	"github.com/jhoicas/eventos-api/internal/domain/repository"
	"github.com/jhoicas/eventos-api/pkg/token"
)

// RouterDeps agrupa las dependencias que necesita el router para montar las rutas.
type RouterDeps struct {
	AuthUC     *auth.UseCase
	EventUC    *usecase.EventUseCase
	CategoryUC *usecase.CategoryUseCase
	Codec      *token.Codec
	Users      repository.UserRepository
}

// Router monta todas las rutas de la API bajo /api.
func Router(app *fiber.App, deps RouterDeps) {
	authHandler := NewAuthHandler(deps.AuthUC)
	userHandler := NewUserHandler(deps.AuthUC)
	eventHandler := NewEventHandler(deps.EventUC)
	categoryHandler := NewCategoryHandler(deps.CategoryUC)

	requireAuth := AuthMiddleware(deps.Codec, deps.Users)
	optionalAuth := AuthMiddlewareOptional(deps.Codec, deps.Users)

	api := app.Group("/api")

	// Rutas públicas de autenticación, con rate limit para frenar fuerza bruta.
	authGroup := api.Group("/auth", limiter.New(limiter.Config{
		Max:        30,
		Expiration: time.Minute,
	}))
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/verify-email", authHandler.VerifyEmail)
	authGroup.Post("/resend-verification", authHandler.ResendVerification)
	authGroup.Post("/recover-password", authHandler.RecoverPassword)
	authGroup.Post("/reset-password", authHandler.ResetPassword)
	authGroup.Post("/refresh", authHandler.Refresh)

	// Perfil del usuario autenticado.
	users := api.Group("/users")
	users.Get("/", requireAuth, RequireAdmin(), userHandler.List)
	users.Get("/me", requireAuth, userHandler.GetProfile)
	users.Put("/me", requireAuth, userHandler.UpdateProfile)
	users.Post("/me/password", requireAuth, userHandler.ChangePassword)

	// Eventos: lectura pública con identidad opcional (un admin o el creador
	// ve sus borradores); escritura con sesión.
	events := api.Group("/events")
	events.Get("/", optionalAuth, eventHandler.List)
	events.Get("/:id", optionalAuth, eventHandler.GetByID)
	events.Post("/", requireAuth, eventHandler.Create)
	events.Put("/:id", requireAuth, eventHandler.Update)
	events.Delete("/:id", requireAuth, eventHandler.Delete)

	// Categorías: lectura pública; escritura solo admin.
	categories := api.Group("/categories")
	categories.Get("/", categoryHandler.List)
	categories.Get("/:id", categoryHandler.GetByID)
	categories.Post("/", requireAuth, RequireAdmin(), categoryHandler.Create)
	categories.Put("/:id", requireAuth, RequireAdmin(), categoryHandler.Update)
	categories.Delete("/:id", requireAuth, RequireAdmin(), categoryHandler.Delete)
}
