package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/eventos-api/internal/application/auth"
	"github.com/jhoicas/eventos-api/internal/application/usecase"
	"github.com/jhoicas/eventos-api/internal/infrastructure/email"
	"github.com/jhoicas/eventos-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/eventos-api/internal/interfaces/http"
	"github.com/jhoicas/eventos-api/pkg/config"
	"github.com/jhoicas/eventos-api/pkg/logger"
	"github.com/jhoicas/eventos-api/pkg/token"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	eventRepo := postgres.NewEventRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)

	codec, err := token.NewCodec(token.Config{
		Secret:     cfg.JWT.Secret,
		Issuer:     cfg.JWT.Issuer,
		AccessTTL:  time.Duration(cfg.JWT.AccessExpDays) * 24 * time.Hour,
		RefreshTTL: time.Duration(cfg.JWT.RefreshExpDays) * 24 * time.Hour,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("configuración de tokens")
	}

	// Sin SMTP configurado los correos solo se registran en el log (entornos de desarrollo).
	var mailer auth.Mailer
	if cfg.SMTP.Host != "" {
		smtpMailer, err := email.NewSMTPMailer(cfg.SMTP)
		if err != nil {
			log.Fatal().Err(err).Msg("configuración SMTP")
		}
		mailer = smtpMailer
	} else {
		log.Warn().Msg("SMTP_HOST vacío: los correos se escriben al log")
		mailer = email.NewLogMailer(log)
	}

	authUC := auth.NewUseCase(userRepo, codec, mailer, log, auth.Config{
		VerificationTTL: time.Duration(cfg.Auth.VerificationTTLHours) * time.Hour,
		RecoveryTTL:     time.Duration(cfg.Auth.RecoveryTTLMinutes) * time.Minute,
	})
	categoryUC := usecase.NewCategoryUseCase(categoryRepo)
	eventUC := usecase.NewEventUseCase(eventRepo, categoryRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Eventos API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:     authUC,
		EventUC:    eventUC,
		CategoryUC: categoryUC,
		Codec:      codec,
		Users:      userRepo,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
