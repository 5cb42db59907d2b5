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

	"github.com/jhoicas/metrologia-api/internal/application/auth"
	"github.com/jhoicas/metrologia-api/internal/application/inventory"
	"github.com/jhoicas/metrologia-api/internal/application/report"
	"github.com/jhoicas/metrologia-api/internal/application/usecase"
	"github.com/jhoicas/metrologia-api/internal/infrastructure/pdf"
	"github.com/jhoicas/metrologia-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/metrologia-api/internal/interfaces/http"
	"github.com/jhoicas/metrologia-api/pkg/config"
	"github.com/jhoicas/metrologia-api/pkg/logger"
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

	// Repositorios atados al pool (caminos de lectura y auth). El motor de
	// movimientos recibe sus repos atados a cada transacción vía TxRunner.
	itemRepo := postgres.NewItemRepository(pool)
	movementRepo := postgres.NewMovementRepository(pool)
	materialRepo := postgres.NewMaterialRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	sessionRepo := postgres.NewSessionRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	registerMovementUC := inventory.NewRegisterMovementUseCase(txRunner)
	listMovementsUC := inventory.NewListMovementsUseCase(movementRepo)
	itemUC := usecase.NewItemUseCase(itemRepo)
	materialUC := usecase.NewMaterialUseCase(materialRepo)
	itemReportUC := report.NewItemReportUseCase(itemRepo, movementRepo, pdf.NewMarotoReportGenerator())
	authUC := auth.NewAuthUseCase(userRepo, sessionRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, cfg.Auth.EmailDomain, log)

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
		Title:    "Metrología API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		RegisterMovement: registerMovementUC,
		ListMovements:    listMovementsUC,
		ItemUC:           itemUC,
		MaterialUC:       materialUC,
		ItemReport:       itemReportUC,
		AuthUC:           authUC,
		JWTSecret:        cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("apagando servidor")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Error().Err(err).Msg("shutdown")
	}
}
