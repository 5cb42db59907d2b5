package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/metrologia-api/internal/application/auth"
	"github.com/jhoicas/metrologia-api/internal/application/inventory"
	"github.com/jhoicas/metrologia-api/internal/application/report"
	"github.com/jhoicas/metrologia-api/internal/application/usecase"
	"github.com/jhoicas/metrologia-api/internal/domain/entity"
	"github.com/jhoicas/metrologia-api/pkg/metrics"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	RegisterMovement *inventory.RegisterMovementUseCase
	ListMovements    *inventory.ListMovementsUseCase
	ItemUC           *usecase.ItemUseCase
	MaterialUC       *usecase.MaterialUseCase
	ItemReport       *report.ItemReportUseCase
	AuthUC           *auth.AuthUseCase
	JWTSecret        string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Métricas Prometheus (público)
	app.Get("/metrics", adaptor.HTTPHandler(
		promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{ErrorHandling: promhttp.ContinueOnError}),
	))

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Usuarios y sesiones
	users := protected.Group("/users")
	users.Post("/", RequireRole(entity.RoleAdmin), authHandler.CreateUser)
	users.Get("/", RequireRole(entity.RoleGestor, entity.RoleAdmin), authHandler.ListUsers)
	users.Get("/:id", authHandler.GetUser)
	users.Patch("/:id", RequireRole(entity.RoleGestor, entity.RoleAdmin), authHandler.UpdateUser)
	users.Delete("/:id", RequireRole(entity.RoleAdmin), authHandler.DeleteUser)
	users.Get("/:id/sessions", authHandler.ListSessions)
	users.Post("/:id/sessions/:sessionId/revoke", authHandler.RevokeSession)

	// Catálogo de ítems
	items := protected.Group("/items")
	itemHandler := NewItemHandler(deps.ItemUC, deps.ItemReport)
	items.Get("/", itemHandler.List)
	items.Get("/by-code", itemHandler.GetByCode)
	items.Get("/alerts/calibration", itemHandler.CalibrationAlerts)
	items.Get("/report", itemHandler.Report)
	items.Post("/", RequireRole(entity.RoleAdmin), itemHandler.Create)
	items.Patch("/:category/:id", RequireRole(entity.RoleAdmin), itemHandler.Update)

	// Catálogo de materiales consumibles
	materials := protected.Group("/materials")
	materialHandler := NewMaterialHandler(deps.MaterialUC)
	materials.Get("/", materialHandler.List)
	materials.Post("/", RequireRole(entity.RoleAdmin), materialHandler.Create)
	materials.Post("/giro", RequireRole(entity.RoleAdmin), materialHandler.CreateGiro)

	// Libro de movimientos
	movements := protected.Group("/movements")
	movementHandler := NewMovementHandler(deps.RegisterMovement, deps.ListMovements)
	movements.Post("/", movementHandler.Register)
	movements.Get("/", movementHandler.List)
}
