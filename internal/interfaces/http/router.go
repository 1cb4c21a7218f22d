package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/denta-stock-api/internal/application/auth"
	"github.com/jhoicas/denta-stock-api/internal/application/inventory"
	"github.com/jhoicas/denta-stock-api/internal/application/reports"
	"github.com/jhoicas/denta-stock-api/internal/application/settings"
	"github.com/jhoicas/denta-stock-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	ItemUC      *inventory.ItemUseCase
	MovementUC  *inventory.MovementUseCase
	CategoryUC  *settings.CategoryUseCase
	UnitUC      *settings.UnitUseCase
	DashboardUC *reports.DashboardUseCase
	ReportsUC   *reports.ReportsUseCase
	TeamUC      *reports.TeamUseCase
	JWTSecret   string
}

// Router registra las rutas de la API.
//
// RequireRole en las rutas es solo la primera barrera (rechazo barato en el
// borde); la autorización real, incluyendo plan y vencimiento de suscripción,
// la decide el Access Gate dentro de cada caso de uso.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	anyRole := []string{entity.RoleAdmin, entity.RoleTecnico, entity.RoleConsulta}
	writerRoles := []string{entity.RoleAdmin, entity.RoleTecnico}

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Items (protegido)
	items := protected.Group("/inventory/items")
	itemHandler := NewItemHandler(deps.ItemUC)
	movementHandler := NewMovementHandler(deps.MovementUC)
	items.Post("/", RequireRole(writerRoles...), itemHandler.Create)
	items.Get("/", RequireRole(anyRole...), itemHandler.List)
	items.Get("/:id", RequireRole(anyRole...), itemHandler.GetByID)
	items.Put("/:id", RequireRole(writerRoles...), itemHandler.Update)
	items.Post("/:id/archive", RequireRole(writerRoles...), itemHandler.Archive)
	items.Delete("/:id", RequireRole(entity.RoleAdmin), itemHandler.Delete)
	items.Get("/:id/ledger", RequireRole(anyRole...), movementHandler.ItemLedger)

	// Movimientos (protegido)
	movements := protected.Group("/inventory/movements")
	movements.Post("/", RequireRole(writerRoles...), movementHandler.Record)
	movements.Get("/", RequireRole(anyRole...), movementHandler.List)

	// Categorías y unidades (protegido)
	categories := protected.Group("/categories")
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories.Post("/", RequireRole(writerRoles...), categoryHandler.Create)
	categories.Get("/", RequireRole(anyRole...), categoryHandler.List)
	categories.Put("/:id", RequireRole(writerRoles...), categoryHandler.Update)
	categories.Delete("/:id", RequireRole(entity.RoleAdmin), categoryHandler.Delete)

	units := protected.Group("/units")
	unitHandler := NewUnitHandler(deps.UnitUC)
	units.Post("/", RequireRole(writerRoles...), unitHandler.Create)
	units.Get("/", RequireRole(anyRole...), unitHandler.List)
	units.Put("/:id", RequireRole(writerRoles...), unitHandler.Update)
	units.Delete("/:id", RequireRole(entity.RoleAdmin), unitHandler.Delete)

	// Tablero y reportes (protegido)
	reportHandler := NewReportHandler(deps.DashboardUC, deps.ReportsUC)
	protected.Get("/dashboard", RequireRole(anyRole...), reportHandler.Dashboard)
	protected.Get("/reports", RequireRole(anyRole...), reportHandler.Report)
	protected.Get("/reports/export", RequireRole(anyRole...), reportHandler.Export)

	// Equipo actual (protegido, sin permiso de inventario)
	teamHandler := NewTeamHandler(deps.TeamUC)
	protected.Get("/teams/me", teamHandler.Me)
}
