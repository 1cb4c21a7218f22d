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

	"github.com/jhoicas/denta-stock-api/internal/application/access"
	"github.com/jhoicas/denta-stock-api/internal/application/auth"
	"github.com/jhoicas/denta-stock-api/internal/application/inventory"
	"github.com/jhoicas/denta-stock-api/internal/application/reports"
	"github.com/jhoicas/denta-stock-api/internal/application/settings"
	infracache "github.com/jhoicas/denta-stock-api/internal/infrastructure/cache"
	infrapdf "github.com/jhoicas/denta-stock-api/internal/infrastructure/pdf"
	"github.com/jhoicas/denta-stock-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/denta-stock-api/internal/interfaces/http"
	"github.com/jhoicas/denta-stock-api/pkg/config"
	"github.com/jhoicas/denta-stock-api/pkg/logger"
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

	if cfg.DB.MigrateOnStart {
		if err := postgres.Migrate(cfg.DB); err != nil {
			log.Fatal().Err(err).Msg("aplicar migraciones")
		}
		log.Info().Msg("migraciones aplicadas")
	}

	itemRepo := postgres.NewItemRepository(pool)
	movementRepo := postgres.NewMovementRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	unitRepo := postgres.NewUnitRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	teamRepo := postgres.NewTeamRepository(pool)
	reportRepo := postgres.NewReportRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	gate := access.NewGate(teamRepo)

	// Caché de vistas derivadas en Redis. Es opcional: si REDIS_ADDR no está
	// configurado (o Redis no responde) viewCache queda nil y los casos de uso
	// recalculan siempre contra PostgreSQL.
	// El guard con if evita el typed-nil al asignar el puntero a la interfaz.
	var viewCache reports.ViewCache
	var invalidator inventory.ViewInvalidator
	var settingsInvalidator settings.ViewInvalidator
	if rc := infracache.NewRedisViewCache(ctx, cfg.Redis, log); rc != nil {
		defer rc.Close()
		viewCache = rc
		invalidator = rc
		settingsInvalidator = rc
	}

	authUC := auth.NewAuthUseCase(userRepo, teamRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	itemUC := inventory.NewItemUseCase(txRunner, itemRepo, categoryRepo, unitRepo, gate, invalidator)
	movementUC := inventory.NewMovementUseCase(txRunner, movementRepo, itemRepo, gate, invalidator)
	categoryUC := settings.NewCategoryUseCase(categoryRepo, itemRepo, gate, settingsInvalidator)
	unitUC := settings.NewUnitUseCase(unitRepo, itemRepo, gate, settingsInvalidator)
	dashboardUC := reports.NewDashboardUseCase(reportRepo, movementRepo, gate, viewCache)
	pdfRenderer := infrapdf.NewMarotoReportRenderer()
	reportsUC := reports.NewReportsUseCase(reportRepo, teamRepo, gate, viewCache, pdfRenderer)
	teamUC := reports.NewTeamUseCase(teamRepo)

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
		Title:    "DentaStock API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		ItemUC:      itemUC,
		MovementUC:  movementUC,
		CategoryUC:  categoryUC,
		UnitUC:      unitUC,
		DashboardUC: dashboardUC,
		ReportsUC:   reportsUC,
		TeamUC:      teamUC,
		JWTSecret:   cfg.JWT.Secret,
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
