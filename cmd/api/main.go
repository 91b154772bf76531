package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	_ "github.com/jhoicas/stockroom-api/docs"
	appanalytics "github.com/jhoicas/stockroom-api/internal/application/analytics"
	"github.com/jhoicas/stockroom-api/internal/application/auth"
	"github.com/jhoicas/stockroom-api/internal/application/inventory"
	"github.com/jhoicas/stockroom-api/internal/application/reports"
	"github.com/jhoicas/stockroom-api/internal/application/usecase"
	infrapdf "github.com/jhoicas/stockroom-api/internal/infrastructure/pdf"
	"github.com/jhoicas/stockroom-api/internal/infrastructure/postgres"
	"github.com/jhoicas/stockroom-api/internal/infrastructure/ratelimit"
	httpRouter "github.com/jhoicas/stockroom-api/internal/interfaces/http"
	"github.com/jhoicas/stockroom-api/pkg/config"
	"github.com/jhoicas/stockroom-api/pkg/logger"
)

// @title                       Stockroom API
// @version                     1.0
// @description                 Inventario: productos, categorías, ajustes de stock, dashboard y reportes.
// @BasePath                    /
// @securityDefinitions.apikey  Bearer
// @in                          header
// @name                        Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("configuración inválida")
	}
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

	if cfg.DB.AutoMigrate {
		applied, err := postgres.Migrate(ctx, pool)
		if err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
		log.Info().Strs("applied", applied).Msg("migraciones al día")
	}

	timeout := cfg.DB.QueryTimeout
	userRepo := postgres.NewUserRepository(pool, timeout)
	categoryRepo := postgres.NewCategoryRepository(pool, timeout)
	productRepo := postgres.NewProductRepository(pool, timeout)
	inventoryRepo := postgres.NewInventoryRepository(pool, timeout)
	movementRepo := postgres.NewStockMovementRepository(pool, timeout)
	dashboardRepo := postgres.NewDashboardRepository(pool, timeout)
	txRunner := postgres.NewTxRunner(pool, timeout)

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	reportUC := reports.NewReportUseCase(dashboardRepo, movementRepo, infrapdf.NewMarotoReportGenerator(cfg.App.Name))

	// Rate limit de login: Redis si está configurado, si no memoria del proceso.
	var limiterStorage fiber.Storage
	if cfg.Redis.URL != "" {
		rdb, err := ratelimit.NewRedisClient(ctx, cfg.Redis.URL)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer rdb.Close()
		limiterStorage = ratelimit.NewRedisStorage(rdb, "")
		log.Info().Msg("rate limit de login compartido en Redis")
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ErrorHandler: httpRouter.ErrorHandler,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(httpRouter.RequestLogger())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.HTTP.AllowOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(cfg.App.SwaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: cfg.App.SwaggerFile,
			Path:     "docs",
			Title:    "Stockroom API",
		}))
	} else {
		log.Warn().Str("file", cfg.App.SwaggerFile).Msg("swagger deshabilitado: archivo no encontrado")
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:         authUC,
		CategoryUC:     usecase.NewCategoryUseCase(categoryRepo),
		ProductUC:      usecase.NewProductUseCase(productRepo, categoryRepo),
		AdjustUC:       inventory.NewAdjustStockUseCase(txRunner),
		QueryUC:        inventory.NewQueryUseCase(inventoryRepo, movementRepo),
		DashboardUC:    appanalytics.NewDashboardUseCase(dashboardRepo),
		ReportUC:       reportUC,
		JWTSecret:      cfg.JWT.Secret,
		ServiceName:    cfg.App.Name,
		DB:             pool,
		LoginPerMinute: cfg.RateLimit.LoginPerMinute,
		LimiterStorage: limiterStorage,
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
