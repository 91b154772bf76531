package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/stockroom-api/internal/application/analytics"
	"github.com/jhoicas/stockroom-api/internal/application/auth"
	"github.com/jhoicas/stockroom-api/internal/application/inventory"
	"github.com/jhoicas/stockroom-api/internal/application/reports"
	"github.com/jhoicas/stockroom-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	CategoryUC  *usecase.CategoryUseCase
	ProductUC   *usecase.ProductUseCase
	AdjustUC    *inventory.AdjustStockUseCase
	QueryUC     *inventory.QueryUseCase
	DashboardUC *appanalytics.DashboardUseCase
	ReportUC    *reports.ReportUseCase
	JWTSecret   string

	ServiceName    string
	DB             Pinger        // nil: /health no consulta la base
	LoginPerMinute int           // intentos de login por IP y minuto
	LimiterStorage fiber.Storage // nil: contadores en memoria
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", Health(deps.ServiceName, deps.DB))

	api := app.Group("/api")
	protected := AuthMiddleware(deps.JWTSecret)

	// Auth: login público con rate limit; /me protegido
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup := api.Group("/auth")
	authGroup.Post("/login", LoginLimiter(deps.LoginPerMinute, deps.LimiterStorage), authHandler.Login)
	authGroup.Get("/me", protected, authHandler.Me)

	categories := api.Group("/categories", protected)
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories.Get("/", categoryHandler.List)
	categories.Post("/", categoryHandler.Create)
	categories.Get("/:id", categoryHandler.Get)
	categories.Put("/:id", categoryHandler.Update)
	categories.Delete("/:id", categoryHandler.Delete)

	products := api.Group("/products", protected)
	productHandler := NewProductHandler(deps.ProductUC)
	products.Get("/", productHandler.List)
	products.Post("/", productHandler.Create)
	products.Get("/:id", productHandler.Get)
	products.Put("/:id", productHandler.Update)

	inventoryHandler := NewInventoryHandler(deps.AdjustUC, deps.QueryUC)
	invGroup := api.Group("/inventory", protected)
	invGroup.Get("/", inventoryHandler.List)
	invGroup.Post("/", inventoryHandler.Adjust)
	invGroup.Post("/update", inventoryHandler.Adjust)

	api.Get("/stock-movements", protected, inventoryHandler.ListMovements)

	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	api.Get("/dashboard", protected, dashboardHandler.GetSummary)

	reportHandler := NewReportHandler(deps.ReportUC)
	api.Get("/reports/inventory", protected, reportHandler.InventoryPDF)
}
