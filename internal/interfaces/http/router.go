package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/pos-api/internal/application/analytics"
	"github.com/jhoicas/pos-api/internal/application/catalog"
	"github.com/jhoicas/pos-api/internal/application/inventory"
	"github.com/jhoicas/pos-api/internal/application/sales"
	"github.com/jhoicas/pos-api/internal/application/shift"
	"github.com/jhoicas/pos-api/pkg/jwt"
	"github.com/rs/zerolog"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Sales     *sales.Service
	Shifts    *shift.Service
	Inventory *inventory.UseCase
	Analytics *analytics.DailySummaryUseCase
	Catalog   *catalog.UseCase
	JWTSecret string
	Log       zerolog.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	anyRole := RequireRole(jwt.RoleAdmin, jwt.RoleSupervisor, jwt.RoleCashier)
	managers := RequireRole(jwt.RoleAdmin, jwt.RoleSupervisor)

	// Ventas
	salesGroup := protected.Group("/sales")
	saleHandler := NewSaleHandler(deps.Sales, deps.Log)
	salesGroup.Post("/", anyRole, saleHandler.Create)
	salesGroup.Post("/guest", anyRole, saleHandler.GuestCheckout)
	salesGroup.Get("/:id", anyRole, saleHandler.GetByID)
	salesGroup.Patch("/:id/status", anyRole, saleHandler.UpdateStatus)
	salesGroup.Post("/:id/refund", managers, saleHandler.Refund)

	// Turnos de caja
	shifts := protected.Group("/shifts")
	shiftHandler := NewShiftHandler(deps.Shifts, deps.Log)
	shifts.Post("/", anyRole, shiftHandler.Start)
	shifts.Get("/:id", anyRole, shiftHandler.GetByID)
	shifts.Post("/:id/end", anyRole, shiftHandler.End)
	shifts.Post("/:id/auto-end", managers, shiftHandler.AutoEnd)

	// Inventario
	inv := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.Inventory, deps.Log)
	inv.Post("/adjustments", managers, inventoryHandler.Adjust)
	inv.Post("/product-adjustments", managers, inventoryHandler.AdjustProduct)
	inv.Post("/allocations", managers, inventoryHandler.Allocate)
	inv.Get("/materials/:id", anyRole, inventoryHandler.MaterialStock)
	inv.Get("/products/:id", anyRole, inventoryHandler.ProductStock)

	// Catálogo
	cat := protected.Group("/catalog")
	catalogHandler := NewCatalogHandler(deps.Catalog, deps.Log)
	cat.Post("/products", managers, catalogHandler.CreateProduct)
	cat.Get("/products/:id", anyRole, catalogHandler.GetProduct)
	cat.Post("/materials", managers, catalogHandler.CreateMaterial)

	// Analítica
	an := protected.Group("/analytics")
	analyticsHandler := NewAnalyticsHandler(deps.Analytics, deps.Log)
	an.Get("/daily", managers, analyticsHandler.GetDailySummary)
}
