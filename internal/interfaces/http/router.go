package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/ventas-api/internal/application/inventory"
	"github.com/jhoicas/ventas-api/internal/application/sales"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CreateSale     *sales.CreateSaleUseCase
	Reports        *sales.ReportUseCase
	StockGuard     *inventory.StockGuard
	InventoryQuery *inventory.QueryUseCase
	JWTSecret      string
	JWTIssuer      string
}

// Router registra las rutas de la API. Todas requieren Bearer Token.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret, deps.JWTIssuer))

	cashiers := RequireRole(RoleAdmin, RoleSupervisor, RoleCajero)
	supervisors := RequireRole(RoleAdmin, RoleSupervisor)
	admins := RequireRole(RoleAdmin)

	// Ventas
	saleHandler := NewSaleHandler(deps.CreateSale, deps.Reports)
	ventas := protected.Group("/ventas", cashiers)
	ventas.Post("/", saleHandler.Create)
	ventas.Get("/", saleHandler.List)
	ventas.Get("/reporte", saleHandler.Report)
	ventas.Get("/:id", saleHandler.GetByID)
	ventas.Get("/:id/pdf", saleHandler.ReceiptPDF)

	// Inventario
	inventoryHandler := NewInventoryHandler(deps.StockGuard, deps.InventoryQuery)
	inv := protected.Group("/inventario")
	inv.Get("/", supervisors, inventoryHandler.ListStock)
	inv.Get("/historial", supervisors, inventoryHandler.History)
	inv.Get("/stock-bajo", supervisors, inventoryHandler.LowStock)
	inv.Get("/estadisticas", supervisors, inventoryHandler.Statistics)
	inv.Get("/conciliacion", admins, inventoryHandler.Reconcile)
	inv.Post("/movimiento", cashiers, inventoryHandler.RegisterMovement)

	// Productos: solo el ajuste de stock pasa por este servicio
	productos := protected.Group("/productos", supervisors)
	productos.Patch("/:id/stock", inventoryHandler.UpdateProductStock)
}
