package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/ventas-api/internal/application/dto"
	"github.com/jhoicas/ventas-api/internal/application/inventory"
)

// InventoryHandler maneja las peticiones HTTP de stock, historial y movimientos (protegido).
type InventoryHandler struct {
	guard   *inventory.StockGuard
	queries *inventory.QueryUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(guard *inventory.StockGuard, queries *inventory.QueryUseCase) *InventoryHandler {
	return &InventoryHandler{guard: guard, queries: queries}
}

// ListStock godoc
// @Summary      Stock de productos activos
// @Tags         inventario
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.ProductStockResponse
// @Router       /api/inventario [get]
func (h *InventoryHandler) ListStock(c *fiber.Ctx) error {
	list, err := h.queries.ListStock(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

// History godoc
// @Summary      Historial de movimientos
// @Description  Más reciente primero. fecha_fin sin hora incluye el día completo.
// @Tags         inventario
// @Security     Bearer
// @Produce      json
// @Param        producto_id   query  string  false  "Filtrar por producto"
// @Param        fecha_inicio  query  string  false  "YYYY-MM-DD o RFC3339"
// @Param        fecha_fin     query  string  false  "YYYY-MM-DD o RFC3339"
// @Success      200  {array}   dto.MovementResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventario/historial [get]
func (h *InventoryHandler) History(c *fiber.Ctx) error {
	c.Set(fiber.HeaderCacheControl, "no-store")
	from, _, err := queryTime(c, "fecha_inicio")
	if err != nil {
		return respondError(c, err)
	}
	to, dateOnly, err := queryTime(c, "fecha_fin")
	if err != nil {
		return respondError(c, err)
	}
	if to != nil && dateOnly {
		eod := endOfDay(*to)
		to = &eod
	}
	list, err := h.queries.ListMovements(c.UserContext(), c.Query("producto_id"), from, to)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

// LowStock godoc
// @Summary      Productos con stock bajo
// @Description  Activos con stock menor o igual al umbral, de menor a mayor stock.
// @Tags         inventario
// @Security     Bearer
// @Produce      json
// @Param        umbral  query  int  false  "Umbral (default configurado)"
// @Success      200  {array}   dto.ProductStockResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventario/stock-bajo [get]
func (h *InventoryHandler) LowStock(c *fiber.Ctx) error {
	threshold, err := queryInt(c, "umbral")
	if err != nil {
		return respondError(c, err)
	}
	list, err := h.queries.ListLowStock(c.UserContext(), threshold)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

// Statistics godoc
// @Summary      Estadísticas de inventario
// @Tags         inventario
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.InventoryStatsResponse
// @Router       /api/inventario/estadisticas [get]
func (h *InventoryHandler) Statistics(c *fiber.Ctx) error {
	stats, err := h.queries.GetStatistics(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(stats)
}

// Reconcile godoc
// @Summary      Conciliación stock vs historial
// @Tags         inventario
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.LedgerReportResponse
// @Router       /api/inventario/conciliacion [get]
func (h *InventoryHandler) Reconcile(c *fiber.Ctx) error {
	report, err := h.queries.VerifyLedger(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(report)
}

// RegisterMovement godoc
// @Summary      Registrar movimiento de inventario
// @Description  Ajuste manual o corrección. Las salidas por venta solo se registran al vender.
// @Tags         inventario
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      dto.RegisterMovementRequest  true  "producto_id, cambio (con signo), tipo, motivo"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inventario/movimiento [post]
func (h *InventoryHandler) RegisterMovement(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.RegisterMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.guard.RegisterMovementFromRequest(c.UserContext(), userID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdateProductStock godoc
// @Summary      Ajustar stock de un producto
// @Description  cantidad es un cambio con signo; queda en el historial como ajuste manual.
// @Tags         productos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path      string                  true  "ID del producto"
// @Param        body  body      dto.UpdateStockRequest  true  "cantidad, motivo"
// @Success      200   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/productos/{id}/stock [patch]
func (h *InventoryHandler) UpdateProductStock(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.UpdateStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.guard.RestockFromRequest(c.UserContext(), userID, c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
