package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RegisterMovementRequest body para POST /api/inventario/movimiento.
type RegisterMovementRequest struct {
	ProductID string `json:"producto_id"`
	Delta     int    `json:"cambio"`
	Cause     string `json:"tipo,omitempty"` // manual-adjustment (default) | correction
	Reason    string `json:"motivo,omitempty"`
}

// UpdateStockRequest body para PATCH /api/productos/:id/stock.
type UpdateStockRequest struct {
	Quantity int    `json:"cantidad"`
	Reason   string `json:"motivo,omitempty"`
}

// MovementResponse movimiento registrado o listado en el historial.
type MovementResponse struct {
	ID          string                  `json:"id"`
	ProductID   string                  `json:"producto_id"`
	Delta       int                     `json:"cambio"`
	Cause       string                  `json:"tipo"`
	Reason      string                  `json:"motivo,omitempty"`
	Reference   string                  `json:"referencia,omitempty"`
	CreatedBy   string                  `json:"usuario_id,omitempty"`
	Date        time.Time               `json:"fecha"`
	NewQuantity *int                    `json:"stock_resultante,omitempty"` // solo al registrar
	Product     *ProductSummaryResponse `json:"producto,omitempty"`
}

// ProductSummaryResponse resumen de producto embebido en ventas y movimientos.
type ProductSummaryResponse struct {
	ID    string           `json:"id"`
	Name  string           `json:"nombre"`
	Price *decimal.Decimal `json:"precio,omitempty"`
	Stock *int             `json:"stock,omitempty"`
}

// ProductStockResponse producto con su stock (listado de inventario y stock bajo).
type ProductStockResponse struct {
	ID         string          `json:"id"`
	Name       string          `json:"nombre"`
	Price      decimal.Decimal `json:"precio"`
	Stock      int             `json:"stock"`
	CategoryID *string         `json:"categoria_id,omitempty"`
}

// InventoryStatsResponse estadísticas de inventario.
// TotalInventoryValue es la suma de precios de productos activos (no precio × stock).
type InventoryStatsResponse struct {
	TotalActiveProducts int             `json:"totalProductos"`
	LowStockCount       int             `json:"productosStockBajo"`
	OutOfStockCount     int             `json:"productosSinStock"`
	TotalInventoryValue decimal.Decimal `json:"valorTotalInventario"`
	LowStockThreshold   int             `json:"umbralStockBajo"`
}

// LedgerMismatchResponse producto con stock distinto a la suma de su historial.
type LedgerMismatchResponse struct {
	ProductID   string `json:"producto_id"`
	ProductName string `json:"nombre"`
	Stock       int    `json:"stock"`
	LedgerSum   int    `json:"suma_historial"`
}

// LedgerReportResponse resultado de la conciliación stock vs historial.
type LedgerReportResponse struct {
	Consistent bool                     `json:"consistente"`
	Mismatches []LedgerMismatchResponse `json:"diferencias"`
}
