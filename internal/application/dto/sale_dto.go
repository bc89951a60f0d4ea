package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateSaleRequest body para POST /api/ventas.
type CreateSaleRequest struct {
	Lines []SaleLineRequest `json:"detalles"`
}

// SaleLineRequest línea solicitada (producto y cantidad); el precio lo fija el catálogo.
type SaleLineRequest struct {
	ProductID string `json:"producto_id"`
	Quantity  int    `json:"cantidad"`
}

// SaleResponse venta con detalle.
type SaleResponse struct {
	ID        string             `json:"id"`
	Total     decimal.Decimal    `json:"total"`
	Date      time.Time          `json:"fecha"`
	CreatedBy string             `json:"usuario_id,omitempty"`
	Lines     []SaleLineResponse `json:"detalles"`
}

// SaleLineResponse línea de venta con el precio capturado al vender.
type SaleLineResponse struct {
	ID        string                  `json:"id"`
	ProductID string                  `json:"producto_id"`
	Quantity  int                     `json:"cantidad"`
	UnitPrice decimal.Decimal         `json:"precio"`
	Subtotal  decimal.Decimal         `json:"subtotal"`
	Product   *ProductSummaryResponse `json:"producto,omitempty"`
}

// PeriodReportResponse reporte de ventas por periodo.
type PeriodReportResponse struct {
	From       time.Time         `json:"fecha_inicio"`
	To         time.Time         `json:"fecha_fin"`
	Sales      []SaleResponse    `json:"ventas"`
	Statistics PeriodReportStats `json:"estadisticas"`
}

// PeriodReportStats agregados del periodo. AverageSaleValue se redondea a 2 decimales.
type PeriodReportStats struct {
	TotalSalesCount  int             `json:"totalVentas"`
	TotalRevenue     decimal.Decimal `json:"totalIngresos"`
	AverageSaleValue decimal.Decimal `json:"promedioVenta"`
}
