package sales

import (
	"context"
	"time"

	"github.com/jhoicas/ventas-api/internal/application/dto"
	"github.com/jhoicas/ventas-api/internal/application/inventory"
	"github.com/jhoicas/ventas-api/internal/domain/entity"
	"github.com/jhoicas/ventas-api/internal/domain/repository"
)

// SalesTxRunner ejecuta una función dentro de una transacción que incluye repos de inventario y ventas.
type SalesTxRunner interface {
	RunSale(ctx context.Context, fn func(
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
		saleRepo repository.SaleRepository,
	) error) error
}

// StockAdjuster descuenta stock usando los repositorios del caller (misma transacción).
// Si retorna error (ej: InsufficientStockError), el caller debe hacer rollback.
type StockAdjuster interface {
	AdjustStockInTx(
		ctx context.Context,
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
		in inventory.AdjustStockInput,
		now time.Time,
	) (*inventory.AdjustStockResult, error)
}

// SaleReceiptGenerator genera el comprobante PDF de una venta confirmada.
type SaleReceiptGenerator interface {
	GenerateSaleReceipt(ctx context.Context, sale *entity.Sale) ([]byte, error)
}

// PeriodReportExporter serializa el reporte de periodo. etag identifica el contenido canónico:
// mismo reporte, mismo etag.
type PeriodReportExporter interface {
	ExportPeriodReport(ctx context.Context, report *dto.PeriodReportResponse) (body []byte, etag string, err error)
}
