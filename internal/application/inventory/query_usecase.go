package inventory

import (
	"context"
	"time"

	"github.com/jhoicas/ventas-api/internal/application/dto"
	"github.com/jhoicas/ventas-api/internal/domain"
	"github.com/jhoicas/ventas-api/internal/domain/entity"
	"github.com/jhoicas/ventas-api/internal/domain/repository"
)

// QueryUseCase lecturas de inventario sobre estado confirmado; no toma bloqueos.
type QueryUseCase struct {
	productRepo      repository.ProductRepository
	movRepo          repository.StockMovementRepository
	queryRepo        repository.InventoryQueryRepository
	defaultThreshold int
}

// NewQueryUseCase construye el caso de uso. defaultThreshold aplica a ListLowStock sin umbral
// y es el umbral fijo de GetStatistics.
func NewQueryUseCase(
	productRepo repository.ProductRepository,
	movRepo repository.StockMovementRepository,
	queryRepo repository.InventoryQueryRepository,
	defaultThreshold int,
) *QueryUseCase {
	return &QueryUseCase{
		productRepo:      productRepo,
		movRepo:          movRepo,
		queryRepo:        queryRepo,
		defaultThreshold: defaultThreshold,
	}
}

// DefaultThreshold umbral de stock bajo configurado.
func (uc *QueryUseCase) DefaultThreshold() int { return uc.defaultThreshold }

// ListLowStock productos activos con stock <= umbral, de menor a mayor stock.
// threshold nil usa el umbral por defecto.
func (uc *QueryUseCase) ListLowStock(ctx context.Context, threshold *int) ([]dto.ProductStockResponse, error) {
	t := uc.defaultThreshold
	if threshold != nil {
		t = *threshold
	}
	if t < 0 {
		return nil, domain.ErrInvalidInput
	}
	products, err := uc.queryRepo.ListLowStock(ctx, t)
	if err != nil {
		return nil, err
	}
	return toProductStockList(products), nil
}

// ListStock productos activos con su stock, ordenados por nombre.
func (uc *QueryUseCase) ListStock(ctx context.Context) ([]dto.ProductStockResponse, error) {
	products, err := uc.productRepo.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	return toProductStockList(products), nil
}

// GetStatistics totales de inventario. El valor total es la suma de precios de los productos activos.
func (uc *QueryUseCase) GetStatistics(ctx context.Context) (*dto.InventoryStatsResponse, error) {
	stats, err := uc.queryRepo.GetStats(ctx, uc.defaultThreshold)
	if err != nil {
		return nil, err
	}
	return &dto.InventoryStatsResponse{
		TotalActiveProducts: stats.TotalActiveProducts,
		LowStockCount:       stats.LowStockCount,
		OutOfStockCount:     stats.OutOfStockCount,
		TotalInventoryValue: stats.TotalInventoryValue,
		LowStockThreshold:   uc.defaultThreshold,
	}, nil
}

// ListMovements historial (más reciente primero). Filtros vacíos devuelven todo el historial.
func (uc *QueryUseCase) ListMovements(ctx context.Context, productID string, from, to *time.Time) ([]dto.MovementResponse, error) {
	if from != nil && to != nil && to.Before(*from) {
		return nil, domain.ErrInvalidInput
	}
	movs, err := uc.movRepo.List(ctx, repository.MovementFilter{ProductID: productID, From: from, To: to})
	if err != nil {
		return nil, err
	}
	out := make([]dto.MovementResponse, 0, len(movs))
	for _, m := range movs {
		out = append(out, movementToResponse(m))
	}
	return out, nil
}

// VerifyLedger compara stock contra la suma del historial por producto.
func (uc *QueryUseCase) VerifyLedger(ctx context.Context) (*dto.LedgerReportResponse, error) {
	mismatches, err := uc.queryRepo.LedgerMismatches(ctx)
	if err != nil {
		return nil, err
	}
	out := &dto.LedgerReportResponse{
		Consistent: len(mismatches) == 0,
		Mismatches: make([]dto.LedgerMismatchResponse, 0, len(mismatches)),
	}
	for _, m := range mismatches {
		out.Mismatches = append(out.Mismatches, dto.LedgerMismatchResponse{
			ProductID:   m.ProductID,
			ProductName: m.ProductName,
			Stock:       m.Stock,
			LedgerSum:   m.LedgerSum,
		})
	}
	return out, nil
}

func toProductStockList(products []*entity.Product) []dto.ProductStockResponse {
	out := make([]dto.ProductStockResponse, 0, len(products))
	for _, p := range products {
		out = append(out, dto.ProductStockResponse{
			ID:         p.ID,
			Name:       p.Name,
			Price:      p.Price,
			Stock:      p.Stock,
			CategoryID: p.CategoryID,
		})
	}
	return out
}

func movementToResponse(m *entity.StockMovement) dto.MovementResponse {
	r := dto.MovementResponse{
		ID:        m.ID,
		ProductID: m.ProductID,
		Delta:     m.Delta,
		Cause:     m.Cause,
		Reason:    m.Reason,
		Reference: m.Reference,
		CreatedBy: m.CreatedBy,
		Date:      m.CreatedAt,
	}
	if m.Product != nil {
		price, stock := m.Product.Price, m.Product.Stock
		r.Product = &dto.ProductSummaryResponse{ID: m.Product.ID, Name: m.Product.Name, Price: &price, Stock: &stock}
	}
	return r
}
