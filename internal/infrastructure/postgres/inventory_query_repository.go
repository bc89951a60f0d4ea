package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/ventas-api/internal/domain/entity"
	"github.com/jhoicas/ventas-api/internal/domain/repository"
)

var _ repository.InventoryQueryRepository = (*InventoryQueryRepo)(nil)

// InventoryQueryRepo agregados de inventario; lecturas sin bloqueo.
type InventoryQueryRepo struct {
	q Querier
}

// NewInventoryQueryRepository construye el repositorio.
func NewInventoryQueryRepository(q Querier) *InventoryQueryRepo {
	return &InventoryQueryRepo{q: q}
}

// ListLowStock productos activos con stock <= threshold, stock ascendente.
func (r *InventoryQueryRepo) ListLowStock(ctx context.Context, threshold int) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + `
		FROM productos
		WHERE activo = TRUE AND stock <= $1
		ORDER BY stock ASC, nombre ASC`
	return queryProducts(ctx, r.q, query, threshold)
}

// GetStats totales sobre productos activos. El valor es SUM(precio), no precio × stock.
func (r *InventoryQueryRepo) GetStats(ctx context.Context, lowStockThreshold int) (*entity.InventoryStats, error) {
	query := `
		SELECT
			COUNT(*)                                  AS total,
			COUNT(*) FILTER (WHERE stock <= $1)       AS stock_bajo,
			COUNT(*) FILTER (WHERE stock = 0)         AS sin_stock,
			COALESCE(SUM(precio), 0)                  AS valor
		FROM productos
		WHERE activo = TRUE`
	var s entity.InventoryStats
	if err := r.q.QueryRow(ctx, query, lowStockThreshold).Scan(
		&s.TotalActiveProducts, &s.LowStockCount, &s.OutOfStockCount, &s.TotalInventoryValue,
	); err != nil {
		return nil, fmt.Errorf("estadisticas inventario: %w", err)
	}
	return &s, nil
}

// LedgerMismatches productos cuyo stock no coincide con SUM(cambio) del historial.
func (r *InventoryQueryRepo) LedgerMismatches(ctx context.Context) ([]entity.LedgerMismatch, error) {
	query := `
		SELECT p.id, p.nombre, p.stock, COALESCE(SUM(h.cambio), 0)::int AS suma
		FROM productos p
		LEFT JOIN inventario_historial h ON h.producto_id = p.id
		GROUP BY p.id, p.nombre, p.stock
		HAVING p.stock <> COALESCE(SUM(h.cambio), 0)
		ORDER BY p.id`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("conciliacion historial: %w", err)
	}
	defer rows.Close()
	out := make([]entity.LedgerMismatch, 0)
	for rows.Next() {
		var m entity.LedgerMismatch
		if err := rows.Scan(&m.ProductID, &m.ProductName, &m.Stock, &m.LedgerSum); err != nil {
			return nil, fmt.Errorf("scan conciliacion: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
