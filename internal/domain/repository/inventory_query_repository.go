package repository

import (
	"context"

	"github.com/jhoicas/ventas-api/internal/domain/entity"
)

// InventoryQueryRepository consultas agregadas de solo lectura sobre el inventario.
type InventoryQueryRepository interface {
	// ListLowStock productos activos con stock <= threshold, stock ascendente.
	ListLowStock(ctx context.Context, threshold int) ([]*entity.Product, error)
	GetStats(ctx context.Context, lowStockThreshold int) (*entity.InventoryStats, error)
	// LedgerMismatches productos cuyo stock difiere de la suma de su historial.
	LedgerMismatches(ctx context.Context) ([]entity.LedgerMismatch, error)
}
