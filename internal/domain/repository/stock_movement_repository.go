package repository

import (
	"context"
	"time"

	"github.com/jhoicas/ventas-api/internal/domain/entity"
)

// MovementFilter filtros opcionales del historial; los campos nil no filtran.
type MovementFilter struct {
	ProductID string
	From      *time.Time
	To        *time.Time
}

// StockMovementRepository puerto del historial de inventario (solo inserción y lectura).
type StockMovementRepository interface {
	Create(ctx context.Context, movement *entity.StockMovement) error
	// List devuelve los movimientos más recientes primero, con el resumen del producto.
	List(ctx context.Context, filter MovementFilter) ([]*entity.StockMovement, error)
}
