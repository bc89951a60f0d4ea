package repository

import (
	"context"
	"time"

	"github.com/jhoicas/ventas-api/internal/domain/entity"
)

// SaleFilter filtros opcionales del listado de ventas.
type SaleFilter struct {
	From      *time.Time
	To        *time.Time // exclusivo
	CreatedBy string
	Ascending bool
}

// SaleRepository puerto de persistencia de ventas (cabecera + detalle). No hay Update ni Delete.
type SaleRepository interface {
	Create(ctx context.Context, sale *entity.Sale) error
	CreateLine(ctx context.Context, line *entity.SaleLine) error
	// GetByID devuelve (nil, nil) si la venta no existe. Incluye líneas con resumen de producto.
	GetByID(ctx context.Context, id string) (*entity.Sale, error)
	// List devuelve ventas con sus líneas, ordenadas por fecha según filter.Ascending.
	List(ctx context.Context, filter SaleFilter) ([]*entity.Sale, error)
}
