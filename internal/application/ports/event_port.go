package ports

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de evento publicados tras confirmar una transacción.
const (
	EventSaleCreated   = "venta.creada"
	EventStockAdjusted = "stock.ajustado"
)

// SaleCreatedEvent venta confirmada.
type SaleCreatedEvent struct {
	SaleID     string            `json:"venta_id"`
	Total      decimal.Decimal   `json:"total"`
	Actor      string            `json:"usuario_id,omitempty"`
	Lines      []SaleCreatedLine `json:"detalles"`
	OccurredAt time.Time         `json:"fecha"`
}

// SaleCreatedLine línea de la venta confirmada.
type SaleCreatedLine struct {
	ProductID string          `json:"producto_id"`
	Quantity  int             `json:"cantidad"`
	UnitPrice decimal.Decimal `json:"precio"`
}

// StockAdjustedEvent cambio de stock confirmado (uno por movimiento del historial).
type StockAdjustedEvent struct {
	MovementID  string    `json:"movimiento_id"`
	ProductID   string    `json:"producto_id"`
	Delta       int       `json:"cambio"`
	NewQuantity int       `json:"stock"`
	Cause       string    `json:"tipo"`
	Reference   string    `json:"referencia,omitempty"`
	Actor       string    `json:"usuario_id,omitempty"`
	OccurredAt  time.Time `json:"fecha"`
}

// EventPublisher publica eventos de dominio. Nunca se invoca con una transacción abierta;
// un fallo de publicación no revierte lo ya confirmado.
type EventPublisher interface {
	PublishSaleCreated(ctx context.Context, event SaleCreatedEvent) error
	PublishStockAdjusted(ctx context.Context, events ...StockAdjustedEvent) error
}

// NoopEventPublisher descarta los eventos (sin brokers configurados).
type NoopEventPublisher struct{}

func (NoopEventPublisher) PublishSaleCreated(context.Context, SaleCreatedEvent) error { return nil }

func (NoopEventPublisher) PublishStockAdjusted(context.Context, ...StockAdjustedEvent) error {
	return nil
}
