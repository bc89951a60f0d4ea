package inventory

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/ventas-api/internal/application/ports"
	"github.com/jhoicas/ventas-api/internal/domain"
	"github.com/jhoicas/ventas-api/internal/domain/entity"
	"github.com/jhoicas/ventas-api/internal/domain/repository"
	"github.com/jhoicas/ventas-api/pkg/logger"
)

// AdjustStockInput cambio de stock solicitado.
type AdjustStockInput struct {
	ProductID string
	Delta     int    // positivo entrada, negativo salida; nunca cero
	Cause     string // entity.MovementCause*
	Reason    string
	Reference string // correlación (ID de venta)
	Actor     string
}

// AdjustStockResult resultado de un ajuste confirmado (o pendiente de commit si fue en tx del caller).
type AdjustStockResult struct {
	MovementID       string
	ProductID        string
	ProductName      string
	Delta            int
	PreviousQuantity int
	NewQuantity      int
	Cause            string
	Reference        string
	Actor            string
	CreatedAt        time.Time
}

// StockGuard es el único punto por el que cambia el stock de un producto.
// Cada ajuste bloquea la fila del producto (SELECT FOR UPDATE), valida contra el stock bloqueado,
// actualiza la cantidad y agrega una fila al historial, todo en la misma transacción.
type StockGuard struct {
	txRunner  TxRunner
	publisher ports.EventPublisher
	log       *logger.Logger
	now       func() time.Time
}

// NewStockGuard construye el guardián de stock.
func NewStockGuard(txRunner TxRunner, publisher ports.EventPublisher, log *logger.Logger) *StockGuard {
	if publisher == nil {
		publisher = ports.NoopEventPublisher{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &StockGuard{
		txRunner:  txRunner,
		publisher: publisher,
		log:       log.Named("stock_guard"),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// AdjustStock abre su propia transacción para un único ajuste (reposición manual o corrección).
func (g *StockGuard) AdjustStock(ctx context.Context, in AdjustStockInput) (*AdjustStockResult, error) {
	if err := validateAdjustment(in); err != nil {
		return nil, err
	}
	now := g.now()
	var res *AdjustStockResult
	err := g.txRunner.Run(ctx, func(
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
	) error {
		var err error
		res, err = g.AdjustStockInTx(ctx, movRepo, productRepo, in, now)
		return err
	})
	if err != nil {
		g.log.Warn().Err(err).
			Str("product_id", in.ProductID).
			Int("delta", in.Delta).
			Str("cause", in.Cause).
			Msg("ajuste de stock rechazado")
		return nil, err
	}

	g.log.Info().
		Str("movement_id", res.MovementID).
		Str("product_id", res.ProductID).
		Int("delta", res.Delta).
		Int("stock", res.NewQuantity).
		Str("cause", res.Cause).
		Msg("stock ajustado")

	if err := g.publisher.PublishStockAdjusted(ctx, res.Event()); err != nil {
		g.log.Error().Err(err).Str("movement_id", res.MovementID).Msg("publicar stock.ajustado")
	}
	return res, nil
}

// AdjustStockInTx aplica el ajuste con los repositorios del caller (misma transacción).
// Si retorna error el caller debe hacer rollback; nada queda escrito a medias.
func (g *StockGuard) AdjustStockInTx(
	ctx context.Context,
	movRepo repository.StockMovementRepository,
	productRepo repository.ProductRepository,
	in AdjustStockInput,
	now time.Time,
) (*AdjustStockResult, error) {
	if err := validateAdjustment(in); err != nil {
		return nil, err
	}
	product, err := productRepo.GetForUpdate(ctx, in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, &domain.ProductNotFoundError{ProductID: in.ProductID}
	}
	if in.Delta < 0 && product.Stock+in.Delta < 0 {
		return nil, &domain.InsufficientStockError{
			ProductID:   product.ID,
			ProductName: product.Name,
			Requested:   -in.Delta,
			Available:   product.Stock,
		}
	}

	newQty := product.Stock + in.Delta
	if err := productRepo.UpdateStock(ctx, product.ID, newQty); err != nil {
		return nil, err
	}
	mov := &entity.StockMovement{
		ID:        uuid.New().String(),
		ProductID: product.ID,
		Delta:     in.Delta,
		Cause:     in.Cause,
		Reason:    strings.TrimSpace(in.Reason),
		Reference: in.Reference,
		CreatedBy: in.Actor,
		CreatedAt: now,
	}
	if err := movRepo.Create(ctx, mov); err != nil {
		return nil, err
	}

	return &AdjustStockResult{
		MovementID:       mov.ID,
		ProductID:        product.ID,
		ProductName:      product.Name,
		Delta:            in.Delta,
		PreviousQuantity: product.Stock,
		NewQuantity:      newQty,
		Cause:            in.Cause,
		Reference:        in.Reference,
		Actor:            in.Actor,
		CreatedAt:        now,
	}, nil
}

// Event convierte el resultado en el evento publicado tras el commit.
func (r *AdjustStockResult) Event() ports.StockAdjustedEvent {
	return ports.StockAdjustedEvent{
		MovementID:  r.MovementID,
		ProductID:   r.ProductID,
		Delta:       r.Delta,
		NewQuantity: r.NewQuantity,
		Cause:       r.Cause,
		Reference:   r.Reference,
		Actor:       r.Actor,
		OccurredAt:  r.CreatedAt,
	}
}

func validateAdjustment(in AdjustStockInput) error {
	if strings.TrimSpace(in.ProductID) == "" {
		return domain.ErrInvalidInput
	}
	if in.Delta == 0 {
		return domain.ErrInvalidQuantity
	}
	if !entity.IsValidMovementCause(in.Cause) {
		return domain.ErrInvalidInput
	}
	return nil
}
