package inventory

import (
	"context"
	"strings"

	"github.com/jhoicas/ventas-api/internal/application/dto"
	"github.com/jhoicas/ventas-api/internal/domain"
	"github.com/jhoicas/ventas-api/internal/domain/entity"
)

// RegisterMovementFromRequest adapta el request HTTP de POST /api/inventario/movimiento al StockGuard.
// Sin tipo se asume ajuste manual; "sale" queda reservado al coordinador de ventas.
func (g *StockGuard) RegisterMovementFromRequest(ctx context.Context, actor string, in dto.RegisterMovementRequest) (*dto.MovementResponse, error) {
	cause := strings.TrimSpace(in.Cause)
	if cause == "" {
		cause = entity.MovementCauseManualAdjustment
	}
	if cause == entity.MovementCauseSale {
		return nil, domain.ErrInvalidInput
	}
	res, err := g.AdjustStock(ctx, AdjustStockInput{
		ProductID: in.ProductID,
		Delta:     in.Delta,
		Cause:     cause,
		Reason:    in.Reason,
		Actor:     actor,
	})
	if err != nil {
		return nil, err
	}
	return toMovementResponse(res, in.Reason), nil
}

// RestockFromRequest reposición manual desde PATCH /api/productos/:id/stock (cantidad = cambio con signo).
func (g *StockGuard) RestockFromRequest(ctx context.Context, actor, productID string, in dto.UpdateStockRequest) (*dto.MovementResponse, error) {
	res, err := g.AdjustStock(ctx, AdjustStockInput{
		ProductID: productID,
		Delta:     in.Quantity,
		Cause:     entity.MovementCauseManualAdjustment,
		Reason:    in.Reason,
		Actor:     actor,
	})
	if err != nil {
		return nil, err
	}
	return toMovementResponse(res, in.Reason), nil
}

func toMovementResponse(res *AdjustStockResult, reason string) *dto.MovementResponse {
	newQty := res.NewQuantity
	return &dto.MovementResponse{
		ID:          res.MovementID,
		ProductID:   res.ProductID,
		Delta:       res.Delta,
		Cause:       res.Cause,
		Reason:      strings.TrimSpace(reason),
		Reference:   res.Reference,
		CreatedBy:   res.Actor,
		Date:        res.CreatedAt,
		NewQuantity: &newQty,
		Product: &dto.ProductSummaryResponse{
			ID:    res.ProductID,
			Name:  res.ProductName,
			Stock: &newQty,
		},
	}
}
