package sales

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/ventas-api/internal/application/dto"
	"github.com/jhoicas/ventas-api/internal/application/inventory"
	"github.com/jhoicas/ventas-api/internal/application/ports"
	"github.com/jhoicas/ventas-api/internal/domain"
	"github.com/jhoicas/ventas-api/internal/domain/entity"
	"github.com/jhoicas/ventas-api/internal/domain/repository"
	"github.com/jhoicas/ventas-api/pkg/logger"
	"github.com/shopspring/decimal"
)

// CreateSaleUseCase crea la venta (cabecera + detalle) y descuenta el inventario en una sola transacción.
type CreateSaleUseCase struct {
	txRunner  SalesTxRunner
	stock     StockAdjuster
	publisher ports.EventPublisher
	log       *logger.Logger
	now       func() time.Time
}

// NewCreateSaleUseCase construye el caso de uso.
func NewCreateSaleUseCase(
	txRunner SalesTxRunner,
	stock StockAdjuster,
	publisher ports.EventPublisher,
	log *logger.Logger,
) *CreateSaleUseCase {
	if publisher == nil {
		publisher = ports.NoopEventPublisher{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &CreateSaleUseCase{
		txRunner:  txRunner,
		stock:     stock,
		publisher: publisher,
		log:       log.Named("create_sale"),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// CreateSale valida las líneas, bloquea los productos, fija precios, guarda cabecera y detalle
// y descuenta stock por cada línea vía StockGuard. Cualquier error revierte todo.
//
// La validación sigue el orden de las líneas enviadas y se detiene en la primera que falla.
// Un producto repetido en varias líneas se valida contra la suma de sus cantidades.
func (uc *CreateSaleUseCase) CreateSale(ctx context.Context, actor string, in dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	if len(in.Lines) == 0 {
		return nil, domain.ErrEmptySale
	}
	for i, l := range in.Lines {
		if strings.TrimSpace(l.ProductID) == "" {
			return nil, domain.ErrInvalidInput
		}
		if l.Quantity < 1 {
			return nil, &domain.InvalidLineError{Index: i, ProductID: l.ProductID, Quantity: l.Quantity}
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	now := uc.now()
	saleID := uuid.New().String()
	var sale *entity.Sale
	var adjustments []*inventory.AdjustStockResult

	err := uc.txRunner.RunSale(ctx, func(
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
		saleRepo repository.SaleRepository,
	) error {
		// 1) Bloquear productos en orden de ID para que dos ventas con los mismos productos
		//    no se bloqueen mutuamente.
		locked := make(map[string]*entity.Product, len(in.Lines))
		for _, id := range sortedProductIDs(in.Lines) {
			p, err := productRepo.GetForUpdate(ctx, id)
			if err != nil {
				return err
			}
			locked[id] = p
		}

		// 2) Validar en el orden enviado; la primera línea inválida decide el error.
		requested := make(map[string]int, len(locked))
		for _, l := range in.Lines {
			p := locked[l.ProductID]
			if p == nil {
				return &domain.ProductNotFoundError{ProductID: l.ProductID}
			}
			requested[p.ID] += l.Quantity
			if requested[p.ID] > p.Stock {
				return &domain.InsufficientStockError{
					ProductID:   p.ID,
					ProductName: p.Name,
					Requested:   requested[p.ID],
					Available:   p.Stock,
				}
			}
		}

		// 3) Precio capturado al momento de la venta y total
		sale = &entity.Sale{ID: saleID, CreatedAt: now, CreatedBy: actor, Total: decimal.Zero}
		for _, l := range in.Lines {
			p := locked[l.ProductID]
			subtotal := p.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
			summary := p.Summary()
			sale.Lines = append(sale.Lines, &entity.SaleLine{
				ID:        uuid.New().String(),
				SaleID:    saleID,
				ProductID: p.ID,
				Quantity:  l.Quantity,
				UnitPrice: p.Price,
				Subtotal:  subtotal,
				Product:   &summary,
			})
			sale.Total = sale.Total.Add(subtotal)
		}

		// 4) Cabecera
		if err := saleRepo.Create(ctx, sale); err != nil {
			return err
		}

		// 5) Detalle + salida de inventario con referencia a la venta
		adjustments = make([]*inventory.AdjustStockResult, 0, len(sale.Lines))
		for _, line := range sale.Lines {
			if err := saleRepo.CreateLine(ctx, line); err != nil {
				return err
			}
			res, err := uc.stock.AdjustStockInTx(ctx, movRepo, productRepo, inventory.AdjustStockInput{
				ProductID: line.ProductID,
				Delta:     -line.Quantity,
				Cause:     entity.MovementCauseSale,
				Reason:    "venta " + saleID,
				Reference: saleID,
				Actor:     actor,
			}, now)
			if err != nil {
				return err
			}
			line.Product.Stock = res.NewQuantity
			adjustments = append(adjustments, res)
		}

		// Cancelado antes del commit: se descarta todo.
		return ctx.Err()
	})
	if err != nil {
		uc.logRejection(err, saleID, len(in.Lines))
		return nil, err
	}

	uc.log.Info().
		Str("sale_id", sale.ID).
		Str("total", sale.Total.StringFixed(2)).
		Int("lines", len(sale.Lines)).
		Str("actor", actor).
		Msg("venta registrada")

	uc.publish(ctx, sale, adjustments)
	return SaleToResponse(sale), nil
}

func (uc *CreateSaleUseCase) logRejection(err error, saleID string, lines int) {
	var stockErr *domain.InsufficientStockError
	var nfErr *domain.ProductNotFoundError
	switch {
	case errors.As(err, &stockErr):
		uc.log.Warn().
			Str("product_id", stockErr.ProductID).
			Int("requested", stockErr.Requested).
			Int("available", stockErr.Available).
			Int("shortfall", stockErr.Shortfall()).
			Msg("venta rechazada: stock insuficiente")
	case errors.As(err, &nfErr):
		uc.log.Warn().Str("product_id", nfErr.ProductID).Msg("venta rechazada: producto no existe")
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		uc.log.Warn().Err(err).Str("sale_id", saleID).Msg("venta cancelada")
	default:
		uc.log.Error().Err(err).Str("sale_id", saleID).Int("lines", lines).Msg("venta fallida")
	}
}

// publish se ejecuta después del commit; un error solo se registra.
func (uc *CreateSaleUseCase) publish(ctx context.Context, sale *entity.Sale, adjustments []*inventory.AdjustStockResult) {
	event := ports.SaleCreatedEvent{
		SaleID:     sale.ID,
		Total:      sale.Total,
		Actor:      sale.CreatedBy,
		OccurredAt: sale.CreatedAt,
		Lines:      make([]ports.SaleCreatedLine, 0, len(sale.Lines)),
	}
	for _, l := range sale.Lines {
		event.Lines = append(event.Lines, ports.SaleCreatedLine{
			ProductID: l.ProductID,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
		})
	}
	if err := uc.publisher.PublishSaleCreated(ctx, event); err != nil {
		uc.log.Error().Err(err).Str("sale_id", sale.ID).Msg("publicar venta.creada")
	}

	stockEvents := make([]ports.StockAdjustedEvent, 0, len(adjustments))
	for _, a := range adjustments {
		stockEvents = append(stockEvents, a.Event())
	}
	if err := uc.publisher.PublishStockAdjusted(ctx, stockEvents...); err != nil {
		uc.log.Error().Err(err).Str("sale_id", sale.ID).Msg("publicar stock.ajustado")
	}
}

func sortedProductIDs(lines []dto.SaleLineRequest) []string {
	seen := make(map[string]struct{}, len(lines))
	ids := make([]string, 0, len(lines))
	for _, l := range lines {
		if _, ok := seen[l.ProductID]; ok {
			continue
		}
		seen[l.ProductID] = struct{}{}
		ids = append(ids, l.ProductID)
	}
	sort.Strings(ids)
	return ids
}
