package inventory_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ventas-api/internal/application/dto"
	"github.com/jhoicas/ventas-api/internal/application/inventory"
	"github.com/jhoicas/ventas-api/internal/application/ports"
	"github.com/jhoicas/ventas-api/internal/domain"
	"github.com/jhoicas/ventas-api/internal/domain/entity"
	"github.com/jhoicas/ventas-api/internal/domain/repository"
	"github.com/jhoicas/ventas-api/internal/infrastructure/memory"
	"github.com/jhoicas/ventas-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

type fixture struct {
	store *memory.Store
	guard *inventory.StockGuard
	query *inventory.QueryUseCase
}

func newFixture(t *testing.T, publisher ports.EventPublisher) *fixture {
	t.Helper()
	store := memory.NewStore()
	guard := inventory.NewStockGuard(memory.NewTxRunner(store), publisher, logger.Nop())
	query := inventory.NewQueryUseCase(store.Products(), store.Movements(), store.InventoryQueries(), 10)
	return &fixture{store: store, guard: guard, query: query}
}

// seed crea el producto con stock 0 y carga el stock inicial por el guardián,
// para que el historial cuadre desde el primer movimiento.
func (f *fixture) seed(t *testing.T, id, name, price string, stock int) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, f.store.Products().Create(ctx, &entity.Product{
		ID: id, Name: name, Price: decimal.RequireFromString(price), Active: true,
	}))
	if stock > 0 {
		_, err := f.guard.AdjustStock(ctx, inventory.AdjustStockInput{
			ProductID: id, Delta: stock, Cause: entity.MovementCauseManualAdjustment, Reason: "stock inicial",
		})
		require.NoError(t, err)
	}
}

func (f *fixture) stock(t *testing.T, id string) int {
	t.Helper()
	p, err := f.store.Products().GetByID(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, p)
	return p.Stock
}

func (f *fixture) assertLedgerConsistent(t *testing.T) {
	t.Helper()
	report, err := f.query.VerifyLedger(context.Background())
	require.NoError(t, err)
	assert.True(t, report.Consistent, "stock debe ser igual a la suma del historial: %+v", report.Mismatches)
}

type publisherMock struct {
	mock.Mock
}

func (m *publisherMock) PublishSaleCreated(ctx context.Context, event ports.SaleCreatedEvent) error {
	return m.Called(ctx, event).Error(0)
}

func (m *publisherMock) PublishStockAdjusted(ctx context.Context, events ...ports.StockAdjustedEvent) error {
	return m.Called(ctx, events).Error(0)
}

// ──────────────────────────────────────────────────────────────────────────────
// AdjustStock
// ──────────────────────────────────────────────────────────────────────────────

func TestAdjustStock_EntradaActualizaStockEHistorial(t *testing.T) {
	f := newFixture(t, nil)
	f.seed(t, "p1", "Arroz", "10.00", 5)

	res, err := f.guard.AdjustStock(context.Background(), inventory.AdjustStockInput{
		ProductID: "p1", Delta: 7, Cause: entity.MovementCauseManualAdjustment, Actor: "u1",
	})
	require.NoError(t, err)
	assert.Equal(t, 5, res.PreviousQuantity)
	assert.Equal(t, 12, res.NewQuantity)
	assert.Equal(t, 12, f.stock(t, "p1"))

	movs, err := f.store.Movements().List(context.Background(), repository.MovementFilter{ProductID: "p1"})
	require.NoError(t, err)
	require.Len(t, movs, 2)
	assert.Equal(t, 7, movs[0].Delta)
	assert.Equal(t, "u1", movs[0].CreatedBy)
	f.assertLedgerConsistent(t)
}

func TestAdjustStock_SalidaHastaCeroPermitida(t *testing.T) {
	f := newFixture(t, nil)
	f.seed(t, "p1", "Arroz", "10.00", 3)

	res, err := f.guard.AdjustStock(context.Background(), inventory.AdjustStockInput{
		ProductID: "p1", Delta: -3, Cause: entity.MovementCauseCorrection,
	})
	require.NoError(t, err)
	assert.Equal(t, 0, res.NewQuantity)
	f.assertLedgerConsistent(t)
}

func TestAdjustStock_StockInsuficienteNoEscribe(t *testing.T) {
	f := newFixture(t, nil)
	f.seed(t, "p1", "Arroz", "10.00", 2)

	_, err := f.guard.AdjustStock(context.Background(), inventory.AdjustStockInput{
		ProductID: "p1", Delta: -5, Cause: entity.MovementCauseCorrection,
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	var stockErr *domain.InsufficientStockError
	require.True(t, errors.As(err, &stockErr))
	assert.Equal(t, "p1", stockErr.ProductID)
	assert.Equal(t, "Arroz", stockErr.ProductName)
	assert.Equal(t, 5, stockErr.Requested)
	assert.Equal(t, 2, stockErr.Available)
	assert.Equal(t, 3, stockErr.Shortfall())

	assert.Equal(t, 2, f.stock(t, "p1"))
	movs, _ := f.store.Movements().List(context.Background(), repository.MovementFilter{ProductID: "p1"})
	assert.Len(t, movs, 1, "solo el movimiento de stock inicial")
}

func TestAdjustStock_ProductoInexistente(t *testing.T) {
	f := newFixture(t, nil)

	_, err := f.guard.AdjustStock(context.Background(), inventory.AdjustStockInput{
		ProductID: "nope", Delta: 1, Cause: entity.MovementCauseManualAdjustment,
	})
	require.ErrorIs(t, err, domain.ErrNotFound)
	var nfErr *domain.ProductNotFoundError
	require.True(t, errors.As(err, &nfErr))
	assert.Equal(t, "nope", nfErr.ProductID)
}

func TestAdjustStock_ValidaEntrada(t *testing.T) {
	f := newFixture(t, nil)
	f.seed(t, "p1", "Arroz", "10.00", 1)
	ctx := context.Background()

	_, err := f.guard.AdjustStock(ctx, inventory.AdjustStockInput{ProductID: "p1", Delta: 0, Cause: entity.MovementCauseCorrection})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	_, err = f.guard.AdjustStock(ctx, inventory.AdjustStockInput{ProductID: "p1", Delta: 1, Cause: "regalo"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.guard.AdjustStock(ctx, inventory.AdjustStockInput{ProductID: " ", Delta: 1, Cause: entity.MovementCauseCorrection})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAdjustStock_ConcurrenteNuncaNegativo(t *testing.T) {
	f := newFixture(t, nil)
	f.seed(t, "p1", "Arroz", "10.00", 5)

	const workers = 12
	var ok, rejected int
	var mu sync.Mutex
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			_, err := f.guard.AdjustStock(context.Background(), inventory.AdjustStockInput{
				ProductID: "p1", Delta: -1, Cause: entity.MovementCauseCorrection,
			})
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				ok++
				return
			}
			assert.ErrorIs(t, err, domain.ErrInsufficientStock)
			rejected++
		}()
	}
	wg.Wait()

	assert.Equal(t, 5, ok)
	assert.Equal(t, workers-5, rejected)
	assert.Equal(t, 0, f.stock(t, "p1"))
	f.assertLedgerConsistent(t)
}

func TestAdjustStock_PublicaEventoTrasCommit(t *testing.T) {
	pub := new(publisherMock)
	pub.On("PublishStockAdjusted", mock.Anything, mock.MatchedBy(func(events []ports.StockAdjustedEvent) bool {
		return len(events) == 1 && events[0].ProductID == "p1"
	})).Return(nil)

	f := newFixture(t, pub)
	require.NoError(t, f.store.Products().Create(context.Background(), &entity.Product{ID: "p1", Name: "Arroz", Active: true}))

	res, err := f.guard.AdjustStock(context.Background(), inventory.AdjustStockInput{
		ProductID: "p1", Delta: 4, Cause: entity.MovementCauseManualAdjustment, Actor: "u9",
	})
	require.NoError(t, err)
	pub.AssertExpectations(t)

	event := pub.Calls[0].Arguments.Get(1).([]ports.StockAdjustedEvent)[0]
	assert.Equal(t, res.MovementID, event.MovementID)
	assert.Equal(t, 4, event.NewQuantity)
	assert.Equal(t, "u9", event.Actor)
}

func TestAdjustStock_ErrorDePublicacionNoRevierte(t *testing.T) {
	pub := new(publisherMock)
	pub.On("PublishStockAdjusted", mock.Anything, mock.Anything).Return(errors.New("broker caído"))

	f := newFixture(t, pub)
	require.NoError(t, f.store.Products().Create(context.Background(), &entity.Product{ID: "p1", Name: "Arroz", Active: true}))

	_, err := f.guard.AdjustStock(context.Background(), inventory.AdjustStockInput{
		ProductID: "p1", Delta: 2, Cause: entity.MovementCauseManualAdjustment,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, f.stock(t, "p1"))
}

// ──────────────────────────────────────────────────────────────────────────────
// Adaptadores de request
// ──────────────────────────────────────────────────────────────────────────────

func TestRegisterMovementFromRequest_TipoPorDefecto(t *testing.T) {
	f := newFixture(t, nil)
	f.seed(t, "p1", "Arroz", "10.00", 5)

	resp, err := f.guard.RegisterMovementFromRequest(context.Background(), "u1", dto.RegisterMovementRequest{
		ProductID: "p1", Delta: -2, Reason: " merma ",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.MovementCauseManualAdjustment, resp.Cause)
	assert.Equal(t, "merma", resp.Reason)
	require.NotNil(t, resp.NewQuantity)
	assert.Equal(t, 3, *resp.NewQuantity)
	assert.Equal(t, "Arroz", resp.Product.Name)
}

func TestRegisterMovementFromRequest_RechazaTipoVenta(t *testing.T) {
	f := newFixture(t, nil)
	f.seed(t, "p1", "Arroz", "10.00", 5)

	_, err := f.guard.RegisterMovementFromRequest(context.Background(), "u1", dto.RegisterMovementRequest{
		ProductID: "p1", Delta: -1, Cause: entity.MovementCauseSale,
	})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, 5, f.stock(t, "p1"))
}

func TestRestockFromRequest_SumaCantidad(t *testing.T) {
	f := newFixture(t, nil)
	f.seed(t, "p1", "Arroz", "10.00", 1)

	resp, err := f.guard.RestockFromRequest(context.Background(), "u1", "p1", dto.UpdateStockRequest{Quantity: 9})
	require.NoError(t, err)
	assert.Equal(t, 10, *resp.NewQuantity)
	assert.Equal(t, entity.MovementCauseManualAdjustment, resp.Cause)
	f.assertLedgerConsistent(t)
}
