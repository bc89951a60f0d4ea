package memory_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ventas-api/internal/domain"
	"github.com/jhoicas/ventas-api/internal/domain/entity"
	"github.com/jhoicas/ventas-api/internal/domain/repository"
	"github.com/jhoicas/ventas-api/internal/infrastructure/memory"
)

func newProduct(id, name string, price string, stock int) *entity.Product {
	return &entity.Product{
		ID:     id,
		Name:   name,
		Price:  decimal.RequireFromString(price),
		Stock:  stock,
		Active: true,
	}
}

func TestTxRunner_RollbackDescartaCambios(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	require.NoError(t, store.Products().Create(ctx, newProduct("p1", "Arroz", "10.00", 5)))

	boom := errors.New("boom")
	err := memory.NewTxRunner(store).Run(ctx, func(
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
	) error {
		require.NoError(t, productRepo.UpdateStock(ctx, "p1", 1))
		require.NoError(t, movRepo.Create(ctx, &entity.StockMovement{ID: "m1", ProductID: "p1", Delta: -4}))
		return boom
	})
	require.ErrorIs(t, err, boom)

	p, err := store.Products().GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 5, p.Stock)
	movs, err := store.Movements().List(ctx, repository.MovementFilter{})
	require.NoError(t, err)
	assert.Empty(t, movs)
}

func TestTxRunner_CommitVisibleSoloAlTerminar(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	require.NoError(t, store.Products().Create(ctx, newProduct("p1", "Arroz", "10.00", 5)))

	err := memory.NewTxRunner(store).Run(ctx, func(
		_ repository.StockMovementRepository,
		productRepo repository.ProductRepository,
	) error {
		require.NoError(t, productRepo.UpdateStock(ctx, "p1", 2))
		committed, _ := store.Products().GetByID(ctx, "p1")
		assert.Equal(t, 5, committed.Stock, "lecturas fuera de la tx ven el estado confirmado")
		inTx, _ := productRepo.GetByID(ctx, "p1")
		assert.Equal(t, 2, inTx.Stock)
		return nil
	})
	require.NoError(t, err)

	p, _ := store.Products().GetByID(ctx, "p1")
	assert.Equal(t, 2, p.Stock)
}

func TestTxRunner_FalloDeCommitEsTransactionAborted(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	require.NoError(t, store.Products().Create(ctx, newProduct("p1", "Arroz", "10.00", 5)))
	store.SetCommitHook(func() error { return errors.New("disco lleno") })

	err := memory.NewTxRunner(store).Run(ctx, func(
		_ repository.StockMovementRepository,
		productRepo repository.ProductRepository,
	) error {
		return productRepo.UpdateStock(ctx, "p1", 0)
	})
	require.ErrorIs(t, err, domain.ErrTransactionAborted)
	assert.Contains(t, err.Error(), "disco lleno")

	store.SetCommitHook(nil)
	p, _ := store.Products().GetByID(ctx, "p1")
	assert.Equal(t, 5, p.Stock)
}

func TestTxRunner_ContextoCanceladoNoConfirma(t *testing.T) {
	store := memory.NewStore()
	require.NoError(t, store.Products().Create(context.Background(), newProduct("p1", "Arroz", "10.00", 5)))

	ctx, cancel := context.WithCancel(context.Background())
	err := memory.NewTxRunner(store).Run(ctx, func(
		_ repository.StockMovementRepository,
		productRepo repository.ProductRepository,
	) error {
		require.NoError(t, productRepo.UpdateStock(ctx, "p1", 0))
		cancel()
		return nil
	})
	require.ErrorIs(t, err, context.Canceled)

	p, _ := store.Products().GetByID(context.Background(), "p1")
	assert.Equal(t, 5, p.Stock)
}

func TestTxRunner_SerializaTransacciones(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	require.NoError(t, store.Products().Create(ctx, newProduct("p1", "Arroz", "10.00", 0)))
	runner := memory.NewTxRunner(store)

	const workers = 20
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			err := runner.Run(ctx, func(
				_ repository.StockMovementRepository,
				productRepo repository.ProductRepository,
			) error {
				p, err := productRepo.GetForUpdate(ctx, "p1")
				if err != nil {
					return err
				}
				time.Sleep(time.Millisecond)
				return productRepo.UpdateStock(ctx, "p1", p.Stock+1)
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	p, _ := store.Products().GetByID(ctx, "p1")
	assert.Equal(t, workers, p.Stock, "ningún incremento se pierde")
}

func TestTxRunner_EsperaCancelable(t *testing.T) {
	store := memory.NewStore()
	runner := memory.NewTxRunner(store)
	started := make(chan struct{})
	release := make(chan struct{})

	go func() {
		_ = runner.Run(context.Background(), func(repository.StockMovementRepository, repository.ProductRepository) error {
			close(started)
			<-release
			return nil
		})
	}()
	<-started
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err := runner.Run(ctx, func(repository.StockMovementRepository, repository.ProductRepository) error {
		t.Fatal("no debe ejecutarse")
		return nil
	})
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestInventoryQueries_StockBajoYEstadisticas(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	products := store.Products()
	require.NoError(t, products.Create(ctx, newProduct("p1", "Arroz", "10.00", 10)))
	require.NoError(t, products.Create(ctx, newProduct("p2", "Frijol", "5.50", 11)))
	require.NoError(t, products.Create(ctx, newProduct("p3", "Sal", "1.25", 0)))
	inactive := newProduct("p4", "Azúcar", "3.00", 0)
	inactive.Active = false
	require.NoError(t, products.Create(ctx, inactive))

	low, err := store.InventoryQueries().ListLowStock(ctx, 10)
	require.NoError(t, err)
	require.Len(t, low, 2)
	assert.Equal(t, "p3", low[0].ID)
	assert.Equal(t, "p1", low[1].ID)

	stats, err := store.InventoryQueries().GetStats(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.TotalActiveProducts)
	assert.Equal(t, 2, stats.LowStockCount)
	assert.Equal(t, 1, stats.OutOfStockCount)
	assert.True(t, decimal.RequireFromString("16.75").Equal(stats.TotalInventoryValue))

	active, err := products.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, active, 3)
	assert.Equal(t, []string{"Arroz", "Frijol", "Sal"}, []string{active[0].Name, active[1].Name, active[2].Name})
}

func TestSaleRepository_ListFiltraYOrdena(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	sales := store.Sales()
	base := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	for i, actor := range []string{"u1", "u2", "u1"} {
		require.NoError(t, sales.Create(ctx, &entity.Sale{
			ID:        []string{"v1", "v2", "v3"}[i],
			Total:     decimal.NewFromInt(int64(i + 1)),
			CreatedAt: base.AddDate(0, 0, i),
			CreatedBy: actor,
		}))
	}

	all, err := sales.List(ctx, repository.SaleFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "v3", all[0].ID, "más reciente primero")

	asc, err := sales.List(ctx, repository.SaleFilter{Ascending: true})
	require.NoError(t, err)
	assert.Equal(t, "v1", asc[0].ID)

	to := base.AddDate(0, 0, 1)
	ranged, err := sales.List(ctx, repository.SaleFilter{From: &base, To: &to})
	require.NoError(t, err)
	require.Len(t, ranged, 1, "To es exclusivo")
	assert.Equal(t, "v1", ranged[0].ID)

	mine, err := sales.List(ctx, repository.SaleFilter{CreatedBy: "u1"})
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	missing, err := sales.GetByID(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, missing)
}
