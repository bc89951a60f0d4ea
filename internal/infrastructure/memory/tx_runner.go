package memory

import (
	"context"

	"github.com/jhoicas/ventas-api/internal/domain/repository"
)

// TxRunner implementa inventory.TxRunner y sales.SalesTxRunner sobre Store.
type TxRunner struct {
	store *Store
}

// NewTxRunner construye el runner.
func NewTxRunner(store *Store) *TxRunner {
	return &TxRunner{store: store}
}

// Run ejecuta fn con repositorios de inventario atados a la transacción.
func (r *TxRunner) Run(ctx context.Context, fn func(
	movRepo repository.StockMovementRepository,
	productRepo repository.ProductRepository,
) error) error {
	return r.store.inTx(ctx, func(st *state) error {
		acc := txAccess{st}
		return fn(&movementRepo{acc: acc}, &productRepo{acc: acc})
	})
}

// RunSale igual que Run e incluye el repositorio de ventas.
func (r *TxRunner) RunSale(ctx context.Context, fn func(
	movRepo repository.StockMovementRepository,
	productRepo repository.ProductRepository,
	saleRepo repository.SaleRepository,
) error) error {
	return r.store.inTx(ctx, func(st *state) error {
		acc := txAccess{st}
		return fn(&movementRepo{acc: acc}, &productRepo{acc: acc}, &saleRepo{acc: acc})
	})
}
