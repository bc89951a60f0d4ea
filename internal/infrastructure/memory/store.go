// Package memory almacenamiento en proceso con transacciones serializables:
// cada transacción trabaja sobre una copia del estado y el commit la reemplaza completa.
// Se usa en tests y con STORAGE_DRIVER=memory.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/jhoicas/ventas-api/internal/domain"
	"github.com/jhoicas/ventas-api/internal/domain/entity"
	"github.com/jhoicas/ventas-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

type state struct {
	products  map[string]*entity.Product
	movements []*entity.StockMovement
	sales     []*entity.Sale // sin líneas; orden de inserción
	lines     []*entity.SaleLine
}

func newState() *state {
	return &state{products: make(map[string]*entity.Product)}
}

func (s *state) clone() *state {
	c := &state{
		products:  make(map[string]*entity.Product, len(s.products)),
		movements: make([]*entity.StockMovement, len(s.movements)),
		sales:     make([]*entity.Sale, len(s.sales)),
		lines:     make([]*entity.SaleLine, len(s.lines)),
	}
	for id, p := range s.products {
		cp := *p
		c.products[id] = &cp
	}
	// Historial, ventas y líneas son inmutables: basta copiar los punteros.
	copy(c.movements, s.movements)
	copy(c.sales, s.sales)
	copy(c.lines, s.lines)
	return c
}

// Store estado confirmado más el semáforo que serializa transacciones.
type Store struct {
	mu        sync.RWMutex
	committed *state
	txSem     chan struct{}

	// commitHook permite simular fallos de commit en tests.
	commitHook func() error
}

// NewStore crea un almacenamiento vacío.
func NewStore() *Store {
	return &Store{committed: newState(), txSem: make(chan struct{}, 1)}
}

// SetCommitHook instala una función que se evalúa antes de cada commit; si devuelve error
// la transacción se descarta y se reporta como domain.ErrTransactionAborted.
func (s *Store) SetCommitHook(fn func() error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.commitHook = fn
}

func (s *Store) snapshot() *state {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.committed
}

// inTx ejecuta fn sobre una copia del estado; solo una transacción a la vez.
func (s *Store) inTx(ctx context.Context, fn func(st *state) error) error {
	select {
	case s.txSem <- struct{}{}:
	case <-ctx.Done():
		return ctx.Err()
	}
	defer func() { <-s.txSem }()

	work := s.snapshot().clone()
	if err := fn(work); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.commitHook != nil {
		if err := s.commitHook(); err != nil {
			return fmt.Errorf("%w: commit: %w", domain.ErrTransactionAborted, err)
		}
	}
	s.committed = work
	return nil
}

// Repositorios sobre el estado confirmado; cada escritura es su propia transacción.

func (s *Store) Products() repository.ProductRepository {
	return &productRepo{acc: storeAccess{s}}
}

func (s *Store) Movements() repository.StockMovementRepository {
	return &movementRepo{acc: storeAccess{s}}
}

func (s *Store) Sales() repository.SaleRepository {
	return &saleRepo{acc: storeAccess{s}}
}

func (s *Store) InventoryQueries() repository.InventoryQueryRepository {
	return &inventoryQueryRepo{acc: storeAccess{s}}
}

// access abstrae si el repositorio lee/escribe la copia de una tx o el estado confirmado.
type access interface {
	read() *state
	write(ctx context.Context, fn func(st *state) error) error
}

type storeAccess struct{ s *Store }

func (a storeAccess) read() *state { return a.s.snapshot() }

func (a storeAccess) write(ctx context.Context, fn func(st *state) error) error {
	return a.s.inTx(ctx, fn)
}

type txAccess struct{ st *state }

func (a txAccess) read() *state { return a.st }

func (a txAccess) write(_ context.Context, fn func(st *state) error) error { return fn(a.st) }

// SetProductPrice cambia el precio de catálogo de un producto (el catálogo es externo al motor).
func (s *Store) SetProductPrice(ctx context.Context, id string, price decimal.Decimal) error {
	return s.inTx(ctx, func(st *state) error {
		p, ok := st.products[id]
		if !ok {
			return &domain.ProductNotFoundError{ProductID: id}
		}
		p.Price = price
		return nil
	})
}
