package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/jhoicas/ventas-api/internal/domain"
	"github.com/jhoicas/ventas-api/internal/domain/entity"
)

type productRepo struct {
	acc access
}

func (r *productRepo) Create(ctx context.Context, p *entity.Product) error {
	if p.Stock < 0 {
		return domain.ErrInvalidQuantity
	}
	return r.acc.write(ctx, func(st *state) error {
		if _, ok := st.products[p.ID]; ok {
			return fmt.Errorf("%w: producto %s ya existe", domain.ErrInvalidInput, p.ID)
		}
		cp := *p
		st.products[p.ID] = &cp
		return nil
	})
}

func (r *productRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	p, ok := r.acc.read().products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

// GetForUpdate dentro de una tx equivale a GetByID: el Store ya serializa las transacciones.
func (r *productRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}

func (r *productRepo) UpdateStock(ctx context.Context, id string, stock int) error {
	if stock < 0 {
		return domain.ErrInvalidQuantity
	}
	return r.acc.write(ctx, func(st *state) error {
		p, ok := st.products[id]
		if !ok {
			return &domain.ProductNotFoundError{ProductID: id}
		}
		p.Stock = stock
		return nil
	})
}

func (r *productRepo) ListActive(_ context.Context) ([]*entity.Product, error) {
	out := make([]*entity.Product, 0)
	for _, p := range r.acc.read().products {
		if p.Active {
			cp := *p
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}
