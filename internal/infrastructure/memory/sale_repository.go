package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/jhoicas/ventas-api/internal/domain"
	"github.com/jhoicas/ventas-api/internal/domain/entity"
	"github.com/jhoicas/ventas-api/internal/domain/repository"
)

type saleRepo struct {
	acc access
}

func (r *saleRepo) Create(ctx context.Context, s *entity.Sale) error {
	if s.Total.IsNegative() {
		return fmt.Errorf("%w: total negativo", domain.ErrInvalidInput)
	}
	return r.acc.write(ctx, func(st *state) error {
		cp := *s
		cp.Lines = nil
		st.sales = append(st.sales, &cp)
		return nil
	})
}

func (r *saleRepo) CreateLine(ctx context.Context, l *entity.SaleLine) error {
	if l.Quantity < 1 {
		return domain.ErrInvalidQuantity
	}
	return r.acc.write(ctx, func(st *state) error {
		if findSale(st, l.SaleID) == nil {
			return fmt.Errorf("%w: venta %s", domain.ErrNotFound, l.SaleID)
		}
		if _, ok := st.products[l.ProductID]; !ok {
			return &domain.ProductNotFoundError{ProductID: l.ProductID}
		}
		cp := *l
		cp.Product = nil
		st.lines = append(st.lines, &cp)
		return nil
	})
}

func (r *saleRepo) GetByID(_ context.Context, id string) (*entity.Sale, error) {
	st := r.acc.read()
	s := findSale(st, id)
	if s == nil {
		return nil, nil
	}
	return withLines(st, s), nil
}

func (r *saleRepo) List(_ context.Context, f repository.SaleFilter) ([]*entity.Sale, error) {
	st := r.acc.read()
	type indexed struct {
		seq int
		s   *entity.Sale
	}
	matches := make([]indexed, 0)
	for i, s := range st.sales {
		if f.From != nil && s.CreatedAt.Before(*f.From) {
			continue
		}
		if f.To != nil && !s.CreatedAt.Before(*f.To) {
			continue
		}
		if f.CreatedBy != "" && s.CreatedBy != f.CreatedBy {
			continue
		}
		matches = append(matches, indexed{seq: i, s: s})
	}
	sort.SliceStable(matches, func(i, j int) bool {
		a, b := matches[i], matches[j]
		if !a.s.CreatedAt.Equal(b.s.CreatedAt) {
			if f.Ascending {
				return a.s.CreatedAt.Before(b.s.CreatedAt)
			}
			return a.s.CreatedAt.After(b.s.CreatedAt)
		}
		if f.Ascending {
			return a.seq < b.seq
		}
		return a.seq > b.seq
	})

	out := make([]*entity.Sale, 0, len(matches))
	for _, x := range matches {
		out = append(out, withLines(st, x.s))
	}
	return out, nil
}

func findSale(st *state, id string) *entity.Sale {
	for _, s := range st.sales {
		if s.ID == id {
			return s
		}
	}
	return nil
}

// withLines copia la cabecera y le adjunta sus líneas con el resumen actual del producto.
func withLines(st *state, s *entity.Sale) *entity.Sale {
	cp := *s
	cp.Lines = nil
	for _, l := range st.lines {
		if l.SaleID != s.ID {
			continue
		}
		lc := *l
		if p, ok := st.products[l.ProductID]; ok {
			summary := p.Summary()
			lc.Product = &summary
		}
		cp.Lines = append(cp.Lines, &lc)
	}
	return &cp
}
