package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/ventas-api/internal/domain/entity"
	"github.com/jhoicas/ventas-api/internal/domain/repository"
)

type movementRepo struct {
	acc access
}

func (r *movementRepo) Create(ctx context.Context, m *entity.StockMovement) error {
	return r.acc.write(ctx, func(st *state) error {
		cp := *m
		cp.Product = nil
		st.movements = append(st.movements, &cp)
		return nil
	})
}

func (r *movementRepo) List(_ context.Context, f repository.MovementFilter) ([]*entity.StockMovement, error) {
	st := r.acc.read()
	type indexed struct {
		seq int
		m   *entity.StockMovement
	}
	matches := make([]indexed, 0)
	for i, m := range st.movements {
		if f.ProductID != "" && m.ProductID != f.ProductID {
			continue
		}
		if f.From != nil && m.CreatedAt.Before(*f.From) {
			continue
		}
		if f.To != nil && m.CreatedAt.After(*f.To) {
			continue
		}
		matches = append(matches, indexed{seq: i, m: m})
	}
	sort.SliceStable(matches, func(i, j int) bool {
		a, b := matches[i], matches[j]
		if !a.m.CreatedAt.Equal(b.m.CreatedAt) {
			return a.m.CreatedAt.After(b.m.CreatedAt)
		}
		return a.seq > b.seq
	})

	out := make([]*entity.StockMovement, 0, len(matches))
	for _, x := range matches {
		cp := *x.m
		if p, ok := st.products[cp.ProductID]; ok {
			summary := p.Summary()
			cp.Product = &summary
		}
		out = append(out, &cp)
	}
	return out, nil
}
