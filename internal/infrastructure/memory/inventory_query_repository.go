package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/ventas-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

type inventoryQueryRepo struct {
	acc access
}

func (r *inventoryQueryRepo) ListLowStock(_ context.Context, threshold int) ([]*entity.Product, error) {
	out := make([]*entity.Product, 0)
	for _, p := range r.acc.read().products {
		if p.Active && p.Stock <= threshold {
			cp := *p
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Stock != out[j].Stock {
			return out[i].Stock < out[j].Stock
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

func (r *inventoryQueryRepo) GetStats(_ context.Context, lowStockThreshold int) (*entity.InventoryStats, error) {
	stats := &entity.InventoryStats{TotalInventoryValue: decimal.Zero}
	for _, p := range r.acc.read().products {
		if !p.Active {
			continue
		}
		stats.TotalActiveProducts++
		if p.Stock <= lowStockThreshold {
			stats.LowStockCount++
		}
		if p.Stock == 0 {
			stats.OutOfStockCount++
		}
		stats.TotalInventoryValue = stats.TotalInventoryValue.Add(p.Price)
	}
	return stats, nil
}

func (r *inventoryQueryRepo) LedgerMismatches(_ context.Context) ([]entity.LedgerMismatch, error) {
	st := r.acc.read()
	sums := make(map[string]int, len(st.products))
	for _, m := range st.movements {
		sums[m.ProductID] += m.Delta
	}
	out := make([]entity.LedgerMismatch, 0)
	for _, p := range st.products {
		if p.Stock != sums[p.ID] {
			out = append(out, entity.LedgerMismatch{
				ProductID:   p.ID,
				ProductName: p.Name,
				Stock:       p.Stock,
				LedgerSum:   sums[p.ID],
			})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ProductID < out[j].ProductID })
	return out, nil
}
