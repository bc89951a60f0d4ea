package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/ventas-api/internal/domain"
	"github.com/jhoicas/ventas-api/internal/domain/entity"
	"github.com/jhoicas/ventas-api/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo historial de inventario (inventario_historial). Solo INSERT y SELECT.
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el repositorio. Pasar pool o tx.
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

// Create inserta un movimiento.
func (r *StockMovementRepo) Create(ctx context.Context, m *entity.StockMovement) error {
	query := `
		INSERT INTO inventario_historial (id, producto_id, cambio, tipo, motivo, referencia, usuario_id, fecha)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.ProductID, m.Delta, m.Cause, nullString(m.Reason), nullString(m.Reference), nullString(m.CreatedBy), m.CreatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return &domain.ProductNotFoundError{ProductID: m.ProductID}
		}
		return fmt.Errorf("insert movimiento: %w", err)
	}
	return nil
}

// List movimientos con el resumen del producto, más recientes primero. From y To se aplican por separado.
func (r *StockMovementRepo) List(ctx context.Context, f repository.MovementFilter) ([]*entity.StockMovement, error) {
	query := `
		SELECT h.id, h.producto_id, h.cambio, h.tipo, h.motivo, h.referencia, h.usuario_id, h.fecha,
		       p.nombre, p.precio, p.stock
		FROM inventario_historial h
		JOIN productos p ON p.id = h.producto_id
		WHERE 1=1`
	args := []any{}
	pos := 1
	if f.ProductID != "" {
		query += fmt.Sprintf(" AND h.producto_id = $%d", pos)
		args = append(args, f.ProductID)
		pos++
	}
	if f.From != nil {
		query += fmt.Sprintf(" AND h.fecha >= $%d", pos)
		args = append(args, *f.From)
		pos++
	}
	if f.To != nil {
		query += fmt.Sprintf(" AND h.fecha <= $%d", pos)
		args = append(args, *f.To)
	}
	query += " ORDER BY h.fecha DESC, h.seq DESC"

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movimientos: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.StockMovement, 0)
	for rows.Next() {
		var m entity.StockMovement
		var reason, ref, createdBy *string
		p := entity.ProductSummary{}
		if err := rows.Scan(&m.ID, &m.ProductID, &m.Delta, &m.Cause, &reason, &ref, &createdBy, &m.CreatedAt,
			&p.Name, &p.Price, &p.Stock); err != nil {
			return nil, fmt.Errorf("scan movimiento: %w", err)
		}
		m.Reason, m.Reference, m.CreatedBy = fromNullString(reason), fromNullString(ref), fromNullString(createdBy)
		p.ID = m.ProductID
		m.Product = &p
		list = append(list, &m)
	}
	return list, rows.Err()
}
