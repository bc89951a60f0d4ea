package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/ventas-api/internal/domain"
	"github.com/jhoicas/ventas-api/internal/domain/entity"
	"github.com/jhoicas/ventas-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo ventas (cabecera) y ventas_detalle (líneas).
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el repositorio. Pasar pool o tx.
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// Create inserta la cabecera.
func (r *SaleRepo) Create(ctx context.Context, s *entity.Sale) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO ventas (id, total, fecha, usuario_id) VALUES ($1, $2, $3, $4)`,
		s.ID, s.Total, s.CreatedAt, nullString(s.CreatedBy),
	)
	if err != nil {
		if isCheckViolation(err) {
			return fmt.Errorf("%w: total negativo", domain.ErrInvalidInput)
		}
		return fmt.Errorf("insert venta: %w", err)
	}
	return nil
}

// CreateLine inserta una línea con el precio capturado.
func (r *SaleRepo) CreateLine(ctx context.Context, l *entity.SaleLine) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO ventas_detalle (id, venta_id, producto_id, cantidad, precio, subtotal)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		l.ID, l.SaleID, l.ProductID, l.Quantity, l.UnitPrice, l.Subtotal,
	)
	if err != nil {
		switch {
		case isForeignKeyViolation(err):
			return &domain.ProductNotFoundError{ProductID: l.ProductID}
		case isCheckViolation(err):
			return domain.ErrInvalidQuantity
		}
		return fmt.Errorf("insert detalle venta: %w", err)
	}
	return nil
}

// GetByID venta con sus líneas; (nil, nil) si no existe.
func (r *SaleRepo) GetByID(ctx context.Context, id string) (*entity.Sale, error) {
	var s entity.Sale
	var createdBy *string
	err := r.q.QueryRow(ctx, `SELECT id, total, fecha, usuario_id FROM ventas WHERE id = $1`, id).
		Scan(&s.ID, &s.Total, &s.CreatedAt, &createdBy)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get venta: %w", err)
	}
	s.CreatedBy = fromNullString(createdBy)
	if err := r.attachLines(ctx, []*entity.Sale{&s}); err != nil {
		return nil, err
	}
	return &s, nil
}

// List ventas filtradas con sus líneas. To es exclusivo.
func (r *SaleRepo) List(ctx context.Context, f repository.SaleFilter) ([]*entity.Sale, error) {
	query := `SELECT id, total, fecha, usuario_id FROM ventas WHERE 1=1`
	args := []any{}
	pos := 1
	if f.From != nil {
		query += fmt.Sprintf(" AND fecha >= $%d", pos)
		args = append(args, *f.From)
		pos++
	}
	if f.To != nil {
		query += fmt.Sprintf(" AND fecha < $%d", pos)
		args = append(args, *f.To)
		pos++
	}
	if f.CreatedBy != "" {
		query += fmt.Sprintf(" AND usuario_id = $%d", pos)
		args = append(args, f.CreatedBy)
	}
	if f.Ascending {
		query += " ORDER BY fecha ASC, seq ASC"
	} else {
		query += " ORDER BY fecha DESC, seq DESC"
	}

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list ventas: %w", err)
	}
	list := make([]*entity.Sale, 0)
	for rows.Next() {
		var s entity.Sale
		var createdBy *string
		if err := rows.Scan(&s.ID, &s.Total, &s.CreatedAt, &createdBy); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan venta: %w", err)
		}
		s.CreatedBy = fromNullString(createdBy)
		list = append(list, &s)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := r.attachLines(ctx, list); err != nil {
		return nil, err
	}
	return list, nil
}

// attachLines carga en una sola consulta las líneas de todas las ventas con el resumen del producto.
func (r *SaleRepo) attachLines(ctx context.Context, list []*entity.Sale) error {
	if len(list) == 0 {
		return nil
	}
	ids := make([]string, 0, len(list))
	byID := make(map[string]*entity.Sale, len(list))
	for _, s := range list {
		ids = append(ids, s.ID)
		byID[s.ID] = s
	}
	rows, err := r.q.Query(ctx, `
		SELECT d.id, d.venta_id, d.producto_id, d.cantidad, d.precio, d.subtotal, p.nombre, p.precio, p.stock
		FROM ventas_detalle d
		JOIN productos p ON p.id = d.producto_id
		WHERE d.venta_id = ANY($1)
		ORDER BY d.venta_id, d.seq`, ids)
	if err != nil {
		return fmt.Errorf("list detalle venta: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var l entity.SaleLine
		p := entity.ProductSummary{}
		if err := rows.Scan(&l.ID, &l.SaleID, &l.ProductID, &l.Quantity, &l.UnitPrice, &l.Subtotal,
			&p.Name, &p.Price, &p.Stock); err != nil {
			return fmt.Errorf("scan detalle venta: %w", err)
		}
		p.ID = l.ProductID
		l.Product = &p
		if s, ok := byID[l.SaleID]; ok {
			s.Lines = append(s.Lines, &l)
		}
	}
	return rows.Err()
}
