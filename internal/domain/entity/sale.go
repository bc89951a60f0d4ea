package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale cabecera de venta (ventas). Se crea una sola vez y no se modifica.
// Total es la suma de los Subtotal de sus líneas.
type Sale struct {
	ID        string
	Total     decimal.Decimal
	CreatedAt time.Time
	CreatedBy string // actor opaco

	Lines []*SaleLine // solo en lecturas
}

// SaleLine línea de venta (ventas_detalle). UnitPrice es una copia del precio al momento de la venta.
type SaleLine struct {
	ID        string
	SaleID    string
	ProductID string
	Quantity  int
	UnitPrice decimal.Decimal
	Subtotal  decimal.Decimal

	Product *ProductSummary // solo en lecturas
}
