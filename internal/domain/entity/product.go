package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product producto del catálogo. El catálogo es externo; este servicio solo lee nombre/precio
// y modifica Stock a través del StockGuard.
type Product struct {
	ID          string
	CategoryID  *string
	Name        string
	Description string
	Price       decimal.Decimal // precio de venta vigente
	Stock       int             // cantidad disponible, nunca negativa
	Active      bool
	CreatedAt   time.Time
}

// ProductSummary datos mínimos del producto para mostrar junto a ventas y movimientos.
type ProductSummary struct {
	ID    string
	Name  string
	Price decimal.Decimal
	Stock int
}

// Summary devuelve el resumen del producto en su estado actual.
func (p *Product) Summary() ProductSummary {
	return ProductSummary{ID: p.ID, Name: p.Name, Price: p.Price, Stock: p.Stock}
}
