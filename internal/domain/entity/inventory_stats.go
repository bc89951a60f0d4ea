package entity

import "github.com/shopspring/decimal"

// InventoryStats agregados de inventario sobre productos activos.
// TotalInventoryValue es la suma de precios unitarios, no precio × cantidad.
type InventoryStats struct {
	TotalActiveProducts int
	LowStockCount       int
	OutOfStockCount     int
	TotalInventoryValue decimal.Decimal
}
