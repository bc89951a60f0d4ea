package entity

import "time"

// Causas de movimiento de stock.
const (
	MovementCauseSale             = "sale"
	MovementCauseManualAdjustment = "manual-adjustment"
	MovementCauseCorrection       = "correction"
)

// IsValidMovementCause indica si la causa es una de las admitidas por el historial.
func IsValidMovementCause(cause string) bool {
	switch cause {
	case MovementCauseSale, MovementCauseManualAdjustment, MovementCauseCorrection:
		return true
	}
	return false
}

// StockMovement registro inmutable del historial de inventario (inventario_historial).
// La suma de Delta por producto es igual al Stock actual del producto.
type StockMovement struct {
	ID        string
	ProductID string
	Delta     int    // positivo entrada, negativo salida
	Cause     string // sale | manual-adjustment | correction
	Reason    string // motivo libre
	Reference string // ID de la venta cuando Cause = sale
	CreatedBy string // actor opaco (vacío si no hay)
	CreatedAt time.Time

	Product *ProductSummary // solo en lecturas
}
