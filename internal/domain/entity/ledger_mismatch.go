package entity

// LedgerMismatch producto cuyo stock no coincide con la suma de su historial.
type LedgerMismatch struct {
	ProductID   string
	ProductName string
	Stock       int
	LedgerSum   int
}
