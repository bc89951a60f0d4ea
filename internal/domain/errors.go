package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrEmptySale          = errors.New("la venta debe tener al menos un producto")
	ErrInvalidQuantity    = errors.New("cantidad inválida")
	ErrInsufficientStock  = errors.New("stock insuficiente")
	ErrTransactionAborted = errors.New("la transacción no pudo confirmarse")
)

// InsufficientStockError rechazo tipado: el decremento solicitado supera el stock disponible.
type InsufficientStockError struct {
	ProductID   string
	ProductName string
	Requested   int
	Available   int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente para %s (%s): solicitado %d, disponible %d",
		e.ProductName, e.ProductID, e.Requested, e.Available)
}

// Shortfall unidades que faltan para cubrir lo solicitado.
func (e *InsufficientStockError) Shortfall() int {
	return e.Requested - e.Available
}

func (e *InsufficientStockError) Is(target error) bool { return target == ErrInsufficientStock }

// ProductNotFoundError rechazo tipado con el ID del producto que no existe.
type ProductNotFoundError struct {
	ProductID string
}

func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("producto %s no encontrado", e.ProductID)
}

func (e *ProductNotFoundError) Is(target error) bool { return target == ErrNotFound }

// InvalidLineError línea de venta con cantidad no positiva (Index es 0-based).
type InvalidLineError struct {
	Index     int
	ProductID string
	Quantity  int
}

func (e *InvalidLineError) Error() string {
	return fmt.Sprintf("línea %d (producto %s): cantidad %d inválida", e.Index+1, e.ProductID, e.Quantity)
}

func (e *InvalidLineError) Is(target error) bool { return target == ErrInvalidQuantity }
