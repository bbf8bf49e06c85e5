package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrProductNotFound   = fmt.Errorf("producto no encontrado: %w", ErrNotFound)
	ErrWarehouseNotFound = fmt.Errorf("bodega no encontrada: %w", ErrNotFound)
	ErrMoveNotFound      = fmt.Errorf("movimiento no encontrado: %w", ErrNotFound)
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrForbidden         = errors.New("acceso denegado")
	ErrConflict          = errors.New("conflicto con el estado actual")
	ErrInsufficientStock = errors.New("stock insuficiente")

	// Máquina de estados y liquidación de movimientos.
	ErrInvalidTransition = errors.New("transición de estado no permitida")
	ErrAlreadySettled    = errors.New("el movimiento ya fue validado")
	ErrMoveCancelled     = errors.New("el movimiento está cancelado")
	ErrMissingWarehouse  = errors.New("los traslados internos requieren bodega origen y destino")

	// ErrSerialExhausted es interno: se agotó la numeración 0001–9999 del tipo/año.
	ErrSerialExhausted = errors.New("numeración de referencias agotada")
)

// InsufficientStockError detalla la cantidad disponible frente a la solicitada.
// errors.Is(err, ErrInsufficientStock) es verdadero.
type InsufficientStockError struct {
	Available decimal.Decimal
	Requested decimal.Decimal
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente. disponible: %s, requerido: %s", e.Available, e.Requested)
}

func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }

// IsConflict indica si err pertenece a los errores de regla de negocio que el cliente debe resolver.
func IsConflict(err error) bool {
	return errors.Is(err, ErrInvalidTransition) ||
		errors.Is(err, ErrAlreadySettled) ||
		errors.Is(err, ErrMoveCancelled) ||
		errors.Is(err, ErrInsufficientStock) ||
		errors.Is(err, ErrMissingWarehouse)
}
