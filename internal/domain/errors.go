package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Errores de dominio (sin dependencias de infraestructura).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrDuplicate    = errors.New("recurso duplicado")
)

// InsufficientInventoryError indica que los lotes abiertos del ítem no alcanzan
// para cubrir la cantidad solicitada. Available es la suma de remaining_quantity;
// vale cero cuando el ítem no tiene lotes (caso unificado, no se distingue "sin lotes").
type InsufficientInventoryError struct {
	Available decimal.Decimal
}

func (e *InsufficientInventoryError) Error() string {
	return fmt.Sprintf("inventario insuficiente: disponible %s", e.Available.String())
}

// NewInsufficientInventory construye el error con la cantidad disponible.
func NewInsufficientInventory(available decimal.Decimal) *InsufficientInventoryError {
	return &InsufficientInventoryError{Available: available}
}

// PersistenceError envuelve fallas de I/O del almacenamiento (lectura de lotes,
// actualización o inserción de registros). No se reintenta internamente.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("fallo de persistencia en %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
