package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de transacción del ledger.
const (
	TransactionTypeAdd    = "add"    // entrada: crea un lote
	TransactionTypeRemove = "remove" // salida: consume lotes (FIFO)
)

// Transaction es la vista de lectura de una fila del ledger, usada por el
// agregador de reportes. Las entradas llevan el precio de compra del lote;
// las salidas llevan el promedio ponderado ya almacenado en el registro
// (nunca se recalcula aquí).
type Transaction struct {
	ID              string
	MasterItemID    string
	ItemName        string // nombre del ítem maestro (join de lectura)
	Type            string // add | remove
	Quantity        decimal.Decimal
	UnitPrice       decimal.Decimal
	TotalValue      decimal.Decimal
	TransactionDate time.Time
}

// IsAdd indica si la transacción es una entrada.
func (t *Transaction) IsAdd() bool { return t.Type == TransactionTypeAdd }

// IsRemove indica si la transacción es una salida.
func (t *Transaction) IsRemove() bool { return t.Type == TransactionTypeRemove }
