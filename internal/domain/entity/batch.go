package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Batch representa un lote de entrada: la cantidad comprada de un ítem a un
// precio fijo, con un saldo restante que se consume por orden FIFO.
// El lote nunca se borra; cuando RemainingQuantity llega a cero queda
// "agotado" pero se conserva para auditoría y reportes.
type Batch struct {
	ID                string
	MasterItemID      string
	OriginalQuantity  decimal.Decimal
	UnitPrice         decimal.Decimal // precio de compra
	RemainingQuantity decimal.Decimal // invariante: 0 <= RemainingQuantity <= OriginalQuantity
	TransactionDate   time.Time
	Notes             string
	CreatedAt         time.Time
}

// IsOpen indica si el lote todavía tiene saldo consumible.
func (b *Batch) IsOpen() bool {
	return b.RemainingQuantity.GreaterThan(decimal.Zero)
}

// IsExhausted indica si el lote fue consumido por completo.
func (b *Batch) IsExhausted() bool {
	return !b.IsOpen()
}
