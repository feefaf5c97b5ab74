package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// RemovalRecord representa una salida del ledger. Es inmutable una vez creada:
// consume lotes, no los provee, por lo que su remaining_quantity persiste en 0.
// UnitPrice es el precio promedio ponderado calculado por el plan FIFO.
type RemovalRecord struct {
	ID              string
	MasterItemID    string
	Quantity        decimal.Decimal
	UnitPrice       decimal.Decimal // promedio ponderado de los lotes consumidos
	TransactionDate time.Time
	Notes           string
	CreatedAt       time.Time
}

// TotalValue devuelve el costo total de la salida (cantidad × promedio ponderado).
func (r *RemovalRecord) TotalValue() decimal.Decimal {
	return r.Quantity.Mul(r.UnitPrice)
}
