package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Lotes-api/internal/domain/entity"
)

// LedgerRepository define el puerto de escritura del ledger de lotes.
// Usado dentro de transacciones para garantizar consistencia (DIP).
type LedgerRepository interface {
	// ListOpenBatches devuelve los lotes con saldo > 0 de un ítem, ordenados
	// por transaction_date ascendente (empates: orden de inserción).
	ListOpenBatches(ctx context.Context, itemID string) ([]*entity.Batch, error)
	// ListOpenBatchesForUpdate igual que ListOpenBatches pero bloqueando las
	// filas para update (SELECT FOR UPDATE).
	ListOpenBatchesForUpdate(ctx context.Context, itemID string) ([]*entity.Batch, error)
	// AppendBatch inserta un lote nuevo (remaining_quantity = original_quantity).
	AppendBatch(ctx context.Context, batch *entity.Batch) error
	// UpdateBatchRemaining decrementa el saldo de un lote ya existente.
	UpdateBatchRemaining(ctx context.Context, batchID string, remaining decimal.Decimal) error
	// CreateRemoval inserta el registro de salida con el promedio ponderado.
	CreateRemoval(ctx context.Context, record *entity.RemovalRecord) error
}
