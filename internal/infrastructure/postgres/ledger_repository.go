package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Lotes-api/internal/domain"
	"github.com/jhoicas/Lotes-api/internal/domain/entity"
	"github.com/jhoicas/Lotes-api/internal/domain/repository"
)

var _ repository.LedgerRepository = (*LedgerRepo)(nil)

// LedgerRepo implementación del puerto de escritura del ledger sobre
// PostgreSQL (usable con pool o tx). El ledger vive en una sola tabla
// ledger_transactions: las entradas (type = 'add') son lotes con
// remaining_quantity consumible; las salidas (type = 'remove') son inmutables
// con remaining_quantity = 0.
type LedgerRepo struct {
	q Querier
}

// NewLedgerRepository construye el adaptador. Pasar pool o tx (Querier).
func NewLedgerRepository(q Querier) *LedgerRepo {
	return &LedgerRepo{q: q}
}

const openBatchColumns = `id, master_item_id, quantity, unit_price, remaining_quantity, transaction_date, COALESCE(notes, ''), created_at`

// ListOpenBatches devuelve los lotes con saldo de un ítem en orden FIFO.
// El desempate entre fechas iguales es created_at, id (orden de inserción).
func (r *LedgerRepo) ListOpenBatches(ctx context.Context, itemID string) ([]*entity.Batch, error) {
	query := `
		SELECT ` + openBatchColumns + `
		FROM ledger_transactions
		WHERE master_item_id = $1 AND type = 'add' AND remaining_quantity > 0
		ORDER BY transaction_date ASC, created_at ASC, id ASC`
	return r.queryBatches(ctx, query, itemID)
}

// ListOpenBatchesForUpdate igual que ListOpenBatches pero bloqueando las filas
// (SELECT FOR UPDATE) para la secuencia leer-planificar-escribir de una salida.
func (r *LedgerRepo) ListOpenBatchesForUpdate(ctx context.Context, itemID string) ([]*entity.Batch, error) {
	query := `
		SELECT ` + openBatchColumns + `
		FROM ledger_transactions
		WHERE master_item_id = $1 AND type = 'add' AND remaining_quantity > 0
		ORDER BY transaction_date ASC, created_at ASC, id ASC
		FOR UPDATE`
	return r.queryBatches(ctx, query, itemID)
}

func (r *LedgerRepo) queryBatches(ctx context.Context, query, itemID string) ([]*entity.Batch, error) {
	rows, err := r.q.Query(ctx, query, itemID)
	if err != nil {
		return nil, &domain.PersistenceError{Op: "list open batches", Err: err}
	}
	defer rows.Close()

	var list []*entity.Batch
	for rows.Next() {
		var b entity.Batch
		if err := rows.Scan(&b.ID, &b.MasterItemID, &b.OriginalQuantity, &b.UnitPrice,
			&b.RemainingQuantity, &b.TransactionDate, &b.Notes, &b.CreatedAt); err != nil {
			return nil, &domain.PersistenceError{Op: "scan batch", Err: err}
		}
		list = append(list, &b)
	}
	if err := rows.Err(); err != nil {
		return nil, &domain.PersistenceError{Op: "list open batches", Err: err}
	}
	return list, nil
}

// AppendBatch inserta un lote nuevo (entrada). remaining_quantity nace igual a
// la cantidad original.
func (r *LedgerRepo) AppendBatch(ctx context.Context, batch *entity.Batch) error {
	if batch.ID == "" {
		batch.ID = uuid.New().String()
	}
	query := `
		INSERT INTO ledger_transactions
			(id, master_item_id, type, quantity, unit_price, total_value, remaining_quantity, transaction_date, notes, created_at)
		VALUES ($1, $2, 'add', $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		batch.ID, batch.MasterItemID, batch.OriginalQuantity, batch.UnitPrice,
		batch.OriginalQuantity.Mul(batch.UnitPrice), batch.RemainingQuantity,
		batch.TransactionDate, nullIfEmpty(batch.Notes), batch.CreatedAt,
	)
	if err != nil {
		return &domain.PersistenceError{Op: "append batch", Err: err}
	}
	return nil
}

// UpdateBatchRemaining decrementa el saldo de un lote. El CHECK de la tabla
// (remaining_quantity >= 0) respalda el invariante además del executor.
func (r *LedgerRepo) UpdateBatchRemaining(ctx context.Context, batchID string, remaining decimal.Decimal) error {
	query := `
		UPDATE ledger_transactions
		SET remaining_quantity = $2
		WHERE id = $1 AND type = 'add'`
	tag, err := r.q.Exec(ctx, query, batchID, remaining)
	if err != nil {
		return &domain.PersistenceError{Op: "update batch remaining", Err: err}
	}
	if tag.RowsAffected() == 0 {
		return &domain.PersistenceError{Op: "update batch remaining", Err: fmt.Errorf("lote %s no existe", batchID)}
	}
	return nil
}

// CreateRemoval inserta el registro de salida con el promedio ponderado ya
// calculado por el planificador.
func (r *LedgerRepo) CreateRemoval(ctx context.Context, record *entity.RemovalRecord) error {
	if record.ID == "" {
		record.ID = uuid.New().String()
	}
	query := `
		INSERT INTO ledger_transactions
			(id, master_item_id, type, quantity, unit_price, total_value, remaining_quantity, transaction_date, notes, created_at)
		VALUES ($1, $2, 'remove', $3, $4, $5, 0, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		record.ID, record.MasterItemID, record.Quantity, record.UnitPrice,
		record.TotalValue(), record.TransactionDate, nullIfEmpty(record.Notes), record.CreatedAt,
	)
	if err != nil {
		return &domain.PersistenceError{Op: "create removal", Err: err}
	}
	return nil
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
