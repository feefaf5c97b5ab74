package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Lotes-api/internal/application/ledger"
	"github.com/jhoicas/Lotes-api/internal/domain/repository"
)

// Ensure TxRunner implements ledger.TxRunner.
var _ ledger.TxRunner = (*TxRunner)(nil)

// Clase de lock advisory para la serialización por ítem del ledger.
const ledgerLockClass = 1

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL, con
// serialización por ítem vía advisory locks transaccionales:
//
//   - RunRemove toma pg_advisory_xact_lock (exclusivo): la secuencia
//     leer lotes → planificar → escribir de una salida nunca se intercala con
//     otra escritura del mismo ítem.
//   - RunAdd toma pg_advisory_xact_lock_shared: varias entradas del mismo
//     ítem corren en paralelo entre sí (solo insertan), pero esperan a
//     cualquier salida en vuelo y viceversa.
//
// Los locks se liberan solos en Commit/Rollback.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunRemove inicia una transacción con lock exclusivo del ítem y ejecuta fn
// con el repositorio del ledger atado a la tx. Commit si fn devuelve nil.
func (r *TxRunner) RunRemove(ctx context.Context, itemID string, fn func(repo repository.LedgerRepository) error) error {
	return r.run(ctx, itemID, "SELECT pg_advisory_xact_lock($1, hashtext($2))", fn)
}

// RunAdd inicia una transacción con lock compartido del ítem.
func (r *TxRunner) RunAdd(ctx context.Context, itemID string, fn func(repo repository.LedgerRepository) error) error {
	return r.run(ctx, itemID, "SELECT pg_advisory_xact_lock_shared($1, hashtext($2))", fn)
}

func (r *TxRunner) run(ctx context.Context, itemID, lockQuery string, fn func(repo repository.LedgerRepository) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := acquireItemLock(ctx, tx, lockQuery, itemID); err != nil {
		return err
	}
	if err := fn(NewLedgerRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func acquireItemLock(ctx context.Context, tx pgx.Tx, lockQuery, itemID string) error {
	if _, err := tx.Exec(ctx, lockQuery, ledgerLockClass, itemID); err != nil {
		return fmt.Errorf("advisory lock item %s: %w", itemID, err)
	}
	return nil
}
