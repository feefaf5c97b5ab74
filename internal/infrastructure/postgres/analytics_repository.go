package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Lotes-api/internal/domain"
	"github.com/jhoicas/Lotes-api/internal/domain/entity"
	"github.com/jhoicas/Lotes-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas de solo lectura sobre el ledger: proyección de
// inventario y transacciones para reportes. Lee sobre el pool (fuera de las
// transacciones de escritura), así que cada consulta ve un snapshot
// consistente de los writes ya confirmados.
type AnalyticsRepo struct {
	pool *pgxpool.Pool
}

// NewAnalyticsRepository construye el adaptador de analítica.
func NewAnalyticsRepository(pool *pgxpool.Pool) *AnalyticsRepo {
	return &AnalyticsRepo{pool: pool}
}

const transactionColumns = `
	t.id, t.master_item_id, COALESCE(i.name, ''), t.type,
	t.quantity, t.unit_price, t.total_value, t.transaction_date`

// ListTransactionsInRange devuelve entradas y salidas del rango con el nombre
// del ítem resuelto. itemIDs vacío = todos.
func (r *AnalyticsRepo) ListTransactionsInRange(
	ctx context.Context,
	start, end time.Time,
	itemIDs []string,
) ([]*entity.Transaction, error) {
	query := `
	SELECT ` + transactionColumns + `
	FROM ledger_transactions t
	LEFT JOIN master_items i ON i.id = t.master_item_id
	WHERE t.transaction_date BETWEEN $1 AND $2`
	args := []any{start, end}
	if len(itemIDs) > 0 {
		query += " AND t.master_item_id = ANY($3)"
		args = append(args, itemIDs)
	}
	query += " ORDER BY t.transaction_date ASC, t.created_at ASC"
	return r.queryTransactions(ctx, "analytics.ListTransactionsInRange", query, args...)
}

// ListTransactionsPage historial paginado en orden descendente por fecha.
func (r *AnalyticsRepo) ListTransactionsPage(
	ctx context.Context,
	start, end time.Time,
	itemIDs []string,
	limit, offset int,
) ([]*entity.Transaction, error) {
	query := `
	SELECT ` + transactionColumns + `
	FROM ledger_transactions t
	LEFT JOIN master_items i ON i.id = t.master_item_id
	WHERE t.transaction_date BETWEEN $1 AND $2`
	args := []any{start, end}
	pos := 3
	if len(itemIDs) > 0 {
		query += fmt.Sprintf(" AND t.master_item_id = ANY($%d)", pos)
		args = append(args, itemIDs)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY t.transaction_date DESC, t.created_at DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)
	return r.queryTransactions(ctx, "analytics.ListTransactionsPage", query, args...)
}

func (r *AnalyticsRepo) queryTransactions(ctx context.Context, op, query string, args ...any) ([]*entity.Transaction, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, &domain.PersistenceError{Op: op, Err: err}
	}
	defer rows.Close()

	var list []*entity.Transaction
	for rows.Next() {
		var t entity.Transaction
		if err := rows.Scan(&t.ID, &t.MasterItemID, &t.ItemName, &t.Type,
			&t.Quantity, &t.UnitPrice, &t.TotalValue, &t.TransactionDate); err != nil {
			return nil, &domain.PersistenceError{Op: op + " scan", Err: err}
		}
		list = append(list, &t)
	}
	if err := rows.Err(); err != nil {
		return nil, &domain.PersistenceError{Op: op, Err: err}
	}
	return list, nil
}

// GetInventoryLevels agrega cantidad y valor actual por ítem sobre todos sus
// lotes. Los ítems sin saldo también salen (el use case filtra los <= 0).
func (r *AnalyticsRepo) GetInventoryLevels(ctx context.Context) ([]repository.InventoryLevelResult, error) {
	const query = `
	SELECT
	    t.master_item_id,
	    COALESCE(i.name, '')                          AS item_name,
	    COALESCE(i.unit, '')                          AS unit,
	    COALESCE(SUM(t.remaining_quantity), 0)        AS current_quantity,
	    COALESCE(SUM(t.remaining_quantity * t.unit_price), 0) AS total_value
	FROM ledger_transactions t
	LEFT JOIN master_items i ON i.id = t.master_item_id
	WHERE t.type = 'add'
	GROUP BY t.master_item_id, i.name, i.unit
	ORDER BY item_name ASC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, &domain.PersistenceError{Op: "analytics.GetInventoryLevels", Err: err}
	}
	defer rows.Close()

	var results []repository.InventoryLevelResult
	for rows.Next() {
		var row repository.InventoryLevelResult
		if err := rows.Scan(&row.MasterItemID, &row.ItemName, &row.Unit,
			&row.CurrentQuantity, &row.TotalValue); err != nil {
			return nil, &domain.PersistenceError{Op: "analytics.GetInventoryLevels scan", Err: err}
		}
		results = append(results, row)
	}
	if err := rows.Err(); err != nil {
		return nil, &domain.PersistenceError{Op: "analytics.GetInventoryLevels", Err: err}
	}
	return results, nil
}

// ListBatchesByItem devuelve todos los lotes de un ítem (abiertos y agotados)
// en orden FIFO, para la proyección por ítem.
func (r *AnalyticsRepo) ListBatchesByItem(ctx context.Context, itemID string) ([]*entity.Batch, error) {
	const query = `
	SELECT id, master_item_id, quantity, unit_price, remaining_quantity, transaction_date, COALESCE(notes, ''), created_at
	FROM ledger_transactions
	WHERE master_item_id = $1 AND type = 'add'
	ORDER BY transaction_date ASC, created_at ASC, id ASC`

	rows, err := r.pool.Query(ctx, query, itemID)
	if err != nil {
		return nil, &domain.PersistenceError{Op: "analytics.ListBatchesByItem", Err: err}
	}
	defer rows.Close()

	var list []*entity.Batch
	for rows.Next() {
		var b entity.Batch
		if err := rows.Scan(&b.ID, &b.MasterItemID, &b.OriginalQuantity, &b.UnitPrice,
			&b.RemainingQuantity, &b.TransactionDate, &b.Notes, &b.CreatedAt); err != nil {
			return nil, &domain.PersistenceError{Op: "analytics.ListBatchesByItem scan", Err: err}
		}
		list = append(list, &b)
	}
	if err := rows.Err(); err != nil {
		return nil, &domain.PersistenceError{Op: "analytics.ListBatchesByItem", Err: err}
	}
	return list, nil
}
