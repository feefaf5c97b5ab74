package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Lotes-api/internal/domain/entity"
)

// InventoryLevelResult resultado crudo de la proyección de inventario por ítem.
// Lo produce la DB; el use case lo redondea y filtra.
type InventoryLevelResult struct {
	MasterItemID    string
	ItemName        string
	Unit            string
	CurrentQuantity decimal.Decimal // Σ remaining_quantity de los lotes del ítem
	TotalValue      decimal.Decimal // Σ remaining_quantity × unit_price
}

// AnalyticsRepository define las consultas de solo lectura sobre el ledger:
// proyección de inventario y transacciones para reportes. Las implementaciones
// no modifican datos y leen siempre un snapshot consistente (nunca un estado a
// mitad de una escritura del executor).
type AnalyticsRepository interface {
	// ListTransactionsInRange devuelve las transacciones del ledger (entradas y
	// salidas) cuya fecha cae en [start, end], con el nombre del ítem resuelto.
	// itemIDs vacío = todos los ítems.
	ListTransactionsInRange(ctx context.Context, start, end time.Time, itemIDs []string) ([]*entity.Transaction, error)

	// ListTransactionsPage igual que ListTransactionsInRange pero paginado y en
	// orden descendente por fecha (historial).
	ListTransactionsPage(ctx context.Context, start, end time.Time, itemIDs []string, limit, offset int) ([]*entity.Transaction, error)

	// GetInventoryLevels agrega cantidad y valor actual por ítem sobre todos
	// sus lotes (abiertos y agotados).
	GetInventoryLevels(ctx context.Context) ([]InventoryLevelResult, error)

	// ListBatchesByItem devuelve todos los lotes de un ítem (abiertos y
	// agotados), ordenados por transaction_date ascendente.
	ListBatchesByItem(ctx context.Context, itemID string) ([]*entity.Batch, error)
}
