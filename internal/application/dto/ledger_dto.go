package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// AddRequest body para POST /api/ledger/add: crea un lote nuevo.
type AddRequest struct {
	MasterItemID    string          `json:"master_item_id"`
	Quantity        decimal.Decimal `json:"quantity"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	TransactionDate *time.Time      `json:"transaction_date,omitempty"` // vacío = ahora
	Notes           string          `json:"notes,omitempty"`
}

// RemoveRequest body para POST /api/ledger/remove: consume lotes FIFO.
type RemoveRequest struct {
	MasterItemID    string          `json:"master_item_id"`
	Quantity        decimal.Decimal `json:"quantity"`
	TransactionDate *time.Time      `json:"transaction_date,omitempty"`
	Notes           string          `json:"notes,omitempty"`
}

// RemovalResultDTO respuesta de una salida aplicada.
type RemovalResultDTO struct {
	TotalCost            decimal.Decimal `json:"total_cost"`
	WeightedAveragePrice decimal.Decimal `json:"weighted_average_price"`
	BatchesAffected      int             `json:"batches_affected"`
}

// TransactionDTO fila del historial del ledger.
type TransactionDTO struct {
	ID              string          `json:"id"`
	MasterItemID    string          `json:"master_item_id"`
	ItemName        string          `json:"item_name"`
	Type            string          `json:"type"`
	Quantity        decimal.Decimal `json:"quantity"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	TotalValue      decimal.Decimal `json:"total_value"`
	TransactionDate time.Time       `json:"transaction_date"`
}

// InventoryLevelDTO proyección de inventario actual de un ítem.
type InventoryLevelDTO struct {
	MasterItemID    string          `json:"master_item_id"`
	ItemName        string          `json:"item_name"`
	Unit            string          `json:"unit,omitempty"`
	CurrentQuantity decimal.Decimal `json:"current_quantity"`
	TotalValue      decimal.Decimal `json:"total_value"`
}
