package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Lotes-api/internal/domain"
	"github.com/jhoicas/Lotes-api/internal/domain/entity"
	"github.com/jhoicas/Lotes-api/internal/domain/fifo"
	"github.com/jhoicas/Lotes-api/internal/domain/repository"
)

// ApplyRemoval aplica un RemovalPlan contra el ledger usando el repositorio
// proporcionado (atado a la transacción del caller): decrementa el saldo de
// cada lote tocado e inserta exactamente un registro de salida.
//
// Rechaza con ErrInvalidInput cualquier plan con new_remaining_quantity < 0,
// aunque el planificador nunca debería producirlo. Si alguna escritura falla,
// el Rollback de la transacción deja el ledger en su estado previo.
func ApplyRemoval(
	ctx context.Context,
	repo repository.LedgerRepository,
	itemID string,
	plan *fifo.RemovalPlan,
	date time.Time,
	notes string,
) (*entity.RemovalRecord, error) {
	for _, c := range plan.Consumptions {
		if c.NewRemainingQuantity.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
	}

	for _, c := range plan.Consumptions {
		if err := repo.UpdateBatchRemaining(ctx, c.BatchID, c.NewRemainingQuantity); err != nil {
			return nil, err
		}
	}

	record := &entity.RemovalRecord{
		ID:              uuid.New().String(),
		MasterItemID:    itemID,
		Quantity:        plan.QuantityRequested,
		UnitPrice:       plan.WeightedAveragePrice,
		TransactionDate: date,
		Notes:           notes,
		CreatedAt:       time.Now(),
	}
	if err := repo.CreateRemoval(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}
