// Package ledger contiene los casos de uso de escritura del ledger de lotes:
// entradas (crean lotes) y salidas (consumen lotes por FIFO), ambas aplicadas
// de forma transaccional con serialización por ítem.
package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Lotes-api/internal/application/dto"
	"github.com/jhoicas/Lotes-api/internal/domain"
	"github.com/jhoicas/Lotes-api/internal/domain/entity"
	"github.com/jhoicas/Lotes-api/internal/domain/fifo"
	"github.com/jhoicas/Lotes-api/internal/domain/money"
	"github.com/jhoicas/Lotes-api/internal/domain/repository"
)

// UseCase registra entradas y salidas del ledger de forma transaccional,
// con lock por ítem (exclusivo para salidas, compartido para entradas).
type UseCase struct {
	txRunner TxRunner
	itemRepo repository.MasterItemRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(txRunner TxRunner, itemRepo repository.MasterItemRepository) *UseCase {
	return &UseCase{txRunner: txRunner, itemRepo: itemRepo}
}

// Add crea un lote nuevo con remaining_quantity = original_quantity.
// El precio se redondea a 2 decimales y la cantidad a 3 antes de almacenar.
func (uc *UseCase) Add(ctx context.Context, in dto.AddRequest) (*entity.Batch, error) {
	if in.MasterItemID == "" || !in.Quantity.GreaterThan(decimal.Zero) || in.UnitPrice.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	item, err := uc.itemRepo.GetByID(ctx, in.MasterItemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	date := now
	if in.TransactionDate != nil {
		date = *in.TransactionDate
	}
	qty := money.RoundQuantity(in.Quantity)
	batch := &entity.Batch{
		ID:                uuid.New().String(),
		MasterItemID:      in.MasterItemID,
		OriginalQuantity:  qty,
		UnitPrice:         money.RoundCurrency(in.UnitPrice),
		RemainingQuantity: qty,
		TransactionDate:   date,
		Notes:             in.Notes,
		CreatedAt:         now,
	}

	err = uc.txRunner.RunAdd(ctx, in.MasterItemID, func(repo repository.LedgerRepository) error {
		return repo.AppendBatch(ctx, batch)
	})
	if err != nil {
		return nil, err
	}
	return batch, nil
}

// Remove consume lotes del ítem por orden FIFO. Dentro de la transacción y
// bajo el lock exclusivo del ítem: lee los lotes abiertos bloqueando las
// filas, calcula el plan y lo aplica. Cualquier fallo hace Rollback completo.
func (uc *UseCase) Remove(ctx context.Context, in dto.RemoveRequest) (*dto.RemovalResultDTO, error) {
	if in.MasterItemID == "" || !in.Quantity.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	item, err := uc.itemRepo.GetByID(ctx, in.MasterItemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}

	date := time.Now()
	if in.TransactionDate != nil {
		date = *in.TransactionDate
	}

	var result *dto.RemovalResultDTO
	err = uc.txRunner.RunRemove(ctx, in.MasterItemID, func(repo repository.LedgerRepository) error {
		batches, err := repo.ListOpenBatchesForUpdate(ctx, in.MasterItemID)
		if err != nil {
			return err
		}
		plan, err := fifo.Plan(batches, in.Quantity)
		if err != nil {
			return err
		}
		if _, err := ApplyRemoval(ctx, repo, in.MasterItemID, plan, date, in.Notes); err != nil {
			return err
		}
		result = &dto.RemovalResultDTO{
			TotalCost:            plan.TotalCost,
			WeightedAveragePrice: plan.WeightedAveragePrice,
			BatchesAffected:      len(plan.Consumptions),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
