package ledger

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Lotes-api/internal/application/dto"
	"github.com/jhoicas/Lotes-api/internal/domain"
	"github.com/jhoicas/Lotes-api/internal/domain/entity"
	"github.com/jhoicas/Lotes-api/internal/domain/money"
	"github.com/jhoicas/Lotes-api/internal/domain/repository"
)

// ProjectionUseCase deriva el inventario actual (cantidad y valor por ítem) a
// partir del ledger. Solo lectura: lee un snapshot consistente posterior a la
// última escritura confirmada, nunca un estado a mitad de un apply.
type ProjectionUseCase struct {
	analyticsRepo repository.AnalyticsRepository
	itemRepo      repository.MasterItemRepository
}

// NewProjectionUseCase construye el caso de uso de proyección.
func NewProjectionUseCase(
	analyticsRepo repository.AnalyticsRepository,
	itemRepo repository.MasterItemRepository,
) *ProjectionUseCase {
	return &ProjectionUseCase{analyticsRepo: analyticsRepo, itemRepo: itemRepo}
}

// ActiveInventory lista la proyección de todos los ítems con cantidad > 0.
// Los ítems agotados se excluyen del listado pero sus lotes siguen en el
// ledger para historial y reportes.
func (uc *ProjectionUseCase) ActiveInventory(ctx context.Context) ([]dto.InventoryLevelDTO, error) {
	levels, err := uc.analyticsRepo.GetInventoryLevels(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.InventoryLevelDTO, 0, len(levels))
	for _, lv := range levels {
		qty := money.RoundQuantity(lv.CurrentQuantity)
		if !qty.GreaterThan(decimal.Zero) {
			continue
		}
		out = append(out, dto.InventoryLevelDTO{
			MasterItemID:    lv.MasterItemID,
			ItemName:        lv.ItemName,
			Unit:            lv.Unit,
			CurrentQuantity: qty,
			TotalValue:      money.RoundCurrency(lv.TotalValue),
		})
	}
	return out, nil
}

// ItemInventory proyecta cantidad y valor actual de un solo ítem desde sus
// lotes. Devuelve la proyección aunque esté en cero (el ítem existe).
func (uc *ProjectionUseCase) ItemInventory(ctx context.Context, itemID string) (*dto.InventoryLevelDTO, error) {
	if itemID == "" {
		return nil, domain.ErrInvalidInput
	}
	item, err := uc.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	batches, err := uc.analyticsRepo.ListBatchesByItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	qty, value := ProjectBatches(batches)
	return &dto.InventoryLevelDTO{
		MasterItemID:    item.ID,
		ItemName:        item.Name,
		Unit:            item.Unit,
		CurrentQuantity: qty,
		TotalValue:      value,
	}, nil
}

// ProjectBatches calcula la proyección de un conjunto de lotes:
// current_quantity = Σ remaining_quantity y total_value = Σ remaining × precio.
// Puro; lo usan el caso de uso y los tests.
func ProjectBatches(batches []*entity.Batch) (quantity, value decimal.Decimal) {
	quantity = decimal.Zero
	value = decimal.Zero
	for _, b := range batches {
		quantity = quantity.Add(b.RemainingQuantity)
		value = value.Add(b.RemainingQuantity.Mul(b.UnitPrice))
	}
	return money.RoundQuantity(quantity), money.RoundCurrency(value)
}
