// Package fifo implementa el planificador de salidas por costeo FIFO
// (servicio de dominio puro: sin I/O ni efectos secundarios).
package fifo

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Lotes-api/internal/domain"
	"github.com/jhoicas/Lotes-api/internal/domain/entity"
	"github.com/jhoicas/Lotes-api/internal/domain/money"
)

// BatchConsumption describe cuánto consume el plan de un lote concreto.
type BatchConsumption struct {
	BatchID              string
	QuantityConsumed     decimal.Decimal
	NewRemainingQuantity decimal.Decimal
}

// RemovalPlan es el resultado transitorio del planificador: cómo una salida
// consume los lotes abiertos de un ítem. No se persiste; el executor lo aplica.
type RemovalPlan struct {
	QuantityRequested    decimal.Decimal
	TotalCost            decimal.Decimal
	WeightedAveragePrice decimal.Decimal
	Consumptions         []BatchConsumption
}

// Plan calcula el plan de salida FIFO sobre los lotes abiertos de un ítem.
//
// Recorre los lotes del más antiguo al más reciente consumiendo
// min(pendiente, saldo del lote) de cada uno hasta cubrir la cantidad
// solicitada; el último lote tocado puede quedar parcialmente consumido y los
// posteriores no se tocan. Si la suma de saldos no alcanza, devuelve
// InsufficientInventoryError con el disponible y no toca nada.
//
// Los lotes con igual transaction_date conservan el orden de llegada del
// ledger (orden estable): el desempate es el orden de recuperación.
func Plan(batches []*entity.Batch, requested decimal.Decimal) (*RemovalPlan, error) {
	if !requested.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	requested = money.RoundQuantity(requested)

	ordered := make([]*entity.Batch, len(batches))
	copy(ordered, batches)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].TransactionDate.Before(ordered[j].TransactionDate)
	})

	available := decimal.Zero
	for _, b := range ordered {
		available = available.Add(b.RemainingQuantity)
	}
	if available.LessThan(requested) {
		return nil, domain.NewInsufficientInventory(money.RoundQuantity(available))
	}

	remaining := requested
	totalCost := decimal.Zero
	consumptions := make([]BatchConsumption, 0, len(ordered))

	for _, b := range ordered {
		if remaining.IsZero() {
			break
		}
		consumed := decimal.Min(remaining, b.RemainingQuantity)
		if !consumed.GreaterThan(decimal.Zero) {
			continue
		}
		totalCost = totalCost.Add(consumed.Mul(b.UnitPrice))
		remaining = remaining.Sub(consumed)
		consumptions = append(consumptions, BatchConsumption{
			BatchID:              b.ID,
			QuantityConsumed:     money.RoundQuantity(consumed),
			NewRemainingQuantity: money.RoundQuantity(b.RemainingQuantity.Sub(consumed)),
		})
	}

	totalCost = money.RoundCurrency(totalCost)
	return &RemovalPlan{
		QuantityRequested:    requested,
		TotalCost:            totalCost,
		WeightedAveragePrice: money.RoundCurrency(totalCost.Div(requested)),
		Consumptions:         consumptions,
	}, nil
}

// Available suma el saldo consumible de un conjunto de lotes.
func Available(batches []*entity.Batch) decimal.Decimal {
	sum := decimal.Zero
	for _, b := range batches {
		sum = sum.Add(b.RemainingQuantity)
	}
	return money.RoundQuantity(sum)
}
