// Package report contiene los casos de uso de agregación por período sobre el
// ledger: reporte de gastos (entradas y salidas por bucket) y tendencia
// semanal de consumo con desglose por ítem.
package report

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Lotes-api/internal/application/dto"
	"github.com/jhoicas/Lotes-api/internal/domain"
	"github.com/jhoicas/Lotes-api/internal/domain/entity"
	"github.com/jhoicas/Lotes-api/internal/domain/money"
	"github.com/jhoicas/Lotes-api/internal/domain/repository"
)

// UseCase agrega transacciones del ledger por período. Solo lectura.
type UseCase struct {
	analyticsRepo repository.AnalyticsRepository
}

// NewUseCase construye el caso de uso de reportes.
func NewUseCase(analyticsRepo repository.AnalyticsRepository) *UseCase {
	return &UseCase{analyticsRepo: analyticsRepo}
}

// ExpenseReport agrega todas las transacciones del rango en buckets de la
// granularidad pedida. itemIDs vacío = todos los ítems.
func (uc *UseCase) ExpenseReport(
	ctx context.Context,
	start, end time.Time,
	g Granularity,
	itemIDs []string,
) ([]dto.ReportBucketDTO, error) {
	if end.Before(start) {
		return nil, domain.ErrInvalidInput
	}
	txs, err := uc.analyticsRepo.ListTransactionsInRange(ctx, start, end, itemIDs)
	if err != nil {
		return nil, err
	}
	return BucketTransactions(txs, g), nil
}

// Transactions devuelve el historial paginado del ledger (fecha descendente).
func (uc *UseCase) Transactions(
	ctx context.Context,
	start, end time.Time,
	itemIDs []string,
	page dto.PageRequest,
) ([]dto.TransactionDTO, error) {
	if end.Before(start) {
		return nil, domain.ErrInvalidInput
	}
	page.DefaultPage()
	txs, err := uc.analyticsRepo.ListTransactionsPage(ctx, start, end, itemIDs, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.TransactionDTO, 0, len(txs))
	for _, t := range txs {
		out = append(out, dto.TransactionDTO{
			ID:              t.ID,
			MasterItemID:    t.MasterItemID,
			ItemName:        t.ItemName,
			Type:            t.Type,
			Quantity:        money.RoundQuantity(t.Quantity),
			UnitPrice:       money.RoundCurrency(t.UnitPrice),
			TotalValue:      money.RoundCurrency(t.TotalValue),
			TransactionDate: t.TransactionDate,
		})
	}
	return out, nil
}

// TrendReport agrega solo las salidas del rango en buckets semanales, con el
// gasto acumulado por nombre de ítem dentro de cada semana. El precio usado es
// el promedio ponderado ya almacenado en cada registro de salida.
func (uc *UseCase) TrendReport(
	ctx context.Context,
	start, end time.Time,
) ([]dto.TrendBucketDTO, error) {
	if end.Before(start) {
		return nil, domain.ErrInvalidInput
	}
	txs, err := uc.analyticsRepo.ListTransactionsInRange(ctx, start, end, nil)
	if err != nil {
		return nil, err
	}
	return TrendBuckets(txs), nil
}

// BucketTransactions agrupa transacciones por clave de período. Puro.
// Por bucket: incoming_* acumula entradas, outgoing_* acumula salidas (con el
// promedio ponderado almacenado, nunca recalculado) y
// net_expense = outgoing_value - incoming_value. Buckets ordenados ascendente
// por clave (orden lexicográfico = cronológico por construcción de la clave).
func BucketTransactions(txs []*entity.Transaction, g Granularity) []dto.ReportBucketDTO {
	type bucket struct {
		inQty, inVal, outQty, outVal decimal.Decimal
	}
	byKey := make(map[string]*bucket)
	for _, t := range txs {
		key := PeriodKey(g, t.TransactionDate)
		b, ok := byKey[key]
		if !ok {
			b = &bucket{
				inQty:  decimal.Zero,
				inVal:  decimal.Zero,
				outQty: decimal.Zero,
				outVal: decimal.Zero,
			}
			byKey[key] = b
		}
		switch {
		case t.IsAdd():
			b.inQty = b.inQty.Add(t.Quantity)
			b.inVal = b.inVal.Add(t.TotalValue)
		case t.IsRemove():
			b.outQty = b.outQty.Add(t.Quantity)
			b.outVal = b.outVal.Add(t.TotalValue)
		}
	}

	keys := make([]string, 0, len(byKey))
	for k := range byKey {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]dto.ReportBucketDTO, 0, len(keys))
	for _, k := range keys {
		b := byKey[k]
		outVal := money.RoundCurrency(b.outVal)
		inVal := money.RoundCurrency(b.inVal)
		out = append(out, dto.ReportBucketDTO{
			PeriodKey:        k,
			IncomingQuantity: money.RoundQuantity(b.inQty),
			IncomingValue:    inVal,
			OutgoingQuantity: money.RoundQuantity(b.outQty),
			OutgoingValue:    outVal,
			NetExpense:       money.RoundCurrency(outVal.Sub(inVal)),
		})
	}
	return out
}

// TrendBuckets agrupa las salidas por semana (domingo como clave) acumulando
// el gasto por nombre de ítem. Puro.
func TrendBuckets(txs []*entity.Transaction) []dto.TrendBucketDTO {
	type bucket struct {
		total  decimal.Decimal
		byItem map[string]decimal.Decimal
	}
	byKey := make(map[string]*bucket)
	for _, t := range txs {
		if !t.IsRemove() {
			continue
		}
		key := PeriodKey(GranularityWeek, t.TransactionDate)
		b, ok := byKey[key]
		if !ok {
			b = &bucket{total: decimal.Zero, byItem: make(map[string]decimal.Decimal)}
			byKey[key] = b
		}
		b.total = b.total.Add(t.TotalValue)
		name := t.ItemName
		if name == "" {
			name = t.MasterItemID
		}
		b.byItem[name] = b.byItem[name].Add(t.TotalValue)
	}

	keys := make([]string, 0, len(byKey))
	for k := range byKey {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]dto.TrendBucketDTO, 0, len(keys))
	for _, k := range keys {
		b := byKey[k]
		byItem := make(map[string]decimal.Decimal, len(b.byItem))
		for name, v := range b.byItem {
			byItem[name] = money.RoundCurrency(v)
		}
		out = append(out, dto.TrendBucketDTO{
			PeriodKey:     k,
			TotalExpense:  money.RoundCurrency(b.total),
			ExpenseByItem: byItem,
		})
	}
	return out
}
