package report_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Lotes-api/internal/application/dto"
	"github.com/jhoicas/Lotes-api/internal/application/report"
	"github.com/jhoicas/Lotes-api/internal/domain"
	"github.com/jhoicas/Lotes-api/internal/domain/entity"
	"github.com/jhoicas/Lotes-api/internal/domain/repository"
)

type fakeAnalyticsRepo struct {
	txs []*entity.Transaction
}

func (f *fakeAnalyticsRepo) ListTransactionsInRange(_ context.Context, start, end time.Time, _ []string) ([]*entity.Transaction, error) {
	var out []*entity.Transaction
	for _, t := range f.txs {
		if !t.TransactionDate.Before(start) && !t.TransactionDate.After(end) {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeAnalyticsRepo) ListTransactionsPage(ctx context.Context, start, end time.Time, itemIDs []string, limit, offset int) ([]*entity.Transaction, error) {
	all, _ := f.ListTransactionsInRange(ctx, start, end, itemIDs)
	if offset >= len(all) {
		return nil, nil
	}
	all = all[offset:]
	if limit < len(all) {
		all = all[:limit]
	}
	return all, nil
}

func (f *fakeAnalyticsRepo) GetInventoryLevels(context.Context) ([]repository.InventoryLevelResult, error) {
	return nil, nil
}

func (f *fakeAnalyticsRepo) ListBatchesByItem(context.Context, string) ([]*entity.Batch, error) {
	return nil, nil
}

func addTx(item, name string, qty, price float64, d time.Time) *entity.Transaction {
	q := decimal.NewFromFloat(qty)
	p := decimal.NewFromFloat(price)
	return &entity.Transaction{
		MasterItemID:    item,
		ItemName:        name,
		Type:            entity.TransactionTypeAdd,
		Quantity:        q,
		UnitPrice:       p,
		TotalValue:      q.Mul(p),
		TransactionDate: d,
	}
}

func removeTx(item, name string, qty, avgPrice float64, d time.Time) *entity.Transaction {
	q := decimal.NewFromFloat(qty)
	p := decimal.NewFromFloat(avgPrice)
	return &entity.Transaction{
		MasterItemID:    item,
		ItemName:        name,
		Type:            entity.TransactionTypeRemove,
		Quantity:        q,
		UnitPrice:       p,
		TotalValue:      q.Mul(p),
		TransactionDate: d,
	}
}

func sampleTransactions() []*entity.Transaction {
	return []*entity.Transaction{
		addTx("a", "Arroz", 10, 5, date(2024, time.January, 2)),
		removeTx("a", "Arroz", 4, 5, date(2024, time.January, 3)),
		addTx("b", "Frijol", 6, 8, date(2024, time.January, 20)),
		removeTx("b", "Frijol", 2, 8, date(2024, time.February, 1)),
		removeTx("a", "Arroz", 3, 5, date(2024, time.February, 10)),
		addTx("a", "Arroz", 5, 6, date(2024, time.April, 7)),
		removeTx("a", "Arroz", 1, 5.5, date(2024, time.April, 8)),
	}
}

func TestBucketTransactions_Mensual(t *testing.T) {
	buckets := report.BucketTransactions(sampleTransactions(), report.GranularityMonth)

	require.Len(t, buckets, 3)
	assert.Equal(t, "2024-01", buckets[0].PeriodKey)
	assert.Equal(t, "2024-02", buckets[1].PeriodKey)
	assert.Equal(t, "2024-04", buckets[2].PeriodKey)

	jan := buckets[0]
	// entradas enero: 10*5 + 6*8 = 98; salidas enero: 4*5 = 20
	assert.True(t, decimal.NewFromInt(16).Equal(jan.IncomingQuantity))
	assert.True(t, decimal.NewFromInt(98).Equal(jan.IncomingValue))
	assert.True(t, decimal.NewFromInt(4).Equal(jan.OutgoingQuantity))
	assert.True(t, decimal.NewFromInt(20).Equal(jan.OutgoingValue))
	// net_expense = salidas - entradas
	assert.True(t, decimal.NewFromInt(-78).Equal(jan.NetExpense), "net = %s", jan.NetExpense)

	feb := buckets[1]
	// salidas febrero: 2*8 + 3*5 = 31, sin entradas
	assert.True(t, feb.IncomingValue.IsZero())
	assert.True(t, decimal.NewFromInt(31).Equal(feb.OutgoingValue))
	assert.True(t, decimal.NewFromInt(31).Equal(feb.NetExpense))
}

func TestBucketTransactions_ElPromedioAlmacenadoNoSeRecalcula(t *testing.T) {
	// La salida trae su promedio ponderado ya almacenado (5.5); el agregador
	// debe usar ese total, no recalcular contra los precios de los lotes.
	txs := []*entity.Transaction{
		removeTx("a", "Arroz", 2, 5.5, date(2024, time.June, 5)),
	}
	buckets := report.BucketTransactions(txs, report.GranularityDay)

	require.Len(t, buckets, 1)
	assert.True(t, decimal.NewFromInt(11).Equal(buckets[0].OutgoingValue))
}

// Propiedad de aditividad: sumar buckets diarios del rango equivale a agregar
// directamente con granularidad gruesa (tolerancia 0.01 por redondeo).
func TestBucketTransactions_AditividadEntrGranularidades(t *testing.T) {
	txs := sampleTransactions()
	tolerance := decimal.NewFromFloat(0.01)

	for _, coarse := range []report.Granularity{
		report.GranularityWeek,
		report.GranularityMonth,
		report.GranularityQuarter,
		report.GranularityYear,
	} {
		daily := report.BucketTransactions(txs, report.GranularityDay)
		direct := report.BucketTransactions(txs, coarse)

		sumNet := decimal.Zero
		for _, b := range daily {
			sumNet = sumNet.Add(b.NetExpense)
		}
		directNet := decimal.Zero
		for _, b := range direct {
			directNet = directNet.Add(b.NetExpense)
		}

		diff := sumNet.Sub(directNet).Abs()
		assert.True(t, diff.LessThanOrEqual(tolerance),
			"granularidad %s: diario=%s directo=%s", coarse, sumNet, directNet)
	}
}

func TestTrendBuckets_SoloSalidasYDesglosePorItem(t *testing.T) {
	txs := []*entity.Transaction{
		addTx("a", "Arroz", 100, 5, date(2024, time.March, 4)), // entrada: se ignora
		removeTx("a", "Arroz", 2, 5, date(2024, time.March, 4)),    // lunes
		removeTx("b", "Frijol", 1, 8, date(2024, time.March, 6)),   // miércoles, misma semana
		removeTx("a", "Arroz", 4, 5, date(2024, time.March, 12)),   // semana siguiente
	}

	buckets := report.TrendBuckets(txs)
	require.Len(t, buckets, 2)

	// Semana del domingo 3 de marzo.
	week1 := buckets[0]
	assert.Equal(t, "2024-03-03", week1.PeriodKey)
	assert.True(t, decimal.NewFromInt(18).Equal(week1.TotalExpense), "total = %s", week1.TotalExpense)
	assert.True(t, decimal.NewFromInt(10).Equal(week1.ExpenseByItem["Arroz"]))
	assert.True(t, decimal.NewFromInt(8).Equal(week1.ExpenseByItem["Frijol"]))

	week2 := buckets[1]
	assert.Equal(t, "2024-03-10", week2.PeriodKey)
	assert.True(t, decimal.NewFromInt(20).Equal(week2.TotalExpense))
	require.Len(t, week2.ExpenseByItem, 1)
}

func TestExpenseReport_FiltraPorRangoYDelegaAlBucketeo(t *testing.T) {
	uc := report.NewUseCase(&fakeAnalyticsRepo{txs: sampleTransactions()})

	// Solo enero.
	buckets, err := uc.ExpenseReport(
		context.Background(),
		date(2024, time.January, 1),
		date(2024, time.January, 31),
		report.GranularityMonth,
		nil,
	)
	require.NoError(t, err)
	require.Len(t, buckets, 1)
	assert.Equal(t, "2024-01", buckets[0].PeriodKey)
}

func TestExpenseReport_RangoInvertidoEsInvalido(t *testing.T) {
	uc := report.NewUseCase(&fakeAnalyticsRepo{})

	_, err := uc.ExpenseReport(
		context.Background(),
		date(2024, time.February, 1),
		date(2024, time.January, 1),
		report.GranularityMonth,
		nil,
	)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestTransactions_PaginaYRedondea(t *testing.T) {
	uc := report.NewUseCase(&fakeAnalyticsRepo{txs: sampleTransactions()})

	page, err := uc.Transactions(
		context.Background(),
		date(2024, time.January, 1),
		date(2024, time.December, 31),
		nil,
		dto.PageRequest{Limit: 3, Offset: 2},
	)
	require.NoError(t, err)
	assert.Len(t, page, 3)
}

func TestTrendBuckets_ItemSinNombreUsaElID(t *testing.T) {
	txs := []*entity.Transaction{
		removeTx("item-x", "", 1, 3, date(2024, time.May, 2)),
	}
	buckets := report.TrendBuckets(txs)
	require.Len(t, buckets, 1)
	assert.True(t, decimal.NewFromInt(3).Equal(buckets[0].ExpenseByItem["item-x"]))
}
