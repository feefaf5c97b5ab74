package ledger_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Lotes-api/internal/application/dto"
	"github.com/jhoicas/Lotes-api/internal/application/ledger"
	"github.com/jhoicas/Lotes-api/internal/domain"
	"github.com/jhoicas/Lotes-api/internal/domain/entity"
	"github.com/jhoicas/Lotes-api/internal/domain/fifo"
	"github.com/jhoicas/Lotes-api/internal/domain/repository"
)

// ── Fakes en memoria ──────────────────────────────────────────────────────────

// fakeLedgerStore guarda lotes y salidas en memoria, en orden de inserción.
// failOn permite inyectar fallas de persistencia por operación.
type fakeLedgerStore struct {
	batches  []*entity.Batch
	removals []*entity.RemovalRecord
	failOn   string
}

var _ repository.LedgerRepository = (*fakeLedgerStore)(nil)

func (s *fakeLedgerStore) ListOpenBatches(_ context.Context, itemID string) ([]*entity.Batch, error) {
	if s.failOn == "list" {
		return nil, &domain.PersistenceError{Op: "list", Err: errors.New("boom")}
	}
	var open []*entity.Batch
	for _, b := range s.batches {
		if b.MasterItemID == itemID && b.IsOpen() {
			open = append(open, b)
		}
	}
	return open, nil
}

func (s *fakeLedgerStore) ListOpenBatchesForUpdate(ctx context.Context, itemID string) ([]*entity.Batch, error) {
	return s.ListOpenBatches(ctx, itemID)
}

func (s *fakeLedgerStore) AppendBatch(_ context.Context, batch *entity.Batch) error {
	if s.failOn == "append" {
		return &domain.PersistenceError{Op: "append", Err: errors.New("boom")}
	}
	s.batches = append(s.batches, batch)
	return nil
}

func (s *fakeLedgerStore) UpdateBatchRemaining(_ context.Context, batchID string, remaining decimal.Decimal) error {
	if s.failOn == "update" {
		return &domain.PersistenceError{Op: "update", Err: errors.New("boom")}
	}
	for _, b := range s.batches {
		if b.ID == batchID {
			b.RemainingQuantity = remaining
			return nil
		}
	}
	return &domain.PersistenceError{Op: "update", Err: errors.New("lote no existe")}
}

func (s *fakeLedgerStore) CreateRemoval(_ context.Context, record *entity.RemovalRecord) error {
	if s.failOn == "removal" {
		return &domain.PersistenceError{Op: "removal", Err: errors.New("boom")}
	}
	s.removals = append(s.removals, record)
	return nil
}

func (s *fakeLedgerStore) snapshot() *fakeLedgerStore {
	clone := &fakeLedgerStore{failOn: s.failOn}
	for _, b := range s.batches {
		copied := *b
		clone.batches = append(clone.batches, &copied)
	}
	clone.removals = append(clone.removals, s.removals...)
	return clone
}

// fakeTxRunner simula Begin/Commit/Rollback: ejecuta fn sobre una copia del
// store y solo publica los cambios si fn devuelve nil.
type fakeTxRunner struct {
	store       *fakeLedgerStore
	removeCalls int
	addCalls    int
}

func (r *fakeTxRunner) RunRemove(_ context.Context, _ string, fn func(repo repository.LedgerRepository) error) error {
	r.removeCalls++
	return r.run(fn)
}

func (r *fakeTxRunner) RunAdd(_ context.Context, _ string, fn func(repo repository.LedgerRepository) error) error {
	r.addCalls++
	return r.run(fn)
}

func (r *fakeTxRunner) run(fn func(repo repository.LedgerRepository) error) error {
	tx := r.store.snapshot()
	if err := fn(tx); err != nil {
		return err // rollback: el store original no cambia
	}
	r.store.batches = tx.batches
	r.store.removals = tx.removals
	return nil
}

type fakeItemRepo struct {
	items map[string]*entity.MasterItem
}

func (r *fakeItemRepo) Create(_ context.Context, item *entity.MasterItem) error {
	r.items[item.ID] = item
	return nil
}

func (r *fakeItemRepo) GetByID(_ context.Context, id string) (*entity.MasterItem, error) {
	return r.items[id], nil
}

func (r *fakeItemRepo) List(_ context.Context, _, _ int) ([]*entity.MasterItem, error) {
	out := make([]*entity.MasterItem, 0, len(r.items))
	for _, it := range r.items {
		out = append(out, it)
	}
	return out, nil
}

func newFixture() (*ledger.UseCase, *fakeLedgerStore, *fakeTxRunner) {
	store := &fakeLedgerStore{}
	runner := &fakeTxRunner{store: store}
	items := &fakeItemRepo{items: map[string]*entity.MasterItem{
		"item-1": {ID: "item-1", Name: "Arroz", Unit: "kg"},
	}}
	return ledger.NewUseCase(runner, items), store, runner
}

func addReq(qty, price float64) dto.AddRequest {
	return dto.AddRequest{
		MasterItemID: "item-1",
		Quantity:     decimal.NewFromFloat(qty),
		UnitPrice:    decimal.NewFromFloat(price),
	}
}

// ── Tests ─────────────────────────────────────────────────────────────────────

func TestAdd_CreaLoteConSaldoIgualALaCantidad(t *testing.T) {
	uc, store, runner := newFixture()

	batch, err := uc.Add(context.Background(), addReq(10, 12.345))
	require.NoError(t, err)

	require.Len(t, store.batches, 1)
	assert.True(t, batch.RemainingQuantity.Equal(batch.OriginalQuantity))
	// El precio se almacena con precisión de moneda (2 decimales).
	assert.True(t, decimal.NewFromFloat(12.35).Equal(batch.UnitPrice), "unit_price = %s", batch.UnitPrice)
	assert.Equal(t, 1, runner.addCalls)
}

func TestAdd_ValidacionesRechazanSinTocarElLedger(t *testing.T) {
	uc, store, _ := newFixture()
	ctx := context.Background()

	_, err := uc.Add(ctx, dto.AddRequest{MasterItemID: "item-1", Quantity: decimal.Zero})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Add(ctx, dto.AddRequest{
		MasterItemID: "item-1",
		Quantity:     decimal.NewFromInt(5),
		UnitPrice:    decimal.NewFromInt(-1),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Add(ctx, dto.AddRequest{
		MasterItemID: "desconocido",
		Quantity:     decimal.NewFromInt(5),
		UnitPrice:    decimal.NewFromInt(1),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.Empty(t, store.batches)
}

// Propiedad round-trip: add(q, p) seguido de remove(q) deja cantidad 0 y el
// costo total es round(q*p, 2).
func TestRemove_RoundTripDejaInventarioEnCero(t *testing.T) {
	uc, store, _ := newFixture()
	ctx := context.Background()

	_, err := uc.Add(ctx, addReq(7.5, 3.33))
	require.NoError(t, err)

	result, err := uc.Remove(ctx, dto.RemoveRequest{
		MasterItemID: "item-1",
		Quantity:     decimal.NewFromFloat(7.5),
	})
	require.NoError(t, err)

	// 7.5 * 3.33 = 24.975 → 24.98
	assert.True(t, decimal.NewFromFloat(24.98).Equal(result.TotalCost), "total_cost = %s", result.TotalCost)
	assert.Equal(t, 1, result.BatchesAffected)

	qty, _ := ledger.ProjectBatches(store.batches)
	assert.True(t, qty.IsZero())
	require.Len(t, store.removals, 1)
	assert.True(t, decimal.NewFromFloat(3.33).Equal(store.removals[0].UnitPrice))
}

func TestRemove_ConsumeFIFOYDejaSaldoParcial(t *testing.T) {
	uc, store, _ := newFixture()
	ctx := context.Background()

	old := addReq(10, 5)
	oldDate := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	old.TransactionDate = &oldDate
	_, err := uc.Add(ctx, old)
	require.NoError(t, err)

	recent := addReq(10, 7)
	recentDate := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)
	recent.TransactionDate = &recentDate
	_, err = uc.Add(ctx, recent)
	require.NoError(t, err)

	result, err := uc.Remove(ctx, dto.RemoveRequest{
		MasterItemID: "item-1",
		Quantity:     decimal.NewFromInt(15),
	})
	require.NoError(t, err)

	assert.True(t, decimal.NewFromInt(85).Equal(result.TotalCost))
	assert.True(t, decimal.NewFromFloat(5.67).Equal(result.WeightedAveragePrice))
	assert.Equal(t, 2, result.BatchesAffected)

	// El lote viejo queda agotado pero sigue en el ledger; el nuevo con 5.
	require.Len(t, store.batches, 2)
	assert.True(t, store.batches[0].IsExhausted())
	assert.True(t, decimal.NewFromInt(5).Equal(store.batches[1].RemainingQuantity))
}

func TestRemove_InsuficienteNoMutaNada(t *testing.T) {
	uc, store, _ := newFixture()
	ctx := context.Background()

	_, err := uc.Add(ctx, addReq(20, 4))
	require.NoError(t, err)

	_, err = uc.Remove(ctx, dto.RemoveRequest{
		MasterItemID: "item-1",
		Quantity:     decimal.NewFromInt(25),
	})

	var insufficient *domain.InsufficientInventoryError
	require.ErrorAs(t, err, &insufficient)
	assert.True(t, decimal.NewFromInt(20).Equal(insufficient.Available))

	assert.True(t, decimal.NewFromInt(20).Equal(store.batches[0].RemainingQuantity))
	assert.Empty(t, store.removals)
}

func TestRemove_FallaDePersistenciaHaceRollbackCompleto(t *testing.T) {
	uc, store, _ := newFixture()
	ctx := context.Background()

	_, err := uc.Add(ctx, addReq(10, 5))
	require.NoError(t, err)
	_, err = uc.Add(ctx, addReq(10, 7))
	require.NoError(t, err)

	// La inserción del registro de salida falla después de decrementar lotes:
	// nada debe quedar a medias.
	store.failOn = "removal"
	_, err = uc.Remove(ctx, dto.RemoveRequest{
		MasterItemID: "item-1",
		Quantity:     decimal.NewFromInt(15),
	})

	var persistence *domain.PersistenceError
	require.ErrorAs(t, err, &persistence)
	assert.True(t, decimal.NewFromInt(10).Equal(store.batches[0].RemainingQuantity))
	assert.True(t, decimal.NewFromInt(10).Equal(store.batches[1].RemainingQuantity))
	assert.Empty(t, store.removals)
}

func TestRemove_NuncaDejaSaldosNegativos(t *testing.T) {
	uc, store, _ := newFixture()
	ctx := context.Background()

	_, err := uc.Add(ctx, addReq(3, 2))
	require.NoError(t, err)
	_, err = uc.Add(ctx, addReq(4, 3))
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, _ = uc.Remove(ctx, dto.RemoveRequest{
			MasterItemID: "item-1",
			Quantity:     decimal.NewFromInt(3),
		})
		for _, b := range store.batches {
			assert.False(t, b.RemainingQuantity.IsNegative(),
				"lote %s con saldo negativo: %s", b.ID, b.RemainingQuantity)
		}
	}
}

func TestApplyRemoval_RechazaPlanConSaldoNegativo(t *testing.T) {
	store := &fakeLedgerStore{}
	plan := &fifo.RemovalPlan{
		QuantityRequested:    decimal.NewFromInt(5),
		TotalCost:            decimal.NewFromInt(10),
		WeightedAveragePrice: decimal.NewFromInt(2),
		Consumptions: []fifo.BatchConsumption{
			{BatchID: "X", QuantityConsumed: decimal.NewFromInt(5), NewRemainingQuantity: decimal.NewFromInt(-1)},
		},
	}

	_, err := ledger.ApplyRemoval(context.Background(), store, "item-1", plan, time.Now(), "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, store.removals)
}
