package ledger

import (
	"context"

	"github.com/jhoicas/Lotes-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando el
// repositorio del ledger atado a esa tx. Garantiza atomicidad del executor:
// o se escriben todas las actualizaciones de lotes más el registro de salida,
// o ninguna.
//
// La serialización por ítem es responsabilidad del runner: RunRemove toma un
// lock exclusivo por ítem (dos salidas del mismo ítem jamás intercalan su
// secuencia leer-planificar-escribir), RunAdd toma un lock compartido (las
// entradas solo insertan y pueden correr en paralelo entre sí, pero nunca
// durante una salida en vuelo).
type TxRunner interface {
	RunRemove(ctx context.Context, itemID string, fn func(repo repository.LedgerRepository) error) error
	RunAdd(ctx context.Context, itemID string, fn func(repo repository.LedgerRepository) error) error
}
