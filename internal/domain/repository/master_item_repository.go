package repository

import (
	"context"

	"github.com/jhoicas/Lotes-api/internal/domain/entity"
)

// MasterItemRepository define el puerto de persistencia del catálogo de ítems.
type MasterItemRepository interface {
	Create(ctx context.Context, item *entity.MasterItem) error
	// GetByID devuelve nil, nil si el ítem no existe.
	GetByID(ctx context.Context, id string) (*entity.MasterItem, error)
	List(ctx context.Context, limit, offset int) ([]*entity.MasterItem, error)
}
