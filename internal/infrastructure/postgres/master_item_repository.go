package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Lotes-api/internal/domain"
	"github.com/jhoicas/Lotes-api/internal/domain/entity"
	"github.com/jhoicas/Lotes-api/internal/domain/repository"
)

var _ repository.MasterItemRepository = (*MasterItemRepo)(nil)

// MasterItemRepo implementación del puerto MasterItemRepository sobre
// PostgreSQL (usable con pool o tx).
type MasterItemRepo struct {
	q Querier
}

// NewMasterItemRepository construye el adaptador del catálogo.
func NewMasterItemRepository(q Querier) *MasterItemRepo {
	return &MasterItemRepo{q: q}
}

// Create persiste un ítem maestro nuevo.
func (r *MasterItemRepo) Create(ctx context.Context, item *entity.MasterItem) error {
	query := `
		INSERT INTO master_items (id, name, unit, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(ctx, query, item.ID, item.Name, item.Unit, item.CreatedAt, item.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert master item: %w", err)
	}
	return nil
}

// GetByID obtiene un ítem por ID. Devuelve nil, nil si no existe.
func (r *MasterItemRepo) GetByID(ctx context.Context, id string) (*entity.MasterItem, error) {
	query := `
		SELECT id, name, COALESCE(unit, ''), created_at, updated_at
		FROM master_items WHERE id = $1`
	var item entity.MasterItem
	err := r.q.QueryRow(ctx, query, id).Scan(
		&item.ID, &item.Name, &item.Unit, &item.CreatedAt, &item.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get master item: %w", err)
	}
	return &item, nil
}

// List devuelve el catálogo paginado por nombre.
func (r *MasterItemRepo) List(ctx context.Context, limit, offset int) ([]*entity.MasterItem, error) {
	query := `
		SELECT id, name, COALESCE(unit, ''), created_at, updated_at
		FROM master_items
		ORDER BY name ASC
		LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list master items: %w", err)
	}
	defer rows.Close()

	var list []*entity.MasterItem
	for rows.Next() {
		var item entity.MasterItem
		if err := rows.Scan(&item.ID, &item.Name, &item.Unit, &item.CreatedAt, &item.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan master item: %w", err)
		}
		list = append(list, &item)
	}
	return list, rows.Err()
}
