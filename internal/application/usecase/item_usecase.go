// Package usecase contiene los casos de uso CRUD simples de la aplicación.
package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Lotes-api/internal/application/dto"
	"github.com/jhoicas/Lotes-api/internal/domain"
	"github.com/jhoicas/Lotes-api/internal/domain/entity"
	"github.com/jhoicas/Lotes-api/internal/domain/repository"
)

// MasterItemUseCase gestiona el catálogo de ítems maestros.
type MasterItemUseCase struct {
	repo repository.MasterItemRepository
}

// NewMasterItemUseCase construye el caso de uso.
func NewMasterItemUseCase(repo repository.MasterItemRepository) *MasterItemUseCase {
	return &MasterItemUseCase{repo: repo}
}

// Create registra un ítem maestro nuevo.
func (uc *MasterItemUseCase) Create(ctx context.Context, in dto.CreateItemRequest) (*dto.ItemDTO, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	item := &entity.MasterItem{
		ID:        uuid.New().String(),
		Name:      name,
		Unit:      strings.TrimSpace(in.Unit),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, item); err != nil {
		return nil, err
	}
	return toItemDTO(item), nil
}

// GetByID obtiene un ítem por ID.
func (uc *MasterItemUseCase) GetByID(ctx context.Context, id string) (*dto.ItemDTO, error) {
	if id == "" {
		return nil, domain.ErrInvalidInput
	}
	item, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	return toItemDTO(item), nil
}

// List devuelve el catálogo paginado.
func (uc *MasterItemUseCase) List(ctx context.Context, page dto.PageRequest) ([]dto.ItemDTO, error) {
	page.DefaultPage()
	items, err := uc.repo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ItemDTO, 0, len(items))
	for _, it := range items {
		out = append(out, *toItemDTO(it))
	}
	return out, nil
}

func toItemDTO(item *entity.MasterItem) *dto.ItemDTO {
	return &dto.ItemDTO{
		ID:        item.ID,
		Name:      item.Name,
		Unit:      item.Unit,
		CreatedAt: item.CreatedAt,
	}
}
