package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Lotes-api/internal/application/ledger"
)

// InventoryHandler maneja las consultas de la proyección de inventario actual.
type InventoryHandler struct {
	projection *ledger.ProjectionUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(projection *ledger.ProjectionUseCase) *InventoryHandler {
	return &InventoryHandler{projection: projection}
}

// List godoc
// @Summary      Inventario activo (cantidad > 0 por ítem)
// @Tags         inventory
// @Produce      json
// @Success      200  {array}   dto.InventoryLevelDTO
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/inventory [get]
func (h *InventoryHandler) List(c *fiber.Ctx) error {
	levels, err := h.projection.ActiveInventory(c.Context())
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(levels), "inventory": levels})
}

// GetByItem godoc
// @Summary      Proyección de un ítem (incluye agotados, cantidad puede ser 0)
// @Tags         inventory
// @Produce      json
// @Param        itemID  path  string  true  "ID del ítem maestro"
// @Success      200  {object}  dto.InventoryLevelDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/{itemID} [get]
func (h *InventoryHandler) GetByItem(c *fiber.Ctx) error {
	level, err := h.projection.ItemInventory(c.Context(), c.Params("itemID"))
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(level)
}
