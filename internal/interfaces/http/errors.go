package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Lotes-api/internal/application/dto"
	"github.com/jhoicas/Lotes-api/internal/domain"
)

// mapDomainError traduce errores de dominio a respuestas HTTP.
// INSUFFICIENT_INVENTORY incluye la cantidad disponible para que el cliente
// pueda corregir la entrada.
func mapDomainError(c *fiber.Ctx, err error) error {
	var insufficient *domain.InsufficientInventoryError
	if errors.As(err, &insufficient) {
		available := insufficient.Available
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
			Code:      "INSUFFICIENT_INVENTORY",
			Message:   "inventario insuficiente para la cantidad solicitada",
			Available: &available,
		})
	}
	if errors.Is(err, domain.ErrInvalidInput) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "VALIDATION", Message: "datos inválidos",
		})
	}
	if errors.Is(err, domain.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Code: "NOT_FOUND", Message: "recurso no encontrado",
		})
	}
	if errors.Is(err, domain.ErrDuplicate) {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
			Code: "DUPLICATE", Message: "recurso duplicado",
		})
	}
	var persistence *domain.PersistenceError
	if errors.As(err, &persistence) {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Code: "PERSISTENCE", Message: "fallo de persistencia",
		})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
		Code: "INTERNAL", Message: err.Error(),
	})
}
