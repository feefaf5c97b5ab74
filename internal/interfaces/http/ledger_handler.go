package http

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Lotes-api/internal/application/dto"
	"github.com/jhoicas/Lotes-api/internal/application/ledger"
	"github.com/jhoicas/Lotes-api/internal/application/report"
)

// LedgerHandler maneja las peticiones HTTP de entradas, salidas e historial.
type LedgerHandler struct {
	uc      *ledger.UseCase
	reports *report.UseCase
}

// NewLedgerHandler construye el handler.
func NewLedgerHandler(uc *ledger.UseCase, reports *report.UseCase) *LedgerHandler {
	return &LedgerHandler{uc: uc, reports: reports}
}

// Add godoc
// @Summary      Registrar entrada (crea un lote)
// @Tags         ledger
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AddRequest  true  "master_item_id, quantity > 0, unit_price >= 0"
// @Success      201   {object}  map[string]string
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/ledger/add [post]
func (h *LedgerHandler) Add(c *fiber.Ctx) error {
	var in dto.AddRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	batch, err := h.uc.Add(c.Context(), in)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"batch_id": batch.ID})
}

// Remove godoc
// @Summary      Registrar salida (consume lotes FIFO)
// @Tags         ledger
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RemoveRequest  true  "master_item_id, quantity > 0"
// @Success      200   {object}  dto.RemovalResultDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse  "INSUFFICIENT_INVENTORY con available"
// @Router       /api/ledger/remove [post]
func (h *LedgerHandler) Remove(c *fiber.Ctx) error {
	var in dto.RemoveRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	result, err := h.uc.Remove(c.Context(), in)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(result)
}

// Transactions godoc
// @Summary      Historial de transacciones del ledger
// @Tags         ledger
// @Produce      json
// @Param        start     query  string  false  "YYYY-MM-DD (defecto: hace 30 días)"
// @Param        end       query  string  false  "YYYY-MM-DD (defecto: hoy)"
// @Param        item_ids  query  string  false  "IDs separados por coma"
// @Param        limit     query  int     false  "máx 100"
// @Param        offset    query  int     false
// @Success      200  {array}   dto.TransactionDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/ledger/transactions [get]
func (h *LedgerHandler) Transactions(c *fiber.Ctx) error {
	start, end, err := parseDateRange(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "rango de fechas inválido"})
	}
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	txs, err := h.reports.Transactions(c.Context(), start, end, parseItemIDs(c), page)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(txs), "transactions": txs})
}

// parseDateRange lee start/end (YYYY-MM-DD). Defecto: últimos 30 días.
// end se extiende al final del día para que BETWEEN incluya esa fecha.
func parseDateRange(c *fiber.Ctx) (start, end time.Time, err error) {
	now := time.Now()
	end = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	start = end.AddDate(0, 0, -30)

	if s := c.Query("start"); s != "" {
		start, err = time.Parse("2006-01-02", s)
		if err != nil {
			return
		}
	}
	if e := c.Query("end"); e != "" {
		end, err = time.Parse("2006-01-02", e)
		if err != nil {
			return
		}
	}
	end = end.Add(24*time.Hour - time.Nanosecond)
	return
}

// parseItemIDs lee item_ids como lista separada por coma. Vacío = todos.
func parseItemIDs(c *fiber.Ctx) []string {
	raw := c.Query("item_ids")
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	ids := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			ids = append(ids, p)
		}
	}
	return ids
}
