package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Lotes-api/internal/application/dto"
	"github.com/jhoicas/Lotes-api/internal/application/report"
)

// ReportHandler maneja las consultas de reportes por período.
type ReportHandler struct {
	uc    *report.UseCase
	pdfUC *report.PDFUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *report.UseCase, pdfUC *report.PDFUseCase) *ReportHandler {
	return &ReportHandler{uc: uc, pdfUC: pdfUC}
}

// Expenses godoc
// @Summary      Reporte de gastos por período
// @Tags         reports
// @Produce      json
// @Param        start        query  string  false  "YYYY-MM-DD"
// @Param        end          query  string  false  "YYYY-MM-DD"
// @Param        granularity  query  string  false  "day|week|month|quarter|year (defecto month)"
// @Param        item_ids     query  string  false  "IDs separados por coma"
// @Success      200  {array}   dto.ReportBucketDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/expenses [get]
func (h *ReportHandler) Expenses(c *fiber.Ctx) error {
	start, end, err := parseDateRange(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "rango de fechas inválido"})
	}
	granularity, err := report.ParseGranularity(c.Query("granularity"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "granularidad inválida"})
	}
	buckets, err := h.uc.ExpenseReport(c.Context(), start, end, granularity, parseItemIDs(c))
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(buckets), "buckets": buckets})
}

// ExpensesPDF godoc
// @Summary      Reporte de gastos en PDF
// @Tags         reports
// @Produce      application/pdf
// @Param        start        query  string  false  "YYYY-MM-DD"
// @Param        end          query  string  false  "YYYY-MM-DD"
// @Param        granularity  query  string  false  "day|week|month|quarter|year"
// @Success      200  {file}    binary
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/expenses/pdf [get]
func (h *ReportHandler) ExpensesPDF(c *fiber.Ctx) error {
	start, end, err := parseDateRange(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "rango de fechas inválido"})
	}
	granularity, err := report.ParseGranularity(c.Query("granularity"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "granularidad inválida"})
	}
	bytes, err := h.pdfUC.ExpenseReportPDF(c.Context(), start, end, granularity)
	if err != nil {
		return mapDomainError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="reporte-gastos.pdf"`)
	return c.Send(bytes)
}

// Trends godoc
// @Summary      Tendencia semanal de consumo (solo salidas)
// @Tags         reports
// @Produce      json
// @Param        start  query  string  false  "YYYY-MM-DD"
// @Param        end    query  string  false  "YYYY-MM-DD"
// @Success      200  {array}   dto.TrendBucketDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/trends [get]
func (h *ReportHandler) Trends(c *fiber.Ctx) error {
	start, end, err := parseDateRange(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "rango de fechas inválido"})
	}
	buckets, err := h.uc.TrendReport(c.Context(), start, end)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(buckets), "trends": buckets})
}
