package report

import (
	"context"
	"time"

	"github.com/jhoicas/Lotes-api/internal/application/dto"
)

// ExpensePDFGenerator puerto para renderizar el reporte de gastos como PDF.
// El core entrega valores numéricos planos; símbolos de moneda y locale son
// responsabilidad de la capa de presentación.
type ExpensePDFGenerator interface {
	GenerateExpenseReportPDF(
		ctx context.Context,
		start, end time.Time,
		g Granularity,
		buckets []dto.ReportBucketDTO,
	) ([]byte, error)
}

// PDFUseCase arma el reporte de gastos y lo entrega renderizado como PDF.
type PDFUseCase struct {
	reports   *UseCase
	generator ExpensePDFGenerator
}

// NewPDFUseCase construye el caso de uso de exportación PDF.
func NewPDFUseCase(reports *UseCase, generator ExpensePDFGenerator) *PDFUseCase {
	return &PDFUseCase{reports: reports, generator: generator}
}

// ExpenseReportPDF genera el PDF del reporte de gastos del rango.
func (uc *PDFUseCase) ExpenseReportPDF(
	ctx context.Context,
	start, end time.Time,
	g Granularity,
) ([]byte, error) {
	buckets, err := uc.reports.ExpenseReport(ctx, start, end, g, nil)
	if err != nil {
		return nil, err
	}
	return uc.generator.GenerateExpenseReportPDF(ctx, start, end, g, buckets)
}
