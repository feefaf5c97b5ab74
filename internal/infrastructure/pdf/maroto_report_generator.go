// Package pdf implementa la exportación del reporte de gastos a PDF con
// Maroto v2: encabezado con el rango y la granularidad, tabla de buckets y
// fila de totales. Los montos se imprimen como números planos; el símbolo de
// moneda y el locale son de la capa de presentación.
package pdf

import (
	"context"
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Lotes-api/internal/application/dto"
	"github.com/jhoicas/Lotes-api/internal/application/report"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// Ensure MarotoReportGenerator implements report.ExpensePDFGenerator.
var _ report.ExpensePDFGenerator = (*MarotoReportGenerator)(nil)

// MarotoReportGenerator renderiza el reporte de gastos usando Maroto v2.
type MarotoReportGenerator struct{}

// NewMarotoReportGenerator construye el generador.
func NewMarotoReportGenerator() *MarotoReportGenerator { return &MarotoReportGenerator{} }

// GenerateExpenseReportPDF genera el PDF del reporte y devuelve sus bytes.
func (g *MarotoReportGenerator) GenerateExpenseReportPDF(
	_ context.Context,
	start, end time.Time,
	granularity report.Granularity,
	buckets []dto.ReportBucketDTO,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte de gastos de inventario", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(start, end, granularity))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(tableHeaderRow())
	for _, b := range buckets {
		m.AddRows(bucketRow(b))
	}
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(buckets))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("generar PDF del reporte: %w", err)
	}
	return doc.GetBytes(), nil
}

func headerRow(start, end time.Time, granularity report.Granularity) core.Row {
	return row.New(12).Add(
		col.New(8).Add(
			text.New("Reporte de gastos de inventario", props.Text{
				Size: 14, Style: fontstyle.Bold, Color: colorPrimary,
			}),
			text.New(fmt.Sprintf("Del %s al %s", start.Format("2006-01-02"), end.Format("2006-01-02")), props.Text{
				Top: 6, Size: 8, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New(fmt.Sprintf("Granularidad: %s", granularity), props.Text{
				Size: 9, Align: align.Right, Color: colorGray,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	header := props.Text{Size: 8, Style: fontstyle.Bold, Color: colorPrimary}
	headerRight := props.Text{Size: 8, Style: fontstyle.Bold, Color: colorPrimary, Align: align.Right}
	return row.New(7).Add(
		col.New(2).Add(text.New("Período", header)),
		col.New(2).Add(text.New("Cant. entrada", headerRight)),
		col.New(2).Add(text.New("Valor entrada", headerRight)),
		col.New(2).Add(text.New("Cant. salida", headerRight)),
		col.New(2).Add(text.New("Valor salida", headerRight)),
		col.New(2).Add(text.New("Gasto neto", headerRight)),
	)
}

func bucketRow(b dto.ReportBucketDTO) core.Row {
	cell := props.Text{Size: 8}
	cellRight := props.Text{Size: 8, Align: align.Right}
	return row.New(6).Add(
		col.New(2).Add(text.New(b.PeriodKey, cell)),
		col.New(2).Add(text.New(b.IncomingQuantity.String(), cellRight)),
		col.New(2).Add(text.New(b.IncomingValue.StringFixed(2), cellRight)),
		col.New(2).Add(text.New(b.OutgoingQuantity.String(), cellRight)),
		col.New(2).Add(text.New(b.OutgoingValue.StringFixed(2), cellRight)),
		col.New(2).Add(text.New(b.NetExpense.StringFixed(2), cellRight)),
	)
}

func totalsRow(buckets []dto.ReportBucketDTO) core.Row {
	incoming := decimal.Zero
	outgoing := decimal.Zero
	for _, b := range buckets {
		incoming = incoming.Add(b.IncomingValue)
		outgoing = outgoing.Add(b.OutgoingValue)
	}
	bold := props.Text{Size: 9, Style: fontstyle.Bold}
	boldRight := props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right}
	return row.New(8).Add(
		col.New(4).Add(text.New("TOTALES", bold)),
		col.New(2).Add(text.New(incoming.StringFixed(2), boldRight)),
		col.New(2),
		col.New(2).Add(text.New(outgoing.StringFixed(2), boldRight)),
		col.New(2).Add(text.New(outgoing.Sub(incoming).StringFixed(2), boldRight)),
	)
}
