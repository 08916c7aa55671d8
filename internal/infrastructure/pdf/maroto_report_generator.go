// Package pdf genera el reporte de auditoría de cambios de precio en PDF.
//
// Layout de la página A4 horizontal:
//
//	┌──────────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + empresa           │  Generado / Rango de fechas  │
//	│  ──────────────────────────────────────────────────────────────  │
//	│  RESUMEN: cambios / promedio % / alzas / bajas / significativos  │
//	│  ──────────────────────────────────────────────────────────────  │
//	│  TABLA (se repite en cada página): mismas columnas que el CSV    │
//	└──────────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/auditoria-precios/internal/application/audit"
	"github.com/jhoicas/auditoria-precios/internal/domain/priceaudit"
)

var _ audit.ReportRenderer = (*MarotoReportGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorStripe  = &props.Color{Red: 240, Green: 244, Blue: 248}
)

// columnas de la grilla (12) para las 10 celdas de priceaudit.RowCells.
var columnSizes = []int{2, 2, 1, 1, 1, 1, 1, 1, 1, 1}

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoReportGenerator implementa audit.ReportRenderer usando Maroto v2.
type MarotoReportGenerator struct{}

// NewMarotoReportGenerator construye el generador.
func NewMarotoReportGenerator() *MarotoReportGenerator { return &MarotoReportGenerator{} }

// Render genera el PDF y devuelve sus bytes.
func (g *MarotoReportGenerator) Render(ctx context.Context, r audit.Report) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithOrientation(orientation.Horizontal).
		WithLeftMargin(8).WithRightMargin(8).
		WithTopMargin(8).WithBottomMargin(8).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 7}).
		WithTitle("Auditoría de cambios de precio", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(r))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(summaryRow(r.Summary))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for i, l := range r.Rows {
		if i%200 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		m.AddRows(tableRow(priceaudit.RowCells(l), i%2 == 1))
	}
	if len(r.Rows) == 0 {
		m.AddRows(row.New(10).Add(col.New(12).Add(
			text.New("Sin cambios de precio para los filtros indicados.", props.Text{
				Size: 9, Align: align.Center, Color: colorGray, Top: 3,
			}),
		)))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar reporte: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(r audit.Report) core.Row {
	rango := fmt.Sprintf("Desde: %s   Hasta: %s", nonEmpty(r.DateFrom, "inicio"), nonEmpty(r.DateTo, "hoy"))
	return row.New(16).Add(
		col.New(7).Add(
			text.New("AUDITORÍA DE CAMBIOS DE PRECIO", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Empresa: "+r.CompanyID, props.Text{
				Size: 8, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("Generado: "+r.GeneratedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 2, Color: colorGray,
			}),
			text.New(rango, props.Text{
				Size: 8, Align: align.Right, Top: 8, Color: colorGray,
			}),
		),
	)
}

func summaryRow(s priceaudit.Summary) core.Row {
	cell := func(label, value string) core.Col {
		return col.New(2).Add(
			text.New(label, props.Text{Size: 7, Color: colorGray, Top: 1}),
			text.New(value, props.Text{Style: fontstyle.Bold, Size: 11, Color: colorPrimary, Top: 5}),
		)
	}
	return row.New(14).Add(
		cell("Cambios", strconv.Itoa(s.TotalChanges)),
		cell("Cambio promedio", s.AverageChangePercent.StringFixed(2)+"%"),
		cell("Alzas", strconv.Itoa(s.Increases)),
		cell("Bajas", strconv.Itoa(s.Decreases)),
		cell(fmt.Sprintf("Cambios >= %s%%", priceaudit.SignificantChangePercent.String()), strconv.Itoa(s.SignificantChanges)),
		col.New(2),
	)
}

func tableHeaderRow() core.Row {
	cols := make([]core.Col, 0, len(columnSizes))
	for i, label := range priceaudit.CSVColumns {
		cols = append(cols, col.New(columnSizes[i]).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 7, Color: colorPrimary, Top: 1.5, Left: 1,
		})))
	}
	return row.New(7).Add(cols...)
}

func tableRow(cells []string, striped bool) core.Row {
	cols := make([]core.Col, 0, len(cells))
	for i, c := range cells {
		a := align.Left
		if i >= 3 && i <= 5 {
			a = align.Right
		}
		cols = append(cols, col.New(columnSizes[i]).Add(text.New(c, props.Text{
			Size: 6.5, Align: a, Top: 1, Left: 1, Right: 1,
		})))
	}
	r := row.New(6).Add(cols...)
	if striped {
		r = r.WithStyle(&props.Cell{BackgroundColor: colorStripe})
	}
	return r
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
