// Package xlsx genera el reporte de auditoría de precios como libro de Excel.
package xlsx

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/auditoria-precios/internal/application/audit"
	"github.com/jhoicas/auditoria-precios/internal/domain/entity"
	"github.com/jhoicas/auditoria-precios/internal/domain/priceaudit"
)

var _ audit.ReportRenderer = (*ExcelizeReportGenerator)(nil)

const (
	SheetChanges = "Cambios"
	SheetSummary = "Resumen"
)

// Columnas numéricas dentro de priceaudit.CSVColumns (1-based, como excelize).
const (
	colPrevious = 4
	colNew      = 5
	colPercent  = 6
)

var (
	moneyFormat   = "#,##0.00"
	percentFormat = `0.0"%"`
)

// ExcelizeReportGenerator hoja "Cambios" con las mismas columnas del CSV (precios y % como números)
// y hoja "Resumen" con el agregado.
type ExcelizeReportGenerator struct{}

func NewExcelizeReportGenerator() *ExcelizeReportGenerator { return &ExcelizeReportGenerator{} }

func (g *ExcelizeReportGenerator) Render(ctx context.Context, r audit.Report) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", SheetChanges); err != nil {
		return nil, fmt.Errorf("xlsx: renombrar hoja: %w", err)
	}
	styles, err := newStyles(f)
	if err != nil {
		return nil, err
	}

	if err := writeChanges(ctx, f, styles, r.Rows); err != nil {
		return nil, err
	}
	if err := writeSummary(f, styles, r); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx: escribir libro: %w", err)
	}
	return buf.Bytes(), nil
}

type sheetStyles struct {
	header  int
	money   int
	percent int
}

func newStyles(f *excelize.File) (sheetStyles, error) {
	var s sheetStyles
	var err error
	s.header, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"00467F"}, Pattern: 1},
	})
	if err != nil {
		return s, fmt.Errorf("xlsx: estilo cabecera: %w", err)
	}
	s.money, err = f.NewStyle(&excelize.Style{CustomNumFmt: &moneyFormat})
	if err != nil {
		return s, fmt.Errorf("xlsx: estilo moneda: %w", err)
	}
	s.percent, err = f.NewStyle(&excelize.Style{CustomNumFmt: &percentFormat})
	if err != nil {
		return s, fmt.Errorf("xlsx: estilo porcentaje: %w", err)
	}
	return s, nil
}

func writeChanges(ctx context.Context, f *excelize.File, st sheetStyles, rows []entity.PriceChangeLogDetail) error {
	header := make([]interface{}, 0, len(priceaudit.CSVColumns))
	for _, c := range priceaudit.CSVColumns {
		header = append(header, c)
	}
	if err := f.SetSheetRow(SheetChanges, "A1", &header); err != nil {
		return fmt.Errorf("xlsx: cabecera: %w", err)
	}
	lastCol, _ := excelize.ColumnNumberToName(len(priceaudit.CSVColumns))
	if err := f.SetCellStyle(SheetChanges, "A1", lastCol+"1", st.header); err != nil {
		return fmt.Errorf("xlsx: estilo cabecera: %w", err)
	}

	for i, l := range rows {
		if i%500 == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		line := i + 2
		cell, _ := excelize.CoordinatesToCellName(1, line)
		values := rowValues(l)
		if err := f.SetSheetRow(SheetChanges, cell, &values); err != nil {
			return fmt.Errorf("xlsx: fila %d: %w", line, err)
		}
	}

	if n := len(rows); n > 0 {
		last := n + 1
		if err := styleColumn(f, colPrevious, last, st.money); err != nil {
			return err
		}
		if err := styleColumn(f, colNew, last, st.money); err != nil {
			return err
		}
		if err := styleColumn(f, colPercent, last, st.percent); err != nil {
			return err
		}
	}

	if err := f.SetColWidth(SheetChanges, "A", "A", 20); err != nil {
		return fmt.Errorf("xlsx: ancho columnas: %w", err)
	}
	if err := f.SetColWidth(SheetChanges, "B", lastCol, 16); err != nil {
		return fmt.Errorf("xlsx: ancho columnas: %w", err)
	}
	if err := f.SetPanes(SheetChanges, &excelize.Panes{
		Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft",
	}); err != nil {
		return fmt.Errorf("xlsx: fijar cabecera: %w", err)
	}
	return f.AutoFilter(SheetChanges, fmt.Sprintf("A1:%s%d", lastCol, len(rows)+1), nil)
}

// rowValues igual que priceaudit.RowCells salvo precios y porcentaje, que van como números.
func rowValues(l entity.PriceChangeLogDetail) []interface{} {
	cells := priceaudit.RowCells(l)
	values := make([]interface{}, len(cells))
	for i, c := range cells {
		values[i] = c
	}
	if l.PreviousPrice != nil {
		values[colPrevious-1] = l.PreviousPrice.InexactFloat64()
	}
	values[colNew-1] = l.NewPrice.InexactFloat64()
	values[colPercent-1] = l.ChangePercentage.Round(1).InexactFloat64()
	return values
}

func styleColumn(f *excelize.File, col, lastRow, style int) error {
	name, err := excelize.ColumnNumberToName(col)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(SheetChanges, name+"2", fmt.Sprintf("%s%d", name, lastRow), style); err != nil {
		return fmt.Errorf("xlsx: estilo columna %s: %w", name, err)
	}
	return nil
}

func writeSummary(f *excelize.File, st sheetStyles, r audit.Report) error {
	if _, err := f.NewSheet(SheetSummary); err != nil {
		return fmt.Errorf("xlsx: hoja resumen: %w", err)
	}
	s := r.Summary
	rows := [][]interface{}{
		{"Indicador", "Valor"},
		{"Generado", r.GeneratedAt.Format("2006-01-02 15:04:05")},
		{"Desde", r.DateFrom},
		{"Hasta", r.DateTo},
		{"Total de cambios", s.TotalChanges},
		{"Cambio promedio %", s.AverageChangePercent.Round(2).InexactFloat64()},
		{"Alzas", s.Increases},
		{"Bajas", s.Decreases},
		{"Cambios significativos (>= " + priceaudit.SignificantChangePercent.String() + "%)", s.SignificantChanges},
	}
	for i := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(SheetSummary, cell, &rows[i]); err != nil {
			return fmt.Errorf("xlsx: resumen: %w", err)
		}
	}
	if err := f.SetCellStyle(SheetSummary, "A1", "B1", st.header); err != nil {
		return fmt.Errorf("xlsx: estilo resumen: %w", err)
	}
	return f.SetColWidth(SheetSummary, "A", "A", 36)
}
