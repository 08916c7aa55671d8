package xlsx_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/auditoria-precios/internal/application/audit"
	"github.com/jhoicas/auditoria-precios/internal/domain/entity"
	"github.com/jhoicas/auditoria-precios/internal/domain/priceaudit"
	"github.com/jhoicas/auditoria-precios/internal/infrastructure/xlsx"
)

func TestExcelizeReportGenerator_Render(t *testing.T) {
	prev := decimal.NewFromInt(100)
	list := "Mayorista"
	rows := []entity.PriceChangeLogDetail{
		{
			PriceChangeLog: entity.PriceChangeLog{
				ID: "l1", PreviousPrice: &prev, NewPrice: decimal.NewFromInt(125),
				ChangeSource: entity.ChangeSourcePriceList, CreatedAt: time.Date(2024, 5, 2, 9, 30, 0, 0, time.UTC),
			},
			ProductName: "Arroz", ProductCode: "ARR-1", PriceListName: &list, ChangePercentage: decimal.NewFromInt(25),
		},
		{
			PriceChangeLog: entity.PriceChangeLog{
				ID: "l2", NewPrice: decimal.NewFromInt(50),
				ChangeSource: entity.ChangeSourceProductDirect, CreatedAt: time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC),
			},
			ProductName: "Sal", ProductCode: "SAL-1",
		},
	}

	out, err := xlsx.NewExcelizeReportGenerator().Render(context.Background(), audit.Report{
		GeneratedAt: time.Now(),
		Rows:        rows,
		Summary:     priceaudit.Summarize(rows),
	})
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer f.Close()

	got, err := f.GetRows(xlsx.SheetChanges)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, priceaudit.CSVColumns, got[0])
	assert.Equal(t, "2024-05-02 09:30:00", got[1][0])
	assert.Equal(t, "Arroz", got[1][1])
	assert.Equal(t, "Lista de Precios", got[1][6])
	assert.Equal(t, "Mayorista", got[1][7])
	assert.Equal(t, "-", got[2][3])
	assert.Equal(t, "-", got[2][8])

	total, err := f.GetCellValue(xlsx.SheetSummary, "B5")
	require.NoError(t, err)
	assert.Equal(t, "2", total)
}
