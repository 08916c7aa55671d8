package audit

import (
	"github.com/jhoicas/auditoria-precios/internal/application/dto"
	"github.com/jhoicas/auditoria-precios/internal/domain/entity"
	"github.com/jhoicas/auditoria-precios/internal/domain/priceaudit"
)

func toLogItem(l entity.PriceChangeLogDetail) dto.PriceChangeLogItem {
	return dto.PriceChangeLogItem{
		ID:                l.ID,
		ProductID:         l.ProductID,
		ProductName:       l.ProductName,
		ProductCode:       l.ProductCode,
		PreviousPrice:     l.PreviousPrice,
		NewPrice:          l.NewPrice,
		ChangePercentage:  l.ChangePercentage.Round(2),
		ChangeSource:      string(l.ChangeSource),
		ChangeSourceLabel: priceaudit.DisplaySourceLabel(string(l.ChangeSource)),
		SalesPriceListID:  l.SalesPriceListID,
		PriceListName:     l.PriceListName,
		Reason:            l.Reason,
		Notes:             l.Notes,
		CreatedByID:       l.CreatedByID,
		CreatedByName:     l.CreatedByName,
		CreatedAt:         l.CreatedAt,
	}
}

func toLogItems(rows []entity.PriceChangeLogDetail) []dto.PriceChangeLogItem {
	items := make([]dto.PriceChangeLogItem, 0, len(rows))
	for _, r := range rows {
		items = append(items, toLogItem(r))
	}
	return items
}

func toSummaryDTO(s priceaudit.Summary) dto.PriceChangeSummaryDTO {
	return dto.PriceChangeSummaryDTO{
		TotalChanges:         s.TotalChanges,
		AverageChangePercent: s.AverageChangePercent.Round(2),
		Increases:            s.Increases,
		Decreases:            s.Decreases,
		SignificantChanges:   s.SignificantChanges,
	}
}

func toAlertResponse(a *entity.PriceAlert) dto.PriceAlertResponse {
	return dto.PriceAlertResponse{
		ID:               a.ID,
		ProductID:        a.ProductID,
		LogID:            a.LogID,
		Severity:         string(a.Severity),
		ChangePercent:    a.ChangePercent.Round(2),
		ThresholdPercent: a.ThresholdPercent,
		PreviousPrice:    a.PreviousPrice,
		NewPrice:         a.NewPrice,
		Read:             a.ReadAt != nil,
		ReadAt:           a.ReadAt,
		CreatedAt:        a.CreatedAt,
	}
}

// withPercentages completa el porcentaje con signo, que nunca se persiste.
func withPercentages(rows []entity.PriceChangeLogDetail) {
	for i := range rows {
		rows[i].ChangePercentage = priceaudit.ChangePercentage(rows[i].PreviousPrice, rows[i].NewPrice)
	}
}
