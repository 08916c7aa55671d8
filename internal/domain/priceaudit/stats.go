package priceaudit

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/auditoria-precios/internal/domain/entity"
)

// SignificantChangePercent umbral fijo de "cambio significativo" en los resúmenes.
// Es independiente del umbral de alertas configurable.
var SignificantChangePercent = decimal.NewFromInt(20)

// Stats estadísticas de precio de un producto.
//
// FirstRecord es la fecha del último elemento de la secuencia (el más antiguo) y
// LastRecord la del primero (el más reciente). Los nombres se conservan así por
// compatibilidad con los consumidores existentes.
type Stats struct {
	MinPrice     decimal.Decimal
	MaxPrice     decimal.Decimal
	AvgPrice     decimal.Decimal
	FirstRecord  time.Time
	LastRecord   time.Time
	TotalChanges int
}

// ComputeStats reduce los logs (ordenados del más reciente al más antiguo) a min/max/promedio
// de NewPrice. Devuelve nil si no hay logs.
func ComputeStats(logs []entity.PriceChangeLog) *Stats {
	if len(logs) == 0 {
		return nil
	}
	minPrice, maxPrice := logs[0].NewPrice, logs[0].NewPrice
	sum := decimal.Zero
	for _, l := range logs {
		if l.NewPrice.LessThan(minPrice) {
			minPrice = l.NewPrice
		}
		if l.NewPrice.GreaterThan(maxPrice) {
			maxPrice = l.NewPrice
		}
		sum = sum.Add(l.NewPrice)
	}
	return &Stats{
		MinPrice:     minPrice,
		MaxPrice:     maxPrice,
		AvgPrice:     sum.Div(decimal.NewFromInt(int64(len(logs)))),
		FirstRecord:  logs[len(logs)-1].CreatedAt,
		LastRecord:   logs[0].CreatedAt,
		TotalChanges: len(logs),
	}
}

// Summary resumen de un conjunto de cambios para el tablero de auditoría.
type Summary struct {
	TotalChanges         int
	AverageChangePercent decimal.Decimal
	Increases            int
	Decreases            int
	SignificantChanges   int
}

// Summarize agrega los cambios ya filtrados. Un cambio de 0 % no cuenta como alza ni baja.
func Summarize(logs []entity.PriceChangeLogDetail) Summary {
	s := Summary{TotalChanges: len(logs), AverageChangePercent: decimal.Zero}
	if len(logs) == 0 {
		return s
	}
	sum := decimal.Zero
	for _, l := range logs {
		pct := l.ChangePercentage
		sum = sum.Add(pct)
		switch {
		case pct.IsPositive():
			s.Increases++
		case pct.IsNegative():
			s.Decreases++
		}
		if pct.Abs().GreaterThanOrEqual(SignificantChangePercent) {
			s.SignificantChanges++
		}
	}
	s.AverageChangePercent = sum.Div(decimal.NewFromInt(int64(len(logs))))
	return s
}
