// Package priceaudit reúne las reglas puras de auditoría de precios: clasificación del
// cambio, severidad de la alerta, agregados para reportes, filtros y formato CSV.
// No hace I/O; los casos de uso en application/audit la orquestan.
package priceaudit

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// AlertDecision resultado del clasificador de cambios.
type AlertDecision struct {
	ShouldAlert   bool
	ChangePercent decimal.Decimal // valor absoluto
}

// ShouldAlert decide si un cambio de precio amerita alerta.
// Sin precio anterior positivo no hay base de comparación: {false, 0}.
// El umbral es inclusivo: un cambio exactamente igual al umbral alerta.
func ShouldAlert(previous *decimal.Decimal, newPrice, thresholdPercent decimal.Decimal) AlertDecision {
	if previous == nil || !previous.IsPositive() {
		return AlertDecision{ChangePercent: decimal.Zero}
	}
	pct := ChangePercentage(previous, newPrice).Abs()
	return AlertDecision{
		ShouldAlert:   pct.GreaterThanOrEqual(thresholdPercent),
		ChangePercent: pct,
	}
}

// ChangePercentage porcentaje de cambio con signo: (nuevo - anterior) / anterior * 100.
// Devuelve 0 si no hay precio anterior o si es <= 0.
func ChangePercentage(previous *decimal.Decimal, newPrice decimal.Decimal) decimal.Decimal {
	if previous == nil || !previous.IsPositive() {
		return decimal.Zero
	}
	return newPrice.Sub(*previous).Mul(hundred).Div(*previous)
}
