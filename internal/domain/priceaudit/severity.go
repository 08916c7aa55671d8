package priceaudit

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/auditoria-precios/internal/domain/entity"
)

// DefaultThresholdPercent umbral de alerta cuando la empresa no configuró uno.
var DefaultThresholdPercent = decimal.NewFromInt(20)

var two = decimal.NewFromInt(2)

// GradeSeverity clasifica el cambio en tres niveles. Se evalúa de mayor a menor umbral:
// el límite 2x pertenece a CRITICA y el límite 1x pertenece a ALTA.
func GradeSeverity(changePercent, thresholdPercent decimal.Decimal) entity.Severity {
	switch {
	case changePercent.GreaterThanOrEqual(thresholdPercent.Mul(two)):
		return entity.SeverityCritica
	case changePercent.GreaterThanOrEqual(thresholdPercent):
		return entity.SeverityAlta
	default:
		return entity.SeverityMedia
	}
}
