package priceaudit

import "github.com/shopspring/decimal"

// PriceScale decimales que guarda la persistencia (NUMERIC(18, 4)).
const PriceScale int32 = 4

// RoundPrice lleva el precio a la escala almacenada. Toda comparación "cambió / no cambió"
// se hace sobre el valor ya redondeado.
func RoundPrice(p decimal.Decimal) decimal.Decimal {
	return p.Round(PriceScale)
}
