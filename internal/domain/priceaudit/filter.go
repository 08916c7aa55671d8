package priceaudit

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/auditoria-precios/internal/domain"
	"github.com/jhoicas/auditoria-precios/internal/domain/entity"
)

const (
	DefaultLimit = 100
	MaxLimit     = 500

	// endOfDaySuffix se concatena a la fecha final para incluir el día completo en UTC,
	// sin importar la zona horaria del cliente.
	endOfDaySuffix = "T23:59:59.999Z"
)

// DateRange rango de fechas inclusivo. Un extremo nil no filtra.
type DateRange struct {
	GTE *time.Time
	LTE *time.Time
}

// BuildDateFilter construye el rango de consulta. Devuelve nil si no hay ningún extremo.
// dateFrom se interpreta tal cual (una fecha sola es medianoche UTC); dateTo se extiende
// hasta 23:59:59.999 UTC del mismo día.
func BuildDateFilter(dateFrom, dateTo string) (*DateRange, error) {
	dateFrom, dateTo = strings.TrimSpace(dateFrom), strings.TrimSpace(dateTo)
	if dateFrom == "" && dateTo == "" {
		return nil, nil
	}
	r := &DateRange{}
	if dateFrom != "" {
		from, err := parseDate(dateFrom)
		if err != nil {
			return nil, fmt.Errorf("%w: date_from %q", domain.ErrInvalidInput, dateFrom)
		}
		r.GTE = &from
	}
	if dateTo != "" {
		to, err := time.Parse(time.RFC3339Nano, dateTo+endOfDaySuffix)
		if err != nil {
			return nil, fmt.Errorf("%w: date_to %q", domain.ErrInvalidInput, dateTo)
		}
		r.LTE = &to
	}
	return r, nil
}

func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339Nano, s)
}

// Contains informa si t cae dentro del rango.
func (r *DateRange) Contains(t time.Time) bool {
	if r == nil {
		return true
	}
	if r.GTE != nil && t.Before(*r.GTE) {
		return false
	}
	if r.LTE != nil && t.After(*r.LTE) {
		return false
	}
	return true
}

// FilterByMinChange conserva los logs con |cambio| >= minChangePercent.
// Si el parámetro viene vacío devuelve la misma colección. Se aplica en memoria sobre
// un conjunto ya recuperado.
func FilterByMinChange(logs []entity.PriceChangeLogDetail, minChangePercent string) ([]entity.PriceChangeLogDetail, error) {
	raw := strings.TrimSpace(minChangePercent)
	if raw == "" {
		return logs, nil
	}
	minPct, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: min_change_percent %q", domain.ErrInvalidInput, raw)
	}
	out := make([]entity.PriceChangeLogDetail, 0, len(logs))
	for _, l := range logs {
		if l.ChangePercentage.Abs().GreaterThanOrEqual(minPct) {
			out = append(out, l)
		}
	}
	return out, nil
}

// ClampLimit normaliza el tamaño de página: 100 por defecto, máximo 500.
// Valores no numéricos o menores a 1 usan el valor por defecto.
func ClampLimit(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 {
		return DefaultLimit
	}
	return min(n, MaxLimit)
}

// ClampOffset normaliza el desplazamiento; inválido o negativo => 0.
func ClampOffset(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 0 {
		return 0
	}
	return n
}
