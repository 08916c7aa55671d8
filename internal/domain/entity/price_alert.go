package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Severity nivel de una alerta de precio.
type Severity string

const (
	SeverityMedia   Severity = "MEDIA"
	SeverityAlta    Severity = "ALTA"
	SeverityCritica Severity = "CRITICA"
)

// PriceAlert alerta generada cuando un cambio supera el umbral de la empresa.
type PriceAlert struct {
	ID               string
	CompanyID        string
	ProductID        string
	LogID            string
	Severity         Severity
	ChangePercent    decimal.Decimal // valor absoluto
	ThresholdPercent decimal.Decimal
	PreviousPrice    decimal.Decimal
	NewPrice         decimal.Decimal
	ReadAt           *time.Time
	CreatedAt        time.Time
}

// PriceAlertSettings configuración de alertas por empresa.
type PriceAlertSettings struct {
	CompanyID        string
	ThresholdPercent decimal.Decimal
	Enabled          bool
	UpdatedAt        time.Time
}
