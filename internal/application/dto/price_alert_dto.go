package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// PriceAlertResponse alerta de precio.
type PriceAlertResponse struct {
	ID               string          `json:"id"`
	ProductID        string          `json:"product_id"`
	LogID            string          `json:"log_id"`
	Severity         string          `json:"severity"`
	ChangePercent    decimal.Decimal `json:"change_percent"`
	ThresholdPercent decimal.Decimal `json:"threshold_percent"`
	PreviousPrice    decimal.Decimal `json:"previous_price"`
	NewPrice         decimal.Decimal `json:"new_price"`
	Read             bool            `json:"read"`
	ReadAt           *time.Time      `json:"read_at,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
}

// PriceAlertListResponse lista paginada de alertas.
type PriceAlertListResponse struct {
	Items []PriceAlertResponse `json:"items"`
	Page  PageResponse         `json:"page"`
}

// AlertSettingsResponse umbral vigente de la empresa.
type AlertSettingsResponse struct {
	ThresholdPercent decimal.Decimal `json:"threshold_percent"`
	Enabled          bool            `json:"enabled"`
	IsDefault        bool            `json:"is_default"`
}

// UpdateAlertSettingsRequest cambio de umbral (campos opcionales).
type UpdateAlertSettingsRequest struct {
	ThresholdPercent *decimal.Decimal `json:"threshold_percent"`
	Enabled          *bool            `json:"enabled"`
}
