package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/auditoria-precios/internal/domain/entity"
)

// LogPriceChangeInput lo que un flujo de escritura entrega al motor de auditoría
// después de aceptar un precio distinto al almacenado.
type LogPriceChangeInput struct {
	ProductID        string
	CompanyID        string
	PreviousPrice    *decimal.Decimal
	NewPrice         decimal.Decimal
	SalesPriceListID *string
	ChangeSource     entity.ChangeSource
	CreatedByID      *string
	Reason           *string
	Notes            *string
}

// LogPriceChangeResult resultado del registro. Ante cualquier falla vale {"", false}.
type LogPriceChangeResult struct {
	LogID        string `json:"log_id"`
	AlertCreated bool   `json:"alert_created"`
}

// PriceChangeLogQuery parámetros crudos del reporte (se validan en el caso de uso).
type PriceChangeLogQuery struct {
	DateFrom         string `query:"date_from"`
	DateTo           string `query:"date_to"`
	MinChangePercent string `query:"min_change_percent"`
	Limit            string `query:"limit"`
	Offset           string `query:"offset"`
	Search           string `query:"search"`
	ProductID        string `query:"product_id"`
	ChangeSource     string `query:"change_source"`
}

// PriceChangeLogItem un registro del log en la respuesta JSON.
type PriceChangeLogItem struct {
	ID                string           `json:"id"`
	ProductID         string           `json:"product_id"`
	ProductName       string           `json:"product_name"`
	ProductCode       string           `json:"product_code"`
	PreviousPrice     *decimal.Decimal `json:"previous_price"`
	NewPrice          decimal.Decimal  `json:"new_price"`
	ChangePercentage  decimal.Decimal  `json:"change_percentage"`
	ChangeSource      string           `json:"change_source"`
	ChangeSourceLabel string           `json:"change_source_label"`
	SalesPriceListID  *string          `json:"sales_price_list_id,omitempty"`
	PriceListName     *string          `json:"price_list_name,omitempty"`
	Reason            *string          `json:"reason,omitempty"`
	Notes             *string          `json:"notes,omitempty"`
	CreatedByID       *string          `json:"created_by_id,omitempty"`
	CreatedByName     *string          `json:"created_by_name,omitempty"`
	CreatedAt         time.Time        `json:"created_at"`
}

// PriceChangeSummaryDTO resumen del conjunto filtrado.
type PriceChangeSummaryDTO struct {
	TotalChanges         int             `json:"total_changes"`
	AverageChangePercent decimal.Decimal `json:"average_change_percent"`
	Increases            int             `json:"increases"`
	Decreases            int             `json:"decreases"`
	SignificantChanges   int             `json:"significant_changes"`
}

// PriceChangeLogListResponse respuesta de GET /api/price-changes.
// Total y Summary.TotalChanges cuentan el conjunto ya filtrado por porcentaje mínimo;
// TotalInScope cuenta lo que devolvió la consulta antes de ese filtro.
type PriceChangeLogListResponse struct {
	Logs         []PriceChangeLogItem  `json:"logs"`
	Total        int                   `json:"total"`
	TotalInScope int                   `json:"total_in_scope"`
	Summary      PriceChangeSummaryDTO `json:"summary"`
	Limit        int                   `json:"limit"`
	Offset       int                   `json:"offset"`
}

// PriceStatsDTO estadísticas de precio de un producto.
type PriceStatsDTO struct {
	MinPrice     decimal.Decimal `json:"min_price"`
	MaxPrice     decimal.Decimal `json:"max_price"`
	AvgPrice     decimal.Decimal `json:"avg_price"`
	FirstRecord  time.Time       `json:"first_record"`
	LastRecord   time.Time       `json:"last_record"`
	TotalChanges int             `json:"total_changes"`
}

// ProductPriceHistoryResponse respuesta de GET /api/products/:id/price-history.
type ProductPriceHistoryResponse struct {
	ProductID string               `json:"product_id"`
	Logs      []PriceChangeLogItem `json:"logs"`
	Stats     *PriceStatsDTO       `json:"stats"`
}
