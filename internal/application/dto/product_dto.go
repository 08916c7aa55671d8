package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto.
type CreateProductRequest struct {
	Code  string          `json:"code"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID        string          `json:"id"`
	CompanyID string          `json:"company_id"`
	Code      string          `json:"code"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// UpdatePriceRequest cambio directo del precio de un producto.
type UpdatePriceRequest struct {
	Price  decimal.Decimal `json:"price"`
	Reason *string         `json:"reason"`
	Notes  *string         `json:"notes"`
}

// UpdatePriceResponse producto actualizado y resultado de la auditoría.
type UpdatePriceResponse struct {
	Product       ProductResponse      `json:"product"`
	PreviousPrice decimal.Decimal      `json:"previous_price"`
	Changed       bool                 `json:"changed"`
	Audit         LogPriceChangeResult `json:"audit"`
}

// BulkPriceUpdateRequest ajuste porcentual masivo. ProductIDs vacío = todos los productos de la empresa.
type BulkPriceUpdateRequest struct {
	ProductIDs []string        `json:"product_ids"`
	Percentage decimal.Decimal `json:"percentage"` // +10 sube 10 %, -5 baja 5 %
	Decimals   *int32          `json:"decimals"`   // redondeo del precio resultante (default 2)
	Reason     *string         `json:"reason"`
}

// BulkPriceItem resultado por producto.
type BulkPriceItem struct {
	ProductID     string          `json:"product_id"`
	PreviousPrice decimal.Decimal `json:"previous_price"`
	NewPrice      decimal.Decimal `json:"new_price"`
	AlertCreated  bool            `json:"alert_created"`
}

// BulkPriceUpdateResponse resumen del ajuste masivo.
type BulkPriceUpdateResponse struct {
	Updated       int             `json:"updated"`
	Unchanged     int             `json:"unchanged"`
	AlertsCreated int             `json:"alerts_created"`
	Items         []BulkPriceItem `json:"items"`
}

// ImportRowError error de una línea del archivo importado.
type ImportRowError struct {
	Line    int    `json:"line"`
	Message string `json:"message"`
}

// ImportResultResponse resumen de la importación de precios.
type ImportResultResponse struct {
	Processed     int              `json:"processed"`
	Updated       int              `json:"updated"`
	Unchanged     int              `json:"unchanged"`
	AlertsCreated int              `json:"alerts_created"`
	Errors        []ImportRowError `json:"errors"`
}
