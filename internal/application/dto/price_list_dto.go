package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreatePriceListRequest entrada para crear una lista de precios.
type CreatePriceListRequest struct {
	Name string `json:"name"`
}

// PriceListResponse lista de precios.
type PriceListResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// PriceListItemResponse precio de un producto en una lista.
type PriceListItemResponse struct {
	PriceListID string          `json:"price_list_id"`
	ProductID   string          `json:"product_id"`
	ProductCode string          `json:"product_code"`
	ProductName string          `json:"product_name"`
	Price       decimal.Decimal `json:"price"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// SetItemPriceRequest precio de un producto en la lista.
type SetItemPriceRequest struct {
	Price  decimal.Decimal `json:"price"`
	Reason *string         `json:"reason"`
	Notes  *string         `json:"notes"`
}

// SetItemPriceResponse resultado de la escritura y de la auditoría.
type SetItemPriceResponse struct {
	PriceListID   string               `json:"price_list_id"`
	ProductID     string               `json:"product_id"`
	PreviousPrice *decimal.Decimal     `json:"previous_price"`
	Price         decimal.Decimal      `json:"price"`
	Audit         LogPriceChangeResult `json:"audit"`
}
