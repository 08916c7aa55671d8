package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// SalesPriceList lista de precios de venta (mayorista, distribuidor, etc.).
type SalesPriceList struct {
	ID        string
	CompanyID string
	Name      string
	CreatedAt time.Time
}

// SalesPriceListItem precio de un producto dentro de una lista.
type SalesPriceListItem struct {
	PriceListID string
	ProductID   string
	ProductCode string
	ProductName string
	Price       decimal.Decimal
	UpdatedAt   time.Time
}
