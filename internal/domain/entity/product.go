package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product producto con precio de venta vigente. Cada cambio de Price deja un PriceChangeLog.
type Product struct {
	ID        string
	CompanyID string
	Code      string // código único por empresa
	Name      string
	Price     decimal.Decimal
	CreatedAt time.Time
	UpdatedAt time.Time
}
