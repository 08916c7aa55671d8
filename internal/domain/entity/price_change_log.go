package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ChangeSource identifica el flujo que originó un cambio de precio.
// Los cuatro valores son el contrato con los llamadores del lado de escritura.
type ChangeSource string

const (
	ChangeSourcePriceList     ChangeSource = "PRICE_LIST"
	ChangeSourceProductDirect ChangeSource = "PRODUCT_DIRECT"
	ChangeSourceBulkUpdate    ChangeSource = "BULK_UPDATE"
	ChangeSourceImport        ChangeSource = "IMPORT"
)

// Valid informa si el origen es uno de los cuatro valores aceptados.
func (s ChangeSource) Valid() bool {
	switch s {
	case ChangeSourcePriceList, ChangeSourceProductDirect, ChangeSourceBulkUpdate, ChangeSourceImport:
		return true
	}
	return false
}

// PriceChangeLog registro inmutable de un cambio de precio aceptado (auditoría).
// Se crea una sola vez por escritura con precio distinto; nunca se actualiza ni se elimina.
type PriceChangeLog struct {
	ID               string
	CompanyID        string
	ProductID        string
	PreviousPrice    *decimal.Decimal // nil en el primer precio del producto
	NewPrice         decimal.Decimal  // siempre >= 0
	SalesPriceListID *string          // solo cuando el origen es PRICE_LIST
	ChangeSource     ChangeSource
	Reason           *string
	Notes            *string
	CreatedByID      *string
	CreatedAt        time.Time
}

// PriceChangeLogDetail log enriquecido para reportes: nombres de las entidades relacionadas
// y el porcentaje de cambio con signo (derivado, no persistido).
type PriceChangeLogDetail struct {
	PriceChangeLog
	ProductName      string
	ProductCode      string
	PriceListName    *string
	CreatedByName    *string
	ChangePercentage decimal.Decimal
}
