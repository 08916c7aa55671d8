package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/auditoria-precios/internal/domain/entity"
)

// SalesPriceListRepository listas de precios y sus ítems.
type SalesPriceListRepository interface {
	Create(ctx context.Context, list *entity.SalesPriceList) error
	GetByID(ctx context.Context, companyID, id string) (*entity.SalesPriceList, error)
	ListByCompany(ctx context.Context, companyID string) ([]*entity.SalesPriceList, error)
	Items(ctx context.Context, listID string) ([]entity.SalesPriceListItem, error)
	// SetItemPrice inserta o actualiza el precio del producto en la lista.
	// previous es nil cuando el producto no tenía precio en la lista.
	SetItemPrice(ctx context.Context, listID, productID string, price decimal.Decimal) (previous *decimal.Decimal, err error)
}
