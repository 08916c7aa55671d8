package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/auditoria-precios/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, companyID, id string) (*entity.Product, error)
	GetByCompanyAndCode(ctx context.Context, companyID, code string) (*entity.Product, error)
	ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Product, error)
	// ListForUpdate devuelve los productos indicados (o todos si ids está vacío) bloqueados para escritura.
	ListForUpdate(ctx context.Context, companyID string, ids []string) ([]*entity.Product, error)
	// SetPrice escribe el nuevo precio y devuelve el anterior de forma atómica.
	// domain.ErrNotFound si el producto no existe en la empresa.
	SetPrice(ctx context.Context, companyID, productID string, price decimal.Decimal) (previous decimal.Decimal, err error)
}
