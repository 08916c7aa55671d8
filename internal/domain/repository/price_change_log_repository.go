package repository

import (
	"context"
	"time"

	"github.com/jhoicas/auditoria-precios/internal/domain/entity"
)

// PriceChangeLogFilter filtros que la persistencia sí resuelve en la consulta.
// El filtro por porcentaje mínimo se aplica después, en memoria.
type PriceChangeLogFilter struct {
	From      *time.Time // inclusivo
	To        *time.Time // inclusivo
	Search    string     // nombre o código de producto, motivo
	ProductID string
	Source    entity.ChangeSource
	MaxRows   int // tope de seguridad; 0 = sin tope
}

// PriceChangeLogRepository puerto de persistencia del log de cambios de precio.
// Solo inserta y lee: el log es inmutable.
type PriceChangeLogRepository interface {
	Create(ctx context.Context, log *entity.PriceChangeLog) error

	// List devuelve los logs de la empresa que cumplen el filtro, del más reciente al más antiguo,
	// con los nombres de producto, lista y usuario ya resueltos.
	List(ctx context.Context, companyID string, f PriceChangeLogFilter) ([]entity.PriceChangeLogDetail, error)

	// ListByProduct devuelve hasta limit logs de un producto, del más reciente al más antiguo.
	ListByProduct(ctx context.Context, companyID, productID string, limit int) ([]entity.PriceChangeLogDetail, error)
}
