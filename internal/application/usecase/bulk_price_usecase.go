package usecase

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/auditoria-precios/internal/application/dto"
	"github.com/jhoicas/auditoria-precios/internal/domain"
	"github.com/jhoicas/auditoria-precios/internal/domain/entity"
	"github.com/jhoicas/auditoria-precios/internal/domain/priceaudit"
	"github.com/jhoicas/auditoria-precios/internal/domain/repository"
)

var (
	hundred           = decimal.NewFromInt(100)
	minBulkPercentage = decimal.NewFromInt(-100)
)

const defaultPriceDecimals int32 = 2

// BulkPriceUseCase ajuste porcentual de precios sobre varios productos.
// Los precios se escriben en una sola transacción; la auditoría se hace después del commit
// para que una falla del log no revierta el ajuste.
type BulkPriceUseCase struct {
	tx      PricingTxRunner
	auditor PriceAuditor
}

// NewBulkPriceUseCase construye el caso de uso.
func NewBulkPriceUseCase(tx PricingTxRunner, auditor PriceAuditor) *BulkPriceUseCase {
	return &BulkPriceUseCase{tx: tx, auditor: auditor}
}

type bulkChange struct {
	productID string
	previous  decimal.Decimal
	next      decimal.Decimal
}

// Apply aplica el porcentaje. ProductIDs vacío = todos los productos de la empresa.
func (uc *BulkPriceUseCase) Apply(ctx context.Context, companyID, userID string, in dto.BulkPriceUpdateRequest) (*dto.BulkPriceUpdateResponse, error) {
	if in.Percentage.IsZero() || in.Percentage.LessThan(minBulkPercentage) {
		return nil, fmt.Errorf("%w: percentage debe ser distinto de 0 y mayor o igual a -100", domain.ErrInvalidInput)
	}
	places := defaultPriceDecimals
	if in.Decimals != nil {
		if *in.Decimals < 0 || *in.Decimals > priceaudit.PriceScale {
			return nil, fmt.Errorf("%w: decimals debe estar entre 0 y %d", domain.ErrInvalidInput, priceaudit.PriceScale)
		}
		places = *in.Decimals
	}
	ids := uniqueIDs(in.ProductIDs)
	if len(in.ProductIDs) > 0 && len(ids) == 0 {
		return nil, fmt.Errorf("%w: product_ids no contiene IDs válidos", domain.ErrInvalidInput)
	}
	factor := decimal.NewFromInt(1).Add(in.Percentage.Div(hundred))

	var changes []bulkChange
	unchanged := 0
	err := uc.tx.RunPricing(ctx, func(productRepo repository.ProductRepository) error {
		products, err := productRepo.ListForUpdate(ctx, companyID, ids)
		if err != nil {
			return err
		}
		if len(ids) > 0 && len(products) != len(ids) {
			return fmt.Errorf("%w: %d de %d productos no existen", domain.ErrNotFound, len(ids)-len(products), len(ids))
		}
		for _, p := range products {
			next := p.Price.Mul(factor).Round(places)
			if next.Equal(p.Price) {
				unchanged++
				continue
			}
			previous, err := productRepo.SetPrice(ctx, companyID, p.ID, next)
			if err != nil {
				return fmt.Errorf("bulk: producto %s: %w", p.ID, err)
			}
			changes = append(changes, bulkChange{productID: p.ID, previous: previous, next: next})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	out := &dto.BulkPriceUpdateResponse{
		Updated:   len(changes),
		Unchanged: unchanged,
		Items:     make([]dto.BulkPriceItem, 0, len(changes)),
	}
	for _, c := range changes {
		previous := c.previous
		res := uc.auditor.LogPriceChange(ctx, dto.LogPriceChangeInput{
			ProductID:     c.productID,
			CompanyID:     companyID,
			PreviousPrice: &previous,
			NewPrice:      c.next,
			ChangeSource:  entity.ChangeSourceBulkUpdate,
			CreatedByID:   optionalString(userID),
			Reason:        in.Reason,
		})
		if res.AlertCreated {
			out.AlertsCreated++
		}
		out.Items = append(out.Items, dto.BulkPriceItem{
			ProductID:     c.productID,
			PreviousPrice: c.previous,
			NewPrice:      c.next,
			AlertCreated:  res.AlertCreated,
		})
	}
	return out, nil
}

func uniqueIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
