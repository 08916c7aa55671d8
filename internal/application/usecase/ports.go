package usecase

import (
	"context"

	"github.com/jhoicas/auditoria-precios/internal/application/dto"
	"github.com/jhoicas/auditoria-precios/internal/domain/repository"
)

// PriceAuditor motor de auditoría que reciben los flujos de escritura de precios.
// Lo implementa *audit.AuditUseCase; nunca devuelve error.
type PriceAuditor interface {
	LogPriceChange(ctx context.Context, in dto.LogPriceChangeInput) dto.LogPriceChangeResult
}

// PricingTxRunner ejecuta escrituras de precios de varios productos en una transacción.
type PricingTxRunner interface {
	RunPricing(ctx context.Context, fn func(productRepo repository.ProductRepository) error) error
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
