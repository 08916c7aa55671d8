package audit

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/auditoria-precios/internal/application/dto"
	"github.com/jhoicas/auditoria-precios/internal/domain"
	"github.com/jhoicas/auditoria-precios/internal/domain/entity"
	"github.com/jhoicas/auditoria-precios/internal/domain/priceaudit"
	"github.com/jhoicas/auditoria-precios/internal/domain/repository"
)

// AuditUseCase registra cada cambio de precio aceptado y, si supera el umbral de la empresa,
// crea la alerta correspondiente.
//
// Nunca devuelve error: una escritura de precio no puede fallar porque falló la auditoría.
// Las fallas se registran en el log y se responde {LogID: "", AlertCreated: false}.
type AuditUseCase struct {
	tx               AuditTxRunner
	settingsRepo     repository.PriceAlertSettingsRepository
	defaultThreshold decimal.Decimal
	log              zerolog.Logger
	now              func() time.Time
}

// NewAuditUseCase construye el caso de uso. defaultThreshold aplica a empresas sin configuración propia.
func NewAuditUseCase(
	tx AuditTxRunner,
	settingsRepo repository.PriceAlertSettingsRepository,
	defaultThreshold decimal.Decimal,
	log zerolog.Logger,
) *AuditUseCase {
	if !defaultThreshold.IsPositive() {
		defaultThreshold = priceaudit.DefaultThresholdPercent
	}
	return &AuditUseCase{
		tx:               tx,
		settingsRepo:     settingsRepo,
		defaultThreshold: defaultThreshold,
		log:              log.With().Str("component", "price_audit").Logger(),
		now:              func() time.Time { return time.Now().UTC() },
	}
}

// LogPriceChange registra el cambio. Ver AuditUseCase para la semántica de fallas.
func (uc *AuditUseCase) LogPriceChange(ctx context.Context, in dto.LogPriceChangeInput) (res dto.LogPriceChangeResult) {
	defer func() {
		if r := recover(); r != nil {
			uc.log.Error().
				Interface("panic", r).
				Str("company_id", in.CompanyID).
				Str("product_id", in.ProductID).
				Msg("pánico registrando cambio de precio")
			res = dto.LogPriceChangeResult{}
		}
	}()

	out, err := uc.logPriceChange(ctx, in)
	if err != nil {
		ev := uc.log.Error()
		if errors.Is(err, domain.ErrInvalidInput) || errors.Is(err, domain.ErrNegativePrice) || errors.Is(err, domain.ErrInvalidSource) {
			ev = uc.log.Warn()
		}
		ev.Err(err).
			Str("company_id", in.CompanyID).
			Str("product_id", in.ProductID).
			Str("source", string(in.ChangeSource)).
			Msg("cambio de precio no auditado")
		return dto.LogPriceChangeResult{}
	}
	return out
}

func (uc *AuditUseCase) logPriceChange(ctx context.Context, in dto.LogPriceChangeInput) (dto.LogPriceChangeResult, error) {
	if in.CompanyID == "" || in.ProductID == "" {
		return dto.LogPriceChangeResult{}, fmt.Errorf("%w: company_id y product_id son obligatorios", domain.ErrInvalidInput)
	}
	if in.NewPrice.IsNegative() {
		return dto.LogPriceChangeResult{}, domain.ErrNegativePrice
	}
	if !in.ChangeSource.Valid() {
		return dto.LogPriceChangeResult{}, fmt.Errorf("%w: %q", domain.ErrInvalidSource, in.ChangeSource)
	}
	in.NewPrice = priceaudit.RoundPrice(in.NewPrice)
	if in.PreviousPrice != nil {
		previous := priceaudit.RoundPrice(*in.PreviousPrice)
		in.PreviousPrice = &previous
	}
	if in.PreviousPrice != nil && in.PreviousPrice.Equal(in.NewPrice) {
		uc.log.Debug().Str("product_id", in.ProductID).Msg("precio sin cambios, no se registra")
		return dto.LogPriceChangeResult{}, nil
	}

	threshold, enabled, err := uc.threshold(ctx, in.CompanyID)
	if err != nil {
		return dto.LogPriceChangeResult{}, fmt.Errorf("price audit: umbral: %w", err)
	}
	decision := priceaudit.ShouldAlert(in.PreviousPrice, in.NewPrice, threshold)

	now := uc.now()
	entry := &entity.PriceChangeLog{
		ID:               uuid.New().String(),
		CompanyID:        in.CompanyID,
		ProductID:        in.ProductID,
		PreviousPrice:    in.PreviousPrice,
		NewPrice:         in.NewPrice,
		SalesPriceListID: in.SalesPriceListID,
		ChangeSource:     in.ChangeSource,
		Reason:           in.Reason,
		Notes:            in.Notes,
		CreatedByID:      in.CreatedByID,
		CreatedAt:        now,
	}

	var alert *entity.PriceAlert
	if enabled && decision.ShouldAlert {
		alert = &entity.PriceAlert{
			ID:               uuid.New().String(),
			CompanyID:        in.CompanyID,
			ProductID:        in.ProductID,
			LogID:            entry.ID,
			Severity:         priceaudit.GradeSeverity(decision.ChangePercent, threshold),
			ChangePercent:    decision.ChangePercent,
			ThresholdPercent: threshold,
			PreviousPrice:    *in.PreviousPrice,
			NewPrice:         in.NewPrice,
			CreatedAt:        now,
		}
	}

	err = uc.tx.RunAudit(ctx, func(logRepo repository.PriceChangeLogRepository, alertRepo repository.PriceAlertRepository) error {
		if err := logRepo.Create(ctx, entry); err != nil {
			return fmt.Errorf("price audit: insertar log: %w", err)
		}
		if alert != nil {
			if err := alertRepo.Create(ctx, alert); err != nil {
				return fmt.Errorf("price audit: insertar alerta: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return dto.LogPriceChangeResult{}, err
	}

	if alert != nil {
		uc.log.Info().
			Str("company_id", in.CompanyID).
			Str("product_id", in.ProductID).
			Str("severity", string(alert.Severity)).
			Str("change_percent", alert.ChangePercent.StringFixed(2)).
			Msg("alerta de precio creada")
	}
	return dto.LogPriceChangeResult{LogID: entry.ID, AlertCreated: alert != nil}, nil
}

// threshold umbral vigente de la empresa y si las alertas están habilitadas.
func (uc *AuditUseCase) threshold(ctx context.Context, companyID string) (decimal.Decimal, bool, error) {
	s, err := uc.settingsRepo.Get(ctx, companyID)
	if err != nil {
		return decimal.Zero, false, err
	}
	if s == nil || !s.ThresholdPercent.IsPositive() {
		return uc.defaultThreshold, s == nil || s.Enabled, nil
	}
	return s.ThresholdPercent, s.Enabled, nil
}
