package audit

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/auditoria-precios/internal/application/dto"
	"github.com/jhoicas/auditoria-precios/internal/domain"
	"github.com/jhoicas/auditoria-precios/internal/domain/entity"
	"github.com/jhoicas/auditoria-precios/internal/domain/priceaudit"
	"github.com/jhoicas/auditoria-precios/internal/domain/repository"
)

var maxThreshold = decimal.NewFromInt(1000)

// AlertUseCase consulta de alertas y configuración del umbral por empresa.
type AlertUseCase struct {
	alertRepo        repository.PriceAlertRepository
	settingsRepo     repository.PriceAlertSettingsRepository
	defaultThreshold decimal.Decimal
}

// NewAlertUseCase construye el caso de uso.
func NewAlertUseCase(
	alertRepo repository.PriceAlertRepository,
	settingsRepo repository.PriceAlertSettingsRepository,
	defaultThreshold decimal.Decimal,
) *AlertUseCase {
	if !defaultThreshold.IsPositive() {
		defaultThreshold = priceaudit.DefaultThresholdPercent
	}
	return &AlertUseCase{alertRepo: alertRepo, settingsRepo: settingsRepo, defaultThreshold: defaultThreshold}
}

// List alertas de la empresa, más recientes primero.
func (uc *AlertUseCase) List(ctx context.Context, companyID string, unreadOnly bool, limit, offset int) (*dto.PriceAlertListResponse, error) {
	list, total, err := uc.alertRepo.ListByCompany(ctx, companyID, unreadOnly, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("alerts: listar: %w", err)
	}
	items := make([]dto.PriceAlertResponse, 0, len(list))
	for _, a := range list {
		items = append(items, toAlertResponse(a))
	}
	return &dto.PriceAlertListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset, Total: total},
	}, nil
}

// MarkRead marca una alerta como leída. domain.ErrNotFound si no pertenece a la empresa.
func (uc *AlertUseCase) MarkRead(ctx context.Context, companyID, alertID string) error {
	ok, err := uc.alertRepo.MarkRead(ctx, companyID, alertID, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("alerts: marcar leída: %w", err)
	}
	if !ok {
		return domain.ErrNotFound
	}
	return nil
}

// GetSettings umbral vigente; si la empresa no tiene configuración se informa el de la aplicación.
func (uc *AlertUseCase) GetSettings(ctx context.Context, companyID string) (*dto.AlertSettingsResponse, error) {
	s, err := uc.settingsRepo.Get(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("alerts: configuración: %w", err)
	}
	if s == nil {
		return &dto.AlertSettingsResponse{ThresholdPercent: uc.defaultThreshold, Enabled: true, IsDefault: true}, nil
	}
	return &dto.AlertSettingsResponse{ThresholdPercent: s.ThresholdPercent, Enabled: s.Enabled}, nil
}

// UpdateSettings cambia umbral y/o habilitación. El umbral debe estar en (0, 1000].
func (uc *AlertUseCase) UpdateSettings(ctx context.Context, companyID string, in dto.UpdateAlertSettingsRequest) (*dto.AlertSettingsResponse, error) {
	current, err := uc.settingsRepo.Get(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("alerts: configuración: %w", err)
	}
	if current == nil {
		current = &entity.PriceAlertSettings{CompanyID: companyID, ThresholdPercent: uc.defaultThreshold, Enabled: true}
	}
	if in.ThresholdPercent != nil {
		if !in.ThresholdPercent.IsPositive() || in.ThresholdPercent.GreaterThan(maxThreshold) {
			return nil, fmt.Errorf("%w: threshold_percent debe estar entre 0 y 1000", domain.ErrInvalidInput)
		}
		current.ThresholdPercent = *in.ThresholdPercent
	}
	if in.Enabled != nil {
		current.Enabled = *in.Enabled
	}
	current.UpdatedAt = time.Now().UTC()
	if err := uc.settingsRepo.Upsert(ctx, current); err != nil {
		return nil, fmt.Errorf("alerts: guardar configuración: %w", err)
	}
	return &dto.AlertSettingsResponse{ThresholdPercent: current.ThresholdPercent, Enabled: current.Enabled}, nil
}
