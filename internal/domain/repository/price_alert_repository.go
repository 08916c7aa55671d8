package repository

import (
	"context"
	"time"

	"github.com/jhoicas/auditoria-precios/internal/domain/entity"
)

// PriceAlertRepository puerto de persistencia de alertas de precio.
type PriceAlertRepository interface {
	Create(ctx context.Context, alert *entity.PriceAlert) error
	ListByCompany(ctx context.Context, companyID string, unreadOnly bool, limit, offset int) ([]*entity.PriceAlert, int, error)
	// MarkRead marca la alerta como leída. Devuelve false si no existe en la empresa.
	MarkRead(ctx context.Context, companyID, alertID string, at time.Time) (bool, error)
}

// PriceAlertSettingsRepository configuración de umbral por empresa.
type PriceAlertSettingsRepository interface {
	// Get devuelve nil (sin error) si la empresa no tiene configuración propia.
	Get(ctx context.Context, companyID string) (*entity.PriceAlertSettings, error)
	Upsert(ctx context.Context, s *entity.PriceAlertSettings) error
}
