package audit

import (
	"context"
	"time"

	"github.com/jhoicas/auditoria-precios/internal/domain/entity"
	"github.com/jhoicas/auditoria-precios/internal/domain/priceaudit"
	"github.com/jhoicas/auditoria-precios/internal/domain/repository"
)

// AuditTxRunner ejecuta la escritura del log y de su alerta en una misma transacción.
// La infraestructura (postgres o memoria) lo implementa.
type AuditTxRunner interface {
	RunAudit(ctx context.Context, fn func(
		logRepo repository.PriceChangeLogRepository,
		alertRepo repository.PriceAlertRepository,
	) error) error
}

// Report contenido común a las exportaciones XLSX y PDF.
type Report struct {
	CompanyID   string
	GeneratedAt time.Time
	DateFrom    string
	DateTo      string
	Rows        []entity.PriceChangeLogDetail
	Summary     priceaudit.Summary
}

// ReportRenderer genera un documento binario a partir del reporte.
type ReportRenderer interface {
	Render(ctx context.Context, r Report) ([]byte, error)
}
