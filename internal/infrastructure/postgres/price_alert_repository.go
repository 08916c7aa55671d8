package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/auditoria-precios/internal/domain/entity"
	"github.com/jhoicas/auditoria-precios/internal/domain/repository"
)

var (
	_ repository.PriceAlertRepository         = (*PriceAlertRepo)(nil)
	_ repository.PriceAlertSettingsRepository = (*PriceAlertSettingsRepo)(nil)
)

// PriceAlertRepo alertas de precio sobre PostgreSQL.
type PriceAlertRepo struct {
	q Querier
}

func NewPriceAlertRepository(q Querier) *PriceAlertRepo {
	return &PriceAlertRepo{q: q}
}

func (r *PriceAlertRepo) Create(ctx context.Context, a *entity.PriceAlert) error {
	query := `
		INSERT INTO price_alerts (id, company_id, product_id, log_id, severity, change_percent, threshold_percent,
			previous_price, new_price, read_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		a.ID, a.CompanyID, a.ProductID, a.LogID, string(a.Severity), a.ChangePercent, a.ThresholdPercent,
		a.PreviousPrice, a.NewPrice, a.ReadAt, a.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert price alert: %w", err)
	}
	return nil
}

// ListByCompany devuelve la página pedida y el total sin paginar (count(*) OVER ()).
func (r *PriceAlertRepo) ListByCompany(ctx context.Context, companyID string, unreadOnly bool, limit, offset int) ([]*entity.PriceAlert, int, error) {
	query := `
		SELECT id, company_id, product_id, log_id, severity, change_percent, threshold_percent,
		       previous_price, new_price, read_at, created_at, count(*) OVER ()
		FROM price_alerts
		WHERE company_id = $1 AND ($2 = false OR read_at IS NULL)
		ORDER BY created_at DESC, id
		LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(ctx, query, companyID, unreadOnly, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list price alerts: %w", err)
	}
	defer rows.Close()

	var (
		list  []*entity.PriceAlert
		total int
	)
	for rows.Next() {
		var (
			a        entity.PriceAlert
			severity string
		)
		if err := rows.Scan(&a.ID, &a.CompanyID, &a.ProductID, &a.LogID, &severity, &a.ChangePercent, &a.ThresholdPercent,
			&a.PreviousPrice, &a.NewPrice, &a.ReadAt, &a.CreatedAt, &total); err != nil {
			return nil, 0, fmt.Errorf("scan price alert: %w", err)
		}
		a.Severity = entity.Severity(severity)
		list = append(list, &a)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

// MarkRead conserva la primera fecha de lectura.
func (r *PriceAlertRepo) MarkRead(ctx context.Context, companyID, alertID string, at time.Time) (bool, error) {
	cmd, err := r.q.Exec(ctx,
		`UPDATE price_alerts SET read_at = COALESCE(read_at, $3) WHERE company_id = $1 AND id = $2`,
		companyID, alertID, at)
	if err != nil {
		return false, fmt.Errorf("mark price alert read: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}

// PriceAlertSettingsRepo umbral de alertas por empresa.
type PriceAlertSettingsRepo struct {
	q Querier
}

func NewPriceAlertSettingsRepository(q Querier) *PriceAlertSettingsRepo {
	return &PriceAlertSettingsRepo{q: q}
}

func (r *PriceAlertSettingsRepo) Get(ctx context.Context, companyID string) (*entity.PriceAlertSettings, error) {
	var s entity.PriceAlertSettings
	err := r.q.QueryRow(ctx,
		`SELECT company_id, threshold_percent, enabled, updated_at FROM price_alert_settings WHERE company_id = $1`,
		companyID,
	).Scan(&s.CompanyID, &s.ThresholdPercent, &s.Enabled, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get price alert settings: %w", err)
	}
	return &s, nil
}

func (r *PriceAlertSettingsRepo) Upsert(ctx context.Context, s *entity.PriceAlertSettings) error {
	query := `
		INSERT INTO price_alert_settings (company_id, threshold_percent, enabled, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (company_id) DO UPDATE
		SET threshold_percent = EXCLUDED.threshold_percent, enabled = EXCLUDED.enabled, updated_at = EXCLUDED.updated_at`
	if _, err := r.q.Exec(ctx, query, s.CompanyID, s.ThresholdPercent, s.Enabled, s.UpdatedAt); err != nil {
		return fmt.Errorf("upsert price alert settings: %w", err)
	}
	return nil
}
