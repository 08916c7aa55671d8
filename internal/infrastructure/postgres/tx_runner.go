package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/auditoria-precios/internal/application/audit"
	"github.com/jhoicas/auditoria-precios/internal/application/usecase"
	"github.com/jhoicas/auditoria-precios/internal/domain/repository"
)

var (
	_ audit.AuditTxRunner     = (*TxRunner)(nil)
	_ usecase.PricingTxRunner = (*TxRunner)(nil)
)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunAudit log y alerta en la misma transacción: o quedan ambos o ninguno.
func (r *TxRunner) RunAudit(ctx context.Context, fn func(
	logRepo repository.PriceChangeLogRepository,
	alertRepo repository.PriceAlertRepository,
) error) error {
	return r.run(ctx, func(tx pgx.Tx) error {
		return fn(NewPriceChangeLogRepository(tx), NewPriceAlertRepository(tx))
	})
}

// RunPricing escrituras de precios de varios productos (ajuste masivo).
func (r *TxRunner) RunPricing(ctx context.Context, fn func(productRepo repository.ProductRepository) error) error {
	return r.run(ctx, func(tx pgx.Tx) error {
		return fn(NewProductRepository(tx))
	})
}

// run inicia una transacción, ejecuta fn y hace Commit o Rollback.
func (r *TxRunner) run(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
