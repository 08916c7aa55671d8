package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/auditoria-precios/internal/domain/entity"
	"github.com/jhoicas/auditoria-precios/internal/domain/repository"
)

var _ repository.PriceChangeLogRepository = (*PriceChangeLogRepo)(nil)

// PriceChangeLogRepo log de cambios de precio sobre PostgreSQL. Solo INSERT y SELECT.
type PriceChangeLogRepo struct {
	q Querier
}

// NewPriceChangeLogRepository pasar pool o tx (Querier).
func NewPriceChangeLogRepository(q Querier) *PriceChangeLogRepo {
	return &PriceChangeLogRepo{q: q}
}

const priceChangeLogDetailSelect = `
	SELECT l.id, l.company_id, l.product_id, l.previous_price, l.new_price, l.sales_price_list_id,
	       l.change_source, l.reason, l.notes, l.created_by_id, l.created_at,
	       p.name, p.code, spl.name, u.name
	FROM price_change_logs l
	JOIN products p ON p.id = l.product_id
	LEFT JOIN sales_price_lists spl ON spl.id = l.sales_price_list_id
	LEFT JOIN users u ON u.id = l.created_by_id`

func (r *PriceChangeLogRepo) Create(ctx context.Context, log *entity.PriceChangeLog) error {
	query := `
		INSERT INTO price_change_logs (id, company_id, product_id, previous_price, new_price, sales_price_list_id,
			change_source, reason, notes, created_by_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		log.ID, log.CompanyID, log.ProductID, log.PreviousPrice, log.NewPrice, log.SalesPriceListID,
		string(log.ChangeSource), log.Reason, log.Notes, log.CreatedByID, log.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert price change log: %w", err)
	}
	return nil
}

// List arma el WHERE con los filtros presentes; el orden es siempre created_at DESC.
func (r *PriceChangeLogRepo) List(ctx context.Context, companyID string, f repository.PriceChangeLogFilter) ([]entity.PriceChangeLogDetail, error) {
	conds := []string{"l.company_id = $1"}
	args := []any{companyID}
	add := func(cond string, v any) {
		args = append(args, v)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}
	if f.From != nil {
		add("l.created_at >= $%d", *f.From)
	}
	if f.To != nil {
		add("l.created_at <= $%d", *f.To)
	}
	if f.ProductID != "" {
		add("l.product_id = $%d", f.ProductID)
	}
	if f.Source != "" {
		add("l.change_source = $%d", string(f.Source))
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		add("(p.name ILIKE $%[1]d OR p.code ILIKE $%[1]d OR l.reason ILIKE $%[1]d)", "%"+escapeLike(s)+"%")
	}

	query := priceChangeLogDetailSelect + "\n\tWHERE " + strings.Join(conds, " AND ") + "\n\tORDER BY l.created_at DESC, l.id"
	if f.MaxRows > 0 {
		args = append(args, f.MaxRows)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list price change logs: %w", err)
	}
	defer rows.Close()
	return collectLogDetails(rows)
}

func (r *PriceChangeLogRepo) ListByProduct(ctx context.Context, companyID, productID string, limit int) ([]entity.PriceChangeLogDetail, error) {
	query := priceChangeLogDetailSelect + `
	WHERE l.company_id = $1 AND l.product_id = $2
	ORDER BY l.created_at DESC, l.id
	LIMIT $3`
	rows, err := r.q.Query(ctx, query, companyID, productID, limit)
	if err != nil {
		return nil, fmt.Errorf("list price history: %w", err)
	}
	defer rows.Close()
	return collectLogDetails(rows)
}

func collectLogDetails(rows pgx.Rows) ([]entity.PriceChangeLogDetail, error) {
	var list []entity.PriceChangeLogDetail
	for rows.Next() {
		var (
			d      entity.PriceChangeLogDetail
			source string
		)
		if err := rows.Scan(
			&d.ID, &d.CompanyID, &d.ProductID, &d.PreviousPrice, &d.NewPrice, &d.SalesPriceListID,
			&source, &d.Reason, &d.Notes, &d.CreatedByID, &d.CreatedAt,
			&d.ProductName, &d.ProductCode, &d.PriceListName, &d.CreatedByName,
		); err != nil {
			return nil, fmt.Errorf("scan price change log: %w", err)
		}
		d.ChangeSource = entity.ChangeSource(source)
		list = append(list, d)
	}
	return list, rows.Err()
}

// escapeLike escapa los comodines de LIKE en texto del usuario.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
