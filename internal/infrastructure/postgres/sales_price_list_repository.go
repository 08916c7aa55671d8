package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/auditoria-precios/internal/domain/entity"
	"github.com/jhoicas/auditoria-precios/internal/domain/repository"
)

var _ repository.SalesPriceListRepository = (*SalesPriceListRepo)(nil)

// SalesPriceListRepo listas de precios de venta sobre PostgreSQL.
type SalesPriceListRepo struct {
	q Querier
}

func NewSalesPriceListRepository(q Querier) *SalesPriceListRepo {
	return &SalesPriceListRepo{q: q}
}

func (r *SalesPriceListRepo) Create(ctx context.Context, list *entity.SalesPriceList) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO sales_price_lists (id, company_id, name, created_at) VALUES ($1, $2, $3, $4)`,
		list.ID, list.CompanyID, list.Name, list.CreatedAt)
	if err != nil {
		return translateError("insert sales price list", err)
	}
	return nil
}

func (r *SalesPriceListRepo) GetByID(ctx context.Context, companyID, id string) (*entity.SalesPriceList, error) {
	var l entity.SalesPriceList
	err := r.q.QueryRow(ctx,
		`SELECT id, company_id, name, created_at FROM sales_price_lists WHERE company_id = $1 AND id = $2`,
		companyID, id,
	).Scan(&l.ID, &l.CompanyID, &l.Name, &l.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sales price list: %w", err)
	}
	return &l, nil
}

func (r *SalesPriceListRepo) ListByCompany(ctx context.Context, companyID string) ([]*entity.SalesPriceList, error) {
	rows, err := r.q.Query(ctx,
		`SELECT id, company_id, name, created_at FROM sales_price_lists WHERE company_id = $1 ORDER BY name`,
		companyID)
	if err != nil {
		return nil, fmt.Errorf("list sales price lists: %w", err)
	}
	defer rows.Close()
	var list []*entity.SalesPriceList
	for rows.Next() {
		var l entity.SalesPriceList
		if err := rows.Scan(&l.ID, &l.CompanyID, &l.Name, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan sales price list: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}

func (r *SalesPriceListRepo) Items(ctx context.Context, listID string) ([]entity.SalesPriceListItem, error) {
	query := `
		SELECT i.price_list_id, i.product_id, p.code, p.name, i.price, i.updated_at
		FROM sales_price_list_items i
		JOIN products p ON p.id = i.product_id
		WHERE i.price_list_id = $1
		ORDER BY p.code`
	rows, err := r.q.Query(ctx, query, listID)
	if err != nil {
		return nil, fmt.Errorf("list price list items: %w", err)
	}
	defer rows.Close()
	var items []entity.SalesPriceListItem
	for rows.Next() {
		var it entity.SalesPriceListItem
		if err := rows.Scan(&it.PriceListID, &it.ProductID, &it.ProductCode, &it.ProductName, &it.Price, &it.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan price list item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// SetItemPrice upsert que devuelve el precio anterior (NULL si el ítem no existía).
func (r *SalesPriceListRepo) SetItemPrice(ctx context.Context, listID, productID string, price decimal.Decimal) (*decimal.Decimal, error) {
	query := `
		WITH old AS (
			SELECT price FROM sales_price_list_items
			WHERE price_list_id = $1 AND product_id = $2
			FOR UPDATE
		), upsert AS (
			INSERT INTO sales_price_list_items (price_list_id, product_id, price, updated_at)
			VALUES ($1, $2, $3, now())
			ON CONFLICT (price_list_id, product_id) DO UPDATE SET price = EXCLUDED.price, updated_at = EXCLUDED.updated_at
		)
		SELECT (SELECT price FROM old)`
	var previous *decimal.Decimal
	if err := r.q.QueryRow(ctx, query, listID, productID, price).Scan(&previous); err != nil {
		return nil, fmt.Errorf("set price list item: %w", err)
	}
	return previous, nil
}
