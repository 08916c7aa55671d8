package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/auditoria-precios/internal/domain"
	"github.com/jhoicas/auditoria-precios/internal/domain/entity"
	"github.com/jhoicas/auditoria-precios/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, company_id, code, name, price, created_at, updated_at`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un nuevo producto.
func (r *ProductRepo) Create(ctx context.Context, product *entity.Product) error {
	query := `
		INSERT INTO products (id, company_id, code, name, price, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		product.ID, product.CompanyID, product.Code, product.Name,
		product.Price, product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		return translateError("insert product", err)
	}
	return nil
}

// GetByID obtiene un producto de la empresa por ID.
func (r *ProductRepo) GetByID(ctx context.Context, companyID, id string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE company_id = $1 AND id = $2`
	p, err := scanProduct(r.q.QueryRow(ctx, query, companyID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// GetByCompanyAndCode obtiene un producto por empresa y código.
func (r *ProductRepo) GetByCompanyAndCode(ctx context.Context, companyID, code string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE company_id = $1 AND code = $2`
	p, err := scanProduct(r.q.QueryRow(ctx, query, companyID, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product by code: %w", err)
	}
	return p, nil
}

// ListByCompany lista productos por empresa con paginación.
func (r *ProductRepo) ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE company_id = $1 ORDER BY code LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	return collectProducts(rows)
}

// ListForUpdate bloquea las filas (FOR UPDATE); solo tiene efecto dentro de una tx.
func (r *ProductRepo) ListForUpdate(ctx context.Context, companyID string, ids []string) ([]*entity.Product, error) {
	var (
		rows pgx.Rows
		err  error
	)
	if len(ids) == 0 {
		rows, err = r.q.Query(ctx,
			`SELECT `+productColumns+` FROM products WHERE company_id = $1 ORDER BY id FOR UPDATE`,
			companyID)
	} else {
		rows, err = r.q.Query(ctx,
			`SELECT `+productColumns+` FROM products WHERE company_id = $1 AND id = ANY($2::uuid[]) ORDER BY id FOR UPDATE`,
			companyID, ids)
	}
	if err != nil {
		return nil, fmt.Errorf("list products for update: %w", err)
	}
	defer rows.Close()
	return collectProducts(rows)
}

// SetPrice escribe el precio y devuelve el anterior en la misma sentencia.
func (r *ProductRepo) SetPrice(ctx context.Context, companyID, productID string, price decimal.Decimal) (decimal.Decimal, error) {
	query := `
		UPDATE products p SET price = $3, updated_at = now()
		FROM (SELECT id, price FROM products WHERE company_id = $1 AND id = $2 FOR UPDATE) old
		WHERE p.id = old.id
		RETURNING old.price`
	var previous decimal.Decimal
	if err := r.q.QueryRow(ctx, query, companyID, productID, price).Scan(&previous); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, domain.ErrNotFound
		}
		return decimal.Zero, fmt.Errorf("set product price: %w", err)
	}
	return previous, nil
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	if err := row.Scan(&p.ID, &p.CompanyID, &p.Code, &p.Name, &p.Price, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

func collectProducts(rows pgx.Rows) ([]*entity.Product, error) {
	var list []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}
