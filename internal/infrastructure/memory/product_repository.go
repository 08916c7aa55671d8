package memory

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/auditoria-precios/internal/domain"
	"github.com/jhoicas/auditoria-precios/internal/domain/entity"
	"github.com/jhoicas/auditoria-precios/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

type ProductRepo struct {
	s  *Store
	tx *state
}

func (r *ProductRepo) Create(ctx context.Context, product *entity.Product) error {
	return r.s.access(r.tx, func(st *state) error {
		for _, p := range st.products {
			if p.CompanyID == product.CompanyID && p.Code == product.Code {
				return domain.ErrDuplicate
			}
		}
		if _, ok := st.products[product.ID]; ok {
			return domain.ErrDuplicate
		}
		st.products[product.ID] = *product
		return nil
	})
}

func (r *ProductRepo) GetByID(ctx context.Context, companyID, id string) (*entity.Product, error) {
	var out *entity.Product
	err := r.s.access(r.tx, func(st *state) error {
		if p, ok := st.products[id]; ok && p.CompanyID == companyID {
			out = &p
		}
		return nil
	})
	return out, err
}

func (r *ProductRepo) GetByCompanyAndCode(ctx context.Context, companyID, code string) (*entity.Product, error) {
	var out *entity.Product
	err := r.s.access(r.tx, func(st *state) error {
		for _, p := range st.products {
			p := p
			if p.CompanyID == companyID && p.Code == code {
				out = &p
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (r *ProductRepo) ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Product, error) {
	var out []*entity.Product
	err := r.s.access(r.tx, func(st *state) error {
		all := companyProducts(st, companyID)
		sort.Slice(all, func(i, j int) bool { return all[i].Code < all[j].Code })
		out = page(all, limit, offset)
		return nil
	})
	return out, err
}

func (r *ProductRepo) ListForUpdate(ctx context.Context, companyID string, ids []string) ([]*entity.Product, error) {
	var out []*entity.Product
	err := r.s.access(r.tx, func(st *state) error {
		if len(ids) == 0 {
			out = companyProducts(st, companyID)
		} else {
			for _, id := range ids {
				if p, ok := st.products[id]; ok && p.CompanyID == companyID {
					out = append(out, &p)
				}
			}
		}
		sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
		return nil
	})
	return out, err
}

func (r *ProductRepo) SetPrice(ctx context.Context, companyID, productID string, price decimal.Decimal) (decimal.Decimal, error) {
	var previous decimal.Decimal
	err := r.s.access(r.tx, func(st *state) error {
		p, ok := st.products[productID]
		if !ok || p.CompanyID != companyID {
			return domain.ErrNotFound
		}
		previous = p.Price
		p.Price = price
		p.UpdatedAt = time.Now().UTC()
		st.products[productID] = p
		return nil
	})
	return previous, err
}

func companyProducts(st *state, companyID string) []*entity.Product {
	var out []*entity.Product
	for _, p := range st.products {
		p := p
		if p.CompanyID == companyID {
			out = append(out, &p)
		}
	}
	return out
}

func page[T any](all []T, limit, offset int) []T {
	if offset >= len(all) {
		return nil
	}
	end := len(all)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return all[offset:end]
}
