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

var _ repository.SalesPriceListRepository = (*SalesPriceListRepo)(nil)

type SalesPriceListRepo struct {
	s  *Store
	tx *state
}

func (r *SalesPriceListRepo) Create(ctx context.Context, list *entity.SalesPriceList) error {
	return r.s.access(r.tx, func(st *state) error {
		for _, l := range st.lists {
			if l.CompanyID == list.CompanyID && l.Name == list.Name {
				return domain.ErrDuplicate
			}
		}
		st.lists[list.ID] = *list
		return nil
	})
}

func (r *SalesPriceListRepo) GetByID(ctx context.Context, companyID, id string) (*entity.SalesPriceList, error) {
	var out *entity.SalesPriceList
	err := r.s.access(r.tx, func(st *state) error {
		if l, ok := st.lists[id]; ok && l.CompanyID == companyID {
			out = &l
		}
		return nil
	})
	return out, err
}

func (r *SalesPriceListRepo) ListByCompany(ctx context.Context, companyID string) ([]*entity.SalesPriceList, error) {
	var out []*entity.SalesPriceList
	err := r.s.access(r.tx, func(st *state) error {
		for _, l := range st.lists {
			l := l
			if l.CompanyID == companyID {
				out = append(out, &l)
			}
		}
		sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
		return nil
	})
	return out, err
}

func (r *SalesPriceListRepo) Items(ctx context.Context, listID string) ([]entity.SalesPriceListItem, error) {
	var out []entity.SalesPriceListItem
	err := r.s.access(r.tx, func(st *state) error {
		for k, it := range st.items {
			if k.listID != listID {
				continue
			}
			if p, ok := st.products[k.productID]; ok {
				it.ProductCode = p.Code
				it.ProductName = p.Name
			}
			out = append(out, it)
		}
		sort.Slice(out, func(i, j int) bool { return out[i].ProductCode < out[j].ProductCode })
		return nil
	})
	return out, err
}

func (r *SalesPriceListRepo) SetItemPrice(ctx context.Context, listID, productID string, price decimal.Decimal) (*decimal.Decimal, error) {
	var previous *decimal.Decimal
	err := r.s.access(r.tx, func(st *state) error {
		if _, ok := st.lists[listID]; !ok {
			return domain.ErrNotFound
		}
		key := itemKey{listID: listID, productID: productID}
		if it, ok := st.items[key]; ok {
			prev := it.Price
			previous = &prev
		}
		st.items[key] = entity.SalesPriceListItem{
			PriceListID: listID,
			ProductID:   productID,
			Price:       price,
			UpdatedAt:   time.Now().UTC(),
		}
		return nil
	})
	return previous, err
}
