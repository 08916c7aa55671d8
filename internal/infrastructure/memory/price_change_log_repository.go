package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/jhoicas/auditoria-precios/internal/domain/entity"
	"github.com/jhoicas/auditoria-precios/internal/domain/priceaudit"
	"github.com/jhoicas/auditoria-precios/internal/domain/repository"
)

var _ repository.PriceChangeLogRepository = (*PriceChangeLogRepo)(nil)

// PriceChangeLogRepo solo agrega y lee; no hay forma de modificar un log ya escrito.
type PriceChangeLogRepo struct {
	s  *Store
	tx *state
}

func (r *PriceChangeLogRepo) Create(ctx context.Context, log *entity.PriceChangeLog) error {
	return r.s.access(r.tx, func(st *state) error {
		st.logs = append(st.logs, *log)
		return nil
	})
}

func (r *PriceChangeLogRepo) List(ctx context.Context, companyID string, f repository.PriceChangeLogFilter) ([]entity.PriceChangeLogDetail, error) {
	search := strings.ToLower(strings.TrimSpace(f.Search))
	dates := &priceaudit.DateRange{GTE: f.From, LTE: f.To}
	var out []entity.PriceChangeLogDetail
	err := r.s.access(r.tx, func(st *state) error {
		for _, l := range st.logs {
			if l.CompanyID != companyID || !dates.Contains(l.CreatedAt) {
				continue
			}
			if f.ProductID != "" && l.ProductID != f.ProductID {
				continue
			}
			if f.Source != "" && l.ChangeSource != f.Source {
				continue
			}
			d := detail(st, l)
			if search != "" && !matches(d, search) {
				continue
			}
			out = append(out, d)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sortNewestFirst(out)
	if f.MaxRows > 0 && len(out) > f.MaxRows {
		out = out[:f.MaxRows]
	}
	return out, nil
}

func (r *PriceChangeLogRepo) ListByProduct(ctx context.Context, companyID, productID string, limit int) ([]entity.PriceChangeLogDetail, error) {
	return r.List(ctx, companyID, repository.PriceChangeLogFilter{ProductID: productID, MaxRows: limit})
}

func detail(st *state, l entity.PriceChangeLog) entity.PriceChangeLogDetail {
	d := entity.PriceChangeLogDetail{PriceChangeLog: l}
	if p, ok := st.products[l.ProductID]; ok {
		d.ProductName = p.Name
		d.ProductCode = p.Code
	}
	if l.SalesPriceListID != nil {
		if pl, ok := st.lists[*l.SalesPriceListID]; ok {
			name := pl.Name
			d.PriceListName = &name
		}
	}
	if l.CreatedByID != nil {
		if u, ok := st.users[*l.CreatedByID]; ok {
			name := u.Name
			d.CreatedByName = &name
		}
	}
	return d
}

func matches(d entity.PriceChangeLogDetail, search string) bool {
	if strings.Contains(strings.ToLower(d.ProductName), search) ||
		strings.Contains(strings.ToLower(d.ProductCode), search) {
		return true
	}
	return d.Reason != nil && strings.Contains(strings.ToLower(*d.Reason), search)
}

func sortNewestFirst(logs []entity.PriceChangeLogDetail) {
	sort.SliceStable(logs, func(i, j int) bool {
		if logs[i].CreatedAt.Equal(logs[j].CreatedAt) {
			return logs[i].ID < logs[j].ID
		}
		return logs[i].CreatedAt.After(logs[j].CreatedAt)
	})
}
