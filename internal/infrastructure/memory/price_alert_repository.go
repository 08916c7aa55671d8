package memory

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/auditoria-precios/internal/domain/entity"
	"github.com/jhoicas/auditoria-precios/internal/domain/repository"
)

var (
	_ repository.PriceAlertRepository         = (*PriceAlertRepo)(nil)
	_ repository.PriceAlertSettingsRepository = (*PriceAlertSettingsRepo)(nil)
)

type PriceAlertRepo struct {
	s  *Store
	tx *state
}

func (r *PriceAlertRepo) Create(ctx context.Context, alert *entity.PriceAlert) error {
	return r.s.access(r.tx, func(st *state) error {
		st.alerts = append(st.alerts, *alert)
		return nil
	})
}

func (r *PriceAlertRepo) ListByCompany(ctx context.Context, companyID string, unreadOnly bool, limit, offset int) ([]*entity.PriceAlert, int, error) {
	var all []*entity.PriceAlert
	err := r.s.access(r.tx, func(st *state) error {
		for _, a := range st.alerts {
			a := a
			if a.CompanyID != companyID || (unreadOnly && a.ReadAt != nil) {
				continue
			}
			all = append(all, &a)
		}
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	sort.SliceStable(all, func(i, j int) bool {
		if all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].ID < all[j].ID
		}
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})
	return page(all, limit, offset), len(all), nil
}

func (r *PriceAlertRepo) MarkRead(ctx context.Context, companyID, alertID string, at time.Time) (bool, error) {
	found := false
	err := r.s.access(r.tx, func(st *state) error {
		for i := range st.alerts {
			a := &st.alerts[i]
			if a.ID != alertID || a.CompanyID != companyID {
				continue
			}
			found = true
			if a.ReadAt == nil {
				t := at
				a.ReadAt = &t
			}
			return nil
		}
		return nil
	})
	return found, err
}

type PriceAlertSettingsRepo struct {
	s  *Store
	tx *state
}

func (r *PriceAlertSettingsRepo) Get(ctx context.Context, companyID string) (*entity.PriceAlertSettings, error) {
	var out *entity.PriceAlertSettings
	err := r.s.access(r.tx, func(st *state) error {
		if s, ok := st.settings[companyID]; ok {
			out = &s
		}
		return nil
	})
	return out, err
}

func (r *PriceAlertSettingsRepo) Upsert(ctx context.Context, s *entity.PriceAlertSettings) error {
	return r.s.access(r.tx, func(st *state) error {
		st.settings[s.CompanyID] = *s
		return nil
	})
}
