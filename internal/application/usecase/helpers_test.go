package usecase_test

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/auditoria-precios/internal/application/audit"
	"github.com/jhoicas/auditoria-precios/internal/application/dto"
	"github.com/jhoicas/auditoria-precios/internal/domain/entity"
	"github.com/jhoicas/auditoria-precios/internal/domain/repository"
	"github.com/jhoicas/auditoria-precios/internal/infrastructure/memory"
)

const (
	companyID = "c-1"
	userID    = "u-1"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

type fixture struct {
	store   *memory.Store
	auditor *audit.AuditUseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	s := memory.NewStore()
	s.SeedUser(entity.User{ID: userID, CompanyID: companyID, Name: "Laura"})
	return &fixture{
		store:   s,
		auditor: audit.NewAuditUseCase(s, s.AlertSettings(), decimal.Zero, zerolog.Nop()),
	}
}

func (f *fixture) product(t *testing.T, id, code, price string) {
	t.Helper()
	require.NoError(t, f.store.Products().Create(context.Background(), &entity.Product{
		ID: id, CompanyID: companyID, Code: code, Name: "Producto " + code, Price: dec(price),
	}))
}

func (f *fixture) logs(t *testing.T) []entity.PriceChangeLogDetail {
	t.Helper()
	logs, err := f.store.PriceChangeLogs().List(context.Background(), companyID, repository.PriceChangeLogFilter{})
	require.NoError(t, err)
	return logs
}

func (f *fixture) price(t *testing.T, id string) decimal.Decimal {
	t.Helper()
	p, err := f.store.Products().GetByID(context.Background(), companyID, id)
	require.NoError(t, err)
	require.NotNil(t, p)
	return p.Price
}

// spyAuditor registra las llamadas sin persistir nada.
type spyAuditor struct {
	calls []dto.LogPriceChangeInput
}

func (s *spyAuditor) LogPriceChange(_ context.Context, in dto.LogPriceChangeInput) dto.LogPriceChangeResult {
	s.calls = append(s.calls, in)
	return dto.LogPriceChangeResult{LogID: "log-spy"}
}
