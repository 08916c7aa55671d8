package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/auditoria-precios/internal/domain"
	"github.com/jhoicas/auditoria-precios/internal/domain/entity"
	"github.com/jhoicas/auditoria-precios/internal/domain/repository"
	"github.com/jhoicas/auditoria-precios/internal/infrastructure/memory"
)

func seedProduct(t *testing.T, s *memory.Store, id, code, price string) {
	t.Helper()
	now := time.Now().UTC()
	require.NoError(t, s.Products().Create(context.Background(), &entity.Product{
		ID: id, CompanyID: "c1", Code: code, Name: "Producto " + code,
		Price: decimal.RequireFromString(price), CreatedAt: now, UpdatedAt: now,
	}))
}

func TestRunAudit_RevierteAnteError(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	seedProduct(t, s, "p1", "A1", "100")

	boom := errors.New("boom")
	err := s.RunAudit(ctx, func(logRepo repository.PriceChangeLogRepository, alertRepo repository.PriceAlertRepository) error {
		require.NoError(t, logRepo.Create(ctx, &entity.PriceChangeLog{
			ID: "l1", CompanyID: "c1", ProductID: "p1", NewPrice: decimal.NewFromInt(150),
			ChangeSource: entity.ChangeSourceProductDirect, CreatedAt: time.Now().UTC(),
		}))
		return boom
	})
	require.ErrorIs(t, err, boom)

	logs, err := s.PriceChangeLogs().List(ctx, "c1", repository.PriceChangeLogFilter{})
	require.NoError(t, err)
	assert.Empty(t, logs)
}

func TestRunPricing_ConfirmaSiNoHayError(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	seedProduct(t, s, "p1", "A1", "100")

	err := s.RunPricing(ctx, func(productRepo repository.ProductRepository) error {
		prev, err := productRepo.SetPrice(ctx, "c1", "p1", decimal.NewFromInt(120))
		assert.True(t, prev.Equal(decimal.NewFromInt(100)))
		return err
	})
	require.NoError(t, err)

	p, err := s.Products().GetByID(ctx, "c1", "p1")
	require.NoError(t, err)
	assert.True(t, p.Price.Equal(decimal.NewFromInt(120)))
}

func TestProductRepo_AisladoPorEmpresa(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	seedProduct(t, s, "p1", "A1", "100")

	p, err := s.Products().GetByID(ctx, "otra", "p1")
	require.NoError(t, err)
	assert.Nil(t, p)

	_, err = s.Products().SetPrice(ctx, "otra", "p1", decimal.NewFromInt(1))
	assert.ErrorIs(t, err, domain.ErrNotFound)

	err = s.Products().Create(ctx, &entity.Product{ID: "p2", CompanyID: "c1", Code: "A1", Name: "dup"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestPriceChangeLogRepo_ListFiltraYOrdena(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	seedProduct(t, s, "p1", "A1", "100")
	seedProduct(t, s, "p2", "B2", "100")
	s.SeedUser(entity.User{ID: "u1", CompanyID: "c1", Name: "Ana"})

	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	user := "u1"
	reason := "Ajuste proveedor"
	logs := []entity.PriceChangeLog{
		{ID: "l1", CompanyID: "c1", ProductID: "p1", NewPrice: decimal.NewFromInt(110), ChangeSource: entity.ChangeSourceProductDirect, CreatedAt: base},
		{ID: "l2", CompanyID: "c1", ProductID: "p2", NewPrice: decimal.NewFromInt(90), ChangeSource: entity.ChangeSourceImport, CreatedAt: base.Add(time.Hour), CreatedByID: &user, Reason: &reason},
		{ID: "l3", CompanyID: "c2", ProductID: "p1", NewPrice: decimal.NewFromInt(1), ChangeSource: entity.ChangeSourceImport, CreatedAt: base},
	}
	for i := range logs {
		require.NoError(t, s.PriceChangeLogs().Create(ctx, &logs[i]))
	}

	all, err := s.PriceChangeLogs().List(ctx, "c1", repository.PriceChangeLogFilter{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "l2", all[0].ID)
	assert.Equal(t, "B2", all[0].ProductCode)
	require.NotNil(t, all[0].CreatedByName)
	assert.Equal(t, "Ana", *all[0].CreatedByName)

	bySearch, err := s.PriceChangeLogs().List(ctx, "c1", repository.PriceChangeLogFilter{Search: "proveedor"})
	require.NoError(t, err)
	require.Len(t, bySearch, 1)
	assert.Equal(t, "l2", bySearch[0].ID)

	bySource, err := s.PriceChangeLogs().List(ctx, "c1", repository.PriceChangeLogFilter{Source: entity.ChangeSourceProductDirect})
	require.NoError(t, err)
	require.Len(t, bySource, 1)
	assert.Equal(t, "l1", bySource[0].ID)

	to := base.Add(30 * time.Minute)
	byDate, err := s.PriceChangeLogs().List(ctx, "c1", repository.PriceChangeLogFilter{To: &to})
	require.NoError(t, err)
	require.Len(t, byDate, 1)
	assert.Equal(t, "l1", byDate[0].ID)

	from := base.Add(time.Hour)
	byFrom, err := s.PriceChangeLogs().List(ctx, "c1", repository.PriceChangeLogFilter{From: &from, To: &from})
	require.NoError(t, err)
	require.Len(t, byFrom, 1, "los extremos del rango son inclusivos")
	assert.Equal(t, "l2", byFrom[0].ID)

	capped, err := s.PriceChangeLogs().List(ctx, "c1", repository.PriceChangeLogFilter{MaxRows: 1})
	require.NoError(t, err)
	assert.Len(t, capped, 1)
}

func TestSalesPriceListRepo_SetItemPriceDevuelveAnterior(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	seedProduct(t, s, "p1", "A1", "100")
	require.NoError(t, s.PriceLists().Create(ctx, &entity.SalesPriceList{ID: "pl1", CompanyID: "c1", Name: "Mayorista"}))

	prev, err := s.PriceLists().SetItemPrice(ctx, "pl1", "p1", decimal.NewFromInt(80))
	require.NoError(t, err)
	assert.Nil(t, prev)

	prev, err = s.PriceLists().SetItemPrice(ctx, "pl1", "p1", decimal.NewFromInt(85))
	require.NoError(t, err)
	require.NotNil(t, prev)
	assert.True(t, prev.Equal(decimal.NewFromInt(80)))

	items, err := s.PriceLists().Items(ctx, "pl1")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "A1", items[0].ProductCode)
}

func TestPriceAlertRepo_MarkReadConservaPrimeraFecha(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	require.NoError(t, s.PriceAlerts().Create(ctx, &entity.PriceAlert{ID: "a1", CompanyID: "c1", CreatedAt: time.Now()}))

	first := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	ok, err := s.PriceAlerts().MarkRead(ctx, "c1", "a1", first)
	require.NoError(t, err)
	assert.True(t, ok)
	_, err = s.PriceAlerts().MarkRead(ctx, "c1", "a1", first.Add(time.Hour))
	require.NoError(t, err)

	ok, err = s.PriceAlerts().MarkRead(ctx, "c2", "a1", first)
	require.NoError(t, err)
	assert.False(t, ok)

	list, total, err := s.PriceAlerts().ListByCompany(ctx, "c1", false, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.NotNil(t, list[0].ReadAt)
	assert.Equal(t, first, *list[0].ReadAt)

	unread, total, err := s.PriceAlerts().ListByCompany(ctx, "c1", true, 10, 0)
	require.NoError(t, err)
	assert.Empty(t, unread)
	assert.Zero(t, total)
}
