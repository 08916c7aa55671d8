package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/auditoria-precios/internal/application/dto"
	"github.com/jhoicas/auditoria-precios/internal/application/usecase"
	"github.com/jhoicas/auditoria-precios/internal/domain"
	"github.com/jhoicas/auditoria-precios/internal/domain/entity"
)

func TestBulkPriceUseCase_AplicaPorcentajeYAudita(t *testing.T) {
	f := newFixture(t)
	f.product(t, "p1", "A", "100")
	f.product(t, "p2", "B", "33.33")
	f.product(t, "p3", "C", "0")
	uc := usecase.NewBulkPriceUseCase(f.store, f.auditor)

	out, err := uc.Apply(context.Background(), companyID, userID, dto.BulkPriceUpdateRequest{Percentage: dec("25")})
	require.NoError(t, err)

	assert.Equal(t, 2, out.Updated)
	assert.Equal(t, 1, out.Unchanged)
	assert.Equal(t, 2, out.AlertsCreated)
	assert.True(t, f.price(t, "p1").Equal(dec("125")))
	assert.True(t, f.price(t, "p2").Equal(dec("41.66")))

	logs := f.logs(t)
	require.Len(t, logs, 2)
	for _, l := range logs {
		assert.Equal(t, entity.ChangeSourceBulkUpdate, l.ChangeSource)
		require.NotNil(t, l.PreviousPrice)
	}
}

func TestBulkPriceUseCase_SeleccionYDecimales(t *testing.T) {
	f := newFixture(t)
	f.product(t, "p1", "A", "1999")
	f.product(t, "p2", "B", "500")
	uc := usecase.NewBulkPriceUseCase(f.store, f.auditor)
	zero := int32(0)

	out, err := uc.Apply(context.Background(), companyID, userID, dto.BulkPriceUpdateRequest{
		ProductIDs: []string{"p1", "p1"}, Percentage: dec("-10"), Decimals: &zero,
	})
	require.NoError(t, err)

	require.Len(t, out.Items, 1)
	assert.True(t, out.Items[0].NewPrice.Equal(dec("1799")))
	assert.False(t, out.Items[0].AlertCreated)
	assert.True(t, f.price(t, "p2").Equal(dec("500")))
}

func TestBulkPriceUseCase_ProductoInexistenteRevierte(t *testing.T) {
	f := newFixture(t)
	f.product(t, "p1", "A", "100")
	spy := &spyAuditor{}
	uc := usecase.NewBulkPriceUseCase(f.store, spy)

	_, err := uc.Apply(context.Background(), companyID, userID, dto.BulkPriceUpdateRequest{
		ProductIDs: []string{"p1", "fantasma"}, Percentage: dec("10"),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.True(t, f.price(t, "p1").Equal(dec("100")))
	assert.Empty(t, spy.calls)
}

func TestBulkPriceUseCase_Validacion(t *testing.T) {
	uc := usecase.NewBulkPriceUseCase(newFixture(t).store, &spyAuditor{})
	five := int32(5)

	for name, in := range map[string]dto.BulkPriceUpdateRequest{
		"cero":            {Percentage: dec("0")},
		"menor a -100":    {Percentage: dec("-100.5")},
		"decimales > 4":   {Percentage: dec("5"), Decimals: &five},
		"solo IDs vacíos": {ProductIDs: []string{"", ""}, Percentage: dec("50")},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := uc.Apply(context.Background(), companyID, userID, in)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestBulkPriceUseCase_IDsVaciosNoAmplianASeleccion(t *testing.T) {
	f := newFixture(t)
	f.product(t, "p1", "A", "100")
	f.product(t, "p2", "B", "200")
	spy := &spyAuditor{}
	uc := usecase.NewBulkPriceUseCase(f.store, spy)

	_, err := uc.Apply(context.Background(), companyID, userID, dto.BulkPriceUpdateRequest{
		ProductIDs: []string{""}, Percentage: dec("50"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.True(t, f.price(t, "p1").Equal(dec("100")))
	assert.True(t, f.price(t, "p2").Equal(dec("200")))
	assert.Empty(t, spy.calls)
}
