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

func TestProductUseCase_CreateRegistraPrecioInicial(t *testing.T) {
	f := newFixture(t)
	uc := usecase.NewProductUseCase(f.store.Products(), f.auditor)

	p, err := uc.Create(context.Background(), companyID, userID, dto.CreateProductRequest{Code: " X-1 ", Name: "Harina", Price: dec("2500")})
	require.NoError(t, err)
	assert.Equal(t, "X-1", p.Code)

	logs := f.logs(t)
	require.Len(t, logs, 1)
	assert.Nil(t, logs[0].PreviousPrice)
	assert.Equal(t, entity.ChangeSourceProductDirect, logs[0].ChangeSource)
	require.NotNil(t, logs[0].CreatedByName)
	assert.Equal(t, "Laura", *logs[0].CreatedByName)

	_, err = uc.Create(context.Background(), companyID, userID, dto.CreateProductRequest{Code: "X-1", Name: "Otra", Price: dec("1")})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestProductUseCase_CreateValidacion(t *testing.T) {
	uc := usecase.NewProductUseCase(newFixture(t).store.Products(), &spyAuditor{})

	_, err := uc.Create(context.Background(), companyID, userID, dto.CreateProductRequest{Code: "", Name: "x"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(context.Background(), companyID, userID, dto.CreateProductRequest{Code: "a", Name: "x", Price: dec("-1")})
	assert.ErrorIs(t, err, domain.ErrNegativePrice)
}

func TestProductUseCase_UpdatePrice(t *testing.T) {
	f := newFixture(t)
	f.product(t, "p1", "A", "100")
	uc := usecase.NewProductUseCase(f.store.Products(), f.auditor)
	reason := "Alza proveedor"

	out, err := uc.UpdatePrice(context.Background(), companyID, userID, "p1", dto.UpdatePriceRequest{Price: dec("150"), Reason: &reason})
	require.NoError(t, err)

	assert.True(t, out.Changed)
	assert.True(t, out.PreviousPrice.Equal(dec("100")))
	assert.True(t, out.Product.Price.Equal(dec("150")))
	assert.NotEmpty(t, out.Audit.LogID)
	assert.True(t, out.Audit.AlertCreated)

	logs := f.logs(t)
	require.Len(t, logs, 1)
	require.NotNil(t, logs[0].Reason)
	assert.Equal(t, reason, *logs[0].Reason)
}

func TestProductUseCase_UpdatePriceSinCambioNoAudita(t *testing.T) {
	f := newFixture(t)
	f.product(t, "p1", "A", "100")
	spy := &spyAuditor{}
	uc := usecase.NewProductUseCase(f.store.Products(), spy)

	out, err := uc.UpdatePrice(context.Background(), companyID, userID, "p1", dto.UpdatePriceRequest{Price: dec("100.0")})
	require.NoError(t, err)
	assert.False(t, out.Changed)
	assert.Empty(t, spy.calls)
}

func TestProductUseCase_PrecioRedondeadoAEscalaAlmacenada(t *testing.T) {
	f := newFixture(t)
	f.product(t, "p1", "A", "10")
	spy := &spyAuditor{}
	uc := usecase.NewProductUseCase(f.store.Products(), spy)

	out, err := uc.UpdatePrice(context.Background(), companyID, userID, "p1", dto.UpdatePriceRequest{Price: dec("10.00001")})
	require.NoError(t, err)
	assert.False(t, out.Changed, "10.00001 se guarda como 10.0000")
	assert.Empty(t, spy.calls)
	assert.True(t, f.price(t, "p1").Equal(dec("10")))

	out, err = uc.UpdatePrice(context.Background(), companyID, userID, "p1", dto.UpdatePriceRequest{Price: dec("10.12345")})
	require.NoError(t, err)
	assert.True(t, out.Changed)
	require.Len(t, spy.calls, 1)
	assert.True(t, spy.calls[0].NewPrice.Equal(dec("10.1235")))
	assert.True(t, f.price(t, "p1").Equal(dec("10.1235")))
}

func TestProductUseCase_UpdatePriceErrores(t *testing.T) {
	f := newFixture(t)
	f.product(t, "p1", "A", "100")
	uc := usecase.NewProductUseCase(f.store.Products(), &spyAuditor{})

	_, err := uc.UpdatePrice(context.Background(), companyID, userID, "nope", dto.UpdatePriceRequest{Price: dec("1")})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.UpdatePrice(context.Background(), companyID, userID, "p1", dto.UpdatePriceRequest{Price: dec("-1")})
	assert.ErrorIs(t, err, domain.ErrNegativePrice)
	assert.True(t, f.price(t, "p1").Equal(dec("100")))
}

func TestProductUseCase_List(t *testing.T) {
	f := newFixture(t)
	f.product(t, "p1", "B", "1")
	f.product(t, "p2", "A", "1")
	uc := usecase.NewProductUseCase(f.store.Products(), &spyAuditor{})

	out, err := uc.List(context.Background(), companyID, 10, 0)
	require.NoError(t, err)
	require.Len(t, out.Items, 2)
	assert.Equal(t, "A", out.Items[0].Code)

	got, err := uc.GetByID(context.Background(), companyID, "zz")
	require.NoError(t, err)
	assert.Nil(t, got)
}
