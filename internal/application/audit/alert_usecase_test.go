package audit_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/auditoria-precios/internal/application/audit"
	"github.com/jhoicas/auditoria-precios/internal/application/dto"
	"github.com/jhoicas/auditoria-precios/internal/domain"
)

func TestAlertUseCase_ListarYMarcarLeida(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	auditor := newAuditUseCase(s)
	first := auditor.LogPriceChange(ctx, input(ptr(dec("100")), "150"))
	second := auditor.LogPriceChange(ctx, input(ptr(dec("150")), "100"))
	require.True(t, first.AlertCreated)
	require.True(t, second.AlertCreated)

	uc := audit.NewAlertUseCase(s.PriceAlerts(), s.AlertSettings(), decimal.Zero)

	all, err := uc.List(ctx, companyID, false, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, all.Page.Total)
	require.Len(t, all.Items, 2)

	require.NoError(t, uc.MarkRead(ctx, companyID, all.Items[0].ID))

	unread, err := uc.List(ctx, companyID, true, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, unread.Page.Total)
	assert.Equal(t, all.Items[1].ID, unread.Items[0].ID)
	assert.False(t, unread.Items[0].Read)

	assert.ErrorIs(t, uc.MarkRead(ctx, companyID, "no-existe"), domain.ErrNotFound)
	assert.ErrorIs(t, uc.MarkRead(ctx, "otra-empresa", all.Items[1].ID), domain.ErrNotFound)
}

func TestAlertUseCase_Configuracion(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	uc := audit.NewAlertUseCase(s.PriceAlerts(), s.AlertSettings(), dec("15"))

	got, err := uc.GetSettings(ctx, companyID)
	require.NoError(t, err)
	assert.True(t, got.IsDefault)
	assert.True(t, got.Enabled)
	assert.True(t, got.ThresholdPercent.Equal(dec("15")))

	threshold := dec("35")
	updated, err := uc.UpdateSettings(ctx, companyID, dto.UpdateAlertSettingsRequest{ThresholdPercent: &threshold})
	require.NoError(t, err)
	assert.False(t, updated.IsDefault)
	assert.True(t, updated.Enabled)
	assert.True(t, updated.ThresholdPercent.Equal(threshold))

	off := false
	updated, err = uc.UpdateSettings(ctx, companyID, dto.UpdateAlertSettingsRequest{Enabled: &off})
	require.NoError(t, err)
	assert.False(t, updated.Enabled)
	assert.True(t, updated.ThresholdPercent.Equal(threshold))

	got, err = uc.GetSettings(ctx, companyID)
	require.NoError(t, err)
	assert.False(t, got.IsDefault)
	assert.False(t, got.Enabled)
}

func TestAlertUseCase_ConfiguracionInvalida(t *testing.T) {
	uc := audit.NewAlertUseCase(nil, newStore(t).AlertSettings(), decimal.Zero)

	for _, raw := range []string{"0", "-5", "1000.01"} {
		v := dec(raw)
		_, err := uc.UpdateSettings(context.Background(), companyID, dto.UpdateAlertSettingsRequest{ThresholdPercent: &v})
		assert.ErrorIs(t, err, domain.ErrInvalidInput, raw)
	}
}

func TestAuditoria_UmbralSigueConfiguracion(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	alerts := audit.NewAlertUseCase(s.PriceAlerts(), s.AlertSettings(), decimal.Zero)
	threshold := dec("60")
	_, err := alerts.UpdateSettings(ctx, companyID, dto.UpdateAlertSettingsRequest{ThresholdPercent: &threshold})
	require.NoError(t, err)

	res := newAuditUseCase(s).LogPriceChange(ctx, input(ptr(dec("100")), "150"))
	assert.NotEmpty(t, res.LogID)
	assert.False(t, res.AlertCreated)
}
