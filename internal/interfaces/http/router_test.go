package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/auditoria-precios/internal/application/audit"
	"github.com/jhoicas/auditoria-precios/internal/application/dto"
	"github.com/jhoicas/auditoria-precios/internal/application/usecase"
	"github.com/jhoicas/auditoria-precios/internal/domain/entity"
	"github.com/jhoicas/auditoria-precios/internal/infrastructure/memory"
	"github.com/jhoicas/auditoria-precios/internal/infrastructure/xlsx"
	apphttp "github.com/jhoicas/auditoria-precios/internal/interfaces/http"
)

const otherCompanyID = "00000000-0000-0000-0000-000000000009"

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

// newAPI arma el router completo sobre el store en memoria.
func newAPI(t *testing.T) *fiber.App {
	t.Helper()
	s := memory.NewStore()
	s.SeedUser(entity.User{ID: testUserID, CompanyID: testCompanyID, Name: "Laura"})
	log := zerolog.Nop()
	auditor := audit.NewAuditUseCase(s, s.AlertSettings(), decimal.Zero, log)

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		ProductUC:   usecase.NewProductUseCase(s.Products(), auditor),
		BulkPriceUC: usecase.NewBulkPriceUseCase(s, auditor),
		ImportUC:    usecase.NewImportUseCase(s.Products(), auditor, log),
		PriceListUC: usecase.NewPriceListUseCase(s.PriceLists(), s.Products(), auditor),
		ReportUC:    audit.NewReportUseCase(s.PriceChangeLogs(), xlsx.NewExcelizeReportGenerator(), nil, 1000, log),
		AlertUC:     audit.NewAlertUseCase(s.PriceAlerts(), s.AlertSettings(), decimal.Zero),
		JWTSecret:   testJWTSecret,
	})
	return app
}

func call(t *testing.T, app *fiber.App, method, path, auth string, body interface{}) *http.Response {
	t.Helper()
	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	req.Header.Set("Authorization", auth)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

// createProduct crea un producto como admin y devuelve su ID.
func createProduct(t *testing.T, app *fiber.App, code, price string) string {
	t.Helper()
	resp := call(t, app, http.MethodPost, "/api/products", bearer(t, testCompanyID, entity.RoleAdmin), dto.CreateProductRequest{
		Code: code, Name: "Producto " + code, Price: decimal.RequireFromString(price),
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var p dto.ProductResponse
	decode(t, resp, &p)
	return p.ID
}

// ──────────────────────────────────────────────────────────────────────────────
// Productos y log de cambios
// ──────────────────────────────────────────────────────────────────────────────

func TestRouter_CambioDePrecioQuedaEnElLog(t *testing.T) {
	app := newAPI(t)
	admin := bearer(t, testCompanyID, entity.RoleAdmin)
	id := createProduct(t, app, "A-1", "100")

	resp := call(t, app, http.MethodPut, "/api/products/"+id+"/price", admin, dto.UpdatePriceRequest{Price: decimal.NewFromInt(150)})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var upd dto.UpdatePriceResponse
	decode(t, resp, &upd)
	assert.True(t, upd.Changed)
	assert.True(t, upd.Audit.AlertCreated)
	assert.NotEmpty(t, upd.Audit.LogID)

	var list dto.PriceChangeLogListResponse
	decode(t, call(t, app, http.MethodGet, "/api/price-changes", admin, nil), &list)
	require.Len(t, list.Logs, 2)
	assert.Equal(t, 2, list.Total)
	assert.True(t, list.Logs[0].NewPrice.Equal(decimal.NewFromInt(150)))
	assert.Equal(t, "PRODUCT_DIRECT", list.Logs[0].ChangeSource)
	require.NotNil(t, list.Logs[0].CreatedByName)
	assert.Equal(t, "Laura", *list.Logs[0].CreatedByName)

	var hist dto.ProductPriceHistoryResponse
	decode(t, call(t, app, http.MethodGet, "/api/products/"+id+"/price-history", admin, nil), &hist)
	assert.Equal(t, id, hist.ProductID)
	assert.Len(t, hist.Logs, 2)
}

func TestRouter_MismoPrecioNoGeneraLog(t *testing.T) {
	app := newAPI(t)
	admin := bearer(t, testCompanyID, entity.RoleAdmin)
	id := createProduct(t, app, "A-1", "100")

	resp := call(t, app, http.MethodPut, "/api/products/"+id+"/price", admin, dto.UpdatePriceRequest{Price: decimal.RequireFromString("100.00")})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var upd dto.UpdatePriceResponse
	decode(t, resp, &upd)
	assert.False(t, upd.Changed)

	var list dto.PriceChangeLogListResponse
	decode(t, call(t, app, http.MethodGet, "/api/price-changes", admin, nil), &list)
	assert.Equal(t, 1, list.Total, "solo el precio inicial")
}

func TestRouter_PrecioNegativo_Retorna400(t *testing.T) {
	app := newAPI(t)
	id := createProduct(t, app, "A-1", "100")

	resp := call(t, app, http.MethodPut, "/api/products/"+id+"/price", bearer(t, testCompanyID, entity.RoleVendedor),
		dto.UpdatePriceRequest{Price: decimal.NewFromInt(-1)})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "NEGATIVE_PRICE")
}

func TestRouter_ProductoDeOtraEmpresa_Retorna404(t *testing.T) {
	app := newAPI(t)
	id := createProduct(t, app, "A-1", "100")

	resp := call(t, app, http.MethodGet, "/api/products/"+id, bearer(t, otherCompanyID, entity.RoleAdmin), nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	var list dto.PriceChangeLogListResponse
	decode(t, call(t, app, http.MethodGet, "/api/price-changes", bearer(t, otherCompanyID, entity.RoleAdmin), nil), &list)
	assert.Empty(t, list.Logs)
	assert.Equal(t, 0, list.Total)
}

// ──────────────────────────────────────────────────────────────────────────────
// Reporte
// ──────────────────────────────────────────────────────────────────────────────

func TestRouter_ParametroInvalido_Retorna400(t *testing.T) {
	app := newAPI(t)
	resp := call(t, app, http.MethodGet, "/api/price-changes?min_change_percent=abc", bearer(t, testCompanyID, entity.RoleAdmin), nil)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var e dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&e))
	assert.Equal(t, "INVALID_PARAMS", e.Code)
}

func TestRouter_ExportCSV(t *testing.T) {
	app := newAPI(t)
	createProduct(t, app, "A-1", "100")

	resp := call(t, app, http.MethodGet, "/api/price-changes/export?format=csv", bearer(t, testCompanyID, entity.RoleVendedor), nil)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentType), "text/csv")
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), "attachment; filename=\"cambios-precios-")
	body, _ := io.ReadAll(resp.Body)
	assert.True(t, strings.HasPrefix(string(body), "\uFEFF"), "el CSV debe empezar con BOM")
	assert.Contains(t, string(body), "\"A-1\"")
}

func TestRouter_ExportXLSX(t *testing.T) {
	app := newAPI(t)
	createProduct(t, app, "A-1", "100")

	resp := call(t, app, http.MethodGet, "/api/price-changes/export?format=xlsx", bearer(t, testCompanyID, entity.RoleAdmin), nil)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), ".xlsx")
	body, _ := io.ReadAll(resp.Body)
	assert.True(t, bytes.HasPrefix(body, []byte("PK")), "xlsx es un zip")
}

func TestRouter_ExportFormatoDesconocido_Retorna400(t *testing.T) {
	app := newAPI(t)
	resp := call(t, app, http.MethodGet, "/api/price-changes/export?format=doc", bearer(t, testCompanyID, entity.RoleAdmin), nil)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "UNSUPPORTED_FORMAT")
}

func TestRouter_SinToken_Retorna401(t *testing.T) {
	app := newAPI(t)
	req := httptest.NewRequest(http.MethodGet, "/api/price-changes", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Escrituras masivas (solo admin)
// ──────────────────────────────────────────────────────────────────────────────

func TestRouter_BulkVendedor_Retorna403(t *testing.T) {
	app := newAPI(t)
	createProduct(t, app, "A-1", "100")

	resp := call(t, app, http.MethodPost, "/api/products/prices/bulk", bearer(t, testCompanyID, entity.RoleVendedor),
		dto.BulkPriceUpdateRequest{Percentage: decimal.NewFromInt(10)})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestRouter_BulkAdmin(t *testing.T) {
	app := newAPI(t)
	id := createProduct(t, app, "A-1", "100")

	resp := call(t, app, http.MethodPost, "/api/products/prices/bulk", bearer(t, testCompanyID, entity.RoleAdmin),
		dto.BulkPriceUpdateRequest{ProductIDs: []string{id}, Percentage: decimal.NewFromInt(10)})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out dto.BulkPriceUpdateResponse
	decode(t, resp, &out)
	assert.Equal(t, 1, out.Updated)
	require.Len(t, out.Items, 1)
	assert.True(t, out.Items[0].NewPrice.Equal(decimal.NewFromInt(110)))
}

func TestRouter_ImportCuerpoCrudo(t *testing.T) {
	app := newAPI(t)
	createProduct(t, app, "A-1", "100")

	req := httptest.NewRequest(http.MethodPost, "/api/products/prices/import", strings.NewReader("codigo;precio\nA-1;1.050,00\nX-9;10\n"))
	req.Header.Set(fiber.HeaderContentType, "text/csv")
	req.Header.Set("Authorization", bearer(t, testCompanyID, entity.RoleAdmin))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out dto.ImportResultResponse
	decode(t, resp, &out)
	assert.Equal(t, 2, out.Processed)
	assert.Equal(t, 1, out.Updated)
	require.Len(t, out.Errors, 1)
	assert.Equal(t, 3, out.Errors[0].Line)
}

// ──────────────────────────────────────────────────────────────────────────────
// Listas de precios
// ──────────────────────────────────────────────────────────────────────────────

func TestRouter_PrecioEnLista(t *testing.T) {
	app := newAPI(t)
	admin := bearer(t, testCompanyID, entity.RoleAdmin)
	productID := createProduct(t, app, "A-1", "100")

	resp := call(t, app, http.MethodPost, "/api/price-lists", admin, dto.CreatePriceListRequest{Name: "Mayorista"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var list dto.PriceListResponse
	decode(t, resp, &list)

	resp = call(t, app, http.MethodPut, "/api/price-lists/"+list.ID+"/items/"+productID, admin, dto.SetItemPriceRequest{Price: decimal.NewFromInt(90)})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	var items []dto.PriceListItemResponse
	decode(t, call(t, app, http.MethodGet, "/api/price-lists/"+list.ID+"/items", admin, nil), &items)
	require.Len(t, items, 1)
	assert.True(t, items[0].Price.Equal(decimal.NewFromInt(90)))

	var logs dto.PriceChangeLogListResponse
	decode(t, call(t, app, http.MethodGet, "/api/price-changes?change_source=PRICE_LIST", admin, nil), &logs)
	require.Len(t, logs.Logs, 1)
	require.NotNil(t, logs.Logs[0].PriceListName)
	assert.Equal(t, "Mayorista", *logs.Logs[0].PriceListName)
}

// ──────────────────────────────────────────────────────────────────────────────
// Alertas
// ──────────────────────────────────────────────────────────────────────────────

func TestRouter_AlertasYLectura(t *testing.T) {
	app := newAPI(t)
	admin := bearer(t, testCompanyID, entity.RoleAdmin)
	id := createProduct(t, app, "A-1", "100")
	call(t, app, http.MethodPut, "/api/products/"+id+"/price", admin, dto.UpdatePriceRequest{Price: decimal.NewFromInt(200)}).Body.Close()

	var alerts dto.PriceAlertListResponse
	decode(t, call(t, app, http.MethodGet, "/api/price-alerts?unread=true", admin, nil), &alerts)
	require.Len(t, alerts.Items, 1)
	assert.Equal(t, string(entity.SeverityCritica), alerts.Items[0].Severity)

	resp := call(t, app, http.MethodPatch, "/api/price-alerts/"+alerts.Items[0].ID+"/read", admin, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	decode(t, call(t, app, http.MethodGet, "/api/price-alerts?unread=true", admin, nil), &alerts)
	assert.Empty(t, alerts.Items)
}

func TestRouter_UmbralSoloAdmin(t *testing.T) {
	app := newAPI(t)
	threshold := decimal.NewFromInt(5)
	in := dto.UpdateAlertSettingsRequest{ThresholdPercent: &threshold}

	resp := call(t, app, http.MethodPut, "/api/price-alerts/settings", bearer(t, testCompanyID, entity.RoleVendedor), in)
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = call(t, app, http.MethodPut, "/api/price-alerts/settings", bearer(t, testCompanyID, entity.RoleAdmin), in)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out dto.AlertSettingsResponse
	decode(t, resp, &out)
	assert.True(t, out.ThresholdPercent.Equal(threshold))
	assert.False(t, out.IsDefault)

	var got dto.AlertSettingsResponse
	decode(t, call(t, app, http.MethodGet, "/api/price-alerts/settings", bearer(t, testCompanyID, entity.RoleVendedor), nil), &got)
	assert.True(t, got.ThresholdPercent.Equal(threshold))
}
