package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/auditoria-precios/internal/application/audit"
	"github.com/jhoicas/auditoria-precios/internal/application/dto"
)

// PriceAuditHandler reportes de cambios de precio (protegido).
type PriceAuditHandler struct {
	report *audit.ReportUseCase
}

// NewPriceAuditHandler construye el handler.
func NewPriceAuditHandler(report *audit.ReportUseCase) *PriceAuditHandler {
	return &PriceAuditHandler{report: report}
}

// List godoc
// @Summary      Listar cambios de precio
// @Description  Logs de la empresa (más recientes primero) con resumen del conjunto filtrado.
// @Tags         price-changes
// @Security     Bearer
// @Produce      json
// @Param        date_from           query  string  false  "Desde (YYYY-MM-DD)"
// @Param        date_to             query  string  false  "Hasta (YYYY-MM-DD, día completo)"
// @Param        min_change_percent  query  number  false  "Cambio mínimo absoluto en %"
// @Param        search              query  string  false  "Producto, código o motivo"
// @Param        product_id          query  string  false  "ID de producto"
// @Param        change_source       query  string  false  "PRICE_LIST | PRODUCT_DIRECT | BULK_UPDATE | IMPORT"
// @Param        limit               query  int     false  "Límite (máx 500)"  default(100)
// @Param        offset              query  int     false  "Offset"            default(0)
// @Success      200  {object}  dto.PriceChangeLogListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/price-changes [get]
func (h *PriceAuditHandler) List(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return missingCompany(c)
	}
	var q dto.PriceChangeLogQuery
	if err := c.QueryParser(&q); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_PARAMS", Message: "parámetros inválidos"})
	}
	out, err := h.report.ListLogs(c.UserContext(), companyID, q)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Export godoc
// @Summary      Exportar cambios de precio
// @Description  Mismos filtros que el listado, sin paginar. CSV con BOM UTF-8, XLSX o PDF.
// @Tags         price-changes
// @Security     Bearer
// @Produce      text/csv
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Produce      application/pdf
// @Param        format  query  string  false  "csv | xlsx | pdf"  default(csv)
// @Success      200  {file}    file
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/price-changes/export [get]
func (h *PriceAuditHandler) Export(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return missingCompany(c)
	}
	var q dto.PriceChangeLogQuery
	if err := c.QueryParser(&q); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_PARAMS", Message: "parámetros inválidos"})
	}
	exp, err := h.report.Export(c.UserContext(), companyID, c.Query("format", audit.FormatCSV), q)
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, exp.ContentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+exp.Filename+`"`)
	return c.Send(exp.Content)
}

// History godoc
// @Summary      Historial de precios de un producto
// @Tags         price-changes
// @Security     Bearer
// @Produce      json
// @Param        id     path   string  true   "ID del producto"
// @Param        limit  query  int     false  "Límite (máx 500)"  default(100)
// @Success      200  {object}  dto.ProductPriceHistoryResponse
// @Router       /api/products/{id}/price-history [get]
func (h *PriceAuditHandler) History(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return missingCompany(c)
	}
	out, err := h.report.ProductHistory(c.UserContext(), companyID, c.Params("id"), c.Query("limit"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
