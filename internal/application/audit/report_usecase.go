package audit

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/auditoria-precios/internal/application/dto"
	"github.com/jhoicas/auditoria-precios/internal/domain"
	"github.com/jhoicas/auditoria-precios/internal/domain/entity"
	"github.com/jhoicas/auditoria-precios/internal/domain/priceaudit"
	"github.com/jhoicas/auditoria-precios/internal/domain/repository"
)

// Formatos de exportación soportados.
const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
	FormatPDF  = "pdf"
)

const utf8BOM = "\uFEFF"

// Export documento exportado listo para descargar.
type Export struct {
	Content     []byte
	Filename    string
	ContentType string
}

// ReportUseCase consultas de solo lectura sobre el log de cambios: tablero, exportaciones
// e historial por producto.
type ReportUseCase struct {
	logRepo repository.PriceChangeLogRepository
	xlsx    ReportRenderer
	pdf     ReportRenderer
	maxRows int
	log     zerolog.Logger
	now     func() time.Time
}

// NewReportUseCase construye el caso de uso. maxRows limita cuántos registros se traen por consulta.
func NewReportUseCase(
	logRepo repository.PriceChangeLogRepository,
	xlsx, pdf ReportRenderer,
	maxRows int,
	log zerolog.Logger,
) *ReportUseCase {
	return &ReportUseCase{
		logRepo: logRepo,
		xlsx:    xlsx,
		pdf:     pdf,
		maxRows: maxRows,
		log:     log.With().Str("component", "price_report").Logger(),
		now:     time.Now,
	}
}

// ListLogs página de logs más el resumen del conjunto filtrado completo.
func (uc *ReportUseCase) ListLogs(ctx context.Context, companyID string, q dto.PriceChangeLogQuery) (*dto.PriceChangeLogListResponse, error) {
	filtered, inScope, err := uc.collect(ctx, companyID, q)
	if err != nil {
		return nil, err
	}
	limit := priceaudit.ClampLimit(q.Limit)
	offset := priceaudit.ClampOffset(q.Offset)

	return &dto.PriceChangeLogListResponse{
		Logs:         toLogItems(paginate(filtered, limit, offset)),
		Total:        len(filtered),
		TotalInScope: inScope,
		Summary:      toSummaryDTO(priceaudit.Summarize(filtered)),
		Limit:        limit,
		Offset:       offset,
	}, nil
}

// Export genera el documento en el formato pedido con todos los registros filtrados (sin paginar).
func (uc *ReportUseCase) Export(ctx context.Context, companyID, format string, q dto.PriceChangeLogQuery) (*Export, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		format = FormatCSV
	}
	if format != FormatCSV && format != FormatXLSX && format != FormatPDF {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedFormat, format)
	}

	filtered, _, err := uc.collect(ctx, companyID, q)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	base := "cambios-precios-" + now.Format("20060102-150405")

	switch format {
	case FormatXLSX, FormatPDF:
		renderer, contentType := uc.xlsx, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
		if format == FormatPDF {
			renderer, contentType = uc.pdf, "application/pdf"
		}
		if renderer == nil {
			return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedFormat, format)
		}
		content, err := renderer.Render(ctx, Report{
			CompanyID:   companyID,
			GeneratedAt: now,
			DateFrom:    q.DateFrom,
			DateTo:      q.DateTo,
			Rows:        filtered,
			Summary:     priceaudit.Summarize(filtered),
		})
		if err != nil {
			return nil, fmt.Errorf("price report: render %s: %w", format, err)
		}
		return &Export{Content: content, Filename: base + "." + format, ContentType: contentType}, nil
	default:
		return &Export{
			Content:     BuildCSV(filtered),
			Filename:    base + ".csv",
			ContentType: "text/csv; charset=utf-8",
		}, nil
	}
}

// BuildCSV documento completo: BOM UTF-8 (para Excel), cabecera y una fila por log.
func BuildCSV(rows []entity.PriceChangeLogDetail) []byte {
	var buf bytes.Buffer
	buf.WriteString(utf8BOM)
	buf.WriteString(priceaudit.CSVHeader())
	buf.WriteString("\n")
	for _, r := range rows {
		buf.WriteString(priceaudit.ToCSVRow(r))
		buf.WriteString("\n")
	}
	return buf.Bytes()
}

// ProductHistory historial de un producto (más reciente primero) con sus estadísticas.
func (uc *ReportUseCase) ProductHistory(ctx context.Context, companyID, productID, limitRaw string) (*dto.ProductPriceHistoryResponse, error) {
	if productID == "" {
		return nil, fmt.Errorf("%w: product_id requerido", domain.ErrInvalidInput)
	}
	rows, err := uc.logRepo.ListByProduct(ctx, companyID, productID, priceaudit.ClampLimit(limitRaw))
	if err != nil {
		return nil, fmt.Errorf("price report: historial: %w", err)
	}
	withPercentages(rows)

	plain := make([]entity.PriceChangeLog, 0, len(rows))
	for _, r := range rows {
		plain = append(plain, r.PriceChangeLog)
	}
	out := &dto.ProductPriceHistoryResponse{
		ProductID: productID,
		Logs:      toLogItems(rows),
	}
	if s := priceaudit.ComputeStats(plain); s != nil {
		out.Stats = &dto.PriceStatsDTO{
			MinPrice:     s.MinPrice,
			MaxPrice:     s.MaxPrice,
			AvgPrice:     s.AvgPrice.Round(2),
			FirstRecord:  s.FirstRecord,
			LastRecord:   s.LastRecord,
			TotalChanges: s.TotalChanges,
		}
	}
	return out, nil
}

// collect trae el superconjunto de la persistencia (fechas, búsqueda, producto, origen) y aplica
// en memoria el filtro por porcentaje mínimo. Devuelve también cuántos había antes de ese filtro.
func (uc *ReportUseCase) collect(ctx context.Context, companyID string, q dto.PriceChangeLogQuery) ([]entity.PriceChangeLogDetail, int, error) {
	dr, err := priceaudit.BuildDateFilter(q.DateFrom, q.DateTo)
	if err != nil {
		return nil, 0, err
	}
	source := entity.ChangeSource(strings.TrimSpace(q.ChangeSource))
	if source != "" && !source.Valid() {
		return nil, 0, fmt.Errorf("%w: %q", domain.ErrInvalidSource, source)
	}

	f := repository.PriceChangeLogFilter{
		Search:    strings.TrimSpace(q.Search),
		ProductID: strings.TrimSpace(q.ProductID),
		Source:    source,
		MaxRows:   uc.maxRows,
	}
	if dr != nil {
		f.From, f.To = dr.GTE, dr.LTE
	}

	rows, err := uc.logRepo.List(ctx, companyID, f)
	if err != nil {
		return nil, 0, fmt.Errorf("price report: listar: %w", err)
	}
	if uc.maxRows > 0 && len(rows) >= uc.maxRows {
		uc.log.Warn().
			Str("company_id", companyID).
			Int("max_rows", uc.maxRows).
			Msg("reporte truncado: acote el rango de fechas")
	}
	withPercentages(rows)

	filtered, err := priceaudit.FilterByMinChange(rows, q.MinChangePercent)
	if err != nil {
		return nil, 0, err
	}
	return filtered, len(rows), nil
}

func paginate(rows []entity.PriceChangeLogDetail, limit, offset int) []entity.PriceChangeLogDetail {
	if offset >= len(rows) {
		return nil
	}
	end := min(offset+limit, len(rows))
	return rows[offset:end]
}
