package usecase

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/jhoicas/auditoria-precios/internal/application/dto"
	"github.com/jhoicas/auditoria-precios/internal/domain"
	"github.com/jhoicas/auditoria-precios/internal/domain/entity"
	"github.com/jhoicas/auditoria-precios/internal/domain/priceaudit"
	"github.com/jhoicas/auditoria-precios/internal/domain/repository"
)

// MaxImportBytes tamaño máximo del archivo de importación.
const MaxImportBytes = 10 << 20

// ImportUseCase importación de precios desde archivos planos (codigo;precio[;motivo]).
// Acepta UTF-8 (con o sin BOM), ISO-8859-1 y Windows-1252, que es lo que exportan
// las hojas de cálculo en español.
type ImportUseCase struct {
	productRepo repository.ProductRepository
	auditor     PriceAuditor
	log         zerolog.Logger
}

// NewImportUseCase construye el caso de uso.
func NewImportUseCase(productRepo repository.ProductRepository, auditor PriceAuditor, log zerolog.Logger) *ImportUseCase {
	return &ImportUseCase{
		productRepo: productRepo,
		auditor:     auditor,
		log:         log.With().Str("component", "price_import").Logger(),
	}
}

// Import procesa el archivo línea por línea. Los errores de una fila no detienen el resto;
// solo un charset desconocido o un archivo ilegible devuelven error.
func (uc *ImportUseCase) Import(ctx context.Context, companyID, userID string, r io.Reader, charset string) (*dto.ImportResultResponse, error) {
	decoded, err := decodingReader(r, charset)
	if err != nil {
		return nil, err
	}
	data, err := io.ReadAll(io.LimitReader(decoded, MaxImportBytes+1))
	if err != nil {
		return nil, fmt.Errorf("import: leer archivo: %w", err)
	}
	if len(data) > MaxImportBytes {
		return nil, fmt.Errorf("%w: el archivo supera %d bytes", domain.ErrInvalidInput, MaxImportBytes)
	}

	delim := detectDelimiter(data)
	cr := csv.NewReader(bytes.NewReader(data))
	cr.Comma = delim
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.LazyQuotes = true

	out := &dto.ImportResultResponse{Errors: []dto.ImportRowError{}}
	first := true
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		var parseErr *csv.ParseError
		if errors.As(err, &parseErr) {
			out.Errors = append(out.Errors, dto.ImportRowError{Line: parseErr.Line, Message: parseErr.Err.Error()})
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("import: %w", err)
		}
		line, _ := cr.FieldPos(0)
		if first {
			first = false
			if isHeader(record) {
				continue
			}
		}

		out.Processed++
		changed, alert, rowErr := uc.importRow(ctx, companyID, userID, record, delim)
		switch {
		case rowErr != nil:
			out.Errors = append(out.Errors, dto.ImportRowError{Line: line, Message: rowErr.Error()})
		case changed:
			out.Updated++
			if alert {
				out.AlertsCreated++
			}
		default:
			out.Unchanged++
		}
	}

	uc.log.Info().
		Str("company_id", companyID).
		Int("processed", out.Processed).
		Int("updated", out.Updated).
		Int("errors", len(out.Errors)).
		Msg("importación de precios terminada")
	return out, nil
}

func (uc *ImportUseCase) importRow(ctx context.Context, companyID, userID string, record []string, delim rune) (changed, alert bool, err error) {
	if len(record) < 2 {
		return false, false, errors.New("se esperaban al menos las columnas codigo y precio")
	}
	code := strings.TrimSpace(record[0])
	if code == "" {
		return false, false, errors.New("codigo vacío")
	}
	price, err := parseImportPrice(record[1], delim)
	if err != nil {
		return false, false, err
	}
	product, err := uc.productRepo.GetByCompanyAndCode(ctx, companyID, code)
	if err != nil {
		return false, false, err
	}
	if product == nil {
		return false, false, fmt.Errorf("producto %q no encontrado", code)
	}
	previous, err := uc.productRepo.SetPrice(ctx, companyID, product.ID, price)
	if err != nil {
		return false, false, err
	}
	if previous.Equal(price) {
		return false, false, nil
	}
	var reason *string
	if len(record) > 2 {
		reason = optionalString(strings.TrimSpace(record[2]))
	}
	res := uc.auditor.LogPriceChange(ctx, dto.LogPriceChangeInput{
		ProductID:     product.ID,
		CompanyID:     companyID,
		PreviousPrice: &previous,
		NewPrice:      price,
		ChangeSource:  entity.ChangeSourceImport,
		CreatedByID:   optionalString(userID),
		Reason:        reason,
	})
	return true, res.AlertCreated, nil
}

func decodingReader(r io.Reader, charset string) (io.Reader, error) {
	switch strings.ToLower(strings.TrimSpace(charset)) {
	case "", "utf-8", "utf8":
		return transform.NewReader(r, unicode.BOMOverride(transform.Nop)), nil
	case "iso-8859-1", "iso8859-1", "latin1":
		return transform.NewReader(r, charmap.ISO8859_1.NewDecoder()), nil
	case "windows-1252", "cp1252":
		return transform.NewReader(r, charmap.Windows1252.NewDecoder()), nil
	}
	return nil, fmt.Errorf("%w: charset %q no soportado", domain.ErrInvalidInput, charset)
}

// detectDelimiter ';' si la primera línea tiene más ';' que ',' (formato regional con coma decimal).
func detectDelimiter(data []byte) rune {
	firstLine := data
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		firstLine = data[:i]
	}
	if bytes.Count(firstLine, []byte{';'}) > bytes.Count(firstLine, []byte{','}) {
		return ';'
	}
	return ','
}

func isHeader(record []string) bool {
	if len(record) == 0 {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(record[0])) {
	case "code", "codigo", "código":
		return true
	}
	return false
}

func parseImportPrice(raw string, delim rune) (decimal.Decimal, error) {
	s := strings.TrimSpace(raw)
	if delim == ';' && strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	}
	price, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("precio inválido %q", raw)
	}
	if price.IsNegative() {
		return decimal.Zero, domain.ErrNegativePrice
	}
	return priceaudit.RoundPrice(price), nil
}
