package priceaudit

import (
	"strings"

	"github.com/jhoicas/auditoria-precios/internal/domain/entity"
)

// sourceLabels etiquetas usadas en las exportaciones (CSV, XLSX, PDF).
var sourceLabels = map[entity.ChangeSource]string{
	entity.ChangeSourcePriceList:     "Lista de Precios",
	entity.ChangeSourceProductDirect: "Producto Directo",
	entity.ChangeSourceBulkUpdate:    "Actualización Masiva",
	entity.ChangeSourceImport:        "Importación",
}

// displaySourceLabels etiquetas que muestra la interfaz web. Difieren a propósito de
// sourceLabels; no unificar sin cambiar también los textos visibles del tablero.
var displaySourceLabels = map[entity.ChangeSource]string{
	entity.ChangeSourcePriceList:     "Lista de Precios",
	entity.ChangeSourceProductDirect: "Directo",
	entity.ChangeSourceBulkUpdate:    "Masivo",
	entity.ChangeSourceImport:        "Importacion",
}

// SourceLabel etiqueta de exportación. Un valor desconocido se devuelve sin cambios.
func SourceLabel(source string) string {
	if l, ok := sourceLabels[entity.ChangeSource(source)]; ok {
		return l
	}
	return source
}

// DisplaySourceLabel etiqueta de la interfaz web. Un valor desconocido se devuelve sin cambios.
func DisplaySourceLabel(source string) string {
	if l, ok := displaySourceLabels[entity.ChangeSource(source)]; ok {
		return l
	}
	return source
}

// CSVColumns cabeceras del CSV de auditoría, en el orden de ToCSVRow.
var CSVColumns = []string{
	"Fecha", "Producto", "Código", "Precio Anterior", "Precio Nuevo",
	"Cambio %", "Origen", "Lista de Precios", "Usuario", "Motivo",
}

// CSVHeader fila de cabecera con el mismo escapado que las filas.
func CSVHeader() string {
	return joinQuoted(CSVColumns)
}

// RowCells devuelve las 10 celdas (ya formateadas) de un log. Las comparten CSV, XLSX y PDF.
func RowCells(l entity.PriceChangeLogDetail) []string {
	previous := "-"
	if l.PreviousPrice != nil {
		previous = l.PreviousPrice.StringFixed(2)
	}
	return []string{
		l.CreatedAt.UTC().Format("2006-01-02 15:04:05"),
		l.ProductName,
		l.ProductCode,
		previous,
		l.NewPrice.StringFixed(2),
		l.ChangePercentage.StringFixed(1) + "%",
		SourceLabel(string(l.ChangeSource)),
		orDash(l.PriceListName),
		orDash(l.CreatedByName),
		orDash(l.Reason),
	}
}

// ToCSVRow fila CSV de 10 columnas; cada celda va entre comillas y las comillas internas
// se duplican. Armar el documento completo es responsabilidad del llamador.
func ToCSVRow(l entity.PriceChangeLogDetail) string {
	return joinQuoted(RowCells(l))
}

func joinQuoted(cells []string) string {
	var b strings.Builder
	for i, c := range cells {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte('"')
		b.WriteString(strings.ReplaceAll(c, `"`, `""`))
		b.WriteByte('"')
	}
	return b.String()
}

func orDash(s *string) string {
	if s == nil || *s == "" {
		return "-"
	}
	return *s
}
