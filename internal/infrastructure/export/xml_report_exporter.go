// Package export serializa el reporte de ventas por periodo a XML y calcula su ETag
// sobre la forma canónica (C14N) del documento.
package export

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/xml"
	"fmt"
	"strconv"
	"time"

	"github.com/beevik/etree"
	"github.com/ucarion/c14n"

	"github.com/jhoicas/ventas-api/internal/application/dto"
	"github.com/jhoicas/ventas-api/internal/application/sales"
)

// NamespaceReport namespace del documento de reporte.
const NamespaceReport = "urn:ventas-api:reporte-ventas:1"

var _ sales.PeriodReportExporter = (*XMLReportExporter)(nil)

// XMLReportExporter implementa sales.PeriodReportExporter con etree.
type XMLReportExporter struct{}

// NewXMLReportExporter crea el exportador.
func NewXMLReportExporter() *XMLReportExporter {
	return &XMLReportExporter{}
}

// ExportPeriodReport devuelve el XML indentado y el ETag (SHA-256 del XML canónico, entre comillas).
func (e *XMLReportExporter) ExportPeriodReport(_ context.Context, report *dto.PeriodReportResponse) ([]byte, string, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("ReporteVentas")
	root.CreateAttr("xmlns", NamespaceReport)
	root.CreateAttr("fechaInicio", report.From.Format(time.DateOnly))
	root.CreateAttr("fechaFin", report.To.Format(time.DateOnly))

	stats := root.CreateElement("Estadisticas")
	stats.CreateAttr("totalVentas", strconv.Itoa(report.Statistics.TotalSalesCount))
	stats.CreateAttr("totalIngresos", report.Statistics.TotalRevenue.StringFixed(2))
	stats.CreateAttr("promedioVenta", report.Statistics.AverageSaleValue.StringFixed(2))

	list := root.CreateElement("Ventas")
	for _, s := range report.Sales {
		v := list.CreateElement("Venta")
		v.CreateAttr("id", s.ID)
		v.CreateAttr("fecha", s.Date.UTC().Format(time.RFC3339))
		if s.CreatedBy != "" {
			v.CreateAttr("usuarioId", s.CreatedBy)
		}
		v.CreateElement("Total").SetText(s.Total.StringFixed(2))
		for _, l := range s.Lines {
			d := v.CreateElement("Detalle")
			d.CreateAttr("productoId", l.ProductID)
			d.CreateAttr("cantidad", strconv.Itoa(l.Quantity))
			d.CreateAttr("precio", l.UnitPrice.StringFixed(2))
			d.CreateAttr("subtotal", l.Subtotal.StringFixed(2))
			if l.Product != nil {
				d.SetText(l.Product.Name)
			}
		}
	}

	doc.Indent(2)
	body, err := doc.WriteToBytes()
	if err != nil {
		return nil, "", fmt.Errorf("reporte: serializar XML: %w", err)
	}
	etag, err := CanonicalETag(body)
	if err != nil {
		return nil, "", err
	}
	return body, etag, nil
}

// CanonicalETag SHA-256 (hex) del XML canonicalizado; dos documentos equivalentes en C14N
// (orden de atributos, elementos vacíos) producen el mismo valor.
func CanonicalETag(data []byte) (string, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	dec.Entity = map[string]string{}
	canonical, err := c14n.Canonicalize(dec)
	if err != nil {
		return "", fmt.Errorf("reporte: canonicalizar XML: %w", err)
	}
	sum := sha256.Sum256(canonical)
	return `"` + hex.EncodeToString(sum[:]) + `"`, nil
}
