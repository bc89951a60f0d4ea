package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/ventas-api/internal/application/dto"
	"github.com/jhoicas/ventas-api/internal/application/sales"
)

var (
	defaultReportFrom = time.Date(1900, 1, 1, 0, 0, 0, 0, time.UTC)
	defaultReportTo   = time.Date(2100, 12, 31, 0, 0, 0, 0, time.UTC)
)

// SaleHandler maneja las peticiones HTTP de ventas (protegido).
type SaleHandler struct {
	create  *sales.CreateSaleUseCase
	reports *sales.ReportUseCase
}

// NewSaleHandler construye el handler.
func NewSaleHandler(create *sales.CreateSaleUseCase, reports *sales.ReportUseCase) *SaleHandler {
	return &SaleHandler{create: create, reports: reports}
}

// Create godoc
// @Summary      Registrar venta
// @Description  Confirma la venta completa o la rechaza sin tocar el stock. El precio de cada línea lo fija el catálogo.
// @Tags         ventas
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      dto.CreateSaleRequest  true  "detalles: producto_id y cantidad"
// @Success      201   {object}  dto.SaleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /api/ventas [post]
func (h *SaleHandler) Create(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.CreateSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.create.CreateSale(c.UserContext(), userID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar ventas
// @Tags         ventas
// @Security     Bearer
// @Produce      json
// @Param        fecha_inicio  query  string  false  "YYYY-MM-DD (incluida)"
// @Param        fecha_fin     query  string  false  "YYYY-MM-DD (incluida)"
// @Param        usuario_id    query  string  false  "Usuario que registró la venta"
// @Success      200  {array}   dto.SaleResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/ventas [get]
func (h *SaleHandler) List(c *fiber.Ctx) error {
	from, _, err := queryTime(c, "fecha_inicio")
	if err != nil {
		return respondError(c, err)
	}
	to, _, err := queryTime(c, "fecha_fin")
	if err != nil {
		return respondError(c, err)
	}
	list, err := h.reports.ListSales(c.UserContext(), from, to, c.Query("usuario_id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

// GetByID godoc
// @Summary      Obtener venta
// @Tags         ventas
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID de la venta"
// @Success      200  {object}  dto.SaleResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/ventas/{id} [get]
func (h *SaleHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.reports.GetSale(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Report godoc
// @Summary      Reporte de ventas por periodo
// @Description  Ventas del periodo (fechas incluidas) con cantidad, ingresos y promedio.
// @Description  Con format=xml devuelve el documento con ETag y responde 304 si If-None-Match coincide.
// @Tags         ventas
// @Security     Bearer
// @Produce      json
// @Produce      xml
// @Param        fecha_inicio  query  string  false  "YYYY-MM-DD (default 1900-01-01)"
// @Param        fecha_fin     query  string  false  "YYYY-MM-DD (default 2100-12-31)"
// @Param        format        query  string  false  "json (default) | xml"
// @Success      200  {object}  dto.PeriodReportResponse
// @Success      304
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/ventas/reporte [get]
func (h *SaleHandler) Report(c *fiber.Ctx) error {
	from, err := queryDateOr(c, "fecha_inicio", defaultReportFrom)
	if err != nil {
		return respondError(c, err)
	}
	to, err := queryDateOr(c, "fecha_fin", defaultReportTo)
	if err != nil {
		return respondError(c, err)
	}

	switch c.Query("format", "json") {
	case "json":
		report, err := h.reports.GetPeriodReport(c.UserContext(), from, to)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(report)
	case "xml":
		body, etag, err := h.reports.ExportPeriodReport(c.UserContext(), from, to)
		if err != nil {
			return respondError(c, err)
		}
		c.Set(fiber.HeaderETag, etag)
		if c.Get(fiber.HeaderIfNoneMatch) == etag {
			return c.SendStatus(fiber.StatusNotModified)
		}
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationXMLCharsetUTF8)
		return c.Send(body)
	default:
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "format debe ser json o xml"})
	}
}

// ReceiptPDF godoc
// @Summary      Comprobante PDF de la venta
// @Tags         ventas
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID de la venta"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/ventas/{id}/pdf [get]
func (h *SaleHandler) ReceiptPDF(c *fiber.Ctx) error {
	pdfBytes, filename, err := h.reports.DownloadSaleReceipt(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Send(pdfBytes)
}
