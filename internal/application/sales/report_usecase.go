package sales

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/ventas-api/internal/application/dto"
	"github.com/jhoicas/ventas-api/internal/domain"
	"github.com/jhoicas/ventas-api/internal/domain/entity"
	"github.com/jhoicas/ventas-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// ReportUseCase lecturas de ventas confirmadas: listado, detalle, reporte por periodo y sus exportaciones.
type ReportUseCase struct {
	saleRepo repository.SaleRepository
	receipt  SaleReceiptGenerator
	exporter PeriodReportExporter
}

// NewReportUseCase construye el caso de uso. receipt y exporter pueden ser nil si no se exponen.
func NewReportUseCase(saleRepo repository.SaleRepository, receipt SaleReceiptGenerator, exporter PeriodReportExporter) *ReportUseCase {
	return &ReportUseCase{saleRepo: saleRepo, receipt: receipt, exporter: exporter}
}

// GetPeriodReport ventas entre from y to (ambas fechas incluidas, por día UTC) de la más antigua
// a la más reciente, con cantidad, ingresos y promedio por venta redondeado a 2 decimales.
func (uc *ReportUseCase) GetPeriodReport(ctx context.Context, from, to time.Time) (*dto.PeriodReportResponse, error) {
	start, end := DayStart(from), DayStart(to)
	if end.Before(start) {
		return nil, fmt.Errorf("%w: fecha_fin anterior a fecha_inicio", domain.ErrInvalidInput)
	}
	endExclusive := end.AddDate(0, 0, 1)
	salesList, err := uc.saleRepo.List(ctx, repository.SaleFilter{From: &start, To: &endExclusive, Ascending: true})
	if err != nil {
		return nil, err
	}

	report := &dto.PeriodReportResponse{
		From:  start,
		To:    end,
		Sales: make([]dto.SaleResponse, 0, len(salesList)),
	}
	revenue := decimal.Zero
	for _, s := range salesList {
		report.Sales = append(report.Sales, *SaleToResponse(s))
		revenue = revenue.Add(s.Total)
	}
	report.Statistics = PeriodReportStats(len(salesList), revenue)
	return report, nil
}

// PeriodReportStats agregados del periodo; promedio 0 si no hay ventas.
func PeriodReportStats(count int, revenue decimal.Decimal) dto.PeriodReportStats {
	avg := decimal.Zero
	if count > 0 {
		avg = revenue.Div(decimal.NewFromInt(int64(count))).Round(2)
	}
	return dto.PeriodReportStats{
		TotalSalesCount:  count,
		TotalRevenue:     revenue,
		AverageSaleValue: avg,
	}
}

// ListSales ventas más recientes primero. from/to son fechas incluidas; actor vacío no filtra.
func (uc *ReportUseCase) ListSales(ctx context.Context, from, to *time.Time, actor string) ([]dto.SaleResponse, error) {
	filter := repository.SaleFilter{CreatedBy: actor}
	if from != nil {
		start := DayStart(*from)
		filter.From = &start
	}
	if to != nil {
		end := DayStart(*to).AddDate(0, 0, 1)
		filter.To = &end
	}
	if filter.From != nil && filter.To != nil && !filter.To.After(*filter.From) {
		return nil, fmt.Errorf("%w: fecha_fin anterior a fecha_inicio", domain.ErrInvalidInput)
	}
	salesList, err := uc.saleRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SaleResponse, 0, len(salesList))
	for _, s := range salesList {
		out = append(out, *SaleToResponse(s))
	}
	return out, nil
}

// GetSale venta con su detalle; domain.ErrNotFound si no existe.
func (uc *ReportUseCase) GetSale(ctx context.Context, id string) (*dto.SaleResponse, error) {
	s, err := uc.getSale(ctx, id)
	if err != nil {
		return nil, err
	}
	return SaleToResponse(s), nil
}

// DownloadSaleReceipt genera el comprobante PDF de la venta.
func (uc *ReportUseCase) DownloadSaleReceipt(ctx context.Context, id string) (pdfBytes []byte, filename string, err error) {
	if uc.receipt == nil {
		return nil, "", fmt.Errorf("comprobante: generador no configurado")
	}
	s, err := uc.getSale(ctx, id)
	if err != nil {
		return nil, "", err
	}
	pdfBytes, err = uc.receipt.GenerateSaleReceipt(ctx, s)
	if err != nil {
		return nil, "", fmt.Errorf("comprobante: generación fallida: %w", err)
	}
	return pdfBytes, fmt.Sprintf("venta_%s.pdf", s.ID), nil
}

// ExportPeriodReport reporte de periodo serializado por el exportador (XML) con su etag.
func (uc *ReportUseCase) ExportPeriodReport(ctx context.Context, from, to time.Time) (body []byte, etag string, err error) {
	if uc.exporter == nil {
		return nil, "", fmt.Errorf("reporte: exportador no configurado")
	}
	report, err := uc.GetPeriodReport(ctx, from, to)
	if err != nil {
		return nil, "", err
	}
	return uc.exporter.ExportPeriodReport(ctx, report)
}

func (uc *ReportUseCase) getSale(ctx context.Context, id string) (*entity.Sale, error) {
	if id == "" {
		return nil, domain.ErrInvalidInput
	}
	s, err := uc.saleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.ErrNotFound
	}
	return s, nil
}

// DayStart inicio del día UTC de t.
func DayStart(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// SaleToResponse convierte la venta con su detalle al DTO.
func SaleToResponse(s *entity.Sale) *dto.SaleResponse {
	out := &dto.SaleResponse{
		ID:        s.ID,
		Total:     s.Total,
		Date:      s.CreatedAt,
		CreatedBy: s.CreatedBy,
		Lines:     make([]dto.SaleLineResponse, 0, len(s.Lines)),
	}
	for _, l := range s.Lines {
		line := dto.SaleLineResponse{
			ID:        l.ID,
			ProductID: l.ProductID,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
			Subtotal:  l.Subtotal,
		}
		if l.Product != nil {
			price := l.Product.Price
			line.Product = &dto.ProductSummaryResponse{ID: l.Product.ID, Name: l.Product.Name, Price: &price}
		}
		out.Lines = append(out.Lines, line)
	}
	return out
}
