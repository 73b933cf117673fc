package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/Facturacion-api/internal/application/analytics"
	"github.com/jhoicas/Facturacion-api/internal/application/dto"
	"github.com/jhoicas/Facturacion-api/internal/domain"
)

// ReportHandler maneja los reportes y el dashboard.
type ReportHandler struct {
	reports   *appanalytics.ReportsUseCase
	dashboard *appanalytics.DashboardUseCase
	now       func() time.Time
}

// NewReportHandler construye el handler.
func NewReportHandler(reports *appanalytics.ReportsUseCase, dashboard *appanalytics.DashboardUseCase, now func() time.Time) *ReportHandler {
	return &ReportHandler{reports: reports, dashboard: dashboard, now: now}
}

func (h *ReportHandler) parseRange(c *fiber.Ctx) (appanalytics.Range, error) {
	var req dto.ReportRequest
	if err := c.QueryParser(&req); err != nil {
		return appanalytics.Range{}, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	return appanalytics.ParseRange(req)
}

// rangeReport ejecuta un reporte que solo depende del rango de fechas.
func rangeReport[T any](h *ReportHandler, c *fiber.Ctx, run func(r appanalytics.Range) (T, error)) error {
	r, err := h.parseRange(c)
	if err != nil {
		return respondError(c, err)
	}
	out, err := run(r)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Sales godoc
// @Summary      Reporte de ventas
// @Description  Solo facturas Pagadas; gastos y utilidad neta del período.
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        start_date  query  string  false  "YYYY-MM-DD"
// @Param        end_date    query  string  false  "YYYY-MM-DD (incluye el día)"
// @Success      200  {object}  dto.SalesReportDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/sales [get]
func (h *ReportHandler) Sales(c *fiber.Ctx) error {
	return rangeReport(h, c, func(r appanalytics.Range) (*dto.SalesReportDTO, error) {
		return h.reports.SalesReport(c.UserContext(), r)
	})
}

// Tax godoc
// @Summary      Reporte de impuestos (IVA, retención, ICA)
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        start_date  query  string  false  "YYYY-MM-DD"
// @Param        end_date    query  string  false  "YYYY-MM-DD"
// @Success      200  {object}  dto.TaxReportDTO
// @Router       /api/reports/tax [get]
func (h *ReportHandler) Tax(c *fiber.Ctx) error {
	return rangeReport(h, c, func(r appanalytics.Range) (*dto.TaxReportDTO, error) {
		return h.reports.TaxReport(c.UserContext(), r)
	})
}

// Aging godoc
// @Summary      Cartera por edades
// @Description  Facturas no pagadas agrupadas por días de vencimiento a la fecha de hoy.
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.AgingReportDTO
// @Router       /api/reports/aging [get]
func (h *ReportHandler) Aging(c *fiber.Ctx) error {
	out, err := h.reports.AgingReport(c.UserContext(), h.now())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Profitability godoc
// @Summary      Rentabilidad por producto
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        start_date  query  string  false  "YYYY-MM-DD"
// @Param        end_date    query  string  false  "YYYY-MM-DD"
// @Success      200  {object}  dto.ProfitabilityReportDTO
// @Router       /api/reports/profitability [get]
func (h *ReportHandler) Profitability(c *fiber.Ctx) error {
	return rangeReport(h, c, func(r appanalytics.Range) (*dto.ProfitabilityReportDTO, error) {
		return h.reports.ProfitabilityReport(c.UserContext(), r)
	})
}

// Products godoc
// @Summary      Análisis de productos vendidos
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        start_date  query  string  false  "YYYY-MM-DD"
// @Param        end_date    query  string  false  "YYYY-MM-DD"
// @Success      200  {object}  dto.ProductAnalysisDTO
// @Router       /api/reports/products [get]
func (h *ReportHandler) Products(c *fiber.Ctx) error {
	return rangeReport(h, c, func(r appanalytics.Range) (*dto.ProductAnalysisDTO, error) {
		return h.reports.ProductAnalysis(c.UserContext(), r)
	})
}

// Withholding godoc
// @Summary      Certificado de retención en la fuente
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        client_id  query  string  true   "Cliente"
// @Param        year       query  int     false  "Año gravable (por defecto el año en curso)"
// @Success      200  {object}  dto.WithholdingCertificateDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/reports/withholding [get]
func (h *ReportHandler) Withholding(c *fiber.Ctx) error {
	var req dto.WithholdingRequest
	if err := c.QueryParser(&req); err != nil {
		return invalidParams(c)
	}
	if req.Year == 0 {
		req.Year = h.now().Year()
	}
	out, err := h.reports.WithholdingCertificate(c.UserContext(), req.ClientID, req.Year)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Dashboard godoc
// @Summary      Resumen del dashboard
// @Description  Indicadores, ventas mensuales, actividad reciente y top clientes/productos.
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Param        start_date  query  string  false  "YYYY-MM-DD"
// @Param        end_date    query  string  false  "YYYY-MM-DD"
// @Success      200  {object}  dto.DashboardSummaryDTO
// @Router       /api/dashboard [get]
func (h *ReportHandler) Dashboard(c *fiber.Ctx) error {
	return rangeReport(h, c, func(r appanalytics.Range) (*dto.DashboardSummaryDTO, error) {
		return h.dashboard.GetSummary(c.UserContext(), r, h.now())
	})
}
