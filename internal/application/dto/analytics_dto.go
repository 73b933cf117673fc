package dto

import "github.com/shopspring/decimal"

// ── Query parameters ──────────────────────────────────────────────────────────

// ReportRequest parámetros comunes de GET /api/reports/*.
type ReportRequest struct {
	StartDate string `query:"start_date"` // YYYY-MM-DD; vacío = sin límite
	EndDate   string `query:"end_date"`   // YYYY-MM-DD; incluye el día completo
}

// WithholdingRequest parámetros de GET /api/reports/withholding.
type WithholdingRequest struct {
	ClientID string `query:"client_id"`
	Year     int    `query:"year"`
}

// PeriodDTO rango de fechas del reporte.
type PeriodDTO struct {
	StartDate string `json:"start_date,omitempty"`
	EndDate   string `json:"end_date,omitempty"`
}

// ── Ventas ────────────────────────────────────────────────────────────────────

// SalesByClientDTO ventas agrupadas por cliente.
type SalesByClientDTO struct {
	ClientID     string          `json:"client_id"`
	ClientName   string          `json:"client_name"`
	InvoiceCount int             `json:"invoice_count"`
	Total        decimal.Decimal `json:"total"`
}

// SalesReportDTO respuesta de GET /api/reports/sales.
type SalesReportDTO struct {
	Period         PeriodDTO          `json:"period"`
	TotalCollected decimal.Decimal    `json:"total_collected"` // solo facturas Pagada
	TotalExpenses  decimal.Decimal    `json:"total_expenses"`
	NetProfit      decimal.Decimal    `json:"net_profit"`
	ByClient       []SalesByClientDTO `json:"by_client"`
}

// ── Impuestos ─────────────────────────────────────────────────────────────────

// TaxRowDTO fila del reporte de impuestos por factura.
type TaxRowDTO struct {
	InvoiceID  string          `json:"invoice_id"`
	ClientName string          `json:"client_name"`
	IssueDate  string          `json:"issue_date"`
	Base       decimal.Decimal `json:"base"` // subtotal con descuento global aplicado
	IVA        decimal.Decimal `json:"iva"`
	Retention  decimal.Decimal `json:"retencion_fuente"`
	ICA        decimal.Decimal `json:"ica"`
}

// TaxReportDTO respuesta de GET /api/reports/tax.
type TaxReportDTO struct {
	Period         PeriodDTO       `json:"period"`
	Rows           []TaxRowDTO     `json:"rows"`
	TotalBase      decimal.Decimal `json:"total_base"`
	TotalIVA       decimal.Decimal `json:"total_iva"`
	TotalRetention decimal.Decimal `json:"total_retencion_fuente"`
	TotalICA       decimal.Decimal `json:"total_ica"`
}

// ── Cartera ───────────────────────────────────────────────────────────────────

// AgingRowDTO factura por cobrar con sus días de vencimiento.
type AgingRowDTO struct {
	InvoiceID   string          `json:"invoice_id"`
	ClientName  string          `json:"client_name"`
	DueDate     string          `json:"due_date"`
	DaysOverdue int             `json:"days_overdue"`
	Bucket      string          `json:"bucket"`
	Total       decimal.Decimal `json:"total"`
}

// AgingBucketDTO total de cartera por tramo.
type AgingBucketDTO struct {
	Bucket string          `json:"bucket"`
	Count  int             `json:"count"`
	Total  decimal.Decimal `json:"total"`
}

// AgingReportDTO respuesta de GET /api/reports/aging.
type AgingReportDTO struct {
	AsOf    string           `json:"as_of"`
	Rows    []AgingRowDTO    `json:"rows"`
	Buckets []AgingBucketDTO `json:"buckets"`
	Total   decimal.Decimal  `json:"total"`
}

// ── Rentabilidad ──────────────────────────────────────────────────────────────

// ProfitabilityRowDTO rentabilidad por factura.
type ProfitabilityRowDTO struct {
	InvoiceID  string          `json:"invoice_id"`
	ClientName string          `json:"client_name"`
	Revenue    decimal.Decimal `json:"revenue"`
	Cost       decimal.Decimal `json:"cost"`
	Profit     decimal.Decimal `json:"profit"`
	MarginPct  decimal.Decimal `json:"margin_pct"`
}

// ProfitabilityReportDTO respuesta de GET /api/reports/profitability.
type ProfitabilityReportDTO struct {
	Period       PeriodDTO             `json:"period"`
	TotalRevenue decimal.Decimal       `json:"total_revenue"`
	TotalCost    decimal.Decimal       `json:"total_cost"`
	TotalProfit  decimal.Decimal       `json:"total_profit"`
	MarginPct    decimal.Decimal       `json:"margin_pct"` // 0 si no hay ingresos
	Rows         []ProfitabilityRowDTO `json:"rows"`
}

// ── Productos ─────────────────────────────────────────────────────────────────

// ProductSalesDTO unidades e ingresos por producto.
type ProductSalesDTO struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	UnitsSold   decimal.Decimal `json:"units_sold"`
	Revenue     decimal.Decimal `json:"revenue"`
}

// ProductAnalysisDTO respuesta de GET /api/reports/products.
type ProductAnalysisDTO struct {
	Period   PeriodDTO         `json:"period"`
	Products []ProductSalesDTO `json:"products"`
}

// ── Certificado de retención ──────────────────────────────────────────────────

// WithholdingRowDTO factura incluida en el certificado.
type WithholdingRowDTO struct {
	InvoiceID string          `json:"invoice_id"`
	IssueDate string          `json:"issue_date"`
	Base      decimal.Decimal `json:"base"`
	Retention decimal.Decimal `json:"retencion_fuente"`
	ICA       decimal.Decimal `json:"ica"`
}

// WithholdingCertificateDTO respuesta de GET /api/reports/withholding.
type WithholdingCertificateDTO struct {
	Year           int                 `json:"year"`
	ClientID       string              `json:"client_id"`
	ClientName     string              `json:"client_name"`
	ClientIDNumber string              `json:"client_id_number"`
	CompanyName    string              `json:"company_name"`
	CompanyNIT     string              `json:"company_nit"`
	CompanyCity    string              `json:"company_city"`
	Rows           []WithholdingRowDTO `json:"rows"`
	TotalBase      decimal.Decimal     `json:"total_base"`
	TotalRetention decimal.Decimal     `json:"total_retencion_fuente"`
	TotalICA       decimal.Decimal     `json:"total_ica"`
}
