package dto

import "github.com/shopspring/decimal"

// DashboardSummaryDTO respuesta de GET /api/dashboard.
type DashboardSummaryDTO struct {
	// Indicadores principales
	TotalCollected decimal.Decimal `json:"total_collected"` // facturas Pagada
	TotalExpenses  decimal.Decimal `json:"total_expenses"`
	NetProfit      decimal.Decimal `json:"net_profit"`
	TotalPending   decimal.Decimal `json:"total_pending"` // facturas Enviada + Vencida
	ActiveClients  int             `json:"active_clients"`
	InvoiceCount   int             `json:"invoice_count"`

	MonthlySales []MonthlySalesDTO `json:"monthly_sales"`
	Recent       []ActivityDTO     `json:"recent_activity"`
	TopClients   []TopClientDTO    `json:"top_clients"`
	TopProducts  []TopProductDTO   `json:"top_products"`

	Period    PeriodDTO `json:"period"`
	DateLabel string    `json:"date_label"` // ej: "Octubre 2026"
}

// MonthlySalesDTO ventas facturadas de un mes.
type MonthlySalesDTO struct {
	Month string          `json:"month"` // YYYY-MM
	Label string          `json:"label"` // ej: "Oct. 2026"
	Total decimal.Decimal `json:"total"`
}

// ActivityDTO movimiento reciente: factura emitida (ingreso) o gasto (egreso).
type ActivityDTO struct {
	Kind        string          `json:"kind"` // Factura | Gasto
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Date        string          `json:"date"`
	Amount      decimal.Decimal `json:"amount"`
	Positive    bool            `json:"positive"`
}

// TopClientDTO cliente con mayor facturación.
type TopClientDTO struct {
	ClientID   string          `json:"client_id"`
	ClientName string          `json:"client_name"`
	Total      decimal.Decimal `json:"total"`
}

// TopProductDTO producto con más unidades vendidas.
type TopProductDTO struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    decimal.Decimal `json:"quantity"`
}
