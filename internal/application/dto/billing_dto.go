package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ── Clientes ──────────────────────────────────────────────────────────────────

// ClientRequest body para POST/PUT /api/clients.
type ClientRequest struct {
	Name                   string   `json:"name"`
	IDType                 string   `json:"id_type"` // NIT | Cédula | Otro
	IDNumber               string   `json:"id_number"`
	Address                string   `json:"address"`
	Phone                  string   `json:"phone"`
	Email                  string   `json:"email"`
	FiscalResponsibilities []string `json:"fiscal_responsibilities"`
}

// ClientResponse cliente en respuestas.
type ClientResponse struct {
	ID                     string           `json:"id"`
	Name                   string           `json:"name"`
	IDType                 string           `json:"id_type"`
	IDNumber               string           `json:"id_number"`
	Address                string           `json:"address"`
	Phone                  string           `json:"phone"`
	Email                  string           `json:"email"`
	FiscalResponsibilities []string         `json:"fiscal_responsibilities"`
	Warning                *WarningResponse `json:"warning,omitempty"`
}

// ClientListResponse lista paginada de clientes.
type ClientListResponse struct {
	Items []ClientResponse `json:"items"`
	Page  PageResponse     `json:"page"`
}

// ── Documentos ────────────────────────────────────────────────────────────────

// LineItemRequest línea de factura o cotización. El precio y el IVA se toman del producto.
type LineItemRequest struct {
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
}

// CreateInvoiceRequest body para POST /api/invoices.
type CreateInvoiceRequest struct {
	ClientID          string            `json:"client_id"`
	IssueDate         *time.Time        `json:"issue_date,omitempty"` // por defecto hoy
	DueDate           *time.Time        `json:"due_date,omitempty"`   // por defecto según forma de pago
	Items             []LineItemRequest `json:"items"`
	Status            string            `json:"status,omitempty"` // por defecto Borrador
	PaymentForm       string            `json:"payment_form,omitempty"`
	PaymentMethod     string            `json:"payment_method,omitempty"`
	GlobalDiscountPct *decimal.Decimal  `json:"global_discount_percentage,omitempty"`
	RetentionPct      *decimal.Decimal  `json:"retencion_fuente_percentage,omitempty"`
	ICAPct            *decimal.Decimal  `json:"ica_percentage,omitempty"`
	Notes             string            `json:"notes,omitempty"`
	IsContingency     bool              `json:"is_contingency,omitempty"`
}

// CreateQuoteRequest body para POST /api/quotes.
type CreateQuoteRequest struct {
	ClientID      string            `json:"client_id"`
	IssueDate     *time.Time        `json:"issue_date,omitempty"`
	Items         []LineItemRequest `json:"items"`
	Notes         string            `json:"notes,omitempty"`
	DiscountType  string            `json:"discount_type,omitempty"` // percentage | fixed
	DiscountValue decimal.Decimal   `json:"discount_value"`
}

// CreateCreditNoteRequest body para POST /api/credit-notes.
type CreateCreditNoteRequest struct {
	InvoiceID       string     `json:"invoice_id"`
	IssueDate       *time.Time `json:"issue_date,omitempty"`
	Type            string     `json:"type"`
	Reason          string     `json:"reason"`
	AdditionalNotes string     `json:"additional_notes,omitempty"`
}

// UpdateStatusRequest body para PATCH /api/{invoices,quotes,credit-notes}/:id/status.
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// ConvertQuoteRequest body para POST /api/quotes/:id/convert.
type ConvertQuoteRequest struct {
	DueDate       *time.Time `json:"due_date,omitempty"`
	PaymentForm   string     `json:"payment_form,omitempty"`
	PaymentMethod string     `json:"payment_method,omitempty"`
}

// DocumentFilter filtros de listado de documentos.
type DocumentFilter struct {
	ClientID string `query:"client_id"`
	Status   string `query:"status"`
	PageRequest
}

// LineItemResponse línea en la respuesta.
type LineItemResponse struct {
	ProductID   string          `json:"product_id"`
	ProductSKU  string          `json:"product_sku,omitempty"`
	ProductName string          `json:"product_name"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	TaxRate     decimal.Decimal `json:"iva_rate"`
	Total       decimal.Decimal `json:"total"`
}

// InvoiceResponse factura con detalle para GET /api/invoices/:id.
type InvoiceResponse struct {
	ID                string             `json:"id"`
	ClientID          string             `json:"client_id"`
	ClientName        string             `json:"client_name"`
	IssueDate         time.Time          `json:"issue_date"`
	DueDate           time.Time          `json:"due_date"`
	Items             []LineItemResponse `json:"items"`
	Subtotal          decimal.Decimal    `json:"subtotal"`
	TaxTotal          decimal.Decimal    `json:"total_iva"`
	Total             decimal.Decimal    `json:"total"`
	Status            string             `json:"status"`
	PaymentForm       string             `json:"payment_form,omitempty"`
	PaymentMethod     string             `json:"payment_method,omitempty"`
	GlobalDiscountPct *decimal.Decimal   `json:"global_discount_percentage,omitempty"`
	RetentionPct      *decimal.Decimal   `json:"retencion_fuente_percentage,omitempty"`
	ICAPct            *decimal.Decimal   `json:"ica_percentage,omitempty"`
	Notes             string             `json:"notes,omitempty"`
	IsContingency     bool               `json:"is_contingency"`
	CUFE              string             `json:"cufe,omitempty"`
}

// QuoteResponse cotización con detalle.
type QuoteResponse struct {
	ID            string             `json:"id"`
	ClientID      string             `json:"client_id"`
	ClientName    string             `json:"client_name"`
	IssueDate     time.Time          `json:"issue_date"`
	Items         []LineItemResponse `json:"items"`
	Notes         string             `json:"notes,omitempty"`
	DiscountType  string             `json:"discount_type"`
	DiscountValue decimal.Decimal    `json:"discount_value"`
	Subtotal      decimal.Decimal    `json:"subtotal"`
	TotalDiscount decimal.Decimal    `json:"total_discount"`
	TaxTotal      decimal.Decimal    `json:"total_iva"`
	Total         decimal.Decimal    `json:"total"`
	Status        string             `json:"status"`
}

// CreditNoteItemResponse línea copiada de la factura origen.
type CreditNoteItemResponse struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Total       decimal.Decimal `json:"total"`
}

// CreditNoteResponse nota crédito/débito.
type CreditNoteResponse struct {
	ID              string                   `json:"id"`
	InvoiceID       string                   `json:"invoice_id"`
	ClientID        string                   `json:"client_id"`
	ClientName      string                   `json:"client_name"`
	IssueDate       time.Time                `json:"issue_date"`
	Type            string                   `json:"type"`
	Reason          string                   `json:"reason"`
	Items           []CreditNoteItemResponse `json:"items"`
	Total           decimal.Decimal          `json:"total"`
	AdditionalNotes string                   `json:"additional_notes,omitempty"`
	Status          string                   `json:"status"`
}

// InvoiceListResponse lista paginada de facturas, la más reciente primero.
type InvoiceListResponse struct {
	Items []InvoiceResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// QuoteListResponse lista paginada de cotizaciones.
type QuoteListResponse struct {
	Items []QuoteResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}

// CreditNoteListResponse lista paginada de notas.
type CreditNoteListResponse struct {
	Items []CreditNoteResponse `json:"items"`
	Page  PageResponse         `json:"page"`
}
