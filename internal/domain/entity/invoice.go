package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceStatus estado de una factura.
type InvoiceStatus string

const (
	InvoiceStatusDraft   InvoiceStatus = "Borrador"
	InvoiceStatusSent    InvoiceStatus = "Enviada"
	InvoiceStatusPaid    InvoiceStatus = "Pagada"
	InvoiceStatusOverdue InvoiceStatus = "Vencida"
)

// Formas de pago.
const (
	PaymentFormCash   = "Contado"
	PaymentFormCredit = "Crédito"
)

// Medios de pago.
const (
	PaymentMethodCash     = "Efectivo"
	PaymentMethodTransfer = "Transferencia"
	PaymentMethodCard     = "Tarjeta"
	PaymentMethodOther    = "Otro"
)

// LineItem línea de factura o cotización con copia de sku/nombre/precio/IVA al momento de emitir.
// Total = Quantity × UnitPrice (sin impuestos).
type LineItem struct {
	ProductID   string          `json:"productId"`
	ProductSKU  string          `json:"productSku"`
	ProductName string          `json:"productName"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	TaxRate     decimal.Decimal `json:"ivaRate"`
	Total       decimal.Decimal `json:"total"`
}

// Invoice factura de venta.
type Invoice struct {
	ID                string           `json:"id"`
	ClientID          string           `json:"clientId"`
	ClientName        string           `json:"clientName"`
	IssueDate         time.Time        `json:"issueDate"`
	DueDate           time.Time        `json:"dueDate"`
	LineItems         []LineItem       `json:"lineItems"`
	Subtotal          decimal.Decimal  `json:"subtotal"`
	TaxTotal          decimal.Decimal  `json:"totalIva"`
	Total             decimal.Decimal  `json:"total"`
	Status            InvoiceStatus    `json:"status"`
	PaymentForm       string           `json:"paymentForm,omitempty"`
	PaymentMethod     string           `json:"paymentMethod,omitempty"`
	GlobalDiscountPct *decimal.Decimal `json:"globalDiscountPercentage,omitempty"`
	RetentionPct      *decimal.Decimal `json:"retencionFuentePercentage,omitempty"`
	ICAPct            *decimal.Decimal `json:"icaPercentage,omitempty"`
	Notes             string           `json:"notes,omitempty"`
	IsContingency     bool             `json:"isContingency,omitempty"`
	AuthorizationCode string           `json:"cufe,omitempty"`
	CreatedAt         time.Time        `json:"createdAt"`
	UpdatedAt         time.Time        `json:"updatedAt"`
}

// ValidInvoiceStatus indica si s es un estado de factura conocido.
func ValidInvoiceStatus(s InvoiceStatus) bool {
	switch s {
	case InvoiceStatusDraft, InvoiceStatusSent, InvoiceStatusPaid, InvoiceStatusOverdue:
		return true
	}
	return false
}

// pct devuelve el porcentaje o cero.
func pct(p *decimal.Decimal) decimal.Decimal {
	if p == nil {
		return decimal.Zero
	}
	return *p
}

// GlobalDiscount porcentaje de descuento global (0 si no aplica).
func (i *Invoice) GlobalDiscount() decimal.Decimal { return pct(i.GlobalDiscountPct) }

// Retention porcentaje de retención en la fuente (0 si no aplica).
func (i *Invoice) Retention() decimal.Decimal { return pct(i.RetentionPct) }

// ICA porcentaje de ICA (0 si no aplica).
func (i *Invoice) ICA() decimal.Decimal { return pct(i.ICAPct) }

// Clone copia profunda de la factura (las líneas no se comparten).
func (i *Invoice) Clone() *Invoice {
	c := *i
	c.LineItems = append([]LineItem(nil), i.LineItems...)
	return &c
}
