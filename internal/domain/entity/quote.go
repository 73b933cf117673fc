package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// QuoteStatus estado de una cotización.
type QuoteStatus string

const (
	QuoteStatusDraft    QuoteStatus = "Borrador"
	QuoteStatusSent     QuoteStatus = "Enviada"
	QuoteStatusAccepted QuoteStatus = "Aceptada"
	QuoteStatusRejected QuoteStatus = "Rechazada"
)

// Tipos de descuento de cotización.
const (
	DiscountTypePercentage = "percentage"
	DiscountTypeFixed      = "fixed"
)

// Quote cotización. El descuento se aplica antes de impuestos y se reparte por línea.
type Quote struct {
	ID            string          `json:"id"`
	ClientID      string          `json:"clientId"`
	ClientName    string          `json:"clientName"`
	IssueDate     time.Time       `json:"issueDate"`
	LineItems     []LineItem      `json:"lineItems"`
	Notes         string          `json:"notes"`
	DiscountType  string          `json:"discountType"`
	DiscountValue decimal.Decimal `json:"discountValue"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	TaxTotal      decimal.Decimal `json:"totalIva"`
	TotalDiscount decimal.Decimal `json:"totalDiscount"`
	Total         decimal.Decimal `json:"total"`
	Status        QuoteStatus     `json:"status"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

// ValidQuoteStatus indica si s es un estado de cotización conocido.
func ValidQuoteStatus(s QuoteStatus) bool {
	switch s {
	case QuoteStatusDraft, QuoteStatusSent, QuoteStatusAccepted, QuoteStatusRejected:
		return true
	}
	return false
}

// Clone copia profunda de la cotización.
func (q *Quote) Clone() *Quote {
	c := *q
	c.LineItems = append([]LineItem(nil), q.LineItems...)
	return &c
}
