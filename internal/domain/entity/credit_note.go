package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreditNoteStatus estado de una nota.
type CreditNoteStatus string

const (
	CreditNoteStatusDraft   CreditNoteStatus = "Borrador"
	CreditNoteStatusApplied CreditNoteStatus = "Aplicada"
)

// Tipos de nota.
const (
	CreditNoteTypeCredit = "Crédito (Devolución/Anulación)"
	CreditNoteTypeDebit  = "Débito (Intereses/Gasto)"
)

// CreditNoteLineItem copia de una línea de la factura origen.
type CreditNoteLineItem struct {
	ProductID   string          `json:"productId"`
	ProductName string          `json:"productName"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Total       decimal.Decimal `json:"total"`
}

// CreditNote nota crédito o débito sobre una factura. Guarda una copia de las líneas y
// del total de la factura al momento de crearse; no es una referencia viva.
type CreditNote struct {
	ID              string               `json:"id"`
	InvoiceID       string               `json:"invoiceId"`
	ClientID        string               `json:"clientId"`
	ClientName      string               `json:"clientName"`
	IssueDate       time.Time            `json:"issueDate"`
	Type            string               `json:"type"`
	Reason          string               `json:"reason"`
	LineItems       []CreditNoteLineItem `json:"lineItems"`
	Total           decimal.Decimal      `json:"total"`
	AdditionalNotes string               `json:"additionalNotes"`
	Status          CreditNoteStatus     `json:"status"`
	CreatedAt       time.Time            `json:"createdAt"`
}

// ValidCreditNoteStatus indica si s es un estado de nota conocido.
func ValidCreditNoteStatus(s CreditNoteStatus) bool {
	return s == CreditNoteStatusDraft || s == CreditNoteStatusApplied
}

// ValidCreditNoteType indica si t es un tipo de nota conocido.
func ValidCreditNoteType(t string) bool {
	return t == CreditNoteTypeCredit || t == CreditNoteTypeDebit
}

// Clone copia profunda de la nota.
func (n *CreditNote) Clone() *CreditNote {
	c := *n
	c.LineItems = append([]CreditNoteLineItem(nil), n.LineItems...)
	return &c
}
