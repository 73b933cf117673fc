package billing

import (
	"github.com/jhoicas/Facturacion-api/internal/domain"
	"github.com/jhoicas/Facturacion-api/internal/domain/entity"
)

// StatusPolicy define si los cambios de estado se validan contra la tabla de transiciones.
type StatusPolicy string

const (
	// PolicyPermissive acepta cualquier estado válido del tipo de documento, en cualquier momento.
	PolicyPermissive StatusPolicy = "permissive"
	// PolicyStrict solo acepta las transiciones de la tabla.
	PolicyStrict StatusPolicy = "strict"
)

// ParseStatusPolicy interpreta el valor de configuración; cualquier otro valor es permisivo.
func ParseStatusPolicy(s string) StatusPolicy {
	if StatusPolicy(s) == PolicyStrict {
		return PolicyStrict
	}
	return PolicyPermissive
}

var invoiceTransitions = map[entity.InvoiceStatus][]entity.InvoiceStatus{
	entity.InvoiceStatusDraft:   {entity.InvoiceStatusSent},
	entity.InvoiceStatusSent:    {entity.InvoiceStatusPaid, entity.InvoiceStatusOverdue},
	entity.InvoiceStatusOverdue: {entity.InvoiceStatusPaid},
}

var quoteTransitions = map[entity.QuoteStatus][]entity.QuoteStatus{
	entity.QuoteStatusDraft: {entity.QuoteStatusSent, entity.QuoteStatusAccepted, entity.QuoteStatusRejected},
	entity.QuoteStatusSent:  {entity.QuoteStatusAccepted, entity.QuoteStatusRejected},
}

var creditNoteTransitions = map[entity.CreditNoteStatus][]entity.CreditNoteStatus{
	entity.CreditNoteStatusDraft: {entity.CreditNoteStatusApplied},
}

func allowed[S comparable](table map[S][]S, from, to S) bool {
	if from == to {
		return true
	}
	for _, s := range table[from] {
		if s == to {
			return true
		}
	}
	return false
}

// CheckInvoiceTransition valida el cambio de estado de una factura.
func CheckInvoiceTransition(policy StatusPolicy, from, to entity.InvoiceStatus) error {
	if !entity.ValidInvoiceStatus(to) {
		return domain.ErrInvalidInput
	}
	if policy == PolicyStrict && !allowed(invoiceTransitions, from, to) {
		return &domain.TransitionError{Document: "factura", From: string(from), To: string(to)}
	}
	return nil
}

// CheckQuoteTransition valida el cambio de estado de una cotización.
func CheckQuoteTransition(policy StatusPolicy, from, to entity.QuoteStatus) error {
	if !entity.ValidQuoteStatus(to) {
		return domain.ErrInvalidInput
	}
	if policy == PolicyStrict && !allowed(quoteTransitions, from, to) {
		return &domain.TransitionError{Document: "cotización", From: string(from), To: string(to)}
	}
	return nil
}

// CheckCreditNoteTransition valida el cambio de estado de una nota.
func CheckCreditNoteTransition(policy StatusPolicy, from, to entity.CreditNoteStatus) error {
	if !entity.ValidCreditNoteStatus(to) {
		return domain.ErrInvalidInput
	}
	if policy == PolicyStrict && !allowed(creditNoteTransitions, from, to) {
		return &domain.TransitionError{Document: "nota", From: string(from), To: string(to)}
	}
	return nil
}
