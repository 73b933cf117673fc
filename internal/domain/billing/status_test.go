package billing_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Facturacion-api/internal/domain"
	"github.com/jhoicas/Facturacion-api/internal/domain/billing"
	"github.com/jhoicas/Facturacion-api/internal/domain/entity"
)

func TestCheckInvoiceTransition_PermisivoAceptaTodo(t *testing.T) {
	err := billing.CheckInvoiceTransition(billing.PolicyPermissive, entity.InvoiceStatusPaid, entity.InvoiceStatusDraft)
	assert.NoError(t, err, "en modo permisivo cualquier estado válido se acepta")
}

func TestCheckInvoiceTransition_EstadoDesconocido(t *testing.T) {
	err := billing.CheckInvoiceTransition(billing.PolicyPermissive, entity.InvoiceStatusDraft, "Anulada")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCheckInvoiceTransition_Estricto(t *testing.T) {
	p := billing.PolicyStrict
	assert.NoError(t, billing.CheckInvoiceTransition(p, entity.InvoiceStatusDraft, entity.InvoiceStatusSent))
	assert.NoError(t, billing.CheckInvoiceTransition(p, entity.InvoiceStatusSent, entity.InvoiceStatusPaid))
	assert.NoError(t, billing.CheckInvoiceTransition(p, entity.InvoiceStatusSent, entity.InvoiceStatusOverdue))
	assert.NoError(t, billing.CheckInvoiceTransition(p, entity.InvoiceStatusOverdue, entity.InvoiceStatusPaid))

	err := billing.CheckInvoiceTransition(p, entity.InvoiceStatusPaid, entity.InvoiceStatusDraft)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidTransition), "debe ser un error de transición")

	var te *domain.TransitionError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, "Pagada", te.From)
	assert.Equal(t, "Borrador", te.To)
}

func TestCheckQuoteTransition_Estricto(t *testing.T) {
	p := billing.PolicyStrict
	assert.NoError(t, billing.CheckQuoteTransition(p, entity.QuoteStatusSent, entity.QuoteStatusAccepted))
	assert.ErrorIs(t, billing.CheckQuoteTransition(p, entity.QuoteStatusRejected, entity.QuoteStatusAccepted), domain.ErrInvalidTransition)
}

func TestCheckCreditNoteTransition_Estricto(t *testing.T) {
	p := billing.PolicyStrict
	assert.NoError(t, billing.CheckCreditNoteTransition(p, entity.CreditNoteStatusDraft, entity.CreditNoteStatusApplied))
	assert.ErrorIs(t, billing.CheckCreditNoteTransition(p, entity.CreditNoteStatusApplied, entity.CreditNoteStatusDraft), domain.ErrInvalidTransition)
}

func TestParseStatusPolicy(t *testing.T) {
	assert.Equal(t, billing.PolicyStrict, billing.ParseStatusPolicy("strict"))
	assert.Equal(t, billing.PolicyPermissive, billing.ParseStatusPolicy(""))
	assert.Equal(t, billing.PolicyPermissive, billing.ParseStatusPolicy("otro"))
}
