package dian_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Facturacion-api/pkg/dian"
)

func TestCatalogos(t *testing.T) {
	assert.Equal(t, "2", dian.PaymentFormCode("Crédito"))
	assert.Equal(t, "1", dian.PaymentFormCode("Contado"))
	assert.Equal(t, "47", dian.PaymentMethodCode("Transferencia"))
	assert.Equal(t, "10", dian.PaymentMethodCode(""))
	assert.Equal(t, "31", dian.IdentificationTypeCode("NIT"))
	assert.Equal(t, "13", dian.IdentificationTypeCode("Cédula"))
	assert.True(t, dian.ValidFiscalResponsibility("0-13"), "formato con cero")
	assert.True(t, dian.ValidFiscalResponsibility("R-99-PN"))
	assert.False(t, dian.ValidFiscalResponsibility("X-1"))
}
