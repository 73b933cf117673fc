package dian_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Facturacion-api/internal/domain/dian"
	"github.com/jhoicas/Facturacion-api/internal/domain/entity"
)

func validInvoice() *entity.Invoice {
	return &entity.Invoice{
		ID: "FVC-1",
		LineItems: []entity.LineItem{{
			ProductID: "PROD-1", Quantity: decimal.NewFromInt(50),
			UnitPrice: decimal.NewFromInt(28000), TaxRate: decimal.NewFromInt(19),
			Total: decimal.NewFromInt(1_400_000),
		}},
		Subtotal: decimal.NewFromInt(1_400_000),
		TaxTotal: decimal.NewFromInt(266_000),
		Total:    decimal.NewFromInt(1_666_000),
	}
}

func TestValidateInvoice_Coherente(t *testing.T) {
	client := &entity.Client{IDType: entity.IDTypeNIT, IDNumber: "900.123.456-8"}
	assert.NoError(t, dian.ValidateInvoice(validInvoice(), client))
}

func TestValidateInvoice_TotalesDescuadrados(t *testing.T) {
	inv := validInvoice()
	inv.Total = decimal.NewFromInt(1)
	err := dian.ValidateInvoice(inv, nil)
	assert.ErrorIs(t, err, dian.ErrInvalidInvoice)
	assert.Contains(t, err.Error(), "total")
}

func TestValidateInvoice_NITInvalido(t *testing.T) {
	client := &entity.Client{IDType: entity.IDTypeNIT, IDNumber: "900.123.456-7"}
	err := dian.ValidateInvoice(validInvoice(), client)
	assert.ErrorIs(t, err, dian.ErrInvalidInvoice)
	assert.Contains(t, err.Error(), "cliente NIT")
}

func TestValidateInvoice_CedulaNoSeValida(t *testing.T) {
	client := &entity.Client{IDType: entity.IDTypeCedula, IDNumber: "123"}
	assert.NoError(t, dian.ValidateInvoice(validInvoice(), client))
}

func TestValidateInvoice_SinLineas(t *testing.T) {
	inv := validInvoice()
	inv.LineItems = nil
	assert.ErrorIs(t, dian.ValidateInvoice(inv, nil), dian.ErrInvalidInvoice)
}
