package dian_test

import (
	"strings"
	"testing"
	"time"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Facturacion-api/internal/application/billing"
	"github.com/jhoicas/Facturacion-api/internal/domain"
	invoicerules "github.com/jhoicas/Facturacion-api/internal/domain/dian"
	"github.com/jhoicas/Facturacion-api/internal/domain/entity"
	infradian "github.com/jhoicas/Facturacion-api/internal/infrastructure/dian"
)

func buildDoc(t *testing.T, doc *billing.InvoiceDocument) *etree.Document {
	t.Helper()
	out, err := infradian.NewXMLBuilderService().Build(doc)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(string(out), "<?xml"), "debe iniciar con la declaración XML")

	parsed := etree.NewDocument()
	require.NoError(t, parsed.ReadFromBytes(out))
	return parsed
}

func text(t *testing.T, doc *etree.Document, path string) string {
	t.Helper()
	el := doc.FindElement(path)
	require.NotNil(t, el, "no se encontró %s", path)
	return el.Text()
}

func TestXMLBuilder_Estructura(t *testing.T) {
	client, company := sampleParties()
	inv := sampleInvoice()
	inv.AuthorizationCode = strings.Repeat("a", 96)
	res := &entity.DianResolution{Number: "18760000001", Prefix: "FVC", RangeFrom: 1, RangeTo: 5000, Date: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}

	doc := buildDoc(t, &billing.InvoiceDocument{Invoice: inv, Client: client, Company: company, Resolution: res})

	root := doc.Root()
	require.NotNil(t, root)
	assert.Equal(t, "Invoice", root.Tag)
	assert.Equal(t, "UBLExtensions", root.ChildElements()[0].Tag, "las extensiones van primero")

	assert.Equal(t, "FVC-1", text(t, doc, "/Invoice/ID"))
	assert.Equal(t, inv.AuthorizationCode, text(t, doc, "/Invoice/UUID"))
	assert.Equal(t, "2026-10-16", text(t, doc, "/Invoice/IssueDate"))
	assert.Equal(t, "2", text(t, doc, "/Invoice/LineCountNumeric"))
	assert.Equal(t, "18760000001", text(t, doc, "//InvoiceAuthorization"))

	assert.Equal(t, "900123456", text(t, doc, "/Invoice/AccountingSupplierParty/Party/PartyIdentification/ID"))
	supplierID := doc.FindElement("/Invoice/AccountingSupplierParty/Party/PartyIdentification/ID")
	assert.Equal(t, "8", supplierID.SelectAttrValue("schemeID", ""), "el DV va en schemeID")

	assert.Equal(t, "2", text(t, doc, "/Invoice/PaymentMeans/ID"), "crédito")
	assert.Equal(t, "47", text(t, doc, "/Invoice/PaymentMeans/PaymentMeansCode"))
	assert.Equal(t, "2026-11-15", text(t, doc, "/Invoice/PaymentMeans/PaymentDueDate"))

	assert.Equal(t, "7600.00", text(t, doc, "/Invoice/TaxTotal/TaxAmount"))
	subtotals := doc.FindElements("/Invoice/TaxTotal/TaxSubtotal")
	require.Len(t, subtotals, 2, "una por tarifa (0 y 19)")
	assert.Equal(t, "0.00", subtotals[0].FindElement("TaxCategory/Percent").Text())
	assert.Equal(t, "40000.00", subtotals[1].FindElement("TaxableAmount").Text())

	assert.Equal(t, "57600.00", text(t, doc, "/Invoice/LegalMonetaryTotal/PayableAmount"))

	lines := doc.FindElements("/Invoice/InvoiceLine")
	require.Len(t, lines, 2)
	assert.Equal(t, "Cable & conector", lines[0].FindElement("Item/Description").Text(), "el texto se escapa y se recupera")
	assert.Equal(t, "CAB-001", lines[0].FindElement("Item/SellersItemIdentification/ID").Text())
}

func TestXMLBuilder_BytesEstables(t *testing.T) {
	client, company := sampleParties()
	doc := &billing.InvoiceDocument{Invoice: sampleInvoice(), Client: client, Company: company}
	a, err := infradian.NewXMLBuilderService().Build(doc)
	require.NoError(t, err)
	b, err := infradian.NewXMLBuilderService().Build(doc)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestXMLBuilder_SinClienteNiEmpresa(t *testing.T) {
	doc := buildDoc(t, &billing.InvoiceDocument{Invoice: sampleInvoice()})
	assert.Equal(t, "Constructora Andina", text(t, doc, "/Invoice/AccountingCustomerParty/Party/PartyName/Name"),
		"el nombre copiado en la factura se usa aunque el cliente ya no exista")
	assert.Nil(t, doc.FindElement("/Invoice/UUID"), "sin código de autorización no hay UUID")
}

func TestXMLBuilder_SinFactura(t *testing.T) {
	_, err := infradian.NewXMLBuilderService().Build(&billing.InvoiceDocument{})
	assert.Error(t, err)
}

func TestXMLBuilder_FacturaDescuadrada(t *testing.T) {
	inv := sampleInvoice()
	inv.Total = inv.Total.Add(decimal.NewFromInt(1))
	_, err := infradian.NewXMLBuilderService().Build(&billing.InvoiceDocument{Invoice: inv})
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.ErrorIs(t, err, invoicerules.ErrInvalidInvoice)
}
