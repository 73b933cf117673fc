package dian

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"sort"
	"strconv"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"
	"github.com/ucarion/c14n"

	"github.com/jhoicas/Facturacion-api/internal/application/billing"
	"github.com/jhoicas/Facturacion-api/internal/domain"
	invoicerules "github.com/jhoicas/Facturacion-api/internal/domain/dian"
	"github.com/jhoicas/Facturacion-api/internal/domain/entity"
	"github.com/jhoicas/Facturacion-api/pkg/dian"
)

// Namespaces UBL 2.1 y DIAN (Anexo Técnico 1.9).
const (
	NsInvoice = "urn:oasis:names:specification:ubl:schema:xsd:Invoice-2"
	NsCac     = "urn:oasis:names:specification:ubl:schema:xsd:CommonAggregateComponents-2"
	NsCbc     = "urn:oasis:names:specification:ubl:schema:xsd:CommonBasicComponents-2"
	NsExt     = "urn:oasis:names:specification:ubl:schema:xsd:CommonExtensionComponents-2"
	NsSts     = "dian:gov:co:facturaelectronica:v1"

	currency = "COP"
	unitCode = "94" // unidad
	xmlHead  = `<?xml version="1.0" encoding="UTF-8"?>` + "\n"
)

// XMLBuilderService construye la representación UBL 2.1 de una factura. La salida está
// canonicalizada (C14N), así que la misma factura produce siempre los mismos bytes.
type XMLBuilderService struct{}

// NewXMLBuilderService crea el servicio.
func NewXMLBuilderService() *XMLBuilderService {
	return &XMLBuilderService{}
}

var _ billing.InvoiceXMLBuilder = (*XMLBuilderService)(nil)

// Build genera el documento Invoice. Company puede faltar (emisor sin configurar).
// Una factura con totales descuadrados o NIT de cliente inválido devuelve domain.ErrConflict.
func (s *XMLBuilderService) Build(doc *billing.InvoiceDocument) ([]byte, error) {
	if doc == nil || doc.Invoice == nil {
		return nil, fmt.Errorf("dian: falta la factura")
	}
	inv := doc.Invoice
	if err := invoicerules.ValidateInvoice(inv, doc.Client); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrConflict, err)
	}

	d := etree.NewDocument()
	root := d.CreateElement("Invoice")
	root.CreateAttr("xmlns", NsInvoice)
	root.CreateAttr("xmlns:cac", NsCac)
	root.CreateAttr("xmlns:cbc", NsCbc)
	root.CreateAttr("xmlns:ext", NsExt)
	root.CreateAttr("xmlns:sts", NsSts)

	// ext:UBLExtensions siempre como primer hijo de Invoice.
	writeExtensions(root, doc.Resolution)

	cbc(root, "UBLVersionID", "2.1")
	cbc(root, "CustomizationID", "10")
	cbc(root, "ProfileID", "DIAN 2.1: Factura Electrónica de Venta")
	cbc(root, "ID", inv.ID)
	if inv.AuthorizationCode != "" {
		uuid := cbc(root, "UUID", inv.AuthorizationCode)
		uuid.CreateAttr("schemeName", "CUFE-SHA384")
	}
	cbc(root, "IssueDate", inv.IssueDate.Format("2006-01-02"))
	if !inv.DueDate.IsZero() {
		cbc(root, "DueDate", inv.DueDate.Format("2006-01-02"))
	}
	cbc(root, "InvoiceTypeCode", "01")
	if inv.Notes != "" {
		cbc(root, "Note", inv.Notes)
	}
	cbc(root, "DocumentCurrencyCode", currency)
	cbc(root, "LineCountNumeric", strconv.Itoa(len(inv.LineItems)))

	writeSupplierParty(root, doc.Company)
	writeCustomerParty(root, inv, doc.Client)
	writePaymentMeans(root, inv)
	writeTaxTotal(root, inv)
	writeLegalMonetaryTotal(root, inv)
	for i, line := range inv.LineItems {
		writeInvoiceLine(root, i+1, line)
	}

	raw, err := d.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("dian: serializar XML: %w", err)
	}
	canonical, err := canonicalize(raw)
	if err != nil {
		return nil, fmt.Errorf("dian: canonicalizar XML: %w", err)
	}
	return append([]byte(xmlHead), canonical...), nil
}

func canonicalize(data []byte) ([]byte, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	dec.Entity = map[string]string{}
	return c14n.Canonicalize(dec)
}

func cbc(parent *etree.Element, local, value string) *etree.Element {
	el := parent.CreateElement("cbc:" + local)
	el.SetText(value)
	return el
}

func cbcAmount(parent *etree.Element, local string, value decimal.Decimal) {
	cbc(parent, local, formatDecimal(value)).CreateAttr("currencyID", currency)
}

func formatDecimal(d decimal.Decimal) string {
	return d.Round(2).StringFixed(2)
}

func writeExtensions(root *etree.Element, res *entity.DianResolution) {
	exts := root.CreateElement("ext:UBLExtensions")
	content := exts.CreateElement("ext:UBLExtension").CreateElement("ext:ExtensionContent")
	if res == nil {
		return
	}
	control := content.CreateElement("sts:DianExtensions").CreateElement("sts:InvoiceControl")
	control.CreateElement("sts:InvoiceAuthorization").SetText(res.Number)
	period := control.CreateElement("sts:AuthorizationPeriod")
	period.CreateElement("sts:StartDate").SetText(res.Date.Format("2006-01-02"))
	authorized := control.CreateElement("sts:AuthorizedInvoices")
	authorized.CreateElement("sts:Prefix").SetText(res.Prefix)
	authorized.CreateElement("sts:From").SetText(strconv.FormatInt(res.RangeFrom, 10))
	authorized.CreateElement("sts:To").SetText(strconv.FormatInt(res.RangeTo, 10))
}

func writeSupplierParty(root *etree.Element, company *entity.CompanyInfo) {
	party := root.CreateElement("cac:AccountingSupplierParty").CreateElement("cac:Party")
	if company == nil {
		return
	}
	writePartyIdentification(party, dian.IdentificationTypeNIT, company.NIT)
	cbc(party.CreateElement("cac:PartyName"), "Name", company.Name)
	if company.Address != "" || company.City != "" {
		addr := party.CreateElement("cac:PostalAddress")
		if company.City != "" {
			cbc(addr, "CityName", company.City)
		}
		if company.Address != "" {
			cbc(addr.CreateElement("cac:AddressLine"), "Line", company.Address)
		}
	}
	if len(company.FiscalResponsibilities) > 0 {
		scheme := party.CreateElement("cac:PartyTaxScheme")
		cbc(scheme, "RegistrationName", company.Name)
		cbc(scheme, "TaxLevelCode", joinCodes(company.FiscalResponsibilities))
	}
	if company.Email != "" {
		cbc(party.CreateElement("cac:Contact"), "ElectronicMail", company.Email)
	}
}

func writeCustomerParty(root *etree.Element, inv *entity.Invoice, client *entity.Client) {
	party := root.CreateElement("cac:AccountingCustomerParty").CreateElement("cac:Party")
	if client != nil {
		writePartyIdentification(party, dian.IdentificationTypeCode(client.IDType), client.IDNumber)
	}
	cbc(party.CreateElement("cac:PartyName"), "Name", inv.ClientName)
	if client == nil {
		return
	}
	if client.Address != "" {
		cbc(party.CreateElement("cac:PostalAddress").CreateElement("cac:AddressLine"), "Line", client.Address)
	}
	if len(client.FiscalResponsibilities) > 0 {
		scheme := party.CreateElement("cac:PartyTaxScheme")
		cbc(scheme, "RegistrationName", client.Name)
		cbc(scheme, "TaxLevelCode", joinCodes(client.FiscalResponsibilities))
	}
	if client.Email != "" {
		cbc(party.CreateElement("cac:Contact"), "ElectronicMail", client.Email)
	}
}

// writePartyIdentification NIT sin puntos, con el dígito de verificación en schemeID.
func writePartyIdentification(party *etree.Element, schemeName, number string) {
	digits := onlyDigits(number)
	id := cbc(party.CreateElement("cac:PartyIdentification"), "ID", digits)
	id.CreateAttr("schemeName", schemeName)
	if schemeName == dian.IdentificationTypeNIT && len(digits) == 10 {
		id.SetText(digits[:9])
		id.CreateAttr("schemeID", digits[9:])
	}
}

func writePaymentMeans(root *etree.Element, inv *entity.Invoice) {
	means := root.CreateElement("cac:PaymentMeans")
	form := dian.PaymentFormCode(inv.PaymentForm)
	cbc(means, "ID", form)
	cbc(means, "PaymentMeansCode", dian.PaymentMethodCode(inv.PaymentMethod))
	if form == dian.PaymentFormCredito && !inv.DueDate.IsZero() {
		cbc(means, "PaymentDueDate", inv.DueDate.Format("2006-01-02"))
	}
}

// writeTaxTotal un cac:TaxSubtotal de IVA por cada tarifa presente en las líneas.
func writeTaxTotal(root *etree.Element, inv *entity.Invoice) {
	taxable := map[string]decimal.Decimal{}
	rates := map[string]decimal.Decimal{}
	for _, line := range inv.LineItems {
		key := line.TaxRate.String()
		taxable[key] = taxable[key].Add(line.Total)
		rates[key] = line.TaxRate
	}
	keys := make([]string, 0, len(rates))
	for k := range rates {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return rates[keys[i]].LessThan(rates[keys[j]]) })

	total := root.CreateElement("cac:TaxTotal")
	cbcAmount(total, "TaxAmount", inv.TaxTotal)
	for _, k := range keys {
		base := taxable[k]
		sub := total.CreateElement("cac:TaxSubtotal")
		cbcAmount(sub, "TaxableAmount", base)
		cbcAmount(sub, "TaxAmount", base.Mul(rates[k]).Div(decimal.NewFromInt(100)))
		cat := sub.CreateElement("cac:TaxCategory")
		cbc(cat, "Percent", rates[k].StringFixed(2))
		scheme := cat.CreateElement("cac:TaxScheme")
		cbc(scheme, "ID", dian.TaxCodeIVA)
		cbc(scheme, "Name", dian.TaxNameIVA)
	}
}

func writeLegalMonetaryTotal(root *etree.Element, inv *entity.Invoice) {
	total := root.CreateElement("cac:LegalMonetaryTotal")
	cbcAmount(total, "LineExtensionAmount", inv.Subtotal)
	cbcAmount(total, "TaxExclusiveAmount", inv.Subtotal)
	cbcAmount(total, "TaxInclusiveAmount", inv.Total)
	cbcAmount(total, "PayableAmount", inv.Total)
}

func writeInvoiceLine(root *etree.Element, n int, line entity.LineItem) {
	el := root.CreateElement("cac:InvoiceLine")
	cbc(el, "ID", strconv.Itoa(n))
	cbc(el, "InvoicedQuantity", line.Quantity.String()).CreateAttr("unitCode", unitCode)
	cbcAmount(el, "LineExtensionAmount", line.Total)

	tax := el.CreateElement("cac:TaxTotal")
	lineTax := line.Total.Mul(line.TaxRate).Div(decimal.NewFromInt(100))
	cbcAmount(tax, "TaxAmount", lineTax)

	item := el.CreateElement("cac:Item")
	cbc(item, "Description", line.ProductName)
	if line.ProductSKU != "" {
		cbc(item.CreateElement("cac:SellersItemIdentification"), "ID", line.ProductSKU)
	}
	price := el.CreateElement("cac:Price")
	cbcAmount(price, "PriceAmount", line.UnitPrice)
	cbc(price, "BaseQuantity", "1").CreateAttr("unitCode", unitCode)
}

func joinCodes(codes []string) string {
	var b bytes.Buffer
	for i, c := range codes {
		if i > 0 {
			b.WriteByte(';')
		}
		b.WriteString(c)
	}
	return b.String()
}

func onlyDigits(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] >= '0' && s[i] <= '9' {
			out = append(out, s[i])
		}
	}
	return string(out)
}
