// Package pdf genera la representación gráfica de facturas, cotizaciones y notas
// crédito/débito.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Razón Social + NIT  │  Tipo + N° documento + Fecha │
//	│  RESOLUCIÓN DIAN (si la empresa lo habilita)                 │
//	│  ─────────────────────────────────────────────────────────  │
//	│  EMISOR: Dirección / Tel / Email                             │
//	│  CLIENTE: Nombre + identificación + contacto                 │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Cant | Descripción | P.Unit | IVA | Total            │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES + valor en letras                                   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: código de autorización + QR (solo facturas)         │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Facturacion-api/internal/application/billing"
	"github.com/jhoicas/Facturacion-api/internal/domain/entity"
	"github.com/jhoicas/Facturacion-api/pkg/dian"
	"github.com/jhoicas/Facturacion-api/pkg/numtext"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

const qrBaseURL = "https://catalogo-vpfe.dian.gov.co/document/searchqr?documentkey="

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa billing.DocumentPDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

var _ billing.DocumentPDFGenerator = (*MarotoPDFGenerator)(nil)

// pdfLine fila de la tabla de detalle, común a los tres tipos de documento.
type pdfLine struct {
	Quantity  decimal.Decimal
	Name      string
	UnitPrice decimal.Decimal
	TaxRate   *decimal.Decimal
	Total     decimal.Decimal
}

type totalRow struct {
	Label string
	Value decimal.Decimal
}

// sheet todo lo que se dibuja en un documento.
type sheet struct {
	Title      string
	Number     string
	Date       string
	DueDate    string
	Company    *entity.CompanyInfo
	Resolution *entity.DianResolution
	ClientName string
	Client     *entity.Client
	Lines      []pdfLine
	Totals     []totalRow
	GrandLabel string
	Grand      decimal.Decimal
	Notes      []string
	AuthCode   string
	QRData     string
}

// InvoicePDF representación gráfica de una factura.
func (g *MarotoPDFGenerator) InvoicePDF(_ context.Context, doc *billing.InvoiceDocument) ([]byte, error) {
	if doc == nil || doc.Invoice == nil {
		return nil, fmt.Errorf("pdf: falta la factura")
	}
	inv := doc.Invoice
	s := sheet{
		Title:      "FACTURA ELECTRÓNICA DE VENTA",
		Number:     inv.ID,
		Date:       inv.IssueDate.Format("02/01/2006"),
		Company:    doc.Company,
		ClientName: inv.ClientName,
		Client:     doc.Client,
		Totals: []totalRow{
			{"Subtotal:", inv.Subtotal},
			{"IVA:", inv.TaxTotal},
		},
		GrandLabel: "TOTAL A PAGAR:",
		Grand:      inv.Total,
		AuthCode:   inv.AuthorizationCode,
	}
	if !inv.DueDate.IsZero() {
		s.DueDate = inv.DueDate.Format("02/01/2006")
	}
	if doc.Company != nil && doc.Company.ShowDianInfoInPDF {
		s.Resolution = doc.Resolution
	}
	for _, l := range inv.LineItems {
		rate := l.TaxRate
		s.Lines = append(s.Lines, pdfLine{Quantity: l.Quantity, Name: l.ProductName, UnitPrice: l.UnitPrice, TaxRate: &rate, Total: l.Total})
	}
	if inv.PaymentForm != "" {
		s.Notes = append(s.Notes, fmt.Sprintf("Forma de pago: %s   |   Medio de pago: %s", inv.PaymentForm, nonEmpty(inv.PaymentMethod, "—")))
	}
	if inv.Notes != "" {
		s.Notes = append(s.Notes, "Observaciones: "+inv.Notes)
	}
	if inv.AuthorizationCode != "" {
		s.QRData = invoiceQR(inv, doc.Company)
	}
	return render(s)
}

// QuotePDF representación gráfica de una cotización, con el descuento aplicado.
func (g *MarotoPDFGenerator) QuotePDF(_ context.Context, doc *billing.QuoteDocument) ([]byte, error) {
	if doc == nil || doc.Quote == nil {
		return nil, fmt.Errorf("pdf: falta la cotización")
	}
	q := doc.Quote
	s := sheet{
		Title:      "COTIZACIÓN",
		Number:     q.ID,
		Date:       q.IssueDate.Format("02/01/2006"),
		Company:    doc.Company,
		ClientName: q.ClientName,
		Client:     doc.Client,
		GrandLabel: "TOTAL:",
		Grand:      q.Total,
	}
	for _, l := range q.LineItems {
		rate := l.TaxRate
		s.Lines = append(s.Lines, pdfLine{Quantity: l.Quantity, Name: l.ProductName, UnitPrice: l.UnitPrice, TaxRate: &rate, Total: l.Total})
	}
	s.Totals = append(s.Totals, totalRow{"Subtotal:", q.Subtotal})
	if q.TotalDiscount.IsPositive() {
		label := "Descuento:"
		if q.DiscountType == entity.DiscountTypePercentage {
			label = fmt.Sprintf("Descuento (%s%%):", q.DiscountValue.String())
		}
		s.Totals = append(s.Totals, totalRow{label, q.TotalDiscount.Neg()})
	}
	s.Totals = append(s.Totals, totalRow{"IVA:", q.TaxTotal})
	if q.Notes != "" {
		s.Notes = append(s.Notes, "Observaciones: "+q.Notes)
	}
	return render(s)
}

// CreditNotePDF representación gráfica de una nota crédito o débito.
func (g *MarotoPDFGenerator) CreditNotePDF(_ context.Context, doc *billing.CreditNoteDocument) ([]byte, error) {
	if doc == nil || doc.Note == nil {
		return nil, fmt.Errorf("pdf: falta la nota")
	}
	n := doc.Note
	title := "NOTA CRÉDITO"
	if n.Type == entity.CreditNoteTypeDebit {
		title = "NOTA DÉBITO"
	}
	s := sheet{
		Title:      title,
		Number:     n.ID,
		Date:       n.IssueDate.Format("02/01/2006"),
		Company:    doc.Company,
		ClientName: n.ClientName,
		Client:     doc.Client,
		GrandLabel: "VALOR DE LA NOTA:",
		Grand:      n.Total,
		Notes: []string{
			"Factura de referencia: " + n.InvoiceID,
			"Motivo: " + n.Reason,
		},
	}
	for _, l := range n.LineItems {
		s.Lines = append(s.Lines, pdfLine{Quantity: l.Quantity, Name: l.ProductName, UnitPrice: l.UnitPrice, Total: l.Total})
	}
	if n.AdditionalNotes != "" {
		s.Notes = append(s.Notes, "Observaciones: "+n.AdditionalNotes)
	}
	return render(s)
}

func render(s sheet) ([]byte, error) {
	author := "Empresa sin configurar"
	if s.Company != nil && s.Company.Name != "" {
		author = s.Company.Name
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(s.Title+" "+s.Number, true).
		WithAuthor(author, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(s, author))
	if s.Resolution != nil {
		m.AddRows(resolutionRow(s.Resolution))
	}
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(emisorRow(s.Company))
	m.AddRows(clientRow(s.ClientName, s.Client))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(tableDetailRows(s.Lines)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(s.Totals, s.GrandLabel, s.Grand))
	m.AddRows(row.New(6).Add(col.New(12).Add(
		text.New("SON: "+numtext.Pesos(s.Grand), props.Text{Style: fontstyle.BoldItalic, Size: 8, Top: 1}),
	)))
	for _, note := range s.Notes {
		m.AddRows(row.New(5).Add(col.New(12).Add(
			text.New(note, props.Text{Size: 8, Color: colorGray, Top: 1}),
		)))
	}

	if s.AuthCode != "" {
		m.AddRows(line.NewRow(3))
		m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
		m.AddRows(authorizationRows(s.AuthCode, s.QRData)...)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: razón social + NIT (izq) y tipo, número y fechas (der).
func headerRow(s sheet, companyName string) core.Row {
	nit := "—"
	if s.Company != nil && s.Company.NIT != "" {
		nit = dian.FormatNIT(s.Company.NIT)
	}
	dates := "Fecha: " + s.Date
	if s.DueDate != "" {
		dates += "   Vence: " + s.DueDate
	}
	return row.New(18).Add(
		col.New(7).Add(
			text.New(companyName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("NIT: "+nit, props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New(s.Title, props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(s.Number, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New(dates, props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

func resolutionRow(res *entity.DianResolution) core.Row {
	msg := fmt.Sprintf("Resolución DIAN N° %s del %s. Prefijo %s, rango %d al %d",
		res.Number, res.Date.Format("02/01/2006"), res.Prefix, res.RangeFrom, res.RangeTo)
	if res.Validity != "" {
		msg += ". Vigencia: " + res.Validity
	}
	return row.New(5).Add(col.New(12).Add(
		text.New(msg, props.Text{Size: 7, Color: colorGray, Top: 1}),
	))
}

// emisorRow: datos del emisor (empresa).
func emisorRow(company *entity.CompanyInfo) core.Row {
	var address, city, phone, email string
	if company != nil {
		address, city, phone, email = company.Address, company.City, company.Phone, company.Email
	}
	if city != "" {
		address = strings.TrimSpace(address + ", " + city)
	}
	return row.New(12).Add(
		col.New(12).Add(
			text.New("DATOS DEL EMISOR", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("Dirección: %s   |   Tel: %s   |   Email: %s",
				nonEmpty(strings.TrimPrefix(address, ", "), "—"),
				nonEmpty(phone, "—"),
				nonEmpty(email, "—"),
			), props.Text{Size: 8, Top: 7, Color: colorGray}),
		),
	)
}

// clientRow: datos del cliente. Si el cliente fue eliminado se muestra solo el nombre
// guardado en el documento.
func clientRow(name string, client *entity.Client) core.Row {
	ident, email, phone := "—", "—", "—"
	if client != nil {
		ident = client.IDType + " " + client.IDNumber
		email = nonEmpty(client.Email, "—")
		phone = nonEmpty(client.Phone, "—")
	}
	return row.New(14).Add(
		col.New(12).Add(
			text.New("CLIENTE / ADQUIRIENTE", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(nonEmpty(name, "—"), props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(fmt.Sprintf("Identificación: %s   |   Email: %s   |   Tel: %s", ident, email, phone),
				props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de detalles.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Cant.", 1, align.Center),
		h("Descripción del producto/servicio", 5, align.Left),
		h("Precio Unit.", 2, align.Right),
		h("IVA%", 1, align.Center),
		h("Total", 3, align.Right),
	).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

// tableDetailRows: una fila por línea. Las notas no llevan tarifa por línea.
func tableDetailRows(lines []pdfLine) []core.Row {
	result := make([]core.Row, 0, len(lines))
	for _, l := range lines {
		rate := "—"
		if l.TaxRate != nil {
			rate = l.TaxRate.StringFixed(0) + "%"
		}
		result = append(result, row.New(7).Add(
			col.New(1).Add(text.New(
				l.Quantity.String(),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(5).Add(text.New(
				l.Name,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				formatCOP(l.UnitPrice),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(1).Add(text.New(
				rate,
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(3).Add(text.New(
				formatCOP(l.Total),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

// totalsRow: bloque de totales alineado a la derecha.
func totalsRow(rows []totalRow, grandLabel string, grand decimal.Decimal) core.Row {
	labels := col.New(3)
	values := col.New(3)
	top := 0.0
	for _, r := range rows {
		labels.Add(text.New(r.Label, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: top}))
		values.Add(text.New(formatCOP(r.Value), props.Text{Size: 9, Align: align.Right, Right: 1, Top: top}))
		top += 5
	}
	labels.Add(text.New(grandLabel, props.Text{
		Style: fontstyle.Bold, Size: 10, Align: align.Right,
		Color: colorPrimary, Right: 2, Top: top + 1,
	}))
	values.Add(text.New(formatCOP(grand), props.Text{
		Style: fontstyle.Bold, Size: 10, Align: align.Right,
		Color: colorPrimary, Right: 1, Top: top + 1,
	}))
	return row.New(top+9).Add(col.New(3), labels, values, col.New(3))
}

// authorizationRows: código de autorización partido + QR.
func authorizationRows(authCode, qrData string) []core.Row {
	rows := []core.Row{
		row.New(6).Add(col.New(12).Add(
			text.New("CÓDIGO DE AUTORIZACIÓN", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
		)),
	}
	for _, chunk := range splitEvery(authCode, 80) {
		rows = append(rows, row.New(4).Add(col.New(12).Add(
			text.New(chunk, props.Text{Size: 6.5, Color: colorGray, Top: 0.5, Left: 2}),
		)))
	}
	rows = append(rows, row.New(3))
	if qrData != "" {
		rows = append(rows, row.New(40).Add(
			col.New(3).Add(code.NewQr(qrData, props.Rect{Percent: 95, Center: true})),
			col.New(9).Add(
				text.New("Escanea el código QR para consultar\nesta factura.", props.Text{
					Size: 8, Top: 4, Left: 3, Color: colorGray,
				}),
			),
		))
	}
	return rows
}

// ── helpers ───────────────────────────────────────────────────────────────────

// invoiceQR contenido del QR en el formato clave:valor de la DIAN.
func invoiceQR(inv *entity.Invoice, company *entity.CompanyInfo) string {
	var b strings.Builder
	fmt.Fprintf(&b, "NumFac: %s\n", inv.ID)
	fmt.Fprintf(&b, "FecFac: %s\n", inv.IssueDate.Format("2006-01-02"))
	if company != nil {
		fmt.Fprintf(&b, "NitFac: %s\n", company.NIT)
	}
	fmt.Fprintf(&b, "ValFac: %s\n", inv.Subtotal.StringFixed(2))
	fmt.Fprintf(&b, "ValIva: %s\n", inv.TaxTotal.StringFixed(2))
	fmt.Fprintf(&b, "ValTolFac: %s\n", inv.Total.StringFixed(2))
	fmt.Fprintf(&b, "CUFE: %s\n", inv.AuthorizationCode)
	b.WriteString(qrBaseURL + inv.AuthorizationCode)
	return b.String()
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatCOP formato de moneda colombiano sin decimales: 1234567 → "$ 1.234.567".
func formatCOP(d decimal.Decimal) string {
	s := d.Round(0).Abs().StringFixed(0)
	sign := ""
	if d.Round(0).IsNegative() {
		sign = "-"
	}
	return sign + "$ " + formatMoney(s)
}

// formatMoney inserta puntos de miles en un string numérico sin decimales.
// Ej: "25000" → "25.000", "1000000" → "1.000.000"
func formatMoney(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return string(buf)
}

// splitEvery divide s en trozos de max n caracteres.
func splitEvery(s string, n int) []string {
	var parts []string
	for len(s) > n {
		parts = append(parts, s[:n])
		s = s[n:]
	}
	if s != "" {
		parts = append(parts, s)
	}
	return parts
}
