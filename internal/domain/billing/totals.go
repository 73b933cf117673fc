// Package billing contiene los cálculos de totales de documentos y la tabla de estados.
//
// Hay dos modelos de descuento y se mantienen separados:
//   - Factura: sin descuento por línea; el descuento global (%) solo reduce la base gravable
//     en los reportes tributarios (InvoiceTaxBase).
//   - Cotización: descuento porcentual o fijo aplicado antes de impuestos y repartido por línea.
package billing

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Facturacion-api/internal/domain"
	"github.com/jhoicas/Facturacion-api/internal/domain/entity"
)

var hundred = decimal.NewFromInt(100)

// Line entrada mínima del calculador.
type Line struct {
	Quantity  decimal.Decimal
	UnitPrice decimal.Decimal
	TaxRate   decimal.Decimal // porcentaje, ej. 19
}

// Total = Quantity × UnitPrice.
func (l Line) Total() decimal.Decimal {
	return l.Quantity.Mul(l.UnitPrice)
}

// Totals resultado del cálculo.
type Totals struct {
	Subtotal decimal.Decimal
	Discount decimal.Decimal
	Tax      decimal.Decimal
	Total    decimal.Decimal
}

// Discount descuento de cotización.
type Discount struct {
	Type  string // entity.DiscountTypePercentage | entity.DiscountTypeFixed
	Value decimal.Decimal
}

// ValidateLines cantidad entera > 0, precio >= 0 e IVA >= 0.
func ValidateLines(lines []Line) error {
	for _, l := range lines {
		if !validQuantity(l.Quantity) || l.UnitPrice.IsNegative() || l.TaxRate.IsNegative() {
			return domain.ErrInvalidInput
		}
	}
	return nil
}

func validQuantity(q decimal.Decimal) bool {
	return q.IsPositive() && q.Equal(q.Truncate(0))
}

// CalculateInvoiceTotals modelo de factura: impuesto por línea, sin descuento.
func CalculateInvoiceTotals(lines []Line) Totals {
	var subtotal, tax decimal.Decimal
	for _, l := range lines {
		lt := l.Total()
		subtotal = subtotal.Add(lt)
		tax = tax.Add(lt.Mul(l.TaxRate).Div(hundred))
	}
	return Totals{
		Subtotal: subtotal,
		Discount: decimal.Zero,
		Tax:      tax,
		Total:    subtotal.Add(tax),
	}
}

// CalculateQuoteTotals modelo de cotización.
//
//	porcentaje: descuento = subtotal × pct/100, descuento de línea = línea × pct/100
//	fijo:       descuento = min(valor, subtotal), descuento de línea = (línea/subtotal) × descuento
//	impuesto  = Σ (línea − descuento de línea) × IVA/100
//	total     = subtotal − descuento + impuesto
//
// Con subtotal 0 no hay descuento ni impuesto (sin división por cero).
func CalculateQuoteTotals(lines []Line, d Discount) (Totals, error) {
	if d.Value.IsNegative() {
		return Totals{}, domain.ErrInvalidInput
	}
	if d.Type != "" && d.Type != entity.DiscountTypePercentage && d.Type != entity.DiscountTypeFixed {
		return Totals{}, domain.ErrInvalidInput
	}
	if d.Type != entity.DiscountTypeFixed && d.Value.GreaterThan(hundred) {
		return Totals{}, fmt.Errorf("%w: descuento de %s%% supera el 100%%", domain.ErrInvalidInput, d.Value)
	}

	var subtotal decimal.Decimal
	for _, l := range lines {
		subtotal = subtotal.Add(l.Total())
	}
	if !subtotal.IsPositive() {
		return Totals{Subtotal: subtotal, Discount: decimal.Zero, Tax: decimal.Zero, Total: subtotal}, nil
	}

	var discount decimal.Decimal
	pct := d.Value
	switch d.Type {
	case entity.DiscountTypeFixed:
		discount = decimal.Min(d.Value, subtotal)
	default:
		discount = subtotal.Mul(pct).Div(hundred)
	}

	var tax decimal.Decimal
	for _, l := range lines {
		lt := l.Total()
		var lineDiscount decimal.Decimal
		if d.Type == entity.DiscountTypeFixed {
			lineDiscount = lt.Div(subtotal).Mul(discount)
		} else {
			lineDiscount = lt.Mul(pct).Div(hundred)
		}
		tax = tax.Add(lt.Sub(lineDiscount).Mul(l.TaxRate).Div(hundred))
	}

	return Totals{
		Subtotal: subtotal,
		Discount: discount,
		Tax:      tax,
		Total:    subtotal.Sub(discount).Add(tax),
	}, nil
}

// InvoiceTaxBase base gravable con el descuento global de la factura: subtotal × (1 − pct/100).
func InvoiceTaxBase(subtotal, globalDiscountPct decimal.Decimal) decimal.Decimal {
	return subtotal.Mul(decimal.NewFromInt(1).Sub(globalDiscountPct.Div(hundred)))
}

// Round redondea a pesos enteros (la moneda no maneja centavos). El total se recalcula con
// los valores ya redondeados para que siga cumpliendo total = subtotal − descuento + impuesto.
func (t Totals) Round() Totals {
	r := Totals{
		Subtotal: t.Subtotal.Round(0),
		Discount: t.Discount.Round(0),
		Tax:      t.Tax.Round(0),
	}
	r.Total = r.Subtotal.Sub(r.Discount).Add(r.Tax)
	return r
}

// LinesFrom convierte líneas de documento al formato del calculador.
func LinesFrom(items []entity.LineItem) []Line {
	out := make([]Line, 0, len(items))
	for _, it := range items {
		out = append(out, Line{Quantity: it.Quantity, UnitPrice: it.UnitPrice, TaxRate: it.TaxRate})
	}
	return out
}
