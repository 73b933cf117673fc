package billing_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Facturacion-api/internal/domain"
	"github.com/jhoicas/Facturacion-api/internal/domain/billing"
	"github.com/jhoicas/Facturacion-api/internal/domain/entity"
)

func d(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func line(qty, price, rate int64) billing.Line {
	return billing.Line{Quantity: d(qty), UnitPrice: d(price), TaxRate: d(rate)}
}

func assertDec(t *testing.T, want int64, got decimal.Decimal, msg string) {
	t.Helper()
	assert.True(t, d(want).Equal(got), "%s: esperado %d, obtenido %s", msg, want, got.String())
}

// ──────────────────────────────────────────────────────────────────────────────
// Factura
// ──────────────────────────────────────────────────────────────────────────────

func TestCalculateInvoiceTotals_Widget(t *testing.T) {
	tot := billing.CalculateInvoiceTotals([]billing.Line{line(5, 10000, 19)})
	assertDec(t, 50000, tot.Subtotal, "subtotal")
	assertDec(t, 9500, tot.Tax, "iva")
	assertDec(t, 0, tot.Discount, "descuento")
	assertDec(t, 59500, tot.Total, "total")
}

func TestCalculateInvoiceTotals_TasasMixtas(t *testing.T) {
	lines := []billing.Line{line(2, 1000, 19), line(3, 500, 5), line(1, 700, 0)}
	tot := billing.CalculateInvoiceTotals(lines)

	var sum decimal.Decimal
	for _, l := range lines {
		sum = sum.Add(l.Total())
	}
	assert.True(t, sum.Equal(tot.Subtotal), "subtotal = Σ cantidad × precio")
	assertDec(t, 4200, tot.Subtotal, "subtotal")
	assertDec(t, 455, tot.Tax, "iva 380 + 75")
	assert.True(t, tot.Total.Equal(tot.Subtotal.Sub(tot.Discount).Add(tot.Tax)))
}

func TestCalculateInvoiceTotals_SinLineas(t *testing.T) {
	tot := billing.CalculateInvoiceTotals(nil)
	assert.True(t, tot.Subtotal.IsZero())
	assert.True(t, tot.Tax.IsZero())
	assert.True(t, tot.Total.IsZero())
}

func TestInvoiceTaxBase(t *testing.T) {
	assertDec(t, 90000, billing.InvoiceTaxBase(d(100000), d(10)), "base con 10% global")
	assertDec(t, 100000, billing.InvoiceTaxBase(d(100000), decimal.Zero), "sin descuento")
}

// ──────────────────────────────────────────────────────────────────────────────
// Cotización
// ──────────────────────────────────────────────────────────────────────────────

func TestCalculateQuoteTotals_DescuentoPorcentual(t *testing.T) {
	tot, err := billing.CalculateQuoteTotals(
		[]billing.Line{line(10, 1000, 19)},
		billing.Discount{Type: entity.DiscountTypePercentage, Value: d(10)},
	)
	require.NoError(t, err)
	assertDec(t, 10000, tot.Subtotal, "subtotal")
	assertDec(t, 1000, tot.Discount, "descuento")
	assertDec(t, 1710, tot.Tax, "iva sobre base descontada")
	assertDec(t, 10710, tot.Total, "total")
}

func TestCalculateQuoteTotals_DescuentoFijoProporcional(t *testing.T) {
	// 6000 al 19% y 4000 al 0%; descuento fijo 1000 se reparte 600 / 400.
	tot, err := billing.CalculateQuoteTotals(
		[]billing.Line{line(6, 1000, 19), line(4, 1000, 0)},
		billing.Discount{Type: entity.DiscountTypeFixed, Value: d(1000)},
	)
	require.NoError(t, err)
	assertDec(t, 10000, tot.Subtotal, "subtotal")
	assertDec(t, 1000, tot.Discount, "descuento")
	assertDec(t, 1026, tot.Tax, "iva (6000-600) × 19%")
	assertDec(t, 10026, tot.Total, "total")
}

func TestCalculateQuoteTotals_FijoMayorQueSubtotal(t *testing.T) {
	tot, err := billing.CalculateQuoteTotals(
		[]billing.Line{line(1, 500, 19)},
		billing.Discount{Type: entity.DiscountTypeFixed, Value: d(2000)},
	)
	require.NoError(t, err)
	assertDec(t, 500, tot.Discount, "el descuento fijo se limita al subtotal")
	assertDec(t, 0, tot.Tax, "base descontada en cero")
	assertDec(t, 0, tot.Total, "total")
}

func TestCalculateQuoteTotals_SubtotalCero(t *testing.T) {
	for _, typ := range []string{entity.DiscountTypePercentage, entity.DiscountTypeFixed} {
		tot, err := billing.CalculateQuoteTotals(nil, billing.Discount{Type: typ, Value: d(50)})
		require.NoError(t, err)
		assert.True(t, tot.Subtotal.IsZero(), typ)
		assert.True(t, tot.Discount.IsZero(), typ)
		assert.True(t, tot.Tax.IsZero(), typ)
		assert.True(t, tot.Total.IsZero(), typ)
	}

	tot, err := billing.CalculateQuoteTotals(
		[]billing.Line{line(3, 0, 19)},
		billing.Discount{Type: entity.DiscountTypeFixed, Value: d(100)},
	)
	require.NoError(t, err, "líneas con precio cero no deben dividir por cero")
	assert.True(t, tot.Total.IsZero())
}

func TestCalculateQuoteTotals_SinDescuento(t *testing.T) {
	tot, err := billing.CalculateQuoteTotals(
		[]billing.Line{line(10, 35000, 19)},
		billing.Discount{Type: entity.DiscountTypePercentage, Value: decimal.Zero},
	)
	require.NoError(t, err)
	assertDec(t, 350000, tot.Subtotal, "subtotal")
	assertDec(t, 66500, tot.Tax, "iva")
	assertDec(t, 416500, tot.Total, "total")
}

func TestCalculateQuoteTotals_DescuentoNegativo(t *testing.T) {
	_, err := billing.CalculateQuoteTotals(
		[]billing.Line{line(1, 100, 19)},
		billing.Discount{Type: entity.DiscountTypeFixed, Value: d(-1)},
	)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCalculateQuoteTotals_PorcentajeMayorA100(t *testing.T) {
	_, err := billing.CalculateQuoteTotals(
		[]billing.Line{line(1, 100, 19)},
		billing.Discount{Type: entity.DiscountTypePercentage, Value: d(150)},
	)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	tot, err := billing.CalculateQuoteTotals(
		[]billing.Line{line(1, 100, 19)},
		billing.Discount{Type: entity.DiscountTypePercentage, Value: d(100)},
	)
	require.NoError(t, err)
	assertDec(t, 0, tot.Total, "el 100% deja el documento en cero")
}

func TestValidateLines(t *testing.T) {
	assert.NoError(t, billing.ValidateLines([]billing.Line{line(1, 0, 0)}))
	assert.ErrorIs(t, billing.ValidateLines([]billing.Line{line(0, 100, 19)}), domain.ErrInvalidInput)
	assert.ErrorIs(t, billing.ValidateLines([]billing.Line{line(1, -5, 19)}), domain.ErrInvalidInput)

	half := billing.Line{Quantity: decimal.RequireFromString("2.5"), UnitPrice: d(100), TaxRate: d(19)}
	assert.ErrorIs(t, billing.ValidateLines([]billing.Line{half}), domain.ErrInvalidInput, "cantidad fraccionaria")
}

func TestTotalsRound_MantieneIdentidad(t *testing.T) {
	tot, err := billing.CalculateQuoteTotals(
		[]billing.Line{line(3, 333, 19)},
		billing.Discount{Type: entity.DiscountTypeFixed, Value: d(7)},
	)
	require.NoError(t, err)
	r := tot.Round()
	assert.True(t, r.Total.Equal(r.Subtotal.Sub(r.Discount).Add(r.Tax)))
	assert.True(t, r.Tax.Equal(r.Tax.Round(0)), "iva sin decimales")
}
