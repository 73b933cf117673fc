// Package inventory reglas puras del kardex.
package inventory

import "github.com/shopspring/decimal"

// CostCalculator costo promedio ponderado después de una entrada.
//
//	nuevoCosto = ((stock × costo) + (cantEntrada × costoEntrada)) / (stock + cantEntrada)
//
// Con stock negativo o nulo el costo anterior no pesa: se toma el costo de la entrada.
func CostCalculator(stock, cost, qtyIn, unitCostIn decimal.Decimal) decimal.Decimal {
	if !stock.IsPositive() {
		return unitCostIn
	}
	sum := stock.Add(qtyIn)
	if !sum.IsPositive() {
		return decimal.Zero
	}
	return stock.Mul(cost).Add(qtyIn.Mul(unitCostIn)).Div(sum)
}

// WholeUnits el kardex solo maneja unidades enteras.
func WholeUnits(q decimal.Decimal) bool {
	return q.Equal(q.Truncate(0))
}

// AdjustmentDelta delta que lleva el stock actual al nivel objetivo.
func AdjustmentDelta(current, target decimal.Decimal) decimal.Decimal {
	return target.Sub(current)
}

// Balance suma de los deltas del kardex.
func Balance(deltas []decimal.Decimal) decimal.Decimal {
	sum := decimal.Zero
	for _, d := range deltas {
		sum = sum.Add(d)
	}
	return sum
}
