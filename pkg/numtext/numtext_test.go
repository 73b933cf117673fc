package numtext_test

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Facturacion-api/pkg/numtext"
)

func TestToWords(t *testing.T) {
	cases := map[int64]string{
		0:             "CERO",
		1:             "UNO",
		15:            "QUINCE",
		21:            "VEINTIUNO",
		31:            "TREINTA Y UNO",
		100:           "CIEN",
		101:           "CIENTO UNO",
		999:           "NOVECIENTOS NOVENTA Y NUEVE",
		1000:          "MIL",
		21000:         "VEINTIÚN MIL",
		31000:         "TREINTA Y UN MIL",
		59500:         "CINCUENTA Y NUEVE MIL QUINIENTOS",
		100000:        "CIEN MIL",
		1_000_000:     "UN MILLÓN",
		1_001_000:     "UN MILLÓN MIL",
		1_666_000:     "UN MILLÓN SEISCIENTOS SESENTA Y SEIS MIL",
		2_000_000:     "DOS MILLONES",
		21_000_000:    "VEINTIÚN MILLONES",
		2_000_000_000: "DOS MIL MILLONES",

		1_000_000_000_000:  "UN BILLÓN",
		2_500_000_000_000:  "DOS BILLONES QUINIENTOS MIL MILLONES",
		21_000_000_000_000: "VEINTIÚN BILLONES",
	}
	for n, want := range cases {
		assert.Equal(t, want, numtext.ToWords(n), "n=%d", n)
	}
}

func TestToWords_Negativo(t *testing.T) {
	assert.Equal(t, "MENOS CIEN", numtext.ToWords(-100))
	assert.Equal(t, "MENOS UN BILLÓN", numtext.ToWords(-1_000_000_000_000))
}

func TestToWords_Extremos(t *testing.T) {
	assert.NotPanics(t, func() { numtext.ToWords(math.MaxInt64) })
	assert.Equal(t,
		"MENOS NUEVE MILLONES DOSCIENTOS VEINTITRÉS MIL TRESCIENTOS SETENTA Y DOS BILLONES "+
			"TREINTA Y SEIS MIL OCHOCIENTOS CINCUENTA Y CUATRO MILLONES "+
			"SETECIENTOS SETENTA Y CINCO MIL OCHOCIENTOS OCHO",
		numtext.ToWords(math.MinInt64))
}

func TestPesos_MontoGrande(t *testing.T) {
	assert.Equal(t, "DOS BILLONES QUINIENTOS MIL MILLONES PESOS M/CTE",
		numtext.Pesos(decimal.NewFromInt(2_500_000_000_000)))
}

func TestPesos(t *testing.T) {
	assert.Equal(t, "CIENTO CINCUENTA MIL PESOS M/CTE", numtext.Pesos(decimal.NewFromInt(150000)))
	assert.Equal(t, "CIEN PESOS M/CTE", numtext.Pesos(decimal.RequireFromString("99.6")), "se redondea a pesos")
}
