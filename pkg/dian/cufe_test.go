package dian_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Facturacion-api/pkg/dian"
)

// ──────────────────────────────────────────────────────────────────────────────
// Vectores SHA-384 calculados fuera de Go sobre la cadena de concatenación.
// Si cambia el orden de los campos o el formato de montos, estos tests fallan.
// ──────────────────────────────────────────────────────────────────────────────

func buildParams() *dian.CufeParams {
	return &dian.CufeParams{
		NumFac:  "SETP990000000",
		FecFac:  "2023-11-29",
		ValFac:  decimal.NewFromInt(1_000_000),
		ValIVA:  decimal.NewFromInt(190_000),
		ValPag:  decimal.NewFromInt(1_190_000),
		NitOfe:  "900123456",
		DocAdq:  "800987654",
		ClTec:   "fc8eac422eba16e22ffd8c6f94b3f40a6e38162c354673d3a603956897890cd",
		TipoAmb: "2",
	}
}

func TestCalculateCufe_VectorExacto(t *testing.T) {
	cufe, err := dian.NewCufeCalculatorService().Calculate(buildParams())
	require.NoError(t, err)
	assert.Equal(t,
		"f5693bff411776a0c3536bba5df32491df2ffc101a8ff4810cdfc04368b8a9286dc0d5c578fa2344e119d118947a0c4c",
		cufe)
}

func TestCalculateCufe_FacturaConGuionYPuntos(t *testing.T) {
	p := &dian.CufeParams{
		NumFac:  "FVC-1",
		FecFac:  "2026-10-16",
		ValFac:  decimal.NewFromInt(1_400_000),
		ValIVA:  decimal.NewFromInt(266_000),
		ValPag:  decimal.NewFromInt(1_666_000),
		NitOfe:  "900.000.000-1",
		DocAdq:  "900.123.456-7",
		ClTec:   "clave-pruebas",
		TipoAmb: "2",
	}
	cufe, err := dian.NewCufeCalculatorService().Calculate(p)
	require.NoError(t, err)
	assert.Equal(t,
		"82e1a58f8f02150a6487fd576d58ca7f0cf9018b749bb7d689848e669614d22a28334e8913479fcf9ffa8faeda702916",
		cufe, "el guion del número y los separadores del NIT no entran en la cadena")
}

func TestCalculateCufe_Determinista(t *testing.T) {
	svc := dian.NewCufeCalculatorService()
	a, err1 := svc.Calculate(buildParams())
	b, err2 := svc.Calculate(buildParams())
	require.NoError(t, err1)
	require.NoError(t, err2)
	assert.Equal(t, a, b)
	assert.Len(t, a, 96, "SHA-384 en hexadecimal tiene 96 caracteres")
}

func TestCalculateCufe_AmbienteAfectaHash(t *testing.T) {
	svc := dian.NewCufeCalculatorService()
	p1, p2 := buildParams(), buildParams()
	p2.TipoAmb = "1"

	a, _ := svc.Calculate(p1)
	b, _ := svc.Calculate(p2)
	assert.NotEqual(t, a, b)
}

func TestCalculateCufe_Errores(t *testing.T) {
	svc := dian.NewCufeCalculatorService()

	_, err := svc.Calculate(nil)
	assert.Error(t, err)

	for name, mutate := range map[string]func(*dian.CufeParams){
		"sin NumFac": func(p *dian.CufeParams) { p.NumFac = " " },
		"sin FecFac": func(p *dian.CufeParams) { p.FecFac = "" },
		"sin NitOfe": func(p *dian.CufeParams) { p.NitOfe = "" },
		"sin DocAdq": func(p *dian.CufeParams) { p.DocAdq = "abc" },
		"sin ClTec":  func(p *dian.CufeParams) { p.ClTec = "" },
	} {
		p := buildParams()
		mutate(p)
		_, err := svc.Calculate(p)
		assert.Error(t, err, name)
	}
}
