// Package dian: cálculo del CUFE (Código Único de Factura Electrónica) según Anexo Técnico DIAN 1.9.
// Algoritmo: SHA-384 sobre la concatenación, sin separadores, en el orden definido por la DIAN.
package dian

import (
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

// Códigos de impuesto en la cadena CUFE.
const (
	CodImpIVA = "01"
	CodImpICA = "03"
	CodImpINC = "04"
)

// CufeParams datos del CUFE en el orden exigido.
type CufeParams struct {
	NumFac  string          // número de factura (prefijo + consecutivo, sin espacios ni guiones)
	FecFac  string          // fecha de emisión YYYY-MM-DD
	ValFac  decimal.Decimal // valor sin impuestos
	ValIVA  decimal.Decimal // código 01
	ValINC  decimal.Decimal // código 04
	ValICA  decimal.Decimal // código 03
	ValPag  decimal.Decimal // total a pagar
	NitOfe  string          // NIT del facturador
	DocAdq  string          // identificación del adquiriente
	ClTec   string          // clave técnica de la resolución
	TipoAmb string          // "1" producción, "2" pruebas
}

// CufeCalculatorService calcula el CUFE.
type CufeCalculatorService struct{}

// NewCufeCalculatorService crea el servicio.
func NewCufeCalculatorService() *CufeCalculatorService {
	return &CufeCalculatorService{}
}

// Calculate devuelve el CUFE (96 caracteres hexadecimales en minúscula).
//
//	NumFac + FecFac + ValFac + 01 + ValIVA + 04 + ValINC + 03 + ValICA + ValPag + NitOfe + DocAdq + ClTec + TipoAmb
//
// Montos sin separador de miles, punto decimal y 2 decimales (1500.00).
func (s *CufeCalculatorService) Calculate(p *CufeParams) (string, error) {
	if p == nil {
		return "", fmt.Errorf("dian: CufeParams es obligatorio")
	}
	numFac := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) || r == '-' {
			return -1
		}
		return r
	}, p.NumFac)
	if numFac == "" {
		return "", fmt.Errorf("dian: NumFac es obligatorio")
	}
	if p.FecFac == "" {
		return "", fmt.Errorf("dian: FecFac es obligatorio (YYYY-MM-DD)")
	}
	nitOfe, docAdq := onlyDigits(p.NitOfe), onlyDigits(p.DocAdq)
	if nitOfe == "" {
		return "", fmt.Errorf("dian: NitOfe es obligatorio para el CUFE")
	}
	if docAdq == "" {
		return "", fmt.Errorf("dian: DocAdq es obligatorio para el CUFE")
	}
	if p.ClTec == "" {
		return "", fmt.Errorf("dian: ClTec es obligatoria para el CUFE")
	}
	tipoAmb := p.TipoAmb
	if tipoAmb == "" {
		tipoAmb = "2"
	}

	var b strings.Builder
	b.WriteString(numFac)
	b.WriteString(p.FecFac)
	b.WriteString(amount(p.ValFac))
	b.WriteString(CodImpIVA + amount(p.ValIVA))
	b.WriteString(CodImpINC + amount(p.ValINC))
	b.WriteString(CodImpICA + amount(p.ValICA))
	b.WriteString(amount(p.ValPag))
	b.WriteString(nitOfe)
	b.WriteString(docAdq)
	b.WriteString(p.ClTec)
	b.WriteString(tipoAmb)

	hash := sha512.Sum384([]byte(b.String()))
	return hex.EncodeToString(hash[:]), nil
}

func amount(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func onlyDigits(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, s)
}
