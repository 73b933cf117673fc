// Package numtext escribe montos en letras (español, mayúsculas) para los documentos impresos.
package numtext

import (
	"strings"

	"github.com/shopspring/decimal"
)

var (
	units    = [...]string{"", "UNO", "DOS", "TRES", "CUATRO", "CINCO", "SEIS", "SIETE", "OCHO", "NUEVE"}
	teens    = [...]string{"DIEZ", "ONCE", "DOCE", "TRECE", "CATORCE", "QUINCE", "DIECISÉIS", "DIECISIETE", "DIECIOCHO", "DIECINUEVE"}
	twenties = [...]string{"VEINTE", "VEINTIUNO", "VEINTIDÓS", "VEINTITRÉS", "VEINTICUATRO", "VEINTICINCO", "VEINTISÉIS", "VEINTISIETE", "VEINTIOCHO", "VEINTINUEVE"}
	tens     = [...]string{"", "", "", "TREINTA", "CUARENTA", "CINCUENTA", "SESENTA", "SETENTA", "OCHENTA", "NOVENTA"}
	hundreds = [...]string{"", "CIENTO", "DOSCIENTOS", "TRESCIENTOS", "CUATROCIENTOS", "QUINIENTOS", "SEISCIENTOS", "SETECIENTOS", "OCHOCIENTOS", "NOVECIENTOS"}
)

// ToWords escribe n en letras: 1666000 → "UN MILLÓN SEISCIENTOS SESENTA Y SEIS MIL".
// Delante de MIL, MILLONES y BILLONES el uno se apocopa (VEINTIÚN MIL, TREINTA Y UN MILLONES).
func ToWords(n int64) string {
	if n == 0 {
		return "CERO"
	}
	if n < 0 {
		// -(n+1)+1 cubre math.MinInt64, cuyo opuesto no cabe en int64.
		return "MENOS " + words(uint64(-(n+1))+1, false)
	}
	return words(uint64(n), false)
}

// words escribe n > 0 en grupos de billones (10¹²), millones y miles.
func words(n uint64, apocope bool) string {
	const (
		million  = 1_000_000
		trillion = 1_000_000_000_000
	)
	var parts []string
	if b := n / trillion; b > 0 {
		if b == 1 {
			parts = append(parts, "UN BILLÓN")
		} else {
			parts = append(parts, words(b, true)+" BILLONES")
		}
	}
	rest := n % trillion
	if m := rest / million; m > 0 {
		if m == 1 {
			parts = append(parts, "UN MILLÓN")
		} else {
			parts = append(parts, thousands(int64(m), true)+" MILLONES")
		}
	}
	if r := rest % million; r > 0 {
		parts = append(parts, thousands(int64(r), apocope))
	}
	return strings.Join(parts, " ")
}

// Pesos monto redondeado a pesos y seguido de "PESOS M/CTE".
func Pesos(amount decimal.Decimal) string {
	return ToWords(amount.Round(0).IntPart()) + " PESOS M/CTE"
}

// thousands escribe 1..999999.
func thousands(n int64, apocope bool) string {
	var parts []string
	if k := n / 1000; k > 0 {
		if k == 1 {
			parts = append(parts, "MIL")
		} else {
			parts = append(parts, hundredsOf(k, true)+" MIL")
		}
	}
	if r := n % 1000; r > 0 {
		parts = append(parts, hundredsOf(r, apocope))
	}
	return strings.Join(parts, " ")
}

// hundredsOf escribe 1..999.
func hundredsOf(n int64, apocope bool) string {
	if n == 100 {
		return "CIEN"
	}
	var parts []string
	if h := n / 100; h > 0 {
		parts = append(parts, hundreds[h])
	}
	if r := n % 100; r > 0 {
		parts = append(parts, tensOf(r, apocope))
	}
	return strings.Join(parts, " ")
}

// tensOf escribe 1..99.
func tensOf(n int64, apocope bool) string {
	switch {
	case n < 10:
		return unit(n, apocope)
	case n < 20:
		return teens[n-10]
	case n < 30:
		if n == 21 && apocope {
			return "VEINTIÚN"
		}
		return twenties[n-20]
	}
	w := tens[n/10]
	if u := n % 10; u > 0 {
		w += " Y " + unit(u, apocope)
	}
	return w
}

func unit(n int64, apocope bool) string {
	if n == 1 && apocope {
		return "UN"
	}
	return units[n]
}
