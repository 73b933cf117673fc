// Package textutil utilidades de texto en español: búsqueda sin tildes y decodificación de
// archivos exportados por hojas de cálculo en Windows.
package textutil

import (
	"bytes"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var folder = cases.Fold()

// Fold normaliza para comparar: sin tildes ni diéresis y sin distinguir mayúsculas.
// "Pérez" y "PEREZ" producen lo mismo.
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return folder.String(strings.TrimSpace(out))
}

// Contains búsqueda insensible a tildes y mayúsculas. Una consulta vacía coincide siempre.
func Contains(haystack, query string) bool {
	q := Fold(query)
	if q == "" {
		return true
	}
	return strings.Contains(Fold(haystack), q)
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// DecodeLegacy devuelve el contenido en UTF-8. Si ya es UTF-8 válido solo quita el BOM;
// si no, lo interpreta como Windows-1252 (superconjunto de ISO-8859-1 usado por Excel).
func DecodeLegacy(raw []byte) ([]byte, error) {
	raw = bytes.TrimPrefix(raw, utf8BOM)
	if utf8.Valid(raw) {
		return raw, nil
	}
	out, _, err := transform.Bytes(charmap.Windows1252.NewDecoder(), raw)
	if err != nil {
		return nil, err
	}
	return out, nil
}
