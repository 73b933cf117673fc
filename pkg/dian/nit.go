package dian

import "fmt"

// Pesos del dígito de verificación (módulo 11 DIAN) para los 9 primeros dígitos, de izquierda a derecha.
var nitWeights = [9]int{41, 37, 29, 23, 19, 17, 13, 7, 3}

// checkDigit dígito de verificación de una base de 9 dígitos.
func checkDigit(base string) byte {
	var sum int
	for i := 0; i < 9; i++ {
		sum += int(base[i]-'0') * nitWeights[i]
	}
	r := sum % 11
	if r == 0 || r == 1 {
		return byte('0' + r)
	}
	return byte('0' + (11 - r))
}

// ValidateNITVerificationDigit valida el dígito de verificación de un NIT escrito como
// "123456789-1", "123.456.789-1" o "1234567891".
func ValidateNITVerificationDigit(taxID string) error {
	digits := onlyDigits(taxID)
	if len(digits) != 10 {
		return fmt.Errorf("dian: el NIT debe tener 9 dígitos más el de verificación, se encontraron %d", len(digits))
	}
	if want := checkDigit(digits[:9]); digits[9] != want {
		return fmt.Errorf("dian: dígito de verificación del NIT inválido: esperado %c, recibido %c", want, digits[9])
	}
	return nil
}

// ComputeNITVerificationDigit calcula el dígito de verificación sobre los 9 primeros dígitos.
func ComputeNITVerificationDigit(taxID string) (byte, error) {
	digits := onlyDigits(taxID)
	if len(digits) < 9 {
		return 0, fmt.Errorf("dian: se requieren al menos 9 dígitos, se encontraron %d", len(digits))
	}
	return checkDigit(digits[:9]), nil
}

// FormatNIT escribe el NIT como 900.123.456-8 (si no tiene 10 dígitos lo devuelve igual).
func FormatNIT(taxID string) string {
	d := onlyDigits(taxID)
	if len(d) != 10 {
		return taxID
	}
	return d[0:3] + "." + d[3:6] + "." + d[6:9] + "-" + d[9:]
}
