// Package dian contiene catálogos y validaciones alineados al Anexo Técnico
// de Factura Electrónica de Venta DIAN (Colombia) v1.9.
package dian

// =============================================================================
// Tabla 17 - Responsabilidades fiscales (RUT)
// =============================================================================

const (
	TaxLevelGranContribuyente  = "O-13"
	TaxLevelAutorretenedor     = "O-15"
	TaxLevelAgenteRetencionIVA = "O-23"
	TaxLevelRegimenSimple      = "O-47"
	TaxLevelResponsableIVA     = "O-48"
	TaxLevelNoResponsableIVA   = "O-49"
	TaxLevelNoAplicaOtros      = "R-99-PN"
)

var fiscalResponsibilities = map[string]bool{
	TaxLevelGranContribuyente:  true,
	TaxLevelAutorretenedor:     true,
	TaxLevelAgenteRetencionIVA: true,
	TaxLevelRegimenSimple:      true,
	TaxLevelResponsableIVA:     true,
	TaxLevelNoResponsableIVA:   true,
	TaxLevelNoAplicaOtros:      true,
}

// ValidFiscalResponsibility indica si code es una responsabilidad conocida (acepta "0-13" con cero).
func ValidFiscalResponsibility(code string) bool {
	if len(code) > 1 && code[0] == '0' && code[1] == '-' {
		code = "O" + code[1:]
	}
	return fiscalResponsibilities[code]
}

// =============================================================================
// Tabla 14 - Forma de pago / Tabla 13 - Medios de pago
// =============================================================================

const (
	PaymentFormContado = "1"
	PaymentFormCredito = "2"

	PaymentMethodEfectivo       = "10"
	PaymentMethodTransferencia  = "47"
	PaymentMethodTarjetaCredito = "48"
	PaymentMethodInstrumento    = "ZZZ" // acuerdo mutuo
)

// PaymentFormCode código de la forma de pago ("Contado" → 1, "Crédito" → 2).
func PaymentFormCode(form string) string {
	if form == "Crédito" {
		return PaymentFormCredito
	}
	return PaymentFormContado
}

// PaymentMethodCode código del medio de pago.
func PaymentMethodCode(method string) string {
	switch method {
	case "Efectivo", "":
		return PaymentMethodEfectivo
	case "Transferencia":
		return PaymentMethodTransferencia
	case "Tarjeta":
		return PaymentMethodTarjetaCredito
	default:
		return PaymentMethodInstrumento
	}
}

// =============================================================================
// Tabla 11 - Tributos / Tabla 3 - Tipos de identificación
// =============================================================================

const (
	TaxCodeIVA = "01"
	TaxNameIVA = "IVA"

	IdentificationTypeNIT   = "31"
	IdentificationTypeCC    = "13"
	IdentificationTypeOther = "43" // sin identificación del exterior / otro
)

// IdentificationTypeCode código del tipo de documento ("NIT" → 31, "Cédula" → 13).
func IdentificationTypeCode(idType string) string {
	switch idType {
	case "NIT":
		return IdentificationTypeNIT
	case "Cédula":
		return IdentificationTypeCC
	default:
		return IdentificationTypeOther
	}
}
