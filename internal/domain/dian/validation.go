// Package dian reglas de consistencia de una factura antes de generar su representación
// electrónica (XML UBL). Usa los catálogos y validaciones de pkg/dian.
package dian

import (
	"errors"
	"fmt"

	"github.com/jhoicas/Facturacion-api/internal/domain/billing"
	"github.com/jhoicas/Facturacion-api/internal/domain/entity"
	"github.com/jhoicas/Facturacion-api/pkg/dian"
)

// ErrInvalidInvoice agrupa errores de validación de factura.
var ErrInvalidInvoice = errors.New("factura inválida para DIAN")

// ValidateInvoice revisa que los totales guardados coincidan con las líneas y, para clientes
// con NIT, que el dígito de verificación sea correcto. Devuelve todos los problemas juntos.
func ValidateInvoice(invoice *entity.Invoice, client *entity.Client) error {
	if invoice == nil {
		return fmt.Errorf("%w: factura nula", ErrInvalidInvoice)
	}
	var errs []error

	if client != nil && client.IDType == entity.IDTypeNIT {
		if err := dian.ValidateNITVerificationDigit(client.IDNumber); err != nil {
			errs = append(errs, fmt.Errorf("cliente NIT: %w", err))
		}
	}

	if len(invoice.LineItems) == 0 {
		errs = append(errs, errors.New("la factura debe tener al menos una línea"))
	} else {
		want := billing.CalculateInvoiceTotals(billing.LinesFrom(invoice.LineItems)).Round()
		if !invoice.Subtotal.Equal(want.Subtotal) {
			errs = append(errs, fmt.Errorf("subtotal (%s) no coincide con la suma de líneas (%s)", invoice.Subtotal, want.Subtotal))
		}
		if !invoice.TaxTotal.Equal(want.Tax) {
			errs = append(errs, fmt.Errorf("IVA (%s) no coincide con el IVA por línea (%s)", invoice.TaxTotal, want.Tax))
		}
		if !invoice.Total.Equal(want.Total) {
			errs = append(errs, fmt.Errorf("total (%s) no coincide con subtotal + IVA (%s)", invoice.Total, want.Total))
		}
	}

	if len(errs) > 0 {
		return errors.Join(append([]error{ErrInvalidInvoice}, errs...)...)
	}
	return nil
}
