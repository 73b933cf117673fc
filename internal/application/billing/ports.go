package billing

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Facturacion-api/internal/domain/entity"
	"github.com/jhoicas/Facturacion-api/internal/domain/repository"
)

// SaleRecorder interfaz para integrar facturación con el kardex.
// RegisterSaleInTx descuenta el stock usando los repositorios del caller (misma unidad de trabajo).
// Si retorna error (ej: ErrInsufficientStock), la factura completa se descarta.
type SaleRecorder interface {
	RegisterSaleInTx(
		ctx context.Context,
		repos repository.Set,
		product *entity.Product,
		quantity decimal.Decimal,
		documentID string,
		now time.Time,
	) error
}

// AuthorizationCoder asigna el código de autorización de una factura que sale de Borrador.
// company puede ser nil si la empresa aún no está configurada.
type AuthorizationCoder interface {
	Code(ctx context.Context, inv *entity.Invoice, client *entity.Client, company *entity.CompanyInfo) (string, error)
}

// InvoiceDocument datos completos para renderizar una factura.
// Client es nil si el cliente fue eliminado después de emitir.
type InvoiceDocument struct {
	Invoice    *entity.Invoice
	Client     *entity.Client
	Company    *entity.CompanyInfo
	Resolution *entity.DianResolution
}

// QuoteDocument datos completos para renderizar una cotización.
type QuoteDocument struct {
	Quote   *entity.Quote
	Client  *entity.Client
	Company *entity.CompanyInfo
}

// CreditNoteDocument datos completos para renderizar una nota crédito/débito.
type CreditNoteDocument struct {
	Note    *entity.CreditNote
	Client  *entity.Client
	Company *entity.CompanyInfo
}

// DocumentPDFGenerator genera la representación gráfica de los documentos.
type DocumentPDFGenerator interface {
	InvoicePDF(ctx context.Context, doc *InvoiceDocument) ([]byte, error)
	QuotePDF(ctx context.Context, doc *QuoteDocument) ([]byte, error)
	CreditNotePDF(ctx context.Context, doc *CreditNoteDocument) ([]byte, error)
}

// InvoiceXMLBuilder genera la representación XML (UBL) de una factura.
type InvoiceXMLBuilder interface {
	Build(doc *InvoiceDocument) ([]byte, error)
}
