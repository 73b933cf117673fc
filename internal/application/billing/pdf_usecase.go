package billing

import (
	"context"
	"fmt"
)

// RenderUseCase genera la representación gráfica (PDF) y XML de los documentos.
type RenderUseCase struct {
	docs      *DocumentUseCase
	generator DocumentPDFGenerator
	xml       InvoiceXMLBuilder
}

// NewRenderUseCase construye el caso de uso inyectando todas sus dependencias.
func NewRenderUseCase(docs *DocumentUseCase, generator DocumentPDFGenerator, xml InvoiceXMLBuilder) *RenderUseCase {
	return &RenderUseCase{docs: docs, generator: generator, xml: xml}
}

// InvoicePDF genera el PDF de la factura.
//
// Retorna:
//   - (pdfBytes, filename, nil)  si todo sale bien.
//   - domain.ErrNotFound         si la factura no existe.
func (uc *RenderUseCase) InvoicePDF(ctx context.Context, id string) ([]byte, string, error) {
	doc, err := uc.docs.InvoiceDocument(ctx, id)
	if err != nil {
		return nil, "", err
	}
	out, err := uc.generator.InvoicePDF(ctx, doc)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generación fallida: %w", err)
	}
	return out, fmt.Sprintf("factura_%s.pdf", doc.Invoice.ID), nil
}

// QuotePDF genera el PDF de la cotización.
func (uc *RenderUseCase) QuotePDF(ctx context.Context, id string) ([]byte, string, error) {
	doc, err := uc.docs.QuoteDocument(ctx, id)
	if err != nil {
		return nil, "", err
	}
	out, err := uc.generator.QuotePDF(ctx, doc)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generación fallida: %w", err)
	}
	return out, fmt.Sprintf("cotizacion_%s.pdf", doc.Quote.ID), nil
}

// CreditNotePDF genera el PDF de la nota crédito/débito.
func (uc *RenderUseCase) CreditNotePDF(ctx context.Context, id string) ([]byte, string, error) {
	doc, err := uc.docs.CreditNoteDocument(ctx, id)
	if err != nil {
		return nil, "", err
	}
	out, err := uc.generator.CreditNotePDF(ctx, doc)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generación fallida: %w", err)
	}
	return out, fmt.Sprintf("nota_%s.pdf", doc.Note.ID), nil
}

// InvoiceXML genera el XML canonicalizado de la factura.
func (uc *RenderUseCase) InvoiceXML(ctx context.Context, id string) ([]byte, string, error) {
	doc, err := uc.docs.InvoiceDocument(ctx, id)
	if err != nil {
		return nil, "", err
	}
	out, err := uc.xml.Build(doc)
	if err != nil {
		return nil, "", fmt.Errorf("xml: generación fallida: %w", err)
	}
	return out, fmt.Sprintf("factura_%s.xml", doc.Invoice.ID), nil
}
