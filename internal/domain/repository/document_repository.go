package repository

import (
	"context"

	"github.com/jhoicas/Facturacion-api/internal/domain/entity"
)

// InvoiceRepository define el puerto de persistencia para Invoice.
type InvoiceRepository interface {
	Create(ctx context.Context, invoice *entity.Invoice) error
	GetByID(ctx context.Context, id string) (*entity.Invoice, error)
	Update(ctx context.Context, invoice *entity.Invoice) error
	Delete(ctx context.Context, id string) error
	// List devuelve las facturas en orden de inserción.
	List(ctx context.Context) ([]*entity.Invoice, error)
}

// QuoteRepository define el puerto de persistencia para Quote.
type QuoteRepository interface {
	Create(ctx context.Context, quote *entity.Quote) error
	GetByID(ctx context.Context, id string) (*entity.Quote, error)
	Update(ctx context.Context, quote *entity.Quote) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*entity.Quote, error)
}

// CreditNoteRepository define el puerto de persistencia para CreditNote.
type CreditNoteRepository interface {
	Create(ctx context.Context, note *entity.CreditNote) error
	GetByID(ctx context.Context, id string) (*entity.CreditNote, error)
	Update(ctx context.Context, note *entity.CreditNote) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*entity.CreditNote, error)
}
