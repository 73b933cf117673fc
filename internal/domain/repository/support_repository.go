package repository

import (
	"context"

	"github.com/jhoicas/Facturacion-api/internal/domain/entity"
)

// SupportRepository tickets de soporte y preguntas frecuentes.
type SupportRepository interface {
	CreateTicket(ctx context.Context, ticket *entity.SupportTicket) error
	GetTicket(ctx context.Context, id string) (*entity.SupportTicket, error)
	UpdateTicket(ctx context.Context, ticket *entity.SupportTicket) error
	ListTickets(ctx context.Context) ([]*entity.SupportTicket, error)
	ListFAQ(ctx context.Context) ([]*entity.FaqItem, error)
	SaveFAQ(ctx context.Context, items []*entity.FaqItem) error
}
