// Package support contiene los tickets de soporte y las preguntas frecuentes.
package support

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/jhoicas/Facturacion-api/internal/application/dto"
	"github.com/jhoicas/Facturacion-api/internal/application/ports"
	"github.com/jhoicas/Facturacion-api/internal/domain"
	"github.com/jhoicas/Facturacion-api/internal/domain/entity"
	"github.com/jhoicas/Facturacion-api/internal/domain/repository"
	"github.com/jhoicas/Facturacion-api/internal/domain/sequence"
)

// DefaultFAQ preguntas frecuentes con las que arranca una instalación nueva.
var DefaultFAQ = []*entity.FaqItem{
	{ID: "FAQ-1", Question: "¿Cómo creo una factura?", Answer: `Ve a la sección de "Facturas", haz clic en "Nueva Factura", llena los datos del cliente, añade los productos y haz clic en "Guardar y Emitir".`},
	{ID: "FAQ-2", Question: "¿Puedo personalizar el logo de mi empresa?", Answer: `Sí, en la sección de "Configuración", en la tarjeta de "Datos del Emisor", puedes añadir la URL de tu logo.`},
}

// UseCase casos de uso de soporte.
type UseCase struct {
	tx ports.TxRunner
}

// NewUseCase construye el caso de uso.
func NewUseCase(tx ports.TxRunner) *UseCase {
	return &UseCase{tx: tx}
}

// CreateTicket registra un ticket Abierto con la fecha de hoy.
func (uc *UseCase) CreateTicket(ctx context.Context, in dto.CreateTicketRequest) (*dto.TicketResponse, error) {
	in.Subject = strings.TrimSpace(in.Subject)
	in.Description = strings.TrimSpace(in.Description)
	if in.Subject == "" || in.Description == "" {
		return nil, fmt.Errorf("%w: asunto y descripción requeridos", domain.ErrInvalidInput)
	}
	if in.Category == "" {
		in.Category = entity.TicketCategoryQuestion
	}
	if !entity.ValidTicketCategory(in.Category) {
		return nil, fmt.Errorf("%w: categoría %q", domain.ErrInvalidInput, in.Category)
	}
	var ticket *entity.SupportTicket
	err := uc.tx.Run(ctx, func(repos repository.Set) error {
		list, err := repos.Support.ListTickets(ctx)
		if err != nil {
			return err
		}
		id, err := repos.IDs.NextID(ctx, sequence.KindSupportTicket,
			sequence.IDsOf(list, func(t *entity.SupportTicket) string { return t.ID }))
		if err != nil {
			return err
		}
		y, m, d := time.Now().Date()
		ticket = &entity.SupportTicket{
			ID:          id,
			Subject:     in.Subject,
			Category:    in.Category,
			Description: in.Description,
			Status:      entity.TicketStatusOpen,
			Date:        time.Date(y, m, d, 0, 0, 0, 0, time.UTC),
		}
		return repos.Support.CreateTicket(ctx, ticket)
	})
	if err != nil {
		return nil, err
	}
	return toTicketResponse(ticket), nil
}

// UpdateTicketStatus cambia el estado del ticket.
func (uc *UseCase) UpdateTicketStatus(ctx context.Context, id, status string) (*dto.TicketResponse, error) {
	if !entity.ValidTicketStatus(status) {
		return nil, fmt.Errorf("%w: estado %q", domain.ErrInvalidInput, status)
	}
	var ticket *entity.SupportTicket
	err := uc.tx.Run(ctx, func(repos repository.Set) error {
		var err error
		ticket, err = repos.Support.GetTicket(ctx, id)
		if err != nil {
			return err
		}
		if ticket == nil {
			return fmt.Errorf("%w: ticket %s", domain.ErrNotFound, id)
		}
		ticket.Status = status
		return repos.Support.UpdateTicket(ctx, ticket)
	})
	if err != nil {
		return nil, err
	}
	return toTicketResponse(ticket), nil
}

// ListTickets devuelve los tickets, el más reciente primero.
func (uc *UseCase) ListTickets(ctx context.Context) ([]dto.TicketResponse, error) {
	var list []*entity.SupportTicket
	err := uc.tx.View(ctx, func(repos repository.Set) error {
		var err error
		list, err = repos.Support.ListTickets(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	out := make([]dto.TicketResponse, 0, len(list))
	for i := len(list) - 1; i >= 0; i-- {
		out = append(out, *toTicketResponse(list[i]))
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

// ListFAQ devuelve las preguntas frecuentes (DefaultFAQ si no hay ninguna guardada).
func (uc *UseCase) ListFAQ(ctx context.Context) ([]dto.FaqResponse, error) {
	var items []*entity.FaqItem
	err := uc.tx.View(ctx, func(repos repository.Set) error {
		var err error
		items, err = repos.Support.ListFAQ(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		items = DefaultFAQ
	}
	out := make([]dto.FaqResponse, 0, len(items))
	for _, f := range items {
		out = append(out, dto.FaqResponse{ID: f.ID, Question: f.Question, Answer: f.Answer})
	}
	return out, nil
}

// SeedFAQ guarda DefaultFAQ si aún no hay preguntas. Lo usa el comando de datos de demostración.
func (uc *UseCase) SeedFAQ(ctx context.Context) error {
	return uc.tx.Run(ctx, func(repos repository.Set) error {
		items, err := repos.Support.ListFAQ(ctx)
		if err != nil || len(items) > 0 {
			return err
		}
		return repos.Support.SaveFAQ(ctx, DefaultFAQ)
	})
}

func toTicketResponse(t *entity.SupportTicket) *dto.TicketResponse {
	return &dto.TicketResponse{
		ID:          t.ID,
		Subject:     t.Subject,
		Category:    t.Category,
		Description: t.Description,
		Status:      t.Status,
		Date:        t.Date,
	}
}
