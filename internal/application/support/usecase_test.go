package support_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Facturacion-api/internal/application/dto"
	"github.com/jhoicas/Facturacion-api/internal/application/support"
	"github.com/jhoicas/Facturacion-api/internal/domain"
	"github.com/jhoicas/Facturacion-api/internal/domain/entity"
	"github.com/jhoicas/Facturacion-api/internal/infrastructure/memory"
	"github.com/jhoicas/Facturacion-api/internal/infrastructure/slots"
)

func TestCreateTicket_AbiertoConConsecutivo(t *testing.T) {
	uc := support.NewUseCase(slots.NewTxRunner(memory.NewSlotStore()))
	ctx := context.Background()

	first, err := uc.CreateTicket(ctx, dto.CreateTicketRequest{Subject: "No imprime", Description: "El PDF sale en blanco", Category: entity.TicketCategoryBug})
	require.NoError(t, err)
	assert.Equal(t, "TKT-1", first.ID)
	assert.Equal(t, entity.TicketStatusOpen, first.Status)

	second, err := uc.CreateTicket(ctx, dto.CreateTicketRequest{Subject: "Pregunta", Description: "¿Cómo anulo?"})
	require.NoError(t, err)
	assert.Equal(t, "TKT-2", second.ID)
	assert.Equal(t, entity.TicketCategoryQuestion, second.Category, "categoría por defecto")

	list, err := uc.ListTickets(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "TKT-2", list[0].ID, "el más reciente primero")
}

func TestCreateTicket_Validaciones(t *testing.T) {
	uc := support.NewUseCase(slots.NewTxRunner(memory.NewSlotStore()))
	ctx := context.Background()

	_, err := uc.CreateTicket(ctx, dto.CreateTicketRequest{Subject: " ", Description: "x"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.CreateTicket(ctx, dto.CreateTicketRequest{Subject: "x", Description: "x", Category: "Ventas"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUpdateTicketStatus(t *testing.T) {
	uc := support.NewUseCase(slots.NewTxRunner(memory.NewSlotStore()))
	ctx := context.Background()
	tk, err := uc.CreateTicket(ctx, dto.CreateTicketRequest{Subject: "x", Description: "y"})
	require.NoError(t, err)

	got, err := uc.UpdateTicketStatus(ctx, tk.ID, entity.TicketStatusResolved)
	require.NoError(t, err)
	assert.Equal(t, entity.TicketStatusResolved, got.Status)

	_, err = uc.UpdateTicketStatus(ctx, tk.ID, "Cerrado")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.UpdateTicketStatus(ctx, "TKT-9", entity.TicketStatusOpen)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestFAQ_PorDefectoYSemilla(t *testing.T) {
	uc := support.NewUseCase(slots.NewTxRunner(memory.NewSlotStore()))
	ctx := context.Background()

	faq, err := uc.ListFAQ(ctx)
	require.NoError(t, err)
	assert.Len(t, faq, len(support.DefaultFAQ))

	require.NoError(t, uc.SeedFAQ(ctx))
	require.NoError(t, uc.SeedFAQ(ctx), "sembrar dos veces no duplica")
	faq, err = uc.ListFAQ(ctx)
	require.NoError(t, err)
	assert.Equal(t, "FAQ-1", faq[0].ID)
	assert.Len(t, faq, 2)
}
