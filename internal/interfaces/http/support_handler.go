package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Facturacion-api/internal/application/dto"
	"github.com/jhoicas/Facturacion-api/internal/application/support"
)

// SupportHandler tickets de soporte y preguntas frecuentes.
type SupportHandler struct {
	uc *support.UseCase
}

// NewSupportHandler construye el handler.
func NewSupportHandler(uc *support.UseCase) *SupportHandler {
	return &SupportHandler{uc: uc}
}

// CreateTicket godoc
// @Summary      Crear ticket de soporte
// @Tags         support
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateTicketRequest  true  "asunto, categoría, descripción"
// @Success      201   {object}  dto.TicketResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/support/tickets [post]
func (h *SupportHandler) CreateTicket(c *fiber.Ctx) error {
	var in dto.CreateTicketRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.CreateTicket(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListTickets godoc
// @Summary      Listar tickets
// @Tags         support
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.TicketResponse
// @Router       /api/support/tickets [get]
func (h *SupportHandler) ListTickets(c *fiber.Ctx) error {
	out, err := h.uc.ListTickets(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// UpdateTicketStatus godoc
// @Summary      Cambiar estado del ticket
// @Tags         support
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                   true  "ID del ticket (TKT-n)"
// @Param        body  body  dto.UpdateStatusRequest  true  "Abierto | En Proceso | Resuelto"
// @Success      200   {object}  dto.TicketResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/support/tickets/{id}/status [patch]
func (h *SupportHandler) UpdateTicketStatus(c *fiber.Ctx) error {
	var in dto.UpdateStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.UpdateTicketStatus(c.UserContext(), c.Params("id"), in.Status)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListFAQ godoc
// @Summary      Preguntas frecuentes
// @Tags         support
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.FaqResponse
// @Router       /api/support/faq [get]
func (h *SupportHandler) ListFAQ(c *fiber.Ctx) error {
	out, err := h.uc.ListFAQ(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
