package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Facturacion-api/internal/application/billing"
	"github.com/jhoicas/Facturacion-api/internal/application/dto"
)

// CreditNoteHandler maneja notas crédito y débito (protegido).
type CreditNoteHandler struct {
	docs   *billing.DocumentUseCase
	render *billing.RenderUseCase
}

// NewCreditNoteHandler construye el handler.
func NewCreditNoteHandler(docs *billing.DocumentUseCase, render *billing.RenderUseCase) *CreditNoteHandler {
	return &CreditNoteHandler{docs: docs, render: render}
}

// Create godoc
// @Summary      Crear nota crédito/débito
// @Description  Copia las líneas y el total de la factura referenciada.
// @Tags         credit-notes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCreditNoteRequest  true  "factura, tipo y motivo"
// @Success      201   {object}  dto.CreditNoteResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/credit-notes [post]
func (h *CreditNoteHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCreditNoteRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.docs.CreateCreditNote(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar notas
// @Tags         credit-notes
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.CreditNoteListResponse
// @Router       /api/credit-notes [get]
func (h *CreditNoteHandler) List(c *fiber.Ctx) error {
	var f dto.DocumentFilter
	if err := c.QueryParser(&f); err != nil {
		return invalidParams(c)
	}
	out, err := h.docs.ListCreditNotes(c.UserContext(), f)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener nota
// @Tags         credit-notes
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "Número de nota (NC-n)"
// @Success      200  {object}  dto.CreditNoteResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/credit-notes/{id} [get]
func (h *CreditNoteHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.docs.GetCreditNote(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// UpdateStatus godoc
// @Summary      Cambiar estado de la nota
// @Tags         credit-notes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                   true  "Número de nota"
// @Param        body  body  dto.UpdateStatusRequest  true  "nuevo estado"
// @Success      200   {object}  dto.CreditNoteResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/credit-notes/{id}/status [patch]
func (h *CreditNoteHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.UpdateStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.docs.UpdateCreditNoteStatus(c.UserContext(), c.Params("id"), in.Status)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar nota
// @Tags         credit-notes
// @Security     Bearer
// @Param        id  path  string  true  "Número de nota"
// @Success      204
// @Router       /api/credit-notes/{id} [delete]
func (h *CreditNoteHandler) Delete(c *fiber.Ctx) error {
	if err := h.docs.DeleteCreditNote(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GetPDF godoc
// @Summary      PDF de la nota
// @Tags         credit-notes
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "Número de nota"
// @Success      200  {file}  binary
// @Router       /api/credit-notes/{id}/pdf [get]
func (h *CreditNoteHandler) GetPDF(c *fiber.Ctx) error {
	out, name, err := h.render.CreditNotePDF(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return sendFile(c, out, name, "application/pdf")
}
