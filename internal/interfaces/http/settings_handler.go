package http

import (
	"fmt"
	"io"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Facturacion-api/internal/application/auth"
	"github.com/jhoicas/Facturacion-api/internal/application/dto"
	"github.com/jhoicas/Facturacion-api/internal/application/settings"
	"github.com/jhoicas/Facturacion-api/internal/domain"
)

// SettingsHandler configuración de la empresa, usuarios, respaldo e importación.
type SettingsHandler struct {
	uc   *settings.UseCase
	auth *auth.AuthUseCase
	now  func() time.Time
}

// NewSettingsHandler construye el handler.
func NewSettingsHandler(uc *settings.UseCase, authUC *auth.AuthUseCase, now func() time.Time) *SettingsHandler {
	return &SettingsHandler{uc: uc, auth: authUC, now: now}
}

// GetCompany godoc
// @Summary      Datos del emisor
// @Tags         settings
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.CompanyResponse
// @Router       /api/settings/company [get]
func (h *SettingsHandler) GetCompany(c *fiber.Ctx) error {
	out, err := h.uc.GetCompany(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// UpdateCompany godoc
// @Summary      Actualizar datos del emisor
// @Tags         settings
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CompanyRequest  true  "razón social, NIT, contacto"
// @Success      200   {object}  dto.CompanyResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/settings/company [put]
func (h *SettingsHandler) UpdateCompany(c *fiber.Ctx) error {
	var in dto.CompanyRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.UpdateCompany(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetResolution godoc
// @Summary      Resolución de facturación
// @Tags         settings
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ResolutionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/settings/resolution [get]
func (h *SettingsHandler) GetResolution(c *fiber.Ctx) error {
	out, err := h.uc.GetResolution(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// UpdateResolution godoc
// @Summary      Actualizar resolución de facturación
// @Tags         settings
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ResolutionRequest  true  "número, prefijo y rango"
// @Success      200   {object}  dto.ResolutionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/settings/resolution [put]
func (h *SettingsHandler) UpdateResolution(c *fiber.Ctx) error {
	var in dto.ResolutionRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.UpdateResolution(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Backup godoc
// @Summary      Copia de seguridad
// @Description  Todos los datos en un documento JSON descargable.
// @Tags         settings
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.BackupDocument
// @Router       /api/settings/backup [get]
func (h *SettingsHandler) Backup(c *fiber.Ctx) error {
	now := h.now()
	out, err := h.uc.Backup(c.UserContext(), now)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", "respaldo_"+now.Format("20060102_150405")+".json"))
	return c.JSON(out)
}

// ListUsers godoc
// @Summary      Listar usuarios
// @Tags         settings
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.UserResponse
// @Router       /api/settings/users [get]
func (h *SettingsHandler) ListUsers(c *fiber.Ctx) error {
	out, err := h.auth.ListUsers(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// CreateUser godoc
// @Summary      Crear usuario
// @Tags         settings
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateUserRequest  true  "email, password, rol"
// @Success      201   {object}  dto.UserResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/settings/users [post]
func (h *SettingsHandler) CreateUser(c *fiber.Ctx) error {
	var in dto.CreateUserRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.auth.CreateUser(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ConnectionLogs godoc
// @Summary      Registro de conexiones
// @Tags         settings
// @Security     Bearer
// @Produce      json
// @Param        limit  query  int  false  "Máximo de registros (0 = todos)"
// @Success      200  {array}  dto.ConnectionLogResponse
// @Router       /api/settings/connection-logs [get]
func (h *SettingsHandler) ConnectionLogs(c *fiber.Ctx) error {
	out, err := h.auth.ConnectionLogs(c.UserContext(), c.QueryInt("limit", 0))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Template godoc
// @Summary      Plantilla CSV de importación
// @Tags         settings
// @Security     Bearer
// @Produce      text/csv
// @Param        kind  path  string  true  "clients | products"
// @Success      200  {file}  binary
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/settings/templates/{kind} [get]
func (h *SettingsHandler) Template(c *fiber.Ctx) error {
	out, name, err := h.uc.Template(c.Params("kind"))
	if err != nil {
		return respondError(c, err)
	}
	return sendFile(c, out, name, "text/csv; charset=utf-8")
}

// Import godoc
// @Summary      Importar clientes o productos desde CSV
// @Description  Acepta multipart (campo "file") o el CSV como cuerpo. UTF-8 o Windows-1252.
// @Tags         settings
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        kind  path      string  true  "clients | products"
// @Param        file  formData  file    false "archivo CSV"
// @Success      200  {object}  dto.ImportResult
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/settings/import/{kind} [post]
func (h *SettingsHandler) Import(c *fiber.Ctx) error {
	raw, err := uploadedCSV(c)
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Import(c.UserContext(), c.Params("kind"), raw)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

func uploadedCSV(c *fiber.Ctx) ([]byte, error) {
	fh, err := c.FormFile("file")
	if err != nil {
		// sin multipart: el cuerpo es el CSV
		return append([]byte(nil), c.Body()...), nil
	}
	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("%w: archivo: %v", domain.ErrInvalidInput, err)
	}
	defer f.Close()
	return io.ReadAll(f)
}
