package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appanalytics "github.com/jhoicas/Facturacion-api/internal/application/analytics"
	"github.com/jhoicas/Facturacion-api/internal/application/auth"
	"github.com/jhoicas/Facturacion-api/internal/application/billing"
	"github.com/jhoicas/Facturacion-api/internal/application/dto"
	"github.com/jhoicas/Facturacion-api/internal/application/expenses"
	"github.com/jhoicas/Facturacion-api/internal/application/inventory"
	"github.com/jhoicas/Facturacion-api/internal/application/settings"
	"github.com/jhoicas/Facturacion-api/internal/application/support"
	"github.com/jhoicas/Facturacion-api/internal/infrastructure/dian"
	"github.com/jhoicas/Facturacion-api/internal/infrastructure/memory"
	"github.com/jhoicas/Facturacion-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Facturacion-api/internal/infrastructure/slots"
	apphttp "github.com/jhoicas/Facturacion-api/internal/interfaces/http"
	"github.com/jhoicas/Facturacion-api/pkg/logger"
)

const (
	adminEmail = "admin@nubifica.com"
	adminPass  = "secreta123"
)

type apiFixture struct {
	app    *fiber.App
	authUC *auth.AuthUseCase
}

// newAPI arma la API completa sobre el almacén en memoria, sin stock negativo.
func newAPI(t *testing.T) apiFixture {
	t.Helper()
	runner := slots.NewTxRunner(memory.NewSlotStore())
	log := logger.Nop()

	ledger := inventory.NewLedgerUseCase(runner, inventory.LedgerOptions{AllowNegativeStock: false}, log)
	clients := billing.NewClientUseCase(runner, log)
	products := inventory.NewProductUseCase(runner, ledger, 5)
	coder, err := dian.NewAuthorizationCoder(dian.ModeRandom, "", "")
	require.NoError(t, err)
	docs := billing.NewDocumentUseCase(runner, ledger, coder, billing.DocumentOptions{}, log)
	authUC := auth.NewAuthUseCase(runner, auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer}, log)

	_, err = authUC.EnsureAdmin(context.Background(), adminEmail, adminPass)
	require.NoError(t, err)

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:          authUC,
		ClientUC:        clients,
		ProductUC:       products,
		LedgerUC:        ledger,
		ReplenishmentUC: inventory.NewReplenishmentUseCase(runner, 5),
		DocumentUC:      docs,
		RenderUC:        billing.NewRenderUseCase(docs, pdf.NewMarotoPDFGenerator(), dian.NewXMLBuilderService()),
		ExpenseUC:       expenses.NewUseCase(runner),
		ReportsUC:       appanalytics.NewReportsUseCase(runner),
		DashboardUC:     appanalytics.NewDashboardUseCase(runner),
		SettingsUC:      settings.NewUseCase(runner, runner, clients, products, log),
		SupportUC:       support.NewUseCase(runner),
		JWTSecret:       testJWTSecret,
		Now:             func() time.Time { return time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC) },
	})
	return apiFixture{app: app, authUC: authUC}
}

// call ejecuta la petición y decodifica el cuerpo JSON en out (si no es nil).
func (f apiFixture) call(t *testing.T, method, path, token string, body any, out any) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := f.app.Test(req, -1)
	require.NoError(t, err)
	if out != nil {
		defer resp.Body.Close()
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp
}

func (f apiFixture) login(t *testing.T, email, password string) string {
	t.Helper()
	var out dto.LoginResponse
	resp := f.call(t, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: email, Password: password}, &out)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	return out.Token
}

func TestAPI_FlujoFactura(t *testing.T) {
	f := newAPI(t)
	token := f.login(t, adminEmail, adminPass)

	var client dto.ClientResponse
	resp := f.call(t, http.MethodPost, "/api/clients", token, map[string]any{
		"name": "Constructora Andina", "id_type": "NIT", "id_number": "900.123.456-8",
	}, &client)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "CL-1", client.ID)

	var product dto.ProductResponse
	resp = f.call(t, http.MethodPost, "/api/products", token, map[string]any{
		"sku": "CAB-001", "name": "Cable", "type": "product",
		"price": "100000", "iva_rate": "19", "initial_stock": "10",
	}, &product)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var inv dto.InvoiceResponse
	resp = f.call(t, http.MethodPost, "/api/invoices", token, map[string]any{
		"client_id": client.ID,
		"items":     []map[string]any{{"product_id": product.ID, "quantity": "3"}},
	}, &inv)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "FVC-1", inv.ID)
	assert.Equal(t, "357000", inv.Total.String())

	var after dto.ProductResponse
	f.call(t, http.MethodGet, "/api/products/"+product.ID, token, nil, &after)
	assert.Equal(t, "7", after.Stock.String(), "la factura descuenta el stock")

	// Sin stock suficiente no se guarda nada.
	var apiErr dto.ErrorResponse
	resp = f.call(t, http.MethodPost, "/api/invoices", token, map[string]any{
		"client_id": client.ID,
		"items":     []map[string]any{{"product_id": product.ID, "quantity": "50"}},
	}, &apiErr)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "INSUFFICIENT_STOCK", apiErr.Code)
	f.call(t, http.MethodGet, "/api/products/"+product.ID, token, nil, &after)
	assert.Equal(t, "7", after.Stock.String())

	var paid dto.InvoiceResponse
	resp = f.call(t, http.MethodPatch, "/api/invoices/FVC-1/status", token, dto.UpdateStatusRequest{Status: "Pagada"}, &paid)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, paid.CUFE, 96, "al salir de Borrador se asigna el código de autorización")

	var sales dto.SalesReportDTO
	resp = f.call(t, http.MethodGet, "/api/reports/sales", token, nil, &sales)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "357000", sales.TotalCollected.String())

	resp = f.call(t, http.MethodGet, "/api/invoices/FVC-1/pdf", token, nil, nil)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "factura_FVC-1.pdf")

	resp = f.call(t, http.MethodGet, "/api/invoices/FVC-1/xml", token, nil, nil)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	xmlBody, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(xmlBody), "<cbc:ID>FVC-1</cbc:ID>")
}

func TestAPI_ErroresDeDominio(t *testing.T) {
	f := newAPI(t)
	token := f.login(t, adminEmail, adminPass)

	var apiErr dto.ErrorResponse
	resp := f.call(t, http.MethodGet, "/api/invoices/FVC-99", token, nil, &apiErr)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", apiErr.Code)

	resp = f.call(t, http.MethodGet, "/api/reports/sales?start_date=16-10-2026", token, nil, &apiErr)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", apiErr.Code)

	resp = f.call(t, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: adminEmail, Password: "mala"}, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAPI_UsuarioSoloConsultaClientes(t *testing.T) {
	f := newAPI(t)
	admin := f.login(t, adminEmail, adminPass)

	resp := f.call(t, http.MethodPost, "/api/settings/users", admin, dto.CreateUserRequest{Email: "ana@nubifica.com", Password: "clave456"}, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	user := f.login(t, "ana@nubifica.com", "clave456")

	resp = f.call(t, http.MethodPost, "/api/clients", user, map[string]any{"name": "X", "id_type": "Cédula", "id_number": "1"}, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = f.call(t, http.MethodGet, "/api/clients", user, nil, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = f.call(t, http.MethodGet, "/api/settings/connection-logs", user, nil, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestAPI_LogoutRevocaToken(t *testing.T) {
	f := newAPI(t)
	token := f.login(t, adminEmail, adminPass)

	var me dto.UserResponse
	resp := f.call(t, http.MethodGet, "/api/auth/me", token, nil, &me)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, adminEmail, me.Email)

	resp = f.call(t, http.MethodPost, "/api/auth/logout", token, nil, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = f.call(t, http.MethodGet, "/api/auth/me", token, nil, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
