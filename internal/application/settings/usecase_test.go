package settings_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Facturacion-api/internal/application/billing"
	"github.com/jhoicas/Facturacion-api/internal/application/dto"
	"github.com/jhoicas/Facturacion-api/internal/application/inventory"
	"github.com/jhoicas/Facturacion-api/internal/application/settings"
	"github.com/jhoicas/Facturacion-api/internal/domain"
	"github.com/jhoicas/Facturacion-api/internal/infrastructure/memory"
	"github.com/jhoicas/Facturacion-api/internal/infrastructure/slots"
	"github.com/jhoicas/Facturacion-api/pkg/logger"
)

type fixture struct {
	settings *settings.UseCase
	clients  *billing.ClientUseCase
	products *inventory.ProductUseCase
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	runner := slots.NewTxRunner(memory.NewSlotStore())
	log := logger.Nop()
	ledger := inventory.NewLedgerUseCase(runner, inventory.LedgerOptions{AllowNegativeStock: true}, log)
	clients := billing.NewClientUseCase(runner, log)
	products := inventory.NewProductUseCase(runner, ledger, 5)
	return fixture{
		settings: settings.NewUseCase(runner, runner, clients, products, log),
		clients:  clients,
		products: products,
	}
}

// ── Empresa y resolución ──────────────────────────────────────────────────────

func TestUpdateCompany_AvisoNIT(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	empty, err := f.settings.GetCompany(ctx)
	require.NoError(t, err)
	assert.Empty(t, empty.Name)
	assert.NotNil(t, empty.FiscalResponsibilities)

	resp, err := f.settings.UpdateCompany(ctx, dto.CompanyRequest{Name: "Mi Empresa", NIT: "900.123.456-7"})
	require.NoError(t, err, "un NIT con DV inválido se guarda igual")
	require.NotNil(t, resp.Warning)
	assert.Equal(t, billing.WarningNITCheckDigit, resp.Warning.Code)

	resp, err = f.settings.UpdateCompany(ctx, dto.CompanyRequest{Name: "Mi Empresa", NIT: "900.123.456-8", City: "Medellín"})
	require.NoError(t, err)
	assert.Nil(t, resp.Warning)

	got, err := f.settings.GetCompany(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Medellín", got.City)
}

func TestUpdateCompany_Validaciones(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.settings.UpdateCompany(ctx, dto.CompanyRequest{Name: " ", NIT: "900.123.456-8"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.settings.UpdateCompany(ctx, dto.CompanyRequest{Name: "X", NIT: "900.123.456-8", FiscalResponsibilities: []string{"Z-99"}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "responsabilidad fiscal desconocida")
}

func TestResolution(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.settings.GetResolution(ctx)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.settings.UpdateResolution(ctx, dto.ResolutionRequest{Number: "18760000001", Prefix: "fvc", RangeFrom: 100, RangeTo: 50})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	res, err := f.settings.UpdateResolution(ctx, dto.ResolutionRequest{Number: "18760000001", Prefix: "fvc", RangeFrom: 1, RangeTo: 5000, Validity: "24 meses"})
	require.NoError(t, err)
	assert.Equal(t, "FVC", res.Prefix)

	got, err := f.settings.GetResolution(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(5000), got.RangeTo)
}

func TestBackup_IncluyeSlotsEscritos(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.settings.UpdateCompany(ctx, dto.CompanyRequest{Name: "Mi Empresa", NIT: "900.123.456-8"})
	require.NoError(t, err)
	_, err = f.clients.Create(ctx, dto.ClientRequest{Name: "Ana", IDType: "Cédula", IDNumber: "1020"})
	require.NoError(t, err)

	now := time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC)
	doc, err := f.settings.Backup(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, 1, doc.Version)
	assert.Equal(t, now, doc.CreatedAt)
	assert.Contains(t, doc.Slots, "companyInfo")
	assert.Contains(t, doc.Slots, "clients")
	assert.Contains(t, string(doc.Slots["clients"]), "CL-1")
}

// ── CSV ───────────────────────────────────────────────────────────────────────

func TestTemplate(t *testing.T) {
	f := newFixture(t)
	content, name, err := f.settings.Template(settings.KindProducts)
	require.NoError(t, err)
	assert.Equal(t, "plantilla_products.csv", name)
	assert.True(t, strings.HasPrefix(string(content), "sku;nombre;"), "encabezado separado por punto y coma")

	_, _, err = f.settings.Template("facturas")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestImportClients_Windows1252(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// "José Gómez" en Windows-1252, como lo guarda Excel.
	raw := []byte("nombre;tipo_identificacion;numero_identificacion;email\r\n" +
		"Jos\xe9 G\xf3mez;C\xe9dula;1020304050;jose@correo.co\r\n" +
		";NIT;;\r\n" +
		"Constructora Andina;NIT;900.123.456-8;compras@andina.co\r\n" +
		"Duplicada;C\xe9dula;1020304050;\r\n")

	res, err := f.settings.Import(ctx, settings.KindClients, raw)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Created)
	assert.Equal(t, 1, res.Skipped, "el mismo tipo y número se omite")
	require.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0], "fila 3")

	list, err := f.clients.List(ctx, "gomez", dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, list.Items, 1)
	assert.Equal(t, "José Gómez", list.Items[0].Name)
}

func TestImportProducts_ComaYDecimales(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	raw := []byte("sku,nombre,tipo,precio,costo,iva,stock_inicial,stock_minimo\n" +
		"CAB-001,Cable,product,185000,120000,19,10,3\n" +
		"SRV-001,Instalación,service,50000,,19,,\n" +
		"MAL-001,Malo,product,abc,,19,,\n")

	res, err := f.settings.Import(ctx, settings.KindProducts, raw)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Created)
	require.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0], "precio")

	list, err := f.products.List(ctx, "cable", dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, list.Items, 1)
	assert.Equal(t, "10", list.Items[0].Stock.String(), "el stock inicial entra por el kardex")
	assert.Equal(t, 3, list.Items[0].LowStockThreshold)
}

func TestImport_ArchivoVacio(t *testing.T) {
	f := newFixture(t)
	_, err := f.settings.Import(context.Background(), settings.KindClients, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
