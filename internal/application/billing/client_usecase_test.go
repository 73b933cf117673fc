package billing_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Facturacion-api/internal/application/billing"
	"github.com/jhoicas/Facturacion-api/internal/application/dto"
	"github.com/jhoicas/Facturacion-api/internal/domain"
	"github.com/jhoicas/Facturacion-api/internal/domain/entity"
)

func TestClientCreate_AvisoPorDigitoDeVerificacion(t *testing.T) {
	f := newFixture(t, fixtureOpts{})
	ctx := context.Background()

	bad, err := f.clients.Create(ctx, dto.ClientRequest{Name: "Demo Ltda", IDType: entity.IDTypeNIT, IDNumber: "900.123.456-7"})
	require.NoError(t, err, "un NIT inválido no bloquea el registro")
	require.NotNil(t, bad.Warning)
	assert.Equal(t, billing.WarningNITCheckDigit, bad.Warning.Code)

	good, err := f.clients.Create(ctx, dto.ClientRequest{Name: "Otra S.A.S", IDType: entity.IDTypeNIT, IDNumber: "800.987.654-4"})
	require.NoError(t, err)
	assert.Nil(t, good.Warning)

	cc, err := f.clients.Create(ctx, dto.ClientRequest{Name: "Persona", IDType: entity.IDTypeCedula, IDNumber: "123"})
	require.NoError(t, err)
	assert.Nil(t, cc.Warning, "la cédula no lleva dígito de verificación")
}

func TestClientCreate_Validaciones(t *testing.T) {
	f := newFixture(t, fixtureOpts{})
	ctx := context.Background()

	_, err := f.clients.Create(ctx, dto.ClientRequest{IDNumber: "1"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "nombre requerido")

	_, err = f.clients.Create(ctx, dto.ClientRequest{Name: "X", IDNumber: "1", IDType: "Pasaporte"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.clients.Create(ctx, dto.ClientRequest{Name: "X", IDNumber: "1", FiscalResponsibilities: []string{"Z-00"}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.clients.Create(ctx, dto.ClientRequest{Name: "X", IDType: entity.IDTypeCedula, IDNumber: "77"})
	require.NoError(t, err)
	_, err = f.clients.Create(ctx, dto.ClientRequest{Name: "Y", IDType: entity.IDTypeCedula, IDNumber: "77"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestClientList_BusquedaSinTildes(t *testing.T) {
	f := newFixture(t, fixtureOpts{})
	ctx := context.Background()
	_, err := f.clients.Create(ctx, dto.ClientRequest{Name: "José Gómez", IDType: entity.IDTypeCedula, IDNumber: "1010", Email: "jose@correo.co"})
	require.NoError(t, err)
	_, err = f.clients.Create(ctx, dto.ClientRequest{Name: "Ana Ruiz", IDType: entity.IDTypeCedula, IDNumber: "2020"})
	require.NoError(t, err)

	res, err := f.clients.List(ctx, "GOMEZ", dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	assert.Equal(t, "José Gómez", res.Items[0].Name)

	res, err = f.clients.List(ctx, "2020", dto.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, res.Items, 1)
}

func TestClientDelete_NoAfectaDocumentos(t *testing.T) {
	f := newFixture(t, fixtureOpts{allowNegative: true})
	ctx := context.Background()
	clientID := f.client(t)
	p := f.product(t, "CD-1", "1000", "19", "10", entity.ProductTypeGood)
	inv, err := f.docs.CreateInvoice(ctx, dto.CreateInvoiceRequest{ClientID: clientID, Items: []dto.LineItemRequest{{ProductID: p, Quantity: d("1")}}})
	require.NoError(t, err)

	require.NoError(t, f.clients.Delete(ctx, clientID))
	got, err := f.docs.GetInvoice(ctx, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, "Constructora Andina S.A.S", got.ClientName)

	_, err = f.clients.GetByID(ctx, clientID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
