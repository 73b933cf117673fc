package inventory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Facturacion-api/internal/application/dto"
	"github.com/jhoicas/Facturacion-api/internal/domain"
)

func TestProductCreate_SKUDuplicado(t *testing.T) {
	f := newFixture(t, true)
	f.createProduct(t, "DUP-1", "0")

	_, err := f.products.Create(context.Background(), dto.CreateProductRequest{
		SKU: "dup-1", Name: "Otro", Price: d("1"), TaxRate: d("0"),
	})
	assert.ErrorIs(t, err, domain.ErrDuplicate, "el SKU no distingue mayúsculas")
}

func TestProductCreate_TarifaIVAInvalida(t *testing.T) {
	f := newFixture(t, true)
	_, err := f.products.Create(context.Background(), dto.CreateProductRequest{
		SKU: "IVA-7", Name: "Producto", Price: d("1000"), TaxRate: d("7"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestProductCreate_IDsConsecutivos(t *testing.T) {
	f := newFixture(t, true)
	a := f.createProduct(t, "A-1", "0")
	b := f.createProduct(t, "B-1", "0")
	assert.Equal(t, "PROD-1", a.ID)
	assert.Equal(t, "PROD-2", b.ID)
}

func TestProductUpdate_NoTocaStock(t *testing.T) {
	f := newFixture(t, true)
	p := f.createProduct(t, "UPD-1", "7")
	ctx := context.Background()

	name := "Nuevo nombre"
	price := d("30000")
	got, err := f.products.Update(ctx, p.ID, dto.UpdateProductRequest{Name: &name, Price: &price})
	require.NoError(t, err)
	assert.Equal(t, name, got.Name)
	assert.True(t, got.Price.Equal(price))
	assert.True(t, got.Stock.Equal(d("7")))
}

func TestProductUpdate_SKUDeOtroProducto(t *testing.T) {
	f := newFixture(t, true)
	f.createProduct(t, "SKU-A", "0")
	b := f.createProduct(t, "SKU-B", "0")

	sku := "SKU-A"
	_, err := f.products.Update(context.Background(), b.ID, dto.UpdateProductRequest{SKU: &sku})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestProductList_BuscaSinTildes(t *testing.T) {
	f := newFixture(t, true)
	ctx := context.Background()
	_, err := f.products.Create(ctx, dto.CreateProductRequest{SKU: "CAF-1", Name: "Café molido", Price: d("12000"), TaxRate: d("5")})
	require.NoError(t, err)
	f.createProduct(t, "TE-1", "0")

	res, err := f.products.List(ctx, "cafe", dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	assert.Equal(t, "Café molido", res.Items[0].Name)
	assert.Equal(t, 1, res.Page.Total)
	assert.Equal(t, 50, res.Page.Limit)
}

func TestProductLowStock_UsaUmbral(t *testing.T) {
	f := newFixture(t, true)
	low := f.createProduct(t, "LOW-1", "3")
	f.createProduct(t, "OK-1", "50")

	list, err := f.products.LowStock(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, low.ID, list[0].ID)
	assert.Equal(t, 10, list[0].LowStockThreshold)
}

func TestProductDelete_Inexistente(t *testing.T) {
	f := newFixture(t, true)
	err := f.products.Delete(context.Background(), "PROD-404")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
