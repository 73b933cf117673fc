package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Facturacion-api/internal/application/dto"
	"github.com/jhoicas/Facturacion-api/internal/application/inventory"
	"github.com/jhoicas/Facturacion-api/internal/domain/entity"
)

func TestReplenishment_SugiereProductosBajoUmbral(t *testing.T) {
	f := newFixture(t, true)
	ctx := context.Background()
	cost := d("600")
	threshold := 20
	p, err := f.products.Create(ctx, dto.CreateProductRequest{
		SKU: "REP-1", Name: "Cinta", Price: d("1000"), Cost: &cost, TaxRate: d("19"),
		InitialStock: d("12"), LowStockThreshold: &threshold,
	})
	require.NoError(t, err)
	f.createProduct(t, "REP-2", "100")

	_, err = f.ledger.ApplyMovement(ctx, p.ID, entity.MovementTypeVenta, d("-4"), "", "FVC-1")
	require.NoError(t, err)

	uc := inventory.NewReplenishmentUseCase(f.runner, 10)
	list, err := uc.GenerateReplenishmentList(ctx, time.Now().Add(time.Minute))
	require.NoError(t, err)
	require.Len(t, list, 1)

	s := list[0]
	assert.Equal(t, p.ID, s.ProductID)
	assert.True(t, s.CurrentStock.Equal(d("8")))
	assert.True(t, s.IdealStock.Equal(d("30")), "20 × 1.5 = 30")
	assert.True(t, s.SuggestedOrderQty.Equal(d("22")))
	assert.True(t, s.Deficit.Equal(d("12")))
	assert.True(t, s.EstimatedOrderCost.Equal(d("13200")))
	assert.True(t, s.GrossMarginPct.Equal(d("40")), "margen (1000-600)/1000")
	assert.True(t, s.UnitsSoldLast90d.Equal(d("4")))
	assert.Equal(t, 1, s.Priority)
}

func TestReplenishment_ServiciosExcluidos(t *testing.T) {
	f := newFixture(t, true)
	ctx := context.Background()
	_, err := f.products.Create(ctx, dto.CreateProductRequest{
		SKU: "SRV-9", Name: "Asesoría", Price: d("100000"), TaxRate: d("19"), Type: entity.ProductTypeService,
	})
	require.NoError(t, err)

	list, err := inventory.NewReplenishmentUseCase(f.runner, 10).GenerateReplenishmentList(ctx, time.Now())
	require.NoError(t, err)
	assert.Empty(t, list)
}
