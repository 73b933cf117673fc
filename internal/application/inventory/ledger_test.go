package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Facturacion-api/internal/application/dto"
	"github.com/jhoicas/Facturacion-api/internal/application/inventory"
	"github.com/jhoicas/Facturacion-api/internal/domain"
	"github.com/jhoicas/Facturacion-api/internal/domain/entity"
	"github.com/jhoicas/Facturacion-api/internal/domain/repository"
	"github.com/jhoicas/Facturacion-api/internal/infrastructure/memory"
	"github.com/jhoicas/Facturacion-api/internal/infrastructure/slots"
	"github.com/jhoicas/Facturacion-api/pkg/logger"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

type fixture struct {
	runner   *slots.TxRunner
	ledger   *inventory.LedgerUseCase
	products *inventory.ProductUseCase
}

func newFixture(t *testing.T, allowNegative bool) fixture {
	t.Helper()
	runner := slots.NewTxRunner(memory.NewSlotStore())
	ledger := inventory.NewLedgerUseCase(runner, inventory.LedgerOptions{AllowNegativeStock: allowNegative}, logger.Nop())
	return fixture{
		runner:   runner,
		ledger:   ledger,
		products: inventory.NewProductUseCase(runner, ledger, 10),
	}
}

func (f fixture) createProduct(t *testing.T, sku string, stock string) *dto.ProductResponse {
	t.Helper()
	p, err := f.products.Create(context.Background(), dto.CreateProductRequest{
		SKU:          sku,
		Name:         "Producto " + sku,
		Price:        d("25000"),
		TaxRate:      d("19"),
		InitialStock: d(stock),
	})
	require.NoError(t, err)
	return p
}

// ── Stock inicial ─────────────────────────────────────────────────────────────

func TestCreateProduct_StockInicialQuedaEnKardex(t *testing.T) {
	f := newFixture(t, true)
	p := f.createProduct(t, "W-01", "100")

	assert.True(t, p.Stock.Equal(d("100")))
	movs, err := f.ledger.ListMovements(context.Background(), p.ID)
	require.NoError(t, err)
	require.Len(t, movs, 1)
	assert.Equal(t, entity.MovementTypeEntrada, movs[0].Type)
	assert.Equal(t, inventory.NoteInitialStock, movs[0].Notes)
	assert.True(t, movs[0].Quantity.Equal(d("100")))
}

func TestCreateProduct_SinStockNoGeneraMovimiento(t *testing.T) {
	f := newFixture(t, true)
	p := f.createProduct(t, "W-02", "0")

	movs, err := f.ledger.ListMovements(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Empty(t, movs)
}

// ── ApplyMovement ─────────────────────────────────────────────────────────────

func TestApplyMovement_VentaDescuentaStock(t *testing.T) {
	f := newFixture(t, true)
	p := f.createProduct(t, "W-03", "10")

	stock, err := f.ledger.ApplyMovement(context.Background(), p.ID, entity.MovementTypeVenta, d("-3"), "Venta mostrador", "FVC-1")
	require.NoError(t, err)
	assert.True(t, stock.Equal(d("7")), "10 - 3 = 7, se obtuvo %s", stock)
}

func TestApplyMovement_SignoInvalido(t *testing.T) {
	f := newFixture(t, true)
	p := f.createProduct(t, "W-04", "10")
	ctx := context.Background()

	_, err := f.ledger.ApplyMovement(ctx, p.ID, entity.MovementTypeEntrada, d("-1"), "", "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "una entrada debe ser positiva")

	_, err = f.ledger.ApplyMovement(ctx, p.ID, entity.MovementTypeVenta, d("2"), "", "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "una venta debe ser negativa")

	_, err = f.ledger.ApplyMovement(ctx, p.ID, "Traslado", d("2"), "", "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "tipo desconocido")
}

func TestApplyMovement_ProductoInexistente(t *testing.T) {
	f := newFixture(t, true)
	_, err := f.ledger.ApplyMovement(context.Background(), "PROD-99", entity.MovementTypeAjuste, d("1"), "", "")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestApplyMovement_StockNegativoPermitido(t *testing.T) {
	f := newFixture(t, true)
	p := f.createProduct(t, "W-05", "2")

	stock, err := f.ledger.ApplyMovement(context.Background(), p.ID, entity.MovementTypeVenta, d("-5"), "", "FVC-1")
	require.NoError(t, err)
	assert.True(t, stock.Equal(d("-3")))
}

func TestApplyMovement_StockNegativoRechazado(t *testing.T) {
	f := newFixture(t, false)
	p := f.createProduct(t, "W-06", "2")
	ctx := context.Background()

	_, err := f.ledger.ApplyMovement(ctx, p.ID, entity.MovementTypeVenta, d("-5"), "", "FVC-1")
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	got, err := f.products.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.True(t, got.Stock.Equal(d("2")), "el stock no debe cambiar")
	movs, _ := f.ledger.ListMovements(ctx, p.ID)
	assert.Len(t, movs, 1, "solo el stock inicial")
}

// ── RegisterEntry / Adjust ────────────────────────────────────────────────────

func TestRegisterEntry_RecalculaCostoPromedio(t *testing.T) {
	f := newFixture(t, true)
	ctx := context.Background()
	cost := d("1000")
	p, err := f.products.Create(ctx, dto.CreateProductRequest{
		SKU: "W-07", Name: "Tornillo", Price: d("1500"), Cost: &cost, TaxRate: d("19"), InitialStock: d("10"),
	})
	require.NoError(t, err)

	unit := d("1600")
	res, err := f.ledger.RegisterEntry(ctx, dto.RegisterEntryRequest{ProductID: p.ID, Quantity: d("5"), UnitCost: &unit})
	require.NoError(t, err)
	assert.True(t, res.NewStock.Equal(d("15")))

	got, err := f.products.GetByID(ctx, p.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Cost)
	// (10×1000 + 5×1600) / 15 = 1200
	assert.True(t, got.Cost.Equal(d("1200")), "costo promedio esperado 1200, se obtuvo %s", got.Cost)
}

func TestRegisterEntry_ServicioRechazado(t *testing.T) {
	f := newFixture(t, true)
	ctx := context.Background()
	p, err := f.products.Create(ctx, dto.CreateProductRequest{
		SKU: "SRV-1", Name: "Instalación", Price: d("80000"), TaxRate: d("19"), Type: entity.ProductTypeService,
	})
	require.NoError(t, err)

	_, err = f.ledger.RegisterEntry(ctx, dto.RegisterEntryRequest{ProductID: p.ID, Quantity: d("1")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAdjust_LlevaAlNivelAbsoluto(t *testing.T) {
	f := newFixture(t, true)
	p := f.createProduct(t, "W-08", "10")
	ctx := context.Background()

	res, err := f.ledger.Adjust(ctx, dto.AdjustStockRequest{ProductID: p.ID, NewStock: d("4")})
	require.NoError(t, err)
	assert.True(t, res.NewStock.Equal(d("4")))
	assert.True(t, res.Movement.Quantity.Equal(d("-6")))
	assert.Equal(t, entity.MovementTypeAjuste, res.Movement.Type)
}

func TestAdjust_SinDiferenciaTambienSeRegistra(t *testing.T) {
	f := newFixture(t, true)
	p := f.createProduct(t, "W-09", "10")
	ctx := context.Background()

	res, err := f.ledger.Adjust(ctx, dto.AdjustStockRequest{ProductID: p.ID, NewStock: d("10")})
	require.NoError(t, err)
	assert.True(t, res.Movement.Quantity.IsZero())

	movs, err := f.ledger.ListMovements(ctx, p.ID)
	require.NoError(t, err)
	assert.Len(t, movs, 2)
	assert.Equal(t, entity.MovementTypeAjuste, movs[0].Type, "el más reciente primero")
}

func TestAdjust_NivelNegativoRechazado(t *testing.T) {
	f := newFixture(t, true)
	p := f.createProduct(t, "W-10", "1")
	_, err := f.ledger.Adjust(context.Background(), dto.AdjustStockRequest{ProductID: p.ID, NewStock: d("-1")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLedger_CantidadesFraccionariasRechazadas(t *testing.T) {
	f := newFixture(t, true)
	p := f.createProduct(t, "W-11", "10")
	ctx := context.Background()

	_, err := f.ledger.RegisterEntry(ctx, dto.RegisterEntryRequest{ProductID: p.ID, Quantity: d("0.5")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "entrada")

	_, err = f.ledger.Adjust(ctx, dto.AdjustStockRequest{ProductID: p.ID, NewStock: d("7.25")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "ajuste")

	_, err = f.ledger.ApplyMovement(ctx, p.ID, entity.MovementTypeVenta, d("-1.5"), "", "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "venta")

	_, err = f.products.Create(ctx, dto.CreateProductRequest{
		SKU: "W-12", Name: "Producto", Price: d("1000"), TaxRate: d("19"), InitialStock: d("3.5"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "stock inicial")

	got, err := f.products.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.True(t, got.Stock.Equal(d("10")), "ningún movimiento fraccionario llega al kardex")
	movs, err := f.ledger.ListMovements(ctx, p.ID)
	require.NoError(t, err)
	assert.Len(t, movs, 1)
}

// ── Invariante stock = Σ movimientos ──────────────────────────────────────────

func TestCheckInvariant_SecuenciaDeMovimientos(t *testing.T) {
	f := newFixture(t, true)
	p := f.createProduct(t, "W-11", "20")
	ctx := context.Background()

	_, err := f.ledger.ApplyMovement(ctx, p.ID, entity.MovementTypeVenta, d("-7"), "", "FVC-1")
	require.NoError(t, err)
	_, err = f.ledger.RegisterEntry(ctx, dto.RegisterEntryRequest{ProductID: p.ID, Quantity: d("3")})
	require.NoError(t, err)
	_, err = f.ledger.Adjust(ctx, dto.AdjustStockRequest{ProductID: p.ID, NewStock: d("12")})
	require.NoError(t, err)

	drift, err := f.ledger.CheckInvariant(ctx, p.ID)
	require.NoError(t, err)
	assert.Nil(t, drift, "el stock debe coincidir con la suma del kardex")
}

func TestReconcile_DetectaDescuadre(t *testing.T) {
	f := newFixture(t, true)
	ok := f.createProduct(t, "W-12", "5")
	bad := f.createProduct(t, "W-13", "5")
	ctx := context.Background()

	// Escritura directa que salta el kardex
	require.NoError(t, f.runner.Run(ctx, func(repos repository.Set) error {
		p, err := repos.Products.GetByID(ctx, bad.ID)
		if err != nil {
			return err
		}
		p.Stock = d("8")
		return repos.Products.Update(ctx, p)
	}))

	res, err := f.ledger.Reconcile(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Checked)
	require.Len(t, res.Drifts, 1)
	assert.Equal(t, bad.ID, res.Drifts[0].ProductID)
	assert.True(t, res.Drifts[0].Difference.Equal(d("3")))
	assert.NotEqual(t, ok.ID, res.Drifts[0].ProductID)
}

// ── RegisterSaleInTx ──────────────────────────────────────────────────────────

func TestRegisterSaleInTx_ServicioNoMueveInventario(t *testing.T) {
	f := newFixture(t, false)
	ctx := context.Background()
	p, err := f.products.Create(ctx, dto.CreateProductRequest{
		SKU: "SRV-2", Name: "Soporte", Price: d("50000"), TaxRate: d("0"), Type: entity.ProductTypeService,
	})
	require.NoError(t, err)

	err = f.runner.Run(ctx, func(repos repository.Set) error {
		prod, err := repos.Products.GetByID(ctx, p.ID)
		if err != nil {
			return err
		}
		return f.ledger.RegisterSaleInTx(ctx, repos, prod, d("3"), "FVC-1", time.Now())
	})
	require.NoError(t, err)

	movs, err := f.ledger.ListMovements(ctx, p.ID)
	require.NoError(t, err)
	assert.Empty(t, movs)
}
