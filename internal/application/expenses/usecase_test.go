package expenses_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Facturacion-api/internal/application/dto"
	"github.com/jhoicas/Facturacion-api/internal/application/expenses"
	"github.com/jhoicas/Facturacion-api/internal/domain"
	"github.com/jhoicas/Facturacion-api/internal/infrastructure/memory"
	"github.com/jhoicas/Facturacion-api/internal/infrastructure/slots"
)

func newUseCase() *expenses.UseCase {
	return expenses.NewUseCase(slots.NewTxRunner(memory.NewSlotStore()))
}

func TestCreateExpense_CopiaNombreDeCategoria(t *testing.T) {
	uc := newUseCase()
	ctx := context.Background()
	cat, err := uc.CreateCategory(ctx, dto.ExpenseCategoryRequest{Name: "Arriendo"})
	require.NoError(t, err)
	assert.Equal(t, "CAT-1", cat.ID)

	exp, err := uc.Create(ctx, dto.ExpenseRequest{
		Date: time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC), CategoryID: cat.ID,
		Description: "Local octubre", Amount: decimal.NewFromInt(1200000),
	})
	require.NoError(t, err)
	assert.Equal(t, "EXP-1", exp.ID)
	assert.Equal(t, "Arriendo", exp.CategoryName)

	require.NoError(t, uc.DeleteCategory(ctx, cat.ID))
	list, err := uc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Arriendo", list[0].CategoryName, "el gasto conserva el nombre copiado")
}

func TestCreateExpense_CategoriaInexistente(t *testing.T) {
	uc := newUseCase()
	_, err := uc.Create(context.Background(), dto.ExpenseRequest{
		Date: time.Now(), CategoryID: "CAT-9", Amount: decimal.NewFromInt(1),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreateExpense_MontoNoPositivo(t *testing.T) {
	uc := newUseCase()
	_, err := uc.Create(context.Background(), dto.ExpenseRequest{Date: time.Now(), CategoryID: "CAT-1"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUpdateExpense_CambiaCategoria(t *testing.T) {
	uc := newUseCase()
	ctx := context.Background()
	a, err := uc.CreateCategory(ctx, dto.ExpenseCategoryRequest{Name: "Servicios"})
	require.NoError(t, err)
	b, err := uc.CreateCategory(ctx, dto.ExpenseCategoryRequest{Name: "Nómina"})
	require.NoError(t, err)
	exp, err := uc.Create(ctx, dto.ExpenseRequest{Date: time.Now(), CategoryID: a.ID, Amount: decimal.NewFromInt(50000)})
	require.NoError(t, err)

	upd, err := uc.Update(ctx, exp.ID, dto.ExpenseRequest{Date: time.Now(), CategoryID: b.ID, Amount: decimal.NewFromInt(60000)})
	require.NoError(t, err)
	assert.Equal(t, "Nómina", upd.CategoryName)
	assert.True(t, upd.Amount.Equal(decimal.NewFromInt(60000)))
}

func TestCreateCategory_NombreRepetido(t *testing.T) {
	uc := newUseCase()
	ctx := context.Background()
	_, err := uc.CreateCategory(ctx, dto.ExpenseCategoryRequest{Name: "Nómina"})
	require.NoError(t, err)
	_, err = uc.CreateCategory(ctx, dto.ExpenseCategoryRequest{Name: "NOMINA"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}
