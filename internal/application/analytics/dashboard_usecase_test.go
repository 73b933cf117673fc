package analytics_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Facturacion-api/internal/application/analytics"
	"github.com/jhoicas/Facturacion-api/internal/domain/entity"
	"github.com/jhoicas/Facturacion-api/internal/domain/repository"
	"github.com/jhoicas/Facturacion-api/internal/infrastructure/memory"
	"github.com/jhoicas/Facturacion-api/internal/infrastructure/slots"
)

func TestDashboard_Indicadores(t *testing.T) {
	runner := slots.NewTxRunner(memory.NewSlotStore())
	ctx := context.Background()
	seed(t, runner, func(repos repository.Set) error {
		invoices := []*entity.Invoice{
			invoice("FVC-1", "CL-1", day(2026, 9, 10), entity.InvoiceStatusPaid, "100000", "19000"),
			invoice("FVC-2", "CL-2", day(2026, 10, 2), entity.InvoiceStatusSent, "50000", "9500"),
			invoice("FVC-3", "CL-2", day(2026, 10, 5), entity.InvoiceStatusOverdue, "10000", "1900"),
			invoice("FVC-4", "CL-3", day(2026, 10, 6), entity.InvoiceStatusDraft, "1000", "190"),
		}
		invoices[0].LineItems = []entity.LineItem{{ProductID: "PROD-1", ProductName: "Cable", Quantity: d("7"), Total: d("100000")}}
		for _, inv := range invoices {
			if err := repos.Invoices.Create(ctx, inv); err != nil {
				return err
			}
		}
		return repos.Expenses.Create(ctx, &entity.Expense{ID: "EXP-1", Date: day(2026, 10, 10), Description: "Arriendo", Amount: d("20000")})
	})

	sum, err := analytics.NewDashboardUseCase(runner).GetSummary(ctx, analytics.Range{}, day(2026, 10, 16))
	require.NoError(t, err)

	assert.True(t, sum.TotalCollected.Equal(d("119000")))
	assert.True(t, sum.TotalExpenses.Equal(d("20000")))
	assert.True(t, sum.NetProfit.Equal(d("99000")))
	assert.True(t, sum.TotalPending.Equal(d("71400")), "Enviada + Vencida, se obtuvo %s", sum.TotalPending)
	assert.Equal(t, 3, sum.ActiveClients)
	assert.Equal(t, 4, sum.InvoiceCount)
	assert.Equal(t, "Octubre 2026", sum.DateLabel)

	require.Len(t, sum.MonthlySales, 2)
	assert.Equal(t, "2026-09", sum.MonthlySales[0].Month)
	assert.Equal(t, "Sept. 2026", sum.MonthlySales[0].Label)
	assert.Equal(t, "Oct. 2026", sum.MonthlySales[1].Label)

	require.NotEmpty(t, sum.Recent)
	assert.Equal(t, "Gasto", sum.Recent[0].Kind, "el gasto del 10 de octubre es lo más reciente")

	require.Len(t, sum.TopClients, 3)
	assert.Equal(t, "CL-1", sum.TopClients[0].ClientID)
	require.Len(t, sum.TopProducts, 1)
	assert.Equal(t, "Cable", sum.TopProducts[0].ProductName)
}

func TestDashboard_ActividadLimitadaACinco(t *testing.T) {
	runner := slots.NewTxRunner(memory.NewSlotStore())
	ctx := context.Background()
	seed(t, runner, func(repos repository.Set) error {
		for i := 1; i <= 8; i++ {
			inv := invoice(fmt.Sprintf("FVC-%d", i), "CL-1", day(2026, 10, i), entity.InvoiceStatusPaid, "1000", "0")
			if err := repos.Invoices.Create(ctx, inv); err != nil {
				return err
			}
		}
		return nil
	})

	sum, err := analytics.NewDashboardUseCase(runner).GetSummary(ctx, analytics.Range{}, day(2026, 10, 16))
	require.NoError(t, err)
	require.Len(t, sum.Recent, 5)
	assert.Equal(t, "FVC-8", sum.Recent[0].ID)
}
