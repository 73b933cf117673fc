// Package analytics contiene los casos de uso para reportes de negocio y el
// Dashboard de Analítica Financiera.
package analytics

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Facturacion-api/internal/application/dto"
	"github.com/jhoicas/Facturacion-api/internal/application/ports"
	"github.com/jhoicas/Facturacion-api/internal/domain/entity"
)

const (
	dashboardTop    = 5 // clientes y productos en los widgets del dashboard
	dashboardRecent = 5 // movimientos en la actividad reciente
)

// DashboardUseCase genera el resumen financiero del período (todo el historial si el rango está vacío).
//
// Fuente de datos: una sola vista consistente del almacén; los widgets se calculan en paralelo.
type DashboardUseCase struct {
	tx ports.TxRunner
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(tx ports.TxRunner) *DashboardUseCase {
	return &DashboardUseCase{tx: tx}
}

// GetSummary construye el DashboardSummaryDTO.
//
// Cuatro cálculos en paralelo:
//  1. Indicadores  → cobrado, gastos, utilidad, pendiente, clientes activos
//  2. Ventas por mes
//  3. Actividad reciente (facturas y gastos)
//  4. Top clientes y top productos
func (uc *DashboardUseCase) GetSummary(ctx context.Context, r Range, now time.Time) (*dto.DashboardSummaryDTO, error) {
	s, err := loadSnapshot(ctx, uc.tx)
	if err != nil {
		return nil, fmt.Errorf("dashboard: %w", err)
	}
	invoices := invoicesIn(s.invoices, r)
	expenses := expensesIn(s.expenses, r)

	type kpis struct {
		collected, expenses, pending decimal.Decimal
		activeClients                int
	}
	type tops struct {
		clients  []dto.TopClientDTO
		products []dto.TopProductDTO
	}

	kpiCh := make(chan kpis, 1)
	monthlyCh := make(chan []dto.MonthlySalesDTO, 1)
	recentCh := make(chan []dto.ActivityDTO, 1)
	topsCh := make(chan tops, 1)

	go func() {
		var k kpis
		active := map[string]struct{}{}
		for _, inv := range invoices {
			switch inv.Status {
			case entity.InvoiceStatusPaid:
				k.collected = k.collected.Add(inv.Total)
			case entity.InvoiceStatusSent, entity.InvoiceStatusOverdue:
				k.pending = k.pending.Add(inv.Total)
			}
			active[inv.ClientID] = struct{}{}
		}
		for _, e := range expenses {
			k.expenses = k.expenses.Add(e.Amount)
		}
		k.activeClients = len(active)
		kpiCh <- k
	}()
	go func() { monthlyCh <- monthlySales(invoices) }()
	go func() { recentCh <- recentActivity(invoices, expenses) }()
	go func() { topsCh <- tops{clients: topClients(invoices), products: topProducts(invoices)} }()

	k := <-kpiCh
	monthly := <-monthlyCh
	recent := <-recentCh
	t := <-topsCh

	return &dto.DashboardSummaryDTO{
		TotalCollected: k.collected,
		TotalExpenses:  k.expenses,
		NetProfit:      k.collected.Sub(k.expenses),
		TotalPending:   k.pending,
		ActiveClients:  k.activeClients,
		InvoiceCount:   len(invoices),
		MonthlySales:   monthly,
		Recent:         recent,
		TopClients:     t.clients,
		TopProducts:    t.products,
		Period:         r.Period(),
		DateLabel:      monthLabel(now),
	}, nil
}

func monthlySales(invoices []*entity.Invoice) []dto.MonthlySalesDTO {
	byMonth := map[string]*dto.MonthlySalesDTO{}
	for _, inv := range invoices {
		key := inv.IssueDate.Format("2006-01")
		m, ok := byMonth[key]
		if !ok {
			m = &dto.MonthlySalesDTO{Month: key, Label: shortMonthLabel(inv.IssueDate)}
			byMonth[key] = m
		}
		m.Total = m.Total.Add(inv.Total)
	}
	out := make([]dto.MonthlySalesDTO, 0, len(byMonth))
	for _, m := range byMonth {
		out = append(out, *m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })
	return out
}

func recentActivity(invoices []*entity.Invoice, expenses []*entity.Expense) []dto.ActivityDTO {
	type item struct {
		at time.Time
		a  dto.ActivityDTO
	}
	items := make([]item, 0, len(invoices)+len(expenses))
	for _, inv := range invoices {
		items = append(items, item{inv.IssueDate, dto.ActivityDTO{
			Kind:        "Factura",
			ID:          inv.ID,
			Description: inv.ID + " - " + inv.ClientName,
			Date:        inv.IssueDate.Format(dateLayout),
			Amount:      inv.Total,
			Positive:    true,
		}})
	}
	for _, e := range expenses {
		items = append(items, item{e.Date, dto.ActivityDTO{
			Kind:        "Gasto",
			ID:          e.ID,
			Description: e.Description,
			Date:        e.Date.Format(dateLayout),
			Amount:      e.Amount,
		}})
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].at.After(items[j].at) })
	out := make([]dto.ActivityDTO, 0, dashboardRecent)
	for i := 0; i < len(items) && i < dashboardRecent; i++ {
		out = append(out, items[i].a)
	}
	return out
}

func topClients(invoices []*entity.Invoice) []dto.TopClientDTO {
	out := []dto.TopClientDTO{}
	idx := map[string]int{}
	for _, inv := range invoices {
		i, ok := idx[inv.ClientID]
		if !ok {
			i = len(out)
			idx[inv.ClientID] = i
			out = append(out, dto.TopClientDTO{ClientID: inv.ClientID, ClientName: inv.ClientName})
		}
		out[i].Total = out[i].Total.Add(inv.Total)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Total.GreaterThan(out[j].Total) })
	if len(out) > dashboardTop {
		out = out[:dashboardTop]
	}
	return out
}

func topProducts(invoices []*entity.Invoice) []dto.TopProductDTO {
	out := []dto.TopProductDTO{}
	for _, p := range productSales(invoices) {
		out = append(out, dto.TopProductDTO{ProductID: p.ProductID, ProductName: p.ProductName, Quantity: p.UnitsSold})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Quantity.GreaterThan(out[j].Quantity) })
	if len(out) > dashboardTop {
		out = out[:dashboardTop]
	}
	return out
}

var months = [...]string{
	"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
	"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
}

// monthLabel devuelve una etiqueta legible del mes, ej: "Febrero 2026".
func monthLabel(t time.Time) string {
	return fmt.Sprintf("%s %d", months[t.Month()-1], t.Year())
}

// shortMonthLabel etiqueta corta del eje del gráfico, ej: "Oct. 2026" ("Sept." en septiembre, como en es-CO).
func shortMonthLabel(t time.Time) string {
	name := months[t.Month()-1]
	abbr := name[:3]
	if t.Month() == time.September {
		abbr = name[:4]
	}
	return fmt.Sprintf("%s. %d", abbr, t.Year())
}
