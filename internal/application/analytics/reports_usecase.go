package analytics

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Facturacion-api/internal/application/dto"
	"github.com/jhoicas/Facturacion-api/internal/application/ports"
	"github.com/jhoicas/Facturacion-api/internal/domain"
	rules "github.com/jhoicas/Facturacion-api/internal/domain/billing"
	"github.com/jhoicas/Facturacion-api/internal/domain/entity"
	"github.com/jhoicas/Facturacion-api/internal/domain/repository"
)

var hundred = decimal.NewFromInt(100)

// Tramos de cartera.
const (
	BucketCurrent = "Corriente"
	Bucket1To30   = "1-30"
	Bucket31To60  = "31-60"
	Bucket61To90  = "61-90"
	Bucket91Plus  = "91+"
)

var bucketOrder = []string{BucketCurrent, Bucket1To30, Bucket31To60, Bucket61To90, Bucket91Plus}

// snapshot datos leídos en una sola vista consistente.
type snapshot struct {
	invoices []*entity.Invoice
	expenses []*entity.Expense
	products map[string]*entity.Product
	clients  []*entity.Client
	company  *entity.CompanyInfo
}

func loadSnapshot(ctx context.Context, tx ports.TxRunner) (*snapshot, error) {
	s := &snapshot{products: map[string]*entity.Product{}}
	err := tx.View(ctx, func(repos repository.Set) error {
		var err error
		if s.invoices, err = repos.Invoices.List(ctx); err != nil {
			return err
		}
		if s.expenses, err = repos.Expenses.List(ctx); err != nil {
			return err
		}
		products, err := repos.Products.List(ctx)
		if err != nil {
			return err
		}
		for _, p := range products {
			s.products[p.ID] = p
		}
		if s.clients, err = repos.Clients.List(ctx); err != nil {
			return err
		}
		s.company, err = repos.Settings.GetCompany(ctx)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("reportes: %w", err)
	}
	return s, nil
}

func invoicesIn(list []*entity.Invoice, r Range) []*entity.Invoice {
	out := make([]*entity.Invoice, 0, len(list))
	for _, inv := range list {
		if r.Contains(inv.IssueDate) {
			out = append(out, inv)
		}
	}
	return out
}

func expensesIn(list []*entity.Expense, r Range) []*entity.Expense {
	out := make([]*entity.Expense, 0, len(list))
	for _, e := range list {
		if r.Contains(e.Date) {
			out = append(out, e)
		}
	}
	return out
}

// ReportsUseCase reportes de solo lectura sobre facturas, gastos y productos.
type ReportsUseCase struct {
	tx ports.TxRunner
}

// NewReportsUseCase construye el caso de uso.
func NewReportsUseCase(tx ports.TxRunner) *ReportsUseCase {
	return &ReportsUseCase{tx: tx}
}

// SalesReport recaudo (facturas Pagada), gastos y utilidad neta del rango, más ventas por cliente.
func (uc *ReportsUseCase) SalesReport(ctx context.Context, r Range) (*dto.SalesReportDTO, error) {
	s, err := loadSnapshot(ctx, uc.tx)
	if err != nil {
		return nil, err
	}
	return SalesReport(invoicesIn(s.invoices, r), expensesIn(s.expenses, r), r), nil
}

// SalesReport cálculo puro del reporte de ventas sobre documentos ya filtrados por rango.
func SalesReport(invoices []*entity.Invoice, expenses []*entity.Expense, r Range) *dto.SalesReportDTO {
	out := &dto.SalesReportDTO{Period: r.Period(), ByClient: []dto.SalesByClientDTO{}}
	idx := map[string]int{}
	for _, inv := range invoices {
		if inv.Status == entity.InvoiceStatusPaid {
			out.TotalCollected = out.TotalCollected.Add(inv.Total)
		}
		i, ok := idx[inv.ClientID]
		if !ok {
			i = len(out.ByClient)
			idx[inv.ClientID] = i
			out.ByClient = append(out.ByClient, dto.SalesByClientDTO{ClientID: inv.ClientID, ClientName: inv.ClientName})
		}
		out.ByClient[i].InvoiceCount++
		out.ByClient[i].Total = out.ByClient[i].Total.Add(inv.Total)
	}
	for _, e := range expenses {
		out.TotalExpenses = out.TotalExpenses.Add(e.Amount)
	}
	out.NetProfit = out.TotalCollected.Sub(out.TotalExpenses)
	sort.SliceStable(out.ByClient, func(i, j int) bool {
		return out.ByClient[i].Total.GreaterThan(out.ByClient[j].Total)
	})
	return out
}

// TaxReport IVA, retención en la fuente e ICA por factura del rango.
func (uc *ReportsUseCase) TaxReport(ctx context.Context, r Range) (*dto.TaxReportDTO, error) {
	s, err := loadSnapshot(ctx, uc.tx)
	if err != nil {
		return nil, err
	}
	return TaxReport(invoicesIn(s.invoices, r), r), nil
}

// withholdings base gravable, retención e ICA de una factura, en pesos enteros.
func withholdings(inv *entity.Invoice) (base, retention, ica decimal.Decimal) {
	base = rules.InvoiceTaxBase(inv.Subtotal, inv.GlobalDiscount())
	retention = base.Mul(inv.Retention()).Div(hundred).Round(0)
	ica = base.Mul(inv.ICA()).Div(hundred).Round(0)
	return base.Round(0), retention, ica
}

// TaxReport cálculo puro del reporte de impuestos.
func TaxReport(invoices []*entity.Invoice, r Range) *dto.TaxReportDTO {
	out := &dto.TaxReportDTO{Period: r.Period(), Rows: make([]dto.TaxRowDTO, 0, len(invoices))}
	for _, inv := range invoices {
		base, ret, ica := withholdings(inv)
		out.Rows = append(out.Rows, dto.TaxRowDTO{
			InvoiceID:  inv.ID,
			ClientName: inv.ClientName,
			IssueDate:  inv.IssueDate.Format(dateLayout),
			Base:       base,
			IVA:        inv.TaxTotal,
			Retention:  ret,
			ICA:        ica,
		})
		out.TotalBase = out.TotalBase.Add(base)
		out.TotalIVA = out.TotalIVA.Add(inv.TaxTotal)
		out.TotalRetention = out.TotalRetention.Add(ret)
		out.TotalICA = out.TotalICA.Add(ica)
	}
	return out
}

// AgingReport cartera por edades a la fecha today: facturas Enviada o Vencida sin importar el rango.
func (uc *ReportsUseCase) AgingReport(ctx context.Context, today time.Time) (*dto.AgingReportDTO, error) {
	s, err := loadSnapshot(ctx, uc.tx)
	if err != nil {
		return nil, err
	}
	return AgingReport(s.invoices, today), nil
}

// AgingBucket tramo según los días de vencimiento.
func AgingBucket(days int) string {
	switch {
	case days <= 0:
		return BucketCurrent
	case days <= 30:
		return Bucket1To30
	case days <= 60:
		return Bucket31To60
	case days <= 90:
		return Bucket61To90
	default:
		return Bucket91Plus
	}
}

// AgingReport cálculo puro de la cartera.
func AgingReport(invoices []*entity.Invoice, today time.Time) *dto.AgingReportDTO {
	out := &dto.AgingReportDTO{AsOf: today.Format(dateLayout), Rows: []dto.AgingRowDTO{}}
	buckets := make(map[string]*dto.AgingBucketDTO, len(bucketOrder))
	for _, b := range bucketOrder {
		buckets[b] = &dto.AgingBucketDTO{Bucket: b}
	}
	for _, inv := range invoices {
		if inv.Status != entity.InvoiceStatusSent && inv.Status != entity.InvoiceStatusOverdue {
			continue
		}
		days := daysBetween(inv.DueDate, today)
		bucket := AgingBucket(days)
		out.Rows = append(out.Rows, dto.AgingRowDTO{
			InvoiceID:   inv.ID,
			ClientName:  inv.ClientName,
			DueDate:     inv.DueDate.Format(dateLayout),
			DaysOverdue: days,
			Bucket:      bucket,
			Total:       inv.Total,
		})
		buckets[bucket].Count++
		buckets[bucket].Total = buckets[bucket].Total.Add(inv.Total)
		out.Total = out.Total.Add(inv.Total)
	}
	sort.SliceStable(out.Rows, func(i, j int) bool { return out.Rows[i].DaysOverdue > out.Rows[j].DaysOverdue })
	for _, b := range bucketOrder {
		out.Buckets = append(out.Buckets, *buckets[b])
	}
	return out
}

// ProfitabilityReport ingresos (subtotal), costo (costo actual × cantidad) y utilidad por factura.
func (uc *ReportsUseCase) ProfitabilityReport(ctx context.Context, r Range) (*dto.ProfitabilityReportDTO, error) {
	s, err := loadSnapshot(ctx, uc.tx)
	if err != nil {
		return nil, err
	}
	return ProfitabilityReport(invoicesIn(s.invoices, r), s.products, r), nil
}

func marginPct(profit, revenue decimal.Decimal) decimal.Decimal {
	if revenue.IsZero() {
		return decimal.Zero
	}
	return profit.Div(revenue).Mul(hundred).Round(2)
}

// ProfitabilityReport cálculo puro. Un producto sin costo o eliminado aporta costo 0.
func ProfitabilityReport(invoices []*entity.Invoice, products map[string]*entity.Product, r Range) *dto.ProfitabilityReportDTO {
	out := &dto.ProfitabilityReportDTO{Period: r.Period(), Rows: make([]dto.ProfitabilityRowDTO, 0, len(invoices))}
	for _, inv := range invoices {
		var cost decimal.Decimal
		for _, line := range inv.LineItems {
			if p, ok := products[line.ProductID]; ok {
				cost = cost.Add(p.CostOrZero().Mul(line.Quantity))
			}
		}
		profit := inv.Subtotal.Sub(cost)
		out.Rows = append(out.Rows, dto.ProfitabilityRowDTO{
			InvoiceID:  inv.ID,
			ClientName: inv.ClientName,
			Revenue:    inv.Subtotal,
			Cost:       cost,
			Profit:     profit,
			MarginPct:  marginPct(profit, inv.Subtotal),
		})
		out.TotalRevenue = out.TotalRevenue.Add(inv.Subtotal)
		out.TotalCost = out.TotalCost.Add(cost)
	}
	out.TotalProfit = out.TotalRevenue.Sub(out.TotalCost)
	out.MarginPct = marginPct(out.TotalProfit, out.TotalRevenue)
	sort.SliceStable(out.Rows, func(i, j int) bool { return out.Rows[i].Profit.GreaterThan(out.Rows[j].Profit) })
	return out
}

// ProductAnalysis unidades vendidas e ingresos por producto en el rango.
func (uc *ReportsUseCase) ProductAnalysis(ctx context.Context, r Range) (*dto.ProductAnalysisDTO, error) {
	s, err := loadSnapshot(ctx, uc.tx)
	if err != nil {
		return nil, err
	}
	return &dto.ProductAnalysisDTO{Period: r.Period(), Products: productSales(invoicesIn(s.invoices, r))}, nil
}

// productSales agrupa las líneas por producto, ordenado por ingresos descendente.
func productSales(invoices []*entity.Invoice) []dto.ProductSalesDTO {
	out := []dto.ProductSalesDTO{}
	idx := map[string]int{}
	for _, inv := range invoices {
		for _, line := range inv.LineItems {
			i, ok := idx[line.ProductID]
			if !ok {
				i = len(out)
				idx[line.ProductID] = i
				out = append(out, dto.ProductSalesDTO{ProductID: line.ProductID, ProductName: line.ProductName})
			}
			out[i].UnitsSold = out[i].UnitsSold.Add(line.Quantity)
			out[i].Revenue = out[i].Revenue.Add(line.Total)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Revenue.GreaterThan(out[j].Revenue) })
	return out
}

// WithholdingCertificate certificado anual de retenciones de un cliente: facturas del año
// con retención en la fuente o ICA.
func (uc *ReportsUseCase) WithholdingCertificate(ctx context.Context, clientID string, year int) (*dto.WithholdingCertificateDTO, error) {
	if clientID == "" || year < 1900 {
		return nil, fmt.Errorf("%w: cliente y año requeridos", domain.ErrInvalidInput)
	}
	s, err := loadSnapshot(ctx, uc.tx)
	if err != nil {
		return nil, err
	}
	var client *entity.Client
	for _, c := range s.clients {
		if c.ID == clientID {
			client = c
			break
		}
	}
	if client == nil {
		return nil, fmt.Errorf("%w: cliente %s", domain.ErrNotFound, clientID)
	}
	out := &dto.WithholdingCertificateDTO{
		Year:           year,
		ClientID:       client.ID,
		ClientName:     client.Name,
		ClientIDNumber: client.IDNumber,
		Rows:           []dto.WithholdingRowDTO{},
	}
	if s.company != nil {
		out.CompanyName = s.company.Name
		out.CompanyNIT = s.company.NIT
		out.CompanyCity = s.company.City
	}
	for _, inv := range s.invoices {
		if inv.ClientID != clientID || inv.IssueDate.Year() != year {
			continue
		}
		if !inv.Retention().IsPositive() && !inv.ICA().IsPositive() {
			continue
		}
		base, ret, ica := withholdings(inv)
		out.Rows = append(out.Rows, dto.WithholdingRowDTO{
			InvoiceID: inv.ID,
			IssueDate: inv.IssueDate.Format(dateLayout),
			Base:      base,
			Retention: ret,
			ICA:       ica,
		})
		out.TotalBase = out.TotalBase.Add(base)
		out.TotalRetention = out.TotalRetention.Add(ret)
		out.TotalICA = out.TotalICA.Add(ica)
	}
	return out, nil
}
