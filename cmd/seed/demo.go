package main

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/jhoicas/Facturacion-api/internal/application/dto"
	"github.com/jhoicas/Facturacion-api/internal/domain/entity"
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Carga una empresa, clientes, productos y documentos de ejemplo",
	Long: `Carga datos de demostración. Si ya hay clientes registrados no hace nada,
salvo que se indique --force.`,
	RunE: runDemo,
}

func init() {
	rootCmd.AddCommand(demoCmd)
	demoCmd.Flags().Bool("force", false, "Cargar aunque ya existan clientes")
}

func runDemo(cmd *cobra.Command, _ []string) error {
	force, _ := cmd.Flags().GetBool("force")

	cfg, log, err := loadConfig()
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	a, err := openApp(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer a.close()

	existing, err := a.clients.List(ctx, "", dto.PageRequest{Limit: 1})
	if err != nil {
		return err
	}
	if existing.Page.Total > 0 && !force {
		log.Warn().Int("clients", existing.Page.Total).Msg("ya hay datos; use --force para cargar de todos modos")
		return nil
	}

	if err := seedCompany(ctx, a); err != nil {
		return err
	}
	clientIDs, err := seedClients(ctx, a)
	if err != nil {
		return err
	}
	productIDs, err := seedProducts(ctx, a)
	if err != nil {
		return err
	}
	if err := seedDocuments(ctx, a, clientIDs, productIDs); err != nil {
		return err
	}
	log.Info().
		Int("clients", len(clientIDs)).
		Int("products", len(productIDs)).
		Msg("datos de demostración cargados")
	return nil
}

func seedCompany(ctx context.Context, a *app) error {
	if _, err := a.settings.UpdateCompany(ctx, dto.CompanyRequest{
		Name:                   "Ferretería El Tornillo S.A.S.",
		NIT:                    "900.373.115-3",
		FiscalResponsibilities: []string{"O-13", "O-15"},
		Address:                "Cra 45 # 12-30",
		City:                   "Medellín",
		Phone:                  "604 444 1234",
		Email:                  "facturacion@eltornillo.co",
		ShowDianInfoInPDF:      true,
	}); err != nil {
		return fmt.Errorf("empresa: %w", err)
	}
	if _, err := a.settings.UpdateResolution(ctx, dto.ResolutionRequest{
		Number:    "18764000001234",
		Date:      time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
		Prefix:    "FVC",
		Validity:  "24 meses",
		RangeFrom: 1,
		RangeTo:   5000,
	}); err != nil {
		return fmt.Errorf("resolución: %w", err)
	}
	return nil
}

func seedClients(ctx context.Context, a *app) ([]string, error) {
	reqs := []dto.ClientRequest{
		{Name: "Constructora Andina S.A.S.", IDType: entity.IDTypeNIT, IDNumber: "900.123.456-8", Address: "Cl 10 # 43-20", Email: "compras@andina.co", FiscalResponsibilities: []string{"O-13"}},
		{Name: "María Fernanda Gómez", IDType: entity.IDTypeCedula, IDNumber: "43.876.543", Phone: "300 555 1122"},
		{Name: "Obras y Acabados Ltda.", IDType: entity.IDTypeNIT, IDNumber: "811.045.678-9", Email: "pagos@obrasyacabados.co"},
	}
	ids := make([]string, 0, len(reqs))
	for _, r := range reqs {
		out, err := a.clients.Create(ctx, r)
		if err != nil {
			return nil, fmt.Errorf("cliente %s: %w", r.Name, err)
		}
		ids = append(ids, out.ID)
	}
	return ids, nil
}

func seedProducts(ctx context.Context, a *app) ([]string, error) {
	cost := func(v int64) *decimal.Decimal { d := decimal.NewFromInt(v); return &d }
	reqs := []dto.CreateProductRequest{
		{SKU: "TOR-001", Name: "Tornillo drywall 6x1 (caja x100)", Price: decimal.NewFromInt(18000), Cost: cost(11000), TaxRate: decimal.NewFromInt(19), Type: entity.ProductTypeGood, InitialStock: decimal.NewFromInt(120)},
		{SKU: "CEM-050", Name: "Cemento gris 50 kg", Price: decimal.NewFromInt(32000), Cost: cost(26500), TaxRate: decimal.NewFromInt(19), Type: entity.ProductTypeGood, InitialStock: decimal.NewFromInt(40)},
		{SKU: "GUA-010", Name: "Guantes de nitrilo (par)", Price: decimal.NewFromInt(4500), Cost: cost(2100), TaxRate: decimal.NewFromInt(5), Type: entity.ProductTypeGood, InitialStock: decimal.NewFromInt(8)},
		{SKU: "SRV-INST", Name: "Instalación por hora", Price: decimal.NewFromInt(45000), TaxRate: decimal.NewFromInt(19), Type: entity.ProductTypeService},
	}
	ids := make([]string, 0, len(reqs))
	for _, r := range reqs {
		out, err := a.products.Create(ctx, r)
		if err != nil {
			return nil, fmt.Errorf("producto %s: %w", r.SKU, err)
		}
		ids = append(ids, out.ID)
	}
	return ids, nil
}

func seedDocuments(ctx context.Context, a *app, clients, products []string) error {
	qty := decimal.NewFromInt

	paid, err := a.docs.CreateInvoice(ctx, dto.CreateInvoiceRequest{
		ClientID: clients[0],
		Items: []dto.LineItemRequest{
			{ProductID: products[0], Quantity: qty(10)},
			{ProductID: products[1], Quantity: qty(5)},
		},
		PaymentForm: entity.PaymentFormCash,
	})
	if err != nil {
		return fmt.Errorf("factura contado: %w", err)
	}
	if _, err := a.docs.UpdateInvoiceStatus(ctx, paid.ID, string(entity.InvoiceStatusSent)); err != nil {
		return err
	}
	if _, err := a.docs.UpdateInvoiceStatus(ctx, paid.ID, string(entity.InvoiceStatusPaid)); err != nil {
		return err
	}

	credit, err := a.docs.CreateInvoice(ctx, dto.CreateInvoiceRequest{
		ClientID: clients[2],
		Items: []dto.LineItemRequest{
			{ProductID: products[1], Quantity: qty(12)},
			{ProductID: products[3], Quantity: qty(4)},
		},
		PaymentForm: entity.PaymentFormCredit,
		Notes:       "Obra calle 80",
	})
	if err != nil {
		return fmt.Errorf("factura crédito: %w", err)
	}
	if _, err := a.docs.UpdateInvoiceStatus(ctx, credit.ID, string(entity.InvoiceStatusSent)); err != nil {
		return err
	}

	if _, err := a.docs.CreateQuote(ctx, dto.CreateQuoteRequest{
		ClientID: clients[1],
		Items: []dto.LineItemRequest{
			{ProductID: products[2], Quantity: qty(20)},
			{ProductID: products[3], Quantity: qty(2)},
		},
		DiscountType:  entity.DiscountTypePercentage,
		DiscountValue: decimal.NewFromInt(10),
	}); err != nil {
		return fmt.Errorf("cotización: %w", err)
	}
	return nil
}
