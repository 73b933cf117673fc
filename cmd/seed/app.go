package main

import (
	"context"
	"fmt"

	"github.com/jhoicas/Facturacion-api/internal/application/billing"
	"github.com/jhoicas/Facturacion-api/internal/application/inventory"
	"github.com/jhoicas/Facturacion-api/internal/application/settings"
	rules "github.com/jhoicas/Facturacion-api/internal/domain/billing"
	infradian "github.com/jhoicas/Facturacion-api/internal/infrastructure/dian"
	"github.com/jhoicas/Facturacion-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Facturacion-api/internal/infrastructure/slots"
	"github.com/jhoicas/Facturacion-api/pkg/config"
	"github.com/jhoicas/Facturacion-api/pkg/logger"
)

// app casos de uso que necesitan los comandos.
type app struct {
	clients  *billing.ClientUseCase
	products *inventory.ProductUseCase
	docs     *billing.DocumentUseCase
	settings *settings.UseCase
	close    func()
}

// openApp conecta a PostgreSQL, aplica migraciones y arma los casos de uso.
func openApp(ctx context.Context, cfg *config.Config, log *logger.Logger) (*app, error) {
	if cfg.Storage.Driver != config.StoragePostgres {
		return nil, fmt.Errorf("seed requiere STORAGE_DRIVER=%s (actual: %q)", config.StoragePostgres, cfg.Storage.Driver)
	}
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
	}
	if err := postgres.Migrate(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}
	tx := slots.NewTxRunner(postgres.NewSlotStore(pool))

	coder, err := infradian.NewAuthorizationCoder(cfg.Billing.AuthorizationMode, cfg.DIAN.TechnicalKey, cfg.DIAN.Environment)
	if err != nil {
		pool.Close()
		return nil, err
	}
	ledger := inventory.NewLedgerUseCase(tx, inventory.LedgerOptions{AllowNegativeStock: cfg.Inventory.AllowNegativeStock}, log)
	clients := billing.NewClientUseCase(tx, log)
	products := inventory.NewProductUseCase(tx, ledger, cfg.Inventory.DefaultLowStockThreshold)
	docs := billing.NewDocumentUseCase(tx, ledger, coder, billing.DocumentOptions{
		StatusPolicy: rules.ParseStatusPolicy(cfg.Billing.StatusPolicy),
		CreditDays:   cfg.Billing.CreditDays,
	}, log)

	return &app{
		clients:  clients,
		products: products,
		docs:     docs,
		settings: settings.NewUseCase(tx, tx, clients, products, log),
		close:    pool.Close,
	}, nil
}
