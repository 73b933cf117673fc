// @title           Facturación API
// @version         1.0
// @description     Facturación, cotizaciones, notas crédito/débito, kardex y reportes.
// @BasePath        /
// @securityDefinitions.apikey Bearer
// @in              header
// @name            Authorization
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/Facturacion-api/docs"
	appanalytics "github.com/jhoicas/Facturacion-api/internal/application/analytics"
	"github.com/jhoicas/Facturacion-api/internal/application/auth"
	"github.com/jhoicas/Facturacion-api/internal/application/billing"
	"github.com/jhoicas/Facturacion-api/internal/application/expenses"
	"github.com/jhoicas/Facturacion-api/internal/application/inventory"
	"github.com/jhoicas/Facturacion-api/internal/application/settings"
	"github.com/jhoicas/Facturacion-api/internal/application/support"
	rules "github.com/jhoicas/Facturacion-api/internal/domain/billing"
	"github.com/jhoicas/Facturacion-api/internal/domain/repository"
	"github.com/jhoicas/Facturacion-api/internal/domain/sequence"
	infradian "github.com/jhoicas/Facturacion-api/internal/infrastructure/dian"
	"github.com/jhoicas/Facturacion-api/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/Facturacion-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Facturacion-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Facturacion-api/internal/infrastructure/slots"
	httpRouter "github.com/jhoicas/Facturacion-api/internal/interfaces/http"
	"github.com/jhoicas/Facturacion-api/pkg/config"
	"github.com/jhoicas/Facturacion-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.Storage.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()

	var store repository.SlotStore
	switch cfg.Storage.Driver {
	case config.StoragePostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		if err := postgres.Migrate(ctx, pool); err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
		store = postgres.NewSlotStore(pool)
	default:
		log.Warn().Msg("almacenamiento en memoria: los datos se pierden al reiniciar")
		store = memory.NewSlotStore()
	}

	var seqOpts []sequence.Option
	if cfg.IDs.EntityStrategy == "snowflake" {
		counter, err := sequence.NewSnowflakeCounter(int64(cfg.IDs.NodeID))
		if err != nil {
			log.Fatal().Err(err).Msg("ids snowflake")
		}
		seqOpts = append(seqOpts, sequence.WithEntityCounter(counter))
	}
	txRunner := slots.NewTxRunner(store, seqOpts...)

	coder, err := infradian.NewAuthorizationCoder(cfg.Billing.AuthorizationMode, cfg.DIAN.TechnicalKey, cfg.DIAN.Environment)
	if err != nil {
		log.Fatal().Err(err).Msg("código de autorización")
	}

	ledgerUC := inventory.NewLedgerUseCase(txRunner, inventory.LedgerOptions{
		AllowNegativeStock: cfg.Inventory.AllowNegativeStock,
	}, log)
	threshold := cfg.Inventory.DefaultLowStockThreshold
	productUC := inventory.NewProductUseCase(txRunner, ledgerUC, threshold)
	replenishmentUC := inventory.NewReplenishmentUseCase(txRunner, threshold)
	clientUC := billing.NewClientUseCase(txRunner, log)

	documentUC := billing.NewDocumentUseCase(txRunner, ledgerUC, coder, billing.DocumentOptions{
		StatusPolicy: rules.ParseStatusPolicy(cfg.Billing.StatusPolicy),
		CreditDays:   cfg.Billing.CreditDays,
	}, log)
	// PDF y XML: representación gráfica y documento UBL
	renderUC := billing.NewRenderUseCase(documentUC, infrapdf.NewMarotoPDFGenerator(), infradian.NewXMLBuilderService())

	authUC := auth.NewAuthUseCase(txRunner, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, log)
	if cfg.Admin.Email != "" {
		created, err := authUC.EnsureAdmin(ctx, cfg.Admin.Email, cfg.Admin.Password)
		if err != nil {
			log.Fatal().Err(err).Msg("usuario administrador")
		}
		if created {
			log.Info().Str("email", cfg.Admin.Email).Msg("administrador inicial creado")
		}
	}

	supportUC := support.NewUseCase(txRunner)
	if err := supportUC.SeedFAQ(ctx); err != nil {
		log.Error().Err(err).Msg("preguntas frecuentes")
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log.WithComponent("http")))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath:    "/",
		FileContent: []byte(docs.SwaggerInfo.ReadDoc()),
		Path:        "docs",
		Title:       "Facturación API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:          authUC,
		ClientUC:        clientUC,
		ProductUC:       productUC,
		LedgerUC:        ledgerUC,
		ReplenishmentUC: replenishmentUC,
		DocumentUC:      documentUC,
		RenderUC:        renderUC,
		ExpenseUC:       expenses.NewUseCase(txRunner),
		ReportsUC:       appanalytics.NewReportsUseCase(txRunner),
		DashboardUC:     appanalytics.NewDashboardUseCase(txRunner),
		SettingsUC:      settings.NewUseCase(txRunner, txRunner, clientUC, productUC, log),
		SupportUC:       supportUC,
		JWTSecret:       cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
