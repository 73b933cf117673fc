package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/Facturacion-api/internal/application/analytics"
	"github.com/jhoicas/Facturacion-api/internal/application/auth"
	"github.com/jhoicas/Facturacion-api/internal/application/billing"
	"github.com/jhoicas/Facturacion-api/internal/application/expenses"
	"github.com/jhoicas/Facturacion-api/internal/application/inventory"
	"github.com/jhoicas/Facturacion-api/internal/application/settings"
	"github.com/jhoicas/Facturacion-api/internal/application/support"
	"github.com/jhoicas/Facturacion-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC          *auth.AuthUseCase
	ClientUC        *billing.ClientUseCase
	ProductUC       *inventory.ProductUseCase
	LedgerUC        *inventory.LedgerUseCase
	ReplenishmentUC *inventory.ReplenishmentUseCase
	DocumentUC      *billing.DocumentUseCase
	RenderUC        *billing.RenderUseCase
	ExpenseUC       *expenses.UseCase
	ReportsUC       *appanalytics.ReportsUseCase
	DashboardUC     *appanalytics.DashboardUseCase
	SettingsUC      *settings.UseCase
	SupportUC       *support.UseCase
	JWTSecret       string
	// Now reloj de los reportes y respaldos; nil usa time.Now.
	Now func() time.Time
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret, deps.AuthUC))
	adminOnly := RequireRole(entity.RoleAdmin)

	protected.Post("/auth/logout", authHandler.Logout)
	protected.Get("/auth/me", authHandler.Me)
	protected.Put("/auth/password", authHandler.ChangePassword)

	// Clients: el rol Usuario solo consulta
	clientHandler := NewClientHandler(deps.ClientUC)
	clients := protected.Group("/clients")
	clients.Get("/", clientHandler.List)
	clients.Get("/:id", clientHandler.GetByID)
	clients.Post("/", adminOnly, clientHandler.Create)
	clients.Put("/:id", adminOnly, clientHandler.Update)
	clients.Delete("/:id", adminOnly, clientHandler.Delete)

	// Products: el rol Usuario solo consulta
	productHandler := NewProductHandler(deps.ProductUC)
	products := protected.Group("/products")
	products.Get("/", productHandler.List)
	products.Get("/low-stock", productHandler.LowStock)
	products.Get("/:id", productHandler.GetByID)
	products.Post("/", adminOnly, productHandler.Create)
	products.Put("/:id", adminOnly, productHandler.Update)
	products.Delete("/:id", adminOnly, productHandler.Delete)

	// Inventory (kardex)
	inventoryHandler := NewInventoryHandler(deps.LedgerUC, deps.ReplenishmentUC, now)
	inv := protected.Group("/inventory")
	inv.Get("/movements", inventoryHandler.ListMovements)
	inv.Post("/entries", inventoryHandler.RegisterEntry)
	inv.Post("/adjustments", inventoryHandler.Adjust)
	inv.Get("/reconcile", inventoryHandler.Reconcile)
	inv.Get("/replenishment-list", inventoryHandler.GetReplenishmentList)

	// Invoices
	invoiceHandler := NewInvoiceHandler(deps.DocumentUC, deps.RenderUC)
	invoices := protected.Group("/invoices")
	invoices.Get("/", invoiceHandler.List)
	invoices.Post("/", invoiceHandler.Create)
	invoices.Get("/:id", invoiceHandler.GetByID)
	invoices.Delete("/:id", invoiceHandler.Delete)
	invoices.Patch("/:id/status", invoiceHandler.UpdateStatus)
	invoices.Post("/:id/duplicate", invoiceHandler.Duplicate)
	invoices.Get("/:id/pdf", invoiceHandler.GetPDF)
	invoices.Get("/:id/xml", invoiceHandler.GetXML)

	// Quotes
	quoteHandler := NewQuoteHandler(deps.DocumentUC, deps.RenderUC)
	quotes := protected.Group("/quotes")
	quotes.Get("/", quoteHandler.List)
	quotes.Post("/", quoteHandler.Create)
	quotes.Get("/:id", quoteHandler.GetByID)
	quotes.Delete("/:id", quoteHandler.Delete)
	quotes.Patch("/:id/status", quoteHandler.UpdateStatus)
	quotes.Post("/:id/convert", quoteHandler.Convert)
	quotes.Get("/:id/pdf", quoteHandler.GetPDF)

	// Credit / debit notes
	noteHandler := NewCreditNoteHandler(deps.DocumentUC, deps.RenderUC)
	notes := protected.Group("/credit-notes")
	notes.Get("/", noteHandler.List)
	notes.Post("/", noteHandler.Create)
	notes.Get("/:id", noteHandler.GetByID)
	notes.Delete("/:id", noteHandler.Delete)
	notes.Patch("/:id/status", noteHandler.UpdateStatus)
	notes.Get("/:id/pdf", noteHandler.GetPDF)

	// Expenses
	expenseHandler := NewExpenseHandler(deps.ExpenseUC)
	protected.Get("/expenses", expenseHandler.List)
	protected.Post("/expenses", expenseHandler.Create)
	protected.Put("/expenses/:id", expenseHandler.Update)
	protected.Delete("/expenses/:id", expenseHandler.Delete)
	protected.Get("/expense-categories", expenseHandler.ListCategories)
	protected.Post("/expense-categories", expenseHandler.CreateCategory)
	protected.Delete("/expense-categories/:id", expenseHandler.DeleteCategory)

	// Reports + dashboard
	reportHandler := NewReportHandler(deps.ReportsUC, deps.DashboardUC, now)
	reports := protected.Group("/reports")
	reports.Get("/sales", reportHandler.Sales)
	reports.Get("/tax", reportHandler.Tax)
	reports.Get("/aging", reportHandler.Aging)
	reports.Get("/profitability", reportHandler.Profitability)
	reports.Get("/products", reportHandler.Products)
	reports.Get("/withholding", reportHandler.Withholding)
	protected.Get("/dashboard", reportHandler.Dashboard)

	// Settings: lectura para todos, escritura solo Administrador
	settingsHandler := NewSettingsHandler(deps.SettingsUC, deps.AuthUC, now)
	st := protected.Group("/settings")
	st.Get("/company", settingsHandler.GetCompany)
	st.Put("/company", adminOnly, settingsHandler.UpdateCompany)
	st.Get("/resolution", settingsHandler.GetResolution)
	st.Put("/resolution", adminOnly, settingsHandler.UpdateResolution)
	st.Get("/backup", adminOnly, settingsHandler.Backup)
	st.Get("/users", adminOnly, settingsHandler.ListUsers)
	st.Post("/users", adminOnly, settingsHandler.CreateUser)
	st.Get("/connection-logs", adminOnly, settingsHandler.ConnectionLogs)
	st.Get("/templates/:kind", settingsHandler.Template)
	st.Post("/import/:kind", adminOnly, settingsHandler.Import)

	// Support
	supportHandler := NewSupportHandler(deps.SupportUC)
	protected.Get("/support/tickets", supportHandler.ListTickets)
	protected.Post("/support/tickets", supportHandler.CreateTicket)
	protected.Patch("/support/tickets/:id/status", supportHandler.UpdateTicketStatus)
	protected.Get("/support/faq", supportHandler.ListFAQ)
}
