package repository

import "github.com/jhoicas/Facturacion-api/internal/domain/sequence"

// Set agrupa los repositorios atados a una misma unidad de trabajo.
// Todo lo que se escriba a través de un Set se confirma junto o no se confirma.
type Set struct {
	Clients           ClientRepository
	Products          ProductRepository
	Movements         StockMovementRepository
	Invoices          InvoiceRepository
	Quotes            QuoteRepository
	CreditNotes       CreditNoteRepository
	Expenses          ExpenseRepository
	ExpenseCategories ExpenseCategoryRepository
	Settings          SettingsRepository
	Users             UserRepository
	ConnectionLogs    ConnectionLogRepository
	Support           SupportRepository
	IDs               *sequence.Assigner
}
