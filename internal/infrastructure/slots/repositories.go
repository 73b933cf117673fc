package slots

import (
	"context"
	"strings"

	"github.com/jhoicas/Facturacion-api/internal/domain"
	"github.com/jhoicas/Facturacion-api/internal/domain/entity"
	"github.com/jhoicas/Facturacion-api/internal/domain/repository"
)

var (
	_ repository.ClientRepository          = (*ClientRepo)(nil)
	_ repository.ProductRepository         = (*ProductRepo)(nil)
	_ repository.StockMovementRepository   = (*StockMovementRepo)(nil)
	_ repository.InvoiceRepository         = (*InvoiceRepo)(nil)
	_ repository.QuoteRepository           = (*QuoteRepo)(nil)
	_ repository.CreditNoteRepository      = (*CreditNoteRepo)(nil)
	_ repository.ExpenseRepository         = (*ExpenseRepo)(nil)
	_ repository.ExpenseCategoryRepository = (*ExpenseCategoryRepo)(nil)
	_ repository.SettingsRepository        = (*SettingsRepo)(nil)
	_ repository.UserRepository            = (*UserRepo)(nil)
	_ repository.ConnectionLogRepository   = (*ConnectionLogRepo)(nil)
	_ repository.SupportRepository         = (*SupportRepo)(nil)
)

// ClientRepo clientes sobre el slot "clients".
type ClientRepo struct{ c collection[entity.Client] }

func (r *ClientRepo) Create(ctx context.Context, v *entity.Client) error {
	return r.c.insert(ctx, v)
}

func (r *ClientRepo) GetByID(ctx context.Context, id string) (*entity.Client, error) {
	return r.c.get(ctx, id)
}

func (r *ClientRepo) Update(ctx context.Context, v *entity.Client) error {
	return r.c.replace(ctx, v)
}

func (r *ClientRepo) Delete(ctx context.Context, id string) error {
	return r.c.remove(ctx, id)
}

func (r *ClientRepo) List(ctx context.Context) ([]*entity.Client, error) {
	return r.c.all(ctx)
}

// ProductRepo productos sobre el slot "products".
type ProductRepo struct{ c collection[entity.Product] }

func (r *ProductRepo) Create(ctx context.Context, v *entity.Product) error {
	return r.c.insert(ctx, v)
}

func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	return r.c.get(ctx, id)
}

// GetBySKU búsqueda sin distinguir mayúsculas; nil si no existe.
func (r *ProductRepo) GetBySKU(ctx context.Context, sku string) (*entity.Product, error) {
	return r.c.find(ctx, func(p *entity.Product) bool { return strings.EqualFold(p.SKU, sku) })
}

func (r *ProductRepo) Update(ctx context.Context, v *entity.Product) error {
	return r.c.replace(ctx, v)
}

func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	return r.c.remove(ctx, id)
}

func (r *ProductRepo) List(ctx context.Context) ([]*entity.Product, error) {
	return r.c.all(ctx)
}

// StockMovementRepo kardex sobre el slot "stockMovements". Solo inserción.
type StockMovementRepo struct{ c collection[entity.StockMovement] }

func (r *StockMovementRepo) Append(ctx context.Context, v *entity.StockMovement) error {
	return r.c.insert(ctx, v)
}

func (r *StockMovementRepo) List(ctx context.Context) ([]*entity.StockMovement, error) {
	return r.c.all(ctx)
}

func (r *StockMovementRepo) ListByProduct(ctx context.Context, productID string) ([]*entity.StockMovement, error) {
	all, err := r.c.all(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*entity.StockMovement, 0)
	for _, m := range all {
		if m.ProductID == productID {
			out = append(out, m)
		}
	}
	return out, nil
}

// InvoiceRepo facturas sobre el slot "invoices".
type InvoiceRepo struct{ c collection[entity.Invoice] }

func (r *InvoiceRepo) Create(ctx context.Context, v *entity.Invoice) error {
	return r.c.insert(ctx, v)
}

func (r *InvoiceRepo) GetByID(ctx context.Context, id string) (*entity.Invoice, error) {
	return r.c.get(ctx, id)
}

func (r *InvoiceRepo) Update(ctx context.Context, v *entity.Invoice) error {
	return r.c.replace(ctx, v)
}

func (r *InvoiceRepo) Delete(ctx context.Context, id string) error {
	return r.c.remove(ctx, id)
}

func (r *InvoiceRepo) List(ctx context.Context) ([]*entity.Invoice, error) {
	return r.c.all(ctx)
}

// QuoteRepo cotizaciones sobre el slot "quotes".
type QuoteRepo struct{ c collection[entity.Quote] }

func (r *QuoteRepo) Create(ctx context.Context, v *entity.Quote) error {
	return r.c.insert(ctx, v)
}

func (r *QuoteRepo) GetByID(ctx context.Context, id string) (*entity.Quote, error) {
	return r.c.get(ctx, id)
}

func (r *QuoteRepo) Update(ctx context.Context, v *entity.Quote) error {
	return r.c.replace(ctx, v)
}

func (r *QuoteRepo) Delete(ctx context.Context, id string) error {
	return r.c.remove(ctx, id)
}

func (r *QuoteRepo) List(ctx context.Context) ([]*entity.Quote, error) {
	return r.c.all(ctx)
}

// CreditNoteRepo notas sobre el slot "creditNotes".
type CreditNoteRepo struct{ c collection[entity.CreditNote] }

func (r *CreditNoteRepo) Create(ctx context.Context, v *entity.CreditNote) error {
	return r.c.insert(ctx, v)
}

func (r *CreditNoteRepo) GetByID(ctx context.Context, id string) (*entity.CreditNote, error) {
	return r.c.get(ctx, id)
}

func (r *CreditNoteRepo) Update(ctx context.Context, v *entity.CreditNote) error {
	return r.c.replace(ctx, v)
}

func (r *CreditNoteRepo) Delete(ctx context.Context, id string) error {
	return r.c.remove(ctx, id)
}

func (r *CreditNoteRepo) List(ctx context.Context) ([]*entity.CreditNote, error) {
	return r.c.all(ctx)
}

// ExpenseRepo gastos sobre el slot "expenses".
type ExpenseRepo struct{ c collection[entity.Expense] }

func (r *ExpenseRepo) Create(ctx context.Context, v *entity.Expense) error {
	return r.c.insert(ctx, v)
}

func (r *ExpenseRepo) GetByID(ctx context.Context, id string) (*entity.Expense, error) {
	return r.c.get(ctx, id)
}

func (r *ExpenseRepo) Update(ctx context.Context, v *entity.Expense) error {
	return r.c.replace(ctx, v)
}

func (r *ExpenseRepo) Delete(ctx context.Context, id string) error {
	return r.c.remove(ctx, id)
}

func (r *ExpenseRepo) List(ctx context.Context) ([]*entity.Expense, error) {
	return r.c.all(ctx)
}

// ExpenseCategoryRepo categorías sobre el slot "expenseCategories".
type ExpenseCategoryRepo struct{ c collection[entity.ExpenseCategory] }

func (r *ExpenseCategoryRepo) Create(ctx context.Context, v *entity.ExpenseCategory) error {
	return r.c.insert(ctx, v)
}

func (r *ExpenseCategoryRepo) GetByID(ctx context.Context, id string) (*entity.ExpenseCategory, error) {
	return r.c.get(ctx, id)
}

func (r *ExpenseCategoryRepo) Delete(ctx context.Context, id string) error {
	return r.c.remove(ctx, id)
}

func (r *ExpenseCategoryRepo) List(ctx context.Context) ([]*entity.ExpenseCategory, error) {
	return r.c.all(ctx)
}

// SettingsRepo registros únicos "companyInfo" y "dianResolution".
type SettingsRepo struct{ s *session }

func (r *SettingsRepo) GetCompany(ctx context.Context) (*entity.CompanyInfo, error) {
	p, err := slotValue[*entity.CompanyInfo](ctx, r.s, repository.SlotCompanyInfo)
	if err != nil || *p == nil {
		return nil, err
	}
	c := **p
	c.FiscalResponsibilities = append([]string(nil), c.FiscalResponsibilities...)
	return &c, nil
}

func (r *SettingsRepo) SaveCompany(ctx context.Context, info *entity.CompanyInfo) error {
	p, err := slotValue[*entity.CompanyInfo](ctx, r.s, repository.SlotCompanyInfo)
	if err != nil {
		return err
	}
	if err := r.s.touch(repository.SlotCompanyInfo); err != nil {
		return err
	}
	c := *info
	*p = &c
	return nil
}

func (r *SettingsRepo) GetResolution(ctx context.Context) (*entity.DianResolution, error) {
	p, err := slotValue[*entity.DianResolution](ctx, r.s, repository.SlotDianResolution)
	if err != nil || *p == nil {
		return nil, err
	}
	c := **p
	return &c, nil
}

func (r *SettingsRepo) SaveResolution(ctx context.Context, res *entity.DianResolution) error {
	p, err := slotValue[*entity.DianResolution](ctx, r.s, repository.SlotDianResolution)
	if err != nil {
		return err
	}
	if err := r.s.touch(repository.SlotDianResolution); err != nil {
		return err
	}
	c := *res
	*p = &c
	return nil
}

// UserRepo usuarios sobre el slot "userAccounts".
type UserRepo struct{ c collection[entity.UserAccount] }

func (r *UserRepo) Create(ctx context.Context, v *entity.UserAccount) error {
	existing, err := r.GetByEmail(ctx, v.Email)
	if err != nil {
		return err
	}
	if existing != nil {
		return domain.ErrEmailAlreadyExists
	}
	return r.c.insert(ctx, v)
}

func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.UserAccount, error) {
	return r.c.get(ctx, id)
}

// GetByEmail búsqueda sin distinguir mayúsculas; nil si no existe.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*entity.UserAccount, error) {
	return r.c.find(ctx, func(u *entity.UserAccount) bool { return strings.EqualFold(u.Email, email) })
}

func (r *UserRepo) Update(ctx context.Context, v *entity.UserAccount) error {
	return r.c.replace(ctx, v)
}

func (r *UserRepo) List(ctx context.Context) ([]*entity.UserAccount, error) {
	return r.c.all(ctx)
}

// ConnectionLogRepo registro de conexiones, el más reciente primero.
type ConnectionLogRepo struct{ c collection[entity.ConnectionLog] }

// Prepend agrega al inicio y conserva como máximo keep entradas (keep <= 0 no recorta).
func (r *ConnectionLogRepo) Prepend(ctx context.Context, entry *entity.ConnectionLog, keep int) error {
	all, err := r.c.all(ctx)
	if err != nil {
		return err
	}
	next := append([]*entity.ConnectionLog{entry}, all...)
	if keep > 0 && len(next) > keep {
		next = next[:keep]
	}
	return r.c.setAll(ctx, next)
}

// List devuelve hasta limit entradas (limit <= 0 devuelve todas).
func (r *ConnectionLogRepo) List(ctx context.Context, limit int) ([]*entity.ConnectionLog, error) {
	all, err := r.c.all(ctx)
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

// SupportRepo tickets ("supportTickets") y preguntas frecuentes ("faqItems").
type SupportRepo struct {
	tickets collection[entity.SupportTicket]
	faq     collection[entity.FaqItem]
}

func (r *SupportRepo) CreateTicket(ctx context.Context, t *entity.SupportTicket) error {
	return r.tickets.insert(ctx, t)
}

func (r *SupportRepo) GetTicket(ctx context.Context, id string) (*entity.SupportTicket, error) {
	return r.tickets.get(ctx, id)
}

func (r *SupportRepo) UpdateTicket(ctx context.Context, t *entity.SupportTicket) error {
	return r.tickets.replace(ctx, t)
}

func (r *SupportRepo) ListTickets(ctx context.Context) ([]*entity.SupportTicket, error) {
	return r.tickets.all(ctx)
}

func (r *SupportRepo) ListFAQ(ctx context.Context) ([]*entity.FaqItem, error) {
	return r.faq.all(ctx)
}

func (r *SupportRepo) SaveFAQ(ctx context.Context, items []*entity.FaqItem) error {
	return r.faq.setAll(ctx, items)
}
