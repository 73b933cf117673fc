package slots

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/jhoicas/Facturacion-api/internal/domain/entity"
	"github.com/jhoicas/Facturacion-api/internal/domain/repository"
	"github.com/jhoicas/Facturacion-api/internal/domain/sequence"
)

// TxRunner ejecuta callbacks como unidad de trabajo: un único escritor a la vez, lectores en
// paralelo. Si el callback falla no se escribe nada.
type TxRunner struct {
	store repository.SlotStore
	mu    sync.RWMutex
	opts  []sequence.Option
}

// NewTxRunner construye el runner sobre el almacén. opts configura el asignador de ids de cada sesión.
func NewTxRunner(store repository.SlotStore, opts ...sequence.Option) *TxRunner {
	return &TxRunner{store: store, opts: opts}
}

// Run ejecuta fn con repos atados a una sesión y confirma los slots modificados.
func (r *TxRunner) Run(ctx context.Context, fn func(repos repository.Set) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	s := newSession(r.store, false)
	if err := fn(r.repos(s)); err != nil {
		return err
	}
	return s.commit(ctx)
}

// View ejecuta fn en solo lectura; cualquier escritura devuelve error.
func (r *TxRunner) View(ctx context.Context, fn func(repos repository.Set) error) error {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return fn(r.repos(newSession(r.store, true)))
}

// Export copia de todos los slots como JSON, para el backup.
func (r *TxRunner) Export(ctx context.Context) (map[string]json.RawMessage, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	raw, err := r.store.Slots(ctx)
	if err != nil {
		return nil, fmt.Errorf("export slots: %w", err)
	}
	out := make(map[string]json.RawMessage, len(raw))
	for name, payload := range raw {
		out[name] = json.RawMessage(payload)
	}
	return out, nil
}

func (r *TxRunner) repos(s *session) repository.Set {
	return repository.Set{
		Clients: &ClientRepo{c: collection[entity.Client]{
			s: s, slot: repository.SlotClients, id: func(v *entity.Client) string { return v.ID },
		}},
		Products: &ProductRepo{c: collection[entity.Product]{
			s: s, slot: repository.SlotProducts, id: func(v *entity.Product) string { return v.ID },
		}},
		Movements: &StockMovementRepo{c: collection[entity.StockMovement]{
			s: s, slot: repository.SlotStockMovements, id: func(v *entity.StockMovement) string { return v.ID },
		}},
		Invoices: &InvoiceRepo{c: collection[entity.Invoice]{
			s: s, slot: repository.SlotInvoices, id: func(v *entity.Invoice) string { return v.ID },
			clone: func(v entity.Invoice) entity.Invoice { return *v.Clone() },
		}},
		Quotes: &QuoteRepo{c: collection[entity.Quote]{
			s: s, slot: repository.SlotQuotes, id: func(v *entity.Quote) string { return v.ID },
			clone: func(v entity.Quote) entity.Quote { return *v.Clone() },
		}},
		CreditNotes: &CreditNoteRepo{c: collection[entity.CreditNote]{
			s: s, slot: repository.SlotCreditNotes, id: func(v *entity.CreditNote) string { return v.ID },
			clone: func(v entity.CreditNote) entity.CreditNote { return *v.Clone() },
		}},
		Expenses: &ExpenseRepo{c: collection[entity.Expense]{
			s: s, slot: repository.SlotExpenses, id: func(v *entity.Expense) string { return v.ID },
		}},
		ExpenseCategories: &ExpenseCategoryRepo{c: collection[entity.ExpenseCategory]{
			s: s, slot: repository.SlotExpenseCategories, id: func(v *entity.ExpenseCategory) string { return v.ID },
		}},
		Settings: &SettingsRepo{s: s},
		Users: &UserRepo{c: collection[entity.UserAccount]{
			s: s, slot: repository.SlotUserAccounts, id: func(v *entity.UserAccount) string { return v.ID },
		}},
		ConnectionLogs: &ConnectionLogRepo{c: collection[entity.ConnectionLog]{
			s: s, slot: repository.SlotConnectionLogs, id: func(v *entity.ConnectionLog) string { return v.ID },
		}},
		Support: &SupportRepo{
			tickets: collection[entity.SupportTicket]{
				s: s, slot: repository.SlotSupportTickets, id: func(v *entity.SupportTicket) string { return v.ID },
			},
			faq: collection[entity.FaqItem]{
				s: s, slot: repository.SlotFaqItems, id: func(v *entity.FaqItem) string { return v.ID },
			},
		},
		IDs: sequence.NewAssigner(&slotCounter{s: s}, r.opts...),
	}
}
