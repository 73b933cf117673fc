package repository

import (
	"context"
	"encoding/json"
	"fmt"
)

// Nombres de los slots: cada colección se guarda completa en un slot.
const (
	SlotClients           = "clients"
	SlotProducts          = "products"
	SlotStockMovements    = "stockMovements"
	SlotInvoices          = "invoices"
	SlotQuotes            = "quotes"
	SlotCreditNotes       = "creditNotes"
	SlotExpenses          = "expenses"
	SlotExpenseCategories = "expenseCategories"
	SlotCompanyInfo       = "companyInfo"
	SlotDianResolution    = "dianResolution"
	SlotUserAccounts      = "userAccounts"
	SlotConnectionLogs    = "connectionLogs"
	SlotFaqItems          = "faqItems"
	SlotSupportTickets    = "supportTickets"
	SlotSequences         = "sequences"
)

// AllSlots lista los slots conocidos (orden estable, usado por el backup).
var AllSlots = []string{
	SlotClients, SlotProducts, SlotStockMovements, SlotInvoices, SlotQuotes, SlotCreditNotes,
	SlotExpenses, SlotExpenseCategories, SlotCompanyInfo, SlotDianResolution, SlotUserAccounts,
	SlotConnectionLogs, SlotFaqItems, SlotSupportTickets, SlotSequences,
}

// SlotStore almacén clave/valor por slot con nombre. Cada escritura reemplaza el slot completo;
// no hay actualizaciones parciales ni versionado de esquema.
type SlotStore interface {
	// Load devuelve el contenido del slot y false si no existe.
	Load(ctx context.Context, slot string) ([]byte, bool, error)
	// SaveAll reemplaza atómicamente todos los slots indicados.
	SaveAll(ctx context.Context, slots map[string][]byte) error
	// Slots devuelve una copia de todos los slots guardados.
	Slots(ctx context.Context) (map[string][]byte, error)
}

// LoadSlot lee y decodifica un slot; si está vacío o no existe devuelve def.
func LoadSlot[T any](ctx context.Context, store SlotStore, slot string, def T) (T, error) {
	raw, ok, err := store.Load(ctx, slot)
	if err != nil {
		return def, fmt.Errorf("load slot %s: %w", slot, err)
	}
	if !ok || len(raw) == 0 {
		return def, nil
	}
	var out T
	if err := json.Unmarshal(raw, &out); err != nil {
		return def, fmt.Errorf("decode slot %s: %w", slot, err)
	}
	return out, nil
}

// SaveSlot codifica v y lo guarda en el slot.
func SaveSlot(ctx context.Context, store SlotStore, slot string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode slot %s: %w", slot, err)
	}
	return store.SaveAll(ctx, map[string][]byte{slot: raw})
}
