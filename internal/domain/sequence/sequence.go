// Package sequence asigna identificadores legibles {PREFIJO}-{N} por tipo de registro.
//
// Política única para todos los tipos: N = max(marca alta guardada, mayor sufijo existente) + 1.
// La marca alta vive en un Counter inyectable, así un número liberado por un borrado no se
// reutiliza nunca.
package sequence

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

// Kind tipo de registro que recibe identificador.
type Kind string

const (
	KindInvoice         Kind = "invoice"
	KindQuote           Kind = "quote"
	KindCreditNote      Kind = "creditNote"
	KindClient          Kind = "client"
	KindProduct         Kind = "product"
	KindStockMovement   Kind = "stockMovement"
	KindExpense         Kind = "expense"
	KindExpenseCategory Kind = "expenseCategory"
	KindSupportTicket   Kind = "supportTicket"
	KindConnectionLog   Kind = "connectionLog"
)

var prefixes = map[Kind]string{
	KindInvoice:         "FVC",
	KindQuote:           "COT",
	KindCreditNote:      "NC",
	KindClient:          "CL",
	KindProduct:         "PROD",
	KindStockMovement:   "MOV",
	KindExpense:         "EXP",
	KindExpenseCategory: "CAT",
	KindSupportTicket:   "TKT",
	KindConnectionLog:   "log",
}

// Prefix devuelve el prefijo visible del tipo.
func (k Kind) Prefix() string {
	if p, ok := prefixes[k]; ok {
		return p
	}
	return strings.ToUpper(string(k))
}

// IsDocument indica si el tipo es un documento numerado (factura, cotización, nota, ticket).
// Los documentos siempre usan la secuencia, nunca la estrategia por tiempo.
func (k Kind) IsDocument() bool {
	switch k {
	case KindInvoice, KindQuote, KindCreditNote, KindSupportTicket:
		return true
	}
	return false
}

// Counter servicio de contador monotónico por tipo.
// Next devuelve max(guardado, floor) + 1 y lo deja guardado.
type Counter interface {
	Next(ctx context.Context, kind Kind, floor int64) (int64, error)
}

// Format arma el identificador {PREFIJO}-{N}.
func Format(prefix string, n int64) string {
	return prefix + "-" + strconv.FormatInt(n, 10)
}

// ParseSuffix extrae el número de un id con el prefijo dado. ok=false si el prefijo no coincide
// o el resto no es numérico.
func ParseSuffix(prefix, id string) (int64, bool) {
	rest, found := strings.CutPrefix(id, prefix+"-")
	if !found {
		return 0, false
	}
	n, err := strconv.ParseInt(rest, 10, 64)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// MaxSuffix mayor sufijo numérico entre ids; los que no se pueden leer cuentan como 0.
func MaxSuffix(prefix string, ids []string) int64 {
	var max int64
	for _, id := range ids {
		if n, ok := ParseSuffix(prefix, id); ok && n > max {
			max = n
		}
	}
	return max
}

// Assigner asigna identificadores. Los tipos de entidad pueden usar un contador distinto
// (por ejemplo uno basado en tiempo) con WithEntityCounter.
type Assigner struct {
	counter       Counter
	entityCounter Counter
}

// Option configura un Assigner.
type Option func(*Assigner)

// WithEntityCounter usa c para los tipos que no son documentos numerados.
func WithEntityCounter(c Counter) Option {
	return func(a *Assigner) { a.entityCounter = c }
}

// NewAssigner construye el asignador sobre el contador de secuencias.
func NewAssigner(counter Counter, opts ...Option) *Assigner {
	a := &Assigner{counter: counter}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// NextID devuelve el siguiente identificador del tipo dado los ids ya existentes.
func (a *Assigner) NextID(ctx context.Context, kind Kind, existing []string) (string, error) {
	prefix := kind.Prefix()
	floor := MaxSuffix(prefix, existing)
	c := a.counter
	if a.entityCounter != nil && !kind.IsDocument() {
		c = a.entityCounter
	}
	n, err := c.Next(ctx, kind, floor)
	if err != nil {
		return "", fmt.Errorf("sequence %s: %w", kind, err)
	}
	return Format(prefix, n), nil
}

// IDsOf extrae los identificadores de una colección.
func IDsOf[T any](items []T, id func(T) string) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, id(it))
	}
	return out
}
