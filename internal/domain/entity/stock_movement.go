package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento del kardex.
const (
	MovementTypeEntrada = "Entrada" // ingreso manual
	MovementTypeVenta   = "Venta"   // salida generada por una factura
	MovementTypeAjuste  = "Ajuste"  // corrección a un nivel absoluto
)

// StockMovement registro inmutable del kardex. Quantity es el delta con signo.
type StockMovement struct {
	ID              string          `json:"id"`
	ProductID       string          `json:"productId"`
	ProductName     string          `json:"productName"`
	Date            time.Time       `json:"date"`
	Type            string          `json:"type"`
	Quantity        decimal.Decimal `json:"quantity"`
	Notes           string          `json:"notes"`
	RelatedDocument string          `json:"relatedDocument,omitempty"`
}
