package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de producto: solo los bienes físicos mueven inventario.
const (
	ProductTypeGood    = "product"
	ProductTypeService = "service"
)

// DefaultLowStockThreshold umbral de alerta cuando el producto no define uno.
const DefaultLowStockThreshold = 10

// Product representa un producto o servicio del catálogo.
// Stock solo cambia a través del kardex (movimientos); ningún documento lo escribe directamente.
type Product struct {
	ID                string           `json:"id"`
	SKU               string           `json:"sku"`
	Name              string           `json:"name"`
	Description       string           `json:"description"`
	Price             decimal.Decimal  `json:"price"`          // precio antes de impuestos
	Cost              *decimal.Decimal `json:"cost,omitempty"` // costo promedio ponderado, opcional
	Stock             decimal.Decimal  `json:"stock"`
	TaxRate           decimal.Decimal  `json:"ivaRate"` // porcentaje, ej. 19
	Type              string           `json:"type"`
	LowStockThreshold *int             `json:"lowStockThreshold,omitempty"`
	CreatedAt         time.Time        `json:"createdAt"`
	UpdatedAt         time.Time        `json:"updatedAt"`
}

// TracksStock indica si el producto lleva inventario (los servicios no).
func (p *Product) TracksStock() bool {
	return p.Type != ProductTypeService
}

// CostOrZero devuelve el costo o cero si no está definido.
func (p *Product) CostOrZero() decimal.Decimal {
	if p.Cost == nil {
		return decimal.Zero
	}
	return *p.Cost
}

// Threshold devuelve el umbral de stock bajo efectivo.
func (p *Product) Threshold(def int) int {
	if p.LowStockThreshold != nil {
		return *p.LowStockThreshold
	}
	return def
}
