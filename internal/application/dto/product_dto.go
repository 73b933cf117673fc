package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto o servicio.
// InitialStock queda registrado en el kardex como una Entrada "Stock inicial".
type CreateProductRequest struct {
	SKU               string           `json:"sku"`
	Name              string           `json:"name"`
	Description       string           `json:"description"`
	Price             decimal.Decimal  `json:"price"`
	Cost              *decimal.Decimal `json:"cost,omitempty"`
	TaxRate           decimal.Decimal  `json:"iva_rate"`
	Type              string           `json:"type"` // product | service
	InitialStock      decimal.Decimal  `json:"initial_stock"`
	LowStockThreshold *int             `json:"low_stock_threshold,omitempty"`
}

// UpdateProductRequest entrada para actualizar un producto (sin Stock: solo el kardex lo cambia).
type UpdateProductRequest struct {
	SKU               *string          `json:"sku"`
	Name              *string          `json:"name"`
	Description       *string          `json:"description"`
	Price             *decimal.Decimal `json:"price"`
	Cost              *decimal.Decimal `json:"cost"`
	TaxRate           *decimal.Decimal `json:"iva_rate"`
	LowStockThreshold *int             `json:"low_stock_threshold"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID                string           `json:"id"`
	SKU               string           `json:"sku"`
	Name              string           `json:"name"`
	Description       string           `json:"description"`
	Price             decimal.Decimal  `json:"price"`
	Cost              *decimal.Decimal `json:"cost,omitempty"`
	Stock             decimal.Decimal  `json:"stock"`
	TaxRate           decimal.Decimal  `json:"iva_rate"`
	Type              string           `json:"type"`
	LowStockThreshold int              `json:"low_stock_threshold"`
	CreatedAt         time.Time        `json:"created_at"`
	UpdatedAt         time.Time        `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
