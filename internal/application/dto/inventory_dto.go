package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RegisterEntryRequest body para POST /api/inventory/entries.
// UnitCost opcional: si viene, recalcula el costo promedio ponderado del producto.
type RegisterEntryRequest struct {
	ProductID string           `json:"product_id"`
	Quantity  decimal.Decimal  `json:"quantity"`
	UnitCost  *decimal.Decimal `json:"unit_cost,omitempty"`
	Notes     string           `json:"notes"`
}

// AdjustStockRequest body para POST /api/inventory/adjustments. NewStock es el nivel absoluto.
type AdjustStockRequest struct {
	ProductID string          `json:"product_id"`
	NewStock  decimal.Decimal `json:"new_stock"`
	Notes     string          `json:"notes"`
}

// MovementResponse movimiento del kardex.
type MovementResponse struct {
	ID              string          `json:"id"`
	ProductID       string          `json:"product_id"`
	ProductName     string          `json:"product_name"`
	Date            time.Time       `json:"date"`
	Type            string          `json:"type"`
	Quantity        decimal.Decimal `json:"quantity"`
	Notes           string          `json:"notes"`
	RelatedDocument string          `json:"related_document,omitempty"`
}

// StockChangeResponse resultado de aplicar un movimiento.
type StockChangeResponse struct {
	Movement MovementResponse `json:"movement"`
	NewStock decimal.Decimal  `json:"new_stock"`
}

// StockDriftDTO producto cuyo stock no coincide con la suma de sus movimientos.
type StockDriftDTO struct {
	ProductID    string          `json:"product_id"`
	SKU          string          `json:"sku"`
	ProductName  string          `json:"product_name"`
	Stock        decimal.Decimal `json:"stock"`
	MovementsSum decimal.Decimal `json:"movements_sum"`
	Difference   decimal.Decimal `json:"difference"`
}

// ReconcileResponse resultado de GET /api/inventory/reconcile.
type ReconcileResponse struct {
	Checked int             `json:"checked"`
	Drifts  []StockDriftDTO `json:"drifts"`
}

// ReplenishmentSuggestionDTO producto físico por debajo de su umbral de stock bajo.
type ReplenishmentSuggestionDTO struct {
	ProductID          string          `json:"product_id"`
	SKU                string          `json:"sku"`
	ProductName        string          `json:"product_name"`
	CurrentStock       decimal.Decimal `json:"current_stock"`
	Threshold          decimal.Decimal `json:"threshold"`
	Deficit            decimal.Decimal `json:"deficit"`             // Threshold - CurrentStock
	IdealStock         decimal.Decimal `json:"ideal_stock"`         // Threshold * 1.5
	SuggestedOrderQty  decimal.Decimal `json:"suggested_order_qty"` // IdealStock - CurrentStock
	UnitCost           decimal.Decimal `json:"unit_cost"`
	EstimatedOrderCost decimal.Decimal `json:"estimated_order_cost"`
	GrossMarginPct     decimal.Decimal `json:"gross_margin_pct"`
	UnitsSoldLast90d   decimal.Decimal `json:"units_sold_last_90d"`
	Priority           int             `json:"priority"` // 1 = más urgente
}
