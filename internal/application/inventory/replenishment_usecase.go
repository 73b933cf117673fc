package inventory

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Facturacion-api/internal/application/dto"
	"github.com/jhoicas/Facturacion-api/internal/application/ports"
	"github.com/jhoicas/Facturacion-api/internal/domain/entity"
	"github.com/jhoicas/Facturacion-api/internal/domain/repository"
)

// ReplenishmentUseCase genera la lista de reposición a partir del stock y del kardex.
type ReplenishmentUseCase struct {
	tx               ports.TxRunner
	defaultThreshold int
}

// NewReplenishmentUseCase construye el caso de uso de reposición.
func NewReplenishmentUseCase(tx ports.TxRunner, defaultThreshold int) *ReplenishmentUseCase {
	if defaultThreshold <= 0 {
		defaultThreshold = entity.DefaultLowStockThreshold
	}
	return &ReplenishmentUseCase{tx: tx, defaultThreshold: defaultThreshold}
}

// GenerateReplenishmentList devuelve los productos físicos en o bajo su umbral con la cantidad
// sugerida de pedido y un ranking de prioridad por margen y volumen de ventas de los últimos 90 días.
func (uc *ReplenishmentUseCase) GenerateReplenishmentList(ctx context.Context, now time.Time) ([]dto.ReplenishmentSuggestionDTO, error) {
	var (
		products []*entity.Product
		movs     []*entity.StockMovement
	)
	err := uc.tx.View(ctx, func(repos repository.Set) error {
		var err error
		if products, err = repos.Products.List(ctx); err != nil {
			return err
		}
		movs, err = repos.Movements.List(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}

	// Unidades vendidas por producto en la ventana de 90 días
	since := now.AddDate(0, 0, -90)
	sold := make(map[string]decimal.Decimal)
	for _, m := range movs {
		if m.Type != entity.MovementTypeVenta || m.Date.Before(since) || m.Date.After(now) {
			continue
		}
		sold[m.ProductID] = sold[m.ProductID].Add(m.Quantity.Neg())
	}

	hundred := decimal.NewFromInt(100)
	factor := decimal.NewFromFloat(1.5)

	suggestions := make([]dto.ReplenishmentSuggestionDTO, 0)
	for _, p := range products {
		if !p.TracksStock() {
			continue
		}
		threshold := decimal.NewFromInt(int64(p.Threshold(uc.defaultThreshold)))
		if p.Stock.GreaterThan(threshold) {
			continue
		}
		idealStock := threshold.Mul(factor).Ceil()
		suggestedQty := idealStock.Sub(p.Stock)
		if suggestedQty.IsNegative() {
			suggestedQty = decimal.Zero
		}
		unitCost := p.CostOrZero()

		var grossMarginPct decimal.Decimal
		if p.Price.IsPositive() && p.Cost != nil {
			grossMarginPct = p.Price.Sub(unitCost).Div(p.Price).Mul(hundred).Round(2)
		}

		suggestions = append(suggestions, dto.ReplenishmentSuggestionDTO{
			ProductID:          p.ID,
			SKU:                p.SKU,
			ProductName:        p.Name,
			CurrentStock:       p.Stock,
			Threshold:          threshold,
			Deficit:            threshold.Sub(p.Stock),
			IdealStock:         idealStock,
			SuggestedOrderQty:  suggestedQty,
			UnitCost:           unitCost,
			EstimatedOrderCost: suggestedQty.Mul(unitCost).Round(2),
			GrossMarginPct:     grossMarginPct,
			UnitsSoldLast90d:   sold[p.ID],
		})
	}

	// Primero mayor margen, luego mayor volumen de ventas y por último mayor déficit.
	sort.SliceStable(suggestions, func(i, j int) bool {
		a, b := suggestions[i], suggestions[j]
		if !a.GrossMarginPct.Equal(b.GrossMarginPct) {
			return a.GrossMarginPct.GreaterThan(b.GrossMarginPct)
		}
		if !a.UnitsSoldLast90d.Equal(b.UnitsSoldLast90d) {
			return a.UnitsSoldLast90d.GreaterThan(b.UnitsSoldLast90d)
		}
		return a.Deficit.GreaterThan(b.Deficit)
	})

	// Prioridad 1 = más urgente
	for i := range suggestions {
		suggestions[i].Priority = i + 1
	}
	return suggestions, nil
}
