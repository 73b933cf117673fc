package inventory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Facturacion-api/internal/application/dto"
	"github.com/jhoicas/Facturacion-api/internal/application/ports"
	"github.com/jhoicas/Facturacion-api/internal/domain"
	"github.com/jhoicas/Facturacion-api/internal/domain/entity"
	"github.com/jhoicas/Facturacion-api/internal/domain/inventory"
	"github.com/jhoicas/Facturacion-api/internal/domain/repository"
	"github.com/jhoicas/Facturacion-api/internal/domain/sequence"
	"github.com/jhoicas/Facturacion-api/pkg/logger"
)

// NoteInitialStock nota del movimiento con que nace el stock de un producto.
const NoteInitialStock = "Stock inicial"

// LedgerOptions reglas del kardex.
type LedgerOptions struct {
	// AllowNegativeStock permite que una venta deje el stock por debajo de cero.
	AllowNegativeStock bool
}

// LedgerUseCase kardex: único componente que cambia el stock de un producto. Cada cambio queda
// registrado como un movimiento inmutable, de modo que stock = Σ movimientos del producto.
type LedgerUseCase struct {
	tx   ports.TxRunner
	opts LedgerOptions
	log  *logger.Logger
}

// NewLedgerUseCase construye el caso de uso.
func NewLedgerUseCase(tx ports.TxRunner, opts LedgerOptions, log *logger.Logger) *LedgerUseCase {
	return &LedgerUseCase{tx: tx, opts: opts, log: log.WithComponent("ledger")}
}

// ApplyMovement aplica un delta con signo al producto y devuelve el stock resultante.
// Entrada exige delta > 0 y Venta delta < 0; Ajuste acepta cualquier delta.
func (uc *LedgerUseCase) ApplyMovement(ctx context.Context, productID, kind string, delta decimal.Decimal, note, relatedDocument string) (decimal.Decimal, error) {
	var newStock decimal.Decimal
	err := uc.tx.Run(ctx, func(repos repository.Set) error {
		product, err := repos.Products.GetByID(ctx, productID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		if _, err := uc.ApplyInTx(ctx, repos, product, kind, delta, note, relatedDocument, time.Now()); err != nil {
			return err
		}
		newStock = product.Stock
		return nil
	})
	return newStock, err
}

// ApplyInTx aplica el movimiento con los repositorios de la unidad de trabajo del caller.
// Actualiza product (Stock, UpdatedAt) y lo persiste.
func (uc *LedgerUseCase) ApplyInTx(
	ctx context.Context,
	repos repository.Set,
	product *entity.Product,
	kind string,
	delta decimal.Decimal,
	note, relatedDocument string,
	now time.Time,
) (*entity.StockMovement, error) {
	switch kind {
	case entity.MovementTypeEntrada:
		if !delta.IsPositive() {
			return nil, domain.ErrInvalidInput
		}
	case entity.MovementTypeVenta:
		if !delta.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
	case entity.MovementTypeAjuste:
	default:
		return nil, domain.ErrInvalidInput
	}
	if !inventory.WholeUnits(delta) {
		return nil, fmt.Errorf("%w: cantidad %s no entera", domain.ErrInvalidInput, delta)
	}

	next := product.Stock.Add(delta)
	if kind == entity.MovementTypeVenta && next.IsNegative() && !uc.opts.AllowNegativeStock {
		return nil, fmt.Errorf("%w: %s tiene %s y se piden %s", domain.ErrInsufficientStock, product.Name, product.Stock, delta.Neg())
	}

	existing, err := repos.Movements.List(ctx)
	if err != nil {
		return nil, err
	}
	id, err := repos.IDs.NextID(ctx, sequence.KindStockMovement,
		sequence.IDsOf(existing, func(m *entity.StockMovement) string { return m.ID }))
	if err != nil {
		return nil, err
	}
	mov := &entity.StockMovement{
		ID:              id,
		ProductID:       product.ID,
		ProductName:     product.Name,
		Date:            now,
		Type:            kind,
		Quantity:        delta,
		Notes:           note,
		RelatedDocument: relatedDocument,
	}
	if err := repos.Movements.Append(ctx, mov); err != nil {
		return nil, err
	}

	product.Stock = next
	product.UpdatedAt = now
	if err := repos.Products.Update(ctx, product); err != nil {
		return nil, err
	}
	return mov, nil
}

// RegisterEntry registra una entrada manual. Si trae costo unitario, recalcula el costo
// promedio ponderado del producto antes de sumar la cantidad.
func (uc *LedgerUseCase) RegisterEntry(ctx context.Context, in dto.RegisterEntryRequest) (*dto.StockChangeResponse, error) {
	if in.ProductID == "" || !in.Quantity.IsPositive() || !inventory.WholeUnits(in.Quantity) {
		return nil, domain.ErrInvalidInput
	}
	if in.UnitCost != nil && in.UnitCost.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	var out *dto.StockChangeResponse
	err := uc.tx.Run(ctx, func(repos repository.Set) error {
		product, err := repos.Products.GetByID(ctx, in.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		if !product.TracksStock() {
			return fmt.Errorf("%w: los servicios no manejan inventario", domain.ErrInvalidInput)
		}
		if in.UnitCost != nil {
			cost := inventory.CostCalculator(product.Stock, product.CostOrZero(), in.Quantity, *in.UnitCost).Round(2)
			product.Cost = &cost
		}
		mov, err := uc.ApplyInTx(ctx, repos, product, entity.MovementTypeEntrada, in.Quantity, in.Notes, "", time.Now())
		if err != nil {
			return err
		}
		out = &dto.StockChangeResponse{Movement: toMovementResponse(mov), NewStock: product.Stock}
		return nil
	})
	return out, err
}

// RegisterSaleInTx descuenta la cantidad vendida dentro de la unidad de trabajo de la factura.
// Los servicios no mueven inventario y devuelven nil sin registrar nada.
func (uc *LedgerUseCase) RegisterSaleInTx(
	ctx context.Context,
	repos repository.Set,
	product *entity.Product,
	quantity decimal.Decimal,
	documentID string,
	now time.Time,
) error {
	if !product.TracksStock() {
		return nil
	}
	_, err := uc.ApplyInTx(ctx, repos, product, entity.MovementTypeVenta, quantity.Neg(),
		"Venta en factura "+documentID, documentID, now)
	return err
}

// Adjust lleva el stock al nivel absoluto indicado y registra la diferencia.
// Un ajuste sin diferencia también queda en el kardex.
func (uc *LedgerUseCase) Adjust(ctx context.Context, in dto.AdjustStockRequest) (*dto.StockChangeResponse, error) {
	if in.ProductID == "" || in.NewStock.IsNegative() || !inventory.WholeUnits(in.NewStock) {
		return nil, domain.ErrInvalidInput
	}
	var out *dto.StockChangeResponse
	err := uc.tx.Run(ctx, func(repos repository.Set) error {
		product, err := repos.Products.GetByID(ctx, in.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		if !product.TracksStock() {
			return fmt.Errorf("%w: los servicios no manejan inventario", domain.ErrInvalidInput)
		}
		note := in.Notes
		if note == "" {
			note = "Ajuste manual"
		}
		delta := inventory.AdjustmentDelta(product.Stock, in.NewStock)
		mov, err := uc.ApplyInTx(ctx, repos, product, entity.MovementTypeAjuste, delta, note, "", time.Now())
		if err != nil {
			return err
		}
		out = &dto.StockChangeResponse{Movement: toMovementResponse(mov), NewStock: product.Stock}
		return nil
	})
	return out, err
}

// ListMovements kardex del producto (o de todos si productID es vacío), el más reciente primero.
func (uc *LedgerUseCase) ListMovements(ctx context.Context, productID string) ([]dto.MovementResponse, error) {
	var list []*entity.StockMovement
	err := uc.tx.View(ctx, func(repos repository.Set) error {
		var err error
		if productID == "" {
			list, err = repos.Movements.List(ctx)
		} else {
			list, err = repos.Movements.ListByProduct(ctx, productID)
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	out := make([]dto.MovementResponse, 0, len(list))
	for i := len(list) - 1; i >= 0; i-- {
		out = append(out, toMovementResponse(list[i]))
	}
	return out, nil
}

// CheckInvariant compara el stock del producto con la suma de sus movimientos.
// Devuelve nil si coinciden.
func (uc *LedgerUseCase) CheckInvariant(ctx context.Context, productID string) (*dto.StockDriftDTO, error) {
	var drift *dto.StockDriftDTO
	err := uc.tx.View(ctx, func(repos repository.Set) error {
		product, err := repos.Products.GetByID(ctx, productID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		movs, err := repos.Movements.ListByProduct(ctx, productID)
		if err != nil {
			return err
		}
		drift = driftOf(product, movs)
		return nil
	})
	return drift, err
}

// Reconcile revisa todos los productos físicos y reporta los que no cuadran con su kardex.
func (uc *LedgerUseCase) Reconcile(ctx context.Context) (*dto.ReconcileResponse, error) {
	out := &dto.ReconcileResponse{Drifts: []dto.StockDriftDTO{}}
	err := uc.tx.View(ctx, func(repos repository.Set) error {
		products, err := repos.Products.List(ctx)
		if err != nil {
			return err
		}
		movs, err := repos.Movements.List(ctx)
		if err != nil {
			return err
		}
		byProduct := make(map[string][]*entity.StockMovement)
		for _, m := range movs {
			byProduct[m.ProductID] = append(byProduct[m.ProductID], m)
		}
		for _, p := range products {
			if !p.TracksStock() {
				continue
			}
			out.Checked++
			if d := driftOf(p, byProduct[p.ID]); d != nil {
				out.Drifts = append(out.Drifts, *d)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(out.Drifts, func(i, j int) bool {
		return out.Drifts[i].Difference.Abs().GreaterThan(out.Drifts[j].Difference.Abs())
	})
	for _, d := range out.Drifts {
		uc.log.Warn().Str("product_id", d.ProductID).Str("stock", d.Stock.String()).
			Str("movements_sum", d.MovementsSum.String()).Msg("stock no coincide con el kardex")
	}
	return out, nil
}

func driftOf(p *entity.Product, movs []*entity.StockMovement) *dto.StockDriftDTO {
	deltas := make([]decimal.Decimal, 0, len(movs))
	for _, m := range movs {
		deltas = append(deltas, m.Quantity)
	}
	sum := inventory.Balance(deltas)
	if sum.Equal(p.Stock) {
		return nil
	}
	return &dto.StockDriftDTO{
		ProductID:    p.ID,
		SKU:          p.SKU,
		ProductName:  p.Name,
		Stock:        p.Stock,
		MovementsSum: sum,
		Difference:   p.Stock.Sub(sum),
	}
}

func toMovementResponse(m *entity.StockMovement) dto.MovementResponse {
	return dto.MovementResponse{
		ID:              m.ID,
		ProductID:       m.ProductID,
		ProductName:     m.ProductName,
		Date:            m.Date,
		Type:            m.Type,
		Quantity:        m.Quantity,
		Notes:           m.Notes,
		RelatedDocument: m.RelatedDocument,
	}
}
