package inventory

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Facturacion-api/internal/application/dto"
	"github.com/jhoicas/Facturacion-api/internal/application/ports"
	"github.com/jhoicas/Facturacion-api/internal/domain"
	"github.com/jhoicas/Facturacion-api/internal/domain/entity"
	"github.com/jhoicas/Facturacion-api/internal/domain/inventory"
	"github.com/jhoicas/Facturacion-api/internal/domain/repository"
	"github.com/jhoicas/Facturacion-api/internal/domain/sequence"
	"github.com/jhoicas/Facturacion-api/pkg/textutil"
)

// ProductUseCase casos de uso CRUD para productos. Stock se maneja vía kardex.
type ProductUseCase struct {
	tx               ports.TxRunner
	ledger           *LedgerUseCase
	defaultThreshold int
}

// NewProductUseCase construye el caso de uso. defaultThreshold aplica a productos sin umbral propio.
func NewProductUseCase(tx ports.TxRunner, ledger *LedgerUseCase, defaultThreshold int) *ProductUseCase {
	if defaultThreshold <= 0 {
		defaultThreshold = entity.DefaultLowStockThreshold
	}
	return &ProductUseCase{tx: tx, ledger: ledger, defaultThreshold: defaultThreshold}
}

// validTaxRate tarifas de IVA vigentes: 0, 5 y 19.
func validTaxRate(r decimal.Decimal) bool {
	return r.IsZero() || r.Equal(decimal.NewFromInt(5)) || r.Equal(decimal.NewFromInt(19))
}

// Create crea un producto. Si trae stock inicial queda registrado como Entrada "Stock inicial"
// en la misma unidad de trabajo.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	in.SKU = strings.TrimSpace(in.SKU)
	in.Name = strings.TrimSpace(in.Name)
	if in.SKU == "" || in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Type == "" {
		in.Type = entity.ProductTypeGood
	}
	if in.Type != entity.ProductTypeGood && in.Type != entity.ProductTypeService {
		return nil, domain.ErrInvalidInput
	}
	if in.Price.IsNegative() || in.InitialStock.IsNegative() || !inventory.WholeUnits(in.InitialStock) || !validTaxRate(in.TaxRate) {
		return nil, domain.ErrInvalidInput
	}
	if in.Cost != nil && in.Cost.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	if in.LowStockThreshold != nil && *in.LowStockThreshold < 0 {
		return nil, domain.ErrInvalidInput
	}

	var product *entity.Product
	err := uc.tx.Run(ctx, func(repos repository.Set) error {
		existing, err := repos.Products.GetBySKU(ctx, in.SKU)
		if err != nil {
			return err
		}
		if existing != nil {
			return domain.ErrDuplicate
		}
		all, err := repos.Products.List(ctx)
		if err != nil {
			return err
		}
		id, err := repos.IDs.NextID(ctx, sequence.KindProduct,
			sequence.IDsOf(all, func(p *entity.Product) string { return p.ID }))
		if err != nil {
			return err
		}
		now := time.Now()
		product = &entity.Product{
			ID:                id,
			SKU:               in.SKU,
			Name:              in.Name,
			Description:       in.Description,
			Price:             in.Price,
			Cost:              in.Cost,
			Stock:             decimal.Zero,
			TaxRate:           in.TaxRate,
			Type:              in.Type,
			LowStockThreshold: in.LowStockThreshold,
			CreatedAt:         now,
			UpdatedAt:         now,
		}
		if err := repos.Products.Create(ctx, product); err != nil {
			return err
		}
		if product.TracksStock() && in.InitialStock.IsPositive() {
			_, err := uc.ledger.ApplyInTx(ctx, repos, product, entity.MovementTypeEntrada, in.InitialStock, NoteInitialStock, "", now)
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return uc.toProductResponse(product), nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	var product *entity.Product
	err := uc.tx.View(ctx, func(repos repository.Set) error {
		var err error
		product, err = repos.Products.GetByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return uc.toProductResponse(product), nil
}

// Update actualiza un producto. No permite modificar Stock ni Type.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	var product *entity.Product
	err := uc.tx.Run(ctx, func(repos repository.Set) error {
		var err error
		product, err = repos.Products.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		if in.SKU != nil {
			sku := strings.TrimSpace(*in.SKU)
			if sku == "" {
				return domain.ErrInvalidInput
			}
			other, err := repos.Products.GetBySKU(ctx, sku)
			if err != nil {
				return err
			}
			if other != nil && other.ID != product.ID {
				return domain.ErrDuplicate
			}
			product.SKU = sku
		}
		if in.Name != nil {
			if strings.TrimSpace(*in.Name) == "" {
				return domain.ErrInvalidInput
			}
			product.Name = strings.TrimSpace(*in.Name)
		}
		if in.Description != nil {
			product.Description = *in.Description
		}
		if in.Price != nil {
			if in.Price.IsNegative() {
				return domain.ErrInvalidInput
			}
			product.Price = *in.Price
		}
		if in.Cost != nil {
			if in.Cost.IsNegative() {
				return domain.ErrInvalidInput
			}
			cost := *in.Cost
			product.Cost = &cost
		}
		if in.TaxRate != nil {
			if !validTaxRate(*in.TaxRate) {
				return domain.ErrInvalidInput
			}
			product.TaxRate = *in.TaxRate
		}
		if in.LowStockThreshold != nil {
			if *in.LowStockThreshold < 0 {
				return domain.ErrInvalidInput
			}
			threshold := *in.LowStockThreshold
			product.LowStockThreshold = &threshold
		}
		product.UpdatedAt = time.Now()
		return repos.Products.Update(ctx, product)
	})
	if err != nil {
		return nil, err
	}
	return uc.toProductResponse(product), nil
}

// List lista productos filtrando por nombre o SKU (sin distinguir mayúsculas ni tildes).
func (uc *ProductUseCase) List(ctx context.Context, query string, page dto.PageRequest) (*dto.ProductListResponse, error) {
	page.DefaultPage()
	var list []*entity.Product
	err := uc.tx.View(ctx, func(repos repository.Set) error {
		var err error
		list, err = repos.Products.List(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	matched := make([]*entity.Product, 0, len(list))
	for _, p := range list {
		if query == "" || textutil.Contains(p.Name, query) || textutil.Contains(p.SKU, query) {
			matched = append(matched, p)
		}
	}
	from, to := page.Bounds(len(matched))
	items := make([]dto.ProductResponse, 0, to-from)
	for _, p := range matched[from:to] {
		items = append(items, *uc.toProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: len(matched)},
	}, nil
}

// LowStock productos físicos con stock en o por debajo de su umbral.
func (uc *ProductUseCase) LowStock(ctx context.Context) ([]dto.ProductResponse, error) {
	var list []*entity.Product
	err := uc.tx.View(ctx, func(repos repository.Set) error {
		var err error
		list, err = repos.Products.List(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	out := []dto.ProductResponse{}
	for _, p := range list {
		if p.TracksStock() && p.Stock.LessThanOrEqual(decimal.NewFromInt(int64(p.Threshold(uc.defaultThreshold)))) {
			out = append(out, *uc.toProductResponse(p))
		}
	}
	return out, nil
}

// Delete elimina un producto por ID. Sus movimientos y los documentos que lo citan se conservan.
func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
	return uc.tx.Run(ctx, func(repos repository.Set) error {
		return repos.Products.Delete(ctx, id)
	})
}

func (uc *ProductUseCase) toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:                p.ID,
		SKU:               p.SKU,
		Name:              p.Name,
		Description:       p.Description,
		Price:             p.Price,
		Cost:              p.Cost,
		Stock:             p.Stock,
		TaxRate:           p.TaxRate,
		Type:              p.Type,
		LowStockThreshold: p.Threshold(uc.defaultThreshold),
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	}
}
