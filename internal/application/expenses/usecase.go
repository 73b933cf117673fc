// Package expenses registra los gastos del negocio y sus categorías.
package expenses

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/jhoicas/Facturacion-api/internal/application/dto"
	"github.com/jhoicas/Facturacion-api/internal/application/ports"
	"github.com/jhoicas/Facturacion-api/internal/domain"
	"github.com/jhoicas/Facturacion-api/internal/domain/entity"
	"github.com/jhoicas/Facturacion-api/internal/domain/repository"
	"github.com/jhoicas/Facturacion-api/internal/domain/sequence"
	"github.com/jhoicas/Facturacion-api/pkg/textutil"
)

// UseCase CRUD de gastos y categorías.
type UseCase struct {
	tx ports.TxRunner
}

// NewUseCase construye el caso de uso.
func NewUseCase(tx ports.TxRunner) *UseCase {
	return &UseCase{tx: tx}
}

func validate(in dto.ExpenseRequest) error {
	if in.CategoryID == "" || in.Date.IsZero() || !in.Amount.IsPositive() {
		return fmt.Errorf("%w: fecha, categoría y monto positivo requeridos", domain.ErrInvalidInput)
	}
	return nil
}

func getCategory(ctx context.Context, repos repository.Set, id string) (*entity.ExpenseCategory, error) {
	cat, err := repos.ExpenseCategories.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if cat == nil {
		return nil, fmt.Errorf("%w: categoría %s", domain.ErrNotFound, id)
	}
	return cat, nil
}

// Create registra un gasto. La categoría debe existir y su nombre queda copiado en el gasto.
func (uc *UseCase) Create(ctx context.Context, in dto.ExpenseRequest) (*dto.ExpenseResponse, error) {
	if err := validate(in); err != nil {
		return nil, err
	}
	var exp *entity.Expense
	err := uc.tx.Run(ctx, func(repos repository.Set) error {
		cat, err := getCategory(ctx, repos, in.CategoryID)
		if err != nil {
			return err
		}
		all, err := repos.Expenses.List(ctx)
		if err != nil {
			return err
		}
		id, err := repos.IDs.NextID(ctx, sequence.KindExpense,
			sequence.IDsOf(all, func(e *entity.Expense) string { return e.ID }))
		if err != nil {
			return err
		}
		exp = &entity.Expense{
			ID:           id,
			Date:         in.Date,
			CategoryID:   cat.ID,
			CategoryName: cat.Name,
			Description:  strings.TrimSpace(in.Description),
			Amount:       in.Amount,
		}
		return repos.Expenses.Create(ctx, exp)
	})
	if err != nil {
		return nil, err
	}
	return toResponse(exp), nil
}

// Update reemplaza los datos del gasto y vuelve a copiar el nombre de la categoría.
func (uc *UseCase) Update(ctx context.Context, id string, in dto.ExpenseRequest) (*dto.ExpenseResponse, error) {
	if err := validate(in); err != nil {
		return nil, err
	}
	var exp *entity.Expense
	err := uc.tx.Run(ctx, func(repos repository.Set) error {
		var err error
		exp, err = repos.Expenses.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if exp == nil {
			return domain.ErrNotFound
		}
		cat, err := getCategory(ctx, repos, in.CategoryID)
		if err != nil {
			return err
		}
		exp.Date = in.Date
		exp.CategoryID = cat.ID
		exp.CategoryName = cat.Name
		exp.Description = strings.TrimSpace(in.Description)
		exp.Amount = in.Amount
		return repos.Expenses.Update(ctx, exp)
	})
	if err != nil {
		return nil, err
	}
	return toResponse(exp), nil
}

// Delete elimina un gasto.
func (uc *UseCase) Delete(ctx context.Context, id string) error {
	return uc.tx.Run(ctx, func(repos repository.Set) error {
		return repos.Expenses.Delete(ctx, id)
	})
}

// List lista gastos del más reciente al más antiguo.
func (uc *UseCase) List(ctx context.Context) ([]dto.ExpenseResponse, error) {
	var list []*entity.Expense
	err := uc.tx.View(ctx, func(repos repository.Set) error {
		var err error
		list, err = repos.Expenses.List(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(list, func(i, j int) bool { return list[i].Date.After(list[j].Date) })
	out := make([]dto.ExpenseResponse, 0, len(list))
	for _, e := range list {
		out = append(out, *toResponse(e))
	}
	return out, nil
}

// CreateCategory crea una categoría; el nombre no se repite (sin distinguir mayúsculas ni tildes).
func (uc *UseCase) CreateCategory(ctx context.Context, in dto.ExpenseCategoryRequest) (*dto.ExpenseCategoryResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	var cat *entity.ExpenseCategory
	err := uc.tx.Run(ctx, func(repos repository.Set) error {
		all, err := repos.ExpenseCategories.List(ctx)
		if err != nil {
			return err
		}
		for _, c := range all {
			if textutil.Fold(c.Name) == textutil.Fold(name) {
				return domain.ErrDuplicate
			}
		}
		id, err := repos.IDs.NextID(ctx, sequence.KindExpenseCategory,
			sequence.IDsOf(all, func(c *entity.ExpenseCategory) string { return c.ID }))
		if err != nil {
			return err
		}
		cat = &entity.ExpenseCategory{ID: id, Name: name}
		return repos.ExpenseCategories.Create(ctx, cat)
	})
	if err != nil {
		return nil, err
	}
	return &dto.ExpenseCategoryResponse{ID: cat.ID, Name: cat.Name}, nil
}

// DeleteCategory elimina una categoría. Los gastos existentes conservan el nombre copiado.
func (uc *UseCase) DeleteCategory(ctx context.Context, id string) error {
	return uc.tx.Run(ctx, func(repos repository.Set) error {
		return repos.ExpenseCategories.Delete(ctx, id)
	})
}

// ListCategories lista las categorías en orden alfabético.
func (uc *UseCase) ListCategories(ctx context.Context) ([]dto.ExpenseCategoryResponse, error) {
	var list []*entity.ExpenseCategory
	err := uc.tx.View(ctx, func(repos repository.Set) error {
		var err error
		list, err = repos.ExpenseCategories.List(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(list, func(i, j int) bool { return textutil.Fold(list[i].Name) < textutil.Fold(list[j].Name) })
	out := make([]dto.ExpenseCategoryResponse, 0, len(list))
	for _, c := range list {
		out = append(out, dto.ExpenseCategoryResponse{ID: c.ID, Name: c.Name})
	}
	return out, nil
}

func toResponse(e *entity.Expense) *dto.ExpenseResponse {
	return &dto.ExpenseResponse{
		ID:           e.ID,
		Date:         e.Date,
		CategoryID:   e.CategoryID,
		CategoryName: e.CategoryName,
		Description:  e.Description,
		Amount:       e.Amount,
	}
}
