package repository

import (
	"context"

	"github.com/jhoicas/Facturacion-api/internal/domain/entity"
)

// ExpenseRepository define el puerto de persistencia para gastos.
type ExpenseRepository interface {
	Create(ctx context.Context, expense *entity.Expense) error
	GetByID(ctx context.Context, id string) (*entity.Expense, error)
	Update(ctx context.Context, expense *entity.Expense) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*entity.Expense, error)
}

// ExpenseCategoryRepository define el puerto de persistencia para categorías de gasto.
type ExpenseCategoryRepository interface {
	Create(ctx context.Context, category *entity.ExpenseCategory) error
	GetByID(ctx context.Context, id string) (*entity.ExpenseCategory, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*entity.ExpenseCategory, error)
}
