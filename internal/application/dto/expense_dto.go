package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExpenseRequest body para POST/PUT /api/expenses.
type ExpenseRequest struct {
	Date        time.Time       `json:"date"`
	CategoryID  string          `json:"category_id"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
}

// ExpenseResponse gasto.
type ExpenseResponse struct {
	ID           string          `json:"id"`
	Date         time.Time       `json:"date"`
	CategoryID   string          `json:"category_id"`
	CategoryName string          `json:"category_name"`
	Description  string          `json:"description"`
	Amount       decimal.Decimal `json:"amount"`
}

// ExpenseCategoryRequest body para POST /api/expense-categories.
type ExpenseCategoryRequest struct {
	Name string `json:"name"`
}

// ExpenseCategoryResponse categoría de gasto.
type ExpenseCategoryResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
