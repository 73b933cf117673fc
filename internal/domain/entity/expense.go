package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExpenseCategory categoría de gasto.
type ExpenseCategory struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Expense gasto. CategoryName se copia de la categoría al crear o editar.
type Expense struct {
	ID           string          `json:"id"`
	Date         time.Time       `json:"date"`
	CategoryID   string          `json:"categoryId"`
	CategoryName string          `json:"categoryName"`
	Description  string          `json:"description"`
	Amount       decimal.Decimal `json:"amount"`
}
