package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExpenseItem representa un gasto o pérdida registrada.
type ExpenseItem struct {
	ID          string
	Date        time.Time
	Category    string
	Description string
	Amount      decimal.Decimal
	IsLoss      bool // true = pérdida (merma, vencimiento), false = gasto operativo
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
