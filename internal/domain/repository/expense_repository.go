package repository

import (
	"context"
	"time"

	"github.com/mdc-pro/mdcpro-api/internal/domain/entity"
)

// ExpenseFilter criterios opcionales para listar gastos.
type ExpenseFilter struct {
	Category string
	LossOnly bool
	From     time.Time
	To       time.Time
	Limit    int
	Offset   int
}

// ExpenseRepository define el puerto de persistencia para gastos y pérdidas.
type ExpenseRepository interface {
	Create(ctx context.Context, expense *entity.ExpenseItem) error
	GetByID(ctx context.Context, id string) (*entity.ExpenseItem, error)
	List(ctx context.Context, f ExpenseFilter) ([]*entity.ExpenseItem, error)
	Update(ctx context.Context, expense *entity.ExpenseItem) error
	Delete(ctx context.Context, id string) error
}
