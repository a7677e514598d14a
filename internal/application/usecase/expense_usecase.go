package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mdc-pro/mdcpro-api/internal/application/dto"
	"github.com/mdc-pro/mdcpro-api/internal/domain"
	"github.com/mdc-pro/mdcpro-api/internal/domain/entity"
	"github.com/mdc-pro/mdcpro-api/internal/domain/repository"
	"github.com/mdc-pro/mdcpro-api/internal/infrastructure/store"
	"github.com/mdc-pro/mdcpro-api/pkg/logger"
)

// ExpenseUseCase casos de uso de gastos y pérdidas.
type ExpenseUseCase struct {
	repo       repository.ExpenseRepository
	collection *store.Collection[entity.ExpenseItem]
	log        *logger.Logger
}

// NewExpenseUseCase construye el caso de uso.
func NewExpenseUseCase(
	repo repository.ExpenseRepository,
	collection *store.Collection[entity.ExpenseItem],
	log *logger.Logger,
) *ExpenseUseCase {
	return &ExpenseUseCase{repo: repo, collection: collection, log: log}
}

// List lista gastos con respaldo local. Los filtros solo aplican sobre la
// lectura remota; la vista de respaldo devuelve la colección completa.
func (uc *ExpenseUseCase) List(ctx context.Context, f repository.ExpenseFilter) ([]*dto.ExpenseResponse, error) {
	if f.Limit <= 0 {
		f.Limit = 100
	}
	items, err := uc.collection.Fetch(ctx, func(ctx context.Context) ([]entity.ExpenseItem, error) {
		list, err := uc.repo.List(ctx, f)
		if err != nil {
			return nil, err
		}
		out := make([]entity.ExpenseItem, 0, len(list))
		for _, e := range list {
			out = append(out, *e)
		}
		return out, nil
	})
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ExpenseResponse, 0, len(items))
	for i := range items {
		out = append(out, toExpenseResponse(&items[i]))
	}
	return out, nil
}

// Create registra un gasto o pérdida.
func (uc *ExpenseUseCase) Create(ctx context.Context, in dto.CreateExpenseRequest) (*dto.ExpenseResponse, error) {
	amount, err := decimal.NewFromString(in.Amount)
	if err != nil || amount.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	expense := &entity.ExpenseItem{
		ID:          uuid.New().String(),
		Date:        parseExpenseDate(in.Date, now),
		Category:    in.Category,
		Description: in.Description,
		Amount:      amount.Round(2),
		IsLoss:      in.IsLoss,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ctx, expense); err != nil {
		return nil, err
	}
	uc.refreshCache(ctx)
	return toExpenseResponse(expense), nil
}

// Update corrige un gasto existente.
func (uc *ExpenseUseCase) Update(ctx context.Context, id string, in dto.CreateExpenseRequest) (*dto.ExpenseResponse, error) {
	expense, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if expense == nil {
		return nil, domain.ErrNotFound
	}
	if in.Amount != "" {
		amount, err := decimal.NewFromString(in.Amount)
		if err != nil || amount.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		expense.Amount = amount.Round(2)
	}
	if in.Category != "" {
		expense.Category = in.Category
	}
	if in.Description != "" {
		expense.Description = in.Description
	}
	if in.Date != "" {
		expense.Date = parseExpenseDate(in.Date, expense.Date)
	}
	expense.IsLoss = in.IsLoss
	expense.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, expense); err != nil {
		return nil, err
	}
	uc.refreshCache(ctx)
	return toExpenseResponse(expense), nil
}

// Delete elimina un gasto.
func (uc *ExpenseUseCase) Delete(ctx context.Context, id string) error {
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	uc.refreshCache(ctx)
	return nil
}

func (uc *ExpenseUseCase) refreshCache(ctx context.Context) {
	list, err := uc.repo.List(ctx, repository.ExpenseFilter{Limit: 1000})
	if err != nil {
		uc.log.Warn().Err(err).Msg("no se pudo releer gastos para el cache local")
		return
	}
	items := make([]entity.ExpenseItem, 0, len(list))
	for _, e := range list {
		items = append(items, *e)
	}
	uc.collection.Refresh(ctx, items)
}

func parseExpenseDate(s string, fallback time.Time) time.Time {
	if s == "" {
		return fallback
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return fallback
	}
	return t
}

func toExpenseResponse(e *entity.ExpenseItem) *dto.ExpenseResponse {
	return &dto.ExpenseResponse{
		ID:          e.ID,
		Date:        e.Date,
		Category:    e.Category,
		Description: e.Description,
		Amount:      e.Amount.StringFixed(2),
		IsLoss:      e.IsLoss,
	}
}
