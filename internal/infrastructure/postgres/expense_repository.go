package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/mdc-pro/mdcpro-api/internal/domain"
	"github.com/mdc-pro/mdcpro-api/internal/domain/entity"
	"github.com/mdc-pro/mdcpro-api/internal/domain/repository"
)

var _ repository.ExpenseRepository = (*ExpenseRepo)(nil)

// ExpenseRepo implementación de ExpenseRepository sobre PostgreSQL (usable con pool o tx).
type ExpenseRepo struct {
	q Querier
}

// NewExpenseRepository construye el adaptador. Pasar pool o tx (Querier).
func NewExpenseRepository(q Querier) *ExpenseRepo {
	return &ExpenseRepo{q: q}
}

// Create persiste un gasto o pérdida.
func (r *ExpenseRepo) Create(ctx context.Context, expense *entity.ExpenseItem) error {
	if expense.ID == "" {
		expense.ID = uuid.New().String()
	}
	_, err := r.q.Exec(ctx,
		`INSERT INTO expenses (id, date, category, description, amount, is_loss, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		expense.ID, expense.Date, expense.Category, expense.Description,
		expense.Amount, expense.IsLoss, expense.CreatedAt, expense.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert expense: %w", err)
	}
	return nil
}

func scanExpense(row pgx.Row) (*entity.ExpenseItem, error) {
	var e entity.ExpenseItem
	err := row.Scan(&e.ID, &e.Date, &e.Category, &e.Description, &e.Amount, &e.IsLoss,
		&e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan expense: %w", err)
	}
	return &e, nil
}

// GetByID obtiene un gasto por id; nil si no existe.
func (r *ExpenseRepo) GetByID(ctx context.Context, id string) (*entity.ExpenseItem, error) {
	return scanExpense(r.q.QueryRow(ctx,
		`SELECT id, date, category, description, amount, is_loss, created_at, updated_at
		 FROM expenses WHERE id = $1`, id))
}

// List devuelve gastos según el filtro, descendente por fecha.
func (r *ExpenseRepo) List(ctx context.Context, f repository.ExpenseFilter) ([]*entity.ExpenseItem, error) {
	b := psql.Select("id", "date", "category", "description", "amount", "is_loss",
		"created_at", "updated_at").
		From("expenses").OrderBy("date DESC")

	if f.Category != "" {
		b = b.Where(sq.Eq{"category": f.Category})
	}
	if f.LossOnly {
		b = b.Where(sq.Eq{"is_loss": true})
	}
	if !f.From.IsZero() {
		b = b.Where(sq.GtOrEq{"date": f.From})
	}
	if !f.To.IsZero() {
		b = b.Where(sq.LtOrEq{"date": f.To})
	}
	limit := f.Limit
	if limit <= 0 {
		limit = 200
	}
	b = b.Limit(uint64(limit)).Offset(uint64(f.Offset))

	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build expense query: %w", err)
	}
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	defer rows.Close()
	var list []*entity.ExpenseItem
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, e)
	}
	return list, rows.Err()
}

// Update actualiza un gasto.
func (r *ExpenseRepo) Update(ctx context.Context, expense *entity.ExpenseItem) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE expenses
		 SET date = $2, category = $3, description = $4, amount = $5, is_loss = $6, updated_at = $7
		 WHERE id = $1`,
		expense.ID, expense.Date, expense.Category, expense.Description,
		expense.Amount, expense.IsLoss, time.Now(),
	)
	if err != nil {
		return fmt.Errorf("update expense: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina un gasto.
func (r *ExpenseRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM expenses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
