package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/mdc-pro/mdcpro-api/internal/domain"
	"github.com/mdc-pro/mdcpro-api/internal/domain/entity"
	"github.com/mdc-pro/mdcpro-api/internal/domain/repository"
)

var _ repository.InventoryRepository = (*InventoryRepo)(nil)

// InventoryRepo implementación de InventoryRepository sobre PostgreSQL (usable con pool o tx).
type InventoryRepo struct {
	q Querier
}

// NewInventoryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryRepository(q Querier) *InventoryRepo {
	return &InventoryRepo{q: q}
}

const inventoryColumns = `id, name, quantity, unit, unit_cost, reorder_level, category,
	batch_number, production_date, expiry_date, created_at, updated_at`

// Create persiste un lote nuevo (entrada manual).
func (r *InventoryRepo) Create(ctx context.Context, item *entity.InventoryItem) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	var prod, exp *time.Time
	if !item.ProductionDate.IsZero() {
		prod = &item.ProductionDate
	}
	if !item.ExpiryDate.IsZero() {
		exp = &item.ExpiryDate
	}
	query := `
		INSERT INTO inventory (` + inventoryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		item.ID, item.Name, item.Quantity, item.Unit, item.UnitCost, item.ReorderLevel,
		item.Category, item.BatchNumber, prod, exp, item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert inventory item: %w", err)
	}
	return nil
}

func scanInventoryItem(row pgx.Row) (*entity.InventoryItem, error) {
	var it entity.InventoryItem
	var prod, exp *time.Time
	err := row.Scan(
		&it.ID, &it.Name, &it.Quantity, &it.Unit, &it.UnitCost, &it.ReorderLevel,
		&it.Category, &it.BatchNumber, &prod, &exp, &it.CreatedAt, &it.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan inventory item: %w", err)
	}
	if prod != nil {
		it.ProductionDate = *prod
	}
	if exp != nil {
		it.ExpiryDate = *exp
	}
	return &it, nil
}

// GetByID obtiene un lote por id; nil si no existe.
func (r *InventoryRepo) GetByID(ctx context.Context, id string) (*entity.InventoryItem, error) {
	return scanInventoryItem(r.q.QueryRow(ctx,
		`SELECT `+inventoryColumns+` FROM inventory WHERE id = $1`, id))
}

// List devuelve los lotes ordenados por nombre y vencimiento.
func (r *InventoryRepo) List(ctx context.Context, limit, offset int) ([]*entity.InventoryItem, error) {
	if limit <= 0 {
		limit = 200
	}
	rows, err := r.q.Query(ctx,
		`SELECT `+inventoryColumns+`
		 FROM inventory ORDER BY name, expiry_date NULLS LAST LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("list inventory: %w", err)
	}
	defer rows.Close()
	var list []*entity.InventoryItem
	for rows.Next() {
		it, err := scanInventoryItem(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, it)
	}
	return list, rows.Err()
}

// Update actualiza los campos editables del lote.
func (r *InventoryRepo) Update(ctx context.Context, item *entity.InventoryItem) error {
	var prod, exp *time.Time
	if !item.ProductionDate.IsZero() {
		prod = &item.ProductionDate
	}
	if !item.ExpiryDate.IsZero() {
		exp = &item.ExpiryDate
	}
	query := `
		UPDATE inventory
		SET name = $2, quantity = $3, unit = $4, unit_cost = $5, reorder_level = $6,
		    category = $7, batch_number = $8, production_date = $9, expiry_date = $10,
		    updated_at = $11
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		item.ID, item.Name, item.Quantity, item.Unit, item.UnitCost, item.ReorderLevel,
		item.Category, item.BatchNumber, prod, exp, time.Now(),
	)
	if err != nil {
		return fmt.Errorf("update inventory item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// DecrementByName descuenta qty unidades del producto consumiendo lotes en
// orden de vencimiento (FEFO). Los lotes afectados se bloquean con FOR UPDATE;
// si el stock total no alcanza, no se descuenta nada y se retorna
// ErrInsufficientStock. Usar dentro de una transacción (TxRunner).
func (r *InventoryRepo) DecrementByName(ctx context.Context, name string, qty int) ([]*entity.InventoryItem, error) {
	if qty <= 0 {
		return nil, domain.ErrInvalidInput
	}
	rows, err := r.q.Query(ctx,
		`SELECT `+inventoryColumns+`
		 FROM inventory
		 WHERE name = $1 AND quantity > 0
		 ORDER BY expiry_date NULLS LAST, created_at
		 FOR UPDATE`,
		name,
	)
	if err != nil {
		return nil, fmt.Errorf("lock inventory batches: %w", err)
	}
	var batches []*entity.InventoryItem
	for rows.Next() {
		it, err := scanInventoryItem(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		batches = append(batches, it)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	available := 0
	for _, b := range batches {
		available += b.Quantity
	}
	if available < qty {
		return nil, domain.ErrInsufficientStock
	}

	remaining := qty
	var touched []*entity.InventoryItem
	for _, b := range batches {
		if remaining == 0 {
			break
		}
		take := b.Quantity
		if take > remaining {
			take = remaining
		}
		b.Quantity -= take
		remaining -= take
		_, err := r.q.Exec(ctx,
			`UPDATE inventory SET quantity = $2, updated_at = $3 WHERE id = $1`,
			b.ID, b.Quantity, time.Now(),
		)
		if err != nil {
			return nil, fmt.Errorf("decrement batch %s: %w", b.ID, err)
		}
		touched = append(touched, b)
	}
	return touched, nil
}

// Delete elimina un lote.
func (r *InventoryRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM inventory WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete inventory item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
