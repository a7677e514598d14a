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

var _ repository.OrderRepository = (*OrderRepo)(nil)

// psql builder con placeholders $1, $2, ... de PostgreSQL.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// OrderRepo implementación de OrderRepository sobre PostgreSQL (usable con pool o tx).
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

// Create persiste cabecera y líneas del pedido.
func (r *OrderRepo) Create(ctx context.Context, order *entity.Order) error {
	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	query := `
		INSERT INTO orders (id, order_number, client_name, client_email, subtotal,
			discount_rate, discount, total, status, date, is_wholesale,
			payment_id, shipping_address, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(ctx, query,
		order.ID, order.OrderNumber, order.ClientName, order.ClientEmail, order.Subtotal,
		order.DiscountRate, order.Discount, order.Total, order.Status, order.Date,
		order.IsWholesale, nullIfEmpty(order.PaymentID), nullIfEmpty(order.ShippingAddress),
		order.CreatedAt, order.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert order: %w", err)
	}
	for i := range order.Items {
		item := &order.Items[i]
		if item.ID == "" {
			item.ID = uuid.New().String()
		}
		_, err := r.q.Exec(ctx,
			`INSERT INTO order_items (id, order_id, description, quantity, unit_price, total)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			item.ID, order.ID, item.Description, item.Quantity, item.UnitPrice, item.Total,
		)
		if err != nil {
			return fmt.Errorf("insert order item: %w", err)
		}
	}
	return nil
}

// GetByID obtiene un pedido completo por id; nil si no existe.
func (r *OrderRepo) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	query := `
		SELECT id, order_number, client_name, client_email, subtotal, discount_rate,
		       discount, total, status, date, is_wholesale,
		       COALESCE(payment_id, ''), COALESCE(shipping_address, ''),
		       created_at, updated_at
		FROM orders WHERE id = $1`
	var o entity.Order
	err := r.q.QueryRow(ctx, query, id).Scan(
		&o.ID, &o.OrderNumber, &o.ClientName, &o.ClientEmail, &o.Subtotal, &o.DiscountRate,
		&o.Discount, &o.Total, &o.Status, &o.Date, &o.IsWholesale,
		&o.PaymentID, &o.ShippingAddress, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	items, err := r.itemsFor(ctx, o.ID)
	if err != nil {
		return nil, err
	}
	o.Items = items
	return &o, nil
}

func (r *OrderRepo) itemsFor(ctx context.Context, orderID string) ([]entity.LineItem, error) {
	rows, err := r.q.Query(ctx,
		`SELECT id, description, quantity, unit_price, total
		 FROM order_items WHERE order_id = $1 ORDER BY id`,
		orderID,
	)
	if err != nil {
		return nil, fmt.Errorf("list order items: %w", err)
	}
	defer rows.Close()
	var items []entity.LineItem
	for rows.Next() {
		var li entity.LineItem
		if err := rows.Scan(&li.ID, &li.Description, &li.Quantity, &li.UnitPrice, &li.Total); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		items = append(items, li)
	}
	return items, rows.Err()
}

// List devuelve pedidos según el filtro, descendente por fecha, con sus líneas.
func (r *OrderRepo) List(ctx context.Context, f repository.OrderFilter) ([]*entity.Order, error) {
	b := psql.Select(
		"id", "order_number", "client_name", "client_email", "subtotal", "discount_rate",
		"discount", "total", "status", "date", "is_wholesale",
		"COALESCE(payment_id, '')", "COALESCE(shipping_address, '')",
		"created_at", "updated_at",
	).From("orders").OrderBy("date DESC")

	if f.Status != "" {
		b = b.Where(sq.Eq{"status": f.Status})
	}
	if f.ClientEmail != "" {
		b = b.Where(sq.Eq{"client_email": f.ClientEmail})
	}
	if f.Wholesale != nil {
		b = b.Where(sq.Eq{"is_wholesale": *f.Wholesale})
	}
	if !f.From.IsZero() {
		b = b.Where(sq.GtOrEq{"date": f.From})
	}
	if !f.To.IsZero() {
		b = b.Where(sq.LtOrEq{"date": f.To})
	}
	limit := f.Limit
	if limit <= 0 {
		limit = 100
	}
	b = b.Limit(uint64(limit)).Offset(uint64(f.Offset))

	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build order query: %w", err)
	}
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	var list []*entity.Order
	for rows.Next() {
		var o entity.Order
		if err := rows.Scan(
			&o.ID, &o.OrderNumber, &o.ClientName, &o.ClientEmail, &o.Subtotal, &o.DiscountRate,
			&o.Discount, &o.Total, &o.Status, &o.Date, &o.IsWholesale,
			&o.PaymentID, &o.ShippingAddress, &o.CreatedAt, &o.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		list = append(list, &o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, o := range list {
		items, err := r.itemsFor(ctx, o.ID)
		if err != nil {
			return nil, err
		}
		o.Items = items
	}
	return list, nil
}

// UpdateStatus cambia el estado del pedido.
func (r *OrderRepo) UpdateStatus(ctx context.Context, id, status string) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE orders SET status = $2, updated_at = $3 WHERE id = $1`,
		id, status, time.Now(),
	)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina el pedido y sus líneas (cascade).
func (r *OrderRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete order: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
