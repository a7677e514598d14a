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

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

// InvoiceRepo implementación de InvoiceRepository sobre PostgreSQL (usable con pool o tx).
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

// Create persiste cabecera y líneas de la factura.
func (r *InvoiceRepo) Create(ctx context.Context, invoice *entity.Invoice) error {
	if invoice.ID == "" {
		invoice.ID = uuid.New().String()
	}
	var serviceDate, dueDate *time.Time
	if !invoice.ServiceDate.IsZero() {
		serviceDate = &invoice.ServiceDate
	}
	if !invoice.DueDate.IsZero() {
		dueDate = &invoice.DueDate
	}
	query := `
		INSERT INTO invoices (id, invoice_number, order_id, client_name, client_email,
			client_phone, client_address, client_city_postcode, subtotal, discount_applied,
			total, status, service_date, due_date, date, is_wholesale, is_vat_invoice,
			payment_method, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)`
	_, err := r.q.Exec(ctx, query,
		invoice.ID, invoice.InvoiceNumber, nullIfEmpty(invoice.OrderID), invoice.ClientName,
		invoice.ClientEmail, invoice.ClientPhone, invoice.ClientAddress, invoice.ClientCityPostcode,
		invoice.Subtotal, invoice.DiscountApplied, invoice.Total, invoice.Status,
		serviceDate, dueDate, invoice.Date, invoice.IsWholesale, invoice.IsVATInvoice,
		nullIfEmpty(invoice.PaymentMethod), invoice.CreatedAt, invoice.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert invoice: %w", err)
	}
	for i := range invoice.Items {
		item := &invoice.Items[i]
		if item.ID == "" {
			item.ID = uuid.New().String()
		}
		_, err := r.q.Exec(ctx,
			`INSERT INTO invoice_items (id, invoice_id, description, quantity, unit_price, total)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			item.ID, invoice.ID, item.Description, item.Quantity, item.UnitPrice, item.Total,
		)
		if err != nil {
			return fmt.Errorf("insert invoice item: %w", err)
		}
	}
	return nil
}

func (r *InvoiceRepo) itemsFor(ctx context.Context, invoiceID string) ([]entity.LineItem, error) {
	rows, err := r.q.Query(ctx,
		`SELECT id, description, quantity, unit_price, total
		 FROM invoice_items WHERE invoice_id = $1 ORDER BY id`,
		invoiceID,
	)
	if err != nil {
		return nil, fmt.Errorf("list invoice items: %w", err)
	}
	defer rows.Close()
	var items []entity.LineItem
	for rows.Next() {
		var li entity.LineItem
		if err := rows.Scan(&li.ID, &li.Description, &li.Quantity, &li.UnitPrice, &li.Total); err != nil {
			return nil, fmt.Errorf("scan invoice item: %w", err)
		}
		items = append(items, li)
	}
	return items, rows.Err()
}

func scanInvoice(row pgx.Row) (*entity.Invoice, error) {
	var inv entity.Invoice
	var orderID, paymentMethod *string
	var serviceDate, dueDate *time.Time
	err := row.Scan(
		&inv.ID, &inv.InvoiceNumber, &orderID, &inv.ClientName, &inv.ClientEmail,
		&inv.ClientPhone, &inv.ClientAddress, &inv.ClientCityPostcode,
		&inv.Subtotal, &inv.DiscountApplied, &inv.Total, &inv.Status,
		&serviceDate, &dueDate, &inv.Date, &inv.IsWholesale, &inv.IsVATInvoice,
		&paymentMethod, &inv.CreatedAt, &inv.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan invoice: %w", err)
	}
	inv.OrderID = derefStr(orderID)
	inv.PaymentMethod = derefStr(paymentMethod)
	if serviceDate != nil {
		inv.ServiceDate = *serviceDate
	}
	if dueDate != nil {
		inv.DueDate = *dueDate
	}
	return &inv, nil
}

const invoiceColumns = `id, invoice_number, order_id, client_name, client_email,
	client_phone, client_address, client_city_postcode, subtotal, discount_applied,
	total, status, service_date, due_date, date, is_wholesale, is_vat_invoice,
	payment_method, created_at, updated_at`

// GetByID obtiene una factura completa por id; nil si no existe.
func (r *InvoiceRepo) GetByID(ctx context.Context, id string) (*entity.Invoice, error) {
	inv, err := scanInvoice(r.q.QueryRow(ctx, `SELECT `+invoiceColumns+` FROM invoices WHERE id = $1`, id))
	if err != nil || inv == nil {
		return inv, err
	}
	items, err := r.itemsFor(ctx, inv.ID)
	if err != nil {
		return nil, err
	}
	inv.Items = items
	return inv, nil
}

// List devuelve facturas según el filtro, descendente por fecha, con sus líneas.
func (r *InvoiceRepo) List(ctx context.Context, f repository.InvoiceFilter) ([]*entity.Invoice, error) {
	b := psql.Select(
		"id", "invoice_number", "order_id", "client_name", "client_email",
		"client_phone", "client_address", "client_city_postcode", "subtotal", "discount_applied",
		"total", "status", "service_date", "due_date", "date", "is_wholesale", "is_vat_invoice",
		"payment_method", "created_at", "updated_at",
	).From("invoices").OrderBy("date DESC")

	if f.Status != "" {
		b = b.Where(sq.Eq{"status": f.Status})
	}
	if f.Wholesale != nil {
		b = b.Where(sq.Eq{"is_wholesale": *f.Wholesale})
	}
	if f.VATOnly {
		b = b.Where(sq.Eq{"is_vat_invoice": true})
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
		return nil, fmt.Errorf("build invoice query: %w", err)
	}
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()

	var list []*entity.Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, inv := range list {
		items, err := r.itemsFor(ctx, inv.ID)
		if err != nil {
			return nil, err
		}
		inv.Items = items
	}
	return list, nil
}

// MarkPaid fija status "paid" y el método de pago.
func (r *InvoiceRepo) MarkPaid(ctx context.Context, id, paymentMethod string) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE invoices SET status = 'paid', payment_method = $2, updated_at = $3 WHERE id = $1`,
		id, nullIfEmpty(paymentMethod), time.Now(),
	)
	if err != nil {
		return fmt.Errorf("mark invoice paid: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateStatus cambia el estado de la factura.
func (r *InvoiceRepo) UpdateStatus(ctx context.Context, id, status string) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE invoices SET status = $2, updated_at = $3 WHERE id = $1`,
		id, status, time.Now(),
	)
	if err != nil {
		return fmt.Errorf("update invoice status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// NextNumber reserva el siguiente consecutivo de la secuencia (FAC-000123).
func (r *InvoiceRepo) NextNumber(ctx context.Context) (string, error) {
	var n int64
	if err := r.q.QueryRow(ctx, `SELECT nextval('invoice_number_seq')`).Scan(&n); err != nil {
		return "", fmt.Errorf("next invoice number: %w", err)
	}
	return fmt.Sprintf("FAC-%06d", n), nil
}

// Delete elimina la factura y sus líneas (cascade).
func (r *InvoiceRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM invoices WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete invoice: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
