package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mdc-pro/mdcpro-api/internal/domain/repository"
)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunOrder inicia una transacción con los repos que participan en la
// creación de un pedido (descuento de stock, pedido y notificación) y hace
// Commit o Rollback como unidad.
func (r *TxRunner) RunOrder(ctx context.Context, fn func(
	inventoryRepo repository.InventoryRepository,
	orderRepo repository.OrderRepository,
	notificationRepo repository.NotificationRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	inventoryRepo := NewInventoryRepository(tx)
	orderRepo := NewOrderRepository(tx)
	notificationRepo := NewNotificationRepository(tx)

	if err := fn(inventoryRepo, orderRepo, notificationRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunBilling inicia una transacción con repos de pedidos y facturación
// (emitir factura desde un pedido es una sola unidad de trabajo).
func (r *TxRunner) RunBilling(ctx context.Context, fn func(
	orderRepo repository.OrderRepository,
	invoiceRepo repository.InvoiceRepository,
	notificationRepo repository.NotificationRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	orderRepo := NewOrderRepository(tx)
	invoiceRepo := NewInvoiceRepository(tx)
	notificationRepo := NewNotificationRepository(tx)

	if err := fn(orderRepo, invoiceRepo, notificationRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
