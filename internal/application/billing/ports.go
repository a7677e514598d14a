package billing

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/mdc-pro/mdcpro-api/internal/domain/entity"
	"github.com/mdc-pro/mdcpro-api/internal/domain/repository"
)

// OrderTxRunner ejecuta una función dentro de una transacción que incluye los
// repos que participan en la creación de un pedido. Si fn retorna error el
// caller hace rollback de todo (descuento de stock incluido).
type OrderTxRunner interface {
	RunOrder(ctx context.Context, fn func(
		inventoryRepo repository.InventoryRepository,
		orderRepo repository.OrderRepository,
		notificationRepo repository.NotificationRepository,
	) error) error
}

// BillingTxRunner ejecuta una función dentro de una transacción de facturación.
type BillingTxRunner interface {
	RunBilling(ctx context.Context, fn func(
		orderRepo repository.OrderRepository,
		invoiceRepo repository.InvoiceRepository,
		notificationRepo repository.NotificationRepository,
	) error) error
}

// PaymentVerifier valida el método de pago tokenizado antes de comprometer el
// pedido. domain.ErrPaymentDeclined cuando el procesador rechaza.
type PaymentVerifier interface {
	VerifyPaymentMethod(ctx context.Context, methodID string, amount decimal.Decimal, currency string) error
}

// InvoicePDFGenerator genera el documento imprimible de una factura.
type InvoicePDFGenerator interface {
	GenerateInvoicePDF(ctx context.Context, invoice *entity.Invoice) ([]byte, error)
}
