package repository

import (
	"context"
	"time"

	"github.com/mdc-pro/mdcpro-api/internal/domain/entity"
)

// InvoiceFilter criterios opcionales para listar facturas.
type InvoiceFilter struct {
	Status    string
	Wholesale *bool
	VATOnly   bool
	From      time.Time
	To        time.Time
	Limit     int
	Offset    int
}

// InvoiceRepository define el puerto de persistencia para Invoice y sus líneas.
type InvoiceRepository interface {
	Create(ctx context.Context, invoice *entity.Invoice) error
	GetByID(ctx context.Context, id string) (*entity.Invoice, error)
	List(ctx context.Context, f InvoiceFilter) ([]*entity.Invoice, error)
	// MarkPaid fija status "paid" y el método de pago.
	MarkPaid(ctx context.Context, id, paymentMethod string) error
	UpdateStatus(ctx context.Context, id, status string) error
	// NextNumber reserva el siguiente consecutivo de factura (FAC-000123).
	NextNumber(ctx context.Context) (string, error)
	Delete(ctx context.Context, id string) error
}
