package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mdc-pro/mdcpro-api/internal/application/dto"
	"github.com/mdc-pro/mdcpro-api/internal/domain"
	"github.com/mdc-pro/mdcpro-api/internal/domain/entity"
	"github.com/mdc-pro/mdcpro-api/internal/domain/pricing"
	"github.com/mdc-pro/mdcpro-api/internal/domain/repository"
	"github.com/mdc-pro/mdcpro-api/pkg/logger"
)

// InvoiceUseCase casos de uso de facturación: emisión manual, emisión desde
// pedido, cobro y listados.
type InvoiceUseCase struct {
	invoiceRepo repository.InvoiceRepository
	orderRepo   repository.OrderRepository
	txRunner    BillingTxRunner
	tiers       []pricing.Tier
	log         *logger.Logger
}

// NewInvoiceUseCase construye el caso de uso de facturación.
func NewInvoiceUseCase(
	invoiceRepo repository.InvoiceRepository,
	orderRepo repository.OrderRepository,
	txRunner BillingTxRunner,
	log *logger.Logger,
) *InvoiceUseCase {
	return &InvoiceUseCase{
		invoiceRepo: invoiceRepo,
		orderRepo:   orderRepo,
		txRunner:    txRunner,
		tiers:       pricing.DefaultTiers(),
		log:         log,
	}
}

func parseDate(s string, fallback time.Time) time.Time {
	if s == "" {
		return fallback
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return fallback
	}
	return t
}

// CreateManual emite una factura sin pedido asociado (venta directa o
// servicio). El descuento por volumen aplica solo en facturas mayoristas.
func (uc *InvoiceUseCase) CreateManual(ctx context.Context, in dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error) {
	items, err := parseItems(in.Items)
	if err != nil {
		return nil, err
	}
	subtotal := subtotalOf(items)
	discount := decimal.Zero
	total := subtotal.Round(2)
	if in.IsWholesale {
		quote := pricing.MakeQuote(subtotal, pricing.SelectTier(totalUnits(items), uc.tiers))
		discount = quote.Discount
		total = quote.Total
	}

	number, err := uc.invoiceRepo.NextNumber(ctx)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	invoice := &entity.Invoice{
		ID:                 uuid.New().String(),
		InvoiceNumber:      number,
		ClientName:         in.ClientName,
		ClientEmail:        in.ClientEmail,
		ClientPhone:        in.ClientPhone,
		ClientAddress:      in.ClientAddress,
		ClientCityPostcode: in.ClientCityPostcode,
		Items:              items,
		Subtotal:           subtotal.Round(2),
		DiscountApplied:    discount,
		Total:              total,
		Status:             entity.OrderStatusPending,
		ServiceDate:        parseDate(in.ServiceDate, now),
		DueDate:            parseDate(in.DueDate, now.AddDate(0, 0, 30)),
		Date:               now,
		IsWholesale:        in.IsWholesale,
		IsVATInvoice:       in.IsVATInvoice,
		PaymentMethod:      in.PaymentMethod,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if err := uc.invoiceRepo.Create(ctx, invoice); err != nil {
		return nil, err
	}

	uc.log.Info().Str("invoice", invoice.InvoiceNumber).Str("total", invoice.Total.StringFixed(2)).Msg("factura emitida")
	return ToInvoiceResponse(invoice), nil
}

// CreateFromOrder emite la factura de un pedido existente. Numerar, copiar
// las líneas del pedido, marcarlo facturado y avisar al admin ocurre en una
// sola transacción.
func (uc *InvoiceUseCase) CreateFromOrder(ctx context.Context, orderID string) (*dto.InvoiceResponse, error) {
	order, err := uc.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	if order.Status == entity.OrderStatusCancelled {
		return nil, fmt.Errorf("%w: el pedido está cancelado", domain.ErrConflict)
	}

	var invoice *entity.Invoice
	err = uc.txRunner.RunBilling(ctx, func(
		orderRepo repository.OrderRepository,
		invoiceRepo repository.InvoiceRepository,
		notificationRepo repository.NotificationRepository,
	) error {
		number, err := invoiceRepo.NextNumber(ctx)
		if err != nil {
			return err
		}
		now := time.Now()
		invoice = &entity.Invoice{
			ID:              uuid.New().String(),
			InvoiceNumber:   number,
			OrderID:         order.ID,
			ClientName:      order.ClientName,
			ClientEmail:     order.ClientEmail,
			ClientAddress:   order.ShippingAddress,
			Items:           order.Items,
			Subtotal:        order.Subtotal,
			DiscountApplied: order.Discount,
			Total:           order.Total,
			Status:          order.Status,
			ServiceDate:     order.Date,
			DueDate:         now.AddDate(0, 0, 30),
			Date:            now,
			IsWholesale:     order.IsWholesale,
			CreatedAt:       now,
			UpdatedAt:       now,
		}
		if err := invoiceRepo.Create(ctx, invoice); err != nil {
			return err
		}
		return notificationRepo.Create(ctx, &entity.AppNotification{
			ID:         uuid.New().String(),
			Type:       entity.NotificationTypeOrder,
			Title:      "Factura emitida",
			Message:    fmt.Sprintf("Factura %s emitida para el pedido %s", invoice.InvoiceNumber, order.OrderNumber),
			Timestamp:  now,
			TargetRole: entity.RoleAdmin,
		})
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().Str("invoice", invoice.InvoiceNumber).Str("order_id", order.ID).Msg("factura emitida desde pedido")
	return ToInvoiceResponse(invoice), nil
}

// GetByID devuelve una factura por id.
func (uc *InvoiceUseCase) GetByID(ctx context.Context, id string) (*dto.InvoiceResponse, error) {
	invoice, err := uc.invoice(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToInvoiceResponse(invoice), nil
}

func (uc *InvoiceUseCase) invoice(ctx context.Context, id string) (*entity.Invoice, error) {
	invoice, err := uc.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, domain.ErrNotFound
	}
	return invoice, nil
}

// List lista facturas con filtros.
func (uc *InvoiceUseCase) List(ctx context.Context, f repository.InvoiceFilter) ([]*dto.InvoiceResponse, error) {
	invoices, err := uc.invoiceRepo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.InvoiceResponse, 0, len(invoices))
	for _, inv := range invoices {
		out = append(out, ToInvoiceResponse(inv))
	}
	return out, nil
}

// MarkPaid registra el cobro de la factura.
func (uc *InvoiceUseCase) MarkPaid(ctx context.Context, id, paymentMethod string) error {
	if paymentMethod == "" {
		paymentMethod = "transferencia"
	}
	return uc.invoiceRepo.MarkPaid(ctx, id, paymentMethod)
}

// Delete elimina una factura (solo admin desde el handler).
func (uc *InvoiceUseCase) Delete(ctx context.Context, id string) error {
	return uc.invoiceRepo.Delete(ctx, id)
}

// ToInvoiceResponse convierte la entidad al DTO de salida.
func ToInvoiceResponse(inv *entity.Invoice) *dto.InvoiceResponse {
	return &dto.InvoiceResponse{
		ID:                 inv.ID,
		InvoiceNumber:      inv.InvoiceNumber,
		OrderID:            inv.OrderID,
		ClientName:         inv.ClientName,
		ClientEmail:        inv.ClientEmail,
		ClientPhone:        inv.ClientPhone,
		ClientAddress:      inv.ClientAddress,
		ClientCityPostcode: inv.ClientCityPostcode,
		Items:              toLineItemResponses(inv.Items),
		Subtotal:           inv.Subtotal.StringFixed(2),
		DiscountApplied:    inv.DiscountApplied.StringFixed(2),
		Total:              inv.Total.StringFixed(2),
		Status:             inv.Status,
		ServiceDate:        inv.ServiceDate,
		DueDate:            inv.DueDate,
		Date:               inv.Date,
		IsWholesale:        inv.IsWholesale,
		IsVATInvoice:       inv.IsVATInvoice,
		PaymentMethod:      inv.PaymentMethod,
	}
}
