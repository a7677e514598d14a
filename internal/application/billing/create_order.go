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

// Currency moneda de todos los cobros.
const Currency = "GBP"

// OrderUseCase casos de uso de pedidos: cotización, creación atómica y listados.
type OrderUseCase struct {
	orderRepo  repository.OrderRepository
	clientRepo repository.ClientRepository
	txRunner   OrderTxRunner
	payments   PaymentVerifier
	tiers      []pricing.Tier
	log        *logger.Logger
}

// NewOrderUseCase construye el caso de uso de pedidos con la tabla de tramos vigente.
func NewOrderUseCase(
	orderRepo repository.OrderRepository,
	clientRepo repository.ClientRepository,
	txRunner OrderTxRunner,
	payments PaymentVerifier,
	log *logger.Logger,
) *OrderUseCase {
	return &OrderUseCase{
		orderRepo:  orderRepo,
		clientRepo: clientRepo,
		txRunner:   txRunner,
		payments:   payments,
		tiers:      pricing.DefaultTiers(),
		log:        log,
	}
}

// parseItems convierte las líneas del request derivando el total de cada una.
func parseItems(in []dto.LineItemRequest) ([]entity.LineItem, error) {
	items := make([]entity.LineItem, 0, len(in))
	for _, li := range in {
		price, err := decimal.NewFromString(li.UnitPrice)
		if err != nil || price.IsNegative() {
			return nil, fmt.Errorf("%w: precio unitario %q", domain.ErrInvalidInput, li.UnitPrice)
		}
		items = append(items, entity.NewLineItem(uuid.New().String(), li.Description, li.Quantity, price))
	}
	return items, nil
}

func subtotalOf(items []entity.LineItem) decimal.Decimal {
	sum := decimal.Zero
	for _, it := range items {
		sum = sum.Add(it.Total)
	}
	return sum
}

func totalUnits(items []entity.LineItem) int {
	units := 0
	for _, it := range items {
		units += it.Quantity
	}
	return units
}

// Quote cotiza un pedido mayorista sin crearlo ni tocar stock.
func (uc *OrderUseCase) Quote(_ context.Context, in dto.QuoteRequest) (*dto.QuoteResponse, error) {
	items, err := parseItems(in.Items)
	if err != nil {
		return nil, err
	}
	units := totalUnits(items)
	quote := pricing.MakeQuote(subtotalOf(items), pricing.SelectTier(units, uc.tiers))
	return &dto.QuoteResponse{
		TotalUnits:   units,
		TierName:     quote.TierName,
		Subtotal:     quote.Subtotal.StringFixed(2),
		DiscountRate: quote.DiscountRate.String(),
		Discount:     quote.Discount.StringFixed(2),
		Total:        quote.Total.StringFixed(2),
	}, nil
}

// Create crea un pedido para el cliente autenticado.
//
// Reglas: la cuenta debe estar aprobada; un pedido mayorista exige el mínimo
// de unidades; el total mayorista lleva el descuento del tramo; el pago se
// verifica ANTES de abrir la transacción; el descuento de stock, el pedido y
// la notificación al admin se confirman como una sola unidad o no se
// persiste nada.
func (uc *OrderUseCase) Create(ctx context.Context, clientID string, in dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	client, err := uc.clientRepo.GetByID(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, domain.ErrUserNotFound
	}
	if !client.IsApproved() {
		return nil, domain.ErrAccountNotApproved
	}

	items, err := parseItems(in.Items)
	if err != nil {
		return nil, err
	}
	units := totalUnits(items)
	if in.IsWholesale && units < pricing.MinimumOrderUnits {
		return nil, domain.ErrBelowMinimumOrder
	}

	subtotal := subtotalOf(items)
	order := &entity.Order{
		ID:              uuid.New().String(),
		OrderNumber:     fmt.Sprintf("PED-%s", uuid.New().String()[:8]),
		ClientName:      client.Name,
		ClientEmail:     client.Email,
		Items:           items,
		Subtotal:        subtotal.Round(2),
		DiscountRate:    decimal.Zero,
		Discount:        decimal.Zero,
		Total:           subtotal.Round(2),
		Status:          entity.OrderStatusPending,
		Date:            time.Now(),
		IsWholesale:     in.IsWholesale,
		PaymentID:       in.PaymentMethodID,
		ShippingAddress: in.ShippingAddress,
		CreatedAt:       time.Now(),
		UpdatedAt:       time.Now(),
	}
	if in.IsWholesale {
		quote := pricing.MakeQuote(subtotal, pricing.SelectTier(units, uc.tiers))
		order.DiscountRate = quote.DiscountRate
		order.Discount = quote.Discount
		order.Total = quote.Total
	}

	// El procesador se consulta fuera de la transacción: un cargo rechazado
	// no debe dejar stock bloqueado ni filas a medio escribir.
	if uc.payments != nil {
		if err := uc.payments.VerifyPaymentMethod(ctx, in.PaymentMethodID, order.Total, Currency); err != nil {
			return nil, err
		}
		if in.PaymentMethodID != "" {
			order.Status = entity.OrderStatusPaid
		}
	}

	var lowStock []*entity.InventoryItem
	err = uc.txRunner.RunOrder(ctx, func(
		inventoryRepo repository.InventoryRepository,
		orderRepo repository.OrderRepository,
		notificationRepo repository.NotificationRepository,
	) error {
		for _, it := range order.Items {
			touched, err := inventoryRepo.DecrementByName(ctx, it.Description, it.Quantity)
			if err != nil {
				return err
			}
			for _, batch := range touched {
				if batch.CriticalStock() {
					lowStock = append(lowStock, batch)
				}
			}
		}
		if err := orderRepo.Create(ctx, order); err != nil {
			return err
		}
		return notificationRepo.Create(ctx, &entity.AppNotification{
			ID:         uuid.New().String(),
			Type:       entity.NotificationTypeOrder,
			Title:      "Pedido nuevo",
			Message:    fmt.Sprintf("%s creó el pedido %s por %s", order.ClientName, order.OrderNumber, order.Total.StringFixed(2)),
			Timestamp:  time.Now(),
			TargetRole: entity.RoleAdmin,
		})
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("order_id", order.ID).
		Str("client", order.ClientEmail).
		Bool("wholesale", order.IsWholesale).
		Int("units", units).
		Str("total", order.Total.StringFixed(2)).
		Msg("pedido creado")

	uc.notifyLowStock(ctx, lowStock)

	return ToOrderResponse(order), nil
}

// notifyLowStock emite una notificación de stock por cada lote que quedó en
// nivel crítico. Es best-effort y ocurre fuera de la transacción del pedido.
func (uc *OrderUseCase) notifyLowStock(ctx context.Context, batches []*entity.InventoryItem) {
	if len(batches) == 0 {
		return
	}
	err := uc.txRunner.RunOrder(ctx, func(
		_ repository.InventoryRepository,
		_ repository.OrderRepository,
		notificationRepo repository.NotificationRepository,
	) error {
		for _, b := range batches {
			n := &entity.AppNotification{
				ID:         uuid.New().String(),
				Type:       entity.NotificationTypeStock,
				Title:      "Stock crítico",
				Message:    fmt.Sprintf("%s quedó en %d unidades (reorden: %d)", b.Name, b.Quantity, b.ReorderLevel),
				Timestamp:  time.Now(),
				TargetRole: entity.RoleAdmin,
			}
			if err := notificationRepo.Create(ctx, n); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		uc.log.Warn().Err(err).Msg("no se pudo registrar la alerta de stock crítico")
	}
}

// GetByID devuelve un pedido. Un cliente solo puede ver los suyos.
func (uc *OrderUseCase) GetByID(ctx context.Context, id, requesterEmail, requesterRole string) (*dto.OrderResponse, error) {
	order, err := uc.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	if requesterRole != entity.RoleAdmin && order.ClientEmail != requesterEmail {
		return nil, domain.ErrForbidden
	}
	return ToOrderResponse(order), nil
}

// List lista pedidos con filtros; los no-admin solo ven los propios.
func (uc *OrderUseCase) List(ctx context.Context, f repository.OrderFilter, requesterEmail, requesterRole string) ([]*dto.OrderResponse, error) {
	if requesterRole != entity.RoleAdmin {
		f.ClientEmail = requesterEmail
	}
	orders, err := uc.orderRepo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.OrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, ToOrderResponse(o))
	}
	return out, nil
}

// UpdateStatus avanza el estado de un pedido (solo admin desde el handler).
func (uc *OrderUseCase) UpdateStatus(ctx context.Context, id, status string) error {
	switch status {
	case entity.OrderStatusPending, entity.OrderStatusPaid, entity.OrderStatusShipped, entity.OrderStatusCancelled:
	default:
		return fmt.Errorf("%w: estado %q", domain.ErrInvalidInput, status)
	}
	return uc.orderRepo.UpdateStatus(ctx, id, status)
}

// ToOrderResponse convierte la entidad al DTO de salida.
func ToOrderResponse(o *entity.Order) *dto.OrderResponse {
	resp := &dto.OrderResponse{
		ID:              o.ID,
		OrderNumber:     o.OrderNumber,
		ClientName:      o.ClientName,
		ClientEmail:     o.ClientEmail,
		Items:           toLineItemResponses(o.Items),
		Subtotal:        o.Subtotal.StringFixed(2),
		DiscountRate:    o.DiscountRate.String(),
		Discount:        o.Discount.StringFixed(2),
		Total:           o.Total.StringFixed(2),
		Status:          o.Status,
		Date:            o.Date,
		IsWholesale:     o.IsWholesale,
		ShippingAddress: o.ShippingAddress,
	}
	return resp
}

func toLineItemResponses(items []entity.LineItem) []dto.LineItemResponse {
	out := make([]dto.LineItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, dto.LineItemResponse{
			ID:          it.ID,
			Description: it.Description,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice.StringFixed(2),
			Total:       it.Total.StringFixed(2),
		})
	}
	return out
}
