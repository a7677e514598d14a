package billing

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mdc-pro/mdcpro-api/internal/application/dto"
	"github.com/mdc-pro/mdcpro-api/internal/domain"
	"github.com/mdc-pro/mdcpro-api/internal/domain/entity"
	"github.com/mdc-pro/mdcpro-api/internal/domain/repository"
	"github.com/mdc-pro/mdcpro-api/pkg/logger"
)

// ── fakes ─────────────────────────────────────────────────────────────────────

type fakeInventoryRepo struct {
	stock map[string]int // nombre -> unidades disponibles
	level map[string]int // nombre -> nivel de reorden
}

func (f *fakeInventoryRepo) Create(_ context.Context, _ *entity.InventoryItem) error { return nil }
func (f *fakeInventoryRepo) GetByID(_ context.Context, _ string) (*entity.InventoryItem, error) {
	return nil, nil
}
func (f *fakeInventoryRepo) List(_ context.Context, _, _ int) ([]*entity.InventoryItem, error) {
	return nil, nil
}
func (f *fakeInventoryRepo) Update(_ context.Context, _ *entity.InventoryItem) error { return nil }
func (f *fakeInventoryRepo) Delete(_ context.Context, _ string) error                { return nil }

func (f *fakeInventoryRepo) DecrementByName(_ context.Context, name string, qty int) ([]*entity.InventoryItem, error) {
	have := f.stock[name]
	if have < qty {
		return nil, domain.ErrInsufficientStock
	}
	f.stock[name] = have - qty
	return []*entity.InventoryItem{{
		Name:         name,
		Quantity:     f.stock[name],
		ReorderLevel: f.level[name],
	}}, nil
}

type fakeOrderRepo struct {
	created []*entity.Order
}

func (f *fakeOrderRepo) Create(_ context.Context, o *entity.Order) error {
	f.created = append(f.created, o)
	return nil
}
func (f *fakeOrderRepo) GetByID(_ context.Context, id string) (*entity.Order, error) {
	for _, o := range f.created {
		if o.ID == id {
			return o, nil
		}
	}
	return nil, nil
}
func (f *fakeOrderRepo) List(_ context.Context, filter repository.OrderFilter) ([]*entity.Order, error) {
	var out []*entity.Order
	for _, o := range f.created {
		if filter.ClientEmail != "" && o.ClientEmail != filter.ClientEmail {
			continue
		}
		out = append(out, o)
	}
	return out, nil
}
func (f *fakeOrderRepo) UpdateStatus(_ context.Context, id, status string) error {
	for _, o := range f.created {
		if o.ID == id {
			o.Status = status
			return nil
		}
	}
	return domain.ErrNotFound
}
func (f *fakeOrderRepo) Delete(_ context.Context, _ string) error { return nil }

type fakeNotificationRepo struct {
	created []*entity.AppNotification
}

func (f *fakeNotificationRepo) Create(_ context.Context, n *entity.AppNotification) error {
	f.created = append(f.created, n)
	return nil
}
func (f *fakeNotificationRepo) ListByRole(_ context.Context, _ string, _ bool, _ int) ([]*entity.AppNotification, error) {
	return f.created, nil
}
func (f *fakeNotificationRepo) MarkRead(_ context.Context, _ string) error    { return nil }
func (f *fakeNotificationRepo) MarkAllRead(_ context.Context, _ string) error { return nil }

// fakeTxRunner simula la transacción: si fn falla, descarta todo lo escrito
// en los repos durante el callback.
type fakeTxRunner struct {
	inventory     *fakeInventoryRepo
	orders        *fakeOrderRepo
	notifications *fakeNotificationRepo
}

func (f *fakeTxRunner) RunOrder(ctx context.Context, fn func(
	repository.InventoryRepository,
	repository.OrderRepository,
	repository.NotificationRepository,
) error) error {
	stockBefore := make(map[string]int, len(f.inventory.stock))
	for k, v := range f.inventory.stock {
		stockBefore[k] = v
	}
	ordersBefore := len(f.orders.created)
	notifsBefore := len(f.notifications.created)

	if err := fn(f.inventory, f.orders, f.notifications); err != nil {
		f.inventory.stock = stockBefore
		f.orders.created = f.orders.created[:ordersBefore]
		f.notifications.created = f.notifications.created[:notifsBefore]
		return err
	}
	return nil
}

type fakePayments struct {
	declined bool
	calls    int
}

func (f *fakePayments) VerifyPaymentMethod(_ context.Context, _ string, _ decimal.Decimal, _ string) error {
	f.calls++
	if f.declined {
		return domain.ErrPaymentDeclined
	}
	return nil
}

type fixture struct {
	uc            *OrderUseCase
	inventory     *fakeInventoryRepo
	orders        *fakeOrderRepo
	notifications *fakeNotificationRepo
	clients       *stubClientRepo
	payments      *fakePayments
}

type stubClientRepo struct {
	client *entity.Client
}

func (s *stubClientRepo) Create(_ context.Context, _ *entity.Client) error { return nil }
func (s *stubClientRepo) GetByID(_ context.Context, id string) (*entity.Client, error) {
	if s.client != nil && s.client.ID == id {
		return s.client, nil
	}
	return nil, nil
}
func (s *stubClientRepo) GetByEmail(_ context.Context, _ string) (*entity.Client, error) {
	return nil, nil
}
func (s *stubClientRepo) List(_ context.Context, _, _ string, _, _ int) ([]*entity.Client, error) {
	return nil, nil
}
func (s *stubClientRepo) Update(_ context.Context, _ *entity.Client) error      { return nil }
func (s *stubClientRepo) UpdateStatus(_ context.Context, _, _ string) error     { return nil }
func (s *stubClientRepo) Delete(_ context.Context, _ string) error              { return nil }
func (s *stubClientRepo) AddPet(_ context.Context, _ *entity.PetDetails) error  { return nil }
func (s *stubClientRepo) ListPets(_ context.Context, _ string) ([]*entity.PetDetails, error) {
	return nil, nil
}
func (s *stubClientRepo) DeletePet(_ context.Context, _ string) error { return nil }

func newFixture(stock map[string]int) *fixture {
	inventory := &fakeInventoryRepo{stock: stock, level: map[string]int{}}
	orders := &fakeOrderRepo{}
	notifications := &fakeNotificationRepo{}
	clients := &stubClientRepo{client: &entity.Client{
		ID:     "cli-1",
		Name:   "Tienda Patitas",
		Email:  "compras@patitas.example",
		Role:   entity.RoleDistributor,
		Status: entity.ClientStatusApproved,
	}}
	payments := &fakePayments{}
	tx := &fakeTxRunner{inventory: inventory, orders: orders, notifications: notifications}
	log := logger.New(logger.Config{Level: "error"})

	return &fixture{
		uc:            NewOrderUseCase(orders, clients, tx, payments, log),
		inventory:     inventory,
		orders:        orders,
		notifications: notifications,
		clients:       clients,
		payments:      payments,
	}
}

func wholesaleRequest(qty int) dto.CreateOrderRequest {
	return dto.CreateOrderRequest{
		Items: []dto.LineItemRequest{
			{Description: "Pienso premium", Quantity: qty, UnitPrice: "10.00"},
		},
		IsWholesale:     true,
		PaymentMethodID: "pm_ok",
	}
}

// ── tests ─────────────────────────────────────────────────────────────────────

func TestCreateOrder_AplicaTramoDeDescuento(t *testing.T) {
	fx := newFixture(map[string]int{"Pienso premium": 100})

	resp, err := fx.uc.Create(context.Background(), "cli-1", wholesaleRequest(25))
	require.NoError(t, err)

	// 25 unidades caen en el tramo del 25%
	assert.Equal(t, "250.00", resp.Subtotal)
	assert.Equal(t, "62.50", resp.Discount)
	assert.Equal(t, "187.50", resp.Total)
	assert.Equal(t, 75, fx.inventory.stock["Pienso premium"])
	require.Len(t, fx.orders.created, 1)
	require.Len(t, fx.notifications.created, 1)
	assert.Equal(t, entity.NotificationTypeOrder, fx.notifications.created[0].Type)
}

func TestCreateOrder_MinoristaSinDescuento(t *testing.T) {
	fx := newFixture(map[string]int{"Pienso premium": 100})

	resp, err := fx.uc.Create(context.Background(), "cli-1", dto.CreateOrderRequest{
		Items: []dto.LineItemRequest{
			{Description: "Pienso premium", Quantity: 2, UnitPrice: "10.00"},
		},
		IsWholesale: false,
	})
	require.NoError(t, err)
	assert.Equal(t, "20.00", resp.Total)
	assert.Equal(t, "0.00", resp.Discount)
}

func TestCreateOrder_BajoMinimoMayorista(t *testing.T) {
	fx := newFixture(map[string]int{"Pienso premium": 100})

	_, err := fx.uc.Create(context.Background(), "cli-1", wholesaleRequest(5))
	assert.ErrorIs(t, err, domain.ErrBelowMinimumOrder)
	assert.Empty(t, fx.orders.created)
	assert.Equal(t, 100, fx.inventory.stock["Pienso premium"])
}

func TestCreateOrder_StockInsuficienteRevierteTodo(t *testing.T) {
	fx := newFixture(map[string]int{"Pienso premium": 10})

	_, err := fx.uc.Create(context.Background(), "cli-1", wholesaleRequest(25))
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	// nada quedó persistido: ni pedido, ni descuento de stock, ni notificación
	assert.Empty(t, fx.orders.created)
	assert.Empty(t, fx.notifications.created)
	assert.Equal(t, 10, fx.inventory.stock["Pienso premium"])
}

func TestCreateOrder_PagoRechazadoNoTocaStock(t *testing.T) {
	fx := newFixture(map[string]int{"Pienso premium": 100})
	fx.payments.declined = true

	_, err := fx.uc.Create(context.Background(), "cli-1", wholesaleRequest(25))
	assert.ErrorIs(t, err, domain.ErrPaymentDeclined)
	assert.Equal(t, 1, fx.payments.calls, "el pago se verifica antes de la transacción")
	assert.Equal(t, 100, fx.inventory.stock["Pienso premium"])
	assert.Empty(t, fx.orders.created)
}

func TestCreateOrder_CuentaSinAprobar(t *testing.T) {
	fx := newFixture(map[string]int{"Pienso premium": 100})
	fx.clients.client.Status = entity.ClientStatusPending

	_, err := fx.uc.Create(context.Background(), "cli-1", wholesaleRequest(25))
	assert.ErrorIs(t, err, domain.ErrAccountNotApproved)
}

func TestCreateOrder_StockCriticoNotifica(t *testing.T) {
	fx := newFixture(map[string]int{"Pienso premium": 30})
	fx.inventory.level["Pienso premium"] = 10

	_, err := fx.uc.Create(context.Background(), "cli-1", wholesaleRequest(25))
	require.NoError(t, err)

	// pedido + alerta de stock crítico (quedaron 5, reorden 10)
	require.Len(t, fx.notifications.created, 2)
	assert.Equal(t, entity.NotificationTypeStock, fx.notifications.created[1].Type)
}

func TestQuote_NoTocaNada(t *testing.T) {
	fx := newFixture(map[string]int{"Pienso premium": 100})

	resp, err := fx.uc.Quote(context.Background(), dto.QuoteRequest{
		Items: []dto.LineItemRequest{
			{Description: "Pienso premium", Quantity: 101, UnitPrice: "1.00"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "Oro", resp.TierName)
	assert.Equal(t, "55.55", resp.Total) // 101 × 1.00 con 45%: 101 − 45.45
	assert.Equal(t, 100, fx.inventory.stock["Pienso premium"])
	assert.Empty(t, fx.orders.created)
}

func TestCreateOrder_PrecioInvalido(t *testing.T) {
	fx := newFixture(map[string]int{"Pienso premium": 100})

	_, err := fx.uc.Create(context.Background(), "cli-1", dto.CreateOrderRequest{
		Items: []dto.LineItemRequest{
			{Description: "Pienso premium", Quantity: 10, UnitPrice: "no-numerico"},
		},
		IsWholesale: true,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
