package analytics

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mdc-pro/mdcpro-api/internal/application/dto"
	"github.com/mdc-pro/mdcpro-api/internal/domain/entity"
	"github.com/mdc-pro/mdcpro-api/internal/domain/reporting"
	"github.com/mdc-pro/mdcpro-api/internal/domain/repository"
	"github.com/mdc-pro/mdcpro-api/internal/infrastructure/record"
	"github.com/mdc-pro/mdcpro-api/internal/infrastructure/store"
	"github.com/mdc-pro/mdcpro-api/pkg/logger"
)

// ── fakes mínimos ─────────────────────────────────────────────────────────────

type memCache struct {
	data map[string]string
}

func (m *memCache) Get(_ context.Context, k string) (string, error) { return m.data[k], nil }
func (m *memCache) Put(_ context.Context, k, v string) error {
	m.data[k] = v
	return nil
}

type fakeInvoiceRepo struct {
	invoices []*entity.Invoice
	fail     bool
}

func (f *fakeInvoiceRepo) Create(_ context.Context, _ *entity.Invoice) error { return nil }
func (f *fakeInvoiceRepo) GetByID(_ context.Context, _ string) (*entity.Invoice, error) {
	return nil, nil
}
func (f *fakeInvoiceRepo) List(_ context.Context, _ repository.InvoiceFilter) ([]*entity.Invoice, error) {
	if f.fail {
		return nil, errors.New("remoto caído")
	}
	return f.invoices, nil
}
func (f *fakeInvoiceRepo) MarkPaid(_ context.Context, _, _ string) error    { return nil }
func (f *fakeInvoiceRepo) UpdateStatus(_ context.Context, _, _ string) error { return nil }
func (f *fakeInvoiceRepo) NextNumber(_ context.Context) (string, error)      { return "FAC-000001", nil }
func (f *fakeInvoiceRepo) Delete(_ context.Context, _ string) error          { return nil }

type fakeExpenseRepo struct {
	expenses []*entity.ExpenseItem
	fail     bool
}

func (f *fakeExpenseRepo) Create(_ context.Context, _ *entity.ExpenseItem) error { return nil }
func (f *fakeExpenseRepo) GetByID(_ context.Context, _ string) (*entity.ExpenseItem, error) {
	return nil, nil
}
func (f *fakeExpenseRepo) List(_ context.Context, _ repository.ExpenseFilter) ([]*entity.ExpenseItem, error) {
	if f.fail {
		return nil, errors.New("remoto caído")
	}
	return f.expenses, nil
}
func (f *fakeExpenseRepo) Update(_ context.Context, _ *entity.ExpenseItem) error { return nil }
func (f *fakeExpenseRepo) Delete(_ context.Context, _ string) error              { return nil }

func paidInvoice(total string, wholesale bool, date time.Time) *entity.Invoice {
	return &entity.Invoice{
		ID:          "inv-" + total,
		Status:      "paid",
		Total:       decimal.RequireFromString(total),
		IsWholesale: wholesale,
		Date:        date,
		Items: []entity.LineItem{
			entity.NewLineItem("1", "Pienso premium", 1, decimal.RequireFromString(total)),
		},
	}
}

// prevMonthDay devuelve el día `day` del mes anterior al actual (UTC), para
// que las facturas históricas del fixture nunca caigan en el mes corriente.
func prevMonthDay(day int) time.Time {
	now := time.Now().UTC()
	lastOfPrev := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -1)
	return time.Date(lastOfPrev.Year(), lastOfPrev.Month(), day, 0, 0, 0, 0, time.UTC)
}

type fixture struct {
	uc          *UseCase
	invoiceRepo *fakeInvoiceRepo
	expenseRepo *fakeExpenseRepo
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	log := logger.New(logger.Config{Level: "error"})
	cache := &memCache{data: map[string]string{}}

	invoiceRepo := &fakeInvoiceRepo{invoices: []*entity.Invoice{
		paidInvoice("100.00", true, prevMonthDay(1)),
		paidInvoice("30.00", false, prevMonthDay(2)),
		paidInvoice("20.00", false, time.Now().UTC()),
		{ID: "inv-x", Status: "pending", Total: decimal.RequireFromString("999.00"),
			Date: time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)},
	}}
	expenseRepo := &fakeExpenseRepo{expenses: []*entity.ExpenseItem{
		{ID: "e1", Amount: decimal.RequireFromString("40.00"), Category: "proveedores"},
	}}

	invoices := store.NewCollection("invoices", cache, log,
		record.InvoiceToRow, record.InvoiceFromRow)
	expenses := store.NewCollection("expenses", cache, log,
		record.ExpenseToRow, record.ExpenseFromRow)

	uc := NewUseCase(invoices, expenses, invoiceRepo, expenseRepo,
		&stubOrderRepo{}, &stubClientRepo{}, &stubInventoryRepo{}, &stubNotifRepo{},
		reporting.NewCatalog([]string{"Pienso premium"}, nil), log)

	return &fixture{uc: uc, invoiceRepo: invoiceRepo, expenseRepo: expenseRepo}
}

type stubOrderRepo struct{}

func (s *stubOrderRepo) Create(_ context.Context, _ *entity.Order) error { return nil }
func (s *stubOrderRepo) GetByID(_ context.Context, _ string) (*entity.Order, error) {
	return nil, nil
}
func (s *stubOrderRepo) List(_ context.Context, _ repository.OrderFilter) ([]*entity.Order, error) {
	return []*entity.Order{{ID: "o1", Status: entity.OrderStatusPending}}, nil
}
func (s *stubOrderRepo) UpdateStatus(_ context.Context, _, _ string) error { return nil }
func (s *stubOrderRepo) Delete(_ context.Context, _ string) error          { return nil }

type stubClientRepo struct{}

func (s *stubClientRepo) Create(_ context.Context, _ *entity.Client) error { return nil }
func (s *stubClientRepo) GetByID(_ context.Context, _ string) (*entity.Client, error) {
	return nil, nil
}
func (s *stubClientRepo) GetByEmail(_ context.Context, _ string) (*entity.Client, error) {
	return nil, nil
}
func (s *stubClientRepo) List(_ context.Context, _, _ string, _, _ int) ([]*entity.Client, error) {
	return nil, nil
}
func (s *stubClientRepo) Update(_ context.Context, _ *entity.Client) error     { return nil }
func (s *stubClientRepo) UpdateStatus(_ context.Context, _, _ string) error    { return nil }
func (s *stubClientRepo) Delete(_ context.Context, _ string) error             { return nil }
func (s *stubClientRepo) AddPet(_ context.Context, _ *entity.PetDetails) error { return nil }
func (s *stubClientRepo) ListPets(_ context.Context, _ string) ([]*entity.PetDetails, error) {
	return nil, nil
}
func (s *stubClientRepo) DeletePet(_ context.Context, _ string) error { return nil }

type stubInventoryRepo struct{}

func (s *stubInventoryRepo) Create(_ context.Context, _ *entity.InventoryItem) error { return nil }
func (s *stubInventoryRepo) GetByID(_ context.Context, _ string) (*entity.InventoryItem, error) {
	return nil, nil
}
func (s *stubInventoryRepo) List(_ context.Context, _, _ int) ([]*entity.InventoryItem, error) {
	return []*entity.InventoryItem{
		{ID: "i1", Quantity: 2, ReorderLevel: 5},
		{ID: "i2", Quantity: 50, ReorderLevel: 5},
	}, nil
}
func (s *stubInventoryRepo) Update(_ context.Context, _ *entity.InventoryItem) error { return nil }
func (s *stubInventoryRepo) DecrementByName(_ context.Context, _ string, _ int) ([]*entity.InventoryItem, error) {
	return nil, nil
}
func (s *stubInventoryRepo) Delete(_ context.Context, _ string) error { return nil }

type stubNotifRepo struct{}

func (s *stubNotifRepo) Create(_ context.Context, _ *entity.AppNotification) error { return nil }
func (s *stubNotifRepo) ListByRole(_ context.Context, _ string, _ bool, _ int) ([]*entity.AppNotification, error) {
	return []*entity.AppNotification{{ID: "n1"}, {ID: "n2"}}, nil
}
func (s *stubNotifRepo) MarkRead(_ context.Context, _ string) error    { return nil }
func (s *stubNotifRepo) MarkAllRead(_ context.Context, _ string) error { return nil }

// ── tests ─────────────────────────────────────────────────────────────────────

func TestDashboard_Totales(t *testing.T) {
	fx := newFixture(t)

	resp, err := fx.uc.Dashboard(context.Background())
	require.NoError(t, err)

	// solo cuentan las facturas pagadas: 100 + 30 + 20
	assert.Equal(t, "150.00", resp.TotalIncome)
	assert.Equal(t, "40.00", resp.TotalExpenses)
	assert.Equal(t, "110.00", resp.NetProfit)
	// las del mes anterior no entran en el mes corriente ni en hoy
	assert.Equal(t, "20.00", resp.MonthIncome)
	assert.Equal(t, "20.00", resp.TodayIncome)
	assert.Equal(t, "100.00", resp.Wholesale)
	assert.Equal(t, "50.00", resp.Retail)
	require.NotEmpty(t, resp.TopProducts)
	assert.Equal(t, "pienso premium", resp.TopProducts[0].Category)
	assert.Equal(t, 1, resp.PendingOrders)
	assert.Equal(t, 1, resp.CriticalStock)
	assert.Equal(t, 2, resp.UnreadNotifications)

	// en enero las facturas del mes anterior caen en el año previo
	wantYear := 3
	if prevMonthDay(1).Year() != time.Now().UTC().Year() {
		wantYear = 1
	}
	assert.Equal(t, wantYear, resp.InvoicesThisYear)
}

func TestRevenueReport_PorCanal(t *testing.T) {
	fx := newFixture(t)

	resp, err := fx.uc.RevenueReport(context.Background(), time.Time{}, time.Time{})
	require.NoError(t, err)

	assert.Equal(t, "150.00", resp.TotalIncome)
	assert.Equal(t, "100.00", resp.Wholesale)
	assert.Equal(t, "50.00", resp.Retail)
	require.NotEmpty(t, resp.ByProduct)
	assert.Equal(t, "pienso premium", resp.ByProduct[0].Category)
	require.NotEmpty(t, resp.TopProducts)
	assert.Equal(t, resp.ByProduct[0], resp.TopProducts[0])
}

// TestRevenueReport_TopProductosRecorte el recorte para gráficos es de tamaño
// fijo: con más productos que el límite, TopProducts trae los cinco de mayor
// ingreso y ByProduct sigue completo.
func TestRevenueReport_TopProductosRecorte(t *testing.T) {
	log := logger.New(logger.Config{Level: "error"})
	cache := &memCache{data: map[string]string{}}

	names := []string{
		"snack de pollo", "snack de res", "snack de pato",
		"snack de cordero", "snack mixto", "snack vegano",
	}
	invs := make([]*entity.Invoice, 0, len(names))
	for i, name := range names {
		total := decimal.NewFromInt(int64(10 * (i + 1)))
		invs = append(invs, &entity.Invoice{
			ID:     "inv-top-" + name,
			Status: "paid",
			Total:  total,
			Date:   time.Now().UTC(),
			Items: []entity.LineItem{
				entity.NewLineItem("1", name, 1, total),
			},
		})
	}

	invoices := store.NewCollection("invoices", cache, log,
		record.InvoiceToRow, record.InvoiceFromRow)
	expenses := store.NewCollection("expenses", cache, log,
		record.ExpenseToRow, record.ExpenseFromRow)
	uc := NewUseCase(invoices, expenses,
		&fakeInvoiceRepo{invoices: invs}, &fakeExpenseRepo{},
		&stubOrderRepo{}, &stubClientRepo{}, &stubInventoryRepo{}, &stubNotifRepo{},
		reporting.NewCatalog(names, nil), log)

	resp, err := uc.RevenueReport(context.Background(), time.Time{}, time.Time{})
	require.NoError(t, err)

	assert.Len(t, resp.ByProduct, 6)
	require.Len(t, resp.TopProducts, 5)
	assert.Equal(t, "snack vegano", resp.TopProducts[0].Category)
	assert.Equal(t, "60.00", resp.TopProducts[0].Revenue)
	// el bucket de menor ingreso queda fuera del recorte
	assert.Equal(t, "snack de pollo", resp.ByProduct[5].Category)
}

func TestRevenueReport_RangoDeFechas(t *testing.T) {
	fx := newFixture(t)

	resp, err := fx.uc.RevenueReport(context.Background(),
		prevMonthDay(2), time.Time{})
	require.NoError(t, err)

	// la factura del día 1 queda fuera del rango
	assert.Equal(t, "50.00", resp.TotalIncome)
}

func TestTaxEstimate_Defecto(t *testing.T) {
	fx := newFixture(t)

	resp, err := fx.uc.TaxEstimate(context.Background(), dto.TaxEstimateRequest{})
	require.NoError(t, err)

	// neto 110 por debajo del mínimo personal: provisión cero
	assert.Equal(t, "110.00", resp.NetProfit)
	assert.Equal(t, "0.00", resp.Provision)
}

func TestTaxEstimate_Parametros(t *testing.T) {
	fx := newFixture(t)

	resp, err := fx.uc.TaxEstimate(context.Background(), dto.TaxEstimateRequest{
		PersonalAllowance: "50",
		Rate:              "0.20",
	})
	require.NoError(t, err)

	// (110 − 50) × 0.20 = 12.00
	assert.Equal(t, "12.00", resp.Provision)
}

func TestDashboard_RemotoCaidoUsaCache(t *testing.T) {
	fx := newFixture(t)

	// primera lectura exitosa siembra el cache
	_, err := fx.uc.Dashboard(context.Background())
	require.NoError(t, err)

	fx.invoiceRepo.fail = true
	fx.expenseRepo.fail = true

	resp, err := fx.uc.Dashboard(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "150.00", resp.TotalIncome)
	assert.Equal(t, "40.00", resp.TotalExpenses)
}
