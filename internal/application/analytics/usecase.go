// Package analytics produce el panel de administración y los reportes de
// ingresos, gastos y provisión fiscal a partir de las facturas pagadas.
package analytics

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mdc-pro/mdcpro-api/internal/application/dto"
	"github.com/mdc-pro/mdcpro-api/internal/domain/entity"
	"github.com/mdc-pro/mdcpro-api/internal/domain/reporting"
	"github.com/mdc-pro/mdcpro-api/internal/domain/repository"
	"github.com/mdc-pro/mdcpro-api/internal/domain/tax"
	"github.com/mdc-pro/mdcpro-api/internal/infrastructure/store"
	"github.com/mdc-pro/mdcpro-api/pkg/logger"
)

// Valores por defecto del estimador fiscal (autónomo, tramo básico).
var (
	defaultAllowance = decimal.NewFromInt(12570)
	defaultRate      = decimal.NewFromFloat(0.20)
)

// topProductsLimit tamaño fijo del recorte de productos para los gráficos.
const topProductsLimit = 5

// UseCase consultas de agregación. Las facturas y gastos se leen a través de
// las colecciones con respaldo local: los reportes siguen disponibles cuando
// el remoto está caído, con los datos de la última sincronización.
type UseCase struct {
	invoices    *store.Collection[entity.Invoice]
	expenses    *store.Collection[entity.ExpenseItem]
	invoiceRepo repository.InvoiceRepository
	expenseRepo repository.ExpenseRepository
	orderRepo   repository.OrderRepository
	clientRepo  repository.ClientRepository
	invRepo     repository.InventoryRepository
	notifRepo   repository.NotificationRepository
	catalog     reporting.Catalog
	log         *logger.Logger
}

// NewUseCase construye el caso de uso de analítica.
func NewUseCase(
	invoices *store.Collection[entity.Invoice],
	expenses *store.Collection[entity.ExpenseItem],
	invoiceRepo repository.InvoiceRepository,
	expenseRepo repository.ExpenseRepository,
	orderRepo repository.OrderRepository,
	clientRepo repository.ClientRepository,
	invRepo repository.InventoryRepository,
	notifRepo repository.NotificationRepository,
	catalog reporting.Catalog,
	log *logger.Logger,
) *UseCase {
	return &UseCase{
		invoices:    invoices,
		expenses:    expenses,
		invoiceRepo: invoiceRepo,
		expenseRepo: expenseRepo,
		orderRepo:   orderRepo,
		clientRepo:  clientRepo,
		invRepo:     invRepo,
		notifRepo:   notifRepo,
		catalog:     catalog,
		log:         log,
	}
}

func (uc *UseCase) fetchInvoices(ctx context.Context) ([]entity.Invoice, error) {
	return uc.invoices.Fetch(ctx, func(ctx context.Context) ([]entity.Invoice, error) {
		list, err := uc.invoiceRepo.List(ctx, repository.InvoiceFilter{Limit: 5000})
		if err != nil {
			return nil, err
		}
		out := make([]entity.Invoice, 0, len(list))
		for _, inv := range list {
			out = append(out, *inv)
		}
		return out, nil
	})
}

func (uc *UseCase) fetchExpenses(ctx context.Context) ([]entity.ExpenseItem, error) {
	return uc.expenses.Fetch(ctx, func(ctx context.Context) ([]entity.ExpenseItem, error) {
		list, err := uc.expenseRepo.List(ctx, repository.ExpenseFilter{Limit: 5000})
		if err != nil {
			return nil, err
		}
		out := make([]entity.ExpenseItem, 0, len(list))
		for _, e := range list {
			out = append(out, *e)
		}
		return out, nil
	})
}

func sumExpenses(expenses []entity.ExpenseItem) decimal.Decimal {
	total := decimal.Zero
	for _, e := range expenses {
		total = total.Add(e.Amount)
	}
	return total
}

// Dashboard arma el resumen del panel de administración.
func (uc *UseCase) Dashboard(ctx context.Context) (*dto.DashboardResponse, error) {
	invoices, err := uc.fetchInvoices(ctx)
	if err != nil {
		return nil, err
	}
	expenses, err := uc.fetchExpenses(ctx)
	if err != nil {
		return nil, err
	}
	result := reporting.Aggregate(invoices, uc.catalog)
	totalExpenses := sumExpenses(expenses)

	resp := &dto.DashboardResponse{
		TotalIncome:   result.TotalIncome.StringFixed(2),
		TotalExpenses: totalExpenses.StringFixed(2),
		NetProfit:     result.TotalIncome.Sub(totalExpenses).StringFixed(2),
		Wholesale:     result.ByChannel.Wholesale.StringFixed(2),
		Retail:        result.ByChannel.Retail.StringFixed(2),
		TopProducts:   toRevenueBuckets(result.TopN(topProductsLimit)),
	}

	now := time.Now().UTC()
	monthIncome := decimal.Zero
	todayIncome := decimal.Zero
	for i := range invoices {
		inv := &invoices[i]
		date := inv.Date.UTC()
		if date.Year() == now.Year() {
			resp.InvoicesThisYear++
		}
		if !reporting.IsPaid(inv.Status) {
			continue
		}
		if date.Year() == now.Year() && date.Month() == now.Month() {
			monthIncome = monthIncome.Add(inv.Total)
			if date.Day() == now.Day() {
				todayIncome = todayIncome.Add(inv.Total)
			}
		}
	}
	resp.MonthIncome = monthIncome.StringFixed(2)
	resp.TodayIncome = todayIncome.StringFixed(2)

	// Contadores operativos: se consultan directo al remoto y degradan a cero
	// si no está disponible, sin tumbar el panel.
	if pending, err := uc.orderRepo.List(ctx, repository.OrderFilter{Status: entity.OrderStatusPending, Limit: 500}); err == nil {
		resp.PendingOrders = len(pending)
	} else {
		uc.log.Warn().Err(err).Msg("panel sin contador de pedidos pendientes")
	}
	if accounts, err := uc.clientRepo.List(ctx, "", entity.ClientStatusPending, 500, 0); err == nil {
		resp.PendingAccounts = len(accounts)
	} else {
		uc.log.Warn().Err(err).Msg("panel sin contador de cuentas pendientes")
	}
	if items, err := uc.invRepo.List(ctx, 1000, 0); err == nil {
		now := time.Now()
		for _, it := range items {
			if it.CriticalStock() {
				resp.CriticalStock++
			}
			if it.Expired(now) {
				resp.ExpiredBatches++
			}
		}
	} else {
		uc.log.Warn().Err(err).Msg("panel sin contadores de inventario")
	}
	if unread, err := uc.notifRepo.ListByRole(ctx, entity.RoleAdmin, true, 500); err == nil {
		resp.UnreadNotifications = len(unread)
	} else {
		uc.log.Warn().Err(err).Msg("panel sin contador de notificaciones")
	}

	return resp, nil
}

// RevenueReport agrega los ingresos de facturas pagadas por canal, producto y
// tiempo, acotado opcionalmente a un rango de fechas.
func (uc *UseCase) RevenueReport(ctx context.Context, from, to time.Time) (*dto.RevenueReportResponse, error) {
	invoices, err := uc.fetchInvoices(ctx)
	if err != nil {
		return nil, err
	}
	if !from.IsZero() || !to.IsZero() {
		filtered := invoices[:0]
		for _, inv := range invoices {
			if !from.IsZero() && inv.Date.Before(from) {
				continue
			}
			if !to.IsZero() && inv.Date.After(to) {
				continue
			}
			filtered = append(filtered, inv)
		}
		invoices = filtered
	}

	result := reporting.Aggregate(invoices, uc.catalog)
	resp := &dto.RevenueReportResponse{
		TotalIncome: result.TotalIncome.StringFixed(2),
		Wholesale:   result.ByChannel.Wholesale.StringFixed(2),
		Retail:      result.ByChannel.Retail.StringFixed(2),
		TopProducts: toRevenueBuckets(result.TopN(topProductsLimit)),
		ByProduct:   toRevenueBuckets(result.ByProduct),
	}
	for _, p := range result.TimeSeries {
		resp.TimeSeries = append(resp.TimeSeries, dto.RevenueTimePoint{
			Date:    p.Date.Format("2006-01-02"),
			Revenue: p.Amount.StringFixed(2),
		})
	}
	return resp, nil
}

func toRevenueBuckets(buckets []reporting.Bucket) []dto.RevenueBucket {
	out := make([]dto.RevenueBucket, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, dto.RevenueBucket{
			Category: b.Name,
			Revenue:  b.Revenue.StringFixed(2),
			Units:    b.Quantity,
		})
	}
	return out
}

// TaxEstimate estima la provisión fiscal anual sobre el beneficio neto
// (ingresos pagados menos gastos), con mínimo personal y tasa configurables.
func (uc *UseCase) TaxEstimate(ctx context.Context, in dto.TaxEstimateRequest) (*dto.TaxEstimateResponse, error) {
	invoices, err := uc.fetchInvoices(ctx)
	if err != nil {
		return nil, err
	}
	expenses, err := uc.fetchExpenses(ctx)
	if err != nil {
		return nil, err
	}

	allowance := defaultAllowance
	if in.PersonalAllowance != "" {
		if v, err := decimal.NewFromString(in.PersonalAllowance); err == nil && !v.IsNegative() {
			allowance = v
		}
	}
	rate := defaultRate
	if in.Rate != "" {
		if v, err := decimal.NewFromString(in.Rate); err == nil && !v.IsNegative() {
			rate = v
		}
	}

	income := reporting.Aggregate(invoices, uc.catalog).TotalIncome
	totalExpenses := sumExpenses(expenses)
	net := income.Sub(totalExpenses)

	return &dto.TaxEstimateResponse{
		Income:            income.StringFixed(2),
		Expenses:          totalExpenses.StringFixed(2),
		NetProfit:         net.StringFixed(2),
		PersonalAllowance: allowance.StringFixed(2),
		Rate:              rate.String(),
		Provision:         tax.EstimateProvision(net, allowance, rate).StringFixed(2),
	}, nil
}
