package dto

// DashboardResponse resumen del panel de administración.
type DashboardResponse struct {
	TotalIncome         string          `json:"total_income"`
	MonthIncome         string          `json:"month_income"`
	TodayIncome         string          `json:"today_income"`
	TotalExpenses       string          `json:"total_expenses"`
	NetProfit           string          `json:"net_profit"`
	Wholesale           string          `json:"wholesale"`
	Retail              string          `json:"retail"`
	TopProducts         []RevenueBucket `json:"top_products"`
	PendingOrders       int             `json:"pending_orders"`
	PendingAccounts     int             `json:"pending_accounts"`
	CriticalStock       int             `json:"critical_stock"`
	ExpiredBatches      int             `json:"expired_batches"`
	UnreadNotifications int             `json:"unread_notifications"`
	InvoicesThisYear    int             `json:"invoices_this_year"`
}

// RevenueReportResponse reporte de ingresos de facturas pagadas. TopProducts
// es el recorte de tamaño fijo para los gráficos; ByProduct trae todos los
// buckets.
type RevenueReportResponse struct {
	TotalIncome string             `json:"total_income"`
	Wholesale   string             `json:"wholesale"`
	Retail      string             `json:"retail"`
	TopProducts []RevenueBucket    `json:"top_products"`
	ByProduct   []RevenueBucket    `json:"by_product"`
	TimeSeries  []RevenueTimePoint `json:"time_series"`
}

// RevenueBucket ingresos acumulados de una categoría de producto.
type RevenueBucket struct {
	Category string `json:"category"`
	Revenue  string `json:"revenue"`
	Units    int    `json:"units"`
}

// RevenueTimePoint punto de la serie temporal de ingresos.
type RevenueTimePoint struct {
	Date    string `json:"date"`
	Revenue string `json:"revenue"`
}

// TaxEstimateRequest entrada del estimador de provisión fiscal.
type TaxEstimateRequest struct {
	PersonalAllowance string `json:"personal_allowance" validate:"omitempty"`
	Rate              string `json:"rate" validate:"omitempty"`
}

// TaxEstimateResponse salida del estimador.
type TaxEstimateResponse struct {
	Income            string `json:"income"`
	Expenses          string `json:"expenses"`
	NetProfit         string `json:"net_profit"`
	PersonalAllowance string `json:"personal_allowance"`
	Rate              string `json:"rate"`
	Provision         string `json:"provision"`
}
