package reporting_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mdc-pro/mdcpro-api/internal/domain/entity"
	"github.com/mdc-pro/mdcpro-api/internal/domain/reporting"
)

func buildTestInvoices() []entity.Invoice {
	day := func(d int) time.Time {
		return time.Date(2026, time.March, d, 0, 0, 0, 0, time.UTC)
	}
	item := func(desc string, qty int, price float64) entity.LineItem {
		return entity.NewLineItem("", desc, qty, decimal.NewFromFloat(price))
	}
	return []entity.Invoice{
		{
			ID: "f1", Status: "paid", IsWholesale: true, Date: day(3),
			Total: decimal.NewFromFloat(130),
			Items: []entity.LineItem{
				item("Snack de pollo", 10, 10), // 100
				item("Peluquería canina", 1, 30),
			},
		},
		{
			ID: "f2", Status: "PAID", IsWholesale: false, Date: day(1),
			Total: decimal.NewFromFloat(50),
			Items: []entity.LineItem{
				item("Snack de pollo", 5, 10), // 50
			},
		},
		{
			// Pendiente: no debe contar
			ID: "f3", Status: "pending", IsWholesale: false, Date: day(2),
			Total: decimal.NewFromFloat(999),
			Items: []entity.LineItem{item("Snack de pollo", 99, 10)},
		},
		{
			// Línea fuera de catálogo: cae en "unclassified", no se pierde
			ID: "f4", Status: "pagada", IsWholesale: false, Date: day(2),
			Total: decimal.NewFromFloat(20),
			Items: []entity.LineItem{item("Producto descontinuado", 2, 10)},
		},
	}
}

func testCatalog() reporting.Catalog {
	return reporting.NewCatalog(
		[]string{"Snack de pollo", "Snack de res"},
		[]string{"Peluquería canina"},
	)
}

// TestAggregate_TotalesYCanales solo cuentan las facturas pagadas (en
// cualquiera de sus grafías históricas) y el ingreso se reparte por canal
// según el flag mayorista de la factura.
func TestAggregate_TotalesYCanales(t *testing.T) {
	res := reporting.Aggregate(buildTestInvoices(), testCatalog())

	// 130 (f1) + 50 (f2) + 20 (f4); f3 pendiente queda fuera
	assert.Equal(t, "200", res.TotalIncome.String())
	assert.Equal(t, "130", res.ByChannel.Wholesale.String())
	assert.Equal(t, "70", res.ByChannel.Retail.String())
}

// TestAggregate_BucketsOrdenados los buckets van descendente por ingreso y
// distinguen servicios de productos.
func TestAggregate_BucketsOrdenados(t *testing.T) {
	res := reporting.Aggregate(buildTestInvoices(), testCatalog())

	require.Len(t, res.ByProduct, 3)
	assert.Equal(t, "snack de pollo", res.ByProduct[0].Name)
	assert.Equal(t, "150", res.ByProduct[0].Revenue.String())
	assert.Equal(t, 15, res.ByProduct[0].Quantity)
	assert.False(t, res.ByProduct[0].IsService)

	for i := 1; i < len(res.ByProduct); i++ {
		assert.True(t, res.ByProduct[i-1].Revenue.GreaterThanOrEqual(res.ByProduct[i].Revenue))
	}

	top := res.TopN(2)
	assert.Len(t, top, 2)
	assert.Equal(t, res.ByProduct[0], top[0])
}

// TestAggregate_ConservacionIngreso una línea fuera de catálogo no desaparece:
// la suma de todos los buckets es igual al ingreso total de líneas pagadas.
func TestAggregate_ConservacionIngreso(t *testing.T) {
	res := reporting.Aggregate(buildTestInvoices(), testCatalog())

	sum := decimal.Zero
	var unclassified *reporting.Bucket
	for i := range res.ByProduct {
		sum = sum.Add(res.ByProduct[i].Revenue)
		if res.ByProduct[i].Name == reporting.UnclassifiedBucket {
			unclassified = &res.ByProduct[i]
		}
	}
	require.NotNil(t, unclassified, "debe existir el bucket unclassified")
	assert.Equal(t, "20", unclassified.Revenue.String())
	assert.True(t, sum.Equal(res.TotalIncome), "suma de buckets %s != total %s", sum, res.TotalIncome)
}

// TestAggregate_SerieTemporalAscendente la serie temporal son las facturas
// pagadas proyectadas a {fecha, monto}, ordenadas ascendente. No hay binning
// por periodo.
func TestAggregate_SerieTemporalAscendente(t *testing.T) {
	res := reporting.Aggregate(buildTestInvoices(), testCatalog())

	require.Len(t, res.TimeSeries, 3)
	for i := 1; i < len(res.TimeSeries); i++ {
		assert.False(t, res.TimeSeries[i].Date.Before(res.TimeSeries[i-1].Date))
	}
	assert.Equal(t, "50", res.TimeSeries[0].Amount.String()) // f2, día 1
}

// TestAggregate_Idempotente dos corridas sobre la misma colección inmutable
// producen salidas idénticas.
func TestAggregate_Idempotente(t *testing.T) {
	invoices := buildTestInvoices()
	catalog := testCatalog()

	a := reporting.Aggregate(invoices, catalog)
	b := reporting.Aggregate(invoices, catalog)

	assert.Equal(t, a, b)
}

// TestAggregate_RegistrosMalformados una factura sin líneas o con descripción
// vacía no rompe la agregación.
func TestAggregate_RegistrosMalformados(t *testing.T) {
	invoices := []entity.Invoice{
		{ID: "x1", Status: "paid", Date: time.Now()},
		{
			ID: "x2", Status: "paid", Date: time.Now(),
			Total: decimal.NewFromFloat(5),
			Items: []entity.LineItem{entity.NewLineItem("", "", 1, decimal.NewFromFloat(5))},
		},
	}

	res := reporting.Aggregate(invoices, reporting.Catalog{})

	assert.Equal(t, "5", res.TotalIncome.String())
	require.Len(t, res.ByProduct, 1)
	assert.Equal(t, reporting.UnclassifiedBucket, res.ByProduct[0].Name)
}

// TestIsPaid_GrafiasHistoricas la normalización del estado "pagada" vive en
// un solo lugar y acepta las variantes históricas.
func TestIsPaid_GrafiasHistoricas(t *testing.T) {
	for _, s := range []string{"paid", "PAID", "Paid", " paid ", "pagado", "Pagada"} {
		assert.True(t, reporting.IsPaid(s), "%q debe contar como pagada", s)
	}
	for _, s := range []string{"", "pending", "cancelled", "unpaid"} {
		assert.False(t, reporting.IsPaid(s), "%q no debe contar como pagada", s)
	}
}
