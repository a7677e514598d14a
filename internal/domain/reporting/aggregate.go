// Package reporting implementa la agregación de ingresos sobre facturas
// pagadas: totales por canal (mayorista/minorista), por producto o servicio,
// y la serie temporal para los gráficos del dashboard.
package reporting

import (
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mdc-pro/mdcpro-api/internal/domain/entity"
)

// UnclassifiedBucket nombre del bucket donde cae el ingreso de líneas cuya
// descripción no coincide con el catálogo. La agregación nunca falla por un
// registro malformado: degrada a "sin clasificar" conservando el ingreso.
const UnclassifiedBucket = "unclassified"

// paidStatuses variantes históricas del estado "pagada" que aceptamos como
// equivalentes. La normalización vive solo aquí; no repetirla en los callers.
var paidStatuses = map[string]bool{
	"paid":   true,
	"pagado": true,
	"pagada": true,
}

// IsPaid indica si el estado de la factura cuenta como pagada.
func IsPaid(status string) bool {
	return paidStatuses[strings.ToLower(strings.TrimSpace(status))]
}

// Catalog taxonomía de clasificación: nombres de servicios y de productos.
// Lo que no aparece en ninguno de los dos cae en UnclassifiedBucket.
type Catalog struct {
	Products map[string]bool
	Services map[string]bool
}

// NewCatalog construye la taxonomía a partir de listas de nombres.
func NewCatalog(products, services []string) Catalog {
	c := Catalog{
		Products: make(map[string]bool, len(products)),
		Services: make(map[string]bool, len(services)),
	}
	for _, p := range products {
		c.Products[normalizeName(p)] = true
	}
	for _, s := range services {
		c.Services[normalizeName(s)] = true
	}
	return c
}

func normalizeName(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Bucket acumulado de ingreso y cantidad para un nombre de producto/servicio.
type Bucket struct {
	Name      string
	Revenue   decimal.Decimal
	Quantity  int
	IsService bool
}

// ChannelTotals ingreso por canal de venta.
type ChannelTotals struct {
	Wholesale decimal.Decimal
	Retail    decimal.Decimal
}

// TimePoint punto de la serie temporal: fecha de la factura y su total.
// No se hace binning por periodo; los rollups semanales o mensuales son
// responsabilidad del caller.
type TimePoint struct {
	Date   time.Time
	Amount decimal.Decimal
}

// Result salida completa de la agregación.
type Result struct {
	TotalIncome decimal.Decimal
	ByChannel   ChannelTotals
	ByProduct   []Bucket // ordenado descendente por ingreso
	TimeSeries  []TimePoint
}

// TopN devuelve los primeros n buckets por ingreso (para los gráficos de
// reportes). Si hay menos de n, devuelve todos.
func (r Result) TopN(n int) []Bucket {
	if n > len(r.ByProduct) {
		n = len(r.ByProduct)
	}
	return r.ByProduct[:n]
}

// Aggregate filtra las facturas pagadas y acumula el ingreso por bucket y por
// canal. Nunca retorna error: un registro malformado aporta cero o cae en el
// bucket "unclassified", jamás desaparece del total.
func Aggregate(invoices []entity.Invoice, catalog Catalog) Result {
	res := Result{
		TotalIncome: decimal.Zero,
		ByChannel: ChannelTotals{
			Wholesale: decimal.Zero,
			Retail:    decimal.Zero,
		},
	}

	buckets := make(map[string]*Bucket)

	for _, inv := range invoices {
		if !IsPaid(inv.Status) {
			continue
		}
		for _, item := range inv.Items {
			revenue := item.Total
			res.TotalIncome = res.TotalIncome.Add(revenue)

			if inv.IsWholesale {
				res.ByChannel.Wholesale = res.ByChannel.Wholesale.Add(revenue)
			} else {
				res.ByChannel.Retail = res.ByChannel.Retail.Add(revenue)
			}

			name, isService := classify(item.Description, catalog)
			b, ok := buckets[name]
			if !ok {
				b = &Bucket{Name: name, Revenue: decimal.Zero, IsService: isService}
				buckets[name] = b
			}
			b.Revenue = b.Revenue.Add(revenue)
			b.Quantity += item.Quantity
		}

		res.TimeSeries = append(res.TimeSeries, TimePoint{Date: inv.Date, Amount: inv.Total})
	}

	res.ByProduct = make([]Bucket, 0, len(buckets))
	for _, b := range buckets {
		res.ByProduct = append(res.ByProduct, *b)
	}
	// Descendente por ingreso; a igual ingreso, alfabético para salida estable.
	sort.Slice(res.ByProduct, func(i, j int) bool {
		if !res.ByProduct[i].Revenue.Equal(res.ByProduct[j].Revenue) {
			return res.ByProduct[i].Revenue.GreaterThan(res.ByProduct[j].Revenue)
		}
		return res.ByProduct[i].Name < res.ByProduct[j].Name
	})

	sort.Slice(res.TimeSeries, func(i, j int) bool {
		return res.TimeSeries[i].Date.Before(res.TimeSeries[j].Date)
	})

	return res
}

// classify resuelve el bucket de una línea: servicio si coincide con el
// catálogo de servicios, producto si coincide con el de productos, y
// "unclassified" si no coincide con ninguno o la descripción está vacía.
func classify(description string, catalog Catalog) (name string, isService bool) {
	n := normalizeName(description)
	if n == "" {
		return UnclassifiedBucket, false
	}
	if catalog.Services[n] {
		return n, true
	}
	if catalog.Products[n] {
		return n, false
	}
	return UnclassifiedBucket, false
}
