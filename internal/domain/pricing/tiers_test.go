package pricing_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mdc-pro/mdcpro-api/internal/domain/pricing"
)

// TestSelectTier_Limites valida los bordes exactos de la tabla vigente:
// 20 unidades siguen en el tramo del 15%, 21 pasa al 25%, 100 sigue en 35%
// y 101 entra al 45%.
func TestSelectTier_Limites(t *testing.T) {
	tiers := pricing.DefaultTiers()

	cases := []struct {
		units    int
		wantRate string
	}{
		{6, "0.15"},
		{20, "0.15"},
		{21, "0.25"},
		{50, "0.25"},
		{51, "0.35"},
		{100, "0.35"},
		{101, "0.45"},
		{500, "0.45"},
	}
	for _, tc := range cases {
		tier := pricing.SelectTier(tc.units, tiers)
		assert.Equal(t, tc.wantRate, tier.DiscountRate.String(),
			"unidades=%d debe resolver tasa %s", tc.units, tc.wantRate)
	}
}

// TestSelectTier_PisoBajoMinimo un pedido por debajo del mínimo (incluido el
// carrito vacío) resuelve el tramo más bajo; el bloqueo del envío es una regla
// separada del caso de uso.
func TestSelectTier_PisoBajoMinimo(t *testing.T) {
	tiers := pricing.DefaultTiers()

	for _, units := range []int{0, 1, 5} {
		tier := pricing.SelectTier(units, tiers)
		assert.Equal(t, "Inicial", tier.Name, "unidades=%d debe caer al piso", units)
		assert.Equal(t, "0.15", tier.DiscountRate.String())
	}
}

// TestSelectTier_Monotonia la tasa de descuento nunca decrece al aumentar la
// cantidad de unidades.
func TestSelectTier_Monotonia(t *testing.T) {
	tiers := pricing.DefaultTiers()

	prev := decimal.Zero
	for units := 0; units <= 200; units++ {
		rate := pricing.SelectTier(units, tiers).DiscountRate
		require.True(t, rate.GreaterThanOrEqual(prev),
			"la tasa retrocedió en unidades=%d: %s < %s", units, rate, prev)
		prev = rate
	}
}

// TestMakeQuote_Aritmetica subtotal 100.00 con tasa 0.25 produce descuento
// 25.00 y total 75.00 exactos a 2 decimales.
func TestMakeQuote_Aritmetica(t *testing.T) {
	tier := pricing.Tier{Name: "Bronce", MinUnits: 21, DiscountRate: decimal.NewFromFloat(0.25)}

	q := pricing.MakeQuote(decimal.NewFromFloat(100.00), tier)

	assert.Equal(t, "100", q.Subtotal.String())
	assert.Equal(t, "25", q.Discount.String())
	assert.Equal(t, "75", q.Total.String())
	assert.True(t, q.Subtotal.Sub(q.Discount).Equal(q.Total))
}

// TestMakeQuote_RedondeoPersistente los montos quedan redondeados a 2
// decimales en el punto de cálculo para que lo persistido coincida con lo
// mostrado.
func TestMakeQuote_RedondeoPersistente(t *testing.T) {
	tier := pricing.Tier{Name: "Inicial", MinUnits: 6, DiscountRate: decimal.NewFromFloat(0.15)}

	// 33.335 * 0.15 = 5.00025 -> 5.00
	q := pricing.MakeQuote(decimal.NewFromFloat(33.335), tier)

	assert.True(t, q.Discount.Equal(decimal.NewFromFloat(5.00)), "descuento: %s", q.Discount)
	assert.True(t, q.Total.Equal(decimal.NewFromFloat(28.34)), "total: %s", q.Total)
	assert.Equal(t, int32(-2), minExponent(q.Discount, q.Total), "máximo 2 decimales")
}

func minExponent(values ...decimal.Decimal) int32 {
	min := int32(0)
	for _, v := range values {
		if v.Exponent() < min {
			min = v.Exponent()
		}
	}
	return min
}

// TestSelectTier_TablaVacia con tabla vacía se devuelve un tramo neutro en
// lugar de entrar en pánico.
func TestSelectTier_TablaVacia(t *testing.T) {
	tier := pricing.SelectTier(10, nil)
	assert.True(t, tier.DiscountRate.IsZero())
}
