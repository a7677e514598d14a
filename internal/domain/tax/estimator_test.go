package tax_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/mdc-pro/mdcpro-api/internal/domain/tax"
)

// TestEstimateProvision_TasaPlana la provisión es (utilidad - mínimo exento) × tasa.
func TestEstimateProvision_TasaPlana(t *testing.T) {
	got := tax.EstimateProvision(
		decimal.NewFromFloat(30000),
		decimal.NewFromFloat(12570),
		decimal.NewFromFloat(0.20),
	)
	assert.Equal(t, "3486", got.String()) // (30000-12570)*0.20
}

// TestEstimateProvision_NuncaNegativa con utilidad por debajo del mínimo
// exento la provisión es cero, nunca negativa.
func TestEstimateProvision_NuncaNegativa(t *testing.T) {
	cases := []float64{0, 5000, 12570}
	for _, profit := range cases {
		got := tax.EstimateProvision(
			decimal.NewFromFloat(profit),
			decimal.NewFromFloat(12570),
			decimal.NewFromFloat(0.20),
		)
		assert.True(t, got.IsZero(), "utilidad=%v debe dar provisión cero", profit)
	}
}

// TestEstimateProvision_Redondeo el resultado queda a 2 decimales.
func TestEstimateProvision_Redondeo(t *testing.T) {
	got := tax.EstimateProvision(
		decimal.NewFromFloat(1000.555),
		decimal.Zero,
		decimal.NewFromFloat(0.19),
	)
	// 1000.555 * 0.19 = 190.10545 -> 190.11
	assert.Equal(t, "190.11", got.String())
}
