// Package tax implementa la provisión estimada de impuestos sobre la utilidad
// neta. Es una aproximación de tasa plana sin progresión por tramos: sirve
// para reservar caja, no para declarar. No usar con fines de cumplimiento.
package tax

import "github.com/shopspring/decimal"

// EstimateProvision calcula max(0, (netProfit - personalAllowance) * rate),
// redondeado a 2 decimales.
func EstimateProvision(netProfit, personalAllowance, rate decimal.Decimal) decimal.Decimal {
	base := netProfit.Sub(personalAllowance)
	if base.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	return base.Mul(rate).Round(2)
}
