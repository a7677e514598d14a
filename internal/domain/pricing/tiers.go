// Package pricing implementa el motor de descuentos por volumen para el canal
// mayorista: dado el total de unidades del pedido, selecciona el tramo
// aplicable y calcula subtotal, descuento y total.
package pricing

import "github.com/shopspring/decimal"

// Tier tramo de descuento por volumen. Los tramos de una tabla son contiguos
// y están ordenados por MinUnits ascendente; exactamente uno aplica para
// cualquier cantidad igual o superior al mínimo del tramo más bajo.
type Tier struct {
	Name         string
	MinUnits     int
	MaxUnits     int // 0 = sin tope
	DiscountRate decimal.Decimal // 0..1
}

// MinimumOrderUnits mínimo de unidades para aceptar un pedido mayorista.
// Es una regla de negocio del punto de venta, no del motor: SelectTier
// resuelve tramo incluso por debajo del mínimo y el caso de uso de pedidos
// es quien bloquea el envío.
const MinimumOrderUnits = 6

// DefaultTiers tabla vigente de tramos mayoristas.
func DefaultTiers() []Tier {
	return []Tier{
		{Name: "Inicial", MinUnits: 6, MaxUnits: 20, DiscountRate: decimal.NewFromFloat(0.15)},
		{Name: "Bronce", MinUnits: 21, MaxUnits: 50, DiscountRate: decimal.NewFromFloat(0.25)},
		{Name: "Plata", MinUnits: 51, MaxUnits: 100, DiscountRate: decimal.NewFromFloat(0.35)},
		{Name: "Oro", MinUnits: 101, MaxUnits: 0, DiscountRate: decimal.NewFromFloat(0.45)},
	}
}

// SelectTier devuelve el tramo aplicable para totalUnits: el de mayor
// MinUnits que no supere la cantidad. Si la cantidad está por debajo del
// tramo más bajo (incluido el carrito vacío) se devuelve ese tramo como piso;
// el bloqueo del pedido sub-mínimo ocurre en el caso de uso, no aquí.
func SelectTier(totalUnits int, tiers []Tier) Tier {
	if len(tiers) == 0 {
		return Tier{DiscountRate: decimal.Zero}
	}
	for i := len(tiers) - 1; i >= 0; i-- {
		if tiers[i].MinUnits <= totalUnits {
			return tiers[i]
		}
	}
	return tiers[0]
}

// Quote resultado de aplicar un tramo a un subtotal.
type Quote struct {
	Subtotal     decimal.Decimal
	DiscountRate decimal.Decimal
	Discount     decimal.Decimal
	Total        decimal.Decimal
	TierName     string
}

// MakeQuote aplica el tramo al subtotal. Todos los montos se redondean a
// 2 decimales (half-up) en este punto para que lo persistido coincida con lo
// mostrado.
func MakeQuote(subtotal decimal.Decimal, tier Tier) Quote {
	discount := subtotal.Mul(tier.DiscountRate).Round(2)
	return Quote{
		Subtotal:     subtotal.Round(2),
		DiscountRate: tier.DiscountRate,
		Discount:     discount,
		Total:        subtotal.Round(2).Sub(discount),
		TierName:     tier.Name,
	}
}
