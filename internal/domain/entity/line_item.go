package entity

import "github.com/shopspring/decimal"

// LineItem representa una línea de pedido o factura.
// Total siempre se deriva de Quantity × UnitPrice (redondeado a 2 decimales);
// no se permite fijarlo manualmente para evitar desfase entre lo mostrado y lo persistido.
type LineItem struct {
	ID          string
	Description string
	Quantity    int
	UnitPrice   decimal.Decimal
	Total       decimal.Decimal
}

// NewLineItem construye la línea derivando Total.
func NewLineItem(id, description string, quantity int, unitPrice decimal.Decimal) LineItem {
	if quantity < 0 {
		quantity = 0
	}
	return LineItem{
		ID:          id,
		Description: description,
		Quantity:    quantity,
		UnitPrice:   unitPrice,
		Total:       unitPrice.Mul(decimal.NewFromInt(int64(quantity))).Round(2),
	}
}

// Recalculate vuelve a derivar Total tras editar Quantity o UnitPrice.
func (li *LineItem) Recalculate() {
	li.Total = li.UnitPrice.Mul(decimal.NewFromInt(int64(li.Quantity))).Round(2)
}
