package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un pedido.
const (
	OrderStatusPending   = "pending"
	OrderStatusPaid      = "paid"
	OrderStatusShipped   = "shipped"
	OrderStatusCancelled = "cancelled"
)

// Order representa un pedido B2B (mayorista) o B2C (minorista).
// En pedidos mayoristas el total incluye el descuento por volumen del tramo aplicado.
type Order struct {
	ID              string
	OrderNumber     string
	ClientName      string
	ClientEmail     string
	Items           []LineItem
	Subtotal        decimal.Decimal
	DiscountRate    decimal.Decimal // 0 en pedidos minoristas
	Discount        decimal.Decimal
	Total           decimal.Decimal
	Status          string
	Date            time.Time
	IsWholesale     bool
	PaymentID       string // identificador del método de pago tokenizado (vacío si no aplica)
	ShippingAddress string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// TotalUnits suma las cantidades de todas las líneas (base para el tramo de descuento).
func (o *Order) TotalUnits() int {
	units := 0
	for _, it := range o.Items {
		units += it.Quantity
	}
	return units
}
