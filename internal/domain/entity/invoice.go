package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Invoice representa una factura emitida a un cliente.
// Extiende los datos de un pedido con numeración, fechas de servicio/vencimiento
// y los campos fiscales (IVA).
type Invoice struct {
	ID                 string
	InvoiceNumber      string
	OrderID            string // vacío si la factura se creó manualmente
	ClientName         string
	ClientEmail        string
	ClientPhone        string
	ClientAddress      string
	ClientCityPostcode string
	Items              []LineItem
	Subtotal           decimal.Decimal
	DiscountApplied    decimal.Decimal
	Total              decimal.Decimal
	Status             string // mismos estados que Order; "paid" habilita reportes
	ServiceDate        time.Time
	DueDate            time.Time
	Date               time.Time
	IsWholesale        bool
	IsVATInvoice       bool
	PaymentMethod      string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
