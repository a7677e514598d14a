package dto

import "time"

// LineItemRequest línea de un pedido o factura. El total de línea siempre se
// deriva de quantity × unit_price en el servidor.
type LineItemRequest struct {
	Description string `json:"description" validate:"required,min=1,max=300"`
	Quantity    int    `json:"quantity" validate:"required,min=1"`
	UnitPrice   string `json:"unit_price" validate:"required"`
}

// LineItemResponse línea con el total derivado.
type LineItemResponse struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	Quantity    int    `json:"quantity"`
	UnitPrice   string `json:"unit_price"`
	Total       string `json:"total"`
}

// QuoteRequest entrada para cotizar un pedido mayorista sin crearlo.
type QuoteRequest struct {
	Items []LineItemRequest `json:"items" validate:"required,min=1,dive"`
}

// QuoteResponse cotización con el tramo de descuento aplicado.
type QuoteResponse struct {
	TotalUnits   int    `json:"total_units"`
	TierName     string `json:"tier_name"`
	Subtotal     string `json:"subtotal"`
	DiscountRate string `json:"discount_rate"`
	Discount     string `json:"discount"`
	Total        string `json:"total"`
}

// CreateOrderRequest entrada para crear un pedido.
type CreateOrderRequest struct {
	Items           []LineItemRequest `json:"items" validate:"required,min=1,dive"`
	IsWholesale     bool              `json:"is_wholesale"`
	PaymentMethodID string            `json:"payment_method_id" validate:"omitempty,max=100"`
	ShippingAddress string            `json:"shipping_address" validate:"omitempty,max=300"`
}

// OrderResponse salida de un pedido.
type OrderResponse struct {
	ID              string             `json:"id"`
	OrderNumber     string             `json:"order_number"`
	ClientName      string             `json:"client_name"`
	ClientEmail     string             `json:"client_email"`
	Items           []LineItemResponse `json:"items"`
	Subtotal        string             `json:"subtotal"`
	DiscountRate    string             `json:"discount_rate"`
	Discount        string             `json:"discount"`
	Total           string             `json:"total"`
	Status          string             `json:"status"`
	Date            time.Time          `json:"date"`
	IsWholesale     bool               `json:"is_wholesale"`
	ShippingAddress string             `json:"shipping_address,omitempty"`
}

// UpdateOrderStatusRequest entrada para avanzar el estado de un pedido.
type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending paid shipped cancelled"`
}

// CreateInvoiceRequest entrada para emitir una factura manual.
type CreateInvoiceRequest struct {
	ClientName         string            `json:"client_name" validate:"required,min=1,max=200"`
	ClientEmail        string            `json:"client_email" validate:"omitempty,email"`
	ClientPhone        string            `json:"client_phone" validate:"omitempty,max=30"`
	ClientAddress      string            `json:"client_address" validate:"omitempty,max=300"`
	ClientCityPostcode string            `json:"client_city_postcode" validate:"omitempty,max=100"`
	Items              []LineItemRequest `json:"items" validate:"required,min=1,dive"`
	ServiceDate        string            `json:"service_date" validate:"omitempty,datetime=2006-01-02"`
	DueDate            string            `json:"due_date" validate:"omitempty,datetime=2006-01-02"`
	IsWholesale        bool              `json:"is_wholesale"`
	IsVATInvoice       bool              `json:"is_vat_invoice"`
	PaymentMethod      string            `json:"payment_method" validate:"omitempty,max=50"`
}

// InvoiceResponse salida de una factura.
type InvoiceResponse struct {
	ID                 string             `json:"id"`
	InvoiceNumber      string             `json:"invoice_number"`
	OrderID            string             `json:"order_id,omitempty"`
	ClientName         string             `json:"client_name"`
	ClientEmail        string             `json:"client_email,omitempty"`
	ClientPhone        string             `json:"client_phone,omitempty"`
	ClientAddress      string             `json:"client_address,omitempty"`
	ClientCityPostcode string             `json:"client_city_postcode,omitempty"`
	Items              []LineItemResponse `json:"items"`
	Subtotal           string             `json:"subtotal"`
	DiscountApplied    string             `json:"discount_applied"`
	Total              string             `json:"total"`
	Status             string             `json:"status"`
	ServiceDate        time.Time          `json:"service_date"`
	DueDate            time.Time          `json:"due_date"`
	Date               time.Time          `json:"date"`
	IsWholesale        bool               `json:"is_wholesale"`
	IsVATInvoice       bool               `json:"is_vat_invoice"`
	PaymentMethod      string             `json:"payment_method,omitempty"`
}
