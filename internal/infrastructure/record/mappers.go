package record

import (
	"time"

	"github.com/mdc-pro/mdcpro-api/internal/domain/entity"
)

// Mapper bidireccional explícito por entidad. FromRow acepta filas en
// cualquiera de las dos convenciones de nombres; ToRow emite siempre la
// convención de almacenamiento (snake_case, fechas RFC 3339, montos como
// texto decimal).

func timeField(row Row, key string) time.Time {
	s := String(row, key)
	if s == "" {
		return time.Time{}
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t
	}
	// Fecha corta usada por la aplicación antigua
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t
	}
	return time.Time{}
}

func timeValue(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

// ── LineItem ──────────────────────────────────────────────────────────────────

// LineItemToRow proyecta una línea a la convención de almacenamiento.
// El total persistido es el derivado; no se acepta un total manual.
func LineItemToRow(li entity.LineItem) Row {
	return Row{
		"id":          li.ID,
		"description": li.Description,
		"quantity":    li.Quantity,
		"unit_price":  li.UnitPrice.String(),
		"total":       li.Total.String(),
	}
}

func lineItemsToRows(items []entity.LineItem) []any {
	rows := make([]any, 0, len(items))
	for _, li := range items {
		rows = append(rows, map[string]any(LineItemToRow(li)))
	}
	return rows
}

// ── Order ─────────────────────────────────────────────────────────────────────

// OrderFromRow reconstruye un pedido desde una fila persistida.
func OrderFromRow(row Row) entity.Order {
	return entity.Order{
		ID:              String(row, "id"),
		OrderNumber:     String(row, "order_number"),
		ClientName:      String(row, "client_name"),
		ClientEmail:     String(row, "client_email"),
		Items:           NormalizeItems(List(row, "items")),
		Subtotal:        Number(row, "subtotal"),
		DiscountRate:    Number(row, "discount_rate"),
		Discount:        Number(row, "discount"),
		Total:           Number(row, "total"),
		Status:          String(row, "status"),
		Date:            timeField(row, "date"),
		IsWholesale:     Bool(row, "is_wholesale"),
		PaymentID:       String(row, "payment_id"),
		ShippingAddress: String(row, "shipping_address"),
	}
}

// OrderToRow proyecta un pedido a la convención de almacenamiento.
func OrderToRow(o entity.Order) Row {
	return Row{
		"id":               o.ID,
		"order_number":     o.OrderNumber,
		"client_name":      o.ClientName,
		"client_email":     o.ClientEmail,
		"items":            lineItemsToRows(o.Items),
		"subtotal":         o.Subtotal.String(),
		"discount_rate":    o.DiscountRate.String(),
		"discount":         o.Discount.String(),
		"total":            o.Total.String(),
		"status":           o.Status,
		"date":             timeValue(o.Date),
		"is_wholesale":     o.IsWholesale,
		"payment_id":       o.PaymentID,
		"shipping_address": o.ShippingAddress,
	}
}

// ── Invoice ───────────────────────────────────────────────────────────────────

// InvoiceFromRow reconstruye una factura desde una fila persistida.
func InvoiceFromRow(row Row) entity.Invoice {
	return entity.Invoice{
		ID:                 String(row, "id"),
		InvoiceNumber:      String(row, "invoice_number"),
		OrderID:            String(row, "order_id"),
		ClientName:         String(row, "client_name"),
		ClientEmail:        String(row, "client_email"),
		ClientPhone:        String(row, "client_phone"),
		ClientAddress:      String(row, "client_address"),
		ClientCityPostcode: String(row, "client_city_postcode"),
		Items:              NormalizeItems(List(row, "items")),
		Subtotal:           Number(row, "subtotal"),
		DiscountApplied:    Number(row, "discount_applied"),
		Total:              Number(row, "total"),
		Status:             String(row, "status"),
		ServiceDate:        timeField(row, "service_date"),
		DueDate:            timeField(row, "due_date"),
		Date:               timeField(row, "date"),
		IsWholesale:        Bool(row, "is_wholesale"),
		IsVATInvoice:       Bool(row, "is_vat_invoice"),
		PaymentMethod:      String(row, "payment_method"),
	}
}

// InvoiceToRow proyecta una factura a la convención de almacenamiento.
func InvoiceToRow(inv entity.Invoice) Row {
	return Row{
		"id":                   inv.ID,
		"invoice_number":       inv.InvoiceNumber,
		"order_id":             inv.OrderID,
		"client_name":          inv.ClientName,
		"client_email":         inv.ClientEmail,
		"client_phone":         inv.ClientPhone,
		"client_address":       inv.ClientAddress,
		"client_city_postcode": inv.ClientCityPostcode,
		"items":                lineItemsToRows(inv.Items),
		"subtotal":             inv.Subtotal.String(),
		"discount_applied":     inv.DiscountApplied.String(),
		"total":                inv.Total.String(),
		"status":               inv.Status,
		"service_date":         timeValue(inv.ServiceDate),
		"due_date":             timeValue(inv.DueDate),
		"date":                 timeValue(inv.Date),
		"is_wholesale":         inv.IsWholesale,
		"is_vat_invoice":       inv.IsVATInvoice,
		"payment_method":       inv.PaymentMethod,
	}
}

// ── InventoryItem ─────────────────────────────────────────────────────────────

// InventoryItemFromRow reconstruye un lote desde una fila persistida.
func InventoryItemFromRow(row Row) entity.InventoryItem {
	return entity.InventoryItem{
		ID:             String(row, "id"),
		Name:           String(row, "name"),
		Quantity:       Int(row, "quantity"),
		Unit:           String(row, "unit"),
		UnitCost:       Number(row, "unit_cost"),
		ReorderLevel:   Int(row, "reorder_level"),
		Category:       String(row, "category"),
		BatchNumber:    String(row, "batch_number"),
		ProductionDate: timeField(row, "production_date"),
		ExpiryDate:     timeField(row, "expiry_date"),
	}
}

// InventoryItemToRow proyecta un lote a la convención de almacenamiento.
func InventoryItemToRow(i entity.InventoryItem) Row {
	return Row{
		"id":              i.ID,
		"name":            i.Name,
		"quantity":        i.Quantity,
		"unit":            i.Unit,
		"unit_cost":       i.UnitCost.String(),
		"reorder_level":   i.ReorderLevel,
		"category":        i.Category,
		"batch_number":    i.BatchNumber,
		"production_date": timeValue(i.ProductionDate),
		"expiry_date":     timeValue(i.ExpiryDate),
	}
}

// ── ExpenseItem ───────────────────────────────────────────────────────────────

// ExpenseFromRow reconstruye un gasto desde una fila persistida.
func ExpenseFromRow(row Row) entity.ExpenseItem {
	return entity.ExpenseItem{
		ID:          String(row, "id"),
		Date:        timeField(row, "date"),
		Category:    String(row, "category"),
		Description: String(row, "description"),
		Amount:      Number(row, "amount"),
		IsLoss:      Bool(row, "is_loss"),
	}
}

// ExpenseToRow proyecta un gasto a la convención de almacenamiento.
func ExpenseToRow(e entity.ExpenseItem) Row {
	return Row{
		"id":          e.ID,
		"date":        timeValue(e.Date),
		"category":    e.Category,
		"description": e.Description,
		"amount":      e.Amount.String(),
		"is_loss":     e.IsLoss,
	}
}

// ── AppNotification ───────────────────────────────────────────────────────────

// NotificationFromRow reconstruye una notificación desde una fila persistida.
func NotificationFromRow(row Row) entity.AppNotification {
	return entity.AppNotification{
		ID:         String(row, "id"),
		Type:       String(row, "type"),
		Title:      String(row, "title"),
		Message:    String(row, "message"),
		Read:       Bool(row, "read"),
		Timestamp:  timeField(row, "timestamp"),
		TargetRole: String(row, "target_role"),
	}
}

// NotificationToRow proyecta una notificación a la convención de almacenamiento.
func NotificationToRow(n entity.AppNotification) Row {
	return Row{
		"id":          n.ID,
		"type":        n.Type,
		"title":       n.Title,
		"message":     n.Message,
		"read":        n.Read,
		"timestamp":   timeValue(n.Timestamp),
		"target_role": n.TargetRole,
	}
}

// ── Message ───────────────────────────────────────────────────────────────────

// MessageFromRow reconstruye un mensaje desde una fila persistida.
func MessageFromRow(row Row) entity.Message {
	return entity.Message{
		ID:         String(row, "id"),
		SenderID:   String(row, "sender_id"),
		SenderName: String(row, "sender_name"),
		Recipient:  String(row, "recipient"),
		Body:       String(row, "body"),
		CreatedAt:  timeField(row, "created_at"),
	}
}

// MessageToRow proyecta un mensaje a la convención de almacenamiento.
func MessageToRow(m entity.Message) Row {
	return Row{
		"id":         m.ID,
		"sender_id":  m.SenderID,
		"sender_name": m.SenderName,
		"recipient":  m.Recipient,
		"body":       m.Body,
		"created_at": timeValue(m.CreatedAt),
	}
}
