package pdf

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mdc-pro/mdcpro-api/internal/domain/entity"
)

func sampleInvoice() *entity.Invoice {
	items := []entity.LineItem{
		entity.NewLineItem("1", "Saco pienso premium 12kg", 10, decimal.RequireFromString("24.50")),
		entity.NewLineItem("2", "Juguete mordedor", 25, decimal.RequireFromString("3.20")),
	}
	subtotal := items[0].Total.Add(items[1].Total)
	discount := subtotal.Mul(decimal.RequireFromString("0.25")).Round(2)
	return &entity.Invoice{
		ID:            "inv-1",
		InvoiceNumber: "FAC-000123",
		ClientName:    "Tienda Patitas SL",
		ClientEmail:   "compras@patitas.example",
		Items:         items,
		Subtotal:      subtotal,
		DiscountApplied: discount,
		Total:         subtotal.Sub(discount),
		Status:        entity.OrderStatusPending,
		Date:          time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		DueDate:       time.Date(2025, 4, 9, 0, 0, 0, 0, time.UTC),
		IsWholesale:   true,
	}
}

func TestGenerateInvoicePDF(t *testing.T) {
	g := NewMarotoPDFGenerator(CompanyInfo{
		Name:    "MDC PRO",
		Address: "Calle Mayor 1",
		Email:   "hola@mdcpro.example",
	})

	data, err := g.GenerateInvoicePDF(context.Background(), sampleInvoice())
	require.NoError(t, err)
	require.NotEmpty(t, data)
	assert.Equal(t, "%PDF", string(data[:4]))
}

func TestGenerateInvoicePDF_SinLineas(t *testing.T) {
	g := NewMarotoPDFGenerator(CompanyInfo{Name: "MDC PRO"})
	inv := sampleInvoice()
	inv.Items = nil

	data, err := g.GenerateInvoicePDF(context.Background(), inv)
	require.NoError(t, err)
	assert.NotEmpty(t, data)
}
