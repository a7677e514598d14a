package payment

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mdc-pro/mdcpro-api/internal/domain"
	"github.com/mdc-pro/mdcpro-api/pkg/config"
	"github.com/mdc-pro/mdcpro-api/pkg/logger"
)

func newTestClient(baseURL, apiKey string) *Client {
	return NewClient(
		config.PaymentConfig{BaseURL: baseURL, APIKey: apiKey},
		logger.New(logger.Config{Level: "error"}),
	)
}

func TestVerifyPaymentMethod_SinAPIKeyApruebaTodo(t *testing.T) {
	c := newTestClient("http://invalid.local", "")
	err := c.VerifyPaymentMethod(context.Background(), "pm_123", decimal.NewFromInt(50), "EUR")
	assert.NoError(t, err)
}

func TestVerifyPaymentMethod_Aprobado(t *testing.T) {
	var gotAmount, gotMethod string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		gotAmount = r.PostFormValue("amount")
		gotMethod = r.PostFormValue("payment_method")
		w.Write([]byte(`{"status":"succeeded"}`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, "sk_test_abc")
	err := c.VerifyPaymentMethod(context.Background(), "pm_123", decimal.RequireFromString("49.90"), "EUR")

	require.NoError(t, err)
	assert.Equal(t, "4990", gotAmount, "el monto viaja en centavos")
	assert.Equal(t, "pm_123", gotMethod)
}

func TestVerifyPaymentMethod_Rechazado(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
		w.Write([]byte(`{"error":{"code":"card_declined","message":"tarjeta rechazada"}}`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, "sk_test_abc")
	err := c.VerifyPaymentMethod(context.Background(), "pm_bad", decimal.NewFromInt(10), "EUR")

	assert.ErrorIs(t, err, domain.ErrPaymentDeclined)
}

func TestVerifyPaymentMethod_MetodoVacio(t *testing.T) {
	c := newTestClient("http://invalid.local", "sk_test_abc")
	err := c.VerifyPaymentMethod(context.Background(), "", decimal.NewFromInt(10), "EUR")
	assert.ErrorIs(t, err, domain.ErrPaymentDeclined)
}
