// Package payment verifica métodos de pago contra el procesador externo
// antes de comprometer un pedido. Si no hay API key configurada el cliente
// opera en modo desarrollo y aprueba todo.
package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/shopspring/decimal"

	"github.com/mdc-pro/mdcpro-api/internal/domain"
	"github.com/mdc-pro/mdcpro-api/pkg/config"
	"github.com/mdc-pro/mdcpro-api/pkg/logger"
)

// Verifier puerto que consume el caso de uso de pedidos.
type Verifier interface {
	// VerifyPaymentMethod valida que el método de pago tokenizado pueda
	// cubrir el monto. Devuelve domain.ErrPaymentDeclined si el procesador
	// rechaza el cargo.
	VerifyPaymentMethod(ctx context.Context, methodID string, amount decimal.Decimal, currency string) error
}

var _ Verifier = (*Client)(nil)

// Client cliente HTTP con reintentos hacia el procesador de pagos.
type Client struct {
	http    *retryablehttp.Client
	baseURL string
	apiKey  string
	log     *logger.Logger
}

// NewClient construye el cliente. Con APIKey vacía queda en modo desarrollo.
func NewClient(cfg config.PaymentConfig, log *logger.Logger) *Client {
	rc := retryablehttp.NewClient()
	rc.RetryMax = 3
	rc.RetryWaitMin = 500 * time.Millisecond
	rc.RetryWaitMax = 5 * time.Second
	rc.HTTPClient.Timeout = 15 * time.Second
	rc.Logger = nil

	return &Client{
		http:    rc,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		log:     log,
	}
}

type verifyResponse struct {
	Status string `json:"status"`
	Error  struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// VerifyPaymentMethod crea un payment intent de confirmación inmediata.
// El monto va en unidades menores (centavos) como espera el procesador.
func (c *Client) VerifyPaymentMethod(ctx context.Context, methodID string, amount decimal.Decimal, currency string) error {
	if c.apiKey == "" {
		c.log.Debug().Str("method_id", methodID).Msg("procesador de pagos sin API key, verificación omitida")
		return nil
	}
	if methodID == "" {
		return domain.ErrPaymentDeclined
	}

	form := url.Values{}
	form.Set("amount", amount.Mul(decimal.NewFromInt(100)).Round(0).String())
	form.Set("currency", strings.ToLower(currency))
	form.Set("payment_method", methodID)
	form.Set("confirm", "true")

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/v1/payment_intents", strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("construir petición de pago: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("llamar procesador de pagos: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("leer respuesta del procesador: %w", err)
	}

	var vr verifyResponse
	if err := json.Unmarshal(body, &vr); err != nil {
		return fmt.Errorf("decodificar respuesta del procesador: %w", err)
	}

	if resp.StatusCode >= 400 || vr.Error.Code != "" {
		c.log.Warn().
			Int("status", resp.StatusCode).
			Str("code", vr.Error.Code).
			Str("method_id", methodID).
			Msg("pago rechazado por el procesador")
		return domain.ErrPaymentDeclined
	}
	if vr.Status != "succeeded" && vr.Status != "requires_capture" {
		return domain.ErrPaymentDeclined
	}
	return nil
}
