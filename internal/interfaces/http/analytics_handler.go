package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/mdc-pro/mdcpro-api/internal/application/analytics"
	"github.com/mdc-pro/mdcpro-api/internal/application/dto"
)

// AnalyticsHandler maneja el panel y los reportes (solo admin).
type AnalyticsHandler struct {
	uc *analytics.UseCase
}

// NewAnalyticsHandler construye el handler.
func NewAnalyticsHandler(uc *analytics.UseCase) *AnalyticsHandler {
	return &AnalyticsHandler{uc: uc}
}

// Dashboard devuelve el resumen del panel de administración.
// GET /api/analytics/dashboard
func (h *AnalyticsHandler) Dashboard(c *fiber.Ctx) error {
	resp, err := h.uc.Dashboard(c.Context())
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(resp)
}

// RevenueReport devuelve los ingresos de facturas pagadas por canal,
// producto y tiempo.
// GET /api/analytics/revenue?from=&to=
func (h *AnalyticsHandler) RevenueReport(c *fiber.Ctx) error {
	var from, to time.Time
	if s := c.Query("from"); s != "" {
		if t, err := time.Parse("2006-01-02", s); err == nil {
			from = t
		}
	}
	if s := c.Query("to"); s != "" {
		if t, err := time.Parse("2006-01-02", s); err == nil {
			to = t
		}
	}
	resp, err := h.uc.RevenueReport(c.Context(), from, to)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(resp)
}

// TaxEstimate estima la provisión fiscal anual.
// POST /api/analytics/tax-estimate
func (h *AnalyticsHandler) TaxEstimate(c *fiber.Ctx) error {
	var in dto.TaxEstimateRequest
	// cuerpo opcional: sin body aplican mínimo y tasa por defecto
	_ = c.BodyParser(&in)
	resp, err := h.uc.TaxEstimate(c.Context(), in)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(resp)
}
