package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/mdc-pro/mdcpro-api/internal/application/billing"
	"github.com/mdc-pro/mdcpro-api/internal/application/dto"
	"github.com/mdc-pro/mdcpro-api/internal/domain/repository"
)

// OrderHandler maneja cotización y pedidos.
type OrderHandler struct {
	uc *billing.OrderUseCase
}

// NewOrderHandler construye el handler.
func NewOrderHandler(uc *billing.OrderUseCase) *OrderHandler {
	return &OrderHandler{uc: uc}
}

// Quote cotiza un pedido mayorista sin crearlo.
// POST /api/orders/quote
func (h *OrderHandler) Quote(c *fiber.Ctx) error {
	var in dto.QuoteRequest
	if !parseBody(c, &in) {
		return nil
	}
	quote, err := h.uc.Quote(c.Context(), in)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(quote)
}

// Create crea un pedido para el usuario autenticado.
// POST /api/orders
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateOrderRequest
	if !parseBody(c, &in) {
		return nil
	}
	order, err := h.uc.Create(c.Context(), GetUserID(c), in)
	if err != nil {
		return handleError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(order)
}

// List lista pedidos; los no-admin solo ven los propios.
// GET /api/orders?status=&wholesale=&from=&to=
func (h *OrderHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()

	f := repository.OrderFilter{
		Status: c.Query("status"),
		Limit:  page.Limit,
		Offset: page.Offset,
	}
	if w := c.Query("wholesale"); w != "" {
		b := w == "true"
		f.Wholesale = &b
	}
	if from := c.Query("from"); from != "" {
		if t, err := time.Parse("2006-01-02", from); err == nil {
			f.From = t
		}
	}
	if to := c.Query("to"); to != "" {
		if t, err := time.Parse("2006-01-02", to); err == nil {
			f.To = t
		}
	}

	orders, err := h.uc.List(c.Context(), f, GetEmail(c), GetRole(c))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(orders)
}

// GetByID devuelve un pedido; un cliente solo puede ver los suyos.
// GET /api/orders/:id
func (h *OrderHandler) GetByID(c *fiber.Ctx) error {
	order, err := h.uc.GetByID(c.Context(), c.Params("id"), GetEmail(c), GetRole(c))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(order)
}

// UpdateStatus avanza el estado del pedido (solo admin).
// PATCH /api/orders/:id/status
func (h *OrderHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.UpdateOrderStatusRequest
	if !parseBody(c, &in) {
		return nil
	}
	if err := h.uc.UpdateStatus(c.Context(), c.Params("id"), in.Status); err != nil {
		return handleError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
