package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mdc-pro/mdcpro-api/internal/application/usecase"
)

// NotificationHandler maneja la campana de notificaciones.
type NotificationHandler struct {
	uc *usecase.NotificationUseCase
}

// NewNotificationHandler construye el handler.
func NewNotificationHandler(uc *usecase.NotificationUseCase) *NotificationHandler {
	return &NotificationHandler{uc: uc}
}

// List devuelve las notificaciones del rol del usuario autenticado.
// GET /api/notifications?unread=true
func (h *NotificationHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.ListByRole(c.Context(), GetRole(c), c.Query("unread") == "true", c.QueryInt("limit", 100))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(list)
}

// MarkRead marca una notificación como leída.
// POST /api/notifications/:id/read
func (h *NotificationHandler) MarkRead(c *fiber.Ctx) error {
	if err := h.uc.MarkRead(c.Context(), c.Params("id")); err != nil {
		return handleError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// MarkAllRead marca todas las del rol como leídas.
// POST /api/notifications/read-all
func (h *NotificationHandler) MarkAllRead(c *fiber.Ctx) error {
	if err := h.uc.MarkAllRead(c.Context(), GetRole(c)); err != nil {
		return handleError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
