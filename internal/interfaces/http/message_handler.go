package http

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"

	"github.com/mdc-pro/mdcpro-api/internal/application/dto"
	"github.com/mdc-pro/mdcpro-api/internal/application/usecase"
	"github.com/mdc-pro/mdcpro-api/internal/infrastructure/realtime"
)

// MessageHandler maneja la mensajería interna y su stream en vivo.
type MessageHandler struct {
	uc  *usecase.MessageUseCase
	hub *realtime.Hub
}

// NewMessageHandler construye el handler.
func NewMessageHandler(uc *usecase.MessageUseCase, hub *realtime.Hub) *MessageHandler {
	return &MessageHandler{uc: uc, hub: hub}
}

// Send envía un mensaje; la entrega en vivo sale por el stream SSE.
// POST /api/messages
func (h *MessageHandler) Send(c *fiber.Ctx) error {
	var in dto.SendMessageRequest
	if !parseBody(c, &in) {
		return nil
	}
	msg, err := h.uc.Send(c.Context(), GetUserID(c), GetEmail(c), in)
	if err != nil {
		return handleError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(msg)
}

// Conversation devuelve el historial del usuario autenticado.
// GET /api/messages
func (h *MessageHandler) Conversation(c *fiber.Ctx) error {
	msgs, err := h.uc.Conversation(c.Context(), GetUserID(c), c.QueryInt("limit", 200))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(msgs)
}

// ListAll devuelve todos los mensajes (solo admin).
// GET /api/messages/all
func (h *MessageHandler) ListAll(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	msgs, err := h.uc.ListAll(c.Context(), page)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(msgs)
}

// Stream abre un stream SSE con los mensajes nuevos según llegan por el canal
// NOTIFY de PostgreSQL, sin polling.
// GET /api/messages/stream
func (h *MessageHandler) Stream(c *fiber.Ctx) error {
	c.Set(fiber.HeaderContentType, "text/event-stream")
	c.Set(fiber.HeaderCacheControl, "no-cache")
	c.Set(fiber.HeaderConnection, "keep-alive")

	events, unsubscribe := h.hub.Subscribe()

	c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		defer unsubscribe()
		for payload := range events {
			// un evento SSE por mensaje; payloads multilínea se parten en
			// varias líneas data: según el protocolo
			for _, line := range strings.Split(payload, "\n") {
				if _, err := fmt.Fprintf(w, "data: %s\n", line); err != nil {
					return
				}
			}
			if _, err := fmt.Fprint(w, "\n"); err != nil {
				return
			}
			if err := w.Flush(); err != nil {
				// cliente desconectado
				return
			}
		}
	}))
	return nil
}
