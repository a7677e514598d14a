package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/mdc-pro/mdcpro-api/internal/application/dto"
	"github.com/mdc-pro/mdcpro-api/internal/application/usecase"
	"github.com/mdc-pro/mdcpro-api/internal/domain/repository"
)

// ExpenseHandler maneja gastos y pérdidas (solo admin).
type ExpenseHandler struct {
	uc *usecase.ExpenseUseCase
}

// NewExpenseHandler construye el handler.
func NewExpenseHandler(uc *usecase.ExpenseUseCase) *ExpenseHandler {
	return &ExpenseHandler{uc: uc}
}

// List lista gastos con filtros.
// GET /api/expenses?category=&loss=&from=&to=
func (h *ExpenseHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()

	f := repository.ExpenseFilter{
		Category: c.Query("category"),
		LossOnly: c.Query("loss") == "true",
		Limit:    page.Limit,
		Offset:   page.Offset,
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

	expenses, err := h.uc.List(c.Context(), f)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(expenses)
}

// Create registra un gasto o pérdida.
// POST /api/expenses
func (h *ExpenseHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateExpenseRequest
	if !parseBody(c, &in) {
		return nil
	}
	expense, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return handleError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(expense)
}

// Update corrige un gasto.
// PUT /api/expenses/:id
func (h *ExpenseHandler) Update(c *fiber.Ctx) error {
	var in dto.CreateExpenseRequest
	if !parseBody(c, &in) {
		return nil
	}
	expense, err := h.uc.Update(c.Context(), c.Params("id"), in)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(expense)
}

// Delete elimina un gasto.
// DELETE /api/expenses/:id
func (h *ExpenseHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		return handleError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
