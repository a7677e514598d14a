package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/mdc-pro/mdcpro-api/internal/application/billing"
	"github.com/mdc-pro/mdcpro-api/internal/application/dto"
	"github.com/mdc-pro/mdcpro-api/internal/domain/repository"
)

// InvoiceHandler maneja la facturación (solo admin).
type InvoiceHandler struct {
	uc    *billing.InvoiceUseCase
	pdfUC *billing.PDFUseCase
}

// NewInvoiceHandler construye el handler.
func NewInvoiceHandler(uc *billing.InvoiceUseCase, pdfUC *billing.PDFUseCase) *InvoiceHandler {
	return &InvoiceHandler{uc: uc, pdfUC: pdfUC}
}

// Create emite una factura manual.
// POST /api/invoices
func (h *InvoiceHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateInvoiceRequest
	if !parseBody(c, &in) {
		return nil
	}
	invoice, err := h.uc.CreateManual(c.Context(), in)
	if err != nil {
		return handleError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(invoice)
}

// CreateFromOrder emite la factura de un pedido existente.
// POST /api/orders/:id/invoice
func (h *InvoiceHandler) CreateFromOrder(c *fiber.Ctx) error {
	invoice, err := h.uc.CreateFromOrder(c.Context(), c.Params("id"))
	if err != nil {
		return handleError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(invoice)
}

// List lista facturas con filtros.
// GET /api/invoices?status=&wholesale=&vat=&from=&to=
func (h *InvoiceHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()

	f := repository.InvoiceFilter{
		Status:  c.Query("status"),
		VATOnly: c.Query("vat") == "true",
		Limit:   page.Limit,
		Offset:  page.Offset,
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

	invoices, err := h.uc.List(c.Context(), f)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(invoices)
}

// GetByID devuelve una factura.
// GET /api/invoices/:id
func (h *InvoiceHandler) GetByID(c *fiber.Ctx) error {
	invoice, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(invoice)
}

// MarkPaid registra el cobro de la factura.
// POST /api/invoices/:id/pay
func (h *InvoiceHandler) MarkPaid(c *fiber.Ctx) error {
	var in struct {
		PaymentMethod string `json:"payment_method"`
	}
	// cuerpo opcional
	_ = c.BodyParser(&in)
	if err := h.uc.MarkPaid(c.Context(), c.Params("id"), in.PaymentMethod); err != nil {
		return handleError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Delete elimina una factura.
// DELETE /api/invoices/:id
func (h *InvoiceHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		return handleError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// DownloadPDF genera y descarga el PDF de la factura.
// GET /api/invoices/:id/pdf
func (h *InvoiceHandler) DownloadPDF(c *fiber.Ctx) error {
	data, filename, err := h.pdfUC.GenerateByID(c.Context(), c.Params("id"))
	if err != nil {
		return handleError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(data)
}
