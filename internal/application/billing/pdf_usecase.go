package billing

import (
	"context"
	"fmt"

	"github.com/mdc-pro/mdcpro-api/internal/domain"
	"github.com/mdc-pro/mdcpro-api/internal/domain/repository"
)

// PDFUseCase genera el PDF de una factura existente.
type PDFUseCase struct {
	invoiceRepo repository.InvoiceRepository
	generator   InvoicePDFGenerator
}

// NewPDFUseCase construye el caso de uso.
func NewPDFUseCase(invoiceRepo repository.InvoiceRepository, generator InvoicePDFGenerator) *PDFUseCase {
	return &PDFUseCase{invoiceRepo: invoiceRepo, generator: generator}
}

// GenerateByID busca la factura y devuelve los bytes del PDF junto con el
// nombre de archivo sugerido.
func (uc *PDFUseCase) GenerateByID(ctx context.Context, invoiceID string) ([]byte, string, error) {
	invoice, err := uc.invoiceRepo.GetByID(ctx, invoiceID)
	if err != nil {
		return nil, "", err
	}
	if invoice == nil {
		return nil, "", domain.ErrNotFound
	}
	data, err := uc.generator.GenerateInvoicePDF(ctx, invoice)
	if err != nil {
		return nil, "", err
	}
	return data, fmt.Sprintf("factura_%s.pdf", invoice.InvoiceNumber), nil
}
