package billing

import (
	"context"
	"fmt"

	"github.com/vitalcan/haruwen-wms/internal/domain"
	"github.com/vitalcan/haruwen-wms/internal/domain/entity"
	"github.com/vitalcan/haruwen-wms/internal/domain/repository"
)

// InvoiceUseCase consulta de facturas emitidas. Las facturas nacen en el
// picking y son inmutables, acá solo hay lecturas.
type InvoiceUseCase struct {
	repo      repository.InvoiceRepository
	generator InvoicePDFGenerator
}

// NewInvoiceUseCase construye el caso de uso.
func NewInvoiceUseCase(repo repository.InvoiceRepository, generator InvoicePDFGenerator) *InvoiceUseCase {
	return &InvoiceUseCase{repo: repo, generator: generator}
}

// Get devuelve una factura por ID.
func (uc *InvoiceUseCase) Get(ctx context.Context, id string) (*entity.Invoice, error) {
	inv, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	return inv, nil
}

// GetByOrder devuelve la factura emitida para un pedido, si existe.
func (uc *InvoiceUseCase) GetByOrder(ctx context.Context, orderID string) (*entity.Invoice, error) {
	inv, err := uc.repo.GetByOrderID(orderID)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	return inv, nil
}

// List devuelve las facturas paginadas.
func (uc *InvoiceUseCase) List(ctx context.Context, limit, offset int) ([]*entity.Invoice, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return uc.repo.List(limit, offset)
}

// DownloadPDF genera la representación gráfica de una factura emitida.
// Retorna los bytes del PDF y el nombre de archivo sugerido.
func (uc *InvoiceUseCase) DownloadPDF(ctx context.Context, invoiceID string) ([]byte, string, error) {
	inv, err := uc.repo.GetByID(invoiceID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener factura: %w", err)
	}
	if inv == nil {
		return nil, "", domain.ErrNotFound
	}
	pdf, err := uc.generator.Generate(inv)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generar representación gráfica: %w", err)
	}
	filename := fmt.Sprintf("factura_%04d-%08d.pdf", inv.PointOfSale, inv.Number)
	return pdf, filename, nil
}
