package billing

import "github.com/vitalcan/haruwen-wms/internal/domain/entity"

// InvoicePDFGenerator puerto de salida para la representación gráfica de la
// factura. La implementación concreta usa maroto; para tests se inyecta un mock.
type InvoicePDFGenerator interface {
	Generate(invoice *entity.Invoice) ([]byte, error)
}
