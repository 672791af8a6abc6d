package repository

import "github.com/vitalcan/haruwen-wms/internal/domain/entity"

// InvoiceRepository define el puerto de persistencia para facturas.
// No hay Update ni Delete: la factura es inmutable una vez emitida.
type InvoiceRepository interface {
	Create(invoice *entity.Invoice) error
	GetByID(id string) (*entity.Invoice, error)
	GetByOrderID(orderID string) (*entity.Invoice, error)
	List(limit, offset int) ([]*entity.Invoice, error)
	// ListByCustomerName devuelve las facturas de un cliente. La factura
	// guarda nombre y CUIT, no un FK al cliente, igual que el esquema legado.
	ListByCustomerName(name string) ([]*entity.Invoice, error)
}
