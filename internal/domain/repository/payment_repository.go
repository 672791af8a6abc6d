package repository

import (
	"time"

	"github.com/vitalcan/haruwen-wms/internal/domain/entity"
)

// PaymentRepository define el puerto de persistencia para pagos de clientes.
type PaymentRepository interface {
	Create(payment *entity.Payment) error
	GetByID(id string) (*entity.Payment, error)
	// Approve marca el pago como aprobado con fecha. Devuelve false si el
	// pago no existe o ya no estaba pendiente.
	Approve(id string, approvedAt time.Time) (bool, error)
	ListPending(limit, offset int) ([]*entity.Payment, error)
	ListApprovedByCustomer(customerID string) ([]*entity.Payment, error)
}
