package repository

import "github.com/vitalcan/haruwen-wms/internal/domain/entity"

// OrderRepository define el puerto de persistencia para pedidos y sus líneas.
type OrderRepository interface {
	Create(order *entity.Order) error
	CreateLine(line *entity.OrderLine) error
	GetByID(id string) (*entity.Order, error)
	GetLines(orderID string) ([]entity.OrderLine, error)
	List(limit, offset int) ([]*entity.Order, error)
	// MarkPrepared hace la transición pendiente → preparado con un update
	// condicional (WHERE estado = 'pendiente'). Devuelve false si ninguna
	// fila cambió: el pedido no existe o ya fue procesado por otro intento.
	MarkPrepared(id string) (bool, error)
}
