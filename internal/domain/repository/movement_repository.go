package repository

import "github.com/vitalcan/haruwen-wms/internal/domain/entity"

// MovementRepository define el puerto para el libro de movimientos.
// Create es la única escritura: el libro es append-only, nunca se edita.
// Si el insert falla, el error se propaga y voltea la transacción que lo
// contiene; stock y libro no pueden divergir en silencio.
type MovementRepository interface {
	Create(movement *entity.Movement) error
	List(limit, offset int) ([]*entity.Movement, error)
	ListByProduct(productID string) ([]*entity.Movement, error)
}
