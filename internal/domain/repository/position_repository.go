package repository

import "github.com/vitalcan/haruwen-wms/internal/domain/entity"

// PositionRepository define el puerto para posiciones físicas de depósito.
// Las mutaciones ocurren siempre dentro de una transacción; GetForUpdate
// bloquea la fila (SELECT FOR UPDATE) para evitar lost updates entre
// operaciones concurrentes sobre la misma posición.
type PositionRepository interface {
	Create(position *entity.Position) error
	GetByID(id string) (*entity.Position, error)
	GetForUpdate(id string) (*entity.Position, error)
	List() ([]*entity.Position, error)
	ListByProduct(productID string) ([]*entity.Position, error)
	Update(position *entity.Position) error
}
