package repository

import "github.com/vitalcan/haruwen-wms/internal/domain/entity"

// LotRepository define el puerto para lotes trazables.
// ListActiveByProduct devuelve los lotes con remanente > 0 ordenados por
// vencimiento ascendente y, a igual vencimiento, por orden de creación:
// el orden que consume el asignador FEFO. La variante ForUpdate bloquea
// las filas para descontar dentro de la transacción del picking.
type LotRepository interface {
	Create(lot *entity.Lot) error
	GetByID(id string) (*entity.Lot, error)
	ListActiveByProduct(productID string) ([]entity.Lot, error)
	ListActiveByProductForUpdate(productID string) ([]entity.Lot, error)
	// FindActiveInPosition busca un lote activo del producto en una posición
	// concreta (usado por transferencias entre racks).
	FindActiveInPosition(productID, positionID string) (*entity.Lot, error)
	UpdateRemaining(id string, remaining int64) error
	Relocate(id, positionID string) error
}
