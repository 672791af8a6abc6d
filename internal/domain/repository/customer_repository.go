package repository

import (
	"github.com/shopspring/decimal"

	"github.com/vitalcan/haruwen-wms/internal/domain/entity"
)

// CustomerRepository define el puerto de persistencia para clientes.
type CustomerRepository interface {
	Create(customer *entity.Customer) error
	GetByID(id string) (*entity.Customer, error)
	GetByCUIT(cuit string) (*entity.Customer, error)
	List(limit, offset int) ([]*entity.Customer, error)
	ListIDs() ([]string, error)
	// UpdateBalance persiste el saldo derivado y el estado de cuenta.
	// Solo lo invoca el recalculador de saldos.
	UpdateBalance(id string, balance decimal.Decimal, state string) error
}
