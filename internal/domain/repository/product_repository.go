package repository

import "github.com/vitalcan/haruwen-wms/internal/domain/entity"

// ProductRepository define el puerto de persistencia para productos del catálogo.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetBySKU(sku string) (*entity.Product, error)
	List(limit, offset int) ([]*entity.Product, error)
	ListByBrand(brand string) ([]*entity.Product, error)
	Update(product *entity.Product) error
}

// PriceRepository define el puerto para el precio de venta vigente (tabla precios).
type PriceRepository interface {
	GetByProduct(productID string) (*entity.Price, error)
	Upsert(price *entity.Price) error
}
