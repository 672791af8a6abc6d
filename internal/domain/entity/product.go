package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo (alimento balanceado).
// El stock no vive acá: se deriva de las posiciones que lo contienen.
type Product struct {
	ID        string
	Name      string
	SKU       string // código único de negocio
	Brand     string
	MinStock  int64 // umbral para alerta de stock crítico
	CreatedAt time.Time
}

// Price precio de venta vigente de un producto (tabla precios, 1:1).
type Price struct {
	ProductID string
	SalePrice decimal.Decimal
	UpdatedAt time.Time
}
