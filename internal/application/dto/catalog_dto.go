package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest body para POST /api/productos.
type CreateProductRequest struct {
	Name     string          `json:"nombre"`
	SKU      string          `json:"sku"`
	Brand    string          `json:"marca"`
	MinStock int64           `json:"stock_minimo"`
	Price    decimal.Decimal `json:"precio_venta"`
}

// UpdateProductRequest body para PUT /api/productos/:id. El SKU no se edita.
type UpdateProductRequest struct {
	Name     string          `json:"nombre"`
	Brand    string          `json:"marca"`
	MinStock int64           `json:"stock_minimo"`
	Price    decimal.Decimal `json:"precio_venta"`
}

// ProductResponse salida de un producto del catálogo.
type ProductResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"nombre"`
	SKU       string    `json:"sku"`
	Brand     string    `json:"marca"`
	MinStock  int64     `json:"stock_minimo"`
	CreatedAt time.Time `json:"created_at"`
}

// LotResponse un lote activo dentro de la consulta de stock.
type LotResponse struct {
	ID         string    `json:"id"`
	LotNumber  string    `json:"numero_lote"`
	Expiration time.Time `json:"vencimiento"`
	Remaining  int64     `json:"remanente"`
	PositionID string    `json:"posicion"`
}

// StockViewResponse respuesta de la consulta por SKU: total disponible,
// lotes en orden de vencimiento y estado respecto del stock mínimo.
type StockViewResponse struct {
	Product ProductResponse `json:"producto"`
	Price   decimal.Decimal `json:"precio_venta"`
	Total   int64           `json:"stock_total"`
	Status  string          `json:"estado_stock"`
	Lots    []LotResponse   `json:"lotes"`
}

// BulkPriceUpdateRequest body para el ajuste masivo de precios.
type BulkPriceUpdateRequest struct {
	Percent decimal.Decimal `json:"porcentaje"`
	Brand   string          `json:"marca,omitempty"`
}

// BulkPriceUpdateResponse resultado del ajuste masivo.
type BulkPriceUpdateResponse struct {
	Updated int `json:"precios_actualizados"`
}
