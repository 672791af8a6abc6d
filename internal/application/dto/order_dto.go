package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderLineRequest una línea del pedido a cargar.
type OrderLineRequest struct {
	ProductID string `json:"producto_id"`
	Quantity  int64  `json:"cantidad"`
}

// CreateOrderRequest body para POST /api/pedidos.
type CreateOrderRequest struct {
	CustomerName string             `json:"cliente_nombre"`
	CustomerCUIT string             `json:"cliente_cuit,omitempty"`
	Lines        []OrderLineRequest `json:"lineas"`
}

// OrderLineResponse una línea del pedido.
type OrderLineResponse struct {
	ProductID string `json:"producto_id"`
	Quantity  int64  `json:"cantidad"`
}

// OrderResponse salida de un pedido.
type OrderResponse struct {
	ID           string              `json:"id"`
	CustomerName string              `json:"cliente_nombre"`
	CustomerCUIT string              `json:"cliente_cuit,omitempty"`
	State        string              `json:"estado"`
	CreatedAt    time.Time           `json:"fecha"`
	Lines        []OrderLineResponse `json:"lineas,omitempty"`
}

// PickingResponse resultado del picking de un pedido: comprobante emitido
// y resumen de lo descontado.
type PickingResponse struct {
	OrderID      string          `json:"pedido_id"`
	InvoiceID    string          `json:"factura_id"`
	CAE          string          `json:"cae"`
	CAEDue       string          `json:"cae_vto"`
	Number       int64           `json:"nro_comprobante"`
	PointOfSale  int             `json:"punto_venta"`
	NetTotal     decimal.Decimal `json:"total_neto"`
	Tax          decimal.Decimal `json:"iva"`
	GrandTotal   decimal.Decimal `json:"total_final"`
	NominalTotal bool            `json:"total_nominal"`
	Movements    int             `json:"movimientos"`
}
