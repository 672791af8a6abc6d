package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateCustomerRequest body para el alta de un cliente.
type CreateCustomerRequest struct {
	Name    string `json:"nombre"`
	CUIT    string `json:"cuit"`
	Address string `json:"direccion,omitempty"`
}

// CustomerResponse salida de un cliente con su saldo derivado.
type CustomerResponse struct {
	ID      string          `json:"id"`
	Name    string          `json:"nombre"`
	CUIT    string          `json:"cuit"`
	Address string          `json:"direccion,omitempty"`
	State   string          `json:"estado"`
	Balance decimal.Decimal `json:"saldo"`
}

// RegisterPaymentRequest body para cargar un pago.
type RegisterPaymentRequest struct {
	CustomerID string          `json:"cliente_id"`
	Amount     decimal.Decimal `json:"monto"`
	Method     string          `json:"metodo"`
	Notes      string          `json:"notas,omitempty"`
}

// PaymentResponse salida de un pago.
type PaymentResponse struct {
	ID         string          `json:"id"`
	CustomerID string          `json:"cliente_id"`
	Amount     decimal.Decimal `json:"monto"`
	Method     string          `json:"metodo"`
	State      string          `json:"estado"`
	Notes      string          `json:"notas,omitempty"`
	LoadedBy   string          `json:"cargado_por"`
	ApprovedAt *time.Time      `json:"aprobado_el,omitempty"`
	CreatedAt  time.Time       `json:"fecha"`
}

// InvoiceResponse salida de una factura emitida.
type InvoiceResponse struct {
	ID           string          `json:"id"`
	OrderID      string          `json:"pedido_id"`
	CustomerName string          `json:"cliente_nombre"`
	CustomerCUIT string          `json:"cliente_cuit,omitempty"`
	NetTotal     decimal.Decimal `json:"total_neto"`
	Tax          decimal.Decimal `json:"iva"`
	GrandTotal   decimal.Decimal `json:"total_final"`
	IssuedBy     string          `json:"emitida_por"`
	CAE          string          `json:"cae"`
	CAEDue       string          `json:"cae_vto"`
	Number       int64           `json:"nro_comprobante"`
	PointOfSale  int             `json:"punto_venta"`
	CreatedAt    time.Time       `json:"fecha"`
}

// AuditResponse resultado de la auditoría global de saldos.
type AuditResponse struct {
	Customers int `json:"clientes_recalculados"`
}
