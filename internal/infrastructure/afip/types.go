package afip

import "github.com/shopspring/decimal"

// Request cuerpo del POST al gateway de facturación.
type Request struct {
	PedidoID string          `json:"pedidoId"`
	Total    decimal.Decimal `json:"total"`
	Cliente  string          `json:"cliente"`
}

// Response respuesta del gateway. Con Success=false solo viene Error.
type Response struct {
	Success        bool   `json:"success"`
	CAE            string `json:"cae,omitempty"`
	CAEFchVto      string `json:"caeFchVto,omitempty"`
	NroComprobante int64  `json:"nroComprobante,omitempty"`
	PuntoVenta     int    `json:"puntoVenta,omitempty"`
	Resultado      string `json:"resultado,omitempty"`
	Mensaje        string `json:"mensaje,omitempty"`
	Error          string `json:"error,omitempty"`
}
