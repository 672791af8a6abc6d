package dto

import "time"

// ReceiveRequest body para POST /api/inventario/recepcion.
type ReceiveRequest struct {
	ProductID  string    `json:"producto_id"`
	PositionID string    `json:"posicion"`
	LotNumber  string    `json:"numero_lote"`
	Expiration time.Time `json:"vencimiento"`
	Quantity   int64     `json:"cantidad"`
}

// TransferRequest body para POST /api/inventario/traspaso.
type TransferRequest struct {
	ProductID      string `json:"producto_id"`
	FromPositionID string `json:"posicion_origen"`
	ToPositionID   string `json:"posicion_destino"`
	Quantity       int64  `json:"cantidad"`
}

// AdjustRequest body para POST /api/inventario/ajuste. Quantity es la
// cantidad final contada, no un delta.
type AdjustRequest struct {
	PositionID   string `json:"posicion"`
	Quantity     int64  `json:"cantidad"`
	Observations string `json:"observaciones"`
}

// CreatePositionRequest body para el alta de una posición física.
type CreatePositionRequest struct {
	ID string `json:"id"` // identificador de negocio, ej. "A-12"
}

// PositionResponse salida de una posición de depósito.
type PositionResponse struct {
	ID        string `json:"id"`
	Quantity  int64  `json:"cantidad"`
	State     string `json:"estado"`
	ProductID string `json:"producto_id,omitempty"`
}

// MovementResponse un asiento del libro de movimientos.
type MovementResponse struct {
	ID        string    `json:"id"`
	ProductID string    `json:"producto_id"`
	Type      string    `json:"tipo"`
	Origin    string    `json:"origen"`
	Dest      string    `json:"destino"`
	Quantity  int64     `json:"cantidad"`
	User      string    `json:"usuario"`
	Reference string    `json:"referencia,omitempty"`
	CreatedAt time.Time `json:"fecha"`
}
