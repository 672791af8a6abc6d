package entity

import "time"

// Tipos de movimiento de stock. La tabla movimientos es append-only:
// nunca se actualiza ni se borra un registro.
const (
	MovementEntry      = "ENTRADA"
	MovementExit       = "SALIDA"
	MovementTransfer   = "TRANSFERENCIA"
	MovementAdjustment = "AJUSTE"
)

// Movement representa un movimiento auditado de stock. Se escribe un registro
// por cada operación que afecta cantidades (en el picking, uno por lote
// descontado, no uno por pedido).
type Movement struct {
	ID        string
	ProductID string
	Type      string
	Origin    string // posición origen, o "PROVEEDOR" en recepciones
	Dest      string // posición destino, o referencia de venta con CAE en salidas
	Quantity  int64
	User      string // usuario que ejecutó la operación
	Reference string // texto libre (observaciones / motivo)
	CreatedAt time.Time
}
