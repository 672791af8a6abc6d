package entity

import "time"

// Estados de un pedido. La transición pendiente → preparado ocurre una sola
// vez, en el picking exitoso; un pedido preparado nunca se reabre.
const (
	OrderPending  = "pendiente"
	OrderPrepared = "preparado"
)

// Order representa un pedido de cliente con sus líneas.
type Order struct {
	ID           string
	CustomerName string
	CustomerCUIT string
	State        string
	CreatedAt    time.Time
	Lines        []OrderLine
}

// OrderLine línea de pedido: producto y cantidad solicitada.
type OrderLine struct {
	OrderID   string
	ProductID string
	Quantity  int64
}
