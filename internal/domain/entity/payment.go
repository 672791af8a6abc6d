package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un pago. Todo pago entra pendiente y requiere aprobación de
// administración antes de impactar el saldo del cliente.
const (
	PaymentPending  = "pendiente"
	PaymentApproved = "aprobado"
)

// Payment representa un pago informado por un cliente.
type Payment struct {
	ID         string
	CustomerID string
	Amount     decimal.Decimal
	Method     string
	State      string
	Notes      string
	LoadedBy   string
	ApprovedAt *time.Time
	CreatedAt  time.Time
}
