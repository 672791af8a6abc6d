package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de cuenta de un cliente. Los fija el recalculador de saldos,
// nunca se editan a mano.
const (
	CustomerActive = "activo"
	CustomerDebtor = "deudor"
)

// Customer representa un cliente (veterinaria / pet shop).
// Balance es derivado: Σ facturas − Σ pagos aprobados.
type Customer struct {
	ID        string
	Name      string
	CUIT      string
	Address   string
	State     string
	Balance   decimal.Decimal
	CreatedAt time.Time
}
