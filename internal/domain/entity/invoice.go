package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Invoice representa una factura electrónica autorizada por AFIP.
// Es inmutable una vez creada: es el registro legal y de auditoría.
type Invoice struct {
	ID           string
	OrderID      string
	CustomerName string
	CustomerCUIT string
	NetTotal     decimal.Decimal // total neto (sin IVA)
	Tax          decimal.Decimal // IVA 21%
	GrandTotal   decimal.Decimal // neto × 1.21
	IssuedBy     string          // usuario que procesó el picking
	CAE          string          // código de autorización electrónica (AFIP)
	CAEDue       string          // vencimiento del CAE, formato AAAAMMDD como lo devuelve AFIP
	Number       int64           // nro de comprobante secuencial
	PointOfSale  int             // punto de venta
	CreatedAt    time.Time
}
