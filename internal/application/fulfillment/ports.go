package fulfillment

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/vitalcan/haruwen-wms/internal/domain/repository"
)

// PickingTxRunner ejecuta una función dentro de una transacción que incluye
// los repositorios que muta el picking. Los pasos posteriores a la
// autorización AFIP (descuento de lotes y posiciones, libro de movimientos,
// factura, transición del pedido) corren todos adentro: o impactan juntos
// o no impacta ninguno.
type PickingTxRunner interface {
	RunPicking(ctx context.Context, fn func(
		orderRepo repository.OrderRepository,
		lotRepo repository.LotRepository,
		posRepo repository.PositionRepository,
		movRepo repository.MovementRepository,
		invoiceRepo repository.InvoiceRepository,
	) error) error
}

// Authorization datos devueltos por el gateway fiscal ante una autorización exitosa.
type Authorization struct {
	CAE         string
	CAEDue      string // vencimiento del CAE (AAAAMMDD)
	Number      int64  // nro de comprobante
	PointOfSale int
}

// InvoiceAuthorizer es el puerto hacia el gateway de autorización AFIP.
// Es una llamada remota sin efectos sobre el estado local: toda mutación
// ocurre recién después de que devuelve éxito. Se invoca a lo sumo una vez
// por intento de picking.
type InvoiceAuthorizer interface {
	Authorize(ctx context.Context, orderID string, total decimal.Decimal, customer string) (*Authorization, error)
}

// BalanceRecalculator dispara el recálculo de saldo del cliente después de
// emitir una factura. Implementado por billing; acá solo interesa el gatillo.
type BalanceRecalculator interface {
	RecalculateByCUIT(ctx context.Context, cuit string) error
}
