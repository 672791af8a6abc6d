package afip

import (
	"context"
	"math/rand"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vitalcan/haruwen-wms/internal/application/fulfillment"
	"github.com/vitalcan/haruwen-wms/pkg/logger"
)

// HomologacionClient simula el gateway en ambiente de homologación: CAE
// fijo, número de comprobante aleatorio y una demora cercana a la del
// servicio real. No toca la red.
type HomologacionClient struct {
	delay time.Duration
	log   *logger.Logger
}

// NewHomologacionClient construye el simulador de homologación.
func NewHomologacionClient(log *logger.Logger) *HomologacionClient {
	return &HomologacionClient{delay: 800 * time.Millisecond, log: log}
}

// Authorize devuelve una autorización simulada tras la demora. Respeta la
// cancelación del contexto durante la espera.
func (c *HomologacionClient) Authorize(ctx context.Context, orderID string, total decimal.Decimal, customer string) (*fulfillment.Authorization, error) {
	select {
	case <-time.After(c.delay):
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	auth := &fulfillment.Authorization{
		CAE:         "73033527875222",
		CAEDue:      "20260215",
		Number:      rand.Int63n(1000) + 1,
		PointOfSale: 1,
	}

	c.log.Info().
		Str("pedido_id", orderID).
		Str("cae", auth.CAE).
		Int64("nro_comprobante", auth.Number).
		Msg("CAE simulado (homologación)")

	return auth, nil
}
