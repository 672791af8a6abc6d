package afip

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vitalcan/haruwen-wms/internal/application/fulfillment"
	"github.com/vitalcan/haruwen-wms/internal/domain"
	"github.com/vitalcan/haruwen-wms/pkg/logger"
)

// ── Constantes de entorno ──────────────────────────────────────────────────────

const (
	// ModeHomologacion simula la autorización sin salir a la red.
	ModeHomologacion = "homologacion"
	// ModeProduccion consulta el gateway HTTP real.
	ModeProduccion = "produccion"
)

// ── Implementación HTTP ────────────────────────────────────────────────────────

// HTTPClient implementa fulfillment.InvoiceAuthorizer contra el gateway de
// facturación. Un rechazo del gateway (success=false) no es una falla
// de red: se traduce a AuthorizationError con el mensaje textual.
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
	log        *logger.Logger
}

// NewHTTPClient construye el cliente del gateway. El timeout abarca la
// llamada completa; el gateway puede tardar varios segundos bajo carga.
func NewHTTPClient(baseURL string, timeout time.Duration, log *logger.Logger) *HTTPClient {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &HTTPClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		log:        log,
	}
}

// Authorize solicita el CAE para un pedido. Idempotencia: el gateway no
// dedupe por pedido, por eso quien llama debe autorizar a lo sumo una vez.
func (c *HTTPClient) Authorize(ctx context.Context, orderID string, total decimal.Decimal, customer string) (*fulfillment.Authorization, error) {
	payload, err := json.Marshal(Request{PedidoID: orderID, Total: total, Cliente: customer})
	if err != nil {
		return nil, fmt.Errorf("armar solicitud de autorización: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/afip/solicitar-cae", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("crear solicitud de autorización: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	c.log.Debug().Str("pedido_id", orderID).Str("total", total.String()).Msg("solicitando CAE al gateway")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &domain.AuthorizationError{OrderID: orderID, Message: fmt.Sprintf("gateway inaccesible: %v", err)}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, &domain.AuthorizationError{OrderID: orderID, Message: fmt.Sprintf("leer respuesta del gateway: %v", err)}
	}

	var out Response
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, &domain.AuthorizationError{OrderID: orderID, Message: fmt.Sprintf("respuesta del gateway ilegible (HTTP %d)", resp.StatusCode)}
	}

	if !out.Success {
		msg := out.Error
		if msg == "" {
			msg = out.Mensaje
		}
		if msg == "" {
			msg = fmt.Sprintf("autorización rechazada (HTTP %d)", resp.StatusCode)
		}
		c.log.Warn().Str("pedido_id", orderID).Str("motivo", msg).Msg("gateway rechazó la autorización")
		return nil, &domain.AuthorizationError{OrderID: orderID, Message: msg}
	}

	c.log.Info().
		Str("pedido_id", orderID).
		Str("cae", out.CAE).
		Int64("nro_comprobante", out.NroComprobante).
		Msg("CAE otorgado")

	return &fulfillment.Authorization{
		CAE:         out.CAE,
		CAEDue:      out.CAEFchVto,
		Number:      out.NroComprobante,
		PointOfSale: out.PuntoVenta,
	}, nil
}
