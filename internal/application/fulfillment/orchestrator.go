package fulfillment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vitalcan/haruwen-wms/internal/application/session"
	"github.com/vitalcan/haruwen-wms/internal/domain"
	"github.com/vitalcan/haruwen-wms/internal/domain/entity"
	"github.com/vitalcan/haruwen-wms/internal/domain/fefo"
	"github.com/vitalcan/haruwen-wms/internal/domain/repository"
	"github.com/vitalcan/haruwen-wms/pkg/logger"
)

// Alícuota de IVA para factura de venta.
var ivaRate = decimal.NewFromFloat(0.21)

// Total nominal que reemplaza un total calculado en cero o negativo
// (datos de precio incompletos). Comportamiento heredado del sistema
// original: la operación no se bloquea, pero se alerta al operador.
var nominalTotal = decimal.NewFromInt(100)

// Result resume un picking exitoso.
type Result struct {
	OrderID      string          `json:"pedido_id"`
	InvoiceID    string          `json:"factura_id"`
	CAE          string          `json:"cae"`
	CAEDue       string          `json:"cae_vto"`
	Number       int64           `json:"nro_comprobante"`
	PointOfSale  int             `json:"punto_venta"`
	NetTotal     decimal.Decimal `json:"total_neto"`
	Tax          decimal.Decimal `json:"iva"`
	GrandTotal   decimal.Decimal `json:"total_final"`
	NominalTotal bool            `json:"total_nominal"` // true si se aplicó el total de respaldo
	Movements    int             `json:"movimientos"`
}

// Orchestrator conduce el picking de un pedido: asignación FEFO, autorización
// AFIP y, en una sola transacción, descuento de stock, libro de movimientos,
// factura y transición del pedido a preparado.
type Orchestrator struct {
	txRunner    PickingTxRunner
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
	priceRepo   repository.PriceRepository
	lotRepo     repository.LotRepository
	invoiceRepo repository.InvoiceRepository
	authorizer  InvoiceAuthorizer
	balances    BalanceRecalculator
	log         *logger.Logger
}

// NewOrchestrator construye el orquestador de picking.
func NewOrchestrator(
	txRunner PickingTxRunner,
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	priceRepo repository.PriceRepository,
	lotRepo repository.LotRepository,
	invoiceRepo repository.InvoiceRepository,
	authorizer InvoiceAuthorizer,
	balances BalanceRecalculator,
	log *logger.Logger,
) *Orchestrator {
	return &Orchestrator{
		txRunner:    txRunner,
		orderRepo:   orderRepo,
		productRepo: productRepo,
		priceRepo:   priceRepo,
		lotRepo:     lotRepo,
		invoiceRepo: invoiceRepo,
		authorizer:  authorizer,
		balances:    balances,
		log:         log,
	}
}

// lineToPick una línea del pedido con su producto y precio resueltos.
type lineToPick struct {
	product  *entity.Product
	quantity int64
	price    decimal.Decimal
}

// ProcessPicking procesa la salida de un pedido pendiente.
//
// Secuencia: carga del pedido, chequeo FEFO por línea (sin tocar nada),
// total, autorización AFIP, y recién entonces la transacción de descuento.
// Ante cualquier falla previa a la autorización el estado queda intacto.
// Una falla posterior a la autorización se reporta como PersistenceError
// con el CAE adentro para conciliación manual; no se reintenta solo.
func (o *Orchestrator) ProcessPicking(ctx context.Context, sess session.Session, orderID string) (*Result, error) {
	// 1) Pedido pendiente con líneas y precios.
	order, err := o.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, fmt.Errorf("obtener pedido: %w", err)
	}
	if order == nil {
		return nil, domain.ErrOrderNotFound
	}
	if order.State != entity.OrderPending {
		return nil, domain.ErrAlreadyFulfilled
	}
	lines, err := o.orderRepo.GetLines(orderID)
	if err != nil {
		return nil, fmt.Errorf("obtener líneas del pedido: %w", err)
	}
	if len(lines) == 0 {
		return nil, domain.ErrInvalidInput
	}

	toPick := make([]lineToPick, 0, len(lines))
	for _, line := range lines {
		product, err := o.productRepo.GetByID(line.ProductID)
		if err != nil || product == nil {
			return nil, domain.ErrNotFound
		}
		price := decimal.Zero
		if p, err := o.priceRepo.GetByProduct(line.ProductID); err == nil && p != nil {
			price = p.SalePrice
		}
		toPick = append(toPick, lineToPick{product: product, quantity: line.Quantity, price: price})
	}

	// 2) Chequeo FEFO por línea contra lotes vivos. Cualquier faltante
	// aborta el pedido completo antes de llamar al gateway.
	for _, l := range toPick {
		lots, err := o.lotRepo.ListActiveByProduct(l.product.ID)
		if err != nil {
			return nil, fmt.Errorf("consultar lotes de %s: %w", l.product.SKU, err)
		}
		if _, err := fefo.Allocate(l.product.ID, l.product.Name, l.quantity, lots); err != nil {
			return nil, err
		}
	}

	// 3) Total del pedido; cero o negativo cae al total nominal.
	total := decimal.Zero
	for _, l := range toPick {
		total = total.Add(l.price.Mul(decimal.NewFromInt(l.quantity)))
	}
	nominal := false
	if !total.GreaterThan(decimal.Zero) {
		o.log.Warn().
			Str("pedido_id", orderID).
			Str("total_calculado", total.String()).
			Msg("total del pedido en cero o negativo: se factura el total nominal; revisar precios del catálogo")
		total = nominalTotal
		nominal = true
	}

	// 4) Autorización AFIP. Única dependencia externa; si falla, el pedido
	// sigue pendiente y no se tocó stock. El mensaje del gateway llega
	// textual al operador dentro de AuthorizationError.
	customer := order.CustomerName
	if customer == "" {
		customer = "Consumidor Final"
	}
	auth, err := o.authorizer.Authorize(ctx, orderID, total, customer)
	if err != nil {
		return nil, err
	}

	// 5-7) Transacción de descuento, libro, factura y transición del pedido.
	now := time.Now()
	invoiceID := uuid.New().String()
	movements := 0
	err = o.txRunner.RunPicking(ctx, func(
		orderRepo repository.OrderRepository,
		lotRepo repository.LotRepository,
		posRepo repository.PositionRepository,
		movRepo repository.MovementRepository,
		invoiceRepo repository.InvoiceRepository,
	) error {
		// Transición pendiente → preparado por update condicional: si otro
		// intento ganó la carrera, acá no cambió ninguna fila y se aborta
		// sin descontar nada dos veces.
		ok, err := orderRepo.MarkPrepared(orderID)
		if err != nil {
			return fmt.Errorf("marcar pedido preparado: %w", err)
		}
		if !ok {
			return domain.ErrAlreadyFulfilled
		}
		// Guarda adicional: un pedido que ya tiene factura no se refactura.
		if existing, err := invoiceRepo.GetByOrderID(orderID); err != nil {
			return fmt.Errorf("verificar factura previa: %w", err)
		} else if existing != nil {
			return domain.ErrAlreadyFulfilled
		}

		saleRef := fmt.Sprintf("Venta (CAE %s)", auth.CAE)
		for _, l := range toPick {
			// Re-lectura con bloqueo de fila: la asignación se rehace sobre
			// cantidades vivas, no sobre el snapshot del chequeo previo.
			lots, err := lotRepo.ListActiveByProductForUpdate(l.product.ID)
			if err != nil {
				return fmt.Errorf("bloquear lotes de %s: %w", l.product.SKU, err)
			}
			plan, err := fefo.Allocate(l.product.ID, l.product.Name, l.quantity, lots)
			if err != nil {
				return err
			}
			for _, draw := range plan.Draws {
				if err := lotRepo.UpdateRemaining(draw.Lot.ID, draw.Lot.Remaining-draw.Quantity); err != nil {
					return fmt.Errorf("descontar lote %s: %w", draw.Lot.LotNumber, err)
				}
				pos, err := posRepo.GetForUpdate(draw.PositionID)
				if err != nil {
					return fmt.Errorf("bloquear posición %s: %w", draw.PositionID, err)
				}
				if pos == nil {
					return fmt.Errorf("posición %s del lote %s no existe", draw.PositionID, draw.Lot.LotNumber)
				}
				pos.Apply(pos.Quantity - draw.Quantity)
				if err := posRepo.Update(pos); err != nil {
					return fmt.Errorf("actualizar posición %s: %w", pos.ID, err)
				}
				mov := &entity.Movement{
					ID:        uuid.New().String(),
					ProductID: l.product.ID,
					Type:      entity.MovementExit,
					Origin:    draw.PositionID,
					Dest:      saleRef,
					Quantity:  draw.Quantity,
					User:      sess.Actor(),
					CreatedAt: now,
				}
				if err := movRepo.Create(mov); err != nil {
					return fmt.Errorf("registrar salida: %w", err)
				}
				movements++
			}
		}

		invoice := &entity.Invoice{
			ID:           invoiceID,
			OrderID:      orderID,
			CustomerName: order.CustomerName,
			CustomerCUIT: order.CustomerCUIT,
			NetTotal:     total,
			Tax:          total.Mul(ivaRate),
			GrandTotal:   total.Add(total.Mul(ivaRate)),
			IssuedBy:     sess.Actor(),
			CAE:          auth.CAE,
			CAEDue:       auth.CAEDue,
			Number:       auth.Number,
			PointOfSale:  auth.PointOfSale,
			CreatedAt:    now,
		}
		return invoiceRepo.Create(invoice)
	})
	if err != nil {
		// ErrAlreadyFulfilled no consumió nada raro: otro intento facturó
		// antes. Todo lo demás llega acá con un CAE ya emitido y el estado
		// local sin confirmar: se escala con el código a la vista.
		if errors.Is(err, domain.ErrAlreadyFulfilled) {
			return nil, err
		}
		perr := &domain.PersistenceError{OrderID: orderID, CAE: auth.CAE, Err: err}
		o.log.Error().
			Str("pedido_id", orderID).
			Str("cae", auth.CAE).
			Err(err).
			Msg("falla de persistencia con autorización ya consumida: conciliar manualmente, no reintentar")
		return nil, perr
	}

	// Saldo del cliente: derivado de facturas − pagos; se recalcula acá
	// mejor-esfuerzo, la auditoría global lo corrige si esto falla.
	if o.balances != nil && order.CustomerCUIT != "" {
		if err := o.balances.RecalculateByCUIT(ctx, order.CustomerCUIT); err != nil {
			o.log.Warn().Str("cuit", order.CustomerCUIT).Err(err).Msg("no se pudo recalcular el saldo del cliente")
		}
	}

	o.log.Info().
		Str("pedido_id", orderID).
		Str("cae", auth.CAE).
		Int64("nro_comprobante", auth.Number).
		Int("movimientos", movements).
		Msg("picking procesado y factura emitida")

	return &Result{
		OrderID:      orderID,
		InvoiceID:    invoiceID,
		CAE:          auth.CAE,
		CAEDue:       auth.CAEDue,
		Number:       auth.Number,
		PointOfSale:  auth.PointOfSale,
		NetTotal:     total,
		Tax:          total.Mul(ivaRate),
		GrandTotal:   total.Add(total.Mul(ivaRate)),
		NominalTotal: nominal,
		Movements:    movements,
	}, nil
}
