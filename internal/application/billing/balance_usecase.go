package billing

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/vitalcan/haruwen-wms/internal/domain"
	"github.com/vitalcan/haruwen-wms/internal/domain/entity"
	"github.com/vitalcan/haruwen-wms/internal/domain/repository"
	"github.com/vitalcan/haruwen-wms/pkg/logger"
)

// Límite de deuda tolerado antes de pasar el cliente a deudor.
var debtThreshold = decimal.NewFromInt(500)

// BalanceUseCase mantiene el saldo de cuenta corriente de cada cliente.
// El saldo nunca se edita a mano: siempre se deriva de facturas emitidas
// menos pagos aprobados, por eso recalcular es idempotente.
type BalanceUseCase struct {
	customerRepo repository.CustomerRepository
	invoiceRepo  repository.InvoiceRepository
	paymentRepo  repository.PaymentRepository
	log          *logger.Logger
}

// NewBalanceUseCase construye el recalculador de saldos.
func NewBalanceUseCase(
	customerRepo repository.CustomerRepository,
	invoiceRepo repository.InvoiceRepository,
	paymentRepo repository.PaymentRepository,
	log *logger.Logger,
) *BalanceUseCase {
	return &BalanceUseCase{
		customerRepo: customerRepo,
		invoiceRepo:  invoiceRepo,
		paymentRepo:  paymentRepo,
		log:          log,
	}
}

// Recalculate rehace el saldo de un cliente desde cero: suma de facturas a
// su nombre menos pagos aprobados. Con saldo por encima del límite el
// cliente pasa a deudor; por debajo vuelve a activo.
func (uc *BalanceUseCase) Recalculate(ctx context.Context, customerID string) (*entity.Customer, error) {
	customer, err := uc.customerRepo.GetByID(customerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}

	invoices, err := uc.invoiceRepo.ListByCustomerName(customer.Name)
	if err != nil {
		return nil, err
	}
	billed := decimal.Zero
	for _, inv := range invoices {
		billed = billed.Add(inv.GrandTotal)
	}

	payments, err := uc.paymentRepo.ListApprovedByCustomer(customerID)
	if err != nil {
		return nil, err
	}
	paid := decimal.Zero
	for _, p := range payments {
		paid = paid.Add(p.Amount)
	}

	balance := billed.Sub(paid)
	state := entity.CustomerActive
	if balance.GreaterThan(debtThreshold) {
		state = entity.CustomerDebtor
	}

	if err := uc.customerRepo.UpdateBalance(customerID, balance, state); err != nil {
		return nil, err
	}

	if state != customer.State {
		uc.log.Info().
			Str("cliente_id", customerID).
			Str("cliente", customer.Name).
			Str("saldo", balance.String()).
			Str("estado", state).
			Msg("cambio de estado de cuenta del cliente")
	}

	customer.Balance = balance
	customer.State = state
	return customer, nil
}

// RecalculateByCUIT recalcula el saldo del cliente registrado con ese CUIT.
// Si el CUIT no corresponde a un cliente registrado no hay nada que hacer.
func (uc *BalanceUseCase) RecalculateByCUIT(ctx context.Context, cuit string) error {
	customer, err := uc.customerRepo.GetByCUIT(cuit)
	if err != nil {
		return err
	}
	if customer == nil {
		return nil
	}
	_, err = uc.Recalculate(ctx, customer.ID)
	return err
}

// AuditAll recorre todos los clientes y rehace cada saldo. Corrige
// cualquier divergencia que haya dejado un recálculo puntual fallido.
func (uc *BalanceUseCase) AuditAll(ctx context.Context) (int, error) {
	ids, err := uc.customerRepo.ListIDs()
	if err != nil {
		return 0, err
	}
	done := 0
	for _, id := range ids {
		if _, err := uc.Recalculate(ctx, id); err != nil {
			uc.log.Error().Str("cliente_id", id).Err(err).Msg("auditoría de saldo falló para el cliente")
			continue
		}
		done++
	}
	uc.log.Info().Int("clientes", done).Msg("auditoría global de saldos completada")
	return done, nil
}
