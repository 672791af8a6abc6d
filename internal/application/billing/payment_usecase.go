package billing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vitalcan/haruwen-wms/internal/application/session"
	"github.com/vitalcan/haruwen-wms/internal/domain"
	"github.com/vitalcan/haruwen-wms/internal/domain/entity"
	"github.com/vitalcan/haruwen-wms/internal/domain/repository"
	"github.com/vitalcan/haruwen-wms/pkg/logger"
)

// PaymentUseCase carga y aprueba pagos de clientes. Un pago nace pendiente
// y solo impacta el saldo cuando un usuario con permiso lo aprueba.
type PaymentUseCase struct {
	paymentRepo  repository.PaymentRepository
	customerRepo repository.CustomerRepository
	balances     *BalanceUseCase
	log          *logger.Logger
}

// NewPaymentUseCase construye el caso de uso de pagos.
func NewPaymentUseCase(
	paymentRepo repository.PaymentRepository,
	customerRepo repository.CustomerRepository,
	balances *BalanceUseCase,
	log *logger.Logger,
) *PaymentUseCase {
	return &PaymentUseCase{
		paymentRepo:  paymentRepo,
		customerRepo: customerRepo,
		balances:     balances,
		log:          log,
	}
}

// RegisterInput entrada para cargar un pago.
type RegisterInput struct {
	CustomerID string
	Amount     decimal.Decimal
	Method     string
	Notes      string
}

// Register carga un pago en estado pendiente.
func (uc *PaymentUseCase) Register(ctx context.Context, sess session.Session, in RegisterInput) (*entity.Payment, error) {
	if in.CustomerID == "" || !in.Amount.GreaterThan(decimal.Zero) || in.Method == "" {
		return nil, domain.ErrInvalidInput
	}
	customer, err := uc.customerRepo.GetByID(in.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}

	payment := &entity.Payment{
		ID:         uuid.New().String(),
		CustomerID: in.CustomerID,
		Amount:     in.Amount,
		Method:     in.Method,
		State:      entity.PaymentPending,
		Notes:      in.Notes,
		LoadedBy:   sess.Actor(),
		CreatedAt:  time.Now(),
	}
	if err := uc.paymentRepo.Create(payment); err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("pago_id", payment.ID).
		Str("cliente_id", in.CustomerID).
		Str("monto", in.Amount.String()).
		Msg("pago cargado pendiente de aprobación")

	return payment, nil
}

// Approve aprueba un pago pendiente y recalcula el saldo del cliente.
// Aprobar dos veces el mismo pago no descuenta dos veces: la transición
// es condicional sobre el estado pendiente.
func (uc *PaymentUseCase) Approve(ctx context.Context, sess session.Session, paymentID string) (*entity.Customer, error) {
	payment, err := uc.paymentRepo.GetByID(paymentID)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, domain.ErrNotFound
	}

	ok, err := uc.paymentRepo.Approve(paymentID, time.Now())
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrInvalidInput
	}

	uc.log.Info().
		Str("pago_id", paymentID).
		Str("aprobado_por", sess.Actor()).
		Msg("pago aprobado")

	return uc.balances.Recalculate(ctx, payment.CustomerID)
}

// ListPending devuelve los pagos a la espera de aprobación.
func (uc *PaymentUseCase) ListPending(ctx context.Context, limit, offset int) ([]*entity.Payment, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return uc.paymentRepo.ListPending(limit, offset)
}
