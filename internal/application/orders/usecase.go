package orders

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/vitalcan/haruwen-wms/internal/domain"
	"github.com/vitalcan/haruwen-wms/internal/domain/entity"
	"github.com/vitalcan/haruwen-wms/internal/domain/repository"
	"github.com/vitalcan/haruwen-wms/pkg/logger"
)

// TxRunner ejecuta la carga del pedido y sus líneas en una transacción.
type TxRunner interface {
	RunOrder(ctx context.Context, fn func(orderRepo repository.OrderRepository) error) error
}

// UseCase carga y consulta pedidos de venta.
type UseCase struct {
	txRunner     TxRunner
	orderRepo    repository.OrderRepository
	productRepo  repository.ProductRepository
	customerRepo repository.CustomerRepository
	log          *logger.Logger
}

// NewUseCase construye el caso de uso de pedidos.
func NewUseCase(
	txRunner TxRunner,
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	customerRepo repository.CustomerRepository,
	log *logger.Logger,
) *UseCase {
	return &UseCase{
		txRunner:     txRunner,
		orderRepo:    orderRepo,
		productRepo:  productRepo,
		customerRepo: customerRepo,
		log:          log,
	}
}

// LineInput una línea del pedido a crear.
type LineInput struct {
	ProductID string
	Quantity  int64
}

// CreateInput pedido nuevo. El cliente se identifica por CUIT si está
// registrado; nombre solo alcanza para consumidor final.
type CreateInput struct {
	CustomerName string
	CustomerCUIT string
	Lines        []LineInput
}

// Create registra un pedido pendiente con sus líneas. Un cliente registrado
// en estado deudor no puede cargar pedidos nuevos hasta regularizar saldo.
func (uc *UseCase) Create(ctx context.Context, in CreateInput) (*entity.Order, error) {
	if in.CustomerName == "" || len(in.Lines) == 0 {
		return nil, domain.ErrInvalidInput
	}
	for _, l := range in.Lines {
		if l.ProductID == "" || l.Quantity <= 0 {
			return nil, domain.ErrInvalidInput
		}
		product, err := uc.productRepo.GetByID(l.ProductID)
		if err != nil || product == nil {
			return nil, domain.ErrNotFound
		}
	}

	if in.CustomerCUIT != "" {
		customer, err := uc.customerRepo.GetByCUIT(in.CustomerCUIT)
		if err != nil {
			return nil, err
		}
		if customer != nil && customer.State == entity.CustomerDebtor {
			uc.log.Warn().
				Str("cuit", in.CustomerCUIT).
				Str("cliente", customer.Name).
				Msg("pedido rechazado: cliente deudor")
			return nil, domain.ErrCustomerBlocked
		}
	}

	order := &entity.Order{
		ID:           uuid.New().String(),
		CustomerName: in.CustomerName,
		CustomerCUIT: in.CustomerCUIT,
		State:        entity.OrderPending,
		CreatedAt:    time.Now(),
	}
	for _, l := range in.Lines {
		order.Lines = append(order.Lines, entity.OrderLine{
			OrderID:   order.ID,
			ProductID: l.ProductID,
			Quantity:  l.Quantity,
		})
	}

	err := uc.txRunner.RunOrder(ctx, func(orderRepo repository.OrderRepository) error {
		if err := orderRepo.Create(order); err != nil {
			return err
		}
		for i := range order.Lines {
			if err := orderRepo.CreateLine(&order.Lines[i]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("pedido_id", order.ID).
		Str("cliente", order.CustomerName).
		Int("lineas", len(order.Lines)).
		Msg("pedido cargado")

	return order, nil
}

// Get devuelve un pedido con sus líneas.
func (uc *UseCase) Get(ctx context.Context, id string) (*entity.Order, error) {
	order, err := uc.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrOrderNotFound
	}
	lines, err := uc.orderRepo.GetLines(id)
	if err != nil {
		return nil, err
	}
	order.Lines = lines
	return order, nil
}

// List devuelve los pedidos paginados, sin líneas.
func (uc *UseCase) List(ctx context.Context, limit, offset int) ([]*entity.Order, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return uc.orderRepo.List(limit, offset)
}
