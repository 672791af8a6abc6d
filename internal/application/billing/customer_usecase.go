package billing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vitalcan/haruwen-wms/internal/domain"
	"github.com/vitalcan/haruwen-wms/internal/domain/entity"
	"github.com/vitalcan/haruwen-wms/internal/domain/repository"
)

// CustomerUseCase alta y consulta de clientes de cuenta corriente.
type CustomerUseCase struct {
	repo repository.CustomerRepository
}

// NewCustomerUseCase construye el caso de uso.
func NewCustomerUseCase(repo repository.CustomerRepository) *CustomerUseCase {
	return &CustomerUseCase{repo: repo}
}

// CreateInput entrada para el alta de un cliente.
type CreateInput struct {
	Name    string
	CUIT    string
	Address string
}

// Create da de alta un cliente nuevo en estado activo y saldo cero.
func (uc *CustomerUseCase) Create(ctx context.Context, in CreateInput) (*entity.Customer, error) {
	if in.Name == "" || in.CUIT == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.repo.GetByCUIT(in.CUIT)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	customer := &entity.Customer{
		ID:        uuid.New().String(),
		Name:      in.Name,
		CUIT:      in.CUIT,
		Address:   in.Address,
		State:     entity.CustomerActive,
		Balance:   decimal.Zero,
		CreatedAt: time.Now(),
	}
	if err := uc.repo.Create(customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// Get devuelve un cliente por ID.
func (uc *CustomerUseCase) Get(ctx context.Context, id string) (*entity.Customer, error) {
	customer, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}
	return customer, nil
}

// List devuelve los clientes paginados.
func (uc *CustomerUseCase) List(ctx context.Context, limit, offset int) ([]*entity.Customer, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return uc.repo.List(limit, offset)
}
