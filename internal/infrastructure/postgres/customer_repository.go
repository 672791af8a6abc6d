package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/vitalcan/haruwen-wms/internal/domain"
	"github.com/vitalcan/haruwen-wms/internal/domain/entity"
	"github.com/vitalcan/haruwen-wms/internal/domain/repository"
)

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

// CustomerRepo implementación del puerto CustomerRepository sobre PostgreSQL.
type CustomerRepo struct {
	q Querier
}

// NewCustomerRepository construye el adaptador de persistencia para clientes.
func NewCustomerRepository(q Querier) *CustomerRepo {
	return &CustomerRepo{q: q}
}

const customerColumns = `id, nombre, cuit, COALESCE(direccion, ''), estado, saldo, created_at`

// Create da de alta un cliente.
func (r *CustomerRepo) Create(customer *entity.Customer) error {
	query := `
		INSERT INTO clientes (id, nombre, cuit, direccion, estado, saldo, created_at)
		VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		customer.ID, customer.Name, customer.CUIT, customer.Address,
		customer.State, customer.Balance, customer.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert cliente: %w", err)
	}
	return nil
}

// GetByID obtiene un cliente por ID.
func (r *CustomerRepo) GetByID(id string) (*entity.Customer, error) {
	return r.getWhere("id = $1", id)
}

// GetByCUIT obtiene un cliente por CUIT.
func (r *CustomerRepo) GetByCUIT(cuit string) (*entity.Customer, error) {
	return r.getWhere("cuit = $1", cuit)
}

func (r *CustomerRepo) getWhere(cond string, arg any) (*entity.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM clientes WHERE ` + cond
	var c entity.Customer
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&c.ID, &c.Name, &c.CUIT, &c.Address, &c.State, &c.Balance, &c.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cliente: %w", err)
	}
	return &c, nil
}

// List lista clientes con paginación.
func (r *CustomerRepo) List(limit, offset int) ([]*entity.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM clientes ORDER BY nombre LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list clientes: %w", err)
	}
	defer rows.Close()

	var out []*entity.Customer
	for rows.Next() {
		var c entity.Customer
		if err := rows.Scan(&c.ID, &c.Name, &c.CUIT, &c.Address, &c.State, &c.Balance, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan cliente: %w", err)
		}
		out = append(out, &c)
	}
	return out, rows.Err()
}

// ListIDs devuelve los IDs de todos los clientes, para la auditoría global.
func (r *CustomerRepo) ListIDs() ([]string, error) {
	rows, err := r.q.Query(context.Background(), `SELECT id FROM clientes ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list ids de clientes: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan id de cliente: %w", err)
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

// UpdateBalance persiste el saldo derivado y el estado de cuenta.
func (r *CustomerRepo) UpdateBalance(id string, balance decimal.Decimal, state string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE clientes SET saldo = $2, estado = $3 WHERE id = $1`,
		id, balance, state,
	)
	if err != nil {
		return fmt.Errorf("update saldo de cliente: %w", err)
	}
	return nil
}
