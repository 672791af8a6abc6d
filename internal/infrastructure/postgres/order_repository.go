package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/vitalcan/haruwen-wms/internal/domain/entity"
	"github.com/vitalcan/haruwen-wms/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo implementación del puerto OrderRepository sobre PostgreSQL.
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador de persistencia para pedidos.
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

// Create persiste la cabecera del pedido.
func (r *OrderRepo) Create(order *entity.Order) error {
	query := `
		INSERT INTO pedidos (id, cliente_nombre, cliente_cuit, estado, created_at)
		VALUES ($1, $2, NULLIF($3, ''), $4, $5)`
	_, err := r.q.Exec(context.Background(), query,
		order.ID, order.CustomerName, order.CustomerCUIT, order.State, order.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert pedido: %w", err)
	}
	return nil
}

// CreateLine persiste una línea del pedido.
func (r *OrderRepo) CreateLine(line *entity.OrderLine) error {
	query := `
		INSERT INTO pedido_detalle (pedido_id, producto_id, cantidad)
		VALUES ($1, $2, $3)`
	_, err := r.q.Exec(context.Background(), query, line.OrderID, line.ProductID, line.Quantity)
	if err != nil {
		return fmt.Errorf("insert linea de pedido: %w", err)
	}
	return nil
}

// GetByID obtiene la cabecera de un pedido.
func (r *OrderRepo) GetByID(id string) (*entity.Order, error) {
	query := `
		SELECT id, cliente_nombre, COALESCE(cliente_cuit, ''), estado, created_at
		FROM pedidos WHERE id = $1`
	var o entity.Order
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&o.ID, &o.CustomerName, &o.CustomerCUIT, &o.State, &o.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get pedido: %w", err)
	}
	return &o, nil
}

// GetLines devuelve las líneas de un pedido en orden de carga.
func (r *OrderRepo) GetLines(orderID string) ([]entity.OrderLine, error) {
	query := `
		SELECT pedido_id, producto_id, cantidad
		FROM pedido_detalle WHERE pedido_id = $1 ORDER BY producto_id`
	rows, err := r.q.Query(context.Background(), query, orderID)
	if err != nil {
		return nil, fmt.Errorf("get lineas de pedido: %w", err)
	}
	defer rows.Close()

	var out []entity.OrderLine
	for rows.Next() {
		var l entity.OrderLine
		if err := rows.Scan(&l.OrderID, &l.ProductID, &l.Quantity); err != nil {
			return nil, fmt.Errorf("scan linea de pedido: %w", err)
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

// List lista pedidos con paginación, los más recientes primero.
func (r *OrderRepo) List(limit, offset int) ([]*entity.Order, error) {
	query := `
		SELECT id, cliente_nombre, COALESCE(cliente_cuit, ''), estado, created_at
		FROM pedidos ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list pedidos: %w", err)
	}
	defer rows.Close()

	var out []*entity.Order
	for rows.Next() {
		var o entity.Order
		if err := rows.Scan(&o.ID, &o.CustomerName, &o.CustomerCUIT, &o.State, &o.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan pedido: %w", err)
		}
		out = append(out, &o)
	}
	return out, rows.Err()
}

// MarkPrepared hace la transición pendiente → preparado con update
// condicional. Devuelve false si ninguna fila cambió: el pedido no existe
// o ya fue procesado por otro intento.
func (r *OrderRepo) MarkPrepared(id string) (bool, error) {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE pedidos SET estado = $2 WHERE id = $1 AND estado = $3`,
		id, entity.OrderPrepared, entity.OrderPending,
	)
	if err != nil {
		return false, fmt.Errorf("marcar pedido preparado: %w", err)
	}
	return cmd.RowsAffected() == 1, nil
}
