package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/vitalcan/haruwen-wms/internal/domain/entity"
	"github.com/vitalcan/haruwen-wms/internal/domain/repository"
)

var _ repository.PaymentRepository = (*PaymentRepo)(nil)

// PaymentRepo implementación del puerto PaymentRepository sobre PostgreSQL.
type PaymentRepo struct {
	q Querier
}

// NewPaymentRepository construye el adaptador de persistencia para pagos.
func NewPaymentRepository(q Querier) *PaymentRepo {
	return &PaymentRepo{q: q}
}

const paymentColumns = `id, cliente_id, monto, metodo, estado, COALESCE(notas, ''), cargado_por, aprobado_el, created_at`

// Create persiste un pago pendiente.
func (r *PaymentRepo) Create(payment *entity.Payment) error {
	query := `
		INSERT INTO pagos (id, cliente_id, monto, metodo, estado, notas, cargado_por, created_at)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		payment.ID, payment.CustomerID, payment.Amount, payment.Method,
		payment.State, payment.Notes, payment.LoadedBy, payment.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert pago: %w", err)
	}
	return nil
}

// GetByID obtiene un pago por ID.
func (r *PaymentRepo) GetByID(id string) (*entity.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM pagos WHERE id = $1`
	var p entity.Payment
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&p.ID, &p.CustomerID, &p.Amount, &p.Method, &p.State,
		&p.Notes, &p.LoadedBy, &p.ApprovedAt, &p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get pago: %w", err)
	}
	return &p, nil
}

// Approve marca el pago como aprobado con fecha, solo si estaba pendiente.
// Devuelve false si ninguna fila cambió.
func (r *PaymentRepo) Approve(id string, approvedAt time.Time) (bool, error) {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE pagos SET estado = $2, aprobado_el = $3 WHERE id = $1 AND estado = $4`,
		id, entity.PaymentApproved, approvedAt, entity.PaymentPending,
	)
	if err != nil {
		return false, fmt.Errorf("aprobar pago: %w", err)
	}
	return cmd.RowsAffected() == 1, nil
}

// ListPending devuelve los pagos a la espera de aprobación, los más viejos primero.
func (r *PaymentRepo) ListPending(limit, offset int) ([]*entity.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM pagos WHERE estado = $1 ORDER BY created_at LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, entity.PaymentPending, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list pagos pendientes: %w", err)
	}
	defer rows.Close()
	return scanPayments(rows)
}

// ListApprovedByCustomer devuelve los pagos aprobados de un cliente.
func (r *PaymentRepo) ListApprovedByCustomer(customerID string) ([]*entity.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM pagos WHERE cliente_id = $1 AND estado = $2 ORDER BY created_at`
	rows, err := r.q.Query(context.Background(), query, customerID, entity.PaymentApproved)
	if err != nil {
		return nil, fmt.Errorf("list pagos aprobados: %w", err)
	}
	defer rows.Close()
	return scanPayments(rows)
}

func scanPayments(rows pgx.Rows) ([]*entity.Payment, error) {
	var out []*entity.Payment
	for rows.Next() {
		var p entity.Payment
		if err := rows.Scan(
			&p.ID, &p.CustomerID, &p.Amount, &p.Method, &p.State,
			&p.Notes, &p.LoadedBy, &p.ApprovedAt, &p.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan pago: %w", err)
		}
		out = append(out, &p)
	}
	return out, rows.Err()
}
