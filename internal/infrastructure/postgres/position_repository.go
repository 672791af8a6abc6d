package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/vitalcan/haruwen-wms/internal/domain"
	"github.com/vitalcan/haruwen-wms/internal/domain/entity"
	"github.com/vitalcan/haruwen-wms/internal/domain/repository"
)

var _ repository.PositionRepository = (*PositionRepo)(nil)

// PositionRepo implementación del puerto PositionRepository sobre PostgreSQL.
type PositionRepo struct {
	q Querier
}

// NewPositionRepository construye el adaptador de persistencia para posiciones.
func NewPositionRepository(q Querier) *PositionRepo {
	return &PositionRepo{q: q}
}

// Create registra una posición física nueva, vacía.
func (r *PositionRepo) Create(position *entity.Position) error {
	query := `
		INSERT INTO posiciones (id, cantidad, estado, producto_id)
		VALUES ($1, $2, $3, NULLIF($4, ''))`
	_, err := r.q.Exec(context.Background(), query,
		position.ID, position.Quantity, position.State, position.ProductID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert posicion: %w", err)
	}
	return nil
}

// GetByID obtiene una posición por ID.
func (r *PositionRepo) GetByID(id string) (*entity.Position, error) {
	return r.get(id, "")
}

// GetForUpdate obtiene la posición bloqueando la fila (SELECT FOR UPDATE).
// Solo tiene sentido dentro de una transacción.
func (r *PositionRepo) GetForUpdate(id string) (*entity.Position, error) {
	return r.get(id, " FOR UPDATE")
}

func (r *PositionRepo) get(id, suffix string) (*entity.Position, error) {
	query := `
		SELECT id, cantidad, estado, COALESCE(producto_id, '')
		FROM posiciones WHERE id = $1` + suffix
	var p entity.Position
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&p.ID, &p.Quantity, &p.State, &p.ProductID,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get posicion: %w", err)
	}
	return &p, nil
}

// List devuelve todas las posiciones del depósito.
func (r *PositionRepo) List() ([]*entity.Position, error) {
	query := `
		SELECT id, cantidad, estado, COALESCE(producto_id, '')
		FROM posiciones ORDER BY id`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list posiciones: %w", err)
	}
	defer rows.Close()
	return scanPositions(rows)
}

// ListByProduct devuelve las posiciones ocupadas por un producto.
func (r *PositionRepo) ListByProduct(productID string) ([]*entity.Position, error) {
	query := `
		SELECT id, cantidad, estado, COALESCE(producto_id, '')
		FROM posiciones WHERE producto_id = $1 ORDER BY id`
	rows, err := r.q.Query(context.Background(), query, productID)
	if err != nil {
		return nil, fmt.Errorf("list posiciones por producto: %w", err)
	}
	defer rows.Close()
	return scanPositions(rows)
}

func scanPositions(rows pgx.Rows) ([]*entity.Position, error) {
	var out []*entity.Position
	for rows.Next() {
		var p entity.Position
		if err := rows.Scan(&p.ID, &p.Quantity, &p.State, &p.ProductID); err != nil {
			return nil, fmt.Errorf("scan posicion: %w", err)
		}
		out = append(out, &p)
	}
	return out, rows.Err()
}

// Update persiste cantidad, estado y producto de la posición.
func (r *PositionRepo) Update(position *entity.Position) error {
	query := `
		UPDATE posiciones SET cantidad = $2, estado = $3, producto_id = NULLIF($4, '')
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		position.ID, position.Quantity, position.State, position.ProductID,
	)
	if err != nil {
		return fmt.Errorf("update posicion: %w", err)
	}
	return nil
}
