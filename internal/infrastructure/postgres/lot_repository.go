package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/vitalcan/haruwen-wms/internal/domain/entity"
	"github.com/vitalcan/haruwen-wms/internal/domain/repository"
)

var _ repository.LotRepository = (*LotRepo)(nil)

// LotRepo implementación del puerto LotRepository sobre PostgreSQL.
type LotRepo struct {
	q Querier
}

// NewLotRepository construye el adaptador de persistencia para lotes.
func NewLotRepository(q Querier) *LotRepo {
	return &LotRepo{q: q}
}

// Create registra un lote trazable nuevo.
func (r *LotRepo) Create(lot *entity.Lot) error {
	query := `
		INSERT INTO lotes (id, producto_id, numero_lote, vencimiento, cantidad_actual, posicion_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		lot.ID, lot.ProductID, lot.LotNumber, lot.Expiration, lot.Remaining, lot.PositionID, lot.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert lote: %w", err)
	}
	return nil
}

// GetByID obtiene un lote por ID.
func (r *LotRepo) GetByID(id string) (*entity.Lot, error) {
	query := `
		SELECT id, producto_id, numero_lote, vencimiento, cantidad_actual, posicion_id, created_at
		FROM lotes WHERE id = $1`
	var l entity.Lot
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&l.ID, &l.ProductID, &l.LotNumber, &l.Expiration, &l.Remaining, &l.PositionID, &l.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get lote: %w", err)
	}
	return &l, nil
}

// ListActiveByProduct devuelve los lotes con remanente del producto en el
// orden que consume el asignador: vencimiento ascendente y, a igual
// vencimiento, orden de creación.
func (r *LotRepo) ListActiveByProduct(productID string) ([]entity.Lot, error) {
	return r.listActive(productID, "")
}

// ListActiveByProductForUpdate es la misma lectura con bloqueo de filas,
// para descontar dentro de la transacción del picking.
func (r *LotRepo) ListActiveByProductForUpdate(productID string) ([]entity.Lot, error) {
	return r.listActive(productID, " FOR UPDATE")
}

func (r *LotRepo) listActive(productID, suffix string) ([]entity.Lot, error) {
	query := `
		SELECT id, producto_id, numero_lote, vencimiento, cantidad_actual, posicion_id, created_at
		FROM lotes
		WHERE producto_id = $1 AND cantidad_actual > 0
		ORDER BY vencimiento, created_at` + suffix
	rows, err := r.q.Query(context.Background(), query, productID)
	if err != nil {
		return nil, fmt.Errorf("list lotes activos: %w", err)
	}
	defer rows.Close()

	var out []entity.Lot
	for rows.Next() {
		var l entity.Lot
		if err := rows.Scan(&l.ID, &l.ProductID, &l.LotNumber, &l.Expiration, &l.Remaining, &l.PositionID, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan lote: %w", err)
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

// FindActiveInPosition busca un lote activo del producto en una posición concreta.
func (r *LotRepo) FindActiveInPosition(productID, positionID string) (*entity.Lot, error) {
	query := `
		SELECT id, producto_id, numero_lote, vencimiento, cantidad_actual, posicion_id, created_at
		FROM lotes
		WHERE producto_id = $1 AND posicion_id = $2 AND cantidad_actual > 0
		ORDER BY vencimiento, created_at
		LIMIT 1`
	var l entity.Lot
	err := r.q.QueryRow(context.Background(), query, productID, positionID).Scan(
		&l.ID, &l.ProductID, &l.LotNumber, &l.Expiration, &l.Remaining, &l.PositionID, &l.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find lote en posicion: %w", err)
	}
	return &l, nil
}

// UpdateRemaining fija el remanente del lote.
func (r *LotRepo) UpdateRemaining(id string, remaining int64) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE lotes SET cantidad_actual = $2 WHERE id = $1`, id, remaining)
	if err != nil {
		return fmt.Errorf("update remanente de lote: %w", err)
	}
	return nil
}

// Relocate mueve el lote a otra posición física.
func (r *LotRepo) Relocate(id, positionID string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE lotes SET posicion_id = $2 WHERE id = $1`, id, positionID)
	if err != nil {
		return fmt.Errorf("reubicar lote: %w", err)
	}
	return nil
}
