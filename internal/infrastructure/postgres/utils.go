package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// uniqueViolation código SQLSTATE de PostgreSQL para violaciones de UNIQUE.
const uniqueViolation = "23505"

// isUniqueViolation detecta un choque de unicidad (SKU de producto, CUIT de
// cliente, id de posición, email de usuario) para traducirlo a ErrDuplicate.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
