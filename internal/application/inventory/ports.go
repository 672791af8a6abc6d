package inventory

import (
	"context"

	"github.com/vitalcan/haruwen-wms/internal/domain/repository"
)

// TxRunner ejecuta un bloque de trabajo de depósito dentro de una
// transacción. Los repos que recibe el callback operan sobre esa
// transacción; si el callback devuelve error, todo se revierte.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		posRepo repository.PositionRepository,
		lotRepo repository.LotRepository,
		movRepo repository.MovementRepository,
	) error) error
}
