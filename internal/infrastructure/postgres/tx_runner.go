package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vitalcan/haruwen-wms/internal/application/fulfillment"
	"github.com/vitalcan/haruwen-wms/internal/application/inventory"
	"github.com/vitalcan/haruwen-wms/internal/application/orders"
	"github.com/vitalcan/haruwen-wms/internal/domain/repository"
)

var _ inventory.TxRunner = (*TxRunner)(nil)
var _ fulfillment.PickingTxRunner = (*TxRunner)(nil)
var _ orders.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción con los repos de depósito y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(
	posRepo repository.PositionRepository,
	lotRepo repository.LotRepository,
	movRepo repository.MovementRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewPositionRepository(tx), NewLotRepository(tx), NewMovementRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunPicking inicia la transacción del picking: pedido, lotes, posiciones,
// libro de movimientos y factura, todo atado a la misma tx.
func (r *TxRunner) RunPicking(ctx context.Context, fn func(
	orderRepo repository.OrderRepository,
	lotRepo repository.LotRepository,
	posRepo repository.PositionRepository,
	movRepo repository.MovementRepository,
	invoiceRepo repository.InvoiceRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	err = fn(
		NewOrderRepository(tx),
		NewLotRepository(tx),
		NewPositionRepository(tx),
		NewMovementRepository(tx),
		NewInvoiceRepository(tx),
	)
	if err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunOrder inicia una transacción para la carga de un pedido con sus líneas.
func (r *TxRunner) RunOrder(ctx context.Context, fn func(orderRepo repository.OrderRepository) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewOrderRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
