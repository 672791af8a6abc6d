package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/vitalcan/haruwen-wms/internal/application/session"
	"github.com/vitalcan/haruwen-wms/internal/domain"
	"github.com/vitalcan/haruwen-wms/internal/domain/entity"
	"github.com/vitalcan/haruwen-wms/internal/domain/repository"
	"github.com/vitalcan/haruwen-wms/pkg/logger"
)

// UseCase opera el depósito de forma transaccional: recepción de mercadería,
// traspaso entre racks y ajuste de inventario. Cada operación bloquea las
// posiciones involucradas (SELECT FOR UPDATE) y registra su movimiento en
// el libro dentro de la misma transacción.
type UseCase struct {
	txRunner    TxRunner
	productRepo repository.ProductRepository
	posRepo     repository.PositionRepository
	lotRepo     repository.LotRepository
	log         *logger.Logger
}

// NewUseCase construye el caso de uso de depósito.
func NewUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	posRepo repository.PositionRepository,
	lotRepo repository.LotRepository,
	log *logger.Logger,
) *UseCase {
	return &UseCase{
		txRunner:    txRunner,
		productRepo: productRepo,
		posRepo:     posRepo,
		lotRepo:     lotRepo,
		log:         log,
	}
}

// ReceiveInput entrada para la recepción de mercadería de proveedor.
type ReceiveInput struct {
	ProductID  string
	PositionID string
	LotNumber  string
	Expiration time.Time
	Quantity   int64
}

// Receive ingresa un lote nuevo a una posición: suma stock, crea el lote
// trazable y asienta la ENTRADA con origen PROVEEDOR.
func (uc *UseCase) Receive(ctx context.Context, sess session.Session, in ReceiveInput) (*entity.Lot, error) {
	if in.ProductID == "" || in.PositionID == "" || in.LotNumber == "" || in.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.Expiration.IsZero() {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.productRepo.GetByID(in.ProductID)
	if err != nil || product == nil {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	lot := &entity.Lot{
		ID:         uuid.New().String(),
		ProductID:  in.ProductID,
		LotNumber:  in.LotNumber,
		Expiration: in.Expiration,
		Remaining:  in.Quantity,
		PositionID: in.PositionID,
		CreatedAt:  now,
	}

	err = uc.txRunner.Run(ctx, func(
		posRepo repository.PositionRepository,
		lotRepo repository.LotRepository,
		movRepo repository.MovementRepository,
	) error {
		pos, err := posRepo.GetForUpdate(in.PositionID)
		if err != nil {
			return err
		}
		if pos == nil {
			return domain.ErrNotFound
		}
		// Una posición aloja un único producto a la vez.
		if !pos.Empty() && pos.ProductID != in.ProductID {
			return domain.ErrInvalidInput
		}
		pos.ProductID = in.ProductID
		pos.Apply(pos.Quantity + in.Quantity)
		if err := posRepo.Update(pos); err != nil {
			return err
		}
		if err := lotRepo.Create(lot); err != nil {
			return err
		}
		mov := &entity.Movement{
			ID:        uuid.New().String(),
			ProductID: in.ProductID,
			Type:      entity.MovementEntry,
			Origin:    "PROVEEDOR",
			Dest:      in.PositionID,
			Quantity:  in.Quantity,
			User:      sess.Actor(),
			Reference: fmt.Sprintf("Lote %s", in.LotNumber),
			CreatedAt: now,
		}
		return movRepo.Create(mov)
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("producto_id", in.ProductID).
		Str("posicion", in.PositionID).
		Str("lote", in.LotNumber).
		Int64("cantidad", in.Quantity).
		Msg("recepción registrada")

	return lot, nil
}

// TransferInput entrada para el traspaso de mercadería entre racks.
type TransferInput struct {
	ProductID      string
	FromPositionID string
	ToPositionID   string
	Quantity       int64
}

// Transfer mueve unidades de una posición a otra. El lote activo de la
// posición de origen se reubica entero en el destino, aun en traspasos
// parciales: la trazabilidad sigue a la ubicación más nueva del lote.
func (uc *UseCase) Transfer(ctx context.Context, sess session.Session, in TransferInput) error {
	if in.ProductID == "" || in.FromPositionID == "" || in.ToPositionID == "" {
		return domain.ErrInvalidInput
	}
	if in.FromPositionID == in.ToPositionID || in.Quantity <= 0 {
		return domain.ErrInvalidInput
	}
	product, err := uc.productRepo.GetByID(in.ProductID)
	if err != nil || product == nil {
		return domain.ErrNotFound
	}

	now := time.Now()
	err = uc.txRunner.Run(ctx, func(
		posRepo repository.PositionRepository,
		lotRepo repository.LotRepository,
		movRepo repository.MovementRepository,
	) error {
		from, err := posRepo.GetForUpdate(in.FromPositionID)
		if err != nil {
			return err
		}
		if from == nil {
			return domain.ErrNotFound
		}
		if from.ProductID != in.ProductID || from.Quantity < in.Quantity {
			return &domain.InsufficientStockError{
				ProductID:   in.ProductID,
				ProductName: product.Name,
				Required:    in.Quantity,
				Available:   from.Quantity,
			}
		}
		to, err := posRepo.GetForUpdate(in.ToPositionID)
		if err != nil {
			return err
		}
		if to == nil {
			return domain.ErrNotFound
		}
		if !to.Empty() && to.ProductID != in.ProductID {
			return domain.ErrInvalidInput
		}

		from.Apply(from.Quantity - in.Quantity)
		if err := posRepo.Update(from); err != nil {
			return err
		}
		to.ProductID = in.ProductID
		to.Apply(to.Quantity + in.Quantity)
		if err := posRepo.Update(to); err != nil {
			return err
		}

		if lot, err := lotRepo.FindActiveInPosition(in.ProductID, in.FromPositionID); err != nil {
			return err
		} else if lot != nil {
			if err := lotRepo.Relocate(lot.ID, in.ToPositionID); err != nil {
				return err
			}
		}

		mov := &entity.Movement{
			ID:        uuid.New().String(),
			ProductID: in.ProductID,
			Type:      entity.MovementTransfer,
			Origin:    in.FromPositionID,
			Dest:      in.ToPositionID,
			Quantity:  in.Quantity,
			User:      sess.Actor(),
			Reference: "Traspaso entre racks",
			CreatedAt: now,
		}
		return movRepo.Create(mov)
	})
	if err != nil {
		return err
	}

	uc.log.Info().
		Str("producto_id", in.ProductID).
		Str("origen", in.FromPositionID).
		Str("destino", in.ToPositionID).
		Int64("cantidad", in.Quantity).
		Msg("traspaso registrado")

	return nil
}

// AdjustInput entrada para el ajuste de inventario. Quantity es la cantidad
// final contada en la posición, no un delta.
type AdjustInput struct {
	PositionID   string
	Quantity     int64
	Observations string
}

// Adjust corrige el stock de una posición al valor contado y asienta el
// AJUSTE con la diferencia y las observaciones del operador. El lote activo
// de la posición absorbe la misma diferencia, sin bajar de cero.
func (uc *UseCase) Adjust(ctx context.Context, sess session.Session, in AdjustInput) error {
	if in.PositionID == "" || in.Quantity < 0 {
		return domain.ErrInvalidInput
	}
	if in.Observations == "" {
		return domain.ErrInvalidInput
	}

	now := time.Now()
	err := uc.txRunner.Run(ctx, func(
		posRepo repository.PositionRepository,
		lotRepo repository.LotRepository,
		movRepo repository.MovementRepository,
	) error {
		pos, err := posRepo.GetForUpdate(in.PositionID)
		if err != nil {
			return err
		}
		if pos == nil {
			return domain.ErrNotFound
		}
		diff := in.Quantity - pos.Quantity
		if diff == 0 {
			return domain.ErrInvalidInput
		}
		productID := pos.ProductID

		pos.Apply(in.Quantity)
		if err := posRepo.Update(pos); err != nil {
			return err
		}

		if productID != "" {
			if lot, err := lotRepo.FindActiveInPosition(productID, in.PositionID); err != nil {
				return err
			} else if lot != nil {
				remaining := lot.Remaining + diff
				if remaining < 0 {
					remaining = 0
				}
				if err := lotRepo.UpdateRemaining(lot.ID, remaining); err != nil {
					return err
				}
			}
		}

		qty := diff
		if qty < 0 {
			qty = -qty
		}
		mov := &entity.Movement{
			ID:        uuid.New().String(),
			ProductID: productID,
			Type:      entity.MovementAdjustment,
			Origin:    in.PositionID,
			Dest:      "Ajuste de inventario",
			Quantity:  qty,
			User:      sess.Actor(),
			Reference: in.Observations,
			CreatedAt: now,
		}
		return movRepo.Create(mov)
	})
	if err != nil {
		return err
	}

	uc.log.Info().
		Str("posicion", in.PositionID).
		Int64("cantidad_final", in.Quantity).
		Msg("ajuste de inventario registrado")

	return nil
}
