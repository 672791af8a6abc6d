// Package fefo implementa la asignación de lotes First-Expire-First-Out:
// ante una cantidad requerida, decide de qué lotes y posiciones descontar,
// priorizando siempre el vencimiento más próximo para minimizar mermas.
package fefo

import (
	"sort"

	"github.com/vitalcan/haruwen-wms/internal/domain"
	"github.com/vitalcan/haruwen-wms/internal/domain/entity"
)

// Draw es una extracción puntual del plan: cuánto sacar de qué lote/posición.
type Draw struct {
	Lot        entity.Lot
	PositionID string
	Quantity   int64
}

// Plan es el resultado de una asignación para un producto: extracciones en
// orden de aplicación (vencimiento ascendente) que suman la cantidad requerida.
type Plan struct {
	ProductID string
	Required  int64
	Draws     []Draw
}

// Available suma las unidades disponibles en los lotes activos.
func Available(lots []entity.Lot) int64 {
	var total int64
	for _, l := range lots {
		if l.Remaining > 0 {
			total += l.Remaining
		}
	}
	return total
}

// Allocate arma el plan de extracción para un producto: ordena los lotes
// activos por vencimiento ascendente (desempate estable por orden de
// creación) y agota cada lote antes de pasar al siguiente.
//
// Devuelve InsufficientStockError si la suma disponible no alcanza; en ese
// caso el caller debe abortar el pedido completo, nunca despachar parcial.
func Allocate(productID, productName string, required int64, lots []entity.Lot) (*Plan, error) {
	if required <= 0 {
		return nil, domain.ErrInvalidInput
	}

	active := make([]entity.Lot, 0, len(lots))
	for _, l := range lots {
		// Un lote en cero jamás se selecciona, sin importar su vencimiento.
		if l.Remaining > 0 {
			active = append(active, l)
		}
	}

	available := Available(active)
	if available < required {
		return nil, &domain.InsufficientStockError{
			ProductID:   productID,
			ProductName: productName,
			Required:    required,
			Available:   available,
		}
	}

	// SliceStable conserva el orden de llegada (creación) entre lotes con
	// el mismo vencimiento, para que el plan sea reproducible.
	sort.SliceStable(active, func(i, j int) bool {
		return active[i].Expiration.Before(active[j].Expiration)
	})

	plan := &Plan{ProductID: productID, Required: required}
	pending := required
	for _, lot := range active {
		if pending == 0 {
			break
		}
		draw := lot.Remaining
		if draw > pending {
			draw = pending
		}
		plan.Draws = append(plan.Draws, Draw{
			Lot:        lot,
			PositionID: lot.PositionID,
			Quantity:   draw,
		})
		pending -= draw
	}
	return plan, nil
}
