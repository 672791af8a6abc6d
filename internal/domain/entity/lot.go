package entity

import "time"

// Lot representa un lote trazable de un producto: número de lote, vencimiento
// y cantidad remanente en una posición concreta. Los lotes en cero nunca se
// borran; quedan como rastro de auditoría.
type Lot struct {
	ID         string
	ProductID  string
	LotNumber  string
	Expiration time.Time
	Remaining  int64
	PositionID string
	CreatedAt  time.Time
}

// Active indica si el lote todavía tiene unidades disponibles.
func (l *Lot) Active() bool {
	return l.Remaining > 0
}
