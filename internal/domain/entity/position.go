package entity

// Estados de una posición de almacenamiento.
const (
	PositionEmpty    = "vacio"
	PositionOccupied = "ocupado"
)

// Position representa una posición física de depósito (rack/estante, ej. "A-12").
// Invariante: Quantity == 0 ⟺ State == vacio, y en ese caso ProductID queda vacío.
type Position struct {
	ID        string // identificador de negocio, ej. "A-12"
	Quantity  int64
	State     string
	ProductID string // producto que ocupa la posición; vacío si la posición está libre
}

// Empty indica si la posición está libre.
func (p *Position) Empty() bool {
	return p.Quantity <= 0
}

// Apply normaliza estado y producto según la cantidad resultante.
func (p *Position) Apply(quantity int64) {
	p.Quantity = quantity
	if quantity <= 0 {
		p.Quantity = 0
		p.State = PositionEmpty
		p.ProductID = ""
		return
	}
	p.State = PositionOccupied
}
