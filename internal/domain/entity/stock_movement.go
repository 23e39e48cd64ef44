package entity

import "time"

// MovementType tipo de movimiento de inventario.
type MovementType string

// Tipos de movimiento. La dirección la determina el tipo, nunca el signo de la cantidad.
const (
	MovementTypeIn         MovementType = "in"         // entrada (recepción de compra)
	MovementTypeOut        MovementType = "out"        // salida (confirmación de venta)
	MovementTypeAdjustment MovementType = "adjustment" // ajuste: siempre descuenta
	MovementTypeReturn     MovementType = "return"     // devolución: suma
)

// Valid indica si t es uno de los cuatro tipos conocidos.
func (t MovementType) Valid() bool {
	switch t {
	case MovementTypeIn, MovementTypeOut, MovementTypeAdjustment, MovementTypeReturn:
		return true
	}
	return false
}

// Increases true para in/return; out y adjustment descuentan.
func (t MovementType) Increases() bool {
	return t == MovementTypeIn || t == MovementTypeReturn
}

// StockMovement entrada inmutable del libro de stock.
// PreviousQuantity y NewQuantity se fijan una única vez al crearse y son historia
// autoritativa: nunca se recalculan, editan ni borran. Una reversión es otro movimiento.
type StockMovement struct {
	ID               string
	ProductID        string
	Type             MovementType
	Quantity         int64 // magnitud, siempre > 0
	PreviousQuantity int64
	NewQuantity      int64
	Reference        string // PO-000001, SO-000001, STOCK-COUNT, etc.
	Notes            string
	CreatedBy        string // actor (UserID)
	CreatedAt        time.Time
}

// MovementFilter filtros para listar el historial (más reciente primero).
type MovementFilter struct {
	ProductID string
	Type      MovementType
	Limit     int
	Offset    int
}
