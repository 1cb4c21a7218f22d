package entity

import "time"

// Tipos de movimiento de stock.
const (
	MovementTypeIn     = "in"     // entrada
	MovementTypeOut    = "out"    // salida
	MovementTypeAdjust = "adjust" // ajuste a valor absoluto
)

// ValidMovementType informa si t es un tipo de movimiento conocido.
func ValidMovementType(t string) bool {
	return t == MovementTypeIn || t == MovementTypeOut || t == MovementTypeAdjust
}

// StockMovement es una entrada inmutable del libro de movimientos: captura el
// snapshot previo y posterior del stock. Nunca se actualiza ni se borra; es la
// pista de auditoría del item.
type StockMovement struct {
	ID            string
	TeamID        string
	CreatedBy     string
	ItemID        string
	Type          string // in, out, adjust
	Quantity      int    // in/out: delta positivo; adjust: valor absoluto objetivo
	PreviousStock int    // stock del item al aceptar el movimiento
	NewStock      int    // siempre >= 0
	Reason        string
	Notes         string
	CreatedAt     time.Time
}
