package dto

import "time"

// RecordMovementRequest body para POST /api/inventory/movements.
// Para in/out Quantity es un delta positivo; para adjust es el valor absoluto
// al que queda el stock.
type RecordMovementRequest struct {
	ItemID   string `json:"item_id"`
	Type     string `json:"type"` // in, out, adjust
	Quantity int    `json:"quantity"`
	Reason   string `json:"reason,omitempty"`
	Notes    string `json:"notes,omitempty"`
}

// MovementResponse representación HTTP de un movimiento del libro.
type MovementResponse struct {
	ID            string    `json:"id"`
	TeamID        string    `json:"team_id"`
	ItemID        string    `json:"item_id"`
	Type          string    `json:"type"`
	Quantity      int       `json:"quantity"`
	PreviousStock int       `json:"previous_stock"`
	NewStock      int       `json:"new_stock"`
	Reason        string    `json:"reason,omitempty"`
	Notes         string    `json:"notes,omitempty"`
	CreatedBy     string    `json:"created_by"`
	CreatedAt     time.Time `json:"created_at"`
}

// RecordMovementResponse movimiento creado más el antes/después para la UI.
type RecordMovementResponse struct {
	Movement      MovementResponse `json:"movement"`
	PreviousStock int              `json:"previous_stock"`
	NewStock      int              `json:"new_stock"`
}

// MovementListResponse listado de movimientos, más recientes primero.
type MovementListResponse struct {
	Movements []MovementResponse `json:"movements"`
	Total     int                `json:"total"`
}

// ItemLedgerResponse libro completo de un item más la verificación del reducer:
// Consistent indica si el stock cacheado coincide con el valor repetido.
type ItemLedgerResponse struct {
	ItemID        string             `json:"item_id"`
	CurrentStock  int                `json:"current_stock"`
	ReplayedStock int                `json:"replayed_stock"`
	Consistent    bool               `json:"consistent"`
	Movements     []MovementResponse `json:"movements"`
}
