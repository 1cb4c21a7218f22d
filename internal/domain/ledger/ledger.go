// Package ledger contiene la lógica pura del libro de movimientos de stock:
// la función de transición que calcula el nuevo stock a partir del anterior y
// el reducer que reconstruye el stock actual repitiendo la secuencia completa.
// El libro es la fuente de verdad; CurrentStock en el item es solo un cache
// que siempre debe poder re-derivarse desde aquí.
package ledger

import (
	"github.com/jhoicas/denta-stock-api/internal/domain"
	"github.com/jhoicas/denta-stock-api/internal/domain/entity"
)

// Apply calcula el nuevo stock aplicando un movimiento sobre previous.
//
//	in:     newStock = previous + quantity   (quantity >= 1)
//	out:    newStock = previous - quantity   (quantity >= 1, quantity <= previous)
//	adjust: newStock = quantity              (quantity >= 0, valor absoluto)
//
// Devuelve ErrInvalidInput si el tipo o la cantidad no son válidos y
// ErrInsufficientStock si una salida excede el stock disponible.
func Apply(previous int, movType string, quantity int) (int, error) {
	if previous < 0 {
		return 0, domain.ErrInvalidInput
	}
	switch movType {
	case entity.MovementTypeIn:
		if quantity < 1 {
			return 0, domain.ErrInvalidInput
		}
		return previous + quantity, nil
	case entity.MovementTypeOut:
		if quantity < 1 {
			return 0, domain.ErrInvalidInput
		}
		if quantity > previous {
			return 0, domain.ErrInsufficientStock
		}
		return previous - quantity, nil
	case entity.MovementTypeAdjust:
		if quantity < 0 {
			return 0, domain.ErrInvalidInput
		}
		return quantity, nil
	default:
		return 0, domain.ErrInvalidInput
	}
}

// Replay reconstruye el stock final aplicando los movimientos en orden
// cronológico (más antiguo primero) sobre el stock inicial.
func Replay(initial int, movements []*entity.StockMovement) (int, error) {
	stock := initial
	for _, m := range movements {
		next, err := Apply(stock, m.Type, m.Quantity)
		if err != nil {
			return 0, err
		}
		stock = next
	}
	return stock, nil
}

// VerifyChain comprueba que los snapshots de los movimientos (orden cronológico)
// forman una cadena consistente: cada PreviousStock coincide con el NewStock del
// movimiento anterior, el primero parte de initial y cada NewStock respeta la
// fórmula de transición. Devuelve ErrConflict ante la primera inconsistencia.
func VerifyChain(initial int, movements []*entity.StockMovement) error {
	expected := initial
	for _, m := range movements {
		if m.PreviousStock != expected {
			return domain.ErrConflict
		}
		next, err := Apply(m.PreviousStock, m.Type, m.Quantity)
		if err != nil {
			return err
		}
		if m.NewStock != next || m.NewStock < 0 {
			return domain.ErrConflict
		}
		expected = next
	}
	return nil
}
