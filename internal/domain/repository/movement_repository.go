package repository

import (
	"context"

	"github.com/jhoicas/denta-stock-api/internal/domain/entity"
)

// MovementFilter criterios de listado de movimientos.
type MovementFilter struct {
	TeamID string
	ItemID string
	Type   string // in, out, adjust; vacío = todos
	Limit  int
}

// MovementRepository define el puerto de persistencia para StockMovement (DIP).
// El libro es append-only: no existen Update ni Delete.
type MovementRepository interface {
	Create(ctx context.Context, movement *entity.StockMovement) error
	// List devuelve movimientos del equipo, más recientes primero.
	List(ctx context.Context, filter MovementFilter) ([]*entity.StockMovement, error)
	// ListByItemAsc devuelve el libro completo de un item en orden cronológico,
	// para repetición (replay) y verificación de cadena.
	ListByItemAsc(ctx context.Context, itemID string) ([]*entity.StockMovement, error)
	CountByItem(ctx context.Context, itemID string) (int, error)
}
