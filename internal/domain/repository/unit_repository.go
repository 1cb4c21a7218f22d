package repository

import (
	"context"

	"github.com/jhoicas/denta-stock-api/internal/domain/entity"
)

// UnitRepository define el puerto de persistencia para Unit (DIP).
type UnitRepository interface {
	Create(ctx context.Context, unit *entity.Unit) error
	GetByID(ctx context.Context, id string) (*entity.Unit, error)
	Update(ctx context.Context, unit *entity.Unit) error
	Delete(ctx context.Context, id string) error
	// ListByTeam lista unidades activas del equipo ordenadas por sort_order.
	ListByTeam(ctx context.Context, teamID string) ([]*entity.Unit, error)
	MaxSortOrder(ctx context.Context, teamID string) (int, error)
}
