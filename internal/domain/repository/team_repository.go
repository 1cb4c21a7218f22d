package repository

import (
	"context"

	"github.com/jhoicas/denta-stock-api/internal/domain/entity"
)

// TeamRepository define el puerto de persistencia para Team y Plan (DIP).
type TeamRepository interface {
	Create(ctx context.Context, team *entity.Team) error
	GetByID(ctx context.Context, id string) (*entity.Team, error)
	// GetDetails devuelve el equipo con su plan resuelto (una sola consulta),
	// para el Access Gate y /teams/me.
	GetDetails(ctx context.Context, id string) (*entity.TeamDetails, error)
	GetPlanByName(ctx context.Context, name string) (*entity.Plan, error)
}
