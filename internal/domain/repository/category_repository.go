package repository

import (
	"context"

	"github.com/jhoicas/denta-stock-api/internal/domain/entity"
)

// CategoryRepository define el puerto de persistencia para Category (DIP).
type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error
	GetByID(ctx context.Context, id string) (*entity.Category, error)
	Update(ctx context.Context, category *entity.Category) error
	Delete(ctx context.Context, id string) error
	// ListByTeam lista categorías activas del equipo ordenadas por sort_order.
	ListByTeam(ctx context.Context, teamID string) ([]*entity.Category, error)
	MaxSortOrder(ctx context.Context, teamID string) (int, error)
}
