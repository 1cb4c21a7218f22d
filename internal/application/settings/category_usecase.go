// Package settings contiene los casos de uso de las tablas de consulta del
// inventario: categorías y unidades de medida. Ambas aplican la misma guarda
// de integridad referencial: no se borran mientras algún item las referencie.
package settings

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/denta-stock-api/internal/application/access"
	"github.com/jhoicas/denta-stock-api/internal/application/dto"
	"github.com/jhoicas/denta-stock-api/internal/domain"
	"github.com/jhoicas/denta-stock-api/internal/domain/entity"
	"github.com/jhoicas/denta-stock-api/internal/domain/repository"
)

// AccessGate contrato mínimo del Access Gate (lo implementa *access.Gate).
type AccessGate interface {
	Assert(ctx context.Context, ident access.Identity, permission string) error
}

// ViewInvalidator descarta las vistas derivadas cacheadas de un equipo. Puede ser nil.
type ViewInvalidator interface {
	InvalidateTeam(ctx context.Context, teamID string)
}

// CategoryUseCase CRUD de categorías con guarda referencial al borrar.
type CategoryUseCase struct {
	repo     repository.CategoryRepository
	itemRepo repository.ItemRepository
	gate     AccessGate
	cache    ViewInvalidator
}

// NewCategoryUseCase construye el caso de uso. cache puede ser nil.
func NewCategoryUseCase(repo repository.CategoryRepository, itemRepo repository.ItemRepository, gate AccessGate, cache ViewInvalidator) *CategoryUseCase {
	return &CategoryUseCase{repo: repo, itemRepo: itemRepo, gate: gate, cache: cache}
}

// Create crea una categoría; sin sort_order explícito, toma el máximo + 1.
func (uc *CategoryUseCase) Create(ctx context.Context, ident access.Identity, in dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.SortOrder != nil && *in.SortOrder < 0 {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.gate.Assert(ctx, ident, entity.PermInventoryCreate); err != nil {
		return nil, err
	}

	sortOrder := 0
	if in.SortOrder != nil {
		sortOrder = *in.SortOrder
	} else {
		maxOrder, err := uc.repo.MaxSortOrder(ctx, ident.TeamID)
		if err != nil {
			return nil, err
		}
		sortOrder = maxOrder + 1
	}

	now := time.Now()
	category := &entity.Category{
		ID:        uuid.New().String(),
		TeamID:    ident.TeamID,
		CreatedBy: ident.UserID,
		Name:      in.Name,
		NameAr:    strings.TrimSpace(in.NameAr),
		SortOrder: sortOrder,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, category); err != nil {
		return nil, err
	}
	if uc.cache != nil {
		uc.cache.InvalidateTeam(ctx, ident.TeamID)
	}
	return toCategoryResponse(category), nil
}

// List lista las categorías activas del equipo por sort_order.
func (uc *CategoryUseCase) List(ctx context.Context, ident access.Identity) ([]dto.CategoryResponse, error) {
	if err := uc.gate.Assert(ctx, ident, entity.PermInventoryView); err != nil {
		return nil, err
	}
	list, err := uc.repo.ListByTeam(ctx, ident.TeamID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CategoryResponse, 0, len(list))
	for _, c := range list {
		out = append(out, *toCategoryResponse(c))
	}
	return out, nil
}

// Update actualiza nombre, nombre árabe y orden.
func (uc *CategoryUseCase) Update(ctx context.Context, ident access.Identity, id string, in dto.UpdateCategoryRequest) (*dto.CategoryResponse, error) {
	if in.Name != nil && strings.TrimSpace(*in.Name) == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.SortOrder != nil && *in.SortOrder < 0 {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.gate.Assert(ctx, ident, entity.PermInventoryUpdate); err != nil {
		return nil, err
	}

	category, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if category == nil || category.TeamID != ident.TeamID {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		category.Name = strings.TrimSpace(*in.Name)
	}
	if in.NameAr != nil {
		category.NameAr = strings.TrimSpace(*in.NameAr)
	}
	if in.SortOrder != nil {
		category.SortOrder = *in.SortOrder
	}
	category.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, category); err != nil {
		return nil, err
	}
	if uc.cache != nil {
		uc.cache.InvalidateTeam(ctx, ident.TeamID)
	}
	return toCategoryResponse(category), nil
}

// Delete elimina la categoría solo si ningún item la referencia; si no,
// falla con ErrConflict (guarda de integridad referencial).
func (uc *CategoryUseCase) Delete(ctx context.Context, ident access.Identity, id string) error {
	if err := uc.gate.Assert(ctx, ident, entity.PermInventoryDelete); err != nil {
		return err
	}
	category, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if category == nil || category.TeamID != ident.TeamID {
		return domain.ErrNotFound
	}
	count, err := uc.itemRepo.CountByCategory(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return domain.ErrConflict
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	if uc.cache != nil {
		uc.cache.InvalidateTeam(ctx, ident.TeamID)
	}
	return nil
}

func toCategoryResponse(c *entity.Category) *dto.CategoryResponse {
	return &dto.CategoryResponse{
		ID:        c.ID,
		TeamID:    c.TeamID,
		Name:      c.Name,
		NameAr:    c.NameAr,
		SortOrder: c.SortOrder,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
