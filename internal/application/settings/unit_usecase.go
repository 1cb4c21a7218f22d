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

// UnitUseCase CRUD de unidades de medida con guarda referencial al borrar.
type UnitUseCase struct {
	repo     repository.UnitRepository
	itemRepo repository.ItemRepository
	gate     AccessGate
	cache    ViewInvalidator
}

// NewUnitUseCase construye el caso de uso. cache puede ser nil.
func NewUnitUseCase(repo repository.UnitRepository, itemRepo repository.ItemRepository, gate AccessGate, cache ViewInvalidator) *UnitUseCase {
	return &UnitUseCase{repo: repo, itemRepo: itemRepo, gate: gate, cache: cache}
}

// Create crea una unidad; sin sort_order explícito, toma el máximo + 1.
func (uc *UnitUseCase) Create(ctx context.Context, ident access.Identity, in dto.CreateUnitRequest) (*dto.UnitResponse, error) {
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
	unit := &entity.Unit{
		ID:             uuid.New().String(),
		TeamID:         ident.TeamID,
		CreatedBy:      ident.UserID,
		Name:           in.Name,
		NameAr:         strings.TrimSpace(in.NameAr),
		Abbreviation:   strings.TrimSpace(in.Abbreviation),
		AbbreviationAr: strings.TrimSpace(in.AbbreviationAr),
		SortOrder:      sortOrder,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.repo.Create(ctx, unit); err != nil {
		return nil, err
	}
	if uc.cache != nil {
		uc.cache.InvalidateTeam(ctx, ident.TeamID)
	}
	return toUnitResponse(unit), nil
}

// List lista las unidades activas del equipo por sort_order.
func (uc *UnitUseCase) List(ctx context.Context, ident access.Identity) ([]dto.UnitResponse, error) {
	if err := uc.gate.Assert(ctx, ident, entity.PermInventoryView); err != nil {
		return nil, err
	}
	list, err := uc.repo.ListByTeam(ctx, ident.TeamID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UnitResponse, 0, len(list))
	for _, u := range list {
		out = append(out, *toUnitResponse(u))
	}
	return out, nil
}

// Update actualiza los campos descriptivos de la unidad.
func (uc *UnitUseCase) Update(ctx context.Context, ident access.Identity, id string, in dto.UpdateUnitRequest) (*dto.UnitResponse, error) {
	if in.Name != nil && strings.TrimSpace(*in.Name) == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.SortOrder != nil && *in.SortOrder < 0 {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.gate.Assert(ctx, ident, entity.PermInventoryUpdate); err != nil {
		return nil, err
	}

	unit, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if unit == nil || unit.TeamID != ident.TeamID {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		unit.Name = strings.TrimSpace(*in.Name)
	}
	if in.NameAr != nil {
		unit.NameAr = strings.TrimSpace(*in.NameAr)
	}
	if in.Abbreviation != nil {
		unit.Abbreviation = strings.TrimSpace(*in.Abbreviation)
	}
	if in.AbbreviationAr != nil {
		unit.AbbreviationAr = strings.TrimSpace(*in.AbbreviationAr)
	}
	if in.SortOrder != nil {
		unit.SortOrder = *in.SortOrder
	}
	unit.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, unit); err != nil {
		return nil, err
	}
	if uc.cache != nil {
		uc.cache.InvalidateTeam(ctx, ident.TeamID)
	}
	return toUnitResponse(unit), nil
}

// Delete elimina la unidad solo si ningún item la referencia.
func (uc *UnitUseCase) Delete(ctx context.Context, ident access.Identity, id string) error {
	if err := uc.gate.Assert(ctx, ident, entity.PermInventoryDelete); err != nil {
		return err
	}
	unit, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if unit == nil || unit.TeamID != ident.TeamID {
		return domain.ErrNotFound
	}
	count, err := uc.itemRepo.CountByUnit(ctx, id)
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

func toUnitResponse(u *entity.Unit) *dto.UnitResponse {
	return &dto.UnitResponse{
		ID:             u.ID,
		TeamID:         u.TeamID,
		Name:           u.Name,
		NameAr:         u.NameAr,
		Abbreviation:   u.Abbreviation,
		AbbreviationAr: u.AbbreviationAr,
		SortOrder:      u.SortOrder,
		CreatedAt:      u.CreatedAt,
		UpdatedAt:      u.UpdatedAt,
	}
}
