package inventory

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

// ItemUseCase CRUD de items del registro. El stock actual solo se fija aquí en
// la creación; Update no lo toca y Delete degrada a archivado si existen
// movimientos (la auditoría se preserva).
type ItemUseCase struct {
	txRunner     TxRunner
	itemRepo     repository.ItemRepository
	categoryRepo repository.CategoryRepository
	unitRepo     repository.UnitRepository
	gate         AccessGate
	cache        ViewInvalidator
}

// NewItemUseCase construye el caso de uso. cache puede ser nil.
func NewItemUseCase(
	txRunner TxRunner,
	itemRepo repository.ItemRepository,
	categoryRepo repository.CategoryRepository,
	unitRepo repository.UnitRepository,
	gate AccessGate,
	cache ViewInvalidator,
) *ItemUseCase {
	return &ItemUseCase{
		txRunner:     txRunner,
		itemRepo:     itemRepo,
		categoryRepo: categoryRepo,
		unitRepo:     unitRepo,
		gate:         gate,
		cache:        cache,
	}
}

// assertCategory verifica que la categoría exista y pertenezca al equipo.
// Una referencia colgante o ajena es ErrNotFound, igual que con las unidades.
func (uc *ItemUseCase) assertCategory(ctx context.Context, teamID, categoryID string) error {
	cat, err := uc.categoryRepo.GetByID(ctx, categoryID)
	if err != nil {
		return err
	}
	if cat == nil || cat.TeamID != teamID {
		return domain.ErrNotFound
	}
	return nil
}

// Create crea un item con su stock inicial (la única escritura de stock fuera del libro).
func (uc *ItemUseCase) Create(ctx context.Context, ident access.Identity, in dto.CreateItemRequest) (*dto.ItemResponse, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" || in.UnitID == "" || in.CurrentStock < 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.LowStockThreshold != nil && *in.LowStockThreshold < 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.CostPerUnit != nil && in.CostPerUnit.IsNegative() {
		return nil, domain.ErrInvalidInput
	}

	if err := uc.gate.Assert(ctx, ident, entity.PermInventoryCreate); err != nil {
		return nil, err
	}

	unit, err := uc.unitRepo.GetByID(ctx, in.UnitID)
	if err != nil {
		return nil, err
	}
	if unit == nil || unit.TeamID != ident.TeamID {
		return nil, domain.ErrNotFound
	}
	if in.CategoryID != "" {
		if err := uc.assertCategory(ctx, ident.TeamID, in.CategoryID); err != nil {
			return nil, err
		}
	}

	now := time.Now()
	item := &entity.Item{
		ID:                uuid.New().String(),
		TeamID:            ident.TeamID,
		CreatedBy:         ident.UserID,
		Name:              in.Name,
		SKU:               strings.TrimSpace(in.SKU),
		CategoryID:        in.CategoryID,
		UnitID:            in.UnitID,
		Description:       strings.TrimSpace(in.Description),
		CurrentStock:      in.CurrentStock,
		LowStockThreshold: in.LowStockThreshold,
		CostPerUnit:       in.CostPerUnit,
		Location:          strings.TrimSpace(in.Location),
		Notes:             strings.TrimSpace(in.Notes),
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := uc.itemRepo.Create(ctx, item); err != nil {
		return nil, err
	}
	if uc.cache != nil {
		uc.cache.InvalidateTeam(ctx, ident.TeamID)
	}
	return toItemResponse(item), nil
}

// GetByID obtiene un item del equipo (incluye archivados, para consultas históricas).
func (uc *ItemUseCase) GetByID(ctx context.Context, ident access.Identity, id string) (*dto.ItemResponse, error) {
	if err := uc.gate.Assert(ctx, ident, entity.PermInventoryView); err != nil {
		return nil, err
	}
	item, err := uc.itemRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil || item.TeamID != ident.TeamID {
		return nil, domain.ErrNotFound
	}
	return toItemResponse(item), nil
}

// List lista items del equipo con filtros de categoría, estado de stock y búsqueda.
func (uc *ItemUseCase) List(ctx context.Context, ident access.Identity, filter repository.ItemFilter) (*dto.ItemListResponse, error) {
	switch filter.Status {
	case "", repository.ItemStatusAll, repository.ItemStatusInStock,
		repository.ItemStatusLowStock, repository.ItemStatusOutOfStock:
	default:
		return nil, domain.ErrInvalidInput
	}
	if err := uc.gate.Assert(ctx, ident, entity.PermInventoryView); err != nil {
		return nil, err
	}
	filter.TeamID = ident.TeamID
	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	if filter.Limit > 100 {
		filter.Limit = 100
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	items, total, err := uc.itemRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := &dto.ItemListResponse{
		Items: make([]dto.ItemResponse, 0, len(items)),
		Page:  dto.PageResponse{Limit: filter.Limit, Offset: filter.Offset, Total: total},
	}
	for _, it := range items {
		out.Items = append(out.Items, *toItemResponse(it))
	}
	return out, nil
}

// Update muta solo campos descriptivos. CurrentStock no es actualizable por
// esta vía: el libro de movimientos es el único escritor después de la creación.
func (uc *ItemUseCase) Update(ctx context.Context, ident access.Identity, id string, in dto.UpdateItemRequest) (*dto.ItemResponse, error) {
	if in.Name != nil && strings.TrimSpace(*in.Name) == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.UnitID != nil && *in.UnitID == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.LowStockThreshold != nil && *in.LowStockThreshold < 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.CostPerUnit != nil && in.CostPerUnit.IsNegative() {
		return nil, domain.ErrInvalidInput
	}

	if err := uc.gate.Assert(ctx, ident, entity.PermInventoryUpdate); err != nil {
		return nil, err
	}

	item, err := uc.itemRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil || item.TeamID != ident.TeamID {
		return nil, domain.ErrNotFound
	}

	if in.Name != nil {
		item.Name = strings.TrimSpace(*in.Name)
	}
	if in.SKU != nil {
		item.SKU = strings.TrimSpace(*in.SKU)
	}
	if in.CategoryID != nil {
		// Cadena vacía desasocia la categoría; cualquier otro valor se valida.
		if *in.CategoryID != "" {
			if err := uc.assertCategory(ctx, ident.TeamID, *in.CategoryID); err != nil {
				return nil, err
			}
		}
		item.CategoryID = *in.CategoryID
	}
	if in.UnitID != nil {
		unit, err := uc.unitRepo.GetByID(ctx, *in.UnitID)
		if err != nil {
			return nil, err
		}
		if unit == nil || unit.TeamID != ident.TeamID {
			return nil, domain.ErrNotFound
		}
		item.UnitID = *in.UnitID
	}
	if in.Description != nil {
		item.Description = strings.TrimSpace(*in.Description)
	}
	if in.LowStockThreshold != nil {
		item.LowStockThreshold = in.LowStockThreshold
	}
	if in.CostPerUnit != nil {
		item.CostPerUnit = in.CostPerUnit
	}
	if in.Location != nil {
		item.Location = strings.TrimSpace(*in.Location)
	}
	if in.Notes != nil {
		item.Notes = strings.TrimSpace(*in.Notes)
	}
	item.UpdatedAt = time.Now()

	if err := uc.itemRepo.Update(ctx, item); err != nil {
		return nil, err
	}
	if uc.cache != nil {
		uc.cache.InvalidateTeam(ctx, ident.TeamID)
	}
	return toItemResponse(item), nil
}

// Archive marca el item como archivado: queda fuera de listados activos y
// alertas, su stock se congela, pero sigue consultable para la auditoría.
func (uc *ItemUseCase) Archive(ctx context.Context, ident access.Identity, id string) error {
	if err := uc.gate.Assert(ctx, ident, entity.PermInventoryUpdate); err != nil {
		return err
	}
	item, err := uc.itemRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if item == nil || item.TeamID != ident.TeamID {
		return domain.ErrNotFound
	}
	if err := uc.itemRepo.Archive(ctx, id); err != nil {
		return err
	}
	if uc.cache != nil {
		uc.cache.InvalidateTeam(ctx, ident.TeamID)
	}
	return nil
}

// Delete borra el item de forma permanente solo si ningún movimiento lo
// referencia; si existe al menos uno, el borrado se degrada a archivado para
// preservar la pista de auditoría. El resultado etiquetado dice cuál ocurrió.
func (uc *ItemUseCase) Delete(ctx context.Context, ident access.Identity, id string) (*dto.DeleteItemResponse, error) {
	if err := uc.gate.Assert(ctx, ident, entity.PermInventoryDelete); err != nil {
		return nil, err
	}

	outcome := dto.DeleteOutcomeDeleted
	err := uc.txRunner.Run(ctx, func(itemRepo repository.ItemRepository, movRepo repository.MovementRepository) error {
		item, err := itemRepo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if item == nil || item.TeamID != ident.TeamID {
			return domain.ErrNotFound
		}
		count, err := movRepo.CountByItem(ctx, id)
		if err != nil {
			return err
		}
		if count > 0 {
			outcome = dto.DeleteOutcomeArchived
			return itemRepo.Archive(ctx, id)
		}
		return itemRepo.Delete(ctx, id)
	})
	if err != nil {
		return nil, err
	}
	if uc.cache != nil {
		uc.cache.InvalidateTeam(ctx, ident.TeamID)
	}
	return &dto.DeleteItemResponse{Outcome: outcome}, nil
}

func toItemResponse(i *entity.Item) *dto.ItemResponse {
	return &dto.ItemResponse{
		ID:                i.ID,
		TeamID:            i.TeamID,
		Name:              i.Name,
		SKU:               i.SKU,
		CategoryID:        i.CategoryID,
		UnitID:            i.UnitID,
		Description:       i.Description,
		CurrentStock:      i.CurrentStock,
		LowStockThreshold: i.LowStockThreshold,
		CostPerUnit:       i.CostPerUnit,
		Location:          i.Location,
		Notes:             i.Notes,
		Archived:          i.Archived,
		ArchivedAt:        i.ArchivedAt,
		CreatedAt:         i.CreatedAt,
		UpdatedAt:         i.UpdatedAt,
	}
}
