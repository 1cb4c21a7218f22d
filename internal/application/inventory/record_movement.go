package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/denta-stock-api/internal/application/access"
	"github.com/jhoicas/denta-stock-api/internal/application/dto"
	"github.com/jhoicas/denta-stock-api/internal/domain"
	"github.com/jhoicas/denta-stock-api/internal/domain/entity"
	"github.com/jhoicas/denta-stock-api/internal/domain/ledger"
	"github.com/jhoicas/denta-stock-api/internal/domain/repository"
)

// MovementUseCase registra movimientos de stock de forma transaccional y
// consulta el libro. Es la única vía autorizada para mutar CurrentStock
// después de la creación del item.
type MovementUseCase struct {
	txRunner TxRunner
	movRepo  repository.MovementRepository
	itemRepo repository.ItemRepository
	gate     AccessGate
	cache    ViewInvalidator
}

// NewMovementUseCase construye el caso de uso. cache puede ser nil.
func NewMovementUseCase(
	txRunner TxRunner,
	movRepo repository.MovementRepository,
	itemRepo repository.ItemRepository,
	gate AccessGate,
	cache ViewInvalidator,
) *MovementUseCase {
	return &MovementUseCase{
		txRunner: txRunner,
		movRepo:  movRepo,
		itemRepo: itemRepo,
		gate:     gate,
		cache:    cache,
	}
}

// Record registra un movimiento contra un item del equipo.
//
// Secuencia: validar entrada → Access Gate (permiso update) → transacción:
// bloquear la fila del item (SELECT FOR UPDATE), leer previousStock, calcular
// newStock con la función de transición del libro, insertar el movimiento
// inmutable y actualizar el stock cacheado. Commit o rollback de ambas
// escrituras juntas; un movimiento rechazado no deja rastro.
func (uc *MovementUseCase) Record(ctx context.Context, ident access.Identity, in dto.RecordMovementRequest) (*dto.RecordMovementResponse, error) {
	// Validación pura, antes de cualquier chequeo de acceso o lectura de datos.
	if in.ItemID == "" || !entity.ValidMovementType(in.Type) {
		return nil, domain.ErrInvalidInput
	}
	switch in.Type {
	case entity.MovementTypeIn, entity.MovementTypeOut:
		if in.Quantity < 1 {
			return nil, domain.ErrInvalidInput
		}
	case entity.MovementTypeAdjust:
		if in.Quantity < 0 {
			return nil, domain.ErrInvalidInput
		}
	}

	if err := uc.gate.Assert(ctx, ident, entity.PermInventoryUpdate); err != nil {
		return nil, err
	}

	now := time.Now()
	mov := &entity.StockMovement{
		ID:        uuid.New().String(),
		TeamID:    ident.TeamID,
		CreatedBy: ident.UserID,
		ItemID:    in.ItemID,
		Type:      in.Type,
		Quantity:  in.Quantity,
		Reason:    in.Reason,
		Notes:     in.Notes,
		CreatedAt: now,
	}

	err := uc.txRunner.Run(ctx, func(itemRepo repository.ItemRepository, movRepo repository.MovementRepository) error {
		item, err := itemRepo.GetForUpdate(ctx, in.ItemID)
		if err != nil {
			return err
		}
		if item == nil || item.TeamID != ident.TeamID {
			return domain.ErrNotFound
		}
		// Un item archivado tiene el stock congelado: no admite movimientos nuevos.
		if item.Archived {
			return domain.ErrConflict
		}

		newStock, err := ledger.Apply(item.CurrentStock, in.Type, in.Quantity)
		if err != nil {
			return err
		}
		mov.PreviousStock = item.CurrentStock
		mov.NewStock = newStock

		if err := movRepo.Create(ctx, mov); err != nil {
			return err
		}
		return itemRepo.UpdateStock(ctx, item.ID, newStock)
	})
	if err != nil {
		return nil, err
	}

	if uc.cache != nil {
		uc.cache.InvalidateTeam(ctx, ident.TeamID)
	}

	return &dto.RecordMovementResponse{
		Movement:      toMovementResponse(mov),
		PreviousStock: mov.PreviousStock,
		NewStock:      mov.NewStock,
	}, nil
}

// List devuelve movimientos del equipo, más recientes primero.
func (uc *MovementUseCase) List(ctx context.Context, ident access.Identity, itemID, movType string, limit int) (*dto.MovementListResponse, error) {
	if movType != "" && !entity.ValidMovementType(movType) {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.gate.Assert(ctx, ident, entity.PermInventoryView); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 50
	}
	if limit > 100 {
		limit = 100
	}
	list, err := uc.movRepo.List(ctx, repository.MovementFilter{
		TeamID: ident.TeamID,
		ItemID: itemID,
		Type:   movType,
		Limit:  limit,
	})
	if err != nil {
		return nil, err
	}
	out := &dto.MovementListResponse{Movements: make([]dto.MovementResponse, 0, len(list)), Total: len(list)}
	for _, m := range list {
		out.Movements = append(out.Movements, toMovementResponse(m))
	}
	return out, nil
}

// ItemLedger devuelve el libro completo de un item en orden cronológico y
// verifica que el stock cacheado sea re-derivable repitiendo la secuencia:
// el libro es la fuente de verdad y CurrentStock solo un cache.
func (uc *MovementUseCase) ItemLedger(ctx context.Context, ident access.Identity, itemID string) (*dto.ItemLedgerResponse, error) {
	if itemID == "" {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.gate.Assert(ctx, ident, entity.PermInventoryView); err != nil {
		return nil, err
	}

	item, err := uc.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil || item.TeamID != ident.TeamID {
		return nil, domain.ErrNotFound
	}

	movs, err := uc.movRepo.ListByItemAsc(ctx, itemID)
	if err != nil {
		return nil, err
	}

	// El stock inicial de la creación es el PreviousStock del primer movimiento;
	// sin movimientos, el stock actual ES el inicial.
	initial := item.CurrentStock
	if len(movs) > 0 {
		initial = movs[0].PreviousStock
	}
	replayed, err := ledger.Replay(initial, movs)
	if err != nil {
		return nil, err
	}

	out := &dto.ItemLedgerResponse{
		ItemID:        item.ID,
		CurrentStock:  item.CurrentStock,
		ReplayedStock: replayed,
		Consistent:    replayed == item.CurrentStock && ledger.VerifyChain(initial, movs) == nil,
		Movements:     make([]dto.MovementResponse, 0, len(movs)),
	}
	for _, m := range movs {
		out.Movements = append(out.Movements, toMovementResponse(m))
	}
	return out, nil
}

func toMovementResponse(m *entity.StockMovement) dto.MovementResponse {
	return dto.MovementResponse{
		ID:            m.ID,
		TeamID:        m.TeamID,
		ItemID:        m.ItemID,
		Type:          m.Type,
		Quantity:      m.Quantity,
		PreviousStock: m.PreviousStock,
		NewStock:      m.NewStock,
		Reason:        m.Reason,
		Notes:         m.Notes,
		CreatedBy:     m.CreatedBy,
		CreatedAt:     m.CreatedAt,
	}
}
