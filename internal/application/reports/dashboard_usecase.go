package reports

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jhoicas/denta-stock-api/internal/application/access"
	"github.com/jhoicas/denta-stock-api/internal/application/dto"
	"github.com/jhoicas/denta-stock-api/internal/domain/entity"
	"github.com/jhoicas/denta-stock-api/internal/domain/repository"
)

const (
	dashboardLowStockLimit = 10 // alertas de stock bajo en el widget
	dashboardRecentLimit   = 10 // movimientos recientes en el widget
	dashboardTTL           = 5 * time.Minute
)

// AccessGate contrato mínimo del Access Gate (lo implementa *access.Gate).
type AccessGate interface {
	Assert(ctx context.Context, ident access.Identity, permission string) error
}

// DashboardUseCase genera el resumen del tablero: contadores de stock,
// alertas de stock bajo y movimientos recientes.
//
// Fuente de datos: ReportRepository (consultas read-only de agregación) más
// MovementRepository para los recientes. No guarda estado propio.
type DashboardUseCase struct {
	reportRepo repository.ReportRepository
	movRepo    repository.MovementRepository
	gate       AccessGate
	cache      ViewCache
}

// NewDashboardUseCase construye el caso de uso. cache puede ser nil.
func NewDashboardUseCase(reportRepo repository.ReportRepository, movRepo repository.MovementRepository, gate AccessGate, cache ViewCache) *DashboardUseCase {
	return &DashboardUseCase{reportRepo: reportRepo, movRepo: movRepo, gate: gate, cache: cache}
}

// GetSummary construye el DashboardResponse del equipo.
//
// Tres llamadas en paralelo:
//  1. GetInventoryStats          → contadores y valor total
//  2. GetLowStockItems(top 10)   → alertas con déficit
//  3. List(últimos 10)           → movimientos recientes
func (uc *DashboardUseCase) GetSummary(ctx context.Context, ident access.Identity) (*dto.DashboardResponse, error) {
	if err := uc.gate.Assert(ctx, ident, entity.PermInventoryView); err != nil {
		return nil, err
	}

	if uc.cache != nil {
		if raw, ok := uc.cache.Get(ctx, dashboardKey(ident.TeamID)); ok {
			var cached dto.DashboardResponse
			if err := json.Unmarshal(raw, &cached); err == nil {
				return &cached, nil
			}
			// Entrada corrupta: se ignora y se recalcula.
		}
	}

	type statsResult struct {
		stats *repository.InventoryStats
		err   error
	}
	type lowStockResult struct {
		rows []repository.LowStockResult
		err  error
	}
	type recentsResult struct {
		movs []*entity.StockMovement
		err  error
	}

	statsCh := make(chan statsResult, 1)
	lowCh := make(chan lowStockResult, 1)
	recentCh := make(chan recentsResult, 1)

	go func() {
		stats, err := uc.reportRepo.GetInventoryStats(ctx, ident.TeamID)
		statsCh <- statsResult{stats, err}
	}()
	go func() {
		rows, err := uc.reportRepo.GetLowStockItems(ctx, ident.TeamID, dashboardLowStockLimit)
		lowCh <- lowStockResult{rows, err}
	}()
	go func() {
		movs, err := uc.movRepo.List(ctx, repository.MovementFilter{TeamID: ident.TeamID, Limit: dashboardRecentLimit})
		recentCh <- recentsResult{movs, err}
	}()

	stats := <-statsCh
	low := <-lowCh
	recent := <-recentCh

	if stats.err != nil {
		return nil, fmt.Errorf("dashboard: contadores: %w", stats.err)
	}
	if low.err != nil {
		return nil, fmt.Errorf("dashboard: stock bajo: %w", low.err)
	}
	if recent.err != nil {
		return nil, fmt.Errorf("dashboard: movimientos recientes: %w", recent.err)
	}

	resp := &dto.DashboardResponse{
		Stats: dto.DashboardStats{
			TotalItems: stats.stats.TotalItems,
			LowStock:   stats.stats.LowStock,
			OutOfStock: stats.stats.OutOfStock,
			TotalValue: stats.stats.TotalValue.Round(2),
		},
		LowStockItems:   toLowStockDTOs(low.rows),
		RecentMovements: toMovementDTOs(recent.movs),
	}

	if uc.cache != nil {
		if raw, err := json.Marshal(resp); err == nil {
			uc.cache.Set(ctx, dashboardKey(ident.TeamID), raw, dashboardTTL)
		}
	}
	return resp, nil
}

func toLowStockDTOs(rows []repository.LowStockResult) []dto.LowStockItemDTO {
	out := make([]dto.LowStockItemDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.LowStockItemDTO{
			ItemID:       r.ItemID,
			ItemName:     r.ItemName,
			CurrentStock: r.CurrentStock,
			Threshold:    r.Threshold,
			Deficit:      r.Deficit,
		})
	}
	return out
}

func toMovementDTOs(movs []*entity.StockMovement) []dto.MovementResponse {
	out := make([]dto.MovementResponse, 0, len(movs))
	for _, m := range movs {
		out = append(out, dto.MovementResponse{
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
		})
	}
	return out
}
