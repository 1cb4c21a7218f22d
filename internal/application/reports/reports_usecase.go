package reports

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jhoicas/denta-stock-api/internal/application/access"
	"github.com/jhoicas/denta-stock-api/internal/application/dto"
	"github.com/jhoicas/denta-stock-api/internal/domain"
	"github.com/jhoicas/denta-stock-api/internal/domain/entity"
	"github.com/jhoicas/denta-stock-api/internal/domain/repository"
)

// Períodos válidos del reporte.
const (
	Period7d  = "7d"
	Period30d = "30d"
	Period90d = "90d"
	PeriodAll = "all"
)

const (
	reportTopItemsLimit = 10
	reportLowStockLimit = 20
	reportTTL           = 5 * time.Minute
)

// periodSince traduce el período al límite inferior de fecha; nil = sin límite.
func periodSince(period string, now time.Time) (*time.Time, error) {
	var days int
	switch period {
	case Period7d:
		days = 7
	case Period30d:
		days = 30
	case Period90d:
		days = 90
	case PeriodAll:
		return nil, nil
	default:
		return nil, domain.ErrInvalidInput
	}
	since := now.AddDate(0, 0, -days)
	return &since, nil
}

// PDFRenderer produce el PDF del reporte (lo implementa infrastructure/pdf).
type PDFRenderer interface {
	Render(report *dto.ReportResponse, teamName string) ([]byte, error)
}

// ReportsUseCase construye el reporte del período y su exportación a PDF.
// Todo se recalcula desde el registro y el libro en cada consulta.
type ReportsUseCase struct {
	reportRepo repository.ReportRepository
	teamRepo   repository.TeamRepository
	gate       AccessGate
	cache      ViewCache
	pdf        PDFRenderer
}

// NewReportsUseCase construye el caso de uso. cache y pdf pueden ser nil.
func NewReportsUseCase(reportRepo repository.ReportRepository, teamRepo repository.TeamRepository, gate AccessGate, cache ViewCache, pdf PDFRenderer) *ReportsUseCase {
	return &ReportsUseCase{reportRepo: reportRepo, teamRepo: teamRepo, gate: gate, cache: cache, pdf: pdf}
}

// Get construye el ReportResponse del período (7d, 30d, 90d, all; por defecto 30d).
func (uc *ReportsUseCase) Get(ctx context.Context, ident access.Identity, period string) (*dto.ReportResponse, error) {
	if period == "" {
		period = Period30d
	}
	since, err := periodSince(period, time.Now())
	if err != nil {
		return nil, err
	}
	if err := uc.gate.Assert(ctx, ident, entity.PermInventoryView); err != nil {
		return nil, err
	}

	if uc.cache != nil {
		if raw, ok := uc.cache.Get(ctx, reportKey(ident.TeamID, period)); ok {
			var cached dto.ReportResponse
			if err := json.Unmarshal(raw, &cached); err == nil {
				return &cached, nil
			}
		}
	}

	// Seis consultas de agregación en paralelo, mismo patrón que el tablero.
	type statsResult struct {
		stats *repository.InventoryStats
		err   error
	}
	type totalsResult struct {
		totals *repository.MovementTotals
		err    error
	}
	type trendResult struct {
		rows []repository.DayMovementResult
		err  error
	}
	type categoryResult struct {
		rows []repository.CategoryStockResult
		err  error
	}
	type topResult struct {
		rows []repository.TopItemResult
		err  error
	}
	type lowResult struct {
		rows []repository.LowStockResult
		err  error
	}

	statsCh := make(chan statsResult, 1)
	totalsCh := make(chan totalsResult, 1)
	trendCh := make(chan trendResult, 1)
	catCh := make(chan categoryResult, 1)
	topCh := make(chan topResult, 1)
	lowCh := make(chan lowResult, 1)

	go func() {
		stats, err := uc.reportRepo.GetInventoryStats(ctx, ident.TeamID)
		statsCh <- statsResult{stats, err}
	}()
	go func() {
		totals, err := uc.reportRepo.GetMovementTotals(ctx, ident.TeamID, since)
		totalsCh <- totalsResult{totals, err}
	}()
	go func() {
		rows, err := uc.reportRepo.GetMovementsByDay(ctx, ident.TeamID, since)
		trendCh <- trendResult{rows, err}
	}()
	go func() {
		rows, err := uc.reportRepo.GetStockByCategory(ctx, ident.TeamID)
		catCh <- categoryResult{rows, err}
	}()
	go func() {
		rows, err := uc.reportRepo.GetTopMovingItems(ctx, ident.TeamID, since, reportTopItemsLimit)
		topCh <- topResult{rows, err}
	}()
	go func() {
		rows, err := uc.reportRepo.GetLowStockItems(ctx, ident.TeamID, reportLowStockLimit)
		lowCh <- lowResult{rows, err}
	}()

	stats := <-statsCh
	totals := <-totalsCh
	trend := <-trendCh
	cat := <-catCh
	top := <-topCh
	low := <-lowCh

	for _, e := range []error{stats.err, totals.err, trend.err, cat.err, top.err, low.err} {
		if e != nil {
			return nil, fmt.Errorf("reporte %s: %w", period, e)
		}
	}

	trends := make([]dto.MovementTrendDTO, 0, len(trend.rows))
	for _, r := range trend.rows {
		trends = append(trends, dto.MovementTrendDTO{Date: r.Date, In: r.In, Out: r.Out, Adjust: r.Adjust})
	}
	categories := make([]dto.CategoryStockDTO, 0, len(cat.rows))
	for _, r := range cat.rows {
		categories = append(categories, dto.CategoryStockDTO{
			CategoryID:   r.CategoryID,
			CategoryName: r.CategoryName,
			NameAr:       r.NameAr,
			ItemCount:    r.ItemCount,
			TotalStock:   r.TotalStock,
			TotalValue:   r.TotalValue.Round(2),
		})
	}
	topItems := make([]dto.TopItemDTO, 0, len(top.rows))
	for _, r := range top.rows {
		topItems = append(topItems, dto.TopItemDTO{
			ItemID:        r.ItemID,
			ItemName:      r.ItemName,
			Archived:      r.Archived,
			TotalIn:       r.TotalIn,
			TotalOut:      r.TotalOut,
			TotalMovement: r.TotalMovement,
		})
	}

	resp := &dto.ReportResponse{
		Period: period,
		Summary: dto.ReportSummaryDTO{
			TotalItems:      stats.stats.TotalItems,
			TotalValue:      stats.stats.TotalValue.Round(2),
			TotalMovements:  totals.totals.Movements,
			TotalIn:         totals.totals.TotalIn,
			TotalOut:        totals.totals.TotalOut,
			TotalAdjust:     totals.totals.TotalAdjust,
			LowStockCount:   stats.stats.LowStock,
			OutOfStockCount: stats.stats.OutOfStock,
		},
		StockByCategory: categories,
		MovementTrends:  trends,
		TopMovingItems:  topItems,
		LowStockItems:   toLowStockDTOs(low.rows),
	}

	if uc.cache != nil {
		if raw, err := json.Marshal(resp); err == nil {
			uc.cache.Set(ctx, reportKey(ident.TeamID, period), raw, reportTTL)
		}
	}
	return resp, nil
}

// ExportPDF genera el reporte del período y lo renderiza a PDF.
func (uc *ReportsUseCase) ExportPDF(ctx context.Context, ident access.Identity, period string) ([]byte, error) {
	if uc.pdf == nil {
		return nil, fmt.Errorf("reporte: renderer PDF no configurado")
	}
	report, err := uc.Get(ctx, ident, period)
	if err != nil {
		return nil, err
	}
	teamName := ""
	if team, err := uc.teamRepo.GetByID(ctx, ident.TeamID); err == nil && team != nil {
		teamName = team.Name
	}
	return uc.pdf.Render(report, teamName)
}
