package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/denta-stock-api/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo consultas read-only de agregación sobre items y movimientos.
// Todo se recalcula desde las tablas base; no hay tablas de resumen.
type ReportRepo struct {
	q Querier
}

// NewReportRepository construye el adaptador de reportes.
func NewReportRepository(q Querier) *ReportRepo {
	return &ReportRepo{q: q}
}

// GetInventoryStats contadores y valor total del inventario activo.
func (r *ReportRepo) GetInventoryStats(ctx context.Context, teamID string) (*repository.InventoryStats, error) {
	query := `
		SELECT
			count(*),
			count(*) FILTER (WHERE low_stock_threshold IS NOT NULL AND current_stock > 0 AND current_stock <= low_stock_threshold),
			count(*) FILTER (WHERE current_stock = 0),
			COALESCE(SUM(current_stock * COALESCE(cost_per_unit, 0)), 0)
		FROM inventory_items
		WHERE team_id = $1 AND is_archived = false`
	var s repository.InventoryStats
	err := r.q.QueryRow(ctx, query, teamID).Scan(&s.TotalItems, &s.LowStock, &s.OutOfStock, &s.TotalValue)
	if err != nil {
		return nil, fmt.Errorf("inventory stats: %w", err)
	}
	return &s, nil
}

// GetMovementTotals sumas de cantidades por tipo desde since (nil = todo el libro).
func (r *ReportRepo) GetMovementTotals(ctx context.Context, teamID string, since *time.Time) (*repository.MovementTotals, error) {
	query := `
		SELECT
			count(*),
			COALESCE(SUM(quantity) FILTER (WHERE movement_type = 'in'), 0),
			COALESCE(SUM(quantity) FILTER (WHERE movement_type = 'out'), 0),
			COALESCE(SUM(quantity) FILTER (WHERE movement_type = 'adjust'), 0)
		FROM stock_movements
		WHERE team_id = $1 AND ($2::timestamptz IS NULL OR created_at >= $2)`
	var t repository.MovementTotals
	err := r.q.QueryRow(ctx, query, teamID, since).Scan(&t.Movements, &t.TotalIn, &t.TotalOut, &t.TotalAdjust)
	if err != nil {
		return nil, fmt.Errorf("movement totals: %w", err)
	}
	return &t, nil
}

// GetMovementsByDay cantidades movidas por día, orden cronológico.
func (r *ReportRepo) GetMovementsByDay(ctx context.Context, teamID string, since *time.Time) ([]repository.DayMovementResult, error) {
	query := `
		SELECT
			date_trunc('day', created_at) AS day,
			COALESCE(SUM(quantity) FILTER (WHERE movement_type = 'in'), 0),
			COALESCE(SUM(quantity) FILTER (WHERE movement_type = 'out'), 0),
			COALESCE(SUM(quantity) FILTER (WHERE movement_type = 'adjust'), 0)
		FROM stock_movements
		WHERE team_id = $1 AND ($2::timestamptz IS NULL OR created_at >= $2)
		GROUP BY day
		ORDER BY day ASC`
	rows, err := r.q.Query(ctx, query, teamID, since)
	if err != nil {
		return nil, fmt.Errorf("movements by day: %w", err)
	}
	defer rows.Close()

	var out []repository.DayMovementResult
	for rows.Next() {
		var d repository.DayMovementResult
		if err := rows.Scan(&d.Date, &d.In, &d.Out, &d.Adjust); err != nil {
			return nil, fmt.Errorf("scan day movement: %w", err)
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("movements by day rows: %w", err)
	}
	return out, nil
}

// GetStockByCategory stock y valor agrupados por categoría (items activos).
// Los items sin categoría se agrupan bajo CategoryID vacío.
func (r *ReportRepo) GetStockByCategory(ctx context.Context, teamID string) ([]repository.CategoryStockResult, error) {
	query := `
		SELECT
			COALESCE(c.id::text, ''),
			COALESCE(c.name, ''),
			COALESCE(c.name_ar, ''),
			count(i.id),
			COALESCE(SUM(i.current_stock), 0),
			COALESCE(SUM(i.current_stock * COALESCE(i.cost_per_unit, 0)), 0)
		FROM inventory_items i
		LEFT JOIN inventory_categories c ON c.id = i.category_id
		WHERE i.team_id = $1 AND i.is_archived = false
		GROUP BY c.id, c.name, c.name_ar, c.sort_order
		ORDER BY c.sort_order ASC NULLS LAST, c.name ASC NULLS LAST`
	rows, err := r.q.Query(ctx, query, teamID)
	if err != nil {
		return nil, fmt.Errorf("stock by category: %w", err)
	}
	defer rows.Close()

	var out []repository.CategoryStockResult
	for rows.Next() {
		var c repository.CategoryStockResult
		if err := rows.Scan(&c.CategoryID, &c.CategoryName, &c.NameAr, &c.ItemCount, &c.TotalStock, &c.TotalValue); err != nil {
			return nil, fmt.Errorf("scan category stock: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("stock by category rows: %w", err)
	}
	return out, nil
}

// GetTopMovingItems items con más volumen movido en el período. Incluye
// archivados: su historia sigue contando en los reportes.
func (r *ReportRepo) GetTopMovingItems(ctx context.Context, teamID string, since *time.Time, limit int) ([]repository.TopItemResult, error) {
	query := `
		SELECT
			i.id, i.name, i.is_archived,
			COALESCE(SUM(m.quantity) FILTER (WHERE m.movement_type = 'in'), 0),
			COALESCE(SUM(m.quantity) FILTER (WHERE m.movement_type = 'out'), 0),
			COALESCE(SUM(m.quantity) FILTER (WHERE m.movement_type IN ('in', 'out')), 0) AS total_movement
		FROM stock_movements m
		JOIN inventory_items i ON i.id = m.item_id
		WHERE m.team_id = $1 AND ($2::timestamptz IS NULL OR m.created_at >= $2)
		GROUP BY i.id, i.name, i.is_archived
		ORDER BY total_movement DESC
		LIMIT $3`
	rows, err := r.q.Query(ctx, query, teamID, since, limit)
	if err != nil {
		return nil, fmt.Errorf("top moving items: %w", err)
	}
	defer rows.Close()

	var out []repository.TopItemResult
	for rows.Next() {
		var t repository.TopItemResult
		if err := rows.Scan(&t.ItemID, &t.ItemName, &t.Archived, &t.TotalIn, &t.TotalOut, &t.TotalMovement); err != nil {
			return nil, fmt.Errorf("scan top item: %w", err)
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("top moving items rows: %w", err)
	}
	return out, nil
}

// GetLowStockItems items activos en o por debajo de su umbral, peor déficit primero.
func (r *ReportRepo) GetLowStockItems(ctx context.Context, teamID string, limit int) ([]repository.LowStockResult, error) {
	query := `
		SELECT id, name, current_stock, low_stock_threshold, low_stock_threshold - current_stock AS deficit
		FROM inventory_items
		WHERE team_id = $1 AND is_archived = false
			AND low_stock_threshold IS NOT NULL AND current_stock <= low_stock_threshold
		ORDER BY deficit DESC, name ASC
		LIMIT $2`
	rows, err := r.q.Query(ctx, query, teamID, limit)
	if err != nil {
		return nil, fmt.Errorf("low stock items: %w", err)
	}
	defer rows.Close()

	var out []repository.LowStockResult
	for rows.Next() {
		var l repository.LowStockResult
		if err := rows.Scan(&l.ItemID, &l.ItemName, &l.CurrentStock, &l.Threshold, &l.Deficit); err != nil {
			return nil, fmt.Errorf("scan low stock item: %w", err)
		}
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("low stock items rows: %w", err)
	}
	return out, nil
}
